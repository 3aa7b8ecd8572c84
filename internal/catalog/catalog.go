// Package catalog holds the compiled-in customer menu. The admin side
// manages its own mutable product records through the data service; the
// ordering client always sells from this constant table.
package catalog

import "github.com/burgerhouse/storefront/internal/models"

// Extras lists the paid additions offered on every product.
var Extras = []models.Extra{
	{Name: "Bacon", Price: 3.00},
	{Name: "Queijo Extra", Price: 2.50},
	{Name: "Ovo", Price: 2.00},
	{Name: "Cebola Caramelizada", Price: 2.50},
}

// RemovableIngredients lists the ingredients a customer may leave out.
var RemovableIngredients = []string{
	"Alface",
	"Tomate",
	"Cebola",
	"Picles",
	"Molho",
}

// ExtraByName resolves an extra by its display name. Prices always come
// from this table, never from the client.
func ExtraByName(name string) (models.Extra, bool) {
	for _, e := range Extras {
		if e.Name == name {
			return e, true
		}
	}
	return models.Extra{}, false
}

// Catalog is the fixed customer menu.
type Catalog struct {
	items map[string]models.Product
	order []string
}

// New creates the catalog with the standard menu.
func New() *Catalog {
	seed := []models.Product{
		{ID: "b1", Name: "Burger Clássico", Category: models.CategoryBurger, Price: 18.90, Description: "Hambúrguer, queijo, alface, tomate e molho especial"},
		{ID: "b2", Name: "Burger Bacon", Category: models.CategoryBurger, Price: 22.90, Description: "Hambúrguer, bacon, queijo, cebola caramelizada"},
		{ID: "b3", Name: "Burger Duplo", Category: models.CategoryBurger, Price: 28.90, Description: "Dois hambúrgueres, queijo duplo, molho especial"},
		{ID: "b4", Name: "Burger Vegano", Category: models.CategoryBurger, Price: 19.90, Description: "Hambúrguer de grão-de-bico, alface, tomate, molho vegano"},
		{ID: "b5", Name: "Burger Picante", Category: models.CategoryBurger, Price: 24.90, Description: "Hambúrguer, pimenta jalapeño, queijo, molho picante"},
		{ID: "b6", Name: "Burger Gourmet", Category: models.CategoryBurger, Price: 32.90, Description: "Hambúrguer artesanal, queijo brie, rúcula, geleia"},
		{ID: "s1", Name: "Batata Frita", Category: models.CategorySide, Price: 8.90, Description: "Porção individual"},
		{ID: "s2", Name: "Onion Rings", Category: models.CategorySide, Price: 9.90, Description: "Anéis de cebola empanados"},
		{ID: "s3", Name: "Nuggets", Category: models.CategorySide, Price: 12.90, Description: "8 unidades"},
		{ID: "s4", Name: "Batata Doce", Category: models.CategorySide, Price: 10.90, Description: "Fatias de batata doce"},
		{ID: "d1", Name: "Coca-Cola", Category: models.CategoryDrink, Price: 5.90, Description: "350ml"},
		{ID: "d2", Name: "Suco Natural", Category: models.CategoryDrink, Price: 7.90, Description: "400ml"},
		{ID: "d3", Name: "Água", Category: models.CategoryDrink, Price: 3.90, Description: "500ml"},
		{ID: "d4", Name: "Milkshake", Category: models.CategoryDrink, Price: 12.90, Description: "400ml - Chocolate ou Morango"},
	}

	c := &Catalog{items: make(map[string]models.Product, len(seed))}
	for _, p := range seed {
		p.Type = models.RecordTypeProduct
		p.Available = true
		c.items[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c
}

// List returns menu items for a filter: "all", "burgers", "sides" or
// "drinks". Unknown filters behave like "all".
func (c *Catalog) List(filter string) []models.Product {
	var category models.Category
	switch filter {
	case "burgers":
		category = models.CategoryBurger
	case "sides":
		category = models.CategorySide
	case "drinks":
		category = models.CategoryDrink
	}

	out := make([]models.Product, 0, len(c.order))
	for _, id := range c.order {
		p := c.items[id]
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Get returns a menu item by id.
func (c *Catalog) Get(id string) (models.Product, bool) {
	p, ok := c.items[id]
	return p, ok
}
