// Package seed populates an empty data collection with sample products and
// orders so a fresh install has something to show.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/burgerhouse/storefront/internal/datasync"
	"github.com/burgerhouse/storefront/internal/models"
	"github.com/burgerhouse/storefront/internal/store"
)

// Run seeds sample products and orders into the data service, each group
// only when its collection is currently empty.
func Run(ctx context.Context, data datasync.Service, st *store.Store, log *slog.Logger) error {
	if len(st.Products()) == 0 {
		if err := seedProducts(ctx, data); err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
		log.Info("sample products seeded")
	}
	if len(st.Orders()) == 0 {
		if err := seedOrders(ctx, data); err != nil {
			return fmt.Errorf("seed orders: %w", err)
		}
		log.Info("sample orders seeded")
	}
	return nil
}

func seedProducts(ctx context.Context, data datasync.Service) error {
	now := time.Now().UTC()
	products := []models.Product{
		{Name: "Burger Clássico", Category: models.CategoryBurger, Price: 18.90, Description: "Hambúrguer, queijo, alface, tomate e molho especial"},
		{Name: "Burger Bacon", Category: models.CategoryBurger, Price: 22.90, Description: "Hambúrguer, bacon, queijo, cebola caramelizada"},
		{Name: "Batata Frita", Category: models.CategorySide, Price: 8.90, Description: "Porção individual de batatas fritas crocantes"},
		{Name: "Coca-Cola", Category: models.CategoryDrink, Price: 5.90, Description: "Refrigerante 350ml gelado"},
	}

	for _, p := range products {
		p.Type = models.RecordTypeProduct
		p.ID = uuid.New().String()
		p.Available = true
		p.CreatedAt = now

		rec, err := models.NewRecord(p)
		if err != nil {
			return err
		}
		if err := data.Create(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func seedOrders(ctx context.Context, data datasync.Service) error {
	now := time.Now().UTC()
	orders := []models.Order{
		{
			UserID:          "user_001",
			CustomerName:    "João Silva",
			CustomerPhone:   "(11) 99999-1234",
			CustomerAddress: "Rua das Flores, 123 - Vila Madalena",
			DeliveryType:    models.DeliveryTypeDelivery,
			DeliveryFee:     5.00,
			Status:          models.StatusKitchen,
			Total:           32.80,
			Items: []models.OrderItem{
				{Name: "Burger Clássico", Price: 18.90, Quantity: 1},
				{Name: "Batata Frita", Price: 8.90, Quantity: 1},
				{Name: "Coca-Cola", Price: 5.90, Quantity: 1},
			},
			CreatedAt: now,
		},
		{
			UserID:        "user_002",
			CustomerName:  "Maria Santos",
			CustomerPhone: "(11) 98888-5678",
			DeliveryType:  models.DeliveryTypePickup,
			Status:        models.StatusAwaitingCourier,
			Total:         22.90,
			Items: []models.OrderItem{
				{Name: "Burger Bacon", Price: 22.90, Quantity: 1},
			},
			CreatedAt: now.Add(-15 * time.Minute),
		},
		{
			UserID:          "user_003",
			CustomerName:    "Pedro Costa",
			CustomerPhone:   "(11) 97777-9012",
			CustomerAddress: "Av. Paulista, 1000 - Bela Vista",
			DeliveryType:    models.DeliveryTypeDelivery,
			DeliveryFee:     7.00,
			Status:          models.StatusOutForDelivery,
			Total:           54.70,
			Items: []models.OrderItem{
				{Name: "Burger Clássico", Price: 18.90, Quantity: 2},
				{Name: "Batata Frita", Price: 8.90, Quantity: 1},
				{Name: "Coca-Cola", Price: 5.90, Quantity: 2},
			},
			CreatedAt: now.Add(-30 * time.Minute),
		},
	}

	for _, o := range orders {
		o.Type = models.RecordTypeOrder
		o.ID = uuid.New().String()

		rec, err := models.NewRecord(o)
		if err != nil {
			return err
		}
		if err := data.Create(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
