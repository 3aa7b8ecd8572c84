package handlers

import (
	"fmt"
	"strings"

	"github.com/burgerhouse/storefront/internal/element"
	"github.com/burgerhouse/storefront/internal/models"
)

// brl renders an amount the way Brazilian receipts expect it.
func brl(v float64) string {
	return "R$ " + strings.ReplaceAll(fmt.Sprintf("%.2f", v), ".", ",")
}

// BuildReceipt renders the kitchen slip for an order as plain text.
func BuildReceipt(order models.Order, cfg element.Config) string {
	var b strings.Builder
	divider := strings.Repeat("=", 32)
	dashed := strings.Repeat("-", 32)

	mode := "RETIRADA"
	if order.DeliveryType == models.DeliveryTypeDelivery {
		mode = "ENTREGA"
	}

	fmt.Fprintf(&b, "%s\n", strings.ToUpper(cfg.RestaurantName))
	fmt.Fprintf(&b, "Pedido para %s\n", mode)
	fmt.Fprintf(&b, "%s\n", strings.ToUpper(string(order.Status)))
	fmt.Fprintf(&b, "%s\n", divider)

	local := order.CreatedAt.Local()
	fmt.Fprintf(&b, "Pedido: #%s\n", order.ShortID())
	fmt.Fprintf(&b, "Data: %s\n", local.Format("02/01/2006"))
	fmt.Fprintf(&b, "Hora: %s\n", local.Format("15:04"))
	fmt.Fprintf(&b, "%s\n", dashed)

	fmt.Fprintf(&b, "Cliente: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "Telefone: %s\n", order.CustomerPhone)
	if order.DeliveryType == models.DeliveryTypeDelivery {
		fmt.Fprintf(&b, "Endereço: %s\n", order.CustomerAddress)
	}
	fmt.Fprintf(&b, "%s\n", dashed)

	b.WriteString("ITENS DO PEDIDO:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%dx %s\n", item.Quantity, item.Name)
		if len(item.Extras) > 0 {
			names := make([]string, len(item.Extras))
			for i, e := range item.Extras {
				names[i] = e.Name
			}
			fmt.Fprintf(&b, "  + %s\n", strings.Join(names, ", "))
		}
		if len(item.RemovedIngredients) > 0 {
			fmt.Fprintf(&b, "  Sem: %s\n", strings.Join(item.RemovedIngredients, ", "))
		}
		if obs := strings.TrimSpace(item.Observations); obs != "" {
			fmt.Fprintf(&b, "  Obs: %s\n", obs)
		}
		fmt.Fprintf(&b, "  %s cada = %s\n", brl(item.Price), brl(item.Total()))
	}
	fmt.Fprintf(&b, "%s\n", divider)

	fmt.Fprintf(&b, "Subtotal: %s\n", brl(order.Subtotal()))
	fmt.Fprintf(&b, "Taxa de entrega: %s\n", brl(order.DeliveryFee))
	fmt.Fprintf(&b, "TOTAL: %s\n", brl(order.Total))
	b.WriteString("Obrigado!\n")

	return b.String()
}
