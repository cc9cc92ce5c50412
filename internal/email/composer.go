package email

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/shopstack-dev/storefront/internal/orders"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`Hi {{.Name}},

Thanks for your order! Here is your summary for order {{.Order.OrderID}}:

{{range .Order.Items}}  {{.Quantity}} x {{if .Name}}{{.Name}}{{else}}{{.ProductID}}{{end}} @ {{printf "%.2f" .FinalUnitPrice}} = {{printf "%.2f" .LineItemTotal}}
{{end}}
Subtotal:  {{printf "%.2f" .Order.Subtotal}}
Discount: -{{printf "%.2f" .Order.CartDiscountAmount}}
Shipping:  {{printf "%.2f" .Order.ShippingCost}}
Tax:       {{printf "%.2f" .Order.TaxAmount}}
Total:     {{printf "%.2f" .Order.GrandTotal}}

We will email you again when your order ships.

{{.StoreName}}
`))

// Message is a composed email ready to send.
type Message struct {
	To      string
	Subject string
	Body    string
}

// ComposeConfirmation renders the order confirmation email for an order.
func ComposeConfirmation(order *orders.Order, storeName string) (Message, error) {
	if storeName == "" {
		storeName = "The Store"
	}
	data := struct {
		Order     *orders.Order
		Name      string
		StoreName string
	}{
		Order:     order,
		Name:      order.ShippingAddress.Name,
		StoreName: storeName,
	}

	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render confirmation template: %w", err)
	}

	return Message{
		To:      order.CustomerEmail,
		Subject: fmt.Sprintf("Order confirmed: %s", order.OrderID),
		Body:    buf.String(),
	}, nil
}
