package server

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicepad/internal/domain"
)

// viewHTML renders the current document as a read-only HTML page. The page
// always reflects the latest committed state, so printing it (or fetching
// /api/invoice/pdf) sees every mutation made so far.
func (s *Server) viewHTML(c *gin.Context) {
	snap := s.sess.Snapshot()

	data := struct {
		Invoice  domain.Invoice
		Totals   totalsResponse
		LineRows []lineRow
	}{
		Invoice: snap.Invoice,
		Totals: totalsResponse{
			Subtotal: domain.Display(snap.Totals.Subtotal),
			Discount: domain.Display(snap.Totals.Discount),
			Tax:      domain.Display(snap.Totals.Tax),
			Total:    domain.Display(snap.Totals.Total),
		},
	}
	for _, item := range snap.Invoice.LineItems {
		data.LineRows = append(data.LineRows, lineRow{
			Item:  item,
			Total: domain.Display(item.LineTotal()),
		})
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := viewTemplate.Execute(c.Writer, data); err != nil {
		s.log.WithError(err).Error("Failed to render invoice view")
	}
}

type lineRow struct {
	Item  domain.LineItem
	Total string
}

var viewTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Invoice.Title}} {{.Invoice.InvoiceInfo.Number}}</title></head>
<body>
<h1>{{.Invoice.Title}}</h1>
{{if .Invoice.Logo}}<img src="{{.Invoice.Logo}}" alt="Logo" style="max-height:96px">{{end}}
<p>
INVOICE NO. {{.Invoice.InvoiceInfo.Number}}<br>
ISSUED: {{.Invoice.InvoiceInfo.Issued}}<br>
DUE: {{.Invoice.InvoiceInfo.Due}}
</p>
<p>
{{.Invoice.BusinessInfo.Name}}<br>
{{.Invoice.BusinessInfo.Address}}<br>
{{.Invoice.BusinessInfo.City}}<br>
{{.Invoice.BusinessInfo.Website}} · {{.Invoice.BusinessInfo.Email}} · {{.Invoice.BusinessInfo.Phone}}
</p>
<table border="1" cellspacing="0" cellpadding="6">
<tr><th>Description</th><th>Qty</th><th>Price</th><th>Total</th></tr>
{{range .LineRows}}
<tr><td>{{.Item.Description}}</td><td>{{.Item.Quantity}}</td><td>${{.Item.Price}}</td><td>${{.Total}}</td></tr>
{{end}}
</table>
<p>
TOTAL AMOUNT: ${{.Totals.Subtotal}}<br>
DISCOUNT ({{.Invoice.DiscountRate}}%): -${{.Totals.Discount}}<br>
TAX ({{.Invoice.TaxRate}}%): ${{.Totals.Tax}}<br>
<strong>AMOUNT DUE: ${{.Totals.Total}}</strong>
</p>
<p>
BILLED TO<br>
{{.Invoice.ClientInfo.Name}}<br>
{{.Invoice.ClientInfo.Address}}<br>
{{.Invoice.ClientInfo.City}}<br>
{{.Invoice.ClientInfo.Phone}}
</p>
<p>
PAYMENT METHODS<br>
Bank Name: {{.Invoice.PaymentInfo.BankName}}<br>
Account Number: {{.Invoice.PaymentInfo.AccountNumber}}<br>
PayPal: {{.Invoice.PaymentInfo.PayPal}}
</p>
<p>{{.Invoice.ThankYouMessage}}</p>
<ul>
{{range .Invoice.SocialLinks}}<li><a href="{{.URL}}">{{.Type}}</a></li>{{end}}
</ul>
</body>
</html>
`))
