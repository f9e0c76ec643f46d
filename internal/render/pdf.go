// Package render draws an invoice as a PDF. This backs the editor's print
// path: the host asks for a PDF of the current document and hands it to
// whatever viewer or printer it has.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"invoicepad/internal/domain"
	"invoicepad/internal/editor"
)

const (
	pageMargin  = 15.0
	rowHeight   = 8.0
	labelColWid = 45.0
)

// PDF renders the document and its derived totals into w.
func PDF(inv domain.Invoice, w io.Writer) error {
	totals := inv.Totals()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 2*pageMargin

	// Header: title on the left, logo and business block on the right.
	pdf.SetFont("Helvetica", "", 28)
	pdf.CellFormat(contentWidth/2, 14, inv.Title, "", 0, "L", false, 0, "")

	logoBottom := pdf.GetY()
	if png, ok := logoPNG(inv.Logo); ok {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(png))
		pdf.ImageOptions("logo", pageWidth-pageMargin-40, pageMargin, 40, 0, false, opts, 0, "")
		logoBottom = pageMargin + 22
	}
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []struct{ label, value string }{
		{"INVOICE NO.", inv.InvoiceInfo.Number},
		{"ISSUED:", inv.InvoiceInfo.Issued},
		{"DUE:", inv.InvoiceInfo.Due},
	} {
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(30, 6, line.label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(contentWidth/2-30, 6, line.value, "", 1, "L", false, 0, "")
	}

	businessY := logoBottom + 4
	pdf.SetXY(pageWidth/2, businessY)
	for _, line := range []string{
		inv.BusinessInfo.Name,
		inv.BusinessInfo.Address,
		inv.BusinessInfo.City,
		inv.BusinessInfo.Website,
		inv.BusinessInfo.Email,
		inv.BusinessInfo.Phone,
	} {
		pdf.CellFormat(contentWidth/2, 5, line, "", 2, "R", false, 0, "")
	}
	pdf.Ln(12)

	// Line item table.
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(128, 128, 128)
	descWidth := contentWidth - 3*30
	pdf.CellFormat(descWidth, rowHeight, "DESCRIPTION", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, rowHeight, "QTY", "B", 0, "C", false, 0, "")
	pdf.CellFormat(30, rowHeight, "PRICE", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, rowHeight, "TOTAL", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, item := range inv.LineItems {
		pdf.CellFormat(descWidth, rowHeight, item.Description, "B", 0, "L", false, 0, "")
		pdf.CellFormat(30, rowHeight, trimFloat(item.Quantity), "B", 0, "C", false, 0, "")
		pdf.CellFormat(30, rowHeight, "$"+domain.Display(decimal.NewFromFloat(item.Price)), "B", 0, "R", false, 0, "")
		pdf.CellFormat(30, rowHeight, "$"+domain.Display(item.LineTotal()), "B", 1, "R", false, 0, "")
	}
	pdf.Ln(8)

	// Billed-to block on the left, totals on the right.
	blockTop := pdf.GetY()
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(contentWidth/2, 6, "BILLED TO", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, line := range []string{
		inv.ClientInfo.Name,
		inv.ClientInfo.Address,
		inv.ClientInfo.City,
		inv.ClientInfo.Phone,
	} {
		pdf.CellFormat(contentWidth/2, 5, line, "", 1, "L", false, 0, "")
	}

	pdf.SetY(blockTop)
	totalRows := []struct{ label, value string }{
		{"TOTAL AMOUNT", "$" + domain.Display(totals.Subtotal)},
		{fmt.Sprintf("DISCOUNT (%s%%)", trimFloat(inv.DiscountRate)), "-$" + domain.Display(totals.Discount)},
		{fmt.Sprintf("TAX (%s%%)", trimFloat(inv.TaxRate)), "$" + domain.Display(totals.Tax)},
	}
	for _, row := range totalRows {
		pdf.SetX(pageWidth/2 + 10)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(labelColWid, 6, row.label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(contentWidth/2-10-labelColWid, 6, row.value, "", 1, "R", false, 0, "")
	}
	pdf.SetX(pageWidth/2 + 10)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(labelColWid, 8, "AMOUNT DUE", "T", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(contentWidth/2-10-labelColWid, 8, "$"+domain.Display(totals.Total), "T", 1, "R", false, 0, "")
	pdf.Ln(10)

	// Payment methods.
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(contentWidth, 6, "PAYMENT METHODS", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []struct{ label, value string }{
		{"BANK NAME:", inv.PaymentInfo.BankName},
		{"ACCOUNT NUMBER:", inv.PaymentInfo.AccountNumber},
		{"PAYPAL:", inv.PaymentInfo.PayPal},
	} {
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(labelColWid, 5, line.label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(contentWidth-labelColWid, 5, line.value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(14)

	// Footer.
	pdf.SetFont("Helvetica", "", 18)
	pdf.CellFormat(contentWidth, 10, inv.ThankYouMessage, "", 1, "C", false, 0, "")
	if len(inv.SocialLinks) > 0 {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(128, 128, 128)
		for _, link := range inv.SocialLinks {
			pdf.CellFormat(contentWidth, 4, link.URL, "", 1, "C", false, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

// logoPNG extracts the embedded logo and re-encodes it as PNG for gofpdf.
// Any unreadable logo (imported documents can carry arbitrary data URIs) is
// skipped entirely: gofpdf errors are sticky, so a corrupt image must never
// reach it, and the rest of the document still prints.
func logoPNG(dataURI string) ([]byte, bool) {
	if dataURI == "" {
		return nil, false
	}
	raw, err := editor.DecodeLogo(dataURI)
	if err != nil {
		return nil, false
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, false
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

// trimFloat formats a quantity or rate the way the editor shows it: no
// trailing zeros, no decimal point for whole numbers.
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
