// Package interchange serializes the invoice to and from its portable JSON
// form. Export and the durable storage slot share the same field names, so a
// previously exported file can always be imported back.
package interchange

import (
	"encoding/json"
	"fmt"

	"invoicepad/internal/domain"
)

// Export serializes the full document for download. The two-space indent and
// the field names are part of the interchange format.
func Export(inv domain.Invoice) ([]byte, error) {
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export invoice: %w", err)
	}
	return data, nil
}

// FileName returns the download name for an export, derived from the invoice
// number.
func FileName(inv domain.Invoice) string {
	return fmt.Sprintf("invoice-%s.json", inv.InvoiceInfo.Number)
}

// Import parses a user-supplied file back into a document. On parse failure
// the error is surfaced and the caller's current document stays untouched.
//
// Beyond structural parseability no validation is performed: a well-formed
// JSON file missing whole sections imports as a partial document (nil slices
// are backfilled so the rest of the editor never nil-checks). Whether import
// should validate semantically is deliberately left open.
func Import(data []byte) (domain.Invoice, error) {
	var inv domain.Invoice
	if err := json.Unmarshal(data, &inv); err != nil {
		return domain.Invoice{}, fmt.Errorf("failed to parse invoice file: %w", err)
	}
	inv.Normalize()
	return inv, nil
}
