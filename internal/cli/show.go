package cli

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"invoicepad/internal/domain"
)

// NewShowCommand creates the show command: print the current document and
// its derived totals.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current invoice with derived totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			snap := e.sess.Snapshot()
			out := cmd.OutOrStdout()

			if rootOpts.Format == "json" {
				payload := struct {
					Invoice domain.Invoice    `json:"invoice"`
					Totals  map[string]string `json:"totals"`
				}{
					Invoice: snap.Invoice,
					Totals: map[string]string{
						"subtotal": domain.Display(snap.Totals.Subtotal),
						"discount": domain.Display(snap.Totals.Discount),
						"tax":      domain.Display(snap.Totals.Tax),
						"total":    domain.Display(snap.Totals.Total),
					},
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			}

			inv := snap.Invoice
			fmt.Fprintf(out, "%s  no. %s  (issued %s, due %s)\n",
				inv.Title, inv.InvoiceInfo.Number, inv.InvoiceInfo.Issued, inv.InvoiceInfo.Due)
			fmt.Fprintf(out, "%s -> %s\n\n", inv.BusinessInfo.Name, inv.ClientInfo.Name)
			for _, item := range inv.LineItems {
				fmt.Fprintf(out, "  %-40s %g x $%s = $%s\n",
					item.Description, item.Quantity,
					domain.Display(decimal.NewFromFloat(item.Price)),
					domain.Display(item.LineTotal()))
			}
			fmt.Fprintf(out, "\n  subtotal          $%s\n", domain.Display(snap.Totals.Subtotal))
			fmt.Fprintf(out, "  discount (%g%%)    -$%s\n", inv.DiscountRate, domain.Display(snap.Totals.Discount))
			fmt.Fprintf(out, "  tax (%g%%)          $%s\n", inv.TaxRate, domain.Display(snap.Totals.Tax))
			fmt.Fprintf(out, "  amount due        $%s\n", domain.Display(snap.Totals.Total))
			return nil
		},
	}
}
