package render

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/brewresults/internal/core"
)

// GiftCardsHTML renders one table per vendor, in declaration order, with the
// vendor's total amount and per-place counts below it.
func GiftCardsHTML(ledger *core.GiftCardLedger) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lw := &lineWriter{w: w}
		for _, v := range ledger.Vendors {
			if err := ctx.Err(); err != nil {
				return err
			}
			vendorTable(lw, v)
		}
		return lw.err
	})
}

func vendorTable(lw *lineWriter, v *core.VendorLedger) {
	esc := templ.EscapeString[string]

	lw.line("<h2>", esc(v.Vendor), ":</h2>")
	lw.line("<table>")
	lw.line("  <thead>")
	lw.line("    <tr>")
	lw.line("      <th><b>Brewer</b></th>")
	lw.line("      <th><b>Email</b></th>")
	lw.line("      <th><b>City</b></th>")
	lw.line("      <th><b>Gift Card Amount</b></th>")
	lw.line("    </tr>")
	lw.line("  </thead>")
	lw.line("  <tbody>")
	for _, c := range v.Cards() {
		lw.line("    <tr>")
		lw.line("      <td>", esc(c.Brewer), "</td>")
		lw.line("      <td>", esc(c.Email), "</td>")
		lw.line("      <td>", esc(c.City), "</td>")
		lw.line("      <td>", dollars(c.Amount), "</td>")
		lw.line("    </tr>")
	}
	lw.line("  </tbody>")
	lw.line("</table>")

	counts := v.PlaceCounts()
	lw.line("<p>")
	lw.line("Total Amount: ", dollars(v.Total()), "<br>")
	lw.line("Total Places: 1st = ", strconv.Itoa(counts[core.PlaceFirst]),
		", 2nd = ", strconv.Itoa(counts[core.PlaceSecond]),
		", 3rd = ", strconv.Itoa(counts[core.PlaceThird]))
	lw.line("</p>")
}

func dollars(n int) string {
	return "$" + strconv.Itoa(n)
}
