package render

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/brewresults/internal/core"
)

// ResultsHTML renders one heading and table per group, BOS included. Every
// place is listed, honourable mentions too.
func ResultsHTML(model *core.ResultModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lw := &lineWriter{w: w}
		for _, g := range model.Groups {
			if err := ctx.Err(); err != nil {
				return err
			}
			resultsTable(lw, g)
		}
		return lw.err
	})
}

func resultsTable(lw *lineWriter, g *core.TableGroup) {
	esc := templ.EscapeString[string]

	if g.IsBOS() {
		lw.line("<h2>", esc(g.ID), ":</h2>")
	} else {
		lw.line("<h2>", esc(g.ID), " (", strconv.Itoa(g.EntriesJudged), " entries):</h2>")
	}
	lw.line(`<figure class="wp-block-table">`)
	lw.line("<table>")
	lw.line("  <thead>")
	lw.line("    <tr>")
	lw.line("      <th><b>Pl.</b></th>")
	lw.line("      <th><b>Brewer(s)</b></th>")
	lw.line("      <th><b>Entry Name</b></th>")
	lw.line("      <th><b>Style</b></th>")
	lw.line("      <th><b>Club</b></th>")
	lw.line("    </tr>")
	lw.line("  </thead>")
	lw.line("  <tbody>")
	for _, p := range g.Places {
		lw.line("    <tr>")
		lw.line("      <td>", esc(shortLabel(p.Key)), "</td>")
		lw.line("      <td>", esc(brewers(p.Entry)), "</td>")
		lw.line("      <td>", esc(p.Entry.EntryName), "</td>")
		lw.line("      <td>", esc(p.Entry.Style), "</td>")
		lw.line("      <td>", esc(p.Entry.Club), "</td>")
		lw.line("    </tr>")
	}
	lw.line("  </tbody>")
	lw.line("</table>")
	lw.line("</figure>")
	lw.line()
}
