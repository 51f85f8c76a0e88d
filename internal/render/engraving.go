package render

import (
	"io"
	"strings"

	"github.com/JonMunkholm/brewresults/internal/core"
)

// Engravings renders the medal engraving list. Each group gets a "*<id>:*"
// heading followed by one block per 1st to 3rd place:
//
//	<year> - 1st Place
//	<table name>
//	<brewer>
//	<co-brewer, or entry name when there is none>
//
// Honourable mentions and any other non-medal keys are not engraved.
func Engravings(model *core.ResultModel, year string) string {
	var b strings.Builder
	for _, g := range model.Groups {
		b.WriteString("*" + g.ID + ":*\n\n")
		for _, p := range g.Places {
			label, ok := medalLabel(p.Key)
			if !ok {
				continue
			}
			b.WriteString(year + " - " + label + "\n")
			b.WriteString(core.TableName(g.ID) + "\n")
			b.WriteString(p.Entry.Brewer + "\n")
			if p.Entry.CoBrewer != "" {
				b.WriteString(p.Entry.CoBrewer + "\n\n")
			} else {
				b.WriteString(p.Entry.EntryName + "\n\n")
			}
		}
	}
	return b.String()
}

// WriteEngravings writes Engravings to w.
func WriteEngravings(w io.Writer, model *core.ResultModel, year string) error {
	_, err := io.WriteString(w, Engravings(model, year))
	return err
}
