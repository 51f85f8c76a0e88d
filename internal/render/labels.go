package render

import "github.com/JonMunkholm/brewresults/internal/core"

var medalLabels = map[core.PlaceKey]string{
	core.PlaceFirst:  "1st Place",
	core.PlaceSecond: "2nd Place",
	core.PlaceThird:  "3rd Place",
}

var shortLabels = map[core.PlaceKey]string{
	core.PlaceFirst:  "1st",
	core.PlaceSecond: "2nd",
	core.PlaceThird:  "3rd",
	core.PlaceHM:     "HM",
}

// medalLabel returns the engraving label for a medal place.
func medalLabel(key core.PlaceKey) (string, bool) {
	l, ok := medalLabels[key]
	return l, ok
}

// shortLabel returns the results-table label for key. Keys without a label
// (unusual Best of Show places) are shown as-is.
func shortLabel(key core.PlaceKey) string {
	if l, ok := shortLabels[key]; ok {
		return l
	}
	return string(key)
}

// brewers returns the brewer cell text, with the co-brewer appended when set.
func brewers(e core.PlacedEntry) string {
	if e.CoBrewer == "" {
		return e.Brewer
	}
	return e.Brewer + " Co-Brewer: " + e.CoBrewer
}
