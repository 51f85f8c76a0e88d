// Package core provides the results transform for competition entry exports.
// This package has no rendering or file-system dependencies and can be used by
// the CLI, tests, or any other frontend.
package core

import "strings"

// BOSGroupID is the identifier of the synthetic Best of Show group.
const BOSGroupID = "BOS"

// PlaceKey identifies an awarded place within a group.
type PlaceKey string

const (
	PlaceFirst  PlaceKey = "1"
	PlaceSecond PlaceKey = "2"
	PlaceThird  PlaceKey = "3"
	PlaceHM     PlaceKey = "HM"
)

// rawHonourableMention is the place code the export uses for an HM.
const rawHonourableMention = "5"

// EntryRecord is one row of the entry export. All values are raw text; the
// aggregator does its own parsing.
type EntryRecord struct {
	Line int // 1-indexed source line, 0 if unknown

	Table       string // e.g. "03: Stouts &amp; Porters"
	Category    string
	SubCategory string
	Style       string
	BrewerFirst string
	BrewerLast  string
	CoBrewer    string
	EntryName   string
	Club        string
	City        string
	Email       string
	Score       string
	Place       string
	BestOfShow  string
}

// BrewerName returns the brewer's full name as shown on awards.
func (r EntryRecord) BrewerName() string {
	return r.BrewerFirst + " " + r.BrewerLast
}

// PlacedEntry is the award-relevant snapshot of a winning record.
type PlacedEntry struct {
	Brewer    string `yaml:"brewer"`
	CoBrewer  string `yaml:"co_brewer"`
	EntryName string `yaml:"entry_name"`
	Style     string `yaml:"style"`
	Club      string `yaml:"club"`
	City      string `yaml:"city"`
	Email     string `yaml:"email"`
}

func newPlacedEntry(r EntryRecord) PlacedEntry {
	return PlacedEntry{
		Brewer:    r.BrewerName(),
		CoBrewer:  r.CoBrewer,
		EntryName: r.EntryName,
		Style:     r.Category + r.SubCategory + ": " + r.Style,
		Club:      r.Club,
		City:      r.City,
		Email:     r.Email,
	}
}

// Placement pairs a place key with the entry that earned it.
type Placement struct {
	Key   PlaceKey    `yaml:"place"`
	Entry PlacedEntry `yaml:"entry"`
}

// TableGroup holds the results of one judging table, or of Best of Show.
type TableGroup struct {
	ID     string `yaml:"id"`     // "<number> - <name>" or BOSGroupID
	Number int    `yaml:"number"` // 0 for BOS
	Name   string `yaml:"name"`

	// EntriesJudged counts positive-score records routed to the table.
	// Always zero for BOS.
	EntriesJudged int `yaml:"entries_judged"`

	// Places is sorted by lexical place-key order.
	Places []Placement `yaml:"places"`
}

// IsBOS reports whether g is the Best of Show group.
func (g *TableGroup) IsBOS() bool {
	return g.ID == BOSGroupID
}

// Place returns the entry at key, if any.
func (g *TableGroup) Place(key PlaceKey) (PlacedEntry, bool) {
	for _, p := range g.Places {
		if p.Key == key {
			return p.Entry, true
		}
	}
	return PlacedEntry{}, false
}

// ResultModel is the aggregated competition result. Groups are ordered by
// ascending table number with BOS last. It must not be mutated after Aggregate
// returns it.
type ResultModel struct {
	Groups []*TableGroup `yaml:"groups"`
}

// Group returns the group with the given identifier.
func (m *ResultModel) Group(id string) (*TableGroup, bool) {
	for _, g := range m.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return nil, false
}

// BOS returns the Best of Show group. It is always present.
func (m *ResultModel) BOS() *TableGroup {
	g, _ := m.Group(BOSGroupID)
	return g
}

// Placements returns the total number of placements across all groups.
func (m *ResultModel) Placements() int {
	n := 0
	for _, g := range m.Groups {
		n += len(g.Places)
	}
	return n
}

// TableName returns the group identifier with its "<number> - " prefix removed.
func TableName(groupID string) string {
	i := strings.Index(groupID, " - ")
	if i <= 0 {
		return groupID
	}
	for _, c := range groupID[:i] {
		if c < '0' || c > '9' {
			return groupID
		}
	}
	return groupID[i+len(" - "):]
}
