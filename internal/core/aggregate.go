package core

import (
	"fmt"
	"sort"
)

// Skip reasons reported through AggregateOptions.OnSkip.
const (
	SkipNonPositiveScore = "non-positive score"
)

// AggregateOptions customises Aggregate. The zero value is ready to use.
type AggregateOptions struct {
	// OnSkip is called for every record excluded from aggregation.
	OnSkip func(rec EntryRecord, reason string)
}

// groupBuilder accumulates one group during ingestion.
type groupBuilder struct {
	id            TableID
	bos           bool
	entriesJudged int
	places        map[PlaceKey]PlacedEntry
}

func newGroupBuilder(id TableID, bos bool) *groupBuilder {
	return &groupBuilder{
		id:     id,
		bos:    bos,
		places: make(map[PlaceKey]PlacedEntry),
	}
}

// aggregation is the mutable state of a single Aggregate call.
type aggregation struct {
	bos    *groupBuilder
	groups map[string]*groupBuilder
	order  []*groupBuilder // first-seen order, BOS first
}

func newAggregation() *aggregation {
	bos := newGroupBuilder(TableID{Name: BOSGroupID}, true)
	return &aggregation{
		bos:    bos,
		groups: map[string]*groupBuilder{BOSGroupID: bos},
		order:  []*groupBuilder{bos},
	}
}

// table returns the builder for id, creating it on first use.
func (a *aggregation) table(id TableID) *groupBuilder {
	key := id.String()
	if g, ok := a.groups[key]; ok {
		return g
	}
	g := newGroupBuilder(id, false)
	a.groups[key] = g
	a.order = append(a.order, g)
	return g
}

// Aggregate groups entry records into a ResultModel.
//
// Records are processed in input order. A record whose score is not positive
// is skipped. An unparsable score or table label aborts the whole run: no
// partial model is returned. For a repeated place key in the same group the
// later record wins.
func Aggregate(records []EntryRecord, opts AggregateOptions) (*ResultModel, error) {
	agg := newAggregation()

	for _, rec := range records {
		if err := agg.add(rec, opts); err != nil {
			return nil, err
		}
	}

	return agg.build(), nil
}

func (a *aggregation) add(rec EntryRecord, opts AggregateOptions) error {
	positive, err := ParseScore(rec.Score)
	if err != nil {
		return &RowError{Line: rec.Line, Field: ColScore, Value: rec.Score, Err: err}
	}
	if !positive {
		if opts.OnSkip != nil {
			opts.OnSkip(rec, SkipNonPositiveScore)
		}
		return nil
	}

	id, err := ParseTableLabel(rec.Table)
	if err != nil {
		return &RowError{Line: rec.Line, Field: ColTable, Value: rec.Table, Err: err}
	}

	g := a.table(id)
	g.entriesJudged++

	if key, ok := tablePlaceKey(rec.Place); ok {
		g.places[key] = newPlacedEntry(rec)
	}

	if rec.BestOfShow != "" {
		a.bos.places[PlaceKey(rec.BestOfShow)] = newPlacedEntry(rec)
	}

	return nil
}

// tablePlaceKey maps a raw place code to a table place key.
// Only 1, 2, 3 and 5 (HM) are awarded places.
func tablePlaceKey(raw string) (PlaceKey, bool) {
	switch raw {
	case "1", "2", "3":
		return PlaceKey(raw), true
	case rawHonourableMention:
		return PlaceHM, true
	default:
		return "", false
	}
}

func (a *aggregation) build() *ResultModel {
	model := &ResultModel{Groups: make([]*TableGroup, 0, len(a.order))}

	for _, b := range a.order {
		g := &TableGroup{
			Number:        b.id.Number,
			Name:          b.id.Name,
			EntriesJudged: b.entriesJudged,
			Places:        sortedPlaces(b.places),
		}
		if b.bos {
			g.ID = BOSGroupID
		} else {
			g.ID = b.id.String()
		}
		model.Groups = append(model.Groups, g)
	}

	sort.SliceStable(model.Groups, func(i, j int) bool {
		return groupLess(model.Groups[i], model.Groups[j])
	})

	return model
}

// groupLess orders groups by table number, with BOS after every table.
func groupLess(a, b *TableGroup) bool {
	if a.IsBOS() != b.IsBOS() {
		return b.IsBOS()
	}
	return a.Number < b.Number
}

// sortedPlaces returns places ordered by plain string comparison of their
// keys, so "1" < "2" < "3" < "HM".
func sortedPlaces(places map[PlaceKey]PlacedEntry) []Placement {
	out := make([]Placement, 0, len(places))
	for k, e := range places {
		out = append(out, Placement{Key: k, Entry: e})
	}
	sort.Slice(out, func(i, j int) bool {
		return string(out[i].Key) < string(out[j].Key)
	})
	return out
}

// String renders a short summary used in logs and debugging.
func (m *ResultModel) String() string {
	return fmt.Sprintf("ResultModel{groups: %d, placements: %d}", len(m.Groups), m.Placements())
}
