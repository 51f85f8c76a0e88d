package core

import (
	"errors"
	"testing"
)

// placed builds a table group with the given placements for allocator tests.
func placed(id string, number int, places ...Placement) *TableGroup {
	return &TableGroup{ID: id, Number: number, Places: places}
}

func win(key PlaceKey, brewer, city string) Placement {
	return Placement{
		Key: key,
		Entry: PlacedEntry{
			Brewer: brewer,
			City:   city,
			Email:  brewer + "@example.com",
		},
	}
}

// standardAmounts mirrors the shipped award table.
func standardAmounts() map[PlaceKey]int {
	return map[PlaceKey]int{PlaceFirst: 15, PlaceSecond: 10, PlaceThird: 5}
}

func defaultPolicy(vendors ...string) AllocationPolicy {
	return AllocationPolicy{Vendors: vendors, Amounts: standardAmounts()}
}

func mustAllocate(t *testing.T, model *ResultModel, policy AllocationPolicy) *GiftCardLedger {
	t.Helper()
	ledger, err := Allocate(model, policy)
	if err != nil {
		t.Fatalf("Allocate() unexpected error: %v", err)
	}
	return ledger
}

func TestAllocate_MissingVendors(t *testing.T) {
	model := &ResultModel{Groups: []*TableGroup{
		placed("1 - Lager", 1, win(PlaceFirst, "Ann Ale", "Toronto")),
		placed(BOSGroupID, 0),
	}}

	_, err := Allocate(model, defaultPolicy())
	if !errors.Is(err, ErrMissingVendorConfiguration) {
		t.Fatalf("error = %v, want ErrMissingVendorConfiguration", err)
	}
}

func TestAllocate_BrewerOverride(t *testing.T) {
	model := &ResultModel{Groups: []*TableGroup{
		placed("1 - Lager", 1, win(PlaceSecond, "Jane Doe", "Pickering")),
		placed(BOSGroupID, 0),
	}}
	policy := defaultPolicy("TB", "X")
	policy.BrewerOverrides = map[string]string{"Jane Doe": "X"}
	policy.CityOverrides = map[string]string{"Pickering": "TB"}

	ledger := mustAllocate(t, model, policy)

	x, _ := ledger.Vendor("X")
	card, ok := x.Card("Jane Doe")
	if !ok {
		t.Fatal("Jane Doe not allocated to vendor X")
	}
	if card.Amount != 10 {
		t.Errorf("Amount = %d, want 10", card.Amount)
	}
	tb, _ := ledger.Vendor("TB")
	if tb.Len() != 0 {
		t.Errorf("TB brewers = %d, want 0", tb.Len())
	}
}

func TestAllocate_CityOverrideCaseInsensitive(t *testing.T) {
	model := &ResultModel{Groups: []*TableGroup{
		placed("1 - Lager", 1,
			win(PlaceFirst, "Ann Ale", "  font   HILL "),
			win(PlaceSecond, "Bob Bock", "Toronto"),
		),
		placed(BOSGroupID, 0),
	}}
	policy := defaultPolicy("TB", "THBA")
	policy.CityOverrides = map[string]string{"Font Hill": "THBA"}

	ledger := mustAllocate(t, model, policy)

	thba, _ := ledger.Vendor("THBA")
	if _, ok := thba.Card("Ann Ale"); !ok {
		t.Error("Ann Ale should be assigned to THBA by city")
	}
	// TB is empty when Bob is placed, so the smallest-group rule picks it.
	tb, _ := ledger.Vendor("TB")
	if _, ok := tb.Card("Bob Bock"); !ok {
		t.Error("Bob Bock should fall back to TB")
	}
}

func TestAllocate_SmallestGroupTieGoesToFirstVendor(t *testing.T) {
	model := &ResultModel{Groups: []*TableGroup{
		placed("1 - Lager", 1,
			win(PlaceFirst, "A", "c"),
			win(PlaceSecond, "B", "c"),
			win(PlaceThird, "C", "c"),
		),
		placed(BOSGroupID, 0),
	}}

	ledger := mustAllocate(t, model, defaultPolicy("V1", "V2"))

	v1, _ := ledger.Vendor("V1")
	v2, _ := ledger.Vendor("V2")
	for _, b := range []string{"A", "C"} {
		if _, ok := v1.Card(b); !ok {
			t.Errorf("%s should be allocated to V1", b)
		}
	}
	if _, ok := v2.Card("B"); !ok {
		t.Error("B should be allocated to V2")
	}
}

func TestAllocate_SkipsBOSAndHM(t *testing.T) {
	model := &ResultModel{Groups: []*TableGroup{
		placed("1 - Lager", 1,
			win(PlaceFirst, "Ann Ale", "Toronto"),
			win(PlaceHM, "Hal Mention", "Toronto"),
		),
		placed(BOSGroupID, 0, win(PlaceFirst, "Bos Winner", "Toronto")),
	}}

	ledger := mustAllocate(t, model, defaultPolicy("TB"))
	tb, _ := ledger.Vendor("TB")

	if tb.Len() != 1 {
		t.Fatalf("TB brewers = %d, want 1", tb.Len())
	}
	if _, ok := tb.Card("Hal Mention"); ok {
		t.Error("HM placements must not earn a gift card")
	}
	if _, ok := tb.Card("Bos Winner"); ok {
		t.Error("BOS placements must not earn a gift card")
	}
}

func TestAllocate_AccumulatesRepeatWinner(t *testing.T) {
	model := &ResultModel{Groups: []*TableGroup{
		placed("1 - Lager", 1, win(PlaceFirst, "Ann Ale", "Toronto")),
		placed("2 - IPA", 2, win(PlaceFirst, "Ann Ale", "Toronto")),
		placed("3 - Stout", 3, win(PlaceThird, "Ann Ale", "Toronto")),
		placed(BOSGroupID, 0),
	}}

	ledger := mustAllocate(t, model, defaultPolicy("TB"))
	tb, _ := ledger.Vendor("TB")
	card, _ := tb.Card("Ann Ale")

	if card.Amount != 35 {
		t.Errorf("Amount = %d, want 35", card.Amount)
	}
	want := []PlaceKey{PlaceFirst, PlaceFirst, PlaceThird}
	if len(card.Places) != len(want) {
		t.Fatalf("Places = %v, want %v", card.Places, want)
	}
	for i := range want {
		if card.Places[i] != want[i] {
			t.Errorf("Places[%d] = %q, want %q", i, card.Places[i], want[i])
		}
	}

	counts := tb.PlaceCounts()
	if counts[PlaceFirst] != 2 || counts[PlaceSecond] != 0 || counts[PlaceThird] != 1 {
		t.Errorf("PlaceCounts = %v, want 1st=2 2nd=0 3rd=1", counts)
	}
	if tb.Total() != 35 {
		t.Errorf("Total = %d, want 35", tb.Total())
	}
}

func TestAllocate_ConfiguredAmounts(t *testing.T) {
	model := &ResultModel{Groups: []*TableGroup{
		placed("1 - Lager", 1,
			win(PlaceFirst, "A", "x"),
			win(PlaceSecond, "B", "x"),
			win(PlaceThird, "C", "x"),
		),
		placed(BOSGroupID, 0),
	}}
	policy := AllocationPolicy{
		Vendors: []string{"TB"},
		Amounts: map[PlaceKey]int{PlaceFirst: 50, PlaceSecond: 25},
	}

	ledger := mustAllocate(t, model, policy)
	tb, _ := ledger.Vendor("TB")

	tests := []struct {
		brewer string
		want   int
	}{
		{"A", 50},
		{"B", 25},
		{"C", 0},
	}
	for _, tt := range tests {
		card, _ := tb.Card(tt.brewer)
		if card.Amount != tt.want {
			t.Errorf("%s Amount = %d, want %d", tt.brewer, card.Amount, tt.want)
		}
	}
}

func TestAllocate_UnknownOverrideVendor(t *testing.T) {
	model := &ResultModel{Groups: []*TableGroup{
		placed("1 - Lager", 1, win(PlaceFirst, "Ann Ale", "Toronto")),
		placed(BOSGroupID, 0),
	}}
	policy := defaultPolicy("TB")
	policy.BrewerOverrides = map[string]string{"Ann Ale": "Nowhere"}

	_, err := Allocate(model, policy)
	if !errors.Is(err, ErrUnknownVendor) {
		t.Fatalf("error = %v, want ErrUnknownVendor", err)
	}
}

func TestAllocate_TotalsIndependentOfGroupOrder(t *testing.T) {
	lager := placed("1 - Lager", 1,
		win(PlaceFirst, "Ann Ale", "Toronto"),
		win(PlaceSecond, "Bob Bock", "Toronto"),
		win(PlaceThird, "Cat Cask", "Toronto"),
	)
	ipa := placed("2 - IPA", 2,
		win(PlaceFirst, "Bob Bock", "Toronto"),
		win(PlaceSecond, "Dan Dunkel", "Toronto"),
		win(PlaceHM, "Eve Export", "Toronto"),
	)
	stout := placed("3 - Stout", 3,
		win(PlaceFirst, "Cat Cask", "Toronto"),
		win(PlaceThird, "Ann Ale", "Toronto"),
	)
	bos := placed(BOSGroupID, 0, win(PlaceFirst, "Ann Ale", "Toronto"))

	forward := &ResultModel{Groups: []*TableGroup{lager, ipa, stout, bos}}
	reverse := &ResultModel{Groups: []*TableGroup{stout, ipa, lager, bos}}

	a := mustAllocate(t, forward, defaultPolicy("TB", "THBA"))
	b := mustAllocate(t, reverse, defaultPolicy("TB", "THBA"))

	if a.Total() != b.Total() {
		t.Errorf("Total: forward = %d, reverse = %d", a.Total(), b.Total())
	}
	if a.Total() != 15+10+5+15+10+15+5 {
		t.Errorf("Total = %d, want %d", a.Total(), 15+10+5+15+10+15+5)
	}

	perBrewer := func(l *GiftCardLedger) map[string]int {
		out := make(map[string]int)
		for _, v := range l.Vendors {
			for _, c := range v.Cards() {
				out[c.Brewer] += c.Amount
			}
		}
		return out
	}
	pa, pb := perBrewer(a), perBrewer(b)
	if len(pa) != len(pb) {
		t.Fatalf("brewers: forward = %v, reverse = %v", pa, pb)
	}
	for brewer, amount := range pa {
		if pb[brewer] != amount {
			t.Errorf("%s: forward = %d, reverse = %d", brewer, amount, pb[brewer])
		}
	}
}

func TestVendorLedger_CardsSortedByName(t *testing.T) {
	model := &ResultModel{Groups: []*TableGroup{
		placed("1 - Lager", 1,
			win(PlaceFirst, "Zed Zwickel", "x"),
			win(PlaceSecond, "Amy Altbier", "x"),
			win(PlaceThird, "Mo Maibock", "x"),
		),
		placed(BOSGroupID, 0),
	}}

	ledger := mustAllocate(t, model, defaultPolicy("TB"))
	tb, _ := ledger.Vendor("TB")
	cards := tb.Cards()

	want := []string{"Amy Altbier", "Mo Maibock", "Zed Zwickel"}
	for i, c := range cards {
		if c.Brewer != want[i] {
			t.Errorf("cards[%d] = %q, want %q", i, c.Brewer, want[i])
		}
	}
}

func TestNormalizeCity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"toronto", "Toronto"},
		{"TORONTO", "Toronto"},
		{"  parry   sound ", "Parry Sound"},
		{"Font Hill", "Font Hill"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeCity(tt.input); got != tt.want {
			t.Errorf("NormalizeCity(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
