package core

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AllocationPolicy is the run-specific gift card configuration.
type AllocationPolicy struct {
	// Vendors in declaration order. Ties in the smallest-group fallback go to
	// the earliest vendor.
	Vendors []string

	// Amounts maps a place key to its gift card value. Missing keys are worth 0.
	Amounts map[PlaceKey]int

	// BrewerOverrides maps an exact brewer full name to a vendor.
	BrewerOverrides map[string]string

	// CityOverrides maps a city to a vendor. Keys are compared after
	// NormalizeCity, so any capitalisation may be used.
	CityOverrides map[string]string
}

// GiftCard is one brewer's award from one vendor.
type GiftCard struct {
	Brewer string
	Amount int
	City   string
	Email  string
	Places []PlaceKey // in the order earned; may repeat
}

// VendorLedger holds the gift cards issued by one vendor.
type VendorLedger struct {
	Vendor string
	cards  map[string]*GiftCard
}

// Len returns the number of distinct brewers assigned to the vendor.
func (v *VendorLedger) Len() int {
	return len(v.cards)
}

// Card returns the gift card for brewer.
func (v *VendorLedger) Card(brewer string) (GiftCard, bool) {
	c, ok := v.cards[brewer]
	if !ok {
		return GiftCard{}, false
	}
	return *c, true
}

// Cards returns the vendor's gift cards sorted by brewer name.
func (v *VendorLedger) Cards() []GiftCard {
	out := make([]GiftCard, 0, len(v.cards))
	for _, c := range v.cards {
		cp := *c
		cp.Places = append([]PlaceKey(nil), c.Places...)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Brewer < out[j].Brewer
	})
	return out
}

// Total returns the sum of all gift card amounts for the vendor.
func (v *VendorLedger) Total() int {
	total := 0
	for _, c := range v.cards {
		total += c.Amount
	}
	return total
}

// PlaceCounts counts place-key occurrences across the vendor's brewers.
func (v *VendorLedger) PlaceCounts() map[PlaceKey]int {
	counts := make(map[PlaceKey]int)
	for _, c := range v.cards {
		for _, p := range c.Places {
			counts[p]++
		}
	}
	return counts
}

func (v *VendorLedger) add(e PlacedEntry, key PlaceKey, amount int) {
	if c, ok := v.cards[e.Brewer]; ok {
		c.Amount += amount
		c.Places = append(c.Places, key)
		return
	}
	v.cards[e.Brewer] = &GiftCard{
		Brewer: e.Brewer,
		Amount: amount,
		City:   e.City,
		Email:  e.Email,
		Places: []PlaceKey{key},
	}
}

// GiftCardLedger is the result of Allocate. Vendors keep declaration order.
type GiftCardLedger struct {
	Vendors []*VendorLedger
}

// Vendor returns the ledger for vendor.
func (l *GiftCardLedger) Vendor(vendor string) (*VendorLedger, bool) {
	for _, v := range l.Vendors {
		if v.Vendor == vendor {
			return v, true
		}
	}
	return nil, false
}

// Total returns the sum of all gift cards across vendors.
func (l *GiftCardLedger) Total() int {
	total := 0
	for _, v := range l.Vendors {
		total += v.Total()
	}
	return total
}

// Allocate assigns a gift card for every table placement in model, skipping
// Best of Show and honourable mentions.
//
// The vendor for a placement is the brewer override if one exists, otherwise
// the city override, otherwise the vendor with the fewest distinct brewers so
// far (earliest declared vendor on a tie).
func Allocate(model *ResultModel, policy AllocationPolicy) (*GiftCardLedger, error) {
	if len(policy.Vendors) == 0 {
		return nil, ErrMissingVendorConfiguration
	}

	ledger := &GiftCardLedger{Vendors: make([]*VendorLedger, 0, len(policy.Vendors))}
	byName := make(map[string]*VendorLedger, len(policy.Vendors))
	for _, name := range policy.Vendors {
		if _, dup := byName[name]; dup {
			continue
		}
		v := &VendorLedger{Vendor: name, cards: make(map[string]*GiftCard)}
		ledger.Vendors = append(ledger.Vendors, v)
		byName[name] = v
	}

	cities := normalizeCityOverrides(policy.CityOverrides)

	for _, g := range model.Groups {
		if g.IsBOS() {
			continue
		}
		for _, p := range g.Places {
			if p.Key == PlaceHM {
				continue
			}

			vendor, err := resolveVendor(ledger, byName, policy.BrewerOverrides, cities, p.Entry)
			if err != nil {
				return nil, err
			}
			vendor.add(p.Entry, p.Key, policy.Amounts[p.Key])
		}
	}

	return ledger, nil
}

func resolveVendor(
	ledger *GiftCardLedger,
	byName map[string]*VendorLedger,
	brewers map[string]string,
	cities map[string]string,
	e PlacedEntry,
) (*VendorLedger, error) {
	name, ok := brewers[e.Brewer]
	if !ok {
		name, ok = cities[NormalizeCity(e.City)]
	}
	if ok {
		v, known := byName[name]
		if !known {
			return nil, fmt.Errorf("%w: %q (assigned to %s)", ErrUnknownVendor, name, e.Brewer)
		}
		return v, nil
	}
	return smallestVendor(ledger), nil
}

// smallestVendor returns the vendor with the fewest distinct brewers.
// The strict comparison keeps the earliest vendor on a tie.
func smallestVendor(ledger *GiftCardLedger) *VendorLedger {
	smallest := ledger.Vendors[0]
	for _, v := range ledger.Vendors[1:] {
		if v.Len() < smallest.Len() {
			smallest = v
		}
	}
	return smallest
}

// NormalizeCity lowercases city and capitalises each word, collapsing runs of
// whitespace: " font  HILL " becomes "Font Hill".
func NormalizeCity(city string) string {
	words := strings.Fields(strings.ToLower(city))
	caser := cases.Title(language.English)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}

func normalizeCityOverrides(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for city, vendor := range in {
		out[NormalizeCity(city)] = vendor
	}
	return out
}
