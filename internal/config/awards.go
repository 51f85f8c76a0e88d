package config

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/brewresults/internal/core"
)

//go:embed default_awards.yaml
var defaultAwardsFS embed.FS

// ErrInvalidAwards is returned when an award table fails validation.
var ErrInvalidAwards = errors.New("invalid award table")

// Awards is the gift card award table.
type Awards struct {
	Vendors []string              `yaml:"vendors"`
	Amounts map[core.PlaceKey]int `yaml:"amounts"`
	Brewers map[string]string     `yaml:"brewers"`
	Cities  map[string][]string   `yaml:"cities"`
}

// DefaultAwards returns the embedded award table.
func DefaultAwards() (*Awards, error) {
	data, err := defaultAwardsFS.ReadFile("default_awards.yaml")
	if err != nil {
		return nil, fmt.Errorf("read default awards: %w", err)
	}
	return ParseAwards(data)
}

// ParseAwards decodes a YAML award table.
func ParseAwards(data []byte) (*Awards, error) {
	var a Awards
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAwards, err)
	}
	return &a, nil
}

// LoadAwards builds the award table for a run. Fields set in the file at path
// replace the embedded defaults; a non-empty vendors list replaces both.
func LoadAwards(path string, vendors []string) (*Awards, error) {
	awards, err := DefaultAwards()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read awards file: %w", err)
		}
		file, err := ParseAwards(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		awards.merge(file)
	}

	if len(vendors) > 0 {
		awards.Vendors = append([]string(nil), vendors...)
	}

	if err := awards.Validate(); err != nil {
		return nil, err
	}
	return awards, nil
}

func (a *Awards) merge(other *Awards) {
	if other.Vendors != nil {
		a.Vendors = other.Vendors
	}
	if other.Amounts != nil {
		a.Amounts = other.Amounts
	}
	if other.Brewers != nil {
		a.Brewers = other.Brewers
	}
	if other.Cities != nil {
		a.Cities = other.Cities
	}
}

// Validate checks amounts and overrides and reports every problem found.
// Override vendors must be declared; an empty vendor list is left for the
// allocator to reject.
func (a *Awards) Validate() error {
	var errs []string

	for _, key := range sortedKeys(a.Amounts) {
		switch key {
		case core.PlaceFirst, core.PlaceSecond, core.PlaceThird:
		default:
			errs = append(errs, fmt.Sprintf("amounts key %q must be 1, 2 or 3", key))
		}
		if a.Amounts[key] < 0 {
			errs = append(errs, fmt.Sprintf("amount for place %s (%d) must be >= 0", key, a.Amounts[key]))
		}
	}

	declared := make(map[string]bool, len(a.Vendors))
	for _, v := range a.Vendors {
		declared[v] = true
	}

	var unknown []string
	for _, brewer := range sortedKeys(a.Brewers) {
		if v := a.Brewers[brewer]; !declared[v] {
			unknown = append(unknown, fmt.Sprintf("brewer %q -> %q", brewer, v))
		}
	}

	owner := make(map[string]string)
	for _, vendor := range sortedKeys(a.Cities) {
		if !declared[vendor] {
			unknown = append(unknown, fmt.Sprintf("cities -> %q", vendor))
		}
		for _, city := range a.Cities[vendor] {
			norm := core.NormalizeCity(city)
			if prev, ok := owner[norm]; ok && prev != vendor {
				errs = append(errs, fmt.Sprintf("city %q listed under both %q and %q", city, prev, vendor))
				continue
			}
			owner[norm] = vendor
		}
	}

	var problems []error
	if len(unknown) > 0 && len(a.Vendors) > 0 {
		problems = append(problems, fmt.Errorf("%w: %s", core.ErrUnknownVendor, strings.Join(unknown, ", ")))
	}
	if len(errs) > 0 {
		problems = append(problems, fmt.Errorf("%w:\n  - %s", ErrInvalidAwards, strings.Join(errs, "\n  - ")))
	}
	return errors.Join(problems...)
}

// Policy converts the award table into an allocation policy.
func (a *Awards) Policy() core.AllocationPolicy {
	policy := core.AllocationPolicy{
		Vendors:         append([]string(nil), a.Vendors...),
		Amounts:         make(map[core.PlaceKey]int, len(a.Amounts)),
		BrewerOverrides: make(map[string]string, len(a.Brewers)),
		CityOverrides:   make(map[string]string),
	}
	for k, v := range a.Amounts {
		policy.Amounts[k] = v
	}
	for brewer, vendor := range a.Brewers {
		policy.BrewerOverrides[brewer] = vendor
	}
	for vendor, cities := range a.Cities {
		for _, city := range cities {
			policy.CityOverrides[city] = vendor
		}
	}
	return policy
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
