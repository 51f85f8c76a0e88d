package core

// validation.go describes the columns an entry export must provide and maps a
// header row onto them. Only header presence is checked here; cell values are
// parsed by the aggregator, which owns the score and table-label rules.

import (
	"fmt"
	"strings"
)

// FieldType represents the expected data type for an export column. It decides
// how Record normalizes the cell.
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumeric
	FieldPlace
)

// FieldSpec describes a single export column.
type FieldSpec struct {
	Name     string    // Column header name (matched case-insensitively)
	Type     FieldType // Expected data type
	Required bool      // Column must exist in the header
}

// HeaderIndex maps column names (lowercase) to their position in the row.
type HeaderIndex map[string]int

// Column names used by the competition entry export.
const (
	ColTable       = "Table"
	ColCategory    = "Category"
	ColSubCategory = "Sub Category"
	ColStyle       = "Style"
	ColBrewerFirst = "Brewer First Name"
	ColBrewerLast  = "Brewer Last Name"
	ColCoBrewer    = "Co Brewer"
	ColEntryName   = "Entry Name"
	ColClub        = "Club"
	ColCity        = "City"
	ColEmail       = "Email Address"
	ColScore       = "Score"
	ColPlace       = "Place"
	ColBestOfShow  = "Best of Show Place"
)

// EntryFieldSpecs lists the columns read from an entry export.
var EntryFieldSpecs = []FieldSpec{
	{Name: ColTable, Type: FieldText, Required: true},
	{Name: ColCategory, Type: FieldText, Required: true},
	{Name: ColSubCategory, Type: FieldText, Required: true},
	{Name: ColStyle, Type: FieldText, Required: true},
	{Name: ColBrewerFirst, Type: FieldText, Required: true},
	{Name: ColBrewerLast, Type: FieldText, Required: true},
	{Name: ColCoBrewer, Type: FieldText, Required: true},
	{Name: ColEntryName, Type: FieldText, Required: true},
	{Name: ColClub, Type: FieldText, Required: true},
	{Name: ColCity, Type: FieldText, Required: true},
	{Name: ColEmail, Type: FieldText, Required: true},
	{Name: ColScore, Type: FieldNumeric, Required: true},
	{Name: ColPlace, Type: FieldPlace, Required: true},
	{Name: ColBestOfShow, Type: FieldPlace, Required: true},
}

// ValidateHeaders checks that every required column exists in the header.
// Returns the header index, or an error wrapping ErrMissingColumn that lists
// every missing column.
func ValidateHeaders(headers []string, specs []FieldSpec) (HeaderIndex, error) {
	idx := MakeHeaderIndex(headers)
	var missing []string

	for _, spec := range specs {
		if !spec.Required {
			continue
		}
		if _, ok := idx[strings.ToLower(spec.Name)]; !ok {
			missing = append(missing, spec.Name)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

// cell returns the raw value of column name in row, or "" when the row is short.
func (h HeaderIndex) cell(row []string, name string) string {
	pos, ok := h[strings.ToLower(name)]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}

// value returns the cell for spec, normalized by its type. Text is kept as
// exported, numeric cells are only trimmed so their parser sees the real
// value, and place codes get spreadsheet artifacts removed.
func (h HeaderIndex) value(row []string, spec FieldSpec) string {
	v := h.cell(row, spec.Name)
	switch spec.Type {
	case FieldNumeric:
		return strings.TrimSpace(v)
	case FieldPlace:
		return CleanCell(v)
	default:
		return v
	}
}

// Record builds an EntryRecord from a data row. line is the 1-indexed source line.
func (h HeaderIndex) Record(row []string, line int) EntryRecord {
	v := make(map[string]string, len(EntryFieldSpecs))
	for _, spec := range EntryFieldSpecs {
		v[spec.Name] = h.value(row, spec)
	}

	return EntryRecord{
		Line:        line,
		Table:       v[ColTable],
		Category:    v[ColCategory],
		SubCategory: v[ColSubCategory],
		Style:       v[ColStyle],
		BrewerFirst: v[ColBrewerFirst],
		BrewerLast:  v[ColBrewerLast],
		CoBrewer:    v[ColCoBrewer],
		EntryName:   v[ColEntryName],
		Club:        v[ColClub],
		City:        v[ColCity],
		Email:       v[ColEmail],
		Score:       v[ColScore],
		Place:       v[ColPlace],
		BestOfShow:  v[ColBestOfShow],
	}
}
