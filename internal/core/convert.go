package core

// convert.go turns raw export cells into the values the aggregator works with.
//
// Exports come from spreadsheet tools and competition software, so place and
// header cells may carry Excel formula prefixes or stray quotes, and table
// labels carry HTML-escaped ampersands. Scores are strict: only plain decimals
// are accepted. Every conversion here is a pure function.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// numericRegex matches a plain decimal with optional sign and exponent.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// tableLabelRegex matches "<digits>: <name>". Names may contain letters,
// digits, underscore, '/', '&', ';', '|' and spaces.
var tableLabelRegex = regexp.MustCompile(`^(\d+): ([\p{L}\p{N}_/&;| ]+)$`)

// ToPgNumeric converts a plain decimal string to pgtype.Numeric.
// Surrounding whitespace is ignored. Returns invalid for empty input or any
// other form, including thousands separators, accounting parentheses, quotes
// and formula prefixes.
func ToPgNumeric(s string) pgtype.Numeric {
	s = strings.TrimSpace(s)
	if s == "" || !numericRegex.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}
	return n
}

// ParseScore parses a score cell as a plain decimal number and reports
// whether it is strictly positive. The comparison is exact: "0.000" is not
// positive. A cell that is empty or not a plain decimal yields ErrInvalidScore.
func ParseScore(raw string) (bool, error) {
	n := ToPgNumeric(raw)
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidScore, raw)
	}
	return n.Int.Sign() > 0, nil
}

// TableID is a parsed table label.
type TableID struct {
	Number int
	Name   string
}

// String returns the group identifier "<number> - <name>".
func (t TableID) String() string {
	return fmt.Sprintf("%d - %s", t.Number, t.Name)
}

// ParseTableLabel parses a raw label such as "03: Stouts &amp; Porters" into
// its number (leading zeros dropped) and unescaped name.
func ParseTableLabel(label string) (TableID, error) {
	m := tableLabelRegex.FindStringSubmatch(label)
	if m == nil {
		return TableID{}, fmt.Errorf("%w: %q", ErrMalformedTableLabel, label)
	}

	digits := strings.TrimLeft(m[1], "0")
	if digits == "" {
		digits = "0"
	}
	num, err := strconv.Atoi(digits)
	if err != nil {
		return TableID{}, fmt.Errorf("%w: %q: table number out of range", ErrMalformedTableLabel, label)
	}

	return TableID{
		Number: num,
		Name:   strings.ReplaceAll(m[2], "&amp;", "&"),
	}, nil
}

// MakeHeaderIndex creates a HeaderIndex from a header row.
// Keys are lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, dup := idx[key]; dup {
			continue
		}
		idx[key] = i
	}
	return idx
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}
