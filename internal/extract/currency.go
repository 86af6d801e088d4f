package extract

import (
	"strconv"
	"strings"
)

// Grouping names a digit-grouping convention detected in a currency string.
type Grouping string

const (
	// GroupingNone means the string carries no comma separators.
	GroupingNone Grouping = "none"
	// GroupingWestern is 3-digit grouping: 25,000,000.
	GroupingWestern Grouping = "western"
	// GroupingSouthAsian is lakhs/crores grouping, an initial group followed
	// by 2-digit groups: 25,00,000.
	GroupingSouthAsian Grouping = "south_asian"
)

// currencyMarkers are stripped before parsing, longest token first so that
// "RS." never leaves a stray dot behind.
var currencyReplacer = strings.NewReplacer("RS.", "", "RS", "", "₹", "", "$", "", " ", "", "\t", "")

// ParseCurrency converts a matched digit-group string into a numeric value.
// It tolerates Western (25,000,000) and South-Asian (25,00,000) grouping —
// both reduce to the same digit string once separators are stripped — and
// strips currency markers and a trailing lone decimal point. The second
// return is false when the string does not reduce to a valid number;
// callers treat absence as a valid outcome, not an error.
func ParseCurrency(raw string) (float64, bool) {
	cleaned := currencyReplacer.Replace(strings.ToUpper(strings.TrimSpace(raw)))
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.Trim(cleaned, ".")
	if cleaned == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// DetectGrouping reports which grouping convention a raw currency string
// uses. The distinction documents the supported input shapes; it does not
// change the parsed value.
func DetectGrouping(raw string) Grouping {
	cleaned := currencyReplacer.Replace(strings.ToUpper(strings.TrimSpace(raw)))
	if i := strings.IndexByte(cleaned, '.'); i >= 0 {
		cleaned = cleaned[:i]
	}
	if !strings.Contains(cleaned, ",") {
		return GroupingNone
	}
	parts := strings.Split(cleaned, ",")
	// Lakhs/crores: 2-digit groups between the leading group and a final
	// 3-digit group, e.g. 25,00,000.
	if len(parts) >= 3 && len(parts[len(parts)-1]) == 3 {
		southAsian := true
		for _, p := range parts[1 : len(parts)-1] {
			if len(p) != 2 {
				southAsian = false
				break
			}
		}
		if southAsian {
			return GroupingSouthAsian
		}
	}
	return GroupingWestern
}
