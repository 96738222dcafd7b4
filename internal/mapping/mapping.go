// Package mapping normalizes loosely typed oracle values into closed enumerations
// and typed defaults.
package mapping

import "github.com/jonathan/career-coach/internal/types"

// Entry maps one source label to a target value.
type Entry[T ~string] struct {
	Label string
	Value T
}

// Mapping is an ordered label table with a default for anything unrecognized.
type Mapping[T ~string] struct {
	Field   string
	Entries []Entry[T]
	Default T
}

// Normalize resolves raw by case-sensitive exact match. Non-string, absent
// and unknown values yield the default.
func (m Mapping[T]) Normalize(raw any) T {
	v, _ := m.Lookup(raw)
	return v
}

// Lookup is Normalize that also reports whether raw matched a label.
func (m Mapping[T]) Lookup(raw any) (T, bool) {
	s, ok := raw.(string)
	if !ok {
		return m.Default, false
	}
	for _, e := range m.Entries {
		if e.Label == s {
			return e.Value, true
		}
	}
	return m.Default, false
}

// Targets returns every value the mapping can produce, default included.
func (m Mapping[T]) Targets() []T {
	out := make([]T, 0, len(m.Entries)+1)
	seen := make(map[T]bool, len(m.Entries)+1)
	for _, e := range m.Entries {
		if !seen[e.Value] {
			seen[e.Value] = true
			out = append(out, e.Value)
		}
	}
	if !seen[m.Default] {
		out = append(out, m.Default)
	}
	return out
}

// DemandLevels maps the oracle's demandLevel labels.
var DemandLevels = Mapping[types.DemandLevel]{
	Field: "demandLevel",
	Entries: []Entry[types.DemandLevel]{
		{Label: "High", Value: types.DemandHigh},
		{Label: "Medium", Value: types.DemandMedium},
		{Label: "Low", Value: types.DemandLow},
	},
	Default: types.DemandMedium,
}

// MarketOutlooks maps the oracle's marketOutlook labels.
var MarketOutlooks = Mapping[types.MarketOutlook]{
	Field: "marketOutlook",
	Entries: []Entry[types.MarketOutlook]{
		{Label: "Positive", Value: types.OutlookPositive},
		{Label: "Neutral", Value: types.OutlookNeutral},
		{Label: "Negative", Value: types.OutlookNegative},
	},
	Default: types.OutlookNeutral,
}

// Number returns raw when it is a non-zero number, def otherwise.
func Number(raw any, def float64) float64 {
	f, ok := raw.(float64)
	if !ok || f == 0 {
		return def
	}
	return f
}

// Strings returns the string elements of raw, or an empty slice when raw is
// not an array. Non-string elements are skipped.
func Strings(raw any) []string {
	arr, ok := raw.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
