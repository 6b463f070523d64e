package query

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Preset is a quick date-range filter.
type Preset string

const (
	PresetToday Preset = "today"
	PresetWeek  Preset = "week"
	PresetMonth Preset = "month"
	PresetClear Preset = "clear"
)

// Presets lists the presets in display order.
var Presets = []Preset{PresetToday, PresetWeek, PresetMonth, PresetClear}

func (p Preset) String() string {
	switch p {
	case PresetToday:
		return "Today"
	case PresetWeek:
		return "This Week"
	case PresetMonth:
		return "This Month"
	case PresetClear:
		return "Clear"
	}

	return "Unknown"
}

func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))

	if slices.Contains(Presets, p) {
		return p, nil
	}

	names := make([]string, len(Presets))
	for i, known := range Presets {
		names[i] = string(known)
	}

	return "", fmt.Errorf("unknown preset %q: want one of %s", s, strings.Join(names, ", "))
}

// ApplyPreset sets the date bounds of q for p relative to today. Search and category
// are left as they were. "week" is the trailing seven days, not the calendar week.
func ApplyPreset(q Query, p Preset, today time.Time) Query {
	end := today.Format(time.DateOnly)

	switch p {
	case PresetToday:
		q.DateFrom, q.DateTo = end, end
	case PresetWeek:
		q.DateFrom, q.DateTo = today.AddDate(0, 0, -7).Format(time.DateOnly), end
	case PresetMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		q.DateFrom, q.DateTo = first.Format(time.DateOnly), end
	case PresetClear:
		q.DateFrom, q.DateTo = "", ""
	}

	return q
}
