package compatibility

import "time"

// weekdayNames are indexed by time.Weekday (Sunday first)
var weekdayNames = [7]string{
	"domingo",
	"lunes",
	"martes",
	"miércoles",
	"jueves",
	"viernes",
	"sábado",
}

// categoryLabels maps activity category identifiers to the labels shown to operators
var categoryLabels = map[string]string{
	"maintenance": "Mantenimiento",
	"events":      "Eventos",
	"education":   "Educación",
	"sports":      "Deportes",
	"cultural":    "Cultural",
	"nature":      "Naturaleza",
	"other":       "Otro",
}

// WeekdayName returns the lowercase Spanish name of the date's weekday
func WeekdayName(date time.Time) string {
	return weekdayNames[date.Weekday()]
}

// WeekdayNames returns all weekday names, Sunday first
func WeekdayNames() []string {
	names := make([]string, len(weekdayNames))
	copy(names, weekdayNames[:])
	return names
}

// CategoryLabel returns the human-readable label for a category.
// Unknown categories are returned unchanged.
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}
