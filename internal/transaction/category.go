package transaction

const (
	CategoryFood          = "Food"
	CategoryTransport     = "Transport"
	CategoryShopping      = "Shopping"
	CategoryBills         = "Bills"
	CategoryEntertainment = "Entertainment"
	CategoryHealth        = "Health"
	CategoryEducation     = "Education"
	CategoryGeneral       = "General"
)

// FallbackColor is used for categories outside the known set.
const FallbackColor = "#6366f1"

// Categories lists the known categories in display order.
var Categories = []string{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryBills,
	CategoryEntertainment,
	CategoryHealth,
	CategoryEducation,
	CategoryGeneral,
}

var categoryColors = map[string]string{
	CategoryFood:          "#f59e0b",
	CategoryTransport:     "#3b82f6",
	CategoryShopping:      "#ec4899",
	CategoryBills:         "#8b5cf6",
	CategoryEntertainment: "#10b981",
	CategoryHealth:        "#ef4444",
	CategoryEducation:     "#06b6d4",
	CategoryGeneral:       FallbackColor,
}

// CategoryColor returns the hex color for a category. Unknown categories get FallbackColor.
func CategoryColor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}

	return FallbackColor
}
