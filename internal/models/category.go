package models

// Category is one of the fixed expense categories seeded by migrations.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"nombre"`
	Color string `json:"color"`
	Icon  string `json:"icono"`
}

// CategoryStyle is the presentation data the client needs per category.
type CategoryStyle struct {
	Icon         string `json:"icono"`
	Color        string `json:"color"`
	DisplayClass string `json:"clase"`
}

// Seed category ids.
const (
	CategoryFood          int64 = 1
	CategoryTransport     int64 = 2
	CategoryEntertainment int64 = 3
	CategoryHealth        int64 = 4
	CategoryShopping      int64 = 5
	CategoryOther         int64 = 6
)

var categoryStyles = map[int64]CategoryStyle{
	CategoryFood:          {Icon: "restaurant-outline", Color: "#ffd166", DisplayClass: "gasto-item-food"},
	CategoryTransport:     {Icon: "car-outline", Color: "#06d6a0", DisplayClass: "gasto-item-transport"},
	CategoryEntertainment: {Icon: "game-controller-outline", Color: "#118ab2", DisplayClass: "gasto-item-entertainment"},
	CategoryHealth:        {Icon: "medical-outline", Color: "#ef476f", DisplayClass: "gasto-item-health"},
	CategoryShopping:      {Icon: "bag-outline", Color: "#8338ec", DisplayClass: "gasto-item-shopping"},
}

var defaultCategoryStyle = CategoryStyle{
	Icon:         "ellipsis-horizontal-outline",
	Color:        "#999999",
	DisplayClass: "gasto-item-other",
}

// CategoryStyleFor returns the style for a category id, falling back to the
// "other" style for ids outside the seed set.
func CategoryStyleFor(id int64) CategoryStyle {
	if style, ok := categoryStyles[id]; ok {
		return style
	}
	return defaultCategoryStyle
}

// CategoryWithStyle pairs a category with its presentation data.
type CategoryWithStyle struct {
	Category
	Style CategoryStyle `json:"estilo"`
}
