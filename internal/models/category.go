package models

import "fmt"

// Category classifies a product. It is stored and serialized by name.
type Category string

const (
	CategoryUnknown    Category = "UNKNOWN"
	CategoryCloths     Category = "CLOTHS"
	CategoryFood       Category = "FOOD"
	CategoryHousewares Category = "HOUSEWARES"
	CategoryAutomotive Category = "AUTOMOTIVE"
	CategoryTools      Category = "TOOLS"
)

var categories = map[string]Category{
	string(CategoryUnknown):    CategoryUnknown,
	string(CategoryCloths):     CategoryCloths,
	string(CategoryFood):       CategoryFood,
	string(CategoryHousewares): CategoryHousewares,
	string(CategoryAutomotive): CategoryAutomotive,
	string(CategoryTools):      CategoryTools,
}

// ParseCategory maps a category name to its Category value.
// Unrecognized names are an error so they can never reach the store.
func ParseCategory(name string) (Category, error) {
	category, ok := categories[name]
	if !ok {
		return CategoryUnknown, fmt.Errorf("invalid category: %s", name)
	}
	return category, nil
}
