package preferences

// Theme selects the UI color scheme.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// FallbackCategory is the reserved category label. It is always present in
// the category set, cannot be removed, and absorbs transactions whose
// category is missing or unknown.
const FallbackCategory = "Other"

// DefaultCurrency is used until the user picks one.
const DefaultCurrency = "USD"

// DefaultCategories returns the seed category set for a fresh installation.
func DefaultCategories() []string {
	return []string{
		"Food",
		"Transport",
		"Housing",
		"Utilities",
		"Entertainment",
		"Health",
		"Shopping",
		"Education",
		"Salary",
		FallbackCategory,
	}
}
