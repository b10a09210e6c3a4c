package preferences

import (
	"context"
	"slices"
	"strings"
	"unicode"

	"github.com/pennywise/pennywise/internal/storage"
	log "github.com/sirupsen/logrus"
)

const (
	currencyKey   = "pennywise.preferences.currency"
	categoriesKey = "pennywise.preferences.categories"
	themeKey      = "pennywise.preferences.theme"
)

// PreferenceStore persists the user's settings, each under its own key.
// There is no atomic multi-key write; every setter overwrites one value.
type PreferenceStore interface {
	Currency(ctx context.Context) string
	SetCurrency(ctx context.Context, code string) bool
	Categories(ctx context.Context) []string
	AddCategory(ctx context.Context, label string) bool
	RemoveCategory(ctx context.Context, label string) bool
	Theme(ctx context.Context) Theme
	SetTheme(ctx context.Context, theme Theme) bool
}

type PreferenceStoreImpl struct {
	store storage.Store
}

func NewPreferenceStore(store storage.Store) *PreferenceStoreImpl {
	return &PreferenceStoreImpl{store: store}
}

func (p *PreferenceStoreImpl) Currency(ctx context.Context) string {
	code, ok := p.store.Get(ctx, currencyKey)
	if !ok || code == "" {
		return DefaultCurrency
	}
	return code
}

// SetCurrency stores an ISO-like 3-letter code. The code is a display label
// only; no conversion logic hangs off it.
func (p *PreferenceStoreImpl) SetCurrency(ctx context.Context, code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		log.Warnf("rejecting currency code %q: must be 3 letters", code)
		return false
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			log.Warnf("rejecting currency code %q: must be 3 letters", code)
			return false
		}
	}
	return p.store.Set(ctx, currencyKey, code)
}

// Categories returns the ordered category set, seeded with the defaults on
// first use. The fallback category is always part of the result.
func (p *PreferenceStoreImpl) Categories(ctx context.Context) []string {
	categories := storage.ReadJSON[string](ctx, p.store, categoriesKey)
	if len(categories) == 0 {
		return DefaultCategories()
	}
	if !slices.Contains(categories, FallbackCategory) {
		categories = append(categories, FallbackCategory)
	}
	return categories
}

// AddCategory appends a new label; a label that is already present is
// rejected.
func (p *PreferenceStoreImpl) AddCategory(ctx context.Context, label string) bool {
	label = strings.TrimSpace(label)
	if label == "" {
		return false
	}
	categories := p.Categories(ctx)
	if slices.Contains(categories, label) {
		log.Debugf("category %q already present, not adding", label)
		return false
	}
	return storage.WriteJSON(ctx, p.store, categoriesKey, append(categories, label))
}

// RemoveCategory deletes a label from the set. Removing the reserved
// fallback category is rejected and leaves the set unchanged.
func (p *PreferenceStoreImpl) RemoveCategory(ctx context.Context, label string) bool {
	if label == FallbackCategory {
		log.Warnf("refusing to remove the reserved %q category", FallbackCategory)
		return false
	}
	categories := p.Categories(ctx)
	remaining := slices.DeleteFunc(categories, func(c string) bool { return c == label })
	return storage.WriteJSON(ctx, p.store, categoriesKey, remaining)
}

func (p *PreferenceStoreImpl) Theme(ctx context.Context) Theme {
	raw, ok := p.store.Get(ctx, themeKey)
	theme := Theme(raw)
	if !ok || !theme.Valid() {
		return ThemeSystem
	}
	return theme
}

func (p *PreferenceStoreImpl) SetTheme(ctx context.Context, theme Theme) bool {
	if !theme.Valid() {
		log.Warnf("rejecting unknown theme %q", theme)
		return false
	}
	return p.store.Set(ctx, themeKey, string(theme))
}
