// Package pricing computes a line item's unit price from its base price,
// the item's default options, and caller-supplied overrides.
package pricing

import (
	"fmt"
	"sort"

	"marigold-suites/internal/domain"
)

// Quote is the priced outcome of a customization pass.
type Quote struct {
	UnitPrice      float64
	Customizations []string
}

// UnitPrice applies defaults first, then caller overrides. Overriding a
// category removes that category's default (price and description)
// before the selection is applied. Unknown option keys are ignored.
func UnitPrice(item domain.MenuItem, overrides []domain.CustomizationSelection) Quote {
	price := item.Price

	overridden := make(map[domain.CustomizationCategory]bool, len(overrides))
	for _, sel := range overrides {
		overridden[sel.Category] = true
	}

	var descriptions []string
	for _, category := range sortedCategories(item.Defaults) {
		key := item.Defaults[category]
		opt, ok := item.Options[category][key]
		if !ok {
			continue
		}
		price += opt.PriceModifier
		if overridden[category] {
			// The caller replaces this default below.
			price -= opt.PriceModifier
			continue
		}
		descriptions = append(descriptions, opt.Name)
	}

	for _, sel := range overrides {
		options := item.Options[sel.Category]
		if options == nil {
			continue
		}
		if sel.Category == domain.CategoryHalfToppings && len(sel.Options) == 2 {
			// Averaging needs both keys valid; with an unknown key the
			// valid selections fall through below at full modifier.
			first, okFirst := options[sel.Options[0]]
			second, okSecond := options[sel.Options[1]]
			if okFirst && okSecond {
				price += (first.PriceModifier + second.PriceModifier) / 2
				descriptions = append(descriptions, fmt.Sprintf("Half %s / Half %s", first.Name, second.Name))
				continue
			}
		}
		for _, key := range sel.Options {
			opt, ok := options[key]
			if !ok {
				continue
			}
			price += opt.PriceModifier
			descriptions = append(descriptions, opt.Name)
		}
	}

	return Quote{UnitPrice: price, Customizations: descriptions}
}

// HasCustomizations reports whether the pricing pass can change anything
// for this line; callers skip the engine entirely when it cannot.
func HasCustomizations(item domain.MenuItem, overrides []domain.CustomizationSelection) bool {
	return len(item.Defaults) > 0 || len(overrides) > 0
}

func sortedCategories(defaults map[domain.CustomizationCategory]string) []domain.CustomizationCategory {
	categories := make([]domain.CustomizationCategory, 0, len(defaults))
	for c := range defaults {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories
}
