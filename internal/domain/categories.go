package domain

import "strings"

// CategoryInfo describes one entry of the category vocabulary
type CategoryInfo struct {
	ID    Category `toml:"id"`
	Label string   `toml:"label"`
}

// Vocabulary is the ordered set of categories the directory knows about.
// Initial state, select-all and location decoding all read from it.
type Vocabulary []CategoryInfo

// DefaultVocabulary is the built-in category list
var DefaultVocabulary = Vocabulary{
	{ID: CategoryFruits, Label: "Fruits"},
	{ID: CategoryVegetables, Label: "Vegetables"},
	{ID: CategoryLegumes, Label: "Legumes"},
	{ID: CategoryNutsSeeds, Label: "Nuts & Seeds"},
	{ID: CategoryGrain, Label: "Grain"},
	{ID: CategoryLivestock, Label: "Livestock"},
	{ID: CategorySeafood, Label: "Seafood"},
	{ID: CategoryEggsAndMilk, Label: "Eggs & Milk"},
	{ID: CategoryCoffeeAndTea, Label: "Coffee & Tea"},
	{ID: CategoryHerbsAndSpices, Label: "Herbs & Spices"},
	{ID: CategoryForestry, Label: "Forestry"},
	{ID: CategoryHoney, Label: "Honey"},
}

// All returns a set with every category selected
func (v Vocabulary) All() CategorySet {
	set := make(CategorySet, len(v))
	for _, c := range v {
		set[c.ID] = true
	}
	return set
}

// None returns a set with no category selected
func (v Vocabulary) None() CategorySet {
	return make(CategorySet, len(v))
}

// Contains reports whether id is part of the vocabulary
func (v Vocabulary) Contains(id Category) bool {
	for _, c := range v {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Label returns the display label for id, falling back to the id itself
func (v Vocabulary) Label(id Category) string {
	for _, c := range v {
		if c.ID == id && c.Label != "" {
			return c.Label
		}
	}
	return string(id)
}

// IsAll reports whether set selects every category of the vocabulary
func (v Vocabulary) IsAll(set CategorySet) bool {
	for _, c := range v {
		if !set[c.ID] {
			return false
		}
	}
	return true
}

// Selected returns the selected categories in vocabulary order
func (v Vocabulary) Selected(set CategorySet) []Category {
	out := make([]Category, 0, len(v))
	for _, c := range v {
		if set[c.ID] {
			out = append(out, c.ID)
		}
	}
	return out
}

// Join renders the selected categories as a comma separated list
func (v Vocabulary) Join(set CategorySet) string {
	selected := v.Selected(set)
	parts := make([]string, len(selected))
	for i, c := range selected {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}

// CategorySet maps a category to whether it is selected
type CategorySet map[Category]bool

// Count returns how many categories are selected
func (s CategorySet) Count() int {
	n := 0
	for _, on := range s {
		if on {
			n++
		}
	}
	return n
}

// Toggle flips the selection of id
func (s CategorySet) Toggle(id Category) {
	s[id] = !s[id]
}

// Clone returns a copy of the set
func (s CategorySet) Clone() CategorySet {
	out := make(CategorySet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Equal compares selected members only; false entries and missing keys are
// the same thing
func (s CategorySet) Equal(other CategorySet) bool {
	if s.Count() != other.Count() {
		return false
	}
	for k, on := range s {
		if on && !other[k] {
			return false
		}
	}
	return true
}
