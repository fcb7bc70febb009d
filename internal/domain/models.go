package domain

// DefaultDistance is the search radius used when none is given
const DefaultDistance = 50

// ProducePreviewLimit is how many produce items a farm card shows
const ProducePreviewLimit = 6

// Category identifies a produce category
type Category string

// Built-in categories
const (
	CategoryFruits         Category = "fruits"
	CategoryVegetables     Category = "vegetables"
	CategoryLegumes        Category = "legumes"
	CategoryNutsSeeds      Category = "nutsSeeds"
	CategoryGrain          Category = "grain"
	CategoryLivestock      Category = "livestock"
	CategorySeafood        Category = "seafood"
	CategoryEggsAndMilk    Category = "eggsAndMilk"
	CategoryCoffeeAndTea   Category = "coffeeAndTea"
	CategoryHerbsAndSpices Category = "herbsAndSpices"
	CategoryForestry       Category = "forestry"
	CategoryHoney          Category = "honey"
)

// Criteria represents the user's search parameters
type Criteria struct {
	Query      string
	Distance   int
	Categories CategorySet
}

// DefaultCriteria returns an empty query at the default distance with every
// category of vocab selected
func DefaultCriteria(vocab Vocabulary) Criteria {
	return Criteria{
		Distance:   DefaultDistance,
		Categories: vocab.All(),
	}
}

// Clone returns a deep copy
func (c Criteria) Clone() Criteria {
	c.Categories = c.Categories.Clone()
	return c
}

// Equal reports whether two criteria describe the same search
func (c Criteria) Equal(other Criteria) bool {
	return c.Query == other.Query &&
		c.Distance == other.Distance &&
		c.Categories.Equal(other.Categories)
}

// Address is a farm's postal location
type Address struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// String formats the address as "City, State"
func (a Address) String() string {
	switch {
	case a.City == "":
		return a.State
	case a.State == "":
		return a.City
	default:
		return a.City + ", " + a.State
	}
}

// Produce is an item a farm sells
type Produce struct {
	ProduceID string   `json:"produceId"`
	Name      string   `json:"name"`
	Images    []string `json:"images"`
}

// Farm is a single directory entry
type Farm struct {
	FarmID       string    `json:"farmId"`
	Name         string    `json:"name"`
	Address      Address   `json:"address"`
	OpeningHours string    `json:"openingHours,omitempty"`
	Description  string    `json:"description,omitempty"`
	Images       []string  `json:"images"`
	Produce      []Produce `json:"produce"`
}

// ProducePreview returns the produce shown on the farm card
func (f Farm) ProducePreview() []Produce {
	if len(f.Produce) <= ProducePreviewLimit {
		return f.Produce
	}
	return f.Produce[:ProducePreviewLimit]
}

// Pagination describes where a page sits in the full result set
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// SearchPage is one page of search results
type SearchPage struct {
	Farms      []Farm     `json:"farms"`
	Pagination Pagination `json:"pagination"`
}

// HasMore reports whether another page can be requested after this one
func (p SearchPage) HasMore() bool {
	return p.Pagination.CurrentPage < p.Pagination.TotalPages && len(p.Farms) > 0
}
