// Package fixture implements the farm search endpoint against an in-memory
// dataset. It backs the farmdir-fixture development server and the HTTP
// tests of the search client.
package fixture

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"farmdir/internal/domain"
)

//go:embed farms.json
var defaultDataset []byte

// Farm is a dataset entry: the public farm record plus the attributes the
// fixture uses for filtering
type Farm struct {
	domain.Farm
	DistanceKm float64           `json:"distanceKm"`
	Categories []domain.Category `json:"categories"`
}

// Dataset is the fixture's farm collection and the static assets it serves
type Dataset struct {
	Farms  []Farm   `json:"farms"`
	Assets []string `json:"assets"`

	vocab  domain.Vocabulary
	assets map[string]bool
}

// Default returns the embedded dataset
func Default() *Dataset {
	ds, err := Parse(defaultDataset, domain.DefaultVocabulary)
	if err != nil {
		panic(fmt.Sprintf("embedded fixture dataset is invalid: %v", err))
	}
	return ds
}

// Load reads a dataset file
func Load(path string, vocab domain.Vocabulary) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return Parse(data, vocab)
}

// Parse decodes a dataset document
func Parse(data []byte, vocab domain.Vocabulary) (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	ids := make(map[string]bool, len(ds.Farms))
	for _, f := range ds.Farms {
		if f.FarmID == "" {
			return nil, fmt.Errorf("farm %q has no farmId", f.Name)
		}
		if ids[f.FarmID] {
			return nil, fmt.Errorf("duplicate farmId %q", f.FarmID)
		}
		ids[f.FarmID] = true
	}
	ds.init(vocab)
	return &ds, nil
}

// Synthetic builds a dataset of n generated farms, useful for exercising
// pagination
func Synthetic(n int, vocab domain.Vocabulary) *Dataset {
	if len(vocab) == 0 {
		vocab = domain.DefaultVocabulary
	}
	ds := &Dataset{Farms: make([]Farm, 0, n)}
	for i := 0; i < n; i++ {
		cat := vocab[i%len(vocab)]
		produce := make([]domain.Produce, 0, 1+i%8)
		for j := 0; j < cap(produce); j++ {
			produce = append(produce, domain.Produce{
				ProduceID: fmt.Sprintf("p-%d", j+1),
				Name:      fmt.Sprintf("%s item %d", cat.Label, j+1),
			})
		}
		ds.Farms = append(ds.Farms, Farm{
			Farm: domain.Farm{
				FarmID:  fmt.Sprintf("synthetic-%03d", i+1),
				Name:    fmt.Sprintf("Farm %03d", i+1),
				Address: domain.Address{City: "Springfield", State: "OR"},
				Produce: produce,
			},
			DistanceKm: float64(i % 100),
			Categories: []domain.Category{cat.ID},
		})
	}
	ds.init(vocab)
	return ds
}

func (ds *Dataset) init(vocab domain.Vocabulary) {
	if len(vocab) == 0 {
		vocab = domain.DefaultVocabulary
	}
	ds.vocab = vocab
	ds.assets = make(map[string]bool, len(ds.Assets))
	for _, a := range ds.Assets {
		ds.assets[strings.TrimPrefix(a, "/")] = true
	}
}

// HasAsset reports whether the named static asset exists
func (ds *Dataset) HasAsset(name string) bool {
	return ds.assets[strings.TrimPrefix(name, "/")]
}

// Query filters, orders and paginates the dataset. Farms are ordered by
// distance, then name.
func (ds *Dataset) Query(criteria domain.Criteria, page, perPage int) domain.SearchPage {
	if perPage < 1 {
		perPage = 20
	}
	if page < 1 {
		page = 1
	}

	matches := make([]Farm, 0, len(ds.Farms))
	for _, f := range ds.Farms {
		if ds.matches(f, criteria) {
			matches = append(matches, f)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].DistanceKm != matches[j].DistanceKm {
			return matches[i].DistanceKm < matches[j].DistanceKm
		}
		return matches[i].Name < matches[j].Name
	})

	total := len(matches)
	result := domain.SearchPage{
		Farms: []domain.Farm{},
		Pagination: domain.Pagination{
			CurrentPage:  page,
			TotalPages:   int(math.Ceil(float64(total) / float64(perPage))),
			TotalItems:   total,
			ItemsPerPage: perPage,
		},
	}
	start := (page - 1) * perPage
	if start >= total {
		return result
	}
	end := min(start+perPage, total)
	for _, f := range matches[start:end] {
		result.Farms = append(result.Farms, f.Farm)
	}
	return result
}

func (ds *Dataset) matches(f Farm, criteria domain.Criteria) bool {
	distance := criteria.Distance
	if distance <= 0 {
		distance = domain.DefaultDistance
	}
	if f.DistanceKm > float64(distance) {
		return false
	}

	if criteria.Categories.Count() > 0 && !ds.vocab.IsAll(criteria.Categories) {
		found := false
		for _, c := range f.Categories {
			if criteria.Categories[c] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	q := strings.ToLower(strings.TrimSpace(criteria.Query))
	if q == "" {
		return true
	}
	fields := []string{f.Name, f.Description, f.Address.City, f.Address.State}
	for _, p := range f.Produce {
		fields = append(fields, p.Name)
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
