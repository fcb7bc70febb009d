// Package urlcodec converts search criteria to and from location query
// parameters. Defaults are omitted when encoding so locations stay short:
// an empty query, the default distance and the "every category" selection
// are all represented by the absence of their parameter.
package urlcodec

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"farmdir/internal/domain"
)

// Parameter names
const (
	ParamQuery      = "q"
	ParamPage       = "page"
	ParamDistance   = "distance"
	ParamCategories = "categories"
)

// BasePath is the path of the farm directory location
const BasePath = "/farms"

// Codec encodes criteria against a category vocabulary
type Codec struct {
	vocab domain.Vocabulary
}

// New creates a codec for vocab. An empty vocabulary falls back to
// domain.DefaultVocabulary.
func New(vocab domain.Vocabulary) *Codec {
	if len(vocab) == 0 {
		vocab = domain.DefaultVocabulary
	}
	return &Codec{vocab: vocab}
}

var defaultCodec = New(domain.DefaultVocabulary)

// Decode decodes values with the default vocabulary
func Decode(values url.Values) domain.Criteria { return defaultCodec.Decode(values) }

// Encode encodes criteria with the default vocabulary
func Encode(c domain.Criteria) url.Values { return defaultCodec.Encode(c) }

// Vocabulary returns the codec's category vocabulary
func (c *Codec) Vocabulary() domain.Vocabulary {
	return c.vocab
}

// Decode reads criteria from query parameters. It never fails: a missing or
// malformed distance yields the default and a missing categories parameter
// selects every category.
func (c *Codec) Decode(values url.Values) domain.Criteria {
	criteria := domain.Criteria{
		Query:    values.Get(ParamQuery),
		Distance: domain.DefaultDistance,
	}

	if raw := values.Get(ParamDistance); raw != "" {
		if d, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && d > 0 {
			criteria.Distance = d
		}
	}

	if !values.Has(ParamCategories) {
		criteria.Categories = c.vocab.All()
		return criteria
	}

	criteria.Categories = c.vocab.None()
	for _, part := range strings.Split(values.Get(ParamCategories), ",") {
		id := domain.Category(strings.TrimSpace(part))
		if c.vocab.Contains(id) {
			criteria.Categories[id] = true
		}
	}
	return criteria
}

// Encode writes criteria as query parameters, omitting defaults
func (c *Codec) Encode(criteria domain.Criteria) url.Values {
	values := url.Values{}
	if criteria.Query != "" {
		values.Set(ParamQuery, criteria.Query)
	}
	if criteria.Distance != domain.DefaultDistance && criteria.Distance > 0 {
		values.Set(ParamDistance, strconv.Itoa(criteria.Distance))
	}
	if n := len(c.vocab.Selected(criteria.Categories)); n > 0 && n < len(c.vocab) {
		values.Set(ParamCategories, c.vocab.Join(criteria.Categories))
	}
	return values
}

// Location renders criteria as a directory location such as
// "/farms?categories=fruits"
func (c *Codec) Location(criteria domain.Criteria) string {
	values := c.Encode(criteria)
	if len(values) == 0 {
		return BasePath
	}
	return BasePath + "?" + values.Encode()
}

// ParseLocation decodes a location. It accepts an absolute URL, a path with
// a query string, or a bare query string.
func (c *Codec) ParseLocation(location string) (domain.Criteria, error) {
	values, err := locationValues(location)
	if err != nil {
		return domain.Criteria{}, err
	}
	return c.Decode(values), nil
}

// Canonical re-encodes a location so equivalent locations compare equal
func (c *Codec) Canonical(location string) (string, error) {
	criteria, err := c.ParseLocation(location)
	if err != nil {
		return "", err
	}
	return c.Location(criteria), nil
}

// Page reads the inbound page parameter; anything but a positive integer
// yields 1
func Page(values url.Values) int {
	page, err := strconv.Atoi(values.Get(ParamPage))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func locationValues(location string) (url.Values, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return url.Values{}, nil
	}
	if !strings.Contains(location, "/") && !strings.Contains(location, "://") {
		location = "?" + strings.TrimPrefix(location, "?")
	}
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("invalid location %q: %w", location, err)
	}
	values, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("invalid query in location %q: %w", location, err)
	}
	return values, nil
}
