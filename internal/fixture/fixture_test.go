package fixture

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmdir/internal/domain"
	"farmdir/internal/logging"
)

func allCriteria() domain.Criteria {
	return domain.DefaultCriteria(domain.DefaultVocabulary)
}

func TestDefaultDatasetLoads(t *testing.T) {
	ds := Default()
	require.Len(t, ds.Farms, 12)
	assert.True(t, ds.HasAsset("farms/green-acres.jpg"))
	assert.True(t, ds.HasAsset("/produce/eggs.jpg"))
	assert.False(t, ds.HasAsset("farms/tide-line.jpg"))
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	_, err := Parse([]byte(`{"farms":[{"farmId":"a","name":"A"},{"farmId":"a","name":"B"}]}`), nil)
	assert.ErrorContains(t, err, "duplicate farmId")

	_, err = Parse([]byte(`{"farms":[{"name":"A"}]}`), nil)
	assert.ErrorContains(t, err, "no farmId")
}

func TestQueryFiltersByDistance(t *testing.T) {
	ds := Default()
	c := allCriteria()
	c.Distance = 10

	page := ds.Query(c, 1, 20)
	names := make([]string, len(page.Farms))
	for i, f := range page.Farms {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"Sunrise Dairy", "Green Acres", "Hillside Orchard", "Riverbend Herbs"}, names)
}

func TestQueryFiltersByCategory(t *testing.T) {
	ds := Default()
	c := allCriteria()
	c.Distance = 500
	c.Categories = domain.CategorySet{domain.CategoryEggsAndMilk: true}

	page := ds.Query(c, 1, 20)
	require.Len(t, page.Farms, 2)
	for _, f := range page.Farms {
		assert.Contains(t, []string{"f-001", "f-011"}, f.FarmID)
	}
}

func TestQueryMatchesProduceNames(t *testing.T) {
	ds := Default()
	c := allCriteria()
	c.Query = "PEARS"

	page := ds.Query(c, 1, 20)
	require.Len(t, page.Farms, 1)
	assert.Equal(t, "Hillside Orchard", page.Farms[0].Name)
}

func TestQueryPaginates(t *testing.T) {
	ds := Synthetic(45, nil)
	c := allCriteria()
	c.Distance = 1000

	first := ds.Query(c, 1, 20)
	assert.Len(t, first.Farms, 20)
	assert.Equal(t, domain.Pagination{CurrentPage: 1, TotalPages: 3, TotalItems: 45, ItemsPerPage: 20}, first.Pagination)
	assert.True(t, first.HasMore())

	last := ds.Query(c, 3, 20)
	assert.Len(t, last.Farms, 5)
	assert.False(t, last.HasMore())

	beyond := ds.Query(c, 4, 20)
	assert.Empty(t, beyond.Farms)
	assert.NotNil(t, beyond.Farms)
}

func newTestServer(t *testing.T, ds *Dataset) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(ds, 20, logging.Discard()))
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchEndpoint(t *testing.T) {
	srv := newTestServer(t, Default())

	resp, err := http.Get(srv.URL + "/api/farms/search?q=honey&page=1&distance=50&categories=honey")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool              `json:"success"`
		Data    domain.SearchPage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	require.Len(t, body.Data.Farms, 1)
	assert.Equal(t, "f-003", body.Data.Farms[0].FarmID)
}

func TestSearchEndpointRejectsBadPage(t *testing.T) {
	srv := newTestServer(t, Default())

	resp, err := http.Get(srv.URL + "/api/farms/search?page=zero")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Message)
}

func TestAssets(t *testing.T) {
	srv := newTestServer(t, Default())

	resp, err := http.Get(srv.URL + "/assets/produce/kale.jpg")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Head(srv.URL + "/assets/farms/hillside-barn.jpg")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
