package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
)

const testPackageMeta = `{
  "name": "react",
  "versions": {
    "18.2.0": {"version": "18.2.0", "description": "React library", "keywords": ["react"]},
    "18.3.0": {"version": "18.3.0", "description": "React library", "keywords": ["react"]},
    "19.0.0": {"version": "19.0.0", "description": "React library", "keywords": ["react", "compiler"]}
  },
  "time": {
    "created": "2011-10-26T17:46:21Z",
    "18.2.0": "2022-06-14T19:46:38Z",
    "18.3.0": "2024-04-25T16:58:00Z",
    "19.0.0": "2024-12-05T18:10:00Z"
  }
}`

func TestRegistryCollectorCollect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/react", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testPackageMeta))
	}))
	defer srv.Close()

	source := &model.Source{Id: "src-npm", Name: "React npm", Kind: model.SourceKindRegistry, Url: "react"}
	items, err := NewRegistryCollectorWithBaseUrl(srv.URL).Collect(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Newest publish first, regardless of map iteration order.
	require.Equal(t, "19.0.0", items[0].ExternalId)
	require.Equal(t, "18.3.0", items[1].ExternalId)
	require.Equal(t, "18.2.0", items[2].ExternalId)

	first := items[0]
	require.Equal(t, "react v19.0.0", first.Title)
	require.Equal(t, "https://www.npmjs.com/package/react/v/19.0.0", first.Url)
	require.NotNil(t, first.PublishedAt)
	require.Equal(t, time.Date(2024, 12, 5, 18, 10, 0, 0, time.UTC), first.PublishedAt.UTC())
	require.Equal(t, Fingerprint("react", "19.0.0", "2024-12-05T18:10:00Z"), first.UniqHash)
}

func TestRegistryCollectorVersionCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
  "name": "busy",
  "versions": {
    "1.0.0": {"version": "1.0.0"}, "1.0.1": {"version": "1.0.1"},
    "1.0.2": {"version": "1.0.2"}, "1.0.3": {"version": "1.0.3"},
    "1.0.4": {"version": "1.0.4"}, "1.0.5": {"version": "1.0.5"},
    "1.0.6": {"version": "1.0.6"}
  },
  "time": {
    "1.0.0": "2024-01-01T00:00:00Z", "1.0.1": "2024-01-02T00:00:00Z",
    "1.0.2": "2024-01-03T00:00:00Z", "1.0.3": "2024-01-04T00:00:00Z",
    "1.0.4": "2024-01-05T00:00:00Z", "1.0.5": "2024-01-06T00:00:00Z",
    "1.0.6": "2024-01-07T00:00:00Z"
  }
}`))
	}))
	defer srv.Close()

	source := &model.Source{Name: "Busy npm", Kind: model.SourceKindRegistry, Url: "busy"}
	items, err := NewRegistryCollectorWithBaseUrl(srv.URL).Collect(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, items, 5)
	require.Equal(t, "1.0.6", items[0].ExternalId)
}

func TestRegistryCollectorNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	source := &model.Source{Name: "Missing npm", Kind: model.SourceKindRegistry, Url: "missing"}
	_, err := NewRegistryCollectorWithBaseUrl(srv.URL).Collect(context.Background(), source)

	fetchErr := &SourceFetchError{}
	require.ErrorAs(t, err, &fetchErr)
}
