package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"Feature": [
		{
			"Geometry": {"Coordinates": "139.766092,35.681236"},
			"Property": {"Address": "Tokyo, Chiyoda, Marunouchi 1"}
		},
		{
			"Geometry": {"Coordinates": "bogus"},
			"Property": {"Address": "dropped"}
		}
	]
}`

func TestForwardParsesAndCaches(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/geocode/V1/geoCoder", r.URL.Path)
		assert.Equal(t, "test-app-id", r.URL.Query().Get("appid"))
		assert.Equal(t, "tokyo station", r.URL.Query().Get("query"))
		fmt.Fprint(w, sampleResponse)
	}))
	defer srv.Close()

	c := NewClient("test-app-id", WithBaseURL(srv.URL))

	results, err := c.Forward(context.Background(), "tokyo station")
	require.NoError(t, err)
	require.Len(t, results, 1, "malformed coordinates are skipped")
	assert.Equal(t, "Tokyo, Chiyoda, Marunouchi 1", results[0].Address)
	assert.InDelta(t, 35.681236, results[0].Lat, 1e-9)
	assert.InDelta(t, 139.766092, results[0].Lng, 1e-9)

	// Second lookup for the same query is served from cache.
	_, err = c.Forward(context.Background(), "tokyo station")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestReverseSendsCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geoapi/V1/reverseGeoCoder", r.URL.Path)
		assert.Equal(t, "35.681236", r.URL.Query().Get("lat"))
		assert.Equal(t, "139.766092", r.URL.Query().Get("lon"))
		fmt.Fprint(w, sampleResponse)
	}))
	defer srv.Close()

	c := NewClient("test-app-id", WithBaseURL(srv.URL))

	results, err := c.Reverse(context.Background(), 35.681236, 139.766092)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Tokyo, Chiyoda, Marunouchi 1", results[0].Address)
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("test-app-id", WithBaseURL(srv.URL))

	_, err := c.Forward(context.Background(), "anywhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
