package geocode_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawmatch/pawmatch/internal/geocode"
	"github.com/pawmatch/pawmatch/internal/provider/resilience"
)

func TestClient_Geocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Utrecht, Netherlands", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		response := []map[string]interface{}{
			{
				"lat":          "52.0907",
				"lon":          "5.1214",
				"display_name": "Utrecht, Netherlands",
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := geocode.NewClient(geocode.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	lat, lon, err := client.Geocode(context.Background(), "Utrecht, Netherlands")
	require.NoError(t, err)

	assert.InDelta(t, 52.0907, lat, 0.0001)
	assert.InDelta(t, 5.1214, lon, 0.0001)
}

func TestClient_Geocode_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := geocode.NewClient(geocode.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, _, err := client.Geocode(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, geocode.ErrNoResults)
}

func TestClient_Geocode_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := geocode.NewClient(geocode.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, _, err := client.Geocode(context.Background(), "Utrecht")
	assert.Error(t, err)
}

func TestClient_Geocode_RecordsProviderHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response := []map[string]interface{}{
			{"lat": "52.0907", "lon": "5.1214"},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	registry := resilience.NewRegistry()

	// No HTTPClient: the default resilient client is built and registered
	client := geocode.NewClient(geocode.ClientConfig{
		BaseURL:  server.URL,
		Registry: registry,
	})

	health := registry.GetHealth(geocode.ProviderName)
	require.NotNil(t, health)
	assert.Nil(t, health.LastSuccessAt)

	_, _, err := client.Geocode(context.Background(), "Utrecht")
	require.NoError(t, err)

	health = registry.GetHealth(geocode.ProviderName)
	require.NotNil(t, health)
	assert.NotNil(t, health.LastSuccessAt)
	assert.True(t, health.IsHealthy())
}

func TestClient_Geocode_MalformedCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response := []map[string]interface{}{
			{"lat": "not-a-number", "lon": "5.1214"},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := geocode.NewClient(geocode.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, _, err := client.Geocode(context.Background(), "Utrecht")
	assert.Error(t, err)
}
