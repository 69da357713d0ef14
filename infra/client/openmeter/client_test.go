package openmeter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabrah/usage-alert-service/config"
)

func testClient(baseURL string) *Client {
	return New(&config.Config{
		OpenMeter: config.OpenMeterConfig{
			BaseURL: baseURL,
			APIKey:  "om-test-key",
			Timeout: 2 * time.Second,
		},
	})
}

func TestGetCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers/abc123", r.URL.Path)
		assert.Equal(t, "Bearer om-test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"key":"abc123","name":"Acme","primaryEmail":"billing@acme.com","metadata":{"email":"ops@acme.com"}}`))
	}))
	defer srv.Close()

	customer, err := testClient(srv.URL).GetCustomer(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "abc123", customer.Key)
	assert.Equal(t, "billing@acme.com", customer.PrimaryEmail)
	assert.Equal(t, "ops@acme.com", customer.Metadata["email"])
}

func TestGetCustomerNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GetCustomer(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestGetCustomerEmptyKey(t *testing.T) {
	_, err := testClient("http://localhost:1").GetCustomer(context.Background(), "")
	assert.Error(t, err)
}

func TestFindBySubjectKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers", r.URL.Path)
		assert.Equal(t, "abc-123", r.URL.Query().Get("subjectKey"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"key":"abc123","primaryEmail":"billing@acme.com"}]}`))
	}))
	defer srv.Close()

	customer, err := testClient(srv.URL).FindBySubjectKey(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "billing@acme.com", customer.PrimaryEmail)
}

func TestFindBySubjectKeyNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FindBySubjectKey(context.Background(), "abc-123")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestLookupUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GetCustomer(context.Background(), "abc123")
	assert.Error(t, err)
}

func TestLookupMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"key": `))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GetCustomer(context.Background(), "abc123")
	assert.Error(t, err)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := testClient(srv.URL)

	// Default gobreaker trip point is more than five consecutive failures.
	for range 6 {
		_, err := client.GetCustomer(context.Background(), "abc123")
		require.Error(t, err)
	}

	_, err := client.GetCustomer(context.Background(), "abc123")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}
