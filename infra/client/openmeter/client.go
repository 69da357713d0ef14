package openmeter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/nabrah/usage-alert-service/config"
	"github.com/nabrah/usage-alert-service/internal/domain/model"
)

// ErrCustomerNotFound marks a lookup that completed but matched nothing.
var ErrCustomerNotFound = errors.New("openmeter: customer not found")

type customerDTO struct {
	Key          string            `json:"key"`
	Name         string            `json:"name"`
	PrimaryEmail string            `json:"primaryEmail"`
	Metadata     map[string]string `json:"metadata"`
}

func (d customerDTO) toDomain() model.Customer {
	return model.Customer{
		Key:          d.Key,
		Name:         d.Name,
		PrimaryEmail: d.PrimaryEmail,
		Metadata:     d.Metadata,
	}
}

type customerPageDTO struct {
	Items []customerDTO `json:"items"`
}

// Client is the read-only customer directory client. Every call is bounded
// by the configured timeout and guarded by a circuit breaker, so a flapping
// directory degrades the caller to its fallback address fast instead of
// holding webhook slots.
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
}

func New(cfg *config.Config) *Client {
	http := resty.New().
		SetBaseURL(cfg.OpenMeter.BaseURL).
		SetAuthToken(cfg.OpenMeter.APIKey).
		SetTimeout(cfg.OpenMeter.Timeout).
		SetHeader("Accept", "application/json")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeter-directory",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
	})

	return &Client{http: http, breaker: breaker}
}

// GetCustomer fetches one customer by its directory path key.
func (c *Client) GetCustomer(ctx context.Context, key string) (model.Customer, error) {
	if key == "" {
		return model.Customer{}, errors.New("openmeter: empty customer key")
	}

	out, err := c.breaker.Execute(func() (any, error) {
		var body customerDTO

		resp, err := c.http.R().
			SetContext(ctx).
			SetResult(&body).
			SetPathParam("key", key).
			Get("/customers/{key}")
		if err != nil {
			return nil, fmt.Errorf("openmeter: get customer %q: %w", key, err)
		}
		if resp.StatusCode() == 404 {
			return nil, fmt.Errorf("%w: key %q", ErrCustomerNotFound, key)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("openmeter: get customer %q: unexpected status %s", key, resp.Status())
		}

		return body.toDomain(), nil
	})
	if err != nil {
		return model.Customer{}, err
	}

	return out.(model.Customer), nil
}

// FindBySubjectKey queries the customer list filtered by the raw subject
// key and returns the first match.
func (c *Client) FindBySubjectKey(ctx context.Context, key string) (model.Customer, error) {
	if key == "" {
		return model.Customer{}, errors.New("openmeter: empty subject key")
	}

	out, err := c.breaker.Execute(func() (any, error) {
		var body customerPageDTO

		resp, err := c.http.R().
			SetContext(ctx).
			SetResult(&body).
			SetQueryParam("subjectKey", key).
			Get("/customers")
		if err != nil {
			return nil, fmt.Errorf("openmeter: find by subject key %q: %w", key, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("openmeter: find by subject key %q: unexpected status %s", key, resp.Status())
		}
		if len(body.Items) == 0 {
			return nil, fmt.Errorf("%w: subject key %q", ErrCustomerNotFound, key)
		}

		return body.Items[0].toDomain(), nil
	})
	if err != nil {
		return model.Customer{}, err
	}

	return out.(model.Customer), nil
}

// Close releases pooled connections.
func (c *Client) Close() error {
	c.http.GetClient().CloseIdleConnections()
	return nil
}
