package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/mo"

	"github.com/nabrah/usage-alert-service/config"
	"github.com/nabrah/usage-alert-service/internal/domain/model"
)

// Resolver derives the destination address for an inbound event. Resolve is
// total: it degrades to the configured fallback address, never fails.
type Resolver interface {
	Resolve(ctx context.Context, ev model.Event) string
}

// Directory is the read-only customer lookup surface of the metering
// backend, implemented by the OpenMeter client.
type Directory interface {
	// GetCustomer fetches one customer by its directory path key.
	GetCustomer(ctx context.Context, key string) (model.Customer, error)
	// FindBySubjectKey queries the customer list filtered by subject key.
	FindBySubjectKey(ctx context.Context, key string) (model.Customer, error)
}

var (
	errNoDirectEmail   = errors.New("subject carries no inline email")
	errNoMetadataEmail = errors.New("subject metadata carries no email")
	errNoLookupKey     = errors.New("subject carries no lookup key")
	errNoCustomerEmail = errors.New("customer record carries no email")
)

type attempt struct {
	name string
	run  func() mo.Result[string]
}

type RecipientResolver struct {
	directory   Directory
	logger      *slog.Logger
	strategies  []string
	emailFields []string
	fallback    string
}

// NewRecipientResolver builds the resolver from the configured fallback
// chain. The directory is consulted at most once per strategy per event.
func NewRecipientResolver(cfg *config.Config, directory Directory, logger *slog.Logger) *RecipientResolver {
	return &RecipientResolver{
		directory:   directory,
		logger:      logger,
		strategies:  cfg.Resolver.Strategies,
		emailFields: cfg.Resolver.EmailFields,
		fallback:    cfg.FallbackTo,
	}
}

// Resolve walks the ordered attempt chain and short-circuits on the first
// Ok. Directory failures of any kind are Err values that advance the chain;
// they never escape to the caller.
func (r *RecipientResolver) Resolve(ctx context.Context, ev model.Event) string {
	subject := ev.Subject

	attempts := []attempt{
		{"subject.email", func() mo.Result[string] {
			return fromPayloadField(subject.DirectEmail(), errNoDirectEmail)
		}},
		{"subject.metadata.email", func() mo.Result[string] {
			return fromPayloadField(subject.MetadataEmail(), errNoMetadataEmail)
		}},
	}
	for _, strategy := range r.strategies {
		attempts = append(attempts, attempt{
			name: "directory." + strategy,
			run: func() mo.Result[string] {
				return r.lookup(ctx, strategy, subject)
			},
		})
	}

	for _, a := range attempts {
		res := a.run()
		if res.IsOk() {
			r.logger.Debug("RECIPIENT_RESOLVED",
				"source", a.name,
				"subject_key", subject.Key,
			)
			return res.MustGet()
		}
		r.logger.Debug("RECIPIENT_ATTEMPT_MISSED",
			"source", a.name,
			"subject_key", subject.Key,
			"reason", res.Error().Error(),
		)
	}

	r.logger.Warn("RECIPIENT_FALLBACK_USED",
		"subject_key", subject.Key,
		"to", r.fallback,
	)
	return r.fallback
}

func fromPayloadField(value string, missing error) mo.Result[string] {
	if value == "" {
		return mo.Err[string](missing)
	}
	return mo.Ok(value)
}

func (r *RecipientResolver) lookup(ctx context.Context, strategy string, subject model.Subject) mo.Result[string] {
	if subject.LookupKey() == "" {
		return mo.Err[string](errNoLookupKey)
	}

	var (
		customer model.Customer
		err      error
	)

	switch strategy {
	case config.StrategySubjectKey:
		customer, err = r.directory.FindBySubjectKey(ctx, subject.LookupKey())
	case config.StrategyCustomerKey:
		customer, err = r.directory.GetCustomer(ctx, subject.CustomerKey())
	default:
		return mo.Err[string](fmt.Errorf("unknown lookup strategy %q", strategy))
	}
	if err != nil {
		return mo.Err[string](err)
	}

	for _, field := range r.emailFields {
		if email := customer.EmailByField(field); email != "" {
			return mo.Ok(email)
		}
	}
	return mo.Err[string](errNoCustomerEmail)
}
