// internal/service/dto/event_v1.go
package dto

import (
	"encoding/json"

	"github.com/nabrah/usage-alert-service/internal/domain/model"
)

// EventV1 is the OpenMeter webhook envelope as delivered over HTTP. Every
// field below the type tag is optional; ToDomain applies the defaults.
type EventV1 struct {
	ID   string      `json:"id"`
	Type string      `json:"type"`
	Data EventDataV1 `json:"data"`
}

type EventDataV1 struct {
	Subject   SubjectV1   `json:"subject"`
	Feature   FeatureV1   `json:"feature"`
	MeterSlug string      `json:"meterSlug"`
	Threshold ThresholdV1 `json:"threshold"`
	Value     UsageV1     `json:"value"`
}

type SubjectV1 struct {
	Key         string            `json:"key"`
	ID          string            `json:"id"`
	Email       string            `json:"email"`
	DisplayName string            `json:"displayName"`
	Metadata    map[string]string `json:"metadata"`
}

type FeatureV1 struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type ThresholdV1 struct {
	Type string `json:"type"`
	// Producers disagree on the value shape (number, "90", "90%"), so it
	// stays raw until the domain parses it.
	Value json.RawMessage `json:"value"`
}

type UsageV1 struct {
	Usage     *float64 `json:"usage"`
	Balance   *float64 `json:"balance"`
	HasAccess *bool    `json:"hasAccess"`
}

func (d *EventV1) ToDomain() model.Event {
	return model.Event{
		ID:        d.ID,
		Type:      model.EventType(d.Type),
		Subject:   d.Data.Subject.toDomain(),
		Feature:   d.Data.Feature.toDomain(),
		MeterSlug: d.Data.MeterSlug,
		Threshold: d.Data.Threshold.toDomain(),
		Usage: model.Usage{
			Usage:     d.Data.Value.Usage,
			Balance:   d.Data.Value.Balance,
			HasAccess: d.Data.Value.HasAccess,
		},
	}
}

func (s SubjectV1) toDomain() model.Subject {
	return model.Subject{
		Key:         s.Key,
		ID:          s.ID,
		Email:       s.Email,
		DisplayName: s.DisplayName,
		Metadata:    s.Metadata,
	}
}

func (f FeatureV1) toDomain() model.Feature {
	return model.Feature{
		Key:         f.Key,
		Name:        f.Name,
		DisplayName: f.DisplayName,
	}
}

func (t ThresholdV1) toDomain() model.Threshold {
	var value any
	if len(t.Value) > 0 {
		// A decode failure leaves the value nil, which the domain renders
		// as an unknown percentage instead of rejecting the event.
		_ = json.Unmarshal(t.Value, &value)
	}

	return model.Threshold{
		Type:  t.Type,
		Value: value,
	}
}
