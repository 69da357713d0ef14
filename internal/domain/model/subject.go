package model

import "strings"

// Subject is the metering system's identity for the entity whose usage
// crossed a threshold. It lives only for the duration of one event.
type Subject struct {
	Key         string
	ID          string
	Email       string
	DisplayName string
	Metadata    map[string]string
}

// DirectEmail returns the inline address carried by the payload, if any.
func (s Subject) DirectEmail() string {
	return strings.TrimSpace(s.Email)
}

// MetadataEmail returns the address stashed in subject metadata, if any.
func (s Subject) MetadataEmail() string {
	if s.Metadata == nil {
		return ""
	}
	return strings.TrimSpace(s.Metadata["email"])
}

// LookupKey returns the identifier used for directory lookups, preferring
// the subject key over the opaque id.
func (s Subject) LookupKey() string {
	if s.Key != "" {
		return s.Key
	}
	return s.ID
}

// CustomerKey derives the directory path key by stripping separator
// characters from the lookup key. Some directory deployments register
// customers under this collapsed form.
func (s Subject) CustomerKey() string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_':
			return -1
		}
		return r
	}, s.LookupKey())
}
