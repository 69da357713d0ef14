package model

import "strings"

// Email extraction fields, in the orders supported by the resolver config.
const (
	EmailFieldPrimary  = "primaryEmail"
	EmailFieldMetadata = "metadata.email"
)

// Customer is a read-only record fetched on demand from the customer
// directory. It is never cached and never written back.
type Customer struct {
	Key          string
	Name         string
	PrimaryEmail string
	Metadata     map[string]string
}

// EmailByField extracts an address by the named field, empty when unset.
func (c Customer) EmailByField(field string) string {
	switch field {
	case EmailFieldPrimary:
		return strings.TrimSpace(c.PrimaryEmail)
	case EmailFieldMetadata:
		if c.Metadata == nil {
			return ""
		}
		return strings.TrimSpace(c.Metadata["email"])
	}
	return ""
}
