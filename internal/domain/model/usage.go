package model

// Usage holds the optional balance snapshot attached to a threshold event.
// Pointers distinguish "absent" from zero values.
type Usage struct {
	Usage     *float64
	Balance   *float64
	HasAccess *bool
}

// Exhausted reports whether the entitlement is effectively used up,
// overriding whatever nominal bucket the threshold value names.
func (u Usage) Exhausted() bool {
	if u.HasAccess != nil && !*u.HasAccess {
		return true
	}
	if u.Balance != nil && *u.Balance == 0 {
		return true
	}
	return false
}
