package types

import (
	"fmt"
	"time"
)

// VersionStatus is the approval state of one primitive version.
type VersionStatus string

const (
	StatusPending  VersionStatus = "pending"
	StatusApproved VersionStatus = "approved"
	StatusDeclined VersionStatus = "declined"
)

// ParseStatus validates a wire-level status string.
func ParseStatus(s string) (VersionStatus, error) {
	switch VersionStatus(s) {
	case StatusPending, StatusApproved, StatusDeclined:
		return VersionStatus(s), nil
	default:
		return "", fmt.Errorf("unknown status: %q", s)
	}
}

// Versioned is the capability shared by every primitive kind: a named,
// immutable version with an approval status and audit fields.
type Versioned interface {
	PrimitiveName() string
	PrimitiveVersion() int
	PrimitiveStatus() VersionStatus
	PrimitiveTitle() string
}

// VersionedPtr constrains a pointer to a primitive model so the generic
// repository and service can stamp workflow fields without knowing the
// concrete kind.
type VersionedPtr[T any] interface {
	*T
	Versioned
	SetKey(name string, version int)
	SetStatus(status VersionStatus)
	SetCreated(at time.Time, by string)
}
