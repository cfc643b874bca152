package transaction

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means a (group, type) pair was never registered. It is a
	// configuration defect, not a user error.
	ErrNotFound = errors.New("transaction type not registered")

	ErrRegistrySealed     = errors.New("registry is sealed")
	ErrDuplicateKind      = errors.New("transaction type already registered")
	ErrInvalidDescriptor  = errors.New("invalid descriptor")
	ErrCapabilityNotBound = errors.New("build capability not bound")

	ErrFeeOutOfRange = errors.New("fee out of range")
	ErrFeeRequired   = errors.New("fee required in advanced mode")
	ErrUnknownMode   = errors.New("unknown fee mode")

	ErrSubmissionInProgress = errors.New("submission already in progress")
	ErrWorkflowClosed       = errors.New("workflow is closed")
	ErrCancelled            = errors.New("workflow cancelled")
	ErrNotEditable          = errors.New("draft can only be edited while drafting")
)

// Field error reasons.
const (
	ReasonRequired         = "required"
	ReasonUnknownField     = "unknown_field"
	ReasonInvalidType      = "invalid_type"
	ReasonTooLong          = "too_long"
	ReasonTooShort         = "too_short"
	ReasonTooFew           = "too_few"
	ReasonTooMany          = "too_many"
	ReasonOutOfRange       = "out_of_range"
	ReasonDuplicate        = "duplicate"
	ReasonInvalidURL       = "invalid_url"
	ReasonInvalidVAT       = "invalid_vat"
	ReasonInvalidAddress   = "invalid_address"
	ReasonInvalidPublicKey = "invalid_public_key"
	ReasonInvalidVote      = "invalid_vote"
	ReasonInvalidUsername  = "invalid_username"
	ReasonInvalidHash      = "invalid_hash"
	ReasonInvalidIP        = "invalid_ip"
	ReasonPriceUnavailable = "price_unavailable"
)

// FeeField is the field name used for fee errors.
const FeeField = "fee"

// FieldError is a field-scoped validation failure, shown next to the field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// FieldErrors is a list of field errors that is itself an error.
type FieldErrors []FieldError

func (errs FieldErrors) Error() string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Fields returns the names of the violated fields.
func (errs FieldErrors) Fields() []string {
	names := make([]string, len(errs))
	for i, e := range errs {
		names[i] = e.Field
	}
	return names
}

// NotFoundError carries the key that failed to resolve.
type NotFoundError struct {
	Key Key
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotFound, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// FeeError is returned when an advanced fee is outside the kind's bounds.
type FeeError struct {
	Value   uint64
	Minimum uint64
	Maximum uint64
}

func (e *FeeError) Error() string {
	return fmt.Sprintf("%s: %d not in [%d, %d]", ErrFeeOutOfRange, e.Value, e.Minimum, e.Maximum)
}

func (e *FeeError) Is(target error) bool {
	return target == ErrFeeOutOfRange
}

// BuildError is a failure of the external build capability. Message is the
// localized, kind-specific text shown to the user.
type BuildError struct {
	Key     Key
	Kind    string
	Message string
	Err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("failed to build %s transaction: %v", e.Kind, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// IsBuildError checks if error is a BuildError
func IsBuildError(err error) bool {
	var be *BuildError
	return errors.As(err, &be)
}
