package bonjson

import "github.com/kstenerud/go-bonjson/internal/policy"

// Policy types are re-exported from internal/policy so callers configure
// Encode/Decode without reaching into an internal package. See
// internal/policy for the defaults each one carries.
type (
	UTF8Policy          = policy.UTF8Policy
	NulPolicy           = policy.NulPolicy
	DuplicateKeyPolicy  = policy.DuplicateKeyPolicy
	FloatPolicy         = policy.FloatPolicy
	TrailingBytesPolicy = policy.TrailingBytesPolicy
	LengthPolicy        = policy.LengthPolicy
	FloatStrings        = policy.FloatStrings
	Policies            = policy.Policies
	Limits              = policy.Limits
)

const (
	UTF8Reject = policy.UTF8Reject
	UTF8Replace = policy.UTF8Replace
	UTF8Delete  = policy.UTF8Delete

	NulReject = policy.NulReject
	NulAllow  = policy.NulAllow

	DuplicateReject    = policy.DuplicateReject
	DuplicateKeepFirst = policy.DuplicateKeepFirst
	DuplicateKeepLast  = policy.DuplicateKeepLast

	FloatReject   = policy.FloatReject
	FloatAllow    = policy.FloatAllow
	FloatAsString = policy.FloatAsString

	TrailingReject = policy.TrailingReject
	TrailingAllow  = policy.TrailingAllow

	LengthReject = policy.LengthReject
	LengthAllow  = policy.LengthAllow
)

// DefaultPolicies returns the spec-mandated strict defaults (reject every
// malformed-input case).
func DefaultPolicies() Policies { return policy.Default() }

// DefaultLimits returns the spec-mandated default resource limits.
func DefaultLimits() Limits { return policy.DefaultLimits() }
