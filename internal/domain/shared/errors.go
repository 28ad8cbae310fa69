package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound        = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput    = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized    = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden       = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState    = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrUpstreamFailure = NewDomainError("UPSTREAM_FAILURE", "Accounting system request failed")
	ErrUpstreamTimeout = NewDomainError("UPSTREAM_TIMEOUT", "Accounting system did not respond in time")
	ErrSessionExpired  = NewDomainError("SESSION_EXPIRED", "Session has expired, sign in again")

	// ErrSearchSuperseded marks a search response that finished after a newer
	// search for the same session had already started.
	ErrSearchSuperseded = NewDomainError("SEARCH_SUPERSEDED", "A newer search has replaced this one")

	// ErrInsufficientCredit keeps the upstream wording verbatim so the
	// dashboard can match on it.
	ErrInsufficientCredit = NewDomainError("INSUFFICIENT_CREDIT", "customer have no required credit")
)
