package core

// DomainError is the unified error type of the domain layer.
// Infrastructure packages wrap their backend errors; callers branch on
// module + code via the IsXXX helpers instead of string matching.
type DomainError struct {
	Code    string
	Message string
	Module  string
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError returns the DomainError behind err, or nil.
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError creates a new domain error.
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

const (
	ErrorCodeNotFound      = "NOT_FOUND"
	ErrorCodeNotSupported  = "NOT_SUPPORTED"
	ErrorCodeUnavailable   = "UNAVAILABLE"
	ErrorCodeInvalidInput  = "INVALID_INPUT"
	ErrorCodeInternalError = "INTERNAL_ERROR"
)

const (
	ModuleStore   = "store"
	ModuleHistory = "history"
	ModuleCatalog = "catalog"
	ModuleEngine  = "engine"
)

// IsNotFound checks whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsNotSupported checks whether err carries the NOT_SUPPORTED code.
func IsNotSupported(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotSupported
	}
	return false
}

// IsUnavailable checks whether err carries the UNAVAILABLE code.
func IsUnavailable(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnavailable
	}
	return false
}
