package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeInvalidParameter    = "INVALID_PARAMETER"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeProductExists       = "PRODUCT_EXISTS"
	ErrCodeOrderNotFound       = "ORDER_NOT_FOUND"
	ErrCodeInvalidStatus       = "INVALID_STATUS"
	ErrCodeEmptyCart           = "EMPTY_CART"
	ErrCodeCheckoutInProgress  = "CHECKOUT_IN_PROGRESS"
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeUsernameTaken       = "USERNAME_TAKEN"
	ErrCodeUnsupportedDocument = "UNSUPPORTED_DOCUMENT"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

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
	ErrProductNotFound     = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrProductExists       = NewDomainError(ErrCodeProductExists, "A product with this ID already exists")
	ErrOrderNotFound       = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidStatus       = NewDomainError(ErrCodeInvalidStatus, "Order status must be pending, processing, shipped or delivered")
	ErrEmptyCart           = NewDomainError(ErrCodeEmptyCart, "Cannot check out an empty cart")
	ErrCheckoutInProgress  = NewDomainError(ErrCodeCheckoutInProgress, "A checkout is already being processed for this user")
	ErrInvalidCredentials  = NewDomainError(ErrCodeInvalidCredentials, "Invalid username or password")
	ErrUsernameTaken       = NewDomainError(ErrCodeUsernameTaken, "Username is already registered")
	ErrUnsupportedDocument = NewDomainError(ErrCodeUnsupportedDocument, "Stored document version is newer than this build supports")
)
