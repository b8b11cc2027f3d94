package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInvalidHours       = "INVALID_OPENING_HOURS"
	ErrCodeInvalidDateTime    = "INVALID_DATETIME"
	ErrCodeInvalidPage        = "INVALID_PAGE"
	ErrCodeMissingQuery       = "MISSING_QUERY"
	ErrCodeRestaurantNotFound = "RESTAURANT_NOT_FOUND"
	ErrCodeMenuNotFound       = "MENU_NOT_FOUND"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeOwnerRequired      = "OWNER_REQUIRED"
	ErrCodeNameTaken          = "NAME_TAKEN"
	ErrCodePaymentRequired    = "PAYMENT_REQUIRED"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure with a stable machine code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a request-validation domain error.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// Common domain errors
var (
	ErrInvalidOpeningHours = NewDomainError(ErrCodeInvalidHours, "Invalid format, should be a string consisting of 14 time (format HH:MM), with '/' as the delimiter")
	ErrInvalidDateTime     = NewDomainError(ErrCodeInvalidDateTime, "Invalid date time format, please adhere to the format 'DD/MM/YYYY/HH:MM'")
	ErrMissingQuery        = NewDomainError(ErrCodeMissingQuery, "Search query 'q' is required and must be non-empty")
	ErrRestaurantNotFound  = NewDomainError(ErrCodeRestaurantNotFound, "Restaurant not found")
	ErrMenuNotFound        = NewDomainError(ErrCodeMenuNotFound, "Menu not found")
	ErrCredentials         = NewDomainError(ErrCodeUnauthorised, "Credentials incorrect")
	ErrOwnerRequired       = NewDomainError(ErrCodeOwnerRequired, "Restaurant owner required")
	ErrNameTaken           = NewDomainError(ErrCodeNameTaken, "Name should be unique")
	ErrInsufficientBalance = NewDomainError(ErrCodePaymentRequired, "Insufficient balance for this purchase")
	ErrInvalidQuantity     = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
)
