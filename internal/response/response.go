package response

import "github.com/gin-gonic/gin"

// Error codes returned in the "error" field of error responses
const (
	ErrCodeValidation          = "VALIDATION_FAILED"
	ErrCodeUnauthenticated     = "UNAUTHENTICATED"
	ErrCodeInvalidCredential   = "INVALID_CREDENTIAL"
	ErrCodeIdentityUnavailable = "IDENTITY_UNAVAILABLE"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeStorage             = "STORAGE_ERROR"
)

// ErrorResponse is the wire format for all error responses
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// SendError writes an error response with the given status, code and message
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// SendErrorWithDetails writes an error response including field-level details
func SendErrorWithDetails(c *gin.Context, status int, code, message string, details []string) {
	c.JSON(status, ErrorResponse{
		Error:   code,
		Message: message,
		Details: details,
	})
}

// SendSuccess writes a success response with the given status and payload
func SendSuccess(c *gin.Context, status int, data interface{}) {
	if data == nil {
		c.JSON(status, gin.H{"message": "success"})
		return
	}
	c.JSON(status, data)
}
