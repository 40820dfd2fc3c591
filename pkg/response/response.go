package response

// Error codes returned in the error envelope. Clients branch on these, so the
// strings are part of the API contract.
const (
	CodeAuthTokenMissing       = "AUTH_TOKEN_MISSING"
	CodeAuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	CodeAuthTokenFormatInvalid = "AUTH_TOKEN_FORMAT_INVALID"
	CodeAuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	CodeUserNotFound           = "USER_NOT_FOUND"
	CodeGameNotFound           = "GAME_NOT_FOUND"
	CodeInvalidPlan            = "INVALID_PLAN"
	CodeValidationError        = "VALIDATION_ERROR"
	CodeUpstreamError          = "UPSTREAM_ERROR"
	CodeInternalError          = "INTERNAL_ERROR"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the error envelope used by all HTTP APIs.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// Err builds an error envelope with the given code and message.
func Err(code, message string) *ErrorResponse {
	return &ErrorResponse{Success: false, Error: ErrorBody{Code: code, Message: message}}
}

// OK is the minimal success envelope for endpoints with no payload.
type OK struct {
	Success bool `json:"success"`
}

func Ok() *OK { return &OK{Success: true} }
