package model

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes returned in ErrorResponse.Code
const (
	CodeBadRequest           = "BAD_REQUEST"
	CodeKindNotFound         = "KIND_NOT_FOUND"
	CodeFormNotFound         = "FORM_NOT_FOUND"
	CodeFormClosed           = "FORM_CLOSED"
	CodeSubmissionInProgress = "SUBMISSION_IN_PROGRESS"
	CodeNotEditable          = "NOT_EDITABLE"
	CodeCancelled            = "CANCELLED"
	CodeBuildFailed          = "BUILD_FAILED"
	CodePriceUnavailable     = "PRICE_UNAVAILABLE"
	CodeUnsupportedCurrency  = "UNSUPPORTED_CURRENCY"
	CodeUnsupportedLanguage  = "UNSUPPORTED_LANGUAGE"
	CodeInternal             = "INTERNAL"
)
