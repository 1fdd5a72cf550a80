package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
	ErrCodeTokenRevoked       = "ERR_TOKEN_REVOKED"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeAccountInactive    = "ERR_ACCOUNT_INACTIVE"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
	ErrCodeInUse         = "ERR_IN_USE"
)

// Business rule error codes
const (
	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeBusinessRule      = "ERR_BUSINESS_RULE"
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
	ErrCodeEmptySale         = "ERR_EMPTY_SALE"
	ErrCodeEmptyReturn       = "ERR_EMPTY_RETURN"
	ErrCodeProductInactive   = "ERR_PRODUCT_INACTIVE"
	ErrCodeReturnExceeded    = "ERR_RETURN_QUANTITY_EXCEEDED"
	ErrCodeSaleMismatch      = "ERR_SALE_MISMATCH"
	ErrCodeAlreadyPaid       = "ERR_ALREADY_PAID"
	ErrCodeAlreadyClockedIn  = "ERR_ALREADY_CLOCKED_IN"
	ErrCodeAlreadyClockedOut = "ERR_ALREADY_CLOCKED_OUT"
	ErrCodeNotClockedIn      = "ERR_NOT_CLOCKED_IN"
	ErrCodeEmployeeInactive  = "ERR_EMPLOYEE_INACTIVE"
	ErrCodeOwnerDeactivation = "ERR_CANNOT_DEACTIVATE_OWNER"
	ErrCodeReceiptTypeOff    = "ERR_RECEIPT_TYPE_DISABLED"
	ErrCodeUploadNotFound    = "ERR_UPLOAD_NOT_FOUND"
	ErrCodeAmountMismatch    = "ERR_AMOUNT_MISMATCH"
	ErrCodeInvalidCallback   = "ERR_INVALID_CALLBACK"
	ErrCodeRequestTooLarge   = "ERR_REQUEST_TOO_LARGE"
	ErrCodeRateLimited       = "ERR_RATE_LIMITED"
)

// Dependency error codes
const (
	ErrCodePaymentDisabled  = "ERR_PAYMENT_DISABLED"
	ErrCodePaymentGateway   = "ERR_PAYMENT_GATEWAY_ERROR"
	ErrCodePrintingDisabled = "ERR_PRINTING_DISABLED"
	ErrCodeStorageDisabled  = "ERR_STORAGE_DISABLED"
	ErrCodeRenderFailed     = "ERR_RENDER_FAILED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeAmountMismatch:  http.StatusBadRequest,
	ErrCodeInvalidCallback: http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeAccountInactive:    http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,
	ErrCodeInUse:         http.StatusConflict,

	// Business rules -> 422 Unprocessable Entity
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
	ErrCodeEmptySale:         http.StatusUnprocessableEntity,
	ErrCodeEmptyReturn:       http.StatusUnprocessableEntity,
	ErrCodeProductInactive:   http.StatusUnprocessableEntity,
	ErrCodeReturnExceeded:    http.StatusUnprocessableEntity,
	ErrCodeSaleMismatch:      http.StatusUnprocessableEntity,
	ErrCodeAlreadyPaid:       http.StatusUnprocessableEntity,
	ErrCodeAlreadyClockedIn:  http.StatusUnprocessableEntity,
	ErrCodeAlreadyClockedOut: http.StatusUnprocessableEntity,
	ErrCodeNotClockedIn:      http.StatusUnprocessableEntity,
	ErrCodeEmployeeInactive:  http.StatusUnprocessableEntity,
	ErrCodeOwnerDeactivation: http.StatusUnprocessableEntity,
	ErrCodeReceiptTypeOff:    http.StatusUnprocessableEntity,
	ErrCodeUploadNotFound:    http.StatusUnprocessableEntity,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:     http.StatusTooManyRequests,

	ErrCodePaymentDisabled:  http.StatusServiceUnavailable,
	ErrCodePrintingDisabled: http.StatusServiceUnavailable,
	ErrCodeStorageDisabled:  http.StatusServiceUnavailable,
	ErrCodePaymentGateway:   http.StatusBadGateway,
	ErrCodeRenderFailed:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unlisted ERR_INVALID_* codes are field checks and map to 400;
// anything else unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "ERR_INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// domainCodeAliases covers domain codes whose ERR_ form differs from a plain prefix
var domainCodeAliases = map[string]string{
	"INTERNAL_ERROR":      ErrCodeInternal,
	"PASSWORD_HASH_ERROR": ErrCodeInternal,
	"VALIDATION_ERROR":    ErrCodeValidation,
}

// NormalizeErrorCode converts a domain error code (NOT_FOUND, EMPTY_SALE) to
// its API form (ERR_NOT_FOUND, ERR_EMPTY_SALE). Codes already in API form are
// returned as-is.
func NormalizeErrorCode(code string) string {
	if code == "" {
		return ErrCodeUnknown
	}
	if alias, ok := domainCodeAliases[code]; ok {
		return alias
	}
	if strings.HasPrefix(code, "ERR_") {
		return code
	}
	return "ERR_" + code
}
