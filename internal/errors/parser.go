package errors

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError maps storage and network failures to a code and a message that
// is safe to show. context names the operation, e.g. "create shop".
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errLower := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// postgres 23505 and sqlite UNIQUE
	if strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint") {
		return parseDuplicateKeyError(errLower)
	}

	// postgres 23503 and sqlite FOREIGN KEY
	if strings.Contains(errLower, "foreign key constraint") {
		return parseForeignKeyError(errLower)
	}

	if strings.Contains(errLower, "not-null constraint") || strings.Contains(errLower, "not null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	}

	if strings.Contains(errLower, "check constraint") {
		return ErrorInfo{Code: ValidationInvalidInput, Message: "Some values are out of range"}
	}

	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "An upstream service is unavailable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: defaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "admin_grants"):
		return ErrorInfo{Code: AdminGrantExists, Message: "This email already has admin access"}
	case strings.Contains(errLower, "users"), strings.Contains(errLower, "email"):
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "This email is already registered"}
	default:
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "This record already exists"}
	}
}

func parseForeignKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "still referenced") {
		return ErrorInfo{Code: ResourceConflict, Message: "Linked records prevent this change"}
	}
	if strings.Contains(errLower, "shop_id") || strings.Contains(errLower, "fk_shops") {
		return ErrorInfo{Code: ShopNotFound, Message: "Shop not found"}
	}
	if strings.Contains(errLower, "request_id") {
		return ErrorInfo{Code: ServiceRequestNotFound, Message: "Request not found"}
	}
	return ErrorInfo{Code: ResourceNotFound, Message: "A referenced record was not found"}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "shop request"):
		return "Shop request not found"
	case strings.Contains(contextLower, "shop"):
		return "Shop not found"
	case strings.Contains(contextLower, "request"):
		return "Request not found"
	case strings.Contains(contextLower, "user"):
		return "User not found"
	case strings.Contains(contextLower, "grant"):
		return "Admin grant not found"
	}
	return "The requested record was not found"
}

func defaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"), strings.Contains(contextLower, "submit"):
		return "Could not save. Please try again later"
	case strings.Contains(contextLower, "update"):
		return "Could not update. Please try again later"
	case strings.Contains(contextLower, "delete"):
		return "Could not delete. Please try again later"
	}
	return "Something went wrong. Please try again later"
}

// StatusFor picks the HTTP status that matches a parsed error code.
func StatusFor(info ErrorInfo) int {
	switch info.Code {
	case ResourceNotFound, ShopNotFound, ServiceRequestNotFound:
		return http.StatusNotFound
	case ResourceAlreadyExists, AuthEmailAlreadyExists, AdminGrantExists, ResourceConflict:
		return http.StatusConflict
	case ValidationRequired, ValidationInvalidInput:
		return http.StatusBadRequest
	case InternalExternalAPI:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// ParseAndRespond parses err and writes it with the matching status.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, err error, context string) {
	info := ParseError(err, context)
	c.JSON(StatusFor(info), ErrorResponse{
		Error:   info.Code,
		Message: info.Message,
	})
}
