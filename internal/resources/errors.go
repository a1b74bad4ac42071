package resources

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes that are not derived from a kind name.
const (
	CodeBadRequest    = "bad_request"
	CodeInvalidMenu   = "invalid_menu"
	CodeForbidden     = "forbidden"
	CodeInternalError = "internal_error"
)

// RequestError is a terminal failure returned to the API client as
// {code, message, status}.
type RequestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s (%d)", e.Code, e.Message, e.Status)
}

// InvalidItem reports an id that does not resolve to an item of kind.
func InvalidItem(kind string) *RequestError {
	return &RequestError{
		Code:    "invalid_" + kind,
		Message: fmt.Sprintf("Invalid %s ID", kind),
		Status:  http.StatusNotFound,
	}
}

// InvalidSlug reports a slug without a published item of kind.
func InvalidSlug(kind string) *RequestError {
	return &RequestError{
		Code:    "invalid_" + kind + "_slug",
		Message: fmt.Sprintf("Invalid %s slug.", kind),
		Status:  http.StatusNotFound,
	}
}

// InvalidMenu reports a menu id or location that does not resolve.
func InvalidMenu() *RequestError {
	return &RequestError{
		Code:    CodeInvalidMenu,
		Message: "Invalid Menu ID",
		Status:  http.StatusNotFound,
	}
}

// BadRequest reports malformed or missing request parameters. An empty
// message uses the generic text.
func BadRequest(message string) *RequestError {
	if message == "" {
		message = "Bad request."
	}
	return &RequestError{
		Code:    CodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// Forbidden reports a request rejected by a permission check.
func Forbidden() *RequestError {
	return &RequestError{
		Code:    CodeForbidden,
		Message: "Sorry, you are not allowed to do that.",
		Status:  http.StatusForbidden,
	}
}

// AsRequestError converts err into the error returned to clients. Errors that
// are not request errors become internal errors.
func AsRequestError(err error) *RequestError {
	if err == nil {
		return nil
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr
	}
	return &RequestError{
		Code:    CodeInternalError,
		Message: "Internal server error.",
		Status:  http.StatusInternalServerError,
	}
}
