package internal

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/derWhity/fyyur/internal/validator"
)

const (
	// ErrCodeUnknown is the error code for unknown errors
	ErrCodeUnknown = "UNKNOWN_ERROR"
	// ErrCodeRepoError is returned when the request to a repo fails with an error
	ErrCodeRepoError = "STORAGE_QUERY_FAILED"
	// ErrCodeIllegalJSON is returned when the request did not contain a valid JSON body
	ErrCodeIllegalJSON = "ILLEGAL_JSON_REQUEST"
	// ErrCodeValidationFailed is returned when at least one field of the transferred data does not validate. The
	// details contain one entry per invalid field.
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	// ErrCodeInvalidUint is returned when an ID is required inside a request, but is not provided or in a wrong format
	ErrCodeInvalidUint = "INVALID_UINT"
	// ErrCodeVenueNotFound is returned when an operation works on a venue that does not exist
	ErrCodeVenueNotFound = "VENUE_NOT_FOUND"
	// ErrCodeArtistNotFound is returned when an operation works on an artist that does not exist
	ErrCodeArtistNotFound = "ARTIST_NOT_FOUND"
	// ErrCodeShowNotFound is returned when a show that does not exist is requested
	ErrCodeShowNotFound = "SHOW_NOT_FOUND"
	// ErrCodeEntityInUse is returned when a venue or artist should be deleted while shows still reference it
	ErrCodeEntityInUse = "ENTITY_IN_USE"
)

// HTTPError is an error that contains information about the error message to return to the client
type HTTPError struct {
	message string
	code    string
	status  int
	data    interface{}
}

// MakeError creates a new HTTPError with the given contents
func MakeError(status int, code, message string) *HTTPError {
	return MakeErrorWithData(status, code, message, nil)
}

// MakeErrorWithData creates a new HTTPError with the given contents and an additional data element
func MakeErrorWithData(status int, code, message string, data interface{}) *HTTPError {
	return &HTTPError{message, code, status, data}
}

// Error implements the errorer interface
func (e *HTTPError) Error() string {
	return e.message
}

// Status returns the HTTP status that should be returned
func (e *HTTPError) Status() int {
	return e.status
}

// ErrorCode returns the machine-readable error code
func (e *HTTPError) ErrorCode() string {
	return e.code
}

// Data returns additional data about the error
func (e *HTTPError) Data() interface{} {
	return e.data
}

// -- Shorthands -------------------------------------------------------------------------------------------------------

func makeValidationError(errs validator.Errors) *HTTPError {
	return MakeErrorWithData(
		http.StatusBadRequest,
		ErrCodeValidationFailed,
		"The submitted data is invalid",
		// Plain slice so the error encoder keeps the list instead of flattening it into a string
		[]validator.FieldError(errs),
	)
}

// makeStoreError logs the cause of a failed store operation and builds the single user-facing message for it, e.g.
// "An error occurred. Venue The Hall could not be listed." The cause is not passed on to the client.
func makeStoreError(logger *logrus.Entry, entity, name, action string, cause error) *HTTPError {
	msg := fmt.Sprintf("An error occurred. %s could not be %s.", entity, action)
	if name != "" {
		msg = fmt.Sprintf("An error occurred. %s %s could not be %s.", entity, name, action)
	}
	logger.WithError(cause).Error(msg)
	return MakeError(http.StatusInternalServerError, ErrCodeRepoError, msg)
}

func makeInUseError(entity, name string) *HTTPError {
	return MakeError(
		http.StatusConflict,
		ErrCodeEntityInUse,
		fmt.Sprintf("%s %s still has shows and cannot be deleted", entity, name),
	)
}
