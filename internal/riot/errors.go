package riot

import (
	"errors"
	"fmt"
	"net/http"
)

type Category int

const (
	CategoryUnavailable Category = iota
	CategoryNotFound
	CategoryRateLimited
	CategoryInvalidRequest
	CategoryUnauthenticated
)

func (c Category) String() string {
	switch c {
	case CategoryNotFound:
		return "not_found"
	case CategoryRateLimited:
		return "rate_limited"
	case CategoryInvalidRequest:
		return "invalid_request"
	case CategoryUnauthenticated:
		return "unauthenticated"
	default:
		return "unavailable"
	}
}

// Error is a failed upstream call. Status is the HTTP status, or 500 for transport failures and timeouts.
type Error struct {
	Status int
	Kind   string
	URL    string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("riot: %s (%d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("riot: %s (%d)", e.Kind, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Category() Category {
	switch {
	case e.Status == http.StatusNotFound:
		return CategoryNotFound
	case e.Status == http.StatusTooManyRequests:
		return CategoryRateLimited
	case e.Status == http.StatusUnauthorized:
		return CategoryUnauthenticated
	case e.Status >= 400 && e.Status < 500:
		return CategoryInvalidRequest
	default:
		return CategoryUnavailable
	}
}

func KindFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Invalid request"
	case http.StatusUnauthorized:
		return "Invalid API Key"
	case http.StatusForbidden:
		return "Access forbidden"
	case http.StatusNotFound:
		return "Not found"
	case http.StatusTooManyRequests:
		return "Rate limit exceeded"
	case http.StatusInternalServerError:
		return "Riot server error"
	case http.StatusServiceUnavailable:
		return "Service unavailable"
	default:
		return fmt.Sprintf("HTTP Error %d", status)
	}
}

func newStatusError(status int, url string) *Error {
	return &Error{Status: status, Kind: KindFor(status), URL: url}
}

func newTransportError(url string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Kind: KindFor(http.StatusInternalServerError), URL: url, Err: err}
}

// InvalidRequest reports a request rejected before reaching the API.
func InvalidRequest(err error) *Error {
	return &Error{Status: http.StatusBadRequest, Kind: KindFor(http.StatusBadRequest), Err: err}
}

// StatusOf returns the upstream status of err, 500 for any non-upstream error and 0 for nil.
func StatusOf(err error) int {
	if err == nil {
		return 0
	}
	var re *Error
	if errors.As(err, &re) {
		return re.Status
	}
	return http.StatusInternalServerError
}

func KindOf(err error) string {
	if err == nil {
		return ""
	}
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindFor(http.StatusInternalServerError)
}

func CategoryOf(err error) Category {
	var re *Error
	if errors.As(err, &re) {
		return re.Category()
	}
	return CategoryUnavailable
}

func IsRateLimited(err error) bool {
	return err != nil && CategoryOf(err) == CategoryRateLimited
}

func IsNotFound(err error) bool {
	return err != nil && CategoryOf(err) == CategoryNotFound
}
