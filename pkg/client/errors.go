package client

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrInvalidBaseURL is returned when a base URL option is invalid.
	ErrInvalidBaseURL = errors.New("quakeclient: invalid base URL")
	// ErrNilTransport indicates a nil round tripper was provided.
	ErrNilTransport = errors.New("quakeclient: transport cannot be nil")
)

// InvalidRangeError reports two related bounds given out of order, such as a
// start time after the end time or a minimum latitude above the maximum.
type InvalidRangeError struct {
	Lower      string
	Upper      string
	LowerValue string
	UpperValue string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("quakeclient: %s (%s) must not be greater than %s (%s)",
		e.Lower, e.LowerValue, e.Upper, e.UpperValue)
}

// InvalidBoundsError reports a single parameter outside its valid domain.
type InvalidBoundsError struct {
	Param string
	Value float64
	Min   float64
	Max   float64
}

func (e *InvalidBoundsError) Error() string {
	if math.IsInf(e.Min, -1) && math.IsInf(e.Max, 1) {
		return fmt.Sprintf("quakeclient: %s must be a finite number, got %s", e.Param, formatFloat(e.Value))
	}
	return fmt.Sprintf("quakeclient: %s must be within [%s, %s], got %s",
		e.Param, formatFloat(e.Min), formatFloat(e.Max), formatFloat(e.Value))
}

// RequestError is returned when the service answers with a non-2xx status.
type RequestError struct {
	StatusCode int
	Status     string
	Method     string
	URL        string
	// Body holds at most the first MiB of the response.
	Body []byte
}

func (e *RequestError) Error() string {
	status := e.Status
	if status == "" {
		status = strconv.Itoa(e.StatusCode)
	}
	return fmt.Sprintf("quakeclient: %s %s: unexpected status %s", e.Method, e.URL, status)
}

// Temporary reports whether the request may succeed if repeated.
func (e *RequestError) Temporary() bool {
	return e.StatusCode == 429 || (e.StatusCode >= 500 && e.StatusCode < 600)
}

// DeserializationError wraps a failure to decode a response body.
type DeserializationError struct {
	URL string
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("quakeclient: decoding response from %s: %v", e.URL, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}
