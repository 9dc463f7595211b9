package errors

import (
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// Domain is the ErrorInfo domain attached to lifecycle statuses.
const Domain = "github.com/louisbranch/hackathon.space"

// Error is a refused lifecycle request.
//
// Guards report rule violations as verdict issues. An *Error is what a
// caller gets when it asks a verdict for its first failure, or when an
// admission gate refuses a request outright.
type Error struct {
	Code     Code
	Message  string            // en-US rendering, for logs and traces
	Metadata map[string]string // template values for localized rendering
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WithMetadata creates a domain error carrying template values.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// ToGRPCStatus converts the error to a gRPC status error. The status message
// keeps the en-US text; userMessage travels as a LocalizedMessage detail
// next to an ErrorInfo carrying the code and metadata.
func (e *Error) ToGRPCStatus(locale string, userMessage string) error {
	grpcCode := e.Code.GRPCCode()
	st, err := status.New(grpcCode, e.Message).WithDetails(
		&errdetails.ErrorInfo{
			Reason:   string(e.Code),
			Domain:   Domain,
			Metadata: e.Metadata,
		},
		&errdetails.LocalizedMessage{
			Locale:  locale,
			Message: userMessage,
		},
	)
	if err != nil {
		return status.New(grpcCode, e.Message).Err()
	}
	return st.Err()
}
