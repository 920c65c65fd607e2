package platbox

import "fmt"

// Callback error codes, fixed by the processor protocol. Which codes a
// given request may answer with is defined by the processor documentation;
// the descriptions are shared by all handlers.
const (
	CodeMalformed        = 400
	CodeBadSignature     = 401
	CodeBadRequestFields = 406
	CodeFieldMismatch    = 409
	CodeTechnical        = 1000
	CodeAccountNotFound  = 1001
	CodeBadCurrency      = 1002
	CodeBadAmount        = 1003
	CodeUnavailable      = 1005
	CodeAlreadyReserved  = 2000
	CodeAlreadyCompleted = 2001
	CodeCancelled        = 2002
	CodeReservationStale = 3000
)

var errorText = map[int]string{
	CodeMalformed:        "malformed message",
	CodeBadSignature:     "invalid request signature",
	CodeBadRequestFields: "invalid request data",
	CodeFieldMismatch:    "request fields do not match merchant records",
	CodeTechnical:        "general technical error",
	CodeAccountNotFound:  "user account not found or blocked",
	CodeBadCurrency:      "invalid payment currency",
	CodeBadAmount:        "invalid payment amount",
	CodeUnavailable:      "requested items or services are unavailable",
	CodeAlreadyReserved:  "payment with this id is already reserved",
	CodeAlreadyCompleted: "payment with this id is already completed",
	CodeCancelled:        "payment with this id is cancelled",
	CodeReservationStale: "previously reserved transaction is stale",
}

// Description returns the protocol text for a code, falling back to the
// generic technical error for anything unknown.
func Description(code int) string {
	if text, ok := errorText[code]; ok {
		return text
	}
	return errorText[CodeTechnical]
}

// Error is a protocol-level failure carrying its numeric code. It is
// converted into a signed error envelope at the handler boundary and never
// crosses the HTTP layer.
type Error struct {
	Code int
}

func (e *Error) Error() string {
	return fmt.Sprintf("platbox: %s (code %d)", Description(e.Code), e.Code)
}

func failCode(code int) *Error {
	return &Error{Code: code}
}
