package platbox

import (
	"encoding/json"
	"errors"
	"strconv"
)

// Result is a callback response envelope prior to signing. Every value is
// a string on the wire.
type Result map[string]string

// SignedResult pairs the canonical JSON response body with the signature
// that goes into the X-Signature header. Status and Code duplicate the
// envelope fields for journaling without reparsing.
type SignedResult struct {
	Body      []byte
	Signature string
	Status    string
	Code      string
}

// seal serializes the result with keys in canonical (sorted) order and
// signs that exact byte sequence. encoding/json emits map keys sorted, so
// the marshalled form is already canonical.
func (g *gateway) seal(res Result) *SignedResult {
	body, err := json.Marshal(res)
	if err != nil {
		// Unreachable for a map[string]string, kept as a guard.
		body = []byte(`{"code":"1000","status":"error"}`)
	}
	return &SignedResult{
		Body:      body,
		Signature: Sign(body, g.creds.SecretKey),
		Status:    res["status"],
		Code:      res["code"],
	}
}

func errorResult(err error) Result {
	code := CodeTechnical
	var pe *Error
	if errors.As(err, &pe) {
		code = pe.Code
	}
	return Result{
		"status":      "error",
		"code":        strconv.Itoa(code),
		"description": Description(code),
	}
}
