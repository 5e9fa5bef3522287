package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is bumped when the envelope shape changes.
const EnvelopeVersion = 1

// Envelope wraps every JSON response body.
type Envelope struct {
	Version int       `json:"v"`
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// EnvelopeTransformer is a huma transformer that wraps handler output and
// errors in an Envelope.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return Envelope{Version: EnvelopeVersion, Error: apiErr}, nil
	}
	if _, ok := v.(Envelope); ok {
		return v, nil
	}
	return Envelope{
		Version: EnvelopeVersion,
		Success: strings.HasPrefix(status, "2"),
		Data:    v,
	}, nil
}
