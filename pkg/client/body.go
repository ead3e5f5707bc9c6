package client

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// BodyKind tags how a response body was decoded
type BodyKind int

const (
	BodyEmpty BodyKind = iota
	BodyJSON
	BodyNumber
	BodyText
)

func (k BodyKind) String() string {
	switch k {
	case BodyEmpty:
		return "empty"
	case BodyJSON:
		return "json"
	case BodyNumber:
		return "number"
	case BodyText:
		return "text"
	default:
		return "unknown"
	}
}

// ErrNoData is returned by Body.Into when there is nothing to decode
var ErrNoData = errors.New("response has no data")

// Body is a decoded response body. Raw always holds the bytes received.
type Body struct {
	Kind   BodyKind
	Raw    []byte
	Number float64 // set for BodyNumber
}

// Text returns the raw body as a string
func (b Body) Text() string {
	return string(b.Raw)
}

// Into decodes the body into v. JSON and numeric bodies go through
// encoding/json; text bodies can only be decoded into a *string.
func (b Body) Into(v any) error {
	switch b.Kind {
	case BodyJSON:
		return json.Unmarshal(b.Raw, v)
	case BodyNumber:
		return json.Unmarshal([]byte(strconv.FormatFloat(b.Number, 'f', -1, 64)), v)
	case BodyText:
		if s, ok := v.(*string); ok {
			*s = b.Text()
			return nil
		}
		return errors.New("text body cannot be decoded as JSON")
	default:
		return ErrNoData
	}
}

// decodeBody applies the decoding priority list: empty (204 or no bytes),
// declared JSON, bare number, best-effort JSON, plain text.
func decodeBody(status int, contentType string, raw []byte) Body {
	if status == 204 || len(raw) == 0 {
		return Body{Kind: BodyEmpty, Raw: raw}
	}

	if strings.Contains(contentType, "application/json") && json.Valid(raw) {
		return Body{Kind: BodyJSON, Raw: raw}
	}

	if n, ok := parseNumber(string(raw)); ok {
		return Body{Kind: BodyNumber, Raw: raw, Number: n}
	}

	if json.Valid(raw) {
		return Body{Kind: BodyJSON, Raw: raw}
	}

	return Body{Kind: BodyText, Raw: raw}
}

// parseNumber accepts a decimal number surrounded by optional whitespace
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	// ParseFloat also accepts "Inf" and "NaN", which are not ids
	if strings.ContainsAny(s, "iInN") {
		return 0, false
	}
	return n, true
}
