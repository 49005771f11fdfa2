package hockeylive

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnexpectedPayload is returned when the response matches none of the tolerated shapes.
var ErrUnexpectedPayload = errors.New("unexpected payload shape")

// extractGames pulls the raw game records out of a response body. Accepted
// shapes: a bare array, an object with a "games" array, or a single game object.
func extractGames(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrUnexpectedPayload)
	}

	switch trimmed[0] {
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode games array: %w", err)
		}
		return records, nil
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("decode games object: %w", err)
		}
		if nested, ok := obj["games"]; ok && isArray(nested) {
			var records []json.RawMessage
			if err := json.Unmarshal(nested, &records); err != nil {
				return nil, fmt.Errorf("decode games field: %w", err)
			}
			return records, nil
		}
		if _, ok := obj["team1short"]; ok {
			return []json.RawMessage{trimmed}, nil
		}
		if _, ok := obj["team2short"]; ok {
			return []json.RawMessage{trimmed}, nil
		}
		return nil, fmt.Errorf("%w: object without games", ErrUnexpectedPayload)
	default:
		return nil, fmt.Errorf("%w: starts with %q", ErrUnexpectedPayload, trimmed[0])
	}
}

// decodeRecord never fails; anything it cannot read is left at its zero value.
func decodeRecord(data json.RawMessage) rawGame {
	fields, ok := decodeObject(data)
	if !ok {
		return rawGame{}
	}
	g := rawGame{
		ID:         stringField(fields, "id"),
		Team1Short: stringField(fields, "team1short"),
		Team2Short: stringField(fields, "team2short"),
		Goals1:     numberField(fields, "goals1"),
		Goals2:     numberField(fields, "goals2"),
		Status:     stringField(fields, "status"),
		Date:       stringField(fields, "date"),
	}
	if nested, ok := decodeObject(fields["score"]); ok {
		g.Score = &rawScore{
			Goals1: numberField(nested, "goals1"),
			Goals2: numberField(nested, "goals2"),
			Status: stringField(nested, "status"),
		}
	}
	return g
}

func decodeObject(data json.RawMessage) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, false
	}
	return fields, true
}

func isArray(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// stringField reads a string or number field as text.
func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// numberField coerces a JSON number or numeric string to an int. Null, blank,
// non-numeric, fractional, negative and out-of-range values yield nil.
func numberField(fields map[string]json.RawMessage, key string) *int {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var text string
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		text = n.String()
	} else if err := json.Unmarshal(raw, &text); err != nil {
		return nil
	}
	return coerceInt(text)
}

func coerceInt(text string) *int {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if v, err := strconv.Atoi(text); err == nil {
		if v < 0 {
			return nil
		}
		return &v
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	// float64(math.MaxInt) rounds up to 2^63, so >= keeps int(f) in range.
	if f < 0 || f >= float64(math.MaxInt) {
		return nil
	}
	v := int(f)
	return &v
}
