package vonage

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is one decoded object from a gateway reply, either a single
// message or one physical part of a split message.
type Record map[string]any

// String returns the named field as a string, or "" when the field is
// absent. Numeric JSON values are formatted rather than dropped because
// the gateway is inconsistent about quoting counts and prices.
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Response is a decoded gateway reply. The gateway answers in one of two
// shapes: send and status results carry a "messages" list with one entry
// per physical SMS part (PartedResponse), while inbound-message lookups
// return a flat object describing a single message (FlatResponse).
type Response interface {
	isResponse()
}

// PartedResponse is the multi-part reply shape: one Record per physical
// part, in submission order.
type PartedResponse struct {
	Parts []Record
}

func (*PartedResponse) isResponse() {}

// FlatResponse is the single-object reply shape used by inbound and
// search lookups.
type FlatResponse struct {
	Record Record
}

func (*FlatResponse) isResponse() {}

// ParseResponse decodes a raw gateway reply body and resolves its shape.
// A body carrying a "messages" list becomes a PartedResponse; anything
// else is treated as the flat single-message shape. Field-level oddities
// degrade to absent values later, only undecodable JSON is an error.
func ParseResponse(raw []byte) (Response, error) {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return ResponseFromMap(body), nil
}

// ResponseFromMap resolves an already-decoded reply body into a Response.
func ResponseFromMap(body map[string]any) Response {
	list, ok := body["messages"].([]any)
	if !ok {
		return &FlatResponse{Record: Record(body)}
	}
	parts := make([]Record, 0, len(list))
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			log.WithField("entry", fmt.Sprintf("%T", entry)).Debug("skipping non-object entry in messages list")
			continue
		}
		parts = append(parts, Record(obj))
	}
	log.WithField("parts", len(parts)).Debug("decoded multi-part gateway response")
	return &PartedResponse{Parts: parts}
}
