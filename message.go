package vonage

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yosatak/vonage-go-core/coding"
)

// dateReceivedLayout is the timestamp format the gateway uses for the
// date-received field of inbound lookups.
const dateReceivedLayout = "2006-01-02 15:04:05"

// maxClientRefLen is the gateway-side limit on client-ref. Longer values
// are accepted here and rejected by the API, not by this layer.
const maxClientRefLen = 40

// Message is one logical message exchanged with the gateway. It is built
// in one of two modes, fixed at construction:
//
//   - send mode: the message carries a request-field map built from
//     recipient, sender and typed setters, read out once for transmission;
//   - lookup mode: the message wraps an external message id and exists to
//     receive the gateway's reply for that id.
//
// After a decoded reply is attached the accessors read from it, resolving
// between the flat single-message shape and the multi-part shape. Absent
// fields read as zero values; the only error this type ever produces is
// the read-only violation raised by the deprecated LegacyView.
//
// A Message is not safe for concurrent mutation. Once setters and
// AttachResponse are done it may be read concurrently.
type Message struct {
	id   string // external id, lookup mode only
	kind Kind   // declared variant; empty when none was declared

	logID string // correlation id for log lines, send mode only

	request   map[string]any // live request fields (the dirty view once committed)
	committed map[string]any // snapshot taken on first read-for-transmission

	response Response

	autodetect bool
	detector   func(text string) bool

	part *int // pinned part index when this is a virtual sub-message

	data map[string]any // FromMap/ToMap backing store, independent of the above
}

// NewMessage builds a send-mode message with no declared variant type.
// Keys in additional win over the to/from defaults.
func NewMessage(to, from string, additional map[string]any) *Message {
	return newSendMessage("", to, from, additional)
}

// LookupMessage builds a lookup-mode message for an already-submitted
// message identified by its external id.
func LookupMessage(id string) *Message {
	return &Message{
		id:       id,
		detector: coding.RequiresUnicode,
	}
}

func newSendMessage(kind Kind, to, from string, additional map[string]any) *Message {
	m := &Message{
		kind:  kind,
		logID: uuid.New().String(),
		request: map[string]any{
			"to":   to,
			"from": from,
		},
		detector: coding.RequiresUnicode,
	}
	if kind != "" {
		m.request["type"] = string(kind)
	}
	for k, v := range additional {
		m.request[k] = v
	}
	return m
}

// LogID returns the correlation id attached to send-mode messages for
// structured logging. Empty in lookup mode.
func (m *Message) LogID() string {
	return m.logID
}

func (m *Message) set(field string, value any) *Message {
	if m.request == nil {
		m.request = make(map[string]any)
	}
	m.request[field] = value
	return m
}

// RequestDLR sets the status-report-req flag, asking the gateway for a
// delivery receipt.
func (m *Message) RequestDLR(enable bool) *Message {
	if enable {
		return m.set("status-report-req", 1)
	}
	return m.set("status-report-req", 0)
}

// SetCallback sets the per-message delivery receipt callback URL.
func (m *Message) SetCallback(url string) *Message {
	return m.set("callback", url)
}

// SetClientRef sets the caller's reference for this message. The gateway
// caps it at 40 characters; longer values pass through here and surface
// as an API error.
func (m *Message) SetClientRef(ref string) *Message {
	if len(ref) > maxClientRefLen {
		log.WithFields(logrus.Fields{
			"logID":  m.logID,
			"length": len(ref),
		}).Debug("client-ref exceeds the gateway limit and will be rejected downstream")
	}
	return m.set("client-ref", ref)
}

// SetNetwork forces delivery through the given network code.
func (m *Message) SetNetwork(code string) *Message {
	return m.set("network-code", code)
}

// SetTTL sets the delivery time-to-live in milliseconds.
func (m *Message) SetTTL(ms int) *Message {
	return m.set("ttl", ms)
}

// SetClass sets the data-coding-scheme message class. The gateway expects
// 0 through 3; out-of-range values are not rejected locally.
func (m *Message) SetClass(class int) *Message {
	return m.set("message-class", class)
}

// SetMessageType overrides the wire type field and the declared variant.
func (m *Message) SetMessageType(kind Kind) *Message {
	m.kind = kind
	return m.set("type", string(kind))
}

// EnableEncodingDetection makes RequestData compute the type field from
// the text content instead of the declared variant.
func (m *Message) EnableEncodingDetection() *Message {
	m.autodetect = true
	return m
}

// DisableEncodingDetection restores the declared variant type. The
// classifier is never consulted while detection is off.
func (m *Message) DisableEncodingDetection() *Message {
	m.autodetect = false
	return m
}

// EncodingDetectionEnabled reports whether autodetection is on.
func (m *Message) EncodingDetectionEnabled() bool {
	return m.autodetect
}

// SetDetector replaces the unicode classifier consulted by encoding
// detection. The default is coding.RequiresUnicode.
func (m *Message) SetDetector(fn func(text string) bool) *Message {
	if fn != nil {
		m.detector = fn
	}
	return m
}

// applyDetection recomputes the type field from the text content. Runs
// exactly once per read-for-transmission, immediately before the request
// map is externalized.
func (m *Message) applyDetection() {
	if !m.autodetect {
		return
	}
	text, ok := m.request["text"].(string)
	if !ok {
		return
	}
	if m.detector != nil && m.detector(text) {
		m.request["type"] = string(KindUnicode)
		return
	}
	if m.kind != "" {
		m.request["type"] = string(m.kind)
	}
}

// RequestData finalizes and returns the request fields for transmission.
// With encoding detection enabled the type field is recomputed from the
// text content first. The first call snapshots the result as the
// committed view; later setter calls mutate only the dirty view, which
// the legacy adapter reads last. Each call returns a fresh copy.
func (m *Message) RequestData() map[string]any {
	if m.request == nil {
		return nil
	}
	m.applyDetection()
	out := make(map[string]any, len(m.request))
	for k, v := range m.request {
		out[k] = v
	}
	if m.committed == nil {
		snapshot := make(map[string]any, len(out))
		for k, v := range out {
			snapshot[k] = v
		}
		m.committed = snapshot
	}
	return out
}

// AttachResponse attaches the decoded gateway reply. The lifecycle calls
// for exactly one attachment from one call site; a replacement is logged
// rather than rejected, keeping read-only violations the sole error kind.
func (m *Message) AttachResponse(r Response) {
	if m.response != nil {
		log.WithField("logID", m.logID).Debug("replacing previously attached gateway response")
	}
	m.response = r
}

// Response returns the attached gateway reply, or nil.
func (m *Message) Response() Response {
	return m.response
}

// Count returns the number of physical parts in the attached reply, or 0
// when no reply is attached or the reply is the flat shape.
func (m *Message) Count() int {
	if parted, ok := m.response.(*PartedResponse); ok {
		return len(parted.Parts)
	}
	return 0
}

// Part returns a virtual sub-message pinned to the given entry of a
// multi-part reply: its accessors ignore caller-passed indices and always
// read messages[i]. The sub-message shares the parent's backing data.
func (m *Message) Part(i int) *Message {
	idx := i
	return &Message{
		id:         m.id,
		kind:       m.kind,
		logID:      m.logID,
		request:    m.request,
		committed:  m.committed,
		response:   m.response,
		autodetect: m.autodetect,
		detector:   m.detector,
		part:       &idx,
	}
}

// effectiveIndex resolves which part a getter should read: a pinned
// sub-message index wins, then an explicit caller index, then the most
// recently indexed part (count-1).
func (m *Message) effectiveIndex(index []int) int {
	if m.part != nil {
		return *m.part
	}
	if len(index) > 0 {
		return index[0]
	}
	return m.Count() - 1
}

// responseField reads one field from the attached reply: the resolved
// part of a multi-part reply, or the flat record directly (index
// ignored). Absent data reads as "".
func (m *Message) responseField(field string, index []int) string {
	switch r := m.response.(type) {
	case *PartedResponse:
		i := m.effectiveIndex(index)
		if i < 0 || i >= len(r.Parts) {
			return ""
		}
		return r.Parts[i].String(field)
	case *FlatResponse:
		return r.Record.String(field)
	}
	return ""
}

// flatField reads one field from the flat reply shape only.
func (m *Message) flatField(field string) string {
	if flat, ok := m.response.(*FlatResponse); ok {
		return flat.Record.String(field)
	}
	return ""
}

// MessageID returns the gateway's id for the message. A lookup-mode
// message answers with its stored external id; a send-mode message reads
// message-id from the reply part resolved by index.
func (m *Message) MessageID(index ...int) string {
	if m.id != "" {
		return m.id
	}
	return m.responseField("message-id", index)
}

// Status returns the submission status of the resolved part.
func (m *Message) Status(index ...int) string {
	return m.responseField("status", index)
}

// FinalStatus returns the final delivery status of the resolved part,
// when the gateway reported one.
func (m *Message) FinalStatus(index ...int) string {
	return m.responseField("final-status", index)
}

// RemainingBalance returns the account balance after the resolved part.
func (m *Message) RemainingBalance(index ...int) string {
	return m.responseField("remaining-balance", index)
}

// Network returns the network that carried the resolved part.
func (m *Message) Network(index ...int) string {
	return m.responseField("network", index)
}

// To returns the recipient from the reply. Both reply shapes use the
// same field name, so this is an indexed lookup on the multi-part shape
// and a direct read on the flat one.
func (m *Message) To(index ...int) string {
	return m.responseField("to", index)
}

// Price returns the message price. The gateway names this field
// message-price in send results and price in lookup results.
func (m *Message) Price(index ...int) string {
	if _, ok := m.response.(*PartedResponse); ok {
		return m.responseField("message-price", index)
	}
	return m.flatField("price")
}

// DeliveryStatus returns the flat shape's status field. Multi-part
// replies report status per part via Status, so this reads as absent on
// them.
func (m *Message) DeliveryStatus() string {
	return m.flatField("status")
}

// From returns the sender from a flat lookup reply.
func (m *Message) From() string {
	return m.flatField("from")
}

// Body returns the message text from a flat lookup reply.
func (m *Message) Body() string {
	return m.flatField("body")
}

// DateReceived returns the parsed date-received timestamp from a flat
// lookup reply, or the zero time when absent or unparseable.
func (m *Message) DateReceived() time.Time {
	raw := m.flatField("date-received")
	if raw == "" {
		return time.Time{}
	}
	ts, err := time.Parse(dateReceivedLayout, raw)
	if err != nil {
		log.WithFields(logrus.Fields{
			"logID": m.logID,
			"value": raw,
		}).Debug("unparseable date-received in gateway response")
		return time.Time{}
	}
	return ts
}

// DeliveryError returns the error-code field from a flat lookup reply.
func (m *Message) DeliveryError() string {
	return m.flatField("error-code")
}

// DeliveryLabel returns the error-code-label field from a flat lookup
// reply.
func (m *Message) DeliveryLabel() string {
	return m.flatField("error-code-label")
}
