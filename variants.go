package vonage

import "encoding/hex"

// Kind is the wire type a concrete message variant declares at
// construction. The value is the exact string the gateway expects in the
// request's type field.
type Kind string

const (
	KindText    Kind = "text"
	KindBinary  Kind = "binary"
	KindWapPush Kind = "wappush"
	KindUnicode Kind = "unicode"
	KindVCal    Kind = "vcal"
	KindVCard   Kind = "vcard"
)

// NewText builds a send-mode text message.
func NewText(to, from, text string) *Message {
	return newSendMessage(KindText, to, from, map[string]any{
		"text": text,
	})
}

// NewUnicodeText builds a send-mode text message submitted as unicode,
// for content outside the GSM 03.38 alphabet.
func NewUnicodeText(to, from, text string) *Message {
	return newSendMessage(KindUnicode, to, from, map[string]any{
		"text": text,
	})
}

// NewBinary builds a send-mode binary message. Body and user data header
// are hex-encoded for the wire.
func NewBinary(to, from string, body, udh []byte) *Message {
	return newSendMessage(KindBinary, to, from, map[string]any{
		"body": hex.EncodeToString(body),
		"udh":  hex.EncodeToString(udh),
	})
}

// NewWapPush builds a send-mode WAP push message pointing the handset at
// url. Validity is in milliseconds.
func NewWapPush(to, from, title, url string, validity int) *Message {
	return newSendMessage(KindWapPush, to, from, map[string]any{
		"title":    title,
		"url":      url,
		"validity": validity,
	})
}

// NewVCal builds a send-mode calendar-event message.
func NewVCal(to, from, event string) *Message {
	return newSendMessage(KindVCal, to, from, map[string]any{
		"vcal": event,
	})
}

// NewVCard builds a send-mode contact-card message.
func NewVCard(to, from, card string) *Message {
	return newSendMessage(KindVCard, to, from, map[string]any{
		"vcard": card,
	})
}

// FromMap replaces the message's plain backing store wholesale. This
// hydration path serves simple data-carrying variants and is independent
// of both the request fields and any attached response.
func (m *Message) FromMap(data map[string]any) {
	m.data = data
}

// ToMap returns the plain backing store exactly as last hydrated.
func (m *Message) ToMap() map[string]any {
	return m.data
}
