package vonage

import (
	"fmt"
)

// ReadOnlyError is returned when legacy positional code attempts to write
// through a LegacyView. It is the only error this package's entity layer
// raises; every missing-field condition reads as an absent value instead.
type ReadOnlyError struct {
	Offset string
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("message data is read-only, cannot modify %q", e.Offset)
}

// LegacyView exposes array-style and sequential access over a Message for
// callers that predate the named accessors. It is strictly read-only and
// carries no state of its own beyond the message it wraps.
//
// Deprecated: use the named accessors on Message. This adapter exists
// only for unmigrated callers and will be removed.
type LegacyView struct {
	msg *Message
}

// Legacy returns the deprecated positional view over the message.
//
// Deprecated: use the named accessors on Message.
func (m *Message) Legacy() *LegacyView {
	return &LegacyView{msg: m}
}

// responseRecord is the effective response view for positional reads: the
// flat record, or the pinned part of a virtual sub-message. An unpinned
// multi-part reply has no single effective record; its parts are reached
// through integer offsets.
func (v *LegacyView) responseRecord() Record {
	switch r := v.msg.response.(type) {
	case *FlatResponse:
		return r.Record
	case *PartedResponse:
		if v.msg.part != nil && *v.msg.part >= 0 && *v.msg.part < len(r.Parts) {
			return r.Parts[*v.msg.part]
		}
	}
	return nil
}

// Has reports whether the offset resolves to a value: a field of the
// effective response view, a committed or dirty request field, or an
// integer offset below the part count (that many virtual parts exist).
func (v *LegacyView) Has(offset any) bool {
	if i, ok := offset.(int); ok {
		return i >= 0 && i < v.msg.Count()
	}
	key := fmt.Sprint(offset)
	if rec := v.responseRecord(); rec != nil {
		if _, ok := rec[key]; ok {
			return true
		}
	}
	if _, ok := v.msg.committed[key]; ok {
		return true
	}
	if _, ok := v.msg.request[key]; ok {
		return true
	}
	return false
}

// Get reads the offset, searching the effective response view, then the
// parts of a multi-part reply (an integer offset names a part, a field
// name reads the most recent part), then the committed request view, then
// the dirty request view. First match wins; no match reads as absent.
func (v *LegacyView) Get(offset any) (any, bool) {
	key := fmt.Sprint(offset)
	if rec := v.responseRecord(); rec != nil {
		if val, ok := rec[key]; ok {
			return val, true
		}
	}
	if parted, ok := v.msg.response.(*PartedResponse); ok && len(parted.Parts) > 0 {
		if i, isInt := offset.(int); isInt {
			if i >= 0 && i < len(parted.Parts) {
				return parted.Parts[i], true
			}
		} else if val, ok := parted.Parts[len(parted.Parts)-1][key]; ok {
			return val, true
		}
	}
	if val, ok := v.msg.committed[key]; ok {
		return val, true
	}
	if val, ok := v.msg.request[key]; ok {
		return val, true
	}
	return nil, false
}

// Set always fails: the positional view never mutates message state.
func (v *LegacyView) Set(offset, _ any) error {
	return &ReadOnlyError{Offset: fmt.Sprint(offset)}
}

// Unset always fails: the positional view never mutates message state.
func (v *LegacyView) Unset(offset any) error {
	return &ReadOnlyError{Offset: fmt.Sprint(offset)}
}

// Parts returns a cursor over the physical parts of the attached reply.
// Each call starts a fresh cursor; the message itself carries no
// iteration state.
func (v *LegacyView) Parts() *PartIterator {
	return &PartIterator{msg: v.msg}
}

// PartIterator walks the parts of a multi-part reply in order. Before a
// reply is attached, or on a flat reply, it is never valid.
//
// Deprecated: range over Message.Count with indexed accessors instead.
type PartIterator struct {
	msg    *Message
	cursor int
}

// Rewind resets the cursor to the first part.
func (it *PartIterator) Rewind() {
	it.cursor = 0
}

// Valid reports whether the cursor points at an existing part.
func (it *PartIterator) Valid() bool {
	return it.cursor >= 0 && it.cursor < it.msg.Count()
}

// Current returns the raw record of the part under the cursor, or nil
// when the cursor is not valid.
func (it *PartIterator) Current() Record {
	if !it.Valid() {
		return nil
	}
	parted := it.msg.response.(*PartedResponse)
	return parted.Parts[it.cursor]
}

// Next advances the cursor.
func (it *PartIterator) Next() {
	it.cursor++
}

// Key returns the current cursor position.
func (it *PartIterator) Key() int {
	return it.cursor
}
