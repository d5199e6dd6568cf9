// Package coding classifies SMS text against the GSM 03.38 character set
// and estimates encoded sizes, so callers can decide whether a message
// needs UCS-2 submission and how many physical segments it will occupy.
package coding

import (
	"golang.org/x/text/encoding/unicode"
)

// Define the GSM 03.38 basic and extended character sets
var gsm0338BasicSet = map[rune]bool{
	'@': true, '£': true, '$': true, '¥': true, 'è': true, 'é': true,
	'ù': true, 'ì': true, 'ò': true, 'Ç': true, '\n': true, 'Ø': true,
	'ø': true, '\r': true, 'Å': true, 'å': true, 'Δ': true, '_': true,
	'Φ': true, 'Γ': true, 'Λ': true, 'Ω': true, 'Π': true, 'Ψ': true,
	'Σ': true, 'Θ': true, 'Ξ': true, 'Æ': true, 'æ': true, 'ß': true,
	'É': true,
	' ': true, '!': true, '"': true, '#': true, '¤': true, '%': true,
	'&': true, '\'': true, '(': true, ')': true, '*': true, '+': true,
	',': true, '-': true, '.': true, '/': true, '0': true, '1': true,
	'2': true, '3': true, '4': true, '5': true, '6': true, '7': true,
	'8': true, '9': true, ':': true, ';': true, '<': true, '=': true,
	'>': true, '?': true, '¡': true, 'A': true, 'B': true, 'C': true,
	'D': true, 'E': true, 'F': true, 'G': true, 'H': true, 'I': true,
	'J': true, 'K': true, 'L': true, 'M': true, 'N': true, 'O': true,
	'P': true, 'Q': true, 'R': true, 'S': true, 'T': true, 'U': true,
	'V': true, 'W': true, 'X': true, 'Y': true, 'Z': true, 'Ä': true,
	'Ö': true, 'Ñ': true, 'Ü': true, '§': true, '¿': true, 'a': true,
	'b': true, 'c': true, 'd': true, 'e': true, 'f': true, 'g': true,
	'h': true, 'i': true, 'j': true, 'k': true, 'l': true, 'm': true,
	'n': true, 'o': true, 'p': true, 'q': true, 'r': true, 's': true,
	't': true, 'u': true, 'v': true, 'w': true, 'x': true, 'y': true,
	'z': true, 'ä': true, 'ö': true, 'ñ': true, 'ü': true, 'à': true,
}

// Define the GSM 03.38 extended character set (escape-prefixed on the wire,
// so each of these costs two septets).
var gsm0338ExtendedSet = map[rune]bool{
	'^': true, '{': true, '}': true, '\\': true, '[': true, '~': true,
	']': true, '|': true, '€': true, '\f': true,
}

// Segment limits per GSM 03.40: a single SMS carries 140 bytes of payload,
// a concatenated segment loses 6 bytes to the UDH header.
const (
	singleLimitBytes    = 140
	multipartLimitBytes = 140 - 6

	gsm7SingleSeptets    = 160 // 140 bytes packed at 7 bits per septet
	gsm7MultipartSeptets = 153 // 134 bytes packed
)

var ucs2Encoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// IsGSM0338 reports whether r is representable in the GSM 03.38 default
// alphabet, including its escape-extended table.
func IsGSM0338(r rune) bool {
	return gsm0338BasicSet[r] || gsm0338ExtendedSet[r]
}

// RequiresUnicode reports whether text contains any character outside the
// GSM 03.38 alphabet and therefore must be submitted as a unicode message.
func RequiresUnicode(text string) bool {
	for _, r := range text {
		if !IsGSM0338(r) {
			return true
		}
	}
	return false
}

// GSM7Length returns the number of septets text occupies in the GSM 03.38
// default alphabet. Extended characters cost two septets for the escape
// prefix. Characters outside the alphabet count as one septet, matching
// the gateway's replace-with-'?' behavior for dirty input.
func GSM7Length(text string) int {
	var n int
	for _, r := range text {
		if gsm0338ExtendedSet[r] {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// UCS2Length returns the number of bytes text occupies when encoded as
// UCS-2/UTF-16 (two bytes per BMP code point, four for surrogate pairs).
func UCS2Length(text string) int {
	encoded, err := ucs2Encoder.NewEncoder().Bytes([]byte(text))
	if err != nil {
		// The UTF-16 encoder substitutes rather than fails on valid UTF-8
		// input; a hard error means the input was not a Go string at all.
		return 0
	}
	return len(encoded)
}

// Segments returns the number of physical SMS parts needed to carry text,
// classifying it as GSM-7 or UCS-2 first.
func Segments(text string) int {
	if text == "" {
		return 0
	}
	if RequiresUnicode(text) {
		length := UCS2Length(text)
		if length <= singleLimitBytes {
			return 1
		}
		return (length + multipartLimitBytes - 1) / multipartLimitBytes
	}
	septets := GSM7Length(text)
	if septets <= gsm7SingleSeptets {
		return 1
	}
	return (septets + gsm7MultipartSeptets - 1) / gsm7MultipartSeptets
}
