package coding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiresUnicode(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"plain ascii", "hello world 123", false},
		{"gsm basic specials", "café £5 @home ¿qué?", false},
		{"gsm extended", "100% {euro} € [ok]", false},
		{"cyrillic", "Привет", true},
		{"cjk", "你好", true},
		{"emoji", "ok 👍", true},
		{"mixed single offender", "hello — world", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RequiresUnicode(tc.text))
		})
	}
}

func TestIsGSM0338(t *testing.T) {
	assert.True(t, IsGSM0338('a'))
	assert.True(t, IsGSM0338('é'))
	assert.True(t, IsGSM0338('€'), "extended table counts")
	assert.True(t, IsGSM0338('\n'))
	assert.False(t, IsGSM0338('中'))
	assert.False(t, IsGSM0338('—'))
}

func TestGSM7Length(t *testing.T) {
	assert.Zero(t, GSM7Length(""))
	assert.Equal(t, 5, GSM7Length("hello"))
	assert.Equal(t, 2, GSM7Length("€"), "extended characters carry the escape septet")
	assert.Equal(t, 4, GSM7Length("a€b"))
}

func TestUCS2Length(t *testing.T) {
	assert.Zero(t, UCS2Length(""))
	assert.Equal(t, 2, UCS2Length("a"))
	assert.Equal(t, 2, UCS2Length("€"))
	assert.Equal(t, 4, UCS2Length("👍"), "astral code points take a surrogate pair")
	assert.Equal(t, 12, UCS2Length("Привет"))
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"short gsm", "hello", 1},
		{"gsm single limit", strings.Repeat("a", 160), 1},
		{"gsm just over", strings.Repeat("a", 161), 2},
		{"gsm two full segments", strings.Repeat("a", 306), 2},
		{"gsm three segments", strings.Repeat("a", 307), 3},
		{"unicode single limit", strings.Repeat("ы", 70), 1},
		{"unicode just over", strings.Repeat("ы", 71), 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Segments(tc.text))
		})
	}
}
