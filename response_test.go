package vonage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponseResolvesShape(t *testing.T) {
	t.Run("messages list becomes a parted response", func(t *testing.T) {
		raw := []byte(`{
			"message-count": "2",
			"messages": [
				{"status": "0", "message-id": "00000123", "message-price": "0.0333"},
				{"status": "0", "message-id": "00000124", "message-price": "0.0333"}
			]
		}`)

		resp, err := ParseResponse(raw)
		require.NoError(t, err)

		parted, ok := resp.(*PartedResponse)
		require.True(t, ok)
		require.Len(t, parted.Parts, 2)
		assert.Equal(t, "00000124", parted.Parts[1].String("message-id"))
	})

	t.Run("flat object becomes a flat response", func(t *testing.T) {
		raw := []byte(`{"to": "14845551212", "status": "1", "price": "0.0057"}`)

		resp, err := ParseResponse(raw)
		require.NoError(t, err)

		flat, ok := resp.(*FlatResponse)
		require.True(t, ok)
		assert.Equal(t, "1", flat.Record.String("status"))
	})

	t.Run("undecodable body is an error", func(t *testing.T) {
		_, err := ParseResponse([]byte(`{"messages": [`))
		assert.Error(t, err)
	})

	t.Run("non-object list entries are skipped", func(t *testing.T) {
		raw := []byte(`{"messages": [{"status": "0"}, "garbage", 7]}`)

		resp, err := ParseResponse(raw)
		require.NoError(t, err)

		parted, ok := resp.(*PartedResponse)
		require.True(t, ok)
		assert.Len(t, parted.Parts, 1)
	})

	t.Run("messages key of the wrong type reads as flat", func(t *testing.T) {
		resp := ResponseFromMap(map[string]any{"messages": "oops", "status": "1"})

		flat, ok := resp.(*FlatResponse)
		require.True(t, ok)
		assert.Equal(t, "1", flat.Record.String("status"))
	})
}

func TestRecordString(t *testing.T) {
	rec := Record{
		"name":  "value",
		"count": float64(2),
		"flag":  true,
	}

	assert.Equal(t, "value", rec.String("name"))
	assert.Equal(t, "2", rec.String("count"), "unquoted JSON numbers format cleanly")
	assert.Equal(t, "true", rec.String("flag"))
	assert.Empty(t, rec.String("missing"))
}

func TestAttachResponseReplaces(t *testing.T) {
	m := NewText("1", "2", "hello")
	m.AttachResponse(partedFixture())
	m.AttachResponse(flatFixture())

	_, ok := m.Response().(*FlatResponse)
	assert.True(t, ok)
}
