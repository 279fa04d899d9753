package codepage

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestSetUnknownCodepage(t *testing.T) {
	assert.Equal(t, nil, Set(1252))
	if err := Set(12345); err == nil {
		t.Errorf("unsupported codepage accepted")
	}
	// previous codepage kept
	assert.Equal(t, 1252, Current())
}

func TestRoundtrip1252(t *testing.T) {
	assert.Equal(t, nil, Set(1252))
	native := Encode("café")
	assert.Equal(t, 4, len(native)) // é is a single byte in windows-1252
	assert.Equal(t, "café", Decode(native))
}

func TestRoundtrip866(t *testing.T) {
	assert.Equal(t, nil, Set(866))
	native := Encode("привет")
	assert.Equal(t, 6, len(native))
	assert.Equal(t, "привет", Decode(native))
	assert.Equal(t, nil, Set(1252))
}

func TestUTF8Passthrough(t *testing.T) {
	assert.Equal(t, nil, Set(65001))
	assert.Equal(t, "日本語", Decode(Encode("日本語")))
	assert.Equal(t, nil, Set(1252))
}
