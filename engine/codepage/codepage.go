package codepage

import (
	"github.com/pkg/errors"
	"github.com/sharpbridge/sharpbridge/engine/sblog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// codec converts between native strings and Go strings for one codepage
type codec struct {
	cp      int
	decoder *encoding.Decoder
	encoder *encoding.Encoder
}

var codepages = map[int]encoding.Encoding{
	437:  charmap.CodePage437,
	850:  charmap.CodePage850,
	866:  charmap.CodePage866,
	874:  charmap.Windows874,
	1250: charmap.Windows1250,
	1251: charmap.Windows1251,
	1252: charmap.Windows1252,
	1253: charmap.Windows1253,
	1254: charmap.Windows1254,
	1255: charmap.Windows1255,
	1256: charmap.Windows1256,
	1257: charmap.Windows1257,
	1258: charmap.Windows1258,
	// 65001 is UTF-8: native strings pass through unchanged
	65001: unicode.UTF8,
}

var current = mustCodec(1252)

func mustCodec(cp int) *codec {
	c, err := newCodec(cp)
	if err != nil {
		panic(err)
	}
	return c
}

func newCodec(cp int) (*codec, error) {
	enc, ok := codepages[cp]
	if !ok {
		return nil, errors.Errorf("codepage: unsupported codepage %d", cp)
	}
	return &codec{
		cp:      cp,
		decoder: enc.NewDecoder(),
		encoder: encoding.ReplaceUnsupported(enc.NewEncoder()),
	}, nil
}

// Set selects the codepage used for all subsequent native string conversions.
// The previous codepage is kept when cp is not supported.
func Set(cp int) error {
	c, err := newCodec(cp)
	if err != nil {
		return err
	}
	current = c
	sblog.Debugf("codepage: using codepage %d", cp)
	return nil
}

// Current returns the active codepage number
func Current() int {
	return current.cp
}

// Decode converts a native string to a Go string using the active codepage
func Decode(b []byte) string {
	s, err := current.decoder.Bytes(b)
	if err != nil {
		// charmap decoding cannot fail; UTF-8 passthrough keeps the raw bytes
		return string(b)
	}
	return string(s)
}

// Encode converts a Go string to a native string using the active codepage.
// Unsupported runes are replaced.
func Encode(s string) []byte {
	b, err := current.encoder.Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return b
}
