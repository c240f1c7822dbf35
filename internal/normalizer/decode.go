package normalizer

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decodeText interprets raw bytes as UTF-8, falling back to Latin-1 when the
// bytes are not valid UTF-8. Latin-1 maps every byte to a rune, so the
// fallback cannot fail; exotic encodings may render visually wrong but a file
// always yields text.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// Unreachable for ISO 8859-1, kept as a guard.
		return string(data)
	}
	return string(decoded)
}
