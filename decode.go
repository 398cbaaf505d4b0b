package textable

import (
	"bytes"
	"strings"

	"github.com/domonda/go-types/charset"
)

// DefaultInputEncodings are tried in order by DecodeText.
var DefaultInputEncodings = []string{
	"UTF-8",
	"UTF-16LE",
	"ISO 8859-1",
	"Windows 1252", // like ANSI
}

// encodingTests contain characters with different byte
// representations across the DefaultInputEncodings.
var encodingTests = []string{
	"ä", "Ä", "ö", "Ö", "ü", "Ü", "ß", "§", "€",
	"é", "è", "à", "ç", "ñ",
}

// DecodeText converts raw input bytes from a file or pipe
// into text usable with ParseTextToColumns.
//
// The character encoding is detected from DefaultInputEncodings,
// a UTF-8 BOM is removed, the replacement character U+FFFD and
// no-break spaces are replaced with normal spaces,
// and \r\n or single \r line endings are normalized to \n.
func DecodeText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	data = charset.TrimBOM(data, charset.BOMUTF8)

	encodings := make([]charset.Encoding, 0, len(DefaultInputEncodings))
	for _, name := range DefaultInputEncodings {
		enc, err := charset.GetEncoding(name)
		if err != nil {
			return "", err
		}
		encodings = append(encodings, enc)
	}
	decoded, _, err := charset.AutoDecode(data, encodings, encodingTests)
	if err != nil {
		return "", err
	}

	decoded = bytes.Map(
		func(r rune) rune {
			switch r {
			// \u00a0 is No-Break Space (NBSP)
			case '\uFFFD', '\u00a0':
				return ' '
			default:
				return r
			}
		},
		decoded,
	)
	return NormalizeNewlines(string(decoded)), nil
}

// NormalizeNewlines replaces \r\n and single \r line endings with \n.
func NormalizeNewlines(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
