// Package encoding turns uploaded text of unknown charset into UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names the encoding a reader was decoded from.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO8859_9   Charset = "ISO-8859-9"
)

const sampleSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detect guesses the charset of a leading sample and reports how many BOM bytes
// precede the content.
//
// A BOM wins; otherwise valid UTF-8 is taken as is, then chardet is asked, and
// anything it cannot place is read as Windows-1252, the usual spreadsheet export.
func Detect(sample []byte, complete bool) (Charset, int) {
	switch {
	case bytes.HasPrefix(sample, bomUTF8):
		return UTF8, len(bomUTF8)
	case bytes.HasPrefix(sample, bomUTF16LE):
		return UTF16LE, len(bomUTF16LE)
	case bytes.HasPrefix(sample, bomUTF16BE):
		return UTF16BE, len(bomUTF16BE)
	}

	if validUTF8(sample, complete) {
		return UTF8, 0
	}

	if result, err := chardet.NewTextDetector().DetectBest(sample); err == nil {
		switch result.Charset {
		case "UTF-8":
			return UTF8, 0
		case "ISO-8859-9":
			return ISO8859_9, 0
		}
	}

	return Windows1252, 0
}

// NewUTF8Reader returns a reader yielding r's content as UTF-8 without a BOM, along
// with the charset it detected.
func NewUTF8Reader(r io.Reader) (io.Reader, Charset, error) {
	br := bufio.NewReaderSize(r, sampleSize)

	sample, err := br.Peek(sampleSize)
	if err != nil && err != io.EOF {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	charset, bom := Detect(sample, err == io.EOF)

	if _, err := br.Discard(bom); err != nil {
		return nil, "", fmt.Errorf("discard bom: %w", err)
	}

	dec := decoder(charset)
	if dec == nil {
		return br, charset, nil
	}

	return transform.NewReader(br, dec.NewDecoder()), charset, nil
}

func decoder(c Charset) encoding.Encoding {
	switch c {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case Windows1252:
		return charmap.Windows1252
	case ISO8859_9:
		return charmap.ISO8859_9
	}

	return nil
}

// validUTF8 tolerates a multi-byte sequence cut off at the end of a partial sample.
func validUTF8(sample []byte, complete bool) bool {
	if complete || utf8.Valid(sample) {
		return utf8.Valid(sample)
	}

	for cut := 1; cut < utf8.UTFMax && cut <= len(sample); cut++ {
		if utf8.Valid(sample[:len(sample)-cut]) && !utf8.FullRune(sample[len(sample)-cut:]) {
			return true
		}
	}

	return false
}
