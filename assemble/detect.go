package assemble

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"svgsprite/symbol"
)

// sniffLen is the amount of data filetype needs to recognize any known type.
const sniffLen = 262

// isArchiveFile checks if file content is a zip archive.
func isArchiveFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

type bomEncoding int

const (
	encUnknown bomEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

func (e bomEncoding) String() string {
	switch e {
	case encUTF8:
		return "UTF-8"
	case encUTF16BigEndian:
		return "UTF-16BE"
	case encUTF16LittleEndian:
		return "UTF-16LE"
	case encUTF32BigEndian:
		return "UTF-32BE"
	case encUTF32LittleEndian:
		return "UTF-32LE"
	default:
		return "unknown"
	}
}

// detectUTF looks for byte order mark. UTF-32 marks are checked first since
// little endian UTF-32 mark starts with little endian UTF-16 one.
func detectUTF(data []byte) bomEncoding {
	switch {
	case bytes.HasPrefix(data, []byte{0x00, 0x00, 0xFE, 0xFF}):
		return encUTF32BigEndian
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE, 0x00, 0x00}):
		return encUTF32LittleEndian
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return encUTF8
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return encUTF16BigEndian
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return encUTF16LittleEndian
	}
	return encUnknown
}

var prologEncodingRe = regexp.MustCompile(`^(\s*<\?xml[^>]*?\sencoding\s*=\s*)(["'])[^"']*(["'])`)

// normalizeSource prepares raw file content for parsing: documents with byte
// order mark are converted to UTF-8 (declared encoding adjusted accordingly),
// binary content is rejected.
func normalizeSource(data []byte) ([]byte, error) {
	var (
		out []byte
		err error
	)
	enc := detectUTF(data)
	switch enc {
	case encUnknown:
		out = data
	case encUTF8:
		out = data[3:]
	case encUTF16BigEndian:
		out, err = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
	case encUTF16LittleEndian:
		out, err = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
	case encUTF32BigEndian:
		out, err = utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder().Bytes(data)
	case encUTF32LittleEndian:
		out, err = utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder().Bytes(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: unable to decode %s content: %w", symbol.ErrMalformedMarkup, enc, err)
	}
	if enc != encUnknown && enc != encUTF8 {
		out = prologEncodingRe.ReplaceAll(out, []byte("${1}${2}UTF-8${3}"))
	}

	if kind, err := filetype.Match(out); err == nil && kind != filetype.Unknown {
		return nil, fmt.Errorf("%w: binary content (%s)", symbol.ErrMalformedMarkup, kind.MIME.Value)
	}
	return out, nil
}
