package source

// reader.go normalizes payload bytes before JSON decoding.
//
// Exports saved by spreadsheet tools on Windows often start with a UTF-8 BOM,
// which encoding/json rejects, and hand-edited files may carry stray Latin-1
// bytes. Both are fixed on the fly:
//
//   - a leading BOM (0xEF 0xBB 0xBF) is dropped
//   - invalid UTF-8 sequences become U+FFFD

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// countingReader tracks bytes read from the underlying reader.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// readPayload reads at most limit raw bytes from r with the BOM stripped
// and UTF-8 sanitized. A payload larger than limit is malformed.
func readPayload(r io.Reader, limit int64) ([]byte, error) {
	raw := &countingReader{r: io.LimitReader(r, limit+1)}
	body, err := io.ReadAll(transform.NewReader(raw, unicode.UTF8BOM.NewDecoder()))
	if err != nil {
		return nil, err
	}
	if raw.n > limit {
		return nil, fmt.Errorf("%w: payload exceeds %d bytes", ErrMalformedPayload, limit)
	}
	return body, nil
}
