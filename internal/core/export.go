package core

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownFormat is returned for an export format other than csv, json or xml.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export serialization format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// ParseFormat accepts csv, json or xml (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatXML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string { return string(f) }

// ContentType returns the MIME type of the payload.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatXML:
		return "application/xml; charset=utf-8"
	}
	return "application/octet-stream"
}

// Scope selects which records an export covers.
type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeSelected Scope = "selected"
)

// ParseScope accepts all or selected; empty means all.
func ParseScope(s string) (Scope, error) {
	switch sc := Scope(strings.ToLower(strings.TrimSpace(s))); sc {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeSelected:
		return ScopeSelected, nil
	}
	return "", fmt.Errorf("invalid export scope %q", s)
}

// DefaultExportBase is used when no base name is supplied.
const DefaultExportBase = "database_export"

// ExportBaseName returns "<scope>_entries_<YYYY-MM-DD>" for the UTC date of now.
func ExportBaseName(scope Scope, now time.Time) string {
	return fmt.Sprintf("%s_entries_%s", scope, now.UTC().Format("2006-01-02"))
}

// Payload is a serialized export ready to hand to the user.
type Payload struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Export serializes records and names the payload "<base>.<ext>".
func Export(records []Record, format Format, base string) (Payload, error) {
	body, err := Serialize(records, format)
	if err != nil {
		return Payload{}, err
	}
	if base == "" {
		base = DefaultExportBase
	}
	return Payload{
		Filename:    base + "." + format.Extension(),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

// Serialize encodes records in the given order. An empty input is valid for
// every format.
func Serialize(records []Record, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return MarshalCSV(records), nil
	case FormatJSON:
		return MarshalJSON(records)
	case FormatXML:
		return MarshalXML(records), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// csvHeader holds the column labels in record model order.
var csvHeader = []string{
	"ID",
	"Date/Time",
	"First Name",
	"Last Name",
	"Email",
	"Phone",
	"Company",
	"Industry",
	"Comment",
	"Reason",
}

// MarshalCSV renders records as CSV. Every string is quoted with embedded
// quotes doubled, null fields are left empty and unquoted, and rows are
// separated by "\n" without a trailing newline.
func MarshalCSV(records []Record) []byte {
	var b bytes.Buffer
	b.WriteString(strings.Join(csvHeader, ","))

	for _, r := range records {
		b.WriteByte('\n')
		b.WriteString(strconv.FormatInt(r.ID, 10))
		for _, f := range fields[1:] {
			b.WriteByte(',')
			v := r.Value(f)
			if v.Kind == KindNull {
				continue
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(v.Str, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return b.Bytes()
}

// MarshalJSON renders records as a 2-space indented array. HTML characters
// are written as-is and null values stay null.
func MarshalJSON(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}

	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encode json export: %w", err)
	}
	return bytes.TrimSuffix(b.Bytes(), []byte("\n")), nil
}

// MarshalXML renders records under <database_entries>, one <entry> each.
// Free text goes into CDATA sections; null fields have an empty body.
func MarshalXML(records []Record) []byte {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString("<database_entries>\n")

	for _, r := range records {
		b.WriteString("  <entry>\n")
		for _, f := range fields {
			writeXMLField(&b, f, r.Value(f))
		}
		b.WriteString("  </entry>\n")
	}

	b.WriteString("</database_entries>")
	return b.Bytes()
}

func writeXMLField(b *bytes.Buffer, f Field, v Value) {
	fmt.Fprintf(b, "    <%s>", f)
	switch {
	case v.Kind == KindNull:
	case f == FieldID || f == FieldDateTime:
		xml.EscapeText(b, []byte(v.String()))
	default:
		writeCDATA(b, v.Str)
	}
	fmt.Fprintf(b, "</%s>\n", f)
}

// writeCDATA wraps s in CDATA, splitting any "]]>" so the section cannot end early.
func writeCDATA(b *bytes.Buffer, s string) {
	b.WriteString("<![CDATA[")
	b.WriteString(strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>"))
	b.WriteString("]]>")
}
