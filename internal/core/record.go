package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownField is returned when a field name does not match the record model.
var ErrUnknownField = errors.New("unknown record field")

// Record is one form submission as delivered by the data source.
// Optional fields are pointers so that null and "" survive export unchanged.
type Record struct {
	ID        int64   `json:"id"`
	DateTime  *string `json:"date_time"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Company   *string `json:"company"`
	Industry  *string `json:"industry"`
	Comment   *string `json:"comment"`
	Reason    *string `json:"reason"`
}

// Field identifies a record field by its wire name.
type Field string

const (
	FieldID        Field = "id"
	FieldDateTime  Field = "date_time"
	FieldFirstName Field = "first_name"
	FieldLastName  Field = "last_name"
	FieldEmail     Field = "email"
	FieldPhone     Field = "phone"
	FieldCompany   Field = "company"
	FieldIndustry  Field = "industry"
	FieldComment   Field = "comment"
	FieldReason    Field = "reason"
)

// fields is the record model order. Every export format follows it.
var fields = []Field{
	FieldID,
	FieldDateTime,
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldCompany,
	FieldIndustry,
	FieldComment,
	FieldReason,
}

// Fields returns all record fields in model order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// ParseField converts a wire name into a Field.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range fields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// ValueKind describes the dynamic type of a field value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
)

// Value is a single field value as seen by the sort engine.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
}

// String returns the display form of the value ("" for null).
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	default:
		return ""
	}
}

func stringValue(s string) Value { return Value{Kind: KindString, Str: s} }

func optionalValue(s *string) Value {
	if s == nil {
		return Value{Kind: KindNull}
	}
	return stringValue(*s)
}

// Value returns the value of field f. Unknown fields are null.
func (r Record) Value(f Field) Value {
	switch f {
	case FieldID:
		return Value{Kind: KindNumber, Num: float64(r.ID)}
	case FieldDateTime:
		return optionalValue(r.DateTime)
	case FieldFirstName:
		return stringValue(r.FirstName)
	case FieldLastName:
		return stringValue(r.LastName)
	case FieldEmail:
		return stringValue(r.Email)
	case FieldPhone:
		return optionalValue(r.Phone)
	case FieldCompany:
		return optionalValue(r.Company)
	case FieldIndustry:
		return optionalValue(r.Industry)
	case FieldComment:
		return optionalValue(r.Comment)
	case FieldReason:
		return optionalValue(r.Reason)
	default:
		return Value{Kind: KindNull}
	}
}

// StringPtr returns a pointer to s. Convenience for building records.
func StringPtr(s string) *string { return &s }

// deref returns the pointed-to string or "".
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IDs returns the ids of records in order.
func IDs(records []Record) []int64 {
	ids := make([]int64, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}
