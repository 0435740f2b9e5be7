package defaultvalue

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
	offsetLayout   = "-07:00"

	nowFunction = "now()"
	nullLiteral = "NULL"
)

// Sentinel is a temporal token that renders as a SQL function call rather than a literal.
type Sentinel string

const (
	// Now sets the default to the current timestamp.
	Now Sentinel = "__NOW__"
	// Today sets the default to the current date. PostgreSQL casts now() to the column type, so it
	// renders exactly like Now.
	Today Sentinel = "__TODAY__"
)

// IsSentinel reports whether s is one of the sentinel tokens.
func IsSentinel(s string) bool {
	return s == string(Now) || s == string(Today)
}

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses an ISO-8601 date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// String returns the ISO-8601 form of d.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

type quoting int

const (
	quoteLiteral quoting = iota
	quoteFunction
	quoteConstant
)

// cleaned is a value ready to be placed in SQL together with the quoting it requires.
type cleaned struct {
	text    string
	quoting quoting
}

func (c cleaned) String() string {
	if c.quoting == quoteLiteral {
		return "'" + strings.ReplaceAll(c.text, "'", "''") + "'"
	}
	return c.text
}

// clean classifies value and picks its quoting. Dates and datetimes are checked first, then the
// sentinels (which would otherwise look like plain strings), then nil, then everything else as a
// literal.
func (r Renderer) clean(value interface{}) cleaned {
	if c, ok := cleanTemporal(value); ok {
		return c
	}
	if c, ok := cleanTemporalConstant(value); ok {
		return c
	}
	if value == nil {
		return cleaned{text: nullLiteral, quoting: quoteConstant}
	}
	return cleaned{text: r.literal(value), quoting: quoteLiteral}
}

func cleanTemporal(value interface{}) (cleaned, bool) {
	switch v := value.(type) {
	case Date:
		return cleaned{text: v.String(), quoting: quoteLiteral}, true
	case *Date:
		if v == nil {
			return cleaned{text: nullLiteral, quoting: quoteConstant}, true
		}
		return cleaned{text: v.String(), quoting: quoteLiteral}, true
	case time.Time:
		return cleaned{text: formatDateTime(v), quoting: quoteLiteral}, true
	case *time.Time:
		if v == nil {
			return cleaned{text: nullLiteral, quoting: quoteConstant}, true
		}
		return cleaned{text: formatDateTime(*v), quoting: quoteLiteral}, true
	}
	return cleaned{}, false
}

func cleanTemporalConstant(value interface{}) (cleaned, bool) {
	switch v := value.(type) {
	case Sentinel:
		if IsSentinel(string(v)) {
			return cleaned{text: nowFunction, quoting: quoteFunction}, true
		}
	case string:
		if IsSentinel(v) {
			return cleaned{text: nowFunction, quoting: quoteFunction}, true
		}
	}
	return cleaned{}, false
}

// formatDateTime renders t with a space separator and second precision. Times with a non-zero UTC
// offset carry it; the location name is irrelevant.
func formatDateTime(t time.Time) string {
	s := t.Format(dateTimeLayout)
	if _, off := t.Zone(); off != 0 {
		s += t.Format(offsetLayout)
	}
	return s
}

func (r Renderer) literal(value interface{}) string {
	switch v := value.(type) {
	case bool:
		return r.formatBool(v)
	case string:
		return v
	case Sentinel:
		return string(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func (r Renderer) formatBool(b bool) string {
	if r.LowercaseBooleans {
		return strconv.FormatBool(b)
	}
	if b {
		return "True"
	}
	return "False"
}
