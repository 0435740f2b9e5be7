// Package parse converts loosely typed default values, as found in configuration files and command
// line flags, into the typed values understood by the defaultvalue package.
package parse

import (
	"fmt"
	"strconv"
	"time"

	"github.com/marianatek/adddefault/defaultvalue"
)

// Value kinds.
const (
	KindAuto     = ""
	KindBool     = "bool"
	KindString   = "string"
	KindInt      = "int"
	KindFloat    = "float"
	KindDate     = "date"
	KindDateTime = "datetime"
	KindNow      = "now"
	KindToday    = "today"
	KindNull     = "null"
)

// Kinds lists every supported kind, KindAuto excluded.
var Kinds = []string{KindBool, KindString, KindInt, KindFloat, KindDate, KindDateTime, KindNow, KindToday, KindNull}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ErrInvalidValue is returned when a value cannot be converted to the requested kind.
type ErrInvalidValue struct {
	// Name identifies the value
	Name string
	// Kind is the requested kind
	Kind string
	// Err is the underlying cause, if any
	Err error
}

// Error implements error.
func (err ErrInvalidValue) Error() string {
	if err.Err == nil {
		return fmt.Sprintf("cannot parse %q as %s", err.Name, err.Kind)
	}
	return fmt.Sprintf("cannot parse %q as %s: %v", err.Name, err.Kind, err.Err)
}

// Unwrap returns the underlying cause.
func (err ErrInvalidValue) Unwrap() error {
	return err.Err
}

// Value converts raw to kind. With KindAuto raw is returned as is, except that strings equal to a
// sentinel token become that sentinel.
func Value(name string, raw interface{}, kind string) (interface{}, error) {
	switch kind {
	case KindAuto:
		if s, ok := raw.(string); ok && defaultvalue.IsSentinel(s) {
			return defaultvalue.Sentinel(s), nil
		}
		return raw, nil
	case KindBool:
		return Bool(name, raw)
	case KindString:
		if raw == nil {
			return "", ErrInvalidValue{Name: name, Kind: kind}
		}
		return fmt.Sprint(raw), nil
	case KindInt:
		return Int(name, raw)
	case KindFloat:
		return Float(name, raw)
	case KindDate:
		return Date(name, raw)
	case KindDateTime:
		return DateTime(name, raw)
	case KindNow:
		return defaultvalue.Now, nil
	case KindToday:
		return defaultvalue.Today, nil
	case KindNull:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown value kind %q", kind)
	}
}

// Bool parses raw as a boolean.
func Bool(name string, raw interface{}) (bool, error) {
	switch value := raw.(type) {
	case string:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return false, ErrInvalidValue{Name: name, Kind: KindBool, Err: err}
		}
		return v, nil
	case bool:
		return value, nil
	default:
		return false, ErrInvalidValue{Name: name, Kind: KindBool, Err: fmt.Errorf("unsupported type %T", raw)}
	}
}

// Int parses raw as an integer.
func Int(name string, raw interface{}) (int64, error) {
	switch value := raw.(type) {
	case string:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, ErrInvalidValue{Name: name, Kind: KindInt, Err: err}
		}
		return v, nil
	case int:
		return int64(value), nil
	case int64:
		return value, nil
	case uint64:
		return int64(value), nil
	default:
		return 0, ErrInvalidValue{Name: name, Kind: KindInt, Err: fmt.Errorf("unsupported type %T", raw)}
	}
}

// Float parses raw as a floating point number.
func Float(name string, raw interface{}) (float64, error) {
	switch value := raw.(type) {
	case string:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, ErrInvalidValue{Name: name, Kind: KindFloat, Err: err}
		}
		return v, nil
	case float64:
		return value, nil
	case int:
		return float64(value), nil
	default:
		return 0, ErrInvalidValue{Name: name, Kind: KindFloat, Err: fmt.Errorf("unsupported type %T", raw)}
	}
}

// Date parses raw as a calendar date.
func Date(name string, raw interface{}) (defaultvalue.Date, error) {
	switch value := raw.(type) {
	case string:
		d, err := defaultvalue.ParseDate(value)
		if err != nil {
			return defaultvalue.Date{}, ErrInvalidValue{Name: name, Kind: KindDate, Err: err}
		}
		return d, nil
	case time.Time:
		return defaultvalue.DateOf(value), nil
	case defaultvalue.Date:
		return value, nil
	default:
		return defaultvalue.Date{}, ErrInvalidValue{Name: name, Kind: KindDate, Err: fmt.Errorf("unsupported type %T", raw)}
	}
}

// DateTime parses raw as a timestamp. Timestamps without a zone are read as UTC.
func DateTime(name string, raw interface{}) (time.Time, error) {
	switch value := raw.(type) {
	case string:
		for _, layout := range dateTimeLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t, nil
			}
		}
		return time.Time{}, ErrInvalidValue{Name: name, Kind: KindDateTime, Err: fmt.Errorf("unrecognized format %q", value)}
	case time.Time:
		return value, nil
	default:
		return time.Time{}, ErrInvalidValue{Name: name, Kind: KindDateTime, Err: fmt.Errorf("unsupported type %T", raw)}
	}
}
