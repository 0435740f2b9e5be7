package parse

import (
	"errors"
	"testing"
	"time"

	"github.com/marianatek/adddefault/defaultvalue"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	tests := map[string]struct {
		raw            interface{}
		kind           string
		expected       interface{}
		expectedErrMsg string
	}{
		"auto_keeps_bool": {
			raw:      false,
			expected: false,
		},
		"auto_keeps_string": {
			raw:      "No description provided",
			expected: "No description provided",
		},
		"auto_detects_sentinel": {
			raw:      "__TODAY__",
			expected: defaultvalue.Today,
		},
		"bool_string": {
			raw:      "false",
			kind:     KindBool,
			expected: false,
		},
		"bool_invalid": {
			raw:            "nope",
			kind:           KindBool,
			expectedErrMsg: `cannot parse "param" as bool: strconv.ParseBool: parsing "nope": invalid syntax`,
		},
		"string_from_int": {
			raw:      42,
			kind:     KindString,
			expected: "42",
		},
		"string_nil": {
			raw:            nil,
			kind:           KindString,
			expectedErrMsg: `cannot parse "param" as string`,
		},
		"int_string": {
			raw:      "42",
			kind:     KindInt,
			expected: int64(42),
		},
		"int_unsupported": {
			raw:            1.5,
			kind:           KindInt,
			expectedErrMsg: `cannot parse "param" as int: unsupported type float64`,
		},
		"float_string": {
			raw:      "1.5",
			kind:     KindFloat,
			expected: 1.5,
		},
		"date_string": {
			raw:      "1970-01-01",
			kind:     KindDate,
			expected: defaultvalue.Date{Year: 1970, Month: time.January, Day: 1},
		},
		"date_from_time": {
			raw:      time.Date(1970, time.January, 1, 13, 0, 0, 0, time.UTC),
			kind:     KindDate,
			expected: defaultvalue.Date{Year: 1970, Month: time.January, Day: 1},
		},
		"datetime_space": {
			raw:      "2020-03-04 05:06:07",
			kind:     KindDateTime,
			expected: time.Date(2020, time.March, 4, 5, 6, 7, 0, time.UTC),
		},
		"datetime_rfc3339": {
			raw:      "2020-03-04T05:06:07Z",
			kind:     KindDateTime,
			expected: time.Date(2020, time.March, 4, 5, 6, 7, 0, time.UTC),
		},
		"datetime_invalid": {
			raw:            "yesterday",
			kind:           KindDateTime,
			expectedErrMsg: `cannot parse "param" as datetime: unrecognized format "yesterday"`,
		},
		"now": {
			raw:      "ignored",
			kind:     KindNow,
			expected: defaultvalue.Now,
		},
		"today": {
			kind:     KindToday,
			expected: defaultvalue.Today,
		},
		"null": {
			raw:      "ignored",
			kind:     KindNull,
			expected: nil,
		},
		"unknown_kind": {
			raw:            "x",
			kind:           "uuid",
			expectedErrMsg: `unknown value kind "uuid"`,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := Value("param", test.raw, test.kind)
			if test.expectedErrMsg != "" {
				require.EqualError(t, err, test.expectedErrMsg)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.expected, v)
		})
	}
}

func TestErrInvalidValue_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := ErrInvalidValue{Name: "param", Kind: KindDate, Err: cause}
	require.True(t, errors.Is(err, cause))
}

func TestDateTime_KeepsOffset(t *testing.T) {
	v, err := DateTime("param", "2020-03-04 05:06:07+01:00")
	require.NoError(t, err)
	_, offset := v.Zone()
	require.Equal(t, 3600, offset)
}
