// Package primitive holds the value-level predicates shared by the direct and
// compiled checking engines, so both agree on what a number, a literal match
// or a string format is.
package primitive

import (
	"encoding/json"
	"math"
	"net/mail"
	"net/netip"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Number converts v to float64 when it is a Go numeric kind or a
// json.Number. NaN and infinities are rejected.
func Number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		p, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = p
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Integer reports whether v is a number with an integral value.
func Integer(v any) (float64, bool) {
	f, ok := Number(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return f, true
}

// MultipleOf reports whether f is a multiple of m within float tolerance.
func MultipleOf(f, m float64) bool {
	if m == 0 {
		return true
	}
	q := f / m
	return math.Abs(q-math.Round(q)) < 1e-9
}

// Length returns the length of s in runes.
func Length(s string) int { return utf8.RuneCountInString(s) }

// IsLiteral reports whether v can be used as a literal schema value.
func IsLiteral(v any) bool {
	switch v.(type) {
	case string, bool:
		return true
	}
	_, ok := Number(v)
	return ok
}

// LiteralEqual compares a value against a literal. Numbers compare by value
// across representations; strings and booleans compare exactly.
func LiteralEqual(v, lit any) bool {
	switch l := lit.(type) {
	case string:
		s, ok := v.(string)
		return ok && s == l
	case bool:
		b, ok := v.(bool)
		return ok && b == l
	}
	lf, ok := Number(lit)
	if !ok {
		return false
	}
	vf, ok := Number(v)
	return ok && vf == lf
}

// FormatLiteral renders a literal for messages: strings single-quoted,
// numbers and booleans bare.
func FormatLiteral(lit any) string {
	switch l := lit.(type) {
	case string:
		return "'" + l + "'"
	case bool:
		return strconv.FormatBool(l)
	}
	if f, ok := Number(lit); ok {
		return FormatNumber(f)
	}
	return ""
}

// FormatNumber renders f without a trailing ".0" for integral values.
func FormatNumber(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// Equal reports deep equality of two decoded values, treating numbers of
// different representations as equal when their values match.
func Equal(a, b any) bool {
	if af, ok := Number(a); ok {
		bf, ok := Number(b)
		return ok && af == bf
	}
	switch at := a.(type) {
	case map[string]any:
		bt, ok := b.(map[string]any)
		if !ok || len(at) != len(bt) {
			return false
		}
		for k, av := range at {
			bv, ok := bt[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case []any:
		bt, ok := b.([]any)
		if !ok || len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !Equal(at[i], bt[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// Unique reports whether all elements of arr are pairwise distinct.
func Unique(arr []any) bool {
	for i := 1; i < len(arr); i++ {
		for j := 0; j < i; j++ {
			if Equal(arr[i], arr[j]) {
				return false
			}
		}
	}
	return true
}

var dateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var formats = map[string]func(string) bool{
	"email": func(s string) bool {
		a, err := mail.ParseAddress(s)
		return err == nil && a.Address == s
	},
	// Only the canonical 8-4-4-4-12 form; uuid.Parse also takes urn and
	// braced forms.
	"uuid": func(s string) bool {
		if len(s) != 36 {
			return false
		}
		_, err := uuid.Parse(s)
		return err == nil
	},
	"date-time": func(s string) bool {
		_, err := time.Parse(time.RFC3339Nano, s)
		return err == nil
	},
	"date": func(s string) bool {
		if !dateRE.MatchString(s) {
			return false
		}
		_, err := time.Parse(time.DateOnly, s)
		return err == nil
	},
	"ipv4": func(s string) bool {
		a, err := netip.ParseAddr(s)
		return err == nil && a.Is4()
	},
	"ipv6": func(s string) bool {
		a, err := netip.ParseAddr(s)
		return err == nil && a.Is6()
	},
	"uri": func(s string) bool {
		u, err := url.Parse(s)
		return err == nil && u.Scheme != "" && !strings.ContainsAny(s, " \t\n")
	},
}

// KnownFormat reports whether name is a supported string format.
func KnownFormat(name string) bool {
	_, ok := formats[name]
	return ok
}

// MatchFormat reports whether s satisfies the named format. Unknown formats
// never match.
func MatchFormat(name, s string) bool {
	f, ok := formats[name]
	return ok && f(s)
}
