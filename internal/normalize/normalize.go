// Package normalize turns the raw error sequence of a checking engine into
// the errors reported to callers: custom messages replace defaults, errors
// already explained by a custom message are dropped, and required-property
// noise is removed. Order is preserved and evaluation is lazy.
package normalize

import (
	"iter"
	"strings"

	"github.com/reoring/validators/schema"
)

// FieldToken is replaced in custom messages with the offending field.
const FieldToken = "{field}"

// Adjust expands the {field} token of a custom message.
func Adjust(msg, field string) string {
	if !strings.Contains(msg, FieldToken) {
		return msg
	}
	return strings.ReplaceAll(msg, FieldToken, field)
}

// Filter is the stateful step of normalization. The zero value is ready to
// use; a Filter must not be shared between sequences.
type Filter struct {
	seen    map[string]struct{}
	claimed map[string]struct{}
}

// Apply rewrites e, or reports false when e must be dropped.
func (f *Filter) Apply(e schema.ValueError) (schema.ValueError, bool) {
	if _, ok := f.claimed[e.Path]; ok {
		return e, false
	}
	if e.Code == schema.CodeRequired && !schema.AcceptsAnything(e.Schema) {
		// The property's own error for the missing value was already reported.
		return e, false
	}
	_, seen := f.seen[e.Path]
	if !seen {
		if f.seen == nil {
			f.seen = map[string]struct{}{}
		}
		f.seen[e.Path] = struct{}{}
	}
	if seen || e.Schema == nil {
		return e, true
	}
	custom := e.Schema.ErrorMessage()
	if custom == "" {
		return e, true
	}
	if msg := Adjust(custom, e.Field()); msg != e.Message {
		e.Message = msg
		if f.claimed == nil {
			f.claimed = map[string]struct{}{}
		}
		f.claimed[e.Path] = struct{}{}
	}
	return e, true
}

// Seq returns the normalized view of raw. Raw errors are pulled only as the
// result is consumed.
func Seq(raw iter.Seq[schema.ValueError]) iter.Seq[schema.ValueError] {
	return func(yield func(schema.ValueError) bool) {
		var f Filter
		for e := range raw {
			if out, ok := f.Apply(e); ok && !yield(out) {
				return
			}
		}
	}
}

// First returns the first normalized error of raw, evaluating raw no
// further than needed.
func First(raw iter.Seq[schema.ValueError]) (schema.ValueError, bool) {
	s := NewStream(raw)
	defer s.Close()
	return s.Next()
}

// All collects every normalized error of raw.
func All(raw iter.Seq[schema.ValueError]) []schema.ValueError {
	var out []schema.ValueError
	for e := range Seq(raw) {
		out = append(out, e)
	}
	return out
}

// Stream is a pull-based cursor over normalized errors. Callers must Close
// a Stream they do not drain.
type Stream struct {
	next   func() (schema.ValueError, bool)
	stop   func()
	filter Filter
	done   bool
}

// NewStream opens a cursor over raw.
func NewStream(raw iter.Seq[schema.ValueError]) *Stream {
	next, stop := iter.Pull(raw)
	return &Stream{next: next, stop: stop}
}

// Next returns the next normalized error, or false once the sequence is
// exhausted.
func (s *Stream) Next() (schema.ValueError, bool) {
	for !s.done {
		e, ok := s.next()
		if !ok {
			s.Close()
			break
		}
		if out, keep := s.filter.Apply(e); keep {
			return out, true
		}
	}
	return schema.ValueError{}, false
}

// Close releases the underlying sequence. It is safe to call more than once.
func (s *Stream) Close() {
	if s.done {
		return
	}
	s.done = true
	s.stop()
}
