package primitive

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestMatchFormat(t *testing.T) {
	id := uuid.New().String()
	cases := []struct {
		format string
		in     string
		want   bool
	}{
		{"uuid", id, true},
		{"uuid", strings.ToUpper(id), true},
		{"uuid", "urn:uuid:" + id, false},
		{"uuid", "{" + id + "}", false},
		{"uuid", strings.ReplaceAll(id, "-", ""), false},
		{"uuid", "123e4567-e89b-12d3-a456-42661417400g", false},
		{"uuid", "123e4567+e89b-12d3-a456-426614174000", false},
		{"email", "a@example.com", true},
		{"email", "A <a@example.com>", false},
		{"date", "2024-02-29", true},
		{"date", "2023-02-29", false},
		{"date-time", "2024-02-29T10:00:00Z", true},
		{"ipv4", "10.0.0.1", true},
		{"ipv4", "::1", false},
		{"ipv6", "::1", true},
		{"uri", "https://example.com/x", true},
		{"uri", "example", false},
		{"color", "red", false},
	}
	for _, c := range cases {
		if got := MatchFormat(c.format, c.in); got != c.want {
			t.Fatalf("MatchFormat(%q, %q) = %v, want %v", c.format, c.in, got, c.want)
		}
	}
}
