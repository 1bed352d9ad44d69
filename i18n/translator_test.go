package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_type", map[string]string{"expected": "integer"}); msg != "Expected integer" {
		t.Fatalf("unexpected english message %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", map[string]string{"expected": "integer"}); msg == "Expected integer" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeEchoes(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("got %q", msg)
	}
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upperTranslator{})
	if msg := T("required", nil); msg != "X:required" {
		t.Fatalf("custom translator not used: %q", msg)
	}
	SetTranslator(nil)
	if msg := T("required", nil); msg != "Expected required property" {
		t.Fatalf("reset failed: %q", msg)
	}
}

func TestInterpolate(t *testing.T) {
	cases := []struct {
		tmpl string
		data map[string]string
		want string
	}{
		{"Expected {expected}", map[string]string{"expected": "string"}, "Expected string"},
		{"{a}-{b}", map[string]string{"a": "1"}, "1-{b}"},
		{"plain", map[string]string{"a": "1"}, "plain"},
		{"{a}", nil, "{a}"},
	}
	for _, tc := range cases {
		if got := Interpolate(tc.tmpl, tc.data); got != tc.want {
			t.Errorf("Interpolate(%q) = %q, want %q", tc.tmpl, got, tc.want)
		}
	}
}
