package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	validators "github.com/reoring/validators"
	"github.com/reoring/validators/i18n"
)

const eventSchema = `
anyOf:
  - type: object
    properties:
      kind: {const: s}
      str1: {type: string, maxLength: 4}
  - type: object
    properties:
      kind: {const: i}
      int1: {type: integer, minimum: 0}
      int2: {type: integer, errorMessage: must be an int}
    required: [kind, int1]
discriminantKey: kind
errorMessage: unsupported kind
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCheck_ValidAndInvalid(t *testing.T) {
	dir := t.TempDir()
	s := writeFile(t, dir, "event.yaml", eventSchema)
	good := writeFile(t, dir, "good.json", `{"kind": "s", "str1": "abc"}`)
	bad := writeFile(t, dir, "bad.json", `{"kind": "i", "int1": 3, "int2": "x"}`)
	other := writeFile(t, dir, "other.json", `{"kind": "z"}`)

	out, _, err := run(t, "check", "--schema", s, good)
	require.NoError(t, err)
	assert.Equal(t, "ok "+good+"\n", out)

	out, _, err = run(t, "check", "--schema", s, good, bad, other)
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "ok "+good)
	assert.Contains(t, out, bad+": Invalid value: int2: must be an int")
	assert.Contains(t, out, other+": Invalid value: unsupported kind")
}

func TestCheck_AllAndMessage(t *testing.T) {
	dir := t.TempDir()
	s := writeFile(t, dir, "event.yaml", eventSchema)
	bad := writeFile(t, dir, "bad.json", `{"kind": "i", "int1": -1, "int2": "x"}`)

	out, _, err := run(t, "check", "--schema", s, "--compile", bad)
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "int1")
	assert.NotContains(t, out, "must be an int")

	out, _, err = run(t, "check", "--schema", s, "--all", "-m", "bad event at {field}", bad)
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "bad event at int1:\n - int1: ")
	assert.Contains(t, out, "\n - int2: must be an int")
}

func TestCheck_YAMLStream(t *testing.T) {
	dir := t.TempDir()
	s := writeFile(t, dir, "event.yaml", eventSchema)
	docs := writeFile(t, dir, "events.yaml", "kind: s\nstr1: ab\n---\nkind: s\nstr1: abcdef\n")

	out, _, err := run(t, "check", "--schema", s, docs)
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "ok "+docs+"[0]\n")
	assert.Contains(t, out, docs+"[1]: Invalid value: str1: ")
}

func TestCheck_StrategyAndDiscriminant(t *testing.T) {
	dir := t.TempDir()
	s := writeFile(t, dir, "shape.yaml", `
anyOf:
  - type: object
    properties:
      type: {const: circle}
      radius: {type: number}
  - type: object
    properties:
      type: {const: square}
      side: {type: number}
`)
	circle := writeFile(t, dir, "circle.json", `{"type": "circle", "radius": 1}`)

	_, _, err := run(t, "check", "--schema", s, "--discriminant", "type", circle)
	require.NoError(t, err)
	_, _, err = run(t, "check", "--schema", s, "--strategy", "unique_key", circle)
	require.NoError(t, err)

	_, _, err = run(t, "check", "--schema", s, "--strategy", "nearest", circle)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errInvalid)
}

func TestCheck_ConfigError(t *testing.T) {
	dir := t.TempDir()
	s := writeFile(t, dir, "broken.yaml", `
anyOf:
  - type: object
    properties:
      kind: {const: a}
  - type: object
    properties:
      other: {type: string}
discriminantKey: kind
`)
	v := writeFile(t, dir, "v.json", `{"kind": "a"}`)

	_, stderr, err := run(t, "check", "--schema", s, v)
	require.Error(t, err)
	assert.True(t, validators.IsConfigError(err))
	assert.Contains(t, stderr, "union configuration error")
}

func TestCheck_Usage(t *testing.T) {
	dir := t.TempDir()
	v := writeFile(t, dir, "v.json", `{}`)

	_, _, err := run(t, "check", v)
	assert.ErrorContains(t, err, "--schema is required")

	_, _, err = run(t, "check", "--schema", filepath.Join(dir, "none.yaml"), v)
	assert.Error(t, err)

	s := writeFile(t, dir, "s.yaml", "type: object\n")
	_, _, err = run(t, "check", "--schema", s)
	assert.Error(t, err)
	_, _, err = run(t, "check", "--schema", s, filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestCheck_Language(t *testing.T) {
	t.Cleanup(func() { i18n.SetLanguage("en") })
	dir := t.TempDir()
	s := writeFile(t, dir, "s.yaml", "type: object\nproperties:\n  n: {type: integer}\n")
	v := writeFile(t, dir, "v.json", `{"n": "x"}`)

	out, _, err := run(t, "check", "--schema", s, "--lang", "ja", v)
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "不正な値です")
}

func TestCheck_VerboseLogsCompile(t *testing.T) {
	dir := t.TempDir()
	s := writeFile(t, dir, "s.yaml", "type: string\n")
	v := writeFile(t, dir, "v.json", `"x"`)

	_, stderr, err := run(t, "check", "--schema", s, "--compile", "-v", v)
	require.NoError(t, err)
	assert.Contains(t, stderr, "schema compiled")
	assert.Contains(t, stderr, "validator=cli")
}

func TestSchemaCmd(t *testing.T) {
	dir := t.TempDir()
	s := writeFile(t, dir, "event.yaml", eventSchema)

	out, _, err := run(t, "schema", "--schema", s)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "kind", doc["discriminantKey"])
	assert.Equal(t, "unsupported kind", doc["errorMessage"])
	require.Len(t, doc["anyOf"], 2)
}
