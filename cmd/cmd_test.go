package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ollama/typedmap/types/errtypes"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TYPEDMAP_DEBUG", "0")
	t.Setenv("TYPEDMAP_PUT_RETURNS", "")
	t.Setenv("TYPEDMAP_VALUE_TYPE", "")

	var out bytes.Buffer
	root := NewCLI()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func TestShowJSONKeepsDocumentOrder(t *testing.T) {
	out, err := run(t, `{"b": 1, "a": "x", "c": [true]}`, "show", "--json")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": \"x\",\n  \"c\": [\n    true\n  ]\n}\n", out)
}

func TestShowTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"zeta": 2, "alpha": 1}`), 0o600))

	out, err := run(t, "", "show", "--values", "number", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "KEY"))
	assert.True(t, strings.HasPrefix(lines[1], "zeta"))
	assert.Contains(t, lines[1], "float64")
	assert.True(t, strings.HasPrefix(lines[2], "alpha"))
}

func TestShowRejectsMismatchedValue(t *testing.T) {
	_, err := run(t, `{"a": 1, "b": "two"}`, "show", "--values", "number")
	require.ErrorIs(t, err, errtypes.ErrTypeMismatch)
	assert.Contains(t, err.Error(), "b: ")
}

func TestShowRejectsNull(t *testing.T) {
	_, err := run(t, `{"a": null}`, "show")
	require.ErrorIs(t, err, errtypes.ErrNullArgument)
}

func TestShowUnknownValueType(t *testing.T) {
	_, err := run(t, `{}`, "show", "--values", "decimal")
	require.ErrorIs(t, err, errtypes.ErrInvalidArgument)
}

func TestShowSetAndDelete(t *testing.T) {
	out, err := run(t, `{"a": "x", "b": "y"}`, "show", "--values", "string",
		"--set", "a=z", "--set", "c=new", "--delete", "b", "--delete", "missing", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": "z", "c": "new"}`, out)
	assert.Less(t, strings.Index(out, `"a"`), strings.Index(out, `"c"`))

	out, err = run(t, `{}`, "show", "--values", "string", "--set", "n=1", "--set", "b=true", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"n": "1", "b": "true"}`, out)

	_, err = run(t, `{}`, "show", "--values", "number", "--set", "n=abc")
	require.ErrorIs(t, err, errtypes.ErrTypeMismatch)

	_, err = run(t, `{}`, "show", "--set", "novalue")
	require.Error(t, err)
}

func TestEnv(t *testing.T) {
	out, err := run(t, "", "env")
	require.NoError(t, err)
	assert.Contains(t, out, "TYPEDMAP_DEBUG")
	assert.Contains(t, out, "TYPEDMAP_PUT_RETURNS")

	out, err = run(t, "", "env", "--example-config")
	require.NoError(t, err)
	assert.Contains(t, out, "[map]")
}

func TestParseAssignment(t *testing.T) {
	cases := []struct {
		in        string
		valueType reflect.Type
		key       string
		value     any
	}{
		{"n=1", reflect.TypeFor[string](), "n", "1"},
		{`s="quoted"`, reflect.TypeFor[string](), "s", `"quoted"`},
		{"n=1", reflect.TypeFor[float64](), "n", 1.0},
		{"n=1", reflect.TypeFor[any](), "n", 1.0},
		{"w=word", reflect.TypeFor[any](), "w", "word"},
		{"e=", reflect.TypeFor[string](), "e", ""},
	}

	for _, tt := range cases {
		t.Run(tt.in+"/"+tt.valueType.String(), func(t *testing.T) {
			key, value, err := parseAssignment(tt.in, tt.valueType)
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
		})
	}

	_, _, err := parseAssignment("=1", reflect.TypeFor[string]())
	require.Error(t, err)
}

func TestDebugLogsSettings(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stderr := os.Stderr
	os.Stderr = w
	t.Cleanup(func() { os.Stderr = stderr })

	t.Setenv("TYPEDMAP_DEBUG", "1")
	t.Setenv("TYPEDMAP_PUT_RETURNS", "stored")
	t.Setenv("TYPEDMAP_VALUE_TYPE", "")

	root := NewCLI()
	root.SetArgs([]string{"show", "--json"})
	root.SetIn(strings.NewReader(`{}`))
	root.SetOut(io.Discard)
	require.NoError(t, root.Execute())

	require.NoError(t, w.Close())
	logged, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "msg=settings")
	assert.Contains(t, string(logged), "TYPEDMAP_PUT_RETURNS:stored")
}
