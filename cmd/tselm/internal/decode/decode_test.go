package decode

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/broady/tselm/cmd/tselm/internal/options"
)

const source = `interface User {
  name: string;
  age: number;
  active: boolean;
}
`

func writeInput(t *testing.T) string {
	t.Helper()
	return writeSource(t, source)
}

func writeSource(t *testing.T, src string) string {
	t.Helper()
	input := filepath.Join(t.TempDir(), "ipc.ts")
	require.NoError(t, os.WriteFile(input, []byte(src), 0644))
	return input
}

func TestRun(t *testing.T) {
	input := writeInput(t)

	var out bytes.Buffer
	cmd := &Cmd{
		Input:       input,
		Declaration: "User",
		Stdin:       strings.NewReader(`{"name":"a","age":3,"active":true}`),
		Stdout:      &out,
	}
	require.NoError(t, cmd.Run(context.Background(), zap.NewNop(), &options.Options{}))
	assert.Equal(t, "SubUser { name = \"a\", age = 3, active = True }\n", out.String())
}

func TestRun_PayloadFile(t *testing.T) {
	input := writeInput(t)
	payload := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(payload, []byte(`{"name":"a","active":true}`), 0644))

	var out bytes.Buffer
	cmd := &Cmd{Input: input, Declaration: "User", Payload: payload, Stdout: &out}
	err := cmd.Run(context.Background(), zap.NewNop(), &options.Options{})
	assert.True(t, errors.Is(err, ErrDecodeFailed))
	assert.True(t, strings.HasPrefix(out.String(), "MessagingError \"Problem with the given value:"), out.String())
	assert.Contains(t, out.String(), "`age`")
}

func TestRun_UnknownDeclaration(t *testing.T) {
	input := writeInput(t)

	cmd := &Cmd{Input: input, Declaration: "Nope", Stdin: strings.NewReader("{}"), Stdout: &bytes.Buffer{}}
	err := cmd.Run(context.Background(), zap.NewNop(), &options.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no declaration named "Nope"`)
	assert.Contains(t, errors.GetAllHints(err), "declarations: User")
}

func TestRun_LogsWarnings(t *testing.T) {
	input := writeSource(t, "interface Ev { type: string }\n")

	core, logs := observer.New(zapcore.WarnLevel)
	var out bytes.Buffer
	cmd := &Cmd{Input: input, Declaration: "Ev", Stdin: strings.NewReader(`{"type":"x"}`), Stdout: &out}
	require.NoError(t, cmd.Run(context.Background(), zap.New(core), &options.Options{}))
	assert.Equal(t, "SubEv { type_ = \"x\" }\n", out.String())

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "renamed_identifier", entry.ContextMap()["code"])
	assert.Equal(t, "type", entry.ContextMap()["field"])
}

func TestRun_InvalidSchema(t *testing.T) {
	input := writeSource(t, "interface Dup { a: string; a: number }\n")

	var out bytes.Buffer
	cmd := &Cmd{Input: input, Declaration: "Dup", Stdin: strings.NewReader(`{"a":"x"}`), Stdout: &out}
	err := cmd.Run(context.Background(), zap.NewNop(), &options.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate field Dup.a")
	assert.Empty(t, out.String())
}
