package elmgen

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/tselm/elmgen/ir"
)

const userSource = `export interface User {
  name: string;
  tags?: string[];
}
`

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
	}
	return fs
}

func TestGenerator_ToDir(t *testing.T) {
	fs := memFs(t, map[string]string{"src/ipc.ts": userSource})

	res, err := FromFile("src/ipc.ts").WithFs(fs).ToDir(context.Background(), "out/elm")
	require.NoError(t, err)

	assert.Equal(t, "src/ipc.ts", res.Input)
	assert.Equal(t, 1, res.Declarations)
	assert.Equal(t, []string{"out/elm/TsElmInterfaces.elm"}, res.Written)
	assert.Empty(t, res.Warnings)

	got, err := afero.ReadFile(fs, "out/elm/TsElmInterfaces.elm")
	require.NoError(t, err)
	assert.Equal(t, res.Files["TsElmInterfaces.elm"], got)

	text := string(got)
	assert.True(t, strings.HasPrefix(text, "-- Generated by tselm from ipc.ts. DO NOT EDIT.\n\nport module TsElmInterfaces exposing (..)\n"), text)
	assert.Contains(t, text, "    , tags : Maybe (Array String)\n")
	assert.Contains(t, text, `JDecodeExtra.optionalNullableField "tags" (JDecode.array JDecode.string)`)
	assert.Contains(t, text, "port receiveUser : (JEncode.Value -> msg) -> Sub msg")
}

func TestGenerator_ToDir_ModulePath(t *testing.T) {
	fs := memFs(t, map[string]string{"ipc.ts": userSource})
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyOverrides(map[string]string{"module": "Ports.Host"}))

	res, err := FromFile("ipc.ts").WithFs(fs).WithConfig(cfg).ToDir(context.Background(), "elm")
	require.NoError(t, err)
	assert.Equal(t, []string{"elm/Ports/Host.elm"}, res.Written)

	exists, err := afero.Exists(fs, "elm/Ports/Host.elm")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGenerator_Overwrites(t *testing.T) {
	fs := memFs(t, map[string]string{
		"ipc.ts":                  userSource,
		"out/TsElmInterfaces.elm": "stale",
	})

	_, err := FromFile("ipc.ts").WithFs(fs).ToDir(context.Background(), "out")
	require.NoError(t, err)

	got, err := afero.ReadFile(fs, "out/TsElmInterfaces.elm")
	require.NoError(t, err)
	assert.NotEqual(t, "stale", string(got))
}

func TestGenerator_Generate_InMemory(t *testing.T) {
	fs := afero.NewMemMapFs()

	res, err := FromSource("inline.ts", []byte(userSource)).WithFs(fs).Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"TsElmInterfaces.elm"}, res.Paths())
	assert.Empty(t, res.Written)

	entries, err := afero.ReadDir(fs, "/")
	require.NoError(t, err)
	assert.Empty(t, entries, "Generate must not write")
}

func TestGenerator_Deterministic(t *testing.T) {
	src := []byte(userSource + "interface Point { x: number; y: number }\n")

	first, err := FromSource("a.ts", src).Generate(context.Background())
	require.NoError(t, err)
	second, err := FromSource("a.ts", src).Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Files, second.Files)
}

func TestGenerator_UsageError(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	_, err := FromFile("ipc.js").WithFs(fs).ToDir(context.Background(), "out")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUsage))
	assert.Contains(t, err.Error(), `"ipc.js" must end in .ts`)
	assert.Contains(t, errors.GetAllHints(err), "usage: tselm <input.ts> <outdir>")
}

func TestGenerator_CustomSuffix(t *testing.T) {
	fs := memFs(t, map[string]string{"types.d.ts": userSource})
	cfg := DefaultConfig()
	cfg.SourceSuffix = ".d.ts"

	_, err := FromFile("types.d.ts").WithFs(fs).WithConfig(cfg).Generate(context.Background())
	require.NoError(t, err)

	_, err = FromFile("other.ts").WithFs(fs).WithConfig(cfg).Generate(context.Background())
	assert.True(t, errors.Is(err, ErrUsage))
}

func TestGenerator_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MsgType = "msg"

	_, err := FromSource("ipc.ts", []byte(userSource)).WithConfig(cfg).Generate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.False(t, errors.Is(err, ErrUsage))
}

func TestGenerator_Errors(t *testing.T) {
	fs := memFs(t, map[string]string{
		"broken.ts":    "interface User { name: string;\n",
		"malformed.ts": "interface User { name; }\n",
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := FromFile("nope.ts").WithFs(fs).Generate(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read nope.ts")
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := FromFile("broken.ts").WithFs(fs).ToDir(context.Background(), "out")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "collect declarations")

		exists, _ := afero.DirExists(fs, "out")
		assert.False(t, exists, "nothing is written on failure")
	})

	t.Run("malformed declaration", func(t *testing.T) {
		_, err := FromFile("malformed.ts").WithFs(fs).Generate(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "User")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := FromFile("broken.ts").WithFs(fs).Generate(ctx)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestGenerator_Strict(t *testing.T) {
	src := []byte(`interface Shape {
  id: string;
  meta: { a: string };
}
interface Shape {
  id: string;
}
interface Point {
  x: number;
  extra: Record<string, number>;
}
`)

	res, err := FromSource("shapes.ts", src).Generate(context.Background())
	require.NoError(t, err)
	var codes []string
	for _, w := range res.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []string{ir.WarnDuplicateDeclaration, ir.WarnUnsupportedDecoder}, codes)

	_, err = FromSource("shapes.ts", src).Strict().Generate(context.Background())
	require.Error(t, err)
	var strictErr *StrictError
	require.True(t, errors.As(err, &strictErr))
	assert.Len(t, strictErr.Warnings, 2)
	assert.Contains(t, err.Error(), "strict mode: ")
	assert.Contains(t, err.Error(), "Point.extra")

	cfg := DefaultConfig()
	cfg.Strict = true
	_, err = FromSource("shapes.ts", src).WithConfig(cfg).Generate(context.Background())
	assert.True(t, errors.As(err, &strictErr))
}

func TestGenerator_Strict_AllowsOtherWarnings(t *testing.T) {
	src := []byte("interface Ev { type: string; }\n")

	res, err := FromSource("ev.ts", src).Strict().Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, ir.WarnRenamedIdentifier, res.Warnings[0].Code)
}

func TestGenerator_Check(t *testing.T) {
	fs := memFs(t, map[string]string{"ipc.ts": userSource})
	ctx := context.Background()

	results, err := FromFile("ipc.ts").WithFs(fs).Check(ctx, "out")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Missing)
	assert.False(t, results[0].UpToDate)

	_, err = FromFile("ipc.ts").WithFs(fs).ToDir(ctx, "out")
	require.NoError(t, err)

	results, err = FromFile("ipc.ts").WithFs(fs).Check(ctx, "out")
	require.NoError(t, err)
	assert.True(t, results[0].UpToDate)
	assert.Empty(t, results[0].Diff)

	require.NoError(t, afero.WriteFile(fs, "ipc.ts", []byte(userSource+"interface Extra { on: boolean }\n"), 0644))
	results, err = FromFile("ipc.ts").WithFs(fs).Check(ctx, "out")
	require.NoError(t, err)
	assert.False(t, results[0].UpToDate)
	assert.False(t, results[0].Missing)
	assert.Contains(t, results[0].Diff, "SubExtra")
}

func TestGenerator_Bindings(t *testing.T) {
	bindings, warnings, err := FromSource("ipc.ts", []byte(userSource)).Bindings(context.Background())
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Empty(t, warnings)

	b := bindings[0]
	assert.Equal(t, "User", b.TypeName)
	assert.Equal(t, "SubUser", b.Variant)

	msg := b.Record.Run([]byte(`{"name":"ada","tags":["x"]}`))
	require.True(t, msg.OK(), msg.Err)
	assert.Equal(t, `SubUser { name = "ada", tags = Just (Array.fromList ["x"]) }`, msg.String())

	msg = b.Record.Run([]byte(`{"tags":null}`))
	assert.False(t, msg.OK())
	assert.Equal(t, "MessagingError", msg.Variant)
	assert.Contains(t, msg.Err, "Expecting an OBJECT with a field named `name`")
}

func TestGenerator_Bindings_ValidatesLikeGenerate(t *testing.T) {
	src := []byte("interface Dup { a: string; a: number }\n")

	_, genErr := FromSource("dup.ts", src).Generate(context.Background())
	require.Error(t, genErr)

	_, _, err := FromSource("dup.ts", src).Bindings(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schema")
	assert.Contains(t, err.Error(), "duplicate field Dup.a")
}

func TestGenerator_Bindings_Warnings(t *testing.T) {
	src := []byte("interface Ev { type: string; extra: Record<string, number> }\n")

	bindings, warnings, err := FromSource("ev.ts", src).Bindings(context.Background())
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	var codes []string
	for _, w := range warnings {
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []string{ir.WarnRenamedIdentifier, ir.WarnUnsupportedDecoder}, codes)

	_, _, err = FromSource("ev.ts", src).Strict().Bindings(context.Background())
	var strictErr *StrictError
	assert.True(t, errors.As(err, &strictErr))
}

func TestGenerator_EscapedKeyRoundTrip(t *testing.T) {
	src := []byte(`interface Quoted { "a\"b": string; 'it\'s': number }` + "\n")

	res, err := FromSource("quoted.ts", src).Generate(context.Background())
	require.NoError(t, err)
	text := string(res.Files["TsElmInterfaces.elm"])
	assert.Contains(t, text, `JDecode.field "a\"b" JDecode.string`)
	assert.Contains(t, text, `JDecode.field "it's" JDecode.float`)

	bindings, _, err := FromSource("quoted.ts", src).Bindings(context.Background())
	require.NoError(t, err)
	msg := bindings[0].Record.Run([]byte(`{"a\"b":"x","it's":1}`))
	require.True(t, msg.OK(), msg.Err)
	v, ok := msg.Value.Get(bindings[0].Record.Fields[0].Name)
	require.True(t, ok)
	assert.Equal(t, "x", v)
}
