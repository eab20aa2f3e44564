package window

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"egsim"
)

func testDisplay(t *testing.T) *egsim.Display[egsim.Mono] {
	t.Helper()
	d := egsim.NewDisplay[egsim.Mono](4, 3)
	d.Set(0, 0, true)
	d.Set(3, 2, true)
	return d
}

func TestHookFromEnv(t *testing.T) {
	for _, env := range []string{envCheck, envCheckRaw, envDump, envDumpRaw} {
		t.Setenv(env, "")
	}
	assert.Nil(t, hookFromEnv())

	t.Setenv(envDump, "out.png")
	h := hookFromEnv()
	require.NotNil(t, h)
	assert.Equal(t, hookDump, h.kind)
	assert.Equal(t, "out.png", h.path)

	// CHECK takes precedence when several variables are set.
	t.Setenv(envCheck, "ref.png")
	h = hookFromEnv()
	require.NotNil(t, h)
	assert.Equal(t, hookCheck, h.kind)
	assert.Equal(t, "ref.png", h.path)
}

func TestHookDumpWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.png")
	d := testDisplay(t)
	s := egsim.NewSettings(egsim.WithScale(2))

	h := &hook{kind: hookDump, path: path}
	require.NoError(t, h.run(d, s, zap.NewNop()))

	loaded, err := egsim.LoadPNG[egsim.RGB888](path)
	require.NoError(t, err)
	assert.Equal(t, 8, loaded.Width())
	assert.Equal(t, 6, loaded.Height())
	assert.Equal(t, egsim.RGB888{R: 255, G: 255, B: 255}, loaded.RGBAt(0, 0))
	assert.Equal(t, egsim.RGB888{}, loaded.RGBAt(2, 0))
}

func TestHookDumpRawIgnoresSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.png")
	d := testDisplay(t)

	h := &hook{kind: hookDumpRaw, path: path}
	require.NoError(t, h.run(d, egsim.NewSettings(egsim.WithScale(4)), zap.NewNop()))

	loaded, err := egsim.LoadPNG[egsim.RGB888](path)
	require.NoError(t, err)
	assert.Equal(t, d.Width(), loaded.Width())
	assert.Equal(t, d.Height(), loaded.Height())
}

func TestHookCheckPasses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.png")
	d := testDisplay(t)
	s := egsim.NewSettings(egsim.WithScale(2), egsim.WithPixelSpacing(1))

	require.NoError(t, egsim.RenderRGB(d, s).SavePNG(path))

	h := &hook{kind: hookCheck, path: path}
	assert.NoError(t, h.run(d, s, zap.NewNop()))
}

func TestHookCheckDimensionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.png")
	d := testDisplay(t)

	// Reference rendered at a different scale than the check.
	require.NoError(t, egsim.RenderRGB(d, egsim.NewSettings(egsim.WithScale(2))).SavePNG(path))

	h := &hook{kind: hookCheck, path: path}
	err := h.run(d, egsim.NewSettings(), zap.NewNop())
	require.Error(t, err)
	assert.Equal(t,
		"display dimensions don't match PNG dimensions (display: 4x3, PNG: 8x6)",
		err.Error())
}

func TestHookCheckContentMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.png")
	d := testDisplay(t)
	s := egsim.NewSettings()

	require.NoError(t, egsim.RenderRGB(d, s).SavePNG(path))

	d.Set(1, 1, true)
	h := &hook{kind: hookCheck, path: path}
	err := h.run(d, s, zap.NewNop())
	require.Error(t, err)
	assert.Equal(t, "display content doesn't match PNG file", err.Error())
}

func TestHookCheckRaw(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.png")
	d := testDisplay(t)

	// The raw check compares the unscaled display even when the window
	// settings scale the output.
	require.NoError(t, egsim.RenderRGB(d, egsim.NewSettings()).SavePNG(path))

	h := &hook{kind: hookCheckRaw, path: path}
	assert.NoError(t, h.run(d, egsim.NewSettings(egsim.WithScale(3)), zap.NewNop()))

	d.Set(2, 1, true)
	err := h.run(d, egsim.NewSettings(egsim.WithScale(3)), zap.NewNop())
	require.Error(t, err)
	assert.Equal(t, "display content doesn't match PNG file", err.Error())
}

func TestHookCheckMissingReference(t *testing.T) {
	h := &hook{kind: hookCheck, path: filepath.Join(t.TempDir(), "missing.png")}
	assert.Error(t, h.run(testDisplay(t), egsim.NewSettings(), zap.NewNop()))
}
