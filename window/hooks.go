package window

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"egsim"
)

// Environment variables that switch Run into a headless dump/check
// mode. DUMP and CHECK apply the window's output settings; the RAW
// variants use an unscaled, unthemed 1:1 rendering.
const (
	envCheck    = "EG_SIMULATOR_CHECK"
	envCheckRaw = "EG_SIMULATOR_CHECK_RAW"
	envDump     = "EG_SIMULATOR_DUMP"
	envDumpRaw  = "EG_SIMULATOR_DUMP_RAW"
)

type hookKind int

const (
	hookCheck hookKind = iota
	hookCheckRaw
	hookDump
	hookDumpRaw
)

type hook struct {
	kind hookKind
	path string
}

func hookFromEnv() *hook {
	for _, h := range []struct {
		kind hookKind
		env  string
	}{
		{hookCheck, envCheck},
		{hookCheckRaw, envCheckRaw},
		{hookDump, envDump},
		{hookDumpRaw, envDumpRaw},
	} {
		if path := os.Getenv(h.env); path != "" {
			return &hook{kind: h.kind, path: path}
		}
	}
	return nil
}

// run performs the dump or check against the staged source. Check
// failures are returned as errors; the caller maps them to a non-zero
// process exit.
func (h *hook) run(src egsim.Source, s *egsim.Settings, log *zap.Logger) error {
	switch h.kind {
	case hookDump:
		return h.dump(src, s, log)
	case hookDumpRaw:
		return h.dump(src, egsim.NewSettings(), log)
	case hookCheck:
		return h.check(src, s, log)
	case hookCheckRaw:
		return h.checkRaw(src, log)
	}
	return nil
}

func (h *hook) dump(src egsim.Source, s *egsim.Settings, log *zap.Logger) error {
	if err := egsim.RenderRGB(src, s).SavePNG(h.path); err != nil {
		return err
	}
	log.Info("screenshot written", zap.String("path", h.path))
	return nil
}

func (h *hook) check(src egsim.Source, s *egsim.Settings, log *zap.Logger) error {
	output := egsim.RenderRGB(src, s)

	expected, err := egsim.LoadPNG[egsim.RGB888](h.path)
	if err != nil {
		return err
	}

	if output.Width() != expected.Width() || output.Height() != expected.Height() {
		return errors.Errorf("display dimensions don't match PNG dimensions (display: %dx%d, PNG: %dx%d)",
			output.Width(), output.Height(), expected.Width(), expected.Height())
	}
	if !bytes.Equal(output.Bytes(), expected.ToBEBytes()) {
		return errors.New("display content doesn't match PNG file")
	}

	log.Info("display matches reference", zap.String("path", h.path))
	return nil
}

func (h *hook) checkRaw(src egsim.Source, log *zap.Logger) error {
	expected, err := egsim.LoadPNG[egsim.RGB888](h.path)
	if err != nil {
		return err
	}

	if src.Width() != expected.Width() || src.Height() != expected.Height() {
		return errors.Errorf("display dimensions don't match PNG dimensions (display: %dx%d, PNG: %dx%d)",
			src.Width(), src.Height(), expected.Width(), expected.Height())
	}
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			if src.RGBAt(x, y) != expected.RGBAt(x, y) {
				return errors.New("display content doesn't match PNG file")
			}
		}
	}

	log.Info("display matches reference", zap.String("path", h.path))
	return nil
}
