// Package mupdf rasterizes PDF pages with the MuPDF command line tool.
package mupdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/tsawler/pdflayout/render"
)

// ErrNotFound is returned when no mutool binary can be located.
var ErrNotFound = errors.New("MuPDF CLI (mutool) not found: install mupdf-tools or set $MUPDF_BIN")

// pointsPerInch converts a render scale to mutool's resolution flag.
const pointsPerInch = 72

// Binary discovery ----------------------------------------------------------------

var (
	binPath string
	once    sync.Once
	binErr  error
)

// Discover searches $MUPDF_BIN, then PATH for mutool. The result is cached.
func Discover() (string, error) {
	once.Do(func() {
		binPath, binErr = lookup(os.Getenv("MUPDF_BIN"))
	})
	return binPath, binErr
}

func lookup(env string) (string, error) {
	var candidates []string
	if env = strings.TrimSpace(env); env != "" {
		candidates = append(candidates, env)
	}
	exe := "mutool"
	if runtime.GOOS == "windows" {
		exe += ".exe"
	}
	candidates = append(candidates, exe)

	for _, c := range candidates {
		if p, err := exec.LookPath(c); err == nil {
			return p, nil
		}
	}
	return "", ErrNotFound
}

// Rasterizer ----------------------------------------------------------------------

// Rasterizer renders pages of a PDF file on disk by running mutool draw.
type Rasterizer struct {
	path   string
	bin    string
	logger *zap.Logger
}

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithBinary uses the given mutool binary instead of discovering one.
func WithBinary(bin string) Option {
	return func(r *Rasterizer) { r.bin = bin }
}

// WithLogger sets the logger used for command tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Rasterizer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a rasterizer for the PDF file at path.
func New(path string, opts ...Option) *Rasterizer {
	r := &Rasterizer{path: path, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ render.Rasterizer = (*Rasterizer)(nil)

// RenderPage renders the 1-based page at scale and decodes the PNG output.
func (r *Rasterizer) RenderPage(ctx context.Context, pageIndex int, scale float64) (image.Image, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("%w: scale %g", render.ErrInvalidGeometry, scale)
	}

	bin := r.bin
	if bin == "" {
		var err error
		if bin, err = Discover(); err != nil {
			return nil, err
		}
	}

	args := drawArgs(r.path, pageIndex, scale)
	r.logger.Debug("running mutool",
		zap.String("bin", bin),
		zap.Strings("args", args),
	)

	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("mupdf: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	img, err := png.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("mupdf: failed to decode page %d: %w", pageIndex, err)
	}
	return img, nil
}

// drawArgs builds the mutool arguments that write one page as PNG to stdout.
func drawArgs(path string, pageIndex int, scale float64) []string {
	return []string{
		"draw",
		"-q",
		"-F", "png",
		"-r", resolution(scale),
		"-o", "-",
		path,
		strconv.Itoa(pageIndex),
	}
}

// resolution formats a render scale as a dots-per-inch value.
func resolution(scale float64) string {
	return strconv.FormatFloat(scale*pointsPerInch, 'f', -1, 64)
}
