package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/matzehuels/kintree/pkg/errors"
)

// converter is the librsvg command line tool.
const converter = "rsvg-convert"

// Available reports whether the SVG converter is installed.
func Available() bool {
	_, err := exec.LookPath(converter)
	return err == nil
}

// ToPDF converts SVG bytes to PDF.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "--format=pdf")
}

// ToPNG converts SVG bytes to PNG at the given zoom. A scale of 2.0 suits
// high-DPI displays.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(ctx, svg, "--format=png", "--zoom="+strconv.FormatFloat(scale, 'f', -1, 64))
}

func convert(ctx context.Context, svg []byte, args ...string) ([]byte, error) {
	if !Available() {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s not found in PATH", converter)
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, converter, args...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", converter, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return stdout.Bytes(), nil
}
