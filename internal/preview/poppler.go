package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// PopplerRasterizer shells out to pdftoppm.
type PopplerRasterizer struct {
	Binary  string
	Timeout time.Duration
}

func NewPopplerRasterizer(binary string, timeout time.Duration) *PopplerRasterizer {
	if binary == "" {
		binary = "pdftoppm"
	}
	return &PopplerRasterizer{Binary: binary, Timeout: timeout}
}

func (r *PopplerRasterizer) FirstPagePNG(ctx context.Context, pdfPath string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	dir, err := os.MkdirTemp("", "certificate-preview-*")
	if err != nil {
		return nil, &RenderError{Reason: ReasonRenderFailed, Err: err}
	}
	defer os.RemoveAll(dir)

	// -singlefile writes <prefix>.png without a page-number suffix.
	prefix := filepath.Join(dir, "page")
	cmd := exec.CommandContext(ctx, r.Binary, "-f", "1", "-l", "1", "-png", "-singlefile", pdfPath, prefix)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		switch {
		case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
			return nil, &RenderError{Reason: ReasonToolMissing, Err: err}
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return nil, &RenderError{Reason: ReasonTimeout, Err: ctx.Err()}
		default:
			return nil, &RenderError{Reason: ReasonRenderFailed, Err: fmt.Errorf("%w: %s", err, bytes.TrimSpace(stderr.Bytes()))}
		}
	}

	img, err := os.ReadFile(prefix + ".png")
	if err != nil {
		return nil, &RenderError{Reason: ReasonInvalidOutput, Err: err}
	}
	return img, nil
}
