// Package preview turns a stored certificate document into something a page can show.
//
// Image documents pass through as their storage URL. PDF documents are rasterized
// (first page only) into an inline PNG data URI. A PDF that cannot be rendered yields
// KindNone: the failure is logged and counted, never returned to the caller.
package preview

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	"golang.org/x/image/draw"

	"sports-portal/internal/metrics"
	"sports-portal/internal/storage"
)

// MaxInlineWidth caps the width of an inlined first page.
const MaxInlineWidth = 1200

type Kind string

const (
	KindInline Kind = "inline"
	KindURL    Kind = "url"
	KindNone   Kind = "none"
)

type Result struct {
	Kind     Kind    `json:"kind"`
	ImageURL *string `json:"image_url"`
}

var none = Result{Kind: KindNone}

// Rasterizer renders the first page of the PDF at pdfPath as PNG bytes.
type Rasterizer interface {
	FirstPagePNG(ctx context.Context, pdfPath string) ([]byte, error)
}

type Pipeline struct {
	store  storage.Store
	raster Rasterizer
	log    *slog.Logger
}

func NewPipeline(store storage.Store, raster Rasterizer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{store: store, raster: raster, log: logger}
}

func IsPDF(documentKey string) bool {
	return strings.EqualFold(path.Ext(documentKey), ".pdf")
}

// Preview never returns an error; callers must handle all three kinds.
func (p *Pipeline) Preview(ctx context.Context, documentKey string) Result {
	if !IsPDF(documentKey) {
		u, err := p.store.URL(ctx, documentKey)
		if err != nil {
			p.fail(ctx, documentKey, &RenderError{Reason: ReasonFetchFailed, Err: err})
			return none
		}
		metrics.CertificatePreviews.WithLabelValues(string(KindURL), "").Inc()
		return Result{Kind: KindURL, ImageURL: &u}
	}

	img, err := p.renderPDF(ctx, documentKey)
	if err != nil {
		p.fail(ctx, documentKey, err)
		return none
	}

	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(img)
	metrics.CertificatePreviews.WithLabelValues(string(KindInline), "").Inc()
	return Result{Kind: KindInline, ImageURL: &uri}
}

func (p *Pipeline) renderPDF(ctx context.Context, documentKey string) ([]byte, error) {
	src, err := p.store.Open(ctx, documentKey)
	if err != nil {
		return nil, &RenderError{Reason: ReasonFetchFailed, Err: err}
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "certificate-*.pdf")
	if err != nil {
		return nil, &RenderError{Reason: ReasonFetchFailed, Err: err}
	}
	defer os.Remove(tmp.Name())

	_, err = io.Copy(tmp, src)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, &RenderError{Reason: ReasonFetchFailed, Err: err}
	}

	img, err := p.raster.FirstPagePNG(ctx, tmp.Name())
	if err != nil {
		return nil, err
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return nil, &RenderError{Reason: ReasonInvalidOutput, Err: err}
	}
	if cfg.Width <= MaxInlineWidth {
		return img, nil
	}

	return shrink(img, cfg.Width, cfg.Height)
}

// shrink scales a page wider than MaxInlineWidth down to that width, keeping the aspect ratio.
func shrink(img []byte, width, height int) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(img))
	if err != nil {
		return nil, &RenderError{Reason: ReasonInvalidOutput, Err: err}
	}

	h := height * MaxInlineWidth / width
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, MaxInlineWidth, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, &RenderError{Reason: ReasonInvalidOutput, Err: err}
	}
	return buf.Bytes(), nil
}

func (p *Pipeline) fail(ctx context.Context, documentKey string, err error) {
	reason := Classify(err)
	metrics.CertificatePreviews.WithLabelValues(string(KindNone), string(reason)).Inc()
	p.log.WarnContext(ctx, "certificate preview unavailable",
		slog.String("document", documentKey),
		slog.String("reason", string(reason)),
		slog.Any("error", err),
	)
}
