// Package render turns cards into PNG images.
package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"

	"instaquran/internal/card"
	"instaquran/internal/quran"
)

// ErrClosed is returned by Render after Close.
var ErrClosed = errors.New("rasterizer closed")

// Image is a rendered card.
type Image struct {
	PNG    []byte
	Width  int // device pixels
	Height int
}

// NewImage wraps PNG bytes, reading the pixel size from the header.
func NewImage(data []byte) (Image, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("not a PNG: %w", err)
	}
	return Image{PNG: data, Width: cfg.Width, Height: cfg.Height}, nil
}

// Empty reports whether the image holds no data.
func (i Image) Empty() bool {
	return len(i.PNG) == 0
}

// DataURL encodes the image as a data: URL.
func (i Image) DataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(i.PNG)
}

// Rasterizer renders cards. Implementations must be safe for concurrent use.
type Rasterizer interface {
	Render(ctx context.Context, c card.Card) (Image, error)
	Close() error
}

// RenderError describes a failed render.
type RenderError struct {
	Reference quran.Reference
	Stage     string // launch, page, load, capture
	Err       error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s (%s): %v", e.Reference, e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Func adapts a function to the Rasterizer interface. Close is a no-op.
type Func func(ctx context.Context, c card.Card) (Image, error)

// Render calls f.
func (f Func) Render(ctx context.Context, c card.Card) (Image, error) {
	return f(ctx, c)
}

// Close implements Rasterizer.
func (f Func) Close() error {
	return nil
}
