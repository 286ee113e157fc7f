package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instaquran/internal/card"
	"instaquran/internal/quran"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestNewImage(t *testing.T) {
	data := encodePNG(t, 940, 940)
	img, err := NewImage(data)
	require.NoError(t, err)
	assert.Equal(t, 940, img.Width)
	assert.Equal(t, 940, img.Height)
	assert.False(t, img.Empty())
	assert.True(t, Image{}.Empty())

	_, err = NewImage([]byte("GIF89a"))
	assert.ErrorContains(t, err, "not a PNG")
}

func TestImageDataURL(t *testing.T) {
	img := Image{PNG: []byte{0x89, 'P', 'N', 'G'}}
	assert.Equal(t, "data:image/png;base64,iVBORw==", img.DataURL())
}

func TestRenderError(t *testing.T) {
	cause := errors.New("boom")
	err := error(&RenderError{Reference: quran.Reference{Chapter: 36, Verse: 1}, Stage: "capture", Err: cause})
	assert.Equal(t, "render 36:1 (capture): boom", err.Error())
	assert.ErrorIs(t, err, cause)

	var re *RenderError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "capture", re.Stage)
}

func TestFuncAdapter(t *testing.T) {
	want := Image{PNG: []byte{1}, Width: 1, Height: 1}
	var got card.Card
	var r Rasterizer = Func(func(_ context.Context, c card.Card) (Image, error) {
		got = c
		return want, nil
	})

	c := card.Card{Reference: quran.Reference{Chapter: 1, Verse: 1}, Options: card.DefaultOptions()}
	img, err := r.Render(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, want, img)
	assert.Equal(t, c, got)
	assert.NoError(t, r.Close())
}

func TestBrowserRasterizer_ClosedBeforeStart(t *testing.T) {
	r := NewBrowserRasterizer(DefaultConfig())
	require.NoError(t, r.Close())

	c := card.Card{Reference: quran.Reference{Chapter: 1, Verse: 1}, Options: card.DefaultOptions()}
	_, err := r.Render(context.Background(), c)

	var re *RenderError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "launch", re.Stage)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestBrowserRasterizer_BadOptionsFailBeforeLaunch(t *testing.T) {
	r := NewBrowserRasterizer(Config{})
	defer r.Close()

	_, err := r.Render(context.Background(), card.Card{Options: card.Options{Background: "video"}})
	var re *RenderError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "page", re.Stage)
	assert.Equal(t, 1.0, r.cfg.Scale, "non-positive scale falls back to 1")
}
