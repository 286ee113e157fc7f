//go:build integration

package render_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instaquran/internal/card"
	"instaquran/internal/quran"
	"instaquran/internal/render"
)

func TestBrowserRasterizer_Integration(t *testing.T) {
	r := render.NewBrowserRasterizer(render.DefaultConfig())
	// Ensure shutdown to clean up browser process
	defer func() {
		_ = r.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	c := card.Card{
		Reference:   quran.Reference{Chapter: 112, Verse: 1},
		Arabic:      "قُلْ هُوَ ٱللَّهُ أَحَدٌ",
		Translation: "Say, He is God the One",
		Options:     card.DefaultOptions(),
	}

	img, err := r.Render(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, 940, img.Width)
	assert.Equal(t, 940, img.Height)

	c.Options.Dimension = card.DimensionStory
	img, err = r.Render(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, 630, img.Width)
	assert.Equal(t, 1120, img.Height)
}
