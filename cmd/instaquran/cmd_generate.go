package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"instaquran/internal/card"
	"instaquran/internal/export"
	"instaquran/internal/logging"
	"instaquran/internal/quran"
	"instaquran/internal/validation"
)

// errInvalidReference is returned after the validator messages have been printed.
var errInvalidReference = errors.New("invalid reference")

type generateFlags struct {
	background string
	gradient   string
	theme      string
	image      int
	dimension  string
	noArabic   bool
	out        string
	copy       bool
	caption    bool
}

func generateCmd(g *globals) *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate CHAPTER:VERSE",
		Short: "Render one verse card without the studio",
		Long: `Validates the reference, fetches the verse, renders the card and saves it
as quran-verse-CHAPTER-VERSE.png. Use --copy to put the image on the clipboard instead.

Examples:
  instaquran generate 2:255
  instaquran generate 36:58 --background image --theme light --dimension story
  instaquran generate 1:1 --gradient "Blue to Purple" --no-arabic --copy --caption`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, g, f, args[0])
		},
	}

	names := make([]string, len(card.Gradients))
	for i, gr := range card.Gradients {
		names[i] = gr.Name
	}
	cmd.Flags().StringVar(&f.background, "background", string(card.BackgroundGradient), "Background: gradient or image")
	cmd.Flags().StringVar(&f.gradient, "gradient", card.Gradients[0].Name, "Gradient name: "+strings.Join(names, ", "))
	cmd.Flags().StringVar(&f.theme, "theme", string(card.ThemeDark), "Photo theme for image backgrounds: dark or light")
	cmd.Flags().IntVar(&f.image, "image", 1, "Photo number within the theme, starting at 1")
	cmd.Flags().StringVar(&f.dimension, "dimension", string(card.DimensionPost), "Format: post (470x470) or story (315x560)")
	cmd.Flags().BoolVar(&f.noArabic, "no-arabic", false, "Show only the translation")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output directory (default: output.dir from config)")
	cmd.Flags().BoolVar(&f.copy, "copy", false, "Copy the image to the clipboard instead of saving it (combine with --out to do both)")
	cmd.Flags().BoolVar(&f.caption, "caption", false, "Copy the caption text to the clipboard")
	return cmd
}

// options converts the flags into card options.
func (f *generateFlags) options() (card.Options, error) {
	opts := card.DefaultOptions()
	opts.Background = card.Background(strings.ToLower(f.background))
	opts.Theme = card.Theme(strings.ToLower(f.theme))
	opts.Dimension = card.Dimension(strings.ToLower(f.dimension))
	opts.ShowArabic = !f.noArabic
	opts.Photo = f.image - 1

	idx, ok := card.GradientByName(f.gradient)
	if !ok {
		return card.Options{}, fmt.Errorf("unknown gradient %q", f.gradient)
	}
	opts.Gradient = idx

	if err := opts.Validate(); err != nil {
		return card.Options{}, err
	}
	return opts, nil
}

func runGenerate(cmd *cobra.Command, g *globals, f *generateFlags, key string) error {
	out := cmd.OutOrStdout()

	chapter, verseNum, err := quran.SplitKey(key)
	if err != nil {
		return err
	}
	ref, errs := validation.Resolve(chapter, verseNum)
	if !errs.OK() {
		printErrors(cmd, errs)
		return errInvalidReference
	}

	opts, err := f.options()
	if err != nil {
		return err
	}

	requestID := uuid.NewString()
	ctx, cancel := g.commandContext(logging.WithRequestID(cmd.Context(), requestID))
	defer cancel()
	log := logging.FromContext(ctx, logging.CategoryUI)
	log.Info("generate %s (%s, %s)", ref, opts.Background, opts.Dimension)

	v, err := newFetcher(g.cfg).Fetch(ctx, ref)
	if err != nil {
		return err
	}
	c := card.New(v, opts)

	rasterizer := newRasterizer(g.cfg)
	defer func() {
		if err := rasterizer.Close(); err != nil {
			log.Warn("rasterizer close: %v", err)
		}
	}()
	img, err := rasterizer.Render(ctx, c)
	if err != nil {
		return err
	}

	if !f.copy || f.out != "" {
		dir := f.out
		if dir == "" {
			dir = g.outputDir()
		}
		path, err := export.DownloadSink{Dir: dir}.Save(img, c.FileName())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved %s (%dx%d)\n", path, img.Width, img.Height)
	}

	if f.copy || f.caption {
		clip := newClipboard()
		if f.copy {
			if err := clip.CopyImage(ctx, img); err != nil {
				return err
			}
			fmt.Fprintln(out, "Image copied to clipboard")
		}
		if f.caption {
			if err := clip.CopyText(c.Caption()); err != nil {
				return err
			}
			fmt.Fprintln(out, "Caption copied to clipboard")
		}
	}
	return nil
}

func printErrors(cmd *cobra.Command, errs validation.Errors) {
	w := cmd.ErrOrStderr()
	if errs.Chapter != "" {
		fmt.Fprintln(w, errs.Chapter)
	}
	if errs.Verse != "" {
		fmt.Fprintln(w, errs.Verse)
	}
}
