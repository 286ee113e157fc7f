package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"instaquran/internal/logging"
	"instaquran/internal/render"
)

// imageTool is a command that reads a PNG and puts it on the clipboard.
type imageTool struct {
	name string
	args []string
	// viaFile tools read a temp file instead of stdin; "%s" in args is the path.
	viaFile bool
}

var (
	wlCopy    = imageTool{name: "wl-copy", args: []string{"--type", "image/png"}}
	xclip     = imageTool{name: "xclip", args: []string{"-selection", "clipboard", "-t", "image/png", "-i"}}
	osascript = imageTool{
		name:    "osascript",
		args:    []string{"-e", `set the clipboard to (read (POSIX file "%s") as «class PNGf»)`},
		viaFile: true,
	}
)

// ClipboardSink copies images and text to the system clipboard.
type ClipboardSink struct {
	goos      string
	getenv    func(string) string
	lookPath  func(string) (string, error)
	run       func(ctx context.Context, name string, args []string, stdin []byte) error
	writeText func(string) error
}

// NewClipboardSink returns a sink for the current platform.
func NewClipboardSink() *ClipboardSink {
	return &ClipboardSink{
		goos:      runtime.GOOS,
		getenv:    os.Getenv,
		lookPath:  exec.LookPath,
		run:       runCommand,
		writeText: clipboard.WriteAll,
	}
}

func runCommand(ctx context.Context, name string, args []string, stdin []byte) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// candidates lists the image tools to try, most specific first.
func (s *ClipboardSink) candidates() []imageTool {
	switch s.goos {
	case "darwin":
		return []imageTool{osascript}
	case "windows":
		return nil
	default:
		if s.getenv("WAYLAND_DISPLAY") != "" {
			return []imageTool{wlCopy, xclip}
		}
		return []imageTool{xclip, wlCopy}
	}
}

// CopyImage puts img on the clipboard with the first available platform tool.
func (s *ClipboardSink) CopyImage(ctx context.Context, img render.Image) error {
	if img.Empty() {
		return &ExportError{Op: "copy image", Err: ErrNoImage}
	}

	for _, tool := range s.candidates() {
		if _, err := s.lookPath(tool.name); err != nil {
			continue
		}
		if err := s.copyWith(ctx, tool, img.PNG); err != nil {
			logging.ExportError("%s failed: %v", tool.name, err)
			return &ExportError{Op: "copy image", Target: tool.name, Err: err}
		}
		logging.Export("copied %d byte image with %s", len(img.PNG), tool.name)
		return nil
	}
	return &ExportError{Op: "copy image", Err: ErrClipboardUnavailable}
}

func (s *ClipboardSink) copyWith(ctx context.Context, tool imageTool, data []byte) error {
	if !tool.viaFile {
		return s.run(ctx, tool.name, tool.args, data)
	}

	f, err := os.CreateTemp("", "instaquran-*.png")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	args := make([]string, len(tool.args))
	for i, a := range tool.args {
		if strings.Contains(a, "%s") {
			a = fmt.Sprintf(a, f.Name())
		}
		args[i] = a
	}
	return s.run(ctx, tool.name, args, nil)
}

// CopyText puts text on the clipboard.
func (s *ClipboardSink) CopyText(text string) error {
	if err := s.writeText(text); err != nil {
		logging.ExportError("copy text failed: %v", err)
		return &ExportError{Op: "copy text", Err: err}
	}
	logging.Export("copied %d characters of text", len(text))
	return nil
}
