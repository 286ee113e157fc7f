package export

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instaquran/internal/render"
)

var sample = render.Image{PNG: []byte("\x89PNG fake"), Width: 940, Height: 940}

func TestDownloadSink_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	sink := DownloadSink{Dir: dir}

	path, err := sink.Save(sample, "quran-verse-2-255.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "quran-verse-2-255.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sample.PNG, data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestDownloadSink_Overwrites(t *testing.T) {
	sink := DownloadSink{Dir: t.TempDir()}
	_, err := sink.Save(sample, "card.png")
	require.NoError(t, err)

	newer := render.Image{PNG: []byte("second"), Width: 1, Height: 1}
	path, err := sink.Save(newer, "card.png")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestDownloadSink_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	path, err := DownloadSink{Dir: dir}.Save(sample, "../../escape.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.png"), path)
}

func TestDownloadSink_NoImage(t *testing.T) {
	_, err := DownloadSink{Dir: t.TempDir()}.Save(render.Image{}, "card.png")
	assert.ErrorIs(t, err, ErrNoImage)

	var ee *ExportError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "save", ee.Op)
}

type call struct {
	Name  string
	Args  []string
	Stdin string
}

type fakeShell struct {
	installed map[string]bool
	calls     []call
	fail      error
}

func (f *fakeShell) lookPath(name string) (string, error) {
	if f.installed[name] {
		return "/usr/bin/" + name, nil
	}
	return "", exec.ErrNotFound
}

func (f *fakeShell) run(_ context.Context, name string, args []string, stdin []byte) error {
	f.calls = append(f.calls, call{Name: name, Args: args, Stdin: string(stdin)})
	return f.fail
}

func newFakeSink(goos string, env map[string]string, sh *fakeShell) *ClipboardSink {
	return &ClipboardSink{
		goos:     goos,
		getenv:   func(k string) string { return env[k] },
		lookPath: sh.lookPath,
		run:      sh.run,
	}
}

func TestCopyImage_PicksTool(t *testing.T) {
	tests := []struct {
		name      string
		goos      string
		env       map[string]string
		installed []string
		want      string
	}{
		{"wayland prefers wl-copy", "linux", map[string]string{"WAYLAND_DISPLAY": "wayland-0"}, []string{"wl-copy", "xclip"}, "wl-copy"},
		{"x11 prefers xclip", "linux", nil, []string{"wl-copy", "xclip"}, "xclip"},
		{"falls back to whatever exists", "linux", nil, []string{"wl-copy"}, "wl-copy"},
		{"freebsd behaves like linux", "freebsd", nil, []string{"xclip"}, "xclip"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh := &fakeShell{installed: map[string]bool{}}
			for _, n := range tt.installed {
				sh.installed[n] = true
			}
			sink := newFakeSink(tt.goos, tt.env, sh)

			require.NoError(t, sink.CopyImage(context.Background(), sample))
			require.Len(t, sh.calls, 1)
			assert.Equal(t, tt.want, sh.calls[0].Name)
			assert.Equal(t, string(sample.PNG), sh.calls[0].Stdin)
		})
	}
}

func TestCopyImage_XclipArgs(t *testing.T) {
	sh := &fakeShell{installed: map[string]bool{"xclip": true}}
	sink := newFakeSink("linux", nil, sh)
	require.NoError(t, sink.CopyImage(context.Background(), sample))

	want := []call{{Name: "xclip", Args: []string{"-selection", "clipboard", "-t", "image/png", "-i"}, Stdin: string(sample.PNG)}}
	if diff := cmp.Diff(want, sh.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestCopyImage_MacUsesTempFile(t *testing.T) {
	sh := &fakeShell{installed: map[string]bool{"osascript": true}}
	sink := newFakeSink("darwin", nil, sh)

	require.NoError(t, sink.CopyImage(context.Background(), sample))
	require.Len(t, sh.calls, 1)
	c := sh.calls[0]
	assert.Equal(t, "osascript", c.Name)
	assert.Empty(t, c.Stdin)
	require.Len(t, c.Args, 2)
	assert.True(t, strings.HasPrefix(c.Args[1], `set the clipboard to (read (POSIX file "`))
	assert.Contains(t, c.Args[1], "instaquran-")
	assert.NotContains(t, c.Args[1], "%s")
}

func TestCopyImage_Unavailable(t *testing.T) {
	for _, goos := range []string{"linux", "windows"} {
		sink := newFakeSink(goos, nil, &fakeShell{})
		err := sink.CopyImage(context.Background(), sample)
		assert.ErrorIs(t, err, ErrClipboardUnavailable, goos)
	}
}

func TestCopyImage_ToolFailure(t *testing.T) {
	sh := &fakeShell{installed: map[string]bool{"xclip": true}, fail: errors.New("exit status 1")}
	err := newFakeSink("linux", nil, sh).CopyImage(context.Background(), sample)

	var ee *ExportError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "xclip", ee.Target)
	assert.Equal(t, "copy image xclip: exit status 1", err.Error())
	assert.Len(t, sh.calls, 1, "failures are not retried")
}

func TestCopyImage_NoImage(t *testing.T) {
	sh := &fakeShell{installed: map[string]bool{"xclip": true}}
	err := newFakeSink("linux", nil, sh).CopyImage(context.Background(), render.Image{})
	assert.ErrorIs(t, err, ErrNoImage)
	assert.Empty(t, sh.calls)
}

func TestCopyText(t *testing.T) {
	var got string
	sink := &ClipboardSink{writeText: func(s string) error { got = s; return nil }}
	require.NoError(t, sink.CopyText("\"Say, He is God the One\"\nQuran 112:1"))
	assert.Equal(t, "\"Say, He is God the One\"\nQuran 112:1", got)

	sink.writeText = func(string) error { return errors.New("no xsel") }
	err := sink.CopyText("x")
	assert.ErrorContains(t, err, "copy text: no xsel")
}
