package ffmpeg

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stagehand/setcutter/internal/manifest"
)

// argsAfter returns the value following the first occurrence of flag.
func argsAfter(t *testing.T, args []string, flag string) string {
	t.Helper()
	i := slices.Index(args, flag)
	if i < 0 || i+1 >= len(args) {
		t.Fatalf("flag %s not found in %v", flag, args)
	}
	return args[i+1]
}

func testVideo(t *testing.T) *manifest.Video {
	t.Helper()
	src := t.TempDir() + "/set.mp4"
	v := &manifest.Video{
		Source: src, Title: "Closer", Artist: "The Regulars",
		Album: "Spring Tour", Year: 2025, Genre: "Rock", Track: 3,
	}
	return v
}

func TestTrimArgs(t *testing.T) {
	v := testVideo(t)
	args := TrimArgs(v, "/out/clip.mp4", false)

	if args[0] != "ffmpeg" {
		t.Fatalf("args[0] = %q", args[0])
	}
	for _, want := range []string{"-hide_banner", "-nostdin", "-y"} {
		if !slices.Contains(args, want) {
			t.Errorf("missing %s in %v", want, args)
		}
	}
	if got := argsAfter(t, args, "-loglevel"); got != "error" {
		t.Errorf("loglevel = %q, want error", got)
	}
	if slices.Contains(args, "-ss") || slices.Contains(args, "-to") {
		t.Errorf("unbounded trim should carry no seek flags: %v", args)
	}
	if got := argsAfter(t, args, "-c"); got != "copy" {
		t.Errorf("-c = %q, want copy", got)
	}
	if args[len(args)-1] != "/out/clip.mp4" {
		t.Errorf("output = %q", args[len(args)-1])
	}
}

func TestTrimArgsBounds(t *testing.T) {
	dir := t.TempDir()
	start, stop := "1:30", "12:00"
	srcName := "set.mp4"
	writeFile(t, dir, srcName)
	v, err := manifest.NewVideo(manifest.Record{},
		manifest.Record{Source: &srcName, Start: &start, Stop: &stop, ManifestDir: dir, ManifestName: "m"})
	if err != nil {
		t.Fatal(err)
	}

	args := TrimArgs(v, "/out/clip.mp4", true)
	if got := argsAfter(t, args, "-ss"); got != "1:30" {
		t.Errorf("-ss = %q", got)
	}
	if got := argsAfter(t, args, "-to"); got != "12:00" {
		t.Errorf("-to = %q", got)
	}
	if got := argsAfter(t, args, "-loglevel"); got != "info" {
		t.Errorf("verbose loglevel = %q, want info", got)
	}
	// Seek flags must come after the input for an accurate copy cut.
	if slices.Index(args, "-i") > slices.Index(args, "-ss") {
		t.Errorf("-ss precedes -i: %v", args)
	}
}

func TestAudioArgs(t *testing.T) {
	args := AudioArgs("/out/clip.mp4", "/out/clip.mp3", "320k", 48000, false)

	if !slices.Contains(args, "-vn") {
		t.Errorf("missing -vn in %v", args)
	}
	if got := argsAfter(t, args, "-acodec"); got != "libmp3lame" {
		t.Errorf("-acodec = %q", got)
	}
	if got := argsAfter(t, args, "-b:a"); got != "320k" {
		t.Errorf("-b:a = %q", got)
	}
	if got := argsAfter(t, args, "-ar"); got != "48000" {
		t.Errorf("-ar = %q", got)
	}
}

func TestTagArgsWithCover(t *testing.T) {
	v := testVideo(t)
	v.Cover = "/art/cover.jpg"
	args := TagArgs(v, "/out/c.mp3", "/out/.c.mp3.tmp", false)

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"-i /out/c.mp3",
		"-i /art/cover.jpg",
		"-map 0:a",
		"-map 1:0",
		"-id3v2_version 3",
		"-metadata title=Closer",
		"-metadata artist=The Regulars",
		"-metadata album=Spring Tour",
		"-metadata track=3",
		"-metadata date=2025",
		"-metadata genre=Rock",
		"-metadata:s:v title=Album cover",
		"-f mp3",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %s", want, joined)
		}
	}
	if args[len(args)-1] != "/out/.c.mp3.tmp" {
		t.Errorf("output = %q", args[len(args)-1])
	}
}

func TestTagArgsWithoutCover(t *testing.T) {
	v := testVideo(t)
	v.Year = 0
	v.Genre = ""
	args := TagArgs(v, "in.mp3", "out.tmp", false)

	joined := strings.Join(args, " ")
	for _, never := range []string{"-map 1:0", "metadata:s:v", "date=", "genre="} {
		if strings.Contains(joined, never) {
			t.Errorf("unexpected %q in %s", never, joined)
		}
	}
}

func TestThumbnailArgs(t *testing.T) {
	args := ThumbnailArgs("/out/clip.mp4", "/out/thumbs", 0.25, false)

	if got := argsAfter(t, args, "-vf"); got != "fps=0.25" {
		t.Errorf("-vf = %q", got)
	}
	if got := argsAfter(t, args, "-q:v"); got != "2" {
		t.Errorf("-q:v = %q", got)
	}
	if args[len(args)-1] != "/out/thumbs/thumb-%04d.jpg" {
		t.Errorf("output pattern = %q", args[len(args)-1])
	}
}

func TestGifArgs(t *testing.T) {
	args := GifArgs("/out/thumbs/*.jpg", "/out/preview.gif", 10, 2, false)

	if got := argsAfter(t, args, "-framerate"); got != "10" {
		t.Errorf("-framerate = %q", got)
	}
	if got := argsAfter(t, args, "-pattern_type"); got != "glob" {
		t.Errorf("-pattern_type = %q", got)
	}
	filter := argsAfter(t, args, "-filter_complex")
	for _, want := range []string{"scale=iw/2:-1", "palettegen", "paletteuse"} {
		if !strings.Contains(filter, want) {
			t.Errorf("filter %q missing %q", filter, want)
		}
	}
}

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}
