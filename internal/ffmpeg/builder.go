// Package ffmpeg builds and executes the ffmpeg commands behind every
// pipeline stage. All builders share the same preamble so logs stay quiet
// unless verbose is on, and every command overwrites its output.
package ffmpeg

import (
	"fmt"
	"strconv"

	"github.com/stagehand/setcutter/internal/manifest"
)

// preamble is the shared argument skeleton.
func preamble(verbose bool) []string {
	args := []string{"ffmpeg", "-hide_banner", "-nostdin", "-y"}
	if verbose {
		args = append(args, "-loglevel", "info", "-stats")
	} else {
		args = append(args, "-loglevel", "error")
	}
	return args
}

// TrimArgs cuts the source down to the declared bounds without re-encoding.
// Seek flags go after -i so the copy cut lands on accurate timestamps.
func TrimArgs(v *manifest.Video, out string, verbose bool) []string {
	args := preamble(verbose)
	args = append(args, "-i", v.Source)
	if v.HasStart() {
		args = append(args, "-ss", v.Start)
	}
	if v.HasStop() {
		args = append(args, "-to", v.Stop)
	}
	return append(args, "-c", "copy", out)
}

// AudioArgs extracts the audio track as mp3.
func AudioArgs(in, out, bitrate string, sampleRate int, verbose bool) []string {
	args := preamble(verbose)
	return append(args,
		"-i", in,
		"-vn",
		"-acodec", "libmp3lame",
		"-b:a", bitrate,
		"-ar", strconv.Itoa(sampleRate),
		out,
	)
}

// TagArgs rewrites the mp3 with ID3v2.3 metadata and, when a cover path is
// given, an attached front-cover picture. Output goes to a temp path so the
// caller can rename over the original only on success.
func TagArgs(v *manifest.Video, in, out string, verbose bool) []string {
	args := preamble(verbose)
	args = append(args, "-i", in)
	if v.Cover != "" {
		args = append(args, "-i", v.Cover)
	}
	args = append(args, "-map", "0:a")
	if v.Cover != "" {
		args = append(args, "-map", "1:0")
	}
	args = append(args, "-c", "copy", "-id3v2_version", "3")

	meta := func(key, val string) {
		args = append(args, "-metadata", key+"="+val)
	}
	meta("title", v.Title)
	meta("artist", v.Artist)
	meta("album", v.Album)
	meta("track", strconv.Itoa(v.Track))
	if v.Year != 0 {
		meta("date", strconv.Itoa(v.Year))
	}
	if v.Genre != "" {
		meta("genre", v.Genre)
	}
	if v.Cover != "" {
		args = append(args,
			"-metadata:s:v", "title=Album cover",
			"-metadata:s:v", "comment=Cover (front)",
		)
	}
	// ffmpeg refuses bare extensionless temp outputs.
	return append(args, "-f", "mp3", out)
}

// ThumbnailArgs samples frames evenly across the clip into a numbered jpeg
// sequence under dir. fps is frames per second of source time, usually well
// below 1 for a full set.
func ThumbnailArgs(in, dir string, fps float64, verbose bool) []string {
	args := preamble(verbose)
	return append(args,
		"-i", in,
		"-vf", fmt.Sprintf("fps=%g", fps),
		"-q:v", "2",
		dir+"/thumb-%04d.jpg",
	)
}

// GifArgs assembles the kept thumbnails into a palette-optimized gif.
// divisor scales the output down from source width; the caller raises it
// when the gif overshoots the size budget.
func GifArgs(pattern, out string, fps, divisor int, verbose bool) []string {
	args := preamble(verbose)
	filter := fmt.Sprintf(
		"scale=iw/%d:-1:flags=lanczos,split[s0][s1];[s0]palettegen[p];[s1][p]paletteuse",
		divisor,
	)
	return append(args,
		"-framerate", strconv.Itoa(fps),
		"-pattern_type", "glob",
		"-i", pattern,
		"-filter_complex", filter,
		out,
	)
}
