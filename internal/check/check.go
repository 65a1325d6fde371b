// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation for ffmpeg, ffprobe, and the mp3 encoder.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/stagehand/setcutter/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrFfmpegNotFound   = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound  = errors.New("ffprobe not found on PATH")
	ErrMP3EncoderFailed = errors.New("libmp3lame test encode failed")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Errorf(string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability of ffmpeg,
// ffprobe, the mp3 encoder, and the gif palette filters. Informational only,
// it does not stop on failure.
func RunCheck(log Logger) {
	log.Infof("=== System Check ===")

	checkFfmpeg(log)
	checkFfprobe(log)
	checkMP3(log)
	checkGifFilters(log)
}

// checkFfmpeg verifies ffmpeg is on PATH and logs its version string.
func checkFfmpeg(log Logger) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		log.Errorf("ffmpeg not found")
		return
	}
	out, err := exec.Command("ffmpeg", "-version").Output()
	if err != nil {
		log.Warnf("ffmpeg found but -version failed: %v", err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Infof("ffmpeg: %s", firstLine)
}

func checkFfprobe(log Logger) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		log.Errorf("ffprobe not found")
		return
	}
	log.Infof("ffprobe: found")
}

// checkMP3 runs a minimal libmp3lame encode to verify the audio encoder works.
func checkMP3(log Logger) {
	log.Infof("Testing mp3 encoder...")
	if runSilent("ffmpeg", mp3TestArgs()...) {
		log.Infof("libmp3lame works")
	} else {
		log.Errorf("libmp3lame test encode failed")
	}
}

// checkGifFilters confirms the palette filters the gif stage relies on exist.
func checkGifFilters(log Logger) {
	out, err := exec.Command("ffmpeg", "-hide_banner", "-filters").Output()
	if err != nil {
		log.Warnf("Could not list filters: %v", err)
		return
	}
	filters := string(out)
	for _, f := range []string{"palettegen", "paletteuse"} {
		if strings.Contains(filters, f) {
			log.Infof("filter %s: found", f)
		} else {
			log.Errorf("filter %s: missing", f)
		}
	}
}

// CheckDeps is the pre-pipeline validation: ffmpeg and ffprobe must be on
// PATH, and when the mp3 stage is enabled a quick libmp3lame encode must
// succeed. Returns a sentinel error on failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}

	if cfg.HasStage(config.StageMP3) {
		if !runSilent("ffmpeg", mp3TestArgs()...) {
			return ErrMP3EncoderFailed
		}
	}
	return nil
}

// mp3TestArgs returns the ffmpeg arguments for a minimal libmp3lame test
// encode. Shared by checkMP3 and CheckDeps.
func mp3TestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", "libmp3lame",
		"-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
