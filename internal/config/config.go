// Package config holds runtime configuration: defaults, CLI flag parsing,
// and validation.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// --- Enum types for validated string fields ---

// Stage identifies one step of the per-item pipeline or a batch-level
// text-rendering step.
type Stage string

const (
	StageTrim    Stage = "trim"   // Cut the source video to its trim bounds.
	StageMP3     Stage = "mp3"    // Extract the audio track as MP3.
	StageTag     Stage = "tag"    // Write ID3 metadata and cover art.
	StageThumb   Stage = "thumb"  // Sample and select thumbnail frames.
	StageGif     Stage = "gif"    // Assemble thumbnails into an animated GIF.
	StageMarket  Stage = "market" // Render the marketing/socials text file.
	StageYouTube Stage = "yt"     // Render per-item platform description text.
)

// AllStages returns every stage in pipeline order.
func AllStages() []Stage {
	return []Stage{
		StageTrim, StageMP3, StageTag, StageThumb, StageGif,
		StageMarket, StageYouTube,
	}
}

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it. Fields are grouped by concern with inline documentation of
// defaults and fixed values.
type Config struct {
	// Manifests (set from positional args).
	ManifestPaths []string

	// Batch behavior.
	Confirm    bool // Skip the interactive prompt; abort instead if problems exist.
	Sequential bool // Run items in order, fail-fast.
	Workers    int  // Worker pool size. Default: NumCPU.
	Stages     []Stage
	DryRun     bool

	// Output overrides.
	OutputDirOverride string // Re-root every item's output directory.
	MarketingFile     string // Explicit marketing text path.
	ArtistDBPath      string // Artist socials YAML. Default: artists.yaml next to the first manifest.

	// Display and logging.
	LogLevel  string // debug | info | warn | error. Default: "info".
	LogFile   string // Optional log file path.
	ColorMode ColorMode
	Verbose   bool // Derived: LogLevel == "debug". Tees ffmpeg stderr live.
	CheckOnly bool // Run --check diagnostics and exit.

	// Audio extraction.
	AudioBitrate    string // Default item bitrate when a manifest sets none: "320k".
	AudioSampleRate int    // Fixed: 48000 Hz.

	// Thumbnail and GIF tuning (not user-configurable).
	ThumbSamples int   // Frames sampled across the video. Fixed: 250.
	ThumbKeep    int   // Largest frames kept. Fixed: 50.
	ThumbCopy    int   // Kept frames copied beside the video. Fixed: 3.
	GifFPS       int   // Playback rate of the assembled GIF. Fixed: 10.
	GifMaxBytes  int64 // Size budget before the GIF is downscaled. Fixed: 16 MiB.
	GifMaxPasses int   // Downscale attempts before the stage fails. Fixed: 3.
}

// DefaultConfig returns a Config with all defaults set. Used as the base
// before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		Workers:         runtime.NumCPU(),
		Stages:          AllStages(),
		LogLevel:        "info",
		ColorMode:       ColorAuto,
		AudioBitrate:    "320k",
		AudioSampleRate: 48000,
		ThumbSamples:    250,
		ThumbKeep:       50,
		ThumbCopy:       3,
		GifFPS:          10,
		GifMaxBytes:     16 << 20,
		GifMaxPasses:    3,
	}
}

// HasStage reports whether s is enabled in this run.
func (c *Config) HasStage(s Stage) bool {
	for _, st := range c.Stages {
		if st == s {
			return true
		}
	}
	return false
}

// ValidLogLevels lists the accepted --log-level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks enum fields and positional requirements, and derives
// Verbose from the log level. When not in CheckOnly mode it requires at
// least one manifest path.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	level := strings.ToLower(strings.TrimSpace(c.LogLevel))
	ok := false
	for _, l := range ValidLogLevels {
		if level == l {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("invalid log level %q (use %s)", c.LogLevel, strings.Join(ValidLogLevels, ", "))
	}
	c.LogLevel = level
	c.Verbose = level == "debug"

	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	if len(c.Stages) == 0 {
		return errors.New("at least one stage must be enabled")
	}

	if c.CheckOnly {
		return nil
	}
	if len(c.ManifestPaths) == 0 {
		return errors.New("need at least one manifest path")
	}
	return nil
}

// ParseStages parses a comma-separated stage list, preserving pipeline
// order and rejecting unknown names. An empty string yields all stages.
func ParseStages(raw string) ([]Stage, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return AllStages(), nil
	}

	wanted := make(map[Stage]bool)
	for _, part := range strings.Split(raw, ",") {
		name := Stage(strings.ToLower(strings.TrimSpace(part)))
		if name == "" {
			continue
		}
		found := false
		for _, s := range AllStages() {
			if s == name {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown stage %q (use %s)", name, stageNames())
		}
		wanted[name] = true
	}
	if len(wanted) == 0 {
		return nil, errors.New("empty stage list")
	}

	// Normalize to pipeline order regardless of how the user wrote them.
	var out []Stage
	for _, s := range AllStages() {
		if wanted[s] {
			out = append(out, s)
		}
	}
	return out, nil
}

func stageNames() string {
	names := make([]string, 0, len(AllStages()))
	for _, s := range AllStages() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
