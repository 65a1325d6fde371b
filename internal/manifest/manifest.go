// Package manifest loads declarative batch manifests, merges them into a
// single defaults+performances structure, and constructs the per-item work
// records the pipeline consumes.
//
// A manifest is a YAML document with two top-level keys:
//
//	defaults:      # baseline field values shared by every performance
//	performances:  # ordered list of per-item overrides
//
// Multiple manifests merge by field-union of defaults (later manifests win)
// and concatenation of performance lists in argument order.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record holds the raw, optionally-set fields of a manifest defaults block
// or a single performance entry. Pointer fields distinguish "not set"
// (inherit) from an explicit value, including explicit empty strings.
type Record struct {
	Source *string `yaml:"source"`
	Start  *string `yaml:"start"`
	Stop   *string `yaml:"stop"`

	OutputDir     *string `yaml:"output_dir"`
	VideoFilename *string `yaml:"video_filename"`
	AudioFilename *string `yaml:"audio_filename"`

	Title   *string `yaml:"title"`
	Artist  *string `yaml:"artist"`
	Album   *string `yaml:"album"`
	Year    *int    `yaml:"year"`
	Genre   *string `yaml:"genre"`
	Track   *int    `yaml:"track"`
	Cover   *string `yaml:"cover"`
	Bitrate *string `yaml:"bitrate"`

	Commentary      *string `yaml:"commentary"`
	ExtraCommentary *string `yaml:"extra_commentary"`
	Timestamps      *string `yaml:"timestamps"`

	Venue      *string `yaml:"venue"`
	City       *string `yaml:"city"`
	State      *string `yaml:"state"`
	Date       *string `yaml:"date"`
	VideoStats *string `yaml:"video_stats"`

	MovURL     *string `yaml:"mov"`
	MP3URL     *string `yaml:"mp3"`
	YouTubeURL *string `yaml:"ytb"`

	// Injected at load time, not user-settable.
	ManifestPath string `yaml:"-"`
	ManifestDir  string `yaml:"-"`
	ManifestName string `yaml:"-"`
}

// Manifest is one parsed YAML file.
type Manifest struct {
	Defaults     Record   `yaml:"defaults"`
	Performances []Record `yaml:"performances"`
}

// Load reads and parses one manifest file, stamping the manifest location
// onto the defaults block and every performance entry so relative paths can
// later be resolved against the file that declared them.
func Load(path string) (Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("resolve manifest path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %s: %w", filepath.Base(abs), err)
	}

	stamp := func(r *Record) {
		r.ManifestPath = abs
		r.ManifestDir = filepath.Dir(abs)
		r.ManifestName = strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	}
	stamp(&m.Defaults)
	for i := range m.Performances {
		stamp(&m.Performances[i])
	}
	return m, nil
}

// LoadAll loads every path in order.
func LoadAll(paths []string) ([]Manifest, error) {
	out := make([]Manifest, 0, len(paths))
	for _, p := range paths {
		m, err := Load(p)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// MergeAll combines manifests into one: defaults merge by field union with
// later manifests winning, performance lists concatenate in order.
func MergeAll(manifests []Manifest) Manifest {
	var merged Manifest
	for _, m := range manifests {
		merged.Defaults = merge(merged.Defaults, m.Defaults)
		merged.Performances = append(merged.Performances, m.Performances...)
	}
	return merged
}

// merge returns base with every set field of over laid on top.
func merge(base, over Record) Record {
	out := base

	setStr := func(dst **string, src *string) {
		if src != nil {
			*dst = src
		}
	}
	setInt := func(dst **int, src *int) {
		if src != nil {
			*dst = src
		}
	}

	setStr(&out.Source, over.Source)
	setStr(&out.Start, over.Start)
	setStr(&out.Stop, over.Stop)
	setStr(&out.OutputDir, over.OutputDir)
	setStr(&out.VideoFilename, over.VideoFilename)
	setStr(&out.AudioFilename, over.AudioFilename)
	setStr(&out.Title, over.Title)
	setStr(&out.Artist, over.Artist)
	setStr(&out.Album, over.Album)
	setInt(&out.Year, over.Year)
	setStr(&out.Genre, over.Genre)
	setInt(&out.Track, over.Track)
	setStr(&out.Cover, over.Cover)
	setStr(&out.Bitrate, over.Bitrate)
	setStr(&out.Commentary, over.Commentary)
	setStr(&out.ExtraCommentary, over.ExtraCommentary)
	setStr(&out.Timestamps, over.Timestamps)
	setStr(&out.Venue, over.Venue)
	setStr(&out.City, over.City)
	setStr(&out.State, over.State)
	setStr(&out.Date, over.Date)
	setStr(&out.VideoStats, over.VideoStats)
	setStr(&out.MovURL, over.MovURL)
	setStr(&out.MP3URL, over.MP3URL)
	setStr(&out.YouTubeURL, over.YouTubeURL)

	if over.ManifestPath != "" {
		out.ManifestPath = over.ManifestPath
		out.ManifestDir = over.ManifestDir
		out.ManifestName = over.ManifestName
	}
	return out
}

// Build constructs one Video per performance entry of the merged manifest.
// Construction failures are collected as problems rather than aborting the
// batch; the returned slice holds only the items that built successfully.
// Track numbers are assigned and default filenames derived afterwards.
func Build(merged Manifest) ([]*Video, []string) {
	var videos []*Video
	var problems []string

	for i, perf := range merged.Performances {
		v, err := NewVideo(merged.Defaults, perf)
		if err != nil {
			problems = append(problems, fmt.Sprintf("performance %d is no good: %v", i, err))
			continue
		}
		videos = append(videos, v)
	}

	Finalize(videos)
	return videos, problems
}
