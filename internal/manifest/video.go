package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Video is a fully-resolved work item: one performance with defaults applied,
// paths made absolute, and time bounds parsed.
type Video struct {
	Source string
	Start  string
	Stop   string

	StartSec float64
	StopSec  float64
	hasStart bool
	hasStop  bool

	OutputDir     string
	VideoFilename string
	AudioFilename string

	Title   string
	Artist  string
	Album   string
	Year    int
	Genre   string
	Track   int
	Cover   string
	Bitrate string

	Commentary      string
	ExtraCommentary string
	Timestamps      string

	Venue      string
	City       string
	State      string
	Date       string
	VideoStats string

	MovURL     string
	MP3URL     string
	YouTubeURL string
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// resolve makes path absolute against the manifest directory that declared
// the record. Empty paths pass through.
func resolve(path, manifestDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(manifestDir, path)
}

// NewVideo merges a performance entry over the shared defaults and resolves
// it into a Video. Errors here are fatal for the item: a source that does not
// exist or time bounds that cannot describe a clip.
func NewVideo(defaults, perf Record) (*Video, error) {
	r := merge(defaults, perf)

	source := str(r.Source)
	if source == "" {
		return nil, errors.New("no source video given")
	}
	source = resolve(source, r.ManifestDir)
	if _, err := os.Stat(source); err != nil {
		return nil, fmt.Errorf("source video %s does not exist", source)
	}

	v := &Video{
		Source:          source,
		Start:           str(r.Start),
		Stop:            str(r.Stop),
		VideoFilename:   str(r.VideoFilename),
		AudioFilename:   str(r.AudioFilename),
		Title:           str(r.Title),
		Artist:          str(r.Artist),
		Album:           str(r.Album),
		Year:            num(r.Year),
		Genre:           str(r.Genre),
		Track:           num(r.Track),
		Cover:           resolve(str(r.Cover), r.ManifestDir),
		Bitrate:         str(r.Bitrate),
		Commentary:      str(r.Commentary),
		ExtraCommentary: str(r.ExtraCommentary),
		Timestamps:      str(r.Timestamps),
		Venue:           str(r.Venue),
		City:            str(r.City),
		State:           str(r.State),
		Date:            str(r.Date),
		VideoStats:      str(r.VideoStats),
		MovURL:          str(r.MovURL),
		MP3URL:          str(r.MP3URL),
		YouTubeURL:      str(r.YouTubeURL),
	}

	if v.Start != "" {
		sec, err := ParseTimecode(v.Start)
		if err != nil {
			return nil, fmt.Errorf("bad start time %q: %w", v.Start, err)
		}
		v.StartSec, v.hasStart = sec, true
	}
	if v.Stop != "" {
		sec, err := ParseTimecode(v.Stop)
		if err != nil {
			return nil, fmt.Errorf("bad stop time %q: %w", v.Stop, err)
		}
		v.StopSec, v.hasStop = sec, true
	}
	if v.hasStart && v.hasStop && v.StopSec <= v.StartSec {
		return nil, fmt.Errorf("stop time %s is not after start time %s", v.Stop, v.Start)
	}

	if v.Title == "" {
		base := filepath.Base(source)
		v.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	dir := str(r.OutputDir)
	if dir == "" {
		dir = filepath.Join(r.ManifestDir, r.ManifestName, SanitizeName(v.Title))
	} else {
		dir = resolve(dir, r.ManifestDir)
	}
	v.OutputDir = dir

	return v, nil
}

// HasBounds reports whether the item declares a trim window at all.
func (v *Video) HasBounds() bool {
	return v.hasStart || v.hasStop
}

// HasStart and HasStop report the individual bounds.
func (v *Video) HasStart() bool { return v.hasStart }
func (v *Video) HasStop() bool  { return v.hasStop }

func (v *Video) String() string {
	if v.Artist != "" {
		return v.Artist + " - " + v.Title
	}
	return v.Title
}

// VideoPath is where the trimmed clip lands.
func (v *Video) VideoPath() string {
	return filepath.Join(v.OutputDir, v.VideoFilename)
}

// AudioPath is where the extracted mp3 lands.
func (v *Video) AudioPath() string {
	return filepath.Join(v.OutputDir, v.AudioFilename)
}

// ThumbDir is where sampled frames land.
func (v *Video) ThumbDir() string {
	return filepath.Join(v.OutputDir, "thumbs")
}

// GifPath is where the preview gif lands, next to the trimmed clip.
func (v *Video) GifPath() string {
	stem := strings.TrimSuffix(v.VideoFilename, filepath.Ext(v.VideoFilename))
	return filepath.Join(v.OutputDir, stem+".gif")
}

// Problems reports soft issues worth surfacing before a run. None of these
// stop the pipeline on their own.
func (v *Video) Problems() []string {
	var out []string
	add := func(format string, args ...any) {
		out = append(out, fmt.Sprintf("%s: %s", v, fmt.Sprintf(format, args...)))
	}

	if v.Artist == "" {
		add("no artist set")
	}
	if v.Album == "" {
		add("no album set")
	}
	if v.Year == 0 {
		add("no year set")
	}
	if v.Genre == "" {
		add("no genre set")
	}
	if v.Cover == "" {
		add("no cover art set")
	} else if _, err := os.Stat(v.Cover); err != nil {
		add("cover art %s does not exist", v.Cover)
	}
	return out
}

// Finalize assigns track numbers to items that did not declare one, by list
// position starting at 1, then fills default output filenames from the track
// and title. Items that resolved to the same output directory get " - dupN"
// suffixes so their thumbnail and gif artifacts cannot clobber each other.
func Finalize(videos []*Video) {
	for i, v := range videos {
		if v.Track == 0 {
			v.Track = i + 1
		}
		stem := fmt.Sprintf("%02d - %s", v.Track, SanitizeName(v.Title))
		if v.VideoFilename == "" {
			v.VideoFilename = stem + ".mp4"
		}
		if v.AudioFilename == "" {
			v.AudioFilename = stem + ".mp3"
		}
	}

	resolveDirCollisions(videos)
}

// RebaseOutputDirs re-roots every item's output directory under dir, keeping
// each item's leaf directory name. Re-rooting can make previously distinct
// directories collide, so the dup pass runs again.
func RebaseOutputDirs(videos []*Video, dir string) {
	for _, v := range videos {
		v.OutputDir = filepath.Join(dir, filepath.Base(v.OutputDir))
	}
	resolveDirCollisions(videos)
}

func resolveDirCollisions(videos []*Video) {
	claimed := make(map[string]bool, len(videos))
	for _, v := range videos {
		if !claimed[v.OutputDir] {
			claimed[v.OutputDir] = true
			continue
		}
		for n := 1; ; n++ {
			candidate := fmt.Sprintf("%s - dup%d", v.OutputDir, n)
			if !claimed[candidate] {
				claimed[candidate] = true
				v.OutputDir = candidate
				break
			}
		}
	}
}

var nameSanitizer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "",
	"?", "",
	"\"", "'",
	"<", "(",
	">", ")",
	"|", "-",
)

// SanitizeName makes a title safe to use as a file or directory name.
func SanitizeName(s string) string {
	return strings.TrimSpace(nameSanitizer.Replace(s))
}
