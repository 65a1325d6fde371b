package display

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/stagehand/setcutter/internal/artists"
	"github.com/stagehand/setcutter/internal/manifest"
	"github.com/stagehand/setcutter/internal/probe"
)

// Prober matches probe.Probe. Nil disables source stats (dry runs spawn
// nothing, not even ffprobe).
type Prober func(ctx context.Context, path string) (*probe.Result, error)

// Preview logs the proposed output tree for every item, with its source
// stats, tags, and the socials the marketing stage would use, so the
// operator can eyeball the batch before committing to it.
func Preview(ctx context.Context, videos []*manifest.Video, db artists.DB, pb Prober, log *zap.SugaredLogger) {
	log.Infof("proposed output tree will be as follows:")
	for _, v := range videos {
		var pr *probe.Result
		if pb != nil {
			var err error
			if pr, err = pb(ctx, v.Source); err != nil {
				log.Warnf("cannot probe %s: %v", v.Source, err)
				pr = nil
			}
		}
		log.Infof("\n%s", Verbose(v, pr, db))
	}
}

// Verbose renders one item as an indented tree. pr may be nil when source
// stats are unavailable.
func Verbose(v *manifest.Video, pr *probe.Result, db artists.DB) string {
	var b strings.Builder
	line := func(depth int, format string, args ...any) {
		b.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line(0, "%s", v)
	line(1, "source: %s", v.Source)
	if pr != nil {
		line(2, "%s, %s, %dx%d %s",
			FormatDuration(time.Duration(pr.Duration*float64(time.Second))),
			FormatBytes(pr.Size), pr.Width, pr.Height, pr.Codec)
	}
	if v.HasBounds() {
		line(1, "bounds: %s -> %s",
			boundLabel(v.HasStart(), v.StartSec),
			boundLabel(v.HasStop(), v.StopSec))
	} else {
		line(1, "bounds: whole file")
	}
	line(1, "output: %s", v.OutputDir)
	line(2, "%s", v.VideoFilename)
	line(2, "%s", v.AudioFilename)
	line(2, "%s", filepath.Base(v.GifPath()))
	line(1, "tags:")
	line(2, "title:  %s", v.Title)
	line(2, "artist: %s", v.Artist)
	line(2, "album:  %s", v.Album)
	line(2, "year:   %d", v.Year)
	line(2, "genre:  %s", v.Genre)
	line(2, "track:  %d", v.Track)
	line(2, "cover:  %s", orUnknown(v.Cover))
	s := db.Lookup(v.Artist)
	line(1, "socials:")
	line(2, "twi: %s", s.Twitter)
	line(2, "ins: %s", s.Instagram)
	line(2, "mov: %s", s.MovURL)
	line(2, "mp3: %s", s.MP3URL)
	line(2, "ytb: %s", s.YouTube)

	return strings.TrimRight(b.String(), "\n")
}

// boundLabel renders one side of the trim window, "(edge)" when that side
// runs to the end of the file.
func boundLabel(set bool, sec float64) string {
	if !set {
		return "(edge)"
	}
	return manifest.FormatTimecode(sec)
}

func orUnknown(s string) string {
	if s == "" {
		return artists.Unknown
	}
	return s
}
