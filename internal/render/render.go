// Package render produces the promotional text artifacts: one marketing
// guidance file for the whole batch and a youtube.txt per item.
package render

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/stagehand/setcutter/internal/artists"
	"github.com/stagehand/setcutter/internal/manifest"
)

//go:embed youtube_description.tmpl
var youtubeTemplateText string

var youtubeTemplate = template.Must(template.New("youtube").Parse(youtubeTemplateText))

// CommonDir returns the deepest directory containing every path, or "" when
// the paths share no ancestor (different roots).
func CommonDir(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	sep := string(filepath.Separator)
	common := filepath.Clean(paths[0])
	for _, p := range paths[1:] {
		p = filepath.Clean(p)
		for {
			prefix := common
			if !strings.HasSuffix(prefix, sep) {
				prefix += sep
			}
			if strings.HasPrefix(p+sep, prefix) {
				break
			}
			parent := filepath.Dir(common)
			if parent == common {
				return ""
			}
			common = parent
		}
	}
	return common
}

// MarketingPath picks where the marketing file goes: the explicit override
// when given, otherwise marketing.txt in the common ancestor of all output
// directories, falling back to the working directory.
func MarketingPath(videos []*manifest.Video, override, cwd string) string {
	if override != "" {
		return override
	}
	dirs := make([]string, len(videos))
	for i, v := range videos {
		dirs[i] = v.OutputDir
	}
	dir := CommonDir(dirs)
	if dir == "" {
		dir = cwd
	}
	return filepath.Join(dir, "marketing.txt")
}

func indent(s string, level int) string {
	return strings.Repeat("  ", level) + s
}

// Marketing renders the per-artist outreach text for the batch.
func Marketing(videos []*manifest.Video, db artists.DB) string {
	var lines []string
	for _, v := range videos {
		s := db.Lookup(v.Artist)
		lines = append(lines,
			v.Artist,
			indent("socials:", 1),
			indent("twi: "+s.Twitter, 2),
			indent("ins: "+s.Instagram, 2),
			indent("mov: "+s.MovURL, 2),
			indent("mp3: "+s.MP3URL, 2),
			indent("ytb: "+s.YouTube, 2),
			"",
			indent("publish request:", 1),
			fmt.Sprintf("Hey %s, I loved your set at %s and I managed to capture the whole thing! "+
				"I'd like your permission to post, planning on going public Friday afternoon. "+
				"If you'd rather I take it down or I send you the source files so you can release it yourself thats ok too. Thanks!",
				v.Artist, v.Album),
			indent("marketing post:", 1),
			fmt.Sprintf("@%s your set had so much energy--there was a whole crowd stage right "+
				"that knew all the words, it was infectious! Second to last song had me bopping "+
				"and weaving, I loved this set!\n\nhttps://youtube-link.com", v.Artist),
			"\n",
		)
	}
	return strings.Join(lines, "\n")
}

// WriteMarketing writes the batch marketing file, creating parent
// directories as needed.
func WriteMarketing(videos []*manifest.Video, db artists.DB, path string, log *zap.SugaredLogger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create marketing dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(Marketing(videos, db)), 0o644); err != nil {
		return fmt.Errorf("write marketing file: %w", err)
	}
	log.Infof("wrote socials text at %q", path)
	return nil
}

type youtubeData struct {
	Artist        string
	Twi           string
	Ins           string
	Mov           string
	MP3           string
	Ytb           string
	AllCommentary string
	Venue         string
	City          string
	State         string
	Date          string
	VideoStats    string
	Timestamps    string
}

func orUnknown(s string) string {
	if s == "" {
		return artists.Unknown
	}
	return s
}

// MergeCommentary combines the freeform commentary fields, extra first,
// with each line trimmed. The result carries a leading newline when any
// commentary exists so the template reads cleanly either way.
func MergeCommentary(commentary, extra string) string {
	clean := func(s string) string {
		lines := strings.Split(s, "\n")
		for i, l := range lines {
			lines[i] = strings.TrimSpace(l)
		}
		return strings.Join(lines, "\n")
	}

	switch {
	case commentary != "" && extra != "":
		return "\n" + clean(extra) + "\n" + clean(commentary)
	case commentary != "":
		return "\n" + clean(commentary)
	case extra != "":
		return "\n" + clean(extra)
	}
	return ""
}

// CleanTimestamps trims every line and drops blanks, keeping order. Carries
// a leading newline when non-empty, like MergeCommentary.
func CleanTimestamps(raw string) string {
	if raw == "" {
		return ""
	}
	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "\n" + strings.Join(lines, "\n")
}

// YouTubeText renders the description for one item. Download links come
// from the item itself, handles from the artist database.
func YouTubeText(v *manifest.Video, db artists.DB) (string, error) {
	s := db.Lookup(v.Artist)
	data := youtubeData{
		Artist:        v.Artist,
		Twi:           s.Twitter,
		Ins:           s.Instagram,
		Mov:           orUnknown(v.MovURL),
		MP3:           orUnknown(v.MP3URL),
		Ytb:           orUnknown(v.YouTubeURL),
		AllCommentary: MergeCommentary(v.Commentary, v.ExtraCommentary),
		Venue:         v.Venue,
		City:          v.City,
		State:         v.State,
		Date:          v.Date,
		VideoStats:    v.VideoStats,
		Timestamps:    CleanTimestamps(v.Timestamps),
	}

	var b strings.Builder
	if err := youtubeTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render youtube text for %s: %w", v, err)
	}
	return b.String(), nil
}

// WriteYouTube writes youtube.txt into every item's output directory.
func WriteYouTube(videos []*manifest.Video, db artists.DB, log *zap.SugaredLogger) error {
	for _, v := range videos {
		content, err := YouTubeText(v, db)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(v.OutputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir for %s: %w", v, err)
		}
		path := filepath.Join(v.OutputDir, "youtube.txt")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write youtube text for %s: %w", v, err)
		}
		log.Infof("wrote youtube text at %q", path)
	}
	return nil
}
