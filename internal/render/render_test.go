package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stagehand/setcutter/internal/artists"
	"github.com/stagehand/setcutter/internal/manifest"
)

func TestCommonDir(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{"single", []string{"/a/b/c"}, "/a/b/c"},
		{"siblings", []string{"/a/b/c", "/a/b/d"}, "/a/b"},
		{"nested", []string{"/a/b", "/a/b/c/d"}, "/a/b"},
		{"root only", []string{"/a", "/b"}, "/"},
		{"none", nil, ""},
		{"no shared prefix trap", []string{"/a/bc", "/a/b"}, "/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommonDir(tt.paths))
		})
	}
}

func TestMarketingPath(t *testing.T) {
	videos := []*manifest.Video{
		{OutputDir: "/shows/tour/one"},
		{OutputDir: "/shows/tour/two"},
	}

	assert.Equal(t, "/shows/tour/marketing.txt", MarketingPath(videos, "", "/cwd"))
	assert.Equal(t, "/explicit/m.txt", MarketingPath(videos, "/explicit/m.txt", "/cwd"))
	assert.Equal(t, filepath.Join("/cwd", "marketing.txt"), MarketingPath(nil, "", "/cwd"))
}

func TestMarketing(t *testing.T) {
	db := artists.DB{"The Regulars": {Twitter: "@theregulars"}}
	videos := []*manifest.Video{{Artist: "The Regulars", Album: "Spring Fest", Title: "Set"}}

	out := Marketing(videos, db)

	assert.Contains(t, out, "The Regulars\n  socials:")
	assert.Contains(t, out, "    twi: @theregulars")
	assert.Contains(t, out, "    ins: ???")
	assert.Contains(t, out, "Hey The Regulars, I loved your set at Spring Fest")
	assert.Contains(t, out, "@The Regulars your set had so much energy")
}

func TestMergeCommentary(t *testing.T) {
	tests := []struct {
		name              string
		commentary, extra string
		want              string
	}{
		{"both empty", "", "", ""},
		{"commentary only", "  great set  ", "", "\ngreat set"},
		{"extra only", "", "note", "\nnote"},
		{"extra precedes commentary", "body", "lead", "\nlead\nbody"},
		{"lines trimmed", "a \n  b", "", "\na\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeCommentary(tt.commentary, tt.extra))
		})
	}
}

func TestCleanTimestamps(t *testing.T) {
	assert.Equal(t, "", CleanTimestamps(""))
	assert.Equal(t, "", CleanTimestamps("  \n\n  "))
	assert.Equal(t, "\n0:00 Intro\n5:12 Closer",
		CleanTimestamps("  0:00 Intro  \n\n 5:12 Closer \n"))
}

func TestYouTubeText(t *testing.T) {
	db := artists.DB{"The Regulars": {Twitter: "@theregulars", Instagram: "@theregulars.ig"}}
	v := &manifest.Video{
		Artist: "The Regulars", Title: "Set",
		Venue: "The Basement", City: "Austin", State: "TX", Date: "2025-04-12",
		VideoStats: "1080p60, stereo",
		MovURL:     "https://files.example/set.mp4",
		Commentary: "what a night",
		Timestamps: " 0:00 Intro ",
	}

	out, err := YouTubeText(v, db)
	require.NoError(t, err)

	assert.Contains(t, out, "The Regulars live at The Basement in Austin, TX on 2025-04-12!")
	assert.Contains(t, out, "\nwhat a night")
	assert.Contains(t, out, "twitter: @theregulars")
	assert.Contains(t, out, "video: https://files.example/set.mp4")
	assert.Contains(t, out, "audio: ???")
	assert.Contains(t, out, "Recording: 1080p60, stereo")
	assert.Contains(t, out, "\n0:00 Intro")
}

func TestWriteYouTubeAndMarketing(t *testing.T) {
	dir := t.TempDir()
	log := zap.NewNop().Sugar()
	db := artists.DB{}
	videos := []*manifest.Video{
		{Artist: "A", Title: "One", OutputDir: filepath.Join(dir, "one")},
		{Artist: "B", Title: "Two", OutputDir: filepath.Join(dir, "two")},
	}

	require.NoError(t, WriteYouTube(videos, db, log))
	for _, v := range videos {
		data, err := os.ReadFile(filepath.Join(v.OutputDir, "youtube.txt"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), v.Artist+" live at"))
	}

	path := MarketingPath(videos, "", dir)
	assert.Equal(t, filepath.Join(dir, "marketing.txt"), path)
	require.NoError(t, WriteMarketing(videos, db, path, log))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "publish request:")
}
