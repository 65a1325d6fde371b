package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func TestLoadStampsManifestLocation(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "spring-tour.yaml", `
defaults:
  artist: The Regulars
performances:
  - source: a.mp4
  - source: b.mp4
`)

	m, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, dir, m.Defaults.ManifestDir)
	assert.Equal(t, "spring-tour", m.Defaults.ManifestName)
	require.Len(t, m.Performances, 2)
	for _, p := range m.Performances {
		assert.Equal(t, dir, p.ManifestDir)
		assert.Equal(t, "spring-tour", p.ManifestName)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "bad.yaml", "defaults: [\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestMergeAllDefaultsLaterWins(t *testing.T) {
	album1, album2 := "First Night", "Second Night"
	artist := "The Regulars"
	year := 2025
	empty := ""

	merged := MergeAll([]Manifest{
		{Defaults: Record{Artist: &artist, Album: &album1, Year: &year}},
		{Defaults: Record{Album: &album2, Genre: &empty}},
	})

	assert.Equal(t, artist, str(merged.Defaults.Artist))
	assert.Equal(t, album2, str(merged.Defaults.Album))
	assert.Equal(t, year, num(merged.Defaults.Year))
	// An explicit empty string is still an override.
	require.NotNil(t, merged.Defaults.Genre)
	assert.Equal(t, "", *merged.Defaults.Genre)
}

func TestMergeAllConcatenatesPerformances(t *testing.T) {
	a, b, c := "a.mp4", "b.mp4", "c.mp4"
	merged := MergeAll([]Manifest{
		{Performances: []Record{{Source: &a}, {Source: &b}}},
		{Performances: []Record{{Source: &c}}},
	})

	require.Len(t, merged.Performances, 3)
	assert.Equal(t, a, str(merged.Performances[0].Source))
	assert.Equal(t, c, str(merged.Performances[2].Source))
}

func TestBuildCollectsBadItemsWithoutAborting(t *testing.T) {
	dir := t.TempDir()
	good := touch(t, dir, "set.mp4")
	missing := filepath.Join(dir, "nope.mp4")

	merged := Manifest{
		Performances: []Record{
			{Source: &good, ManifestDir: dir, ManifestName: "m"},
			{Source: &missing, ManifestDir: dir, ManifestName: "m"},
			{ManifestDir: dir, ManifestName: "m"},
		},
	}

	videos, problems := Build(merged)
	require.Len(t, videos, 1)
	assert.Len(t, problems, 2)
	assert.Contains(t, problems[0], "performance 1")
	assert.Contains(t, problems[1], "no source video")
}
