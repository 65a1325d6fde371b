// Package artists reads the artist social-handle database used when
// rendering promotional text.
package artists

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Unknown stands in for any handle or link the database does not carry.
const Unknown = "???"

// Socials holds the published handles for one artist. Any field may be
// empty; renderers substitute Unknown.
type Socials struct {
	Twitter   string `yaml:"twi"`
	Instagram string `yaml:"ins"`
	MovURL    string `yaml:"mov"`
	MP3URL    string `yaml:"mp3"`
	YouTube   string `yaml:"ytb"`
}

// DB maps artist name to socials.
type DB map[string]Socials

// Load reads the database file. A missing file is not an error, it just
// means every artist resolves to Unknown handles.
func Load(path string) (DB, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DB{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read artist db: %w", err)
	}

	var db DB
	if err := yaml.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("parse artist db %s: %w", path, err)
	}
	if db == nil {
		db = DB{}
	}
	return db, nil
}

// Lookup returns the artist's socials with empty fields replaced by Unknown.
// Unlisted artists get all-Unknown socials.
func (db DB) Lookup(artist string) Socials {
	s := db[artist]
	fill := func(v *string) {
		if *v == "" {
			*v = Unknown
		}
	}
	fill(&s.Twitter)
	fill(&s.Instagram)
	fill(&s.MovURL)
	fill(&s.MP3URL)
	fill(&s.YouTube)
	return s
}
