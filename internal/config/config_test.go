package config

import (
	"testing"
)

func TestValidate_LogLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{"info is valid", "info", false},
		{"debug is valid", "debug", false},
		{"warn is valid", "warn", false},
		{"error is valid", "error", false},
		{"mixed case normalized", "INFO", false},
		{"padded normalized", " info ", false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "trace", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true // skip manifest requirement
			cfg.LogLevel = tt.level
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_VerboseDerived(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	cfg.LogLevel = "debug"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !cfg.Verbose {
		t.Error("Verbose should be true at debug level")
	}

	cfg = DefaultConfig()
	cfg.CheckOnly = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Verbose {
		t.Error("Verbose should be false at info level")
	}
}

func TestValidate_Workers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	cfg.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject workers < 1")
	}
}

func TestValidate_RequiresManifests(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should require manifest paths")
	}

	cfg.ManifestPaths = []string{"defaults.yaml"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with manifests: %v", err)
	}
}

func TestParseStages(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []Stage
		wantErr bool
	}{
		{"empty means all", "", AllStages(), false},
		{"single", "trim", []Stage{StageTrim}, false},
		{"subset", "trim,mp3,tag", []Stage{StageTrim, StageMP3, StageTag}, false},
		{"reordered to pipeline order", "gif,trim", []Stage{StageTrim, StageGif}, false},
		{"whitespace and case", " Trim , MP3 ", []Stage{StageTrim, StageMP3}, false},
		{"duplicates collapse", "yt,yt", []Stage{StageYouTube}, false},
		{"unknown stage", "trim,transcode", nil, true},
		{"only commas", ",,", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStages(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStages(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseStages(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseStages(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestHasStage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stages = []Stage{StageTrim, StageMP3}
	if !cfg.HasStage(StageTrim) {
		t.Error("HasStage(trim) = false, want true")
	}
	if cfg.HasStage(StageGif) {
		t.Error("HasStage(gif) = true, want false")
	}
}
