package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into batch behavior, output overrides, display, and utility.
// Override flags (e.g. --no-color) are applied after Parse so Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and exits.
// On error it returns non-nil (e.g. unknown flag, unknown stage, missing manifests).
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("setcutter", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	// Override flags: we capture bools then apply to cfg after Parse,
	// so that defaults from DefaultConfig() hold unless the user passes the flag.
	var overrides overrideFlags

	defineBatchFlags(fs, cfg)
	defineOutputFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &overrides)
	defineUtilityFlags(fs, &overrides)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyOverrideFlags(cfg, &overrides)

	if overrides.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if overrides.showVersion {
		fmt.Fprintln(os.Stdout, "setcutter v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// overrideFlags holds boolean flags that are applied after Parse.
// These either invert a default (noColor -> ColorMode=never) or trigger exit (showHelp, showVersion).
type overrideFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineBatchFlags registers confirm, sequential, workers, stages, dry-run.
func defineBatchFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.Confirm, "confirm", false, "Pre-confirm; skip the interactive prompt")
	fs.BoolVar(&cfg.Confirm, "c", false, "Same as --confirm")
	fs.BoolVar(&cfg.Sequential, "sequential", false, "Run items in order, stopping at the first failure")
	fs.BoolVar(&cfg.Sequential, "s", false, "Same as --sequential")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Worker pool size for concurrent mode")
	fs.Var(&stageListValue{&cfg.Stages}, "stages", "Comma-separated stage subset")
	fs.Var(&stageListValue{&cfg.Stages}, "m", "Same as --stages")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; run nothing, write nothing")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
}

// defineOutputFlags registers --output-dir, --marketing-file, --artist-db.
func defineOutputFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.OutputDirOverride, "output-dir", "", "Re-root every item's output directory")
	fs.StringVar(&cfg.OutputDirOverride, "o", "", "Same as --output-dir")
	fs.StringVar(&cfg.MarketingFile, "marketing-file", "", "Explicit marketing text output path")
	fs.StringVar(&cfg.MarketingFile, "mf", "", "Same as --marketing-file")
	fs.StringVar(&cfg.ArtistDBPath, "artist-db", "", "Artist socials YAML (default: artists.yaml next to the first manifest)")
}

// defineDisplayFlags registers --log-level, --log, --color, --no-color, --check.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, o *overrideFlags) {
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug | info | warn | error")
	fs.StringVar(&cfg.LogLevel, "ll", cfg.LogLevel, "Same as --log-level")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
	fs.BoolVar(&o.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run tool diagnostics and exit")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, o *overrideFlags) {
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&o.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&o.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&o.showHelp, "h", false, "Same as --help")
}

// applyOverrideFlags copies override flag values into cfg.
func applyOverrideFlags(cfg *Config, o *overrideFlags) {
	if o.noColor {
		cfg.ColorMode = ColorNever
	} else if o.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs collects the manifest paths when not in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("need at least one manifest path")
	}
	cfg.ManifestPaths = args
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "Setcutter v" + version + " - live-set batch trimmer, tagger, and promoter"},
		{"", ""},
		{"  setcutter [OPTIONS] <manifest.yaml> [more.yaml...]", ""},
		{"", ""},
		{"Batch", ""},
		{"  -c, --confirm", "Pre-confirm; skip the interactive prompt"},
		{"  -s, --sequential", "Run items in order, fail-fast"},
		{"  --workers <n>", "Worker pool size (default: CPU count)"},
		{"  -m, --stages <list>", "Stage subset: trim,mp3,tag,thumb,gif,market,yt"},
		{"  -d, --dry-run", "Preview only; run nothing, write nothing"},
		{"", ""},
		{"Output", ""},
		{"  -o, --output-dir <path>", "Re-root every item's output directory"},
		{"  -mf, --marketing-file <path>", "Explicit marketing text output path"},
		{"  --artist-db <path>", "Artist socials YAML"},
		{"", ""},
		{"Display", ""},
		{"  -ll, --log-level <lvl>", "debug | info | warn | error (default: info)"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"", ""},
		{"Utility", ""},
		{"  --check", "Tool diagnostics (ffmpeg, ffprobe, MP3 encoder)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapter so the stage list can be set with flag.Var.

type stageListValue struct{ p *[]Stage }

func (v *stageListValue) String() string {
	if v.p == nil {
		return ""
	}
	names := make([]string, 0, len(*v.p))
	for _, s := range *v.p {
		names = append(names, string(s))
	}
	return strings.Join(names, ",")
}

func (v *stageListValue) Set(s string) error {
	stages, err := ParseStages(s)
	if err != nil {
		return err
	}
	*v.p = stages
	return nil
}
