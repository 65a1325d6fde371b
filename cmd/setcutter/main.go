// Command setcutter is the CLI entrypoint for the live-set batch processor.
//
// It parses flags, loads and merges the YAML manifests, previews the
// proposed outputs, and either runs system diagnostics (--check) or the
// trim/convert/tag/promote pipeline.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/stagehand/setcutter/internal/artists"
	"github.com/stagehand/setcutter/internal/check"
	"github.com/stagehand/setcutter/internal/config"
	"github.com/stagehand/setcutter/internal/display"
	"github.com/stagehand/setcutter/internal/logging"
	"github.com/stagehand/setcutter/internal/manifest"
	"github.com/stagehand/setcutter/internal/pipeline"
	"github.com/stagehand/setcutter/internal/probe"
	"github.com/stagehand/setcutter/internal/render"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

// exitCancelled is returned when the operator declines the prompt or
// interrupts the run.
const exitCancelled = 2

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "setcutter: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "setcutter: %v\n", err)
		return 1
	}

	log, closeLog, err := logging.New(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setcutter: %v\n", err)
		return 1
	}
	defer closeLog()

	// Phase 2: Logger available, all output goes through log from here on.
	display.PrintBanner()
	log.Infof("=== Setcutter v%s (%s) ===", version, commit)

	if cfg.CheckOnly {
		check.RunCheck(log)
		return 0
	}

	// Phase 3: Load, merge, and resolve the manifests.
	manifests, err := manifest.LoadAll(cfg.ManifestPaths)
	if err != nil {
		log.Errorf("%v", err)
		return 1
	}
	merged := manifest.MergeAll(manifests)

	videos, problems := manifest.Build(merged)
	if len(videos) == 0 {
		log.Errorf("no usable performances in %d manifest(s)", len(manifests))
		for _, p := range problems {
			log.Errorf("PROBLEM: %s", p)
		}
		return 1
	}

	if cfg.OutputDirOverride != "" {
		manifest.RebaseOutputDirs(videos, cfg.OutputDirOverride)
	}

	db, err := artists.Load(artistDBPath(&cfg))
	if err != nil {
		log.Errorf("%v", err)
		return 1
	}

	// Phase 4: Preview and confirmation. Dry runs spawn no processes, so
	// the preview skips source probing.
	var prober display.Prober
	if !cfg.DryRun {
		prober = probe.Probe
	}
	display.Preview(context.Background(), videos, db, prober, log)

	for _, v := range videos {
		problems = append(problems, v.Problems()...)
	}
	if len(problems) > 0 {
		if cfg.Confirm {
			log.Errorf("problems were detected, refusing to run pre-confirmed:")
			for _, p := range problems {
				log.Errorf("PROBLEM: %s", p)
			}
			return 1
		}
		for _, p := range problems {
			log.Errorf("PROBLEM: %s", p)
		}
	}

	if cfg.DryRun {
		log.Infof("dry run, stopping before the pipeline")
		return 0
	}

	if !cfg.Confirm {
		if !promptYes(len(videos), &cfg) {
			log.Warnf("cancelling!")
			return exitCancelled
		}
	}

	// Fail fast if ffmpeg or ffprobe are unavailable.
	if err := check.CheckDeps(&cfg); err != nil {
		log.Errorf("%v", err)
		return 1
	}

	// Phase 5: Signal handling. Cancel the context on SIGINT/SIGTERM so
	// workers stop between stages without leaving stray temp files.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warnf("received interrupt, stopping...")
		cancel()
	}()

	// Phase 6: Run the pipeline and render the promotional text.
	runner := pipeline.NewRunner(&cfg, log)
	stats, code := runner.Run(ctx, videos)
	stats.LogSummary(log)

	// Only the signal goroutine cancels before Run returns, so a done
	// context here means the operator interrupted the batch.
	if ctx.Err() != nil {
		return exitCancelled
	}
	if code != 0 {
		return code
	}

	if cfg.HasStage(config.StageMarket) {
		log.Infof("generating the marketing text!")
		cwd, _ := os.Getwd()
		path := render.MarketingPath(videos, cfg.MarketingFile, cwd)
		if err := render.WriteMarketing(videos, db, path, log); err != nil {
			log.Errorf("%v", err)
			return 1
		}
	}
	if cfg.HasStage(config.StageYouTube) {
		log.Infof("generating the youtube text!")
		if err := render.WriteYouTube(videos, db, log); err != nil {
			log.Errorf("%v", err)
			return 1
		}
	}

	return 0
}

// promptYes asks the operator to approve the batch. Anything not starting
// with "y" declines, as does EOF or an interrupt at the prompt.
func promptYes(count int, cfg *config.Config) bool {
	fmt.Println()
	fmt.Println("videos:", count)
	fmt.Println("stages:", stageList(cfg.Stages))
	fmt.Print("does this look right (y/n)? ")

	lineCh := make(chan string, 1)
	go func() {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			lineCh <- ""
			return
		}
		lineCh <- line
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT)
	defer signal.Stop(sigCh)

	select {
	case line := <-lineCh:
		return strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y")
	case <-sigCh:
		fmt.Println()
		return false
	}
}

func stageList(stages []config.Stage) string {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// artistDBPath resolves the socials database location: the explicit flag,
// or artists.yaml next to the first manifest.
func artistDBPath(cfg *config.Config) string {
	if cfg.ArtistDBPath != "" {
		return cfg.ArtistDBPath
	}
	first, err := filepath.Abs(cfg.ManifestPaths[0])
	if err != nil {
		return "artists.yaml"
	}
	return filepath.Join(filepath.Dir(first), "artists.yaml")
}
