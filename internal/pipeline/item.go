package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/stagehand/setcutter/internal/config"
	"github.com/stagehand/setcutter/internal/ffmpeg"
	"github.com/stagehand/setcutter/internal/manifest"
)

// runItem walks one video through the enabled stages in pipeline order and
// returns 0 on success or the exit code of the first failing stage.
func (r *Runner) runItem(ctx context.Context, v *manifest.Video) int {
	if err := os.MkdirAll(v.OutputDir, 0o755); err != nil {
		r.Log.Errorf("%02d - %s - cannot create output dir: %v", v.Track, v, err)
		return 1
	}

	// videoPath is what the audio and thumbnail stages read. When the trim
	// stage is off it falls back to a previously trimmed file, then to the
	// raw source.
	videoPath := v.VideoPath()

	if r.Cfg.HasStage(config.StageTrim) {
		if code := r.trim(ctx, v); code != 0 {
			return code
		}
	} else if _, err := os.Stat(videoPath); err != nil {
		videoPath = v.Source
	}

	if r.Cfg.HasStage(config.StageMP3) {
		if code := r.extractAudio(ctx, v, videoPath); code != 0 {
			return code
		}
	}

	if r.Cfg.HasStage(config.StageTag) {
		if code := r.tag(ctx, v); code != 0 {
			return code
		}
	}

	if r.Cfg.HasStage(config.StageThumb) {
		if code := r.thumbnails(ctx, v, videoPath); code != 0 {
			return code
		}
	}

	if r.Cfg.HasStage(config.StageGif) {
		if code := r.gif(ctx, v); code != 0 {
			return code
		}
	}

	return 0
}

func (r *Runner) stageStart(v *manifest.Video, stage config.Stage) {
	r.Log.Infof("%02d - %s - %s - STARTING", v.Track, strings.ToUpper(string(stage)), v)
}

func (r *Runner) stagePassed(v *manifest.Video, stage config.Stage) {
	r.Log.Infof("%02d - %s - %s - PASSED", v.Track, strings.ToUpper(string(stage)), v)
}

func (r *Runner) stageFailed(v *manifest.Video, stage config.Stage, res ffmpeg.Result) int {
	r.Log.Errorf("%02d - %s - %s - FAILED (exit %d)", v.Track, strings.ToUpper(string(stage)), v, res.Code)
	if !r.Cfg.Verbose && res.Stderr != "" {
		r.Log.Errorf("%02d - %s - %s", v.Track, v, strings.TrimSpace(res.Stderr))
	}
	return res.Code
}

func (r *Runner) stageSkipped(v *manifest.Video, stage config.Stage, why string) {
	r.Log.Infof("%02d - %s - %s - SKIPPING (%s)", v.Track, strings.ToUpper(string(stage)), v, why)
}

// trim cuts the source to its bounds. Unbounded items skip the cut and get
// a plain copy into the output directory instead, so downstream stages
// always find the video in the same place.
func (r *Runner) trim(ctx context.Context, v *manifest.Video) int {
	out := v.VideoPath()
	if !v.HasBounds() {
		r.stageSkipped(v, config.StageTrim, "no trim bounds, copying source")
		if err := copyFile(v.Source, out); err != nil {
			r.Log.Errorf("%02d - %s - copy source: %v", v.Track, v, err)
			return 1
		}
		return 0
	}

	r.stageStart(v, config.StageTrim)
	res := r.Exec.Execute(ctx, ffmpeg.TrimArgs(v, out, r.Cfg.Verbose), r.Cfg.Verbose)
	if res.Err != nil {
		return r.stageFailed(v, config.StageTrim, res)
	}
	r.stagePassed(v, config.StageTrim)
	return 0
}

func (r *Runner) extractAudio(ctx context.Context, v *manifest.Video, videoPath string) int {
	r.stageStart(v, config.StageMP3)
	bitrate := v.Bitrate
	if bitrate == "" {
		bitrate = r.Cfg.AudioBitrate
	}
	args := ffmpeg.AudioArgs(videoPath, v.AudioPath(), bitrate, r.Cfg.AudioSampleRate, r.Cfg.Verbose)
	res := r.Exec.Execute(ctx, args, r.Cfg.Verbose)
	if res.Err != nil {
		return r.stageFailed(v, config.StageMP3, res)
	}
	r.stagePassed(v, config.StageMP3)
	return 0
}

// tag rewrites the mp3 in place through a temp file so a failed tagging run
// never clobbers the extracted audio.
func (r *Runner) tag(ctx context.Context, v *manifest.Video) int {
	r.stageStart(v, config.StageTag)
	audio := v.AudioPath()
	tmp := filepath.Join(v.OutputDir, "."+v.AudioFilename+".tmp")

	res := r.Exec.Execute(ctx, ffmpeg.TagArgs(v, audio, tmp, r.Cfg.Verbose), r.Cfg.Verbose)
	if res.Err != nil {
		os.Remove(tmp)
		return r.stageFailed(v, config.StageTag, res)
	}
	if err := os.Rename(tmp, audio); err != nil {
		r.Log.Errorf("%02d - %s - replace tagged mp3: %v", v.Track, v, err)
		return 1
	}
	r.stagePassed(v, config.StageTag)
	return 0
}

// thumbnails samples frames evenly across the clip, keeps the largest ones
// (frame size tracks visual busyness), and copies the top few up into the
// output directory as cover candidates.
func (r *Runner) thumbnails(ctx context.Context, v *manifest.Video, videoPath string) int {
	r.stageStart(v, config.StageThumb)

	pr, err := r.Probe(ctx, videoPath)
	if err != nil || pr.Duration <= 0 {
		r.Log.Errorf("%02d - %s - probe for thumbnails: %v", v.Track, v, err)
		return 1
	}
	fps := float64(r.Cfg.ThumbSamples) / pr.Duration

	dir := v.ThumbDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		r.Log.Errorf("%02d - %s - create thumb dir: %v", v.Track, v, err)
		return 1
	}

	res := r.Exec.Execute(ctx, ffmpeg.ThumbnailArgs(videoPath, dir, fps, r.Cfg.Verbose), r.Cfg.Verbose)
	if res.Err != nil {
		return r.stageFailed(v, config.StageThumb, res)
	}

	kept, err := SelectThumbnails(dir, r.Cfg.ThumbKeep)
	if err != nil {
		r.Log.Errorf("%02d - %s - select thumbnails: %v", v.Track, v, err)
		return 1
	}
	for i, src := range kept {
		if i >= r.Cfg.ThumbCopy {
			break
		}
		dst := filepath.Join(v.OutputDir, fmt.Sprintf("cover-candidate-%d.jpg", i+1))
		if err := copyFile(src, dst); err != nil {
			r.Log.Errorf("%02d - %s - copy cover candidate: %v", v.Track, v, err)
			return 1
		}
	}

	r.stagePassed(v, config.StageThumb)
	return 0
}

// gif assembles the kept thumbnails into a preview gif, halving the width
// on each pass until it fits the size budget or passes run out.
func (r *Runner) gif(ctx context.Context, v *manifest.Video) int {
	r.stageStart(v, config.StageGif)

	pattern := filepath.Join(v.ThumbDir(), "thumb-*.jpg")
	out := v.GifPath()

	divisor := 1
	for pass := 1; ; pass++ {
		args := ffmpeg.GifArgs(pattern, out, r.Cfg.GifFPS, divisor, r.Cfg.Verbose)
		res := r.Exec.Execute(ctx, args, r.Cfg.Verbose)
		if res.Err != nil {
			return r.stageFailed(v, config.StageGif, res)
		}

		fi, err := os.Stat(out)
		if err != nil {
			r.Log.Errorf("%02d - %s - stat gif: %v", v.Track, v, err)
			return 1
		}
		if fi.Size() <= r.Cfg.GifMaxBytes {
			break
		}
		if pass >= r.Cfg.GifMaxPasses {
			r.Log.Errorf("%02d - %s - %s - FAILED (gif still %d bytes over budget after %d passes)",
				v.Track, strings.ToUpper(string(config.StageGif)), v, fi.Size()-r.Cfg.GifMaxBytes, pass)
			return 1
		}
		divisor *= 2
		r.Log.Infof("%02d - %s - gif over budget (%d bytes), retrying at 1/%d width",
			v.Track, v, fi.Size(), divisor)
	}

	r.stagePassed(v, config.StageGif)
	return 0
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
