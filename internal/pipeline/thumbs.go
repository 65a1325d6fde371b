package pipeline

import (
	"os"
	"path/filepath"
	"sort"
)

// SelectThumbnails prunes the sampled frames in dir down to the keep largest
// by file size and deletes the rest. Returned paths are the kept frames in
// frame order.
func SelectThumbnails(dir string, keep int) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "thumb-*.jpg"))
	if err != nil {
		return nil, err
	}

	type frame struct {
		path string
		size int64
	}
	frames := make([]frame, 0, len(paths))
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame{p, fi.Size()})
	}

	sort.Slice(frames, func(i, j int) bool { return frames[i].size > frames[j].size })

	if keep > len(frames) {
		keep = len(frames)
	}
	for _, f := range frames[keep:] {
		if err := os.Remove(f.path); err != nil {
			return nil, err
		}
	}

	kept := make([]string, keep)
	for i, f := range frames[:keep] {
		kept[i] = f.path
	}
	sort.Strings(kept)
	return kept, nil
}
