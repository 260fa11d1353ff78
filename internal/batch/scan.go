package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"facewarp/internal/face"
)

// Job is one image with its landmark file.
type Job struct {
	Name          string // slash-separated path relative to the input dir, without extension
	ImagePath     string
	LandmarksPath string
}

// Scan walks inputDir for images that have a landmark file next to them:
// photo.jpg pairs with photo<suffix>. Images without one are returned in
// missing. Directories listed in exclude are not entered.
func Scan(inputDir, suffix string, exclude ...string) (jobs []Job, missing []string, err error) {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		if abs, err := filepath.Abs(e); err == nil {
			skip[abs] = true
		}
	}

	err = filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if abs, err := filepath.Abs(path); err == nil && skip[abs] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, suffix) || !face.IsImage(path) {
			return nil
		}

		stem := strings.TrimSuffix(path, filepath.Ext(path))
		lm := stem + suffix
		if _, err := os.Stat(lm); err != nil {
			missing = append(missing, path)
			return nil
		}

		rel, err := filepath.Rel(inputDir, stem)
		if err != nil {
			return err
		}
		jobs = append(jobs, Job{Name: filepath.ToSlash(rel), ImagePath: path, LandmarksPath: lm})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("batch: scan %s: %w", inputDir, err)
	}
	return jobs, missing, nil
}
