package batch

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"facewarp/internal/action"
	"facewarp/internal/face"
	"facewarp/internal/logging"
	"facewarp/internal/postprocess"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Action         action.Action
	OutputDir      string
	Format         string // output extension without the dot
	WriteLandmarks bool
	LandmarkSuffix string
	MaxSize        int
	Workers        int

	Logger   *logrus.Logger // discarding logger when nil
	Progress io.Writer      // no progress bar when nil
}

// Result holds the outcome of processing one job.
type Result struct {
	Name            string  `json:"name"`
	Image           string  `json:"image"`
	Output          string  `json:"output,omitempty"`
	OutputLandmarks string  `json:"output_landmarks,omitempty"`
	MeanShift       float64 `json:"mean_shift_px"`
	MaxShift        float64 `json:"max_shift_px"`
	DurationMS      int64   `json:"duration_ms"`
	Success         bool    `json:"success"`
	Error           string  `json:"error,omitempty"`
}

// Run processes all jobs using a worker pool. Results keep job order.
func Run(cfg Config, jobs []Job) []Result {
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	total := len(jobs)
	results := make([]Result, total)
	bar := newProgressBar(total, cfg.Progress)

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				res := processJob(cfg, jobs[idx])
				entry := log.WithFields(logging.Fields{"name": res.Name, "duration_ms": res.DurationMS})
				if res.Success {
					entry.WithField("output", res.Output).Debug("face edited")
				} else {
					entry.WithField("error", res.Error).Warn("face edit failed")
				}
				results[idx] = res
				_ = bar.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	_ = bar.Finish()

	return results
}

func newProgressBar(total int, w io.Writer) *progressbar.ProgressBar {
	if w == nil {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Editing faces"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("faces"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)
}

func processJob(cfg Config, job Job) Result {
	start := time.Now()
	res := Result{Name: job.Name, Image: job.ImagePath}
	fail := func(err error) Result {
		res.Error = err.Error()
		res.DurationMS = time.Since(start).Milliseconds()
		return res
	}

	if cfg.Action == nil {
		return fail(fmt.Errorf("batch: no action configured"))
	}

	f, err := face.Load(job.ImagePath, job.LandmarksPath)
	if err != nil {
		return fail(err)
	}

	edited, field, err := cfg.Action.Perform(f)
	if err != nil {
		return fail(err)
	}
	res.MeanShift = field.MeanNorm()
	res.MaxShift = field.MaxNorm()

	edited, err = postprocess.Fit(edited, cfg.MaxSize)
	if err != nil {
		return fail(err)
	}

	stem := filepath.Join(cfg.OutputDir, filepath.FromSlash(job.Name))
	res.Output = stem + "." + cfg.Format
	if err := face.SaveImage(res.Output, edited.Pixels()); err != nil {
		return fail(err)
	}

	if cfg.WriteLandmarks {
		res.OutputLandmarks = stem + cfg.LandmarkSuffix
		if err := face.SaveLandmarks(res.OutputLandmarks, edited.Points()); err != nil {
			return fail(err)
		}
	}

	res.Success = true
	res.DurationMS = time.Since(start).Milliseconds()
	return res
}
