package check

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dtnitsch/clickbait-detector/models"
	"github.com/dtnitsch/clickbait-detector/pkg/checker"
)

// Job is one URL to check; Index keeps output in input order.
type Job struct {
	Index int
	URL   string
}

// Result holds the outcome of a processed job.
type Result struct {
	Index   int            `json:"-" yaml:"-"`
	URL     string         `json:"url" yaml:"url"`
	Verdict models.Verdict `json:"verdict" yaml:"verdict"`
	Err     error          `json:"-" yaml:"-"`
}

// URLChecker is the slice of *checker.Checker the workers use.
type URLChecker interface {
	CheckClickbait(ctx context.Context, url string) (models.Verdict, error)
}

// worker processes jobs until the channel closes.
func worker(ctx context.Context, id int, logger *slog.Logger, c URLChecker, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Debug("Worker started job", "worker_id", id, "url", job.URL)

		result := Result{Index: job.Index, URL: job.URL}
		verdict, err := c.CheckClickbait(ctx, job.URL)
		if err != nil {
			result.Err = err
			result.Verdict = checker.ErrorVerdict(err)
		} else {
			result.Verdict = verdict
		}
		results <- result

		logger.Debug("Worker finished job", "worker_id", id, "url", job.URL)
	}
}

// run checks urls with workerCount workers and returns results in input order.
func run(ctx context.Context, logger *slog.Logger, c URLChecker, urls []string, workerCount int) []Result {
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(urls) {
		workerCount = len(urls)
	}

	logger.Info("Starting checks", "url_count", len(urls), "workers", workerCount)
	var wg sync.WaitGroup
	jobs := make(chan Job, len(urls))
	results := make(chan Result, len(urls))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, c, &wg, jobs, results)
	}

	for i, u := range urls {
		jobs <- Job{Index: i, URL: u}
	}
	close(jobs)

	wg.Wait()
	close(results)

	ordered := make([]Result, len(urls))
	for r := range results {
		ordered[r.Index] = r
	}
	return ordered
}
