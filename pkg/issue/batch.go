package issue

import (
	"context"
)

// BatchResult represents the result of batch issue creation
type BatchResult struct {
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Skipped   int          `json:"skipped"`
	DryRun    bool         `json:"dry_run,omitempty"`
	Items     []ItemResult `json:"items"`
	Errors    []BatchError `json:"errors,omitempty"`
}

// BatchError represents an error during batch processing
type BatchError struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Processed returns the number of records that were attempted
func (r *BatchResult) Processed() int {
	return r.Succeeded + r.Failed
}

// HasDependencyError reports whether any item failed because gh was missing
func (r *BatchResult) HasDependencyError() bool {
	for _, item := range r.Items {
		if item.Err != nil && item.Err.Type == ErrorTypeDependency {
			return true
		}
	}
	return false
}

func (r *BatchResult) add(item ItemResult) {
	r.Items = append(r.Items, item)
	switch item.Status {
	case OutcomeCreated:
		r.Succeeded++
	case OutcomeSkipped:
		r.Skipped++
	default:
		r.Failed++
		be := BatchError{Index: item.Index, Title: item.Title, Error: item.Error}
		if item.Err != nil {
			be.Type = item.Err.Type.String()
		}
		r.Errors = append(r.Errors, be)
	}
}

// SkipFunc decides whether a record should be left out of the run.
// A non-empty reason is recorded on the skipped item.
type SkipFunc func(IssueRecord) (reason string, skip bool)

// Runner files a list of records one after another
type Runner struct {
	creator  *Creator
	skip     SkipFunc
	onResult func(ItemResult)
	dryRun   bool
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithSkip installs a filter consulted before each record is filed
func WithSkip(fn SkipFunc) RunnerOption {
	return func(r *Runner) {
		r.skip = fn
	}
}

// WithResultHook sets a callback invoked after every record, in order
func WithResultHook(fn func(ItemResult)) RunnerOption {
	return func(r *Runner) {
		r.onResult = fn
	}
}

// WithDryRun marks results as produced without creating anything
func WithDryRun(dryRun bool) RunnerOption {
	return func(r *Runner) {
		r.dryRun = dryRun
	}
}

// NewRunner creates a runner around creator
func NewRunner(creator *Creator, opts ...RunnerOption) *Runner {
	r := &Runner{creator: creator}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunAll files every record strictly in order. Per-item failures never stop
// the loop. Once gh turns out to be missing, or ctx is canceled, the
// remaining records are marked failed with that error without launching gh.
func (r *Runner) RunAll(ctx context.Context, records []IssueRecord) *BatchResult {
	result := &BatchResult{
		Total:  len(records),
		DryRun: r.dryRun,
		Items:  make([]ItemResult, 0, len(records)),
	}

	var abort *IssueError
	for i, record := range records {
		var item ItemResult

		switch {
		case abort != nil:
			item = ItemResult{
				Title:  record.Title,
				Labels: record.LabelString(),
				Status: OutcomeFailed,
				Err:    abort,
				Error:  abort.Message,
				Hint:   abort.Suggestion,
			}
		case ctx.Err() != nil:
			abort = NewCanceledError(ctx.Err())
			item = ItemResult{
				Title:  record.Title,
				Labels: record.LabelString(),
				Status: OutcomeFailed,
				Err:    abort,
				Error:  abort.Message,
				Hint:   abort.Suggestion,
			}
		default:
			if reason, ok := r.shouldSkip(record); ok {
				item = ItemResult{
					Title:  record.Title,
					Labels: record.LabelString(),
					Status: OutcomeSkipped,
					Error:  reason,
				}
				break
			}
			item = r.creator.CreateOne(ctx, record)
			if item.Err != nil && IsAbort(item.Err) {
				abort = item.Err
			}
		}

		item.Index = i + 1
		result.add(item)
		if r.onResult != nil {
			r.onResult(item)
		}
	}

	return result
}

func (r *Runner) shouldSkip(record IssueRecord) (string, bool) {
	if r.skip == nil {
		return "", false
	}
	return r.skip(record)
}
