package filter

import (
	"strings"

	"github.com/yahsan2/gh-issue-batch/pkg/issue"
)

// PriorityLabelPrefix is the label namespace used for priorities
const PriorityLabelPrefix = "priority:"

// RecordFilters selects which records of a catalog are filed
type RecordFilters struct {
	Labels   []string `json:"labels,omitempty"`
	Priority string   `json:"priority,omitempty"`
	Search   string   `json:"search,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

// NewRecordFilters creates filters that keep every record
func NewRecordFilters() *RecordFilters {
	return &RecordFilters{}
}

// IsEmpty reports whether the filters keep every record
func (f *RecordFilters) IsEmpty() bool {
	return len(f.Labels) == 0 && f.Priority == "" && f.Search == "" && f.Limit <= 0
}

// Match reports whether record passes the label, priority and search filters
func (f *RecordFilters) Match(record issue.IssueRecord) bool {
	for _, label := range f.Labels {
		if !record.HasLabel(label) {
			return false
		}
	}

	if f.Priority != "" {
		priority := f.Priority
		if !strings.HasPrefix(priority, PriorityLabelPrefix) {
			priority = PriorityLabelPrefix + priority
		}
		if !record.HasLabel(priority) {
			return false
		}
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(record.Title), needle) &&
			!strings.Contains(strings.ToLower(record.Body), needle) {
			return false
		}
	}

	return true
}

// Apply returns the matching records in their original order, capped at Limit
func (f *RecordFilters) Apply(records []issue.IssueRecord) []issue.IssueRecord {
	if f == nil || f.IsEmpty() {
		return records
	}

	out := make([]issue.IssueRecord, 0, len(records))
	for _, record := range records {
		if !f.Match(record) {
			continue
		}
		out = append(out, record)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}
