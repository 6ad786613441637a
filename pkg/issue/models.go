package issue

import (
	"fmt"
	"strings"
)

// IssueRecord describes one issue to be filed
type IssueRecord struct {
	Title  string   `yaml:"title" json:"title" toml:"title"`
	Labels []string `yaml:"labels" json:"labels" toml:"labels"`
	Body   string   `yaml:"body" json:"body" toml:"body"`
}

// LabelString returns the labels joined by commas, in their original order
func (r IssueRecord) LabelString() string {
	return strings.Join(r.Labels, ",")
}

// HasLabel reports whether the record carries the given label
func (r IssueRecord) HasLabel(name string) bool {
	for _, label := range r.Labels {
		if label == name {
			return true
		}
	}
	return false
}

// WithLabels returns a copy of the record with extra labels appended.
// Labels already present are not repeated.
func (r IssueRecord) WithLabels(extra []string) IssueRecord {
	labels := make([]string, 0, len(r.Labels)+len(extra))
	seen := make(map[string]bool)
	for _, label := range append(append([]string{}, r.Labels...), extra...) {
		if seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	r.Labels = labels
	return r
}

// Validate checks if the record can be filed
func (r IssueRecord) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("issue title is required")
	}

	if len(r.Title) > 256 {
		return fmt.Errorf("issue title must be 256 characters or less")
	}

	for _, label := range r.Labels {
		if label == "" {
			return fmt.Errorf("empty label is not allowed")
		}
		if strings.Contains(label, ",") {
			return fmt.Errorf("label '%s' must not contain a comma", label)
		}
		if len(label) > 50 {
			return fmt.Errorf("label '%s' exceeds maximum length of 50 characters", label)
		}
	}

	return nil
}

// Outcome is the result kind of a single creation attempt
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// ItemResult is the structured result of filing one record
type ItemResult struct {
	Index  int         `json:"index"`
	Title  string      `json:"title"`
	Labels string      `json:"labels"`
	Status Outcome     `json:"status"`
	URL    string      `json:"url,omitempty"`
	Error  string      `json:"error,omitempty"`
	Hint   string      `json:"hint,omitempty"`
	Err    *IssueError `json:"-"`
}

// Succeeded reports whether the issue was created
func (r ItemResult) Succeeded() bool {
	return r.Status == OutcomeCreated
}
