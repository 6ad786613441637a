// Package catalog holds the list of issues a run files. The default list is
// embedded in the binary; alternate lists can be loaded from YAML, JSON or
// TOML files.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/yahsan2/gh-issue-batch/pkg/issue"
)

//go:embed issues.yml
var defaultIssues []byte

// Format identifies the encoding of a record file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Document is the on-disk shape of a record file
type Document struct {
	Issues []issue.IssueRecord `yaml:"issues" json:"issues" toml:"issues"`
}

// Default returns the embedded issue list
func Default() ([]issue.IssueRecord, error) {
	records, err := Parse(defaultIssues, FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog is invalid: %w", err)
	}
	return records, nil
}

// LoadFile reads records from path, picking the decoder from its extension
func LoadFile(path string) ([]issue.IssueRecord, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read issue file %s: %w", path, err)
	}

	records, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// FormatFromPath maps a file extension to a Format
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", issue.NewValidationError(
			fmt.Sprintf("unsupported issue file extension %q (use .yml, .yaml, .json or .toml)", filepath.Ext(path)), nil)
	}
}

// Parse decodes and validates a record document
func Parse(data []byte, format Format) ([]issue.IssueRecord, error) {
	var doc Document
	var err error

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, issue.NewValidationError(fmt.Sprintf("unknown format %q", format), nil)
	}
	if err != nil {
		return nil, issue.NewValidationError(fmt.Sprintf("failed to parse %s issue file", format), err)
	}

	if len(doc.Issues) == 0 {
		return nil, issue.NewValidationError("issue file contains no issues", nil)
	}

	for i, record := range doc.Issues {
		if err := record.Validate(); err != nil {
			return nil, issue.NewValidationError(fmt.Sprintf("issue %d is invalid", i+1), err)
		}
	}

	return doc.Issues, nil
}

// Labels returns every distinct label used by records, in first-seen order
func Labels(records []issue.IssueRecord) []string {
	var labels []string
	seen := make(map[string]bool)
	for _, record := range records {
		for _, label := range record.Labels {
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
	}
	return labels
}
