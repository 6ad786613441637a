package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cli/go-gh/v2/pkg/tableprinter"

	"github.com/yahsan2/gh-issue-batch/pkg/issue"
)

// FormatType represents the output format type
type FormatType int

const (
	// FormatTable outputs a human readable report
	FormatTable FormatType = iota
	// FormatJSON outputs as JSON
	FormatJSON
	// FormatCSV outputs as CSV
	FormatCSV
	// FormatQuiet outputs only created issue URLs
	FormatQuiet
)

// ParseFormat maps a format name to a FormatType
func ParseFormat(name string) (FormatType, error) {
	switch strings.ToLower(name) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "quiet":
		return FormatQuiet, nil
	default:
		return FormatTable, fmt.Errorf("invalid output format '%s': must be table, json, csv or quiet", name)
	}
}

const bannerWidth = 60

// Formatter handles output formatting
type Formatter struct {
	format FormatType
	writer io.Writer
	styles styles

	dependencyReported bool
}

type styles struct {
	success lipgloss.Style
	failure lipgloss.Style
	skipped lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		success: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		skipped: r.NewStyle().Foreground(lipgloss.Color("3")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// NewFormatterWithWriter creates a new formatter with custom writer
func NewFormatterWithWriter(format FormatType, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
		styles: newStyles(writer),
	}
}

// Format returns the configured format
func (f *Formatter) Format() FormatType {
	return f.format
}

// FormatStart prints the run header
func (f *Formatter) FormatStart(total int, repo string, dryRun bool) error {
	if f.format != FormatTable {
		return nil
	}

	target := ""
	if repo != "" {
		target = " in " + repo
	}

	if dryRun {
		_, err := fmt.Fprintf(f.writer, "🔍 DRY-RUN: previewing %d issues%s...\n\n", total, target)
		return err
	}
	_, err := fmt.Fprintf(f.writer, "Creating %d issues%s...\n\n", total, target)
	return err
}

// FormatLabels reports labels created in the repository before the run
func (f *Formatter) FormatLabels(created []string) error {
	if f.format != FormatTable || len(created) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(f.writer, "%s %s\n\n",
		f.styles.muted.Render(fmt.Sprintf("Created %d labels:", len(created))),
		strings.Join(created, ", "))
	return err
}

// FormatItem prints the status of one processed record. Table output is a
// status block followed by a blank line; quiet output is the created URL.
// JSON and CSV print nothing per item.
func (f *Formatter) FormatItem(item issue.ItemResult) error {
	switch f.format {
	case FormatTable:
		return f.formatItemTable(item)
	case FormatQuiet:
		if item.Succeeded() {
			_, err := fmt.Fprintln(f.writer, item.URL)
			return err
		}
		return nil
	default:
		return nil
	}
}

func (f *Formatter) formatItemTable(item issue.ItemResult) error {
	var b strings.Builder

	switch {
	case item.Succeeded():
		fmt.Fprintf(&b, "%s %s\n", f.styles.success.Render("✅ Created:"), item.Title)
		fmt.Fprintf(&b, "   URL: %s\n", item.URL)
	case item.Status == issue.OutcomeSkipped:
		fmt.Fprintf(&b, "%s %s\n", f.styles.skipped.Render("⏭️  Skipped:"), item.Title)
		if item.Error != "" {
			fmt.Fprintf(&b, "   %s\n", f.styles.muted.Render(item.Error))
		}
	case item.Err != nil && item.Err.Type == issue.ErrorTypeDependency && !f.dependencyReported:
		f.dependencyReported = true
		fmt.Fprintf(&b, "%s gh CLI not found. Please install GitHub CLI first:\n", f.styles.failure.Render("❌ Error:"))
		fmt.Fprintf(&b, "   %s\n", issue.InstallURL)
	default:
		fmt.Fprintf(&b, "%s %s\n", f.styles.failure.Render("❌ Failed to create:"), item.Title)
		fmt.Fprintf(&b, "   Error: %s\n", item.Error)
	}

	b.WriteString("\n")
	_, err := io.WriteString(f.writer, b.String())
	return err
}

// FormatBatchResult formats batch processing results
func (f *Formatter) FormatBatchResult(result *issue.BatchResult) error {
	switch f.format {
	case FormatJSON:
		return f.formatBatchResultJSON(result)
	case FormatCSV:
		return f.formatBatchResultCSV(result)
	case FormatQuiet:
		return nil
	default:
		return f.formatBatchResultTable(result)
	}
}

// formatBatchResultTable prints the summary banner
func (f *Formatter) formatBatchResultTable(result *issue.BatchResult) error {
	var b strings.Builder
	rule := strings.Repeat("=", bannerWidth)

	b.WriteString(rule + "\n")
	if result.DryRun {
		fmt.Fprintf(&b, "%s %d issues\n", f.styles.success.Render("🔍 Would create:"), result.Succeeded)
	} else {
		fmt.Fprintf(&b, "%s %d issues\n", f.styles.success.Render("✅ Successfully created:"), result.Succeeded)
	}
	if result.Failed > 0 {
		fmt.Fprintf(&b, "%s %d issues\n", f.styles.failure.Render("❌ Failed to create:"), result.Failed)
	}
	if result.Skipped > 0 {
		fmt.Fprintf(&b, "%s %d issues\n", f.styles.skipped.Render("⏭️  Skipped:"), result.Skipped)
	}
	b.WriteString(rule + "\n")

	_, err := io.WriteString(f.writer, b.String())
	return err
}

// formatBatchResultJSON formats batch results as JSON
func (f *Formatter) formatBatchResultJSON(result *issue.BatchResult) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// formatBatchResultCSV writes one row per processed record
func (f *Formatter) formatBatchResultCSV(result *issue.BatchResult) error {
	w := csv.NewWriter(f.writer)

	if err := w.Write([]string{"Index", "Title", "Labels", "Status", "URL", "Error", "Hint"}); err != nil {
		return err
	}

	for _, item := range result.Items {
		record := []string{
			strconv.Itoa(item.Index),
			item.Title,
			item.Labels,
			string(item.Status),
			item.URL,
			item.Error,
			item.Hint,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// FormatRecords lists records without filing them
func (f *Formatter) FormatRecords(records []issue.IssueRecord, isTTY bool, width int) error {
	switch f.format {
	case FormatJSON:
		encoder := json.NewEncoder(f.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	case FormatCSV:
		w := csv.NewWriter(f.writer)
		if err := w.Write([]string{"Index", "Title", "Labels"}); err != nil {
			return err
		}
		for i, r := range records {
			if err := w.Write([]string{strconv.Itoa(i + 1), r.Title, r.LabelString()}); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	case FormatQuiet:
		for _, r := range records {
			if _, err := fmt.Fprintln(f.writer, r.Title); err != nil {
				return err
			}
		}
		return nil
	}

	tp := tableprinter.New(f.writer, isTTY, width)
	if isTTY {
		tp.AddField("#")
		tp.AddField("TITLE")
		tp.AddField("LABELS")
		tp.EndRow()
	}
	for i, r := range records {
		tp.AddField(strconv.Itoa(i + 1))
		tp.AddField(r.Title)
		tp.AddField(strings.Join(r.Labels, ", "))
		tp.EndRow()
	}
	return tp.Render()
}

// FormatError formats an error for output
func (f *Formatter) FormatError(err error) error {
	if f.format == FormatJSON {
		errorData := map[string]string{
			"error": err.Error(),
		}

		var issueErr *issue.IssueError
		if errors.As(err, &issueErr) {
			errorData["type"] = issueErr.Type.String()
			if issueErr.Suggestion != "" {
				errorData["suggestion"] = issueErr.Suggestion
			}
		}

		encoder := json.NewEncoder(f.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(errorData)
	}

	_, printErr := fmt.Fprintln(f.writer, err.Error())
	return printErr
}
