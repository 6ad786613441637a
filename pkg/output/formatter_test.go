package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahsan2/gh-issue-batch/pkg/issue"
)

func sampleResult() *issue.BatchResult {
	return &issue.BatchResult{
		Total:     3,
		Succeeded: 2,
		Failed:    1,
		Items: []issue.ItemResult{
			{Index: 1, Title: "First", Labels: "priority:P0,area:backend", Status: issue.OutcomeCreated, URL: "url1"},
			{Index: 2, Title: "Second", Labels: "ux", Status: issue.OutcomeFailed, Error: "could not add label: 'ux' not found",
				Err: issue.NewCommandError(1, "could not add label: 'ux' not found\n")},
			{Index: 3, Title: "Third", Labels: "", Status: issue.OutcomeCreated, URL: "url3"},
		},
		Errors: []issue.BatchError{{Index: 2, Title: "Second", Type: "command", Error: "could not add label: 'ux' not found"}},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    FormatType
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"csv", FormatCSV, false},
		{"quiet", FormatQuiet, false},
		{"xml", FormatTable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatItem_Table(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatterWithWriter(FormatTable, &buf)

	for _, item := range sampleResult().Items {
		require.NoError(t, f.FormatItem(item))
	}

	expected := "✅ Created: First\n   URL: url1\n\n" +
		"❌ Failed to create: Second\n   Error: could not add label: 'ux' not found\n\n" +
		"✅ Created: Third\n   URL: url3\n\n"
	assert.Equal(t, expected, buf.String())
}

func TestFormatItem_DependencyGuidancePrintedOnce(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatterWithWriter(FormatTable, &buf)

	depErr := issue.NewDependencyError(errors.New("exec: \"gh\": executable file not found in $PATH"))
	for i, title := range []string{"A", "B"} {
		require.NoError(t, f.FormatItem(issue.ItemResult{
			Index:  i + 1,
			Title:  title,
			Status: issue.OutcomeFailed,
			Err:    depErr,
			Error:  depErr.Message,
		}))
	}

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "Please install GitHub CLI first"))
	assert.Contains(t, out, "❌ Error: gh CLI not found. Please install GitHub CLI first:\n   "+issue.InstallURL+"\n\n")
	assert.Contains(t, out, "❌ Failed to create: B\n   Error: gh CLI not found\n\n")
}

func TestFormatItem_Skipped(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatterWithWriter(FormatTable, &buf)

	require.NoError(t, f.FormatItem(issue.ItemResult{Title: "Dup", Status: issue.OutcomeSkipped, Error: "an issue with this title already exists"}))
	assert.Equal(t, "⏭️  Skipped: Dup\n   an issue with this title already exists\n\n", buf.String())
}

func TestFormatItem_Quiet(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatterWithWriter(FormatQuiet, &buf)

	for _, item := range sampleResult().Items {
		require.NoError(t, f.FormatItem(item))
	}
	require.NoError(t, f.FormatBatchResult(sampleResult()))

	assert.Equal(t, "url1\nurl3\n", buf.String())
}

func TestFormatItem_JSONPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatterWithWriter(FormatJSON, &buf)

	require.NoError(t, f.FormatItem(sampleResult().Items[0]))
	require.NoError(t, f.FormatStart(3, "owner/repo", false))
	assert.Empty(t, buf.String())
}

func TestFormatStart(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatterWithWriter(FormatTable, &buf)

	require.NoError(t, f.FormatStart(12, "", false))
	assert.Equal(t, "Creating 12 issues...\n\n", buf.String())

	buf.Reset()
	require.NoError(t, f.FormatStart(2, "owner/repo", true))
	assert.Equal(t, "🔍 DRY-RUN: previewing 2 issues in owner/repo...\n\n", buf.String())
}

func TestFormatLabels(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatterWithWriter(FormatTable, &buf)

	require.NoError(t, f.FormatLabels(nil))
	assert.Empty(t, buf.String())

	require.NoError(t, f.FormatLabels([]string{"area:backend", "ux"}))
	assert.Equal(t, "Created 2 labels: area:backend, ux\n\n", buf.String())

	buf.Reset()
	f = NewFormatterWithWriter(FormatJSON, &buf)
	require.NoError(t, f.FormatLabels([]string{"ux"}))
	assert.Empty(t, buf.String())
}

func TestFormatBatchResult_Table(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatterWithWriter(FormatTable, &buf)

	require.NoError(t, f.FormatBatchResult(sampleResult()))

	rule := strings.Repeat("=", 60)
	expected := rule + "\n" +
		"✅ Successfully created: 2 issues\n" +
		"❌ Failed to create: 1 issues\n" +
		rule + "\n"
	assert.Equal(t, expected, buf.String())
}

func TestFormatBatchResult_TableOmitsZeroFailures(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatterWithWriter(FormatTable, &buf)

	require.NoError(t, f.FormatBatchResult(&issue.BatchResult{Total: 2, Succeeded: 2}))

	assert.Contains(t, buf.String(), "✅ Successfully created: 2 issues")
	assert.NotContains(t, buf.String(), "Failed")
	assert.NotContains(t, buf.String(), "Skipped")
}

func TestFormatBatchResult_TableDryRunAndSkipped(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatterWithWriter(FormatTable, &buf)

	require.NoError(t, f.FormatBatchResult(&issue.BatchResult{Total: 3, Succeeded: 2, Skipped: 1, DryRun: true}))

	assert.Contains(t, buf.String(), "🔍 Would create: 2 issues")
	assert.Contains(t, buf.String(), "⏭️  Skipped: 1 issues")
}

func TestFormatBatchResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatterWithWriter(FormatJSON, &buf)

	require.NoError(t, f.FormatBatchResult(sampleResult()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(3), decoded["total"])
	assert.Equal(t, float64(2), decoded["succeeded"])
	assert.Equal(t, float64(1), decoded["failed"])

	items := decoded["items"].([]interface{})
	require.Len(t, items, 3)
	second := items[1].(map[string]interface{})
	assert.Equal(t, "failed", second["status"])
	assert.NotContains(t, second, "Err")
}

func TestFormatBatchResult_CSV(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatterWithWriter(FormatCSV, &buf)

	require.NoError(t, f.FormatBatchResult(sampleResult()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Index,Title,Labels,Status,URL,Error,Hint", lines[0])
	assert.Equal(t, `1,First,"priority:P0,area:backend",created,url1,,`, lines[1])
	assert.Equal(t, "2,Second,ux,failed,,could not add label: 'ux' not found,", lines[2])
}

func TestFormatRecords(t *testing.T) {
	records := []issue.IssueRecord{
		{Title: "First", Labels: []string{"priority:P0", "area:backend"}},
		{Title: "Second", Labels: []string{"ux"}},
	}

	t.Run("plain table", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewFormatterWithWriter(FormatTable, &buf)
		require.NoError(t, f.FormatRecords(records, false, 80))
		assert.Equal(t, "1\tFirst\tpriority:P0, area:backend\n2\tSecond\tux\n", buf.String())
	})

	t.Run("tty table has header", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewFormatterWithWriter(FormatTable, &buf)
		require.NoError(t, f.FormatRecords(records, true, 120))
		assert.True(t, strings.HasPrefix(buf.String(), "#"))
		assert.Contains(t, buf.String(), "TITLE")
		assert.Contains(t, buf.String(), "First")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewFormatterWithWriter(FormatJSON, &buf)
		require.NoError(t, f.FormatRecords(records, false, 0))
		var decoded []issue.IssueRecord
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, records, decoded)
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewFormatterWithWriter(FormatCSV, &buf)
		require.NoError(t, f.FormatRecords(records, false, 0))
		assert.Equal(t, "Index,Title,Labels\n1,First,\"priority:P0,area:backend\"\n2,Second,ux\n", buf.String())
	})

	t.Run("quiet", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewFormatterWithWriter(FormatQuiet, &buf)
		require.NoError(t, f.FormatRecords(records, false, 0))
		assert.Equal(t, "First\nSecond\n", buf.String())
	})
}

func TestFormatError(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatterWithWriter(FormatJSON, &buf)

	require.NoError(t, f.FormatError(issue.NewConfigurationError("bad config", nil)))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "configuration", decoded["type"])
	assert.Contains(t, decoded["suggestion"], "init")

	buf.Reset()
	f = NewFormatterWithWriter(FormatTable, &buf)
	require.NoError(t, f.FormatError(errors.New("plain")))
	assert.Equal(t, "plain\n", buf.String())
}

func TestFormatBatchResult_MissingGHCarriesHint(t *testing.T) {
	depErr := issue.NewDependencyError(errors.New("exec: \"gh\": executable file not found in $PATH"))
	result := &issue.BatchResult{
		Total:  1,
		Failed: 1,
		Items: []issue.ItemResult{{
			Index:  1,
			Title:  "A",
			Status: issue.OutcomeFailed,
			Error:  depErr.Message,
			Hint:   depErr.Suggestion,
			Err:    depErr,
		}},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatterWithWriter(FormatJSON, &buf).FormatBatchResult(result))

		var decoded struct {
			Items []map[string]interface{} `json:"items"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded.Items, 1)
		assert.Contains(t, decoded.Items[0]["hint"], issue.InstallURL)
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatterWithWriter(FormatCSV, &buf).FormatBatchResult(result))
		assert.Contains(t, buf.String(), issue.InstallURL)
	})
}
