package args

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yahsan2/gh-issue-batch/pkg/filter"
)

// FilterFlags contains the flag names used to select records
type FilterFlags struct {
	Label    string
	Priority string
	Search   string
	Limit    string
}

// DefaultFlags returns the default flag names
func DefaultFlags() *FilterFlags {
	return &FilterFlags{
		Label:    "label",
		Priority: "priority",
		Search:   "search",
		Limit:    "limit",
	}
}

// AddFilterFlags adds record selection flags to the command
func AddFilterFlags(cmd *cobra.Command, flags *FilterFlags) {
	if flags == nil {
		flags = DefaultFlags()
	}

	cmd.Flags().StringSliceP(flags.Label, "l", []string{}, "Only issues carrying this label (repeatable, all must match)")
	cmd.Flags().StringP(flags.Priority, "P", "", "Only issues with this priority (e.g. P0 or priority:P0)")
	cmd.Flags().StringP(flags.Search, "S", "", "Only issues whose title or body contains this text")
	cmd.Flags().IntP(flags.Limit, "L", 0, "Maximum number of issues to process (0 for all)")
}

// ParseFilterFlags extracts record filters from command flags
func ParseFilterFlags(cmd *cobra.Command, flags *FilterFlags) (*filter.RecordFilters, error) {
	if flags == nil {
		flags = DefaultFlags()
	}

	filters := filter.NewRecordFilters()

	var err error

	if filters.Labels, err = cmd.Flags().GetStringSlice(flags.Label); err != nil {
		return nil, err
	}

	if filters.Priority, err = cmd.Flags().GetString(flags.Priority); err != nil {
		return nil, err
	}

	if filters.Search, err = cmd.Flags().GetString(flags.Search); err != nil {
		return nil, err
	}

	if filters.Limit, err = cmd.Flags().GetInt(flags.Limit); err != nil {
		return nil, err
	}

	if filters.Limit < 0 {
		return nil, fmt.Errorf("invalid limit %d: must be 0 or greater", filters.Limit)
	}

	return filters, nil
}
