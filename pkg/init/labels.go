package init

import (
	"strings"

	"github.com/yahsan2/gh-issue-batch/pkg/catalog"
	"github.com/yahsan2/gh-issue-batch/pkg/config"
	"github.com/yahsan2/gh-issue-batch/pkg/issue"
)

// AreaLabelPrefix marks labels naming the part of the system an issue touches
const AreaLabelPrefix = "area:"

const areaLabelColor = "c5def5"

// SeedLabels adds a label entry to cfg for every label records use that has
// none yet, so --create-labels has a color for it. It returns the names added.
func SeedLabels(cfg *config.Config, records []issue.IssueRecord) []string {
	if cfg.Labels == nil {
		cfg.Labels = make(map[string]config.LabelConfig)
	}

	var added []string
	for _, name := range catalog.Labels(records) {
		if _, ok := cfg.Labels[name]; ok {
			continue
		}
		cfg.Labels[name] = config.LabelConfig{Color: colorFor(name)}
		added = append(added, name)
	}
	return added
}

func colorFor(label string) string {
	if strings.HasPrefix(label, AreaLabelPrefix) {
		return areaLabelColor
	}
	return config.DefaultLabelColor
}
