package gates

import (
	"github.com/example/sendgate/internal/models"
	"github.com/example/sendgate/internal/taxonomy"
)

// Diversity thresholds. A schedule must clear all of them (the retention
// threshold applies to paid pages only).
const (
	MinUniqueSendTypes     = 10
	MinUniqueRevenue       = 4
	MinUniqueEngagement    = 4
	MinUniqueRetentionPaid = 2
)

// DiversityCounts holds distinct send-type counts overall and per category.
type DiversityCounts struct {
	UniqueSendTypes  int `json:"unique_send_types"`
	UniqueRevenue    int `json:"unique_revenue"`
	UniqueEngagement int `json:"unique_engagement"`
	UniqueRetention  int `json:"unique_retention"`
}

// CountDiversity tallies unique send type keys overall and per category.
// The item's own category field is advisory; the taxonomy is authoritative
// for categorization, falling back to the item when the key is unknown.
func CountDiversity(items []models.ScheduleItem, tax *taxonomy.Cache) DiversityCounts {
	seen := make(map[string]bool)
	byCategory := make(map[models.Category]map[string]bool)

	for _, item := range items {
		seen[item.SendTypeKey] = true

		category, ok := tax.Category(item.SendTypeKey)
		if !ok {
			category = item.Category
		}
		if byCategory[category] == nil {
			byCategory[category] = make(map[string]bool)
		}
		byCategory[category][item.SendTypeKey] = true
	}

	return DiversityCounts{
		UniqueSendTypes:  len(seen),
		UniqueRevenue:    len(byCategory[models.CategoryRevenue]),
		UniqueEngagement: len(byCategory[models.CategoryEngagement]),
		UniqueRetention:  len(byCategory[models.CategoryRetention]),
	}
}
