package pipeline

import (
	"strings"

	"infla/internal/model"
)

// Subtree keeps the records belonging to one main category: the category
// itself plus every deeper code sharing its prefix.
func Subtree(records []model.InflationRecord, mainCode string) []model.InflationRecord {
	if mainCode == "" {
		return nil
	}
	var out []model.InflationRecord
	for _, r := range records {
		if r.ProductCode == mainCode || (len(r.ProductCode) > len(mainCode) && strings.HasPrefix(r.ProductCode, mainCode)) {
			out = append(out, r)
		}
	}
	return out
}
