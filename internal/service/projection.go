package service

import (
	"sort"
	"strings"

	"github.com/ayudin/go-course-keeper/models"
)

// Filtered derives an ordered view over the held material set of one
// course: text filter, then importance filter, then sort. The derivation
// is stateless and recomputed on every call so it always reflects the
// current query inputs.
func (m *MaterialManager) Filtered(courseID string, query models.MaterialQuery) []models.Material {
	m.mu.RLock()
	held := m.items[courseID]
	m.mu.RUnlock()

	result := make([]models.Material, 0, len(held))
	needle := strings.ToLower(strings.TrimSpace(query.SearchText))

	for _, mat := range held {
		if needle != "" && !matchesSearch(mat, needle) {
			continue
		}
		if query.ImportantOnly && !mat.IsImportant {
			continue
		}
		result = append(result, mat)
	}

	sortMaterials(result, query.Sort)
	return result
}

func matchesSearch(mat models.Material, needle string) bool {
	return strings.Contains(strings.ToLower(mat.Title), needle) ||
		strings.Contains(strings.ToLower(mat.Content), needle) ||
		strings.Contains(strings.ToLower(mat.Author), needle)
}

func sortMaterials(materials []models.Material, order models.SortOrder) {
	switch order {
	case models.SortPostedAsc:
		sort.SliceStable(materials, func(i, j int) bool {
			return materials[i].PostedAt.Before(materials[j].PostedAt)
		})
	case models.SortTitleAsc:
		sort.SliceStable(materials, func(i, j int) bool {
			return strings.ToLower(materials[i].Title) < strings.ToLower(materials[j].Title)
		})
	case models.SortTitleDesc:
		sort.SliceStable(materials, func(i, j int) bool {
			return strings.ToLower(materials[i].Title) > strings.ToLower(materials[j].Title)
		})
	case models.SortImportantFirst:
		// Importance descending, ties broken by posted time descending.
		sort.SliceStable(materials, func(i, j int) bool {
			if materials[i].IsImportant != materials[j].IsImportant {
				return materials[i].IsImportant
			}
			return materials[i].PostedAt.After(materials[j].PostedAt)
		})
	default: // models.SortPostedDesc and the zero value
		sort.SliceStable(materials, func(i, j int) bool {
			return materials[i].PostedAt.After(materials[j].PostedAt)
		})
	}
}
