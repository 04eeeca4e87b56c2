package aggregation

import (
	"sort"
	"time"

	"taskflow-project/backend/models"
)

type SortKey string

const (
	// SortKeyDeadline orders ascending by parsed calendar date. Tasks whose
	// deadline is missing or unparsable sort last.
	SortKeyDeadline SortKey = "deadline"
	// SortKeyPriority orders by priority; see PriorityOrder.
	SortKeyPriority SortKey = "priority"
	// SortKeyStatus orders by the viewer's own status string, lexically:
	// completed < "not completed" < pending.
	SortKeyStatus SortKey = "status"
)

type PriorityOrder int

const (
	// PriorityOrderLexical compares priority strings alphabetically, which
	// yields high, low, medium. This is the literal behavior of the original
	// comparator and the default.
	PriorityOrderLexical PriorityOrder = iota
	// PriorityOrderRank compares by urgency: high, medium, low.
	PriorityOrderRank
)

type SortOptions struct {
	PriorityOrder PriorityOrder
}

const deadlineLayout = "2006-01-02"

var priorityRank = map[models.TaskPriority]int{
	models.PriorityHigh:   0,
	models.PriorityMedium: 1,
	models.PriorityLow:    2,
}

// SortTasks returns a sorted copy of tasks. The sort is stable: ties keep
// their original relative order. An unknown sort key leaves the order as is.
func SortTasks(tasks []models.Task, key SortKey, viewerID string, opts SortOptions) []models.Task {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)

	switch key {
	case SortKeyDeadline:
		sort.SliceStable(sorted, func(i, j int) bool {
			return deadlineSortValue(sorted[i].Deadline).Before(deadlineSortValue(sorted[j].Deadline))
		})
	case SortKeyPriority:
		if opts.PriorityOrder == PriorityOrderRank {
			sort.SliceStable(sorted, func(i, j int) bool {
				return priorityRank[sorted[i].Priority] < priorityRank[sorted[j].Priority]
			})
		} else {
			sort.SliceStable(sorted, func(i, j int) bool {
				return sorted[i].Priority < sorted[j].Priority
			})
		}
	case SortKeyStatus:
		sort.SliceStable(sorted, func(i, j int) bool {
			a := GetEmployeeView(sorted[i], viewerID).Status
			b := GetEmployeeView(sorted[j], viewerID).Status
			return a < b
		})
	}
	return sorted
}

// deadlineSortValue parses a calendar-date deadline for ordering. Missing or
// malformed dates map to the far future so they sort last instead of
// producing the nondeterministic NaN comparisons of naive date subtraction.
func deadlineSortValue(deadline string) time.Time {
	t, err := time.Parse(deadlineLayout, deadline)
	if err != nil {
		return time.Unix(1<<62, 0)
	}
	return t
}
