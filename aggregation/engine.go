// Package aggregation derives view models from a task's per-employee status
// map and computes status merges. It performs no I/O and never mutates its
// inputs; persistence of a merge is the task service's job.
package aggregation

import (
	"fmt"
	"sort"

	"taskflow-project/backend/models"
)

// UnknownEmployeeName is rendered for status entries whose employee id cannot
// be resolved against the directory.
const UnknownEmployeeName = "Unknown Employee"

// EmployeeView is one employee's slice of a task.
type EmployeeView struct {
	Status      models.TaskStatus `json:"status"`
	Description string            `json:"description"`
	IsCompleted bool              `json:"isCompleted"`
}

// TaskAggregate is the manager-side completion summary of a task. Counts are
// taken over reported status records, not the assigned roster.
type TaskAggregate struct {
	TotalReported   int     `json:"totalReported"`
	CompletedCount  int     `json:"completedCount"`
	CompletionRatio float64 `json:"completionRatio"`
	IsFullyComplete bool    `json:"isFullyComplete"`
}

// StatusEntry is one row of the manager projection: a reported status record
// resolved against the employee directory.
type StatusEntry struct {
	EmployeeID  string            `json:"employeeId"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Status      models.TaskStatus `json:"status"`
	Description string            `json:"description"`
}

// GetEmployeeView returns the employee's record on the task, defaulting to
// {pending, ""} when the employee has never reported. Total over any task/id
// pair.
func GetEmployeeView(task models.Task, employeeID string) EmployeeView {
	rec, ok := task.EmployeeStatuses[employeeID]
	if !ok {
		rec = models.StatusRecord{Status: models.StatusPending, Description: ""}
	}
	return EmployeeView{
		Status:      rec.Status,
		Description: rec.Description,
		IsCompleted: rec.Status == models.StatusCompleted,
	}
}

// MergeEmployeeStatus returns a new employeeStatuses map with the employee's
// key replaced by the given record. Every other key is copied untouched, so
// merges by distinct employees commute. The status must be one of the closed
// set; terminality of "completed" is not enforced here.
func MergeEmployeeStatus(task models.Task, employeeID string, status models.TaskStatus, description string) (map[string]models.StatusRecord, error) {
	if employeeID == "" {
		return nil, fmt.Errorf("employee id is required")
	}
	if _, err := models.ParseTaskStatus(string(status)); err != nil {
		return nil, err
	}

	merged := make(map[string]models.StatusRecord, len(task.EmployeeStatuses)+1)
	for id, rec := range task.EmployeeStatuses {
		merged[id] = rec
	}
	merged[employeeID] = models.StatusRecord{Status: status, Description: description}
	return merged, nil
}

// ComputeTaskAggregate summarizes completion over the reported records.
// An empty map yields a zero ratio, never a division by zero.
func ComputeTaskAggregate(task models.Task) TaskAggregate {
	total := len(task.EmployeeStatuses)
	completed := 0
	for _, rec := range task.EmployeeStatuses {
		if rec.Status == models.StatusCompleted {
			completed++
		}
	}

	agg := TaskAggregate{TotalReported: total, CompletedCount: completed}
	if total > 0 {
		agg.CompletionRatio = float64(completed) / float64(total)
		agg.IsFullyComplete = completed == total
	}
	return agg
}

// ProjectManagerView returns one entry per reported employee, resolved against
// the directory. Unresolved ids keep their status but render the
// UnknownEmployeeName sentinel. Rows are ordered by employee id so the
// projection is deterministic.
func ProjectManagerView(task models.Task, directory map[string]models.User) []StatusEntry {
	entries := make([]StatusEntry, 0, len(task.EmployeeStatuses))
	for id, rec := range task.EmployeeStatuses {
		entry := StatusEntry{
			EmployeeID:  id,
			Name:        UnknownEmployeeName,
			Status:      rec.Status,
			Description: rec.Description,
		}
		if profile, ok := directory[id]; ok {
			entry.Name = profile.Name
			entry.Email = profile.Email
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].EmployeeID < entries[j].EmployeeID
	})
	return entries
}
