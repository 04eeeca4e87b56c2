package aggregation

import (
	"testing"

	"taskflow-project/backend/models"
)

func titles(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func equalOrder(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestSortTasks_DeadlineAscending(t *testing.T) {
	tasks := []models.Task{
		{Title: "later", Priority: models.PriorityHigh, Deadline: "2024-06-01"},
		{Title: "sooner", Priority: models.PriorityLow, Deadline: "2024-05-01"},
	}

	sorted := SortTasks(tasks, SortKeyDeadline, "", SortOptions{})
	if got := titles(sorted); !equalOrder(got, []string{"sooner", "later"}) {
		t.Fatalf("unexpected deadline order: %v", got)
	}
}

func TestSortTasks_InvalidDeadlineSortsLast(t *testing.T) {
	tasks := []models.Task{
		{Title: "no-deadline", Deadline: ""},
		{Title: "garbage", Deadline: "soonish"},
		{Title: "dated", Deadline: "2024-01-15"},
	}

	sorted := SortTasks(tasks, SortKeyDeadline, "", SortOptions{})
	got := titles(sorted)
	if got[0] != "dated" {
		t.Fatalf("dated task should sort first: %v", got)
	}
	// unparsable deadlines keep their relative order at the tail
	if !equalOrder(got[1:], []string{"no-deadline", "garbage"}) {
		t.Fatalf("unparsable deadlines lost their relative order: %v", got)
	}
}

func TestSortTasks_PriorityLexical(t *testing.T) {
	tasks := []models.Task{
		{Title: "m", Priority: models.PriorityMedium},
		{Title: "l", Priority: models.PriorityLow},
		{Title: "h", Priority: models.PriorityHigh},
	}

	// alphabetical: high, low, medium
	sorted := SortTasks(tasks, SortKeyPriority, "", SortOptions{PriorityOrder: PriorityOrderLexical})
	if got := titles(sorted); !equalOrder(got, []string{"h", "l", "m"}) {
		t.Fatalf("unexpected lexical priority order: %v", got)
	}
}

func TestSortTasks_PriorityRank(t *testing.T) {
	tasks := []models.Task{
		{Title: "l", Priority: models.PriorityLow},
		{Title: "m", Priority: models.PriorityMedium},
		{Title: "h", Priority: models.PriorityHigh},
	}

	sorted := SortTasks(tasks, SortKeyPriority, "", SortOptions{PriorityOrder: PriorityOrderRank})
	if got := titles(sorted); !equalOrder(got, []string{"h", "m", "l"}) {
		t.Fatalf("unexpected rank priority order: %v", got)
	}
}

func TestSortTasks_StatusUsesViewerOwnRecord(t *testing.T) {
	tasks := []models.Task{
		{Title: "untouched"},
		{Title: "done", EmployeeStatuses: map[string]models.StatusRecord{
			"me": {Status: models.StatusCompleted},
		}},
		{Title: "stuck", EmployeeStatuses: map[string]models.StatusRecord{
			"me":       {Status: models.StatusNotCompleted},
			"somebody": {Status: models.StatusCompleted},
		}},
	}

	// lexical over the closed set: completed < "not completed" < pending
	sorted := SortTasks(tasks, SortKeyStatus, "me", SortOptions{})
	if got := titles(sorted); !equalOrder(got, []string{"done", "stuck", "untouched"}) {
		t.Fatalf("unexpected status order: %v", got)
	}
}

func TestSortTasks_StableOnTies(t *testing.T) {
	tasks := []models.Task{
		{Title: "first", Priority: models.PriorityHigh, Deadline: "2024-03-01"},
		{Title: "second", Priority: models.PriorityHigh, Deadline: "2024-03-01"},
		{Title: "third", Priority: models.PriorityHigh, Deadline: "2024-03-01"},
	}

	for _, key := range []SortKey{SortKeyDeadline, SortKeyPriority, SortKeyStatus} {
		sorted := SortTasks(tasks, key, "me", SortOptions{})
		if got := titles(sorted); !equalOrder(got, []string{"first", "second", "third"}) {
			t.Fatalf("sort by %s is not stable: %v", key, got)
		}
	}
}

func TestSortTasks_DoesNotMutateInput(t *testing.T) {
	tasks := []models.Task{
		{Title: "b", Deadline: "2024-06-01"},
		{Title: "a", Deadline: "2024-05-01"},
	}

	SortTasks(tasks, SortKeyDeadline, "", SortOptions{})
	if tasks[0].Title != "b" {
		t.Fatalf("input slice was reordered: %v", titles(tasks))
	}
}
