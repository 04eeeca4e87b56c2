package aggregation

import (
	"reflect"
	"testing"

	"taskflow-project/backend/models"
)

func taskWithStatuses(statuses map[string]models.StatusRecord) models.Task {
	return models.Task{
		Title:            "quarterly report",
		Description:      "compile the numbers",
		Priority:         models.PriorityMedium,
		EmployeeStatuses: statuses,
	}
}

func TestGetEmployeeView_DefaultsWhenAbsent(t *testing.T) {
	task := taskWithStatuses(nil)

	view := GetEmployeeView(task, "emp-1")
	if view.Status != models.StatusPending {
		t.Fatalf("expected pending, got %q", view.Status)
	}
	if view.Description != "" {
		t.Fatalf("expected empty description, got %q", view.Description)
	}
	if view.IsCompleted {
		t.Fatal("absent record must not be completed")
	}
}

func TestGetEmployeeView_ReturnsSubmittedRecord(t *testing.T) {
	task := taskWithStatuses(map[string]models.StatusRecord{
		"emp-1": {Status: models.StatusCompleted, Description: "done"},
	})

	view := GetEmployeeView(task, "emp-1")
	if !view.IsCompleted {
		t.Fatal("expected completed view")
	}
	if view.Description != "done" {
		t.Fatalf("expected submitted description, got %q", view.Description)
	}
}

func TestMergeEmployeeStatus_DoesNotMutateInput(t *testing.T) {
	task := taskWithStatuses(map[string]models.StatusRecord{
		"emp-1": {Status: models.StatusPending, Description: "started"},
	})

	_, err := MergeEmployeeStatus(task, "emp-2", models.StatusCompleted, "done")
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if len(task.EmployeeStatuses) != 1 {
		t.Fatalf("input map was mutated: %v", task.EmployeeStatuses)
	}
}

func TestMergeEmployeeStatus_Idempotent(t *testing.T) {
	task := taskWithStatuses(map[string]models.StatusRecord{
		"emp-1": {Status: models.StatusPending, Description: ""},
	})

	first, err := MergeEmployeeStatus(task, "emp-2", models.StatusNotCompleted, "blocked")
	if err != nil {
		t.Fatalf("first merge failed: %v", err)
	}
	task.EmployeeStatuses = first

	second, err := MergeEmployeeStatus(task, "emp-2", models.StatusNotCompleted, "blocked")
	if err != nil {
		t.Fatalf("second merge failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("merge is not idempotent: %v vs %v", first, second)
	}
}

func TestMergeEmployeeStatus_DistinctKeysCommute(t *testing.T) {
	base := taskWithStatuses(map[string]models.StatusRecord{})

	// emp-1 then emp-2
	ab := base
	m, err := MergeEmployeeStatus(ab, "emp-1", models.StatusCompleted, "a done")
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	ab.EmployeeStatuses = m
	m, err = MergeEmployeeStatus(ab, "emp-2", models.StatusNotCompleted, "b stuck")
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	ab.EmployeeStatuses = m

	// emp-2 then emp-1
	ba := base
	m, err = MergeEmployeeStatus(ba, "emp-2", models.StatusNotCompleted, "b stuck")
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	ba.EmployeeStatuses = m
	m, err = MergeEmployeeStatus(ba, "emp-1", models.StatusCompleted, "a done")
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	ba.EmployeeStatuses = m

	if !reflect.DeepEqual(ab.EmployeeStatuses, ba.EmployeeStatuses) {
		t.Fatalf("merges by distinct employees do not commute: %v vs %v", ab.EmployeeStatuses, ba.EmployeeStatuses)
	}
	if len(ab.EmployeeStatuses) != 2 {
		t.Fatalf("expected both updates present, got %v", ab.EmployeeStatuses)
	}
}

func TestMergeEmployeeStatus_RejectsInvalidStatus(t *testing.T) {
	task := taskWithStatuses(nil)

	if _, err := MergeEmployeeStatus(task, "emp-1", "almost done", "x"); err == nil {
		t.Fatal("expected error for status outside the closed set")
	}
	if _, err := MergeEmployeeStatus(task, "", models.StatusPending, ""); err == nil {
		t.Fatal("expected error for empty employee id")
	}
}

func TestComputeTaskAggregate_Empty(t *testing.T) {
	agg := ComputeTaskAggregate(taskWithStatuses(map[string]models.StatusRecord{}))

	want := TaskAggregate{TotalReported: 0, CompletedCount: 0, CompletionRatio: 0, IsFullyComplete: false}
	if agg != want {
		t.Fatalf("expected zero aggregate, got %+v", agg)
	}
}

func TestComputeTaskAggregate_Counts(t *testing.T) {
	task := taskWithStatuses(map[string]models.StatusRecord{
		"emp-1": {Status: models.StatusCompleted},
		"emp-2": {Status: models.StatusPending},
		"emp-3": {Status: models.StatusNotCompleted},
		"emp-4": {Status: models.StatusCompleted},
	})

	agg := ComputeTaskAggregate(task)
	if agg.TotalReported != 4 || agg.CompletedCount != 2 {
		t.Fatalf("unexpected counts: %+v", agg)
	}
	if agg.CompletedCount > agg.TotalReported {
		t.Fatalf("completed exceeds total: %+v", agg)
	}
	if agg.CompletionRatio != 0.5 {
		t.Fatalf("expected ratio 0.5, got %v", agg.CompletionRatio)
	}
	if agg.IsFullyComplete {
		t.Fatal("task is not fully complete")
	}
}

func TestComputeTaskAggregate_FullyComplete(t *testing.T) {
	task := taskWithStatuses(map[string]models.StatusRecord{
		"emp-1": {Status: models.StatusCompleted},
		"emp-2": {Status: models.StatusCompleted},
	})

	agg := ComputeTaskAggregate(task)
	if !agg.IsFullyComplete || agg.CompletionRatio != 1 {
		t.Fatalf("expected fully complete aggregate, got %+v", agg)
	}
}

func TestProjectManagerView_ResolvesDirectory(t *testing.T) {
	task := taskWithStatuses(map[string]models.StatusRecord{
		"emp-2": {Status: models.StatusPending, Description: "on it"},
		"emp-1": {Status: models.StatusCompleted, Description: "shipped"},
	})
	directory := map[string]models.User{
		"emp-1": {Name: "Ana", Email: "ana@example.com"},
	}

	entries := ProjectManagerView(task, directory)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	// deterministic order by employee id
	if entries[0].EmployeeID != "emp-1" || entries[1].EmployeeID != "emp-2" {
		t.Fatalf("entries not ordered by employee id: %+v", entries)
	}
	if entries[0].Name != "Ana" || entries[0].Email != "ana@example.com" {
		t.Fatalf("directory resolution failed: %+v", entries[0])
	}
	if entries[1].Name != UnknownEmployeeName {
		t.Fatalf("expected sentinel for unresolved id, got %q", entries[1].Name)
	}
	if entries[1].Description != "on it" {
		t.Fatalf("description lost in projection: %+v", entries[1])
	}
}
