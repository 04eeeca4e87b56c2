package models

import "testing"

func TestParseTaskStatus(t *testing.T) {
	for _, valid := range []string{"pending", "completed", "not completed"} {
		status, err := ParseTaskStatus(valid)
		if err != nil {
			t.Fatalf("expected %q to parse, got error: %v", valid, err)
		}
		if string(status) != valid {
			t.Fatalf("expected %q, got %q", valid, status)
		}
	}

	for _, invalid := range []string{"", "done", "Completed", "not_completed", "in progress"} {
		if _, err := ParseTaskStatus(invalid); err == nil {
			t.Fatalf("expected %q to be rejected", invalid)
		}
	}
}

func TestParseTaskPriority(t *testing.T) {
	for _, valid := range []string{"low", "medium", "high"} {
		priority, err := ParseTaskPriority(valid)
		if err != nil {
			t.Fatalf("expected %q to parse, got error: %v", valid, err)
		}
		if string(priority) != valid {
			t.Fatalf("expected %q, got %q", valid, priority)
		}
	}

	for _, invalid := range []string{"", "urgent", "High", "critical"} {
		if _, err := ParseTaskPriority(invalid); err == nil {
			t.Fatalf("expected %q to be rejected", invalid)
		}
	}
}

func TestIsAssignee(t *testing.T) {
	task := Task{AssignedTo: []string{"emp-1", "emp-2"}}

	if !task.IsAssignee("emp-1") {
		t.Fatal("expected emp-1 to be an assignee")
	}
	if task.IsAssignee("emp-3") {
		t.Fatal("expected emp-3 not to be an assignee")
	}
	if task.IsAssignee("") {
		t.Fatal("empty id must never match")
	}
}
