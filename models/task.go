package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusPending      TaskStatus = "pending"
	StatusCompleted    TaskStatus = "completed"
	StatusNotCompleted TaskStatus = "not completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// ParseTaskStatus validates a raw status string against the closed set.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	switch TaskStatus(raw) {
	case StatusPending, StatusCompleted, StatusNotCompleted:
		return TaskStatus(raw), nil
	}
	return "", fmt.Errorf("invalid status: %q", raw)
}

// ParseTaskPriority validates a raw priority string against the closed set.
func ParseTaskPriority(raw string) (TaskPriority, error) {
	switch TaskPriority(raw) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return TaskPriority(raw), nil
	}
	return "", fmt.Errorf("invalid priority: %q", raw)
}

// StatusRecord is one employee's self-reported state on a task. It lives only
// inside a task's employeeStatuses map and has no identity of its own.
type StatusRecord struct {
	Status      TaskStatus `bson:"status" json:"status"`
	Description string     `bson:"description" json:"description"`
}

type Task struct {
	ID               primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	Title            string                  `bson:"title" json:"title"`
	Description      string                  `bson:"description" json:"description"`
	Deadline         string                  `bson:"deadline" json:"deadline"`
	Priority         TaskPriority            `bson:"priority" json:"priority"`
	AssignedTo       []string                `bson:"assignedTo" json:"assignedTo"`
	EmployeeStatuses map[string]StatusRecord `bson:"employeeStatuses" json:"employeeStatuses"`
	CreatedBy        string                  `bson:"createdBy" json:"createdBy"`
	CreatedByEmail   string                  `bson:"createdByEmail" json:"createdByEmail"`
	CreatedAt        time.Time               `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time               `bson:"updatedAt" json:"updatedAt"`
}

// IsAssignee reports whether the employee is on the task's fixed roster.
func (t Task) IsAssignee(employeeID string) bool {
	for _, id := range t.AssignedTo {
		if id == employeeID {
			return true
		}
	}
	return false
}
