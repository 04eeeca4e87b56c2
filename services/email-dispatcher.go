package services

import (
	"fmt"
	"strings"

	"taskflow-project/backend/models"
	"taskflow-project/backend/utils"
)

type TaskSummary struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Deadline    string              `json:"deadline"`
	Priority    models.TaskPriority `json:"priority"`
}

type DispatchResult struct {
	SentCount        int      `json:"sentCount"`
	FailedRecipients []string `json:"failedRecipients"`
}

// EmailDispatcher fans a task summary out to a list of recipients, one
// message each, best effort. A failed recipient never aborts the rest.
type EmailDispatcher struct {
	send func(to, subject, body string) error
}

func NewEmailDispatcher() *EmailDispatcher {
	return &EmailDispatcher{send: utils.SendEmail}
}

func (d *EmailDispatcher) Notify(recipients []string, summary TaskSummary) DispatchResult {
	body := fmt.Sprintf(
		"New Task Assigned:<br>Title: %s<br>Description: %s<br>Deadline: %s<br>Priority: %s",
		summary.Title, summary.Description, summary.Deadline, summary.Priority,
	)

	result := DispatchResult{FailedRecipients: []string{}}
	for _, recipient := range recipients {
		recipient = strings.TrimSpace(recipient)
		if recipient == "" {
			continue
		}
		if err := d.send(recipient, "New Task Assigned", body); err != nil {
			result.FailedRecipients = append(result.FailedRecipients, recipient)
			continue
		}
		result.SentCount++
	}
	return result
}
