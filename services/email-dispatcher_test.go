package services

import (
	"fmt"
	"testing"

	"taskflow-project/backend/models"
)

func TestEmailDispatcher_CountsSentAndFailed(t *testing.T) {
	dispatcher := &EmailDispatcher{
		send: func(to, subject, body string) error {
			if to == "broken@example.com" {
				return fmt.Errorf("relay rejected recipient")
			}
			return nil
		},
	}

	summary := TaskSummary{Title: "audit", Priority: models.PriorityHigh}
	result := dispatcher.Notify([]string{"a@example.com", "broken@example.com", "b@example.com"}, summary)

	if result.SentCount != 2 {
		t.Fatalf("expected 2 sent, got %d", result.SentCount)
	}
	if len(result.FailedRecipients) != 1 || result.FailedRecipients[0] != "broken@example.com" {
		t.Fatalf("unexpected failed recipients: %v", result.FailedRecipients)
	}
}

func TestEmailDispatcher_SkipsBlankRecipients(t *testing.T) {
	calls := 0
	dispatcher := &EmailDispatcher{
		send: func(to, subject, body string) error {
			calls++
			return nil
		},
	}

	result := dispatcher.Notify([]string{"", "  ", "x@example.com"}, TaskSummary{Title: "t"})
	if calls != 1 || result.SentCount != 1 {
		t.Fatalf("expected exactly one delivery, got calls=%d sent=%d", calls, result.SentCount)
	}
	if len(result.FailedRecipients) != 0 {
		t.Fatalf("blank recipients must not be counted as failures: %v", result.FailedRecipients)
	}
}
