package services

import (
	"fmt"
	"time"

	"taskflow-project/backend/models"
	"taskflow-project/backend/repositories"
)

type NotificationService struct {
	repo *repositories.NotificationRepo
}

func NewNotificationService(repo *repositories.NotificationRepo) *NotificationService {
	return &NotificationService{
		repo: repo,
	}
}

func (ns *NotificationService) CreateNotification(recipient, message string) error {
	if recipient == "" || message == "" {
		return fmt.Errorf("recipient and message are required")
	}
	notification := models.Notification{
		Recipient: recipient,
		Message:   message,
		CreatedAt: time.Now(),
		IsRead:    false,
	}
	return ns.repo.CreateNotification(&notification)
}

func (ns *NotificationService) GetNotificationsByRecipient(recipient string) ([]models.Notification, error) {
	return ns.repo.GetNotificationsByRecipient(recipient)
}

func (ns *NotificationService) MarkNotificationAsRead(recipient, notificationID, createdAt string) error {
	if recipient == "" || notificationID == "" || createdAt == "" {
		return fmt.Errorf("recipient, notificationID, and createdAt are required")
	}
	return ns.repo.MarkNotificationAsRead(recipient, notificationID, createdAt)
}

func (ns *NotificationService) DeleteNotification(recipient, notificationID, createdAt string) error {
	return ns.repo.DeleteNotification(recipient, notificationID, createdAt)
}
