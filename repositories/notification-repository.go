package repositories

import (
	"fmt"
	"os"
	"time"

	"taskflow-project/backend/models"

	"github.com/gocql/gocql"
	"github.com/sirupsen/logrus"
)

type NotificationRepo struct {
	session *gocql.Session
	logger  *logrus.Logger
}

// NewNotificationRepo connects to Cassandra and bootstraps the notifications
// keyspace.
func NewNotificationRepo(logger *logrus.Logger) (*NotificationRepo, error) {
	db := os.Getenv("CASS_DB")
	if db == "" {
		db = "127.0.0.1"
	}

	cluster := gocql.NewCluster(db)
	cluster.Keyspace = "system"
	session, err := cluster.CreateSession()
	if err != nil {
		logger.Errorf("Event ID: CASS_CONNECT_FAILED, Description: %v", err)
		return nil, err
	}

	err = session.Query(
		`CREATE KEYSPACE IF NOT EXISTS notifications
         WITH replication = {
             'class': 'SimpleStrategy',
             'replication_factor': 1
         }`).Exec()
	if err != nil {
		logger.Errorf("Event ID: CASS_KEYSPACE_FAILED, Description: %v", err)
		return nil, err
	}
	session.Close()

	cluster.Keyspace = "notifications"
	cluster.Consistency = gocql.One
	session, err = cluster.CreateSession()
	if err != nil {
		logger.Errorf("Event ID: CASS_KEYSPACE_CONNECT_FAILED, Description: %v", err)
		return nil, err
	}

	logger.Info("Event ID: CASS_CONNECTED, Description: Connected to Cassandra notifications keyspace")
	return &NotificationRepo{
		session: session,
		logger:  logger,
	}, nil
}

func (nr *NotificationRepo) CloseSession() {
	nr.session.Close()
	nr.logger.Info("Event ID: CASS_SESSION_CLOSED, Description: Cassandra session closed")
}

// CreateTable creates the feed table, newest entries first per recipient.
func (nr *NotificationRepo) CreateTable() {
	err := nr.session.Query(
		`CREATE TABLE IF NOT EXISTS notifications (
			id UUID,
			recipient TEXT,
			message TEXT,
			created_at TIMESTAMP,
			is_read BOOLEAN,
			PRIMARY KEY ((recipient), created_at, id)
		) WITH CLUSTERING ORDER BY (created_at DESC, id ASC)`).Exec()
	if err != nil {
		nr.logger.Errorf("Event ID: CASS_TABLE_FAILED, Description: %v", err)
	}
}

func (nr *NotificationRepo) CreateNotification(notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = gocql.TimeUUID().String()
	}

	err := nr.session.Query(
		`INSERT INTO notifications (id, recipient, message, created_at, is_read)
		 VALUES (?, ?, ?, ?, ?)`,
		notification.ID, notification.Recipient, notification.Message, notification.CreatedAt, notification.IsRead,
	).Exec()
	if err != nil {
		return fmt.Errorf("failed to create notification: %v", err)
	}
	return nil
}

func (nr *NotificationRepo) GetNotificationsByRecipient(recipient string) ([]models.Notification, error) {
	query := `SELECT id, recipient, message, created_at, is_read
			  FROM notifications WHERE recipient = ?`

	iter := nr.session.Query(query, recipient).Iter()
	var notifications []models.Notification
	var notification models.Notification

	for iter.Scan(&notification.ID, &notification.Recipient,
		&notification.Message, &notification.CreatedAt, &notification.IsRead) {
		notifications = append(notifications, notification)
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %v", err)
	}

	return notifications, nil
}

func (nr *NotificationRepo) MarkNotificationAsRead(recipient, notificationID, createdAt string) error {
	uuid, err := gocql.ParseUUID(notificationID)
	if err != nil {
		return fmt.Errorf("invalid UUID format: %v", err)
	}

	parsedCreatedAt, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return fmt.Errorf("invalid created_at format: %v", err)
	}

	query := `UPDATE notifications SET is_read = true WHERE recipient = ? AND id = ? AND created_at = ?`
	if err := nr.session.Query(query, recipient, uuid, parsedCreatedAt).Exec(); err != nil {
		return fmt.Errorf("failed to mark notification as read: %v", err)
	}
	return nil
}

func (nr *NotificationRepo) DeleteNotification(recipient, notificationID, createdAt string) error {
	uuid, err := gocql.ParseUUID(notificationID)
	if err != nil {
		return fmt.Errorf("invalid UUID format: %v", err)
	}

	parsedCreatedAt, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return fmt.Errorf("invalid created_at format: %v", err)
	}

	query := `DELETE FROM notifications WHERE recipient = ? AND id = ? AND created_at = ?`
	if err := nr.session.Query(query, recipient, uuid, parsedCreatedAt).Exec(); err != nil {
		return fmt.Errorf("failed to delete notification: %v", err)
	}
	return nil
}
