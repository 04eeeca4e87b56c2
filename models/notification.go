package models

import "time"

type Notification struct {
	ID        string    `cassandra:"id" json:"id"`
	Recipient string    `cassandra:"recipient" json:"recipient"`
	Message   string    `cassandra:"message" json:"message"`
	CreatedAt time.Time `cassandra:"created_at" json:"createdAt"`
	IsRead    bool      `cassandra:"is_read" json:"isRead"`
}
