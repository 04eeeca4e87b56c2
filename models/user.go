package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	Email              string             `bson:"email" json:"email"`
	Password           string             `bson:"password" json:"password,omitempty"`
	Role               string             `bson:"role" json:"role"`
	Department         string             `bson:"department" json:"department"`
	Manager            string             `bson:"manager" json:"manager"`
	IsActive           bool               `bson:"isActive" json:"isActive"`
	VerificationCode   string             `bson:"verificationCode" json:"-"`
	VerificationExpiry time.Time          `bson:"verificationExpiry" json:"-"`
}
