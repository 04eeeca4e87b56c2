package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"taskflow-project/backend/logging"
	"taskflow-project/backend/models"
	"taskflow-project/backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/rand"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type UserService struct {
	UserCollection *mongo.Collection
	BlackList      map[string]bool
}

func NewUserService(userCollection *mongo.Collection, blackList map[string]bool) *UserService {
	return &UserService{
		UserCollection: userCollection,
		BlackList:      blackList,
	}
}

type RegisterInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Manager    string `json:"manager"`
}

// RegisterUser stores the account inactive and emails a verification code.
func (s *UserService) RegisterUser(ctx context.Context, in RegisterInput) error {
	if in.Name == "" || in.Email == "" {
		return fmt.Errorf("name and email are required")
	}
	if in.Role != models.RoleEmployee && in.Role != models.RoleManager {
		return fmt.Errorf("role must be %q or %q", models.RoleEmployee, models.RoleManager)
	}
	if in.Role == models.RoleEmployee && in.Manager == "" {
		return fmt.Errorf("manager is required for employees")
	}

	var existingUser models.User
	if err := s.UserCollection.FindOne(ctx, bson.M{"email": in.Email}).Decode(&existingUser); err == nil {
		return fmt.Errorf("user with email already exists")
	}

	if err := s.ValidatePassword(in.Password); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	verificationCode := fmt.Sprintf("%06d", rand.Intn(1000000))

	user := models.User{
		Name:               html.EscapeString(in.Name),
		Email:              html.EscapeString(in.Email),
		Password:           string(hashedPassword),
		Role:               in.Role,
		Department:         html.EscapeString(in.Department),
		Manager:            html.EscapeString(in.Manager),
		IsActive:           false,
		VerificationCode:   verificationCode,
		VerificationExpiry: time.Now().Add(15 * time.Minute),
	}

	if _, err := s.UserCollection.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %v", err)
	}

	subject := "Your Verification Code"
	body := fmt.Sprintf("Your verification code is %s. Please enter it within 15 minutes.", verificationCode)
	if err := utils.SendEmail(user.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	logging.Logger.Infof("Event ID: VERIFICATION_CODE_SENT, Description: Verification code sent to %s", user.Email)
	return nil
}

// VerifyUser activates the account when the code matches within its window.
func (s *UserService) VerifyUser(ctx context.Context, email, code string) error {
	var user models.User
	if err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return fmt.Errorf("user not found")
	}
	if user.IsActive {
		return nil
	}
	if user.VerificationCode != code {
		return fmt.Errorf("verification code does not match")
	}
	if time.Now().After(user.VerificationExpiry) {
		return fmt.Errorf("verification code has expired")
	}

	update := bson.M{"$set": bson.M{"isActive": true}}
	if _, err := s.UserCollection.UpdateOne(ctx, bson.M{"email": email}, update); err != nil {
		return fmt.Errorf("failed to activate user: %v", err)
	}
	return nil
}

func (s *UserService) LoginUser(ctx context.Context, email, password string) (models.User, string, error) {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return models.User{}, "", errors.New("user not active")
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to generate token: %v", err)
	}

	user.Password = ""
	return user, token, nil
}

// ForgotPassword replaces the password with a random one and emails it.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	var user models.User
	if err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return fmt.Errorf("user not found")
	}

	newPassword := utils.GenerateRandomPassword()
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	update := bson.M{"$set": bson.M{"password": string(hashed)}}
	if _, err := s.UserCollection.UpdateOne(ctx, bson.M{"email": email}, update); err != nil {
		return fmt.Errorf("failed to update password: %v", err)
	}

	subject := "Your new password"
	body := fmt.Sprintf("Your new password is: %s", newPassword)
	if err := utils.SendEmail(email, subject, body); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

type EmployeeFilter struct {
	Role       string
	Manager    string
	Department string
}

// ListEmployees returns the directory keyed by user id, passwords stripped.
func (s *UserService) ListEmployees(ctx context.Context, filter EmployeeFilter) (map[string]models.User, error) {
	query := bson.M{}
	if filter.Role != "" {
		query["role"] = filter.Role
	}
	if filter.Manager != "" {
		query["manager"] = filter.Manager
	}
	if filter.Department != "" {
		query["department"] = filter.Department
	}

	cursor, err := s.UserCollection.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %v", err)
	}
	defer cursor.Close(ctx)

	directory := map[string]models.User{}
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %v", err)
		}
		user.Password = ""
		directory[user.ID.Hex()] = user
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return directory, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, fmt.Errorf("invalid user ID format")
	}

	var user models.User
	if err := s.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return models.User{}, fmt.Errorf("user not found")
	}

	user.Password = ""
	return user, nil
}

// DeleteExpiredUnverifiedUsers removes accounts whose verification window
// lapsed without activation.
func (s *UserService) DeleteExpiredUnverifiedUsers(ctx context.Context) {
	filter := bson.M{
		"isActive":           false,
		"verificationExpiry": bson.M{"$lt": time.Now()},
	}

	result, err := s.UserCollection.DeleteMany(ctx, filter)
	if err != nil {
		logging.Logger.Errorf("Event ID: EXPIRED_USERS_SWEEP_FAILED, Description: %v", err)
		return
	}
	if result.DeletedCount > 0 {
		logging.Logger.Infof("Event ID: EXPIRED_USERS_SWEPT, Description: Removed %d unverified accounts", result.DeletedCount)
	}
}

// ValidatePassword applies the registration password policy.
func (s *UserService) ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	hasUppercase := false
	for _, char := range password {
		if char >= 'A' && char <= 'Z' {
			hasUppercase = true
			break
		}
	}
	if !hasUppercase {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}

	hasDigit := false
	for _, char := range password {
		if char >= '0' && char <= '9' {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one number")
	}

	specialChars := "!@#$%^&*.,"
	hasSpecial := false
	for _, char := range password {
		if strings.ContainsRune(specialChars, char) {
			hasSpecial = true
			break
		}
	}
	if !hasSpecial {
		return fmt.Errorf("password must contain at least one special character")
	}

	if s.BlackList[password] {
		return fmt.Errorf("password is too common. Please choose a stronger one")
	}

	return nil
}
