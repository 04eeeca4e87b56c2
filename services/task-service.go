package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskflow-project/backend/aggregation"
	"taskflow-project/backend/logging"
	"taskflow-project/backend/models"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrNotAssignee  = errors.New("employee is not assigned to this task")
	ErrNotCreator   = errors.New("task belongs to another manager")
	// ErrStatusFinal guards the terminal state: once an employee reports
	// completed, that record cannot be edited again.
	ErrStatusFinal = errors.New("status is already completed and cannot be changed")
)

type TaskService struct {
	tasksCollection      *mongo.Collection
	usersCollection      *mongo.Collection
	dispatcher           *EmailDispatcher
	notifications        *NotificationService
	notificationsBreaker *gobreaker.CircuitBreaker
}

func NewTaskService(
	tasksCollection *mongo.Collection,
	usersCollection *mongo.Collection,
	dispatcher *EmailDispatcher,
	notifications *NotificationService,
	notificationsBreaker *gobreaker.CircuitBreaker,
) *TaskService {
	return &TaskService{
		tasksCollection:      tasksCollection,
		usersCollection:      usersCollection,
		dispatcher:           dispatcher,
		notifications:        notifications,
		notificationsBreaker: notificationsBreaker,
	}
}

type CreateTaskInput struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Deadline       string   `json:"deadline"`
	Priority       string   `json:"priority"`
	AssignedTo     []string `json:"assignedTo"`
	CreatedBy      string   `json:"-"`
	CreatedByEmail string   `json:"-"`
}

func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (*models.Task, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if in.Description == "" {
		return nil, fmt.Errorf("description is required")
	}
	if len(in.AssignedTo) == 0 {
		return nil, fmt.Errorf("at least one assignee is required")
	}
	if in.Priority == "" {
		in.Priority = string(models.PriorityMedium)
	}
	priority, err := models.ParseTaskPriority(in.Priority)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task := &models.Task{
		ID:               primitive.NewObjectID(),
		Title:            in.Title,
		Description:      in.Description,
		Deadline:         in.Deadline,
		Priority:         priority,
		AssignedTo:       in.AssignedTo,
		EmployeeStatuses: map[string]models.StatusRecord{},
		CreatedBy:        in.CreatedBy,
		CreatedByEmail:   in.CreatedByEmail,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	result, err := s.tasksCollection.InsertOne(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %v", err)
	}
	task.ID = result.InsertedID.(primitive.ObjectID)

	// Post-commit hook: notification delivery is best effort and must never
	// affect the already persisted task.
	go s.notifyAssignees(*task)

	return task, nil
}

func (s *TaskService) GetAllTasks(ctx context.Context) ([]*models.Task, error) {
	return s.findTasks(ctx, bson.M{})
}

func (s *TaskService) GetTasksAssignedTo(ctx context.Context, employeeID string) ([]*models.Task, error) {
	return s.findTasks(ctx, bson.M{"assignedTo": employeeID})
}

func (s *TaskService) findTasks(ctx context.Context, filter bson.M) ([]*models.Task, error) {
	cursor, err := s.tasksCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	tasks := []*models.Task{}
	for cursor.Next(ctx) {
		var task models.Task
		if err := cursor.Decode(&task); err != nil {
			return nil, fmt.Errorf("failed to decode task: %v", err)
		}
		tasks = append(tasks, &task)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return tasks, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, taskID primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := s.tasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to fetch task: %v", err)
	}
	return &task, nil
}

// SubmitEmployeeStatus merges the employee's own status record into the task.
// The write is a keyed partial merge on employeeStatuses.<employeeID>, so
// concurrent submissions by different employees on the same task never
// overwrite each other's keys.
func (s *TaskService) SubmitEmployeeStatus(ctx context.Context, taskID primitive.ObjectID, employeeID string, status models.TaskStatus, description string) (*models.Task, error) {
	task, err := s.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !task.IsAssignee(employeeID) {
		return nil, ErrNotAssignee
	}
	if aggregation.GetEmployeeView(*task, employeeID).IsCompleted {
		return nil, ErrStatusFinal
	}

	merged, err := aggregation.MergeEmployeeStatus(*task, employeeID, status, description)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"employeeStatuses." + employeeID: merged[employeeID],
		"updatedAt":                      now,
	}}
	result, err := s.tasksCollection.UpdateOne(ctx, bson.M{"_id": taskID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update task status: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrTaskNotFound
	}

	task.EmployeeStatuses = merged
	task.UpdatedAt = now
	return task, nil
}

type TaskMetadataUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
	Priority    *string `json:"priority"`
}

func (s *TaskService) UpdateTaskMetadata(ctx context.Context, taskID primitive.ObjectID, managerID string, fields TaskMetadataUpdate) (*models.Task, error) {
	task, err := s.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.CreatedBy != managerID {
		return nil, ErrNotCreator
	}

	set := bson.M{"updatedAt": time.Now()}
	if fields.Title != nil {
		if *fields.Title == "" {
			return nil, fmt.Errorf("title cannot be empty")
		}
		set["title"] = *fields.Title
	}
	if fields.Description != nil {
		if *fields.Description == "" {
			return nil, fmt.Errorf("description cannot be empty")
		}
		set["description"] = *fields.Description
	}
	if fields.Deadline != nil {
		set["deadline"] = *fields.Deadline
	}
	if fields.Priority != nil {
		priority, err := models.ParseTaskPriority(*fields.Priority)
		if err != nil {
			return nil, err
		}
		set["priority"] = priority
	}

	result, err := s.tasksCollection.UpdateOne(ctx, bson.M{"_id": taskID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrTaskNotFound
	}

	return s.GetTaskByID(ctx, taskID)
}

// DeleteTask removes the task document and every embedded status record with
// it in a single document delete.
func (s *TaskService) DeleteTask(ctx context.Context, taskID primitive.ObjectID, managerID string) error {
	task, err := s.GetTaskByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.CreatedBy != managerID {
		return ErrNotCreator
	}

	result, err := s.tasksCollection.DeleteOne(ctx, bson.M{"_id": taskID})
	if err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}
	if result.DeletedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}

type TaskReport struct {
	Task      *models.Task              `json:"task"`
	Entries   []aggregation.StatusEntry `json:"entries"`
	Aggregate aggregation.TaskAggregate `json:"aggregate"`
}

// ManagerReport projects the task's status map against the employee
// directory and attaches the completion aggregate.
func (s *TaskService) ManagerReport(ctx context.Context, taskID primitive.ObjectID) (*TaskReport, error) {
	task, err := s.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	directory, err := s.employeeDirectory(ctx)
	if err != nil {
		return nil, err
	}

	return &TaskReport{
		Task:      task,
		Entries:   aggregation.ProjectManagerView(*task, directory),
		Aggregate: aggregation.ComputeTaskAggregate(*task),
	}, nil
}

func (s *TaskService) employeeDirectory(ctx context.Context) (map[string]models.User, error) {
	cursor, err := s.usersCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee directory: %v", err)
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

// notifyAssignees runs after a successful task insert. It resolves assignee
// addresses, sends the assignment emails and writes feed entries. Failures
// are logged as a partial-success summary and never surfaced to the creator.
func (s *TaskService) notifyAssignees(task models.Task) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	directory, err := s.employeeDirectory(ctx)
	if err != nil {
		logging.Logger.Errorf("Event ID: NOTIFY_DIRECTORY_FAILED, Description: Could not resolve assignees for task %s: %v", task.ID.Hex(), err)
		return
	}

	recipients := []string{}
	for _, id := range task.AssignedTo {
		if profile, ok := directory[id]; ok && profile.Email != "" {
			recipients = append(recipients, profile.Email)
		}
	}
	if len(recipients) == 0 {
		logging.Logger.Warnf("Event ID: NOTIFY_NO_RECIPIENTS, Description: No resolvable recipients for task %s", task.ID.Hex())
		return
	}

	summary := TaskSummary{
		Title:       task.Title,
		Description: task.Description,
		Deadline:    task.Deadline,
		Priority:    task.Priority,
	}

	_, err = s.notificationsBreaker.Execute(func() (interface{}, error) {
		result := s.dispatcher.Notify(recipients, summary)
		if len(result.FailedRecipients) > 0 {
			logging.Logger.Warnf("Event ID: NOTIFY_PARTIAL_FAILURE, Description: Task %s assignment emails: sent %d, failed %v", task.ID.Hex(), result.SentCount, result.FailedRecipients)
		} else {
			logging.Logger.Infof("Event ID: NOTIFY_SENT, Description: Task %s assignment emails sent to %d recipients", task.ID.Hex(), result.SentCount)
		}

		if s.notifications != nil {
			message := fmt.Sprintf("New task assigned: %s (deadline %s)", task.Title, task.Deadline)
			for _, recipient := range recipients {
				if err := s.notifications.CreateNotification(recipient, message); err != nil {
					logging.Logger.Warnf("Event ID: FEED_WRITE_FAILED, Description: Feed entry for %s on task %s: %v", recipient, task.ID.Hex(), err)
				}
			}
		}
		return nil, nil
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: NOTIFY_BREAKER_OPEN, Description: Notification dispatch skipped for task %s: %v", task.ID.Hex(), err)
	}
}
