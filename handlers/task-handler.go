package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"taskflow-project/backend/aggregation"
	"taskflow-project/backend/logging"
	"taskflow-project/backend/middleware"
	"taskflow-project/backend/models"
	"taskflow-project/backend/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}

	var in services.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	in.CreatedBy = claims.UserID
	in.CreatedByEmail = claims.Email

	createdTask, err := h.service.CreateTask(r.Context(), in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %s created by %s with %d assignees", createdTask.ID.Hex(), claims.Email, len(createdTask.AssignedTo))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(createdTask)
}

func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.GetAllTasks(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeSortedTasks(w, r, tasks)
}

// GetAssignedTasks lists the caller's own tasks with the caller's view of
// each attached.
func (h *TaskHandler) GetAssignedTasks(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}

	tasks, err := h.service.GetTasksAssignedTo(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeSortedTasks(w, r, tasks)
}

// writeSortedTasks applies the optional sortBy query parameter before
// encoding. Priority order follows the literal comparator unless
// priorityOrder=rank is requested.
func (h *TaskHandler) writeSortedTasks(w http.ResponseWriter, r *http.Request, tasks []*models.Task) {
	viewerID := ""
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		viewerID = claims.UserID
	}

	if sortBy := r.URL.Query().Get("sortBy"); sortBy != "" {
		opts := aggregation.SortOptions{}
		if r.URL.Query().Get("priorityOrder") == "rank" {
			opts.PriorityOrder = aggregation.PriorityOrderRank
		}

		flat := make([]models.Task, len(tasks))
		for i, task := range tasks {
			flat[i] = *task
		}
		sorted := aggregation.SortTasks(flat, aggregation.SortKey(sortBy), viewerID, opts)
		for i := range sorted {
			tasks[i] = &sorted[i]
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	taskID, err := taskIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid task ID format", http.StatusBadRequest)
		return
	}

	task, err := h.service.GetTaskByID(r.Context(), taskID)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

// SubmitStatus merges the caller's own status record into a task. The acting
// employee id always comes from the session claims, never from the payload,
// so a session can only ever write its own key.
func (h *TaskHandler) SubmitStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}

	var request struct {
		TaskID      string `json:"taskId"`
		Status      string `json:"status"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	taskObjectID, err := primitive.ObjectIDFromHex(request.TaskID)
	if err != nil {
		http.Error(w, "Invalid task ID format", http.StatusBadRequest)
		return
	}

	status, err := models.ParseTaskStatus(request.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updatedTask, err := h.service.SubmitEmployeeStatus(r.Context(), taskObjectID, claims.UserID, status, request.Description)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updatedTask)
}

func (h *TaskHandler) UpdateTaskMetadata(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid task ID format", http.StatusBadRequest)
		return
	}

	var fields services.TaskMetadataUpdate
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.service.UpdateTaskMetadata(r.Context(), taskID, claims.UserID, fields)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid task ID format", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteTask(r.Context(), taskID, claims.UserID); err != nil {
		writeTaskError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task %s deleted by %s", taskID.Hex(), claims.Email)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Task deleted successfully"}`))
}

func (h *TaskHandler) GetManagerReport(w http.ResponseWriter, r *http.Request) {
	taskID, err := taskIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid task ID format", http.StatusBadRequest)
		return
	}

	report, err := h.service.ManagerReport(r.Context(), taskID)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func taskIDFromRequest(r *http.Request) (primitive.ObjectID, error) {
	vars := mux.Vars(r)
	return primitive.ObjectIDFromHex(vars["taskID"])
}

func writeTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrNotAssignee), errors.Is(err, services.ErrNotCreator):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, services.ErrStatusFinal):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
