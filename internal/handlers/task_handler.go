package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Varun5711/taskboard/internal/apperror"
	"github.com/Varun5711/taskboard/internal/logger"
	"github.com/Varun5711/taskboard/internal/middleware"
	"github.com/Varun5711/taskboard/internal/models"
	"github.com/Varun5711/taskboard/internal/service"
	"github.com/Varun5711/taskboard/internal/validation"
	"github.com/go-chi/chi/v5"
)

const (
	defaultPage  = 1
	defaultLimit = 100
	maxLimit     = 100
)

type TaskHandler struct {
	taskService *service.TaskService
	log         *logger.Logger
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         logger.New("task-handler"),
	}
}

type createTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Category    []string `json:"category"`
	DueDate     string   `json:"dueDate"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.log, w, apperror.NewValidation("Invalid request body"))
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		t, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			respondError(h.log, w, apperror.NewValidation("dueDate must be an RFC3339 timestamp"))
			return
		}
		dueDate = &t
	}

	task, err := h.taskService.CreateTask(r.Context(), middleware.GetUserID(r.Context()), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     dueDate,
	})
	if err != nil {
		respondError(h.log, w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Task created successfully", map[string]interface{}{
		"task": task,
	})
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTaskFilter(r)
	if err != nil {
		respondError(h.log, w, err)
		return
	}

	page, err := h.taskService.ListTasks(r.Context(), filter)
	if err != nil {
		respondError(h.log, w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Tasks fetched successfully", page)
}

func (h *TaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskService.GetTaskByID(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(h.log, w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Task fetched successfully", map[string]interface{}{
		"task": task,
	})
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(h.log, w, apperror.NewValidation(err.Error()))
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()), &patch)
	if err != nil {
		respondError(h.log, w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Task updated successfully", map[string]interface{}{
		"task": task,
	})
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.taskService.DeleteTask(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(h.log, w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Task deleted successfully", nil)
}

// parseTaskFilter builds the list query from the URL. Enum parameters
// are validated strictly; page and limit keep the lenient behavior of
// falling back to their defaults when they fail to parse, and limit is
// clamped into [1,100] here, never inside the query engine.
func parseTaskFilter(r *http.Request) (models.TaskFilter, error) {
	q := r.URL.Query()

	filter := models.TaskFilter{
		UserID:    middleware.GetUserID(r.Context()),
		SortBy:    models.SortByCreatedAt,
		SortOrder: models.SortDesc,
		Page:      defaultPage,
		Limit:     defaultLimit,
	}

	if status := q.Get("status"); status != "" {
		if err := validation.TaskStatus(status); err != nil {
			return filter, apperror.NewValidation(err.Error())
		}
		filter.Status = models.Status(status)
	}

	if priority := q.Get("priority"); priority != "" {
		if err := validation.TaskPriority(priority); err != nil {
			return filter, apperror.NewValidation(err.Error())
		}
		filter.Priority = models.Priority(priority)
	}

	filter.Category = q.Get("category")

	if sortBy := q.Get("sortBy"); sortBy != "" {
		if !models.ValidSortBy(sortBy) {
			return filter, apperror.NewValidation("sortBy must be one of createdAt, updatedAt, title, priority, dueDate")
		}
		filter.SortBy = sortBy
	}

	if sortOrder := q.Get("sortOrder"); sortOrder != "" {
		if !models.ValidSortOrder(sortOrder) {
			return filter, apperror.NewValidation("sortOrder must be 'asc' or 'desc'")
		}
		filter.SortOrder = sortOrder
	}

	if raw := q.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page >= 1 {
			filter.Page = page
		}
	}

	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit >= 1 {
			if limit > maxLimit {
				limit = maxLimit
			}
			filter.Limit = limit
		}
	}

	return filter, nil
}
