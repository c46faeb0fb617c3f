package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Varun5711/taskboard/internal/auth"
	"github.com/Varun5711/taskboard/internal/middleware"
	"github.com/Varun5711/taskboard/internal/service"
	"github.com/Varun5711/taskboard/internal/storage"
	"github.com/go-chi/chi/v5"
)

// newTestRouter wires the same routes as cmd/api-server against the
// in-memory storages.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authService := service.NewAuthService(storage.NewMemoryUserStorage(), jwtManager)
	taskService := service.NewTaskService(storage.NewMemoryTaskStorage())

	authHandler := NewAuthHandler(authService)
	taskHandler := NewTaskHandler(taskService)
	authMw := middleware.NewAuthMiddleware(jwtManager)

	docsHandler := NewDocsHandler()

	r := chi.NewRouter()
	r.Get("/health", HealthCheck)
	r.Get("/docs", docsHandler.ServeUI)
	r.Get("/openapi.yaml", docsHandler.ServeSpec)
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Group(func(r chi.Router) {
				r.Use(authMw.RequireAuth)
				r.Get("/me", authHandler.Me)
			})
		})
		r.Route("/tasks", func(r chi.Router) {
			r.Use(authMw.RequireAuth)
			r.Post("/", taskHandler.Create)
			r.Get("/", taskHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.GetByID)
				r.Put("/", taskHandler.Update)
				r.Delete("/", taskHandler.Delete)
			})
		})
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("%s %s: response is not JSON: %v\n%s", method, path, err, rec.Body.String())
		}
	}
	return rec, decoded
}

func registerUser(t *testing.T, router http.Handler, email string) string {
	t.Helper()

	rec, body := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %v", email, rec.Code, body)
	}

	data := body["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("register %s: missing token in %v", email, body)
	}
	return token
}

func createTask(t *testing.T, router http.Handler, token string, payload map[string]interface{}) map[string]interface{} {
	t.Helper()

	rec, body := doJSON(t, router, http.MethodPost, "/api/tasks/", token, payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task: expected 201, got %d: %v", rec.Code, body)
	}
	return body["data"].(map[string]interface{})["task"].(map[string]interface{})
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["status"] != "OK" {
		t.Errorf("expected status OK, got %v", body["status"])
	}
}

func TestDocs(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/docs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /docs, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected HTML content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "swagger-ui") {
		t.Error("expected docs page to embed the Swagger UI")
	}

	req = httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /openapi.yaml, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "openapi:") {
		t.Error("expected an OpenAPI document")
	}
	// The spec must describe the real surface.
	for _, path := range []string{"/api/auth/register", "/api/auth/login", "/api/auth/me", "/api/tasks", "/api/tasks/{id}"} {
		if !strings.Contains(body, path) {
			t.Errorf("expected spec to document %s", path)
		}
	}
}

func TestRegisterAndLoginFlow(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "user@example.com",
		"password": "password123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", rec.Code, body)
	}
	if body["success"] != true {
		t.Errorf("expected success envelope, got %v", body)
	}
	if body["message"] != "User registered successfully" {
		t.Errorf("unexpected message %v", body["message"])
	}

	rec, body = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "user@example.com",
		"password": "password123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", rec.Code, body)
	}

	data := body["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("expected token in login response")
	}
	user := data["user"].(map[string]interface{})
	if user["email"] != "user@example.com" {
		t.Errorf("unexpected user in login response: %v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Error("password hash leaked into login response")
	}

	rec, body = doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /me, got %d: %v", rec.Code, body)
	}
	me := body["data"].(map[string]interface{})["user"].(map[string]interface{})
	if me["email"] != "user@example.com" {
		t.Errorf("unexpected /me user: %v", me)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "user@example.com")

	rec, body := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "user@example.com",
		"password": "wrongpassword",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body["message"] != "Invalid email or password" {
		t.Errorf("unexpected message %v", body["message"])
	}
	if body["statusCode"] != float64(http.StatusUnauthorized) {
		t.Errorf("expected statusCode 401 in body, got %v", body["statusCode"])
	}
}

func TestTasks_RequireAuth(t *testing.T) {
	router := newTestRouter(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/tasks/"},
		{http.MethodPost, "/api/tasks/"},
		{http.MethodGet, "/api/tasks/some-id"},
		{http.MethodPut, "/api/tasks/some-id"},
		{http.MethodDelete, "/api/tasks/some-id"},
		{http.MethodGet, "/api/auth/me"},
	} {
		rec, _ := doJSON(t, router, route.method, route.path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401 without token, got %d", route.method, route.path, rec.Code)
		}
	}
}

func TestTaskCRUD(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router, "user@example.com")

	created := createTask(t, router, token, map[string]interface{}{
		"title":    "Buy milk",
		"priority": "high",
		"category": []string{"errand"},
		"dueDate":  "2026-09-01T12:00:00Z",
	})
	id := created["id"].(string)
	if created["status"] != "pending" {
		t.Errorf("expected default status pending, got %v", created["status"])
	}

	rec, body := doJSON(t, router, http.MethodGet, "/api/tasks/"+id, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d: %v", rec.Code, body)
	}
	fetched := body["data"].(map[string]interface{})["task"].(map[string]interface{})
	if fetched["title"] != "Buy milk" || fetched["dueDate"] != "2026-09-01T12:00:00Z" {
		t.Errorf("unexpected fetched task: %v", fetched)
	}

	rec, body = doJSON(t, router, http.MethodPut, "/api/tasks/"+id, token, map[string]interface{}{
		"status": "completed",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %v", rec.Code, body)
	}
	updated := body["data"].(map[string]interface{})["task"].(map[string]interface{})
	if updated["status"] != "completed" {
		t.Errorf("expected status completed, got %v", updated["status"])
	}
	if updated["title"] != "Buy milk" {
		t.Errorf("partial update must keep title, got %v", updated["title"])
	}

	rec, body = doJSON(t, router, http.MethodPut, "/api/tasks/"+id, token, map[string]interface{}{
		"dueDate": nil,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("clear dueDate: expected 200, got %d: %v", rec.Code, body)
	}
	cleared := body["data"].(map[string]interface{})["task"].(map[string]interface{})
	if _, still := cleared["dueDate"]; still {
		t.Errorf("expected dueDate cleared, got %v", cleared["dueDate"])
	}

	rec, _ = doJSON(t, router, http.MethodDelete, "/api/tasks/"+id, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodDelete, "/api/tasks/"+id, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/tasks/"+id, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", rec.Code)
	}
}

func TestTaskAccess_CrossUser(t *testing.T) {
	router := newTestRouter(t)
	ownerToken := registerUser(t, router, "owner@example.com")
	intruderToken := registerUser(t, router, "intruder@example.com")

	task := createTask(t, router, ownerToken, map[string]interface{}{"title": "Private"})
	id := task["id"].(string)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/tasks/"+id, intruderToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("cross-user get: expected 403, got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPut, "/api/tasks/"+id, intruderToken, map[string]interface{}{"title": "Stolen"})
	if rec.Code != http.StatusForbidden {
		t.Errorf("cross-user update: expected 403, got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodDelete, "/api/tasks/"+id, intruderToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("cross-user delete: expected 403, got %d", rec.Code)
	}

	// The other user's list never includes it either.
	rec, body := doJSON(t, router, http.MethodGet, "/api/tasks/", intruderToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	if total := body["data"].(map[string]interface{})["total"].(float64); total != 0 {
		t.Errorf("expected empty list for intruder, got total %v", total)
	}
}

func TestCreateTask_BadInput(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router, "user@example.com")

	cases := []map[string]interface{}{
		{"title": ""},
		{"title": "ok", "status": "done"},
		{"title": "ok", "priority": "urgent"},
		{"title": "ok", "dueDate": "tomorrow"},
	}
	for i, payload := range cases {
		rec, body := doJSON(t, router, http.MethodPost, "/api/tasks/", token, payload)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("case %d: expected 400, got %d: %v", i, rec.Code, body)
		}
	}
}

func TestListTasks_Pagination(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router, "user@example.com")

	for _, title := range []string{"A", "B", "C", "D", "E"} {
		createTask(t, router, token, map[string]interface{}{"title": title})
	}

	rec, body := doJSON(t, router, http.MethodGet, "/api/tasks/?sortBy=title&sortOrder=asc&page=2&limit=2", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", rec.Code, body)
	}

	data := body["data"].(map[string]interface{})
	if data["total"].(float64) != 5 {
		t.Errorf("expected total 5, got %v", data["total"])
	}
	if data["totalPages"].(float64) != 3 {
		t.Errorf("expected totalPages 3, got %v", data["totalPages"])
	}
	if data["page"].(float64) != 2 {
		t.Errorf("expected page 2, got %v", data["page"])
	}

	tasks := data["tasks"].([]interface{})
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	first := tasks[0].(map[string]interface{})["title"]
	second := tasks[1].(map[string]interface{})["title"]
	if first != "C" || second != "D" {
		t.Errorf("expected page 2 to hold C and D, got %v and %v", first, second)
	}
}

func TestListTasks_QueryParamHandling(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router, "user@example.com")

	for i := 0; i < 3; i++ {
		createTask(t, router, token, map[string]interface{}{"title": fmt.Sprintf("T%d", i)})
	}

	// Unparseable page falls back to the default instead of failing.
	rec, body := doJSON(t, router, http.MethodGet, "/api/tasks/?page=abc&limit=xyz", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("lenient params: expected 200, got %d: %v", rec.Code, body)
	}
	if page := body["data"].(map[string]interface{})["page"].(float64); page != 1 {
		t.Errorf("expected default page 1, got %v", page)
	}

	// Oversized limit is clamped, not rejected.
	rec, body = doJSON(t, router, http.MethodGet, "/api/tasks/?limit=5000", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("clamped limit: expected 200, got %d: %v", rec.Code, body)
	}
	if total := body["data"].(map[string]interface{})["total"].(float64); total != 3 {
		t.Errorf("expected total 3, got %v", total)
	}

	// Enum parameters are strict.
	for _, query := range []string{"status=archived", "priority=urgent", "sortBy=color", "sortOrder=sideways"} {
		rec, body = doJSON(t, router, http.MethodGet, "/api/tasks/?"+query, token, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %q: expected 400, got %d: %v", query, rec.Code, body)
		}
	}
}

func TestListTasks_FilterCombination(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router, "user@example.com")

	createTask(t, router, token, map[string]interface{}{"title": "Match", "priority": "high", "category": []string{"work"}})
	createTask(t, router, token, map[string]interface{}{"title": "WrongPriority", "priority": "low", "category": []string{"work"}})
	createTask(t, router, token, map[string]interface{}{"title": "WrongCategory", "priority": "high", "category": []string{"home"}})

	rec, body := doJSON(t, router, http.MethodGet, "/api/tasks/?priority=high&category=work", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", rec.Code, body)
	}

	data := body["data"].(map[string]interface{})
	if data["total"].(float64) != 1 {
		t.Fatalf("expected exactly one match, got %v", data["total"])
	}
	task := data["tasks"].([]interface{})[0].(map[string]interface{})
	if task["title"] != "Match" {
		t.Errorf("expected task 'Match', got %v", task["title"])
	}
}
