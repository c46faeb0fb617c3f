package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the task API over HTTP. The JWT issued at login is
// attached to every subsequent request.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Category    []string `json:"category"`
	DueDate     string   `json:"dueDate"`
	CreatedAt   string   `json:"createdAt"`
}

type TaskList struct {
	Tasks      []Task `json:"tasks"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type apiError struct {
	Kind    string `json:"error"`
	Message string `json:"message"`
}

// do issues the request and decodes the success envelope into out. API
// failures come back as plain errors carrying the server's message.
func (c *Client) do(method, path string, payload, out interface{}) error {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return err
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("%s", apiErr.Message)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return err
	}
	return json.Unmarshal(env.Data, out)
}

type createTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Category    []string `json:"category,omitempty"`
	DueDate     string   `json:"dueDate,omitempty"`
}

func (c *Client) CreateTask(title, description, priority string, category []string, dueDate string) (*Task, error) {
	var out struct {
		Task Task `json:"task"`
	}
	err := c.do(http.MethodPost, "/api/tasks/", createTaskRequest{
		Title:       title,
		Description: description,
		Priority:    priority,
		Category:    category,
		DueDate:     dueDate,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Task, nil
}

func (c *Client) ListTasks(page, limit int) (*TaskList, error) {
	var out TaskList
	path := fmt.Sprintf("/api/tasks/?page=%d&limit=%d", page, limit)
	if err := c.do(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetTaskStatus(id, status string) (*Task, error) {
	var out struct {
		Task Task `json:"task"`
	}
	err := c.do(http.MethodPut, "/api/tasks/"+id, map[string]string{"status": status}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Task, nil
}

func (c *Client) DeleteTask(id string) error {
	return c.do(http.MethodDelete, "/api/tasks/"+id, nil, nil)
}
