// Package client talks to the board API over HTTP.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/lutfiEmre/todolist/internal/common/config"
	"github.com/lutfiEmre/todolist/internal/common/constants"
	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/task/dto"
	"github.com/lutfiEmre/todolist/internal/task/models"
)

var json = sonic.ConfigStd

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client implements board.Persister against the board API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// New creates a client for the server at cfg.BaseURL.
func New(cfg config.ClientConfig, log *logger.Logger) *Client {
	timeout := cfg.TimeoutDuration()
	if timeout <= 0 {
		timeout = constants.ClientTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.WithFields(zap.String("component", "board-client")),
	}
}

func (c *Client) ListTasks(ctx context.Context, status models.Status) ([]models.Task, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", q, nil, &tasks); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	var created models.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", nil, task, &created); err != nil {
		return nil, fmt.Errorf("create task %d: %w", task.ID, err)
	}
	return &created, nil
}

func (c *Client) PatchTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	var updated models.Task
	if err := c.do(ctx, http.MethodPatch, "/api/tasks", idQuery("id", id), patch, &updated); err != nil {
		return nil, fmt.Errorf("patch task %d: %w", id, err)
	}
	return &updated, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	var resp dto.DeleteResponse
	if err := c.do(ctx, http.MethodDelete, "/api/tasks", idQuery("id", id), nil, &resp); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

func (c *Client) ReorderColumn(ctx context.Context, status models.Status, entries []models.OrderEntry) error {
	req := dto.ReorderRequest{Status: status, OrderedIDs: entries}
	var resp dto.ReorderResponse
	if err := c.do(ctx, http.MethodPut, "/api/tasks/order", nil, req, &resp); err != nil {
		return fmt.Errorf("reorder %s: %w", status, err)
	}
	return nil
}

func (c *Client) ListComments(ctx context.Context, taskID int64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := c.do(ctx, http.MethodGet, "/api/tasks/comments", idQuery("taskId", taskID), nil, &comments); err != nil {
		return nil, fmt.Errorf("list comments of %d: %w", taskID, err)
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	var created models.Comment
	if err := c.do(ctx, http.MethodPost, "/api/tasks/comments", nil, comment, &created); err != nil {
		return nil, fmt.Errorf("create comment on %d: %w", comment.TaskID, err)
	}
	return &created, nil
}

// Health checks that the server answers.
func (c *Client) Health(ctx context.Context) (*dto.HealthResponse, error) {
	var resp dto.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func idQuery(name string, id int64) url.Values {
	return url.Values{name: []string{strconv.FormatInt(id, 10)}}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody dto.ErrorResponse
		if json.Unmarshal(data, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		c.logger.Debug("request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("error", apiErr.Message))
		return apiErr
	}

	if result == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, result)
}
