package websocket

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/task/models"
	ws "github.com/lutfiEmre/todolist/pkg/websocket"
)

// BoardReader answers the read-only requests a client may send over the socket.
type BoardReader interface {
	ListTasks(ctx context.Context, status *models.Status) ([]*models.Task, error)
	ListComments(ctx context.Context, taskID int64) ([]*models.Comment, error)
}

// Gateway represents the WebSocket gateway
type Gateway struct {
	Hub        *Hub
	Dispatcher *ws.Dispatcher
	Handler    *Handler
	logger     *logger.Logger
}

// NewGateway creates a new WebSocket gateway with all components initialized
func NewGateway(log *logger.Logger) *Gateway {
	dispatcher := ws.NewDispatcher()
	hub := NewHub(dispatcher, log)
	RegisterHealthHandler(dispatcher)

	return &Gateway{
		Hub:        hub,
		Dispatcher: dispatcher,
		Handler:    NewHandler(hub, log),
		logger:     log,
	}
}

// SetupRoutes adds the WebSocket routes to the Gin engine
func (g *Gateway) SetupRoutes(router *gin.Engine) {
	router.GET("/ws", g.Handler.HandleConnection)
}

// RegisterHealthHandler registers the health check handler
func RegisterHealthHandler(d *ws.Dispatcher) {
	d.RegisterFunc(ws.ActionHealthCheck, func(ctx context.Context, msg *ws.Message) (*ws.Message, error) {
		return ws.NewResponse(msg.ID, msg.Action, map[string]interface{}{
			"status":  "ok",
			"service": "taskboard",
		})
	})
}

type taskListRequest struct {
	Status string `json:"status,omitempty"`
}

type commentListRequest struct {
	TaskID int64 `json:"taskId"`
}

// RegisterBoardHandlers answers task.list and comment.list from reader.
func RegisterBoardHandlers(d *ws.Dispatcher, reader BoardReader) {
	d.RegisterFunc(ws.ActionTaskList, func(ctx context.Context, msg *ws.Message) (*ws.Message, error) {
		var req taskListRequest
		if err := msg.ParsePayload(&req); err != nil {
			return ws.NewError(msg.ID, msg.Action, ws.ErrorCodeBadRequest, "Invalid payload: "+err.Error(), nil)
		}
		var status *models.Status
		if req.Status != "" {
			s := models.Status(req.Status)
			status = &s
		}
		tasks, err := reader.ListTasks(ctx, status)
		if err != nil {
			return nil, err
		}
		return ws.NewResponse(msg.ID, msg.Action, tasks)
	})

	d.RegisterFunc(ws.ActionCommentList, func(ctx context.Context, msg *ws.Message) (*ws.Message, error) {
		var req commentListRequest
		if err := msg.ParsePayload(&req); err != nil {
			return ws.NewError(msg.ID, msg.Action, ws.ErrorCodeBadRequest, "Invalid payload: "+err.Error(), nil)
		}
		if req.TaskID == 0 {
			return ws.NewError(msg.ID, msg.Action, ws.ErrorCodeValidation, "taskId is required", nil)
		}
		comments, err := reader.ListComments(ctx, req.TaskID)
		if err != nil {
			return nil, err
		}
		return ws.NewResponse(msg.ID, msg.Action, comments)
	})
}
