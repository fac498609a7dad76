package websocket

import (
	"context"

	"go.uber.org/zap"

	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/events"
	"github.com/lutfiEmre/todolist/internal/events/bus"
	ws "github.com/lutfiEmre/todolist/pkg/websocket"
)

// BoardEventBroadcaster forwards board events from the bus to every client.
type BoardEventBroadcaster struct {
	hub           *Hub
	subscriptions []bus.Subscription
	logger        *logger.Logger
}

var boardActions = map[string]string{
	events.TaskCreated:    ws.ActionTaskCreated,
	events.TaskUpdated:    ws.ActionTaskUpdated,
	events.TaskDeleted:    ws.ActionTaskDeleted,
	events.TaskReordered:  ws.ActionTaskReordered,
	events.CommentCreated: ws.ActionCommentCreated,
}

// RegisterBoardNotifications subscribes to the board subjects until ctx ends.
func RegisterBoardNotifications(ctx context.Context, eventBus bus.EventBus, hub *Hub, log *logger.Logger) *BoardEventBroadcaster {
	b := &BoardEventBroadcaster{
		hub:    hub,
		logger: log.WithFields(zap.String("component", "ws-board-broadcaster")),
	}
	if eventBus == nil {
		return b
	}

	for _, subject := range events.BoardSubjects {
		b.subscribe(eventBus, subject, boardActions[subject])
	}

	go func() {
		<-ctx.Done()
		b.Close()
	}()
	return b
}

// Close drops every bus subscription.
func (b *BoardEventBroadcaster) Close() {
	for _, sub := range b.subscriptions {
		if sub != nil && sub.IsValid() {
			_ = sub.Unsubscribe()
		}
	}
	b.subscriptions = nil
}

func (b *BoardEventBroadcaster) subscribe(eventBus bus.EventBus, subject, action string) {
	sub, err := eventBus.Subscribe(subject, func(ctx context.Context, event *bus.Event) error {
		msg, err := ws.NewNotification(action, event.Data)
		if err != nil {
			b.logger.Error("failed to build websocket notification", zap.String("action", action), zap.Error(err))
			return nil
		}
		b.hub.Broadcast(msg)
		return nil
	})
	if err != nil {
		b.logger.Error("failed to subscribe to events", zap.String("subject", subject), zap.Error(err))
		return
	}
	b.subscriptions = append(b.subscriptions, sub)
}
