package websocket

import "github.com/lutfiEmre/todolist/internal/common/logger"

// Provide creates the WebSocket gateway and wires the board read handlers.
func Provide(reader BoardReader, log *logger.Logger) *Gateway {
	gateway := NewGateway(log)
	if reader != nil {
		RegisterBoardHandlers(gateway.Dispatcher, reader)
	}
	return gateway
}
