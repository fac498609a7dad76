package websocket

// Request actions answered by the gateway.
const (
	ActionHealthCheck = "health.check"
	ActionTaskList    = "task.list"
	ActionCommentList = "comment.list"
)

// Notification actions pushed when the board changes.
const (
	ActionTaskCreated    = "task.created"
	ActionTaskUpdated    = "task.updated"
	ActionTaskDeleted    = "task.deleted"
	ActionTaskReordered  = "task.reordered"
	ActionCommentCreated = "comment.created"
)

// Error codes
const (
	ErrorCodeBadRequest    = "BAD_REQUEST"
	ErrorCodeValidation    = "VALIDATION_ERROR"
	ErrorCodeUnknownAction = "UNKNOWN_ACTION"
	ErrorCodeInternalError = "INTERNAL_ERROR"
)
