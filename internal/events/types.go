// Package events names the subjects published when the board changes.
package events

// Source identifies board events produced by this server.
const Source = "task-service"

// Task events.
const (
	TaskCreated   = "task.created"
	TaskUpdated   = "task.updated"
	TaskDeleted   = "task.deleted"
	TaskReordered = "task.reordered"
)

// Comment events.
const (
	CommentCreated = "comment.created"
)

// AllBoard matches every subject above.
const AllBoard = ">"

// BoardSubjects lists every subject a board listener may receive.
var BoardSubjects = []string{TaskCreated, TaskUpdated, TaskDeleted, TaskReordered, CommentCreated}
