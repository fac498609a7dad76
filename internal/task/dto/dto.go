// Package dto holds the HTTP request and response bodies of the board API.
package dto

import "github.com/lutfiEmre/todolist/internal/task/models"

// ReorderRequest is the body of PUT /api/tasks/order.
type ReorderRequest struct {
	Status     models.Status       `json:"status"`
	OrderedIDs []models.OrderEntry `json:"orderedIds"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// DeleteResponse is returned by DELETE /api/tasks whether or not the task existed.
type DeleteResponse struct {
	Success bool `json:"success"`
}

type ReorderResponse struct {
	OK bool `json:"ok"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
