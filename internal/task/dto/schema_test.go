package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lutfiEmre/todolist/internal/task/models"
)

func TestDecodeTask(t *testing.T) {
	task, err := DecodeTask([]byte(`{"id":1700000000000,"category":"Work","name":"Ship","successPercent":40,"importance":2,"timeline":"3 days","status":"doing","order":0}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), task.ID)
	assert.Equal(t, models.StatusDoing, task.Status)
	assert.Equal(t, 40, task.SuccessPercent)
}

func TestDecodeTask_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"empty body", ``, "required"},
		{"not json", `{"name":`, "invalid JSON"},
		{"not an object", `[1,2]`, ""},
		{"bad status", `{"name":"x","status":"archived"}`, "status"},
		{"percent above range", `{"successPercent":101}`, "successPercent"},
		{"percent below range", `{"successPercent":-1}`, "successPercent"},
		{"importance zero", `{"importance":0}`, "importance"},
		{"importance fraction", `{"importance":2.5}`, "importance"},
		{"name not string", `{"name":5}`, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTask([]byte(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestDecodeTaskPatch(t *testing.T) {
	patch, err := DecodeTaskPatch([]byte(`{"successPercent":70}`))
	require.NoError(t, err)
	require.NotNil(t, patch.SuccessPercent)
	assert.Equal(t, 70, *patch.SuccessPercent)
	assert.Nil(t, patch.Name)
	assert.Nil(t, patch.Status)

	_, err = DecodeTaskPatch([]byte(`{}`))
	assert.Error(t, err)

	// Full task bodies are accepted as patches.
	patch, err = DecodeTaskPatch([]byte(`{"id":3,"name":"n","status":"done","order":0}`))
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, *patch.Status)
	assert.Equal(t, 0, *patch.Order)
}

func TestDecodeReorder(t *testing.T) {
	req, err := DecodeReorder([]byte(`{"status":"todo","orderedIds":[{"id":2,"order":0},{"id":1,"order":1}]}`))
	require.NoError(t, err)
	assert.Equal(t, models.StatusTodo, req.Status)
	assert.Equal(t, []models.OrderEntry{{ID: 2, Order: 0}, {ID: 1, Order: 1}}, req.OrderedIDs)

	_, err = DecodeReorder([]byte(`{"status":"todo"}`))
	assert.Error(t, err)

	_, err = DecodeReorder([]byte(`{"status":"todo","orderedIds":[{"id":2}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orderedIds.0")
}

func TestDecodeComment(t *testing.T) {
	c, err := DecodeComment([]byte(`{"taskId":9,"message":"looks good"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(9), c.TaskID)
	assert.Equal(t, "looks good", c.Message)

	_, err = DecodeComment([]byte(`{"message":"orphan"}`))
	assert.Error(t, err)
}

func TestDecode_RejectsNegativeOrder(t *testing.T) {
	_, err := DecodeTask([]byte(`{"name":"x","status":"todo","order":-5}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order")

	_, err = DecodeTaskPatch([]byte(`{"order":-1}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order")

	_, err = DecodeReorder([]byte(`{"status":"todo","orderedIds":[{"id":1,"order":-1}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orderedIds.0.order")
}

func TestDecodeTask_LargeIDKeepsPrecision(t *testing.T) {
	task, err := DecodeTask([]byte(`{"id":9007199254740993,"name":"x","status":"todo"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(9007199254740993), task.ID)
}

func TestValidateTask(t *testing.T) {
	valid := &models.Task{ID: 1, Name: "Ship", Status: models.StatusTodo, SuccessPercent: 40, Importance: 3}
	require.NoError(t, ValidateTask(valid))

	tests := []struct {
		name  string
		task  models.Task
		field string
	}{
		{"percent", models.Task{ID: 1, Status: models.StatusTodo, Importance: 1, SuccessPercent: 150}, "successPercent"},
		{"importance", models.Task{ID: 1, Status: models.StatusTodo, Importance: 9}, "importance"},
		{"order", models.Task{ID: 1, Status: models.StatusTodo, Importance: 1, Order: -3}, "order"},
		{"status", models.Task{ID: 1, Status: "archived", Importance: 1}, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTask(&tt.task)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
