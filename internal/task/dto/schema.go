package dto

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lutfiEmre/todolist/internal/task/models"
)

const taskProperties = `
    "id":             {"type": "integer", "minimum": 0},
    "category":       {"type": "string"},
    "name":           {"type": "string"},
    "successPercent": {"type": "integer", "minimum": 0, "maximum": 100},
    "importance":     {"type": "integer", "minimum": 1, "maximum": 5},
    "timeline":       {"type": "string"},
    "status":         {"enum": ["todo", "doing", "inreview", "done"]},
    "order":          {"type": "integer", "minimum": 0}`

const taskSchemaSrc = `{
  "type": "object",
  "properties": {` + taskProperties + `
  }
}`

const taskPatchSchemaSrc = `{
  "type": "object",
  "minProperties": 1,
  "properties": {` + taskProperties + `
  }
}`

const reorderSchemaSrc = `{
  "type": "object",
  "required": ["status", "orderedIds"],
  "properties": {
    "status": {"enum": ["todo", "doing", "inreview", "done"]},
    "orderedIds": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "order"],
        "properties": {
          "id":    {"type": "integer"},
          "order": {"type": "integer", "minimum": 0}
        }
      }
    }
  }
}`

const commentSchemaSrc = `{
  "type": "object",
  "required": ["taskId", "message"],
  "properties": {
    "id":      {"type": "integer", "minimum": 0},
    "taskId":  {"type": "integer"},
    "author":  {"type": "string"},
    "message": {"type": "string"},
    "date":    {"type": "string"}
  }
}`

var (
	taskSchema      = mustCompile("task.json", taskSchemaSrc)
	taskPatchSchema = mustCompile("task-patch.json", taskPatchSchemaSrc)
	reorderSchema   = mustCompile("reorder.json", reorderSchemaSrc)
	commentSchema   = mustCompile("comment.json", commentSchemaSrc)
)

func mustCompile(name, src string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(src)); err != nil {
		panic(fmt.Sprintf("dto: add schema %s: %v", name, err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("dto: compile schema %s: %v", name, err))
	}
	return schema
}

// DecodeTask validates body against the task schema and decodes it.
func DecodeTask(body []byte) (*models.Task, error) {
	var task models.Task
	if err := decode(taskSchema, body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DecodeTaskPatch validates a partial task body. An id in the body is ignored.
func DecodeTaskPatch(body []byte) (models.TaskPatch, error) {
	var patch models.TaskPatch
	err := decode(taskPatchSchema, body, &patch)
	return patch, err
}

// DecodeReorder validates and decodes a column reorder body.
func DecodeReorder(body []byte) (*ReorderRequest, error) {
	var req ReorderRequest
	if err := decode(reorderSchema, body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// DecodeComment validates and decodes a new comment body.
func DecodeComment(body []byte) (*models.Comment, error) {
	var comment models.Comment
	if err := decode(commentSchema, body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func decode(schema *jsonschema.Schema, body []byte, out interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("request body is required")
	}
	doc, err := decodeDocument(body)
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return schemaError(err)
	}
	if err := sonic.ConfigStd.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid body: %w", err)
	}
	return nil
}

// ValidateTask checks an already-built task against the task schema, so
// records that bypass the HTTP layer obey the same bounds.
func ValidateTask(task *models.Task) error {
	body, err := sonic.ConfigStd.Marshal(task)
	if err != nil {
		return fmt.Errorf("encode task: %w", err)
	}
	doc, err := decodeDocument(body)
	if err != nil {
		return err
	}
	if err := taskSchema.Validate(doc); err != nil {
		return schemaError(err)
	}
	return nil
}

// decodeDocument decodes body into the generic form the validator walks.
// Numbers stay json.Number so integer checks see the literal value.
func decodeDocument(body []byte) (interface{}, error) {
	dec := sonic.ConfigStd.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// schemaError reports the first leaf cause, which names the offending field.
func schemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	field := strings.TrimPrefix(ve.InstanceLocation, "/")
	if field == "" {
		return fmt.Errorf("%s", ve.Message)
	}
	return fmt.Errorf("%s: %s", strings.ReplaceAll(field, "/", "."), ve.Message)
}
