package notify

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/thenoetrevino/taskboard/internal/models"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "task-notification.json"

var notificationSchema = compileSchema()

// numbers stay json.Number so integer ids keep their exact digits
var decoder = sonic.Config{UseNumber: true}.Froze()

// endDate layouts, most specific first. Zone-less times are taken as UTC.
var endDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

func compileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("notify: bad embedded schema: %v", err))
	}
	return compiler.MustCompile(schemaURL)
}

type wireNotification struct {
	ID          flexString `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	EndDate     string     `json:"endDate"`
	Priority    string     `json:"priority"`
	Status      *string    `json:"status"`
	ProjectID   flexString `json:"projectId"`
}

// flexString accepts a JSON string or number
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*f = ""
	case strings.HasPrefix(s, `"`):
		var v string
		if err := sonic.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = flexString(v)
	default:
		*f = flexString(s)
	}
	return nil
}

// Parse validates and decodes a deadline reminder payload
func Parse(body []byte) (models.TaskNotification, error) {
	var doc interface{}
	if err := decoder.Unmarshal(body, &doc); err != nil {
		return models.TaskNotification{}, &ParseError{Reason: "invalid JSON", Err: err}
	}
	if err := notificationSchema.Validate(doc); err != nil {
		return models.TaskNotification{}, schemaError(err)
	}

	var w wireNotification
	if err := decoder.Unmarshal(body, &w); err != nil {
		return models.TaskNotification{}, &ParseError{Reason: "invalid JSON", Err: err}
	}

	end, err := parseEndDate(w.EndDate)
	if err != nil {
		return models.TaskNotification{}, &ParseError{Path: "endDate", Reason: "unparseable date", Err: err}
	}

	n := models.TaskNotification{
		ID:        models.TaskID(w.ID),
		Title:     w.Title,
		EndDate:   end,
		Priority:  models.Priority(w.Priority),
		ProjectID: string(w.ProjectID),
	}
	if w.Description != nil {
		n.Description = *w.Description
	}
	if w.Status != nil {
		n.Status = *w.Status
	}
	return n, nil
}

func parseEndDate(v string) (time.Time, error) {
	var firstErr error
	for _, layout := range endDateLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// schemaError reports the first leaf cause of a validation failure
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ParseError{Reason: err.Error(), Err: err}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &ParseError{
		Path:   strings.TrimPrefix(ve.InstanceLocation, "/"),
		Reason: ve.Message,
		Err:    err,
	}
}
