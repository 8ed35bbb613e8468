package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
)

// GeneralField is the detail key of a validation failure that cannot be
// attributed to a form field.
const GeneralField = "_general"

// NetworkError is a transport failure, a timeout or a 5xx from upstream.
type NetworkError struct {
	Op         string
	StatusCode int // zero when no response arrived
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("hrms api %s: upstream returned %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("hrms api %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Retryable is false only when the caller itself gave up.
func (e *NetworkError) Retryable() bool {
	return !errors.Is(e.Err, context.Canceled)
}

// ValidationError is input rejected by upstream (400, 409 or 422).
type ValidationError struct {
	Field   string // empty when no field could be attributed
	Message string
	Status  int
	// Fields holds every attributed violation when upstream reported several.
	Fields map[string]string
	// Err is the matching domain error, if any, so callers can use errors.Is.
	Err error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Details maps field to message for rendering; unattributed failures land
// under GeneralField.
func (e *ValidationError) Details() map[string]string {
	if len(e.Fields) > 0 {
		return e.Fields
	}
	field := e.Field
	if field == "" {
		field = GeneralField
	}
	return map[string]string{field: e.Message}
}

// NotFoundError is a 404 for a named resource.
type NotFoundError struct {
	Resource string
	ID       string
	Message  string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s '%s' not found", e.Resource, e.ID)
}

// Is lets callers match the domain not-found sentinels.
func (e *NotFoundError) Is(target error) bool {
	switch target {
	case employee.ErrEmployeeNotFound, attendance.ErrEmployeeNotFound:
		return e.Resource == ResourceEmployee
	}
	return false
}

// APIError is any other non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hrms api error [%d]: %s", e.StatusCode, e.Message)
}

// errorBody covers the shapes upstream uses for errors: a plain
// {"detail": "..."}, the framework's 422 {"detail": [{"loc": [...], "msg": "..."}]},
// and an explicit {"field": "...", "message": "..."}.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Field   string          `json:"field"`
	Message string          `json:"message"`
}

type locatedDetail struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// parseErrorBody returns the message and, when upstream names it, the field
// of each reported violation in order.
func parseErrorBody(raw []byte) (message string, fields map[string]string, firstField string) {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return strings.TrimSpace(string(raw)), nil, ""
	}

	if body.Field != "" {
		msg := body.Message
		if msg == "" {
			msg = detailString(body.Detail)
		}
		return msg, nil, body.Field
	}

	var located []locatedDetail
	if err := json.Unmarshal(body.Detail, &located); err == nil && len(located) > 0 {
		fields = make(map[string]string, len(located))
		for _, d := range located {
			field := locField(d.Loc)
			if field == "" {
				field = GeneralField
			}
			if _, seen := fields[field]; !seen {
				fields[field] = d.Msg
			}
			if firstField == "" && field != GeneralField {
				firstField = field
				message = d.Msg
			}
		}
		if message == "" {
			message = located[0].Msg
		}
		return message, fields, firstField
	}

	if msg := detailString(body.Detail); msg != "" {
		return msg, nil, ""
	}
	return body.Message, nil, ""
}

func detailString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

// locField takes the last string element of a loc path such as
// ["body", "email"].
func locField(loc []any) string {
	for i := len(loc) - 1; i >= 0; i-- {
		if s, ok := loc[i].(string); ok && s != "body" && s != "query" && s != "path" {
			return s
		}
	}
	return ""
}

// guessField attributes a free-text rejection: "email" first, then "id".
// Best effort only; structured fields win whenever upstream sends them.
func guessField(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "email"):
		return "email"
	case strings.Contains(lower, "id"):
		return "employee_id"
	}
	return ""
}

// classify turns a non-2xx response into the gateway error taxonomy.
func classify(op string, status int, raw []byte, resource, id string) error {
	message, fields, field := parseErrorBody(raw)
	if message == "" {
		message = http.StatusText(status)
	}

	switch {
	case status >= http.StatusInternalServerError:
		return &NetworkError{Op: op, StatusCode: status, Err: errors.New(message)}

	case status == http.StatusNotFound:
		return &NotFoundError{Resource: resource, ID: id, Message: message}

	case status == http.StatusBadRequest, status == http.StatusConflict, status == http.StatusUnprocessableEntity:
		if field == "" && len(fields) == 0 {
			field = guessField(message)
		}
		verr := &ValidationError{Field: field, Message: message, Status: status, Fields: fields}
		if status == http.StatusConflict {
			switch field {
			case "email":
				verr.Err = employee.ErrEmailExists
			case "employee_id":
				verr.Err = employee.ErrEmployeeIDExists
			}
		}
		return verr
	}

	return &APIError{StatusCode: status, Message: message}
}
