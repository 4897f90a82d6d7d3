// Package mirror implements the single-turn classification and safety-gating
// pipeline: request validation, crisis detection, session digest, prompt
// assembly, completion and reply validation.
package mirror

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/ashureev/mirror/internal/domain"
	"github.com/go-playground/validator/v10"
)

// ErrMissingUserMessage is returned when a structurally valid conversation
// carries no message with the user role.
var ErrMissingUserMessage = errors.New("missing user message")

// ValidationError lists every violated request constraint keyed by field path.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := e.Paths()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// Paths returns the violated field paths in sorted order.
func (e *ValidationError) Paths() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *ValidationError) add(field, reason string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], reason)
}

// Field rules. Bounds track domain.MinMessages, domain.MaxMessages and
// domain.MaxContentChars.
const (
	messagesRule = "min=1,max=20"
	roleRule     = "required,oneof=user assistant system"
	contentRule  = "required,max=4000"
)

var schemaValidate *validator.Validate

func init() {
	schemaValidate = validator.New(validator.WithRequiredStructEnabled())
	schemaValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// ParseRequest decodes a request body into a Conversation.
//
// Structural violations are reported together as a *ValidationError keyed by
// indexed field path, e.g. "messages[2].content". A wrong-typed field is
// reported in place of its rules; every other field and the message count are
// still checked. Only once the structure is valid is the presence of a user
// message checked, yielding ErrMissingUserMessage.
func ParseRequest(body []byte) (domain.Conversation, error) {
	out := &ValidationError{}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		out.add("body", decodeReason(err, "object"))
		return nil, out
	}

	raw, ok := top["messages"]
	if !ok || isNull(raw) {
		out.add("messages", "is required")
		return nil, out
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		out.add("messages", decodeReason(err, "array"))
		return nil, out
	}

	if err := schemaValidate.Var(items, messagesRule); err != nil {
		if err := collect(out, "messages", err); err != nil {
			return nil, err
		}
	}

	conv := make(domain.Conversation, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("messages[%d]", i)
		if isNull(item) {
			out.add(path, "expected object, got null")
			continue
		}
		var fields map[string]any
		if err := json.Unmarshal(item, &fields); err != nil {
			out.add(path, decodeReason(err, "object"))
			continue
		}
		role, err := stringField(out, fields, path, "role", roleRule)
		if err != nil {
			return nil, err
		}
		content, err := stringField(out, fields, path, "content", contentRule)
		if err != nil {
			return nil, err
		}
		conv = append(conv, domain.Message{Role: domain.Role(role), Content: content})
	}

	if len(out.Fields) > 0 {
		return nil, out
	}
	if _, ok := conv.LatestUserMessage(); !ok {
		return nil, ErrMissingUserMessage
	}
	return conv, nil
}

// stringField checks one message field. A present value that is not a string
// is reported as a type error and its rules are skipped.
func stringField(out *ValidationError, fields map[string]any, parent, name, rule string) (string, error) {
	path := parent + "." + name
	v, present := fields[name]
	s, isString := v.(string)
	if present && !isString {
		out.add(path, "expected string, got "+valueKind(v))
		return "", nil
	}
	if err := schemaValidate.Var(s, rule); err != nil {
		return "", collect(out, path, err)
	}
	return s, nil
}

// collect records validator failures under path. Errors other than
// validator.ValidationErrors are returned.
func collect(out *ValidationError, path string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate request: %w", err)
	}
	for _, fe := range verrs {
		out.add(path, reason(fe))
	}
	return nil
}

func decodeReason(err error, want string) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("expected %s, got %s", want, typeErr.Value)
	}
	return "malformed JSON"
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

func valueKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	default:
		return "object"
	}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "must contain at least " + fe.Param() + " item(s)"
		}
		return "must be at least " + fe.Param() + " characters"
	case "max":
		if fe.Kind() == reflect.Slice {
			return "must contain at most " + fe.Param() + " items"
		}
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "failed " + fe.Tag() + " check"
	}
}
