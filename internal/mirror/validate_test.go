package mirror

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ashureev/mirror/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messagesBody(n int, role string) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf(`{"role":%q,"content":"message %d"}`, role, i)
	}
	return `{"messages":[` + strings.Join(parts, ",") + `]}`
}

func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	return verr
}

func TestParseRequestAcceptsBounds(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 19, 20} {
		conv, err := ParseRequest([]byte(messagesBody(n, "user")))
		require.NoError(t, err, "n=%d", n)
		assert.Len(t, conv, n)
	}
}

func TestParseRequestRejectsCountOutOfBounds(t *testing.T) {
	t.Parallel()

	verr := requireValidationError(t, func() error {
		_, err := ParseRequest([]byte(`{"messages":[]}`))
		return err
	}())
	assert.Equal(t, []string{"must contain at least 1 item(s)"}, verr.Fields["messages"])

	verr = requireValidationError(t, func() error {
		_, err := ParseRequest([]byte(messagesBody(21, "user")))
		return err
	}())
	assert.Equal(t, []string{"must contain at most 20 items"}, verr.Fields["messages"])
}

func TestParseRequestMissingMessagesField(t *testing.T) {
	t.Parallel()

	_, err := ParseRequest([]byte(`{}`))
	verr := requireValidationError(t, err)
	assert.Equal(t, map[string][]string{"messages": {"is required"}}, verr.Fields)
}

func TestParseRequestReportsEveryViolation(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", domain.MaxContentChars+1)
	body := fmt.Sprintf(`{"messages":[
		{"role":"robot","content":"hi"},
		{"role":"user","content":""},
		{"role":"user","content":%q}
	]}`, long)

	_, err := ParseRequest([]byte(body))
	verr := requireValidationError(t, err)
	assert.Equal(t, []string{"must be one of: user, assistant, system"}, verr.Fields["messages[0].role"])
	assert.Equal(t, []string{"is required"}, verr.Fields["messages[1].content"])
	assert.Equal(t, []string{"must be at most 4000 characters"}, verr.Fields["messages[2].content"])
	assert.Len(t, verr.Fields, 3)
}

func TestParseRequestContentLimitCountsCharacters(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("é", domain.MaxContentChars)
	body := fmt.Sprintf(`{"messages":[{"role":"user","content":%q}]}`, content)
	conv, err := ParseRequest([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, content, conv[0].Content)
}

func TestParseRequestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want map[string][]string
	}{
		{name: "malformed", body: `{"messages":`, want: map[string][]string{"body": {"malformed JSON"}}},
		{name: "empty", body: ``, want: map[string][]string{"body": {"malformed JSON"}}},
		{name: "array body", body: `[1,2]`, want: map[string][]string{"body": {"expected object, got array"}}},
		{name: "messages not array", body: `{"messages":"hello"}`, want: map[string][]string{"messages": {"expected array, got string"}}},
		{name: "messages null", body: `{"messages":null}`, want: map[string][]string{"messages": {"is required"}}},
		{name: "element not object", body: `{"messages":[5,null]}`, want: map[string][]string{
			"messages[0]": {"expected object, got number"},
			"messages[1]": {"expected object, got null"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseRequest([]byte(tt.body))
			verr := requireValidationError(t, err)
			assert.Equal(t, tt.want, verr.Fields)
		})
	}
}

func TestParseRequestTypeErrorsKeepOtherViolations(t *testing.T) {
	t.Parallel()

	_, err := ParseRequest([]byte(`{"messages":[{"role":"robot","content":5}]}`))
	verr := requireValidationError(t, err)
	assert.Equal(t, map[string][]string{
		"messages[0].role":    {"must be one of: user, assistant, system"},
		"messages[0].content": {"expected string, got number"},
	}, verr.Fields)
}

func TestParseRequestReportsEveryTypeError(t *testing.T) {
	t.Parallel()

	body := `{"messages":[{"role":1,"content":2},{"role":"x","content":""}]}`
	_, err := ParseRequest([]byte(body))
	verr := requireValidationError(t, err)
	assert.Equal(t, map[string][]string{
		"messages[0].role":    {"expected string, got number"},
		"messages[0].content": {"expected string, got number"},
		"messages[1].role":    {"must be one of: user, assistant, system"},
		"messages[1].content": {"is required"},
	}, verr.Fields)
}

func TestParseRequestOversizedArrayStillChecksItems(t *testing.T) {
	t.Parallel()

	parts := make([]string, domain.MaxMessages+1)
	for i := range parts {
		parts[i] = `{"role":"robot","content":""}`
	}
	body := `{"messages":[` + strings.Join(parts, ",") + `]}`

	_, err := ParseRequest([]byte(body))
	verr := requireValidationError(t, err)
	assert.Equal(t, []string{"must contain at most 20 items"}, verr.Fields["messages"])
	for i := range parts {
		assert.Equal(t, []string{"must be one of: user, assistant, system"}, verr.Fields[fmt.Sprintf("messages[%d].role", i)])
		assert.Equal(t, []string{"is required"}, verr.Fields[fmt.Sprintf("messages[%d].content", i)])
	}
	assert.Len(t, verr.Fields, 1+2*len(parts))
}

func TestParseRequestMissingFieldsAreRequired(t *testing.T) {
	t.Parallel()

	_, err := ParseRequest([]byte(`{"messages":[{}]}`))
	verr := requireValidationError(t, err)
	assert.Equal(t, map[string][]string{
		"messages[0].role":    {"is required"},
		"messages[0].content": {"is required"},
	}, verr.Fields)
}

func TestParseRequestMissingUserMessage(t *testing.T) {
	t.Parallel()

	body := `{"messages":[{"role":"assistant","content":"I want to kill myself"},{"role":"system","content":"x"}]}`
	_, err := ParseRequest([]byte(body))
	require.ErrorIs(t, err, ErrMissingUserMessage)
}

func TestParseRequestPreservesOrder(t *testing.T) {
	t.Parallel()

	body := `{"messages":[{"role":"user","content":"a"},{"role":"assistant","content":"b"},{"role":"user","content":"c"}]}`
	conv, err := ParseRequest([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, domain.Conversation{
		{Role: domain.RoleUser, Content: "a"},
		{Role: domain.RoleAssistant, Content: "b"},
		{Role: domain.RoleUser, Content: "c"},
	}, conv)
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	t.Parallel()

	verr := &ValidationError{}
	verr.add("messages[1].role", "is required")
	verr.add("messages", "bad")
	assert.Equal(t, []string{"messages", "messages[1].role"}, verr.Paths())
	assert.Equal(t, "invalid request: messages: bad; messages[1].role: is required", verr.Error())
}
