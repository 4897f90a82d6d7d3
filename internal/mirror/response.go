package mirror

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ashureev/mirror/internal/domain"
)

// replyPayload is the expected completion reply. Crisis is a pointer so a
// missing field is distinguishable from false.
type replyPayload struct {
	Bucket   string `json:"bucket" validate:"required,oneof=URGE_LOOP OVERWHELM SELF_DOUBT OUT_OF_SCOPE"`
	Crisis   *bool  `json:"crisis" validate:"required"`
	Response string `json:"response" validate:"required"`
}

var codeFence = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// ParseReply parses and schema-checks raw completion text.
// Valid fields are returned unchanged.
func ParseReply(raw string) (domain.ClassifiedResponse, error) {
	content := strings.TrimSpace(raw)
	if m := codeFence.FindStringSubmatch(content); m != nil {
		content = m[1]
	}
	if content == "" {
		return domain.ClassifiedResponse{}, errors.New("empty reply")
	}

	var p replyPayload
	if err := json.Unmarshal([]byte(content), &p); err != nil {
		return domain.ClassifiedResponse{}, fmt.Errorf("decode reply: %w", err)
	}
	if err := schemaValidate.Struct(p); err != nil {
		return domain.ClassifiedResponse{}, fmt.Errorf("validate reply: %w", err)
	}

	return domain.ClassifiedResponse{
		Bucket:   domain.Bucket(p.Bucket),
		Crisis:   *p.Crisis,
		Response: p.Response,
	}, nil
}

// ResolveReply returns the parsed reply, or FallbackResponse with ok=false
// when the reply violates the output contract.
func ResolveReply(raw string) (resp domain.ClassifiedResponse, ok bool) {
	parsed, err := ParseReply(raw)
	if err != nil {
		return FallbackResponse(), false
	}
	return parsed, true
}

// FallbackResponse is the fixed safe reply for malformed completion output.
func FallbackResponse() domain.ClassifiedResponse {
	return domain.ClassifiedResponse{
		Bucket:   domain.BucketOutOfScope,
		Crisis:   false,
		Response: FallbackMessage,
	}
}

// CrisisResponse is the fixed redirect returned when crisis content is detected.
func CrisisResponse() domain.ClassifiedResponse {
	return domain.ClassifiedResponse{
		Bucket:   domain.BucketOutOfScope,
		Crisis:   true,
		Response: CrisisMessage,
	}
}
