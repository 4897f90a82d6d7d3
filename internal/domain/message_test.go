package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatestUserMessage(t *testing.T) {
	t.Parallel()

	conv := Conversation{
		{Role: RoleUser, Content: "first"},
		{Role: RoleAssistant, Content: "reply"},
		{Role: RoleUser, Content: "second"},
		{Role: RoleAssistant, Content: "another reply"},
	}
	msg, ok := conv.LatestUserMessage()
	assert.True(t, ok)
	assert.Equal(t, "second", msg.Content)

	_, ok = Conversation{{Role: RoleSystem, Content: "only system"}}.LatestUserMessage()
	assert.False(t, ok)
}

func TestUserMessagesKeepsLastInOrder(t *testing.T) {
	t.Parallel()

	conv := Conversation{
		{Role: RoleUser, Content: "u1"},
		{Role: RoleAssistant, Content: "a1"},
		{Role: RoleUser, Content: "u2"},
		{Role: RoleUser, Content: "u3"},
		{Role: RoleSystem, Content: "s1"},
		{Role: RoleUser, Content: "u4"},
		{Role: RoleUser, Content: "u5"},
	}
	got := conv.UserMessages(4)
	contents := make([]string, 0, len(got))
	for _, m := range got {
		contents = append(contents, m.Content)
	}
	assert.Equal(t, []string{"u2", "u3", "u4", "u5"}, contents)
	assert.Len(t, conv, 7, "conversation must not be mutated")
}

func TestBucketValidAndLabel(t *testing.T) {
	t.Parallel()

	for _, b := range Buckets {
		assert.True(t, b.Valid(), b)
	}
	assert.False(t, Bucket("urge_loop").Valid())
	assert.False(t, Bucket("").Valid())

	assert.Equal(t, "Urge loop", BucketUrgeLoop.Label())
	assert.Equal(t, "Mental overwhelm", BucketOverwhelm.Label())
	assert.Equal(t, "Self-doubt", BucketSelfDoubt.Label())
	assert.Equal(t, "Out of scope", BucketOutOfScope.Label())
}
