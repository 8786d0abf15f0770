package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-receptionist/internal/domain/entities"
	"ai-receptionist/internal/infra/logger"

	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.NewLogger(context.Background(), false)
}

func turnsOf(messages ...string) []entities.Turn {
	turns := make([]entities.Turn, 0, len(messages))
	for _, m := range messages {
		turns = append(turns, entities.Turn{Speaker: entities.SpeakerCaller, Message: m, Timestamp: time.Now()})
	}
	return turns
}

func TestShouldEscalateKeywordSkipsModel(t *testing.T) {
	cases := []struct {
		name     string
		messages []string
	}{
		{"emergency", []string{"I have an EMERGENCY right now"}},
		{"urgent", []string{"this is urgent, please"}},
		{"speak to human", []string{"can I speak to human please"}},
		{"real person", []string{"give me a Real Person"}},
		{"keyword in earlier turn", []string{"there's an emergency", "are you still there?"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fakeClient := &fakeCompletionClient{reply: "NO"}
			svc := NewEscalationService(fakeClient, testLogger())

			require.True(t, svc.ShouldEscalate(context.Background(), turnsOf(tc.messages...)))
			require.Zero(t, fakeClient.calls, "keyword stage must not consult the model")
		})
	}
}

func TestShouldEscalateDelegatesToModel(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  bool
	}{
		{"exact YES", "YES", true},
		{"lowercase yes with whitespace", "  yes\n", true},
		{"NO", "NO", false},
		{"malformed reply", "Maybe, it depends", false},
		{"empty reply", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fakeClient := &fakeCompletionClient{reply: tc.reply}
			svc := NewEscalationService(fakeClient, testLogger())

			got := svc.ShouldEscalate(context.Background(), turnsOf("what are your opening hours?"))
			require.Equal(t, tc.want, got)
			require.Equal(t, 1, fakeClient.calls)
		})
	}
}

func TestShouldEscalateFailsOpenOnModelError(t *testing.T) {
	fakeClient := &fakeCompletionClient{err: errors.New("rate limited")}
	svc := NewEscalationService(fakeClient, testLogger())

	require.False(t, svc.ShouldEscalate(context.Background(), turnsOf("hello?")))
}

func TestShouldEscalateSendsFullConversation(t *testing.T) {
	fakeClient := &fakeCompletionClient{reply: "NO"}
	svc := NewEscalationService(fakeClient, testLogger())

	svc.ShouldEscalate(context.Background(), turnsOf("first turn", "second turn"))

	require.Len(t, fakeClient.lastMessages, 2)
	require.Equal(t, "Conversation: first turn second turn", fakeClient.lastMessages[1].Content)
}
