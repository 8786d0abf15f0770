package services

import (
	"context"
	"fmt"
	"strings"

	"ai-receptionist/internal/domain/dto"
	"ai-receptionist/internal/domain/entities"
	Iservices "ai-receptionist/internal/domain/interfaces/services"
	"ai-receptionist/internal/infra/logger"
)

// urgentKeywords short-circuits escalation without a model round trip.
// The list is a fixed, English-only policy; edit here if it ever needs
// to change.
var urgentKeywords = []string{"emergency", "urgent", "speak to human", "real person"}

const escalationPrompt = "Determine if this conversation requires human intervention. Respond with only 'YES' or 'NO'."

// EscalationService decides continue-vs-transfer for each caller turn
// using a two-stage policy: deterministic keyword matching first, then
// a model-based urgency judgment.
type EscalationService struct {
	CompletionClient Iservices.ICompletionClient
	Logger           *logger.Logger
}

func NewEscalationService(completionClient Iservices.ICompletionClient, log *logger.Logger) *EscalationService {
	return &EscalationService{CompletionClient: completionClient, Logger: log}
}

// ShouldEscalate reports whether the call should be handed to a human.
// The keyword stage never consults the model, so clearly urgent
// language is caught even when the model path is down. A model failure
// resolves to false: a broken classifier must not pull every call away
// from the bot.
func (es *EscalationService) ShouldEscalate(ctx context.Context, transcript []entities.Turn) bool {
	messages := make([]string, 0, len(transcript))
	for _, turn := range transcript {
		messages = append(messages, turn.Message)
	}
	conversationText := strings.Join(messages, " ")

	lowered := strings.ToLower(conversationText)
	for _, keyword := range urgentKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}

	reply, err := es.CompletionClient.CreateCompletion(ctx, []dto.ChatMessage{
		{Role: dto.RoleSystem, Content: escalationPrompt},
		{Role: dto.RoleUser, Content: "Conversation: " + conversationText},
	}, dto.CompletionOptions{})
	if err != nil {
		es.Logger.Error(fmt.Sprintf("Error checking transfer: %v", err))
		return false
	}

	return strings.ToUpper(strings.TrimSpace(reply)) == "YES"
}
