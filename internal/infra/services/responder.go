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

const personaPrompt = "You are a helpful AI assistant answering phone calls on behalf of your owner. " +
	"Be polite, professional, and try to handle the caller's request. If you need to take a message, " +
	"ask for their name, contact information, and the purpose of the call. Keep responses concise for phone conversation."

const summaryPrompt = "Summarize this phone conversation concisely. Include key points, caller's purpose, and any action items."

// Fixed fallbacks: a caller never hears a raw error.
const (
	FallbackReply      = "I apologize, but I'm having trouble processing your request right now. Please try again later."
	NoConversation     = "No conversation recorded"
	SummaryUnavailable = "Summary unavailable"
)

const (
	replyMaxTokens   = 150
	replyTemperature = 0.7
	summaryMaxTokens = 200
)

// ResponderService generates the agent's next utterance and the
// end-of-call summary via single-attempt model completions.
type ResponderService struct {
	CompletionClient Iservices.ICompletionClient
	Logger           *logger.Logger
}

func NewResponderService(completionClient Iservices.ICompletionClient, log *logger.Logger) *ResponderService {
	return &ResponderService{CompletionClient: completionClient, Logger: log}
}

// GenerateReply produces the next agent line from the windowed context.
// On any model failure it returns the fixed apology instead of an
// error, so the call always gets a spoken response.
func (rs *ResponderService) GenerateReply(ctx context.Context, window []entities.Turn) string {
	messages := make([]dto.ChatMessage, 0, len(window)+1)
	messages = append(messages, dto.ChatMessage{Role: dto.RoleSystem, Content: personaPrompt})
	for _, turn := range window {
		role := dto.RoleAssistant
		if turn.Speaker == entities.SpeakerCaller {
			role = dto.RoleUser
		}
		messages = append(messages, dto.ChatMessage{Role: role, Content: turn.Message})
	}

	reply, err := rs.CompletionClient.CreateCompletion(ctx, messages, dto.CompletionOptions{
		MaxTokens:   replyMaxTokens,
		Temperature: replyTemperature,
	})
	if err != nil {
		rs.Logger.Error(fmt.Sprintf("Error calling OpenAI: %v", err))
		return FallbackReply
	}
	return reply
}

// GenerateSummary summarizes the entire transcript, not the trailing
// window. An empty transcript returns the placeholder without touching
// the model.
func (rs *ResponderService) GenerateSummary(ctx context.Context, transcript []entities.Turn) string {
	if len(transcript) == 0 {
		return NoConversation
	}

	lines := make([]string, 0, len(transcript))
	for _, turn := range transcript {
		lines = append(lines, fmt.Sprintf("%s (%s): %s", turn.Speaker, turn.Timestamp.Format("15:04:05"), turn.Message))
	}

	summary, err := rs.CompletionClient.CreateCompletion(ctx, []dto.ChatMessage{
		{Role: dto.RoleSystem, Content: summaryPrompt},
		{Role: dto.RoleUser, Content: strings.Join(lines, "\n")},
	}, dto.CompletionOptions{MaxTokens: summaryMaxTokens})
	if err != nil {
		rs.Logger.Error(fmt.Sprintf("Error generating call summary: %v", err))
		return SummaryUnavailable
	}
	return summary
}
