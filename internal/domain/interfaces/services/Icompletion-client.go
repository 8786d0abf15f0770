package Iservices

import (
	"context"

	"ai-receptionist/internal/domain/dto"
)

// ICompletionClient is the language-model collaborator. A single attempt
// is made per call site; callers decide how to degrade on failure.
type ICompletionClient interface {
	CreateCompletion(ctx context.Context, messages []dto.ChatMessage, opts dto.CompletionOptions) (string, error)
}
