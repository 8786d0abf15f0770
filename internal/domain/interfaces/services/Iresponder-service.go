package Iservices

import (
	"context"

	"ai-receptionist/internal/domain/entities"
)

// IResponderService produces the agent's spoken replies and the
// end-of-call summary. Neither method returns an error: model failures
// degrade to fixed fallback strings so a call never dead-ends silently.
type IResponderService interface {
	GenerateReply(ctx context.Context, window []entities.Turn) string
	GenerateSummary(ctx context.Context, transcript []entities.Turn) string
}
