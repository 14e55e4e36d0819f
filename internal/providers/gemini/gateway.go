package gemini

import (
	"context"

	"github.com/promptstudio/internal/domain"
)

// Gateway is the boundary to the generative-AI service. Every call is a
// single network round trip with no retry or backoff; a failure surfaces
// immediately to the caller. Chat sessions are the only stateful handle.
type Gateway interface {
	// AnalyzeImage decomposes an uploaded image into a structured prompt.
	AnalyzeImage(ctx context.Context, img *domain.UploadedImage) (*domain.StructuredPrompt, error)
	// ReanalyzeText decomposes a free-text prompt into a structured prompt.
	ReanalyzeText(ctx context.Context, text string) (*domain.StructuredPrompt, error)
	// GenerateImage renders an image from a text prompt.
	GenerateImage(ctx context.Context, prompt string) (*domain.ImageAsset, error)
	// EditImage applies a free-text instruction to an image.
	EditImage(ctx context.Context, img *domain.UploadedImage, instruction string) (*domain.ImageAsset, error)
	// NewChatSession opens a conversational session that retains context
	// across turns until the caller drops it.
	NewChatSession(ctx context.Context) (ChatSession, error)
}

// ChatSession is one conversational context. Turns are sequential; callers
// are expected not to overlap them.
type ChatSession interface {
	SendTurn(ctx context.Context, text string) (string, error)
}
