package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/promptstudio/internal/domain"
)

const chatSystemInstruction = "You are a friendly and helpful creative assistant. Keep replies concise and conversational."

// NewChatSession opens a conversational session against the chat model. The
// returned handle retains conversation history on the SDK side.
func (c *Client) NewChatSession(ctx context.Context) (ChatSession, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromParts(
			[]*genai.Part{genai.NewPartFromText(chatSystemInstruction)},
			genai.RoleUser,
		),
	}
	chat, err := c.genai.Chats.Create(ctx, c.chatModel, config, nil)
	if err != nil {
		c.logger.Error().Err(err).Str("model", c.chatModel).Msg("chat session create failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	return &chatSession{chat: chat}, nil
}

type chatSession struct {
	chat *genai.Chat
}

func (s *chatSession) SendTurn(ctx context.Context, text string) (string, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	reply := strings.TrimSpace(collectText(resp))
	if reply == "" {
		return "", fmt.Errorf("%w: empty chat response", domain.ErrProviderFailure)
	}
	return reply, nil
}

var _ ChatSession = (*chatSession)(nil)
