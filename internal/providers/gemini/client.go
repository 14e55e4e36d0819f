package gemini

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/promptstudio/internal/infra"
)

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	TextModel  string
	ImageModel string
	ChatModel  string
	Logger     *infra.Logger
}

// Client implements Gateway on top of the official Gemini SDK. Analysis and
// chat use the text model; generation and editing use the image model.
type Client struct {
	genai      *genai.Client
	textModel  string
	imageModel string
	chatModel  string
	logger     *infra.Logger
}

// NewClient constructs a Gemini client with sane defaults.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("gemini api key is required")
	}

	inner, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  strings.TrimSpace(opts.APIKey),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	textModel := opts.TextModel
	if textModel == "" {
		textModel = "gemini-2.5-flash"
	}
	imageModel := opts.ImageModel
	if imageModel == "" {
		imageModel = "gemini-2.5-flash-image"
	}
	chatModel := opts.ChatModel
	if chatModel == "" {
		chatModel = textModel
	}

	logger := opts.Logger
	if logger == nil {
		discard := infra.Logger(zerolog.New(io.Discard))
		logger = &discard
	}

	return &Client{
		genai:      inner,
		textModel:  textModel,
		imageModel: imageModel,
		chatModel:  chatModel,
		logger:     logger,
	}, nil
}

// collectText concatenates the text parts of the first candidate.
func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	sb := &strings.Builder{}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// firstInlineImage returns the bytes and MIME type of the first inline image
// part in the response, if any.
func firstInlineImage(resp *genai.GenerateContentResponse) ([]byte, string, bool) {
	if resp == nil {
		return nil, "", false
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, part.InlineData.MIMEType, true
			}
		}
	}
	return nil, "", false
}

var _ Gateway = (*Client)(nil)
