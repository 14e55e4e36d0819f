package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/promptstudio/internal/domain"
)

// GenerateImage renders a new image from the given text prompt.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*domain.ImageAsset, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: empty prompt", domain.ErrProviderFailure)
	}
	resp, err := c.genai.Models.GenerateContent(ctx, c.imageModel, genai.Text(prompt), nil)
	if err != nil {
		c.logger.Error().Err(err).Str("model", c.imageModel).Msg("image generation failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	return assetFromResponse(resp, "image/jpeg")
}

// EditImage applies a free-text instruction to the provided image and returns
// the edited result. Each call is independent; edits are never chained.
func (c *Client) EditImage(ctx context.Context, img *domain.UploadedImage, instruction string) (*domain.ImageAsset, error) {
	if img == nil || len(img.Data) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrProviderFailure)
	}
	if strings.TrimSpace(instruction) == "" {
		return nil, fmt.Errorf("%w: empty instruction", domain.ErrProviderFailure)
	}
	parts := []*genai.Part{
		genai.NewPartFromText(instruction),
		{InlineData: &genai.Blob{MIMEType: img.MIME, Data: img.Data}},
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := c.genai.Models.GenerateContent(ctx, c.imageModel, contents, nil)
	if err != nil {
		c.logger.Error().Err(err).Str("model", c.imageModel).Msg("image edit failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	return assetFromResponse(resp, "image/png")
}

func assetFromResponse(resp *genai.GenerateContentResponse, fallbackMIME string) (*domain.ImageAsset, error) {
	data, mime, ok := firstInlineImage(resp)
	if !ok {
		return nil, fmt.Errorf("%w: no image returned by model", domain.ErrProviderFailure)
	}
	if mime == "" {
		mime = fallbackMIME
	}
	return &domain.ImageAsset{Data: data, MIME: mime}, nil
}
