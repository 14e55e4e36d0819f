package gemini

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"google.golang.org/genai"

	"github.com/promptstudio/internal/domain"
)

// AnalyzeImage asks the model to describe the uploaded image as a structured
// text-to-image prompt.
func (c *Client) AnalyzeImage(ctx context.Context, img *domain.UploadedImage) (*domain.StructuredPrompt, error) {
	if img == nil || len(img.Data) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrProviderFailure)
	}
	parts := []*genai.Part{
		genai.NewPartFromText(buildAnalysisInstruction("the attached image")),
		{InlineData: &genai.Blob{MIMEType: img.MIME, Data: img.Data}},
	}
	return c.analyze(ctx, []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)})
}

// ReanalyzeText asks the model to decompose a free-text prompt back into the
// structured field shape.
func (c *Client) ReanalyzeText(ctx context.Context, text string) (*domain.StructuredPrompt, error) {
	instruction := buildAnalysisInstruction("the following prompt") + "\n\nPrompt:\n" + text
	return c.analyze(ctx, genai.Text(instruction))
}

func (c *Client) analyze(ctx context.Context, contents []*genai.Content) (*domain.StructuredPrompt, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   structuredPromptSchema(),
	}
	resp, err := c.genai.Models.GenerateContent(ctx, c.textModel, contents, config)
	if err != nil {
		c.logger.Error().Err(err).Str("model", c.textModel).Msg("analysis call failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	text := collectText(resp)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty analysis response", domain.ErrProviderFailure)
	}
	prompt, err := parseStructuredPrompt(text)
	if err != nil {
		c.logger.Error().Err(err).Msg("analysis payload did not parse")
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	return prompt, nil
}

// buildAnalysisInstruction produces the shared instruction for both analysis
// directions. subject names what the model should describe.
func buildAnalysisInstruction(subject string) string {
	titler := cases.Title(language.English)
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "You are an expert at writing text-to-image prompts. Describe %s as a structured prompt. Respond strictly with JSON containing these keys:", subject)
	for _, name := range domain.FieldNames() {
		label := titler.String(strings.ReplaceAll(name, "_", " "))
		fmt.Fprintf(sb, " %s (%s);", name, label)
	}
	sb.WriteString(" full_prompt (the complete prompt as one comma-separated sentence combining the fields above, in order).")
	sb.WriteString(" Leave a field empty if it does not apply. Do not add any other keys or commentary.")
	return sb.String()
}

func structuredPromptSchema() *genai.Schema {
	properties := make(map[string]*genai.Schema, len(domain.FieldNames())+1)
	required := make([]string, 0, len(domain.FieldNames())+1)
	for _, name := range domain.FieldNames() {
		properties[name] = &genai.Schema{Type: genai.TypeString}
		required = append(required, name)
	}
	properties["full_prompt"] = &genai.Schema{Type: genai.TypeString}
	required = append(required, "full_prompt")
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: properties,
		Required:   required,
	}
}
