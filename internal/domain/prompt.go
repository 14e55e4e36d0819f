package domain

// Field names accepted by StructuredPrompt.Field and SetField. The order of
// FieldNames is the canonical order used when fields are flattened into a
// full prompt.
const (
	FieldScene      = "scene"
	FieldBackground = "background"
	FieldImageType  = "image_type"
	FieldStyle      = "style"
	FieldTexture    = "texture"
	FieldLighting   = "lighting"
	FieldDetails    = "details"
)

// FieldNames returns the named prompt fields in canonical order. The full
// prompt is not included; it is derived, not named.
func FieldNames() []string {
	return []string{
		FieldScene,
		FieldBackground,
		FieldImageType,
		FieldStyle,
		FieldTexture,
		FieldLighting,
		FieldDetails,
	}
}

// StructuredPrompt is the decomposed description of an image: seven named
// free-text fields plus the flattened full-text form used for generation.
// FullPrompt is best-effort consistent with the named fields; consistency is
// maintained locally on field edits and re-derived externally on full-text
// edits.
type StructuredPrompt struct {
	Scene      string `json:"scene"`
	Background string `json:"background"`
	ImageType  string `json:"image_type"`
	Style      string `json:"style"`
	Texture    string `json:"texture"`
	Lighting   string `json:"lighting"`
	Details    string `json:"details"`
	FullPrompt string `json:"full_prompt"`
}

// Field returns the value of the named field. The second return reports
// whether the name is one of the seven named fields.
func (p *StructuredPrompt) Field(name string) (string, bool) {
	switch name {
	case FieldScene:
		return p.Scene, true
	case FieldBackground:
		return p.Background, true
	case FieldImageType:
		return p.ImageType, true
	case FieldStyle:
		return p.Style, true
	case FieldTexture:
		return p.Texture, true
	case FieldLighting:
		return p.Lighting, true
	case FieldDetails:
		return p.Details, true
	}
	return "", false
}

// SetField assigns the named field and reports whether the name was known.
// FullPrompt cannot be assigned through SetField; it has its own edit path.
func (p *StructuredPrompt) SetField(name, value string) bool {
	switch name {
	case FieldScene:
		p.Scene = value
	case FieldBackground:
		p.Background = value
	case FieldImageType:
		p.ImageType = value
	case FieldStyle:
		p.Style = value
	case FieldTexture:
		p.Texture = value
	case FieldLighting:
		p.Lighting = value
	case FieldDetails:
		p.Details = value
	default:
		return false
	}
	return true
}

// Clone returns an independent copy.
func (p *StructuredPrompt) Clone() *StructuredPrompt {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
