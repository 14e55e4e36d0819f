package domain

import "testing"

func TestStructuredPromptFieldRoundTrip(t *testing.T) {
	p := &StructuredPrompt{}
	for i, name := range FieldNames() {
		want := name + "-value"
		if !p.SetField(name, want) {
			t.Fatalf("SetField(%q) rejected a canonical field", name)
		}
		got, ok := p.Field(name)
		if !ok {
			t.Fatalf("Field(%q) not recognized", name)
		}
		if got != want {
			t.Fatalf("Field(%q) = %q, want %q (index %d)", name, got, want, i)
		}
	}
}

func TestStructuredPromptRejectsUnknownField(t *testing.T) {
	p := &StructuredPrompt{}
	if p.SetField("full_prompt", "x") {
		t.Fatal("SetField should not accept full_prompt")
	}
	if _, ok := p.Field("flavor"); ok {
		t.Fatal("Field should not recognize unknown names")
	}
}

func TestStructuredPromptClone(t *testing.T) {
	p := &StructuredPrompt{Scene: "a cat", FullPrompt: "a cat"}
	cp := p.Clone()
	cp.Scene = "a dog"
	if p.Scene != "a cat" {
		t.Fatalf("Clone is not independent: %q", p.Scene)
	}
	var nilPrompt *StructuredPrompt
	if nilPrompt.Clone() != nil {
		t.Fatal("Clone of nil should be nil")
	}
}

func TestUploadedImageDataURL(t *testing.T) {
	img := &UploadedImage{Data: []byte{0x1, 0x2}, MIME: "image/png"}
	want := "data:image/png;base64,AQI="
	if got := img.DataURL(); got != want {
		t.Fatalf("DataURL = %q, want %q", got, want)
	}
	var empty *UploadedImage
	if empty.DataURL() != "" {
		t.Fatal("nil image should render an empty data URL")
	}
}
