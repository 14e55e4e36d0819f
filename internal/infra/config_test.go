package infra

import (
	"testing"
	"time"
)

func TestLoadConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig should fail without GEMINI_API_KEY")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "")
	t.Setenv("REANALYZE_DEBOUNCE_MS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.ReanalyzeDebounce != 500*time.Millisecond {
		t.Fatalf("ReanalyzeDebounce = %v, want 500ms", cfg.ReanalyzeDebounce)
	}
	if cfg.GeminiTextModel == "" || cfg.GeminiImageModel == "" || cfg.GeminiChatModel == "" {
		t.Fatalf("model defaults missing: %+v", cfg)
	}
}

func TestLoadConfigHonorsOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("REANALYZE_DEBOUNCE_MS", "250")
	t.Setenv("SESSION_TTL_MINUTES", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ReanalyzeDebounce != 250*time.Millisecond {
		t.Fatalf("ReanalyzeDebounce = %v, want 250ms", cfg.ReanalyzeDebounce)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Fatalf("SessionTTL = %v, want 5m", cfg.SessionTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("CORSAllowedOrigins mismatch: %#v", cfg.CORSAllowedOrigins)
	}
}
