package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: NOOP\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Topic != "Bitcoin market today trading analysis" {
		t.Errorf("Expected default topic, got %q", cfg.Topic)
	}
	if cfg.Search.MaxResults != 10 {
		t.Errorf("Expected default max_results 10, got %d", cfg.Search.MaxResults)
	}
	if cfg.Reader.MaxPages != 10 {
		t.Errorf("Expected default max_pages 10, got %d", cfg.Reader.MaxPages)
	}
	if cfg.Reader.MaxChars != 5000 {
		t.Errorf("Expected default max_chars 5000, got %d", cfg.Reader.MaxChars)
	}
	if cfg.Mailer.Addr != ":5050" {
		t.Errorf("Expected default mailer addr :5050, got %s", cfg.Mailer.Addr)
	}
	if cfg.Mailer.SMTPHost != "smtp.gmail.com" {
		t.Errorf("Expected default smtp host, got %s", cfg.Mailer.SMTPHost)
	}
	if cfg.Mailer.SMTPPort != 587 {
		t.Errorf("Expected default smtp port 587, got %d", cfg.Mailer.SMTPPort)
	}
	if cfg.Report.MailerURL != "http://localhost:5050/send-report" {
		t.Errorf("Expected default mailer URL, got %s", cfg.Report.MailerURL)
	}
}

func TestLoadConfigProviderNormalized(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: openai\n  model: gpt-4o-mini\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.LLM.Provider != "OPENAI" {
		t.Errorf("Expected provider normalized to OPENAI, got %s", cfg.LLM.Provider)
	}
}

func TestLoadConfigInvalidProvider(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: GEMINI\n  model: something\n")

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestLoadConfigModelRequired(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: OPENAI\n")

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected error when model is missing for OPENAI provider")
	}
}

func TestValidateRanges(t *testing.T) {
	cfg := &Config{}
	cfg.LLM.Provider = "NOOP"
	cfg.Search.MaxResults = 500
	cfg.Mailer.SMTPPort = 587

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for max_results out of range")
	}

	cfg.Search.MaxResults = 10
	cfg.Mailer.SMTPPort = 99999
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for invalid smtp port")
	}

	cfg.Mailer.SMTPPort = 587
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

func TestTimeoutHelpers(t *testing.T) {
	cfg := &Config{}
	cfg.Search.TimeoutSeconds = 15
	cfg.Reader.TimeoutSeconds = 10

	if cfg.SearchTimeout() != 15*time.Second {
		t.Errorf("Expected 15s search timeout, got %v", cfg.SearchTimeout())
	}
	if cfg.ReaderTimeout() != 10*time.Second {
		t.Errorf("Expected 10s reader timeout, got %v", cfg.ReaderTimeout())
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}
