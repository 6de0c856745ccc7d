package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Topic string `yaml:"topic"`

	LLM struct {
		Provider    string  `yaml:"provider"` // OPENAI, CLAUDE or NOOP
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
	} `yaml:"llm"`

	Search struct {
		MaxResults     int `yaml:"max_results"`
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"search"`

	Reader struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
		MaxPages       int `yaml:"max_pages"`
		MaxChars       int `yaml:"max_chars"`
	} `yaml:"reader"`

	Report struct {
		OutputDir string `yaml:"output_dir"`
		MailerURL string `yaml:"mailer_url"` // endpoint the generated page posts to
	} `yaml:"report"`

	Mailer struct {
		Addr       string `yaml:"addr"`
		SMTPHost   string `yaml:"smtp_host"`
		SMTPPort   int    `yaml:"smtp_port"`
		ReportFile string `yaml:"report_file"`
		Subject    string `yaml:"subject"`
	} `yaml:"mailer"`
}

func (c *Config) Validate() error {
	provider := strings.ToUpper(c.LLM.Provider)
	if provider != "OPENAI" && provider != "CLAUDE" && provider != "NOOP" {
		return fmt.Errorf("invalid llm.provider '%s': must be 'OPENAI', 'CLAUDE' or 'NOOP'", c.LLM.Provider)
	}
	if provider != "NOOP" && c.LLM.Model == "" {
		return fmt.Errorf("llm.model must be set for provider %s", provider)
	}
	if c.Search.MaxResults <= 0 || c.Search.MaxResults > 100 {
		return fmt.Errorf("search.max_results must be between 1-100, got %d", c.Search.MaxResults)
	}
	if c.Mailer.SMTPPort <= 0 || c.Mailer.SMTPPort > 65535 {
		return fmt.Errorf("mailer.smtp_port must be a valid port, got %d", c.Mailer.SMTPPort)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.Topic == "" {
		c.Topic = "Bitcoin market today trading analysis"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "NOOP"
	}
	c.LLM.Provider = strings.ToUpper(c.LLM.Provider)
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 4096
	}
	if c.Search.MaxResults == 0 {
		c.Search.MaxResults = 10
	}
	if c.Search.TimeoutSeconds == 0 {
		c.Search.TimeoutSeconds = 15
	}
	if c.Reader.TimeoutSeconds == 0 {
		c.Reader.TimeoutSeconds = 10
	}
	if c.Reader.MaxPages == 0 {
		c.Reader.MaxPages = 10
	}
	if c.Reader.MaxChars == 0 {
		c.Reader.MaxChars = 5000
	}
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "."
	}
	if c.Report.MailerURL == "" {
		c.Report.MailerURL = "http://localhost:5050/send-report"
	}
	if c.Mailer.Addr == "" {
		c.Mailer.Addr = ":5050"
	}
	if c.Mailer.SMTPHost == "" {
		c.Mailer.SMTPHost = "smtp.gmail.com"
	}
	if c.Mailer.SMTPPort == 0 {
		c.Mailer.SMTPPort = 587
	}
	if c.Mailer.ReportFile == "" {
		c.Mailer.ReportFile = "index.html"
	}
	if c.Mailer.Subject == "" {
		c.Mailer.Subject = "Bitcoin Trading Analysis Report - Market Intelligence"
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

// SearchTimeout returns the search timeout as a duration.
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.Search.TimeoutSeconds) * time.Second
}

// ReaderTimeout returns the page reader timeout as a duration.
func (c *Config) ReaderTimeout() time.Duration {
	return time.Duration(c.Reader.TimeoutSeconds) * time.Second
}
