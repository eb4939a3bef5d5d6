package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Transcription TranscriptionConfig `yaml:"transcription"`
	FFmpeg        FFmpegConfig        `yaml:"ffmpeg"`
	Guardrail     GuardrailConfig     `yaml:"guardrail"`
	Gemini        GeminiConfig        `yaml:"gemini"`
	Paths         PathsConfig         `yaml:"paths"`
	Logging       LoggingConfig       `yaml:"logging"`
	Metrics       MetricsConfig       `yaml:"metrics"`
	Performance   PerformanceConfig   `yaml:"performance"`
}

type TranscriptionConfig struct {
	Endpoint        string  `yaml:"endpoint"`
	Language        string  `yaml:"language"`
	Task            string  `yaml:"task"`
	TopP            float64 `yaml:"top_p"`
	ChunkSeconds    int     `yaml:"chunk_seconds"`
	MaxPayloadBytes int     `yaml:"max_payload_bytes"`
	TimeoutSeconds  int     `yaml:"timeout_seconds"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	SampleRate int    `yaml:"sample_rate"`
	Channels   int    `yaml:"channels"`
}

type GuardrailConfig struct {
	Endpoint       string `yaml:"endpoint"`
	ID             string `yaml:"id"`
	Version        string `yaml:"version"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	// RegexFallback enables pattern-based PII scrubbing when the guardrail
	// service yields no redacted output. Off by default so a guardrail
	// outage degrades to the original text rather than a different one.
	RegexFallback bool `yaml:"regex_fallback"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

type PathsConfig struct {
	Inbox    string `yaml:"inbox"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Load reads and validates the YAML configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Transcription.Endpoint == "" {
		return fmt.Errorf("transcription.endpoint is required")
	}
	if c.Guardrail.ID == "" {
		return fmt.Errorf("guardrail.id is required")
	}
	if c.Guardrail.Endpoint == "" {
		return fmt.Errorf("guardrail.endpoint is required")
	}
	if c.Paths.Inbox == "" {
		return fmt.Errorf("paths.inbox is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Transcription.Language == "" {
		c.Transcription.Language = "english"
	}
	if c.Transcription.Task == "" {
		c.Transcription.Task = "transcribe"
	}
	if c.Transcription.TopP == 0 {
		c.Transcription.TopP = 0.9
	}
	if c.Transcription.ChunkSeconds == 0 {
		c.Transcription.ChunkSeconds = 30
	}
	if c.Transcription.MaxPayloadBytes == 0 {
		c.Transcription.MaxPayloadBytes = 2 * 1024 * 1024
	}
	if c.Transcription.TimeoutSeconds == 0 {
		c.Transcription.TimeoutSeconds = 120
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 44100
	}
	if c.FFmpeg.Channels == 0 {
		c.FFmpeg.Channels = 2
	}
	if c.Guardrail.Version == "" {
		c.Guardrail.Version = "DRAFT"
	}
	if c.Guardrail.TimeoutSeconds == 0 {
		c.Guardrail.TimeoutSeconds = 30
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
