// Package config loads and validates kuma's runtime configuration from an
// optional config.yml, a .env file, and the process environment.
package config

import (
	"time"

	"github.com/kumalab/kuma/errors"
	"github.com/kumalab/kuma/logger"
	"github.com/kumalab/kuma/validation"
)

// Config is the root configuration for the kuma bot.
type Config struct {
	Name    string        `yaml:"name" mapstructure:"name"`
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`

	Discord    DiscordConfig    `yaml:"discord" mapstructure:"discord"`
	Backends   BackendsConfig   `yaml:"backends" mapstructure:"backends"`
	AWS        AWSConfig        `yaml:"aws" mapstructure:"aws"`
	OpenAI     OpenAIConfig     `yaml:"openai" mapstructure:"openai"`
	Generation GenerationConfig `yaml:"generation" mapstructure:"generation"`
	Transcript TranscriptConfig `yaml:"transcript" mapstructure:"transcript"`
	Media      MediaConfig      `yaml:"media" mapstructure:"media"`
}

// DiscordConfig holds the chat front-end settings.
type DiscordConfig struct {
	// Token is the bot session token. Absence is fatal at startup.
	Token string `yaml:"token" mapstructure:"token" validate:"required"`
	// DisplayUTCOffset shifts timestamps shown by kuma-get-last, in hours.
	DisplayUTCOffset int `yaml:"display_utc_offset" mapstructure:"display_utc_offset"`
	// SelectTimeout disables candidate-answer buttons after this duration.
	SelectTimeout time.Duration `yaml:"select_timeout" mapstructure:"select_timeout"`
}

// BackendsConfig selects, by registered name, which backend serves each
// provider kind.
type BackendsConfig struct {
	Extraction    string `yaml:"extraction" mapstructure:"extraction"`
	Caption       string `yaml:"caption" mapstructure:"caption"`
	Transcription string `yaml:"transcription" mapstructure:"transcription"`
	Generation    string `yaml:"generation" mapstructure:"generation"`
}

// AWSConfig holds credentials for the extraction and generation backends.
type AWSConfig struct {
	Region          string `yaml:"region" mapstructure:"region" validate:"required"`
	AccessKeyID     string `yaml:"access_key_id" mapstructure:"access_key_id" validate:"required"`
	SecretAccessKey string `yaml:"secret_access_key" mapstructure:"secret_access_key" validate:"required"`
}

// OpenAIConfig holds settings for the captioning and transcription backends.
type OpenAIConfig struct {
	APIKey             string `yaml:"api_key" mapstructure:"api_key" validate:"required"`
	BaseURL            string `yaml:"base_url" mapstructure:"base_url"`
	CaptionModel       string `yaml:"caption_model" mapstructure:"caption_model"`
	TranscriptionModel string `yaml:"transcription_model" mapstructure:"transcription_model"`
}

// GenerationConfig holds the reply-generation inference parameters.
type GenerationConfig struct {
	ModelID      string  `yaml:"model_id" mapstructure:"model_id"`
	MaxNewTokens int     `yaml:"max_new_tokens" mapstructure:"max_new_tokens" validate:"min=1"`
	TopP         float64 `yaml:"top_p" mapstructure:"top_p" validate:"gt=0,lte=1"`
	TopK         int     `yaml:"top_k" mapstructure:"top_k" validate:"min=1"`
	Temperature  float64 `yaml:"temperature" mapstructure:"temperature" validate:"gt=0,lte=2"`
}

// TranscriptConfig holds the conversation reconstruction heuristics. Both
// values are layout-dependent heuristics, kept configurable on purpose.
type TranscriptConfig struct {
	// LeftThreshold is the horizontal offset below which a line is attributed
	// to the remote participant.
	LeftThreshold float64 `yaml:"left_threshold" mapstructure:"left_threshold" validate:"gt=0,lte=1"`
	// DropLeadingSelf excludes the newest fetched message when the bot
	// itself authored it.
	DropLeadingSelf bool `yaml:"drop_leading_self" mapstructure:"drop_leading_self"`
}

// MediaConfig holds the media normalization settings.
type MediaConfig struct {
	// Language is the expected spoken language of voice clips.
	Language string `yaml:"language" mapstructure:"language"`
	// Workers bounds the inference worker pool.
	Workers int `yaml:"workers" mapstructure:"workers" validate:"min=1"`
	// FetchTimeout caps a single media download.
	FetchTimeout time.Duration `yaml:"fetch_timeout" mapstructure:"fetch_timeout"`
	// FFmpegPath locates the transcoder used for non-wav voice clips.
	FFmpegPath string `yaml:"ffmpeg_path" mapstructure:"ffmpeg_path"`
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "kuma"
	}
	c.Logging.ApplyDefaults()

	if c.Discord.DisplayUTCOffset == 0 {
		c.Discord.DisplayUTCOffset = 2
	}
	if c.Discord.SelectTimeout == 0 {
		c.Discord.SelectTimeout = 60 * time.Second
	}

	if c.Backends.Extraction == "" {
		c.Backends.Extraction = "textract"
	}
	if c.Backends.Caption == "" {
		c.Backends.Caption = "openai-vision"
	}
	if c.Backends.Transcription == "" {
		c.Backends.Transcription = "openai-whisper"
	}
	if c.Backends.Generation == "" {
		c.Backends.Generation = "bedrock"
	}

	if c.OpenAI.CaptionModel == "" {
		c.OpenAI.CaptionModel = "gpt-4o-mini"
	}
	if c.OpenAI.TranscriptionModel == "" {
		c.OpenAI.TranscriptionModel = "whisper-1"
	}

	if c.Generation.ModelID == "" {
		c.Generation.ModelID = "eu.amazon.nova-micro-v1:0"
	}
	if c.Generation.MaxNewTokens == 0 {
		c.Generation.MaxNewTokens = 128
	}
	if c.Generation.TopP == 0 {
		c.Generation.TopP = 0.9
	}
	if c.Generation.TopK == 0 {
		c.Generation.TopK = 20
	}
	if c.Generation.Temperature == 0 {
		c.Generation.Temperature = 0.7
	}

	if c.Transcript.LeftThreshold == 0 {
		c.Transcript.LeftThreshold = 0.1
	}

	if c.Media.Workers == 0 {
		c.Media.Workers = 4
	}
	if c.Media.FetchTimeout == 0 {
		c.Media.FetchTimeout = 30 * time.Second
	}
	if c.Media.FFmpegPath == "" {
		c.Media.FFmpegPath = "ffmpeg"
	}
}

// Validate checks the configuration. Missing credentials are reported as
// configuration errors so the process can refuse to start.
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return errors.MissingConfig("DISCORD_BOT_TOKEN")
	}
	if c.AWS.Region == "" {
		return errors.MissingConfig("AWS_REGION_NAME")
	}
	if c.AWS.AccessKeyID == "" {
		return errors.MissingConfig("AWS_ACCESS_KEY_ID")
	}
	if c.AWS.SecretAccessKey == "" {
		return errors.MissingConfig("AWS_SECRET_ACCESS_KEY")
	}
	if c.OpenAI.APIKey == "" {
		return errors.MissingConfig("OPENAI_API_KEY")
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.InvalidConfig("logging", err.Error())
	}
	return validation.Validate(c)
}
