package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// envDefaults mirrors the environment variables that override built-in
// defaults. Flags still win over the environment; the precedence is
// built-in < environment < flag.
type envDefaults struct {
	FFmpeg   string `env:"CLIPMILL_FFMPEG"`
	FFprobe  string `env:"CLIPMILL_FFPROBE"`
	TempDir  string `env:"CLIPMILL_TMPDIR"`
	LogLevel string `env:"CLIPMILL_LOG_LEVEL"`
	LogFile  string `env:"CLIPMILL_LOG_FILE"`

	S3Bucket        string `env:"S3_BUCKET"`
	S3Region        string `env:"S3_REGION"`
	S3Endpoint      string `env:"S3_ENDPOINT"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
}

// LoadEnv applies environment overrides onto cfg. Unset variables leave the
// existing values untouched.
func LoadEnv(ctx context.Context, cfg *Config) error {
	var env envDefaults
	if err := envconfig.Process(ctx, &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	if env.FFmpeg != "" {
		cfg.FFmpegBin = env.FFmpeg
	}
	if env.FFprobe != "" {
		cfg.FFprobeBin = env.FFprobe
	}
	if env.TempDir != "" {
		cfg.TempDir = env.TempDir
	}
	if env.LogLevel != "" {
		cfg.LogLevel = env.LogLevel
	}
	if env.LogFile != "" {
		cfg.LogFile = env.LogFile
	}

	cfg.S3.Bucket = env.S3Bucket
	cfg.S3.Region = env.S3Region
	cfg.S3.Endpoint = env.S3Endpoint
	cfg.S3.AccessKeyID = env.AccessKeyID
	cfg.S3.SecretAccessKey = env.SecretAccessKey
	return nil
}
