package config

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/wb-go/wbf/zlog"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Storage drivers.
const (
	DriverLocal = "local"
	DriverMinIO = "minio"
)

// Config holds the main configuration for the application.
type Config struct {
	Storage   Storage   `mapstructure:"storage"`
	Watermark Watermark `mapstructure:"watermark"`
	Output    Output    `mapstructure:"output"`
	Prompt    Prompt    `mapstructure:"prompt"`
}

// Storage holds configuration for the image storage backend.
type Storage struct {
	Driver string `mapstructure:"driver"` // local or minio
	Dir    string `mapstructure:"dir"`    // image directory (local) or object prefix (minio)
	MinIO  MinIO  `mapstructure:"minio"`
}

// MinIO holds configuration for the S3-compatible storage backend.
type MinIO struct {
	Endpoint   string `mapstructure:"endpoint"`
	AccessKey  string `mapstructure:"access_key"`
	SecretKey  string `mapstructure:"secret_key"`
	BucketName string `mapstructure:"bucket_name"`
	UseSSL     bool   `mapstructure:"use_ssl"`
}

// Watermark holds the fixed rendering parameters of watermarks.
type Watermark struct {
	FontPath  string  `mapstructure:"font_path"`  // TTF/OTF file, empty for the embedded font
	FontSize  float64 `mapstructure:"font_size"`  // text size in points
	TextColor string  `mapstructure:"text_color"` // hex colour of text watermarks
	Opacity   float64 `mapstructure:"opacity"`    // source opacity of image watermarks
}

// Output holds encoder settings.
type Output struct {
	JPEGQuality int `mapstructure:"jpeg_quality"`
}

// Prompt holds the default answers offered by the interactive prompts.
type Prompt struct {
	DefaultInput string `mapstructure:"default_input"`
	DefaultMark  string `mapstructure:"default_mark"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", DriverLocal)
	v.SetDefault("storage.dir", "./img")
	v.SetDefault("storage.minio.endpoint", "localhost:9000")
	v.SetDefault("storage.minio.bucket_name", "images")
	v.SetDefault("storage.minio.use_ssl", false)

	v.SetDefault("watermark.font_path", "")
	v.SetDefault("watermark.font_size", 32)
	v.SetDefault("watermark.text_color", "#000000")
	v.SetDefault("watermark.opacity", 0.3)

	v.SetDefault("output.jpeg_quality", 100)

	v.SetDefault("prompt.default_input", "test.jpg")
	v.SetDefault("prompt.default_mark", "logo.png")
}

// bindEnv binds credentials to their conventional environment variable names.
func bindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"storage.minio.access_key": "MINIO_ACCESS_KEY",
		"storage.minio.secret_key": "MINIO_SECRET_KEY",
	}

	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	return nil
}

// Flags returns the command-line flags understood by Load.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("watermark", pflag.ContinueOnError)
	fs.String("config", "./config/config.yml", "path to the config file")
	fs.String("dir", "", "image directory (overrides storage.dir)")
	return fs
}

// Load reads the configuration. A missing config file is not an error:
// every key has a default. Environment variables use the WATERMARK_ prefix
// (e.g. WATERMARK_STORAGE_DIR). flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	}
	v.SetEnvPrefix("watermark")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if flags != nil {
		if f := flags.Lookup("dir"); f != nil {
			if err := v.BindPFlag("storage.dir", f); err != nil {
				return nil, fmt.Errorf("failed to bind flag dir: %w", err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// MustLoad loads the configuration from the specified file path.
// It panics if the configuration cannot be loaded or is invalid.
func MustLoad(path string, flags *pflag.FlagSet) *Config {
	cfg, err := Load(path, flags)
	if err != nil {
		zlog.Logger.Panic().Err(err).Msg("failed to load config")
	}

	return cfg
}

// Validate checks the configuration for values the application cannot use.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverLocal:
		if strings.TrimSpace(c.Storage.Dir) == "" {
			return errors.New("storage dir is required")
		}
	case DriverMinIO:
		if err := c.Storage.MinIO.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Watermark.FontSize <= 0 {
		return errors.New("watermark font size must be positive")
	}
	if !hexColor.MatchString(c.Watermark.TextColor) {
		return fmt.Errorf("watermark text color %q must be #rgb, #rrggbb or #rrggbbaa", c.Watermark.TextColor)
	}
	if c.Watermark.Opacity < 0 || c.Watermark.Opacity > 1 {
		return errors.New("watermark opacity must be in [0, 1]")
	}
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return errors.New("jpeg quality must be in [1, 100]")
	}

	return nil
}

// Validate checks the MinIO connection settings.
func (m MinIO) Validate() error {
	if strings.TrimSpace(m.Endpoint) == "" {
		return errors.New("minio endpoint is required")
	}
	if strings.Contains(m.Endpoint, "://") {
		return errors.New("minio endpoint must not include a scheme")
	}
	if strings.TrimSpace(m.AccessKey) == "" {
		return errors.New("minio access key is required")
	}
	if strings.TrimSpace(m.SecretKey) == "" {
		return errors.New("minio secret key is required")
	}
	if strings.TrimSpace(m.BucketName) == "" {
		return errors.New("minio bucket name is required")
	}

	return nil
}
