package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig system configuration
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig web server configuration
type WebConfig struct {
	Host         string   `yaml:"host"`
	Port         int      `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// DBConfig document store configuration.
// Type is one of postgres, sqlite, mongodb, bolt. URL is the DSN for
// postgres, the connection URI for mongodb and a file path for sqlite and bolt.
type DBConfig struct {
	Type  string `yaml:"type"`
	URL   string `yaml:"url"`
	Name  string `yaml:"name"`
	Debug bool   `yaml:"debug"`
}

// MailConfig outbound mail account
type MailConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Signature string `yaml:"signature"`
}

// LogConfig logger configuration
// Rotation limits apply to the file output only.
type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type AppConfig struct {
	System   SysConfig  `yaml:"system"`
	Web      WebConfig  `yaml:"web"`
	Database DBConfig   `yaml:"database"`
	Mail     MailConfig `yaml:"mail"`
	Logger   LogConfig  `yaml:"logger"`
}

// Addr returns the listen address of the web server
func (c *AppConfig) Addr() string {
	return c.Web.Host + ":" + cast.ToString(c.Web.Port)
}

// GetLogDir returns the log directory under the workdir
func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

// GetDataDir returns the data directory under the workdir
func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

// DefaultAppConfig returns the built-in configuration
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "FoodHub",
			Location: "Asia/Kolkata",
			Workdir:  "/var/foodhub",
		},
		Web: WebConfig{
			Host: "0.0.0.0",
			Port: 3001,
			AllowOrigins: []string{
				"http://localhost:3000",
				"https://sudhakar6233.github.io",
			},
		},
		Database: DBConfig{
			Type: "postgres",
			Name: "foodhub",
		},
		Mail: MailConfig{
			Host:      "smtp.gmail.com",
			Port:      465,
			Signature: "Your Company",
		},
		Logger: LogConfig{
			Mode:       "development",
			Filename:   "/var/foodhub/logs/foodhub.log",
			MaxSizeMB:  64,
			MaxBackups: 7,
			MaxAgeDays: 7,
		},
	}
}

// LoadConfig reads the optional yaml file, then .env, then environment overrides.
// A missing file is not an error.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config file %s", cfile)
			}
		case !os.IsNotExist(err):
			return nil, errors.Wrapf(err, "read config file %s", cfile)
		}
	}

	_ = godotenv.Load()
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setEnvString("FOODHUB_WORKDIR", &cfg.System.Workdir)
	setEnvString("FOODHUB_LOCATION", &cfg.System.Location)
	setEnvBool("FOODHUB_DEBUG", &cfg.System.Debug)

	setEnvString("FOODHUB_WEB_HOST", &cfg.Web.Host)
	setEnvInt("FOODHUB_WEB_PORT", &cfg.Web.Port)
	if v := strings.TrimSpace(os.Getenv("FOODHUB_WEB_ORIGINS")); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Web.AllowOrigins = origins
	}

	// MONGODB_URI is what existing deployments carry
	if uri := os.Getenv("MONGODB_URI"); uri != "" && os.Getenv("FOODHUB_DB_TYPE") == "" {
		cfg.Database.Type = "mongodb"
		cfg.Database.URL = uri
	}
	setEnvString("FOODHUB_DB_TYPE", &cfg.Database.Type)
	setEnvString("FOODHUB_DB_URL", &cfg.Database.URL)
	setEnvString("FOODHUB_DB_NAME", &cfg.Database.Name)
	setEnvBool("FOODHUB_DB_DEBUG", &cfg.Database.Debug)

	setEnvString("GMAIL_USER", &cfg.Mail.Username)
	setEnvString("GMAIL_PASS", &cfg.Mail.Password)
	setEnvString("FOODHUB_MAIL_HOST", &cfg.Mail.Host)
	setEnvInt("FOODHUB_MAIL_PORT", &cfg.Mail.Port)
	setEnvString("FOODHUB_MAIL_SIGNATURE", &cfg.Mail.Signature)

	setEnvString("FOODHUB_LOGGER_MODE", &cfg.Logger.Mode)
	if v := os.Getenv("FOODHUB_LOGGER_FILE"); v != "" {
		cfg.Logger.FileEnable = true
		cfg.Logger.Filename = v
	}
	setEnvInt("FOODHUB_LOGGER_MAX_SIZE", &cfg.Logger.MaxSizeMB)
	setEnvInt("FOODHUB_LOGGER_MAX_BACKUPS", &cfg.Logger.MaxBackups)
	setEnvInt("FOODHUB_LOGGER_MAX_AGE", &cfg.Logger.MaxAgeDays)
	setEnvBool("FOODHUB_LOGGER_COMPRESS", &cfg.Logger.Compress)
}

func setEnvString(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

func setEnvInt(name string, val *int) {
	if v := os.Getenv(name); v != "" {
		if i, err := cast.ToIntE(v); err == nil {
			*val = i
		}
	}
}

func setEnvBool(name string, val *bool) {
	if v := os.Getenv(name); v != "" {
		if b, err := cast.ToBoolE(v); err == nil {
			*val = b
		}
	}
}
