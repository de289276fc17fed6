package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config groups the application configuration (read via Viper from env vars
// and optionally a file).
type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	Paths PathsConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env  string // development, production
	Name string
}

// HTTPConfig settings of the local HTTP surface.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PathsConfig locations of the template, the output directory, the sequence
// log and the font assets. Defaults mirror the layout the tool has always
// used: template/, output/, config/ and assets/ next to the binary.
type PathsConfig struct {
	TemplatePath string
	OutputDir    string
	LogPath      string
	FontDir      string
}

// Load reads configuration from environment variables (and optionally from a
// .env / config.env file). Env vars take priority. Expected names: APP_ENV,
// HTTP_PORT, TEMPLATE_PATH, OUTPUT_DIR, LOG_PATH, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Optional config file (.env or config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignore if absent

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignore if absent

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "credit-note"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Paths: PathsConfig{
			TemplatePath: getString(v, "TEMPLATE_PATH", "template/credit_note_template.xlsx"),
			OutputDir:    getString(v, "OUTPUT_DIR", "output"),
			LogPath:      getString(v, "LOG_PATH", "config/credit_note_log.json"),
			FontDir:      getString(v, "FONT_DIR", "assets/fonts"),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
