package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file. They may also come
// from a .env file in the working directory.
const (
	EnvDatabasePath = "SOCIALPOSTS_DB"
	EnvCSVPath      = "SOCIALPOSTS_CSV"
	EnvJSONPath     = "SOCIALPOSTS_JSON"
	EnvLogFile      = "SOCIALPOSTS_LOG_FILE"
)

// AppConfig carries the pipeline settings.
type AppConfig struct {
	DatabasePath string
	CSVPath      string
	JSONPath     string
	// PostTypes restricts the accepted Post_Type labels when non-empty.
	PostTypes []string
	// ColumnTypes maps CSV column names to type names (int64, category,
	// text). Empty means the default posts schema.
	ColumnTypes map[string]string
	LogFile     string
}

func FallbackDBPath() string {
	return filepath.Join("database", "social_posts.db")
}

// ConfigPath is ~/.config/socialposts/config.yaml.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "socialposts", "config.yaml"), nil
}

// LoadAppConfig parses ~/.config/socialposts/config.yaml, then applies
// .env and environment overrides. A missing config file is not an error.
func LoadAppConfig() (AppConfig, error) {
	cfgPath, err := ConfigPath()
	if err != nil {
		cfgPath = ""
	}
	return load(cfgPath, ".env")
}

func load(cfgPath, envPath string) (AppConfig, error) {
	ac := AppConfig{
		DatabasePath: FallbackDBPath(),
		CSVPath:      filepath.Join("data", "posts.csv"),
		JSONPath:     filepath.Join("data", "posts.json"),
	}

	if cfgPath != "" {
		raw, err := readRaw(cfgPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return ac, err
		}
		applyRaw(&ac, raw)
	}

	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return ac, err
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvDatabasePath)); v != "" {
		ac.DatabasePath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCSVPath)); v != "" {
		ac.CSVPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvJSONPath)); v != "" {
		ac.JSONPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		ac.LogFile = v
	}

	ac.DatabasePath = ExpandPath(ac.DatabasePath)
	ac.CSVPath = ExpandPath(ac.CSVPath)
	ac.JSONPath = ExpandPath(ac.JSONPath)
	ac.LogFile = ExpandPath(ac.LogFile)
	return ac, nil
}

func readRaw(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func applyRaw(ac *AppConfig, raw map[string]any) {
	// database.path, or the flat database_path
	if db, ok := raw["database"].(map[string]any); ok {
		if p, ok := db["path"].(string); ok && strings.TrimSpace(p) != "" {
			ac.DatabasePath = p
		}
	}
	if p, ok := raw["database_path"].(string); ok && strings.TrimSpace(p) != "" {
		ac.DatabasePath = p
	}
	if p, ok := raw["csv_path"].(string); ok && strings.TrimSpace(p) != "" {
		ac.CSVPath = p
	}
	if p, ok := raw["json_path"].(string); ok && strings.TrimSpace(p) != "" {
		ac.JSONPath = p
	}
	if p, ok := raw["log_file"].(string); ok && strings.TrimSpace(p) != "" {
		ac.LogFile = p
	}
	if cols, ok := raw["column_types"].(map[string]any); ok {
		ac.ColumnTypes = make(map[string]string, len(cols))
		for name, v := range cols {
			if s, ok := v.(string); ok {
				ac.ColumnTypes[name] = s
			}
		}
	}
	if types, ok := raw["post_types"].([]any); ok {
		for _, it := range types {
			if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
				ac.PostTypes = append(ac.PostTypes, strings.TrimSpace(s))
			}
		}
	}
}

// ExpandPath expands leading ~ and environment variables in a filesystem path.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			if p == "~" {
				p = home
			} else if strings.HasPrefix(p, "~/") {
				p = filepath.Join(home, p[2:])
			}
		}
	}
	return p
}
