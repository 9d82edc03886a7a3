package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// UserConfig is what `config init` writes.
type UserConfig struct {
	DatabasePath string
	CSVPath      string
	JSONPath     string
	PostTypes    []string
	ColumnTypes  map[string]string
	LogFile      string
}

// WriteConfig renders uc to path, backing up any file already there.
func WriteConfig(path string, uc UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		if err := BackupFile(path); err != nil {
			return fmt.Errorf("failed to back up existing config: %w", err)
		}
	}

	var sb strings.Builder
	sb.WriteString("# socialposts configuration\n")
	if strings.TrimSpace(uc.DatabasePath) != "" {
		sb.WriteString("database:\n")
		sb.WriteString(fmt.Sprintf("  path: %q\n", uc.DatabasePath))
	}
	if strings.TrimSpace(uc.CSVPath) != "" {
		sb.WriteString(fmt.Sprintf("csv_path: %q\n", uc.CSVPath))
	}
	if strings.TrimSpace(uc.JSONPath) != "" {
		sb.WriteString(fmt.Sprintf("json_path: %q\n", uc.JSONPath))
	}
	if len(uc.PostTypes) > 0 {
		sb.WriteString("# Post_Type labels accepted on import; leave empty to accept any\n")
		sb.WriteString("post_types:\n")
		for _, t := range uc.PostTypes {
			sb.WriteString(fmt.Sprintf("  - %q\n", strings.TrimSpace(t)))
		}
	}
	if len(uc.ColumnTypes) > 0 {
		sb.WriteString("column_types:\n")
		names := make([]string, 0, len(uc.ColumnTypes))
		for name := range uc.ColumnTypes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", name, uc.ColumnTypes[name]))
		}
	}
	if strings.TrimSpace(uc.LogFile) != "" {
		sb.WriteString(fmt.Sprintf("log_file: %q\n", uc.LogFile))
	}

	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

// BackupFile creates a backup of the specified file with a timestamp
func BackupFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	ts := time.Now().Format("20060102-150405")
	bak := path + ".bak-" + ts
	return os.WriteFile(bak, b, 0o644)
}
