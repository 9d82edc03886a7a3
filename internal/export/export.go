package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"socialposts/internal/logging"
	"socialposts/internal/posts"
	"socialposts/internal/postsdb"
)

// Run reads the combined posts from the database at dbPath and writes them
// as a tab-indented JSON array to outPath.
func Run(ctx context.Context, dbPath, outPath string, logger *log.Logger) error {
	if logger == nil {
		logger = logging.Discard()
	}
	if !fileExists(dbPath) {
		return fmt.Errorf("%w: database file not found at %s", posts.ErrStorage, dbPath)
	}

	db, err := postsdb.Open(dbPath)
	if err != nil {
		return fmt.Errorf("%w: %w", posts.ErrStorage, err)
	}
	defer db.Close()

	all, err := postsdb.GetPosts(ctx, db)
	if err != nil {
		return fmt.Errorf("%w: query failed while reading posts: %w", posts.ErrStorage, err)
	}
	logger.Printf("queried %d posts from %s", len(all), dbPath)

	if err := Write(outPath, all); err != nil {
		return err
	}
	logger.Printf("saved combined post data to %s", outPath)
	return nil
}

// Write encodes ps to path, creating its directory. An empty slice is
// written as [].
func Write(path string, ps []posts.Post) error {
	if ps == nil {
		ps = []posts.Post{}
	}
	b, err := json.MarshalIndent(ps, "", "\t")
	if err != nil {
		return fmt.Errorf("failed to marshal posts: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
