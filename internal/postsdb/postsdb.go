package postsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path/filepath"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"socialposts/internal/posts"
)

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Open opens the SQLite file at dbPath. The directory must already exist.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return db, nil
}

// dsn escapes dbPath into a file: URI so that ?, # and % stay part of the
// file name.
func dsn(dbPath string) string {
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(dbPath),
		RawQuery: "_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)",
	}
	return u.String()
}

func ensureDir(dbPath string) (bool, error) {
	dir := filepath.Dir(dbPath)
	if dir == "" || dir == "." {
		return false, nil
	}
	if _, err := os.Stat(dir); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	return true, nil
}

// Populate appends every row of the three tables in source order.
func Populate(ctx context.Context, db Execer, types *posts.PostTypes, comments *posts.PostComments, likes *posts.PostLikes) error {
	if err := checkTables(types, comments, likes); err != nil {
		return err
	}
	stmt, err := db.PrepareContext(ctx, `INSERT INTO Post_Types (Post_id, Post_Type) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range types.Rows {
		if _, err := stmt.ExecContext(ctx, r.PostID, r.PostType); err != nil {
			return fmt.Errorf("insert Post_Types Post_id=%d: %w", r.PostID, err)
		}
	}

	stmt, err = db.PrepareContext(ctx, `INSERT INTO Post_Comments (Post_id, comments) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range comments.Rows {
		if _, err := stmt.ExecContext(ctx, r.PostID, r.Comments); err != nil {
			return fmt.Errorf("insert Post_Comments Post_id=%d: %w", r.PostID, err)
		}
	}

	stmt, err = db.PrepareContext(ctx, `INSERT INTO Post_Likes (Post_id, likes) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range likes.Rows {
		if _, err := stmt.ExecContext(ctx, r.PostID, r.Likes); err != nil {
			return fmt.Errorf("insert Post_Likes Post_id=%d: %w", r.PostID, err)
		}
	}
	return nil
}

// RebuildAndPopulate recreates the schema in the database at dbPath and
// loads the three tables into it. Drop, create and insert all run in one
// transaction on one connection, so a failed rebuild leaves the previous
// contents in place.
func RebuildAndPopulate(ctx context.Context, dbPath string, types *posts.PostTypes, comments *posts.PostComments, likes *posts.PostLikes, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if err := checkTables(types, comments, likes); err != nil {
		return err
	}
	created, err := ensureDir(dbPath)
	if err != nil {
		return classify(err)
	}
	if created {
		logger.Printf("created directory: %s", filepath.Dir(dbPath))
	}

	db, err := Open(dbPath)
	if err != nil {
		return classify(err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return classify(err)
	}
	defer tx.Rollback()

	if err := InitSchema(ctx, tx); err != nil {
		return classify(err)
	}
	logger.Printf("database schema initialized")

	if err := Populate(ctx, tx, types, comments, likes); err != nil {
		return classify(err)
	}
	if err := tx.Commit(); err != nil {
		return classify(err)
	}
	logger.Printf("tables populated: %d post types, %d post comments, %d post likes", types.Len(), comments.Len(), likes.Len())
	logger.Printf("database %q setup complete", dbPath)
	return nil
}

func checkTables(types *posts.PostTypes, comments *posts.PostComments, likes *posts.PostLikes) error {
	if types == nil || comments == nil || likes == nil {
		return fmt.Errorf("%w: post types, comments and likes tables are all required", posts.ErrMalformedInput)
	}
	return nil
}

// classify maps a driver or filesystem error onto the posts error kinds.
func classify(err error) error {
	var serr *sqlite.Error
	if errors.As(err, &serr) && serr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return fmt.Errorf("%w: %w", posts.ErrConstraintViolation, err)
	}
	return fmt.Errorf("%w: %w", posts.ErrStorage, err)
}
