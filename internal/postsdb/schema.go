package postsdb

import (
	"context"
	"fmt"
)

// Tables lists the destination tables in creation order.
var Tables = []string{"Post_Types", "Post_Comments", "Post_Likes"}

// InitSchema drops the posts tables if present and recreates them empty.
// All drops run before the first create.
func InitSchema(ctx context.Context, db Execer) error {
	for _, t := range Tables {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+t); err != nil {
			return fmt.Errorf("drop %s: %w", t, err)
		}
	}
	stmts := []string{
		`CREATE TABLE Post_Types (
            Post_id INTEGER PRIMARY KEY,
            Post_Type TEXT
        )`,
		`CREATE TABLE Post_Comments (
            Post_id INTEGER PRIMARY KEY,
            comments INTEGER
        )`,
		`CREATE TABLE Post_Likes (
            Post_id INTEGER PRIMARY KEY,
            likes INTEGER
        )`,
	}
	for i, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("create %s: %w", Tables[i], err)
		}
	}
	return nil
}
