package postsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"socialposts/internal/posts"
)

// TypeCount is how many posts carry a post type.
type TypeCount struct {
	Type  string
	Count int64
}

// TypeTotals sums likes and comments for one post type.
type TypeTotals struct {
	Type     string
	Likes    int64
	Comments int64
}

const combinedSelect = `SELECT
        pt.Post_id,
        pt.Post_Type,
        pc.comments,
        pl.likes
FROM Post_Types AS pt
LEFT JOIN Post_Comments AS pc ON pt.Post_id = pc.Post_id
LEFT JOIN Post_Likes AS pl ON pt.Post_id = pl.Post_id`

// GetPosts joins the three tables back into combined posts ordered by id.
// A post missing from Post_Comments or Post_Likes reads as zero.
func GetPosts(ctx context.Context, db *sql.DB) ([]posts.Post, error) {
	rows, err := db.QueryContext(ctx, combinedSelect+" ORDER BY pt.Post_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []posts.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func GetPost(ctx context.Context, db *sql.DB, id int64) (*posts.Post, error) {
	return queryOne(ctx, db, combinedSelect+" WHERE pt.Post_id = ?", id)
}

// MostCommented returns the post with the most comments, lowest id first
// on ties. Nil when the store is empty.
func MostCommented(ctx context.Context, db *sql.DB) (*posts.Post, error) {
	return queryOne(ctx, db, combinedSelect+" ORDER BY pc.comments DESC, pt.Post_id ASC LIMIT 1")
}

// MostLiked returns the post with the most likes, lowest id first on ties.
func MostLiked(ctx context.Context, db *sql.DB) (*posts.Post, error) {
	return queryOne(ctx, db, combinedSelect+" ORDER BY pl.likes DESC, pt.Post_id ASC LIMIT 1")
}

// MostPopularType returns the most frequent post type, alphabetical on ties.
func MostPopularType(ctx context.Context, db *sql.DB) (*TypeCount, error) {
	row := db.QueryRowContext(ctx, `SELECT Post_Type, COUNT(*) AS n FROM Post_Types
        GROUP BY Post_Type ORDER BY n DESC, Post_Type ASC LIMIT 1`)
	var tc TypeCount
	if err := row.Scan(&tc.Type, &tc.Count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &tc, nil
}

// TotalsByType sums likes and comments per post type, ordered by type.
func TotalsByType(ctx context.Context, db *sql.DB) ([]TypeTotals, error) {
	rows, err := db.QueryContext(ctx, `SELECT
        pt.Post_Type,
        COALESCE(SUM(pl.likes), 0),
        COALESCE(SUM(pc.comments), 0)
FROM Post_Types AS pt
LEFT JOIN Post_Comments AS pc ON pt.Post_id = pc.Post_id
LEFT JOIN Post_Likes AS pl ON pt.Post_id = pl.Post_id
GROUP BY pt.Post_Type
ORDER BY pt.Post_Type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []TypeTotals
	for rows.Next() {
		var t TypeTotals
		if err := rows.Scan(&t.Type, &t.Likes, &t.Comments); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CountRows returns the number of rows in one of Tables.
func CountRows(ctx context.Context, db *sql.DB, table string) (int64, error) {
	if !slices.Contains(Tables, table) {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int64
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (posts.Post, error) {
	var p posts.Post
	var postType sql.NullString
	var comments, likes sql.NullInt64
	if err := s.Scan(&p.ID, &postType, &comments, &likes); err != nil {
		return p, err
	}
	p.Type = postType.String
	p.Comments = comments.Int64
	p.Likes = likes.Int64
	return p, nil
}

func queryOne(ctx context.Context, db *sql.DB, q string, args ...any) (*posts.Post, error) {
	p, err := scanPost(db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
