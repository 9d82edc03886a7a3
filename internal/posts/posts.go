// Package posts holds the tables exchanged between the importer and the
// SQLite store: one wide source record split into three narrow tables that
// share Post_id as their key.
package posts

import "sort"

// Column names of the source CSV.
const (
	ColPostID   = "Post_id"
	ColPostType = "Post_Type"
	ColComments = "comments"
	ColLikes    = "likes"
)

// Post is a combined record, as read back from the store.
type Post struct {
	ID       int64  `json:"post_id"`
	Type     string `json:"post_type"`
	Comments int64  `json:"comments"`
	Likes    int64  `json:"likes"`
}

type TypeRow struct {
	PostID   int64
	PostType string
}

type CommentRow struct {
	PostID   int64
	Comments int64
}

type LikeRow struct {
	PostID int64
	Likes  int64
}

// PostTypes is the (Post_id, Post_Type) projection. Categories holds the
// distinct labels seen, sorted.
type PostTypes struct {
	Categories []string
	Rows       []TypeRow
}

type PostComments struct {
	Rows []CommentRow
}

type PostLikes struct {
	Rows []LikeRow
}

func (t *PostTypes) Columns() []string    { return []string{ColPostID, ColPostType} }
func (t *PostComments) Columns() []string { return []string{ColPostID, ColComments} }
func (t *PostLikes) Columns() []string    { return []string{ColPostID, ColLikes} }

func (t *PostTypes) Len() int    { return len(t.Rows) }
func (t *PostComments) Len() int { return len(t.Rows) }
func (t *PostLikes) Len() int    { return len(t.Rows) }

// Split projects source records into the three narrow tables. Row order is
// preserved and nothing is dropped, so duplicate ids survive until the store
// rejects them.
func Split(src []Post) (*PostTypes, *PostComments, *PostLikes) {
	types := &PostTypes{Rows: make([]TypeRow, 0, len(src))}
	comments := &PostComments{Rows: make([]CommentRow, 0, len(src))}
	likes := &PostLikes{Rows: make([]LikeRow, 0, len(src))}

	seen := make(map[string]struct{})
	for _, p := range src {
		types.Rows = append(types.Rows, TypeRow{PostID: p.ID, PostType: p.Type})
		comments.Rows = append(comments.Rows, CommentRow{PostID: p.ID, Comments: p.Comments})
		likes.Rows = append(likes.Rows, LikeRow{PostID: p.ID, Likes: p.Likes})
		if _, ok := seen[p.Type]; !ok {
			seen[p.Type] = struct{}{}
			types.Categories = append(types.Categories, p.Type)
		}
	}
	sort.Strings(types.Categories)
	return types, comments, likes
}
