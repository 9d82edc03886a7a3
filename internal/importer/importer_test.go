package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialposts/internal/posts"
)

const sampleCSV = `Post_id,Post_Type,comments,likes
101,Carousel,268,16382
102,Reel,138,9267
103,Reel,1089,10100
104,Reel,271,6943
105,Reel,145,17158
`

func TestLoadAndSplit(t *testing.T) {
	types, comments, likes, err := LoadAndSplit(strings.NewReader(sampleCSV), Options{})
	require.NoError(t, err)

	wantTypes := &posts.PostTypes{
		Categories: []string{"Carousel", "Reel"},
		Rows: []posts.TypeRow{
			{PostID: 101, PostType: "Carousel"},
			{PostID: 102, PostType: "Reel"},
			{PostID: 103, PostType: "Reel"},
			{PostID: 104, PostType: "Reel"},
			{PostID: 105, PostType: "Reel"},
		},
	}
	wantComments := &posts.PostComments{Rows: []posts.CommentRow{
		{PostID: 101, Comments: 268},
		{PostID: 102, Comments: 138},
		{PostID: 103, Comments: 1089},
		{PostID: 104, Comments: 271},
		{PostID: 105, Comments: 145},
	}}
	wantLikes := &posts.PostLikes{Rows: []posts.LikeRow{
		{PostID: 101, Likes: 16382},
		{PostID: 102, Likes: 9267},
		{PostID: 103, Likes: 10100},
		{PostID: 104, Likes: 6943},
		{PostID: 105, Likes: 17158},
	}}

	if diff := cmp.Diff(wantTypes, types); diff != "" {
		t.Errorf("post types mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantComments, comments); diff != "" {
		t.Errorf("post comments mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantLikes, likes); diff != "" {
		t.Errorf("post likes mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []string{"Post_id", "Post_Type"}, types.Columns())
	assert.Equal(t, []string{"Post_id", "comments"}, comments.Columns())
	assert.Equal(t, []string{"Post_id", "likes"}, likes.Columns())
}

func TestLoadAndSplit_PreservesRowsAndIDs(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Post_id,Post_Type,comments,likes\n")
	ids := []string{"7", "3", "3", "42", "-1", "9000000000"}
	for _, id := range ids {
		sb.WriteString(id + ",Static,1,2\n")
	}

	types, comments, likes, err := LoadAndSplit(strings.NewReader(sb.String()), Options{})
	require.NoError(t, err)
	require.Equal(t, len(ids), types.Len())
	require.Equal(t, len(ids), comments.Len())
	require.Equal(t, len(ids), likes.Len())

	for i := range ids {
		assert.Equal(t, types.Rows[i].PostID, comments.Rows[i].PostID, "row %d", i)
		assert.Equal(t, types.Rows[i].PostID, likes.Rows[i].PostID, "row %d", i)
	}
	assert.Equal(t, int64(9000000000), types.Rows[5].PostID)
}

func TestLoadAndSplit_ColumnOrderAndExtras(t *testing.T) {
	in := "likes,caption,Post_Type,Post_id,comments\n16382,hello,Carousel,101,268\n"
	types, comments, likes, err := LoadAndSplit(strings.NewReader(in), Options{})
	require.NoError(t, err)
	assert.Equal(t, []posts.TypeRow{{PostID: 101, PostType: "Carousel"}}, types.Rows)
	assert.Equal(t, []posts.CommentRow{{PostID: 101, Comments: 268}}, comments.Rows)
	assert.Equal(t, []posts.LikeRow{{PostID: 101, Likes: 16382}}, likes.Rows)
}

func TestLoadAndSplit_TypeEnforcement(t *testing.T) {
	in := "\ufeffPost_id,Post_Type,comments,likes\n 101 ,Reel, 007 ,10\n"
	types, comments, _, err := LoadAndSplit(strings.NewReader(in), Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(101), types.Rows[0].PostID)
	assert.Equal(t, int64(7), comments.Rows[0].Comments)
}

func TestLoadAndSplit_Malformed(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		opts Options
	}{
		{
			name: "empty input",
			csv:  "",
		},
		{
			name: "missing Post_Type column",
			csv:  "Post_id,comments,likes\n101,268,16382\n",
		},
		{
			name: "header is case sensitive",
			csv:  "post_id,post_type,comments,likes\n101,Reel,1,2\n",
		},
		{
			name: "non numeric likes",
			csv:  "Post_id,Post_Type,comments,likes\n101,Reel,1,many\n",
		},
		{
			name: "float comments",
			csv:  "Post_id,Post_Type,comments,likes\n101,Reel,1.5,2\n",
		},
		{
			name: "negative likes",
			csv:  "Post_id,Post_Type,comments,likes\n101,Reel,1,-2\n",
		},
		{
			name: "empty post id",
			csv:  "Post_id,Post_Type,comments,likes\n,Reel,1,2\n",
		},
		{
			name: "duplicate column",
			csv:  "Post_id,Post_Type,comments,likes,likes\n101,Reel,1,2,3\n",
		},
		{
			name: "ragged row",
			csv:  "Post_id,Post_Type,comments,likes\n101,Reel,1\n",
		},
		{
			name: "unterminated quote",
			csv:  "Post_id,Post_Type,comments,likes\n101,\"Reel,1,2\n",
		},
		{
			name: "category outside vocabulary",
			csv:  "Post_id,Post_Type,comments,likes\n101,Story,1,2\n",
			opts: Options{Categories: []string{"Reel", "Carousel"}},
		},
		{
			name: "schema retypes required column",
			csv:  sampleCSV,
			opts: Options{Schema: posts.Schema{
				posts.ColPostID:   posts.Text,
				posts.ColPostType: posts.Category,
				posts.ColComments: posts.Int64,
				posts.ColLikes:    posts.Int64,
			}},
		},
		{
			name: "declared extra column not numeric",
			csv:  "Post_id,Post_Type,comments,likes,shares\n101,Reel,1,2,lots\n",
			opts: Options{Schema: func() posts.Schema {
				s := posts.DefaultSchema()
				s["shares"] = posts.Int64
				return s
			}()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			types, comments, likes, err := LoadAndSplit(strings.NewReader(tt.csv), tt.opts)
			require.ErrorIs(t, err, posts.ErrMalformedInput)
			assert.Nil(t, types)
			assert.Nil(t, comments)
			assert.Nil(t, likes)
		})
	}
}

func TestLoadAndSplit_Vocabulary(t *testing.T) {
	_, _, _, err := LoadAndSplit(strings.NewReader(sampleCSV), Options{Categories: []string{"Reel", "Carousel", "Static"}})
	require.NoError(t, err)
}

func TestLoadAndSplitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	types, _, _, err := LoadAndSplitFile(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 5, types.Len())

	_, _, _, err = LoadAndSplitFile(filepath.Join(t.TempDir(), "missing.csv"), Options{})
	require.ErrorIs(t, err, posts.ErrMalformedInput)
}
