package load

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialposts/internal/posts"
	"socialposts/internal/postsdb"
)

const postsCSV = `Post_id,Post_Type,comments,likes
101,Carousel,268,16382
102,Reel,138,9267
103,Reel,1089,10100
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "posts.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "database", "social_posts.db")
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	err := Run(context.Background(), Options{CSVPath: writeCSV(t, postsCSV), DBPath: dbPath}, logger)
	require.NoError(t, err)

	db, err := postsdb.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	p, err := postsdb.GetPost(context.Background(), db, 102)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, posts.Post{ID: 102, Type: "Reel", Comments: 138, Likes: 9267}, *p)

	out := buf.String()
	assert.Contains(t, out, "read 3 posts, post types: Carousel, Reel")
	assert.Contains(t, out, "created directory")
	assert.Contains(t, out, "load completed")
}

func TestRun_MalformedLeavesStoreUntouched(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "social_posts.db")

	err := Run(context.Background(), Options{CSVPath: writeCSV(t, "Post_id,comments,likes\n1,2,3\n"), DBPath: dbPath}, nil)
	require.ErrorIs(t, err, posts.ErrMalformedInput)

	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_UnknownCategory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "social_posts.db")
	err := Run(context.Background(), Options{
		CSVPath:    writeCSV(t, postsCSV),
		DBPath:     dbPath,
		Categories: []string{"Reel"},
	}, nil)
	require.ErrorIs(t, err, posts.ErrMalformedInput)
}

func TestRun_DuplicateIDs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "social_posts.db")
	csv := postsCSV + "101,Reel,1,1\n"

	err := Run(context.Background(), Options{CSVPath: writeCSV(t, csv), DBPath: dbPath}, nil)
	require.ErrorIs(t, err, posts.ErrConstraintViolation)
}

func TestRun_ColumnTypes(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "social_posts.db")
	csv := "Post_id,Post_Type,comments,likes,shares\n101,Reel,1,2,3\n"

	err := Run(context.Background(), Options{
		CSVPath: writeCSV(t, csv),
		DBPath:  dbPath,
		ColumnTypes: map[string]string{
			"Post_id": "int64", "Post_Type": "category", "comments": "int64", "likes": "int64", "shares": "int64",
		},
	}, nil)
	require.NoError(t, err)

	err = Run(context.Background(), Options{
		CSVPath:     writeCSV(t, csv),
		DBPath:      dbPath,
		ColumnTypes: map[string]string{"Post_id": "text", "Post_Type": "category", "comments": "int64", "likes": "int64"},
	}, nil)
	require.ErrorIs(t, err, posts.ErrMalformedInput)
}
