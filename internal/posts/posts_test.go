package posts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	src := []Post{
		{ID: 101, Type: "Carousel", Comments: 268, Likes: 16382},
		{ID: 102, Type: "Reel", Comments: 138, Likes: 9267},
		{ID: 101, Type: "Reel", Comments: 1, Likes: 2},
	}
	types, comments, likes := Split(src)

	assert.Equal(t, []string{"Carousel", "Reel"}, types.Categories)
	assert.Equal(t, []TypeRow{{101, "Carousel"}, {102, "Reel"}, {101, "Reel"}}, types.Rows)
	assert.Equal(t, []CommentRow{{101, 268}, {102, 138}, {101, 1}}, comments.Rows)
	assert.Equal(t, []LikeRow{{101, 16382}, {102, 9267}, {101, 2}}, likes.Rows)
}

func TestSplit_Empty(t *testing.T) {
	types, comments, likes := Split(nil)
	assert.Zero(t, types.Len())
	assert.Zero(t, comments.Len())
	assert.Zero(t, likes.Len())
	assert.Empty(t, types.Categories)
}

func TestSchema_Validate(t *testing.T) {
	require.NoError(t, DefaultSchema().Validate())

	withExtra := DefaultSchema()
	withExtra["caption"] = Text
	require.NoError(t, withExtra.Validate())
	assert.Equal(t, []string{"caption"}, withExtra.Extra())

	missing := DefaultSchema()
	delete(missing, ColLikes)
	require.ErrorIs(t, missing.Validate(), ErrMalformedInput)

	retyped := DefaultSchema()
	retyped[ColPostType] = Text
	require.ErrorIs(t, retyped.Validate(), ErrMalformedInput)
}

func TestDefaultSchema_IsACopy(t *testing.T) {
	s := DefaultSchema()
	s[ColPostID] = Text
	assert.Equal(t, Int64, DefaultSchema()[ColPostID])
}

func TestParseSchema(t *testing.T) {
	s, err := ParseSchema(nil)
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = ParseSchema(map[string]string{
		"Post_id":   "int64",
		"Post_Type": "Category",
		"comments":  "integer",
		"likes":     " int ",
		"caption":   "string",
	})
	require.NoError(t, err)
	assert.Equal(t, Schema{
		ColPostID:   Int64,
		ColPostType: Category,
		ColComments: Int64,
		ColLikes:    Int64,
		"caption":   Text,
	}, s)

	_, err = ParseSchema(map[string]string{"Post_id": "float64"})
	require.ErrorIs(t, err, ErrMalformedInput)

	_, err = ParseSchema(map[string]string{"caption": "text"})
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestColumnType_String(t *testing.T) {
	assert.Equal(t, "int64", Int64.String())
	assert.Equal(t, "category", Category.String())
	assert.Equal(t, "text", Text.String())
	assert.Equal(t, "ColumnType(9)", ColumnType(9).String())
}
