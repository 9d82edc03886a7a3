package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"socialposts/internal/posts"
)

// Options control how the posts CSV is parsed.
type Options struct {
	// Schema overrides the column types. Nil means posts.DefaultSchema().
	Schema posts.Schema
	// Categories, when set, is the only vocabulary accepted for Post_Type.
	Categories []string
}

// LoadAndSplitFile opens path and hands it to LoadAndSplit.
func LoadAndSplitFile(path string, opts Options) (*posts.PostTypes, *posts.PostComments, *posts.PostLikes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", posts.ErrMalformedInput, err)
	}
	defer f.Close()
	return LoadAndSplit(f, opts)
}

// LoadAndSplit reads posts CSV from r under the column schema and splits it
// into the Post_Types, Post_Comments and Post_Likes tables. Any parse
// failure returns posts.ErrMalformedInput and no tables.
func LoadAndSplit(r io.Reader, opts Options) (*posts.PostTypes, *posts.PostComments, *posts.PostLikes, error) {
	records, err := Read(r, opts)
	if err != nil {
		return nil, nil, nil, err
	}
	types, comments, likes := posts.Split(records)
	return types, comments, likes, nil
}

// Read parses the whole CSV into source records.
func Read(r io.Reader, opts Options) ([]posts.Post, error) {
	schema := opts.Schema
	if schema == nil {
		schema = posts.DefaultSchema()
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	var vocab map[string]struct{}
	if len(opts.Categories) > 0 {
		vocab = make(map[string]struct{}, len(opts.Categories))
		for _, c := range opts.Categories {
			vocab[strings.TrimSpace(c)] = struct{}{}
		}
	}

	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input, header row expected", posts.ErrMalformedInput)
		}
		return nil, fmt.Errorf("%w: reading header: %v", posts.ErrMalformedInput, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q in header", posts.ErrMalformedInput, name)
		}
		index[name] = i
	}
	for _, name := range schema.Required() {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", posts.ErrMalformedInput, name)
		}
	}
	// declared extras are only checked when present
	var extras []string
	for _, name := range schema.Extra() {
		if _, ok := index[name]; ok {
			extras = append(extras, name)
		}
	}

	var out []posts.Post
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: %v", posts.ErrMalformedInput, err)
		}

		var p posts.Post
		if p.ID, err = intCell(rec, index, posts.ColPostID, line); err != nil {
			return nil, err
		}
		if p.Type, err = categoryCell(rec, index, posts.ColPostType, line, vocab); err != nil {
			return nil, err
		}
		if p.Comments, err = countCell(rec, index, posts.ColComments, line); err != nil {
			return nil, err
		}
		if p.Likes, err = countCell(rec, index, posts.ColLikes, line); err != nil {
			return nil, err
		}
		for _, name := range extras {
			if err := checkCell(rec, index, name, schema[name], line); err != nil {
				return nil, err
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func cell(rec []string, index map[string]int, col string, line int) (string, error) {
	v := strings.TrimSpace(rec[index[col]])
	if v == "" {
		return "", fmt.Errorf("%w: line %d: column %q is empty", posts.ErrMalformedInput, line, col)
	}
	return v, nil
}

func intCell(rec []string, index map[string]int, col string, line int) (int64, error) {
	v, err := cell(rec, index, col, line)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: column %q: %q is not a 64-bit integer", posts.ErrMalformedInput, line, col, v)
	}
	return n, nil
}

func countCell(rec []string, index map[string]int, col string, line int) (int64, error) {
	n, err := intCell(rec, index, col, line)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: line %d: column %q: negative count %d", posts.ErrMalformedInput, line, col, n)
	}
	return n, nil
}

func categoryCell(rec []string, index map[string]int, col string, line int, vocab map[string]struct{}) (string, error) {
	v, err := cell(rec, index, col, line)
	if err != nil {
		return "", err
	}
	if vocab != nil {
		if _, ok := vocab[v]; !ok {
			return "", fmt.Errorf("%w: line %d: column %q: unknown category %q", posts.ErrMalformedInput, line, col, v)
		}
	}
	return v, nil
}

func checkCell(rec []string, index map[string]int, col string, typ posts.ColumnType, line int) error {
	switch typ {
	case posts.Int64:
		_, err := intCell(rec, index, col, line)
		return err
	case posts.Category:
		_, err := cell(rec, index, col, line)
		return err
	}
	return nil
}
