package load

import (
	"context"
	"log"
	"strings"

	"socialposts/internal/importer"
	"socialposts/internal/logging"
	"socialposts/internal/posts"
	"socialposts/internal/postsdb"
)

// Options select the source CSV and destination database of a load run.
type Options struct {
	CSVPath string
	DBPath  string
	// Categories, when set, is the accepted Post_Type vocabulary.
	Categories []string
	// ColumnTypes overrides the CSV column types by name.
	ColumnTypes map[string]string
}

// Run imports the posts CSV and rebuilds the database from it. The store
// is only touched once the whole file has parsed.
func Run(ctx context.Context, opts Options, logger *log.Logger) error {
	if logger == nil {
		logger = logging.Discard()
	}

	schema, err := posts.ParseSchema(opts.ColumnTypes)
	if err != nil {
		return err
	}

	logger.Printf("importing %s", opts.CSVPath)
	types, comments, likes, err := importer.LoadAndSplitFile(opts.CSVPath, importer.Options{Schema: schema, Categories: opts.Categories})
	if err != nil {
		return err
	}
	logger.Printf("read %d posts, post types: %s", types.Len(), strings.Join(types.Categories, ", "))

	if err := postsdb.RebuildAndPopulate(ctx, opts.DBPath, types, comments, likes, logger); err != nil {
		return err
	}
	logger.Printf("load completed")
	return nil
}
