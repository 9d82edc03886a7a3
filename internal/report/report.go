package report

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"socialposts/internal/posts"
	"socialposts/internal/postsdb"
)

// Summary holds the aggregates printed by the report.
type Summary struct {
	MostCommented *posts.Post
	MostLiked     *posts.Post
	MostPopular   *postsdb.TypeCount
	Totals        []postsdb.TypeTotals
}

func Run(ctx context.Context, dbPath string, w io.Writer) error {
	if !fileExists(dbPath) {
		fmt.Fprintf(w, "Posts database not found at %s\n", dbPath)
		fmt.Fprintln(w, "Hint: Run 'socialposts load <csv> <db>' to create and populate it.")
		return nil
	}

	db, err := postsdb.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed opening the posts database: %w", err)
	}
	defer db.Close()

	s, err := Build(ctx, db)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "no such table") {
			fmt.Fprintln(w, "Posts database is present but not initialized (missing tables)")
			fmt.Fprintln(w, "Hint: Run 'socialposts load <csv> <db>' once to build the schema.")
			return nil
		}
		return fmt.Errorf("query failed while reading from the posts database: %w", err)
	}

	Render(w, s)
	return nil
}

// Build runs the aggregate queries.
func Build(ctx context.Context, db *sql.DB) (*Summary, error) {
	var s Summary
	var err error
	if s.MostCommented, err = postsdb.MostCommented(ctx, db); err != nil {
		return nil, err
	}
	if s.MostLiked, err = postsdb.MostLiked(ctx, db); err != nil {
		return nil, err
	}
	if s.MostPopular, err = postsdb.MostPopularType(ctx, db); err != nil {
		return nil, err
	}
	if s.Totals, err = postsdb.TotalsByType(ctx, db); err != nil {
		return nil, err
	}
	return &s, nil
}

// Render prints each section with a heading, a table and a blank line.
func Render(w io.Writer, s *Summary) {
	if s.MostCommented == nil {
		fmt.Fprintln(w, "No posts found in the database.")
		return
	}

	postHeaders := []string{"post_id", "post_type", "comments", "likes"}

	section(w, "Most Commented Post:", postHeaders, [][]string{postRow(s.MostCommented)})
	section(w, "Most Liked Post:", postHeaders, [][]string{postRow(s.MostLiked)})
	section(w, "Most Popular Post Type:", []string{"post_type", "count"}, [][]string{
		{s.MostPopular.Type, strconv.FormatInt(s.MostPopular.Count, 10)},
	})

	var rows [][]string
	for _, t := range s.Totals {
		rows = append(rows, []string{t.Type, strconv.FormatInt(t.Likes, 10), strconv.FormatInt(t.Comments, 10)})
	}
	section(w, "Total Likes and Comments by Post Type:", []string{"post_type", "likes", "comments"}, rows)
}

func section(w io.Writer, title string, headers []string, rows [][]string) {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, title)
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w)
}

func postRow(p *posts.Post) []string {
	return []string{
		strconv.FormatInt(p.ID, 10),
		p.Type,
		strconv.FormatInt(p.Comments, 10),
		strconv.FormatInt(p.Likes, 10),
	}
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	if _, err := os.Stat(path); err == nil {
		return true
	}
	return false
}
