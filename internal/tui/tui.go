package tui

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"socialposts/internal/posts"
	"socialposts/internal/postsdb"
)

// Run opens the database at dbPath and browses its posts.
func Run(ctx context.Context, dbPath string) error {
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("posts database not found at %s", dbPath)
	}
	db, err := postsdb.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed opening the posts database: %w", err)
	}
	defer db.Close()

	items, err := postsdb.GetPosts(ctx, db)
	if err != nil {
		return fmt.Errorf("query failed while reading from the posts database: %w", err)
	}

	p := tea.NewProgram(newBrowser(items), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

type browser struct {
	items    []posts.Post
	keys     keyMap
	help     help.Model
	selected int
	pageSize int
	width    int
	ready    bool
}

func newBrowser(items []posts.Post) browser {
	return browser{
		items:    items,
		keys:     defaultKeyMap(),
		help:     help.New(),
		pageSize: 10,
	}
}

func (m browser) Init() tea.Cmd {
	return nil
}

func (m browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.selected = max(0, m.selected-1)
		case key.Matches(msg, m.keys.Down):
			m.selected = min(m.last(), m.selected+1)
		case key.Matches(msg, m.keys.NextPage):
			if m.page() < m.totalPages()-1 {
				m.selected = min(m.last(), (m.page()+1)*m.pageSize)
				return m, tea.ClearScreen
			}
		case key.Matches(msg, m.keys.PrevPage):
			if m.page() > 0 {
				m.selected = (m.page() - 1) * m.pageSize
				return m, tea.ClearScreen
			}
		case key.Matches(msg, m.keys.Home):
			m.selected = 0
		case key.Matches(msg, m.keys.End):
			m.selected = m.last()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width - 2
		m.help.Width = msg.Width
		// room for title, header, borders and help
		m.pageSize = max(5, msg.Height-8)
		m.ready = true
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m browser) View() string {
	if !m.ready {
		return "...Loading"
	}
	if len(m.items) == 0 {
		return "No posts found in the database"
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(darkBlue()).
		Render(fmt.Sprintf("Posts %d/%d (page %d/%d)", m.selected+1, len(m.items), m.page()+1, m.totalPages()))

	return lipgloss.NewStyle().Padding(0, 1).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, m.renderTable(), m.help.ShortHelpView(m.keys.ShortHelp())),
	)
}

func (m browser) renderTable() string {
	start := m.page() * m.pageSize
	end := min(start+m.pageSize, len(m.items))

	var rows [][]string
	for _, p := range m.items[start:end] {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Type,
			strconv.FormatInt(p.Comments, 10),
			strconv.FormatInt(p.Likes, 10),
		})
	}
	cursor := m.selected - start

	headerStyle := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(darkBlue()).Align(lipgloss.Center)
	return table.New().
		Width(m.width).
		Border(lipgloss.ThickBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(darkBlue())).
		Headers(posts.ColPostID, posts.ColPostType, posts.ColComments, posts.ColLikes).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row == cursor {
				return lipgloss.NewStyle().Padding(0, 1).Background(lightBlue()).Foreground(lipgloss.Color("0"))
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

func (m browser) page() int {
	return m.selected / m.pageSize
}

func (m browser) totalPages() int {
	return max(1, (len(m.items)+m.pageSize-1)/m.pageSize)
}

func (m browser) last() int {
	return max(0, len(m.items)-1)
}
