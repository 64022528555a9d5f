package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stemloop/pkg/drawing"
	"github.com/matzehuels/stemloop/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailKeyStyle    = lipgloss.NewStyle().Foreground(colorGray).Width(10)
)

// maxDetailWidth truncates sequence and structure excerpts in the detail pane.
const maxDetailWidth = 60

// browseCommand creates the browse command, an interactive motif explorer.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		in      inputFlags
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "browse [file.dbn | -]",
		Short: "Explore the motif tree interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.baseOptions()
			if err != nil {
				return err
			}
			if err := in.apply(args, cmd.InOrStdin(), &opts); err != nil {
				return err
			}
			return c.runBrowse(cmd.Context(), opts, noCache)
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, opts pipeline.Options, noCache bool) error {
	d, _, err := c.computeDrawing(ctx, opts, noCache)
	if err != nil {
		return err
	}
	p := tea.NewProgram(NewBrowseModel(d), tea.WithContext(ctx), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// =============================================================================
// BrowseModel - Interactive motif tree
// =============================================================================

type motifRow struct {
	motif *drawing.Motif
	depth int
}

// BrowseModel is the bubbletea model for the motif browser.
type BrowseModel struct {
	Drawing drawing.Drawing
	Cursor  int
	Height  int
	Offset  int

	collapsed map[int]bool
	rows      []motifRow
}

// NewBrowseModel creates a browser over d with every motif expanded.
func NewBrowseModel(d drawing.Drawing) BrowseModel {
	m := BrowseModel{
		Drawing:   d,
		Height:    15,
		collapsed: make(map[int]bool),
	}
	m.rows = m.flatten()
	return m
}

// flatten lists the visible motifs in preorder.
func (m BrowseModel) flatten() []motifRow {
	var rows []motifRow
	var walk func(mt *drawing.Motif, depth int)
	walk = func(mt *drawing.Motif, depth int) {
		rows = append(rows, motifRow{motif: mt, depth: depth})
		if m.collapsed[mt.ID] {
			return
		}
		for i := range mt.Children {
			walk(&mt.Children[i], depth+1)
		}
	}
	walk(&m.Drawing.Motif, 0)
	return rows
}

// Current returns the motif under the cursor.
func (m BrowseModel) Current() *drawing.Motif {
	if len(m.rows) == 0 {
		return nil
	}
	return m.rows[m.Cursor].motif
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
			}
		case "enter", " ":
			if cur := m.Current(); cur != nil && len(cur.Children) > 0 {
				m.setCollapsed(cur.ID, !m.collapsed[cur.ID])
			}
		case "left", "h":
			if cur := m.Current(); cur != nil {
				m.setCollapsed(cur.ID, true)
			}
		case "right", "l":
			if cur := m.Current(); cur != nil {
				m.setCollapsed(cur.ID, false)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 14
		if m.Height < 5 {
			m.Height = 5
		}
	}
	m.scroll()
	return m, nil
}

func (m *BrowseModel) setCollapsed(id int, v bool) {
	collapsed := make(map[int]bool, len(m.collapsed)+1)
	for k, c := range m.collapsed {
		collapsed[k] = c
	}
	collapsed[id] = v
	m.collapsed = collapsed
	m.rows = m.flatten()
	if m.Cursor >= len(m.rows) {
		m.Cursor = len(m.rows) - 1
	}
}

// scroll keeps the cursor inside the visible window.
func (m *BrowseModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(nameOr(m.Drawing.Name, "Motif tree")))
	b.WriteString(" ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d nt", len(m.Drawing.Nucleotides))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ fold  ←/→ collapse/expand  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		fold := "  "
		if len(r.motif.Children) > 0 {
			fold = "▾ "
			if m.collapsed[r.motif.ID] {
				fold = "▸ "
			}
		}
		label := strings.Repeat("  ", r.depth) + fold + r.motif.Label
		span := fmt.Sprintf("%d..%d", r.motif.Start+1, r.motif.End+1)
		rows = append(rows, []string{cursor, fmt.Sprintf("#%d", r.motif.ID), label, r.motif.Kind, span})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Motif", "Kind", "Span").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.rows) {
				return lipgloss.NewStyle()
			}
			if idx == m.Cursor {
				return listSelectedStyle
			}
			if col == 2 {
				return motifStyle(m.rows[idx].motif.Kind)
			}
			return listDimStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(m.detail())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))

	return b.String()
}

// detail describes the motif under the cursor.
func (m BrowseModel) detail() string {
	cur := m.Current()
	if cur == nil {
		return ""
	}
	var b strings.Builder
	line := func(k, v string) {
		b.WriteString(detailKeyStyle.Render(k) + " " + StyleValue.Render(v) + "\n")
	}
	line("sequence", excerpt(m.Drawing.Sequence, cur.Start, cur.End))
	line("structure", excerpt(m.Drawing.Structure, cur.Start, cur.End))
	for _, lp := range m.Drawing.Loops {
		if lp.ID == cur.ID {
			line("loop", fmt.Sprintf("center (%.1f, %.1f)  radius %.1f", lp.Center.X, lp.Center.Y, lp.Radius))
		}
	}
	for _, h := range m.Drawing.Helices {
		if h.ID == cur.ID {
			line("helix", fmt.Sprintf("%d bp  axis (%.2f, %.2f)  in loop #%d", len(h.Pairs), h.Axis.X, h.Axis.Y, h.Loop))
		}
	}
	return b.String()
}

// excerpt returns s[start..end] inclusive, truncated for display.
func excerpt(s string, start, end int) string {
	if start < 0 || end >= len(s) || start > end {
		return ""
	}
	out := s[start : end+1]
	if len(out) > maxDetailWidth {
		out = out[:maxDetailWidth-1] + "…"
	}
	return out
}
