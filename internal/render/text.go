package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
)

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorLive   = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF5F6D"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#777777", Dark: "#888888"}
)

// Text writes the schedule and standings as aligned terminal tables.
type Text struct {
	w       io.Writer
	heading lipgloss.Style
	live    lipgloss.Style
	muted   lipgloss.Style
	cell    lipgloss.Style
}

// NewText builds a text renderer whose styles adapt to w's color support.
func NewText(w io.Writer) *Text {
	r := lipgloss.NewRenderer(w)
	return &Text{
		w:       w,
		heading: r.NewStyle().Foreground(colorAccent).Bold(true),
		live:    r.NewStyle().Foreground(colorLive).Bold(true),
		muted:   r.NewStyle().Foreground(colorMuted),
		cell:    r.NewStyle().PaddingRight(2),
	}
}

func (t *Text) Render(ctx context.Context, view View) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(t.heading.Render("Schedule"))
	b.WriteString("\n")
	b.WriteString(t.schedule(view.Games))
	b.WriteString("\n\n")
	b.WriteString(t.heading.Render("Standings"))
	b.WriteString("\n")
	b.WriteString(t.standings(view))
	b.WriteString("\n")
	if view.LastUpdated != "" {
		b.WriteString("\n")
		b.WriteString(t.muted.Render("Last updated " + view.LastUpdated))
		b.WriteString("\n")
	}
	_, err := io.WriteString(t.w, b.String())
	return err
}

func (t *Text) schedule(games []domaingames.Game) string {
	if len(games) == 0 {
		return t.muted.Render("No games scheduled")
	}
	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{g.Date, g.Time, g.Team1, scoreLine(g), g.Team2, t.status(g.Status)})
	}
	return t.table(rows)
}

func (t *Text) standings(view View) string {
	if len(view.Standings.Players) == 0 {
		return t.muted.Render("No players")
	}
	rows := make([][]string, 0, len(view.Standings.Players))
	for i, p := range view.Standings.Players {
		teams := make([]string, 0, len(p.Teams))
		for _, tg := range p.Teams {
			teams = append(teams, fmt.Sprintf("%s %d", tg.Team, tg.Goals))
		}
		rows = append(rows, []string{fmt.Sprintf("%d.", i+1), p.Name, fmt.Sprintf("%d", p.Goals), t.muted.Render(strings.Join(teams, ", "))})
	}
	return t.table(rows)
}

func (t *Text) status(s domaingames.GameStatus) string {
	switch s {
	case domaingames.StatusInProgress:
		return t.live.Render("LIVE")
	case domaingames.StatusFinished:
		return "final"
	default:
		return t.muted.Render("scheduled")
	}
}

// table pads every column to its widest cell.
func (t *Text) table(rows [][]string) string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells = append(cells, cell)
				continue
			}
			cells = append(cells, t.cell.Width(widths[i]+2).Render(cell))
		}
		lines = append(lines, strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " "))
	}
	return strings.Join(lines, "\n")
}

func scoreLine(g domaingames.Game) string {
	if g.Score1 == nil || g.Score2 == nil {
		return "-"
	}
	return fmt.Sprintf("%d:%d", *g.Score1, *g.Score2)
}
