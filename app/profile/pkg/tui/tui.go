// Package tui 终端版看板：切换公司、勾选分区和收入类型，实时重绘
package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iWorld-y/customer_profile/app/profile/internal/domain"
	"github.com/iWorld-y/customer_profile/app/profile/internal/view"
)

type focusRow int

const (
	focusEntity focusRow = iota
	focusZones
	focusTypes
	focusCount
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	upStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	downStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Model 是 bubbletea 的看板模型，只持有一个会话的选择
type Model struct {
	ds     *domain.Dataset
	sel    domain.Selection
	dash   view.Dashboard
	focus  focusRow
	cursor int
	width  int
	err    error
}

// New 以默认公司创建模型
func New(ds *domain.Dataset) (*Model, error) {
	m := &Model{ds: ds, sel: domain.NewSelection(ds), width: 100}
	if err := m.recompose(); err != nil {
		return nil, err
	}
	return m, nil
}

// Selection 当前选择
func (m *Model) Selection() domain.Selection { return m.sel.Clone() }

// Dashboard 当前看板
func (m *Model) Dashboard() view.Dashboard { return m.dash }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down", "j":
			m.setFocus((m.focus + 1) % focusCount)
		case "shift+tab", "up", "k":
			m.setFocus((m.focus + focusCount - 1) % focusCount)
		case "left", "h":
			m.move(-1)
		case "right", "l":
			m.move(1)
		case " ", "enter":
			m.toggle()
		case "r":
			// same as reloading the page
			m.sel = domain.NewSelection(m.ds)
			m.setFocus(focusEntity)
			m.err = m.recompose()
		}
	}
	return m, nil
}

// setFocus 公司行的光标落在当前公司上
func (m *Model) setFocus(f focusRow) {
	m.focus, m.cursor = f, 0
	if f == focusEntity {
		m.cursor = max(0, slices.Index(m.ds.EntityNames(), m.sel.Entity))
	}
}

func (m *Model) options() []string {
	switch m.focus {
	case focusEntity:
		return m.ds.EntityNames()
	case focusZones:
		return view.FacetsOf(domain.ObservedFacets(m.ds.Regions, m.sel.Entity)).Zones
	default:
		return view.FacetsOf(domain.ObservedFacets(m.ds.Regions, m.sel.Entity)).Types
	}
}

func (m *Model) move(delta int) {
	n := len(m.options())
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + delta + n) % n
	if m.focus == focusEntity {
		m.apply(func() error { return m.sel.SelectEntity(m.ds, m.options()[m.cursor]) })
	}
}

func (m *Model) toggle() {
	opts := m.options()
	if len(opts) == 0 || m.focus == focusEntity {
		return
	}
	value := opts[m.cursor]
	switch m.focus {
	case focusZones:
		m.apply(func() error {
			return m.sel.SetZones(m.ds, toggled(m.sel.Zones, domain.Zone(value)))
		})
	case focusTypes:
		m.apply(func() error {
			return m.sel.SetTypes(m.ds, toggled(m.sel.Types, domain.IncomeType(value)))
		})
	}
}

// apply 修改选择并重绘，失败时保留原选择
func (m *Model) apply(fn func() error) {
	prev := m.sel.Clone()
	if err := fn(); err != nil {
		m.sel, m.err = prev, err
		return
	}
	m.err = m.recompose()
}

func (m *Model) recompose() error {
	d, err := view.Compose(m.ds, m.sel)
	if err != nil {
		return err
	}
	m.dash = d
	return nil
}

func toggled[T comparable](set []T, v T) []T {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), v)
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Customer Profile") + "\n\n")
	b.WriteString(m.selectorLine(focusEntity, "Entity", m.ds.EntityNames(), []string{m.sel.Entity}) + "\n")
	facets := view.FacetsOf(domain.ObservedFacets(m.ds.Regions, m.sel.Entity))
	selected := view.SelectionOf(m.sel)
	b.WriteString(m.selectorLine(focusZones, "Zones", facets.Zones, selected.Zones) + "\n")
	b.WriteString(m.selectorLine(focusTypes, "Types", facets.Types, selected.Types) + "\n\n")

	half := max(30, m.width/2-1)
	left := lipgloss.JoinVertical(lipgloss.Left,
		box(m.dash.Indicators.Title, renderTable(m.dash.Indicators), half),
		box(m.dash.SharePrice.Label, renderCard(m.dash.SharePrice), half),
		box(m.dash.Executives.Title, renderTable(m.dash.Executives), half),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		box(m.dash.Regional.Title, renderBars(m.dash.Regional, half-4), half),
		box(m.dash.IncomeMix.Title, renderBars(m.dash.IncomeMix, half-4), half),
		box(m.dash.ProjectStatus.Title, renderBars(m.dash.ProjectStatus, half-4), half),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right) + "\n")
	b.WriteString(box("News", renderNews(m.dash.News), half*2) + "\n")

	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString(mutedStyle.Render("tab/↑↓ focus · ←→ move · space toggle · r reset · q quit"))
	return b.String()
}

func (m *Model) selectorLine(row focusRow, label string, options, selected []string) string {
	parts := make([]string, 0, len(options))
	for i, o := range options {
		text := o
		if row != focusEntity {
			mark := "[ ]"
			if slices.Contains(selected, o) {
				mark = "[x]"
			}
			text = mark + " " + o
		}
		if slices.Contains(selected, o) {
			text = selectedStyle.Render(text)
		}
		if row == m.focus && i == m.cursor {
			text = cursorStyle.Render(text)
		}
		parts = append(parts, text)
	}
	prefix := "  "
	if row == m.focus {
		prefix = "> "
	}
	return fmt.Sprintf("%s%-7s %s", prefix, label, strings.Join(parts, "  "))
}

func box(title, content string, width int) string {
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(width - 2)
	return style.Render("[" + title + "]\n" + content)
}

func renderTable(t view.Table) string {
	lines := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row))
		for _, c := range row {
			cells = append(cells, fmt.Sprintf("%-18v", c))
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, " "), " "))
	}
	if len(lines) == 0 {
		return "(no data)"
	}
	return strings.Join(lines, "\n")
}

func renderCard(c view.MetricCard) string {
	delta := upStyle.Render("▲ " + c.Delta)
	if c.Change < 0 {
		delta = downStyle.Render("▼ " + c.Delta)
	}
	return c.Value + "  " + delta
}

// renderBars 水平条形图
func renderBars(c view.Chart, width int) string {
	if len(c.Points) == 0 {
		return "(no data)"
	}
	maxV := 0.0
	for _, p := range c.Points {
		if p.Y > maxV {
			maxV = p.Y
		}
	}
	if maxV <= 0 {
		maxV = 1
	}
	lines := make([]string, 0, len(c.Points))
	for _, p := range c.Points {
		w := int((p.Y / maxV) * float64(max(1, width-22)))
		if w < 1 {
			w = 1
		}
		lines = append(lines, fmt.Sprintf("%-12s %s %.2f", p.X, strings.Repeat("#", w), p.Y))
	}
	return strings.Join(lines, "\n")
}

func renderNews(news []view.NewsBlock) string {
	if len(news) == 0 {
		return "(no news)"
	}
	lines := make([]string, 0, len(news))
	for _, n := range news {
		lines = append(lines, "• "+n.Headline)
	}
	return strings.Join(lines, "\n")
}

// Run 启动交互界面
func Run(ds *domain.Dataset) error {
	m, err := New(ds)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
