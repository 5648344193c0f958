package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/customer_profile/app/profile/internal/data"
	"github.com/iWorld-y/customer_profile/app/profile/internal/domain"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(key(k))
	}
}

func TestModel_SwitchEntity(t *testing.T) {
	m, err := New(data.SampleDataset())
	require.NoError(t, err)
	require.Equal(t, "Apple", m.Selection().Entity)

	press(m, "right")
	assert.Equal(t, "Microsoft", m.Selection().Entity)
	assert.Equal(t, "Microsoft", m.Dashboard().Selection.Entity)

	press(m, "left", "left")
	assert.Equal(t, "Google", m.Selection().Entity)
}

func TestModel_ToggleZone(t *testing.T) {
	m, err := New(data.SampleDataset())
	require.NoError(t, err)

	// focus zones, move to B and toggle it
	press(m, "tab", "right", "space")
	assert.Equal(t, []domain.Zone{domain.ZoneB}, m.Selection().Zones)
	assert.Len(t, m.Dashboard().Regional.Points, 2)

	press(m, "space")
	assert.Empty(t, m.Selection().Zones)
	assert.Len(t, m.Dashboard().Regional.Points, 4)
}

func TestModel_ToggleTypeThenReset(t *testing.T) {
	m, err := New(data.SampleDataset())
	require.NoError(t, err)

	press(m, "tab", "tab", "space")
	assert.Equal(t, []domain.IncomeType{domain.IncomeDedicated}, m.Selection().Types)

	press(m, "r")
	assert.Empty(t, m.Selection().Types)
	assert.Equal(t, "Apple", m.Selection().Entity)
}

func TestModel_Quit(t *testing.T) {
	m, err := New(data.SampleDataset())
	require.NoError(t, err)

	_, cmd := m.Update(key("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_View(t *testing.T) {
	m, err := New(data.SampleDataset())
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 50})

	out := m.View()

	assert.Contains(t, out, "Customer Profile")
	assert.Contains(t, out, "Tim Cook")
	assert.Contains(t, out, "[ ] A")
	assert.Contains(t, out, "Apple launches the new iPhone 14")
}

func TestRenderBars(t *testing.T) {
	m, err := New(data.SampleDataset())
	require.NoError(t, err)

	out := renderBars(m.Dashboard().ProjectStatus, 60)

	assert.Contains(t, out, "planned")
	assert.Contains(t, out, "#")
}
