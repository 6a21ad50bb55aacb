// Package viewer provides the Bubble Tea chart interface.
package viewer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/pareto/internal/stats"
)

const (
	tabChart = iota
	tabTable
)

const (
	plotHeight   = 14
	defaultWidth = 80
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea chart viewer.
type Model struct {
	title  string
	report stats.Report

	tabs      []string
	activeTab int
	chartView viewport.Model
	countView table.Model
	errMsg    string

	width  int
	height int
}

// NewModel constructs a viewer for a report whose counts are in display order.
func NewModel(title string, report stats.Report) *Model {
	m := &Model{
		title:     title,
		report:    report,
		tabs:      []string{"Chart", "Table"},
		chartView: viewport.New(0, 0),
	}
	m.countView = buildCountTable(report, 1)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderChart()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "g", "home":
			if m.activeTab == tabTable {
				m.countView.GotoTop()
			} else {
				m.chartView.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabTable {
				m.countView.GotoBottom()
			} else {
				m.chartView.GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if m.activeTab == tabTable {
				m.countView, cmd = m.countView.Update(msg)
				return m, cmd
			}
			m.chartView, cmd = m.chartView.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.chartView.Width = m.width
	m.chartView.Height = bodyHeight
	m.countView.SetWidth(m.width)
	m.countView.SetHeight(maxInt(1, bodyHeight-1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := (m.activeTab + delta + count) % count
	m.activeTab = next
	if m.activeTab == tabTable {
		m.countView.Focus()
	} else {
		m.countView.Blur()
	}
}

func (m *Model) renderChart() {
	if len(m.report.Counts) == 0 {
		m.chartView.SetContent("")
		return
	}
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	var buf bytes.Buffer
	plotWidth := stats.PlotWidthFor(width, m.report.Counts)
	if err := stats.PlotParetoWithColor(&buf, m.title, m.report.Counts, plotWidth, plotHeight, true); err != nil {
		m.errMsg = fmt.Sprintf("Failed to render chart: %v", err)
		m.chartView.SetContent("No chart available.")
		return
	}
	m.errMsg = ""
	m.chartView.SetContent(strings.TrimRight(buf.String(), "\n"))
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	summary := fmt.Sprintf("Samples: %d  Categories: %d  Vital few (%.0f%%): %d",
		m.report.Total, len(m.report.Counts), stats.DefaultThreshold, len(m.report.VitalFew))
	return tabs + "\n" + headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderBody() string {
	if len(m.report.Counts) == 0 {
		return "No samples."
	}
	if m.activeTab == tabTable {
		return tableMutedStyle.Render(m.countView.View())
	}
	return m.chartView.View()
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Top/Bottom: g/G  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func buildCountTable(report stats.Report, height int) table.Model {
	nameWidth := len("Category")
	for _, c := range report.Counts {
		if w := lipgloss.Width(c.Name); w > nameWidth {
			nameWidth = w
		}
	}
	columns := []table.Column{
		{Title: "Category", Width: nameWidth},
		{Title: "Count", Width: 8},
		{Title: "Cumulative", Width: 10},
		{Title: "Cumulative %", Width: 12},
	}
	rows := make([]table.Row, 0, len(report.Counts))
	for i, c := range report.Counts {
		rows = append(rows, table.Row{
			c.Name,
			fmt.Sprintf("%d", c.Count),
			fmt.Sprintf("%d", report.Cumulative[i]),
			fmt.Sprintf("%.2f%%", report.Percent[i]),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height)),
	)
	t.SetStyles(countTableStyles())
	return t
}

func countTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
