package controller

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

type tickMsg time.Time

const (
	rateWidth  = 8
	countWidth = 11
)

// Simple delegate for ranked object rows.
type objectDelegate struct {
	offset int
}

func (d objectDelegate) Height() int  { return 1 }
func (d objectDelegate) Spacing() int { return 0 }
func (d objectDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d objectDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	object, ok := item.(objectItem)
	if !ok {
		return
	}

	var nameStyle, rateStyle, countStyle lipgloss.Style

	var displayName string

	width := lm.Width() - rateWidth - countWidth - 4

	if index == lm.Index() {
		selected := lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		nameStyle = selected
		rateStyle = selected.Width(rateWidth).Align(lipgloss.Right)
		countStyle = selected.Width(countWidth).Align(lipgloss.Right)

		displayName = animateScroll(object.row.name, width, d.offset)
	} else {
		nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		rateStyle = lipgloss.NewStyle().
			Foreground(rateColor(object.row.rate)).
			Bold(true).
			Width(rateWidth).
			Align(lipgloss.Right)
		countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(countWidth).
			Align(lipgloss.Right)

		displayName = truncateToWidth(object.row.name, width)
	}

	line := fmt.Sprintf("%s  %s  %s",
		rateStyle.Render(formatPercent(object.row.rate)),
		countStyle.Render(fmt.Sprintf("%d/%d", object.row.covered, object.row.statements)),
		nameStyle.Render(displayName),
	)
	_, _ = fmt.Fprint(w, line)
}

func rateColor(rate float64) lipgloss.Color {
	switch {
	case rate >= 0.8:
		return lipgloss.Color("10")
	case rate >= 0.5:
		return lipgloss.Color("11")
	default:
		return lipgloss.Color("9")
	}
}

func animateScroll(text string, width int, offset int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	gap := "   "

	// Initial pause before scrolling starts (in ticks)
	pause := 5

	if offset < pause {
		return truncateToWidth(text, width)
	}

	runes := []rune(text + gap)
	n := len(runes)
	start := (offset - pause) % n

	res := make([]rune, 0, width)
	for i := range width {
		res = append(res, runes[(start+i)%n])
	}

	return string(res)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

type writtenReport struct {
	format string
	path   m.Path
}

// summaryModel lists covered objects, best coverage first.
type summaryModel struct {
	width        int
	height       int
	objectList   list.Model
	delegate     objectDelegate
	header       string
	summary      m.Summary
	stats        m.CorrelationStats
	exceptions   int
	reports      []writtenReport
	rendered     bool
	animOffset   int
	lastSelected int
}

func newSummaryModel() summaryModel {
	delegate := objectDelegate{}
	objectList := list.New([]list.Item{}, delegate, 80, 20)
	objectList.SetShowPagination(false)
	objectList.SetShowFilter(true)
	objectList.SetShowHelp(false)
	objectList.SetShowTitle(false)
	objectList.SetShowStatusBar(false)
	objectList.FilterInput.Placeholder = "Filter by object…"

	return summaryModel{
		width:        80,
		height:       24,
		objectList:   objectList,
		delegate:     delegate,
		lastSelected: -1,
	}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (sm summaryModel) Init() tea.Cmd {
	return tick(time.Second / 2)
}

//nolint:cyclop // Message dispatch mirrors the list key handling.
func (sm summaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		sm.width = msg.Width
		sm.height = msg.Height
		sm.objectList.SetWidth(sm.width)

	case tickMsg:
		if sm.objectList.FilterState() != list.Filtering && sm.rendered {
			sm.animOffset++
			sm.delegate.offset = sm.animOffset
			sm.objectList.SetDelegate(sm.delegate)

			return sm, tick(time.Millisecond * 150)
		}

		return sm, tick(time.Second / 2)

	case tea.KeyMsg:
		if sm.objectList.FilterState() != list.Filtering && (msg.String() == "q" || msg.String() == "esc") {
			return sm, tea.Quit
		}

		if msg.String() == "ctrl+c" {
			return sm, tea.Quit
		}

		sm.objectList, cmd = sm.objectList.Update(msg)

		// Detect selection change to reset animation
		if sm.objectList.Index() != sm.lastSelected {
			sm.lastSelected = sm.objectList.Index()
			sm.animOffset = 0
			sm.delegate.offset = 0
			sm.objectList.SetDelegate(sm.delegate)
		}

		return sm, cmd

	case summaryMsg:
		sm = sm.handleSummaryMsg(msg)

	case reportWrittenMsg:
		sm.reports = append(sm.reports, writtenReport(msg))
	}

	return sm, cmd
}

func (sm summaryModel) handleSummaryMsg(msg summaryMsg) summaryModel {
	result := msg.result

	sm.header = result.Meta.Header()
	sm.summary = result.Summary
	sm.stats = result.Stats
	sm.exceptions = len(result.Exceptions)

	rows := rankObjects(result.Batches)

	items := make([]list.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, objectItem{row: row})
	}

	sm.objectList.SetItems(items)
	sm.rendered = true

	if len(items) > 0 && sm.lastSelected == -1 {
		sm.lastSelected = 0
	}

	return sm
}

func (sm summaryModel) View() string {
	if !sm.rendered {
		return "Waiting for coverage results…\n"
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	title := "SQL Coverage"
	if sm.header != "" {
		title += " · " + sm.header
	}

	summary := summaryStyle.Render(fmt.Sprintf(
		"Statements: %s   Branches: %s   Objects: %s\nEvents: %s read, %s matched, %s unknown object, %s outside statements",
		accentStyle.Render(fmt.Sprintf("%d/%d (%s)",
			sm.summary.CoveredStatementCount, sm.summary.StatementCount, formatPercent(sm.summary.StatementRate()))),
		accentStyle.Render(fmt.Sprintf("%d/%d", sm.summary.CoveredBranchesCount, sm.summary.BranchesCount)),
		accentStyle.Render(fmt.Sprintf("%d", len(sm.objectList.Items()))),
		accentStyle.Render(fmt.Sprintf("%d", sm.stats.Events)),
		accentStyle.Render(fmt.Sprintf("%d", sm.stats.Matched)),
		accentStyle.Render(fmt.Sprintf("%d", sm.stats.UnknownObject)),
		accentStyle.Render(fmt.Sprintf("%d", sm.stats.NoStatement)),
	))

	sections := []string{titleStyle.Render(title), summary, sm.renderTable()}

	if notes := sm.renderNotes(); notes != "" {
		sections = append(sections, notes)
	}

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(sm.width)

	sections = append(sections, footerStyle.Render("↑/k up • ↓/j down • g/G top/bottom • / filter • q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (sm summaryModel) renderNotes() string {
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 0, 0, 2)
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 0, 0, 2)

	var lines []string

	if sm.exceptions > 0 {
		lines = append(lines, warnStyle.Render(fmt.Sprintf("%d sql exception(s) recorded", sm.exceptions)))
	}

	for _, r := range sm.reports {
		lines = append(lines, noteStyle.Render(fmt.Sprintf("%-10s %s", r.format, r.path)))
	}

	if len(lines) == 0 {
		return ""
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (sm summaryModel) renderTable() string {
	// Title, summary, footer, border and headers take ten rows.
	listHeight := sm.height - 10 - len(sm.reports)
	if listHeight < 5 {
		listHeight = 5
	}

	// Margin, border and padding take six columns.
	listWidth := sm.width - 6

	sm.objectList.SetHeight(listHeight)
	sm.objectList.SetWidth(listWidth)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth)

	headers := headerStyle.Render(fmt.Sprintf("%*s  %*s  %s", rateWidth, "Coverage", countWidth, "Statements", "Object"))

	tableContainer := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1)

	return tableContainer.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headers,
			sm.objectList.View(),
		),
	)
}
