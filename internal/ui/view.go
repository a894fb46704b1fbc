package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/tagsort/internal/format/table"
	"github.com/atomicstack/tagsort/internal/suggest"
)

const (
	appTitle     = "tagsort"
	rulesFooter  = "↑/↓ move  a add  e edit  d delete  o organise  O organise rule  y copy report  q quit"
	formFooter   = "tab next field  enter save  esc cancel"
	emptyRules   = "(no rules yet, press a to add one)"
	missingCount = "-"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text carries its own escapes; skip style wrapping
}

// View implements tea.Model. The screen is rendered first and the
// suggestion layer is composited over it.
func (m *Model) View() string {
	var lines []styledLine
	if m.mode == ModeRuleForm && m.form != nil {
		lines = m.formLines()
	} else {
		lines = m.rulesLines()
	}
	return m.layer.Render(renderLines(lines))
}

func (m *Model) header() styledLine {
	title := appTitle
	if m.vault != nil {
		title = fmt.Sprintf("%s  %s", appTitle, m.vault.Root())
	}
	return styledLine{text: title, style: styles.Header}
}

func (m *Model) rulesLines() []styledLine {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, m.header())
	if m.backendErr != "" {
		lines = append(lines, styledLine{text: "vault: " + m.backendErr, style: styles.Error})
	}
	if m.loading {
		lines = append(lines, styledLine{text: m.pendingLabel + "…", style: styles.Loading})
	}
	if len(m.rules.Items) == 0 {
		lines = append(lines, styledLine{text: emptyRules, style: styles.Info})
	} else {
		m.syncViewport()
		formatted := table.Format(m.ruleRows(), []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight})
		lines = append(lines, styledLine{text: "  " + formatted[0], style: styles.Header})
		rows := formatted[1:]
		start, end := 0, len(rows)
		if maxItems := m.maxVisibleItems(); maxItems > 0 && len(rows) > maxItems {
			start = m.rules.ViewportOffset
			if start < 0 {
				start = 0
			}
			if start+maxItems > len(rows) {
				start = len(rows) - maxItems
				m.rules.ViewportOffset = start
			}
			end = start + maxItems
		}
		for idx := start; idx < end; idx++ {
			lines = append(lines, m.buildItemLine(rows[idx], idx, m.width))
		}
	}
	lines = append(lines, m.messageLines()...)
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: rulesFooter, style: styles.Footer})
	}
	return m.finishLines(lines)
}

func (m *Model) ruleRows() [][]string {
	rows := make([][]string, 0, len(m.rules.Items)+1)
	rows = append(rows, []string{"TAG", "FOLDER", "NOTES"})
	for _, rule := range m.rules.Items {
		count := missingCount
		if m.tags.Loaded() {
			count = strconv.Itoa(m.tags.Count(rule.Tag))
		}
		rows = append(rows, []string{"#" + rule.Tag, rule.Folder, count})
	}
	return rows
}

func (m *Model) formLines() []styledLine {
	f := m.form
	f.setWidth(m.width)
	lines := make([]styledLine, 0, 12)
	lines = append(lines, m.header())
	lines = append(lines, styledLine{text: f.title(), style: styles.Info})
	lines = append(lines, styledLine{})
	for field := fieldTag; field < fieldCount; field++ {
		f.rects[field] = suggest.Rect{X: fieldLabelWidth, Y: len(lines), W: f.fieldWidth(), H: 1}
		lines = append(lines, styledLine{text: m.fieldRow(field), raw: true})
	}
	if f.err != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: f.err, style: styles.Error})
	}
	lines = append(lines, m.messageLines()...)
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: formFooter, style: styles.Footer})
	return m.finishLines(lines)
}

func (m *Model) fieldRow(field formField) string {
	f := m.form
	label := "Tag"
	view := f.tag.View()
	if field == fieldFolder {
		label = "Folder"
		view = f.folder.View()
	}
	labelStyle := styles.FieldLabel
	if f.focus == field {
		labelStyle = styles.FieldLabelFocused
	}
	label = fmt.Sprintf("%-*s", fieldLabelWidth, label)
	if labelStyle != nil {
		label = labelStyle.Render(label)
	}
	return label + view
}

// messageLines renders the info line and any organise notices.
func (m *Model) messageLines() []styledLine {
	info := m.currentInfo()
	notices := m.currentNotices()
	if info == "" && len(notices) == 0 {
		return nil
	}
	lines := []styledLine{{}}
	if info != "" {
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	for _, notice := range notices {
		lines = append(lines, styledLine{text: notice, style: styles.Error})
	}
	return lines
}

// finishLines fits lines to the screen and appends the status line.
func (m *Model) finishLines(lines []styledLine) []styledLine {
	lines = limitHeight(lines, m.height-1, m.width)
	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	return applyWidth(append(lines, statusLine), m.width)
}

// buildItemLine constructs a single styledLine for a rule row.
// width is the target column width; when > 0 the text is padded so that
// the selected row's background spans the full container.
func (m *Model) buildItemLine(row string, idx, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == m.rules.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + row
	if width > 0 {
		if pad := width - ansi.StringWidth(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.layer.SetSize(m.width, m.height)
	if m.form != nil {
		m.form.setWidth(m.width)
	}
	m.syncViewport()
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 3 // header, table header and status line
	if m.backendErr != "" {
		used++
	}
	if m.loading {
		used++
	}
	if n := len(m.messageLines()); n > 0 {
		used += n
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(noticeLifetime)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func (m *Model) setNotices(notices []string) {
	m.notices = notices
	m.noticeExpire = time.Now().Add(noticeLifetime)
}

func (m *Model) currentNotices() []string {
	if len(m.notices) > 0 && time.Now().After(m.noticeExpire) {
		m.notices = nil
	}
	return m.notices
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText shortens text to width cells, ending in an ellipsis. Escape
// sequences are preserved.
func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
