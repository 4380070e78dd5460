package tui

import (
	"fmt"
	"strings"

	"healthmetrics/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

const barWidth = 30

// View renders the active tab.
func (m Model) View() string {
	st := m.styles
	if m.showIntro {
		return st.App.Render(renderMarkdown(m.onboarding, st.Theme.IsDark, m.contentWidth()) +
			st.Footer.Render("enter to start • ctrl+t theme • ctrl+c quit"))
	}

	var b strings.Builder
	b.WriteString(m.tabBar())
	b.WriteString("\n\n")

	switch m.tabs[m.active] {
	case "calculator":
		b.WriteString(m.calculatorView())
	case "nutrition":
		b.WriteString(m.nutritionView())
	case "progress":
		b.WriteString(m.progressView())
	case "achievements":
		b.WriteString(m.achievementsView())
	case "reminders":
		b.WriteString(m.remindersView())
	case "quiz":
		b.WriteString(m.quizView())
	}

	if m.err != nil {
		b.WriteString("\n" + st.Error.Render(m.err.Error()))
	}
	if m.notice != "" {
		b.WriteString("\n" + st.Success.Render(m.notice))
	}
	b.WriteString(st.Footer.Render("\n" + m.help()))
	return st.App.Render(b.String())
}

func (m Model) contentWidth() int {
	if w := m.width - 4; w > 20 {
		return w
	}
	return 76
}

func (m Model) tabBar() string {
	parts := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.active {
			parts[i] = m.styles.ActiveTab.Render(t)
		} else {
			parts[i] = m.styles.Tab.Render(t)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) help() string {
	common := "tab switch • ctrl+t theme • ctrl+c quit"
	switch m.tabs[m.active] {
	case "calculator":
		return "↑/↓ field • enter compute • " + common
	case "nutrition":
		return fmt.Sprintf("+/- %d mL water • u undo • ", waterStepMl) + common
	case "progress":
		return "u undo last entry • " + common
	case "reminders":
		return "↑/↓ select • space toggle • " + common
	case "quiz":
		return "↑/↓ question • ←/→ answer • enter score • " + common
	}
	return common
}

func (m Model) calculatorView() string {
	st := m.styles
	var form strings.Builder
	form.WriteString(st.Title.Render("Your measurements"))
	form.WriteString("\n")
	for i, in := range m.inputs {
		label := st.Label.Render(fieldLabels[i])
		if i == m.focus {
			label = st.Label.Bold(true).Foreground(st.Theme.Primary).Render(fieldLabels[i])
		}
		form.WriteString(label + " " + in.View() + "\n")
	}

	if m.result == nil {
		return form.String()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, form.String(), "  ", m.reportCard())
}

func (m Model) reportCard() string {
	st := m.styles
	r := m.result.Entry.Report
	lines := []string{
		st.Title.Render("Report"),
		fmt.Sprintf("BMI        %.1f", r.BMI),
		fmt.Sprintf("Category   %s", m.categoryStyle(r.BMICategory).Render(string(r.BMICategory))),
		fmt.Sprintf("BMR        %.1f kcal", r.BMR),
		fmt.Sprintf("Calories   %d kcal/day", r.DailyCalories),
		fmt.Sprintf("Water      %d mL/day", r.WaterIntakeMl),
		"",
		st.Muted.Width(40).Render(m.result.Recommendation),
	}
	return st.Card.Render(strings.Join(lines, "\n"))
}

func (m Model) categoryStyle(c domain.BMICategory) lipgloss.Style {
	switch c {
	case domain.Normal:
		return m.styles.Success
	case domain.SevereUnderweight, domain.SevereOverweight:
		return m.styles.Error
	}
	return m.styles.Warning
}

func (m Model) nutritionView() string {
	st := m.styles
	if m.result == nil && m.water == nil {
		return st.Muted.Render("Compute a report first.")
	}
	var b strings.Builder
	if m.result != nil {
		r := m.result.Entry.Report
		g := m.result.Entry.Goals
		b.WriteString(st.Title.Render(fmt.Sprintf("Daily macros for %d kcal", r.DailyCalories)))
		b.WriteString("\n")
		fmt.Fprintf(&b, "Protein  %4d g  (%g%%)\n", r.Macros.ProteinG, g.ProteinPct)
		fmt.Fprintf(&b, "Fats     %4d g  (%g%%)\n", r.Macros.FatsG, g.FatsPct)
		fmt.Fprintf(&b, "Carbs    %4d g  (%g%%)\n", r.Macros.CarbsG, g.CarbsPct)
		b.WriteString("\n")
	}
	if w := m.water; w != nil {
		b.WriteString(st.Title.Render("Hydration today"))
		b.WriteString("\n")
		if w.GoalMl == 0 {
			fmt.Fprintf(&b, "%d mL logged\n", w.TotalMl)
			return b.String()
		}
		b.WriteString(st.Bar.Render(bar(float64(w.TotalMl), float64(w.GoalMl))))
		fmt.Fprintf(&b, " %d / %d mL\n", w.TotalMl, w.GoalMl)
		if w.GoalMet {
			b.WriteString(st.Success.Render("Goal reached!"))
		} else {
			b.WriteString(st.Muted.Render(fmt.Sprintf("%d mL to go", w.RemainingMl)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) progressView() string {
	st := m.styles
	if len(m.points) == 0 {
		return st.Muted.Render("No entries yet.")
	}
	maxWeight := 0.0
	for _, p := range m.points {
		maxWeight = max(maxWeight, p.Weight)
	}
	var b strings.Builder
	b.WriteString(st.Title.Render("Progress"))
	b.WriteString("\n")
	for _, p := range m.points {
		fmt.Fprintf(&b, "%s %s %6.1f %s  BMI %4.1f %s\n",
			p.Day,
			st.Bar.Render(bar(p.Weight, maxWeight)),
			p.Weight, p.Unit, p.BMI,
			m.categoryStyle(p.Category).Render(string(p.Category)),
		)
	}
	return b.String()
}

func (m Model) achievementsView() string {
	st := m.styles
	var b strings.Builder
	b.WriteString(st.Title.Render("Achievements"))
	b.WriteString("\n")
	for _, a := range m.achievements {
		mark := st.Muted.Render("○")
		name := st.Muted.Render(a.Name)
		if a.Achieved {
			mark = st.Success.Render("●")
			name = a.Name
		}
		fmt.Fprintf(&b, "%s %s  %s\n", mark, name, st.Muted.Render(a.Description))
	}
	return b.String()
}

func (m Model) remindersView() string {
	st := m.styles
	var b strings.Builder
	b.WriteString(st.Title.Render("Reminders"))
	b.WriteString("\n")
	for i, r := range m.reminders {
		cursor := "  "
		if i == m.remCursor {
			cursor = "> "
		}
		state := st.Muted.Render("off")
		if r.Active {
			state = st.Success.Render("on ")
		}
		fmt.Fprintf(&b, "%s[%s] %s  %-9s %s\n", cursor, state, r.Time, r.Type, r.Message)
	}
	return b.String()
}

func (m Model) quizView() string {
	st := m.styles
	var b strings.Builder
	b.WriteString(st.Title.Render("Kidney health quiz"))
	b.WriteString("\n")
	for i, q := range m.quiz {
		prefix := "  "
		if i == m.quizCursor {
			prefix = "> "
		}
		b.WriteString(prefix + q.Question + "\n")
		b.WriteString("    " + st.Bar.Render(q.Answers[m.answers[i]]) + "\n")
	}
	if r := m.quizResult; r != nil {
		b.WriteString("\n" + st.Success.Render(fmt.Sprintf("Score: %d / %d", r.Score, r.Total)) + "\n")
	}
	return b.String()
}

// bar draws v as a share of total, capped at full width.
func bar(v, total float64) string {
	n := 0
	if total > 0 {
		n = int(v / total * barWidth)
	}
	n = min(max(n, 0), barWidth)
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}
