// Package tui is the terminal shell: a tabbed bubbletea program over the
// application services.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthmetrics/internal/app"
	"healthmetrics/internal/domain"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// Services bundles what the shell drives.
type Services struct {
	Reports   *app.ReportService
	History   *app.HistoryService
	Water     *app.WaterService
	Reminders *app.ReminderService
}

// Options is the presentation state the shell starts with.
type Options struct {
	Theme           string
	Tabs            []string
	Onboarding      string
	DefaultActivity string
	DefaultMacros   domain.MacroGoals
}

// Form fields, in focus order.
const (
	fieldWeight = iota
	fieldHeight
	fieldAge
	fieldSex
	fieldActivity
	fieldProtein
	fieldCarbs
	fieldFats
	fieldCount
)

var fieldLabels = [fieldCount]string{"Weight (kg)", "Height (cm)", "Age", "Sex", "Activity", "Protein %", "Carbs %", "Fats %"}

const waterStepMl = 250

type reportMsg struct {
	res *app.RecordResult
	err error
}

// dataMsg is a fresh snapshot of everything the non-form tabs display.
type dataMsg struct {
	points       []app.ProgressPoint
	achievements []domain.Achievement
	water        *app.WaterStatus
	reminders    []domain.Reminder
	err          error
}

// Model is the shell state. All mutation happens in Update; service calls
// run in commands and come back as messages.
type Model struct {
	ctx       context.Context
	svc       Services
	sessionID string

	styles     Styles
	tabs       []string
	active     int
	onboarding string
	showIntro  bool

	inputs          []textinput.Model
	focus           int
	defaultActivity string
	defaultMacros   domain.MacroGoals

	result *app.RecordResult
	err    error
	notice string

	points       []app.ProgressPoint
	achievements []domain.Achievement
	water        *app.WaterStatus
	reminders    []domain.Reminder
	remCursor    int

	quiz       []domain.QuizQuestion
	answers    []int
	quizCursor int
	quizResult *domain.QuizResult

	width int
}

// New creates the shell for one session.
func New(ctx context.Context, svc Services, sessionID string, opts Options) Model {
	m := Model{
		ctx:        ctx,
		svc:        svc,
		sessionID:  sessionID,
		styles:     NewStyles(ThemeByName(opts.Theme)),
		tabs:       opts.Tabs,
		onboarding: opts.Onboarding,
		showIntro:  opts.Onboarding != "",
		quiz:       domain.KidneyQuiz(),
		width:      80,

		defaultActivity: opts.DefaultActivity,
		defaultMacros:   opts.DefaultMacros,
	}
	if len(m.tabs) == 0 {
		m.tabs = []string{"calculator"}
	}
	m.answers = make([]int, len(m.quiz))

	m.inputs = make([]textinput.Model, fieldCount)
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 12
		ti.Width = 14
		m.inputs[i] = ti
	}
	m.inputs[fieldSex].Placeholder = "male/female"
	m.inputs[fieldActivity].SetValue(opts.DefaultActivity)
	m.inputs[fieldProtein].SetValue(formatPct(opts.DefaultMacros.ProteinPct))
	m.inputs[fieldCarbs].SetValue(formatPct(opts.DefaultMacros.CarbsPct))
	m.inputs[fieldFats].SetValue(formatPct(opts.DefaultMacros.FatsPct))
	m.inputs[fieldWeight].Focus()
	return m
}

func formatPct(v float64) string {
	return fmt.Sprintf("%g", v)
}

// Init loads the initial snapshot.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.refresh())
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case reportMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.result = msg.res
		m.notice = ""
		if n := len(msg.res.Unlocked); n > 0 {
			m.notice = fmt.Sprintf("Achievement unlocked: %s", msg.res.Unlocked[0].Name)
			if n > 1 {
				m.notice += fmt.Sprintf(" (+%d more)", n-1)
			}
		}
		return m, m.refresh()

	case dataMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.points = msg.points
		m.achievements = msg.achievements
		m.water = msg.water
		m.reminders = msg.reminders
		if m.remCursor >= len(m.reminders) {
			m.remCursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+t":
		if m.styles.Theme.IsDark {
			m.styles = NewStyles(LightTheme())
		} else {
			m.styles = NewStyles(DarkTheme())
		}
		return m, nil
	}

	if m.showIntro {
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc {
			m.showIntro = false
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyTab:
		m.active = (m.active + 1) % len(m.tabs)
		return m, nil
	case tea.KeyShiftTab:
		m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)
		return m, nil
	}

	switch m.tabs[m.active] {
	case "calculator":
		return m.handleCalculatorKey(msg)
	case "nutrition":
		switch msg.String() {
		case "+", "=":
			return m, m.addWater(waterStepMl)
		case "-":
			return m, m.addWater(-waterStepMl)
		case "u":
			return m, m.undoWater()
		}
	case "progress":
		if msg.String() == "u" {
			return m, m.undoReport()
		}
	case "reminders":
		return m.handleRemindersKey(msg)
	case "quiz":
		return m.handleQuizKey(msg)
	}
	return m, nil
}

func (m Model) handleCalculatorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		return m.setFocus(m.focus - 1), nil
	case tea.KeyDown:
		return m.setFocus(m.focus + 1), nil
	case tea.KeyEnter:
		return m, m.compute()
	}
	return m.updateFocused(msg)
}

func (m Model) setFocus(i int) Model {
	i = (i + fieldCount) % fieldCount
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
	return m
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showIntro || m.tabs[m.active] != "calculator" {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleRemindersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.reminders) == 0 {
		return m, nil
	}
	switch msg.String() {
	case "up", "k":
		m.remCursor = (m.remCursor - 1 + len(m.reminders)) % len(m.reminders)
	case "down", "j":
		m.remCursor = (m.remCursor + 1) % len(m.reminders)
	case " ", "enter":
		return m, m.toggleReminder(m.reminders[m.remCursor].ID)
	}
	return m, nil
}

func (m Model) handleQuizKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q := m.quiz[m.quizCursor]
	switch msg.String() {
	case "up", "k":
		m.quizCursor = (m.quizCursor - 1 + len(m.quiz)) % len(m.quiz)
	case "down", "j":
		m.quizCursor = (m.quizCursor + 1) % len(m.quiz)
	case "left", "h":
		m.answers = append([]int(nil), m.answers...)
		m.answers[m.quizCursor] = (m.answers[m.quizCursor] - 1 + len(q.Answers)) % len(q.Answers)
		m.quizResult = nil
	case "right", "l":
		m.answers = append([]int(nil), m.answers...)
		m.answers[m.quizCursor] = (m.answers[m.quizCursor] + 1) % len(q.Answers)
		m.quizResult = nil
	case "enter":
		res, err := domain.ScoreQuiz(m.answers)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.quizResult = &res
	}
	return m, nil
}

// rawInput reads the form.
func (m Model) rawInput() app.RawInput {
	return app.RawInput{
		Weight:   m.inputs[fieldWeight].Value(),
		Height:   m.inputs[fieldHeight].Value(),
		Age:      m.inputs[fieldAge].Value(),
		Sex:      m.inputs[fieldSex].Value(),
		Activity: m.inputs[fieldActivity].Value(),
		Protein:  m.inputs[fieldProtein].Value(),
		Carbs:    m.inputs[fieldCarbs].Value(),
		Fats:     m.inputs[fieldFats].Value(),
	}
}

func (m Model) compute() tea.Cmd {
	in := m.rawInput()
	if in.Activity == "" {
		in.Activity = m.defaultActivity
	}
	defaults := m.defaultMacros
	ctx, svc, sid := m.ctx, m.svc, m.sessionID
	return func() tea.Msg {
		req, err := in.Parse(defaults)
		if err != nil {
			svc.Reports.RejectInput(err)
			return reportMsg{err: err}
		}
		res, err := svc.Reports.Record(ctx, sid, req)
		return reportMsg{res: res, err: err}
	}
}

func (m Model) refresh() tea.Cmd {
	ctx, svc, sid := m.ctx, m.svc, m.sessionID
	return func() tea.Msg {
		return snapshot(ctx, svc, sid)
	}
}

func snapshot(ctx context.Context, svc Services, sid string) dataMsg {
	var msg dataMsg
	var err error
	if msg.points, err = svc.History.Series(ctx, sid, 0, "kg"); err != nil {
		return dataMsg{err: err}
	}
	if msg.achievements, err = svc.Reports.Achievements(ctx, sid); err != nil {
		return dataMsg{err: err}
	}
	today := time.Now().In(time.Local).Format("2006-01-02")
	msg.water, err = svc.Water.Status(ctx, sid, today)
	if err != nil && !errors.Is(err, app.ErrNoReport) {
		return dataMsg{err: err}
	}
	if msg.reminders, err = svc.Reminders.List(ctx, sid); err != nil {
		return dataMsg{err: err}
	}
	return msg
}

func (m Model) addWater(deltaMl int) tea.Cmd {
	ctx, svc, sid := m.ctx, m.svc, m.sessionID
	return func() tea.Msg {
		if _, err := svc.Water.RecordEvent(ctx, sid, deltaMl); err != nil {
			return dataMsg{err: err}
		}
		return snapshot(ctx, svc, sid)
	}
}

func (m Model) undoWater() tea.Cmd {
	ctx, svc, sid := m.ctx, m.svc, m.sessionID
	return func() tea.Msg {
		if _, _, err := svc.Water.UndoLast(ctx, sid); err != nil {
			return dataMsg{err: err}
		}
		return snapshot(ctx, svc, sid)
	}
}

func (m Model) undoReport() tea.Cmd {
	ctx, svc, sid := m.ctx, m.svc, m.sessionID
	return func() tea.Msg {
		if _, _, err := svc.History.UndoLast(ctx, sid); err != nil {
			return dataMsg{err: err}
		}
		return snapshot(ctx, svc, sid)
	}
}

func (m Model) toggleReminder(id int64) tea.Cmd {
	ctx, svc, sid := m.ctx, m.svc, m.sessionID
	return func() tea.Msg {
		if _, err := svc.Reminders.Toggle(ctx, sid, id); err != nil {
			return dataMsg{err: err}
		}
		return snapshot(ctx, svc, sid)
	}
}

// renderMarkdown renders md with the glamour style matching the theme.
func renderMarkdown(md string, dark bool, width int) string {
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
