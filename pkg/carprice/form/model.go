// Package form is the interactive terminal form that collects a vehicle and
// shows its predicted price.
package form

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/catalog"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/display"
)

// Predictor runs both models on one vehicle.
type Predictor interface {
	Predict(v dal.Vehicle) (dal.Prediction, error)
}

type predictionMsg struct {
	vehicle    dal.Vehicle
	prediction dal.Prediction
	err        error
}

type selectInput struct {
	field   string
	options []string
	index   int
}

func (s selectInput) value() string {
	if len(s.options) == 0 {
		return ""
	}
	return s.options[s.index]
}

func (s *selectInput) move(delta int) {
	if len(s.options) == 0 {
		return
	}
	s.index = (s.index + delta + len(s.options)) % len(s.options)
}

type numberInput struct {
	field string
	input textinput.Model
	clamp func(int) int
	value int
}

// commit parses the typed text, clamps it and writes it back. Unparsable
// text keeps the last committed value.
func (n *numberInput) commit() {
	if v, err := strconv.Atoi(strings.TrimSpace(n.input.Value())); err == nil {
		n.value = n.clamp(v)
	}
	n.input.SetValue(strconv.Itoa(n.value))
}

func (n *numberInput) step(delta int) {
	n.commit()
	n.value = n.clamp(n.value + delta)
	n.input.SetValue(strconv.Itoa(n.value))
}

// Model is the bubbletea model of the form.
type Model struct {
	predictor Predictor
	formatter display.Formatter
	texts     display.Texts
	theme     Theme
	keys      KeyMap
	help      help.Model

	selects []selectInput
	numbers []numberInput
	focus   int

	result   *predictionMsg
	width    int
	quitting bool
}

// New builds a form whose selectors list the values of c.
func New(p Predictor, c *catalog.Catalog, f display.Formatter) Model {
	m := Model{
		predictor: p,
		formatter: f,
		texts:     f.Texts(),
		theme:     DefaultTheme,
		keys:      DefaultKeyMap(),
		help:      newHelp(DefaultTheme),
	}
	for _, e := range c.Entries() {
		m.selects = append(m.selects, selectInput{field: e.Field, options: e.Values})
	}
	m.numbers = []numberInput{
		newNumberInput(dal.FieldHorsepower, dal.HorsepowerDefault, dal.ClampHorsepower),
		newNumberInput(dal.FieldCityMPG, dal.CityMPGDefault, dal.ClampCityMPG),
	}
	return m
}

func newHelp(theme Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Primary)
	h.Styles.FullKey = h.Styles.ShortKey
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.FullDesc = h.Styles.ShortDesc
	h.Styles.ShortSeparator = h.Styles.ShortDesc
	h.Styles.FullSeparator = h.Styles.ShortDesc
	return h
}

func newNumberInput(field string, def int, clamp func(int) int) numberInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 4
	ti.Width = 6
	ti.SetValue(strconv.Itoa(def))
	return numberInput{field: field, input: ti, clamp: clamp, value: def}
}

// Run starts the form in the terminal and blocks until the user quits.
func Run(ctx context.Context, p Predictor, c *catalog.Catalog, f display.Formatter) error {
	program := tea.NewProgram(New(p, c, f), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) slots() int {
	return len(m.selects) + len(m.numbers) + 1
}

func (m Model) buttonFocused() bool {
	return m.focus == m.slots()-1
}

// focusedSelect returns the index of the focused selector, or -1.
func (m Model) focusedSelect() int {
	if m.focus < len(m.selects) {
		return m.focus
	}
	return -1
}

// focusedNumber returns the index of the focused numeric input, or -1.
func (m Model) focusedNumber() int {
	i := m.focus - len(m.selects)
	if i >= 0 && i < len(m.numbers) {
		return i
	}
	return -1
}

// Vehicle returns the record currently described by the form.
func (m Model) Vehicle() dal.Vehicle {
	var v dal.Vehicle
	for _, s := range m.selects {
		switch s.field {
		case dal.FieldMake:
			v.Make = s.value()
		case dal.FieldFuelType:
			v.FuelType = s.value()
		case dal.FieldNumDoors:
			v.NumDoors = s.value()
		case dal.FieldBodyStyle:
			v.BodyStyle = s.value()
		}
	}
	for _, n := range m.numbers {
		switch n.field {
		case dal.FieldHorsepower:
			v.Horsepower = n.value
		case dal.FieldCityMPG:
			v.CityMPG = n.value
		}
	}
	return v
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case predictionMsg:
		m.result = &msg
		return m, nil

	case tea.KeyMsg:
		m.selects = append([]selectInput(nil), m.selects...)
		m.numbers = append([]numberInput(nil), m.numbers...)
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit), key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1)

	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1)

	case key.Matches(msg, m.keys.Submit):
		if m.buttonFocused() {
			return m, m.predict()
		}
		return m.moveFocus(1)
	}

	if i := m.focusedSelect(); i >= 0 {
		switch {
		case key.Matches(msg, m.keys.Left):
			m.selects[i].move(-1)
		case key.Matches(msg, m.keys.Right):
			m.selects[i].move(1)
		}
		return m, nil
	}

	if i := m.focusedNumber(); i >= 0 {
		switch {
		case key.Matches(msg, m.keys.Increment):
			m.numbers[i].step(1)
			return m, nil
		case key.Matches(msg, m.keys.Decrement):
			m.numbers[i].step(-1)
			return m, nil
		}
		if msg.Type == tea.KeyRunes && !allDigits(msg.Runes) {
			return m, nil
		}
		var cmd tea.Cmd
		m.numbers[i].input, cmd = m.numbers[i].input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	if i := m.focusedNumber(); i >= 0 {
		m.numbers[i].commit()
		m.numbers[i].input.Blur()
	}
	m.focus = (m.focus + delta + m.slots()) % m.slots()
	if i := m.focusedNumber(); i >= 0 {
		return m, m.numbers[i].input.Focus()
	}
	return m, nil
}

// predict captures the vehicle now so the command does not race later edits.
func (m Model) predict() tea.Cmd {
	v := m.Vehicle()
	p := m.predictor
	return func() tea.Msg {
		prediction, err := p.Predict(v)
		return predictionMsg{vehicle: v, prediction: prediction, err: err}
	}
}

func allDigits(rs []rune) bool {
	for _, r := range rs {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.theme.Title.Render(m.texts.Title),
		m.theme.Subtitle.Render(m.texts.Description),
		"",
		m.theme.Header.Render(m.texts.Header),
	}
	for i, s := range m.selects {
		value := fmt.Sprintf("‹ %s ›", s.value())
		sections = append(sections, m.renderField(i, s.field, value))
	}
	for i, n := range m.numbers {
		sections = append(sections, m.renderField(len(m.selects)+i, n.field, n.input.View()))
	}

	button := m.theme.Button
	if m.buttonFocused() {
		button = m.theme.Active
	}
	sections = append(sections, "", button.Render(m.texts.Button))

	if m.result != nil {
		sections = append(sections, "", m.renderResult())
	}

	sections = append(sections, "", m.help.View(m.keys))

	return m.theme.Box.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderField(slot int, field, value string) string {
	label := m.texts.FieldLabels[field]
	prefix := "  "
	if slot == m.focus {
		prefix = m.theme.Focused.Render("> ")
		value = m.theme.Focused.Render(value)
	}
	return prefix + m.theme.Label.Render(label) + value
}

func (m Model) renderResult() string {
	if m.result.err != nil {
		return m.theme.Error.Render(m.result.err.Error())
	}
	p := m.result.prediction
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Header.Render(m.texts.ResultsHeader),
		m.theme.Success.Render(fmt.Sprintf("%s %s", m.texts.PriceLabel, m.formatter.Price(p.Price))),
		m.theme.Info.Render(fmt.Sprintf("%s %s", m.texts.CategoryLabel, m.formatter.Category(p.Category))),
	)
}
