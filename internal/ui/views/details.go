package views

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solidpoint/spsched/internal/models"
	"github.com/solidpoint/spsched/internal/schedule"
	"github.com/solidpoint/spsched/internal/ui/styles"
)

const dateLayout = "2006-01-02"

// formOutcome tells the owning view what a form keystroke resolved to.
type formOutcome int

const (
	formOpen formOutcome = iota
	formSaved
	formCancelled
)

// projectForm edits one project's fields. The form works on a copy;
// nothing touches the state until the owning view applies the result.
type projectForm struct {
	original models.Project
	styles   *styles.Styles

	name     textinput.Model
	start    textinput.Model
	end      textinput.Model
	colorIn  textinput.Model
	notes    textarea.Model
	pinned   bool
	focusIdx int // 0=name, 1=start, 2=end, 3=color, 4=notes, 5=pinned, 6=save
}

const projectFormFields = 7

func newProjectForm(p models.Project, s *styles.Styles) *projectForm {
	name := textinput.New()
	name.Placeholder = "Project name"
	name.CharLimit = 120
	name.SetValue(p.Name)

	start := textinput.New()
	start.Placeholder = dateLayout
	start.CharLimit = 10
	start.SetValue(p.Start.Format(dateLayout))

	end := textinput.New()
	end.Placeholder = dateLayout
	end.CharLimit = 10
	end.SetValue(p.End.Format(dateLayout))

	colorIn := textinput.New()
	colorIn.Placeholder = schedule.DefaultProjectColor
	colorIn.CharLimit = 7
	colorIn.SetValue(p.Color)

	notes := textarea.New()
	notes.Placeholder = "Notes"
	notes.SetHeight(4)
	notes.SetValue(p.Notes)

	return &projectForm{
		original: p,
		styles:   s,
		name:     name,
		start:    start,
		end:      end,
		colorIn:  colorIn,
		notes:    notes,
		pinned:   p.Pinned,
	}
}

func (f *projectForm) Focus() tea.Cmd {
	f.focusIdx = 0
	f.updateFocus()
	return textinput.Blink
}

func (f *projectForm) updateFocus() {
	f.name.Blur()
	f.start.Blur()
	f.end.Blur()
	f.colorIn.Blur()
	f.notes.Blur()
	switch f.focusIdx {
	case 0:
		f.name.Focus()
	case 1:
		f.start.Focus()
	case 2:
		f.end.Focus()
	case 3:
		f.colorIn.Focus()
	case 4:
		f.notes.Focus()
	}
}

func (f *projectForm) Update(msg tea.KeyMsg) (formOutcome, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return formCancelled, nil

	case "ctrl+s":
		return formSaved, nil

	case "tab", "down":
		if msg.String() == "down" && f.focusIdx == 4 {
			break // let the textarea consume it
		}
		f.focusIdx = (f.focusIdx + 1) % projectFormFields
		f.updateFocus()
		return formOpen, nil

	case "shift+tab", "up":
		if msg.String() == "up" && f.focusIdx == 4 {
			break
		}
		f.focusIdx = (f.focusIdx + projectFormFields - 1) % projectFormFields
		f.updateFocus()
		return formOpen, nil

	case " ", "space":
		if f.focusIdx == 5 {
			f.pinned = !f.pinned
			return formOpen, nil
		}

	case "enter":
		switch f.focusIdx {
		case 5:
			f.pinned = !f.pinned
			return formOpen, nil
		case 6:
			return formSaved, nil
		case 4:
			break // newline in the notes field
		default:
			f.focusIdx++
			f.updateFocus()
			return formOpen, nil
		}
	}

	var cmd tea.Cmd
	switch f.focusIdx {
	case 0:
		f.name, cmd = f.name.Update(msg)
	case 1:
		f.start, cmd = f.start.Update(msg)
	case 2:
		f.end, cmd = f.end.Update(msg)
	case 3:
		f.colorIn, cmd = f.colorIn.Update(msg)
	case 4:
		f.notes, cmd = f.notes.Update(msg)
	}
	return formOpen, cmd
}

// Result builds the update command from the form fields. Dates must
// parse; an end before the start is rejected here so the reducer never
// sees an inverted interval from the form.
func (f *projectForm) Result() (schedule.UpdateProject, error) {
	var zero schedule.UpdateProject

	name := strings.TrimSpace(f.name.Value())
	if name == "" {
		return zero, errors.New("name must not be empty")
	}
	start, err := time.Parse(dateLayout, strings.TrimSpace(f.start.Value()))
	if err != nil {
		return zero, errors.New("start date must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, strings.TrimSpace(f.end.Value()))
	if err != nil {
		return zero, errors.New("end date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return zero, errors.New("end date is before the start date")
	}
	color := strings.TrimSpace(f.colorIn.Value())
	if color == "" {
		color = schedule.DefaultProjectColor
	}
	if !validHexColor(color) {
		return zero, errors.New("color must be #rrggbb")
	}

	p := f.original
	p.Name = name
	p.Start = schedule.Day(start.UTC())
	p.End = schedule.Day(end.UTC())
	p.Color = color
	p.Notes = f.notes.Value()
	p.Pinned = f.pinned
	return schedule.UpdateProject{Project: p}, nil
}

func validHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

func (f *projectForm) View(width, height int) string {
	s := f.styles

	field := func(idx int, label, rendered string) string {
		st := s.Input
		if f.focusIdx == idx {
			st = s.InputFocused
		}
		return s.TitleMuted.Render(label) + "\n" + st.Render(rendered)
	}

	pinLabel := "[ ] pinned"
	if f.pinned {
		pinLabel = "[⚑] pinned"
	}
	pin := s.Button.Render(pinLabel)
	if f.focusIdx == 5 {
		pin = s.ButtonFocused.Render(pinLabel)
	}

	save := s.Button.Render("Save")
	if f.focusIdx == 6 {
		save = s.ButtonFocused.Render("Save")
	}

	swatch := lipgloss.NewStyle().
		Background(lipgloss.Color(f.colorIn.Value())).
		Render("   ")

	body := strings.Join([]string{
		s.Title.Render("Edit project"),
		"",
		field(0, "Name", f.name.View()),
		lipgloss.JoinHorizontal(lipgloss.Top,
			field(1, "Start", f.start.View()),
			"  ",
			field(2, "End", f.end.View()),
		),
		lipgloss.JoinHorizontal(lipgloss.Bottom,
			field(3, "Color", f.colorIn.View()),
			" ",
			swatch,
		),
		field(4, "Notes", f.notes.View()),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, pin, "  ", save),
		"",
		s.Help.Render("tab next · ctrl+s save · esc cancel"),
	}, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		s.Panel.Render(body))
}

// dayOffTypes in cycling order, with the default shading color each
// type gets when none is set explicitly.
var dayOffTypes = []models.DayOffType{
	models.DayOffHoliday,
	models.DayOffWeekend,
	models.DayOffSick,
	models.DayOffPersonal,
	models.DayOffOther,
}

var dayOffColors = map[models.DayOffType]string{
	models.DayOffHoliday:  "#e0af68",
	models.DayOffWeekend:  "#3b4261",
	models.DayOffSick:     "#f7768e",
	models.DayOffPersonal: "#9ece6a",
	models.DayOffOther:    "#565f89",
}

// dayOffForm creates or edits the day-off entry on one date.
type dayOffForm struct {
	styles   *styles.Styles
	existing *models.DayOff

	date     textinput.Model
	typeIdx  int
	notes    textinput.Model
	focusIdx int // 0=date, 1=type, 2=notes, 3=save, 4=remove (when editing)
}

func newDayOffForm(date time.Time, existing *models.DayOff, s *styles.Styles) *dayOffForm {
	dateIn := textinput.New()
	dateIn.Placeholder = dateLayout
	dateIn.CharLimit = 10
	dateIn.SetValue(schedule.Day(date).Format(dateLayout))

	notes := textinput.New()
	notes.Placeholder = "Notes"
	notes.CharLimit = 200

	f := &dayOffForm{styles: s, date: dateIn, notes: notes}
	if existing != nil {
		entry := *existing
		f.existing = &entry
		f.notes.SetValue(entry.Notes)
		for i, t := range dayOffTypes {
			if t == entry.Type {
				f.typeIdx = i
			}
		}
	}
	return f
}

func (f *dayOffForm) fields() int {
	if f.existing != nil {
		return 5
	}
	return 4
}

func (f *dayOffForm) Focus() tea.Cmd {
	f.focusIdx = 0
	f.updateFocus()
	return textinput.Blink
}

func (f *dayOffForm) updateFocus() {
	f.date.Blur()
	f.notes.Blur()
	switch f.focusIdx {
	case 0:
		f.date.Focus()
	case 2:
		f.notes.Focus()
	}
}

func (f *dayOffForm) Update(msg tea.KeyMsg) (formOutcome, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return formCancelled, nil

	case "ctrl+s":
		return formSaved, nil

	case "tab", "down":
		f.focusIdx = (f.focusIdx + 1) % f.fields()
		f.updateFocus()
		return formOpen, nil

	case "shift+tab", "up":
		f.focusIdx = (f.focusIdx + f.fields() - 1) % f.fields()
		f.updateFocus()
		return formOpen, nil

	case "left":
		if f.focusIdx == 1 {
			f.typeIdx = (f.typeIdx + len(dayOffTypes) - 1) % len(dayOffTypes)
			return formOpen, nil
		}

	case "right":
		if f.focusIdx == 1 {
			f.typeIdx = (f.typeIdx + 1) % len(dayOffTypes)
			return formOpen, nil
		}

	case "enter":
		switch f.focusIdx {
		case 3:
			return formSaved, nil
		case 4:
			f.focusIdx = -1 // mark removal, resolved in Result
			return formSaved, nil
		default:
			f.focusIdx++
			f.updateFocus()
			return formOpen, nil
		}
	}

	var cmd tea.Cmd
	switch f.focusIdx {
	case 0:
		f.date, cmd = f.date.Update(msg)
	case 2:
		f.notes, cmd = f.notes.Update(msg)
	}
	return formOpen, cmd
}

// Result returns the entry to store, or remove=true when the remove
// button was chosen.
func (f *dayOffForm) Result() (models.DayOff, bool, error) {
	date, err := time.Parse(dateLayout, strings.TrimSpace(f.date.Value()))
	if err != nil {
		return models.DayOff{}, false, errors.New("date must be YYYY-MM-DD")
	}
	typ := dayOffTypes[f.typeIdx]
	entry := models.DayOff{
		Date:  schedule.Day(date.UTC()),
		Type:  typ,
		Color: dayOffColors[typ],
		Notes: f.notes.Value(),
	}
	if f.existing != nil {
		entry.ID = f.existing.ID
	}
	return entry, f.focusIdx == -1, nil
}

func (f *dayOffForm) View(width, height int) string {
	s := f.styles

	field := func(idx int, label, rendered string) string {
		st := s.Input
		if f.focusIdx == idx {
			st = s.InputFocused
		}
		return s.TitleMuted.Render(label) + "\n" + st.Render(rendered)
	}

	typ := dayOffTypes[f.typeIdx]
	typeLabel := fmt.Sprintf("◂ %s ▸", typ)
	typeView := s.Button.Render(typeLabel)
	if f.focusIdx == 1 {
		typeView = s.ButtonFocused.Render(typeLabel)
	}
	swatch := lipgloss.NewStyle().
		Background(lipgloss.Color(dayOffColors[typ])).
		Render("   ")

	save := s.Button.Render("Save")
	if f.focusIdx == 3 {
		save = s.ButtonFocused.Render("Save")
	}

	buttons := []string{save}
	if f.existing != nil {
		remove := s.Button.Render("Remove")
		if f.focusIdx == 4 {
			remove = s.ButtonFocused.Render("Remove")
		}
		buttons = append(buttons, "  ", remove)
	}

	title := "Add day off"
	if f.existing != nil {
		title = "Edit day off"
	}

	body := strings.Join([]string{
		s.Title.Render(title),
		"",
		field(0, "Date", f.date.View()),
		s.TitleMuted.Render("Type") + "\n" +
			lipgloss.JoinHorizontal(lipgloss.Center, typeView, " ", swatch),
		field(2, "Notes", f.notes.View()),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, buttons...),
		"",
		s.Help.Render("tab next · ←/→ type · ctrl+s save · esc cancel"),
	}, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		s.Panel.Render(body))
}
