package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solidpoint/spsched/internal/schedule"
	"github.com/solidpoint/spsched/internal/ui/styles"
)

// resourceRow is one line of the flattened group/resource tree.
type resourceRow struct {
	groupID    string
	resourceID string // empty on group rows
	label      string
	isGroup    bool
}

type resourceInputMode int

const (
	inputNone resourceInputMode = iota
	inputAddGroup
	inputAddResource
	inputRename
	inputConfirmDelete
)

// resourcePanel manages the resource hierarchy: groups, their
// resources, ordering and renames. Deleting cascades to projects, so
// deletes get an inline confirmation.
type resourcePanel struct {
	state  *schedule.State
	styles *styles.Styles

	cursor    int
	inputMode resourceInputMode
	input     textinput.Model
}

func newResourcePanel(state *schedule.State, s *styles.Styles) *resourcePanel {
	input := textinput.New()
	input.CharLimit = 60
	return &resourcePanel{state: state, styles: s, input: input}
}

// rows flattens the hierarchy in display order.
func (p *resourcePanel) rows() []resourceRow {
	var rows []resourceRow
	for _, g := range p.state.ResourceGroups {
		rows = append(rows, resourceRow{groupID: g.ID, label: g.Name, isGroup: true})
		for _, r := range g.Resources {
			rows = append(rows, resourceRow{groupID: g.ID, resourceID: r.ID, label: r.Name})
		}
	}
	return rows
}

func (p *resourcePanel) current() (resourceRow, bool) {
	rows := p.rows()
	if p.cursor < 0 || p.cursor >= len(rows) {
		return resourceRow{}, false
	}
	return rows[p.cursor], true
}

// Update handles one keystroke. It returns done when the panel should
// close and changed when the state was mutated and needs saving.
func (p *resourcePanel) Update(msg tea.KeyMsg) (done, changed bool) {
	if p.inputMode == inputConfirmDelete {
		switch msg.String() {
		case "y", "Y":
			p.inputMode = inputNone
			return false, p.deleteCurrent()
		case "n", "N", "esc":
			p.inputMode = inputNone
			return false, false
		}
		return false, false
	}

	if p.inputMode != inputNone {
		switch msg.String() {
		case "esc":
			p.inputMode = inputNone
			p.input.Blur()
			return false, false
		case "enter":
			changed = p.commitInput()
			p.inputMode = inputNone
			p.input.Blur()
			return false, changed
		}
		p.input, _ = p.input.Update(msg)
		return false, false
	}

	rows := p.rows()
	switch msg.String() {
	case "esc", "q", "r":
		return true, false

	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}

	case "down", "j":
		if p.cursor < len(rows)-1 {
			p.cursor++
		}

	case "a":
		p.startInput(inputAddResource, "")

	case "A", "g":
		p.startInput(inputAddGroup, "")

	case "e":
		if row, ok := p.current(); ok {
			p.startInput(inputRename, row.label)
		}

	case "d":
		if _, ok := p.current(); ok {
			p.inputMode = inputConfirmDelete
		}

	case "K":
		return false, p.moveCurrent(-1)

	case "J":
		return false, p.moveCurrent(1)
	}
	return false, false
}

func (p *resourcePanel) startInput(mode resourceInputMode, value string) {
	if mode == inputAddResource && len(p.state.ResourceGroups) == 0 {
		return
	}
	p.inputMode = mode
	p.input.SetValue(value)
	p.input.CursorEnd()
	p.input.Focus()
}

func (p *resourcePanel) commitInput() bool {
	name := strings.TrimSpace(p.input.Value())
	if name == "" {
		return false
	}

	switch p.inputMode {
	case inputAddGroup:
		p.state.AddResourceGroup(name)
		return true

	case inputAddResource:
		row, ok := p.current()
		groupID := ""
		if ok {
			groupID = row.groupID
		} else if len(p.state.ResourceGroups) > 0 {
			groupID = p.state.ResourceGroups[0].ID
		}
		if groupID == "" {
			return false
		}
		return p.state.AddResource(groupID, name) != nil

	case inputRename:
		row, ok := p.current()
		if !ok {
			return false
		}
		if row.isGroup {
			for i := range p.state.ResourceGroups {
				if p.state.ResourceGroups[i].ID == row.groupID {
					p.state.ResourceGroups[i].Name = name
					return true
				}
			}
			return false
		}
		if r, _ := p.state.Resource(row.resourceID); r != nil {
			r.Name = name
			return true
		}
		return false
	}
	return false
}

func (p *resourcePanel) deleteCurrent() bool {
	row, ok := p.current()
	if !ok {
		return false
	}
	var removed bool
	if row.isGroup {
		removed = p.state.RemoveResourceGroup(row.groupID)
	} else {
		removed = p.state.RemoveResource(row.resourceID)
	}
	if removed && p.cursor >= len(p.rows()) && p.cursor > 0 {
		p.cursor--
	}
	return removed
}

// moveCurrent reorders the row under the cursor one position up or
// down within its container. Order is display order and persisted.
func (p *resourcePanel) moveCurrent(dir int) bool {
	row, ok := p.current()
	if !ok {
		return false
	}

	if row.isGroup {
		groups := p.state.ResourceGroups
		for i := range groups {
			if groups[i].ID != row.groupID {
				continue
			}
			j := i + dir
			if j < 0 || j >= len(groups) {
				return false
			}
			groups[i], groups[j] = groups[j], groups[i]
			p.cursorTo(row)
			return true
		}
		return false
	}

	for gi := range p.state.ResourceGroups {
		g := &p.state.ResourceGroups[gi]
		if g.ID != row.groupID {
			continue
		}
		for i := range g.Resources {
			if g.Resources[i].ID != row.resourceID {
				continue
			}
			j := i + dir
			if j < 0 || j >= len(g.Resources) {
				return false
			}
			g.Resources[i], g.Resources[j] = g.Resources[j], g.Resources[i]
			p.cursorTo(row)
			return true
		}
	}
	return false
}

// cursorTo follows a row to its new position after a reorder.
func (p *resourcePanel) cursorTo(row resourceRow) {
	for i, r := range p.rows() {
		if r.isGroup == row.isGroup && r.groupID == row.groupID && r.resourceID == row.resourceID {
			p.cursor = i
			return
		}
	}
}

func (p *resourcePanel) View(width, height int) string {
	s := p.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("Resources") + "\n\n")

	rows := p.rows()
	if len(rows) == 0 {
		b.WriteString(s.TitleMuted.Render("  no resource groups yet, press g to add one") + "\n")
	}
	for i, row := range rows {
		label := row.label
		if row.isGroup {
			label = "▾ " + label
		} else {
			label = "    " + label + p.projectCountSuffix(row.resourceID)
		}
		if i == p.cursor {
			b.WriteString(s.ListSelected.Render(label) + "\n")
		} else if row.isGroup {
			b.WriteString(s.GroupHeader.Render(label) + "\n")
		} else {
			b.WriteString(s.ListItem.Render(label) + "\n")
		}
	}

	b.WriteString("\n")
	switch p.inputMode {
	case inputAddGroup:
		b.WriteString(s.TitleMuted.Render("New group name") + "\n" + s.InputFocused.Render(p.input.View()) + "\n")
	case inputAddResource:
		b.WriteString(s.TitleMuted.Render("New resource name") + "\n" + s.InputFocused.Render(p.input.View()) + "\n")
	case inputRename:
		b.WriteString(s.TitleMuted.Render("Rename") + "\n" + s.InputFocused.Render(p.input.View()) + "\n")
	case inputConfirmDelete:
		if row, ok := p.current(); ok {
			warn := "Delete " + row.label + " and all its projects? (y/n)"
			if row.isGroup {
				warn = "Delete group " + row.label + ", its resources and their projects? (y/n)"
			}
			b.WriteString(lipgloss.NewStyle().Foreground(styles.Current.Warning).Render(warn) + "\n")
		}
	default:
		b.WriteString(s.Help.Render("a add resource · g add group · e rename · d delete · J/K reorder · esc done") + "\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		s.Panel.Render(b.String()))
}

func (p *resourcePanel) projectCountSuffix(resourceID string) string {
	n := 0
	for _, pr := range p.state.Projects {
		if pr.ResourceID == resourceID {
			n++
		}
	}
	if n == 0 {
		return ""
	}
	label := fmt.Sprintf("%d projects", n)
	if n == 1 {
		label = "1 project"
	}
	return "  " + p.styles.TitleMuted.Render(label)
}
