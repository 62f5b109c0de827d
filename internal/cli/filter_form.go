package cli

import (
	"context"

	"github.com/alexanderramin/cycleboard/internal/cli/formatter"
	"github.com/alexanderramin/cycleboard/internal/contract"
	"github.com/alexanderramin/cycleboard/internal/domain"
	"github.com/alexanderramin/cycleboard/internal/viewstate"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// boardHuhTheme returns a huh theme matching the Gruvbox formatter palette.
func boardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[x] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

type pickerChoice struct {
	Label string
	Value string
}

// filterPicker holds one answer per key available in the session's view.
// Scalar keys bind to single, list keys to multi.
type filterPicker struct {
	keys    []viewstate.FilterKey
	choices map[viewstate.FilterKey][]pickerChoice
	single  map[viewstate.FilterKey]*string
	multi   map[viewstate.FilterKey]*[]string
}

func newFilterPicker(session *contract.SessionView, data *domain.NestedCycleData) *filterPicker {
	p := &filterPicker{
		choices: make(map[viewstate.FilterKey][]pickerChoice),
		single:  make(map[viewstate.FilterKey]*string),
		multi:   make(map[viewstate.FilterKey]*[]string),
	}
	for _, name := range session.AvailableKeys {
		key := viewstate.FilterKey(name)
		p.keys = append(p.keys, key)
		p.choices[key] = pickerChoices(key, data)

		switch key {
		case viewstate.KeyArea:
			v := session.Criteria.Area
			p.single[key] = &v
		case viewstate.KeyCycle:
			v := session.Criteria.Cycle
			p.single[key] = &v
		case viewstate.KeyInitiatives:
			v := append([]string(nil), session.Criteria.Initiatives...)
			p.multi[key] = &v
		case viewstate.KeyStages:
			v := append([]string(nil), session.Criteria.Stages...)
			p.multi[key] = &v
		case viewstate.KeyAssignees:
			v := append([]string(nil), session.Criteria.Assignees...)
			p.multi[key] = &v
		}
	}
	return p
}

// pickerChoices lists the values of key present in the snapshot. Values are
// the identifiers the filter engine matches on.
func pickerChoices(key viewstate.FilterKey, data *domain.NestedCycleData) []pickerChoice {
	var out []pickerChoice
	switch key {
	case viewstate.KeyArea:
		for _, a := range data.Areas {
			out = append(out, pickerChoice{Label: domain.CoalesceTrimmed(a.Name, a.ID), Value: a.ID})
		}
	case viewstate.KeyInitiatives:
		for _, ini := range data.Initiatives {
			out = append(out, pickerChoice{Label: ini.Name, Value: ini.ID})
		}
	case viewstate.KeyStages:
		for _, s := range data.Stages {
			out = append(out, pickerChoice{Label: domain.CoalesceTrimmed(s.Name, s.ID), Value: s.ID})
		}
	case viewstate.KeyAssignees:
		for _, a := range data.Assignees {
			out = append(out, pickerChoice{Label: domain.CoalesceTrimmed(a.DisplayName, a.ID, a.AccountID), Value: domain.CoalesceTrimmed(a.ID, a.AccountID)})
		}
	case viewstate.KeyCycle:
		for _, c := range data.Cycles {
			out = append(out, pickerChoice{Label: domain.CoalesceTrimmed(c.Name, c.ID), Value: c.ID})
		}
	}
	return out
}

// form returns nil when the view has nothing to choose from.
func (p *filterPicker) form() *huh.Form {
	var fields []huh.Field
	for _, key := range p.keys {
		title := string(key)
		if v, ok := p.single[key]; ok {
			opts := []huh.Option[string]{huh.NewOption("All", "")}
			for _, c := range p.choices[key] {
				opts = append(opts, huh.NewOption(c.Label, c.Value))
			}
			fields = append(fields, huh.NewSelect[string]().Title(title).Options(opts...).Value(v))
			continue
		}
		if len(p.choices[key]) == 0 {
			continue
		}
		opts := make([]huh.Option[string], 0, len(p.choices[key]))
		for _, c := range p.choices[key] {
			opts = append(opts, huh.NewOption(c.Label, c.Value))
		}
		fields = append(fields, huh.NewMultiSelect[string]().
			Title(title).
			Description("none selected means all").
			Options(opts...).
			Value(p.multi[key]))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(boardHuhTheme())
}

// apply writes every answer to the session in key order and returns the
// final session.
func (p *filterPicker) apply(ctx context.Context, app *App) (*contract.SessionView, error) {
	var (
		v   *contract.SessionView
		err error
	)
	for _, key := range p.keys {
		var values []string
		if s, ok := p.single[key]; ok {
			if *s != "" {
				values = []string{*s}
			}
		} else {
			values = *p.multi[key]
		}
		v, err = app.Sessions.UpdateFilter(ctx, app.sessionID(), string(key), values)
		if err != nil {
			return nil, err
		}
	}
	if v == nil {
		return app.Sessions.Get(ctx, app.sessionID())
	}
	return v, nil
}
