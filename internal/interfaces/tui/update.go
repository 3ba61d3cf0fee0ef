package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"writemaster-api/internal/application/workspace"
	"writemaster-api/internal/workflow/catalog"
	apperrors "writemaster-api/pkg/errors"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.sync()
		return m, nil

	case refreshMsg:
		m.sync()
		return m, m.refresh.wait(m.ctx)

	case opDoneMsg:
		m.sync()
		switch {
		case msg.err == nil:
			m.status = ""
			if msg.op == opRefine {
				m.instruction.Reset()
			}
		case isValidation(msg.err):
			m.status = msg.err.Error()
		}
		return m, nil

	case spinner.TickMsg:
		if m.snap.Phase == workspace.PhaseIdle {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Generate):
		return m.startGenerate()
	case key.Matches(msg, m.keys.APIKey):
		return m.openAPIKey()
	case key.Matches(msg, m.keys.Back):
		return m.back()
	case key.Matches(msg, m.keys.NextFocus) && m.focus != focusAPIKey:
		return m.cycleFocus()
	}

	switch m.focus {
	case focusIdea:
		if key.Matches(msg, m.keys.Submit) {
			return m.startGenerate()
		}
		var cmd tea.Cmd
		m.idea, cmd = m.idea.Update(msg)
		m.ctrl.SetIdea(m.idea.Value())
		return m, cmd

	case focusRefine:
		if key.Matches(msg, m.keys.Submit) {
			return m.startRefine()
		}
		var cmd tea.Cmd
		m.instruction, cmd = m.instruction.Update(msg)
		return m, cmd

	case focusAPIKey:
		if key.Matches(msg, m.keys.Submit) {
			return m.saveAPIKey()
		}
		var cmd tea.Cmd
		m.apiKey, cmd = m.apiKey.Update(msg)
		return m, cmd
	}

	return m.handleOutputsKey(msg)
}

func (m Model) handleOutputsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keys.Pin):
		if it, ok := m.selected(); ok {
			m.report(m.ctrl.TogglePin(it.ID))
		}
	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.selected(); ok {
			m.report(m.ctrl.Delete(it.ID))
		}
	case key.Matches(msg, m.keys.Expand):
		if it, ok := m.selected(); ok {
			m.ctrl.ToggleExpand(it.FormatID)
		}
	case key.Matches(msg, m.keys.Copy):
		if it, ok := m.selected(); ok {
			if err := m.ctrl.Copy(it.ID); err != nil {
				m.report(err)
			} else {
				m.status = "copied to clipboard"
			}
		}
	case key.Matches(msg, m.keys.ToggleFormat):
		ids := catalog.FormatIDs()
		if i := int(msg.Runes[0] - '1'); i >= 0 && i < len(ids) {
			m.report(m.ctrl.ToggleFormat(m.ctx, ids[i]))
		}
	case key.Matches(msg, m.keys.CycleStyle):
		m.report(m.ctrl.SetStyle(m.ctx, nextStyle(m.snap.Settings.StyleID)))
	case key.Matches(msg, m.keys.CycleTone):
		m.report(m.ctrl.SetTone(m.ctx, nextTone(m.snap.Settings.ToneID)))
	default:
		return m, nil
	}
	m.sync()
	return m, nil
}

// updateFocused 把非按键消息（光标闪烁等）交给当前输入框
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusIdea:
		m.idea, cmd = m.idea.Update(msg)
	case focusRefine:
		m.instruction, cmd = m.instruction.Update(msg)
	case focusAPIKey:
		m.apiKey, cmd = m.apiKey.Update(msg)
	default:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m Model) startGenerate() (tea.Model, tea.Cmd) {
	m.ctrl.SetIdea(m.idea.Value())
	switch {
	case m.ctrl.Phase() != workspace.PhaseIdle:
		m.status = workspace.ErrBusy.Error()
		return m, nil
	case m.ctrl.Settings().APIKey == "":
		m.status = "add your API key first"
		return m.openAPIKey()
	case strings.TrimSpace(m.idea.Value()) == "":
		m.status = "type an idea first"
		return m, nil
	}

	m.status = ""
	ctx, ctrl := m.ctx, m.ctrl
	run := func() tea.Msg {
		return opDoneMsg{op: opGenerate, err: ctrl.Generate(ctx)}
	}
	return m, tea.Batch(m.spinner.Tick, run)
}

func (m Model) startRefine() (tea.Model, tea.Cmd) {
	instruction := strings.TrimSpace(m.instruction.Value())
	if !m.ctrl.CanRefine(instruction) {
		switch {
		case m.ctrl.Phase() != workspace.PhaseIdle:
			m.status = workspace.ErrBusy.Error()
		case instruction == "":
			m.status = "type a refine instruction first"
		case m.ctrl.Settings().APIKey == "":
			m.status = "add your API key first"
			return m.openAPIKey()
		default:
			m.status = "generate something to refine first"
		}
		return m, nil
	}

	m.status = ""
	ctx, ctrl := m.ctx, m.ctrl
	run := func() tea.Msg {
		return opDoneMsg{op: opRefine, err: ctrl.Refine(ctx, instruction)}
	}
	return m, tea.Batch(m.spinner.Tick, run)
}

func (m Model) openAPIKey() (tea.Model, tea.Cmd) {
	if m.focus != focusAPIKey {
		m.prevFocus = m.focus
	}
	m.setFocus(focusAPIKey)
	m.apiKey.SetValue(m.ctrl.Settings().APIKey)
	m.apiKey.CursorEnd()
	cmd := m.apiKey.Focus()
	return m, cmd
}

func (m Model) saveAPIKey() (tea.Model, tea.Cmd) {
	if err := m.ctrl.SetAPIKey(m.ctx, m.apiKey.Value()); err != nil {
		m.report(err)
	} else {
		m.status = "API key saved"
	}
	m.apiKey.Reset()
	m.setFocus(m.prevFocus)
	m.sync()
	cmd := m.focusCmd()
	return m, cmd
}

func (m Model) back() (tea.Model, tea.Cmd) {
	if m.focus == focusAPIKey {
		m.apiKey.Reset()
		m.setFocus(m.prevFocus)
		cmd := m.focusCmd()
		return m, cmd
	}
	m.status = ""
	m.ctrl.ClearError()
	m.setFocus(focusOutputs)
	m.sync()
	return m, nil
}

func (m Model) cycleFocus() (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusIdea:
		m.setFocus(focusOutputs)
	case focusOutputs:
		m.setFocus(focusRefine)
	default:
		m.setFocus(focusIdea)
	}
	cmd := m.focusCmd()
	return m, cmd
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.idea.Blur()
	m.instruction.Blur()
	m.apiKey.Blur()
}

func (m *Model) focusCmd() tea.Cmd {
	switch m.focus {
	case focusIdea:
		return m.idea.Focus()
	case focusRefine:
		return m.instruction.Focus()
	case focusAPIKey:
		return m.apiKey.Focus()
	}
	return nil
}

func (m *Model) report(err error) {
	if err != nil {
		m.status = apperrors.UserMessage(err)
	}
}

func isValidation(err error) bool {
	for _, target := range []error{
		workspace.ErrBusy,
		workspace.ErrMissingAPIKey,
		workspace.ErrBlankIdea,
		workspace.ErrBlankInstruction,
		workspace.ErrNoOutputs,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func nextStyle(current string) string {
	list := catalog.StyleList()
	for i, s := range list {
		if s.ID == current {
			return list[(i+1)%len(list)].ID
		}
	}
	return list[0].ID
}

// nextTone 在 无语气 → 各语气 之间循环
func nextTone(current string) string {
	ids := []string{""}
	for _, t := range catalog.ToneList() {
		ids = append(ids, t.ID)
	}
	for i, id := range ids {
		if id == current {
			return ids[(i+1)%len(ids)]
		}
	}
	return ""
}
