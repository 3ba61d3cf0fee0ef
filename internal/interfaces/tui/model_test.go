package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writemaster-api/internal/application/workspace"
	"writemaster-api/internal/application/writer"
	"writemaster-api/internal/infrastructure/persistence/memory"
	"writemaster-api/internal/workflow/catalog"
)

type generatorMock struct {
	GenerateFunc func(ctx context.Context, in *writer.GenerateInput) (string, error)
}

func (m *generatorMock) Generate(ctx context.Context, in *writer.GenerateInput) (string, error) {
	return m.GenerateFunc(ctx, in)
}

func newTestModel(t *testing.T, apiKey string) (Model, *workspace.Controller) {
	t.Helper()
	ctx := context.Background()
	prefs := memory.NewPreferenceStore()
	if apiKey != "" {
		require.NoError(t, prefs.Set(ctx, workspace.KeyAPIKey, apiKey))
	}
	gen := &generatorMock{GenerateFunc: func(ctx context.Context, in *writer.GenerateInput) (string, error) {
		return in.FormatID + ": " + in.Idea, nil
	}}
	ctrl, err := workspace.NewController(ctx, prefs, gen, nil)
	require.NoError(t, err)
	return NewModel(ctx, ctrl, nil), ctrl
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain 执行命令（展开 Batch）并把产生的消息回灌给模型
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = drain(t, m, c)
		}
		return m
	}
	if done, ok := msg.(opDoneMsg); ok {
		next, _ := m.Update(done)
		return next.(Model)
	}
	return m
}

func TestGenerateWithoutAPIKeyOpensKeyInput(t *testing.T) {
	m, ctrl := newTestModel(t, "")
	m.idea.SetValue("Boredom is a signal")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.Equal(t, focusAPIKey, m.focus)
	assert.Equal(t, "add your API key first", m.status)

	m, _ = press(t, m, runes("sk-new"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, focusIdea, m.focus)
	assert.Equal(t, "sk-new", ctrl.Settings().APIKey)
	assert.Equal(t, "API key saved", m.status)
}

func TestGenerateShowsOutputs(t *testing.T) {
	m, ctrl := newTestModel(t, "sk-test")
	m, _ = press(t, m, runes("Boredom"))
	assert.Equal(t, "Boredom", ctrl.Idea())

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	require.NotNil(t, cmd)
	m = drain(t, m, cmd)

	require.Len(t, m.items(), 1)
	assert.Contains(t, m.View(), "tweet: Boredom")
	assert.Equal(t, workspace.PhaseIdle, ctrl.Phase())
}

func TestGenerateRequiresIdea(t *testing.T) {
	m, _ := newTestModel(t, "sk-test")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "type an idea first", m.status)
}

func TestOutputsKeys(t *testing.T) {
	m, ctrl := newTestModel(t, "sk-test")
	m.idea.SetValue("Leverage")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	m = drain(t, m, cmd)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusOutputs, m.focus)

	m, _ = press(t, m, runes("p"))
	it, ok := m.selected()
	require.True(t, ok)
	assert.True(t, it.Pinned)

	m, _ = press(t, m, runes("2"))
	assert.True(t, ctrl.Settings().HasFormat(catalog.FormatThread))

	m, _ = press(t, m, runes("t"))
	first := catalog.ToneList()[0].ID
	assert.Equal(t, first, ctrl.Settings().ToneID)

	m, _ = press(t, m, runes("s"))
	assert.Equal(t, catalog.StyleList()[1].ID, ctrl.Settings().StyleID)

	m, _ = press(t, m, runes("x"))
	assert.Empty(t, m.items())
}

func TestTypingInIdeaDoesNotTriggerShortcuts(t *testing.T) {
	m, ctrl := newTestModel(t, "sk-test")

	m, _ = press(t, m, runes("q"))
	m, _ = press(t, m, runes("p"))

	assert.Equal(t, "qp", m.idea.Value())
	assert.Equal(t, "qp", ctrl.Idea())
}

func TestRefineRequiresOutputs(t *testing.T) {
	m, _ := newTestModel(t, "sk-test")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusRefine, m.focus)

	m, _ = press(t, m, runes("shorter"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, "generate something to refine first", m.status)
}

func TestNextTone(t *testing.T) {
	tones := catalog.ToneList()
	assert.Equal(t, tones[0].ID, nextTone(""))
	assert.Equal(t, "", nextTone(tones[len(tones)-1].ID))
	assert.Equal(t, "", nextTone("unknown"))
}
