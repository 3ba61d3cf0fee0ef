// Package tui 实现写作工作台的终端界面，所有状态都来自 workspace.Controller。
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"writemaster-api/internal/application/workspace"
)

type focus int

const (
	focusIdea focus = iota
	focusOutputs
	focusRefine
	focusAPIKey
)

type operation int

const (
	opGenerate operation = iota
	opRefine
)

// opDoneMsg 生成或润色结束
type opDoneMsg struct {
	op  operation
	err error
}

// 除输出区外各部分占用的行数
const chromeHeight = 10

// Model 终端界面状态
type Model struct {
	ctx     context.Context
	ctrl    *workspace.Controller
	refresh *Refresher

	keys        KeyMap
	help        help.Model
	idea        textinput.Model
	instruction textinput.Model
	apiKey      textinput.Model
	spinner     spinner.Model
	viewport    viewport.Model

	focus     focus
	prevFocus focus
	cursor    int
	status    string
	snap      workspace.Snapshot

	width    int
	height   int
	renderer *glamour.TermRenderer
	rendered map[string]string
}

// NewModel 创建界面模型；refresh 为空时只在本地操作后刷新
func NewModel(ctx context.Context, ctrl *workspace.Controller, refresh *Refresher) Model {
	idea := textinput.New()
	idea.Placeholder = "What do you want to write about?"
	idea.Prompt = "Idea ❯ "
	idea.SetValue(ctrl.Idea())
	idea.Focus()

	instruction := textinput.New()
	instruction.Placeholder = "e.g. make it punchier"
	instruction.Prompt = "Refine ❯ "

	apiKey := textinput.New()
	apiKey.Placeholder = "sk-ant-..."
	apiKey.Prompt = "API key ❯ "
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.EchoCharacter = '•'

	m := Model{
		ctx:         ctx,
		ctrl:        ctrl,
		refresh:     refresh,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		idea:        idea,
		instruction: instruction,
		apiKey:      apiKey,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		viewport:    viewport.New(80, 20),
		focus:       focusIdea,
		rendered:    make(map[string]string),
	}
	m.sync()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.refresh != nil {
		cmds = append(cmds, m.refresh.wait(m.ctx))
	}
	return tea.Batch(cmds...)
}

// Run 以全屏模式运行界面直到用户退出或 ctx 取消
func Run(ctx context.Context, ctrl *workspace.Controller, refresh *Refresher) error {
	p := tea.NewProgram(
		NewModel(ctx, ctrl, refresh),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

// sync 从控制器拉取快照并重建输出区
func (m *Model) sync() {
	m.snap = m.ctrl.Snapshot()
	if n := len(m.items()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.viewport.SetContent(m.renderOutputs())
}

// items 按显示顺序展开全部条目
func (m Model) items() []workspace.Item {
	var out []workspace.Item
	for _, fo := range m.snap.Outputs {
		out = append(out, fo.Items...)
	}
	return out
}

func (m Model) selected() (workspace.Item, bool) {
	items := m.items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return workspace.Item{}, false
	}
	return items[m.cursor], true
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.idea.Width = width - len(m.idea.Prompt) - 2
	m.instruction.Width = width - len(m.instruction.Prompt) - 2
	m.viewport.Width = width
	m.viewport.Height = max(height-chromeHeight, 3)

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width-6, 20)),
	)
	if err == nil {
		m.renderer = r
	}
	m.rendered = make(map[string]string)
}

// markdown 按内容缓存渲染结果，渲染失败时原样返回
func (m Model) markdown(content string) string {
	if m.renderer == nil {
		return content
	}
	if out, ok := m.rendered[content]; ok {
		return out
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	m.rendered[content] = out
	return out
}
