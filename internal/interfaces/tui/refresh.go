package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type refreshMsg struct{}

// Refresher 把控制器的状态变化通知转成界面消息。
// 多次通知在界面取走前会合并为一次。
type Refresher struct {
	ch chan struct{}
}

func NewRefresher() *Refresher {
	return &Refresher{ch: make(chan struct{}, 1)}
}

// Notify 可在任意 goroutine 调用，从不阻塞
func (r *Refresher) Notify() {
	select {
	case r.ch <- struct{}{}:
	default:
	}
}

func (r *Refresher) wait(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-r.ch:
			return refreshMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}
