// Package clipboard 系统剪贴板适配
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// System 基于 atotto/clipboard 的系统剪贴板
type System struct{}

func New() *System { return &System{} }

// Available 当前环境是否存在可用的剪贴板工具
func (s *System) Available() bool {
	return !clipboard.Unsupported
}

func (s *System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard unsupported on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
