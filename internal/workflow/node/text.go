package node

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ThreadSeparator 线程内推文之间的分隔行
const ThreadSeparator = "---"

func TruncateByRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i]
		}
		n++
	}
	return s
}

// CountChars 统计字符数（按 rune）
func CountChars(s string) int {
	return utf8.RuneCountInString(s)
}

// CountWords 统计以空白分隔的词数
func CountWords(s string) int {
	return len(strings.FieldsFunc(s, unicode.IsSpace))
}

// SplitThread 按 "---" 拆分线程内容，去掉空段与首尾空白
func SplitThread(content string) []string {
	parts := strings.Split(content, ThreadSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
