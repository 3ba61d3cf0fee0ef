package workspace

import (
	"time"

	"writemaster-api/internal/workflow/catalog"
	"writemaster-api/internal/workflow/node"
)

// Item 一条生成结果。格式、风格、语气在创建时确定，润色只替换 Content。
type Item struct {
	ID        string    `json:"id"`
	FormatID  string    `json:"formatId"`
	Content   string    `json:"content"`
	StyleID   string    `json:"styleId"`
	ToneID    string    `json:"toneId,omitempty"`
	Pinned    bool      `json:"pinned"`
	Seq       uint64    `json:"seq"`
	CreatedAt time.Time `json:"createdAt"`
}

func (i Item) Chars() int { return node.CountChars(i.Content) }

func (i Item) Words() int { return node.CountWords(i.Content) }

// Segments 线程内容按分隔行拆成多条推文，其余格式整段返回
func (i Item) Segments() []string {
	if i.FormatID == catalog.FormatThread {
		if parts := node.SplitThread(i.Content); len(parts) > 1 {
			return parts
		}
	}
	return []string{i.Content}
}
