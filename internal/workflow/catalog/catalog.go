// Package catalog 提供格式、风格、语气三张只读目录表。
//
// 目录在包初始化时构建，之后不可修改；所有查询都通过 Resolve 系列访问器完成，
// 未知标识回退到默认项（语气除外，未知语气解析为 nil）。
package catalog

// 默认标识
const (
	DefaultFormatID = FormatTweet
	DefaultStyleID  = StyleNaval
)

// Summary 用于列表展示的精简条目
type Summary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	RequiresResearch bool   `json:"requiresResearch,omitempty"`
}
