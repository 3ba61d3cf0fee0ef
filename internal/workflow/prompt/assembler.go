// Package prompt 负责把目录数据和用户输入拼装成发给模型的提示词。
//
// 所有构建函数都是纯函数：同样的输入总是得到同样的输出，不访问网络。
package prompt

import (
	"writemaster-api/internal/workflow/catalog"
)

var (
	systemPrompt         = mustReadEmbeddedText("templates/system.txt")
	researchSystemPrompt = mustReadEmbeddedText("templates/research_system.txt")
)

// SystemPrompt 返回写作原则系统提示词，用于每次生成与润色调用
func SystemPrompt() string { return systemPrompt }

// ResearchSystemPrompt 返回研究调用使用的精简系统提示词
func ResearchSystemPrompt() string { return researchSystemPrompt }

type generationData struct {
	Idea   string
	Format catalog.Format
	Style  catalog.Style
	Tone   *catalog.Tone
	Thread bool
}

type refinementData struct {
	Content     string
	Instruction string
	Format      catalog.Format
	Style       catalog.Style
	Tone        *catalog.Tone
	Thread      bool
}

// Assembler 提示词拼装器
type Assembler struct {
	registry *Registry
}

// NewAssembler 创建拼装器，registry 为 nil 时使用新的注册表
func NewAssembler(registry *Registry) *Assembler {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Assembler{registry: registry}
}

// BuildGenerationPrompt 构建生成提示词。未知格式/风格回退默认值，未知语气忽略。
func (a *Assembler) BuildGenerationPrompt(idea, formatID, styleID, toneID string) (string, error) {
	return a.registry.Render(PromptGeneration, generationData{
		Idea:   idea,
		Format: catalog.ResolveFormat(formatID),
		Style:  catalog.ResolveStyle(styleID),
		Tone:   catalog.ResolveTone(toneID),
		Thread: formatID == catalog.FormatThread,
	})
}

// BuildRefinementPrompt 构建润色提示词，原文与指令原样嵌入
func (a *Assembler) BuildRefinementPrompt(content, instruction, formatID, styleID, toneID string) (string, error) {
	return a.registry.Render(PromptRefinement, refinementData{
		Content:     content,
		Instruction: instruction,
		Format:      catalog.ResolveFormat(formatID),
		Style:       catalog.ResolveStyle(styleID),
		Tone:        catalog.ResolveTone(toneID),
		Thread:      formatID == catalog.FormatThread,
	})
}

// BuildResearchPrompt 构建研究提示词
func (a *Assembler) BuildResearchPrompt(idea string) (string, error) {
	return a.registry.Render(PromptResearch, struct{ Idea string }{Idea: idea})
}

// WrapResearchContext 把研究结果作为前置段落拼到提示词前；research 为空时原样返回
func (a *Assembler) WrapResearchContext(research, prompt string) (string, error) {
	if research == "" {
		return prompt, nil
	}
	return a.registry.Render(PromptResearchContext, struct {
		Research string
		Prompt   string
	}{Research: research, Prompt: prompt})
}
