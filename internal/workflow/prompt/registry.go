package prompt

import (
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

//go:embed templates/*.tmpl templates/*.txt
var templatesFS embed.FS

type PromptID string

const (
	PromptGeneration      PromptID = "generation"
	PromptRefinement      PromptID = "refinement"
	PromptResearch        PromptID = "research"
	PromptResearchContext PromptID = "research_context"
)

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// Registry 缓存解析后的提示词模板
type Registry struct {
	mu    sync.RWMutex
	cache map[PromptID]*template.Template
}

func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[PromptID]*template.Template),
	}
}

func (r *Registry) Template(id PromptID) (*template.Template, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	path, err := resolvePromptFile(id)
	if err != nil {
		return nil, err
	}
	text, err := readEmbeddedText(path)
	if err != nil {
		return nil, err
	}
	tpl, err := template.New(string(id)).Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse prompt %s: %w", id, err)
	}
	r.cache[id] = tpl
	return tpl, nil
}

// Render 渲染指定模板并去掉首尾空白
func (r *Registry) Render(id PromptID, data any) (string, error) {
	tpl, err := r.Template(id)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", id, err)
	}
	return strings.TrimSpace(sb.String()), nil
}

func resolvePromptFile(id PromptID) (string, error) {
	switch id {
	case PromptGeneration:
		return "templates/generation.tmpl", nil
	case PromptRefinement:
		return "templates/refinement.tmpl", nil
	case PromptResearch:
		return "templates/research.tmpl", nil
	case PromptResearchContext:
		return "templates/research_context.tmpl", nil
	default:
		return "", fmt.Errorf("unknown prompt id: %s", id)
	}
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// mustReadEmbeddedText 读取固定文本，仅在包初始化时使用
func mustReadEmbeddedText(path string) string {
	s, err := readEmbeddedText(path)
	if err != nil {
		panic(fmt.Sprintf("prompt: missing embedded %s: %v", path, err))
	}
	return s
}
