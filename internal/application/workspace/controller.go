// Package workspace 持有写作会话的全部状态：偏好设置、输出条目以及当前阶段，
// 并把用户动作转换为对生成/润色服务的调用。
package workspace

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"writemaster-api/internal/application/writer"
	"writemaster-api/internal/workflow/catalog"
	apperrors "writemaster-api/pkg/errors"
	"writemaster-api/pkg/logger"
)

// 校验类错误，界面应据此禁用对应操作而不是展示错误
var (
	ErrBusy             = errors.New("another operation is in progress")
	ErrMissingAPIKey    = errors.New("api key required")
	ErrBlankIdea        = errors.New("idea is blank")
	ErrBlankInstruction = errors.New("refine instruction is blank")
	ErrNoOutputs        = errors.New("nothing to refine")
	ErrItemNotFound     = errors.New("item not found")
	ErrNoClipboard      = errors.New("clipboard unavailable")
)

// Phase 控制器所处阶段
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseGenerating
	PhaseRefining
)

func (p Phase) String() string {
	switch p {
	case PhaseGenerating:
		return "generating"
	case PhaseRefining:
		return "refining"
	default:
		return "idle"
	}
}

type Generator interface {
	Generate(ctx context.Context, in *writer.GenerateInput) (string, error)
}

type Refiner interface {
	Refine(ctx context.Context, in *writer.RefineInput) (string, error)
}

// Clipboard 剪贴板端口
type Clipboard interface {
	WriteAll(text string) error
}

// FormatOutput 某个格式下的条目
type FormatOutput struct {
	FormatID string `json:"formatId"`
	Name     string `json:"name"`
	Expanded bool   `json:"expanded"`
	Items    []Item `json:"items"`
}

// Snapshot 供渲染使用的只读状态
type Snapshot struct {
	Phase    Phase          `json:"-"`
	Settings Settings       `json:"settings"`
	Idea     string         `json:"idea"`
	Error    string         `json:"error,omitempty"`
	Outputs  []FormatOutput `json:"outputs"`
}

type Option func(*Controller)

// WithClipboard 注入剪贴板
func WithClipboard(cb Clipboard) Option {
	return func(c *Controller) { c.clipboard = cb }
}

// WithNotifier 状态变化时回调（可能在任意 goroutine 中调用）
func WithNotifier(fn func()) Option {
	return func(c *Controller) { c.notifier = fn }
}

// Controller 写作会话控制器
type Controller struct {
	prefs     PreferenceStore
	generator Generator
	refiner   Refiner
	clipboard Clipboard
	notifier  func()

	mu       sync.Mutex
	phase    Phase
	settings Settings
	idea     string
	errMsg   string
	expanded map[string]bool

	outputs outputStore
	seq     atomic.Uint64
}

// NewController 创建控制器并从 prefs 载入偏好
func NewController(ctx context.Context, prefs PreferenceStore, generator Generator, refiner Refiner, opts ...Option) (*Controller, error) {
	settings, err := LoadSettings(ctx, prefs)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load preferences")
	}

	c := &Controller{
		prefs:     prefs,
		generator: generator,
		refiner:   refiner,
		settings:  settings,
		expanded:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Settings 当前偏好副本
func (c *Controller) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings.clone()
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Error 单一错误槽中的最近一条错误
func (c *Controller) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *Controller) ClearError() {
	c.mu.Lock()
	c.errMsg = ""
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) SetIdea(idea string) {
	c.mu.Lock()
	c.idea = idea
	c.mu.Unlock()
}

func (c *Controller) Idea() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idea
}

// SetAPIKey 更新并持久化 API Key
func (c *Controller) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	c.mu.Lock()
	c.settings.APIKey = key
	c.mu.Unlock()
	return c.persist(ctx, KeyAPIKey, key)
}

// ToggleFormat 选中/取消格式；取消最后一个已选格式是空操作
func (c *Controller) ToggleFormat(ctx context.Context, formatID string) error {
	c.mu.Lock()
	formats := c.settings.Formats
	if c.settings.HasFormat(formatID) {
		if len(formats) <= 1 {
			c.mu.Unlock()
			return nil
		}
		next := make([]string, 0, len(formats)-1)
		for _, f := range formats {
			if f != formatID {
				next = append(next, f)
			}
		}
		formats = next
	} else {
		formats = append(append([]string(nil), formats...), formatID)
	}
	c.settings.Formats = formats
	encoded := encodeFormats(formats)
	c.mu.Unlock()

	return c.persist(ctx, KeyFormats, encoded)
}

func (c *Controller) SetStyle(ctx context.Context, styleID string) error {
	c.mu.Lock()
	c.settings.StyleID = styleID
	c.mu.Unlock()
	return c.persist(ctx, KeyStyle, styleID)
}

// SetTone 设置语气；再次选择当前语气时清除，空字符串表示无语气
func (c *Controller) SetTone(ctx context.Context, toneID string) error {
	c.mu.Lock()
	if c.settings.ToneID == toneID {
		toneID = ""
	}
	c.settings.ToneID = toneID
	c.mu.Unlock()
	return c.persist(ctx, KeyTone, toneID)
}

func (c *Controller) persist(ctx context.Context, key, value string) error {
	defer c.notify()
	if c.prefs == nil {
		return nil
	}
	if err := c.prefs.Set(ctx, key, value); err != nil {
		logger.Error(ctx, "failed to persist preference", err, "key", key)
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to save preference")
	}
	return nil
}

// CanGenerate 生成按钮是否可用
func (c *Controller) CanGenerate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase == PhaseIdle && c.settings.APIKey != "" && strings.TrimSpace(c.idea) != ""
}

// CanRefine 润色是否可用
func (c *Controller) CanRefine(instruction string) bool {
	c.mu.Lock()
	idle := c.phase == PhaseIdle
	c.mu.Unlock()
	return idle && strings.TrimSpace(instruction) != "" && !c.outputs.empty()
}

// Generate 清除未置顶条目后为每个已选格式并发生成一条内容。
// 每个格式的结果一返回就写入，单个格式失败只写错误槽，不影响其它格式。
func (c *Controller) Generate(ctx context.Context) error {
	c.mu.Lock()
	idea, settings := c.idea, c.settings.clone()
	c.mu.Unlock()
	return c.generate(ctx, idea, settings)
}

// GenerateWith 以给定设置生成一次，settings 不写回偏好；重复的格式只调用一次。
func (c *Controller) GenerateWith(ctx context.Context, idea string, settings Settings) error {
	c.SetIdea(idea)
	return c.generate(ctx, idea, settings.clone())
}

func (c *Controller) generate(ctx context.Context, idea string, settings Settings) error {
	c.mu.Lock()
	if c.phase != PhaseIdle {
		c.mu.Unlock()
		return ErrBusy
	}
	if settings.APIKey == "" {
		c.mu.Unlock()
		return ErrMissingAPIKey
	}
	idea = strings.TrimSpace(idea)
	if idea == "" {
		c.mu.Unlock()
		return ErrBlankIdea
	}
	settings.Formats = uniqueFormats(settings.Formats)
	c.phase = PhaseGenerating
	c.errMsg = ""
	for _, f := range settings.Formats {
		c.expanded[f] = true
	}
	c.mu.Unlock()

	defer c.finish()

	for _, f := range c.outputs.formats() {
		c.outputs.update(f, false, keepPinned)
	}
	c.notify()

	var (
		g        errgroup.Group
		mu       sync.Mutex
		failures = FormatErrors{}
	)
	for _, formatID := range settings.Formats {
		formatID := formatID
		g.Go(func() error {
			fctx := logger.WithContext(ctx, logger.FormatIDKey, formatID)
			text, err := c.generator.Generate(fctx, &writer.GenerateInput{
				APIKey:   settings.APIKey,
				Idea:     idea,
				FormatID: formatID,
				StyleID:  settings.StyleID,
				ToneID:   settings.ToneID,
			})
			if err != nil {
				logger.Error(fctx, "generation failed", err)
				mu.Lock()
				failures[formatID] = err
				mu.Unlock()
				c.setError(err)
				return nil
			}
			c.outputs.update(formatID, true, appendItem(c.newItem(formatID, text, settings.StyleID, settings.ToneID)))
			c.notify()
			return nil
		})
	}
	_ = g.Wait()

	if len(failures) > 0 {
		return failures
	}
	return nil
}

// FormatErrors 一次生成中各格式的失败原因
type FormatErrors map[string]error

func (e FormatErrors) Error() string {
	ids := make([]string, 0, len(e))
	for id := range e {
		ids = append(ids, id)
	}
	sortFormats(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id+": "+apperrors.UserMessage(e[id]))
	}
	return strings.Join(parts, "; ")
}

// uniqueFormats 去重并保持顺序；为空时回退到默认格式
func uniqueFormats(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	if len(out) == 0 {
		out = append(out, catalog.DefaultFormatID)
	}
	return out
}

// Refine 逐条（串行）润色所有未置顶条目，保留每条原有的风格与语气。
func (c *Controller) Refine(ctx context.Context, instruction string) error {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return ErrBlankInstruction
	}

	c.mu.Lock()
	if c.phase != PhaseIdle {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.outputs.empty() {
		c.mu.Unlock()
		return ErrNoOutputs
	}
	c.phase = PhaseRefining
	c.errMsg = ""
	apiKey := c.settings.APIKey
	c.mu.Unlock()

	defer c.finish()
	c.notify()

	var firstErr error
	for _, formatID := range c.outputs.formats() {
		for _, item := range c.outputs.list(formatID) {
			if item.Pinned {
				continue
			}
			ictx := logger.WithContext(ctx, logger.ItemIDKey, item.ID)
			text, err := c.refiner.Refine(ictx, &writer.RefineInput{
				APIKey:      apiKey,
				Content:     item.Content,
				Instruction: instruction,
				FormatID:    item.FormatID,
				StyleID:     item.StyleID,
				ToneID:      item.ToneID,
			})
			if err != nil {
				logger.Error(ictx, "refinement failed", err)
				c.setError(err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			c.outputs.update(formatID, false, mapItem(item.ID, func(it Item) Item {
				if !it.Pinned {
					it.Content = text
				}
				return it
			}))
			c.notify()
		}
	}
	return firstErr
}

// TogglePin 切换置顶
func (c *Controller) TogglePin(itemID string) error {
	item, ok := c.outputs.find(itemID)
	if !ok {
		return ErrItemNotFound
	}
	c.outputs.update(item.FormatID, false, mapItem(itemID, func(it Item) Item {
		it.Pinned = !it.Pinned
		return it
	}))
	c.notify()
	return nil
}

// Delete 删除条目；格式下最后一条被删除时该格式整体移除
func (c *Controller) Delete(itemID string) error {
	item, ok := c.outputs.find(itemID)
	if !ok {
		return ErrItemNotFound
	}
	c.outputs.update(item.FormatID, false, removeItem(itemID))
	c.notify()
	return nil
}

// ToggleExpand 展开/折叠某个格式的输出
func (c *Controller) ToggleExpand(formatID string) {
	c.mu.Lock()
	c.expanded[formatID] = !c.expanded[formatID]
	c.mu.Unlock()
	c.notify()
}

// Copy 把条目内容写入剪贴板
func (c *Controller) Copy(itemID string) error {
	if c.clipboard == nil {
		return ErrNoClipboard
	}
	item, ok := c.outputs.find(itemID)
	if !ok {
		return ErrItemNotFound
	}
	return c.clipboard.WriteAll(item.Content)
}

// Item 按 ID 查找条目
func (c *Controller) Item(itemID string) (Item, bool) {
	return c.outputs.find(itemID)
}

// Snapshot 返回当前状态副本，格式按目录顺序、条目按创建顺序排列
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	snap := Snapshot{
		Phase:    c.phase,
		Settings: c.settings.clone(),
		Idea:     c.idea,
		Error:    c.errMsg,
	}
	expanded := make(map[string]bool, len(c.expanded))
	for k, v := range c.expanded {
		expanded[k] = v
	}
	c.mu.Unlock()

	for _, formatID := range c.outputs.formats() {
		items := c.outputs.list(formatID)
		if len(items) == 0 {
			continue
		}
		snap.Outputs = append(snap.Outputs, FormatOutput{
			FormatID: formatID,
			Name:     catalog.ResolveFormat(formatID).Name,
			Expanded: expanded[formatID],
			Items:    items,
		})
	}
	return snap
}

func (c *Controller) newItem(formatID, content, styleID, toneID string) Item {
	return Item{
		ID:        uuid.NewString(),
		FormatID:  formatID,
		Content:   content,
		StyleID:   styleID,
		ToneID:    toneID,
		Seq:       c.seq.Add(1),
		CreatedAt: time.Now(),
	}
}

func (c *Controller) setError(err error) {
	c.mu.Lock()
	c.errMsg = apperrors.UserMessage(err)
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) finish() {
	c.mu.Lock()
	c.phase = PhaseIdle
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) notify() {
	if c.notifier != nil {
		c.notifier()
	}
}
