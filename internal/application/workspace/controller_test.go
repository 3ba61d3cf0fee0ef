package workspace

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

type refinerMock struct {
	mu          sync.Mutex
	inputs      []writer.RefineInput
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	RefineFunc  func(ctx context.Context, in *writer.RefineInput) (string, error)
}

func (m *refinerMock) Refine(ctx context.Context, in *writer.RefineInput) (string, error) {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		cur := m.maxInFlight.Load()
		if n <= cur || m.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}

	m.mu.Lock()
	m.inputs = append(m.inputs, *in)
	m.mu.Unlock()
	return m.RefineFunc(ctx, in)
}

type clipboardMock struct {
	text string
}

func (m *clipboardMock) WriteAll(text string) error {
	m.text = text
	return nil
}

func echoGenerator() *generatorMock {
	return &generatorMock{GenerateFunc: func(ctx context.Context, in *writer.GenerateInput) (string, error) {
		return in.FormatID + ": " + in.Idea, nil
	}}
}

func newTestController(t *testing.T, gen Generator, ref Refiner, opts ...Option) (*Controller, *memory.PreferenceStore) {
	t.Helper()
	prefs := memory.NewPreferenceStore()
	ctx := context.Background()
	require.NoError(t, prefs.Set(ctx, KeyAPIKey, "sk-test"))
	c, err := NewController(ctx, prefs, gen, ref, opts...)
	require.NoError(t, err)
	return c, prefs
}

func itemsOf(snap Snapshot, formatID string) []Item {
	for _, o := range snap.Outputs {
		if o.FormatID == formatID {
			return o.Items
		}
	}
	return nil
}

func TestNewController_Defaults(t *testing.T) {
	c, err := NewController(context.Background(), memory.NewPreferenceStore(), echoGenerator(), nil)
	require.NoError(t, err)

	s := c.Settings()
	assert.Equal(t, []string{catalog.FormatTweet}, s.Formats)
	assert.Equal(t, catalog.StyleNaval, s.StyleID)
	assert.Empty(t, s.ToneID)
	assert.Empty(t, s.APIKey)
	assert.Equal(t, PhaseIdle, c.Phase())
}

func TestNewController_MalformedFormatsFallBack(t *testing.T) {
	ctx := context.Background()
	prefs := memory.NewPreferenceStore()
	require.NoError(t, prefs.Set(ctx, KeyFormats, "{not json"))
	require.NoError(t, prefs.Set(ctx, KeyStyle, catalog.StyleSeneca))

	c, err := NewController(ctx, prefs, echoGenerator(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{catalog.FormatTweet}, c.Settings().Formats)
	assert.Equal(t, catalog.StyleSeneca, c.Settings().StyleID)
}

func TestController_SettingsPersist(t *testing.T) {
	ctx := context.Background()
	c, prefs := newTestController(t, echoGenerator(), nil)

	require.NoError(t, c.ToggleFormat(ctx, catalog.FormatThread))
	require.NoError(t, c.SetStyle(ctx, catalog.StyleChamath))
	require.NoError(t, c.SetTone(ctx, catalog.ToneRoast))
	require.NoError(t, c.SetAPIKey(ctx, "  sk-new  "))

	v, _, _ := prefs.Get(ctx, KeyFormats)
	assert.JSONEq(t, `["tweet","thread"]`, v)
	v, _, _ = prefs.Get(ctx, KeyStyle)
	assert.Equal(t, catalog.StyleChamath, v)
	v, _, _ = prefs.Get(ctx, KeyTone)
	assert.Equal(t, catalog.ToneRoast, v)
	v, _, _ = prefs.Get(ctx, KeyAPIKey)
	assert.Equal(t, "sk-new", v)

	reloaded, err := NewController(ctx, prefs, echoGenerator(), nil)
	require.NoError(t, err)
	assert.Equal(t, c.Settings(), reloaded.Settings())
}

func TestController_SetToneTwiceClears(t *testing.T) {
	ctx := context.Background()
	c, prefs := newTestController(t, echoGenerator(), nil)

	require.NoError(t, c.SetTone(ctx, catalog.ToneViral))
	assert.Equal(t, catalog.ToneViral, c.Settings().ToneID)

	require.NoError(t, c.SetTone(ctx, catalog.ToneViral))
	assert.Empty(t, c.Settings().ToneID)
	v, ok, _ := prefs.Get(ctx, KeyTone)
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestController_ToggleLastFormatIsNoop(t *testing.T) {
	ctx := context.Background()
	c, prefs := newTestController(t, echoGenerator(), nil)

	require.NoError(t, c.ToggleFormat(ctx, catalog.FormatTweet))
	assert.Equal(t, []string{catalog.FormatTweet}, c.Settings().Formats)
	_, ok, _ := prefs.Get(ctx, KeyFormats)
	assert.False(t, ok)

	require.NoError(t, c.ToggleFormat(ctx, catalog.FormatSubstack))
	require.NoError(t, c.ToggleFormat(ctx, catalog.FormatTweet))
	assert.Equal(t, []string{catalog.FormatSubstack}, c.Settings().Formats)
}

func TestController_GenerateValidation(t *testing.T) {
	ctx := context.Background()
	c, err := NewController(ctx, memory.NewPreferenceStore(), echoGenerator(), nil)
	require.NoError(t, err)

	c.SetIdea("leverage")
	assert.False(t, c.CanGenerate())
	assert.ErrorIs(t, c.Generate(ctx), ErrMissingAPIKey)

	require.NoError(t, c.SetAPIKey(ctx, "sk-test"))
	c.SetIdea("   ")
	assert.False(t, c.CanGenerate())
	assert.ErrorIs(t, c.Generate(ctx), ErrBlankIdea)

	c.SetIdea("leverage")
	assert.True(t, c.CanGenerate())
	assert.Empty(t, c.Error())
}

func TestController_GenerateAllFormats(t *testing.T) {
	ctx := context.Background()
	var mu sync.Mutex
	var inputs []writer.GenerateInput
	gen := &generatorMock{GenerateFunc: func(ctx context.Context, in *writer.GenerateInput) (string, error) {
		mu.Lock()
		inputs = append(inputs, *in)
		mu.Unlock()
		return "out-" + in.FormatID, nil
	}}
	c, _ := newTestController(t, gen, nil)
	require.NoError(t, c.ToggleFormat(ctx, catalog.FormatLongEssay))
	require.NoError(t, c.ToggleFormat(ctx, catalog.FormatThread))
	require.NoError(t, c.SetTone(ctx, catalog.ToneContrarian))
	c.SetIdea("  compounding  ")

	require.NoError(t, c.Generate(ctx))

	require.Len(t, inputs, 3)
	for _, in := range inputs {
		assert.Equal(t, "compounding", in.Idea)
		assert.Equal(t, "sk-test", in.APIKey)
		assert.Equal(t, catalog.StyleNaval, in.StyleID)
		assert.Equal(t, catalog.ToneContrarian, in.ToneID)
	}

	snap := c.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	require.Len(t, snap.Outputs, 3)
	assert.Equal(t, catalog.FormatTweet, snap.Outputs[0].FormatID)
	assert.Equal(t, catalog.FormatThread, snap.Outputs[1].FormatID)
	assert.Equal(t, catalog.FormatLongEssay, snap.Outputs[2].FormatID)
	for _, o := range snap.Outputs {
		assert.True(t, o.Expanded)
		require.Len(t, o.Items, 1)
		item := o.Items[0]
		assert.Equal(t, "out-"+o.FormatID, item.Content)
		assert.Equal(t, catalog.ToneContrarian, item.ToneID)
		assert.False(t, item.Pinned)
		assert.NotEmpty(t, item.ID)
	}
}

func TestController_GenerateOutOfOrderCompletion(t *testing.T) {
	ctx := context.Background()
	threadDone := make(chan struct{})
	tweetRelease := make(chan struct{})
	gen := &generatorMock{GenerateFunc: func(ctx context.Context, in *writer.GenerateInput) (string, error) {
		if in.FormatID == catalog.FormatTweet {
			<-tweetRelease
			return "tweet body", nil
		}
		return "thread body", nil
	}}

	var once sync.Once
	var c *Controller
	notifier := func() {
		if c == nil {
			return
		}
		if len(itemsOf(c.Snapshot(), catalog.FormatThread)) == 1 {
			once.Do(func() { close(threadDone) })
		}
	}
	c, _ = newTestController(t, gen, nil, WithNotifier(notifier))
	require.NoError(t, c.ToggleFormat(ctx, catalog.FormatThread))
	c.SetIdea("patience")

	errCh := make(chan error, 1)
	go func() { errCh <- c.Generate(ctx) }()

	<-threadDone
	snap := c.Snapshot()
	assert.Equal(t, PhaseGenerating, snap.Phase)
	assert.Empty(t, itemsOf(snap, catalog.FormatTweet))
	assert.Len(t, itemsOf(snap, catalog.FormatThread), 1)
	assert.ErrorIs(t, c.Generate(ctx), ErrBusy)

	close(tweetRelease)
	require.NoError(t, <-errCh)

	snap = c.Snapshot()
	require.Len(t, itemsOf(snap, catalog.FormatTweet), 1)
	assert.Equal(t, "tweet body", itemsOf(snap, catalog.FormatTweet)[0].Content)
	assert.Equal(t, "thread body", itemsOf(snap, catalog.FormatThread)[0].Content)
	assert.Equal(t, PhaseIdle, snap.Phase)
}

func TestController_GeneratePartialFailure(t *testing.T) {
	ctx := context.Background()
	gen := &generatorMock{GenerateFunc: func(ctx context.Context, in *writer.GenerateInput) (string, error) {
		if in.FormatID == catalog.FormatThread {
			return "", errors.New("Network error: connection refused")
		}
		return "ok", nil
	}}
	c, _ := newTestController(t, gen, nil)
	require.NoError(t, c.ToggleFormat(ctx, catalog.FormatThread))
	c.SetIdea("focus")

	err := c.Generate(ctx)
	require.Error(t, err)
	assert.Equal(t, "Network error: connection refused", c.Error())

	snap := c.Snapshot()
	assert.Len(t, itemsOf(snap, catalog.FormatTweet), 1)
	assert.Empty(t, itemsOf(snap, catalog.FormatThread))
	assert.Equal(t, PhaseIdle, snap.Phase)
}

func TestController_PinnedSurvivesGenerate(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, echoGenerator(), nil)
	c.SetIdea("first")
	require.NoError(t, c.Generate(ctx))
	first := itemsOf(c.Snapshot(), catalog.FormatTweet)[0]
	require.NoError(t, c.TogglePin(first.ID))

	c.SetIdea("second")
	require.NoError(t, c.Generate(ctx))
	c.SetIdea("third")
	require.NoError(t, c.Generate(ctx))

	items := itemsOf(c.Snapshot(), catalog.FormatTweet)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.True(t, items[0].Pinned)
	assert.Equal(t, "tweet: third", items[1].Content)
}

func TestController_PinnedKeptWhileGenerating(t *testing.T) {
	ctx := context.Background()

	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	var blocking atomic.Bool
	gen := &generatorMock{GenerateFunc: func(ctx context.Context, in *writer.GenerateInput) (string, error) {
		if blocking.Load() {
			entered <- struct{}{}
			<-release
		}
		return in.FormatID + ": " + in.Idea, nil
	}}
	ref := &refinerMock{RefineFunc: func(ctx context.Context, in *writer.RefineInput) (string, error) {
		return in.Content + " (refined)", nil
	}}
	c, _ := newTestController(t, gen, ref)

	c.SetIdea("first")
	require.NoError(t, c.Generate(ctx))
	pinned := itemsOf(c.Snapshot(), catalog.FormatTweet)[0]
	require.NoError(t, c.TogglePin(pinned.ID))
	c.SetIdea("second")
	require.NoError(t, c.Generate(ctx))
	require.Len(t, itemsOf(c.Snapshot(), catalog.FormatTweet), 2)

	blocking.Store(true)
	c.SetIdea("third")
	done := make(chan error, 1)
	go func() { done <- c.Generate(ctx) }()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("generator was not called")
	}
	snap := c.Snapshot()
	assert.Equal(t, PhaseGenerating, snap.Phase)
	items := itemsOf(snap, catalog.FormatTweet)
	require.Len(t, items, 1)
	assert.Equal(t, pinned.ID, items[0].ID)
	assert.True(t, items[0].Pinned)

	close(release)
	require.NoError(t, <-done)
	blocking.Store(false)

	items = itemsOf(c.Snapshot(), catalog.FormatTweet)
	require.Len(t, items, 2)
	assert.Equal(t, "tweet: third", items[1].Content)

	require.NoError(t, c.Refine(ctx, "shorter"))
	require.Len(t, ref.inputs, 1)
	assert.Equal(t, "tweet: third", ref.inputs[0].Content)

	items = itemsOf(c.Snapshot(), catalog.FormatTweet)
	require.Len(t, items, 2)
	assert.Equal(t, pinned.ID, items[0].ID)
	assert.Equal(t, "tweet: first", items[0].Content)
	assert.Equal(t, "tweet: third (refined)", items[1].Content)
}

func TestController_RefineIsSequential(t *testing.T) {
	ctx := context.Background()
	ref := &refinerMock{RefineFunc: func(ctx context.Context, in *writer.RefineInput) (string, error) {
		time.Sleep(5 * time.Millisecond)
		return "refined " + in.FormatID, nil
	}}
	c, _ := newTestController(t, echoGenerator(), ref)
	require.NoError(t, c.ToggleFormat(ctx, catalog.FormatThread))
	require.NoError(t, c.ToggleFormat(ctx, catalog.FormatSubstack))
	require.NoError(t, c.ToggleFormat(ctx, catalog.FormatShortEssay))
	c.SetIdea("sleep")
	require.NoError(t, c.Generate(ctx))

	require.NoError(t, c.Refine(ctx, "warmer"))

	assert.Len(t, ref.inputs, 4)
	assert.Equal(t, int32(1), ref.maxInFlight.Load())
	for _, id := range []string{catalog.FormatTweet, catalog.FormatThread, catalog.FormatSubstack, catalog.FormatShortEssay} {
		assert.Equal(t, "refined "+id, itemsOf(c.Snapshot(), id)[0].Content)
	}
}

func TestController_GenerateClearsUnselectedFormats(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, echoGenerator(), nil)
	require.NoError(t, c.ToggleFormat(ctx, catalog.FormatSubstack))
	c.SetIdea("one")
	require.NoError(t, c.Generate(ctx))
	require.Len(t, c.Snapshot().Outputs, 2)

	require.NoError(t, c.ToggleFormat(ctx, catalog.FormatSubstack))
	require.NoError(t, c.Generate(ctx))

	snap := c.Snapshot()
	require.Len(t, snap.Outputs, 1)
	assert.Equal(t, catalog.FormatTweet, snap.Outputs[0].FormatID)
}

func TestController_Refine(t *testing.T) {
	ctx := context.Background()
	ref := &refinerMock{RefineFunc: func(ctx context.Context, in *writer.RefineInput) (string, error) {
		return in.Content + " (refined)", nil
	}}
	c, _ := newTestController(t, echoGenerator(), ref)

	assert.ErrorIs(t, c.Refine(ctx, "shorter"), ErrNoOutputs)

	require.NoError(t, c.ToggleFormat(ctx, catalog.FormatThread))
	require.NoError(t, c.SetTone(ctx, catalog.ToneViral))
	c.SetIdea("habits")
	require.NoError(t, c.Generate(ctx))

	// 生成后修改的偏好不影响已有条目的润色
	require.NoError(t, c.SetStyle(ctx, catalog.StyleSeneca))

	pinned := itemsOf(c.Snapshot(), catalog.FormatTweet)[0]
	require.NoError(t, c.TogglePin(pinned.ID))

	assert.ErrorIs(t, c.Refine(ctx, "   "), ErrBlankInstruction)
	assert.False(t, c.CanRefine(""))
	assert.True(t, c.CanRefine("shorter"))
	require.NoError(t, c.Refine(ctx, " shorter "))

	require.Len(t, ref.inputs, 1)
	in := ref.inputs[0]
	assert.Equal(t, "shorter", in.Instruction)
	assert.Equal(t, catalog.FormatThread, in.FormatID)
	assert.Equal(t, catalog.StyleNaval, in.StyleID)
	assert.Equal(t, catalog.ToneViral, in.ToneID)
	assert.Equal(t, "sk-test", in.APIKey)

	snap := c.Snapshot()
	assert.Equal(t, "tweet: habits", itemsOf(snap, catalog.FormatTweet)[0].Content)
	assert.Equal(t, "thread: habits (refined)", itemsOf(snap, catalog.FormatThread)[0].Content)
}

func TestController_RefineFailureContinues(t *testing.T) {
	ctx := context.Background()
	ref := &refinerMock{RefineFunc: func(ctx context.Context, in *writer.RefineInput) (string, error) {
		if in.FormatID == catalog.FormatTweet {
			return "", errors.New("API error: 529")
		}
		return "refined", nil
	}}
	c, _ := newTestController(t, echoGenerator(), ref)
	require.NoError(t, c.ToggleFormat(ctx, catalog.FormatSubstack))
	c.SetIdea("craft")
	require.NoError(t, c.Generate(ctx))

	err := c.Refine(ctx, "punchier")
	require.Error(t, err)
	assert.Equal(t, "API error: 529", c.Error())
	assert.Len(t, ref.inputs, 2)
	assert.Equal(t, catalog.FormatTweet, ref.inputs[0].FormatID)
	assert.Equal(t, catalog.FormatSubstack, ref.inputs[1].FormatID)

	snap := c.Snapshot()
	assert.Equal(t, "tweet: craft", itemsOf(snap, catalog.FormatTweet)[0].Content)
	assert.Equal(t, "refined", itemsOf(snap, catalog.FormatSubstack)[0].Content)
	assert.Equal(t, PhaseIdle, snap.Phase)
}

func TestController_DeleteLastItemDropsFormat(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, echoGenerator(), nil)
	require.NoError(t, c.ToggleFormat(ctx, catalog.FormatThread))
	c.SetIdea("silence")
	require.NoError(t, c.Generate(ctx))

	tweet := itemsOf(c.Snapshot(), catalog.FormatTweet)[0]
	require.NoError(t, c.Delete(tweet.ID))

	snap := c.Snapshot()
	require.Len(t, snap.Outputs, 1)
	assert.Equal(t, catalog.FormatThread, snap.Outputs[0].FormatID)
	assert.ErrorIs(t, c.Delete(tweet.ID), ErrItemNotFound)
	assert.ErrorIs(t, c.TogglePin(tweet.ID), ErrItemNotFound)
}

func TestController_ToggleExpandAndCopy(t *testing.T) {
	ctx := context.Background()
	cb := &clipboardMock{}
	c, _ := newTestController(t, echoGenerator(), nil, WithClipboard(cb))
	c.SetIdea("wealth")
	require.NoError(t, c.Generate(ctx))

	snap := c.Snapshot()
	require.True(t, snap.Outputs[0].Expanded)
	c.ToggleExpand(catalog.FormatTweet)
	assert.False(t, c.Snapshot().Outputs[0].Expanded)

	item := snap.Outputs[0].Items[0]
	require.NoError(t, c.Copy(item.ID))
	assert.Equal(t, "tweet: wealth", cb.text)
	assert.ErrorIs(t, c.Copy("missing"), ErrItemNotFound)
}

func TestController_CopyWithoutClipboard(t *testing.T) {
	c, _ := newTestController(t, echoGenerator(), nil)
	assert.ErrorIs(t, c.Copy("any"), ErrNoClipboard)
}

func TestItem_Segments(t *testing.T) {
	thread := Item{FormatID: catalog.FormatThread, Content: "one\n---\ntwo"}
	assert.Equal(t, []string{"one", "two"}, thread.Segments())

	tweet := Item{FormatID: catalog.FormatTweet, Content: "one\n---\ntwo"}
	assert.Equal(t, []string{"one\n---\ntwo"}, tweet.Segments())
}

func TestController_GenerateWithDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	var calls atomic.Int32
	gen := &generatorMock{GenerateFunc: func(ctx context.Context, in *writer.GenerateInput) (string, error) {
		calls.Add(1)
		return in.FormatID + "/" + in.StyleID + "/" + in.ToneID, nil
	}}
	c, prefs := newTestController(t, gen, nil)

	run := c.Settings()
	run.APIKey = "sk-override"
	run.Formats = []string{catalog.FormatThread, catalog.FormatTweet, catalog.FormatThread}
	run.StyleID = catalog.StyleSeneca
	run.ToneID = catalog.ToneRoast
	require.NoError(t, c.GenerateWith(ctx, "  stoic mornings ", run))

	assert.EqualValues(t, 2, calls.Load())
	snap := c.Snapshot()
	require.Len(t, itemsOf(snap, catalog.FormatThread), 1)
	assert.Equal(t, "thread/seneca/roast", itemsOf(snap, catalog.FormatThread)[0].Content)
	assert.Equal(t, catalog.StyleSeneca, itemsOf(snap, catalog.FormatTweet)[0].StyleID)
	assert.Equal(t, "  stoic mornings ", c.Idea())

	s := c.Settings()
	assert.Equal(t, []string{catalog.FormatTweet}, s.Formats)
	assert.Equal(t, catalog.StyleNaval, s.StyleID)
	assert.Equal(t, "sk-test", s.APIKey)
	_, ok, err := prefs.Get(ctx, KeyStyle)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestController_GenerateReportsFailuresPerFormat(t *testing.T) {
	ctx := context.Background()
	gen := &generatorMock{GenerateFunc: func(ctx context.Context, in *writer.GenerateInput) (string, error) {
		if in.FormatID == catalog.FormatTweet {
			return "", errors.New("API error: 529")
		}
		return "ok", nil
	}}
	c, _ := newTestController(t, gen, nil)

	run := c.Settings()
	run.Formats = []string{catalog.FormatSubstack, catalog.FormatTweet}
	err := c.GenerateWith(ctx, "idea", run)

	var failures FormatErrors
	require.ErrorAs(t, err, &failures)
	require.Len(t, failures, 1)
	assert.EqualError(t, failures[catalog.FormatTweet], "API error: 529")
	assert.Equal(t, "tweet: API error: 529", err.Error())
	assert.Len(t, itemsOf(c.Snapshot(), catalog.FormatSubstack), 1)
}
