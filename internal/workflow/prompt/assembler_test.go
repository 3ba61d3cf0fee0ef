package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threadRule = `- Separate each tweet with "---" on its own line`

func TestBuildGenerationPrompt_ThreadSeparatorOnlyForThread(t *testing.T) {
	a := NewAssembler(nil)

	thread, err := a.BuildGenerationPrompt("compounding habits", "thread", "naval", "")
	require.NoError(t, err)
	assert.Contains(t, thread, threadRule)

	tweet, err := a.BuildGenerationPrompt("compounding habits", "tweet", "naval", "")
	require.NoError(t, err)
	assert.NotContains(t, tweet, threadRule)
	assert.NotContains(t, tweet, `"---" on its own`)
}

func TestBuildGenerationPrompt_Sections(t *testing.T) {
	a := NewAssembler(nil)

	p, err := a.BuildGenerationPrompt("Most meetings should be emails.", "shortEssay", "paulGraham", "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(p, "<task>\nTransform the following idea into Short Essay format, written in the style of Paul Graham.\n</task>"))
	assert.Contains(t, p, "<idea>\nMost meetings should be emails.\n</idea>")
	assert.Contains(t, p, "STYLE: Paul Graham")
	assert.Contains(t, p, "KEY TRAITS:\n- Exploratory essay style - thinks through ideas on the page\n- Clear, conversational prose\n")
	assert.Contains(t, p, "- Self-aware about the limits of his own knowledge\n\nEXAMPLES OF THIS STYLE:\nExample 1 (essay):\nThe most dangerous thing")
	assert.Contains(t, p, "haven't done the work.\n</style_guide>")
	assert.Contains(t, p, "\n\nExample 2 (insight):\n")
	assert.Contains(t, p, "FORMAT: Short Essay\nFocused piece, 300-500 words\n\nINSTRUCTIONS:\nCreate a short essay (300-500 words).")
	assert.NotContains(t, p, "<tone_optimization>")
	assert.True(t, strings.HasSuffix(p, "no explanations or meta-commentary\n</output_instructions>"))
}

func TestBuildGenerationPrompt_ToneBlockBetweenStyleAndFormat(t *testing.T) {
	a := NewAssembler(nil)

	p, err := a.BuildGenerationPrompt("idea", "tweet", "chamath", "viral")
	require.NoError(t, err)

	assert.Contains(t, p, "written in the style of Chamath, optimized for Viral.")
	assert.Contains(t, p, "</style_guide>\n\n<tone_optimization>\nTONE: Viral\n\nWhile maintaining the core voice and style, optimize for virality:")
	assert.Contains(t, p, "</tone_optimization>\n\n<format_requirements>")
	assert.Contains(t, p, "- Layer in the Viral tone qualities while maintaining the core Chamath voice")

	styleEnd := strings.Index(p, "</style_guide>")
	tone := strings.Index(p, "<tone_optimization>")
	format := strings.Index(p, "<format_requirements>")
	assert.True(t, styleEnd < tone && tone < format)
}

func TestBuildGenerationPrompt_UnknownIDsFallBack(t *testing.T) {
	a := NewAssembler(nil)

	p, err := a.BuildGenerationPrompt("idea", "haiku", "shakespeare", "whimsical")
	require.NoError(t, err)

	assert.Contains(t, p, "into Tweet format, written in the style of Naval.")
	assert.Contains(t, p, "FORMAT: Tweet")
	assert.NotContains(t, p, "<tone_optimization>")
	assert.NotContains(t, p, "optimized for")
}

func TestBuildGenerationPrompt_Deterministic(t *testing.T) {
	a := NewAssembler(nil)
	first, err := a.BuildGenerationPrompt("x", "longEssay", "seneca", "roast")
	require.NoError(t, err)
	second, err := NewAssembler(NewRegistry()).BuildGenerationPrompt("x", "longEssay", "seneca", "roast")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildRefinementPrompt(t *testing.T) {
	a := NewAssembler(nil)

	p, err := a.BuildRefinementPrompt("tweet one\n---\ntweet two", "make it shorter", "thread", "seneca", "motivational")
	require.NoError(t, err)

	assert.Contains(t, p, "Refine the following Thread content based on the user's instruction.\nMaintain the Seneca writing style and Motivational tone throughout.")
	assert.Contains(t, p, "<current_content>\ntweet one\n---\ntweet two\n</current_content>")
	assert.Contains(t, p, "<user_instruction>\nmake it shorter\n</user_instruction>")
	assert.Contains(t, p, "- Maintain the Motivational tone optimization")
	assert.Contains(t, p, "- Ensure the Thread format constraints are still met")
	assert.Contains(t, p, `- Keep tweets separated with "---" on their own lines`)

	plain, err := a.BuildRefinementPrompt("body", "punchier", "tweet", "naval", "")
	require.NoError(t, err)
	assert.Contains(t, plain, "Maintain the Naval writing style throughout.")
	assert.NotContains(t, plain, "tone optimization")
	assert.NotContains(t, plain, "Keep tweets separated")
}

func TestBuildResearchPrompt(t *testing.T) {
	a := NewAssembler(nil)

	p, err := a.BuildResearchPrompt("remote work productivity")
	require.NoError(t, err)
	assert.Contains(t, p, "<topic>\nremote work productivity\n</topic>")
	assert.Contains(t, p, "3-5 key findings")
	assert.Contains(t, p, "3. Expert opinions or contrarian viewpoints")
}

func TestWrapResearchContext(t *testing.T) {
	a := NewAssembler(nil)

	same, err := a.WrapResearchContext("", "<task>x</task>")
	require.NoError(t, err)
	assert.Equal(t, "<task>x</task>", same)

	wrapped, err := a.WrapResearchContext("finding one", "<task>x</task>")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(wrapped, "<research_context>\nThe following research was gathered to inform this content:\n\nfinding one\n"))
	assert.True(t, strings.HasSuffix(wrapped, "</research_context>\n\n<task>x</task>"))
}

func TestSystemPrompts(t *testing.T) {
	assert.True(t, strings.HasPrefix(SystemPrompt(), "You are a professional writer and content strategist."))
	assert.Contains(t, SystemPrompt(), "<writing_principles>")
	assert.Contains(t, SystemPrompt(), `Ask yourself: "Would I bookmark this if someone else wrote it?"`)
	assert.True(t, strings.HasSuffix(SystemPrompt(), "</writing_principles>"))

	assert.Equal(t, "You are a research assistant. Gather relevant information to support content creation.", ResearchSystemPrompt())
	assert.NotContains(t, ResearchSystemPrompt(), "writing_principles")
}

func TestRegistry_UnknownPrompt(t *testing.T) {
	_, err := NewRegistry().Template(PromptID("nope"))
	assert.Error(t, err)

	var nilReg *Registry
	_, err = nilReg.Template(PromptGeneration)
	assert.Error(t, err)
}
