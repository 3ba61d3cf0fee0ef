package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFormat_Known(t *testing.T) {
	f := ResolveFormat(FormatThread)
	assert.Equal(t, "Thread", f.Name)
	assert.Equal(t, 5, f.Constraints.MinTweets)
	assert.Equal(t, 12, f.Constraints.MaxTweets)
	assert.False(t, f.RequiresResearch)
}

func TestResolveFormat_UnknownFallsBackToTweet(t *testing.T) {
	for _, id := range []string{"", "newsletter", "TWEET", "longessay"} {
		f := ResolveFormat(id)
		assert.Equal(t, FormatTweet, f.ID, "id %q", id)
		assert.Equal(t, 280, f.Constraints.MaxLength)
	}
}

func TestResolveFormat_ResearchFlags(t *testing.T) {
	research := map[string]bool{}
	for _, id := range FormatIDs() {
		research[id] = ResolveFormat(id).RequiresResearch
	}
	assert.Equal(t, map[string]bool{
		FormatTweet:      false,
		FormatThread:     false,
		FormatSubstack:   true,
		FormatShortEssay: false,
		FormatLongEssay:  true,
	}, research)
}

func TestResolveStyle_UnknownFallsBackToNaval(t *testing.T) {
	s := ResolveStyle("hemingway")
	assert.Equal(t, StyleNaval, s.ID)
	assert.Len(t, s.Traits, 8)
	assert.Len(t, s.Examples, 3)
}

func TestResolveStyle_ReturnsCopy(t *testing.T) {
	s := ResolveStyle(StyleSeneca)
	s.Traits[0] = "mutated"
	s.Examples[0].Content = "mutated"

	again := ResolveStyle(StyleSeneca)
	assert.Equal(t, "Stoic philosophy applied to daily life", again.Traits[0])
	assert.NotEqual(t, "mutated", again.Examples[0].Content)
}

func TestResolveTone(t *testing.T) {
	assert.Nil(t, ResolveTone(""))
	assert.Nil(t, ResolveTone("sarcastic"))

	tone := ResolveTone(ToneContrarian)
	require.NotNil(t, tone)
	assert.Equal(t, "Contrarian", tone.Name)
}

func TestLists_FollowCatalogOrder(t *testing.T) {
	ids := func(in []Summary) []string {
		out := make([]string, 0, len(in))
		for _, s := range in {
			out = append(out, s.ID)
		}
		return out
	}

	assert.Equal(t, []string{"tweet", "thread", "substack", "shortEssay", "longEssay"}, ids(FormatList()))
	assert.Equal(t, []string{"naval", "chamath", "paulGraham", "seneca"}, ids(StyleList()))
	assert.Equal(t, []string{"viral", "roast", "thoughtPiece", "motivational", "contrarian"}, ids(ToneList()))
}

func TestFormatIndex(t *testing.T) {
	assert.Equal(t, 0, FormatIndex(FormatTweet))
	assert.Equal(t, 4, FormatIndex(FormatLongEssay))
	assert.Equal(t, 5, FormatIndex("unknown"))
}

func TestLookup(t *testing.T) {
	_, ok := LookupFormat("nope")
	assert.False(t, ok)
	_, ok = LookupStyle("nope")
	assert.False(t, ok)

	f, ok := LookupFormat(FormatSubstack)
	assert.True(t, ok)
	assert.Equal(t, "Substack", f.Name)
}
