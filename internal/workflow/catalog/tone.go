package catalog

// 语气标识
const (
	ToneViral        = "viral"
	ToneRoast        = "roast"
	ToneThoughtPiece = "thoughtPiece"
	ToneMotivational = "motivational"
	ToneContrarian   = "contrarian"
)

// Tone 叠加在风格之上的可选语气
type Tone struct {
	ID           string
	Name         string
	Description  string
	Instructions string
}

var toneOrder = []string{ToneViral, ToneRoast, ToneThoughtPiece, ToneMotivational, ToneContrarian}

var tones = map[string]*Tone{
	ToneViral: {
		ID:          ToneViral,
		Name:        "Viral",
		Description: "Optimized for shareability and engagement",
		Instructions: `While maintaining the core voice and style, optimize for virality:
- Open with a pattern interrupt or surprising hook that stops the scroll
- Create curiosity gaps that demand resolution
- Make lines quotable and screenshot-worthy
- Build "I need to share this" moments throughout
- End with something that sparks discussion or debate
- Use strategic controversy - challenge assumptions without being offensive`,
	},
	ToneRoast: {
		ID:          ToneRoast,
		Name:        "Roast",
		Description: "Witty, playful humor and clever criticism",
		Instructions: `While maintaining the core voice and style, add wit and humor:
- Layer in playful criticism and clever observations
- Use unexpected comparisons and surprising analogies
- Add self-aware humor that doesn't undermine the message
- Include punchy one-liners that land with impact
- Keep it sharp but not mean-spirited
- Let the humor enhance the insight, not replace it`,
	},
	ToneThoughtPiece: {
		ID:          ToneThoughtPiece,
		Name:        "Thought Piece",
		Description: "Deep, contemplative, philosophical depth",
		Instructions: `While maintaining the core voice and style, add philosophical depth:
- Explore the deeper implications and second-order effects
- Connect to timeless themes (mortality, meaning, human nature)
- Ask questions that linger in the reader's mind
- Add layers that reward re-reading
- Balance abstraction with concrete grounding
- Create moments of genuine insight that shift perspective`,
	},
	ToneMotivational: {
		ID:          ToneMotivational,
		Name:        "Motivational",
		Description: "Inspiring, actionable, and energizing",
		Instructions: `While maintaining the core voice and style, add motivational energy:
- Build belief that change is possible
- Include specific, actionable next steps
- Use language that energizes and activates
- Acknowledge the difficulty while emphasizing capability
- Create momentum through the piece
- End with a clear call to action that feels achievable`,
	},
	ToneContrarian: {
		ID:          ToneContrarian,
		Name:        "Contrarian",
		Description: "Challenges conventional wisdom",
		Instructions: `While maintaining the core voice and style, take contrarian angles:
- Identify and challenge the accepted narrative
- Present evidence that contradicts popular belief
- Explore what "everyone knows" that might be wrong
- Steel-man the opposing view before dismantling it
- Offer a fresh perspective that reframes the topic
- Be confidently contrarian without being contrarian for its own sake`,
	},
}

// ResolveTone 按标识查找语气，空或未知标识返回 nil
func ResolveTone(id string) *Tone {
	t, ok := tones[id]
	if !ok {
		return nil
	}
	c := *t
	return &c
}

// ToneList 列出全部语气
func ToneList() []Summary {
	out := make([]Summary, 0, len(toneOrder))
	for _, id := range toneOrder {
		t := tones[id]
		out = append(out, Summary{ID: t.ID, Name: t.Name, Description: t.Description})
	}
	return out
}
