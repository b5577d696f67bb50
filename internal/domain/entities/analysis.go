package entities

// FinishReasonMaxTokens is reported by the generator when output was cut at the token limit.
const FinishReasonMaxTokens = "MAX_TOKENS"

// GenerationConfig holds the sampling knobs passed to the text generator.
type GenerationConfig struct {
	Model           string
	MaxOutputTokens int32
	Temperature     float32
}

// Generation is the first candidate returned by the text generator.
type Generation struct {
	Text         string
	FinishReason string
}

// Truncated reports whether the generator stopped at the token limit.
func (g *Generation) Truncated() bool {
	return g.FinishReason == FinishReasonMaxTokens
}

type Analysis struct {
	CoinName  string `json:"coin_name"`
	Text      string `json:"analysis"`
	Truncated bool   `json:"truncated"`
	Empty     bool   `json:"empty"`
}

func NewAnalysis(coinName, text string) *Analysis {
	return &Analysis{
		CoinName: coinName,
		Text:     text,
	}
}
