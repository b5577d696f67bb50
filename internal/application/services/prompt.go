package services

import (
	"strings"
	"text/template"
)

var analysisPrompt = template.Must(template.New("analysis").Parse(`
You are a neutral crypto data analyst. Summarize publicly available data for "{{.CoinName}}" without providing financial advice or price predictions. Structure the response in three markdown sections, keeping each section concise (max 100 words):

1. **Technical Data Summary:**
   - Summarize current technical indicators (e.g., RSI, MACD, moving averages) using specific values if available.
   - Example: "RSI (14-day) at 55, neutral. Price above 50-day MA, indicating short-term bullish trend."

2. **Fundamental Summary:**
   - Summarize the project's purpose in 1-2 sentences based on its whitepaper or official website.
   - Include one recent news item or development update (e.g., GitHub activity, partnerships).

3. **Aetherium Index Score:**
   - Calculate a score (0-100) based only on the above data (technical indicators, project purpose, recent developments).
   - Format exactly as: "**Aetherium Index Score: [score]/100**".

If insufficient data is available, return only: "No analysis available for {{.CoinName}}."
`))

// BuildAnalysisPrompt renders the fixed analysis prompt for coinName
func BuildAnalysisPrompt(coinName string) string {
	var sb strings.Builder
	// el template es constante y los datos son un string; Execute no puede fallar
	_ = analysisPrompt.Execute(&sb, struct{ CoinName string }{coinName})
	return sb.String()
}
