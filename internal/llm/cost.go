package llm

// modelPricing holds per-model pricing in USD per 1M tokens.
type modelPricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// priceTable maps model identifiers to their pricing.
var priceTable = map[string]modelPricing{
	"gemini-2.0-flash":        {InputPerMillion: 0.10, OutputPerMillion: 0.40},
	"gemini-1.5-flash":        {InputPerMillion: 0.075, OutputPerMillion: 0.30},
	"gemini-1.5-pro":          {InputPerMillion: 1.25, OutputPerMillion: 5.00},
	"gpt-3.5-turbo":           {InputPerMillion: 0.50, OutputPerMillion: 1.50},
	"gpt-4o":                  {InputPerMillion: 2.50, OutputPerMillion: 10.00},
	"gpt-4o-mini":             {InputPerMillion: 0.15, OutputPerMillion: 0.60},
	"claude-3-5-haiku-latest": {InputPerMillion: 0.80, OutputPerMillion: 4.00},
	"claude-sonnet-4-5":       {InputPerMillion: 3.00, OutputPerMillion: 15.00},
}

// EstimateCost returns the estimated cost in USD for a completed request.
// Unknown models cost 0.
func EstimateCost(model string, inputTokens, outputTokens int) float64 {
	pricing, ok := priceTable[model]
	if !ok {
		return 0
	}
	return float64(inputTokens)/1_000_000.0*pricing.InputPerMillion +
		float64(outputTokens)/1_000_000.0*pricing.OutputPerMillion
}

// EstimateTokens approximates a token count at 4 bytes per token. Backends that
// omit usage data are accounted with this estimate.
func EstimateTokens(text string) int {
	n := len(text) / 4
	if n == 0 && len(text) > 0 {
		return 1
	}
	return n
}
