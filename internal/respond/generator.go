// Package respond turns retrieved pairings into natural-language answers
// grounded strictly in the supplied records.
package respond

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jayscottaf/pairscout/internal/llm"
	"github.com/jayscottaf/pairscout/internal/model"
)

// Generator produces the final answer text. Completion failures degrade to
// a deterministic template; the user never sees an error, only a
// lower-fidelity answer.
type Generator struct {
	provider llm.Provider
}

// NewGenerator creates a generator. A nil provider means every answer uses
// the deterministic template.
func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// maxTemplateRecords caps how many records the fallback template renders
const maxTemplateRecords = 3

// Generate produces prose grounded only in the given pairings. Every
// identifier and numeric claim must come from the record set; a response
// citing a pairing number outside it is discarded in favor of the
// deterministic template.
func (g *Generator) Generate(ctx context.Context, query string, pairings []model.RankedPairing, rationale string, history []model.ConversationTurn) string {
	if g.provider == nil {
		return g.Template(pairings)
	}

	messages := make([]model.ConversationTurn, 0, len(history)+1)
	if len(history) > 4 {
		history = history[len(history)-4:]
	}
	messages = append(messages, history...)
	messages = append(messages, model.ConversationTurn{Role: model.RoleUser, Content: query})

	text, err := g.provider.Complete(ctx, llm.CompletionRequest{
		System:      groundingPrompt(pairings, rationale),
		Messages:    messages,
		Temperature: 0.3,
		MaxTokens:   800,
	})
	if err != nil || strings.TrimSpace(text) == "" {
		return g.Template(pairings)
	}

	// CRITICAL: a cited identifier outside the supplied set breaks the
	// grounding guarantee; fall back rather than repeat it
	if leaked(text, pairings) {
		return g.Template(pairings)
	}

	return strings.TrimSpace(text)
}

// GenerateNoData explains an empty retrieval: the active filters and
// concrete relaxation suggestions. This path never calls the completion
// provider, since there is nothing to ground a narrative in.
func (g *Generator) GenerateNoData(query string, filters map[model.FilterKey]interface{}) string {
	var b strings.Builder
	b.WriteString("No pairings matched your search.")

	if len(filters) > 0 {
		b.WriteString(" Active criteria: ")
		b.WriteString(strings.Join(describeFilters(filters), "; "))
		b.WriteString(".")
	}

	suggestions := relaxationSuggestions(filters)
	if len(suggestions) > 0 {
		b.WriteString(" You could try: ")
		b.WriteString(strings.Join(suggestions, ", "))
		b.WriteString(".")
	}

	return b.String()
}

// Template renders the deterministic fallback: record count, up to three
// records, and a truncation note.
func (g *Generator) Template(pairings []model.RankedPairing) string {
	if len(pairings) == 0 {
		return "No pairings matched your search."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d pairing", len(pairings))
	if len(pairings) != 1 {
		b.WriteString("s")
	}
	b.WriteString(" matching your criteria:\n")

	shown := pairings
	if len(shown) > maxTemplateRecords {
		shown = shown[:maxTemplateRecords]
	}
	for _, p := range shown {
		fmt.Fprintf(&b, "%s – %s credit hours, %s%% hold probability\n",
			p.PairingNumber, trimFloat(p.CreditHours), trimFloat(p.HoldProbability))
	}

	if remaining := len(pairings) - len(shown); remaining > 0 {
		fmt.Fprintf(&b, "...and %d more.", remaining)
	}

	return strings.TrimRight(b.String(), "\n")
}

// groundingPrompt builds the instruction prompt with the strict allowlist
// of pairings the model may reference.
func groundingPrompt(pairings []model.RankedPairing, rationale string) string {
	var b strings.Builder
	b.WriteString(`You are a pairing analysis assistant for airline pilots. Answer the pilot's question using ONLY the pairing data below.

CRITICAL RULES:
1. Every pairing number and every numeric value you state MUST appear in the data below.
2. DO NOT invent, estimate, or extrapolate pairings, credit values, or probabilities.
3. If the data cannot answer part of the question, say so explicitly.
4. Keep the answer to a few sentences; mention at most the top few pairings.

`)

	if rationale != "" {
		fmt.Fprintf(&b, "Ordering: %s\n\n", rationale)
	}

	fmt.Fprintf(&b, "Pairing data (%d records):\n", len(pairings))
	for i, p := range pairings {
		if i >= 20 { // Bound prompt size
			fmt.Fprintf(&b, "... and %d more records\n", len(pairings)-20)
			break
		}
		fmt.Fprintf(&b, "- %s: %s credit hours, %s block hours, %d days, %s%% hold probability",
			p.PairingNumber, trimFloat(p.CreditHours), trimFloat(p.BlockHours), p.PairingDays, trimFloat(p.HoldProbability))
		if longest := p.LongestLayover(); longest.City != "" {
			fmt.Fprintf(&b, ", longest layover %s (%sh)", longest.City, trimFloat(longest.DurationHours))
		}
		if p.Score != 0 {
			fmt.Fprintf(&b, ", score %.1f", p.Score)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// pairingNumberRe matches identifier-shaped tokens in generated prose
var pairingNumberRe = regexp.MustCompile(`\b[A-Z]{1,2}\d{3,5}\b`)

// decimalRe matches numbers with a fractional part. Bare integers are not
// checked; counts, day lengths, and list positions are legitimate prose.
var decimalRe = regexp.MustCompile(`\b\d+\.\d+\b`)

// leaked reports whether the text cites a pairing number or a decimal
// value not present in the supplied record set.
func leaked(text string, pairings []model.RankedPairing) bool {
	allowedIDs := make(map[string]bool, len(pairings))
	allowedNums := map[string]bool{}
	for _, p := range pairings {
		allowedIDs[p.PairingNumber] = true
		for _, v := range []float64{p.CreditHours, p.BlockHours, p.HoldProbability, p.Score} {
			allowedNums[trimFloat(v)] = true
			allowedNums[fmt.Sprintf("%.1f", v)] = true
			allowedNums[fmt.Sprintf("%.2f", v)] = true
		}
		for _, l := range p.Layovers {
			allowedNums[trimFloat(l.DurationHours)] = true
			allowedNums[fmt.Sprintf("%.1f", l.DurationHours)] = true
		}
	}

	for _, token := range pairingNumberRe.FindAllString(text, -1) {
		if !allowedIDs[token] {
			return true
		}
	}
	for _, token := range decimalRe.FindAllString(text, -1) {
		if !allowedNums[token] {
			return true
		}
	}
	return false
}

// describeFilters renders active filters in plain language, in stable order
func describeFilters(filters map[model.FilterKey]interface{}) []string {
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		val := filters[model.FilterKey(k)]
		switch model.FilterKey(k) {
		case model.FilterPairingNumber:
			out = append(out, fmt.Sprintf("pairing number %v", val))
		case model.FilterCreditMin:
			out = append(out, fmt.Sprintf("at least %v credit hours", val))
		case model.FilterCreditMax:
			out = append(out, fmt.Sprintf("at most %v credit hours", val))
		case model.FilterBlockMin:
			out = append(out, fmt.Sprintf("at least %v block hours", val))
		case model.FilterBlockMax:
			out = append(out, fmt.Sprintf("at most %v block hours", val))
		case model.FilterPairingDays:
			out = append(out, fmt.Sprintf("%v-day trips", val))
		case model.FilterHoldProbabilityMin:
			out = append(out, fmt.Sprintf("hold probability of %v%% or better", val))
		case model.FilterTAFBMax:
			out = append(out, fmt.Sprintf("at most %v hours away from base", val))
		case model.FilterCity:
			out = append(out, fmt.Sprintf("layover in %v", val))
		case model.FilterLayoverMin:
			out = append(out, fmt.Sprintf("layovers of %v hours or more", val))
		default:
			out = append(out, fmt.Sprintf("%s = %v", k, val))
		}
	}
	return out
}

// relaxationSuggestions proposes concrete ways to widen an empty search
func relaxationSuggestions(filters map[model.FilterKey]interface{}) []string {
	var out []string
	if _, ok := filters[model.FilterCreditMin]; ok {
		out = append(out, "lowering the minimum credit")
	}
	if _, ok := filters[model.FilterPairingDays]; ok {
		out = append(out, "a different trip length")
	}
	if _, ok := filters[model.FilterCity]; ok {
		out = append(out, "another layover city")
	}
	if _, ok := filters[model.FilterHoldProbabilityMin]; ok {
		out = append(out, "accepting a lower hold probability")
	}
	if _, ok := filters[model.FilterTAFBMax]; ok {
		out = append(out, "allowing more time away from base")
	}
	if _, ok := filters[model.FilterLayoverMin]; ok {
		out = append(out, "shorter layovers")
	}
	if _, ok := filters[model.FilterPairingNumber]; ok {
		out = append(out, "double-checking the pairing number")
	}
	if len(out) == 0 {
		out = append(out, "broadening the search criteria")
	}
	sort.Strings(out)
	return out
}

// trimFloat renders a float without trailing zeros (18.50 -> "18.5", 85 -> "85")
func trimFloat(f float64) string {
	s := strings.TrimRight(fmt.Sprintf("%.2f", f), "0")
	return strings.TrimRight(s, ".")
}
