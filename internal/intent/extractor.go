// Package intent converts free-form questions about pairings into
// structured, validated query intents.
package intent

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jayscottaf/pairscout/internal/llm"
	"github.com/jayscottaf/pairscout/internal/model"
)

// Extractor turns a user utterance plus recent conversation turns into a
// model.Intent. It never fails outward: any internal error collapses into
// a clarification intent, so the orchestrator needs no "extraction failed"
// branch.
type Extractor struct {
	provider      llm.Provider
	cache         *gocache.Cache
	historyWindow int
}

// NewExtractor creates an extractor. A nil provider disables the model
// path; only the literal pre-pass and the clarification fallback remain.
func NewExtractor(provider llm.Provider, cfg model.IntentConfig) *Extractor {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	cleanup := cfg.CleanupInterval
	if cleanup <= 0 {
		cleanup = 2 * ttl
	}

	window := cfg.HistoryWindow
	if window <= 0 {
		window = 4
	}

	return &Extractor{
		provider:      provider,
		cache:         gocache.New(ttl, cleanup),
		historyWindow: window,
	}
}

// Extract parses the query into a structured intent.
//
// Resolution order: literal pre-pass for the highest-confidence keyword
// mappings, then the completion provider for everything else, then the
// clarification fallback. Identical (query, history window) inputs are
// memoized briefly; extraction is required to be reproducible for the same
// input, so reuse is behavior-preserving.
func (e *Extractor) Extract(ctx context.Context, query string, history []model.ConversationTurn) model.Intent {
	query = strings.TrimSpace(query)
	if query == "" {
		return fallbackIntent()
	}

	window := e.window(history)

	// Literal pre-pass: exact duration/ranking keywords resolve without a
	// model call, and only when nothing substantive is left unconsumed.
	prePassed, consumed := e.prePass(query)
	if consumed && len(window) == 0 {
		return enforceInvariant(prePassed)
	}

	if e.provider == nil {
		// No model available. A confident pre-pass hit is still better
		// than asking the user to rephrase.
		if prePassed.HasCriteria() {
			return enforceInvariant(prePassed)
		}
		return fallbackIntent()
	}

	key := cacheKey(query, window)
	if cached, found := e.cache.Get(key); found {
		return cached.(model.Intent).Clone()
	}

	parsed, err := e.extractWithModel(ctx, query, window)
	if err != nil {
		if prePassed.HasCriteria() {
			return enforceInvariant(prePassed)
		}
		return fallbackIntent()
	}

	result := enforceInvariant(parsed)
	e.cache.SetDefault(key, result.Clone())
	return result
}

// extractWithModel invokes the completion provider and validates its output
func (e *Extractor) extractWithModel(ctx context.Context, query string, window []model.ConversationTurn) (model.Intent, error) {
	raw, err := e.provider.Complete(ctx, llm.CompletionRequest{
		System:      systemPrompt,
		Messages:    buildMessages(query, window, e.historyWindow),
		Temperature: 0.1,
		MaxTokens:   500,
		JSONMode:    true,
	})
	if err != nil {
		return model.Intent{}, err
	}

	parsed, err := parseIntent(raw)
	if err != nil {
		return model.Intent{}, &model.IntentParseError{Raw: raw, Err: err}
	}
	return parsed, nil
}

// rawIntent mirrors the JSON schema the model is instructed to produce
type rawIntent struct {
	Filters               map[string]interface{} `json:"filters"`
	Ranking               string                 `json:"ranking"`
	Limit                 *int                   `json:"limit"`
	NeedsClarification    bool                   `json:"needs_clarification"`
	ClarificationQuestion string                 `json:"clarification_question"`
}

// parseIntent parses and validates model output against the Intent schema.
// Unknown filter keys are dropped; values coerce to the key's expected type
// or are dropped.
func parseIntent(raw string) (model.Intent, error) {
	var ri rawIntent
	if err := extractJSON(raw, &ri); err != nil {
		return model.Intent{}, err
	}

	intent := model.Intent{
		Filters:               make(map[model.FilterKey]interface{}),
		Ranking:               model.ParseRankingMode(ri.Ranking),
		NeedsClarification:    ri.NeedsClarification,
		ClarificationQuestion: strings.TrimSpace(ri.ClarificationQuestion),
	}

	for rawKey, rawVal := range ri.Filters {
		key := model.FilterKey(rawKey)
		if !model.ValidFilterKeys[key] {
			continue
		}
		if val, ok := coerceFilterValue(key, rawVal); ok {
			intent.Filters[key] = val
		}
	}

	if ri.Limit != nil && *ri.Limit > 0 {
		limit := *ri.Limit
		intent.Limit = &limit
	}

	return intent, nil
}

// coerceFilterValue normalizes a filter value to the type its key expects
func coerceFilterValue(key model.FilterKey, val interface{}) (interface{}, bool) {
	switch key {
	case model.FilterPairingNumber, model.FilterCity:
		s, ok := val.(string)
		s = strings.TrimSpace(s)
		return s, ok && s != ""

	case model.FilterPairingDays:
		f, ok := toFloat(val)
		if !ok || f <= 0 {
			return nil, false
		}
		return int(f), true

	default:
		f, ok := toFloat(val)
		if !ok || f < 0 {
			return nil, false
		}
		return f, true
	}
}

// toFloat accepts the numeric shapes JSON decoding can produce
func toFloat(val interface{}) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// enforceInvariant corrects the clarification contract as a post-condition:
// an intent with no discriminating criteria must ask for clarification, and
// the question is non-empty iff clarification is needed.
func enforceInvariant(intent model.Intent) model.Intent {
	if intent.Filters == nil {
		intent.Filters = map[model.FilterKey]interface{}{}
	}

	if !intent.HasCriteria() {
		intent.NeedsClarification = true
	}

	if intent.NeedsClarification {
		if intent.ClarificationQuestion == "" {
			intent.ClarificationQuestion = fallbackQuestion
		}
	} else {
		intent.ClarificationQuestion = ""
	}

	return intent
}

func (e *Extractor) window(history []model.ConversationTurn) []model.ConversationTurn {
	if len(history) > e.historyWindow {
		return history[len(history)-e.historyWindow:]
	}
	return history
}

func cacheKey(query string, window []model.ConversationTurn) string {
	var b strings.Builder
	b.WriteString(query)
	for _, turn := range window {
		b.WriteString("\x1f")
		b.WriteString(turn.Role)
		b.WriteString(":")
		b.WriteString(turn.Content)
	}
	return b.String()
}

// Literal pre-pass

var (
	daysRe    = regexp.MustCompile(`(?i)\b(\d+)[-\s]day\b`)
	pairingRe = regexp.MustCompile(`\b([A-Z]{1,2}\d{3,5})\b`)
	topNRe    = regexp.MustCompile(`(?i)\btop\s+(\d+)\b`)
)

var wordDays = map[string]int{
	"one-day": 1, "two-day": 2, "three-day": 3, "four-day": 4,
	"five-day": 5, "six-day": 6, "seven-day": 7,
	"turnaround": 1, "turn": 1, "day trip": 1, "day trips": 1,
}

var rankingPhrases = []struct {
	phrase string
	mode   model.RankingMode
}{
	{"highest credit", model.RankByCredit},
	{"most credit", model.RankByCredit},
	{"top credit", model.RankByCredit},
	{"best paying", model.RankByCredit},
	{"highest paying", model.RankByCredit},
	{"most efficient", model.RankByEfficiency},
	{"best ratio", model.RankByEfficiency},
	{"credit per block", model.RankByEfficiency},
	{"efficiency", model.RankByEfficiency},
	{"most likely to hold", model.RankByHold},
	{"easiest to hold", model.RankByHold},
	{"best hold", model.RankByHold},
	{"hold probability", model.RankByHold},
	{"best overall", model.RankByOverall},
	{"overall best", model.RankByOverall},
}

// juniorHoldThreshold is the likelihood floor implied by "junior friendly"
const juniorHoldThreshold = 70.0

// stopwords are filler tokens ignored when deciding whether the pre-pass
// consumed the whole query
var stopwords = map[string]bool{
	"pairing": true, "pairings": true, "trip": true, "trips": true,
	"show": true, "me": true, "find": true, "get": true, "give": true,
	"list": true, "all": true, "any": true, "please": true,
	"the": true, "a": true, "an": true, "of": true, "for": true,
	"with": true, "i": true, "want": true, "looking": true, "need": true,
	"what": true, "are": true, "by": true, "ranked": true, "sort": true,
	"sorted": true, "which": true, "is": true,
}

// prePass resolves the highest-confidence literal mappings without a model
// call. The second return reports whether nothing substantive was left
// unconsumed, i.e. the result can stand on its own.
func (e *Extractor) prePass(query string) (model.Intent, bool) {
	intent := model.Intent{
		Filters: map[model.FilterKey]interface{}{},
		Ranking: model.RankNone,
	}

	lower := strings.ToLower(query)
	leftover := lower

	if m := daysRe.FindStringSubmatch(query); m != nil {
		if days, err := strconv.Atoi(m[1]); err == nil && days > 0 {
			intent.Filters[model.FilterPairingDays] = days
			leftover = strings.Replace(leftover, strings.ToLower(m[0]), " ", 1)
		}
	}
	for phrase, days := range wordDays {
		if containsPhrase(lower, phrase) {
			if _, exists := intent.Filters[model.FilterPairingDays]; !exists {
				intent.Filters[model.FilterPairingDays] = days
			}
			leftover = removePhrase(leftover, phrase)
		}
	}

	if m := pairingRe.FindStringSubmatch(query); m != nil {
		// A named identifier is an exact-match filter, not a ranking
		intent.Filters[model.FilterPairingNumber] = m[1]
		leftover = strings.Replace(leftover, strings.ToLower(m[0]), " ", 1)
	}

	for _, rp := range rankingPhrases {
		if containsPhrase(lower, rp.phrase) {
			intent.Ranking = rp.mode
			leftover = removePhrase(leftover, rp.phrase)
			break
		}
	}

	if containsPhrase(lower, "junior friendly") || containsPhrase(lower, "junior-friendly") {
		intent.Filters[model.FilterHoldProbabilityMin] = juniorHoldThreshold
		leftover = removePhrase(leftover, "junior friendly")
		leftover = removePhrase(leftover, "junior-friendly")
	}

	if m := topNRe.FindStringSubmatch(query); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			intent.Limit = &n
			leftover = strings.Replace(leftover, strings.ToLower(m[0]), " ", 1)
		}
	}

	if !intent.HasCriteria() {
		return intent, false
	}

	return intent, consumedAll(leftover)
}

// containsPhrase reports whether phrase occurs in s on word boundaries, so
// "turn" does not match inside "returning". Both arguments must be lowercase.
func containsPhrase(s, phrase string) bool {
	for start := 0; ; start++ {
		i := strings.Index(s[start:], phrase)
		if i < 0 {
			return false
		}
		start += i
		end := start + len(phrase)
		if (start == 0 || !isWordByte(s[start-1])) && (end == len(s) || !isWordByte(s[end])) {
			return true
		}
	}
}

// removePhrase blanks every word-boundary occurrence of phrase in s.
func removePhrase(s, phrase string) string {
	for start := 0; ; start++ {
		i := strings.Index(s[start:], phrase)
		if i < 0 {
			return s
		}
		start += i
		end := start + len(phrase)
		if (start == 0 || !isWordByte(s[start-1])) && (end == len(s) || !isWordByte(s[end])) {
			s = s[:start] + " " + s[end:]
		}
	}
}

func isWordByte(c byte) bool {
	return 'a' <= c && c <= 'z' || '0' <= c && c <= '9'
}

// consumedAll reports whether only filler tokens remain
func consumedAll(leftover string) bool {
	for _, tok := range strings.FieldsFunc(leftover, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		if !stopwords[tok] {
			return false
		}
	}
	return true
}
