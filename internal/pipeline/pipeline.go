// Package pipeline orchestrates the query-intent pipeline: intent
// extraction, query translation, retrieval, ranking, and grounded response
// generation.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jayscottaf/pairscout/internal/intent"
	"github.com/jayscottaf/pairscout/internal/llm"
	"github.com/jayscottaf/pairscout/internal/model"
	"github.com/jayscottaf/pairscout/internal/query"
	"github.com/jayscottaf/pairscout/internal/rank"
	"github.com/jayscottaf/pairscout/internal/respond"
	"github.com/jayscottaf/pairscout/internal/search"
)

// state tracks where a request is in the pipeline, for logging and for the
// short-circuit transitions.
type state string

const (
	stateExtracting  state = "extracting"
	stateClarify     state = "clarify"
	stateTranslating state = "translating"
	stateRetrieving  state = "retrieving"
	stateNoData      state = "no_data"
	stateRanking     state = "ranking"
	stateLimiting    state = "limiting"
	stateResponding  state = "responding"
	stateDone        state = "done"
	stateFailed      state = "failed"
)

// Canned responses for terminal failure states
const (
	searchFailedResponse  = "Sorry, I could not complete the search. Please try again in a moment."
	genericFailedResponse = "Sorry, something went wrong while handling your question. Please try again."
)

// Pipeline sequences the query stages. Stateless between requests: every
// invocation is independent, so one Pipeline may serve any number of
// concurrent callers.
type Pipeline struct {
	extractor *intent.Extractor
	engine    *rank.Engine
	generator *respond.Generator
	searcher  search.Searcher
	logger    *zap.Logger
	cfg       *model.Config
}

// NewPipeline wires the pipeline from explicitly injected collaborators.
// The provider may be nil (completions disabled); every stage then runs on
// its deterministic path.
func NewPipeline(cfg *model.Config, provider llm.Provider, searcher search.Searcher, logger *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		extractor: intent.NewExtractor(provider, cfg.Intent),
		engine:    rank.NewEngine(cfg.Ranking),
		generator: respond.NewGenerator(provider),
		searcher:  searcher,
		logger:    logger,
		cfg:       cfg,
	}
}

// QueryRequest is one natural-language question plus its context
type QueryRequest struct {
	Message string

	// SenioritySignal is the requester's seniority percentile (0-100,
	// higher = more junior); biases the overall ranking weights
	SenioritySignal *float64

	// History is the caller-owned conversation window
	History []model.ConversationTurn

	// Limit caps displayed records; overrides a limit in the extracted
	// intent when positive
	Limit int

	// LongestLayover ranks by longest layover duration instead of the
	// intent's ranking mode ("best layover" style queries)
	LongestLayover bool
}

// RunQuery executes the full pipeline for one question. It never returns
// an error: every stage failure maps to a safe response in the result.
func (p *Pipeline) RunQuery(ctx context.Context, req QueryRequest) (result *model.QueryResult) {
	requestID := uuid.NewString()
	log := p.logger.With(zap.String("request_id", requestID))

	// Unexpected stage panics transition to the Failed terminal state;
	// nothing propagates past the pipeline boundary
	defer func() {
		if r := recover(); r != nil {
			log.Error("pipeline failed", zap.Any("panic", r))
			result = &model.QueryResult{
				RequestID: requestID,
				Response:  genericFailedResponse,
			}
		}
	}()

	log.Debug("pipeline state", zap.String("state", string(stateExtracting)))
	extracted := p.extractor.Extract(ctx, req.Message, req.History)

	if extracted.NeedsClarification {
		log.Debug("pipeline state", zap.String("state", string(stateClarify)))
		return &model.QueryResult{
			RequestID:             requestID,
			Response:              extracted.ClarificationQuestion,
			Intent:                &extracted,
			RequiresClarification: true,
		}
	}

	log.Debug("pipeline state", zap.String("state", string(stateTranslating)))
	spec := query.WithSortHint(query.ToSearchSpec(extracted.Filters), extracted.Ranking)

	log.Debug("pipeline state", zap.String("state", string(stateRetrieving)))
	pairings, err := p.searcher.Search(ctx, spec)
	if err != nil {
		// Data failures are reported, not papered over: fabricating
		// records would break the grounding guarantee
		log.Warn("pairing search failed", zap.Error(err))
		return &model.QueryResult{
			RequestID: requestID,
			Response:  searchFailedResponse,
			Intent:    &extracted,
		}
	}

	if len(pairings) == 0 {
		log.Debug("pipeline state", zap.String("state", string(stateNoData)))
		return &model.QueryResult{
			RequestID: requestID,
			Response:  p.generator.GenerateNoData(req.Message, extracted.Filters),
			Intent:    &extracted,
		}
	}

	log.Debug("pipeline state", zap.String("state", string(stateRanking)),
		zap.Int("records", len(pairings)), zap.String("mode", string(extracted.Ranking)))

	var (
		ranked    []model.RankedPairing
		rationale string
	)
	switch {
	case req.LongestLayover:
		ranked = p.engine.RankByLongestLayover(pairings, 0)
		rationale = "Ranked by longest layover duration, longest first."
	case extracted.Ranking != model.RankNone:
		ranked = p.engine.Rank(pairings, extracted.Ranking, req.SenioritySignal)
		rationale = p.engine.Rationale(extracted.Ranking, req.SenioritySignal)
	default:
		ranked = rank.WrapUnranked(pairings)
	}

	log.Debug("pipeline state", zap.String("state", string(stateLimiting)))
	ranked, truncated := p.limit(ranked, &extracted, req.Limit)

	log.Debug("pipeline state", zap.String("state", string(stateResponding)))
	response := p.generator.Generate(ctx, req.Message, ranked, rationale, req.History)

	log.Debug("pipeline state", zap.String("state", string(stateDone)))
	return &model.QueryResult{
		RequestID: requestID,
		Response:  response,
		Data:      ranked,
		Intent:    &extracted,
		Truncated: truncated,
	}
}

// AnalyzeByNumber looks up a single pairing and narrates it. An unknown
// number yields a plain-language message, not an error.
func (p *Pipeline) AnalyzeByNumber(ctx context.Context, number string) *model.QueryResult {
	requestID := uuid.NewString()
	number = strings.TrimSpace(number)

	pairing, err := p.lookup(ctx, number)
	if err != nil {
		var response string
		switch err.(type) {
		case *model.NotFoundError:
			response = fmt.Sprintf("No pairing found for %s. Check the pairing number and try again.", number)
		default:
			p.logger.Warn("pairing lookup failed", zap.String("request_id", requestID), zap.Error(err))
			response = searchFailedResponse
		}
		return &model.QueryResult{RequestID: requestID, Response: response}
	}

	ranked := rank.WrapUnranked([]model.Pairing{*pairing})
	question := fmt.Sprintf("Give me a short analysis of pairing %s: its credit, efficiency, and how likely it is to hold.", number)

	return &model.QueryResult{
		RequestID: requestID,
		Response:  p.generator.Generate(ctx, question, ranked, "", nil),
		Data:      ranked,
	}
}

// CompareByNumbers looks up several pairings and narrates the comparison
// over the subset that exists, reporting the identifiers that were not
// found.
func (p *Pipeline) CompareByNumbers(ctx context.Context, numbers []string) *model.QueryResult {
	requestID := uuid.NewString()

	var (
		found   []model.Pairing
		missing []string
	)
	for _, number := range numbers {
		number = strings.TrimSpace(number)
		if number == "" {
			continue
		}

		pairing, err := p.lookup(ctx, number)
		switch err.(type) {
		case nil:
			found = append(found, *pairing)
		case *model.NotFoundError:
			missing = append(missing, number)
		default:
			p.logger.Warn("pairing lookup failed", zap.String("request_id", requestID), zap.Error(err))
			return &model.QueryResult{RequestID: requestID, Response: searchFailedResponse}
		}
	}

	if len(found) == 0 {
		return &model.QueryResult{
			RequestID: requestID,
			Response:  fmt.Sprintf("None of the requested pairings were found: %s.", strings.Join(missing, ", ")),
		}
	}

	ranked := rank.WrapUnranked(found)
	question := fmt.Sprintf("Compare these %d pairings on credit, efficiency, and hold probability, and say which looks strongest.", len(found))

	response := p.generator.Generate(ctx, question, ranked, "", nil)
	if len(missing) > 0 {
		response += fmt.Sprintf("\n\nNot found: %s.", strings.Join(missing, ", "))
	}

	return &model.QueryResult{
		RequestID: requestID,
		Response:  response,
		Data:      ranked,
	}
}

// lookup retrieves exactly one pairing by number
func (p *Pipeline) lookup(ctx context.Context, number string) (*model.Pairing, error) {
	spec := query.ToSearchSpec(map[model.FilterKey]interface{}{
		model.FilterPairingNumber: number,
	})

	pairings, err := p.searcher.Search(ctx, spec)
	if err != nil {
		return nil, err
	}

	for i := range pairings {
		if strings.EqualFold(pairings[i].PairingNumber, number) {
			return &pairings[i], nil
		}
	}

	return nil, &model.NotFoundError{PairingNumber: number}
}

// limit enforces the display cap: the caller's limit wins, then the
// intent's, then the configured default.
func (p *Pipeline) limit(ranked []model.RankedPairing, extracted *model.Intent, requestLimit int) ([]model.RankedPairing, bool) {
	max := 0
	switch {
	case requestLimit > 0:
		max = requestLimit
	case extracted.Limit != nil && *extracted.Limit > 0:
		max = *extracted.Limit
	case p.cfg.Output.MaxDisplay > 0:
		max = p.cfg.Output.MaxDisplay
	}

	if max > 0 && len(ranked) > max {
		return ranked[:max], true
	}
	return ranked, false
}
