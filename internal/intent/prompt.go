package intent

import (
	"github.com/jayscottaf/pairscout/internal/model"
)

// systemPrompt is the fixed instruction prompt for intent extraction. It
// enumerates the closed filter-key set and pins the synonym table so that
// ambiguous quantity words resolve the same way on every call.
const systemPrompt = `You translate a pilot's natural-language question about airline pairings into a structured query. Respond with a single JSON object and nothing else:

{
  "filters": { ... },
  "ranking": "credit" | "efficiency" | "hold_probability" | "overall" | "none",
  "limit": <positive integer, omit to return everything>,
  "needs_clarification": <bool>,
  "clarification_question": "<required when needs_clarification is true>"
}

Valid filter keys (use NO others):
- pairingNumber: exact pairing identifier, e.g. "P4312"
- creditMin / creditMax: credit hours bounds
- blockMin / blockMax: block hours bounds
- pairingDays: trip length in days (integer)
- holdProbabilityMin: minimum hold probability, 0-100
- tafbMax: maximum time away from base, in hours
- city: layover city name
- layoverMin: minimum longest-layover duration, in hours

Fixed synonym table (apply mechanically, do not improvise):
- "turn", "turnaround", "day trip" -> pairingDays: 1
- "two-day" / "2-day" ... "five-day" / "5-day" -> pairingDays: 2..5
- "junior friendly", "easy to hold", "likely to hold" -> holdProbabilityMin: 70
- "senior friendly", "hard to hold" -> ranking: "credit"
- "efficient", "best ratio", "credit per block" -> ranking: "efficiency"
- "highest credit", "most credit", "best paying" -> ranking: "credit"
- "best overall", "recommend" -> ranking: "overall"
- "long layover", "good layover in X" -> layoverMin: 20 (plus city when named)
- a pairing identifier in the question -> pairingNumber filter, never a ranking

Rules:
- A question with no recognizable filter or ranking criteria MUST set
  needs_clarification: true with a concrete follow-up question.
- Bare quality words ("good", "high", "best" alone) are NOT criteria.
- Use the conversation history to resolve references like "that city" or
  "the same but for 5 days".
- Never invent filter keys or values not implied by the question.`

// fallbackQuestion is the generic clarification used whenever extraction
// cannot produce a usable intent.
const fallbackQuestion = `Could you tell me more about what you're looking for? For example: "4-day pairings with at least 20 credit hours" or "pairings ranked by efficiency".`

// buildMessages assembles the conversation window plus the current
// utterance, oldest first. At most historyWindow prior turns are included
// to bound prompt size.
func buildMessages(query string, history []model.ConversationTurn, historyWindow int) []model.ConversationTurn {
	if historyWindow <= 0 {
		historyWindow = 4
	}
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	messages := make([]model.ConversationTurn, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, model.ConversationTurn{Role: model.RoleUser, Content: query})
	return messages
}

// fallbackIntent is returned on any internal extraction failure so the
// orchestrator never needs a distinct "extraction failed" branch.
func fallbackIntent() model.Intent {
	return model.Intent{
		Filters:               map[model.FilterKey]interface{}{},
		Ranking:               model.RankNone,
		NeedsClarification:    true,
		ClarificationQuestion: fallbackQuestion,
	}
}
