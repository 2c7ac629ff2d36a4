// Package intent classifies user utterances into coarse categories that
// select the downstream handler. Classification is a pure, ordered keyword
// decision table: no ML, no side effects, never fails.
package intent

import (
	"strings"

	"github.com/hotelgenx/concierge/internal/domain"
)

// rule pairs a trigger vocabulary with the intent it selects.
type rule struct {
	intent   domain.Intent
	keywords []string
}

// defaultRules is the routing policy, evaluated strictly in order. The hotel
// vocabulary is checked before the research vocabulary; whichever set matches
// first wins regardless of later matches.
var defaultRules = []rule{
	{intent: domain.IntentHotelSearch, keywords: hotelTriggers},
	{intent: domain.IntentResearch, keywords: researchTriggers},
}

// Router assigns an Intent to each utterance.
type Router struct {
	rules []rule
}

// NewRouter creates a router with the default routing policy.
func NewRouter() *Router {
	return &Router{rules: defaultRules}
}

// Route classifies an utterance. Empty input yields IntentNone; an utterance
// matching no trigger set falls through to IntentGeneralChat.
func (r *Router) Route(utterance string) domain.Intent {
	lower := strings.ToLower(strings.TrimSpace(utterance))
	if lower == "" {
		return domain.IntentNone
	}

	for _, rl := range r.rules {
		for _, kw := range rl.keywords {
			if strings.Contains(lower, kw) {
				return rl.intent
			}
		}
	}

	return domain.IntentGeneralChat
}
