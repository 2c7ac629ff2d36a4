package domain

// Intent is the coarse category assigned to a user utterance. It determines
// which downstream handler processes the query.
type Intent string

const (
	// IntentNone is assigned to empty utterances; the caller drops them.
	IntentNone Intent = ""
	// IntentHotelSearch routes to the retrieval pipeline.
	IntentHotelSearch Intent = "hotel_search"
	// IntentResearch routes to the travel-info collaborator.
	IntentResearch Intent = "research"
	// IntentGeneralChat is the fallback conversational intent.
	IntentGeneralChat Intent = "general_chat"
)
