package constant

const (
	ServiceName = "Albi Mall Assistant"

	// Returned when the turn pipeline panics.
	ChatApologyMessage = "I'm sorry, something went wrong while looking for products. Please try again in a moment."

	ChatTurnTopic = "CHAT_TURN_COMPLETED"
)

type SuggestedQuery struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

var SuggestedQueries = []SuggestedQuery{
	{
		ID:       "1",
		Text:     "I'm looking for a red bag I can wear everyday",
		Category: "bags",
		Keywords: []string{"red", "bag", "everyday", "daily", "wear"},
	},
	{
		ID:       "2",
		Text:     "I need a large tote for work and travel",
		Category: "bags",
		Keywords: []string{"large", "tote", "work", "travel", "professional"},
	},
	{
		ID:       "3",
		Text:     "Show me black leather handbags under $300",
		Category: "bags",
		Keywords: []string{"black", "leather", "handbags", "under", "300", "price"},
	},
	{
		ID:       "4",
		Text:     "I want a crossbody bag for hands-free convenience",
		Category: "bags",
		Keywords: []string{"crossbody", "hands-free", "convenience", "compact"},
	},
	{
		ID:       "5",
		Text:     "Find me a backpack for daily use",
		Category: "bags",
		Keywords: []string{"backpack", "daily", "use", "everyday"},
	},
	{
		ID:       "6",
		Text:     "I need a professional satchel for business meetings",
		Category: "bags",
		Keywords: []string{"professional", "satchel", "business", "meetings", "work"},
	},
	{
		ID:       "7",
		Text:     "Më trego një çantë të kuqe nën 100 dollarë",
		Category: "bags",
		Keywords: []string{"çantë", "kuqe", "nën", "100"},
	},
}
