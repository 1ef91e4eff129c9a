package response

import (
	"encoding/json"
	"fmt"
	"strings"

	"albi-mall-assistant-be/pkg/catalog"
	"albi-mall-assistant-be/pkg/llm"
	"albi-mall-assistant-be/pkg/store"
)

const promptHistorySize = 6

type promptProduct struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Color     string   `json:"color"`
	Colors    []string `json:"colors,omitempty"`
	Category  string   `json:"category"`
	Material  string   `json:"material"`
	Features  []string `json:"features,omitempty"`
	Highlight string   `json:"highlight"`
}

func toPromptProducts(products []catalog.Product) []promptProduct {
	out := make([]promptProduct, 0, len(products))
	for _, p := range products {
		features := p.Features
		if len(features) > 3 {
			features = features[:3]
		}
		out = append(out, promptProduct{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Color:     p.Color,
			Colors:    p.Colors,
			Category:  p.Subcategory,
			Material:  p.Material,
			Features:  features,
			Highlight: Highlight(p),
		})
	}
	return out
}

// buildMessages returns the system prompt followed by the shopper's utterance.
func (c *Composer) buildMessages(in Input) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: c.buildSystemPrompt(in)},
		{Role: llm.RoleUser, Content: in.Utterance},
	}
}

func (c *Composer) buildSystemPrompt(in Input) string {
	var prompt strings.Builder

	prompt.WriteString("<role>\n")
	prompt.WriteString(fmt.Sprintf("You are the %s shopping assistant, a friendly and professional concierge for %s handbags and accessories.\n", c.cfg.AssistantName, c.cfg.StoreBrand))
	prompt.WriteString("</role>\n\n")

	prompt.WriteString("<retrieved_products>\n")
	prompt.WriteString("CRITICAL: This is the ONLY list you may recommend from. Never invent products.\n")
	productsJSON, _ := json.MarshalIndent(toPromptProducts(in.Candidates), "", "  ")
	prompt.Write(productsJSON)
	prompt.WriteString("\n</retrieved_products>\n\n")

	prompt.WriteString("<session_context>\n")
	prompt.WriteString(sessionContextPrompt(in))
	prompt.WriteString("</session_context>\n\n")

	prompt.WriteString("<rules>\n")
	prompt.WriteString("1. Recommend only products from <retrieved_products>, by their exact id.\n")
	prompt.WriteString(fmt.Sprintf("2. Recommend at most %d products.\n", c.cfg.MaxRecommendations))
	prompt.WriteString("3. Respect every applied filter. Never suggest an item outside the price range or in another color.\n")
	prompt.WriteString("4. If the list is empty, say politely that nothing matches and offer to adjust the filters.\n")
	prompt.WriteString("5. Reply in the language the shopper used.\n")
	prompt.WriteString("6. Keep the reply concise: two to four sentences.\n")
	prompt.WriteString("</rules>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with JSON only, no markdown:\n")
	prompt.WriteString(`{"assistant_text": "...", "recommended_products": [{"id": "...", "title": "...", "highlight": "..."}], "audit_notes": "..."}`)
	prompt.WriteString("\n</output_format>")

	return prompt.String()
}

func sessionContextPrompt(in Input) string {
	var b strings.Builder

	history := in.History
	if len(history) > promptHistorySize {
		history = history[len(history)-promptHistorySize:]
	}
	if len(history) == 0 {
		b.WriteString("No previous conversation context.\n")
	} else {
		b.WriteString("RECENT CONVERSATION:\n")
		for _, msg := range history {
			speaker := "User"
			if msg.Role == store.RoleAssistant {
				speaker = "Assistant"
			}
			b.WriteString(fmt.Sprintf("%s: %s\n", speaker, msg.Content))
		}
	}

	if !in.Filters.IsEmpty() {
		b.WriteString(fmt.Sprintf("\nAPPLIED FILTERS: %s\n", in.Filters.Describe()))
	}

	if len(in.PreviousRecommended) > 0 {
		names := make([]string, len(in.PreviousRecommended))
		for i, p := range in.PreviousRecommended {
			names[i] = p.Name
		}
		b.WriteString(fmt.Sprintf("\nPREVIOUS RECOMMENDATIONS: %s\n", strings.Join(names, ", ")))
	}
	return b.String()
}
