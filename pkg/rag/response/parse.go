package response

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"albi-mall-assistant-be/pkg/catalog"
)

var codeFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

type llmReply struct {
	AssistantText       string           `json:"assistant_text"`
	RecommendedProducts []Recommendation `json:"recommended_products"`
	AuditNotes          json.RawMessage  `json:"audit_notes,omitempty"`
}

func extractJSON(response string) string {
	if m := codeFence.FindStringSubmatch(response); m != nil {
		response = m[1]
	}

	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")
	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}
	return response[startIdx : endIdx+1]
}

// parseReply decodes the model's JSON and keeps only recommendations that
// point at a candidate. Missing titles and highlights come from the catalog.
func parseReply(raw string, candidates []catalog.Product, max int) (Output, error) {
	jsonContent := extractJSON(raw)
	if jsonContent == "" {
		return Output{}, fmt.Errorf("no JSON found in response")
	}

	var reply llmReply
	if err := json.Unmarshal([]byte(jsonContent), &reply); err != nil {
		return Output{}, fmt.Errorf("JSON unmarshal failed: %w", err)
	}
	reply.AssistantText = strings.TrimSpace(reply.AssistantText)
	if reply.AssistantText == "" {
		return Output{}, fmt.Errorf("reply has no assistant_text")
	}

	byID := make(map[string]catalog.Product, len(candidates))
	for _, p := range candidates {
		byID[p.ID] = p
	}

	out := Output{AssistantText: reply.AssistantText, RecommendedProducts: []Recommendation{}}
	seen := make(map[string]bool)
	for _, rec := range reply.RecommendedProducts {
		p, ok := byID[strings.TrimSpace(rec.ID)]
		if !ok || seen[p.ID] {
			continue
		}
		seen[p.ID] = true

		clean := recommend(p)
		if t := strings.TrimSpace(rec.Title); t != "" {
			clean.Title = t
		}
		if h := strings.TrimSpace(rec.Highlight); h != "" {
			clean.Highlight = h
		}
		out.RecommendedProducts = append(out.RecommendedProducts, clean)
		if max > 0 && len(out.RecommendedProducts) == max {
			break
		}
	}

	var note string
	if json.Unmarshal(reply.AuditNotes, &note) == nil {
		out.AuditNotes = strings.TrimSpace(note)
	}
	return out, nil
}
