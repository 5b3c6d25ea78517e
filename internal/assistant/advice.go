// internal/assistant/advice.go
package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"kisan-ai/internal/utils"

	"google.golang.org/genai"
)

// AdviceInput carries a farming question with the context the model needs.
type AdviceInput struct {
	Question string `json:"question"`
	Weather  string `json:"weather"`  // current conditions summary
	Language string `json:"language"` // ISO code: en, hi, mr, ta, te, kn, bn, pa, gu
}

// AdviceOutput is the structured response declared to the model.
type AdviceOutput struct {
	Advice string `json:"advice"`
}

const adviceSystemPrompt = `You are KisanAI, an expert farming assistant. Your goal is to provide short, actionable farming advice.
Respond in the language specified by the user.`

var adviceSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"advice": {
			Type:        genai.TypeString,
			Description: "The actionable farming advice provided by the AI.",
		},
	},
	Required: []string{"advice"},
}

// Advise asks the model for farming advice given the question, current
// weather, and language preference. The response is schema-validated JSON.
func (a *Assistant) Advise(ctx context.Context, input AdviceInput) (*AdviceOutput, error) {
	prompt := fmt.Sprintf(
		"Based on the user's question and current weather, give short, actionable farming advice in the selected language (%s).\n\nWeather: %s\n\nQuestion: %s",
		input.Language, input.Weather, input.Question,
	)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(adviceSystemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    adviceSchema,
	})
	if err != nil {
		return nil, utils.NewServiceUnavailableError("assistant", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, utils.NewServiceUnavailableError("assistant",
			fmt.Errorf("empty response from model"))
	}

	var output AdviceOutput
	if err := json.Unmarshal([]byte(text), &output); err != nil {
		return nil, utils.NewServiceUnavailableError("assistant",
			fmt.Errorf("model response failed schema validation: %w", err))
	}

	return &output, nil
}
