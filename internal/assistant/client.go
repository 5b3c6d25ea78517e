// internal/assistant/client.go
package assistant

import (
	"context"
	"fmt"

	"kisan-ai/internal/config"

	"google.golang.org/genai"
)

// Assistant wraps the generative AI service behind the three flows the
// application uses: text advice, plant diagnosis, and spoken advice. The
// model itself is an opaque external capability; only request shaping and
// response validation happen here.
type Assistant struct {
	client   *genai.Client
	model    string
	ttsModel string
	ttsVoice string
}

func NewAssistant(ctx context.Context, cfg *config.AIConfig) (*Assistant, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("generative AI API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Assistant{
		client:   client,
		model:    cfg.Model,
		ttsModel: cfg.TTSModel,
		ttsVoice: cfg.TTSVoice,
	}, nil
}
