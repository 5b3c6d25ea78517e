// internal/assistant/speech.go
package assistant

import (
	"context"
	"encoding/base64"
	"fmt"

	"kisan-ai/internal/utils"

	"google.golang.org/genai"
)

// SpokenAdvice pairs the advice text with a playable audio rendition.
type SpokenAdvice struct {
	Advice string `json:"advice"`
	Audio  string `json:"audio"` // data:audio/wav;base64,<encoded_data>
}

// Speak converts text to speech and returns a WAV data URI. The TTS model
// streams raw PCM (24kHz, 16-bit, mono) so we wrap it in a WAV container
// before handing it to clients.
func (a *Assistant) Speak(ctx context.Context, text string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.ttsModel, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: a.ttsVoice,
				},
			},
		},
	})
	if err != nil {
		return "", utils.NewServiceUnavailableError("text to speech", err)
	}

	pcm := inlineAudioData(resp)
	if len(pcm) == 0 {
		return "", utils.NewServiceUnavailableError("text to speech",
			fmt.Errorf("no audio media returned"))
	}

	wav := pcmToWAV(pcm, ttsChannels, ttsSampleRate, ttsBitsPerSample)
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(wav), nil
}

// SpeakAdvice answers the farmer's question and voices the answer in one call.
func (a *Assistant) SpeakAdvice(ctx context.Context, input AdviceInput) (*SpokenAdvice, error) {
	advice, err := a.Advise(ctx, input)
	if err != nil {
		return nil, err
	}

	audio, err := a.Speak(ctx, advice.Advice)
	if err != nil {
		return nil, err
	}

	return &SpokenAdvice{Advice: advice.Advice, Audio: audio}, nil
}

func inlineAudioData(resp *genai.GenerateContentResponse) []byte {
	if resp == nil {
		return nil
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data
			}
		}
	}
	return nil
}
