// internal/assistant/plantdoctor.go
package assistant

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"kisan-ai/internal/utils"

	"google.golang.org/genai"
)

// DiagnosisInput carries a plant photo plus everything the farmer told us.
type DiagnosisInput struct {
	PhotoDataURI   string `json:"photoDataUri"` // data:<mimetype>;base64,<encoded_data>
	VoiceText      string `json:"voiceText"`    // the farmer's spoken message transcript
	CropName       string `json:"cropName"`     // "unknown" when not provided
	GrowthStage    string `json:"growthStage"`
	Location       string `json:"location"`
	WeatherSummary string `json:"weatherSummary"`
	UserNotes      string `json:"userNotes"`
	Language       string `json:"language"`
}

type SpeciesGuess struct {
	Name       *string  `json:"name"`
	Confidence float64  `json:"confidence"`
	Evidence   []string `json:"evidence"`
}

type AlternativeSpecies struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

type PlantIdentification struct {
	PrimarySpecies SpeciesGuess         `json:"primarySpecies"`
	Alternatives   []AlternativeSpecies `json:"alternatives"`
}

type Differential struct {
	Name             string `json:"name"`
	HowToDistinguish string `json:"howToDistinguish"`
}

type Issue struct {
	IssueType      string         `json:"issueType"` // disease, pest, nutrient, physiological
	Name           string         `json:"name"`
	PathogenOrPest *string        `json:"pathogenOrPest"`
	Likelihood     float64        `json:"likelihood"`
	Severity       string         `json:"severity"` // low, medium, high
	Evidence       []string       `json:"evidence"`
	Differentials  []Differential `json:"differentials"`
}

type OrganicTreatment struct {
	Active string `json:"active"`
	Dose   string `json:"dose"`
	Notes  string `json:"notes"`
}

type ChemicalTreatment struct {
	Active   string   `json:"active"`
	Dose     string   `json:"dose"`
	PHIDays  *float64 `json:"PHI_days"`
	REIHours *float64 `json:"REI_hours"`
	PPE      []string `json:"PPE"`
	Notes    string   `json:"notes"`
}

type Recommendations struct {
	Monitoring        []string            `json:"monitoring"`
	CulturalIPM       []string            `json:"culturalIPM"`
	OrganicBiological []OrganicTreatment  `json:"organicBiological"`
	Chemical          []ChemicalTreatment `json:"chemical"`
	WhenToEscalate    []string            `json:"whenToEscalate"`
}

type DataQuality struct {
	ImageQuality      string   `json:"imageQuality"` // good, ok, poor
	MissingInfo       []string `json:"missingInfo"`
	NextPhotoRequests []string `json:"nextPhotoRequests"`
}

// DiagnosisOutput is the structured diagnosis declared to the model.
type DiagnosisOutput struct {
	PlantIdentification PlantIdentification `json:"plantIdentification"`
	Diagnosis           []Issue             `json:"diagnosis"`
	Recommendations     Recommendations     `json:"recommendations"`
	DataQuality         DataQuality         `json:"dataQuality"`
	Safety              []string            `json:"safety"`
	SpeakableSummary    string              `json:"speakableSummary"`
	Confidence          float64             `json:"confidence"`
	Disclaimer          string              `json:"disclaimer"`
}

const plantDoctorSystemPrompt = `ROLE
You are an agronomy + voice assistant. You must analyze plant images AND understand the farmer's spoken message (transcript). Your tasks: identify plant species, detect diseases/pests/nutrient issues, recommend actions, ask for next images/tests when needed, and generate a short audio-friendly summary. Output must follow the declared JSON structure. No extra text outside JSON.

TASKS
1) Plant Species Identification: most likely species with confidence (0-1) and visible evidence, plus 2-3 alternatives with reasons.
2) Diagnosis: diseases, pests, nutrient disorders, or physiological stresses. For each issue return name, likelihood (0-1), severity, evidence, and differentials with how to distinguish them.
3) Recommendations in strict IPM order: monitoring, cultural/IPM, organic/biological, then chemical (active ingredient only, NEVER brand names, with dosage range, PHI days, REI hours, PPE, safety warnings). If local regulations are unknown say "check local label/regulations". Never recommend banned substances.
4) Request ONLY the minimum next photos needed (e.g. "lesion edge macro", "leaf underside", "whole plant view").
5) Data quality: rate image quality, list missing information, suggest next photos.
6) Voice-aware response: adapt recommendations to what the farmer asked verbally, and produce a speakableSummary of at most 3 simple sentences, easy for farmers, in the requested language, suited for text-to-speech.
7) Final confidence score (0-1) and a short disclaimer.

OUTPUT RULES
- Be factual, not overconfident. State uncertainty clearly.
- Use short evidence bullet points.
- Return JSON only.
- Use the language preference for all human-readable text.
- If information is missing, use null and ask for minimal next input.`

var confidenceSchema = &genai.Schema{
	Type:    genai.TypeNumber,
	Minimum: genai.Ptr(0.0),
	Maximum: genai.Ptr(1.0),
}

func stringArraySchema() *genai.Schema {
	return &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}
}

var diagnosisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"plantIdentification": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"primarySpecies": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":       {Type: genai.TypeString, Nullable: genai.Ptr(true)},
						"confidence": confidenceSchema,
						"evidence":   stringArraySchema(),
					},
					Required: []string{"name", "confidence", "evidence"},
				},
				"alternatives": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name":       {Type: genai.TypeString},
							"confidence": confidenceSchema,
							"reason":     {Type: genai.TypeString},
						},
						Required: []string{"name", "confidence", "reason"},
					},
				},
			},
			Required: []string{"primarySpecies", "alternatives"},
		},
		"diagnosis": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"issueType": {
						Type: genai.TypeString,
						Enum: []string{"disease", "pest", "nutrient", "physiological"},
					},
					"name":           {Type: genai.TypeString},
					"pathogenOrPest": {Type: genai.TypeString, Nullable: genai.Ptr(true)},
					"likelihood":     confidenceSchema,
					"severity": {
						Type: genai.TypeString,
						Enum: []string{"low", "medium", "high"},
					},
					"evidence": stringArraySchema(),
					"differentials": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"name":             {Type: genai.TypeString},
								"howToDistinguish": {Type: genai.TypeString},
							},
							Required: []string{"name", "howToDistinguish"},
						},
					},
				},
				Required: []string{"issueType", "name", "likelihood", "severity", "evidence"},
			},
		},
		"recommendations": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"monitoring":  stringArraySchema(),
				"culturalIPM": stringArraySchema(),
				"organicBiological": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"active": {Type: genai.TypeString},
							"dose":   {Type: genai.TypeString},
							"notes":  {Type: genai.TypeString},
						},
						Required: []string{"active", "dose", "notes"},
					},
				},
				"chemical": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"active":    {Type: genai.TypeString},
							"dose":      {Type: genai.TypeString},
							"PHI_days":  {Type: genai.TypeNumber, Nullable: genai.Ptr(true)},
							"REI_hours": {Type: genai.TypeNumber, Nullable: genai.Ptr(true)},
							"PPE":       stringArraySchema(),
							"notes":     {Type: genai.TypeString},
						},
						Required: []string{"active", "dose", "PPE", "notes"},
					},
				},
				"whenToEscalate": stringArraySchema(),
			},
			Required: []string{"monitoring", "culturalIPM", "organicBiological", "chemical", "whenToEscalate"},
		},
		"dataQuality": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"imageQuality": {
					Type: genai.TypeString,
					Enum: []string{"good", "ok", "poor"},
				},
				"missingInfo":       stringArraySchema(),
				"nextPhotoRequests": stringArraySchema(),
			},
			Required: []string{"imageQuality", "missingInfo", "nextPhotoRequests"},
		},
		"safety":           stringArraySchema(),
		"speakableSummary": {Type: genai.TypeString},
		"confidence":       confidenceSchema,
		"disclaimer":       {Type: genai.TypeString},
	},
	Required: []string{
		"plantIdentification", "diagnosis", "recommendations", "dataQuality",
		"safety", "speakableSummary", "confidence", "disclaimer",
	},
}

// Diagnose sends the plant photo and farmer context to the model and validates
// the structured diagnosis it returns.
func (a *Assistant) Diagnose(ctx context.Context, input DiagnosisInput) (*DiagnosisOutput, error) {
	mimeType, photo, err := decodeDataURI(input.PhotoDataURI)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrInvalidInput, "Invalid photo data URI", err)
	}

	prompt := fmt.Sprintf(
		"Farmer Voice Transcript: %s\nCrop (if known): %s\nGrowth stage: %s\nLocation: %s\nRecent weather: %s\nField notes: %s\nLanguage preference for the farmer: %s",
		input.VoiceText, orUnknown(input.CropName), orUnknown(input.GrowthStage),
		orUnknown(input.Location), orUnknown(input.WeatherSummary), input.UserNotes, input.Language,
	)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(photo, mimeType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(plantDoctorSystemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    diagnosisSchema,
	})
	if err != nil {
		return nil, utils.NewServiceUnavailableError("plant doctor", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, utils.NewServiceUnavailableError("plant doctor",
			fmt.Errorf("empty response from model"))
	}

	var output DiagnosisOutput
	if err := json.Unmarshal([]byte(text), &output); err != nil {
		return nil, utils.NewServiceUnavailableError("plant doctor",
			fmt.Errorf("model response failed schema validation: %w", err))
	}

	return &output, nil
}

// decodeDataURI splits a "data:<mimetype>;base64,<data>" URI into its parts.
func decodeDataURI(uri string) (mimeType string, data []byte, err error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("missing data: prefix")
	}

	rest := strings.TrimPrefix(uri, "data:")
	semi := strings.Index(rest, ";base64,")
	if semi < 0 {
		return "", nil, fmt.Errorf("expected base64-encoded data URI")
	}

	mimeType = rest[:semi]
	data, err = base64.StdEncoding.DecodeString(rest[semi+len(";base64,"):])
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return mimeType, data, nil
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
