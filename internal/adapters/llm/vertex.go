package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/PabloGalante/farum-care/internal/domain"
)

type VertexGenerator struct {
	client    *genai.Client
	modelName string
}

// NewVertexGenerator creates a PlanGenerator based on Vertex AI (Gemini).
func NewVertexGenerator(ctx context.Context, projectID, location, modelName string) (*VertexGenerator, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("vertex: project and location must be set")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash-lite"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &VertexGenerator{
		client:    client,
		modelName: modelName,
	}, nil
}

// GenerateTreatmentPlan implements domain.PlanGenerator using Vertex AI.
func (v *VertexGenerator) GenerateTreatmentPlan(
	ctx context.Context,
	transcript string,
	patientName string,
) (domain.PlanDraft, error) {
	prompt := BuildPrompt(transcript, patientName)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt.User, genai.RoleUser),
	}

	temp := float32(0.3)
	topP := float32(0.9)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   4096,
		ResponseMIMEType:  "application/json",
	}

	res, err := v.client.Models.GenerateContent(ctx, v.modelName, contents, cfg)
	if err != nil {
		return domain.PlanDraft{}, fmt.Errorf("vertex generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return domain.PlanDraft{}, fmt.Errorf("vertex returned empty text")
	}

	return ParseDraft(text)
}
