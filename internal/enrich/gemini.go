package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/finleaf/statement-ledger/internal/models"
)

// Classifier is the external text-classification contract: free-form
// transaction text in, a category/contract classification out.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.Classification, error)
}

// GeminiClassifier asks a Gemini model for the category of one transaction
// text. The API key comes from the environment (GEMINI_API_KEY / GOOGLE_API_KEY).
type GeminiClassifier struct {
	client   *genai.Client
	model    string
	taxonomy string
}

// NewGeminiClassifier creates the genai client. taxonomy is the rendered
// "Main Category → Subcategory" list injected into every prompt.
func NewGeminiClassifier(ctx context.Context, model, taxonomy string) (*GeminiClassifier, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("enrich: create genai client: %w", err)
	}
	return &GeminiClassifier{client: client, model: model, taxonomy: taxonomy}, nil
}

func (g *GeminiClassifier) Classify(ctx context.Context, text string) (models.Classification, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: g.buildPrompt(text)},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return models.Classification{}, fmt.Errorf("enrich: generate content: %w", err)
	}

	// A malformed or missing payload degrades to the all-empty default;
	// only transport failures surface as errors.
	cls, _ := ExtractClassification(resp.Text())
	return cls, nil
}

func (g *GeminiClassifier) buildPrompt(text string) string {
	return "You are a smart finance assistant. Based on the transaction text below, " +
		"determine the most appropriate Main Category and Subcategory combination.\n\n" +
		"Transaction:\n\"" + text + "\"\n\n" +
		"Instructions:\n" +
		"1. Match the transaction to one and only one of the following " +
		"Main Category → Subcategory combinations. Evaluate them jointly, based on " +
		"overall meaning including merchant name, purpose and recognizable patterns.\n\n" +
		g.taxonomy + "\n\n" +
		"2. For mixed-type stores (drugstores and the like) prefer the combination the " +
		"transaction text implies, not the merchant name alone.\n" +
		"3. If the text looks like an internal or personal money movement between the " +
		"holder's own accounts, classify it as Banking → Self Transfer.\n" +
		"4. If the transaction does not clearly fit any allowed combination, return " +
		"empty strings. Do not invent or guess new categories.\n\n" +
		"Respond strictly in this JSON format:\n" +
		"{\n" +
		"  \"Main Category\": \"...\",\n" +
		"  \"Subcategory\": \"...\",\n" +
		"  \"Contract\": true or false,\n" +
		"  \"Contract Frequency\": \"...\",\n" +
		"  \"Excluded from Disposable Income\": true or false\n" +
		"}\n"
}

// ExtractClassification locates the first well-formed JSON object in the
// model output, which may be wrapped in code fences or surrounded by prose.
// The bool reports whether an object was found; on false the zero
// classification is returned.
func ExtractClassification(raw string) (models.Classification, bool) {
	s := strings.TrimSpace(raw)

	// Drop ``` / ```json fences if the model ignored instructions.
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return models.Classification{}, false
	}

	var cls models.Classification
	if err := json.Unmarshal([]byte(s[start:end+1]), &cls); err != nil {
		return models.Classification{}, false
	}
	return cls, true
}
