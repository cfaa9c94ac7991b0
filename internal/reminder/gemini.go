package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"psharma/arledger/internal/classifier"
	"psharma/arledger/internal/currencyutils"
	"psharma/arledger/internal/logging"
	"psharma/arledger/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiGenerator drafts reminder text with the Gemini API. It only ever
// receives the finalized party data; a failed call surfaces as an error the
// caller can fall back from (typically to the TemplateGenerator).
type GeminiGenerator struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	logger  logging.Logger
}

// NewGeminiGenerator creates a Gemini-backed generator.
func NewGeminiGenerator(ctx context.Context, apiKey, model string, timeoutSeconds int, logger logging.Logger) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client:  client,
		model:   client.GenerativeModel(model),
		timeout: time.Duration(timeoutSeconds) * time.Second,
		logger:  logger,
	}, nil
}

// Close releases the underlying API client.
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// Generate asks the model for a short, polite reminder message.
func (g *GeminiGenerator) Generate(ctx context.Context, party *models.Party, cls *classifier.Classifier) (string, error) {
	if party == nil {
		return "", fmt.Errorf("no party supplied")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := g.buildPrompt(party, cls)

	g.logger.Debug("Requesting reminder text from Gemini",
		logging.Field{Key: "party", Value: party.PartyName})

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	text := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return strings.TrimSpace(text), nil
}

func (g *GeminiGenerator) buildPrompt(party *models.Party, cls *classifier.Classifier) string {
	var lines []string
	for _, bill := range party.Bills {
		if !bill.IsActive() || !bill.BillAmt.IsPositive() {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s (%s), dated %s, amount %s, %d days overdue",
			bill.DisplayNo(), cls.Company(bill.BillNo), bill.BillDate,
			currencyutils.FormatAmount(bill.BillAmt), bill.Days))
	}

	return fmt.Sprintf(`Write a short, polite payment reminder message for a customer.

Customer: %s
Outstanding bills:
%s
Total outstanding: %s

Keep it under 100 words, friendly but firm, suitable for a text message.
Do not invent any amounts or dates beyond those listed.`,
		strings.TrimSpace(party.PartyName),
		strings.Join(lines, "\n"),
		currencyutils.FormatAmount(party.BalanceDebit))
}
