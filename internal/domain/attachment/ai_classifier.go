package attachment

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/clearbenefit/claims-engine/internal/domain/entity"
)

const classifierSystemPrompt = `You classify medical insurance claim documents.
Respond with exactly one of these category labels and nothing else:
MEDICAL_REPORT, ITEMIZED_BILL, PRESCRIPTION, REFERRAL_LETTER, PRE_APPROVAL, RECEIPT, ID_DOCUMENT, OTHER`

// AIClassifier asks a chat completion model to categorize a document from
// its file name and metadata. Any API failure or unrecognized label falls
// back to the keyword classifier, so classification never blocks submission.
type AIClassifier struct {
	client   *openai.Client
	model    string
	fallback Classifier
	logger   *zap.Logger
}

// NewAIClassifier creates an AI-backed classifier
func NewAIClassifier(apiKey, model string, fallback Classifier, logger *zap.Logger) *AIClassifier {
	return &AIClassifier{
		client:   openai.NewClient(apiKey),
		model:    model,
		fallback: fallback,
		logger:   logger,
	}
}

// Classify sends the attachment description to the model and parses the
// returned label
func (c *AIClassifier) Classify(ctx context.Context, att *entity.Attachment) Category {
	prompt := fmt.Sprintf("File name: %s\nContent type: %s\nSize: %d bytes",
		att.FileName, att.ContentType, att.FileSize)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		MaxTokens:   10,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifierSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		c.logger.Warn("AI classification failed, falling back",
			zap.String("file_name", att.FileName),
			zap.Error(err))
		return c.fallback.Classify(ctx, att)
	}

	if len(resp.Choices) == 0 {
		return c.fallback.Classify(ctx, att)
	}

	label := Category(strings.TrimSpace(strings.ToUpper(resp.Choices[0].Message.Content)))
	if !knownCategories[label] {
		c.logger.Warn("AI returned unknown category label, falling back",
			zap.String("file_name", att.FileName),
			zap.String("label", string(label)))
		return c.fallback.Classify(ctx, att)
	}
	return label
}

var knownCategories = map[Category]bool{
	CategoryMedicalReport:  true,
	CategoryItemizedBill:   true,
	CategoryPrescription:   true,
	CategoryReferralLetter: true,
	CategoryPreApproval:    true,
	CategoryReceipt:        true,
	CategoryIDDocument:     true,
	CategoryOther:          true,
}
