package attachment

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"

	"github.com/clearbenefit/claims-engine/internal/domain/entity"
)

// maxContentPages caps how much of a document is scanned; the category is
// almost always determined by the first page.
const maxContentPages = 3

// ContentClassifier classifies PDF attachments by their extracted text
// rather than their file name. Non-PDF files and extraction failures fall
// back to the filename classifier, so it never refuses to classify.
type ContentClassifier struct {
	fallback Classifier
	logger   *zap.Logger
}

// NewContentClassifier creates a content-based classifier with the given
// fallback for files whose text cannot be read
func NewContentClassifier(fallback Classifier, logger *zap.Logger) *ContentClassifier {
	return &ContentClassifier{
		fallback: fallback,
		logger:   logger,
	}
}

// Classify extracts text from PDF attachments and matches the keyword table
// against it; everything else is delegated to the fallback
func (c *ContentClassifier) Classify(ctx context.Context, att *entity.Attachment) Category {
	if strings.ToLower(filepath.Ext(att.FileName)) != ".pdf" || att.FilePath == "" {
		return c.fallback.Classify(ctx, att)
	}

	text, err := c.extractText(att.FilePath)
	if err != nil {
		c.logger.Warn("Failed to extract attachment text, falling back to filename",
			zap.String("file_name", att.FileName),
			zap.Error(err))
		return c.fallback.Classify(ctx, att)
	}

	if category := matchKeywords(text); category != CategoryOther {
		return category
	}
	return c.fallback.Classify(ctx, att)
}

// extractText reads the text layer of the first pages of a PDF
func (c *ContentClassifier) extractText(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	pages := doc.NumPage()
	if pages > maxContentPages {
		pages = maxContentPages
	}

	var sb strings.Builder
	for i := 0; i < pages; i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", err
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
