package attachment

import (
	"context"
	"strings"

	"github.com/clearbenefit/claims-engine/internal/domain/entity"
)

// Category classifies a submitted document
type Category string

const (
	CategoryMedicalReport  Category = "MEDICAL_REPORT"
	CategoryItemizedBill   Category = "ITEMIZED_BILL"
	CategoryPrescription   Category = "PRESCRIPTION"
	CategoryReferralLetter Category = "REFERRAL_LETTER"
	CategoryPreApproval    Category = "PRE_APPROVAL"
	CategoryReceipt        Category = "RECEIPT"
	CategoryIDDocument     Category = "ID_DOCUMENT"
	CategoryOther          Category = "OTHER"
)

// Classifier assigns a category to a submitted attachment. Implementations
// range from filename heuristics to content inspection; the gate only
// depends on this interface so the mechanism can be swapped freely.
type Classifier interface {
	Classify(ctx context.Context, att *entity.Attachment) Category
}

// keyword table shared by the filename and content matchers. Order matters:
// more specific terms come before generic ones ("discharge summary" is a
// medical report even when the filename also says "bill of items").
var keywordCategories = []struct {
	keyword  string
	category Category
}{
	{"pre-approval", CategoryPreApproval},
	{"preapproval", CategoryPreApproval},
	{"pre_approval", CategoryPreApproval},
	{"authorization", CategoryPreApproval},
	{"discharge", CategoryMedicalReport},
	{"medical report", CategoryMedicalReport},
	{"medical_report", CategoryMedicalReport},
	{"diagnosis", CategoryMedicalReport},
	{"lab result", CategoryMedicalReport},
	{"lab_result", CategoryMedicalReport},
	{"report", CategoryMedicalReport},
	{"itemized", CategoryItemizedBill},
	{"invoice", CategoryItemizedBill},
	{"bill", CategoryItemizedBill},
	{"prescription", CategoryPrescription},
	{"rx", CategoryPrescription},
	{"referral", CategoryReferralLetter},
	{"receipt", CategoryReceipt},
	{"payment proof", CategoryReceipt},
	{"passport", CategoryIDDocument},
	{"national id", CategoryIDDocument},
	{"id card", CategoryIDDocument},
	{"id_card", CategoryIDDocument},
}

// KeywordClassifier is the default classifier: a keyword matcher over the
// file name, falling back to OTHER. Guessable and brittle, which is why it
// sits behind the Classifier interface.
type KeywordClassifier struct{}

// NewKeywordClassifier creates the default filename classifier
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Classify matches known keywords against the lowercased file name
func (c *KeywordClassifier) Classify(_ context.Context, att *entity.Attachment) Category {
	return matchKeywords(att.FileName)
}

func matchKeywords(text string) Category {
	lowered := strings.ToLower(text)
	for _, kc := range keywordCategories {
		if strings.Contains(lowered, kc.keyword) {
			return kc.category
		}
	}
	return CategoryOther
}
