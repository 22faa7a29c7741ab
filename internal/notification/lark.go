package notification

import (
	"context"
	"encoding/json"
	"fmt"

	lark "github.com/larksuite/oapi-sdk-go/v3"
	larkcore "github.com/larksuite/oapi-sdk-go/v3/core"
	larkim "github.com/larksuite/oapi-sdk-go/v3/service/im/v1"
	"go.uber.org/zap"

	"github.com/clearbenefit/claims-engine/internal/application/port"
	"github.com/clearbenefit/claims-engine/internal/domain/entity"
)

// Config holds Lark notification configuration
type Config struct {
	Enabled       bool
	AppID         string
	AppSecret     string
	ReceiveIDType string // open_id, chat_id or email
	ReceiveID     string // channel receiving decision notifications
}

// LarkNotifier announces claim decisions to a Lark channel
type LarkNotifier struct {
	client        *lark.Client
	receiveIDType string
	receiveID     string
	logger        *zap.Logger
}

// NewLarkNotifier creates a Lark-backed decision notifier
func NewLarkNotifier(cfg Config, logger *zap.Logger) *LarkNotifier {
	client := lark.NewClient(cfg.AppID, cfg.AppSecret,
		lark.WithLogLevel(larkcore.LogLevelInfo),
		lark.WithEnableTokenCache(true),
	)

	return &LarkNotifier{
		client:        client,
		receiveIDType: cfg.ReceiveIDType,
		receiveID:     cfg.ReceiveID,
		logger:        logger,
	}
}

// NotifyDecision sends a text message describing the decision
func (n *LarkNotifier) NotifyDecision(ctx context.Context, claim *entity.Claim, action, comment string) error {
	if n.receiveID == "" {
		return fmt.Errorf("receive ID not configured")
	}

	content, err := textContent(decisionText(claim, action, comment))
	if err != nil {
		return fmt.Errorf("failed to build message content: %w", err)
	}

	req := larkim.NewCreateMessageReqBuilder().
		ReceiveIdType(n.receiveIDType).
		Body(larkim.NewCreateMessageReqBodyBuilder().
			ReceiveId(n.receiveID).
			MsgType("text").
			Content(content).
			Build()).
		Build()

	resp, err := n.client.Im.Message.Create(ctx, req)
	if err != nil {
		n.logger.Error("Failed to send decision notification",
			zap.String("claim_number", claim.ClaimNumber),
			zap.Error(err))
		return fmt.Errorf("failed to send message: %w", err)
	}

	if !resp.Success() {
		n.logger.Error("Lark API returned failure",
			zap.String("claim_number", claim.ClaimNumber),
			zap.Int("code", resp.Code),
			zap.String("msg", resp.Msg))
		return fmt.Errorf("lark API error: code=%d, msg=%s", resp.Code, resp.Msg)
	}

	n.logger.Info("Decision notification sent",
		zap.String("claim_number", claim.ClaimNumber),
		zap.String("action", action))
	return nil
}

func decisionText(claim *entity.Claim, action, comment string) string {
	var text string
	switch action {
	case entity.ActionApprove:
		text = fmt.Sprintf("Claim %s approved: %.2f of %.2f payable, patient responsibility %.2f.",
			claim.ClaimNumber, claim.ApprovedAmount, claim.RequestedAmount, claim.PatientCoPay)
	case entity.ActionReject:
		text = fmt.Sprintf("Claim %s rejected.", claim.ClaimNumber)
	case entity.ActionSettle:
		text = fmt.Sprintf("Claim %s settled, payment reference %s.",
			claim.ClaimNumber, claim.PaymentReference)
	default:
		text = fmt.Sprintf("Claim %s is now %s.", claim.ClaimNumber, claim.Status)
	}
	if comment != "" {
		text += " Note: " + comment
	}
	return text
}

// textContent builds the Lark text message payload
func textContent(text string) (string, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// NoopNotifier is used when notifications are disabled
type NoopNotifier struct{}

// NotifyDecision does nothing
func (NoopNotifier) NotifyDecision(context.Context, *entity.Claim, string, string) error {
	return nil
}

// Verify interface compliance
var (
	_ port.DecisionNotifier = (*LarkNotifier)(nil)
	_ port.DecisionNotifier = NoopNotifier{}
)
