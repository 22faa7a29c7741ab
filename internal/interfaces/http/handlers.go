package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clearbenefit/claims-engine/internal/application/port"
	"github.com/clearbenefit/claims-engine/internal/application/service"
	"github.com/clearbenefit/claims-engine/internal/domain/workflow"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	claimService       service.ClaimService
	eligibilityService service.EligibilityService
	logger             Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	claimService service.ClaimService,
	eligibilityService service.EligibilityService,
	logger Logger,
) *Handlers {
	return &Handlers{
		claimService:       claimService,
		eligibilityService: eligibilityService,
		logger:             logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// CreateClaimRequest is the payload for opening a claim
type CreateClaimRequest struct {
	MemberID        int64                   `json:"member_id" binding:"required"`
	PolicyID        int64                   `json:"policy_id"`
	ClaimType       string                  `json:"claim_type" binding:"required"`
	ProviderName    string                  `json:"provider_name" binding:"required"`
	ServiceDate     time.Time               `json:"service_date" binding:"required"`
	RequestedAmount float64                 `json:"requested_amount" binding:"required"`
	PreApprovalRef  string                  `json:"pre_approval_ref"`
	Lines           []ClaimLineRequest      `json:"lines"`
	Attachments     []AttachmentFileRequest `json:"attachments"`
}

// ClaimLineRequest is one billed service in a create request
type ClaimLineRequest struct {
	ServiceCode string  `json:"service_code" binding:"required"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity" binding:"required"`
	UnitPrice   float64 `json:"unit_price" binding:"required"`
}

// AttachmentFileRequest is one document reference in a create request
type AttachmentFileRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	FilePath    string `json:"file_path"`
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size"`
}

// TransitionRequest is the payload for a generic status transition
type TransitionRequest struct {
	Target  string `json:"target" binding:"required"`
	Comment string `json:"comment"`
}

// ApproveRequest is the payload for approving a claim
type ApproveRequest struct {
	ApprovedAmount       float64 `json:"approved_amount"`
	UseSystemCalculation bool    `json:"use_system_calculation"`
	Notes                string  `json:"notes"`
}

// RejectRequest is the payload for rejecting a claim
type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// SettleRequest is the payload for settling a claim
type SettleRequest struct {
	PaymentReference string `json:"payment_reference" binding:"required"`
	Notes            string `json:"notes"`
}

// EligibilityRequest is the payload for an eligibility check
type EligibilityRequest struct {
	MemberID     int64     `json:"member_id" binding:"required"`
	ServiceDate  time.Time `json:"service_date" binding:"required"`
	PolicyID     int64     `json:"policy_id"`
	ProviderName string    `json:"provider_name"`
}

// TransitionsResponse lists what the actor may do with a claim
type TransitionsResponse struct {
	Status      string   `json:"status"`
	Transitions []string `json:"transitions"`
	Editable    bool     `json:"editable"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// CreateClaim handles POST /api/v1/claims
func (h *Handlers) CreateClaim(c *gin.Context) {
	var req CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	in := service.CreateClaimInput{
		MemberID:        req.MemberID,
		PolicyID:        req.PolicyID,
		ClaimType:       req.ClaimType,
		ProviderName:    req.ProviderName,
		ServiceDate:     req.ServiceDate,
		RequestedAmount: req.RequestedAmount,
		PreApprovalRef:  req.PreApprovalRef,
	}
	for _, l := range req.Lines {
		in.Lines = append(in.Lines, service.ClaimLineInput{
			ServiceCode: l.ServiceCode,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}
	for _, a := range req.Attachments {
		in.Attachments = append(in.Attachments, service.AttachmentInput{
			FileName:    a.FileName,
			FilePath:    a.FilePath,
			ContentType: a.ContentType,
			FileSize:    a.FileSize,
		})
	}

	claim, err := h.claimService.CreateClaim(c.Request.Context(), in, h.actor(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: claim})
}

// ListClaims handles GET /api/v1/claims
func (h *Handlers) ListClaims(c *gin.Context) {
	memberID, err := strconv.ParseInt(c.Query("member_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid member_id"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	claims, err := h.claimService.ListClaims(c.Request.Context(), memberID, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: claims})
}

// GetClaim handles GET /api/v1/claims/:id
func (h *Handlers) GetClaim(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	claim, err := h.claimService.GetClaim(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: claim})
}

// SubmitClaim handles POST /api/v1/claims/:id/submit
func (h *Handlers) SubmitClaim(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	claim, err := h.claimService.SubmitClaim(c.Request.Context(), id, h.actor(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: claim})
}

// TransitionClaim handles POST /api/v1/claims/:id/transition
func (h *Handlers) TransitionClaim(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	claim, err := h.claimService.TransitionStatus(c.Request.Context(), id,
		workflow.Status(req.Target), req.Comment, h.actor(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: claim})
}

// ApproveClaim handles POST /api/v1/claims/:id/approve
func (h *Handlers) ApproveClaim(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	claim, err := h.claimService.ApproveClaim(c.Request.Context(), id,
		req.ApprovedAmount, req.UseSystemCalculation, req.Notes, h.actor(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: claim})
}

// RejectClaim handles POST /api/v1/claims/:id/reject
func (h *Handlers) RejectClaim(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	claim, err := h.claimService.RejectClaim(c.Request.Context(), id, req.Reason, h.actor(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: claim})
}

// SettleClaim handles POST /api/v1/claims/:id/settle
func (h *Handlers) SettleClaim(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	var req SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	claim, err := h.claimService.SettleClaim(c.Request.Context(), id,
		req.PaymentReference, req.Notes, h.actor(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: claim})
}

// DeactivateClaim handles DELETE /api/v1/claims/:id
func (h *Handlers) DeactivateClaim(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	if err := h.claimService.DeactivateClaim(c.Request.Context(), id, h.actor(c)); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// AvailableTransitions handles GET /api/v1/claims/:id/transitions
func (h *Handlers) AvailableTransitions(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	claim, err := h.claimService.GetClaim(ctx, id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	targets, err := h.claimService.AvailableTransitions(ctx, id, h.actor(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	editable, err := h.claimService.CanEdit(ctx, id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := TransitionsResponse{Status: claim.Status, Editable: editable, Transitions: []string{}}
	for _, t := range targets {
		resp.Transitions = append(resp.Transitions, t.String())
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: resp})
}

// CostBreakdown handles GET /api/v1/claims/:id/breakdown
func (h *Handlers) CostBreakdown(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	bd, err := h.claimService.CostBreakdown(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: bd})
}

// AuditHistory handles GET /api/v1/claims/:id/audit
func (h *Handlers) AuditHistory(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	entries, err := h.claimService.AuditHistory(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: entries})
}

// CheckEligibility handles POST /api/v1/eligibility/check
func (h *Handlers) CheckEligibility(c *gin.Context) {
	var req EligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	result, err := h.eligibilityService.Check(c.Request.Context(), service.CheckInput{
		MemberID:     req.MemberID,
		ServiceDate:  req.ServiceDate,
		PolicyID:     req.PolicyID,
		ProviderName: req.ProviderName,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: result})
}

func (h *Handlers) claimID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid claim id"})
		return 0, false
	}
	return id, true
}

func (h *Handlers) actor(c *gin.Context) workflow.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(workflow.Actor); ok {
			return actor
		}
	}
	return workflow.Actor{}
}

func (h *Handlers) badRequest(c *gin.Context, err error) {
	h.logger.Error("Invalid request payload", "error", err)
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request payload"})
}

// writeError maps application errors onto HTTP status codes
func (h *Handlers) writeError(c *gin.Context, err error) {
	var (
		valErr   *service.ValidationError
		notFound *service.NotFoundError
		bizErr   *service.BusinessRuleError
		attErr   *service.AttachmentError
		stateErr *workflow.StateTransitionError
	)

	switch {
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: valErr.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Error: notFound.Error()})
	case errors.As(err, &attErr):
		c.JSON(http.StatusUnprocessableEntity, Response{
			Success: false,
			Data:    attErr.Result,
			Error:   attErr.Error(),
		})
	case errors.As(err, &stateErr):
		status := http.StatusConflict
		if errors.Is(err, workflow.ErrUnauthorizedRole) {
			status = http.StatusForbidden
		}
		c.JSON(status, Response{Success: false, Error: stateErr.Error()})
	case errors.As(err, &bizErr):
		c.JSON(http.StatusUnprocessableEntity, Response{Success: false, Error: bizErr.Error()})
	case errors.Is(err, port.ErrVersionConflict):
		c.JSON(http.StatusConflict, Response{Success: false, Error: "claim was modified concurrently, retry"})
	default:
		h.logger.Error("Request failed", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "internal error"})
	}
}
