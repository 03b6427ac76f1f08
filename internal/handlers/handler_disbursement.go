package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/felix-harvey/microfinancial-sub002/internal/apperrors"
	portssvc "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/services"
	"github.com/felix-harvey/microfinancial-sub002/internal/dto"
	"github.com/felix-harvey/microfinancial-sub002/internal/middleware"
)

// disbursementHandler handles HTTP requests related to disbursement requests.
type disbursementHandler struct {
	disbursementService portssvc.DisbursementSvcFacade
	approvalService     portssvc.ApprovalSvc
}

// newDisbursementHandler creates a new disbursementHandler.
func newDisbursementHandler(ds portssvc.DisbursementSvcFacade, as portssvc.ApprovalSvc) *disbursementHandler {
	return &disbursementHandler{
		disbursementService: ds,
		approvalService:     as,
	}
}

// RegisterDisbursementRoutes registers routes related to disbursement requests.
func RegisterDisbursementRoutes(rg *gin.RouterGroup, disbursementService portssvc.DisbursementSvcFacade, approvalService portssvc.ApprovalSvc) {
	h := newDisbursementHandler(disbursementService, approvalService)

	disbursements := rg.Group("/disbursements")
	{
		disbursements.POST("", h.createRequest)
		disbursements.GET("", h.listRequests)
		disbursements.GET("/:requestID", h.getRequest)
		disbursements.POST("/:requestID/approve", h.approveRequest)
		disbursements.POST("/:requestID/reject", h.rejectRequest)
	}
}

// createRequest godoc
// @Summary File a disbursement request
// @Description Creates a new disbursement request in PENDING status
// @Tags disbursements
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateDisbursementRequest true "Disbursement request details"
// @Success 201 {object} dto.DisbursementResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Linked budget proposal not found"
// @Failure 409 {object} map[string]string "Request ID already exists"
// @Failure 500 {object} map[string]string "Failed to create disbursement request"
// @Security BearerAuth
// @Router /disbursements [post]
func (h *disbursementHandler) createRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDisbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID), slog.String("request_id", req.RequestID))
	logger.Info("Received disbursement request", slog.String("department", req.Department))

	request, err := h.disbursementService.CreateRequest(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating disbursement request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate disbursement request ID", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Linked budget proposal not found", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create disbursement request in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create disbursement request"})
		}
		return
	}

	logger.Info("Disbursement request created successfully", slog.String("disbursement_id", request.DisbursementID))
	c.JSON(http.StatusCreated, dto.ToDisbursementResponse(request))
}

// getRequest godoc
// @Summary Get a disbursement request
// @Description Retrieves a disbursement request by its business request ID
// @Tags disbursements
// @Produce  json
// @Param   requestID path string true "Business request ID"
// @Success 200 {object} dto.DisbursementResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Disbursement request not found"
// @Failure 500 {object} map[string]string "Failed to retrieve disbursement request"
// @Security BearerAuth
// @Router /disbursements/{requestID} [get]
func (h *disbursementHandler) getRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	request, err := h.disbursementService.GetRequest(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Disbursement request not found", slog.String("request_id", requestID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Disbursement request not found"})
			return
		}
		logger.Error("Failed to get disbursement request from service", slog.String("error", err.Error()), slog.String("request_id", requestID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve disbursement request"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDisbursementResponse(request))
}

// listRequests godoc
// @Summary List disbursement requests
// @Description Retrieves a paginated list of disbursement requests, optionally filtered by status
// @Tags disbursements
// @Produce  json
// @Param   status query string false "Filter by status" Enums(PENDING, APPROVED, REJECTED)
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.DisbursementResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list disbursement requests"
// @Security BearerAuth
// @Router /disbursements [get]
func (h *disbursementHandler) listRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListDisbursementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListRequests", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	requests, err := h.disbursementService.ListRequests(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list disbursement requests from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list disbursement requests"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListDisbursementResponse(requests))
}

// approveRequest godoc
// @Summary Approve a disbursement request
// @Description Approves a pending request, posting the journal entry and consuming budget atomically
// @Tags disbursements
// @Produce  json
// @Param   requestID path string true "Business request ID"
// @Success 200 {object} dto.ApprovalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Disbursement request not found"
// @Failure 409 {object} map[string]string "Request already decided"
// @Failure 422 {object} map[string]string "Insufficient budget remaining"
// @Failure 500 {object} map[string]string "Failed to approve disbursement request"
// @Security BearerAuth
// @Router /disbursements/{requestID}/approve [post]
func (h *disbursementHandler) approveRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	approverID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Approver user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("request_id", requestID), slog.String("approver_id", approverID))
	logger.Info("Received approval request")

	request, entry, err := h.approvalService.Approve(c.Request.Context(), requestID, approverID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Disbursement request not found for approval")
			c.JSON(http.StatusNotFound, gin.H{"error": "Disbursement request not found"})
		case errors.Is(err, apperrors.ErrRequestNotPending):
			logger.Warn("Disbursement request already decided", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "Disbursement request already decided"})
		case errors.Is(err, apperrors.ErrInsufficientBudget):
			logger.Warn("Insufficient budget for approval", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error approving request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to approve disbursement request in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve disbursement request"})
		}
		return
	}

	logger.Info("Disbursement request approved", slog.String("journal_id", entry.JournalID), slog.String("entry_ref", entry.EntryRef))
	c.JSON(http.StatusOK, dto.ApprovalResponse{
		RequestID:    request.RequestID,
		Status:       string(request.Status),
		DateApproved: *request.DateApproved,
		ApprovedBy:   *request.ApprovedBy,
		JournalID:    entry.JournalID,
		EntryRef:     entry.EntryRef,
	})
}

// rejectRequest godoc
// @Summary Reject a disbursement request
// @Description Rejects a pending request with a reason; no financial records are written
// @Tags disbursements
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Business request ID"
// @Param   rejection body dto.RejectDisbursementRequest true "Rejection reason"
// @Success 200 {object} dto.DisbursementResponse
// @Failure 400 {object} map[string]string "Missing rejection reason"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Disbursement request not found"
// @Failure 409 {object} map[string]string "Request already decided"
// @Failure 500 {object} map[string]string "Failed to reject disbursement request"
// @Security BearerAuth
// @Router /disbursements/{requestID}/reject [post]
func (h *disbursementHandler) rejectRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	var req dto.RejectDisbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RejectRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	approverID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Approver user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("request_id", requestID), slog.String("approver_id", approverID))
	logger.Info("Received rejection request")

	request, err := h.approvalService.Reject(c.Request.Context(), requestID, approverID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Disbursement request not found for rejection")
			c.JSON(http.StatusNotFound, gin.H{"error": "Disbursement request not found"})
		case errors.Is(err, apperrors.ErrRequestNotPending):
			logger.Warn("Disbursement request already decided", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "Disbursement request already decided"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error rejecting request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reject disbursement request in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject disbursement request"})
		}
		return
	}

	logger.Info("Disbursement request rejected")
	c.JSON(http.StatusOK, dto.ToDisbursementResponse(request))
}
