package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/octavertex/workhub/internal/dto"
	apierrors "github.com/octavertex/workhub/internal/errors"
	"github.com/octavertex/workhub/internal/middleware"
	"github.com/octavertex/workhub/internal/models"
	"github.com/octavertex/workhub/internal/services"
	"github.com/octavertex/workhub/internal/utils"
)

// LeaveHandler coordinates leave ledger HTTP handlers.
type LeaveHandler struct {
	leaveService *services.LeaveService
}

// NewLeaveHandler creates a new LeaveHandler.
func NewLeaveHandler(leaveService *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// ListTypes lists the organization's leave policies.
func (h *LeaveHandler) ListTypes(c *gin.Context) {
	orgID, ok := middleware.GetOrgID(c)
	if !ok {
		apierrors.Forbidden(c, "No organization")
		return
	}

	types, err := h.leaveService.ListTypes(orgID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	dtos := make([]dto.LeaveTypeDTO, len(types))
	for i, t := range types {
		dtos[i] = dto.ToLeaveTypeDTO(t)
	}
	c.JSON(http.StatusOK, gin.H{"leave_types": dtos})
}

// Apply submits a leave application for the caller.
func (h *LeaveHandler) Apply(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type ApplyRequest struct {
		LeaveTypeID uint64    `json:"leave_type_id" binding:"required"`
		StartDate   time.Time `json:"start_date" binding:"required"`
		EndDate     time.Time `json:"end_date" binding:"required"`
		HalfDay     bool      `json:"half_day"`
		Reason      string    `json:"reason"`
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	request, err := h.leaveService.Apply(services.ApplyInput{
		UserID:      userID,
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		HalfDay:     req.HalfDay,
		Reason:      req.Reason,
	})
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLeaveRequestDTO(*request))
}

// Decide approves or rejects a pending request.
func (h *LeaveHandler) Decide(c *gin.Context) {
	approverID, _ := middleware.GetUserID(c)

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid request ID")
		return
	}

	type DecideRequest struct {
		Outcome models.LeaveStatus `json:"outcome" binding:"required"`
		Reason  string             `json:"reason"`
	}

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	decided, err := h.leaveService.Decide(services.DecideInput{
		RequestID:  requestID,
		ApproverID: approverID,
		Outcome:    req.Outcome,
		Reason:     req.Reason,
	})
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLeaveRequestDTO(*decided))
}

// Cancel withdraws the caller's pending request.
func (h *LeaveHandler) Cancel(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid request ID")
		return
	}

	cancelled, err := h.leaveService.Cancel(requestID, userID)
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLeaveRequestDTO(*cancelled))
}

// yearParam reads the year query, defaulting to the current year.
func yearParam(c *gin.Context) int {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil || year < 2000 || year > 2200 {
		return time.Now().Year()
	}
	return year
}

// Balances lists the caller's balances for a year.
func (h *LeaveHandler) Balances(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	balances, err := h.leaveService.Balances(userID, yearParam(c))
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	dtos := make([]dto.LeaveBalanceDTO, len(balances))
	for i, b := range balances {
		dtos[i] = dto.ToLeaveBalanceDTO(b)
	}
	c.JSON(http.StatusOK, gin.H{"balances": dtos})
}

// ListRequests lists the caller's requests for a year.
func (h *LeaveHandler) ListRequests(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	requests, err := h.leaveService.ListRequests(userID, yearParam(c))
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	dtos := make([]dto.LeaveRequestDTO, len(requests))
	for i, r := range requests {
		dtos[i] = dto.ToLeaveRequestDTO(r)
	}
	c.JSON(http.StatusOK, gin.H{"requests": dtos})
}

// ListPending lists the organization's pending requests for review.
func (h *LeaveHandler) ListPending(c *gin.Context) {
	orgID, ok := middleware.GetOrgID(c)
	if !ok {
		apierrors.Forbidden(c, "No organization")
		return
	}

	params := utils.GetPaginationParams(c)
	requests, total, err := h.leaveService.ListPending(orgID, params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToLeaveRequestListResponse(requests, params.Page, params.Limit, total))
}

// Rollover seeds next-year balances for the organization.
func (h *LeaveHandler) Rollover(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)
	orgID, ok := middleware.GetOrgID(c)
	if !ok {
		apierrors.Forbidden(c, "No organization")
		return
	}

	type RolloverRequest struct {
		FromYear int `json:"from_year" binding:"required"`
	}

	var req RolloverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.leaveService.Rollover(actorID, orgID, req.FromYear)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"balances_created": created})
}

func respondLeaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrHalfDayRange),
		errors.Is(err, services.ErrRangeSpansYears),
		errors.Is(err, services.ErrReasonRequired),
		errors.Is(err, services.ErrInvalidOutcome):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInsufficientBalance):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrAlreadyDecided):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotRequestOwner),
		errors.Is(err, services.ErrCannotApproveOwn),
		errors.Is(err, services.ErrApproverRank):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrLeaveTypeNotFound),
		errors.Is(err, services.ErrLeaveRequestNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
