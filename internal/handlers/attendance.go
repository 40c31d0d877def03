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
)

// AttendanceHandler coordinates attendance HTTP handlers.
type AttendanceHandler struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// ClockIn opens today's attendance record for the caller.
func (h *AttendanceHandler) ClockIn(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	orgID, ok := middleware.GetOrgID(c)
	if !ok {
		apierrors.Forbidden(c, "No organization")
		return
	}

	record, err := h.attendanceService.ClockIn(userID, orgID, time.Now())
	if err != nil {
		respondAttendanceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAttendanceRecordDTO(*record))
}

// ClockOut closes today's record.
func (h *AttendanceHandler) ClockOut(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	orgID, ok := middleware.GetOrgID(c)
	if !ok {
		apierrors.Forbidden(c, "No organization")
		return
	}

	record, err := h.attendanceService.ClockOut(userID, orgID, time.Now())
	if err != nil {
		respondAttendanceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAttendanceRecordDTO(*record))
}

// StartBreak begins a break.
func (h *AttendanceHandler) StartBreak(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	record, err := h.attendanceService.StartBreak(userID, time.Now())
	if err != nil {
		respondAttendanceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAttendanceRecordDTO(*record))
}

// EndBreak closes the open break.
func (h *AttendanceHandler) EndBreak(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	record, err := h.attendanceService.EndBreak(userID, time.Now())
	if err != nil {
		respondAttendanceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAttendanceRecordDTO(*record))
}

// Today returns the caller's record for today, if any.
func (h *AttendanceHandler) Today(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	record, err := h.attendanceService.Today(userID, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrNotClockedIn) {
			c.JSON(http.StatusOK, gin.H{"record": nil})
			return
		}
		respondAttendanceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"record": dto.ToAttendanceRecordDTO(*record)})
}

func monthParams(c *gin.Context) (int, time.Month) {
	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil || year < 2000 || year > 2200 {
		year = now.Year()
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		month = int(now.Month())
	}
	return year, time.Month(month)
}

// ListMonth lists the caller's records for a calendar month.
func (h *AttendanceHandler) ListMonth(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	year, month := monthParams(c)

	records, err := h.attendanceService.ListMonth(userID, year, month)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": dto.ToAttendanceRecordDTOs(records)})
}

// Summary returns the caller's monthly attendance summary.
func (h *AttendanceHandler) Summary(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	year, month := monthParams(c)

	summary, err := h.attendanceService.Summarize(userID, year, month)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// UpdateNotes annotates one of the caller's own records.
func (h *AttendanceHandler) UpdateNotes(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	recordID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid record ID")
		return
	}

	var req struct {
		Notes string `json:"notes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	record, err := h.attendanceService.UpdateNotes(userID, recordID, req.Notes, time.Now())
	if err != nil {
		respondAttendanceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAttendanceRecordDTO(*record))
}

// Override applies an administrative correction to a record.
func (h *AttendanceHandler) Override(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)

	recordID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid record ID")
		return
	}

	type OverrideRequest struct {
		Status   *models.AttendanceStatus `json:"status"`
		ClockIn  *time.Time               `json:"clock_in"`
		ClockOut *time.Time               `json:"clock_out"`
		Notes    *string                  `json:"notes"`
		Lock     *bool                    `json:"lock"`
	}

	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	record, err := h.attendanceService.Override(services.OverrideInput{
		RecordID: recordID,
		ActorID:  actorID,
		Status:   req.Status,
		ClockIn:  req.ClockIn,
		ClockOut: req.ClockOut,
		Notes:    req.Notes,
		Lock:     req.Lock,
	})
	if err != nil {
		respondAttendanceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAttendanceRecordDTO(*record))
}

func respondAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAlreadyClockedIn),
		errors.Is(err, services.ErrAlreadyClockedOut),
		errors.Is(err, services.ErrAlreadyOnBreak),
		errors.Is(err, services.ErrNotOnBreak),
		errors.Is(err, services.ErrRecordFinalized):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotClockedIn):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrRecordNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
