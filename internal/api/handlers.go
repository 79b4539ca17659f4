package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/tracker"
)

// Service is the subset of the tracker the API needs.
type Service interface {
	CreateHabit(owner string, in tracker.HabitInput) (models.Habit, error)
	ListHabits(owner string) ([]models.Habit, error)
	HabitDetail(owner, id string) (tracker.Detail, error)
	UpdateHabit(owner, id string, patch tracker.HabitPatch) (tracker.UpdateResult, error)
	DeleteHabit(owner, id string) error
	SubmitReport(owner, habitID string, status models.Status, comment string) (tracker.SubmitResult, error)
}

type HabitHandler struct {
	svc Service
}

func NewHabitHandler(svc Service) *HabitHandler {
	return &HabitHandler{svc: svc}
}

type createHabitRequest struct {
	Title     string `json:"title"`
	Purpose   string `json:"purpose"`
	Cadence   string `json:"cadence"`
	Frequency int    `json:"frequency"`
}

type updateHabitRequest struct {
	Title     *string `json:"title"`
	Purpose   *string `json:"purpose"`
	Cadence   *string `json:"cadence"`
	Frequency *int    `json:"frequency"`
}

type submitReportRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return false
	}
	return true
}

func (h *HabitHandler) List(c *gin.Context) {
	habits, err := h.svc.ListHabits(ownerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

func (h *HabitHandler) Create(c *gin.Context) {
	var req createHabitRequest
	if !bind(c, &req) {
		return
	}
	cadence, err := models.ParseCadence(req.Cadence)
	if err != nil {
		respondError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	habit, err := h.svc.CreateHabit(ownerFrom(c), tracker.HabitInput{
		Title:     req.Title,
		Purpose:   req.Purpose,
		Cadence:   cadence,
		Frequency: req.Frequency,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, habit)
}

// Get returns weekly habits with their blocks and daily habits with a flat
// report list.
func (h *HabitHandler) Get(c *gin.Context) {
	d, err := h.svc.HabitDetail(ownerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{"habit": d.Habit, "reported_today": d.ReportedToday}
	switch d.Habit.Cadence {
	case models.CadenceWeekly:
		blocks := d.Blocks
		if blocks == nil {
			blocks = []models.Block{}
		}
		body["blocks"] = blocks
	default:
		body["reports"] = d.Reports
	}
	c.JSON(http.StatusOK, body)
}

func (h *HabitHandler) Update(c *gin.Context) {
	var req updateHabitRequest
	if !bind(c, &req) {
		return
	}

	patch := tracker.HabitPatch{Title: req.Title, Purpose: req.Purpose, Frequency: req.Frequency}
	if req.Cadence != nil {
		cadence, err := models.ParseCadence(*req.Cadence)
		if err != nil {
			respondError(c, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
		patch.Cadence = &cadence
	}

	res, err := h.svc.UpdateHabit(ownerFrom(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteHabit(ownerFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HabitHandler) SubmitReport(c *gin.Context) {
	var req submitReportRequest
	if !bind(c, &req) {
		return
	}
	status, err := models.ParseStatus(req.Status)
	if err != nil {
		respondError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	res, err := h.svc.SubmitReport(ownerFrom(c), c.Param("id"), status, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
