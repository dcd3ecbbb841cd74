package handlers

import (
	"net/http"
	"strconv"
	"time"

	"mikkoo/internal/app"
	"mikkoo/internal/domain/posting"
	"mikkoo/internal/domain/schedule"
	"mikkoo/internal/http/middleware"
	"mikkoo/internal/http/response"
)

type PostingHandler struct {
	postings *app.PostingService
}

func NewPostingHandler(postings *app.PostingService) *PostingHandler {
	return &PostingHandler{postings: postings}
}

type createPostingRequest struct {
	Service           string `json:"service"`
	Description       string `json:"description"`
	Quantity          int    `json:"quantity"`
	ScheduleType      string `json:"schedule_type"`
	StartDate         string `json:"start_date"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	Frequency         string `json:"frequency"`
	Interval          int    `json:"interval"`
	DaysOfWeek        []int  `json:"days_of_week"`
	RecurrenceEndDate string `json:"recurrence_end_date"`
}

func (h *PostingHandler) Create(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req createPostingRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	sched, err := scheduleFromRequest(req)
	if err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.postings.Create(r.Context(), posting.Posting{
		RequesterID: requesterID,
		Service:     req.Service,
		Description: req.Description,
		Quantity:    req.Quantity,
		Schedule:    sched,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *PostingHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	items, err := h.postings.ListOpen(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *PostingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.postings.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *PostingHandler) ListByRequester(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.postings.ListByRequester(r.Context(), requesterID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *PostingHandler) Close(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	closed, err := h.postings.Close(r.Context(), id, requesterID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, closed)
}

func scheduleFromRequest(req createPostingRequest) (schedule.Schedule, error) {
	sched := schedule.Schedule{
		Type:       schedule.Type(req.ScheduleType),
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Frequency:  schedule.Frequency(req.Frequency),
		Interval:   req.Interval,
		DaysOfWeek: req.DaysOfWeek,
	}
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return schedule.Schedule{}, validationError("start_date", "start_date must be YYYY-MM-DD")
		}
		start := schedule.Day(parsed)
		sched.StartDate = &start
	}
	if req.RecurrenceEndDate != "" {
		parsed, err := time.Parse("2006-01-02", req.RecurrenceEndDate)
		if err != nil {
			return schedule.Schedule{}, validationError("recurrence_end_date", "recurrence_end_date must be YYYY-MM-DD")
		}
		end := schedule.Day(parsed)
		sched.RecurrenceEndDate = &end
	}
	return sched, nil
}
