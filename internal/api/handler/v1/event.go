package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sanisamoj/Borai-sub000/internal/api/handler/v1/request"
	"github.com/sanisamoj/Borai-sub000/internal/api/handler/v1/response"
	"github.com/sanisamoj/Borai-sub000/internal/domain"
)

type EventService interface {
	CreateEvent(ctx context.Context, creatorID uuid.UUID, event domain.Event) (domain.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (domain.Event, error)
	UpdateEvent(ctx context.Context, actorID, id uuid.UUID, patch domain.EventPatch) (domain.Event, error)
	ListEvents(ctx context.Context, status domain.EventStatus, page domain.Page) ([]domain.Event, error)
}

type EngagementService interface {
	MarkPresence(ctx context.Context, userID, eventID uuid.UUID) (domain.Presence, error)
	UnmarkPresence(ctx context.Context, userID, eventID uuid.UUID) error
	SubmitEventVote(ctx context.Context, userID, eventID uuid.UUID, rating int) (domain.EventVote, error)
	GetPresences(ctx context.Context, eventID uuid.UUID, page domain.Page) ([]domain.Presence, error)
	SetPresenceStatus(ctx context.Context, actorID, eventID, userID uuid.UUID, status domain.PresenceStatus) error
	FriendsAttending(ctx context.Context, viewerID, eventID uuid.UUID) ([]domain.Presence, error)
}

type EventHandler struct {
	svc        EventService
	engagement EngagementService
}

func NewEventHandler(svc EventService, engagement EngagementService) *EventHandler {
	return &EventHandler{
		svc:        svc,
		engagement: engagement,
	}
}

// callerAndEvent reads the caller from the token and the event from the
// eventID path parameter.
func callerAndEvent(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	caller, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return uuid.Nil, uuid.Nil, false
	}
	eventID, respErr := uuidParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return uuid.Nil, uuid.Nil, false
	}
	return caller, eventID, true
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Description  New events always start as scheduled.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateEventRequest  true  "event"
// @Success      201      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	userID, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), userID, domain.Event{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		OccursAt:    req.OccursAt,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateEvent -> h.svc.CreateEvent", err)
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleListEvents godoc
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        status       query  string  false  "scheduled, ongoing or completed"
// @Param        page_number  query  int     false  "page number, from 1"
// @Param        page_size    query  int     false  "page size, up to 100"
// @Success      200  {object}  response.Page[domain.Event]
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [get]
// @Security BearerAuth
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	page, respErr := bindPage(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	status := domain.EventStatus(ctx.Query("status"))
	events, err := h.svc.ListEvents(ctx.Request.Context(), status, page)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListEvents -> h.svc.ListEvents", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewPage(page, events))
}

// HandleGetEvent godoc
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        eventID  path      string  true  "event id"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, respErr := uuidParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetEvent -> h.svc.GetEvent", err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Description  Only the creator may update an event.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      string                      true  "event id"
// @Param        request  body      request.UpdateEventRequest  true  "changes"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [patch]
// @Security BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	userID, eventID, ok := callerAndEvent(ctx)
	if !ok {
		return
	}

	var req request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	patch := domain.EventPatch{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		OccursAt:    req.OccursAt,
	}
	if req.Status != nil {
		status := domain.EventStatus(*req.Status)
		patch.Status = &status
	}

	event, err := h.svc.UpdateEvent(ctx.Request.Context(), userID, eventID, patch)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateEvent -> h.svc.UpdateEvent", err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleMarkPresence godoc
// @Summary      Mark presence at an event
// @Tags         presences
// @Produce      json
// @Param        eventID  path      string  true  "event id"
// @Success      201      {object}  domain.Presence
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/presence [post]
// @Security BearerAuth
func (h *EventHandler) HandleMarkPresence(ctx *gin.Context) {
	userID, eventID, ok := callerAndEvent(ctx)
	if !ok {
		return
	}

	presence, err := h.engagement.MarkPresence(ctx.Request.Context(), userID, eventID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleMarkPresence -> h.engagement.MarkPresence", err)
		return
	}

	ctx.JSON(http.StatusCreated, presence)
}

// HandleUnmarkPresence godoc
// @Summary      Remove the caller's presence from an event
// @Tags         presences
// @Param        eventID  path      string  true  "event id"
// @Success      204
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/presence [delete]
// @Security BearerAuth
func (h *EventHandler) HandleUnmarkPresence(ctx *gin.Context) {
	userID, eventID, ok := callerAndEvent(ctx)
	if !ok {
		return
	}

	if err := h.engagement.UnmarkPresence(ctx.Request.Context(), userID, eventID); err != nil {
		renderServiceErr(ctx, "v1.HandleUnmarkPresence -> h.engagement.UnmarkPresence", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetPresences godoc
// @Summary      List the presences of an event
// @Tags         presences
// @Produce      json
// @Param        eventID      path   string  true   "event id"
// @Param        page_number  query  int     false  "page number, from 1"
// @Param        page_size    query  int     false  "page size, up to 100"
// @Success      200  {object}  response.Page[domain.Presence]
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/presences [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetPresences(ctx *gin.Context) {
	eventID, respErr := uuidParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	page, respErr := bindPage(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	presences, err := h.engagement.GetPresences(ctx.Request.Context(), eventID, page)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetPresences -> h.engagement.GetPresences", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewPage(page, presences))
}

// HandleSetPresenceStatus godoc
// @Summary      Set the attendance status of a presence
// @Description  Only the event creator may confirm attendance.
// @Tags         presences
// @Accept       json
// @Param        eventID  path  string                         true  "event id"
// @Param        userID   path  string                         true  "attendee id"
// @Param        request  body  request.PresenceStatusRequest  true  "status"
// @Success      204
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/presences/{userID} [patch]
// @Security BearerAuth
func (h *EventHandler) HandleSetPresenceStatus(ctx *gin.Context) {
	actorID, eventID, ok := callerAndEvent(ctx)
	if !ok {
		return
	}
	userID, respErr := uuidParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PresenceStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	status := domain.PresenceStatus(req.Status)
	if err := h.engagement.SetPresenceStatus(ctx.Request.Context(), actorID, eventID, userID, status); err != nil {
		renderServiceErr(ctx, "v1.HandleSetPresenceStatus -> h.engagement.SetPresenceStatus", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleFriendsAttending godoc
// @Summary      Mutual followers attending an event
// @Tags         presences
// @Produce      json
// @Param        eventID  path      string  true  "event id"
// @Success      200      {array}   domain.Presence
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/friends [get]
// @Security BearerAuth
func (h *EventHandler) HandleFriendsAttending(ctx *gin.Context) {
	userID, eventID, ok := callerAndEvent(ctx)
	if !ok {
		return
	}

	friends, err := h.engagement.FriendsAttending(ctx.Request.Context(), userID, eventID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleFriendsAttending -> h.engagement.FriendsAttending", err)
		return
	}
	if friends == nil {
		friends = []domain.Presence{}
	}

	ctx.JSON(http.StatusOK, friends)
}

// HandleSubmitVote godoc
// @Summary      Rate a completed event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      string               true  "event id"
// @Param        request  body      request.VoteRequest  true  "rating from 1 to 5"
// @Success      201      {object}  domain.EventVote
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/votes [post]
// @Security BearerAuth
func (h *EventHandler) HandleSubmitVote(ctx *gin.Context) {
	userID, eventID, ok := callerAndEvent(ctx)
	if !ok {
		return
	}

	var req request.VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	vote, err := h.engagement.SubmitEventVote(ctx.Request.Context(), userID, eventID, req.Rating)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSubmitVote -> h.engagement.SubmitEventVote", err)
		return
	}

	ctx.JSON(http.StatusCreated, vote)
}
