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

type AchievementService interface {
	GetUserPoints(ctx context.Context, userID uuid.UUID) (domain.InsigniaPoints, error)
	GetUserInsignias(ctx context.Context, userID uuid.UUID) ([]domain.OwnedInsignia, error)
	AddVisibleInsignia(ctx context.Context, userID, insigniaID uuid.UUID) error
	RemoveVisibleInsignia(ctx context.Context, userID, insigniaID uuid.UUID) error
	RegisterInsignia(ctx context.Context, actorID uuid.UUID, insignia domain.Insignia) (domain.Insignia, error)
	GetAllInsignias(ctx context.Context) ([]domain.Insignia, error)
}

type InsigniaHandler struct {
	svc AchievementService
}

func NewInsigniaHandler(svc AchievementService) *InsigniaHandler {
	return &InsigniaHandler{
		svc: svc,
	}
}

// HandleGetInsignias godoc
// @Summary      List the insignia catalog
// @Tags         insignias
// @Produce      json
// @Success      200  {array}   domain.Insignia
// @Failure      500  {object}  response.Err
// @Router       /insignias [get]
// @Security BearerAuth
func (h *InsigniaHandler) HandleGetInsignias(ctx *gin.Context) {
	insignias, err := h.svc.GetAllInsignias(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetInsignias -> h.svc.GetAllInsignias", err)
		return
	}

	ctx.JSON(http.StatusOK, insignias)
}

// HandleCreateInsignia godoc
// @Summary      Register an insignia
// @Description  Admin only.
// @Tags         insignias
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateInsigniaRequest  true  "insignia"
// @Success      201      {object}  domain.Insignia
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /insignias [post]
// @Security BearerAuth
func (h *InsigniaHandler) HandleCreateInsignia(ctx *gin.Context) {
	actorID, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateInsigniaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.RegisterInsignia(ctx.Request.Context(), actorID, domain.Insignia{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Criteria:    domain.InsigniaCriteria(req.Criteria),
		Quantity:    req.Quantity,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateInsignia -> h.svc.RegisterInsignia", err)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetUserPoints godoc
// @Summary      Get a user's points per criteria
// @Tags         insignias
// @Produce      json
// @Param        userID  path      string  true  "user id"
// @Success      200     {object}  domain.InsigniaPoints
// @Failure      400     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /users/{userID}/points [get]
// @Security BearerAuth
func (h *InsigniaHandler) HandleGetUserPoints(ctx *gin.Context) {
	userID, respErr := uuidParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	points, err := h.svc.GetUserPoints(ctx.Request.Context(), userID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetUserPoints -> h.svc.GetUserPoints", err)
		return
	}

	ctx.JSON(http.StatusOK, points)
}

// HandleGetUserInsignias godoc
// @Summary      List the insignias a user owns
// @Tags         insignias
// @Produce      json
// @Param        userID  path      string  true  "user id"
// @Success      200     {array}   domain.OwnedInsignia
// @Failure      400     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /users/{userID}/insignias [get]
// @Security BearerAuth
func (h *InsigniaHandler) HandleGetUserInsignias(ctx *gin.Context) {
	userID, respErr := uuidParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	owned, err := h.svc.GetUserInsignias(ctx.Request.Context(), userID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetUserInsignias -> h.svc.GetUserInsignias", err)
		return
	}

	ctx.JSON(http.StatusOK, owned)
}

// HandleAddVisibleInsignia godoc
// @Summary      Show an owned insignia on the caller's profile
// @Tags         insignias
// @Produce      json
// @Param        insigniaID  path      string  true  "insignia id"
// @Success      204
// @Failure      403         {object}  response.Err
// @Failure      422         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /users/me/insignias/{insigniaID}/visible [post]
// @Security BearerAuth
func (h *InsigniaHandler) HandleAddVisibleInsignia(ctx *gin.Context) {
	h.setVisible(ctx, true)
}

// HandleRemoveVisibleInsignia godoc
// @Summary      Hide an insignia from the caller's profile
// @Tags         insignias
// @Produce      json
// @Param        insigniaID  path      string  true  "insignia id"
// @Success      204
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /users/me/insignias/{insigniaID}/visible [delete]
// @Security BearerAuth
func (h *InsigniaHandler) HandleRemoveVisibleInsignia(ctx *gin.Context) {
	h.setVisible(ctx, false)
}

func (h *InsigniaHandler) setVisible(ctx *gin.Context, visible bool) {
	userID, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	insigniaID, respErr := uuidParam(ctx, "insigniaID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if visible {
		if err := h.svc.AddVisibleInsignia(ctx.Request.Context(), userID, insigniaID); err != nil {
			renderServiceErr(ctx, "v1.HandleAddVisibleInsignia -> h.svc.AddVisibleInsignia", err)
			return
		}
	} else {
		if err := h.svc.RemoveVisibleInsignia(ctx.Request.Context(), userID, insigniaID); err != nil {
			renderServiceErr(ctx, "v1.HandleRemoveVisibleInsignia -> h.svc.RemoveVisibleInsignia", err)
			return
		}
	}

	ctx.Status(http.StatusNoContent)
}
