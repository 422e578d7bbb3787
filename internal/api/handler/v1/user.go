package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sanisamoj/Borai-sub000/internal/api/handler/v1/request"
	"github.com/sanisamoj/Borai-sub000/internal/api/handler/v1/response"
	"github.com/sanisamoj/Borai-sub000/internal/api/middleware"
	"github.com/sanisamoj/Borai-sub000/internal/domain"
)

type UserService interface {
	UpsertProfile(ctx context.Context, userID uuid.UUID, user domain.User) (domain.User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (domain.UserProfile, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleUpsertMe godoc
// @Summary      Create or update the caller's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      request.UpsertProfileRequest  true  "profile"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/me [put]
// @Security BearerAuth
func (h *UserHandler) HandleUpsertMe(ctx *gin.Context) {
	userID, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpsertProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	public := middleware.Public(ctx)
	if req.Public != nil {
		public = *req.Public
	}

	user, err := h.svc.UpsertProfile(ctx.Request.Context(), userID, domain.User{
		Nick:         req.Nick,
		Email:        req.Email,
		Name:         req.Name,
		Bio:          req.Bio,
		ImageProfile: req.ImageProfile,
		Public:       public,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpsertMe -> h.svc.UpsertProfile", err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleGetUser godoc
// @Summary      Get a user profile
// @Description  Profile with follower, following and presence counts and the visible insignias
// @Tags         users
// @Produce      json
// @Param        userID  path      string  true  "user id"
// @Success      200     {object}  domain.UserProfile
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /users/{userID} [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	userID, respErr := uuidParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	profile, err := h.svc.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetUser -> h.svc.GetProfile", err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}
