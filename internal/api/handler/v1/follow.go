package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sanisamoj/Borai-sub000/internal/api/handler/v1/response"
	"github.com/sanisamoj/Borai-sub000/internal/domain"
)

type FollowService interface {
	SendFollowRequest(ctx context.Context, followerID, followingID uuid.UUID) (domain.Follow, error)
	AcceptFollowRequest(ctx context.Context, userID, requesterID uuid.UUID) error
	RejectFollowRequest(ctx context.Context, userID, requesterID uuid.UUID) error
	CancelFollowRequest(ctx context.Context, followerID, followingID uuid.UUID) error
	RemoveFollowing(ctx context.Context, followerID, followingID uuid.UUID) error
	RemoveFollower(ctx context.Context, userID, followerID uuid.UUID) error
	Relationship(ctx context.Context, followerID, followingID uuid.UUID) (domain.Relationship, error)
	Followers(ctx context.Context, userID uuid.UUID, page domain.Page) ([]domain.User, error)
	Following(ctx context.Context, userID uuid.UUID, page domain.Page) ([]domain.User, error)
	PendingRequests(ctx context.Context, userID uuid.UUID, page domain.Page) ([]domain.User, error)
	SentRequests(ctx context.Context, userID uuid.UUID, page domain.Page) ([]domain.User, error)
}

type FollowHandler struct {
	svc FollowService
}

func NewFollowHandler(svc FollowService) *FollowHandler {
	return &FollowHandler{
		svc: svc,
	}
}

// callerAndTarget reads the caller from the token and the other user from
// the userID path parameter.
func callerAndTarget(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	caller, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return uuid.Nil, uuid.Nil, false
	}
	target, respErr := uuidParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return uuid.Nil, uuid.Nil, false
	}
	return caller, target, true
}

// HandleSendFollowRequest godoc
// @Summary      Ask to follow a user
// @Tags         follows
// @Produce      json
// @Param        userID  path      string  true  "user to follow"
// @Success      201     {object}  domain.Follow
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /follows/{userID} [post]
// @Security BearerAuth
func (h *FollowHandler) HandleSendFollowRequest(ctx *gin.Context) {
	caller, target, ok := callerAndTarget(ctx)
	if !ok {
		return
	}

	follow, err := h.svc.SendFollowRequest(ctx.Request.Context(), caller, target)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSendFollowRequest -> h.svc.SendFollowRequest", err)
		return
	}

	ctx.JSON(http.StatusCreated, follow)
}

// HandleUnfollow godoc
// @Summary      Stop following a user
// @Tags         follows
// @Param        userID  path      string  true  "followed user"
// @Success      204
// @Failure      400     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /follows/{userID} [delete]
// @Security BearerAuth
func (h *FollowHandler) HandleUnfollow(ctx *gin.Context) {
	caller, target, ok := callerAndTarget(ctx)
	if !ok {
		return
	}

	if err := h.svc.RemoveFollowing(ctx.Request.Context(), caller, target); err != nil {
		renderServiceErr(ctx, "v1.HandleUnfollow -> h.svc.RemoveFollowing", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCancelFollowRequest godoc
// @Summary      Withdraw a pending follow request
// @Tags         follows
// @Param        userID  path      string  true  "requested user"
// @Success      204
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /follows/{userID}/request [delete]
// @Security BearerAuth
func (h *FollowHandler) HandleCancelFollowRequest(ctx *gin.Context) {
	caller, target, ok := callerAndTarget(ctx)
	if !ok {
		return
	}

	if err := h.svc.CancelFollowRequest(ctx.Request.Context(), caller, target); err != nil {
		renderServiceErr(ctx, "v1.HandleCancelFollowRequest -> h.svc.CancelFollowRequest", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAcceptFollowRequest godoc
// @Summary      Accept a follow request
// @Tags         follows
// @Param        userID  path      string  true  "requester"
// @Success      204
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /follows/requests/{userID}/accept [post]
// @Security BearerAuth
func (h *FollowHandler) HandleAcceptFollowRequest(ctx *gin.Context) {
	caller, requester, ok := callerAndTarget(ctx)
	if !ok {
		return
	}

	if err := h.svc.AcceptFollowRequest(ctx.Request.Context(), caller, requester); err != nil {
		renderServiceErr(ctx, "v1.HandleAcceptFollowRequest -> h.svc.AcceptFollowRequest", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleRejectFollowRequest godoc
// @Summary      Reject a follow request
// @Tags         follows
// @Param        userID  path      string  true  "requester"
// @Success      204
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /follows/requests/{userID}/reject [post]
// @Security BearerAuth
func (h *FollowHandler) HandleRejectFollowRequest(ctx *gin.Context) {
	caller, requester, ok := callerAndTarget(ctx)
	if !ok {
		return
	}

	if err := h.svc.RejectFollowRequest(ctx.Request.Context(), caller, requester); err != nil {
		renderServiceErr(ctx, "v1.HandleRejectFollowRequest -> h.svc.RejectFollowRequest", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleRemoveFollower godoc
// @Summary      Remove a follower
// @Tags         follows
// @Param        userID  path      string  true  "follower"
// @Success      204
// @Failure      500     {object}  response.Err
// @Router       /followers/{userID} [delete]
// @Security BearerAuth
func (h *FollowHandler) HandleRemoveFollower(ctx *gin.Context) {
	caller, follower, ok := callerAndTarget(ctx)
	if !ok {
		return
	}

	if err := h.svc.RemoveFollower(ctx.Request.Context(), caller, follower); err != nil {
		renderServiceErr(ctx, "v1.HandleRemoveFollower -> h.svc.RemoveFollower", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetRelationship godoc
// @Summary      Relationship from the caller to a user
// @Tags         follows
// @Produce      json
// @Param        userID  path      string  true  "user id"
// @Success      200     {object}  response.RelationshipResponse
// @Failure      400     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /users/{userID}/relationship [get]
// @Security BearerAuth
func (h *FollowHandler) HandleGetRelationship(ctx *gin.Context) {
	caller, target, ok := callerAndTarget(ctx)
	if !ok {
		return
	}

	rel, err := h.svc.Relationship(ctx.Request.Context(), caller, target)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetRelationship -> h.svc.Relationship", err)
		return
	}

	ctx.JSON(http.StatusOK, response.RelationshipResponse{
		UserID:       target.String(),
		Relationship: rel,
	})
}

type listUsersFunc func(ctx context.Context, userID uuid.UUID, page domain.Page) ([]domain.User, error)

func (h *FollowHandler) listUsers(ctx *gin.Context, op string, userID uuid.UUID, list listUsersFunc) {
	page, respErr := bindPage(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	users, err := list(ctx.Request.Context(), userID, page)
	if err != nil {
		renderServiceErr(ctx, op, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewPage(page, users))
}

// HandleGetFollowers godoc
// @Summary      List a user's followers
// @Tags         follows
// @Produce      json
// @Param        userID       path   string  true   "user id"
// @Param        page_number  query  int     false  "page number, from 1"
// @Param        page_size    query  int     false  "page size, up to 100"
// @Success      200  {object}  response.Page[domain.User]
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID}/followers [get]
// @Security BearerAuth
func (h *FollowHandler) HandleGetFollowers(ctx *gin.Context) {
	userID, respErr := uuidParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	h.listUsers(ctx, "v1.HandleGetFollowers -> h.svc.Followers", userID, h.svc.Followers)
}

// HandleGetFollowing godoc
// @Summary      List the users a user follows
// @Tags         follows
// @Produce      json
// @Param        userID       path   string  true   "user id"
// @Param        page_number  query  int     false  "page number, from 1"
// @Param        page_size    query  int     false  "page size, up to 100"
// @Success      200  {object}  response.Page[domain.User]
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID}/following [get]
// @Security BearerAuth
func (h *FollowHandler) HandleGetFollowing(ctx *gin.Context) {
	userID, respErr := uuidParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	h.listUsers(ctx, "v1.HandleGetFollowing -> h.svc.Following", userID, h.svc.Following)
}

// HandleGetPendingRequests godoc
// @Summary      Follow requests waiting for the caller
// @Tags         follows
// @Produce      json
// @Param        page_number  query  int  false  "page number, from 1"
// @Param        page_size    query  int  false  "page size, up to 100"
// @Success      200  {object}  response.Page[domain.User]
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /follows/requests [get]
// @Security BearerAuth
func (h *FollowHandler) HandleGetPendingRequests(ctx *gin.Context) {
	caller, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	h.listUsers(ctx, "v1.HandleGetPendingRequests -> h.svc.PendingRequests", caller, h.svc.PendingRequests)
}

// HandleGetSentRequests godoc
// @Summary      Follow requests the caller sent
// @Tags         follows
// @Produce      json
// @Param        page_number  query  int  false  "page number, from 1"
// @Param        page_size    query  int  false  "page size, up to 100"
// @Success      200  {object}  response.Page[domain.User]
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /follows/requests/sent [get]
// @Security BearerAuth
func (h *FollowHandler) HandleGetSentRequests(ctx *gin.Context) {
	caller, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	h.listUsers(ctx, "v1.HandleGetSentRequests -> h.svc.SentRequests", caller, h.svc.SentRequests)
}
