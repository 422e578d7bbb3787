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

type CommentService interface {
	AddComment(ctx context.Context, userID uuid.UUID, req domain.CreateComment) (domain.Comment, error)
	UpComment(ctx context.Context, commentID, userID uuid.UUID) error
	DownComment(ctx context.Context, commentID, userID uuid.UUID) error
	DeleteComment(ctx context.Context, commentID, userID uuid.UUID) error
	GetCommentsFromTheEvent(ctx context.Context, eventID uuid.UUID, page domain.Page) ([]domain.Comment, error)
	GetReplies(ctx context.Context, commentID uuid.UUID, page domain.Page) ([]domain.Comment, error)
}

type CommentHandler struct {
	svc CommentService
}

func NewCommentHandler(svc CommentService) *CommentHandler {
	return &CommentHandler{
		svc: svc,
	}
}

// HandleAddComment godoc
// @Summary      Comment on an event or reply to a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        eventID  path      string                        true  "event id"
// @Param        request  body      request.CreateCommentRequest  true  "comment"
// @Success      201      {object}  domain.Comment
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/comments [post]
// @Security BearerAuth
func (h *CommentHandler) HandleAddComment(ctx *gin.Context) {
	userID, eventID, ok := callerAndEvent(ctx)
	if !ok {
		return
	}

	var req request.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	create := domain.CreateComment{
		EventID: eventID,
		Text:    req.Text,
	}
	if req.ParentID != "" {
		parentID, err := uuid.Parse(req.ParentID)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		create.ParentID = &parentID
	}

	comment, err := h.svc.AddComment(ctx.Request.Context(), userID, create)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleAddComment -> h.svc.AddComment", err)
		return
	}

	ctx.JSON(http.StatusCreated, comment)
}

// HandleGetEventComments godoc
// @Summary      List the top level comments of an event
// @Tags         comments
// @Produce      json
// @Param        eventID      path   string  true   "event id"
// @Param        page_number  query  int     false  "page number, from 1"
// @Param        page_size    query  int     false  "page size, up to 100"
// @Success      200  {object}  response.Page[domain.Comment]
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/comments [get]
// @Security BearerAuth
func (h *CommentHandler) HandleGetEventComments(ctx *gin.Context) {
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

	comments, err := h.svc.GetCommentsFromTheEvent(ctx.Request.Context(), eventID, page)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetEventComments -> h.svc.GetCommentsFromTheEvent", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewPage(page, comments))
}

// HandleGetReplies godoc
// @Summary      List the replies to a comment
// @Tags         comments
// @Produce      json
// @Param        commentID    path   string  true   "comment id"
// @Param        page_number  query  int     false  "page number, from 1"
// @Param        page_size    query  int     false  "page size, up to 100"
// @Success      200  {object}  response.Page[domain.Comment]
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /comments/{commentID}/replies [get]
// @Security BearerAuth
func (h *CommentHandler) HandleGetReplies(ctx *gin.Context) {
	commentID, respErr := uuidParam(ctx, "commentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	page, respErr := bindPage(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	replies, err := h.svc.GetReplies(ctx.Request.Context(), commentID, page)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetReplies -> h.svc.GetReplies", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewPage(page, replies))
}

// callerAndComment reads the caller from the token and the comment from
// the commentID path parameter.
func callerAndComment(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	caller, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return uuid.Nil, uuid.Nil, false
	}
	commentID, respErr := uuidParam(ctx, "commentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return uuid.Nil, uuid.Nil, false
	}
	return caller, commentID, true
}

// HandleDeleteComment godoc
// @Summary      Delete one of the caller's comments
// @Tags         comments
// @Param        commentID  path  string  true  "comment id"
// @Success      204
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /comments/{commentID} [delete]
// @Security BearerAuth
func (h *CommentHandler) HandleDeleteComment(ctx *gin.Context) {
	userID, commentID, ok := callerAndComment(ctx)
	if !ok {
		return
	}

	if err := h.svc.DeleteComment(ctx.Request.Context(), commentID, userID); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteComment -> h.svc.DeleteComment", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUpComment godoc
// @Summary      Upvote a comment
// @Tags         comments
// @Param        commentID  path  string  true  "comment id"
// @Success      204
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /comments/{commentID}/up [post]
// @Security BearerAuth
func (h *CommentHandler) HandleUpComment(ctx *gin.Context) {
	userID, commentID, ok := callerAndComment(ctx)
	if !ok {
		return
	}

	if err := h.svc.UpComment(ctx.Request.Context(), commentID, userID); err != nil {
		renderServiceErr(ctx, "v1.HandleUpComment -> h.svc.UpComment", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDownComment godoc
// @Summary      Withdraw an upvote
// @Tags         comments
// @Param        commentID  path  string  true  "comment id"
// @Success      204
// @Failure      404        {object}  response.Err
// @Failure      422        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /comments/{commentID}/up [delete]
// @Security BearerAuth
func (h *CommentHandler) HandleDownComment(ctx *gin.Context) {
	userID, commentID, ok := callerAndComment(ctx)
	if !ok {
		return
	}

	if err := h.svc.DownComment(ctx.Request.Context(), commentID, userID); err != nil {
		renderServiceErr(ctx, "v1.HandleDownComment -> h.svc.DownComment", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
