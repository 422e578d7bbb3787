package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sanisamoj/Borai-sub000/internal/api/handler/v1/request"
	"github.com/sanisamoj/Borai-sub000/internal/api/handler/v1/response"
	"github.com/sanisamoj/Borai-sub000/internal/api/middleware"
	"github.com/sanisamoj/Borai-sub000/internal/domain"
)

var errNoUserInContext = errors.New("no authenticated user in context")

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Message
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.Message{Message: "OK"})
}

func currentUserID(ctx *gin.Context) (uuid.UUID, *response.Err) {
	id, ok := middleware.UserID(ctx)
	if !ok {
		return uuid.Nil, response.ErrWrongCredentials(errNoUserInContext)
	}
	return id, nil
}

func uuidParam(ctx *gin.Context, name string) (uuid.UUID, *response.Err) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		return uuid.Nil, response.ErrBadRequest(fmt.Errorf("%s must be a valid uuid", name))
	}
	return id, nil
}

func bindPage(ctx *gin.Context) (domain.Page, *response.Err) {
	var q request.PageQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		return domain.Page{}, response.ErrBadRequest(err)
	}
	if err := q.Validate(); err != nil {
		return domain.Page{}, response.ErrBadRequest(err)
	}
	return q.Page(), nil
}

func renderServiceErr(ctx *gin.Context, op string, err error) {
	response.RenderErr(ctx, response.ErrFromService(fmt.Errorf("%s -> %w", op, err)))
}
