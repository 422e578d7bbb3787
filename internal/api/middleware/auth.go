package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sanisamoj/Borai-sub000/internal/api/handler/v1/response"
	"github.com/sanisamoj/Borai-sub000/internal/pkg/jwthelper"
)

const (
	ContextKeyUserID = "userID"
	ContextKeyPublic = "public"
)

var errMissingToken = errors.New("missing bearer token")

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT accepts the token from the Authorization header or, for
// websocket upgrades, from the token query parameter.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			response.RenderErr(ctx, response.ErrWrongCredentials(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))
			return
		}

		ctx.Set(ContextKeyUserID, userID)
		ctx.Set(ContextKeyPublic, claims.Public)
		ctx.Next()
	}
}

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if header != "" {
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return ""
		}
		return strings.TrimSpace(token)
	}

	return ctx.Query("token")
}

// UserID returns the caller id set by VerifyJWT.
func UserID(ctx *gin.Context) (uuid.UUID, bool) {
	v, ok := ctx.Get(ContextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// Public returns the account public flag carried by the token.
func Public(ctx *gin.Context) bool {
	return ctx.GetBool(ContextKeyPublic)
}
