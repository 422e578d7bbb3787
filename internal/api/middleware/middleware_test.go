package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanisamoj/Borai-sub000/internal/pkg/jwthelper"
)

const testSigningKey = "test-signing-key"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", NewAuthenticator(testSigningKey).VerifyJWT(), func(ctx *gin.Context) {
		id, ok := UserID(ctx)
		if !ok {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.String(http.StatusOK, "%s %v", id, Public(ctx))
	})
	return r
}

func TestVerifyJWT(t *testing.T) {
	userID := uuid.New()
	token, err := jwthelper.GenerateToken([]byte(testSigningKey), userID, true, "test")
	require.NoError(t, err)
	foreign, err := jwthelper.GenerateToken([]byte("other-key"), userID, true, "test")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{"bearer header", "Bearer " + token, "", http.StatusOK},
		{"query token", "", "?token=" + token, http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, "", http.StatusUnauthorized},
		{"wrong key", "Bearer " + foreign, "", http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			newAuthRouter().ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, userID.String()+" true", rec.Body.String())
			}
		})
	}
}

type fixedLimit struct {
	rps   float64
	burst int
}

func (f *fixedLimit) Values() (float64, int) { return f.rps, f.burst }

func TestRateLimiter(t *testing.T) {
	conf := &fixedLimit{rps: 1, burst: 2}
	l := NewRateLimiter(conf)
	now := time.Now()

	assert.True(t, l.allow("a", now))
	assert.True(t, l.allow("a", now))
	assert.False(t, l.allow("a", now))
	assert.True(t, l.allow("b", now), "buckets are per caller")
	assert.True(t, l.allow("a", now.Add(time.Second)))

	conf.burst = 5
	for i := 0; i < 5; i++ {
		assert.True(t, l.allow("a", now.Add(time.Second)), "new values replace the bucket")
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/write", NewRateLimiter(&fixedLimit{rps: 0.001, burst: 1}).Limit(), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})

	do := func() int {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/write", nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}
