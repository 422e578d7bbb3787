package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/sanisamoj/Borai-sub000/docs"
	v1 "github.com/sanisamoj/Borai-sub000/internal/api/handler/v1"
	"github.com/sanisamoj/Borai-sub000/internal/api/middleware"
	"github.com/sanisamoj/Borai-sub000/internal/config"
	"github.com/sanisamoj/Borai-sub000/internal/notify"
	"github.com/sanisamoj/Borai-sub000/internal/repository"
	"github.com/sanisamoj/Borai-sub000/internal/repository/dao"
	"github.com/sanisamoj/Borai-sub000/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

type handlers struct {
	user         *v1.UserHandler
	event        *v1.EventHandler
	comment      *v1.CommentHandler
	follow       *v1.FollowHandler
	insignia     *v1.InsigniaHandler
	notification *v1.NotificationHandler
}

func NewServer(conf *config.AppConfig, db *gorm.DB, hub *notify.Hub, notifier service.Notifier) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()
	s.MountHandlers(s.initHandlers(db, hub, notifier))

	return s
}

func (s *Server) initHandlers(db *gorm.DB, hub *notify.Hub, notifier service.Notifier) handlers {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	presenceRepo := repository.NewPresenceRepository(dao.NewPresenceDAO(db))
	commentRepo := repository.NewCommentRepository(dao.NewCommentDAO(db))
	followRepo := repository.NewFollowRepository(dao.NewFollowDAO(db))
	insigniaRepo := repository.NewInsigniaRepository(dao.NewInsigniaDAO(db))

	achievementSvc := service.NewAchievementService(insigniaRepo, userRepo, notifier, s.Config.Achievement.MaxVisibleInsignias)
	followSvc := service.NewFollowService(followRepo, userRepo, achievementSvc, notifier)
	eventSvc := service.NewEventService(eventRepo, userRepo, achievementSvc)
	engagementSvc := service.NewEngagementService(presenceRepo, eventRepo, userRepo, followSvc, achievementSvc)
	commentSvc := service.NewCommentService(commentRepo, eventRepo, userRepo, achievementSvc, notifier)
	userSvc := service.NewUserService(userRepo, followSvc, presenceRepo, achievementSvc)

	return handlers{
		user:         v1.NewUserHandler(userSvc),
		event:        v1.NewEventHandler(eventSvc, engagementSvc),
		comment:      v1.NewCommentHandler(commentSvc),
		follow:       v1.NewFollowHandler(followSvc),
		insignia:     v1.NewInsigniaHandler(achievementSvc),
		notification: v1.NewNotificationHandler(hub, s.Config.API.AllowedCORSDomains),
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)
	limit := middleware.NewRateLimiter(s.Config.RateLimit).Limit()

	reads := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		reads.GET("/users/:userID", h.user.HandleGetUser)
		reads.GET("/users/:userID/points", h.insignia.HandleGetUserPoints)
		reads.GET("/users/:userID/insignias", h.insignia.HandleGetUserInsignias)
		reads.GET("/users/:userID/followers", h.follow.HandleGetFollowers)
		reads.GET("/users/:userID/following", h.follow.HandleGetFollowing)
		reads.GET("/users/:userID/relationship", h.follow.HandleGetRelationship)

		reads.GET("/events", h.event.HandleListEvents)
		reads.GET("/events/:eventID", h.event.HandleGetEvent)
		reads.GET("/events/:eventID/presences", h.event.HandleGetPresences)
		reads.GET("/events/:eventID/friends", h.event.HandleFriendsAttending)
		reads.GET("/events/:eventID/comments", h.comment.HandleGetEventComments)
		reads.GET("/comments/:commentID/replies", h.comment.HandleGetReplies)

		reads.GET("/follows/requests", h.follow.HandleGetPendingRequests)
		reads.GET("/follows/requests/sent", h.follow.HandleGetSentRequests)

		reads.GET("/insignias", h.insignia.HandleGetInsignias)

		reads.GET("/notifications/ws", h.notification.HandleNotifications)
	}

	writes := s.Router.Group(basePath, authenticator.VerifyJWT(), limit)
	{
		writes.PUT("/users/me", h.user.HandleUpsertMe)
		writes.POST("/users/me/insignias/:insigniaID/visible", h.insignia.HandleAddVisibleInsignia)
		writes.DELETE("/users/me/insignias/:insigniaID/visible", h.insignia.HandleRemoveVisibleInsignia)

		writes.POST("/events", h.event.HandleCreateEvent)
		writes.PATCH("/events/:eventID", h.event.HandleUpdateEvent)
		writes.POST("/events/:eventID/presence", h.event.HandleMarkPresence)
		writes.DELETE("/events/:eventID/presence", h.event.HandleUnmarkPresence)
		writes.PATCH("/events/:eventID/presences/:userID", h.event.HandleSetPresenceStatus)
		writes.POST("/events/:eventID/votes", h.event.HandleSubmitVote)
		writes.POST("/events/:eventID/comments", h.comment.HandleAddComment)

		writes.DELETE("/comments/:commentID", h.comment.HandleDeleteComment)
		writes.POST("/comments/:commentID/up", h.comment.HandleUpComment)
		writes.DELETE("/comments/:commentID/up", h.comment.HandleDownComment)

		writes.POST("/follows/:userID", h.follow.HandleSendFollowRequest)
		writes.DELETE("/follows/:userID", h.follow.HandleUnfollow)
		writes.DELETE("/follows/:userID/request", h.follow.HandleCancelFollowRequest)
		writes.POST("/follows/requests/:userID/accept", h.follow.HandleAcceptFollowRequest)
		writes.POST("/follows/requests/:userID/reject", h.follow.HandleRejectFollowRequest)
		writes.DELETE("/followers/:userID", h.follow.HandleRemoveFollower)

		writes.POST("/insignias", h.insignia.HandleCreateInsignia)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Borai API"
	docs.SwaggerInfo.Description = "Events, presences, comments, follows and insignias."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
