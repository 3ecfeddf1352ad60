package server

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/wasla-app/wasla-api/internal/config"
	"github.com/wasla-app/wasla-api/internal/handler"
	"github.com/wasla-app/wasla-api/internal/middleware"
	"github.com/wasla-app/wasla-api/internal/repository"
	"github.com/wasla-app/wasla-api/internal/service"
	"github.com/wasla-app/wasla-api/pkg/storage"
)

type Server struct {
	engine *gin.Engine
	cfg    *config.Config
}

// New wires repositories, services and handlers onto the /v1 surface.
// redisClient and imageStorage may be nil; the related features degrade
// instead of failing.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, imageStorage storage.ImageStorage) *Server {
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	postRepo := repository.NewPostRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	followRepo := repository.NewFollowRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tagRepo := repository.NewTagRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	notificationService := service.NewNotificationService(notifRepo, followRepo, redisClient)
	tagService := service.NewTagService(tagRepo, postRepo, likeRepo, commentRepo)
	likeService := service.NewLikeService(likeRepo, postRepo, commentRepo, notificationService)
	followService := service.NewFollowService(followRepo, userRepo, notificationService)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo)
	postService := service.NewPostService(postRepo, userRepo, likeRepo, commentRepo, tagService, notificationService)
	searchService := service.NewSearchService(userRepo, postRepo, tagRepo, likeRepo, commentRepo)
	authService := service.NewAuthService(userRepo, tokenRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, tokenRepo, postRepo, followRepo, likeRepo, commentRepo, authService, imageStorage, cfg.CloudinaryUploadFolder)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	likeHandler := handler.NewLikeHandler(likeService)
	followHandler := handler.NewFollowHandler(followService)
	commentHandler := handler.NewCommentHandler(commentService)
	tagHandler := handler.NewTagHandler(tagService)
	notificationHandler := handler.NewNotificationHandler(notificationService, redisClient)
	searchHandler := handler.NewSearchHandler(searchService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	v1 := engine.Group("/v1")
	{
		v1.POST("/register", authHandler.Register)
		v1.POST("/login", authHandler.Login)

		// Public browsing, decorated when a token is sent anyway.
		public := v1.Group("")
		public.Use(authMiddleware.OptionalAuth())
		{
			public.GET("/tags", tagHandler.List)
			public.GET("/tags/:id", tagHandler.Get)
			public.GET("/tags/:id/posts", tagHandler.PostsByTag)
		}

		authed := v1.Group("")
		authed.Use(authMiddleware.RequireAuth())
		{
			authed.POST("/logout", authHandler.Logout)

			authed.GET("/user", userHandler.Me)
			authed.PUT("/user/profile", userHandler.UpdateProfile)
			authed.PUT("/user/password", userHandler.UpdatePassword)
			authed.POST("/user/image", userHandler.UpdateImage)
			authed.DELETE("/user/account", userHandler.DeleteAccount)

			authed.GET("/posts", postHandler.List)
			authed.POST("/posts", postHandler.Create)
			authed.GET("/posts/me", postHandler.MyPosts)
			authed.GET("/posts/:id", postHandler.Get)
			authed.PUT("/posts/:id", postHandler.Update)
			authed.DELETE("/posts/:id", postHandler.Delete)
			authed.POST("/posts/:id/images", postHandler.AddImages)
			authed.DELETE("/posts/:id/images", postHandler.RemoveImage)
			authed.GET("/posts/:id/likes", likeHandler.PostLikes)
			authed.GET("/posts/:id/tags", tagHandler.TagsForPost)
			authed.POST("/posts/:id/tags", tagHandler.Attach)
			authed.PUT("/posts/:id/tags", tagHandler.Sync)
			authed.DELETE("/posts/:id/tags/:tag_id", tagHandler.Detach)

			authed.POST("/likes/toggle", likeHandler.Toggle)
			authed.GET("/likes/check", likeHandler.Check)
			authed.GET("/likes/me", likeHandler.MyLikes)
			authed.GET("/likes/top-posts", likeHandler.TopPosts)

			authed.GET("/comments", commentHandler.List)
			authed.POST("/comments", commentHandler.Create)
			authed.PUT("/comments/:id", commentHandler.Update)
			authed.DELETE("/comments/:id", commentHandler.Delete)

			authed.POST("/follows", followHandler.Follow)
			authed.DELETE("/follows/:id", followHandler.Unfollow)
			authed.GET("/users/:id/posts", postHandler.UserPosts)
			authed.GET("/users/:id/followers", followHandler.Followers)
			authed.GET("/users/:id/following", followHandler.Following)
			authed.GET("/users/suggested", followHandler.Suggested)

			authed.GET("/notifications", notificationHandler.List)
			authed.GET("/notifications/unread-count", notificationHandler.UnreadCount)
			authed.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
			authed.GET("/notifications/:id", notificationHandler.Get)
			authed.PUT("/notifications/:id/read", notificationHandler.MarkRead)
			authed.PUT("/notifications/:id/unread", notificationHandler.MarkUnread)
			authed.DELETE("/notifications/:id", notificationHandler.Delete)
			authed.GET("/notifications/ws", notificationHandler.Stream)

			authed.GET("/search", searchHandler.Search)
			authed.GET("/search/quick", searchHandler.QuickSearch)
		}
	}

	return &Server{engine: engine, cfg: cfg}
}

func (s *Server) Run() error {
	log.Printf("listening on :%s", s.cfg.Port)
	return s.engine.Run(":" + s.cfg.Port)
}

// Engine exposes the router for httptest-based handler tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
