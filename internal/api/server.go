package api

import (
	"context"
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/leoclub/points-tracker-api/docs"
	v1 "github.com/leoclub/points-tracker-api/internal/api/handler/v1"
	"github.com/leoclub/points-tracker-api/internal/api/middleware"
	"github.com/leoclub/points-tracker-api/internal/config"
	"github.com/leoclub/points-tracker-api/internal/repository"
	"github.com/leoclub/points-tracker-api/internal/repository/dao"
	"github.com/leoclub/points-tracker-api/internal/service"
	"github.com/leoclub/points-tracker-api/internal/storage"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	photos, err := storage.OpenPhotoBucket(context.Background(), conf.Storage.BucketURL, conf.Storage.PublicBaseURL)
	if err != nil {
		return nil, fmt.Errorf("storage.OpenPhotoBucket -> %w", err)
	}

	uSvc := service.NewUserAdminService(repository.NewUserRepository(dao.NewUserDAO(db)))

	authHandler := s.initAuthHandler(db, uSvc)
	userHandler := v1.NewUserHandler(uSvc, uSvc)
	memberHandler := s.initMemberHandler(db, photos, uSvc)
	contributionHandler := s.initContributionHandler(db, uSvc)
	leaderboardHandler := s.initLeaderboardHandler(db)
	importHandler := s.initImportHandler(db, uSvc)
	s.MountHandlers(authHandler, userHandler, memberHandler, contributionHandler, leaderboardHandler, importHandler)

	return s, nil
}

func (s *Server) initAuthHandler(db *gorm.DB, uSvc *service.UserAdminService) *v1.AuthHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc, uSvc)

	return handler
}

func (s *Server) initMemberHandler(db *gorm.DB, photos *storage.PhotoBucket, uSvc *service.UserAdminService) *v1.MemberHandler {
	repo := repository.NewMemberRepository(dao.NewMemberDAO(db))
	svc := service.NewMemberService(repo, photos)
	handler := v1.NewMemberHandler(svc, uSvc)

	return handler
}

func (s *Server) initContributionHandler(db *gorm.DB, uSvc *service.UserAdminService) *v1.ContributionHandler {
	repo := repository.NewContributionRepository(dao.NewContributionDAO(db))
	svc := service.NewContributionService(repo)
	handler := v1.NewContributionHandler(svc, uSvc)

	return handler
}

func (s *Server) initLeaderboardHandler(db *gorm.DB) *v1.LeaderboardHandler {
	members := repository.NewMemberRepository(dao.NewMemberDAO(db))
	contributions := repository.NewContributionRepository(dao.NewContributionDAO(db))
	svc := service.NewLeaderboardService(members, contributions)
	handler := v1.NewLeaderboardHandler(svc)

	return handler
}

func (s *Server) initImportHandler(db *gorm.DB, uSvc *service.UserAdminService) *v1.ImportHandler {
	members := repository.NewMemberRepository(dao.NewMemberDAO(db))
	svc := service.NewImportService(members)
	handler := v1.NewImportHandler(svc, uSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	memberHandler *v1.MemberHandler,
	contributionHandler *v1.ContributionHandler,
	leaderboardHandler *v1.LeaderboardHandler,
	importHandler *v1.ImportHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/login", authHandler.HandleLogin)
		auth.POST("/auth/reset-password", authHandler.HandlePasswordReset)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/auth/me", authHandler.HandleGetCurrentUser)

		authenticated.GET("/members", memberHandler.HandleListMembers)
		authenticated.GET("/members/search", memberHandler.HandleSearchMembers)
		authenticated.GET("/members/top", memberHandler.HandleGetTopMembers)
		authenticated.GET("/members/:regNo", memberHandler.HandleGetMember)
		authenticated.GET("/members/:regNo/contributions", contributionHandler.HandleListMemberContributions)
		authenticated.POST("/members", memberHandler.HandleCreateMember)
		authenticated.PATCH("/members/:regNo", memberHandler.HandleUpdateMember)
		authenticated.POST("/members/photos", memberHandler.HandleUploadMemberPhoto)
		authenticated.POST("/members/reconcile-points", memberHandler.HandleReconcileTotals)
		authenticated.POST("/members/import", importHandler.HandleImportMembers)
		authenticated.GET("/members/import/template", importHandler.HandleDownloadImportTemplate)

		authenticated.GET("/contributions", contributionHandler.HandleListContributions)
		authenticated.GET("/contributions/total-points", contributionHandler.HandleTotalPoints)
		authenticated.POST("/contributions", contributionHandler.HandleCreateContribution)
		authenticated.DELETE("/contributions/:id", contributionHandler.HandleDeleteContribution)

		authenticated.GET("/leaderboard", leaderboardHandler.HandleAllTimeLeaderboard)
		authenticated.GET("/leaderboard/monthly", leaderboardHandler.HandleMonthlyLeaderboard)
		authenticated.GET("/leaderboard/monthly/projects", leaderboardHandler.HandleMonthlyProjectCount)

		authenticated.GET("/users", userHandler.HandleListUsers)
		authenticated.POST("/users", userHandler.HandleCreateUser)
		authenticated.PATCH("/users/:id", userHandler.HandleUpdateUser)
		authenticated.DELETE("/users/:id", userHandler.HandleDeleteUser)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Leo Club Points Tracker API"
	docs.SwaggerInfo.Description = "Member and contribution points tracking for a Leo Club."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
