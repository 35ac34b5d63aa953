package main

import (
	"log"
	"time"

	"github.com/czhengjuarez/FireDrill/internal/config"
	"github.com/czhengjuarez/FireDrill/internal/database"
	"github.com/czhengjuarez/FireDrill/internal/handlers"
	"github.com/czhengjuarez/FireDrill/internal/middleware"
	"github.com/czhengjuarez/FireDrill/internal/services"
	"github.com/czhengjuarez/FireDrill/internal/ws"

	_ "github.com/czhengjuarez/FireDrill/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Fire Drill API
// @version         1.0
// @description     API for facilitated cybersecurity incident-response tabletop exercises
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()

	authService := services.NewAuthService(db, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	sessionService := services.NewSessionService(db)
	projectService := services.NewProjectService(db)
	roleService := services.NewCustomRoleService(db)

	authHandler := handlers.NewAuthHandler(authService)
	sessionHandler := handlers.NewSessionHandler(sessionService, hub, cfg)
	participantHandler := handlers.NewParticipantHandler(sessionService, hub)
	projectHandler := handlers.NewProjectHandler(projectService)
	roleHandler := handlers.NewCustomRoleHandler(roleService)
	catalogHandler := handlers.NewCatalogHandler()
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/session/:code", wsHandler.HandleWebSocket)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Session endpoints are open: participants hold only a code and an
		// opaque userId, never a token.
		sessions := api.Group("/sessions")
		{
			sessions.POST("", sessionHandler.CreateSession)
			sessions.GET("/:code", sessionHandler.GetSession)
			sessions.PUT("/:code", sessionHandler.ReplaceSession)

			sessions.POST("/:code/start", sessionHandler.StartSession)
			sessions.POST("/:code/injects/start", sessionHandler.StartInjects)
			sessions.POST("/:code/next", sessionHandler.NextInject)
			sessions.POST("/:code/previous", sessionHandler.PreviousInject)
			sessions.POST("/:code/end", sessionHandler.EndSession)
			sessions.PUT("/:code/notes", sessionHandler.UpdateNotes)
			sessions.GET("/:code/responses/:injectId", sessionHandler.GetInjectResponses)
			sessions.GET("/:code/summary", sessionHandler.GetSummary)

			sessions.POST("/:code/join", participantHandler.JoinSession)
			sessions.POST("/:code/responses", participantHandler.SubmitResponse)
		}

		projects := api.Group("/projects")
		projects.Use(middleware.JWTAuth(authService))
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
		}

		customRoles := api.Group("/custom-roles")
		customRoles.Use(middleware.JWTAuth(authService))
		{
			customRoles.GET("", roleHandler.ListCustomRoles)
			customRoles.POST("", roleHandler.CreateCustomRole)
			customRoles.DELETE("/:id", roleHandler.DeleteCustomRole)
		}

		catalog := api.Group("/catalog")
		{
			catalog.GET("/roles", catalogHandler.ListRoles)
			catalog.GET("/scenarios", catalogHandler.ListScenarios)
			catalog.GET("/scenarios/:id/injects", catalogHandler.ListInjects)
			catalog.GET("/nist", catalogHandler.ListNISTFunctions)
		}
	}

	log.Printf("server listening on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
