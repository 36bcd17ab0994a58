package router

import (
	"log/slog"
	"net/http"

	"taskify/internal/auth"
	"taskify/internal/config"
	"taskify/internal/handler"
	"taskify/internal/middleware"
	"taskify/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires handlers, the identity gate and logging onto a gin
// engine. Every /api request is identified; only label reads, login,
// registration and seeding are reachable anonymously.
func SetupRouter(cfg *config.Config, db *gorm.DB, sessions *auth.Sessions, log *slog.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	r.NoRoute(func(c *gin.Context) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Not found")
	})
	r.GET("/healthz", handler.Health(db))

	authz := auth.NewAuthorizer(db)

	api := r.Group("/api")
	api.Use(middleware.Identify(sessions))

	authHandler := handler.NewAuthHandler(db, sessions, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	if cfg.App.EnableInit {
		initHandler := handler.NewInitHandler(db, cfg.Security.BcryptCost)
		api.GET("/init", initHandler.Init)
	}

	labelHandler := handler.NewLabelHandler(db)
	api.GET("/labels", labelHandler.ListLabels)

	protected := api.Group("")
	protected.Use(
		middleware.RequireAuth(),
		middleware.Activity(db),
	)

	protected.GET("/auth/me", authHandler.Me)

	protected.POST("/labels", labelHandler.CreateLabel)

	boardHandler := handler.NewBoardHandler(db, authz)
	protected.GET("/boards", boardHandler.ListBoards)
	protected.POST("/boards", boardHandler.CreateBoard)
	protected.GET("/boards/:boardId", boardHandler.GetBoard)
	protected.PUT("/boards/:boardId", boardHandler.UpdateBoard)
	protected.DELETE("/boards/:boardId", boardHandler.DeleteBoard)

	exportHandler := handler.NewExportHandler(db, authz)
	protected.GET("/boards/:boardId/export", exportHandler.ExportBoard)

	listHandler := handler.NewListHandler(db, authz)
	protected.GET("/boards/:boardId/lists", listHandler.ListLists)
	protected.POST("/boards/:boardId/lists", listHandler.CreateList)
	protected.GET("/lists/:listId", listHandler.GetList)
	protected.PUT("/lists/:listId", listHandler.UpdateList)
	protected.DELETE("/lists/:listId", listHandler.DeleteList)

	cardHandler := handler.NewCardHandler(db, authz)
	protected.GET("/lists/:listId/cards", cardHandler.ListCards)
	protected.POST("/lists/:listId/cards", cardHandler.CreateCard)
	protected.GET("/cards/:cardId", cardHandler.GetCard)
	protected.PUT("/cards/:cardId", cardHandler.UpdateCard)
	protected.DELETE("/cards/:cardId", cardHandler.DeleteCard)
	protected.GET("/cards/:cardId/labels", cardHandler.ListCardLabels)
	protected.POST("/cards/:cardId/labels", cardHandler.AddCardLabel)
	protected.DELETE("/cards/:cardId/labels", cardHandler.RemoveCardLabel)
	protected.DELETE("/cards/:cardId/labels/:labelId", cardHandler.RemoveCardLabel)

	activityHandler := handler.NewActivityHandler(db, cfg.App.PageSize)
	protected.GET("/activity", activityHandler.ListActivity)

	return r
}
