// Package router wires the HTTP surface: which paths exist, which are open
// and which sit behind the access-token and database-availability guards.
package router

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/config"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/handler"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/middleware"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/repository"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Cfg   config.Config
	DB    *sql.DB
	Redis *redis.Client
	Log   *zap.SugaredLogger
}

// Register mounts every route on the Echo instance.  Registration and the
// token endpoints stay open (rate limited when Redis is reachable); every
// resource group requires a valid access token and a responsive database.
func Register(e *echo.Echo, d Deps) {
	users := repository.NewUserRepo(d.DB)
	categories := repository.NewCategoryRepo(d.DB)
	contacts := repository.NewContactRepo(d.DB)
	suppliers := repository.NewSupplierRepo(d.DB)
	items := repository.NewItemRepo(d.DB)

	auth := handler.NewAuthHandler(d.Cfg, users, d.Log)
	userH := handler.NewUserHandler(d.Cfg, users)
	categoryH := handler.NewCategoryHandler(categories)
	contactH := handler.NewContactHandler(contacts)
	supplierH := handler.NewSupplierHandler(suppliers)
	itemH := handler.NewItemHandler(items)

	e.GET("/", handler.Health)

	api := e.Group("/api")

	// Open endpoints.  The token bucket only engages when Redis is up;
	// without it these routes run unthrottled rather than failing.
	open := api.Group("")
	if rl := config.LoadRateLimitConfig(); rl.Enabled && d.Redis != nil {
		open.Use(middleware.NewTokenBucket(rl, d.Redis))
	}
	open.POST("/register", auth.Register)
	open.POST("/auth/login", auth.Login)
	open.GET("/auth/refresh_token", auth.Refresh)
	open.DELETE("/auth/logout", auth.Logout)

	// Every resource group shares the same guards.
	guard := func(prefix string) *echo.Group {
		g := api.Group(prefix)
		g.Use(middleware.JWTAuth(d.Cfg.AccessSecret))
		g.Use(middleware.RequireDB(d.DB, d.Log))
		return g
	}

	u := guard("/users")
	u.GET("", userH.List)
	u.GET("/:id", userH.Get)
	u.PATCH("/update", userH.Update)
	u.DELETE("/delete/:id", userH.Delete)

	cat := guard("/categories")
	cat.GET("", categoryH.List)
	cat.POST("", categoryH.Create)
	cat.PATCH("", categoryH.Update)
	cat.DELETE("/:id", categoryH.Delete)

	con := guard("/contacts")
	con.GET("", contactH.List)
	con.GET("/search/query", contactH.Search)
	con.GET("/:id", contactH.Get)
	con.POST("", contactH.Create)
	con.PATCH("/:id", contactH.Update)
	con.DELETE("/:id", contactH.Delete)

	sup := guard("/suppliers")
	sup.GET("/search", supplierH.Search)
	sup.GET("", supplierH.List)
	sup.GET("/:id", supplierH.Get)
	sup.POST("", supplierH.Create)
	sup.PATCH("/:id", supplierH.Update)
	sup.DELETE("/:id", supplierH.Delete)

	it := guard("/items")
	it.GET("/search", itemH.Search)
	it.GET("", itemH.List)
	it.GET("/:id", itemH.Get)
	it.POST("", itemH.Create)
	it.PATCH("/:id", itemH.Update)
	it.DELETE("/:id", itemH.Delete)
}
