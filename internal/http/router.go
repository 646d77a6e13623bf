package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"taskhub/internal/accounts"
	"taskhub/internal/auth"
	"taskhub/internal/config"
	"taskhub/internal/domain/user"
	"taskhub/internal/http/handlers"
	"taskhub/internal/http/middlewares"
	"taskhub/internal/observability"
	"taskhub/internal/repo/postgres"
	"taskhub/internal/tasks"
)

// Deps carries everything the router wires together. The notifier is
// injected so the binary decides between the redis queue and plain
// logging.
type Deps struct {
	Cfg      config.Config
	Log      *slog.Logger
	Pool     *pgxpool.Pool
	Prom     *observability.Prom
	PromReg  *prometheus.Registry
	JWT      *auth.Manager
	Notifier tasks.Notifier
}

func NewRouter(d Deps) *gin.Engine {
	if d.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(d.Cfg.AllowedOrigins))
	r.Use(otelgin.Middleware("taskhub"))
	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}

	// health
	ping := func() error {
		if d.Pool == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()
		return d.Pool.Ping(ctx)
	}

	health := handlers.NewHealthHandler(ping)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	if d.PromReg != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.PromReg, promhttp.HandlerOpts{})))
	}

	// repositories
	usersRepo := postgres.NewUsersRepo(d.Pool, d.Prom)
	tasksRepo := postgres.NewTasksRepo(d.Pool, d.Prom)
	projectsRepo := postgres.NewProjectsRepo(d.Pool)
	milestonesRepo := postgres.NewMilestonesRepo(d.Pool)
	teamsRepo := postgres.NewTeamsRepo(d.Pool)
	activityRepo := postgres.NewActivityRepo(d.Pool)
	notificationsRepo := postgres.NewNotificationsRepo(d.Pool)

	// services
	accountsSvc := accounts.NewService(usersRepo, d.JWT)
	tasksSvc := tasks.NewService(tasksRepo, activityRepo, d.Notifier, d.Log)

	// handlers
	authHandler := handlers.NewAuthHandler(accountsSvc, d.Log)
	usersHandler := handlers.NewUsersHandler(accountsSvc)
	tasksHandler := handlers.NewTasksHandler(tasksSvc)
	projectsHandler := handlers.NewProjectsHandler(projectsRepo)
	milestonesHandler := handlers.NewMilestonesHandler(milestonesRepo)
	teamsHandler := handlers.NewTeamsHandler(teamsRepo)
	activitiesHandler := handlers.NewActivitiesHandler(activityRepo)
	notificationsHandler := handlers.NewNotificationsHandler(notificationsRepo)

	authMW := middlewares.NewAuthMiddleware(d.JWT)

	v1 := r.Group("/api/v1")
	v1.Use(middlewares.RequireJSON())

	// public
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	// everything else requires a valid token
	authed := v1.Group("/", authMW.RequireAuth())

	authed.GET("/users/me", usersHandler.Me)
	authed.GET("/users", usersHandler.List)
	authed.GET("/users/:id", usersHandler.Get)
	authed.DELETE("/users/:id", authMW.RequireRole(user.RoleAdmin), usersHandler.Delete)

	authed.GET("/projects", projectsHandler.List)
	authed.GET("/projects/:id", projectsHandler.Get)
	authed.POST("/projects", authMW.RequireRole(user.RoleManager), projectsHandler.Create)
	authed.PUT("/projects/:id", authMW.RequireRole(user.RoleManager), projectsHandler.Update)
	authed.DELETE("/projects/:id", authMW.RequireRole(user.RoleManager), projectsHandler.Delete)

	authed.GET("/projects/:id/tasks", tasksHandler.ListByProject)

	authed.GET("/projects/:id/milestones", milestonesHandler.ListByProject)
	authed.POST("/projects/:id/milestones", authMW.RequireRole(user.RoleManager), milestonesHandler.Create)
	authed.GET("/milestones/:id", milestonesHandler.Get)
	authed.PUT("/milestones/:id", authMW.RequireRole(user.RoleManager), milestonesHandler.Update)
	authed.DELETE("/milestones/:id", authMW.RequireRole(user.RoleManager), milestonesHandler.Delete)

	authed.GET("/tasks", tasksHandler.List)
	authed.GET("/tasks/:id", tasksHandler.Get)
	authed.POST("/tasks", tasksHandler.Create)
	authed.PUT("/tasks/:id", tasksHandler.Update)
	authed.POST("/tasks/:id/assign", tasksHandler.Assign)
	authed.POST("/tasks/:id/hours", tasksHandler.LogHours)
	authed.DELETE("/tasks/:id", tasksHandler.Delete)

	authed.GET("/teams", teamsHandler.List)
	authed.GET("/teams/:id", teamsHandler.Get)
	authed.POST("/teams", authMW.RequireRole(user.RoleManager), teamsHandler.Create)
	authed.PUT("/teams/:id", authMW.RequireRole(user.RoleManager), teamsHandler.Update)
	authed.DELETE("/teams/:id", authMW.RequireRole(user.RoleAdmin), teamsHandler.Delete)
	authed.GET("/teams/:id/members", teamsHandler.ListMembers)
	authed.POST("/teams/:id/members", authMW.RequireRole(user.RoleManager), teamsHandler.AddMember)

	authed.GET("/activities", activitiesHandler.ListRecent)

	authed.GET("/notifications", notificationsHandler.List)
	authed.GET("/notifications/unread-count", notificationsHandler.UnreadCount)
	authed.POST("/notifications/:id/read", notificationsHandler.MarkRead)
	authed.POST("/notifications/read-all", notificationsHandler.MarkAllRead)
	authed.DELETE("/notifications/:id", notificationsHandler.Delete)

	return r
}
