package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/synapsehq/synapse-backend/api/controllers"
	"github.com/synapsehq/synapse-backend/api/middleware"
	"github.com/synapsehq/synapse-backend/internal/chat"
	"github.com/synapsehq/synapse-backend/internal/files"
	"github.com/synapsehq/synapse-backend/internal/meetings"
	"github.com/synapsehq/synapse-backend/internal/memberships"
	"github.com/synapsehq/synapse-backend/internal/projects"
	"github.com/synapsehq/synapse-backend/internal/tasks"
	"github.com/synapsehq/synapse-backend/internal/users"
	"github.com/synapsehq/synapse-backend/pkg/auth/session"
	"github.com/synapsehq/synapse-backend/pkg/config"
	"github.com/synapsehq/synapse-backend/pkg/db"
	"github.com/synapsehq/synapse-backend/pkg/logger"
	"github.com/synapsehq/synapse-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	membershipService memberships.Service,
	projectService projects.Service,
	userService users.Service,
	chatService chat.Service,
	fileService files.Service,
	taskService tasks.Service,
	meetingService meetings.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.Idempotency(redisClient, logg))
		r.Use(middleware.RateLimit(cfg.RateLimit, redisClient, logg))

		r.Get("/me", controllers.Me(userService, logg))
		r.Put("/me", controllers.UpdateMe(userService, logg))

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", controllers.ProjectList(projectService, logg))
			r.Post("/", controllers.ProjectCreate(membershipService, logg))
			r.Get("/search", controllers.ProjectSearch(projectService, logg))
			r.Get("/mine", controllers.ProjectMine(projectService, logg))

			r.Route("/{projectId}", func(r chi.Router) {
				r.Get("/", controllers.ProjectDetail(projectService, logg))
				r.Get("/membership", controllers.ProjectMembershipStatus(membershipService, logg))
				r.Get("/members", controllers.ProjectMembers(membershipService, logg))
				r.Post("/leave", controllers.ProjectLeave(membershipService, logg))

				r.Route("/requests", func(r chi.Router) {
					r.Post("/", controllers.RequestToJoin(membershipService, logg))
					r.Post("/{requestId}/accept", controllers.RequestAccept(membershipService, logg))
					r.Post("/{requestId}/reject", controllers.RequestReject(membershipService, logg))
				})

				r.Route("/messages", func(r chi.Router) {
					r.Get("/", controllers.ChatList(chatService, logg))
					r.Post("/", controllers.ChatPost(chatService, logg))
				})

				r.Route("/files", func(r chi.Router) {
					r.Get("/", controllers.FileList(fileService, logg))
					r.Post("/", controllers.FileAdd(fileService, logg))
				})

				r.Route("/tasks", func(r chi.Router) {
					r.Get("/", controllers.TaskList(taskService, logg))
					r.Post("/", controllers.TaskCreate(taskService, logg))
				})

				r.Route("/meetings", func(r chi.Router) {
					r.Get("/", controllers.MeetingList(meetingService, logg))
					r.Post("/", controllers.MeetingCreate(meetingService, logg))
				})
			})
		})

		r.Route("/requests", func(r chi.Router) {
			r.Get("/sent", controllers.RequestsSent(membershipService, logg))
			r.Get("/received", controllers.RequestsReceived(membershipService, logg))
			r.Delete("/{requestId}", controllers.RequestCancel(membershipService, logg))
		})

		r.Delete("/files/{fileId}", controllers.FileRemove(fileService, logg))
		r.Patch("/tasks/{taskId}", controllers.TaskUpdateStatus(taskService, logg))
		r.Delete("/tasks/{taskId}", controllers.TaskDelete(taskService, logg))
		r.Patch("/meetings/{meetingId}", controllers.MeetingUpdate(meetingService, logg))
		r.Delete("/meetings/{meetingId}", controllers.MeetingCancel(meetingService, logg))
	})

	return r
}
