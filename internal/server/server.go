package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mtlahti/choreboard/internal/backup"
	"github.com/mtlahti/choreboard/internal/handler"
	"github.com/mtlahti/choreboard/internal/middleware"
	"github.com/mtlahti/choreboard/internal/push"
	"github.com/mtlahti/choreboard/internal/store"
	"github.com/mtlahti/choreboard/internal/store/memory"
	ws "github.com/mtlahti/choreboard/internal/websocket"
)

// Config holds the non-store inputs the server needs.
type Config struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	ReminderHour    int
	Backup          backup.Config
}

type Server struct {
	hub           *ws.Hub
	dayPlanH      *handler.DayPlanHandler
	contentH      *handler.ContentHandler
	authH         *handler.AuthHandler
	pushH         *handler.PushHandler
	dayPlans      store.DayPlans
	users         store.Users
	contents      store.Contents
	sessions      store.Sessions
	pushStore     store.PushSubscriptions
	rateLimiter   *middleware.RateLimiter
	backupManager *backup.Manager
	pushService   *push.Service
	pushScheduler *push.Scheduler
	logger        *slog.Logger
}

func New(st *memory.Store, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	dayPlans := memory.NewDayPlanStore(st)
	users := memory.NewUserStore(st)
	contents := memory.NewContentStore(st)
	sessions := memory.NewSessionStore(st)
	pushStore := memory.NewPushStore(st)

	backupMgr := backup.NewManager(cfg.Backup, st, logger.With("component", "backup"))

	var pushSvc *push.Service
	var pushSched *push.Scheduler
	var pushH *handler.PushHandler
	if cfg.VAPIDPublicKey != "" && cfg.VAPIDPrivateKey != "" {
		pushLogger := logger.With("component", "push")
		pushSvc = push.NewService(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)
		pushSched = push.NewScheduler(pushSvc, pushStore, dayPlans, cfg.ReminderHour, pushLogger)
		pushH = handler.NewPushHandler(pushStore, pushSvc, pushLogger)
	}

	return &Server{
		hub:           hub,
		dayPlanH:      handler.NewDayPlanHandler(dayPlans, hub, logger.With("component", "day_plan")),
		contentH:      handler.NewContentHandler(contents, hub, logger.With("component", "content")),
		authH:         handler.NewAuthHandler(users, sessions, logger.With("component", "auth")),
		pushH:         pushH,
		dayPlans:      dayPlans,
		users:         users,
		contents:      contents,
		sessions:      sessions,
		pushStore:     pushStore,
		rateLimiter:   middleware.NewRateLimiter(),
		backupManager: backupMgr,
		pushService:   pushSvc,
		pushScheduler: pushSched,
		logger:        logger,
	}
}

// DayPlans returns the day-plan store for start-up seeding.
func (s *Server) DayPlans() store.DayPlans {
	return s.dayPlans
}

// Contents returns the content store for start-up seeding.
func (s *Server) Contents() store.Contents {
	return s.contents
}

// Sessions returns the session store for cleanup tasks.
func (s *Server) Sessions() store.Sessions {
	return s.sessions
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// BackupManager returns the backup manager.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

// PushScheduler returns the push notification scheduler, nil when VAPID keys
// are not configured.
func (s *Server) PushScheduler() *push.Scheduler {
	return s.pushScheduler
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes, wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessions, s.users)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	// Auth routes that require authentication
	mux.HandleFunc("POST /logout", s.authH.Logout)
	mux.HandleFunc("GET /api/me", s.authH.Me)
	mux.HandleFunc("PUT /api/me", s.authH.UpdateMe)

	// Day plan API routes
	mux.HandleFunc("GET /api/week", s.dayPlanH.Week)
	mux.HandleFunc("GET /api/days/{date}", s.dayPlanH.Get)
	mux.HandleFunc("PUT /api/days/{date}", s.dayPlanH.Upsert)
	mux.HandleFunc("POST /api/days/{date}/tasks/{kind}", s.dayPlanH.AssignTask)
	mux.HandleFunc("PUT /api/days/{date}/alone-in-kitchen", s.dayPlanH.SetAloneInKitchen)
	mux.HandleFunc("PUT /api/days/{date}/dish", s.dayPlanH.SetDishOfTheDay)
	mux.HandleFunc("POST /api/days/{date}/reset", s.dayPlanH.Reset)

	// Shopping list routes
	mux.HandleFunc("POST /api/days/{date}/shopping-list/items", s.dayPlanH.AddShoppingItem)
	mux.HandleFunc("DELETE /api/days/{date}/shopping-list/items/{index}", s.dayPlanH.RemoveShoppingItem)
	mux.HandleFunc("PUT /api/days/{date}/shopping-list", s.dayPlanH.ReplaceShoppingList)

	// Content routes; writes are admin-gated
	mux.HandleFunc("GET /api/content", s.contentH.List)
	mux.HandleFunc("GET /api/content/{key}", s.contentH.Get)
	mux.Handle("PUT /api/content/{key}", middleware.RequireAdmin(http.HandlerFunc(s.contentH.Upsert)))
	mux.Handle("DELETE /api/content/{key}", middleware.RequireAdmin(http.HandlerFunc(s.contentH.Delete)))

	// Push notification API routes
	if s.pushH != nil {
		mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
		mux.HandleFunc("DELETE /api/push/subscriptions/{id}", s.pushH.Unsubscribe)
		mux.HandleFunc("GET /api/push/vapid-key", s.pushH.GetVAPIDKey)
	}

	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))
}
