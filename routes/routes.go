package routes

import (
	"net/http"

	_ "github.com/Dosada05/judging-system/docs"
	"github.com/Dosada05/judging-system/handlers"
	"github.com/Dosada05/judging-system/middleware"
	"github.com/Dosada05/judging-system/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Judges      *handlers.JudgeHandler
	Competitors *handlers.CompetitorHandler
	Questions   *handlers.QuestionHandler
	Scoring     *handlers.ScoringHandler
	Leaderboard *handlers.LeaderboardHandler
	Settings    *handlers.SettingsHandler
	Banner      *handlers.BannerHandler
	WebSocket   *handlers.WebSocketHandler

	// Metrics serves /metrics; nil disables the route.
	Metrics http.Handler
}

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if h.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.Metrics)
	}
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Post("/auth/login", h.Auth.Login)

	authenticate := middleware.Authenticate(opts.JWTSecret)

	router.Route("/admin", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireRole(models.RoleAdmin))

		r.Route("/judges", func(r chi.Router) {
			r.Get("/", h.Judges.ListJudges)
			r.Post("/", h.Judges.CreateJudge)
			r.Get("/{judgeID}", h.Judges.GetJudge)
			r.Put("/{judgeID}", h.Judges.UpdateJudge)
			r.Delete("/{judgeID}", h.Judges.DeleteJudge)
		})

		r.Route("/competitors", func(r chi.Router) {
			r.Get("/", h.Competitors.ListCompetitors)
			r.Post("/", h.Competitors.CreateCompetitor)
			r.Get("/{competitorID}", h.Competitors.GetCompetitor)
			r.Put("/{competitorID}", h.Competitors.UpdateCompetitor)
			r.Delete("/{competitorID}", h.Competitors.DeleteCompetitor)
		})

		r.Route("/questions", func(r chi.Router) {
			r.Get("/", h.Questions.ListQuestions)
			r.Post("/", h.Questions.CreateQuestion)
			r.Get("/{questionID}", h.Questions.GetQuestion)
			r.Put("/{questionID}", h.Questions.UpdateQuestion)
			r.Delete("/{questionID}", h.Questions.DeleteQuestion)
		})

		r.Post("/scores/recompute", h.Scoring.RecomputeAll)
		r.Get("/leaderboard", h.Leaderboard.GetLeaderboard)

		r.Get("/intro", h.Settings.GetIntro)
		r.Put("/intro", h.Settings.SetIntro)
		r.Delete("/intro", h.Settings.ClearIntro)

		r.Get("/banner", h.Banner.GetBanner)
		r.Put("/banner", h.Banner.UploadBanner)
		r.Delete("/banner", h.Banner.DeleteBanner)
	})

	router.Route("/judge", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireRole(models.RoleJudge))

		r.Get("/context", h.Scoring.GetContext)
		r.Get("/scores", h.Scoring.GetMyScores)
		r.Get("/competitors/{competitorID}/answers", h.Scoring.GetAnswers)
		r.Put("/competitors/{competitorID}/answers", h.Scoring.SubmitAnswers)
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireRole(models.RoleAdmin))
		r.Get("/ws/leaderboard", h.WebSocket.ServeLeaderboard)
	})
}
