package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sagelearning/sage-api/internal/api"
	apiMiddleware "github.com/sagelearning/sage-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordHasher)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	materialHandler := api.NewMaterialHandler(app.studyService, app.logger)
	studyHandler := api.NewStudyHandler(app.studyService, app.logger)
	cardHandler := api.NewCardHandler(app.cardReviewService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Material ingestion
			r.Post("/materials/text", materialHandler.IngestText)
			r.Post("/materials/upload", materialHandler.UploadDocument)
			r.Post("/materials/transcribe", materialHandler.TranscribeAudio)
			r.Get("/materials/{id}", materialHandler.GetMaterial)

			// Generation features over a material
			r.Post("/materials/{id}/summary", studyHandler.Summarize)
			r.Post("/materials/{id}/flashcards", studyHandler.GenerateFlashcards)
			r.Post("/materials/{id}/quiz", studyHandler.GenerateMCQs)
			r.Post("/materials/{id}/search", studyHandler.SemanticSearch)
			r.Post("/materials/{id}/concept-map", studyHandler.BuildConceptMap)
			r.Post("/materials/{id}/tutor", studyHandler.TutorReply)
			r.Post("/materials/{id}/kit", studyHandler.BuildStudyKit)

			// Standalone planning tools
			r.Post("/tools/essay-outline", studyHandler.EssayOutline)
			r.Post("/tools/lesson-plan", studyHandler.LessonPlan)
			r.Post("/tools/study-plan", studyHandler.StudyPlan)

			// Search history
			r.Get("/search/history", studyHandler.SearchHistory)

			// Quiz attempts
			r.Post("/attempts", studyHandler.RecordAttempt)
			r.Get("/attempts", studyHandler.ListAttempts)

			// Card review workflow
			r.Get("/cards/next", cardHandler.GetNextReviewCard)
			r.Post("/cards/{id}/review", cardHandler.SubmitReview)
			r.Post("/cards/{id}/postpone", cardHandler.PostponeCard)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
