package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/olalere-abiodun/assignmentSubmission/internal/assignment"
	"github.com/olalere-abiodun/assignmentSubmission/internal/auth"
	"github.com/olalere-abiodun/assignmentSubmission/internal/course"
	"github.com/olalere-abiodun/assignmentSubmission/internal/enrollment"
	"github.com/olalere-abiodun/assignmentSubmission/internal/httpx"
	"github.com/olalere-abiodun/assignmentSubmission/internal/middleware"
	"github.com/olalere-abiodun/assignmentSubmission/internal/submission"
)

// Deps are the handlers and collaborators the router is built from.
type Deps struct {
	Accounts      *auth.Service
	Auth          *auth.Handler
	Courses       *course.Handler
	Enrollments   *enrollment.Handler
	Assignments   *assignment.Handler
	Submissions   *submission.Handler
	CORSOrigins   []string
	Logger        *slog.Logger
	RequestLogger bool
}

// NewRouter wires every route of the service.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	if d.RequestLogger {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Welcome To The Assignment Submission System"})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(d.Accounts, d.Logger)

	// Account routes
	r.Route("/users", func(r chi.Router) {
		r.Post("/signup", d.Auth.Signup)
		r.Post("/login", d.Auth.Login)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/logout", d.Auth.Logout)
			r.Get("/me", d.Auth.Me)
			r.Put("/me", d.Auth.UpdateMe)
		})
	})

	// Everything below needs a bearer token.
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Route("/courses", func(r chi.Router) {
			r.Post("/", d.Courses.Create)
			r.Get("/", d.Courses.List)
			r.Get("/code/{code}", d.Courses.GetByCode)
			r.Get("/{id}", d.Courses.Get)
			r.Put("/{id}", d.Courses.Update)
			r.Post("/{id}/enroll", d.Enrollments.Enroll)
			r.Delete("/{id}/enroll", d.Enrollments.Unenroll)
			r.Post("/{id}/assignments", d.Assignments.Create)
			r.Get("/{id}/assignments", d.Assignments.ListForCourse)
		})
		r.Get("/enrollments/me", d.Enrollments.Mine)

		r.Route("/assignments/{id}", func(r chi.Router) {
			r.Get("/", d.Assignments.Get)
			r.Post("/submissions", d.Submissions.Submit)
			r.Get("/submissions", d.Submissions.ListForAssignment)
		})
		r.Get("/submissions/{id}/file", d.Submissions.DownloadFile)
	})

	return r
}
