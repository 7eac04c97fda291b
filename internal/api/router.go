package api

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "github.com/rohits-web03/safehands/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rohits-web03/safehands/internal/api/handlers"
	"github.com/rohits-web03/safehands/internal/api/middleware"
	"github.com/rohits-web03/safehands/internal/config"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// RouterOptions carries what the router needs beyond the handlers.
type RouterOptions struct {
	Log      zerolog.Logger
	Registry *prometheus.Registry
	Cors     cors.Options
}

// OptionsFromConfig fills the CORS policy from cfg.
func OptionsFromConfig(cfg config.Config, l zerolog.Logger, reg *prometheus.Registry) RouterOptions {
	return RouterOptions{Log: l, Registry: reg, Cors: cfg.CorsOptions()}
}

func SetupRouter(h *handlers.Handler, opts RouterOptions) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(opts.Cors)
	requireAuth := middleware.AuthMiddleware(h.Sessions, opts.Log)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)
	mainMux.Handle("GET /metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	mainMux.HandleFunc("POST /api/v1/waitlist", h.JoinWaitlist)

	authMux := http.NewServeMux()
	authMux.HandleFunc("POST /sign-up", h.RegisterUser)
	authMux.HandleFunc("POST /login", h.LoginUser)
	authMux.HandleFunc("GET /google/login", h.HandleGoogleLogin)
	authMux.HandleFunc("GET /google/callback", h.HandleGoogleCallback)
	authMux.Handle("POST /logout", requireAuth(http.HandlerFunc(h.Logout)))
	authMux.Handle("PUT /password", requireAuth(http.HandlerFunc(h.ChangePassword)))
	authMux.Handle("GET /me", requireAuth(http.HandlerFunc(h.Me)))

	mainMux.Handle("/api/v1/auth/",
		http.StripPrefix("/api/v1/auth", authMux),
	)

	// ---------- PROTECTED ROUTES ----------
	protectedMux := http.NewServeMux()

	protectedMux.HandleFunc("GET /contacts", h.ListContacts)
	protectedMux.HandleFunc("POST /contacts", h.CreateContact)
	protectedMux.HandleFunc("DELETE /contacts/{id}", h.DeleteContact)
	protectedMux.HandleFunc("GET /contacts/{id}/assets", h.AssetsForContact)

	protectedMux.HandleFunc("GET /assets", h.ListAssets)
	protectedMux.HandleFunc("POST /assets", h.CreateAsset)
	protectedMux.HandleFunc("GET /assets/unassigned", h.UnassignedAssets)
	protectedMux.HandleFunc("GET /assets/{id}", h.GetAsset)
	protectedMux.HandleFunc("PATCH /assets/{id}", h.UpdateAsset)
	protectedMux.HandleFunc("DELETE /assets/{id}", h.DeleteAsset)

	protectedMux.HandleFunc("POST /assets/{id}/file/presign", h.PresignUpload)
	protectedMux.HandleFunc("POST /assets/{id}/file/complete", h.CompleteUpload)
	protectedMux.HandleFunc("GET /assets/{id}/file", h.PresignDownload)

	protectedMux.HandleFunc("GET /assets/{id}/contacts", h.ContactsForAsset)
	protectedMux.HandleFunc("PUT /assets/{id}/contacts/{contactID}", h.ShareWithContact)
	protectedMux.HandleFunc("DELETE /assets/{id}/contacts/{contactID}", h.UnshareWithContact)
	protectedMux.HandleFunc("PUT /assets/{id}/intent", h.SetAssetIntent)

	protectedMux.HandleFunc("GET /collections", h.ListCollections)
	protectedMux.HandleFunc("POST /collections", h.CreateCollection)
	protectedMux.HandleFunc("DELETE /collections/{id}", h.DeleteCollection)

	protectedMux.HandleFunc("GET /assignments", h.ListAssignments)
	protectedMux.HandleFunc("POST /assignments", h.CreateAssignment)
	protectedMux.HandleFunc("GET /assignments/missing-intent", h.MissingIntent)
	protectedMux.HandleFunc("PATCH /assignments/{id}", h.UpdateAssignment)
	protectedMux.HandleFunc("DELETE /assignments/{id}", h.DeleteAssignment)

	protectedMux.HandleFunc("GET /profile", h.GetProfile)
	protectedMux.HandleFunc("PUT /profile", h.UpdateProfile)
	protectedMux.HandleFunc("POST /onboarding", h.CompleteOnboarding)

	protectedMux.HandleFunc("GET /social-intentions", h.ListSocialIntentions)
	protectedMux.HandleFunc("PUT /social-intentions/{platform}", h.SaveSocialIntention)
	protectedMux.HandleFunc("DELETE /social-intentions/{platform}", h.DeleteSocialIntention)

	protectedMux.HandleFunc("GET /intentions", h.GetIntentions)

	mainMux.Handle("/api/v1/",
		http.StripPrefix("/api/v1", requireAuth(protectedMux)),
	)

	opts.Log.Info().Msg("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(opts.Log, middleware.NewMetrics(opts.Registry))(handler)
	handler = middleware.Recovery(opts.Log)(handler)
	return handler
}
