// Package api assembles the HTTP surface: the middleware pipeline,
// route table and request handlers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aionhq/gate"
	"github.com/aionhq/gate/apierror"
	"github.com/aionhq/gate/auth/realm_chain"
	"github.com/aionhq/gate/internal/pkg/metrics"
	"github.com/aionhq/gate/internal/pkg/middleware"
	"github.com/aionhq/gate/internal/pkg/throttle"
	"github.com/aionhq/gate/pkg/log"
	"github.com/aionhq/gate/services"
	"github.com/aionhq/gate/util"
)

type APIOptions struct {
	Chain           *realm_chain.RealmChain
	Throttle        *throttle.Throttle
	Responder       *apierror.Responder
	UserService     *services.UserService
	SecurityService *services.SecurityService
	Logger          log.StdLogger
}

type ApplicationHandler struct {
	Router http.Handler
	A      *APIOptions

	M *middleware.Middleware
}

func NewApplicationHandler(a *APIOptions) *ApplicationHandler {
	m := middleware.NewMiddleware(&middleware.CreateMiddleware{
		Chain:     a.Chain,
		Throttle:  a.Throttle,
		Responder: a.Responder,
		Logger:    a.Logger,
	})

	return &ApplicationHandler{A: a, M: m}
}

func (a *ApplicationHandler) BuildRoutes() *chi.Mux {
	router := chi.NewMux()

	router.Use(chiMiddleware.RequestID)
	router.Use(a.M.WriteRequestIDHeader)
	router.Use(a.M.InstrumentRequests())
	router.Use(a.M.Recover)
	router.Use(a.M.SetupCORS)
	router.Use(a.M.JsonResponse)
	router.Use(a.M.Throttle)
	router.Use(a.M.Authenticate)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = render.Render(w, r, util.NewServerResponse("Gate "+gate.GetVersion(), nil, http.StatusOK))
	})

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/ui/auth", func(authRouter chi.Router) {
		authRouter.Post("/register", a.RegisterUser)
		authRouter.Post("/login", a.LoginUser)
		authRouter.Post("/token/refresh", a.RefreshToken)
	})

	router.Route("/ui/keys", func(keyRouter chi.Router) {
		keyRouter.Use(a.M.RequireAuth())

		keyRouter.Post("/", a.CreateAPIKey)
		keyRouter.Delete("/{keyID}", a.RevokeAPIKey)
	})

	router.Route("/v1", func(v1Router chi.Router) {
		v1Router.With(a.M.RequireAuth()).Get("/me", a.GetCurrentUser)
	})

	metrics.Register()
	a.Router = router

	return router
}
