package http

import (
	"net/http"
	"strings"
	"time"

	"mikkoo/internal/domain/user"
	"mikkoo/internal/http/handlers"
	"mikkoo/internal/http/metrics"
	httpmw "mikkoo/internal/http/middleware"
)

type RouterDependencies struct {
	PostingHandler     *handlers.PostingHandler
	ApplicationHandler *handlers.ApplicationHandler
	MetricsHandler     *metrics.Handler
	AuthMiddleware     *httpmw.AuthMiddleware
	Metrics            *metrics.Collector
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging, httpmw.BodyLimit(maxBodyBytes), httpmw.Recover, httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && path == "/postings":
			r.deps.PostingHandler.ListOpen(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/postings/") && path != "/postings/mine":
			r.deps.PostingHandler.Get(w, req)
			return
		}

		if strings.HasPrefix(path, "/postings") || strings.HasPrefix(path, "/applications") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodPost && path == "/postings":
		httpmw.RequireRole(user.RoleRequester)(http.HandlerFunc(r.deps.PostingHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/postings/mine":
		httpmw.RequireRole(user.RoleRequester)(http.HandlerFunc(r.deps.PostingHandler.ListByRequester)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/postings/") && strings.HasSuffix(path, "/close"):
		httpmw.RequireRole(user.RoleRequester)(http.HandlerFunc(r.deps.PostingHandler.Close)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/applications":
		httpmw.RequireRole(user.RoleProvider)(http.HandlerFunc(r.deps.ApplicationHandler.Submit)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications":
		r.deps.ApplicationHandler.List(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/accept"):
		httpmw.RequireRole(user.RoleRequester)(http.HandlerFunc(r.deps.ApplicationHandler.Accept)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/reject"):
		httpmw.RequireRole(user.RoleRequester)(http.HandlerFunc(r.deps.ApplicationHandler.Reject)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/withdraw"):
		httpmw.RequireRole(user.RoleProvider)(http.HandlerFunc(r.deps.ApplicationHandler.Withdraw)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}
