package handler

import (
	"fmt"
	"net/http"
	"net/http/pprof"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type routerSetup struct {
	router *mux.Router
}

// handleFunc is a replacement for mux.HandleFunc which enriches the handler's
// HTTP instrumentation with the pattern as the http.route.
func (s *routerSetup) handleFunc(path string, f func(http.ResponseWriter, *http.Request)) {
	handler := otelhttp.WithRouteTag(path, http.HandlerFunc(f))
	s.router.Handle(path, handler).Methods(http.MethodGet)
}

func SetupHandler(router *mux.Router, loader SeriesLoader) {
	h := NewSeriesHandler(loader)
	s := &routerSetup{router: router}

	router.Use(requestLogger())

	s.handleFunc("/", h.Index)
	s.handleFunc("/price", h.Price)
	s.handleFunc("/avg", h.Average)
	s.handleFunc("/similarity", h.Similarity)
	s.handleFunc("/pattern/surge", h.Surge)
	s.handleFunc("/pattern/surge/similarity", h.SurgeSimilarity)
	s.handleFunc("/leadlag", h.LeadLag)
	s.handleFunc("/coupling", h.Coupling)
}

// SetupPprofHandler registers the pprof endpoints under prefix.
func SetupPprofHandler(router *mux.Router, prefix string) {
	pprofRouter := router.PathPrefix(prefix).Subrouter()
	pprofRouter.HandleFunc("/", http.HandlerFunc(pprof.Index))
	pprofRouter.HandleFunc("/cmdline", http.HandlerFunc(pprof.Cmdline))
	pprofRouter.HandleFunc("/profile", http.HandlerFunc(pprof.Profile))
	pprofRouter.HandleFunc("/symbol", http.HandlerFunc(pprof.Symbol))
	pprofRouter.HandleFunc("/trace", http.HandlerFunc(pprof.Trace))

	for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
		pprofRouter.Handle(fmt.Sprintf("/%s", name), pprof.Handler(name))
	}
}
