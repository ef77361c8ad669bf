package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"

	"github.com/leadmarket/leadmarket/pkg/apis/options"
	"github.com/leadmarket/leadmarket/pkg/app"
	"github.com/leadmarket/leadmarket/pkg/authorization"
	"github.com/leadmarket/leadmarket/pkg/identity"
	"github.com/leadmarket/leadmarket/pkg/middleware"
	"github.com/leadmarket/leadmarket/pkg/storage"
)

// LeadMarket is the assembled application: the middleware chain wrapping the
// router. Every request passes through the authorization gate before it can
// reach a handler.
type LeadMarket struct {
	handler http.Handler
}

// NewLeadMarket wires the middleware chain and routes from validated options
// and an opened store.
func NewLeadMarket(opts *options.Options, store *storage.Storage) (*LeadMarket, error) {
	if opts.Secret == "" {
		return nil, fmt.Errorf("cannot build app without a secret")
	}

	secret := []byte(opts.Secret)
	resolver := identity.NewTokenResolver(secret)
	issuer := identity.NewTokenIssuer(secret, opts.TokenTTL)
	engine := authorization.NewEngine()

	authHandler := app.NewAuthHandler(store.Users, issuer, &opts.Cookie)
	leadsHandler := app.NewLeadsHandler(store.Leads)

	router := mux.NewRouter()

	router.HandleFunc("/ping", pingHandler).Methods("GET")
	if opts.EnableMetrics {
		router.Handle("/metrics", middleware.NewMetricsHandlerWithDefaultRegistry()).Methods("GET")
	}

	router.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	router.HandleFunc("/api/auth/logout", authHandler.Logout).Methods("POST")
	router.HandleFunc("/api/auth/me", authHandler.Whoami).Methods("GET")

	router.HandleFunc("/api/dashboard/affiliate/leads", leadsHandler.Browse).Methods("GET")
	router.HandleFunc("/api/dashboard/advertiser/leads", leadsHandler.ListOwn).Methods("GET")
	router.HandleFunc("/api/dashboard/advertiser/leads", leadsHandler.Create).Methods("POST")
	router.HandleFunc("/api/dashboard/advertiser/leads/{id}", leadsHandler.Update).Methods("PUT")
	router.HandleFunc("/api/dashboard/advertiser/leads/{id}", leadsHandler.Delete).Methods("DELETE")

	router.HandleFunc(authorization.LoginPath, app.LoginPage).Methods("GET")

	// Page areas the gate protects. Route order does not matter here, the
	// verdict was already decided by path class before the router runs.
	router.PathPrefix("/admin").Handler(app.AreaPage("Admin Console"))
	router.PathPrefix("/dashboard/affiliate").Handler(app.AreaPage("Affiliate Dashboard"))
	router.PathPrefix("/dashboard/advertiser").Handler(app.AreaPage("Advertiser Dashboard"))
	router.PathPrefix("/dashboard").Handler(app.AreaPage("Dashboard"))
	router.PathPrefix("/").Handler(app.AreaPage("Lead Market"))

	chain := alice.New(middleware.NewScope(opts.RequestIDHeader))
	if opts.EnableMetrics {
		chain = chain.Append(middleware.NewRequestMetricsWithDefaultRegistry())
	}
	chain = chain.Append(
		middleware.NewRequestLogger(),
		middleware.NewIdentityLoader(resolver, opts.Cookie.Name),
		middleware.NewAuthorize(engine),
	)

	return &LeadMarket{handler: chain.Then(router)}, nil
}

func (l *LeadMarket) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	l.handler.ServeHTTP(rw, req)
}

func pingHandler(rw http.ResponseWriter, _ *http.Request) {
	rw.WriteHeader(http.StatusOK)
	fmt.Fprint(rw, "OK")
}
