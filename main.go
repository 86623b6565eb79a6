package main

import (
	"crypto/tls"
	"encoding/json"
	stdlog "log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/username/finpulse/backend/src/config"
	"github.com/username/finpulse/backend/src/handlers"
	"github.com/username/finpulse/backend/src/logger"
	"github.com/username/finpulse/backend/src/processors"
	"github.com/username/finpulse/backend/src/services"
	"golang.org/x/time/rate"
)

func proxyHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Forwarded-Proto") == "https" {
			r.URL.Scheme = "https"
			r.TLS = &tls.ConnectionState{}
		}
		next.ServeHTTP(w, r)
	})
}

var limiter *rate.Limiter

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000":     true,
			config.Cfg.FrontendBaseURL: true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-Requested-With")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("FinPulse backend server starting...")

	limiter = rate.NewLimiter(rate.Every(config.Cfg.RateLimitInterval), config.Cfg.RateLimitBurst)

	resultCache := cache.New(config.Cfg.ResultCacheTTL, config.Cfg.ResultCacheCleanup)

	loanNormalizer := processors.NewLoanNormalizer()
	balanceAggregator := processors.NewBalanceAggregator()
	incomeCategorizer := processors.NewIncomeCategorizer()
	debtCalculator := processors.NewDebtCalculator()
	paymentSizer := processors.NewPaymentSizer()
	solvencySimulator := processors.NewSolvencySimulator(config.Cfg.HorizonDays, config.Cfg.SafetyBuffer)
	refinanceOptimizer := processors.NewRefinanceOptimizer(config.Cfg.DTIThreshold, config.Cfg.MinRateDiff)
	savingsPlanner := processors.NewSavingsPlanner()

	engineService := services.NewEngineService(
		loanNormalizer,
		balanceAggregator,
		incomeCategorizer,
		debtCalculator,
		paymentSizer,
		solvencySimulator,
		refinanceOptimizer,
		savingsPlanner,
		services.EngineDefaults{
			RepaymentSpeed:    config.Cfg.RepaymentSpeed,
			RepaymentStrategy: config.Cfg.RepaymentStrategy,
			MinRateDiff:       config.Cfg.MinRateDiff,
		},
		resultCache,
	)

	analysisHandler := handlers.NewAnalysisHandler(engineService)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(proxyHeadersMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "FinPulse Backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.HandleHealth)

		r.Route("/analyze", func(r chi.Router) {
			r.Post("/dashboard", analysisHandler.HandleDashboard)
			r.Post("/loans", analysisHandler.HandleLoans)
			r.Post("/refinance", analysisHandler.HandleRefinance)
			r.Post("/deposits", analysisHandler.HandleDeposits)
		})
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
