package main

import (
	"net/http"
	"os"
	"time"

	"know-your-doses/internal/platform/logger"
	"know-your-doses/internal/router"
)

// @title know-your-doses API
// @version 1.0
// @description Seguimiento de regímenes de medicación por persona: recetas con reglas de recurrencia, administración de dosis y reconciliación contra el historial.
// @BasePath /
func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r := router.NewRouter(router.Options{Log: log})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", logger.Fields{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", logger.Fields{"err": err.Error()})
		os.Exit(1)
	}
}
