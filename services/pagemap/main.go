package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/relabs-tech/pagemap/core"
	"github.com/relabs-tech/pagemap/core/backend"
	"github.com/relabs-tech/pagemap/core/config"
	"github.com/relabs-tech/pagemap/core/csql"
	"github.com/relabs-tech/pagemap/core/logger"
	"github.com/relabs-tech/pagemap/core/notify"
	"github.com/relabs-tech/pagemap/core/store"
)

func main() {
	service, err := config.Load()
	if err != nil {
		panic(err)
	}

	level, err := service.Level()
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.InitLogger(level)
	rlog := logger.Default()
	if err != nil {
		rlog.WithError(err).Warnln("invalid LOG_LEVEL, falling back to info")
	}

	db, err := csql.Open(service.Postgres, service.PostgresPassword, service.PostgresSchema)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		panic(err)
	}

	var notifier core.Notifier
	if brokers := service.Brokers(); len(brokers) > 0 {
		k := notify.NewKafka(brokers, service.KafkaTopic)
		defer k.Close()
		notifier = k
		rlog.Infof("publishing change notifications to %s on %v", service.KafkaTopic, brokers)
	}

	router := mux.NewRouter()
	backend.New(&backend.Builder{
		Store:    store.NewPostgres(db),
		Router:   router,
		Notifier: notifier,
	})

	srv := &http.Server{
		Addr:              service.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		rlog.Infoln("Server is running on port", service.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			rlog.WithError(err).Errorln("HTTP server failed")
			stop()
		}
	}()

	<-ctx.Done()
	rlog.Infoln("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		rlog.WithError(err).Errorln("server shutdown failed")
	}
}
