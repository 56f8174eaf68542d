package main

import (
	"context"
	"net"
	"net/http"
	"os"

	"github.com/elibdev/elib/pkg/config"
	"github.com/elibdev/elib/pkg/database"
	"github.com/elibdev/elib/pkg/migrations"
	"github.com/elibdev/elib/pkg/objectstore"
	"github.com/elibdev/elib/pkg/server"
	"github.com/elibdev/elib/pkg/version"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	log.Info("starting elib", logger.Data{"version": version.Version})

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	// The staging area for uploads must exist before the first request.
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		log.Err(err).Fatal("uploads directory error")
	}
	log.Info("uploads directory initialized", logger.Data{"path": cfg.UploadsDir})

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	group, err := migrations.BringUpToDate(ctx, db)
	if err != nil {
		log.Err(err).Fatal("migrations error")
	}
	if group.ID == 0 {
		log.Info("no new migrations to run")
	} else {
		log.Info("migrated to new group", logger.Data{"group_id": group.ID, "migration_names": group.Migrations.String()})
	}

	uploader, err := objectstore.NewCloudinary(cfg.CloudinaryURL)
	if err != nil {
		log.Err(err).Fatal("object store error")
	}

	srv, err := server.New(cfg, db, uploader)
	if err != nil {
		log.Err(err).Fatal("server error")
	}

	graceful := signals.Setup()

	go func() {
		lc := net.ListenConfig{}
		listener, err := lc.Listen(ctx, "tcp", srv.Addr)
		if err != nil {
			log.Err(err).Fatal("failed to bind port")
		}

		actualPort := listener.Addr().(*net.TCPAddr).Port
		log.Info("server started", logger.Data{"port": actualPort})

		err = srv.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Fatal("server stopped")
		}
		log.Info("server stopped")
	}()

	<-graceful
	log.Info("starting graceful shutdown")

	err = srv.Shutdown(ctx)
	if err != nil {
		log.Err(err).Error("server shutdown error")
	}
	log.Info("server shutdown")

	err = db.Close()
	if err != nil {
		log.Err(err).Error("database close error")
	}
	log.Info("database closed")
}
