package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sanisamoj/Borai-sub000/internal/api"
	"github.com/sanisamoj/Borai-sub000/internal/config"
	"github.com/sanisamoj/Borai-sub000/internal/db"
	"github.com/sanisamoj/Borai-sub000/internal/logger"
	"github.com/sanisamoj/Borai-sub000/internal/notify"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	hub := notify.NewHub()
	go hub.Run()
	defer hub.Stop()

	dispatcher := notify.NewDispatcher(hub, notify.NewSMTPMailer(conf.Mail), conf.Mail.Enabled)
	defer dispatcher.Wait()

	s := api.NewServer(conf, postgresDB, hub, dispatcher)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
