package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"controlling_kiln/internal/control"
	"controlling_kiln/internal/handlers"
	"controlling_kiln/internal/kilnsim"
	"controlling_kiln/internal/logger"
	"controlling_kiln/internal/profilestore"
	"controlling_kiln/internal/repository"
	"controlling_kiln/internal/repository/db"
	"controlling_kiln/internal/server"
	"controlling_kiln/internal/service"

	_ "controlling_kiln/docs"

	"github.com/spf13/viper"
)

const defaultProfilePath = "configs/profile.json"

func main() {
	// load config.yml first so the log level is configurable
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(logLevel())

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	clock := control.SystemClock{}
	plant := kilnsim.New(kilnsim.Config{
		AmbientC:        viper.GetFloat64("sim.ambient_c"),
		HeatRateCPerSec: viper.GetFloat64("sim.heat_rate_c_per_sec"),
		CoolRateCPerSec: viper.GetFloat64("sim.cool_rate_c_per_sec"),
	}, clock)
	panel := kilnsim.NewPanel()
	source := profilestore.NewFileSource(profilePath(), log)

	services := service.NewService(repos, plant, panel, source, clock, log, service.Config{
		SigningKey: viper.GetString("auth.signing_key"),
		Tick:       viper.GetDuration("run.tick"),
		Poll:       viper.GetDuration("run.poll"),
		Idle:       viper.GetDuration("run.idle"),
	})
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// load the firing profile at boot; an unreadable document degrades
	// to an empty profile and is reloadable over the API
	if profile, err := services.Kiln.ReloadProfile(ctx); err != nil {
		log.Warnw("initial profile load failed", "err", err)
	} else {
		log.Infow("profile loaded", "phases", profile.Count())
	}

	// start the control loop
	go services.RunLoop.Run(ctx)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

func logLevel() string {
	if lvl := viper.GetString("log.level"); lvl != "" {
		return lvl
	}
	return logger.InfoLevel
}

func profilePath() string {
	if p := viper.GetString("profile.path"); p != "" {
		return p
	}
	return defaultProfilePath
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "kiln.db")
		dbPath = "kiln.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the control loop and other background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
