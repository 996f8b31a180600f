package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/jmoiron/sqlx"
	"github.com/kardianos/osext"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/net/context"

	fyyur "github.com/derWhity/fyyur/internal"
	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/migrate"
	"github.com/derWhity/fyyur/internal/models"
	artistrepo "github.com/derWhity/fyyur/internal/repos/artist/sqlite"
	showrepo "github.com/derWhity/fyyur/internal/repos/show/sqlite"
	venuerepo "github.com/derWhity/fyyur/internal/repos/venue/sqlite"
	"github.com/derWhity/fyyur/internal/seed"
)

const (
	appName    = "Fyyur"
	appVersion = "0.1.0"
	dbFile     = "fyyur.db"
)

// Checks and tries to create the given directory recursively (or panics if this fails)
func checkAndCreateDir(path string, logger *logrus.Entry) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.WithField(log.FldPath, path).Info("Directory does not exist - trying to create...")
			if err = os.MkdirAll(path, os.ModePerm); err != nil {
				logger.WithError(err).Fatal("Failed to create directory")
			}
			logger.Info("Directory created successfully")
		} else {
			logger.WithError(err).Fatal("Stat has failed")
		}
	} else {
		if !fileInfo.IsDir() {
			logger.Fatalf("'%s' is not a directory. Remove the plain file if you want to continue", path)
		}
	}
}

// setup loads the configuration and opens the database with all migrations applied
func setup(configFile string) (context.Context, models.AppConfig, *sqlx.DB) {
	ctx := context.Background()

	// Initialize the logger
	logger := logrus.WithField(log.FldVersion, appVersion)
	logger.Infof("%s version %s is starting up...", appName, appVersion)
	ctx = ctxhelper.WithLogger(ctx, logger)

	// Load the main configuration file
	cs := fyyur.NewConfigService(configFile)
	if err := cs.Load(ctx); err != nil {
		logger.WithError(err).Error("Cannot load config. Using defaults")
	}
	if err := cs.ApplyEnv(ctx, ".env", filepath.Join(filepath.Dir(configFile), ".env")); err != nil {
		logger.WithError(err).Error("Cannot apply environment overrides")
	}
	conf := cs.GetConfig(ctx)
	if level, err := logrus.ParseLevel(conf.LogLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		logger.WithError(err).Warn("Unknown log level - keeping the default")
	}

	logger.Infof("Using '%s' as data directory", conf.DataDir)
	checkAndCreateDir(conf.DataDir, logger)

	// Set up the database connection and perform pending migrations
	db, err := migrate.OpenDatabase(filepath.Join(conf.DataDir, dbFile), logger)
	if err != nil {
		logger.WithError(err).Fatal("Database migration has failed. Please check database for consistency and try again.")
	}
	return ctx, conf, db
}

func serve(configFile string) {
	ctx, conf, db := setup(configFile)
	defer db.Close()
	logger := ctxhelper.Logger(ctx)

	showRepo := showrepo.New(db, logger)
	venueSrv := fyyur.NewVenueService(venuerepo.New(db, logger), showRepo, logger)
	artistSrv := fyyur.NewArtistService(artistrepo.New(db, logger), showRepo, logger)
	showSrv := fyyur.NewShowService(showRepo, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	httpLogger := logger.WithField(log.FldTransport, "HTTP")
	h := fyyur.MakeHTTPHandler(venueSrv, artistSrv, showSrv, reg, httpLogger)

	// Start listening
	errs := make(chan error)

	// Listen for stop signals that will end the service
	go func() {
		c := make(chan os.Signal, 2)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		err := fmt.Errorf("%s", <-c)
		logger.Info("Caught signal to stop. Shutting down.")
		errs <- err
	}()

	go func() {
		httpLogger.WithField(log.FldAddress, conf.ListenAddress).Info("Starting listening port")
		errs <- http.ListenAndServe(conf.ListenAddress, h)
	}()

	// Watchdog for systemd
	go func() {
		interval, err := daemon.SdWatchdogEnabled(false)
		if err != nil || interval == 0 {
			return
		}
		logger.Info("Activating systemd watchdog goroutine")
		port := conf.ListenAddress[strings.LastIndex(conf.ListenAddress, ":")+1:]
		url := fmt.Sprintf("http://127.0.0.1:%s/alive", port)
		for {
			if res, err := http.Get(url); err == nil {
				res.Body.Close()
				daemon.SdNotify(false, "WATCHDOG=1")
			}
			time.Sleep(interval / 3)
		}
	}()

	// Notify systemd that we are ready to go (if available)
	daemon.SdNotify(false, "READY=1")

	logger.WithError(<-errs).Error("Shutdown complete")
}

// writeConfig stores the effective configuration (file, .env files and environment) in the configuration file
func writeConfig(configFile string) error {
	logger := logrus.WithField(log.FldVersion, appVersion)
	ctx := ctxhelper.WithLogger(context.Background(), logger)
	cs := fyyur.NewConfigService(configFile)
	if err := cs.Load(ctx); err != nil {
		logger.WithError(err).Warn("Cannot load config. Starting from the defaults")
	}
	if err := cs.ApplyEnv(ctx, ".env", filepath.Join(filepath.Dir(configFile), ".env")); err != nil {
		return err
	}
	if err := cs.Write(ctx); err != nil {
		return err
	}
	logger.WithField(log.FldFile, configFile).Info("Configuration written")
	return nil
}

// importSeed loads the given seed file into the database
func importSeed(configFile, seedFile string) error {
	ctx, _, db := setup(configFile)
	defer db.Close()
	logger := ctxhelper.Logger(ctx)

	data, err := seed.Load(seedFile)
	if err != nil {
		return err
	}
	showRepo := showrepo.New(db, logger)
	im := &seed.Importer{
		Venues:  fyyur.NewVenueService(venuerepo.New(db, logger), showRepo, logger),
		Artists: fyyur.NewArtistService(artistrepo.New(db, logger), showRepo, logger),
		Shows:   fyyur.NewShowService(showRepo, logger),
	}
	_, err = im.Import(ctxhelper.WithLogger(ctx, logger.WithField(log.FldFile, seedFile)), data)
	return err
}

func main() {
	execDir, err := osext.ExecutableFolder()
	if err != nil {
		panic(err)
	}
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "fyyur",
		Short: "Directory for booking artists at venues",
		Run: func(cmd *cobra.Command, args []string) {
			serve(configFile)
		},
	}
	rootCmd.PersistentFlags().StringVar(
		&configFile,
		"config",
		filepath.Join(execDir, "config.json"),
		"The configuration file (JSON or YAML) to load the application's configuration from",
	)
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default)",
		Run: func(cmd *cobra.Command, args []string) {
			serve(configFile)
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema up to date and exit",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _, db := setup(configFile)
			db.Close()
			ctxhelper.Logger(ctx).Info("Database is up to date")
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "write-config",
		Short: "Write the effective configuration to the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeConfig(configFile)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "seed <file>",
		Short: "Import venues, artists and shows from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importSeed(configFile, args[0])
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
