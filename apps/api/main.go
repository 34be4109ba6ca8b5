package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/klasbord/klasbord/apps/api/echo"
	"github.com/klasbord/klasbord/core"
	"github.com/klasbord/klasbord/core/competency"
	"github.com/klasbord/klasbord/core/mailtmpl"
	"github.com/klasbord/klasbord/core/objective"
	"github.com/klasbord/klasbord/core/overview"
	"github.com/klasbord/klasbord/core/remark"
	"github.com/klasbord/klasbord/core/rubric"
	emailsvc "github.com/klasbord/klasbord/services/email"
	logsvc "github.com/klasbord/klasbord/services/logger"
	"github.com/klasbord/klasbord/storage/cache"
	"github.com/klasbord/klasbord/storage/database"
	"github.com/klasbord/klasbord/storage/database/sqlxrepos"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up overview cache
	var overviewCache overview.Cache = overview.NopCache{}
	if conf.Redis.Enabled() {
		redisCache := cache.NewRedisCache(conf.Redis)
		if err = redisCache.Ping(context.Background()); err != nil {
			logger.Fatal(fmt.Sprintf("connecting to redis: %v", err), err)
		}
		defer func() {
			if err = redisCache.Close(); err != nil {
				logger.Error(fmt.Sprintf("closing redis: %v", err), err)
			}
		}()
		overviewCache = redisCache
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	objectiveSvc := objective.NewService(sqlxrepos.NewObjectiveRepository(db), logger)
	rubricSvc := rubric.NewService(sqlxrepos.NewRubricRepository(db))
	competencySvc := competency.NewService(sqlxrepos.NewCompetencyRepository(db))
	remarkSvc := remark.NewService(sqlxrepos.NewRemarkRepository(db))
	mailTemplateSvc := mailtmpl.NewService(sqlxrepos.NewMailTemplateRepository(db), mailSvc)
	overviewSvc := overview.NewService(sqlxrepos.NewScoreRepository(db), overviewCache, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	objective.InitValidators(validate, translator)
	rubric.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:            conf,
		Logger:          logger,
		Validate:        validate,
		Translator:      translator,
		ObjectiveSvc:    objectiveSvc,
		RubricSvc:       rubricSvc,
		CompetencySvc:   competencySvc,
		RemarkSvc:       remarkSvc,
		MailTemplateSvc: mailTemplateSvc,
		OverviewSvc:     overviewSvc,
	})

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
