package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/klasbord/klasbord/core"
	"github.com/klasbord/klasbord/core/competency"
	"github.com/klasbord/klasbord/core/mailtmpl"
	"github.com/klasbord/klasbord/core/objective"
	"github.com/klasbord/klasbord/core/overview"
	"github.com/klasbord/klasbord/core/remark"
	"github.com/klasbord/klasbord/core/rubric"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		ObjectiveSvc    objective.ServiceInterface
		RubricSvc       rubric.ServiceInterface
		CompetencySvc   competency.ServiceInterface
		RemarkSvc       remark.ServiceInterface
		MailTemplateSvc mailtmpl.ServiceInterface
		OverviewSvc     overview.ServiceInterface
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	registerObjectiveAPI(v1, s.deps.ObjectiveSvc, s.deps.Validate)
	registerRubricAPI(v1, s.deps.RubricSvc, s.deps.Validate)
	registerCompetencyAPI(v1, s.deps.CompetencySvc, s.deps.Validate)
	registerRemarkAPI(v1, s.deps.RemarkSvc, s.deps.Validate)
	registerMailTemplateAPI(v1, s.deps.MailTemplateSvc, s.deps.Validate)
	registerOverviewAPI(v1, s.deps.OverviewSvc)
}

func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.deps.Conf.Server.Addr()); err != nil && err != http.ErrServerClosed {
		s.errs <- err
	}
}

func (s *Server) Errors() <-chan error { return s.errs }

func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *Server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Klasbord API!")
}
