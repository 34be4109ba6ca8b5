package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/klasbord/klasbord/core"
	"github.com/klasbord/klasbord/core/overview"
)

var errHttpUnknownKind = echo.NewHTTPError(http.StatusBadRequest, "unknown score kind")

type overviewApi struct {
	svc overview.ServiceInterface
}

func registerOverviewAPI(g *echo.Group, svc overview.ServiceInterface) {
	api := overviewApi{svc: svc}

	og := g.Group("/overview")
	og.GET("/students", api.students)
	og.GET("/histogram", api.histogram)
	og.GET("/spread", api.spread)
}

func (api *overviewApi) params(ctx echo.Context) (subjectID, kind string) {
	subjectID = core.CleanString(ctx.QueryParam("subject_id"))
	kind = core.CleanString(ctx.QueryParam("kind"), true /* lower */)
	return subjectID, kind
}

func (api *overviewApi) students(ctx echo.Context) error {
	subjectID, kind := api.params(ctx)

	rows, err := api.svc.StudentRows(ctx.Request().Context(), subjectID, kind)
	if err != nil {
		if errors.Cause(err) == overview.ErrUnknownKind {
			return errHttpUnknownKind
		}
		return errors.Wrap(err, "building student rows")
	}
	if rows == nil {
		rows = []overview.StudentRow{}
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *overviewApi) histogram(ctx echo.Context) error {
	subjectID, kind := api.params(ctx)

	hists, err := api.svc.Histogram(ctx.Request().Context(), subjectID, kind)
	if err != nil {
		if errors.Cause(err) == overview.ErrUnknownKind {
			return errHttpUnknownKind
		}
		return errors.Wrap(err, "building histogram")
	}
	if hists == nil {
		hists = []overview.CategoryHistogram{}
	}
	return ctx.JSON(http.StatusOK, hists)
}

func (api *overviewApi) spread(ctx echo.Context) error {
	subjectID, kind := api.params(ctx)

	spreads, err := api.svc.Spreads(ctx.Request().Context(), subjectID, kind)
	if err != nil {
		if errors.Cause(err) == overview.ErrUnknownKind {
			return errHttpUnknownKind
		}
		return errors.Wrap(err, "building spread")
	}
	if spreads == nil {
		spreads = []overview.Spread{}
	}
	return ctx.JSON(http.StatusOK, spreads)
}
