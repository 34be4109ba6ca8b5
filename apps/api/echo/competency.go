package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/klasbord/klasbord/core/competency"
)

type competencyApi struct {
	svc      competency.ServiceInterface
	validate *validator.Validate
}

func registerCompetencyAPI(g *echo.Group, svc competency.ServiceInterface, validate *validator.Validate) {
	api := competencyApi{svc: svc, validate: validate}

	cg := g.Group("/competencies")
	cg.POST("", api.create)
	cg.GET("", api.query)
	cg.DELETE("", api.destroyMultiple)

	dg := cg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *competencyApi) create(ctx echo.Context) error {
	var data competency.NewCompetency
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCompetency")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	comp, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating competency")
	}
	return ctx.JSON(http.StatusCreated, comp)
}

func (api *competencyApi) query(ctx echo.Context) error {
	filter := new(competency.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []competency.Competency{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	comps, err := api.svc.Query(ctx.Request().Context(), *filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying competencies")
	}
	if comps == nil {
		comps = []competency.Competency{}
	}
	return ctx.JSON(http.StatusOK, comps)
}

func (api *competencyApi) retrieve(ctx echo.Context) error {
	comp, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == competency.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting competency")
	}
	return ctx.JSON(http.StatusOK, comp)
}

func (api *competencyApi) update(ctx echo.Context) error {
	var data competency.UpdateCompetency
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCompetency")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	comp, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == competency.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating competency")
	}
	return ctx.JSON(http.StatusOK, comp)
}

func (api *competencyApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting competency")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *competencyApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting competencies")
	}
	return ctx.NoContent(http.StatusNoContent)
}
