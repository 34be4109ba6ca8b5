package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/klasbord/klasbord/core/objective"
)

type objectiveApi struct {
	svc      objective.ServiceInterface
	validate *validator.Validate
}

func registerObjectiveAPI(g *echo.Group, svc objective.ServiceInterface, validate *validator.Validate) {
	api := objectiveApi{svc: svc, validate: validate}

	og := g.Group("/objectives")
	og.POST("", api.create)
	og.GET("", api.query)
	og.DELETE("", api.destroyMultiple)
	og.POST("/import", api.bulkImport)

	dg := og.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *objectiveApi) create(ctx echo.Context) error {
	var data objective.NewObjective
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewObjective")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	obj, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating objective")
	}
	return ctx.JSON(http.StatusCreated, obj)
}

func (api *objectiveApi) query(ctx echo.Context) error {
	filter := new(objective.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []objective.Objective{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	objs, err := api.svc.Query(ctx.Request().Context(), *filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying objectives")
	}
	if objs == nil {
		objs = []objective.Objective{}
	}
	return ctx.JSON(http.StatusOK, objs)
}

func (api *objectiveApi) retrieve(ctx echo.Context) error {
	obj, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == objective.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting objective")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *objectiveApi) update(ctx echo.Context) error {
	var data objective.UpdateObjective
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateObjective")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	obj, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == objective.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating objective")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *objectiveApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting objective")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *objectiveApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting objectives")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *objectiveApi) bulkImport(ctx echo.Context) error {
	var data objective.ImportRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ImportRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.Import(ctx.Request().Context(), data)
	if err != nil {
		if errors.Cause(err) == objective.ErrImportRunning {
			return errHttpImportRunning
		}
		return errors.Wrap(err, "importing objectives")
	}
	return ctx.JSON(http.StatusOK, res)
}
