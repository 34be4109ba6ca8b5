package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/klasbord/klasbord/core/remark"
)

type remarkApi struct {
	svc      remark.ServiceInterface
	validate *validator.Validate
}

func registerRemarkAPI(g *echo.Group, svc remark.ServiceInterface, validate *validator.Validate) {
	api := remarkApi{svc: svc, validate: validate}

	rg := g.Group("/remarks")
	rg.POST("", api.create)
	rg.GET("", api.query)
	rg.DELETE("", api.destroyMultiple)

	dg := rg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *remarkApi) create(ctx echo.Context) error {
	var data remark.NewRemark
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRemark")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rem, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating remark")
	}
	return ctx.JSON(http.StatusCreated, rem)
}

func (api *remarkApi) query(ctx echo.Context) error {
	filter := new(remark.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []remark.Remark{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	rems, err := api.svc.Query(ctx.Request().Context(), *filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying remarks")
	}
	if rems == nil {
		rems = []remark.Remark{}
	}
	return ctx.JSON(http.StatusOK, rems)
}

func (api *remarkApi) retrieve(ctx echo.Context) error {
	rem, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == remark.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting remark")
	}
	return ctx.JSON(http.StatusOK, rem)
}

func (api *remarkApi) update(ctx echo.Context) error {
	var data remark.UpdateRemark
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateRemark")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rem, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == remark.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating remark")
	}
	return ctx.JSON(http.StatusOK, rem)
}

func (api *remarkApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting remark")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *remarkApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting remarks")
	}
	return ctx.NoContent(http.StatusNoContent)
}
