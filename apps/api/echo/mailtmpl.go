package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/klasbord/klasbord/core/mailtmpl"
)

type mailTemplateApi struct {
	svc      mailtmpl.ServiceInterface
	validate *validator.Validate
}

func registerMailTemplateAPI(g *echo.Group, svc mailtmpl.ServiceInterface, validate *validator.Validate) {
	api := mailTemplateApi{svc: svc, validate: validate}

	mg := g.Group("/mail-templates")
	mg.POST("", api.create)
	mg.GET("", api.query)
	mg.DELETE("", api.destroyMultiple)

	dg := mg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/send-test", api.sendTest)
}

func (api *mailTemplateApi) create(ctx echo.Context) error {
	var data mailtmpl.NewTemplate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTemplate")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	tmpl, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating mail template")
	}
	return ctx.JSON(http.StatusCreated, tmpl)
}

func (api *mailTemplateApi) query(ctx echo.Context) error {
	filter := new(mailtmpl.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []mailtmpl.Template{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	tmpls, err := api.svc.Query(ctx.Request().Context(), *filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying mail templates")
	}
	if tmpls == nil {
		tmpls = []mailtmpl.Template{}
	}
	return ctx.JSON(http.StatusOK, tmpls)
}

func (api *mailTemplateApi) retrieve(ctx echo.Context) error {
	tmpl, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == mailtmpl.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting mail template")
	}
	return ctx.JSON(http.StatusOK, tmpl)
}

func (api *mailTemplateApi) update(ctx echo.Context) error {
	var data mailtmpl.UpdateTemplate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTemplate")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	tmpl, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == mailtmpl.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating mail template")
	}
	return ctx.JSON(http.StatusOK, tmpl)
}

func (api *mailTemplateApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting mail template")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *mailTemplateApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting mail templates")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *mailTemplateApi) sendTest(ctx echo.Context) error {
	var data mailtmpl.SendTest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SendTest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.SendTestMail(ctx.Request().Context(), ctx.Param("id"), data); err != nil {
		switch cause := errors.Cause(err); {
		case cause == mailtmpl.ErrNotFound:
			return errHttpNotFound
		default:
			return err
		}
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Test mail sent."})
}

type SuccessResponse struct {
	Success string `json:"success"`
}
