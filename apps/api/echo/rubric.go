package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/klasbord/klasbord/core/rubric"
)

type rubricApi struct {
	svc      rubric.ServiceInterface
	validate *validator.Validate
}

func registerRubricAPI(g *echo.Group, svc rubric.ServiceInterface, validate *validator.Validate) {
	api := rubricApi{svc: svc, validate: validate}

	pg := g.Group("/peer-criteria")
	pg.POST("", api.createPeer)
	pg.GET("", api.queryPeer)
	pg.DELETE("", api.destroyMultiplePeer)
	pdg := pg.Group("/:id")
	pdg.GET("", api.retrievePeer)
	pdg.PUT("", api.updatePeer)
	pdg.DELETE("", api.destroyPeer)

	rg := g.Group("/project-criteria")
	rg.POST("", api.createProject)
	rg.GET("", api.queryProject)
	rg.DELETE("", api.destroyMultipleProject)
	rdg := rg.Group("/:id")
	rdg.GET("", api.retrieveProject)
	rdg.PUT("", api.updateProject)
	rdg.DELETE("", api.destroyProject)
}

func (api *rubricApi) createPeer(ctx echo.Context) error {
	var data rubric.NewPeerCriterion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPeerCriterion")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	crit, err := api.svc.CreatePeerCriterion(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating peer criterion")
	}
	return ctx.JSON(http.StatusCreated, crit)
}

func (api *rubricApi) queryPeer(ctx echo.Context) error {
	filter := new(rubric.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []rubric.PeerCriterion{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	crits, err := api.svc.QueryPeerCriteria(ctx.Request().Context(), *filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying peer criteria")
	}
	if crits == nil {
		crits = []rubric.PeerCriterion{}
	}
	return ctx.JSON(http.StatusOK, crits)
}

func (api *rubricApi) retrievePeer(ctx echo.Context) error {
	crit, err := api.svc.GetPeerCriterionByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == rubric.ErrPeerCriterionNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting peer criterion")
	}
	return ctx.JSON(http.StatusOK, crit)
}

func (api *rubricApi) updatePeer(ctx echo.Context) error {
	var data rubric.UpdatePeerCriterion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePeerCriterion")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	crit, err := api.svc.UpdatePeerCriterion(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == rubric.ErrPeerCriterionNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating peer criterion")
	}
	return ctx.JSON(http.StatusOK, crit)
}

func (api *rubricApi) destroyPeer(ctx echo.Context) error {
	if err := api.svc.DeletePeerCriteria(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting peer criterion")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *rubricApi) destroyMultiplePeer(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.DeletePeerCriteria(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting peer criteria")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *rubricApi) createProject(ctx echo.Context) error {
	var data rubric.NewProjectCriterion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProjectCriterion")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	crit, err := api.svc.CreateProjectCriterion(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating project criterion")
	}
	return ctx.JSON(http.StatusCreated, crit)
}

func (api *rubricApi) queryProject(ctx echo.Context) error {
	filter := new(rubric.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []rubric.ProjectCriterion{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	crits, err := api.svc.QueryProjectCriteria(ctx.Request().Context(), *filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying project criteria")
	}
	if crits == nil {
		crits = []rubric.ProjectCriterion{}
	}
	return ctx.JSON(http.StatusOK, crits)
}

func (api *rubricApi) retrieveProject(ctx echo.Context) error {
	crit, err := api.svc.GetProjectCriterionByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == rubric.ErrProjectCriterionNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting project criterion")
	}
	return ctx.JSON(http.StatusOK, crit)
}

func (api *rubricApi) updateProject(ctx echo.Context) error {
	var data rubric.UpdateProjectCriterion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProjectCriterion")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	crit, err := api.svc.UpdateProjectCriterion(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == rubric.ErrProjectCriterionNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating project criterion")
	}
	return ctx.JSON(http.StatusOK, crit)
}

func (api *rubricApi) destroyProject(ctx echo.Context) error {
	if err := api.svc.DeleteProjectCriteria(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting project criterion")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *rubricApi) destroyMultipleProject(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.DeleteProjectCriteria(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting project criteria")
	}
	return ctx.NoContent(http.StatusNoContent)
}
