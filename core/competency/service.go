package competency

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/klasbord/klasbord/core"
)

type ServiceInterface interface {
	Create(ctx context.Context, nc NewCompetency) (Competency, error)
	Query(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]Competency, error)
	GetByID(ctx context.Context, id string) (Competency, error)
	Update(ctx context.Context, id string, uc UpdateCompetency) (Competency, error)
	Delete(ctx context.Context, ids ...string) error
}

type Service struct {
	repo Repository
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewCompetency) (Competency, error) {
	now := time.Now().UTC()
	comp := Competency{
		SubjectID:   nc.SubjectID,
		Order:       nc.Order,
		Title:       nc.Title,
		Description: null.NewString(nc.Description, nc.Description != ""),
		IsTemplate:  nc.IsTemplate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateCompetency(ctx, comp)
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]Competency, error) {
	filter.Clean()
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "ord", Ascending: true}}
	}
	return svc.repo.QueryCompetencies(ctx, filter, ordering)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Competency, error) {
	return svc.repo.GetCompetencyByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, uc UpdateCompetency) (Competency, error) {
	comp, err := svc.repo.GetCompetencyByID(ctx, id)
	if err != nil {
		return Competency{}, err
	}

	if uc.Order != nil {
		comp.Order = *uc.Order
	}
	if uc.Title != "" {
		comp.Title = uc.Title
	}
	if uc.Description != nil {
		comp.Description = null.NewString(*uc.Description, *uc.Description != "")
	}
	comp.UpdatedAt = time.Now().UTC()

	return svc.repo.UpdateCompetency(ctx, comp)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteCompetenciesByID(ctx, ids...)
}
