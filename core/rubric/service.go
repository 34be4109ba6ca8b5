package rubric

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/klasbord/klasbord/core"
)

type ServiceInterface interface {
	CreatePeerCriterion(ctx context.Context, nc NewPeerCriterion) (PeerCriterion, error)
	QueryPeerCriteria(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]PeerCriterion, error)
	GetPeerCriterionByID(ctx context.Context, id string) (PeerCriterion, error)
	UpdatePeerCriterion(ctx context.Context, id string, uc UpdatePeerCriterion) (PeerCriterion, error)
	DeletePeerCriteria(ctx context.Context, ids ...string) error

	CreateProjectCriterion(ctx context.Context, nc NewProjectCriterion) (ProjectCriterion, error)
	QueryProjectCriteria(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]ProjectCriterion, error)
	GetProjectCriterionByID(ctx context.Context, id string) (ProjectCriterion, error)
	UpdateProjectCriterion(ctx context.Context, id string, uc UpdateProjectCriterion) (ProjectCriterion, error)
	DeleteProjectCriteria(ctx context.Context, ids ...string) error
}

type Service struct {
	repo Repository
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CreatePeerCriterion(ctx context.Context, nc NewPeerCriterion) (PeerCriterion, error) {
	now := time.Now().UTC()
	crit := PeerCriterion{
		SubjectID:   nc.SubjectID,
		Category:    nc.Category,
		Order:       nc.Order,
		Title:       nc.Title,
		Description: null.NewString(nc.Description, nc.Description != ""),
		IsTemplate:  nc.IsTemplate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreatePeerCriterion(ctx, crit)
}

func (svc *Service) QueryPeerCriteria(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]PeerCriterion, error) {
	filter.Clean()
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "category", Ascending: true}, {Field: "ord", Ascending: true}}
	}
	return svc.repo.QueryPeerCriteria(ctx, filter, ordering)
}

func (svc *Service) GetPeerCriterionByID(ctx context.Context, id string) (PeerCriterion, error) {
	return svc.repo.GetPeerCriterionByID(ctx, id)
}

func (svc *Service) UpdatePeerCriterion(ctx context.Context, id string, uc UpdatePeerCriterion) (PeerCriterion, error) {
	crit, err := svc.repo.GetPeerCriterionByID(ctx, id)
	if err != nil {
		return PeerCriterion{}, err
	}

	if uc.Category != "" {
		crit.Category = uc.Category
	}
	if uc.Order != nil {
		crit.Order = *uc.Order
	}
	if uc.Title != "" {
		crit.Title = uc.Title
	}
	if uc.Description != nil {
		crit.Description = null.NewString(*uc.Description, *uc.Description != "")
	}
	crit.UpdatedAt = time.Now().UTC()

	return svc.repo.UpdatePeerCriterion(ctx, crit)
}

func (svc *Service) DeletePeerCriteria(ctx context.Context, ids ...string) error {
	return svc.repo.DeletePeerCriteriaByID(ctx, ids...)
}

func (svc *Service) CreateProjectCriterion(ctx context.Context, nc NewProjectCriterion) (ProjectCriterion, error) {
	now := time.Now().UTC()
	crit := ProjectCriterion{
		SubjectID:   nc.SubjectID,
		Order:       nc.Order,
		Title:       nc.Title,
		Description: null.NewString(nc.Description, nc.Description != ""),
		Weight:      nc.Weight,
		IsTemplate:  nc.IsTemplate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateProjectCriterion(ctx, crit)
}

func (svc *Service) QueryProjectCriteria(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]ProjectCriterion, error) {
	filter.Clean()
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "ord", Ascending: true}}
	}
	return svc.repo.QueryProjectCriteria(ctx, filter, ordering)
}

func (svc *Service) GetProjectCriterionByID(ctx context.Context, id string) (ProjectCriterion, error) {
	return svc.repo.GetProjectCriterionByID(ctx, id)
}

func (svc *Service) UpdateProjectCriterion(ctx context.Context, id string, uc UpdateProjectCriterion) (ProjectCriterion, error) {
	crit, err := svc.repo.GetProjectCriterionByID(ctx, id)
	if err != nil {
		return ProjectCriterion{}, err
	}

	if uc.Order != nil {
		crit.Order = *uc.Order
	}
	if uc.Title != "" {
		crit.Title = uc.Title
	}
	if uc.Description != nil {
		crit.Description = null.NewString(*uc.Description, *uc.Description != "")
	}
	if uc.Weight != nil {
		crit.Weight = *uc.Weight
	}
	crit.UpdatedAt = time.Now().UTC()

	return svc.repo.UpdateProjectCriterion(ctx, crit)
}

func (svc *Service) DeleteProjectCriteria(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteProjectCriteriaByID(ctx, ids...)
}
