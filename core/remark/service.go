package remark

import (
	"context"
	"time"

	"github.com/klasbord/klasbord/core"
)

type ServiceInterface interface {
	Create(ctx context.Context, nr NewRemark) (Remark, error)
	Query(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]Remark, error)
	GetByID(ctx context.Context, id string) (Remark, error)
	Update(ctx context.Context, id string, ur UpdateRemark) (Remark, error)
	Delete(ctx context.Context, ids ...string) error
}

type Service struct {
	repo Repository
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nr NewRemark) (Remark, error) {
	now := time.Now().UTC()
	rem := Remark{
		SubjectID:  nr.SubjectID,
		Slug:       nr.Slug,
		Text:       nr.Text,
		IsTemplate: nr.IsTemplate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateRemark(ctx, rem)
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]Remark, error) {
	filter.Clean()
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "slug", Ascending: true}}
	}
	return svc.repo.QueryRemarks(ctx, filter, ordering)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Remark, error) {
	return svc.repo.GetRemarkByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, ur UpdateRemark) (Remark, error) {
	rem, err := svc.repo.GetRemarkByID(ctx, id)
	if err != nil {
		return Remark{}, err
	}

	if ur.Slug != "" {
		rem.Slug = ur.Slug
	}
	if ur.Text != "" {
		rem.Text = ur.Text
	}
	rem.UpdatedAt = time.Now().UTC()

	return svc.repo.UpdateRemark(ctx, rem)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteRemarksByID(ctx, ids...)
}
