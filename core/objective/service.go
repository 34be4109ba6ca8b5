package objective

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/klasbord/klasbord/core"
)

type ServiceInterface interface {
	Create(ctx context.Context, no NewObjective) (Objective, error)
	Query(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]Objective, error)
	GetByID(ctx context.Context, id string) (Objective, error)
	Update(ctx context.Context, id string, uo UpdateObjective) (Objective, error)
	Delete(ctx context.Context, ids ...string) error
	Import(ctx context.Context, req ImportRequest) (ImportResult, error)
}

type Service struct {
	repo   Repository
	logger core.Logger

	// one import at a time per subject
	mu       sync.Mutex
	inflight map[string]struct{}
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{
		repo:     repo,
		logger:   logger,
		inflight: make(map[string]struct{}),
	}
}

func (svc *Service) Create(ctx context.Context, no NewObjective) (Objective, error) {
	now := time.Now().UTC()
	obj := Objective{
		SubjectID:   no.SubjectID,
		Domain:      null.NewString(no.Domain, no.Domain != ""),
		Order:       no.Order,
		Title:       no.Title,
		Description: null.NewString(no.Description, no.Description != ""),
		Phase:       null.NewString(no.Phase, no.Phase != ""),
		IsTemplate:  no.IsTemplate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateObjective(ctx, obj)
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]Objective, error) {
	filter.Clean()
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "ord", Ascending: true}}
	}
	return svc.repo.QueryObjectives(ctx, filter, ordering)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Objective, error) {
	return svc.repo.GetObjectiveByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, uo UpdateObjective) (Objective, error) {
	obj, err := svc.repo.GetObjectiveByID(ctx, id)
	if err != nil {
		return Objective{}, err
	}

	if uo.Title != "" {
		obj.Title = uo.Title
	}
	if uo.Domain != nil {
		obj.Domain = null.NewString(*uo.Domain, *uo.Domain != "")
	}
	if uo.Order != nil {
		obj.Order = *uo.Order
	}
	if uo.Description != nil {
		obj.Description = null.NewString(*uo.Description, *uo.Description != "")
	}
	if uo.Phase != nil {
		obj.Phase = null.NewString(*uo.Phase, *uo.Phase != "")
	}
	obj.UpdatedAt = time.Now().UTC()

	return svc.repo.UpdateObjective(ctx, obj)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteObjectivesByID(ctx, ids...)
}

// Import maps the pasted text into rows and upserts them into the subject's
// objectives. A row matches an existing objective on case-insensitive title
// (within the same subject + template flag); matches are updated, the rest
// inserted. Row failures are collected per line; counts stay authoritative.
func (svc *Service) Import(ctx context.Context, req ImportRequest) (ImportResult, error) {
	if !svc.acquire(req.SubjectID) {
		return ImportResult{}, ErrImportRunning
	}
	defer svc.release(req.SubjectID)

	rows, skipped := MapImport(req.Text)
	res := ImportResult{Skipped: skipped, Errors: make([]string, 0)}

	for _, row := range rows {
		if row.Title == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: title is required", row.Line))
			continue
		}

		existing, err := svc.repo.GetObjectiveByTitle(ctx, req.SubjectID, row.Title, req.AsTemplate)
		switch errors.Cause(err) {
		case nil:
			existing.Domain = row.Domain
			existing.Order = row.Order
			existing.Description = row.Description
			existing.Phase = row.Phase
			existing.UpdatedAt = time.Now().UTC()
			if _, err = svc.repo.UpdateObjective(ctx, existing); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("line %d: %v", row.Line, err))
				continue
			}
			res.Updated++
		case ErrNotFound:
			now := time.Now().UTC()
			obj := Objective{
				SubjectID:   req.SubjectID,
				Domain:      row.Domain,
				Order:       row.Order,
				Title:       row.Title,
				Description: row.Description,
				Phase:       row.Phase,
				IsTemplate:  req.AsTemplate,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if _, err = svc.repo.CreateObjective(ctx, obj); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("line %d: %v", row.Line, err))
				continue
			}
			res.Created++
		default:
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: %v", row.Line, err))
		}
	}

	svc.logger.Info(fmt.Sprintf(
		"objectives import: subject=%s created=%d updated=%d skipped=%d errors=%d",
		req.SubjectID, res.Created, res.Updated, res.Skipped, len(res.Errors),
	))
	return res, nil
}

func (svc *Service) acquire(subjectID string) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if _, busy := svc.inflight[subjectID]; busy {
		return false
	}
	svc.inflight[subjectID] = struct{}{}
	return true
}

func (svc *Service) release(subjectID string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	delete(svc.inflight, subjectID)
}
