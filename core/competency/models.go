package competency

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/klasbord/klasbord/core"
)

var ErrNotFound = errors.New("competency not found")

type Repository interface {
	CreateCompetency(ctx context.Context, comp Competency) (Competency, error)
	QueryCompetencies(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]Competency, error)
	GetCompetencyByID(ctx context.Context, id string) (Competency, error)
	UpdateCompetency(ctx context.Context, comp Competency) (Competency, error)
	DeleteCompetenciesByID(ctx context.Context, ids ...string) error
}

// Competency is one scan-able skill of a subject's competency scan.
type Competency struct {
	ID          string      `json:"id" db:"id"`
	SubjectID   string      `json:"subject_id" db:"subject_id"`
	Order       int         `json:"order" db:"ord"`
	Title       string      `json:"title" db:"title"`
	Description null.String `json:"description" db:"description"`
	IsTemplate  bool        `json:"is_template" db:"is_template"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"` // UTC
}

type NewCompetency struct {
	SubjectID   string `json:"subject_id" validate:"required"`
	Order       int    `json:"order" validate:"min=0"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	IsTemplate  bool   `json:"is_template"`
}

func (nc *NewCompetency) Validate(validate *validator.Validate) error {
	nc.SubjectID = core.CleanString(nc.SubjectID)
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	return validate.Struct(nc)
}

type UpdateCompetency struct {
	Order       *int    `json:"order" validate:"omitempty,min=0"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

func (uc *UpdateCompetency) Validate(validate *validator.Validate) error {
	uc.Title = core.CleanString(uc.Title)
	return validate.Struct(uc)
}

type QueryFilter struct {
	SubjectID  string `query:"subject_id"`
	Search     string `query:"search"`
	IsTemplate *bool  `query:"is_template"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.SubjectID == "" && qf.Search == "" && qf.IsTemplate == nil
}

func (qf *QueryFilter) Clean() {
	qf.SubjectID = core.CleanString(qf.SubjectID)
	qf.Search = core.CleanString(qf.Search)
}
