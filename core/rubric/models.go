package rubric

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/klasbord/klasbord/core"
)

var (
	// errors
	ErrPeerCriterionNotFound    = errors.New("peer-evaluation criterion not found")
	ErrProjectCriterionNotFound = errors.New("project-rubric criterion not found")
)

// OMZA peer-evaluation categories.
const (
	CategoryOrganiseren    = "organiseren"
	CategoryMeedoen        = "meedoen"
	CategoryZelfvertrouwen = "zelfvertrouwen"
	CategoryAutonomie      = "autonomie"
)

var Categories = []string{
	CategoryOrganiseren,
	CategoryMeedoen,
	CategoryZelfvertrouwen,
	CategoryAutonomie,
}

type Repository interface {
	CreatePeerCriterion(ctx context.Context, crit PeerCriterion) (PeerCriterion, error)
	QueryPeerCriteria(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]PeerCriterion, error)
	GetPeerCriterionByID(ctx context.Context, id string) (PeerCriterion, error)
	UpdatePeerCriterion(ctx context.Context, crit PeerCriterion) (PeerCriterion, error)
	DeletePeerCriteriaByID(ctx context.Context, ids ...string) error

	CreateProjectCriterion(ctx context.Context, crit ProjectCriterion) (ProjectCriterion, error)
	QueryProjectCriteria(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]ProjectCriterion, error)
	GetProjectCriterionByID(ctx context.Context, id string) (ProjectCriterion, error)
	UpdateProjectCriterion(ctx context.Context, crit ProjectCriterion) (ProjectCriterion, error)
	DeleteProjectCriteriaByID(ctx context.Context, ids ...string) error
}

// PeerCriterion is one OMZA-categorized peer-evaluation rubric line.
type PeerCriterion struct {
	ID          string      `json:"id" db:"id"`
	SubjectID   string      `json:"subject_id" db:"subject_id"`
	Category    string      `json:"category" db:"category"`
	Order       int         `json:"order" db:"ord"`
	Title       string      `json:"title" db:"title"`
	Description null.String `json:"description" db:"description"`
	IsTemplate  bool        `json:"is_template" db:"is_template"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"` // UTC
}

type NewPeerCriterion struct {
	SubjectID   string `json:"subject_id" validate:"required"`
	Category    string `json:"category" validate:"required,omza"`
	Order       int    `json:"order" validate:"min=0"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	IsTemplate  bool   `json:"is_template"`
}

func (nc *NewPeerCriterion) Validate(validate *validator.Validate) error {
	nc.SubjectID = core.CleanString(nc.SubjectID)
	nc.Category = core.CleanString(nc.Category, true /* lower */)
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	return validate.Struct(nc)
}

type UpdatePeerCriterion struct {
	Category    string  `json:"category" validate:"omitempty,omza"`
	Order       *int    `json:"order" validate:"omitempty,min=0"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

func (uc *UpdatePeerCriterion) Validate(validate *validator.Validate) error {
	uc.Category = core.CleanString(uc.Category, true /* lower */)
	uc.Title = core.CleanString(uc.Title)
	return validate.Struct(uc)
}

// ProjectCriterion is one weighted project-rubric line.
type ProjectCriterion struct {
	ID          string      `json:"id" db:"id"`
	SubjectID   string      `json:"subject_id" db:"subject_id"`
	Order       int         `json:"order" db:"ord"`
	Title       string      `json:"title" db:"title"`
	Description null.String `json:"description" db:"description"`
	Weight      int         `json:"weight" db:"weight"`
	IsTemplate  bool        `json:"is_template" db:"is_template"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"` // UTC
}

type NewProjectCriterion struct {
	SubjectID   string `json:"subject_id" validate:"required"`
	Order       int    `json:"order" validate:"min=0"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Weight      int    `json:"weight" validate:"min=1,max=5"`
	IsTemplate  bool   `json:"is_template"`
}

func (nc *NewProjectCriterion) Validate(validate *validator.Validate) error {
	nc.SubjectID = core.CleanString(nc.SubjectID)
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	return validate.Struct(nc)
}

type UpdateProjectCriterion struct {
	Order       *int    `json:"order" validate:"omitempty,min=0"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Weight      *int    `json:"weight" validate:"omitempty,min=1,max=5"`
}

func (uc *UpdateProjectCriterion) Validate(validate *validator.Validate) error {
	uc.Title = core.CleanString(uc.Title)
	return validate.Struct(uc)
}

type QueryFilter struct {
	SubjectID  string `query:"subject_id"`
	Search     string `query:"search"`
	Category   string `query:"category"`
	IsTemplate *bool  `query:"is_template"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.SubjectID == "" && qf.Search == "" && qf.Category == "" && qf.IsTemplate == nil
}

func (qf *QueryFilter) Clean() {
	qf.SubjectID = core.CleanString(qf.SubjectID)
	qf.Search = core.CleanString(qf.Search)
	qf.Category = core.CleanString(qf.Category, true /* lower */)
}
