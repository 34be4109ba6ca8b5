package objective

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
	ErrNotFound      = errors.New("learning objective not found")
	ErrImportRunning = errors.New("an import is already running for this subject")
)

// Curriculum phases ("fase"). Anything else is a free-form label.
const (
	PhaseLower = "onderbouw"
	PhaseUpper = "bovenbouw"
)

type Repository interface {
	CreateObjective(ctx context.Context, obj Objective) (Objective, error)
	QueryObjectives(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]Objective, error)
	GetObjectiveByID(ctx context.Context, id string) (Objective, error)
	// GetObjectiveByTitle does a case-insensitive title match within a subject + template flag.
	GetObjectiveByTitle(ctx context.Context, subjectID, title string, isTemplate bool) (Objective, error)
	UpdateObjective(ctx context.Context, obj Objective) (Objective, error)
	DeleteObjectivesByID(ctx context.Context, ids ...string) error
}

// Objective is one curriculum goal ("leerdoel") of a subject.
type Objective struct {
	ID          string      `json:"id" db:"id"`
	SubjectID   string      `json:"subject_id" db:"subject_id"`
	Domain      null.String `json:"domain" db:"domain"`
	Order       int         `json:"order" db:"ord"`
	Title       string      `json:"title" db:"title"`
	Description null.String `json:"description" db:"description"`
	Phase       null.String `json:"phase" db:"phase"`
	IsTemplate  bool        `json:"is_template" db:"is_template"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"` // UTC
}

// NewObjective contains information needed to create a new Objective.
type NewObjective struct {
	SubjectID   string `json:"subject_id" validate:"required"`
	Domain      string `json:"domain"`
	Order       int    `json:"order" validate:"min=0"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Phase       string `json:"phase" validate:"omitempty,phase"`
	IsTemplate  bool   `json:"is_template"`
}

func (no *NewObjective) Validate(validate *validator.Validate) error {
	no.SubjectID = core.CleanString(no.SubjectID)
	no.Domain = core.CleanString(no.Domain)
	no.Title = core.CleanString(no.Title)
	no.Description = core.CleanString(no.Description)
	no.Phase = NormalizePhase(core.CleanString(no.Phase))
	return validate.Struct(no)
}

// UpdateObjective defines what information may be provided to modify an existing Objective.
type UpdateObjective struct {
	Domain      *string `json:"domain"`
	Order       *int    `json:"order" validate:"omitempty,min=0"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Phase       *string `json:"phase" validate:"omitempty,phase"`
}

func (uo *UpdateObjective) Validate(validate *validator.Validate) error {
	uo.Title = core.CleanString(uo.Title)
	if uo.Phase != nil {
		p := NormalizePhase(core.CleanString(*uo.Phase))
		uo.Phase = &p
	}
	return validate.Struct(uo)
}

type QueryFilter struct {
	SubjectID  string `query:"subject_id"`
	Search     string `query:"search"`
	Domain     string `query:"domain"`
	Phase      string `query:"phase"`
	IsTemplate *bool  `query:"is_template"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.SubjectID == "" && qf.Search == "" && qf.Domain == "" && qf.Phase == "" && qf.IsTemplate == nil
}

func (qf *QueryFilter) Clean() {
	qf.SubjectID = core.CleanString(qf.SubjectID)
	qf.Search = core.CleanString(qf.Search)
	qf.Domain = core.CleanString(qf.Domain)
	qf.Phase = core.CleanString(qf.Phase, true /* lower */)
}

// ImportRequest is one pasted-text bulk import submission.
type ImportRequest struct {
	SubjectID  string `json:"subject_id" validate:"required"`
	Text       string `json:"text" validate:"required"`
	AsTemplate bool   `json:"as_template"`
}

func (ir *ImportRequest) Validate(validate *validator.Validate) error {
	ir.SubjectID = core.CleanString(ir.SubjectID)
	ir.Text = core.CleanString(ir.Text)
	return validate.Struct(ir)
}

// ImportResult summarizes one import submission.
// Created/Updated counts are authoritative even when Errors is non-empty.
type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}
