package remark

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/klasbord/klasbord/core"
)

var ErrNotFound = errors.New("standard remark not found")

type Repository interface {
	CreateRemark(ctx context.Context, rem Remark) (Remark, error)
	QueryRemarks(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]Remark, error)
	GetRemarkByID(ctx context.Context, id string) (Remark, error)
	UpdateRemark(ctx context.Context, rem Remark) (Remark, error)
	DeleteRemarksByID(ctx context.Context, ids ...string) error
}

// Remark is one reusable feedback snippet teachers drop into reviews.
type Remark struct {
	ID         string    `json:"id" db:"id"`
	SubjectID  string    `json:"subject_id" db:"subject_id"`
	Slug       string    `json:"slug" db:"slug"`
	Text       string    `json:"text" db:"text"`
	IsTemplate bool      `json:"is_template" db:"is_template"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"` // UTC
}

type NewRemark struct {
	SubjectID  string `json:"subject_id" validate:"required"`
	Slug       string `json:"slug" validate:"required,alphanum_"`
	Text       string `json:"text" validate:"required"`
	IsTemplate bool   `json:"is_template"`
}

func (nr *NewRemark) Validate(validate *validator.Validate) error {
	nr.SubjectID = core.CleanString(nr.SubjectID)
	nr.Slug = core.CleanString(nr.Slug, true /* lower */)
	nr.Text = core.CleanString(nr.Text)
	return validate.Struct(nr)
}

type UpdateRemark struct {
	Slug string `json:"slug" validate:"omitempty,alphanum_"`
	Text string `json:"text"`
}

func (ur *UpdateRemark) Validate(validate *validator.Validate) error {
	ur.Slug = core.CleanString(ur.Slug, true /* lower */)
	ur.Text = core.CleanString(ur.Text)
	return validate.Struct(ur)
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
