package mailtmpl

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/klasbord/klasbord/core"
)

var ErrNotFound = errors.New("mail template not found")

type Repository interface {
	CreateTemplate(ctx context.Context, tmpl Template) (Template, error)
	QueryTemplates(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]Template, error)
	GetTemplateByID(ctx context.Context, id string) (Template, error)
	UpdateTemplate(ctx context.Context, tmpl Template) (Template, error)
	DeleteTemplatesByID(ctx context.Context, ids ...string) error
}

// Template is one stored mail template; Body is a text/template source
// with {{.Student}}-style placeholders.
type Template struct {
	ID         string    `json:"id" db:"id"`
	SubjectID  string    `json:"subject_id" db:"subject_id"`
	Slug       string    `json:"slug" db:"slug"`
	Subject    string    `json:"subject" db:"subject"`
	Body       string    `json:"body" db:"body"`
	IsTemplate bool      `json:"is_template" db:"is_template"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"` // UTC
}

type NewTemplate struct {
	SubjectID  string `json:"subject_id" validate:"required"`
	Slug       string `json:"slug" validate:"required,alphanum_"`
	Subject    string `json:"subject" validate:"required"`
	Body       string `json:"body" validate:"required"`
	IsTemplate bool   `json:"is_template"`
}

func (nt *NewTemplate) Validate(validate *validator.Validate) error {
	nt.SubjectID = core.CleanString(nt.SubjectID)
	nt.Slug = core.CleanString(nt.Slug, true /* lower */)
	nt.Subject = core.CleanString(nt.Subject)
	nt.Body = core.CleanString(nt.Body)
	return validate.Struct(nt)
}

type UpdateTemplate struct {
	Slug    string `json:"slug" validate:"omitempty,alphanum_"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (ut *UpdateTemplate) Validate(validate *validator.Validate) error {
	ut.Slug = core.CleanString(ut.Slug, true /* lower */)
	ut.Subject = core.CleanString(ut.Subject)
	ut.Body = core.CleanString(ut.Body)
	return validate.Struct(ut)
}

// SendTest asks for a rendered copy of a template at a teacher's own address.
type SendTest struct {
	Recipient string            `json:"recipient" validate:"required,email"`
	Data      map[string]string `json:"data"`
}

func (st *SendTest) Validate(validate *validator.Validate) error {
	st.Recipient = core.CleanString(st.Recipient, true /* lower */)
	return validate.Struct(st)
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
