package mailtmpl

import (
	"context"
	"net/mail"
	"time"

	"github.com/klasbord/klasbord/core"
)

type ServiceInterface interface {
	Create(ctx context.Context, nt NewTemplate) (Template, error)
	Query(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]Template, error)
	GetByID(ctx context.Context, id string) (Template, error)
	Update(ctx context.Context, id string, ut UpdateTemplate) (Template, error)
	Delete(ctx context.Context, ids ...string) error
	SendTestMail(ctx context.Context, id string, st SendTest) error
}

type Service struct {
	repo    Repository
	mailSvc core.EmailService
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

func (svc *Service) Create(ctx context.Context, nt NewTemplate) (Template, error) {
	now := time.Now().UTC()
	tmpl := Template{
		SubjectID:  nt.SubjectID,
		Slug:       nt.Slug,
		Subject:    nt.Subject,
		Body:       nt.Body,
		IsTemplate: nt.IsTemplate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateTemplate(ctx, tmpl)
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]Template, error) {
	filter.Clean()
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "slug", Ascending: true}}
	}
	return svc.repo.QueryTemplates(ctx, filter, ordering)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Template, error) {
	return svc.repo.GetTemplateByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, ut UpdateTemplate) (Template, error) {
	tmpl, err := svc.repo.GetTemplateByID(ctx, id)
	if err != nil {
		return Template{}, err
	}

	if ut.Slug != "" {
		tmpl.Slug = ut.Slug
	}
	if ut.Subject != "" {
		tmpl.Subject = ut.Subject
	}
	if ut.Body != "" {
		tmpl.Body = ut.Body
	}
	tmpl.UpdatedAt = time.Now().UTC()

	return svc.repo.UpdateTemplate(ctx, tmpl)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteTemplatesByID(ctx, ids...)
}

// SendTestMail renders the template with the provided sample data and mails
// it to the requesting teacher. Rendering errors surface as "body" field errors.
func (svc *Service) SendTestMail(ctx context.Context, id string, st SendTest) error {
	tmpl, err := svc.repo.GetTemplateByID(ctx, id)
	if err != nil {
		return err
	}

	msg := &core.EmailMessage{
		To:           []mail.Address{{Address: st.Recipient}},
		Subject:      tmpl.Subject,
		TemplateBody: tmpl.Body,
		TemplateData: st.Data,
	}
	if err := msg.Render(); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "body", Error: err.Error()})
	}

	svc.mailSvc.SendMessages(msg)
	return nil
}
