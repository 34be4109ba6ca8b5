package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
	"gopkg.in/yaml.v3"

	"github.com/klasbord/klasbord/core/competency"
	"github.com/klasbord/klasbord/core/mailtmpl"
	"github.com/klasbord/klasbord/core/objective"
	"github.com/klasbord/klasbord/core/remark"
	"github.com/klasbord/klasbord/core/rubric"
	appfs "github.com/klasbord/klasbord/fs"
)

const seedPath = "fixtures/seed.yaml"

type (
	seedObjective struct {
		Domain      string `yaml:"domain"`
		Order       int    `yaml:"order"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Phase       string `yaml:"phase"`
	}

	seedPeerCriterion struct {
		Category    string `yaml:"category"`
		Order       int    `yaml:"order"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	}

	seedProjectCriterion struct {
		Order       int    `yaml:"order"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Weight      int    `yaml:"weight"`
	}

	seedCompetency struct {
		Order       int    `yaml:"order"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	}

	seedRemark struct {
		Slug string `yaml:"slug"`
		Text string `yaml:"text"`
	}

	seedMailTemplate struct {
		Slug    string `yaml:"slug"`
		Subject string `yaml:"subject"`
		Body    string `yaml:"body"`
	}

	seedFile struct {
		Objectives      []seedObjective        `yaml:"objectives"`
		PeerCriteria    []seedPeerCriterion    `yaml:"peer_criteria"`
		ProjectCriteria []seedProjectCriterion `yaml:"project_criteria"`
		Competencies    []seedCompetency       `yaml:"competencies"`
		Remarks         []seedRemark           `yaml:"remarks"`
		MailTemplates   []seedMailTemplate     `yaml:"mail_templates"`
	}
)

// seed loads the packaged template fixtures into a subject. Records already
// present (matched on title or slug) are left alone so reseeding is safe.
func (cli *commandLine) seed(subjectID string) error {
	data, err := appfs.FS.ReadFile(seedPath)
	if err != nil {
		return errors.Wrap(err, "reading seed fixtures")
	}

	var fixtures seedFile
	if err = yaml.Unmarshal(data, &fixtures); err != nil {
		return errors.Wrap(err, "parsing seed fixtures")
	}

	ctx := context.Background()
	now := time.Now().UTC()
	var created int

	for _, so := range fixtures.Objectives {
		_, err := cli.objectiveRepo.GetObjectiveByTitle(ctx, subjectID, so.Title, true)
		if err == nil {
			continue
		}
		if errors.Cause(err) != objective.ErrNotFound {
			return errors.Wrap(err, "checking objective "+so.Title)
		}
		_, err = cli.objectiveRepo.CreateObjective(ctx, objective.Objective{
			SubjectID:   subjectID,
			Domain:      null.NewString(so.Domain, so.Domain != ""),
			Order:       so.Order,
			Title:       so.Title,
			Description: null.NewString(so.Description, so.Description != ""),
			Phase:       null.NewString(so.Phase, so.Phase != ""),
			IsTemplate:  true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return errors.Wrap(err, "seeding objective "+so.Title)
		}
		created++
	}

	isTemplate := true
	existingPeer, err := cli.rubricRepo.QueryPeerCriteria(ctx, rubric.QueryFilter{SubjectID: subjectID, IsTemplate: &isTemplate}, nil)
	if err != nil {
		return errors.Wrap(err, "querying peer criteria")
	}
	for _, sc := range fixtures.PeerCriteria {
		if hasPeerTitle(existingPeer, sc.Title) {
			continue
		}
		_, err = cli.rubricRepo.CreatePeerCriterion(ctx, rubric.PeerCriterion{
			SubjectID:   subjectID,
			Category:    sc.Category,
			Order:       sc.Order,
			Title:       sc.Title,
			Description: null.NewString(sc.Description, sc.Description != ""),
			IsTemplate:  true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return errors.Wrap(err, "seeding peer criterion "+sc.Title)
		}
		created++
	}

	existingProject, err := cli.rubricRepo.QueryProjectCriteria(ctx, rubric.QueryFilter{SubjectID: subjectID, IsTemplate: &isTemplate}, nil)
	if err != nil {
		return errors.Wrap(err, "querying project criteria")
	}
	for _, sc := range fixtures.ProjectCriteria {
		if hasProjectTitle(existingProject, sc.Title) {
			continue
		}
		_, err = cli.rubricRepo.CreateProjectCriterion(ctx, rubric.ProjectCriterion{
			SubjectID:   subjectID,
			Order:       sc.Order,
			Title:       sc.Title,
			Description: null.NewString(sc.Description, sc.Description != ""),
			Weight:      sc.Weight,
			IsTemplate:  true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return errors.Wrap(err, "seeding project criterion "+sc.Title)
		}
		created++
	}

	existingComp, err := cli.compRepo.QueryCompetencies(ctx, competency.QueryFilter{SubjectID: subjectID, IsTemplate: &isTemplate}, nil)
	if err != nil {
		return errors.Wrap(err, "querying competencies")
	}
	for _, sc := range fixtures.Competencies {
		if hasCompetencyTitle(existingComp, sc.Title) {
			continue
		}
		_, err = cli.compRepo.CreateCompetency(ctx, competency.Competency{
			SubjectID:   subjectID,
			Order:       sc.Order,
			Title:       sc.Title,
			Description: null.NewString(sc.Description, sc.Description != ""),
			IsTemplate:  true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return errors.Wrap(err, "seeding competency "+sc.Title)
		}
		created++
	}

	existingRemarks, err := cli.remarkRepo.QueryRemarks(ctx, remark.QueryFilter{SubjectID: subjectID, IsTemplate: &isTemplate}, nil)
	if err != nil {
		return errors.Wrap(err, "querying remarks")
	}
	for _, sr := range fixtures.Remarks {
		if hasRemarkSlug(existingRemarks, sr.Slug) {
			continue
		}
		_, err = cli.remarkRepo.CreateRemark(ctx, remark.Remark{
			SubjectID:  subjectID,
			Slug:       sr.Slug,
			Text:       sr.Text,
			IsTemplate: true,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return errors.Wrap(err, "seeding remark "+sr.Slug)
		}
		created++
	}

	existingMail, err := cli.mailRepo.QueryTemplates(ctx, mailtmpl.QueryFilter{SubjectID: subjectID, IsTemplate: &isTemplate}, nil)
	if err != nil {
		return errors.Wrap(err, "querying mail templates")
	}
	for _, sm := range fixtures.MailTemplates {
		if hasMailSlug(existingMail, sm.Slug) {
			continue
		}
		_, err = cli.mailRepo.CreateTemplate(ctx, mailtmpl.Template{
			SubjectID:  subjectID,
			Slug:       sm.Slug,
			Subject:    sm.Subject,
			Body:       sm.Body,
			IsTemplate: true,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return errors.Wrap(err, "seeding mail template "+sm.Slug)
		}
		created++
	}

	fmt.Printf("seeded %d template record(s) into subject %q\n", created, subjectID)
	return nil
}

func hasPeerTitle(crits []rubric.PeerCriterion, title string) bool {
	for _, c := range crits {
		if strings.EqualFold(c.Title, title) {
			return true
		}
	}
	return false
}

func hasProjectTitle(crits []rubric.ProjectCriterion, title string) bool {
	for _, c := range crits {
		if strings.EqualFold(c.Title, title) {
			return true
		}
	}
	return false
}

func hasCompetencyTitle(comps []competency.Competency, title string) bool {
	for _, c := range comps {
		if strings.EqualFold(c.Title, title) {
			return true
		}
	}
	return false
}

func hasRemarkSlug(rems []remark.Remark, slug string) bool {
	for _, r := range rems {
		if r.Slug == slug {
			return true
		}
	}
	return false
}

func hasMailSlug(tmpls []mailtmpl.Template, slug string) bool {
	for _, t := range tmpls {
		if t.Slug == slug {
			return true
		}
	}
	return false
}
