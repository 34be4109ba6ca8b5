// Package inmemdb keeps every table in process memory; it backs the API
// tests and the admin seed dry-runs.
package inmemdb

import (
	"strings"
	"sync"

	"github.com/klasbord/klasbord/core/competency"
	"github.com/klasbord/klasbord/core/mailtmpl"
	"github.com/klasbord/klasbord/core/objective"
	"github.com/klasbord/klasbord/core/overview"
	"github.com/klasbord/klasbord/core/remark"
	"github.com/klasbord/klasbord/core/rubric"
)

type (
	DB struct {
		objective    *objectiveTable
		peerCrit     *peerCriterionTable
		projectCrit  *projectCriterionTable
		competency   *competencyTable
		remark       *remarkTable
		mailTemplate *mailTemplateTable
		score        *scoreTable
	}

	objectiveTable struct {
		sync.RWMutex
		table map[string]*objective.Objective
	}

	peerCriterionTable struct {
		sync.RWMutex
		table map[string]*rubric.PeerCriterion
	}

	projectCriterionTable struct {
		sync.RWMutex
		table map[string]*rubric.ProjectCriterion
	}

	competencyTable struct {
		sync.RWMutex
		table map[string]*competency.Competency
	}

	remarkTable struct {
		sync.RWMutex
		table map[string]*remark.Remark
	}

	mailTemplateTable struct {
		sync.RWMutex
		table map[string]*mailtmpl.Template
	}

	scoreTable struct {
		sync.RWMutex
		table map[string]*overview.Score
	}
)

func Open() (*DB, error) {
	db := &DB{
		objective:    &objectiveTable{table: make(map[string]*objective.Objective)},
		peerCrit:     &peerCriterionTable{table: make(map[string]*rubric.PeerCriterion)},
		projectCrit:  &projectCriterionTable{table: make(map[string]*rubric.ProjectCriterion)},
		competency:   &competencyTable{table: make(map[string]*competency.Competency)},
		remark:       &remarkTable{table: make(map[string]*remark.Remark)},
		mailTemplate: &mailTemplateTable{table: make(map[string]*mailtmpl.Template)},
		score:        &scoreTable{table: make(map[string]*overview.Score)},
	}
	return db, nil
}

func matchSearch(needle string, haystacks ...string) bool {
	if needle == "" {
		return true
	}
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), strings.ToLower(needle)) {
			return true
		}
	}
	return false
}
