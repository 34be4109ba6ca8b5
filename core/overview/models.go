package overview

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var ErrUnknownKind = errors.New("unknown score kind")

// Score kinds: where a number came from.
const (
	KindPeer    = "peer"    // peer-evaluation (OMZA) scores
	KindProject = "project" // project-rubric scores
	KindScan    = "scan"    // competency-scan scores
)

var Kinds = []string{KindPeer, KindProject, KindScan}

// Dutch 1-10 grade color buckets.
const (
	ColorRed    = "red"    // < 5.5
	ColorOrange = "orange" // < 6.5
	ColorYellow = "yellow" // < 7.5
	ColorGreen  = "green"  // < 8.5
	ColorBlue   = "blue"   // >= 8.5
)

var Colors = []string{ColorRed, ColorOrange, ColorYellow, ColorGreen, ColorBlue}

type Repository interface {
	CreateScore(ctx context.Context, s Score) (Score, error)
	// QueryScores returns all scores of a subject, optionally narrowed to one kind.
	QueryScores(ctx context.Context, subjectID, kind string) ([]Score, error)
}

// Score is one recorded result for one student.
type Score struct {
	ID         string      `json:"id" db:"id"`
	SubjectID  string      `json:"subject_id" db:"subject_id"`
	Student    string      `json:"student" db:"student"`
	Kind       string      `json:"kind" db:"kind"`
	Category   string      `json:"category" db:"category"`
	ProjectID  null.String `json:"project_id" db:"project_id"`
	Value      float64     `json:"value" db:"value"`
	RecordedAt time.Time   `json:"recorded_at" db:"recorded_at"` // UTC
}

// StudentRow is one monitor-table line: a student's results for one kind.
type StudentRow struct {
	Student string  `json:"student"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Color   string  `json:"color"`
}

// CategoryHistogram counts a category's scores per color bucket.
type CategoryHistogram struct {
	Category string         `json:"category"`
	Counts   map[string]int `json:"counts"`
	Total    int            `json:"total"`
}

// Spread is the five-number summary of a category's scores.
type Spread struct {
	Category string  `json:"category"`
	Min      float64 `json:"min"`
	P25      float64 `json:"p25"`
	Median   float64 `json:"median"`
	P75      float64 `json:"p75"`
	Max      float64 `json:"max"`
}

// ScoreColor buckets a 1-10 grade.
func ScoreColor(v float64) string {
	switch {
	case v < 5.5:
		return ColorRed
	case v < 6.5:
		return ColorOrange
	case v < 7.5:
		return ColorYellow
	case v < 8.5:
		return ColorGreen
	default:
		return ColorBlue
	}
}

func ValidKind(kind string) bool {
	for _, k := range Kinds {
		if kind == k {
			return true
		}
	}
	return false
}
