package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klasbord/klasbord/core/overview"
	"github.com/klasbord/klasbord/core/rubric"
)

func seedScores(t *testing.T, subjectID string) {
	t.Helper()
	now := time.Now().UTC()
	scores := []overview.Score{
		{Student: "anna", Category: rubric.CategoryMeedoen, Value: 8},
		{Student: "anna", Category: rubric.CategoryOrganiseren, Value: 9},
		{Student: "bram", Category: rubric.CategoryMeedoen, Value: 5},
		{Student: "bram", Category: rubric.CategoryOrganiseren, Value: 6},
	}
	for _, s := range scores {
		s.SubjectID = subjectID
		s.Kind = overview.KindPeer
		s.RecordedAt = now
		_, err := scoreRepo.CreateScore(context.Background(), s)
		require.NoError(t, err)
	}
}

func TestOverviewAPI_students(t *testing.T) {
	seedScores(t, "sub-ov-students")

	req, rec := newRequest(http.MethodGet, "/v1/overview/students?subject_id=sub-ov-students&kind=peer")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rows []overview.StudentRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, overview.StudentRow{Student: "anna", Count: 2, Average: 8.5, Color: overview.ColorBlue}, rows[0])
	assert.Equal(t, overview.StudentRow{Student: "bram", Count: 2, Average: 5.5, Color: overview.ColorOrange}, rows[1])
}

func TestOverviewAPI_histogram(t *testing.T) {
	seedScores(t, "sub-ov-hist")

	req, rec := newRequest(http.MethodGet, "/v1/overview/histogram?subject_id=sub-ov-hist&kind=peer")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var hists []overview.CategoryHistogram
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hists))
	require.Len(t, hists, 2)
	// sorted by category: meedoen before organiseren
	assert.Equal(t, rubric.CategoryMeedoen, hists[0].Category)
	assert.Equal(t, 2, hists[0].Total)
	assert.Equal(t, 1, hists[0].Counts[overview.ColorRed])   // 5
	assert.Equal(t, 1, hists[0].Counts[overview.ColorGreen]) // 8
	assert.Equal(t, rubric.CategoryOrganiseren, hists[1].Category)
	assert.Equal(t, 1, hists[1].Counts[overview.ColorOrange]) // 6
	assert.Equal(t, 1, hists[1].Counts[overview.ColorBlue])   // 9
}

func TestOverviewAPI_spread(t *testing.T) {
	seedScores(t, "sub-ov-spread")

	req, rec := newRequest(http.MethodGet, "/v1/overview/spread?subject_id=sub-ov-spread&kind=peer")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var spreads []overview.Spread
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spreads))
	require.Len(t, spreads, 2)
	assert.Equal(t, rubric.CategoryMeedoen, spreads[0].Category)
	assert.Equal(t, 5.0, spreads[0].Min)
	assert.Equal(t, 6.5, spreads[0].Median)
	assert.Equal(t, 8.0, spreads[0].Max)
}

func TestOverviewAPI_unknownKind(t *testing.T) {
	req, rec := newRequest(http.MethodGet, "/v1/overview/students?subject_id=sub-ov&kind=mystery")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusBadRequest,
		wantData: marshalObj(t, httpErr{Error: "unknown score kind"}),
	}, rec)
}

func TestOverviewAPI_emptySubject(t *testing.T) {
	req, rec := newRequest(http.MethodGet, "/v1/overview/students?subject_id=sub-none&kind=scan")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte("[]")}, rec)
}
