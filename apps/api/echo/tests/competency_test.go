package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klasbord/klasbord/core/competency"
)

func TestCompetencyAPI_crud(t *testing.T) {
	// create
	body := marshalObj(t, competency.NewCompetency{
		SubjectID:   "sub-comp",
		Order:       1,
		Title:       "Samenwerken",
		Description: "Werkt constructief samen in een projectgroep",
	})
	req, rec := newRequest(http.MethodPost, "/v1/competencies", body)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created competency.Competency
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Samenwerken", created.Title)

	// create rejects a missing title
	req, rec = newRequest(http.MethodPost, "/v1/competencies", marshalObj(t, competency.NewCompetency{SubjectID: "sub-comp"}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// retrieve
	req, rec = newRequest(http.MethodGet, "/v1/competencies/"+created.ID)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// retrieve unknown id
	req, rec = newRequest(http.MethodGet, "/v1/competencies/nope")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "not found"})}, rec)

	// update
	newOrder := 2
	req, rec = newRequest(http.MethodPut, "/v1/competencies/"+created.ID, marshalObj(t, competency.UpdateCompetency{Order: &newOrder, Title: "Reflecteren"}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated competency.Competency
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Reflecteren", updated.Title)
	assert.Equal(t, 2, updated.Order)

	// update unknown id
	req, rec = newRequest(http.MethodPut, "/v1/competencies/nope", marshalObj(t, competency.UpdateCompetency{Title: "X"}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// query
	req, rec = newRequest(http.MethodGet, "/v1/competencies?subject_id=sub-comp")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var comps []competency.Competency
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comps))
	require.Len(t, comps, 1)
	assert.Equal(t, "Reflecteren", comps[0].Title)

	// destroy multiple
	req, rec = newRequest(http.MethodDelete, "/v1/competencies?ids="+created.ID)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	req, rec = newRequest(http.MethodGet, "/v1/competencies/"+created.ID)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompetencyAPI_queryOrder(t *testing.T) {
	for i, title := range []string{"Plannen", "Analyseren", "Presenteren"} {
		body := marshalObj(t, competency.NewCompetency{SubjectID: "sub-comp-order", Order: 3 - i, Title: title})
		req, rec := newRequest(http.MethodPost, "/v1/competencies", body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	// default ordering is by the order column
	req, rec := newRequest(http.MethodGet, "/v1/competencies?subject_id=sub-comp-order")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var comps []competency.Competency
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comps))
	require.Len(t, comps, 3)
	assert.Equal(t, []string{"Presenteren", "Analyseren", "Plannen"},
		[]string{comps[0].Title, comps[1].Title, comps[2].Title})
}
