package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadflowhq/leadflow-backend/internal/applications"
	"github.com/leadflowhq/leadflow-backend/pkg/enums"
	pkgerrors "github.com/leadflowhq/leadflow-backend/pkg/errors"
	"github.com/leadflowhq/leadflow-backend/pkg/pagination"
)

func newAdminRouter(svc applications.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/admin/applications", ListApplications(svc, nil))
	r.Get("/api/admin/applications/{id}", GetApplication(svc, nil))
	r.Patch("/api/admin/applications/{id}", UpdateApplicationStatus(svc, nil))
	r.Get("/api/admin/stats", GetStats(svc, nil))
	return r
}

func TestListApplications(t *testing.T) {
	svc := &stubApplicationsService{listResult: &applications.ListResult{
		Applications: []applications.ApplicationDTO{*sampleDTO()},
		Pagination:   pagination.PageInfo{Page: 2, Limit: 10, Total: 25, Pages: 3},
	}}
	router := newAdminRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/applications?page=2&limit=10&status=new&startDate=2024-05-01", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, svc.listParams.Page)
	assert.Equal(t, 10, svc.listParams.Limit)
	require.NotNil(t, svc.listFilter.Status)
	assert.Equal(t, enums.ApplicationStatusNew, *svc.listFilter.Status)
	require.NotNil(t, svc.listFilter.StartDate)

	var envelope struct {
		Data struct {
			Pagination pagination.PageInfo `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.EqualValues(t, 3, envelope.Data.Pagination.Pages)
}

func TestListApplicationsRejectsBadQuery(t *testing.T) {
	router := newAdminRouter(&stubApplicationsService{})

	for _, target := range []string{
		"/api/admin/applications?page=abc",
		"/api/admin/applications?limit=500",
		"/api/admin/applications?status=bogus",
		"/api/admin/applications?startDate=yesterday",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
}

func TestGetApplication(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &stubApplicationsService{got: sampleDTO()}
		router := newAdminRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/applications/42", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.EqualValues(t, 42, svc.getID)
	})

	t.Run("missing id", func(t *testing.T) {
		svc := &stubApplicationsService{err: pkgerrors.New(pkgerrors.CodeNotFound, "application not found")}
		router := newAdminRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/applications/999", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		router := newAdminRouter(&stubApplicationsService{})

		req := httptest.NewRequest(http.MethodGet, "/api/admin/applications/abc", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	t.Run("forwards status to the service", func(t *testing.T) {
		svc := &stubApplicationsService{updated: sampleDTO()}
		router := newAdminRouter(svc)

		req := httptest.NewRequest(http.MethodPatch, "/api/admin/applications/7", strings.NewReader(`{"status":"completed"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.EqualValues(t, 7, svc.updateID)
		assert.Equal(t, "completed", svc.updateStatus)

		var envelope struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.NotEmpty(t, envelope.Message)
	})

	t.Run("unknown status maps to 400", func(t *testing.T) {
		svc := &stubApplicationsService{err: pkgerrors.New(pkgerrors.CodeValidation, "invalid status")}
		router := newAdminRouter(svc)

		req := httptest.NewRequest(http.MethodPatch, "/api/admin/applications/7", strings.NewReader(`{"status":"bogus"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing status field", func(t *testing.T) {
		router := newAdminRouter(&stubApplicationsService{})

		req := httptest.NewRequest(http.MethodPatch, "/api/admin/applications/7", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetStats(t *testing.T) {
	svc := &stubApplicationsService{stats: &applications.StatsDTO{
		New: 2, InProgress: 1, Completed: 0, Rejected: 1, Total: 4,
	}}
	router := newAdminRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats?startDate=2024-05-01&endDate=2024-06-01", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.listFilter.StartDate)
	require.NotNil(t, svc.listFilter.EndDate)

	var envelope struct {
		Data applications.StatsDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.EqualValues(t, 4, envelope.Data.Total)
	assert.EqualValues(t, 2, envelope.Data.New)
}
