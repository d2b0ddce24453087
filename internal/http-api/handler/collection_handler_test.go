package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"brickhub/internal/http-api/models"
	"brickhub/internal/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCollectionList_ReturnsEntries(t *testing.T) {
	svc := new(MockCollectionService)
	h := NewCollectionHandler(svc, testLogger())
	r := testRouter()
	h.RegisterRoutes(r.Group("/collection"))

	svc.On("List", mock.Anything, "user-1").Return([]models.CollectionEntry{
		{SetNum: "75192-1", Quantity: 2, CompleteCount: 2, SealedCount: 1, AddedAt: time.Now()},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/collection/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["total"])
}

func TestCollectionList_Unauthenticated(t *testing.T) {
	svc := new(MockCollectionService)
	h := NewCollectionHandler(svc, testLogger())
	r := unauthenticatedRouter()
	h.RegisterRoutes(r.Group("/collection"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/collection/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestCollectionAddSets_PassesBatchToService(t *testing.T) {
	svc := new(MockCollectionService)
	h := NewCollectionHandler(svc, testLogger())
	r := testRouter()
	h.RegisterRoutes(r.Group("/collection"))

	svc.On("AddSets", mock.Anything, "user-1", []service.SetQuantity{
		{SetNum: "75192-1", Quantity: 2},
		{SetNum: "10030-1", Quantity: 1},
	}).Return(nil)

	body, _ := json.Marshal(map[string]interface{}{
		"sets": []map[string]interface{}{
			{"set_num": "75192-1", "quantity": 2},
			{"set_num": "10030-1", "quantity": 1},
		},
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/collection/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestCollectionAddSets_UnknownSetIs404(t *testing.T) {
	svc := new(MockCollectionService)
	h := NewCollectionHandler(svc, testLogger())
	r := testRouter()
	h.RegisterRoutes(r.Group("/collection"))

	svc.On("AddSets", mock.Anything, "user-1", mock.Anything).Return(service.ErrSetNotFound)

	body, _ := json.Marshal(map[string]interface{}{
		"sets": []map[string]interface{}{{"set_num": "nope-1", "quantity": 1}},
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/collection/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCollectionAddSets_ZeroQuantityRejectedByBinding(t *testing.T) {
	svc := new(MockCollectionService)
	h := NewCollectionHandler(svc, testLogger())
	r := testRouter()
	h.RegisterRoutes(r.Group("/collection"))

	body, _ := json.Marshal(map[string]interface{}{
		"sets": []map[string]interface{}{{"set_num": "75192-1", "quantity": 0}},
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/collection/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "AddSets", mock.Anything, mock.Anything, mock.Anything)
}

func TestCollectionRemove_NoContent(t *testing.T) {
	svc := new(MockCollectionService)
	h := NewCollectionHandler(svc, testLogger())
	r := testRouter()
	h.RegisterRoutes(r.Group("/collection"))

	svc.On("RemoveSet", mock.Anything, "user-1", "75192-1").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/collection/75192-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}

func TestCollectionUpdateQuantity_ReturnsUpdatedEntry(t *testing.T) {
	svc := new(MockCollectionService)
	h := NewCollectionHandler(svc, testLogger())
	r := testRouter()
	h.RegisterRoutes(r.Group("/collection"))

	svc.On("UpdateQuantity", mock.Anything, "user-1", "75192-1", 2).Return(&models.CollectionEntry{
		SetNum: "75192-1", Quantity: 2, CompleteCount: 2, SealedCount: 2,
	}, nil)

	body, _ := json.Marshal(map[string]int{"quantity": 2})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/collection/75192-1/quantity", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["quantity"])
	assert.Equal(t, float64(2), resp["complete_count"])
}

func TestCollectionUpdateQuantity_NotOwnedIs404(t *testing.T) {
	svc := new(MockCollectionService)
	h := NewCollectionHandler(svc, testLogger())
	r := testRouter()
	h.RegisterRoutes(r.Group("/collection"))

	svc.On("UpdateQuantity", mock.Anything, "user-1", "75192-1", 3).Return(nil, service.ErrNotInCollection)

	body, _ := json.Marshal(map[string]int{"quantity": 3})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/collection/75192-1/quantity", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCollectionUpdateQuantity_StorageErrorIsOpaque500(t *testing.T) {
	svc := new(MockCollectionService)
	h := NewCollectionHandler(svc, testLogger())
	r := testRouter()
	h.RegisterRoutes(r.Group("/collection"))

	svc.On("UpdateQuantity", mock.Anything, "user-1", "75192-1", 3).
		Return(nil, assert.AnError)

	body, _ := json.Marshal(map[string]int{"quantity": 3})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/collection/75192-1/quantity", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestCollectionUpdateCompleteCount_ReturnsClampedValue(t *testing.T) {
	svc := new(MockCollectionService)
	h := NewCollectionHandler(svc, testLogger())
	r := testRouter()
	h.RegisterRoutes(r.Group("/collection"))

	svc.On("UpdateCompleteCount", mock.Anything, "user-1", "75192-1", 9).Return(3, nil)

	body, _ := json.Marshal(map[string]int{"count": 9})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/collection/75192-1/complete-count", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(3), resp["complete_count"])
}

func TestCollectionToggleSealed_PassesValue(t *testing.T) {
	svc := new(MockCollectionService)
	h := NewCollectionHandler(svc, testLogger())
	r := testRouter()
	h.RegisterRoutes(r.Group("/collection"))

	svc.On("ToggleSealed", mock.Anything, "user-1", "75192-1", true).Return(&models.CollectionEntry{
		SetNum: "75192-1", Quantity: 4, CompleteCount: 3, SealedCount: 4,
	}, nil)

	body, _ := json.Marshal(map[string]bool{"value": true})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/collection/75192-1/sealed", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(4), resp["sealed_count"])
	svc.AssertExpectations(t)
}
