package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stockroomhq/stockroom-backend/internal/items"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

type stubItemsService struct {
	createInput *items.CreateItemInput
	updateInput *items.UpdateItemInput
	updateID    int64
	deleteID    int64
	deleted     bool

	createResult *items.ItemDTO
	getResult    *items.ItemDTO
	listResult   []items.ItemDTO
	updateResult *items.ItemDTO
	err          error
}

func (s *stubItemsService) CreateItem(_ context.Context, input items.CreateItemInput) (*items.ItemDTO, error) {
	s.createInput = &input
	return s.createResult, s.err
}

func (s *stubItemsService) GetItem(context.Context, int64) (*items.ItemDTO, error) {
	return s.getResult, s.err
}

func (s *stubItemsService) ListItems(context.Context) ([]items.ItemDTO, error) {
	return s.listResult, s.err
}

func (s *stubItemsService) UpdateItem(_ context.Context, id int64, input items.UpdateItemInput) (*items.ItemDTO, error) {
	s.updateID = id
	s.updateInput = &input
	return s.updateResult, s.err
}

func (s *stubItemsService) DeleteItem(_ context.Context, id int64) error {
	s.deleteID = id
	s.deleted = true
	return s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func requestWithItemID(method, id string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, "/api/v1/items/"+id, body)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("itemId", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func sampleDTO() *items.ItemDTO {
	desc := "a widget"
	return &items.ItemDTO{
		ID:          1,
		Name:        "widget",
		Description: &desc,
		Quantity:    3,
		CreatedAt:   time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC),
	}
}

func TestCreateItem(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubItemsService{createResult: sampleDTO()}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(`{"name":"widget","description":"a widget","quantity":3}`))
		rec := httptest.NewRecorder()
		CreateItem(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
		}
		if stub.createInput == nil || stub.createInput.Name != "widget" || stub.createInput.Quantity != 3 {
			t.Fatalf("unexpected input: %+v", stub.createInput)
		}
		if stub.createInput.Description == nil || *stub.createInput.Description != "a widget" {
			t.Fatalf("expected description to reach the service, got %+v", stub.createInput.Description)
		}
	})

	t.Run("nullDescription", func(t *testing.T) {
		stub := &stubItemsService{createResult: sampleDTO()}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(`{"name":"widget","description":null}`))
		rec := httptest.NewRecorder()
		CreateItem(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
		}
		if stub.createInput.Description != nil {
			t.Fatalf("expected nil description, got %q", *stub.createInput.Description)
		}
		if stub.createInput.Quantity != 0 {
			t.Fatalf("expected default quantity 0, got %d", stub.createInput.Quantity)
		}
	})

	t.Run("missingDescription", func(t *testing.T) {
		stub := &stubItemsService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(`{"name":"widget"}`))
		rec := httptest.NewRecorder()
		CreateItem(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 when description omitted, got %d", rec.Code)
		}
	})

	t.Run("blankName", func(t *testing.T) {
		stub := &stubItemsService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(`{"name":"   ","description":null}`))
		rec := httptest.NewRecorder()
		CreateItem(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for blank name, got %d", rec.Code)
		}
	})

	t.Run("negativeQuantity", func(t *testing.T) {
		stub := &stubItemsService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(`{"name":"widget","description":null,"quantity":-1}`))
		rec := httptest.NewRecorder()
		CreateItem(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for negative quantity, got %d", rec.Code)
		}
	})

	t.Run("fieldRulesReportedPerField", func(t *testing.T) {
		stub := &stubItemsService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(`{"description":null,"quantity":-1}`))
		rec := httptest.NewRecorder()
		CreateItem(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		var envelope struct {
			Error struct {
				Details map[string]string `json:"details"`
			} `json:"error"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if envelope.Error.Details["name"] != "is required" {
			t.Fatalf("expected required rule for name, got %+v", envelope.Error.Details)
		}
		if envelope.Error.Details["quantity"] != "must be at least 0" {
			t.Fatalf("expected min rule for quantity, got %+v", envelope.Error.Details)
		}
		if stub.createInput != nil {
			t.Fatal("service must not be called for an invalid payload")
		}
	})

	t.Run("duplicateName", func(t *testing.T) {
		stub := &stubItemsService{err: pkgerrors.New(pkgerrors.CodeConflict, "item name already exists")}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(`{"name":"widget","description":null}`))
		rec := httptest.NewRecorder()
		CreateItem(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409 for duplicate name, got %d", rec.Code)
		}
	})
}

func TestListItems(t *testing.T) {
	logg := testLogger()

	t.Run("returnsItems", func(t *testing.T) {
		stub := &stubItemsService{listResult: []items.ItemDTO{*sampleDTO()}}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
		rec := httptest.NewRecorder()
		ListItems(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var envelope struct {
			Data []items.ItemDTO `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(envelope.Data) != 1 || envelope.Data[0].Name != "widget" {
			t.Fatalf("unexpected payload: %+v", envelope.Data)
		}
	})

	t.Run("emptyStoreReturnsEmptyArray", func(t *testing.T) {
		stub := &stubItemsService{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
		rec := httptest.NewRecorder()
		ListItems(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"data":[]`) {
			t.Fatalf("expected empty array payload, got %s", rec.Body.String())
		}
	})
}

func TestGetItemByID(t *testing.T) {
	logg := testLogger()

	t.Run("found", func(t *testing.T) {
		stub := &stubItemsService{getResult: sampleDTO()}
		rec := httptest.NewRecorder()
		GetItemByID(stub, logg).ServeHTTP(rec, requestWithItemID(http.MethodGet, "1", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("missingReturnsNullData", func(t *testing.T) {
		stub := &stubItemsService{}
		rec := httptest.NewRecorder()
		GetItemByID(stub, logg).ServeHTTP(rec, requestWithItemID(http.MethodGet, "999", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for a missing item, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"data":null`) {
			t.Fatalf("expected null data, got %s", rec.Body.String())
		}
	})

	t.Run("invalidID", func(t *testing.T) {
		stub := &stubItemsService{}
		rec := httptest.NewRecorder()
		GetItemByID(stub, logg).ServeHTTP(rec, requestWithItemID(http.MethodGet, "widget", nil))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
		}
	})
}

func TestUpdateItem(t *testing.T) {
	logg := testLogger()

	t.Run("partialBody", func(t *testing.T) {
		stub := &stubItemsService{updateResult: sampleDTO()}
		rec := httptest.NewRecorder()
		UpdateItem(stub, logg).ServeHTTP(rec, requestWithItemID(http.MethodPatch, "1", strings.NewReader(`{"quantity":9}`)))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
		}
		if stub.updateID != 1 {
			t.Fatalf("expected id 1, got %d", stub.updateID)
		}
		if stub.updateInput.Name != nil {
			t.Fatal("name must stay unset when omitted")
		}
		if stub.updateInput.Description.Set {
			t.Fatal("description must stay unset when omitted")
		}
		if stub.updateInput.Quantity == nil || *stub.updateInput.Quantity != 9 {
			t.Fatalf("expected quantity 9, got %+v", stub.updateInput.Quantity)
		}
	})

	t.Run("explicitNullDescription", func(t *testing.T) {
		stub := &stubItemsService{updateResult: sampleDTO()}
		rec := httptest.NewRecorder()
		UpdateItem(stub, logg).ServeHTTP(rec, requestWithItemID(http.MethodPatch, "1", strings.NewReader(`{"description":null}`)))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !stub.updateInput.Description.Set || stub.updateInput.Description.Valid {
			t.Fatalf("expected set-to-null description, got %+v", stub.updateInput.Description)
		}
	})

	t.Run("nullNameRejected", func(t *testing.T) {
		stub := &stubItemsService{}
		rec := httptest.NewRecorder()
		UpdateItem(stub, logg).ServeHTTP(rec, requestWithItemID(http.MethodPatch, "1", strings.NewReader(`{"name":null}`)))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for null name, got %d", rec.Code)
		}
	})

	t.Run("negativeQuantityRejected", func(t *testing.T) {
		stub := &stubItemsService{}
		rec := httptest.NewRecorder()
		UpdateItem(stub, logg).ServeHTTP(rec, requestWithItemID(http.MethodPatch, "1", strings.NewReader(`{"quantity":-4}`)))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for negative quantity, got %d", rec.Code)
		}
	})

	t.Run("notFound", func(t *testing.T) {
		stub := &stubItemsService{err: pkgerrors.New(pkgerrors.CodeNotFound, "item with id 424242 not found")}
		rec := httptest.NewRecorder()
		UpdateItem(stub, logg).ServeHTTP(rec, requestWithItemID(http.MethodPatch, "424242", strings.NewReader(`{"quantity":1}`)))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "424242") {
			t.Fatalf("expected id in error message, got %s", rec.Body.String())
		}
	})

	t.Run("unknownFieldRejected", func(t *testing.T) {
		stub := &stubItemsService{}
		rec := httptest.NewRecorder()
		UpdateItem(stub, logg).ServeHTTP(rec, requestWithItemID(http.MethodPatch, "1", strings.NewReader(`{"created_at":"2020-01-01T00:00:00Z"}`)))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
		}
	})
}

func TestDeleteItem(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubItemsService{}
		rec := httptest.NewRecorder()
		DeleteItem(stub, logg).ServeHTTP(rec, requestWithItemID(http.MethodDelete, "7", nil))

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if !stub.deleted || stub.deleteID != 7 {
			t.Fatalf("expected delete of id 7, got %+v", stub)
		}
	})

	t.Run("invalidID", func(t *testing.T) {
		stub := &stubItemsService{}
		rec := httptest.NewRecorder()
		DeleteItem(stub, logg).ServeHTTP(rec, requestWithItemID(http.MethodDelete, "zero", nil))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
		}
		if stub.deleted {
			t.Fatal("service must not be called for an invalid id")
		}
	})
}
