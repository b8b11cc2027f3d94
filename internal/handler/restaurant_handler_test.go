package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"feastly/internal/discovery"
	"feastly/internal/middleware"
	"feastly/internal/model"
	"feastly/internal/paging"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRestaurantService is a mock implementation of service.RestaurantService.
type MockRestaurantService struct {
	mock.Mock
}

func (m *MockRestaurantService) List(ctx context.Context, f discovery.Filters) (paging.Page[model.RestaurantSummary], error) {
	args := m.Called(ctx, f)
	return args.Get(0).(paging.Page[model.RestaurantSummary]), args.Error(1)
}

func (m *MockRestaurantService) Search(ctx context.Context, query string, page, itemsPerPage int) (paging.Page[model.RestaurantWithRelevance], error) {
	args := m.Called(ctx, query, page, itemsPerPage)
	return args.Get(0).(paging.Page[model.RestaurantWithRelevance]), args.Error(1)
}

func (m *MockRestaurantService) GetByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) Create(ctx context.Context, ownerID int64, req *model.RestaurantRequest) (*model.Restaurant, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) Update(ctx context.Context, ownerID, id int64, req *model.RestaurantRequest) (*model.Restaurant, error) {
	args := m.Called(ctx, ownerID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) Delete(ctx context.Context, ownerID, id int64) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockRestaurantService) AddDish(ctx context.Context, ownerID, restaurantID int64, req *model.MenuRequest) (*model.Menu, error) {
	args := m.Called(ctx, ownerID, restaurantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Menu), args.Error(1)
}

func (m *MockRestaurantService) UpdateDish(ctx context.Context, ownerID, restaurantID, menuID int64, req *model.MenuRequest) (*model.Menu, error) {
	args := m.Called(ctx, ownerID, restaurantID, menuID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Menu), args.Error(1)
}

func (m *MockRestaurantService) DeleteDish(ctx context.Context, ownerID, restaurantID, menuID int64) error {
	args := m.Called(ctx, ownerID, restaurantID, menuID)
	return args.Error(0)
}

// authedRequest attaches a caller identity the way the auth middleware does.
func authedRequest(req *http.Request, userID int64) *http.Request {
	ctx := middleware.ContextWithUser(req.Context(), middleware.UserClaims{ID: userID, Name: "tester"})
	return req.WithContext(ctx)
}

func TestRestaurantHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		queryParams    string
		expectService  bool
		expectedStatus int
	}{
		{
			name:           "no parameters uses defaults",
			queryParams:    "",
			expectService:  true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "full filter set",
			queryParams:    "?datetime=10/04/2023/13:00&pricegte=5&pricelte=20&dishgte=2&dishlte=8&sort=true&page=2&itemsperpage=5",
			expectService:  true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed datetime",
			queryParams:    "?datetime=2023-04-10T13:00",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative price bound",
			queryParams:    "?pricegte=-1",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero page",
			queryParams:    "?page=0",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockRestaurantService)
			h := NewRestaurantHandler(mockService, logger)

			if tt.expectService {
				mockService.On("List", mock.Anything, mock.AnythingOfType("discovery.Filters")).
					Return(paging.Page[model.RestaurantSummary]{Items: []model.RestaurantSummary{}}, nil)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/restaurants"+tt.queryParams, nil)
			rec := httptest.NewRecorder()

			h.List(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if !tt.expectService {
				mockService.AssertNotCalled(t, "List")
			}
		})
	}
}

func TestRestaurantHandler_List_InvalidPage(t *testing.T) {
	mockService := new(MockRestaurantService)
	h := NewRestaurantHandler(mockService, zerolog.Nop())

	mockService.On("List", mock.Anything, mock.AnythingOfType("discovery.Filters")).
		Return(paging.Page[model.RestaurantSummary]{}, &paging.InvalidPageError{Page: 9, TotalPages: 2})

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants?page=9", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, model.ErrCodeInvalidPage, body.Error)
}

func TestRestaurantHandler_Search(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("requires a query", func(t *testing.T) {
		mockService := new(MockRestaurantService)
		h := NewRestaurantHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/restaurants/search", nil)
		rec := httptest.NewRecorder()

		h.Search(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "Search")
	})

	t.Run("passes query and pagination through", func(t *testing.T) {
		mockService := new(MockRestaurantService)
		h := NewRestaurantHandler(mockService, logger)

		page := paging.Page[model.RestaurantWithRelevance]{
			Items: []model.RestaurantWithRelevance{
				{RestaurantSummary: model.RestaurantSummary{ID: 1, Name: "Economic Bee Hon"}, Relevance: 0.92},
			},
			Pagination: paging.Metadata{TotalPages: 3, TotalItems: 3, HasNext: true},
		}
		mockService.On("Search", mock.Anything, "bee hoon fry", 1, 1).Return(page, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/restaurants/search?q=bee+hoon+fry&itemsperpage=1", nil)
		rec := httptest.NewRecorder()

		h.Search(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)

		var got paging.Page[model.RestaurantWithRelevance]
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		require.Len(t, got.Items, 1)
		assert.Equal(t, "Economic Bee Hon", got.Items[0].Name)
		assert.True(t, got.Pagination.HasNext)
	})
}

func TestRestaurantHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("found", func(t *testing.T) {
		mockService := new(MockRestaurantService)
		h := NewRestaurantHandler(mockService, logger)

		mockService.On("GetByID", mock.Anything, int64(1)).
			Return(&model.Restaurant{ID: 1, Name: "Kopitiam Corner"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/restaurants/1", nil)
		req.SetPathValue("id", "1")
		rec := httptest.NewRecorder()

		h.GetByID(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockService := new(MockRestaurantService)
		h := NewRestaurantHandler(mockService, logger)

		mockService.On("GetByID", mock.Anything, int64(99)).
			Return(nil, model.ErrRestaurantNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/restaurants/99", nil)
		req.SetPathValue("id", "99")
		rec := httptest.NewRecorder()

		h.GetByID(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		mockService := new(MockRestaurantService)
		h := NewRestaurantHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/restaurants/abc", nil)
		req.SetPathValue("id", "abc")
		rec := httptest.NewRecorder()

		h.GetByID(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "GetByID")
	})
}

func TestRestaurantHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("success", func(t *testing.T) {
		mockService := new(MockRestaurantService)
		h := NewRestaurantHandler(mockService, logger)

		mockService.On("Create", mock.Anything, int64(7), mock.AnythingOfType("*model.RestaurantRequest")).
			Return(&model.Restaurant{ID: 1, Name: "New Place", OwnerID: 7}, nil)

		body := `{"restaurantName": "New Place", "openingHours": "09:00/17:00/09:00/17:00/09:00/17:00/09:00/17:00/09:00/17:00/00:00/00:00/00:00/00:00"}`
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/restaurants", strings.NewReader(body)), 7)
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		mockService := new(MockRestaurantService)
		h := NewRestaurantHandler(mockService, logger)

		mockService.On("Create", mock.Anything, int64(7), mock.AnythingOfType("*model.RestaurantRequest")).
			Return(nil, model.ErrNameTaken)

		body := `{"restaurantName": "Taken", "openingHours": "x"}`
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/restaurants", strings.NewReader(body)), 7)
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		mockService := new(MockRestaurantService)
		h := NewRestaurantHandler(mockService, logger)

		req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/restaurants", strings.NewReader("{")), 7)
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "Create")
	})

	t.Run("no caller identity", func(t *testing.T) {
		mockService := new(MockRestaurantService)
		h := NewRestaurantHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/restaurants", strings.NewReader("{}"))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRestaurantHandler_Update_NotOwner(t *testing.T) {
	mockService := new(MockRestaurantService)
	h := NewRestaurantHandler(mockService, zerolog.Nop())

	mockService.On("Update", mock.Anything, int64(7), int64(1), mock.AnythingOfType("*model.RestaurantRequest")).
		Return(nil, model.ErrOwnerRequired)

	body := `{"restaurantName": "Renamed", "openingHours": "x"}`
	req := authedRequest(httptest.NewRequest(http.MethodPut, "/api/restaurants/1", strings.NewReader(body)), 7)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRestaurantHandler_Delete(t *testing.T) {
	mockService := new(MockRestaurantService)
	h := NewRestaurantHandler(mockService, zerolog.Nop())

	mockService.On("Delete", mock.Anything, int64(7), int64(1)).Return(nil)

	req := authedRequest(httptest.NewRequest(http.MethodDelete, "/api/restaurants/1", nil), 7)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	mockService.AssertExpectations(t)
}

func TestRestaurantHandler_AddDish(t *testing.T) {
	mockService := new(MockRestaurantService)
	h := NewRestaurantHandler(mockService, zerolog.Nop())

	mockService.On("AddDish", mock.Anything, int64(7), int64(1), mock.AnythingOfType("*model.MenuRequest")).
		Return(&model.Menu{ID: 3, RestaurantID: 1, DishName: "Kaya Toast", Price: 2.80}, nil)

	body := `{"dishName": "Kaya Toast", "price": 2.80}`
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/restaurants/1/menus", strings.NewReader(body)), 7)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	h.AddDish(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockService.AssertExpectations(t)
}

func TestRestaurantHandler_DeleteDish(t *testing.T) {
	mockService := new(MockRestaurantService)
	h := NewRestaurantHandler(mockService, zerolog.Nop())

	mockService.On("DeleteDish", mock.Anything, int64(7), int64(1), int64(3)).Return(nil)

	req := authedRequest(httptest.NewRequest(http.MethodDelete, "/api/restaurants/1/menus/3", nil), 7)
	req.SetPathValue("id", "1")
	req.SetPathValue("menuID", "3")
	rec := httptest.NewRecorder()

	h.DeleteDish(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	mockService.AssertExpectations(t)
}
