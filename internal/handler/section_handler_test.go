package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"menu-service/internal/menu"
	"menu-service/internal/model"
	"menu-service/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockNavigationStore is a mock implementation of store.NavigationStore
type MockNavigationStore struct {
	mock.Mock
}

func (m *MockNavigationStore) SectionsForBusinessType(ctx context.Context, businessTypeID uint) ([]model.Section, error) {
	args := m.Called(ctx, businessTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Section), args.Error(1)
}

func (m *MockNavigationStore) ItemsForSection(ctx context.Context, sectionID uint) ([]model.MenuItem, error) {
	args := m.Called(ctx, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuItem), args.Error(1)
}

func (m *MockNavigationStore) CreateBusinessType(ctx context.Context, bt *model.BusinessType) error {
	args := m.Called(ctx, bt)
	return args.Error(0)
}

func (m *MockNavigationStore) GetBusinessType(ctx context.Context, id uint) (*model.BusinessType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BusinessType), args.Error(1)
}

func (m *MockNavigationStore) ListBusinessTypes(ctx context.Context) ([]model.BusinessType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.BusinessType), args.Error(1)
}

func (m *MockNavigationStore) DeleteBusinessType(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNavigationStore) CountBusinessTypes(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNavigationStore) SetBaseRoute(ctx context.Context, route *model.BaseRoute) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func (m *MockNavigationStore) BaseRouteForBusinessType(ctx context.Context, businessTypeID uint) (*model.BaseRoute, error) {
	args := m.Called(ctx, businessTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BaseRoute), args.Error(1)
}

func (m *MockNavigationStore) CreateSection(ctx context.Context, section *model.Section, businessTypeIDs []uint) error {
	args := m.Called(ctx, section, businessTypeIDs)
	return args.Error(0)
}

func (m *MockNavigationStore) GetSection(ctx context.Context, id uint) (*model.Section, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Section), args.Error(1)
}

func (m *MockNavigationStore) DeleteSection(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNavigationStore) CreateMenuItem(ctx context.Context, item *model.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockNavigationStore) GetMenuItem(ctx context.Context, id uint) (*model.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

func (m *MockNavigationStore) DeleteMenuItem(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newSectionRequest(t *testing.T, body string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/sections", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

// A create referencing a business type that does not exist must fail loudly,
// not come back 201 with fewer owners than requested.
func TestCreateSectionUnknownBusinessTypeRejected(t *testing.T) {
	navStore := new(MockNavigationStore)
	navStore.On("SectionsForBusinessType", mock.Anything, uint(1)).Return([]model.Section{}, nil)
	navStore.On("SectionsForBusinessType", mock.Anything, uint(999)).Return([]model.Section{}, nil)
	navStore.On("CreateSection", mock.Anything, mock.Anything, []uint{1, 999}).
		Return(store.ErrBusinessTypeNotFound)
	Init(navStore, menu.NewResolver(navStore, zap.NewNop()))

	c := newSectionRequest(t, `{"label":"Reports","business_type_ids":[1,999]}`)
	require.NoError(t, CreateSection(c))

	rec := c.Response().Writer.(*httptest.ResponseRecorder)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "business types not found")
	navStore.AssertExpectations(t)
}

func TestCreateSectionDuplicateSlugConflict(t *testing.T) {
	navStore := new(MockNavigationStore)
	navStore.On("SectionsForBusinessType", mock.Anything, uint(1)).Return([]model.Section{
		{ID: 5, Label: "Reports"},
	}, nil)
	Init(navStore, menu.NewResolver(navStore, zap.NewNop()))

	c := newSectionRequest(t, `{"label":"  Reports ","business_type_ids":[1]}`)
	require.NoError(t, CreateSection(c))

	rec := c.Response().Writer.(*httptest.ResponseRecorder)
	assert.Equal(t, http.StatusConflict, rec.Code)
	navStore.AssertNotCalled(t, "CreateSection", mock.Anything, mock.Anything, mock.Anything)
}
