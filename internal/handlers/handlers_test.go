package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/dto"
	"github.com/SscSPs/inventory_ledger/internal/handlers"
	"github.com/SscSPs/inventory_ledger/internal/middleware"
)

// --- Mock ProductService ---
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, actor domain.ActingUser) (*domain.Product, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, actor domain.ActingUser) (*domain.Product, error) {
	args := m.Called(ctx, productID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) DeactivateProduct(ctx context.Context, productID string, actor domain.ActingUser) (*domain.Product, error) {
	args := m.Called(ctx, productID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) ReactivateProduct(ctx context.Context, productID string, actor domain.ActingUser) (*domain.Product, error) {
	args := m.Called(ctx, productID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

var _ portssvc.ProductSvcFacade = (*MockProductService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ListByProduct(ctx context.Context, productID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) ListByDate(ctx context.Context, date domain.Date) ([]domain.Transaction, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) ListDatesWithTransactions(ctx context.Context) ([]domain.Date, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Date), args.Error(1)
}
func (m *MockLedgerService) RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor domain.ActingUser) (*domain.Transaction, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, actor domain.ActingUser) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) DeleteTransaction(ctx context.Context, transactionID string, actor domain.ActingUser) error {
	args := m.Called(ctx, transactionID, actor)
	return args.Error(0)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock StockQueryService ---
type MockStockQueryService struct {
	mock.Mock
}

func (m *MockStockQueryService) GetStockOverview(ctx context.Context, params dto.StockOverviewParams) ([]domain.StockSnapshot, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockSnapshot), args.Error(1)
}
func (m *MockStockQueryService) GetProductSnapshot(ctx context.Context, productID string) (*domain.StockSnapshot, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockSnapshot), args.Error(1)
}
func (m *MockStockQueryService) GetTransactionsForDate(ctx context.Context, date domain.Date) ([]domain.RunningEntry, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RunningEntry), args.Error(1)
}
func (m *MockStockQueryService) GetTransactionsForProduct(ctx context.Context, productID string, params dto.ProductHistoryParams) ([]domain.RunningEntry, *string, error) {
	args := m.Called(ctx, productID, params)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.RunningEntry), next, args.Error(2)
}
func (m *MockStockQueryService) GetDateGroups(ctx context.Context, actor domain.ActingUser) ([]domain.DateGroup, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DateGroup), args.Error(1)
}

var _ portssvc.StockQuerySvc = (*MockStockQueryService)(nil)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	productSvc *MockProductService
	ledgerSvc  *MockLedgerService
	stockSvc   *MockStockQueryService
	jwtSecret  string
	adminUser  domain.ActingUser
	editorUser domain.ActingUser
	viewerUser domain.ActingUser
}

// generateTestToken creates a signed JWT carrying the user's role.
func (suite *HandlerTestSuite) generateTestToken(user domain.ActingUser) string {
	claims := middleware.Claims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "stock-ledger-test",
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.productSvc = new(MockProductService)
	suite.ledgerSvc = new(MockLedgerService)
	suite.stockSvc = new(MockStockQueryService)

	suite.adminUser = domain.ActingUser{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	suite.editorUser = domain.ActingUser{UserID: uuid.NewString(), Role: domain.RoleEditor}
	suite.viewerUser = domain.ActingUser{UserID: uuid.NewString(), Role: domain.RoleViewer}

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret, "stock-ledger-test"))
	handlers.RegisterStockRoutes(v1, suite.stockSvc, suite.ledgerSvc)
	handlers.RegisterTransactionRoutes(v1, suite.ledgerSvc, suite.stockSvc)
	handlers.RegisterProductRoutes(v1, suite.productSvc, suite.stockSvc)
}

func (suite *HandlerTestSuite) do(method, url string, body any, user *domain.ActingUser) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(*user))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorKind(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["kind"]
}

// --- Auth ---

func (suite *HandlerTestSuite) TestMissingToken_Unauthorized() {
	w := suite.do(http.MethodGet, "/api/v1/stock-overview", nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("unauthorized", suite.errorKind(w))
	suite.stockSvc.AssertNotCalled(suite.T(), "GetStockOverview")
}

func (suite *HandlerTestSuite) TestWrongSecret_Unauthorized() {
	good := suite.jwtSecret
	suite.jwtSecret = "another-secret"
	token := suite.generateTestToken(suite.adminUser)
	suite.jwtSecret = good

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Stock ---

func (suite *HandlerTestSuite) TestStockOverview_Success() {
	snapshots := []domain.StockSnapshot{
		{ProductID: uuid.NewString(), ProductName: "Apple", IsActive: true, CurrentStock: 5, TotalIn: 10, TotalOut: 5, Status: domain.StatusWarning},
		{ProductID: uuid.NewString(), ProductName: "Banana", IsActive: true, CurrentStock: 50, TotalIn: 50, Status: domain.StatusOK},
	}
	suite.stockSvc.On("GetStockOverview", mock.Anything, dto.StockOverviewParams{Query: "a"}).Return(snapshots, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/stock-overview?q=a", nil, &suite.viewerUser)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.StockSnapshotResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	suite.Equal("Apple", resp[0].ProductName)
	suite.Equal("warning", resp[0].Status)
	suite.Equal(int64(50), resp[1].CurrentStock)
	suite.stockSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestStockOverview_InternalErrorHidesDetail() {
	suite.stockSvc.On("GetStockOverview", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("connection reset by peer")).Once()

	w := suite.do(http.MethodGet, "/api/v1/stock-overview", nil, &suite.viewerUser)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection reset")
	suite.Equal("internal", suite.errorKind(w))
}

func (suite *HandlerTestSuite) TestDatesWithTransactions() {
	dates := []domain.Date{domain.NewDate(2024, 3, 3), domain.NewDate(2024, 3, 1)}
	suite.ledgerSvc.On("ListDatesWithTransactions", mock.Anything).Return(dates, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/dates-with-transactions", nil, &suite.editorUser)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListDatesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal([]string{"2024-03-03", "2024-03-01"}, resp.Dates)
}

func (suite *HandlerTestSuite) TestDateGroups_PassesActingUser() {
	today := domain.NewDate(2024, 3, 3)
	groups := []domain.DateGroup{
		{Date: today, IsToday: true, TransactionCount: 2, Capabilities: domain.CapabilitiesFor(domain.RoleEditor, today, today)},
	}
	suite.stockSvc.On("GetDateGroups", mock.Anything, suite.editorUser).Return(groups, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/date-groups", nil, &suite.editorUser)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.DateGroupResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.True(resp[0].IsToday)
	suite.True(resp[0].CanWrite)
	suite.Equal(2, resp[0].TransactionCount)
	suite.stockSvc.AssertExpectations(suite.T())
}

// --- Transactions ---

func (suite *HandlerTestSuite) TestListTransactions_ByDate() {
	date := domain.NewDate(2024, 3, 2)
	entries := []domain.RunningEntry{
		{Transaction: domain.Transaction{TransactionID: uuid.NewString(), ProductID: "p1", Date: date, QtyIn: 3}, ProductName: "Apple", RunningTotal: 13, Status: domain.StatusOK},
	}
	suite.stockSvc.On("GetTransactionsForDate", mock.Anything, date).Return(entries, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?date=2024-03-02", nil, &suite.viewerUser)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListRunningEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Entries, 1)
	suite.Equal(int64(13), resp.Entries[0].RunningTotal)
	suite.Equal("2024-03-02", resp.Entries[0].Date)
	suite.Nil(resp.NextToken)
}

func (suite *HandlerTestSuite) TestListTransactions_ByProductWithPaging() {
	token := "next-page"
	entries := []domain.RunningEntry{
		{Transaction: domain.Transaction{TransactionID: uuid.NewString(), ProductID: "p1", Date: domain.NewDate(2024, 3, 1), QtyIn: 10}, RunningTotal: 10},
	}
	suite.stockSvc.On("GetTransactionsForProduct", mock.Anything, "p1",
		mock.MatchedBy(func(p dto.ProductHistoryParams) bool {
			return p.Descending && p.Limit == 1 && p.NextToken == nil
		}),
	).Return(entries, &token, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?productId=p1&order=desc&limit=1", nil, &suite.viewerUser)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListRunningEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
	suite.stockSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListTransactions_InvalidSelectors() {
	cases := map[string]string{
		"neither":   "/api/v1/transactions",
		"both":      "/api/v1/transactions?date=2024-03-01&productId=p1",
		"bad date":  "/api/v1/transactions?date=03/01/2024",
		"bad order": "/api/v1/transactions?productId=p1&order=sideways",
		"bad limit": "/api/v1/transactions?productId=p1&limit=1000",
	}
	for name, url := range cases {
		w := suite.do(http.MethodGet, url, nil, &suite.viewerUser)
		suite.Equal(http.StatusBadRequest, w.Code, name)
		suite.Equal("validation", suite.errorKind(w), name)
	}
	suite.stockSvc.AssertNotCalled(suite.T(), "GetTransactionsForDate", mock.Anything, mock.Anything)
	suite.stockSvc.AssertNotCalled(suite.T(), "GetTransactionsForProduct", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListTransactions_UnknownProduct() {
	suite.stockSvc.On("GetTransactionsForProduct", mock.Anything, "missing", mock.Anything).
		Return(nil, nil, fmt.Errorf("%w: product missing", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?productId=missing", nil, &suite.viewerUser)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("not_found", suite.errorKind(w))
}

func (suite *HandlerTestSuite) TestRecordTransaction_Created() {
	date := domain.NewDate(2024, 3, 3)
	req := dto.CreateTransactionRequest{ProductID: "p1", Date: &date, QtyIn: 5}
	created := &domain.Transaction{TransactionID: uuid.NewString(), ProductID: "p1", Date: date, QtyIn: 5}
	suite.ledgerSvc.On("RecordTransaction", mock.Anything,
		mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
			return r.ProductID == "p1" && r.QtyIn == 5 && r.Date != nil && r.Date.Equal(date)
		}),
		suite.editorUser,
	).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transaction", req, &suite.editorUser)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.TransactionID, resp.TransactionID)
	suite.Equal("2024-03-03", resp.Date)
	suite.ledgerSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestRecordTransaction_ErrorMapping() {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"access window", fmt.Errorf("%w: editors may only write today", apperrors.ErrForbidden), http.StatusForbidden, "access_denied"},
		{"unknown product", fmt.Errorf("%w: product p1", apperrors.ErrNotFound), http.StatusNotFound, "not_found"},
		{"inactive product", fmt.Errorf("%w: product is inactive", apperrors.ErrValidation), http.StatusBadRequest, "validation"},
		{"lock timeout", fmt.Errorf("%w: product p1", apperrors.ErrBusy), http.StatusServiceUnavailable, "busy"},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.ledgerSvc.On("RecordTransaction", mock.Anything, mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/transaction", dto.CreateTransactionRequest{ProductID: "p1", QtyOut: 1}, &suite.editorUser)

			suite.Equal(tc.status, w.Code)
			suite.Equal(tc.kind, suite.errorKind(w))
			if tc.status == http.StatusServiceUnavailable {
				suite.Equal("1", w.Header().Get("Retry-After"))
			}
		})
	}
}

func (suite *HandlerTestSuite) TestRecordTransaction_BadBody() {
	w := suite.do(http.MethodPost, "/api/v1/transaction", map[string]any{"qtyIn": 1}, &suite.editorUser)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/transaction", map[string]any{"productId": "p1", "qtyIn": -1}, &suite.editorUser)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.ledgerSvc.AssertNotCalled(suite.T(), "RecordTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestUpdateTransaction_Success() {
	id := uuid.NewString()
	qty := int64(7)
	updated := &domain.Transaction{TransactionID: id, ProductID: "p1", Date: domain.NewDate(2024, 3, 3), QtyIn: 7}
	suite.ledgerSvc.On("UpdateTransaction", mock.Anything, id,
		mock.MatchedBy(func(r dto.UpdateTransactionRequest) bool {
			return r.QtyIn != nil && *r.QtyIn == qty && r.QtyOut == nil
		}),
		suite.adminUser,
	).Return(updated, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/transaction/"+id, dto.UpdateTransactionRequest{QtyIn: &qty}, &suite.adminUser)

	suite.Equal(http.StatusOK, w.Code)
	suite.ledgerSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestDeleteTransaction() {
	id := uuid.NewString()
	suite.ledgerSvc.On("DeleteTransaction", mock.Anything, id, suite.adminUser).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/transaction/"+id, nil, &suite.adminUser)
	suite.Equal(http.StatusNoContent, w.Code)

	suite.ledgerSvc.On("DeleteTransaction", mock.Anything, id, suite.viewerUser).
		Return(fmt.Errorf("%w: viewers are read-only", apperrors.ErrForbidden)).Once()

	w = suite.do(http.MethodDelete, "/api/v1/transaction/"+id, nil, &suite.viewerUser)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.ledgerSvc.AssertExpectations(suite.T())
}

// --- Products ---

func (suite *HandlerTestSuite) TestListProducts() {
	products := []domain.Product{{ProductID: "p1", Name: "Apple", IsActive: true}}
	suite.productSvc.On("ListProducts", mock.Anything, dto.ListProductsParams{ActiveOnly: true, Query: "app"}).Return(products, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/products?activeOnly=true&q=app", nil, &suite.viewerUser)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.ProductResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("Apple", resp[0].Name)
}

func (suite *HandlerTestSuite) TestGetProduct_WithSnapshot() {
	product := &domain.Product{ProductID: "p1", Name: "Apple", MaintainingQty: 10, CriticalQty: 5, IsActive: true}
	snapshot := &domain.StockSnapshot{ProductID: "p1", ProductName: "Apple", IsActive: true, CurrentStock: 4, TotalIn: 4, Status: domain.StatusCritical}
	suite.productSvc.On("GetProductByID", mock.Anything, "p1").Return(product, nil).Once()
	suite.stockSvc.On("GetProductSnapshot", mock.Anything, "p1").Return(snapshot, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/product/p1", nil, &suite.viewerUser)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ProductDetailResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("p1", resp.ProductID)
	suite.Equal(int64(4), resp.Stock.CurrentStock)
	suite.Equal("critical", resp.Stock.Status)
}

func (suite *HandlerTestSuite) TestGetProduct_NotFound() {
	suite.productSvc.On("GetProductByID", mock.Anything, "nope").
		Return(nil, fmt.Errorf("%w: product nope", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/product/nope", nil, &suite.viewerUser)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.stockSvc.AssertNotCalled(suite.T(), "GetProductSnapshot", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestProductWrites_RequireAdmin() {
	create := dto.CreateProductRequest{Name: "Apple", MaintainingQty: 10, CriticalQty: 5}
	for _, user := range []domain.ActingUser{suite.editorUser, suite.viewerUser} {
		u := user
		w := suite.do(http.MethodPost, "/api/v1/product", create, &u)
		suite.Equal(http.StatusForbidden, w.Code)
		suite.Equal("access_denied", suite.errorKind(w))

		w = suite.do(http.MethodPatch, "/api/v1/product/p1", map[string]any{"name": "Pear"}, &u)
		suite.Equal(http.StatusForbidden, w.Code)

		w = suite.do(http.MethodDelete, "/api/v1/product/p1", nil, &u)
		suite.Equal(http.StatusForbidden, w.Code)
	}
	suite.productSvc.AssertNotCalled(suite.T(), "CreateProduct", mock.Anything, mock.Anything, mock.Anything)
	suite.productSvc.AssertNotCalled(suite.T(), "UpdateProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.productSvc.AssertNotCalled(suite.T(), "DeactivateProduct", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateProduct_Admin() {
	req := dto.CreateProductRequest{Name: "Apple", MaintainingQty: 10, CriticalQty: 5}
	created := &domain.Product{ProductID: uuid.NewString(), Name: "Apple", MaintainingQty: 10, CriticalQty: 5, IsActive: true}
	suite.productSvc.On("CreateProduct", mock.Anything, req, suite.adminUser).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/product", req, &suite.adminUser)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ProductResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.ProductID, resp.ProductID)
	suite.True(resp.IsActive)
}

func (suite *HandlerTestSuite) TestCreateProduct_DuplicateCode() {
	code := "QC-1"
	req := dto.CreateProductRequest{Name: "Apple", Code: &code}
	suite.productSvc.On("CreateProduct", mock.Anything, mock.Anything, suite.adminUser).
		Return(nil, fmt.Errorf("%w: code QC-1", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/product", req, &suite.adminUser)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("conflict", suite.errorKind(w))
}

func (suite *HandlerTestSuite) TestUpdateProduct_Reactivate() {
	active := true
	product := &domain.Product{ProductID: "p1", Name: "Apple", IsActive: true}
	suite.productSvc.On("UpdateProduct", mock.Anything, "p1",
		mock.MatchedBy(func(r dto.UpdateProductRequest) bool { return r.Active != nil && *r.Active }),
		suite.adminUser,
	).Return(product, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/product/p1", dto.UpdateProductRequest{Active: &active}, &suite.adminUser)

	suite.Equal(http.StatusOK, w.Code)
	suite.productSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestDeactivateProduct_Admin() {
	product := &domain.Product{ProductID: "p1", Name: "Apple", IsActive: false}
	suite.productSvc.On("DeactivateProduct", mock.Anything, "p1", suite.adminUser).Return(product, nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/product/p1", nil, &suite.adminUser)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ProductResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.IsActive)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
