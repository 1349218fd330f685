package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/nearbasket/nearbasket-api/internal/api/handlers"
	appErrors "github.com/nearbasket/nearbasket-api/internal/errors"
	"github.com/nearbasket/nearbasket-api/internal/models"
	"github.com/nearbasket/nearbasket-api/internal/services/mocks"
	"github.com/nearbasket/nearbasket-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupOrderHandlerTest(t *testing.T) (*handlers.OrderHandler, *mocks.OrderService) {
	mockService := mocks.NewOrderService(t)
	handler := handlers.NewOrderHandler(mockService)

	return handler, mockService
}

func TestCheckoutHandler(t *testing.T) {
	userID := uuid.New()

	checkoutBody := func(t *testing.T) []byte {
		t.Helper()

		body, err := json.Marshal(models.CheckoutRequest{
			PaymentMethod: "cod",
			FullName:      "Asha Verma",
			Mobile:        "9876543210",
			AddressLine1:  "14 MG Road",
			City:          "Pune",
			State:         "Maharashtra",
			Pincode:       "411001",
		})
		require.NoError(t, err)

		return body
	}

	t.Run("Success - Forwards The Idempotency Key", func(t *testing.T) {
		// Arrange
		handler, mockService := setupOrderHandlerTest(t)
		order := &models.Order{ID: uuid.New(), UserID: userID, GrandTotal: 200, Status: models.OrderStatusPending}
		mockService.On("Checkout", mock.Anything, userID, "idem-42", mock.AnythingOfType("*models.CheckoutRequest")).
			Return(order, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders/checkout", bytes.NewReader(checkoutBody(t)), userID, nil)
		req.Header.Set("Idempotency-Key", "idem-42")
		rr := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		resp := decodeResponse(t, rr)
		assert.True(t, resp.Success)
	})

	t.Run("Success - No Idempotency Key", func(t *testing.T) {
		// Arrange
		handler, mockService := setupOrderHandlerTest(t)
		order := &models.Order{ID: uuid.New(), UserID: userID}
		mockService.On("Checkout", mock.Anything, userID, "", mock.AnythingOfType("*models.CheckoutRequest")).
			Return(order, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders/checkout", bytes.NewReader(checkoutBody(t)), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Failure - Invalid Payment Method", func(t *testing.T) {
		// Arrange
		handler, _ := setupOrderHandlerTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders/checkout",
			bytes.NewReader([]byte(`{"payment_method": "cheque"}`)), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeResponse(t, rr)
		assert.False(t, resp.Success)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		handler, mockService := setupOrderHandlerTest(t)
		mockService.On("Checkout", mock.Anything, userID, "", mock.AnythingOfType("*models.CheckoutRequest")).
			Return(nil, appErrors.EmptyCartError("Cart is empty")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders/checkout", bytes.NewReader(checkoutBody(t)), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeResponse(t, rr)
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeEmptyCart, resp.Error.Code)
	})

	t.Run("Failure - No Claims", func(t *testing.T) {
		// Arrange
		handler, _ := setupOrderHandlerTest(t)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/orders/checkout", bytes.NewReader(checkoutBody(t)), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestListOrdersHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Scope And Pagination Forwarded", func(t *testing.T) {
		// Arrange
		handler, mockService := setupOrderHandlerTest(t)
		result := &models.PaginatedResponse{Data: []models.Order{}, Total: 0, Page: 2, PageSize: 5}
		mockService.On("ListMyOrders", mock.Anything, userID, "global", (*uuid.UUID)(nil), 2, 5).
			Return(result, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders?scope=global&page=2&size=5", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.ListOrders().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Unknown Scope", func(t *testing.T) {
		// Arrange
		handler, _ := setupOrderHandlerTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders?scope=everything", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.ListOrders().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetOrderHandler(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		handler, mockService := setupOrderHandlerTest(t)
		order := &models.Order{ID: orderID, UserID: userID}
		mockService.On("GetMyOrder", mock.Anything, userID, orderID).Return(order, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, userID,
			map[string]string{"id": orderID.String()})
		rr := httptest.NewRecorder()

		// Act
		handler.GetOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		handler, mockService := setupOrderHandlerTest(t)
		mockService.On("GetMyOrder", mock.Anything, userID, orderID).
			Return(nil, appErrors.NotFoundError("Order not found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, userID,
			map[string]string{"id": orderID.String()})
		rr := httptest.NewRecorder()

		// Act
		handler.GetOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestAdminOrderHandlers(t *testing.T) {
	adminID := uuid.New()
	orderID := uuid.New()

	adminRequest := func(method, target string, body []byte, pathParams map[string]string) *http.Request {
		var reader *bytes.Reader
		if body != nil {
			reader = bytes.NewReader(body)
			return testutils.CreateTestRequestWithClaims(method, target, reader,
				&models.Claims{UserID: adminID, Role: models.RoleAdmin}, pathParams)
		}

		return testutils.CreateTestRequestWithClaims(method, target, nil,
			&models.Claims{UserID: adminID, Role: models.RoleAdmin}, pathParams)
	}

	t.Run("AdminListOrders - Date Filter Forwarded", func(t *testing.T) {
		// Arrange
		handler, mockService := setupOrderHandlerTest(t)
		result := &models.PaginatedResponse{Data: []models.Order{}}
		mockService.On("AdminListOrders", mock.Anything, mock.MatchedBy(func(f models.OrderListFilter) bool {
			return f.Status == models.OrderStatusPending && f.StartDate != nil
		}), 0, 0).Return(result, nil).Once()

		req := adminRequest(http.MethodGet, "/api/v1/admin/orders?status=pending&from=2026-08-01T00:00:00Z", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.AdminListOrders().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("AdminListOrders - Bad Date", func(t *testing.T) {
		// Arrange
		handler, _ := setupOrderHandlerTest(t)
		req := adminRequest(http.MethodGet, "/api/v1/admin/orders?from=yesterday", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.AdminListOrders().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("UpdateOrderStatus - Invalid Transition Propagates", func(t *testing.T) {
		// Arrange
		handler, mockService := setupOrderHandlerTest(t)
		mockService.On("UpdateStatus", mock.Anything, orderID, mock.AnythingOfType("*models.UpdateOrderStatusRequest")).
			Return(nil, appErrors.InvalidTransitionError("Cannot change order status from delivered to cancelled")).Once()

		body := []byte(`{"status": "cancelled"}`)
		req := adminRequest(http.MethodPatch, "/api/v1/admin/orders/"+orderID.String()+"/status", body,
			map[string]string{"id": orderID.String()})
		rr := httptest.NewRecorder()

		// Act
		handler.UpdateOrderStatus().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeResponse(t, rr)
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeInvalidTransition, resp.Error.Code)
	})

	t.Run("DeleteOrder - Success", func(t *testing.T) {
		// Arrange
		handler, mockService := setupOrderHandlerTest(t)
		mockService.On("SoftDelete", mock.Anything, orderID).Return(nil).Once()

		req := adminRequest(http.MethodDelete, "/api/v1/admin/orders/"+orderID.String(), nil,
			map[string]string{"id": orderID.String()})
		rr := httptest.NewRecorder()

		// Act
		handler.DeleteOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeResponse(t, rr)
		assert.Equal(t, "Order deleted", resp.Message)
	})
}
