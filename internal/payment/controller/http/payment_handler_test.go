package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rentdesk/internal/payment/repo/persistent"
	"rentdesk/internal/payment/usecase"
	"rentdesk/pkg/jwt"
	"rentdesk/pkg/logger"
	"rentdesk/pkg/middleware"
	"rentdesk/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key"

func setupPaymentTest(t *testing.T) (*gin.Engine, *gorm.DB, *jwt.Service) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Property{}, &models.Lease{}, &models.Payment{}))

	log := logger.New()
	repo := persistent.NewPaymentRepository(db)
	uc := usecase.NewPaymentUseCase(repo, nil, log)
	handler := NewPaymentHandler(uc, log)
	jwtService := jwt.NewService(testSecret)

	router := gin.New()
	router.Use(middleware.RequestID())
	protected := router.Group("", middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/payments/tenant/:tenantId", handler.GetTenantPayments)
		protected.GET("/payments/tenant/:tenantId/stats", handler.GetTenantPaymentStats)
		protected.POST("/payments", handler.CreatePayment)
		protected.PUT("/payments/:id/status", handler.UpdatePaymentStatus)
	}

	return router, db, jwtService
}

func seedLease(t *testing.T, db *gorm.DB, leaseID, tenantID string) {
	property := &models.Property{LandlordID: "landlord-1", Name: "Oak House", Address: "12 Oak Street"}
	assert.NoError(t, db.Create(property).Error)
	lease := &models.Lease{
		ID:          leaseID,
		TenantID:    tenantID,
		PropertyID:  property.ID,
		StartDate:   time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		MonthlyRent: 500,
		Status:      models.LeaseActive,
	}
	assert.NoError(t, db.Create(lease).Error)
}

func doRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestCreatePayment_Unauthorized(t *testing.T) {
	router, _, _ := setupPaymentTest(t)

	w := doRequest(router, "POST", "/payments", "", map[string]interface{}{
		"tenant_id": "t1",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreatePayment_ThenMarkPaid(t *testing.T) {
	router, db, jwtService := setupPaymentTest(t)
	seedLease(t, db, "l1", "t1")
	token, _ := jwtService.GenerateToken("t1", "tenant")

	w := doRequest(router, "POST", "/payments", token, map[string]interface{}{
		"tenant_id":      "t1",
		"lease_id":       "l1",
		"amount":         500,
		"due_date":       "2024-01-01",
		"payment_method": "bank",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "pending", created.Data["status"])
	assert.Nil(t, created.Data["paid_date"])

	lease, ok := created.Data["lease"].(map[string]interface{})
	assert.True(t, ok, "response should include the joined lease")
	assert.NotNil(t, lease["property"])

	paymentID := created.Data["id"].(string)

	// Marking paid stamps the paid date automatically
	w = doRequest(router, "PUT", "/payments/"+paymentID+"/status", token, map[string]interface{}{
		"status": "paid",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated struct {
		Data map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "paid", updated.Data["status"])
	assert.NotNil(t, updated.Data["paid_date"])

	// Moving away from paid clears it again
	w = doRequest(router, "PUT", "/payments/"+paymentID+"/status", token, map[string]interface{}{
		"status": "pending",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "pending", updated.Data["status"])
	assert.Nil(t, updated.Data["paid_date"])
}

func TestCreatePayment_MissingLeaseID(t *testing.T) {
	router, _, jwtService := setupPaymentTest(t)
	token, _ := jwtService.GenerateToken("t1", "tenant")

	w := doRequest(router, "POST", "/payments", token, map[string]interface{}{
		"tenant_id":      "t1",
		"amount":         500,
		"due_date":       "2024-01-01",
		"payment_method": "bank",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, false, resp["success"])
}

func TestCreatePayment_LeaseOfDifferentTenant(t *testing.T) {
	router, db, jwtService := setupPaymentTest(t)
	seedLease(t, db, "l1", "someone-else")
	token, _ := jwtService.GenerateToken("t1", "tenant")

	w := doRequest(router, "POST", "/payments", token, map[string]interface{}{
		"tenant_id":      "t1",
		"lease_id":       "l1",
		"amount":         500,
		"due_date":       "2024-01-01",
		"payment_method": "bank",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePaymentStatus_ForeignTenantGets404(t *testing.T) {
	router, db, jwtService := setupPaymentTest(t)
	seedLease(t, db, "l1", "t1")
	ownerToken, _ := jwtService.GenerateToken("t1", "tenant")

	w := doRequest(router, "POST", "/payments", ownerToken, map[string]interface{}{
		"tenant_id":      "t1",
		"lease_id":       "l1",
		"amount":         500,
		"due_date":       "2024-01-01",
		"payment_method": "bank",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data map[string]interface{} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)
	paymentID := created.Data["id"].(string)

	otherToken, _ := jwtService.GenerateToken("t2", "tenant")
	w = doRequest(router, "PUT", "/payments/"+paymentID+"/status", otherToken, map[string]interface{}{
		"status": "paid",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTenantPayments_ForeignTenantGets404(t *testing.T) {
	router, db, jwtService := setupPaymentTest(t)
	seedLease(t, db, "l1", "t1")

	otherToken, _ := jwtService.GenerateToken("t2", "tenant")
	w := doRequest(router, "GET", "/payments/tenant/t1", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A landlord can read any tenant's payments
	landlordToken, _ := jwtService.GenerateToken("landlord-1", "landlord")
	w = doRequest(router, "GET", "/payments/tenant/t1", landlordToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetTenantPaymentStats(t *testing.T) {
	router, db, jwtService := setupPaymentTest(t)
	seedLease(t, db, "l1", "t1")
	token, _ := jwtService.GenerateToken("t1", "tenant")

	for i := 0; i < 2; i++ {
		w := doRequest(router, "POST", "/payments", token, map[string]interface{}{
			"tenant_id":      "t1",
			"lease_id":       "l1",
			"amount":         500,
			"due_date":       "2024-01-01",
			"payment_method": "bank",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	w := doRequest(router, "GET", "/payments/tenant/t1/stats", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "pending", resp.Data[0]["status"])
	assert.Equal(t, float64(2), resp.Data[0]["count"])
	assert.Equal(t, float64(1000), resp.Data[0]["total"])
}
