package stripe

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jkate0000007/eve-platform/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// Test du checkout de souscription sans authentification (cas d'échec)
func TestCreateSubscriptionCheckoutSession_Unauthorized(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/subscriptions/checkout/:creatorId", CreateSubscriptionCheckoutSession)

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/checkout/creator-uuid-1", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

// Test du checkout vers un créateur inexistant (cas d'échec)
func TestCreateSubscriptionCheckoutSession_CreatorNotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WithArgs("fan-uuid-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role"}).
			AddRow("fan-uuid-1", "FAN"))

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WithArgs("creator-uuid-404", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.POST("/subscriptions/checkout/:creatorId", func(c *gin.Context) {
		c.Set("user_id", "fan-uuid-1")
		CreateSubscriptionCheckoutSession(c)
	})

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/checkout/creator-uuid-404", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Creator not found", respBody["error"])
}

// Test du checkout vers un compte qui n'est pas créateur (cas d'échec)
func TestCreateSubscriptionCheckoutSession_NotACreator(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WithArgs("fan-uuid-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role"}).
			AddRow("fan-uuid-1", "FAN"))

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WithArgs("fan-uuid-2", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role"}).
			AddRow("fan-uuid-2", "FAN"))

	r := testutils.SetupTestRouter()
	r.POST("/subscriptions/checkout/:creatorId", func(c *gin.Context) {
		c.Set("user_id", "fan-uuid-1")
		CreateSubscriptionCheckoutSession(c)
	})

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/checkout/fan-uuid-2", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Can only subscribe to a creator", respBody["error"])
}

// Test du checkout avec une souscription déjà active (cas d'échec)
func TestCreateSubscriptionCheckoutSession_AlreadySubscribed(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WithArgs("fan-uuid-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role"}).
			AddRow("fan-uuid-1", "FAN"))

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WithArgs("creator-uuid-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "subscription_price"}).
			AddRow("creator-uuid-1", "CREATOR", 4.99))

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE subscriber_id = \$1 AND creator_id = \$2 AND status = \$3`).
		WithArgs("fan-uuid-1", "creator-uuid-1", "ACTIVE", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "subscriber_id", "creator_id", "status"}).
			AddRow("sub-uuid-1", "fan-uuid-1", "creator-uuid-1", "ACTIVE"))

	r := testutils.SetupTestRouter()
	r.POST("/subscriptions/checkout/:creatorId", func(c *gin.Context) {
		c.Set("user_id", "fan-uuid-1")
		CreateSubscriptionCheckoutSession(c)
	})

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/checkout/creator-uuid-1", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)
}

// Test du pourboire avec un nombre de pommes invalide (cas d'échec)
func TestCreateAppleGiftCheckoutSession_InvalidCount(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/gifts/checkout", func(c *gin.Context) {
		c.Set("user_id", "fan-uuid-1")
		CreateAppleGiftCheckoutSession(c)
	})

	body, _ := json.Marshal(map[string]interface{}{
		"postId":     "post-uuid-1",
		"creatorId":  "creator-uuid-1",
		"appleCount": -3,
	})
	req, _ := http.NewRequest(http.MethodPost, "/gifts/checkout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Apple count must be at least 1", respBody["error"])
}

// Test du pourboire sans authentification (cas d'échec)
func TestCreateAppleGiftCheckoutSession_Unauthorized(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/gifts/checkout", CreateAppleGiftCheckoutSession)

	body, _ := json.Marshal(map[string]interface{}{
		"postId":     "post-uuid-1",
		"creatorId":  "creator-uuid-1",
		"appleCount": 5,
	})
	req, _ := http.NewRequest(http.MethodPost, "/gifts/checkout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

// Test de l'annulation d'une souscription sans lien Stripe (cas de succès)
func TestCancelSubscription_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	subID := "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE id = \$1`).
		WithArgs(subID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "subscriber_id", "creator_id", "status", "stripe_subscription_id"}).
			AddRow(subID, "fan-uuid-1", "creator-uuid-1", "ACTIVE", ""))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "subscriptions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.DELETE("/subscriptions/:subscriptionId", func(c *gin.Context) {
		c.Set("user_id", "fan-uuid-1")
		CancelSubscription(c)
	})

	req, _ := http.NewRequest(http.MethodDelete, "/subscriptions/"+subID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Subscription canceled successfully", respBody["message"])
}

// Test de l'annulation de la souscription d'un autre utilisateur (cas d'échec)
func TestCancelSubscription_NotOwner(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	subID := "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE id = \$1`).
		WithArgs(subID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "subscriber_id", "creator_id", "status"}).
			AddRow(subID, "fan-uuid-1", "creator-uuid-1", "ACTIVE"))

	r := testutils.SetupTestRouter()
	r.DELETE("/subscriptions/:subscriptionId", func(c *gin.Context) {
		c.Set("user_id", "other-uuid-1")
		CancelSubscription(c)
	})

	req, _ := http.NewRequest(http.MethodDelete, "/subscriptions/"+subID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

// Test de l'annulation d'une souscription inexistante (cas d'échec)
func TestCancelSubscription_NotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	subID := "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE id = \$1`).
		WithArgs(subID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.DELETE("/subscriptions/:subscriptionId", func(c *gin.Context) {
		c.Set("user_id", "fan-uuid-1")
		CancelSubscription(c)
	})

	req, _ := http.NewRequest(http.MethodDelete, "/subscriptions/"+subID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

// Test de la liste des souscriptions du user connecté (cas de succès)
func TestGetUserSubscriptions_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE subscriber_id = \$1`).
		WithArgs("fan-uuid-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "subscriber_id", "creator_id", "status"}).
			AddRow("sub-uuid-1", "fan-uuid-1", "creator-uuid-1", "ACTIVE").
			AddRow("sub-uuid-2", "fan-uuid-1", "creator-uuid-2", "CANCELED"))

	r := testutils.SetupTestRouter()
	r.GET("/subscriptions", func(c *gin.Context) {
		c.Set("user_id", "fan-uuid-1")
		GetUserSubscriptions(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/subscriptions", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody []map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Len(t, respBody, 2)
}
