package gifts

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jkate0000007/eve-platform/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

// Test de la liste des cadeaux avec totaux dérivés (cas de succès)
func TestGetCreatorAppleGifts_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	// 5 pommes à $1.44 donnent $7.20
	mock.ExpectQuery(`SELECT (.+) FROM "apple_gifts" WHERE creator_id = \$1 AND status = \$2`).
		WithArgs("creator-uuid-1", "completed").
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id", "amount", "price_per_apple", "total_amount", "status"}).
			AddRow("gift-uuid-1", "creator-uuid-1", 5, 1.44, 7.20, "completed").
			AddRow("gift-uuid-2", "creator-uuid-1", 2, 1.44, 2.88, "completed"))

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "apple_gifts"`).
		WithArgs("creator-uuid-1", "completed").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(7))

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(apple_count\), 0\) FROM "apple_redemptions"`).
		WithArgs("creator-uuid-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

	r := testutils.SetupTestRouter()
	r.GET("/gifts", func(c *gin.Context) {
		c.Set("user_id", "creator-uuid-1")
		GetCreatorAppleGifts(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/gifts", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, float64(7), respBody["totalApples"])
	assert.Equal(t, "10.08", respBody["totalAmount"])
	assert.Equal(t, float64(7), respBody["redeemableApples"])
}

// Test d'une demande de retrait sous le seuil minimal (cas d'échec)
func TestRedeemApples_BelowMinimum(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/gifts/redeem", func(c *gin.Context) {
		c.Set("user_id", "creator-uuid-1")
		RedeemApples(c)
	})

	body, _ := json.Marshal(map[string]int{"appleCount": 99})
	req, _ := http.NewRequest(http.MethodPost, "/gifts/redeem", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Minimum redemption is 100 apples", respBody["error"])
}

// Test d'une demande de retrait au-delà du solde (cas d'échec)
func TestRedeemApples_AboveBalance(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "apple_gifts"`).
		WithArgs("creator-uuid-1", "completed").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(150))

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(apple_count\), 0\) FROM "apple_redemptions"`).
		WithArgs("creator-uuid-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(100))

	r := testutils.SetupTestRouter()
	r.POST("/gifts/redeem", func(c *gin.Context) {
		c.Set("user_id", "creator-uuid-1")
		RedeemApples(c)
	})

	body, _ := json.Marshal(map[string]int{"appleCount": 100})
	req, _ := http.NewRequest(http.MethodPost, "/gifts/redeem", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "You don't have enough apples to redeem", respBody["error"])
}

// Test d'une demande de retrait valide (cas de succès)
func TestRedeemApples_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "apple_gifts"`).
		WithArgs("creator-uuid-1", "completed").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(250))

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(apple_count\), 0\) FROM "apple_redemptions"`).
		WithArgs("creator-uuid-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(50))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "apple_redemptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("redemption-uuid-1"))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/gifts/redeem", func(c *gin.Context) {
		c.Set("user_id", "creator-uuid-1")
		RedeemApples(c)
	})

	body, _ := json.Marshal(map[string]int{"appleCount": 150})
	req, _ := http.NewRequest(http.MethodPost, "/gifts/redeem", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	// 150 pommes à $1.00
	assert.Equal(t, float64(150), respBody["appleCount"])
	assert.Equal(t, float64(150), respBody["amount"])
	assert.Equal(t, "pending", respBody["status"])
}

// Test de la liste des demandes de retrait (cas de succès)
func TestGetRedemptions_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "apple_redemptions" WHERE creator_id = \$1`).
		WithArgs("creator-uuid-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id", "apple_count", "amount", "status"}).
			AddRow("redemption-uuid-1", "creator-uuid-1", 150, 150.0, "pending"))

	r := testutils.SetupTestRouter()
	r.GET("/gifts/redemptions", func(c *gin.Context) {
		c.Set("user_id", "creator-uuid-1")
		GetRedemptions(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/gifts/redemptions", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string][]map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Len(t, respBody["redemptions"], 1)
}

// Test de l'accès sans authentification (cas d'échec)
func TestGetCreatorAppleGifts_Unauthorized(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.GET("/gifts", GetCreatorAppleGifts)

	req, _ := http.NewRequest(http.MethodGet, "/gifts", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
