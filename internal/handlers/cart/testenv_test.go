package cart

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yschan/shop-backend/internal/config"
	"github.com/yschan/shop-backend/internal/httpx"
	"github.com/yschan/shop-backend/internal/middleware/auth"
	"github.com/yschan/shop-backend/internal/models"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
	H  *CartHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	return &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,
		H:  &CartHandler{DB: db},
	}
}

func (env *testEnv) createUser(account string, role int) models.User {
	env.T.Helper()
	user := models.User{
		Account:  account,
		Password: "hashed",
		Email:    account + "@test.com",
		Role:     role,
		Address:  "台北市中正區",
	}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return user
}

func (env *testEnv) createProduct(name string, sell bool) models.Product {
	env.T.Helper()
	product := models.Product{Name: name, Price: 100, Sell: sell}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return product
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}, user models.User) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	c.Set(auth.UserContextKey, user)
	return rec, c
}

func requireEnvelope(t *testing.T, rec *httptest.ResponseRecorder, code int, success bool, message string) httpx.Response {
	t.Helper()

	require.Equal(t, code, rec.Code)
	var resp httpx.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, success, resp.Success)
	require.Equal(t, message, resp.Message)
	return resp
}
