package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yschan/shop-backend/internal/config"
	"github.com/yschan/shop-backend/internal/hash"
	"github.com/yschan/shop-backend/internal/httpx"
	"github.com/yschan/shop-backend/internal/middleware/auth"
	"github.com/yschan/shop-backend/internal/models"
)

var testSecret = []byte("test_secret")

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
	U  *UserHandler
	P  *ProductHandler
	H  *HomeHandler
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := newTestDB(t)

	return &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,
		U:  &UserHandler{DB: db, JWTSecret: testSecret},
		P:  &ProductHandler{DB: db},
		H:  &HomeHandler{DB: db},
	}
}

func (env *testEnv) createUser(account string, role int) models.User {
	env.T.Helper()

	hashed, err := hash.HashPassword("password")
	require.NoError(env.T, err)

	user := models.User{
		Account:  account,
		Password: hashed,
		Email:    account + "@test.com",
		Role:     role,
	}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return user
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) doFormRequest(method, path string, fields map[string]string) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(env.T, w.WriteField(k, v))
	}
	require.NoError(env.T, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func asUser(c echo.Context, user models.User, token string) {
	c.Set(auth.UserContextKey, user)
	c.Set(auth.TokenContextKey, token)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) httpx.Response {
	t.Helper()

	var resp httpx.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func requireEnvelope(t *testing.T, rec *httptest.ResponseRecorder, code int, success bool, message string) httpx.Response {
	t.Helper()

	require.Equal(t, code, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.Equal(t, success, resp.Success)
	require.Equal(t, message, resp.Message)
	return resp
}
