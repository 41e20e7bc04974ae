package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yschan/shop-backend/internal/models"
)

func TestCreateHomeAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	member := env.createUser("member", models.RoleMember)

	rec, c := env.doFormRequest(http.MethodPost, "/homes", map[string]string{"title": "sale"})
	asUser(c, member, "")
	require.NoError(t, env.H.CreateHome(c))
	requireEnvelope(t, rec, http.StatusForbidden, false, "沒有權限")
}

func TestHomeLifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser("admin", models.RoleAdmin)

	rec, c := env.doFormRequest(http.MethodPost, "/homes", map[string]string{
		"title":       "summer sale",
		"description": "up to half off",
		"link":        "/products/query?keywords=sale",
	})
	asUser(c, admin, "")
	require.NoError(t, env.H.CreateHome(c))
	resp := requireEnvelope(t, rec, http.StatusOK, true, "")
	require.Equal(t, "summer sale", resp.Result.(map[string]interface{})["title"])

	var home models.Home
	require.NoError(t, env.DB.First(&home, 1).Error)
	require.WithinDuration(t, time.Now(), home.Date, time.Minute)

	rec, c = env.doFormRequest(http.MethodPatch, "/homes/1", map[string]string{"title": "winter sale"})
	c.SetParamNames("id")
	c.SetParamValues("1")
	asUser(c, admin, "")
	require.NoError(t, env.H.EditHome(c))
	requireEnvelope(t, rec, http.StatusOK, true, "")

	require.NoError(t, env.DB.First(&home, 1).Error)
	require.Equal(t, "winter sale", home.Title)
	require.Equal(t, "up to half off", home.Description)

	rec, c = env.doJSONRequest(http.MethodGet, "/homes", nil)
	require.NoError(t, env.H.GetHomes(c))
	resp = requireEnvelope(t, rec, http.StatusOK, true, "")
	require.Len(t, resp.Result.([]interface{}), 1)

	rec, c = env.doJSONRequest(http.MethodDelete, "/homes/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	asUser(c, admin, "")
	require.NoError(t, env.H.DeleteHome(c))
	requireEnvelope(t, rec, http.StatusOK, true, "")

	var count int64
	require.NoError(t, env.DB.Model(&models.Home{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}
