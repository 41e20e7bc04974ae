package cart

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yschan/shop-backend/internal/models"
)

func TestAddToCart(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("tester", models.RoleMember)
	product := env.createProduct("sneaker", true)

	rec, c := env.doJSONRequest(http.MethodPost, "/users/cart", map[string]interface{}{
		"product_id": product.ID,
		"amount":     2,
	}, user)
	require.NoError(t, env.H.AddToCart(c))
	requireEnvelope(t, rec, http.StatusOK, true, "")

	var item models.CartItem
	require.NoError(t, env.DB.Where("user_id = ?", user.ID).First(&item).Error)
	require.Equal(t, product.ID, item.ProductID)
	require.EqualValues(t, 2, item.Amount)
}

func TestAddToCartTwiceIncrements(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("tester", models.RoleMember)
	product := env.createProduct("sneaker", true)

	body := map[string]interface{}{"product_id": product.ID, "amount": 2}

	_, c := env.doJSONRequest(http.MethodPost, "/users/cart", body, user)
	require.NoError(t, env.H.AddToCart(c))
	_, c = env.doJSONRequest(http.MethodPost, "/users/cart", body, user)
	require.NoError(t, env.H.AddToCart(c))

	var items []models.CartItem
	require.NoError(t, env.DB.Where("user_id = ?", user.ID).Find(&items).Error)
	require.Len(t, items, 1)
	require.EqualValues(t, 4, items[0].Amount)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("tester", models.RoleMember)

	rec, c := env.doJSONRequest(http.MethodPost, "/users/cart", map[string]interface{}{
		"product_id": 42,
		"amount":     1,
	}, user)
	require.NoError(t, env.H.AddToCart(c))
	requireEnvelope(t, rec, http.StatusNotFound, false, "資料不存在")
}

func TestAddToCartUnsoldProduct(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("tester", models.RoleMember)
	product := env.createProduct("old boot", false)

	rec, c := env.doJSONRequest(http.MethodPost, "/users/cart", map[string]interface{}{
		"product_id": product.ID,
		"amount":     1,
	}, user)
	require.NoError(t, env.H.AddToCart(c))
	requireEnvelope(t, rec, http.StatusNotFound, false, "資料不存在")
}

func TestEditCartOverwritesAmount(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("tester", models.RoleMember)
	product := env.createProduct("sneaker", true)
	require.NoError(t, env.DB.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Amount: 5}).Error)

	rec, c := env.doJSONRequest(http.MethodPatch, "/users/cart", map[string]interface{}{
		"product_id": product.ID,
		"amount":     3,
	}, user)
	require.NoError(t, env.H.EditCart(c))
	requireEnvelope(t, rec, http.StatusOK, true, "")

	var item models.CartItem
	require.NoError(t, env.DB.Where("user_id = ?", user.ID).First(&item).Error)
	require.EqualValues(t, 3, item.Amount)
}

func TestEditCartZeroRemovesEntry(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("tester", models.RoleMember)
	product := env.createProduct("sneaker", true)
	require.NoError(t, env.DB.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Amount: 5}).Error)

	rec, c := env.doJSONRequest(http.MethodPatch, "/users/cart", map[string]interface{}{
		"product_id": product.ID,
		"amount":     0,
	}, user)
	require.NoError(t, env.H.EditCart(c))
	requireEnvelope(t, rec, http.StatusOK, true, "")

	var count int64
	require.NoError(t, env.DB.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestGetCart(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("tester", models.RoleMember)
	product := env.createProduct("sneaker", true)
	require.NoError(t, env.DB.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Amount: 3}).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/users/cart", nil, user)
	require.NoError(t, env.H.GetCart(c))
	resp := requireEnvelope(t, rec, http.StatusOK, true, "")

	result := resp.Result.([]interface{})
	require.Len(t, result, 1)
	entry := result[0].(map[string]interface{})
	require.EqualValues(t, 3, entry["amount"])
	require.Equal(t, "sneaker", entry["product"].(map[string]interface{})["name"])
}
