package cart

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/yschan/shop-backend/internal/httpx"
	"github.com/yschan/shop-backend/internal/middleware/auth"
	"github.com/yschan/shop-backend/internal/models"
)

func (h *CartHandler) GetFavorites(c echo.Context) error {
	user, _ := auth.CurrentUser(c)

	var items []models.FavoriteItem
	if err := h.DB.Preload("Product").
		Where("user_id = ?", user.ID).
		Find(&items).Error; err != nil {
		return httpx.ServerError(c)
	}

	return httpx.OK(c, "", items)
}

// AddFavorite rejects a duplicate add instead of incrementing, unlike
// the cart.
func (h *CartHandler) AddFavorite(c echo.Context) error {
	user, _ := auth.CurrentUser(c)

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "資料格式不正確")
	}

	var product models.Product
	if err := h.DB.First(&product, req.ProductID).Error; err != nil || !product.Sell {
		return httpx.Fail(c, http.StatusNotFound, "資料不存在")
	}

	var existing models.FavoriteItem
	tx := h.DB.Where("user_id = ? AND product_id = ?", user.ID, req.ProductID).First(&existing)
	if tx.Error == nil {
		return httpx.Fail(c, http.StatusBadRequest, "商品已收藏")
	}
	if !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return httpx.ServerError(c)
	}

	item := models.FavoriteItem{
		UserID:    user.ID,
		ProductID: req.ProductID,
		Amount:    uint(max(req.Amount, 0)),
	}
	if err := h.DB.Create(&item).Error; err != nil {
		return httpx.ServerError(c)
	}

	h.publish(c, map[string]interface{}{
		"type":      "favorite_added",
		"userID":    user.ID,
		"productID": req.ProductID,
	})

	return httpx.OK(c, "", nil)
}

func (h *CartHandler) DeleteFavorite(c echo.Context) error {
	user, _ := auth.CurrentUser(c)

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "資料格式不正確")
	}

	if err := h.DB.
		Where("user_id = ? AND product_id = ?", user.ID, req.ProductID).
		Delete(&models.FavoriteItem{}).Error; err != nil {
		return httpx.ServerError(c)
	}

	h.publish(c, map[string]interface{}{
		"type":      "favorite_removed",
		"userID":    user.ID,
		"productID": req.ProductID,
	})

	return httpx.OK(c, "", nil)
}
