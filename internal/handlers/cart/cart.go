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

type itemRequest struct {
	ProductID uint `json:"product_id" query:"product_id"`
	Amount    int  `json:"amount"     query:"amount"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	user, _ := auth.CurrentUser(c)

	var items []models.CartItem
	if err := h.DB.Preload("Product").
		Where("user_id = ?", user.ID).
		Find(&items).Error; err != nil {
		return httpx.ServerError(c)
	}

	return httpx.OK(c, "", items)
}

// AddToCart increments the amount of an existing (user, product) entry
// or appends a new one. The product must exist and be on sale.
func (h *CartHandler) AddToCart(c echo.Context) error {
	user, _ := auth.CurrentUser(c)

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "資料格式不正確")
	}
	if req.Amount < 1 {
		req.Amount = 1
	}

	var product models.Product
	if err := h.DB.First(&product, req.ProductID).Error; err != nil || !product.Sell {
		return httpx.Fail(c, http.StatusNotFound, "資料不存在")
	}

	var item models.CartItem
	tx := h.DB.Where("user_id = ? AND product_id = ?", user.ID, req.ProductID).First(&item)
	if tx.Error == nil {
		item.Amount += uint(req.Amount)
		if err := h.DB.Save(&item).Error; err != nil {
			return httpx.ServerError(c)
		}
	} else if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			UserID:    user.ID,
			ProductID: req.ProductID,
			Amount:    uint(req.Amount),
		}
		if err := h.DB.Create(&item).Error; err != nil {
			return httpx.ServerError(c)
		}
	} else {
		return httpx.ServerError(c)
	}

	h.publish(c, map[string]interface{}{
		"type":      "cart_item_added",
		"userID":    user.ID,
		"productID": req.ProductID,
		"amount":    item.Amount,
	})

	return httpx.OK(c, "", nil)
}

// EditCart overwrites the stored amount; zero or less removes the
// entry entirely. Editing an absent entry is a silent no-op.
func (h *CartHandler) EditCart(c echo.Context) error {
	user, _ := auth.CurrentUser(c)

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "資料格式不正確")
	}

	if req.Amount <= 0 {
		if err := h.DB.
			Where("user_id = ? AND product_id = ?", user.ID, req.ProductID).
			Delete(&models.CartItem{}).Error; err != nil {
			return httpx.ServerError(c)
		}
	} else {
		if err := h.DB.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", user.ID, req.ProductID).
			Update("amount", req.Amount).Error; err != nil {
			return httpx.ServerError(c)
		}
	}

	h.publish(c, map[string]interface{}{
		"type":      "cart_item_edited",
		"userID":    user.ID,
		"productID": req.ProductID,
		"amount":    req.Amount,
	})

	return httpx.OK(c, "", nil)
}
