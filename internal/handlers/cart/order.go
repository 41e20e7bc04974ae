package cart

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/yschan/shop-backend/internal/httpx"
	"github.com/yschan/shop-backend/internal/middleware/auth"
	"github.com/yschan/shop-backend/internal/models"
)

// Checkout snapshots a non-empty cart into one order and clears the
// cart, all inside a single transaction. An empty cart is a no-op that
// still reports success.
func (h *CartHandler) Checkout(c echo.Context) error {
	user, _ := auth.CurrentUser(c)

	var req struct {
		Address string `json:"address"`
	}
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "資料格式不正確")
	}
	address := req.Address
	if address == "" {
		address = user.Address
	}

	var order models.Order
	created := false

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("user_id = ?", user.ID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}

		order = models.Order{
			UserID:   user.ID,
			Date:     time.Now(),
			Address:  address,
			Progress: models.DefaultProgress,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, it := range items {
			oi := models.OrderItem{
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Amount:    it.Amount,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if txErr != nil {
		return httpx.ServerError(c)
	}

	if created {
		h.publish(c, map[string]interface{}{
			"type":    "order_created",
			"userID":  user.ID,
			"orderID": order.ID,
		})
	}

	return httpx.OK(c, "", nil)
}

func (h *CartHandler) GetOrders(c echo.Context) error {
	user, _ := auth.CurrentUser(c)

	var result []models.Order
	if err := h.DB.Preload("Items.Product").
		Where("user_id = ?", user.ID).
		Find(&result).Error; err != nil {
		return httpx.ServerError(c)
	}

	return httpx.OK(c, "", result)
}

func (h *CartHandler) GetAllOrders(c echo.Context) error {
	user, _ := auth.CurrentUser(c)
	if user.Role != models.RoleAdmin {
		return httpx.Fail(c, http.StatusForbidden, "沒有權限")
	}

	var result []models.Order
	if err := h.DB.Preload("Items.Product").Find(&result).Error; err != nil {
		return httpx.ServerError(c)
	}

	return httpx.OK(c, "", result)
}

// EditOrder lets an admin change the delivery address, the progress
// label and the amounts of individual lines; an amount of zero drops
// the line.
func (h *CartHandler) EditOrder(c echo.Context) error {
	user, _ := auth.CurrentUser(c)
	if user.Role != models.RoleAdmin {
		return httpx.Fail(c, http.StatusForbidden, "沒有權限")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpx.Fail(c, http.StatusNotFound, "資料不存在")
	}

	var req struct {
		Address  *string       `json:"address"`
		Progress *string       `json:"progress"`
		Items    []itemRequest `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "資料格式不正確")
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		return httpx.Fail(c, http.StatusNotFound, "資料不存在")
	}

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if req.Address != nil {
			order.Address = *req.Address
		}
		if req.Progress != nil {
			order.Progress = *req.Progress
		}
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		for _, it := range req.Items {
			if it.Amount <= 0 {
				if err := tx.
					Where("order_id = ? AND product_id = ?", order.ID, it.ProductID).
					Delete(&models.OrderItem{}).Error; err != nil {
					return err
				}
				continue
			}
			if err := tx.Model(&models.OrderItem{}).
				Where("order_id = ? AND product_id = ?", order.ID, it.ProductID).
				Update("amount", it.Amount).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return httpx.ServerError(c)
	}

	var result models.Order
	if err := h.DB.Preload("Items.Product").First(&result, order.ID).Error; err != nil {
		return httpx.ServerError(c)
	}
	return httpx.OK(c, "", result)
}

func (h *CartHandler) DeleteOrder(c echo.Context) error {
	user, _ := auth.CurrentUser(c)
	if user.Role != models.RoleAdmin {
		return httpx.Fail(c, http.StatusForbidden, "沒有權限")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpx.Fail(c, http.StatusNotFound, "資料不存在")
	}

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
	if txErr != nil {
		return httpx.ServerError(c)
	}

	return httpx.OK(c, "", nil)
}
