package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/yschan/shop-backend/internal/httpx"
	"github.com/yschan/shop-backend/internal/middleware/auth"
	"github.com/yschan/shop-backend/internal/models"
	"github.com/yschan/shop-backend/internal/mykafka"
	"github.com/yschan/shop-backend/internal/upload"
	"github.com/yschan/shop-backend/internal/validate"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

var productMessages = map[string]string{
	"Name.required":  "品名不能為空",
	"Name.min":       "品名不能為空",
	"Price.required": "價格不能為空",
	"Price.min":      "價格格式不正確",
}

// GetProducts lists the products currently on sale.
func (h *ProductHandler) GetProducts(c echo.Context) error {
	var result []models.Product
	if err := h.DB.Where("sell = ?", true).Find(&result).Error; err != nil {
		return httpx.ServerError(c)
	}
	return httpx.OK(c, "", result)
}

// GetAllProducts lists every product, on sale or not.
func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	user, _ := auth.CurrentUser(c)
	if !isAdmin(user) {
		return httpx.Fail(c, http.StatusForbidden, "沒有權限")
	}

	var result []models.Product
	if err := h.DB.Find(&result).Error; err != nil {
		return httpx.ServerError(c)
	}
	return httpx.OK(c, "", result)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		// Malformed id looks the same as a missing product.
		return httpx.Fail(c, http.StatusNotFound, "查無商品")
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return httpx.Fail(c, http.StatusNotFound, "查無商品")
	}
	return httpx.OK(c, "", product)
}

// GetProductsByCate filters on-sale products by brand and/or cate.
func (h *ProductHandler) GetProductsByCate(c echo.Context) error {
	tx := h.DB.Where("sell = ?", true)
	if brand := c.QueryParam("brand"); brand != "" {
		tx = tx.Where("brand = ?", brand)
	}
	if cate := c.QueryParam("cate"); cate != "" {
		tx = tx.Where("cate = ?", cate)
	}

	var result []models.Product
	if err := tx.Find(&result).Error; err != nil {
		return httpx.ServerError(c)
	}
	return httpx.OK(c, "", result)
}

// QueryProducts filters on-sale products by price bounds and comma
// separated keywords matched against name and description.
func (h *ProductHandler) QueryProducts(c echo.Context) error {
	tx := h.DB.Where("sell = ?", true)

	if raw := c.QueryParam("pricegte"); raw != "" {
		if gte, err := strconv.Atoi(raw); err == nil {
			tx = tx.Where("price >= ?", gte)
		}
	}
	if raw := c.QueryParam("pricelte"); raw != "" {
		if lte, err := strconv.Atoi(raw); err == nil {
			tx = tx.Where("price <= ?", lte)
		}
	}
	if raw := c.QueryParam("keywords"); raw != "" {
		cond := h.DB.Session(&gorm.Session{NewDB: true})
		matched := false
		for _, keyword := range strings.Split(raw, ",") {
			keyword = strings.TrimSpace(keyword)
			if keyword == "" {
				continue
			}
			pattern := "%" + keyword + "%"
			if !matched {
				cond = cond.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
				matched = true
			} else {
				cond = cond.Or("name LIKE ? OR description LIKE ?", pattern, pattern)
			}
		}
		if matched {
			tx = tx.Where(cond)
		}
	}

	var result []models.Product
	if err := tx.Find(&result).Error; err != nil {
		return httpx.ServerError(c)
	}
	return httpx.OK(c, "", result)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	user, _ := auth.CurrentUser(c)
	if !isAdmin(user) {
		return httpx.Fail(c, http.StatusForbidden, "沒有權限")
	}
	if !hasContentType(c, echo.MIMEMultipartForm) {
		return httpx.Fail(c, http.StatusBadRequest, "資料格式不正確")
	}

	var req struct {
		Name        string   `form:"name"  validate:"required,min=1"`
		Price       *float64 `form:"price" validate:"required"`
		Description string   `form:"description"`
		Detail      string   `form:"detail"`
		Brand       string   `form:"brand"`
		Cate        string   `form:"cate"`
		Sell        *bool    `form:"sell"`
	}
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "資料格式不正確")
	}
	if err := validate.Struct(&req, productMessages); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, err.Error())
	}
	if *req.Price < 0 {
		return httpx.Fail(c, http.StatusBadRequest, "價格格式不正確")
	}

	product := models.Product{
		Name:        req.Name,
		Price:       *req.Price,
		Description: req.Description,
		Detail:      req.Detail,
		Brand:       req.Brand,
		Cate:        req.Cate,
		Sell:        true,
		Image:       upload.Path(c),
	}
	if req.Sell != nil {
		product.Sell = *req.Sell
	}
	if err := h.DB.Create(&product).Error; err != nil {
		return httpx.ServerError(c)
	}

	publish(c, h.Producer, "product_events", map[string]interface{}{
		"type":      "product_created",
		"userID":    user.ID,
		"productID": product.ID,
		"name":      product.Name,
	})

	return httpx.OK(c, "", product)
}

// EditProduct overwrites only the fields present in the payload;
// absent fields keep their stored values.
func (h *ProductHandler) EditProduct(c echo.Context) error {
	user, _ := auth.CurrentUser(c)
	if !isAdmin(user) {
		return httpx.Fail(c, http.StatusForbidden, "沒有權限")
	}
	if !hasContentType(c, echo.MIMEMultipartForm) {
		return httpx.Fail(c, http.StatusBadRequest, "資料格式不正確")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpx.Fail(c, http.StatusNotFound, "查無商品")
	}

	var req struct {
		Name        *string  `form:"name"`
		Price       *float64 `form:"price"`
		Description *string  `form:"description"`
		Detail      *string  `form:"detail"`
		Brand       *string  `form:"brand"`
		Cate        *string  `form:"cate"`
		Sell        *bool    `form:"sell"`
	}
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "資料格式不正確")
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return httpx.Fail(c, http.StatusNotFound, "查無商品")
	}

	if req.Name != nil {
		if *req.Name == "" {
			return httpx.Fail(c, http.StatusBadRequest, "品名不能為空")
		}
		product.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return httpx.Fail(c, http.StatusBadRequest, "價格格式不正確")
		}
		product.Price = *req.Price
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Detail != nil {
		product.Detail = *req.Detail
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Cate != nil {
		product.Cate = *req.Cate
	}
	if req.Sell != nil {
		product.Sell = *req.Sell
	}
	if path := upload.Path(c); path != "" {
		product.Image = path
	}

	if err := h.DB.Save(&product).Error; err != nil {
		return httpx.ServerError(c)
	}

	publish(c, h.Producer, "product_events", map[string]interface{}{
		"type":      "product_updated",
		"userID":    user.ID,
		"productID": product.ID,
		"name":      product.Name,
	})

	return httpx.OK(c, "", product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	user, _ := auth.CurrentUser(c)
	if !isAdmin(user) {
		return httpx.Fail(c, http.StatusForbidden, "沒有權限")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpx.Fail(c, http.StatusNotFound, "查無商品")
	}
	if err := h.DB.Delete(&models.Product{}, id).Error; err != nil {
		return httpx.ServerError(c)
	}

	publish(c, h.Producer, "product_events", map[string]interface{}{
		"type":      "product_deleted",
		"userID":    user.ID,
		"productID": id,
	})

	return httpx.OK(c, "", nil)
}
