package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/yschan/shop-backend/internal/httpx"
	"github.com/yschan/shop-backend/internal/middleware/auth"
	"github.com/yschan/shop-backend/internal/models"
	"github.com/yschan/shop-backend/internal/upload"
)

// HomeHandler manages the carousel entries shown on the landing page.
type HomeHandler struct {
	DB *gorm.DB
}

func (h *HomeHandler) GetHomes(c echo.Context) error {
	var result []models.Home
	if err := h.DB.Order("date DESC").Find(&result).Error; err != nil {
		return httpx.ServerError(c)
	}
	return httpx.OK(c, "", result)
}

func (h *HomeHandler) GetHome(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpx.Fail(c, http.StatusNotFound, "找不到內容")
	}

	var home models.Home
	if err := h.DB.First(&home, id).Error; err != nil {
		return httpx.Fail(c, http.StatusNotFound, "找不到內容")
	}
	return httpx.OK(c, "", home)
}

func (h *HomeHandler) CreateHome(c echo.Context) error {
	user, _ := auth.CurrentUser(c)
	if !isAdmin(user) {
		return httpx.Fail(c, http.StatusForbidden, "沒有權限")
	}
	if !hasContentType(c, echo.MIMEMultipartForm) {
		return httpx.Fail(c, http.StatusBadRequest, "資料格式不正確")
	}

	var req struct {
		Title       string `form:"title"`
		Description string `form:"description"`
		Link        string `form:"link"`
	}
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "資料格式不正確")
	}

	home := models.Home{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		Image:       upload.Path(c),
		Date:        time.Now(),
	}
	if err := h.DB.Create(&home).Error; err != nil {
		return httpx.ServerError(c)
	}
	return httpx.OK(c, "", home)
}

func (h *HomeHandler) EditHome(c echo.Context) error {
	user, _ := auth.CurrentUser(c)
	if !isAdmin(user) {
		return httpx.Fail(c, http.StatusForbidden, "沒有權限")
	}
	if !hasContentType(c, echo.MIMEMultipartForm) {
		return httpx.Fail(c, http.StatusBadRequest, "資料格式不正確")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpx.Fail(c, http.StatusNotFound, "找不到內容")
	}

	var req struct {
		Title       *string `form:"title"`
		Description *string `form:"description"`
		Link        *string `form:"link"`
	}
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "資料格式不正確")
	}

	var home models.Home
	if err := h.DB.First(&home, id).Error; err != nil {
		return httpx.Fail(c, http.StatusNotFound, "找不到內容")
	}

	if req.Title != nil {
		home.Title = *req.Title
	}
	if req.Description != nil {
		home.Description = *req.Description
	}
	if req.Link != nil {
		home.Link = *req.Link
	}
	if path := upload.Path(c); path != "" {
		home.Image = path
	}

	if err := h.DB.Save(&home).Error; err != nil {
		return httpx.ServerError(c)
	}
	return httpx.OK(c, "", home)
}

func (h *HomeHandler) DeleteHome(c echo.Context) error {
	user, _ := auth.CurrentUser(c)
	if !isAdmin(user) {
		return httpx.Fail(c, http.StatusForbidden, "沒有權限")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpx.Fail(c, http.StatusNotFound, "找不到內容")
	}
	if err := h.DB.Delete(&models.Home{}, id).Error; err != nil {
		return httpx.ServerError(c)
	}
	return httpx.OK(c, "", nil)
}
