package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/yschan/shop-backend/internal/hash"
	"github.com/yschan/shop-backend/internal/httpx"
	"github.com/yschan/shop-backend/internal/middleware/auth"
	"github.com/yschan/shop-backend/internal/models"
	"github.com/yschan/shop-backend/internal/mykafka"
	"github.com/yschan/shop-backend/internal/service/token"
	"github.com/yschan/shop-backend/internal/upload"
	"github.com/yschan/shop-backend/internal/validate"
)

type UserHandler struct {
	DB        *gorm.DB
	JWTSecret []byte
	Producer  *mykafka.Producer
}

var registerMessages = map[string]string{
	"Account.required":  "帳號不能為空",
	"Account.min":       "帳號必須 4 個字以上",
	"Account.max":       "帳號不能超過 20 個字",
	"Password.required": "密碼不能為空",
	"Password.min":      "密碼必須 4 個字以上",
	"Password.max":      "密碼不能超過 20 個字",
	"Email.required":    "信箱不能為空",
	"Email.email":       "信箱格式不正確",
}

func (h *UserHandler) Register(c echo.Context) error {
	if !hasContentType(c, echo.MIMEMultipartForm) {
		return httpx.Fail(c, http.StatusBadRequest, "資料格式不正確")
	}

	var req struct {
		Account  string `form:"account"  validate:"required,min=4,max=20"`
		Password string `form:"password" validate:"required,min=4,max=20"`
		Email    string `form:"email"    validate:"required,email"`
		Address  string `form:"address"`
	}
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "資料格式不正確")
	}
	if err := validate.Struct(&req, registerMessages); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, err.Error())
	}

	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("account = ? OR email = ?", req.Account, req.Email).
		Count(&count).Error; err != nil {
		return httpx.ServerError(c)
	}
	if count > 0 {
		return httpx.Fail(c, http.StatusBadRequest, "帳號已存在")
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return httpx.ServerError(c)
	}

	user := models.User{
		Account:  req.Account,
		Password: hashed,
		Email:    req.Email,
		Address:  req.Address,
		Role:     models.RoleMember,
		Image:    upload.Path(c),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "帳號已存在")
	}

	publish(c, h.Producer, "user_events", map[string]interface{}{
		"type":    "user_registered",
		"userID":  user.ID,
		"account": user.Account,
	})

	return httpx.OK(c, "", nil)
}

func (h *UserHandler) Login(c echo.Context) error {
	if !hasContentType(c, echo.MIMEApplicationJSON) {
		return httpx.Fail(c, http.StatusBadRequest, "資料格式不正確")
	}

	var req struct {
		Account  string `json:"account"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "資料格式不正確")
	}

	var user models.User
	if err := h.DB.Where("account = ?", req.Account).First(&user).Error; err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "帳號錯誤")
	}
	if !hash.CheckPassword(user.Password, req.Password) {
		return httpx.Fail(c, http.StatusBadRequest, "密碼錯誤")
	}

	signed, err := token.Sign(user.ID, h.JWTSecret)
	if err != nil {
		return httpx.ServerError(c)
	}
	if err := h.DB.Create(&models.AuthToken{UserID: user.ID, Token: signed}).Error; err != nil {
		return httpx.ServerError(c)
	}

	publish(c, h.Producer, "user_events", map[string]interface{}{
		"type":    "user_logged_in",
		"userID":  user.ID,
		"account": user.Account,
	})

	return httpx.OK(c, "登入成功", echo.Map{
		"token":   signed,
		"account": user.Account,
		"email":   user.Email,
		"role":    user.Role,
		"image":   user.Image,
	})
}

func (h *UserHandler) Logout(c echo.Context) error {
	raw := auth.CurrentToken(c)
	if err := h.DB.Where("token = ?", raw).Delete(&models.AuthToken{}).Error; err != nil {
		return httpx.ServerError(c)
	}
	return httpx.OK(c, "", nil)
}

// Extend swaps the request's token for a fresh 7-day one in place. The
// gate in front of it tolerates an expired token as long as it is
// still registered.
func (h *UserHandler) Extend(c echo.Context) error {
	user, _ := auth.CurrentUser(c)
	old := auth.CurrentToken(c)

	signed, err := token.Sign(user.ID, h.JWTSecret)
	if err != nil {
		return httpx.ServerError(c)
	}
	if err := h.DB.Model(&models.AuthToken{}).
		Where("token = ?", old).
		Update("token", signed).Error; err != nil {
		return httpx.ServerError(c)
	}

	return httpx.OK(c, "", signed)
}

func (h *UserHandler) Profile(c echo.Context) error {
	user, _ := auth.CurrentUser(c)
	return httpx.OK(c, "", echo.Map{
		"account": user.Account,
		"role":    user.Role,
		"email":   user.Email,
		"image":   user.Image,
		"address": user.Address,
	})
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	user, _ := auth.CurrentUser(c)
	if !isAdmin(user) {
		return httpx.Fail(c, http.StatusForbidden, "沒有權限")
	}

	var users []models.User
	if err := h.DB.Find(&users).Error; err != nil {
		return httpx.ServerError(c)
	}
	return httpx.OK(c, "", users)
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	user, _ := auth.CurrentUser(c)
	if !isAdmin(user) {
		return httpx.Fail(c, http.StatusForbidden, "沒有權限")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpx.Fail(c, http.StatusNotFound, "查無使用者")
	}

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.AuthToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.FavoriteItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if txErr != nil {
		return httpx.ServerError(c)
	}

	return httpx.OK(c, "", nil)
}
