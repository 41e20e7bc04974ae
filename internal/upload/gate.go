package upload

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/yschan/shop-backend/internal/httpx"
)

const (
	// FieldName is the only multipart field a file is accepted under.
	FieldName = "image"
	// MaxFileSize is the upload ceiling in bytes.
	MaxFileSize = 10 << 20
	// ContextKey is where the stored relative path is exposed to the
	// downstream handler.
	ContextKey = "filepath"
)

type Gate struct {
	Store Storage
}

// Middleware accepts at most one image file per request, stores it and
// attaches the resulting path to the context. Requests without a file
// pass through untouched.
func (g *Gate) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		form, err := c.MultipartForm()
		if err != nil {
			// Not a multipart request, nothing to store.
			return next(c)
		}

		files := form.File[FieldName]
		if len(files) == 0 {
			return next(c)
		}
		if len(files) > 1 {
			return httpx.Fail(c, http.StatusBadRequest, "上傳錯誤")
		}

		file := files[0]
		if !strings.Contains(file.Header.Get("Content-Type"), "image") {
			return httpx.Fail(c, http.StatusBadRequest, "格式不符")
		}
		if file.Size > MaxFileSize {
			return httpx.Fail(c, http.StatusBadRequest, "檔案太大")
		}

		src, err := file.Open()
		if err != nil {
			return httpx.ServerError(c)
		}
		defer src.Close()

		name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
		path, err := g.Store.Save(name, src)
		if err != nil {
			c.Logger().Errorf("upload store error: %v", err)
			return httpx.ServerError(c)
		}

		c.Set(ContextKey, path)
		return next(c)
	}
}

// Path returns the stored file path the gate attached, if any.
func Path(c echo.Context) string {
	if v, ok := c.Get(ContextKey).(string); ok {
		return v
	}
	return ""
}
