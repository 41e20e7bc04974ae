package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yschan/shop-backend/internal/models"
	"github.com/yschan/shop-backend/internal/mykafka"
)

func hasContentType(c echo.Context, kind string) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderContentType), kind)
}

func isAdmin(user models.User) bool {
	return user.Role == models.RoleAdmin
}

func publish(c echo.Context, producer *mykafka.Producer, topic string, event map[string]interface{}) {
	if producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, topic, fmt.Sprint(event["userID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}
