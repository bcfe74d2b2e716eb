package api

import (
	"strconv"

	"courtdesk/internal/domain/money"

	"github.com/gin-gonic/gin"
)

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func moneyFromFloat(v float64) money.Money {
	return money.FromFloat(v)
}
