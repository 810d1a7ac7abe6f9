package gacha

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SlpAus/card-gacha-backend/internal/pack"
	"github.com/SlpAus/card-gacha-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// gachaRequest 是抽取接口的请求体
type gachaRequest struct {
	PackID string `json:"packId" binding:"required"`
	Count  int    `json:"count"`
}

// PostGacha 处理抽取请求
// POST /api/gacha
func PostGacha(c *gin.Context) {
	var body gachaRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体格式错误"})
		return
	}
	if body.Count == 0 {
		body.Count = 1
	}

	userUUID := user.UUIDFromContext(c)
	result, err := PerformGacha(userUUID, body.PackID, body.Count, nil)
	if err != nil {
		writeGachaError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetHistoryHandler 处理查询当前用户抽卡历史的请求
// GET /api/gacha/history?limit=50
func GetHistoryHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	userUUID := user.UUIDFromContext(c)
	records, err := GetHistory(userUUID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func writeGachaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrInsufficientCurrency):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, pack.ErrPackNotFound), errors.Is(err, user.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidCount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, pack.ErrInvalidProbability), errors.Is(err, pack.ErrPitySystem),
		errors.Is(err, pack.ErrInvalidPack), errors.Is(err, ErrNoAvailableCards):
		// 配置类错误属于运营配置问题，对外按服务端错误返回
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
	}
}
