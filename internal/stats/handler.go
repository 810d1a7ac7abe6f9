package stats

import (
	"net/http"

	"github.com/SlpAus/card-gacha-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// GetUserStatisticsHandler 处理查询当前用户统计的请求
// GET /api/user/statistics?gameplayType=BATTLE
func GetUserStatisticsHandler(c *gin.Context) {
	userUUID := user.UUIDFromContext(c)

	// 未激活的用户没有历史, 直接返回零值统计, 不做重放
	known, err := user.IsKnownUser(userUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	if !known {
		c.JSON(http.StatusOK, newUserStatistics())
		return
	}

	if gt := c.Query("gameplayType"); gt != "" {
		s, err := ComputeUserStatisticsByGameplayType(userUUID, gt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
			return
		}
		c.JSON(http.StatusOK, s)
		return
	}

	s, err := GetUserStatistics(userUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// GetGlobalStatisticsHandler 处理查询全局统计的请求
// GET /api/statistics?gameplayType=BATTLE
func GetGlobalStatisticsHandler(c *gin.Context) {
	if gt := c.Query("gameplayType"); gt != "" {
		g, err := ComputeGlobalStatisticsByGameplayType(gt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
			return
		}
		c.JSON(http.StatusOK, g)
		return
	}

	g, err := GetGlobalStatistics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, g)
}
