package user

import (
	"net/http"
	"time"

	"github.com/SlpAus/card-gacha-backend/internal/card"
	"github.com/gin-gonic/gin"
)

// collectionEntry 是收藏接口返回的单条持有记录，附带卡牌快照
type collectionEntry struct {
	Card       *card.CardInfo `json:"card"`
	Quantity   int64          `json:"quantity"`
	ObtainedAt time.Time      `json:"obtainedAt"`
}

// GetProfile 处理获取当前用户资料的请求
// GET /api/user
func GetProfile(c *gin.Context) {
	uuid := UUIDFromContext(c)
	u, err := GetOrCreateUser(uuid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// GetCollectionHandler 处理获取当前用户收藏的请求
// GET /api/user/collection
func GetCollectionHandler(c *gin.Context) {
	uuid := UUIDFromContext(c)
	owned, err := GetCollection(uuid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}

	entries := make([]collectionEntry, 0, len(owned))
	for _, o := range owned {
		info, ok := card.GetCardByID(o.CardID)
		if !ok {
			// 卡牌被下架后收藏记录仍保留，跳过展示
			continue
		}
		entries = append(entries, collectionEntry{
			Card:       info,
			Quantity:   o.Quantity,
			ObtainedAt: o.ObtainedAt,
		})
	}
	c.JSON(http.StatusOK, entries)
}
