package card

import (
	"fmt"

	"github.com/SlpAus/card-gacha-backend/internal/platform/database"
)

// PrimeDB 迁移卡牌相关的表结构并加载内存缓存
func PrimeDB() error {
	if database.DB == nil {
		return fmt.Errorf("数据库未初始化")
	}
	if err := database.DB.AutoMigrate(&Card{}, &Template{}); err != nil {
		return fmt.Errorf("无法迁移卡牌数据库: %w", err)
	}
	fmt.Println("卡牌数据库迁移成功。")
	return ReloadRepository()
}
