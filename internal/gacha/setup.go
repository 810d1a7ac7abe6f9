package gacha

import (
	"fmt"

	"github.com/SlpAus/card-gacha-backend/internal/platform/database"
)

// PrimeDB 迁移抽卡历史与保底计数的表结构
func PrimeDB() error {
	if database.DB == nil {
		return fmt.Errorf("数据库未初始化")
	}
	if err := database.DB.AutoMigrate(&Record{}, &PityCounter{}); err != nil {
		return fmt.Errorf("无法迁移抽卡数据库: %w", err)
	}
	fmt.Println("抽卡数据库迁移成功。")
	return nil
}
