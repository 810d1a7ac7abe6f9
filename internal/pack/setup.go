package pack

import (
	"fmt"

	"github.com/SlpAus/card-gacha-backend/internal/platform/database"
)

// PrimeDB 迁移卡池相关的表结构
func PrimeDB() error {
	if database.DB == nil {
		return fmt.Errorf("数据库未初始化")
	}
	if err := database.DB.AutoMigrate(&Pack{}); err != nil {
		return fmt.Errorf("无法迁移卡池数据库: %w", err)
	}
	fmt.Println("卡池数据库迁移成功。")
	return nil
}
