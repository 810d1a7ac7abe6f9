package user

import (
	"fmt"

	"github.com/SlpAus/card-gacha-backend/internal/platform/database"
)

// PrimeDB 迁移用户相关的表结构
func PrimeDB() error {
	if database.DB == nil {
		return fmt.Errorf("数据库未初始化")
	}
	if err := database.DB.AutoMigrate(&User{}, &OwnedCard{}); err != nil {
		return fmt.Errorf("无法迁移用户数据库: %w", err)
	}
	fmt.Println("用户数据库迁移成功。")
	return nil
}
