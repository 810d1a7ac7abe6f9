package gacha

import (
	"errors"
	"fmt"

	"github.com/SlpAus/card-gacha-backend/internal/pack"
	"gorm.io/gorm"
)

// NextPityCounter 推进保底计数器：
// 触发保底且配置要求清零时归零；其余情况自增，封顶在阈值处。
// 不清零的配置会让计数器停在阈值上，后续每一抽都走硬保底。
func NextPityCounter(ps *pack.PitySystem, current int, triggered bool) int {
	if ps == nil {
		return 0
	}
	if triggered && ps.ResetOnTrigger {
		return 0
	}
	next := current + 1
	if next > ps.MaxPity {
		next = ps.MaxPity
	}
	return next
}

// GetPityCounter 读取用户在某个卡池上的保底计数，无记录时为0
func GetPityCounter(db *gorm.DB, userUUID, packID string) (int, error) {
	var pc PityCounter
	err := db.Where("user_uuid = ? AND pack_id = ?", userUUID, packID).First(&pc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("查询保底计数失败: %w", err)
	}
	return pc.Counter, nil
}

// SavePityCounter 在事务内写回保底计数
func SavePityCounter(tx *gorm.DB, userUUID, packID string, counter int) error {
	var pc PityCounter
	err := tx.Where("user_uuid = ? AND pack_id = ?", userUUID, packID).First(&pc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pc = PityCounter{UserUUID: userUUID, PackID: packID, Counter: counter}
		if err := tx.Create(&pc).Error; err != nil {
			return fmt.Errorf("写入保底计数失败: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("查询保底计数失败: %w", err)
	}
	pc.Counter = counter
	if err := tx.Save(&pc).Error; err != nil {
		return fmt.Errorf("更新保底计数失败: %w", err)
	}
	return nil
}
