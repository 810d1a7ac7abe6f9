package user

import (
	"errors"
	"fmt"

	"github.com/SlpAus/card-gacha-backend/internal/platform/database"
	"gorm.io/gorm"
)

// KnownUsersKey 是Redis中已激活用户UUID集合的键
const KnownUsersKey = "user:known"

// IsKnownUser 检查一个UUID是否对应已激活的用户。
// Redis健康时走集合查询，否则回退到SQLite。
func IsKnownUser(uuid string) (bool, error) {
	if database.IsRedisHealthy() {
		exists, err := database.RDB.SIsMember(database.Ctx, KnownUsersKey, uuid).Result()
		if err == nil {
			return exists, nil
		}
		// Redis查询失败时继续回退到数据库
	}

	var u User
	err := database.DB.Select("uuid").Where("uuid = ?", uuid).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("查询用户失败: %w", err)
	}
	return true, nil
}

// markKnownUser 把新激活用户的UUID写入Redis集合，尽力而为
func markKnownUser(uuid string) {
	if !database.IsRedisHealthy() {
		return
	}
	if err := database.RDB.SAdd(database.Ctx, KnownUsersKey, uuid).Err(); err != nil {
		fmt.Printf("警告: 无法将用户 %s 写入Redis集合: %v\n", uuid, err)
	}
}

// RebuildKnownUsers 从SQLite全量重建Redis中的用户集合
func RebuildKnownUsers() error {
	if !database.IsRedisHealthy() {
		return nil
	}

	var uuids []string
	if err := database.DB.Model(&User{}).Pluck("uuid", &uuids).Error; err != nil {
		return fmt.Errorf("无法加载用户列表: %w", err)
	}

	pipe := database.RDB.Pipeline()
	pipe.Del(database.Ctx, KnownUsersKey)
	if len(uuids) > 0 {
		members := make([]interface{}, len(uuids))
		for i, id := range uuids {
			members[i] = id
		}
		pipe.SAdd(database.Ctx, KnownUsersKey, members...)
	}
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("无法重建用户集合: %w", err)
	}
	return nil
}
