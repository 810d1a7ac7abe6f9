package stats

import (
	"fmt"
	"strconv"

	"github.com/SlpAus/card-gacha-backend/internal/gacha"
	"github.com/SlpAus/card-gacha-backend/internal/platform/database"
	"github.com/SlpAus/card-gacha-backend/internal/platform/metadata"
	"github.com/SlpAus/card-gacha-backend/internal/user"
	"github.com/redis/go-redis/v9"
)

// RebuildCache 从SQLite全量重建Redis中的统计缓存。
// 先在内存里聚合，再通过单个事务管线原子地替换旧缓存，
// 重建完成前后读到的都是完整一致的数据。
func RebuildCache() error {
	if !database.IsRedisHealthy() {
		fmt.Println("Redis不可用, 跳过统计缓存重建。")
		return nil
	}

	var records []gacha.Record
	if err := database.DB.Order("id asc").Find(&records).Error; err != nil {
		return fmt.Errorf("加载抽卡历史失败: %w", err)
	}

	totalGachas := int64(0)
	popularity := make(map[string]float64)
	lastID := uint(0)
	for i := range records {
		r := &records[i]
		totalGachas += int64(r.Count)
		popularity[r.PackID] += float64(r.Count)
		lastID = r.ID
	}

	members := make([]redis.Z, 0, len(popularity))
	for packID, score := range popularity {
		members = append(members, redis.Z{Score: score, Member: packID})
	}

	_, err := database.RDB.TxPipelined(database.Ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(database.Ctx, PackPopularityKey, GlobalStatsKey)
		if len(members) > 0 {
			pipe.ZAdd(database.Ctx, PackPopularityKey, members...)
		}
		pipe.Set(database.Ctx, metadata.RedisTotalGachasKey, strconv.FormatInt(totalGachas, 10), 0)
		pipe.Set(database.Ctx, metadata.RedisLastProcessedRecordIDKey, strconv.FormatUint(uint64(lastID), 10), 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("重建统计缓存失败: %w", err)
	}

	// 用户统计缓存逐个失效，下次读取时按需重放
	iter := database.RDB.Scan(database.Ctx, 0, UserStatsKeyPrefix+"*", 100).Iterator()
	for iter.Next(database.Ctx) {
		database.RDB.Del(database.Ctx, iter.Val())
	}

	if err := user.RebuildKnownUsers(); err != nil {
		return err
	}

	fmt.Printf("统计缓存重建完成, 共 %d 条历史记录。\n", len(records))
	return nil
}
