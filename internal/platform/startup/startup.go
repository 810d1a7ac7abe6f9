package startup

import (
	"fmt"

	"github.com/SlpAus/card-gacha-backend/internal/card"
	"github.com/SlpAus/card-gacha-backend/internal/gacha"
	"github.com/SlpAus/card-gacha-backend/internal/pack"
	"github.com/SlpAus/card-gacha-backend/internal/platform/config"
	"github.com/SlpAus/card-gacha-backend/internal/platform/database"
	"github.com/SlpAus/card-gacha-backend/internal/platform/metadata"
	"github.com/SlpAus/card-gacha-backend/internal/stats"
	"github.com/SlpAus/card-gacha-backend/internal/user"
	"github.com/SlpAus/card-gacha-backend/pkg/token"
)

// InitializeApplication 按依赖顺序完成整个应用的初始化：
// SQLite迁移 -> 卡牌缓存加载 -> Redis连接 -> 统计缓存重建。
func InitializeApplication() error {
	token.GenerateSecretKey()
	database.InitDB(config.Cfg.Database.Sqlite)

	if err := metadata.PrimeDB(); err != nil {
		return fmt.Errorf("初始化元数据失败: %w", err)
	}
	if err := card.PrimeDB(); err != nil {
		return fmt.Errorf("初始化卡牌模块失败: %w", err)
	}
	if err := pack.PrimeDB(); err != nil {
		return fmt.Errorf("初始化卡池模块失败: %w", err)
	}
	if err := user.PrimeDB(); err != nil {
		return fmt.Errorf("初始化用户模块失败: %w", err)
	}
	if err := gacha.PrimeDB(); err != nil {
		return fmt.Errorf("初始化抽卡模块失败: %w", err)
	}

	database.InitRedis(config.Cfg.Database.Redis)

	runID, err := database.GetRedisRunID()
	if err != nil {
		return fmt.Errorf("无法确认Redis实例: %w", err)
	}
	database.SetInitialRunID(runID)

	if lastSnapshot, err := metadata.GetLastSnapshotRecordID(database.DB); err == nil && lastSnapshot > 0 {
		fmt.Printf("上次统计检查点落盘到记录 %d。\n", lastSnapshot)
	}

	// 冷启动时Redis中的缓存来历不明，一律重建
	if err := stats.RebuildCache(); err != nil {
		return fmt.Errorf("重建统计缓存失败: %w", err)
	}

	fmt.Println("应用初始化完成。")
	return nil
}
