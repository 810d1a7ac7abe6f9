package backup

import (
	"fmt"
	"strconv"
	"time"

	"github.com/SlpAus/card-gacha-backend/internal/platform/database"
	"github.com/SlpAus/card-gacha-backend/internal/platform/metadata"
	"github.com/SlpAus/card-gacha-backend/pkg/lifecycle"
)

// snapshotInterval 是统计检查点落盘的周期
const snapshotInterval = 5 * time.Minute

// StartScheduler 启动检查点快照协程。
// Redis中的统计检查点周期性落盘到SQLite元数据表，
// 运维可以据此判断缓存相对历史记录的滞后程度。
func StartScheduler(manager *lifecycle.Manager) error {
	handle, err := manager.NewServiceHandle("检查点快照")
	if err != nil {
		return err
	}
	go run(handle)
	return nil
}

func run(handle *lifecycle.Handle) {
	defer handle.Close()

	for {
		if err := handle.Sleep(snapshotInterval); err != nil {
			// 退出前再落一次盘
			snapshotOnce()
			fmt.Println("检查点快照已停止。")
			return
		}
		snapshotOnce()
	}
}

func snapshotOnce() {
	if !database.IsRedisHealthy() {
		return
	}

	val, err := database.RDB.Get(database.Ctx, metadata.RedisLastProcessedRecordIDKey).Result()
	if err != nil {
		return
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return
	}

	if err := metadata.SetLastSnapshotRecordID(database.DB, uint(id)); err != nil {
		fmt.Printf("警告: 检查点落盘失败: %v\n", err)
	}
}
