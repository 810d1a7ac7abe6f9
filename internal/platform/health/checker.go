package health

import (
	"fmt"
	"time"

	"github.com/SlpAus/card-gacha-backend/internal/platform/database"
	"github.com/SlpAus/card-gacha-backend/pkg/lifecycle"
)

// checkInterval 是Redis健康巡检的周期
const checkInterval = 15 * time.Second

// StartChecker 启动Redis健康巡检协程。
// 巡检发现run_id变化(实例重启, 缓存已丢失)时调用rebuild全量重建，
// 重建成功前Redis保持不可用状态，读写路径自动回退到SQLite。
func StartChecker(manager *lifecycle.Manager, rebuild func() error) error {
	handle, err := manager.NewServiceHandle("Redis健康巡检")
	if err != nil {
		return err
	}
	go run(handle, rebuild)
	return nil
}

func run(handle *lifecycle.Handle, rebuild func() error) {
	defer handle.Close()

	for {
		if err := handle.Sleep(checkInterval); err != nil {
			fmt.Println("Redis健康巡检已停止。")
			return
		}
		checkOnce(rebuild)
	}
}

func checkOnce(rebuild func() error) {
	runID, err := database.GetRedisRunID()
	if err != nil {
		if database.IsRedisHealthy() {
			fmt.Printf("警告: Redis连接丢失: %v\n", err)
		}
		database.UpdateStatus(false, "")
		return
	}

	if runID == database.GetLastKnownRunID() {
		database.UpdateStatus(true, runID)
		return
	}

	// run_id变化说明Redis重启过, 缓存内容已失效。
	// 先标记为健康以便重建流程能够写入, 重建失败则立即回退。
	fmt.Printf("检测到Redis实例变化 (run_id: %s), 开始重建缓存...\n", runID)
	database.UpdateStatus(true, runID)
	if err := rebuild(); err != nil {
		fmt.Printf("警告: 缓存重建失败, Redis标记为不可用: %v\n", err)
		database.UpdateStatus(false, "")
		return
	}
	fmt.Println("缓存重建完成, Redis恢复可用。")
}
