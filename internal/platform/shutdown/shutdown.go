package shutdown

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SlpAus/card-gacha-backend/internal/platform/database"
	"github.com/SlpAus/card-gacha-backend/pkg/lifecycle"
)

// 关停的两个阶段各自的时限
const (
	httpShutdownTimeout    = 10 * time.Second
	serviceShutdownTimeout = 15 * time.Second
)

// WaitForSignalAndShutdown 阻塞等待终止信号，然后按顺序执行两阶段关停：
// 先停HTTP服务器不再接收新请求，再广播取消信号回收后台协程。
func WaitForSignalAndShutdown(server *http.Server, manager *lifecycle.Manager) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	fmt.Printf("收到信号 %s, 开始关停...\n", sig)

	// 第一阶段: 优雅关停HTTP服务器
	httpCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(httpCtx); err != nil {
		fmt.Printf("警告: HTTP服务器未能优雅关停: %v\n", err)
	} else {
		fmt.Println("HTTP服务器已关停。")
	}

	// 第二阶段: 回收后台协程
	manager.Shutdown()
	if stuck := manager.WaitWithTimeout(serviceShutdownTimeout); len(stuck) > 0 {
		fmt.Printf("警告: 以下服务未能在时限内退出: %v\n", stuck)
	} else {
		fmt.Println("所有后台服务已退出。")
	}

	closeDatabases()
	fmt.Println("关停完成。")
}

// closeDatabases 关闭SQLite与Redis连接
func closeDatabases() {
	if database.DB != nil {
		if sqlDB, err := database.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if database.RDB != nil {
		database.RDB.Close()
	}
}
