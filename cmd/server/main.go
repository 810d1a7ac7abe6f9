package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/SlpAus/card-gacha-backend/api"
	"github.com/SlpAus/card-gacha-backend/internal/platform/backup"
	"github.com/SlpAus/card-gacha-backend/internal/platform/config"
	"github.com/SlpAus/card-gacha-backend/internal/platform/health"
	"github.com/SlpAus/card-gacha-backend/internal/platform/shutdown"
	"github.com/SlpAus/card-gacha-backend/internal/platform/startup"
	"github.com/SlpAus/card-gacha-backend/internal/stats"
	"github.com/SlpAus/card-gacha-backend/pkg/lifecycle"
)

func main() {
	if _, err := config.LoadConfig(); err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}

	if err := startup.InitializeApplication(); err != nil {
		fmt.Printf("应用初始化失败: %v\n", err)
		os.Exit(1)
	}

	// 后台服务统一由生命周期管理器回收
	manager := lifecycle.NewManager()
	if err := stats.Setup(manager); err != nil {
		fmt.Printf("启动统计服务失败: %v\n", err)
		os.Exit(1)
	}
	if err := health.StartChecker(manager, stats.RebuildCache); err != nil {
		fmt.Printf("启动健康巡检失败: %v\n", err)
		os.Exit(1)
	}
	if err := backup.StartScheduler(manager); err != nil {
		fmt.Printf("启动快照服务失败: %v\n", err)
		os.Exit(1)
	}

	router := api.SetupRouter()
	server := &http.Server{
		Addr:    config.Cfg.Server.Address,
		Handler: router,
	}

	go func() {
		fmt.Printf("服务器启动, 监听 %s\n", config.Cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Printf("服务器异常退出: %v\n", err)
			os.Exit(1)
		}
	}()

	shutdown.WaitForSignalAndShutdown(server, manager)
}
