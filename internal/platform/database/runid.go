package database

import (
	"fmt"
	"strings"
)

// GetRedisRunID 从INFO server输出中解析Redis实例的run_id。
// run_id在实例重启后会变化，用于判断缓存是否需要重建。
func GetRedisRunID() (string, error) {
	if RDB == nil {
		return "", fmt.Errorf("redis未初始化")
	}
	info, err := RDB.Info(Ctx, "server").Result()
	if err != nil {
		return "", fmt.Errorf("无法获取Redis服务器信息: %w", err)
	}
	for _, line := range strings.Split(info, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "run_id:") {
			return strings.TrimPrefix(line, "run_id:"), nil
		}
	}
	return "", fmt.Errorf("Redis服务器信息中没有run_id")
}
