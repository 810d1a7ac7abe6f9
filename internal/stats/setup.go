package stats

import (
	"github.com/SlpAus/card-gacha-backend/internal/gacha"
	"github.com/SlpAus/card-gacha-backend/pkg/lifecycle"
)

// Setup 把统计处理器挂到抽卡结算的提交回调上并启动后台协程
func Setup(manager *lifecycle.Manager) error {
	gacha.RegisterRecordHook(NotifyRecordCommitted)
	return StartProcessor(manager)
}
