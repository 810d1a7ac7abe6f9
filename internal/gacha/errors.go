package gacha

import "errors"

var (
	// ErrNoAvailableCards 表示卡池没有任何可抽卡牌，抽取无法进行
	ErrNoAvailableCards = errors.New("卡池没有可抽卡牌")
	// ErrInvalidCount 表示请求的抽取次数不合法
	ErrInvalidCount = errors.New("抽取次数不合法")
)
