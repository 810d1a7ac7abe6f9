package stats

import (
	"time"

	"github.com/SlpAus/card-gacha-backend/internal/card"
	"github.com/SlpAus/card-gacha-backend/internal/pack"
)

// Redis键定义
const (
	// UserStatsKeyPrefix 加用户UUID构成用户统计缓存的键
	UserStatsKeyPrefix = "stats:user:"
	// PackPopularityKey 是卡池热度ZSet的键，score为累计抽取次数
	PackPopularityKey = "stats:pack:popularity"
	// GlobalStatsKey 是全局统计缓存的键
	GlobalStatsKey = "stats:global"
)

// globalStatsTTL 是全局统计缓存的过期时间
const globalStatsTTL = 30 * time.Second

// PackGachaSummary 是用户在单个卡池上的抽取汇总。
// 卡池快照字段以该卡池最近一条历史记录为准。
type PackGachaSummary struct {
	PackID            string            `json:"packId"`
	PackName          string            `json:"packName"`
	PackDescription   string            `json:"packDescription"`
	PackCoverImageURL string            `json:"packCoverImageUrl"`
	Currency          pack.CurrencyType `json:"currency"`
	Cost              int64             `json:"cost"`
	Gachas            int64             `json:"gachas"`
	Spent             int64             `json:"spent"`
	LastGachaAt       time.Time         `json:"lastGachaAt"`
}

// UserStatistics 是从抽卡历史重放得出的用户统计。
// 任何时刻重放都会得到完全相同的结果。
type UserStatistics struct {
	TotalGachas      int64                       `json:"totalGachas"`
	TotalSpent       map[pack.CurrencyType]int64 `json:"totalSpent"`
	CardsByRarity    map[card.Rarity]int64       `json:"cardsByRarity"`
	GachaByRarity    map[card.Rarity]int64       `json:"gachaByRarity"`
	PackGachaSummary []PackGachaSummary          `json:"packGachaSummary"`
	LastGachaAt      *time.Time                  `json:"lastGachaAt"`
	PityCounters     map[string]int              `json:"pityCounters"`
}

// PopularPack 是全局统计中的热门卡池条目
type PopularPack struct {
	PackID   string `json:"packId"`
	PackName string `json:"packName"`
	Gachas   int64  `json:"gachas"`
}

// ActivityWindows 是按时间窗口统计的抽取次数
type ActivityWindows struct {
	Last24Hours int64 `json:"last24Hours"`
	Last7Days   int64 `json:"last7Days"`
	Last30Days  int64 `json:"last30Days"`
}

// GlobalStatistics 是面向运营的全局统计
type GlobalStatistics struct {
	TotalUsers       int64                       `json:"totalUsers"`
	TotalGachas      int64                       `json:"totalGachas"`
	Revenue          map[pack.CurrencyType]int64 `json:"revenue"`
	CardDistribution map[card.Rarity]int64       `json:"cardDistribution"`
	PopularPacks     []PopularPack               `json:"popularPacks"`
	Activity         ActivityWindows             `json:"activity"`
	GeneratedAt      time.Time                   `json:"generatedAt"`
}

// newUserStatistics 返回所有计数器归零的用户统计
func newUserStatistics() *UserStatistics {
	s := &UserStatistics{
		TotalSpent:       make(map[pack.CurrencyType]int64),
		CardsByRarity:    make(map[card.Rarity]int64),
		GachaByRarity:    make(map[card.Rarity]int64),
		PackGachaSummary: make([]PackGachaSummary, 0),
		PityCounters:     make(map[string]int),
	}
	for _, r := range card.AllRarities {
		s.CardsByRarity[r] = 0
		s.GachaByRarity[r] = 0
	}
	return s
}
