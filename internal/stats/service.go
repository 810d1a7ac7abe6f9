package stats

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/SlpAus/card-gacha-backend/internal/card"
	"github.com/SlpAus/card-gacha-backend/internal/gacha"
	"github.com/SlpAus/card-gacha-backend/internal/pack"
	"github.com/SlpAus/card-gacha-backend/internal/platform/database"
	"github.com/SlpAus/card-gacha-backend/internal/user"
)

// replayUserRecords 按创建顺序重放用户的历史记录。
// 计数器先归零再逐条累加，结果与重放时机无关。
func replayUserRecords(userUUID string, gameplayType string) (*UserStatistics, error) {
	s := newUserStatistics()

	query := database.DB.Where("user_uuid = ?", userUUID)
	if gameplayType != "" {
		query = query.Where("gameplay_type = ?", gameplayType)
	}
	var records []gacha.Record
	if err := query.Order("id asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("加载抽卡历史失败: %w", err)
	}

	packIndex := make(map[string]int)
	for i := range records {
		r := &records[i]
		s.TotalGachas += int64(r.Count)
		s.TotalSpent[r.Currency] += r.TotalSpent

		for _, cardID := range r.Summary.CardIDs {
			if info, ok := card.GetCardByID(cardID); ok {
				s.GachaByRarity[info.Rarity]++
				s.CardsByRarity[info.Rarity]++
			}
		}

		idx, ok := packIndex[r.PackID]
		if !ok {
			idx = len(s.PackGachaSummary)
			packIndex[r.PackID] = idx
			s.PackGachaSummary = append(s.PackGachaSummary, PackGachaSummary{PackID: r.PackID})
		}
		entry := &s.PackGachaSummary[idx]
		entry.Gachas += int64(r.Count)
		entry.Spent += r.TotalSpent
		// 卡池快照字段以最近一条记录为准
		entry.PackName = r.PackName
		entry.PackDescription = r.PackDescription
		entry.PackCoverImageURL = r.PackCoverImageURL
		entry.Currency = r.Currency
		entry.Cost = r.Cost
		entry.LastGachaAt = r.CreatedAt

		ts := r.CreatedAt
		s.LastGachaAt = &ts
	}

	// 最近抽过的卡池排在前面
	sort.SliceStable(s.PackGachaSummary, func(i, j int) bool {
		return s.PackGachaSummary[i].LastGachaAt.After(s.PackGachaSummary[j].LastGachaAt)
	})
	return s, nil
}

// ComputeUserStatistics 从抽卡历史重放出用户统计
func ComputeUserStatistics(userUUID string) (*UserStatistics, error) {
	s, err := replayUserRecords(userUUID, "")
	if err != nil {
		return nil, err
	}

	// 保底计数不入历史，从计数器表读取当前值
	var counters []gacha.PityCounter
	if err := database.DB.Where("user_uuid = ?", userUUID).Find(&counters).Error; err != nil {
		return nil, fmt.Errorf("加载保底计数失败: %w", err)
	}
	for _, pc := range counters {
		s.PityCounters[pc.PackID] = pc.Counter
	}
	return s, nil
}

// GetUserStatistics 返回用户统计，Redis健康时优先读缓存
func GetUserStatistics(userUUID string) (*UserStatistics, error) {
	if database.IsRedisHealthy() {
		cached, err := database.RDB.Get(database.Ctx, UserStatsKeyPrefix+userUUID).Result()
		if err == nil {
			var s UserStatistics
			if json.Unmarshal([]byte(cached), &s) == nil {
				return &s, nil
			}
		}
	}

	s, err := ComputeUserStatistics(userUUID)
	if err != nil {
		return nil, err
	}
	cacheUserStatistics(userUUID, s)
	return s, nil
}

// cacheUserStatistics 把用户统计写入Redis缓存，尽力而为
func cacheUserStatistics(userUUID string, s *UserStatistics) {
	if !database.IsRedisHealthy() {
		return
	}
	b, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := database.RDB.Set(database.Ctx, UserStatsKeyPrefix+userUUID, b, 0).Err(); err != nil {
		fmt.Printf("警告: 无法缓存用户 %s 的统计: %v\n", userUUID, err)
	}
}

// ComputeUserStatisticsByGameplayType 重放出用户在单一玩法类型下的统计
func ComputeUserStatisticsByGameplayType(userUUID string, gameplayType string) (*UserStatistics, error) {
	return replayUserRecords(userUUID, gameplayType)
}

// ComputeGlobalStatistics 从数据库聚合出全局统计
func ComputeGlobalStatistics() (*GlobalStatistics, error) {
	return computeGlobalStatistics("")
}

// ComputeGlobalStatisticsByGameplayType 聚合单一玩法类型下的全局统计
func ComputeGlobalStatisticsByGameplayType(gameplayType string) (*GlobalStatistics, error) {
	return computeGlobalStatistics(gameplayType)
}

func computeGlobalStatistics(gameplayType string) (*GlobalStatistics, error) {
	g := &GlobalStatistics{
		Revenue:          make(map[pack.CurrencyType]int64),
		CardDistribution: make(map[card.Rarity]int64),
		PopularPacks:     make([]PopularPack, 0),
		GeneratedAt:      time.Now(),
	}
	for _, r := range card.AllRarities {
		g.CardDistribution[r] = 0
	}

	if err := database.DB.Model(&user.User{}).Count(&g.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("统计用户总数失败: %w", err)
	}

	query := database.DB.Order("id asc")
	if gameplayType != "" {
		query = query.Where("gameplay_type = ?", gameplayType)
	}
	var records []gacha.Record
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("加载抽卡历史失败: %w", err)
	}

	now := time.Now()
	packGachas := make(map[string]*PopularPack)
	lastDraw := make(map[string]time.Time)
	for i := range records {
		r := &records[i]
		g.TotalGachas += int64(r.Count)
		g.Revenue[r.Currency] += r.TotalSpent

		for _, cardID := range r.Summary.CardIDs {
			if info, ok := card.GetCardByID(cardID); ok {
				g.CardDistribution[info.Rarity]++
			}
		}

		pp, ok := packGachas[r.PackID]
		if !ok {
			pp = &PopularPack{PackID: r.PackID}
			packGachas[r.PackID] = pp
		}
		pp.Gachas += int64(r.Count)
		pp.PackName = r.PackName

		// 记录按id升序遍历, 留下的是每个用户最后一次抽取的时间
		lastDraw[r.UserUUID] = r.CreatedAt
	}

	// 活跃度按用户去重: 每个用户只按最后一次抽取时间落入时间窗
	for _, ts := range lastDraw {
		age := now.Sub(ts)
		if age <= 24*time.Hour {
			g.Activity.Last24Hours++
		}
		if age <= 7*24*time.Hour {
			g.Activity.Last7Days++
		}
		if age <= 30*24*time.Hour {
			g.Activity.Last30Days++
		}
	}

	g.PopularPacks = topPopularPacks(packGachas, 5)
	return g, nil
}

// topPopularPacks 取抽取次数最多的前n个卡池，次数相同按ID稳定排序
func topPopularPacks(packGachas map[string]*PopularPack, n int) []PopularPack {
	out := make([]PopularPack, 0, len(packGachas))
	for _, pp := range packGachas {
		out = append(out, *pp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Gachas != out[j].Gachas {
			return out[i].Gachas > out[j].Gachas
		}
		return out[i].PackID < out[j].PackID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// GetGlobalStatistics 返回全局统计，Redis健康时短时缓存
func GetGlobalStatistics() (*GlobalStatistics, error) {
	if database.IsRedisHealthy() {
		cached, err := database.RDB.Get(database.Ctx, GlobalStatsKey).Result()
		if err == nil {
			var g GlobalStatistics
			if json.Unmarshal([]byte(cached), &g) == nil {
				return &g, nil
			}
		}
	}

	g, err := ComputeGlobalStatistics()
	if err != nil {
		return nil, err
	}
	if database.IsRedisHealthy() {
		if b, err := json.Marshal(g); err == nil {
			database.RDB.Set(database.Ctx, GlobalStatsKey, b, globalStatsTTL)
		}
	}
	return g, nil
}
