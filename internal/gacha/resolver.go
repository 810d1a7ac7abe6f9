package gacha

import (
	"fmt"
	"sort"

	"github.com/SlpAus/card-gacha-backend/internal/pack"
)

// probEntry 是参与累积和遍历的一项
type probEntry struct {
	cardID string
	prob   float64
}

// sortedEntries 按概率从高到低排列可抽卡牌。
// 稳定排序保证同概率卡牌维持 AvailableCards 中的先后顺序。
func sortedEntries(p *pack.Pack) []probEntry {
	entries := make([]probEntry, 0, len(p.AvailableCards))
	for _, cardID := range p.AvailableCards {
		entries = append(entries, probEntry{cardID: cardID, prob: p.CardProbabilities[cardID]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].prob > entries[j].prob
	})
	return entries
}

// softPityBias 计算软保底偏置系数，上限0.5。
// 偏置把掷出的随机数向0压缩，使高概率区间(排序后靠前的高稀有配置)更易命中。
func softPityBias(ps *pack.PitySystem, pityCount int) float64 {
	if ps == nil || pityCount < ps.SoftPityStart {
		return 0
	}
	bonus := 0.5 * float64(pityCount-ps.SoftPityStart) / float64(ps.MaxPity-ps.SoftPityStart)
	if bonus > 0.5 {
		bonus = 0.5
	}
	return bonus
}

// drawByProbability 按概率表做一次加权抽取。
// 随机数r先按软保底偏置缩放，再沿概率降序的累积和区间定位；
// 浮点误差导致走完全表未命中时回退到第一张可抽卡牌。
func drawByProbability(p *pack.Pack, pityCount int, rng RandomSource) (string, error) {
	if len(p.AvailableCards) == 0 {
		return "", ErrNoAvailableCards
	}

	r := rng.Float64()
	r *= 1 - softPityBias(p.PitySystem.PitySystem, pityCount)

	cumulative := 0.0
	for _, e := range sortedEntries(p) {
		cumulative += e.prob
		// 累积和首次达到r的区间命中, 边界归属当前卡牌
		if r <= cumulative {
			return e.cardID, nil
		}
	}
	return p.AvailableCards[0], nil
}

// drawGuaranteed 从保底候选中抽取一张。
// 提供权重时按权重加权，否则等概率。
func drawGuaranteed(ps *pack.PitySystem, rng RandomSource) string {
	if len(ps.GuaranteedCardWeights) == len(ps.GuaranteedCards) && len(ps.GuaranteedCardWeights) > 0 {
		total := 0.0
		for _, w := range ps.GuaranteedCardWeights {
			total += w
		}
		r := rng.Float64() * total
		cumulative := 0.0
		for i, w := range ps.GuaranteedCardWeights {
			cumulative += w
			if r < cumulative {
				return ps.GuaranteedCards[i]
			}
		}
		return ps.GuaranteedCards[len(ps.GuaranteedCards)-1]
	}

	idx := int(rng.Float64() * float64(len(ps.GuaranteedCards)))
	if idx >= len(ps.GuaranteedCards) {
		idx = len(ps.GuaranteedCards) - 1
	}
	return ps.GuaranteedCards[idx]
}

// DrawSingle 解算一次抽取：
// 保底计数达到阈值时走硬保底，否则按概率表加权抽取。
// 返回到手卡牌ID和本抽是否触发了硬保底。
func DrawSingle(p *pack.Pack, pityCount int, rng RandomSource) (string, bool, error) {
	ps := p.PitySystem.PitySystem
	if ps != nil && pityCount >= ps.MaxPity {
		if len(p.AvailableCards) == 0 {
			return "", false, ErrNoAvailableCards
		}
		if len(ps.GuaranteedCards) == 0 {
			return "", false, fmt.Errorf("%w: 保底候选卡牌为空", pack.ErrPitySystem)
		}
		return drawGuaranteed(ps, rng), true, nil
	}

	cardID, err := drawByProbability(p, pityCount, rng)
	return cardID, false, err
}
