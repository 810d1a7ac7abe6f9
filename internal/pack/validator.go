package pack

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidProbability 表示卡池概率表不满足归一化约束
	ErrInvalidProbability = errors.New("卡池概率配置不合法")
	// ErrPitySystem 表示卡池保底配置不合法
	ErrPitySystem = errors.New("卡池保底配置不合法")
)

// probabilitySumTolerance 是概率和与1.0之间允许的偏差
const probabilitySumTolerance = 0.001

// ValidateProbabilities 校验卡池的概率表：
// 每张可抽卡牌都必须有落在[0,1]内的概率，且概率和与1.0的偏差不超过0.001。
func ValidateProbabilities(p *Pack) error {
	if len(p.AvailableCards) == 0 {
		return fmt.Errorf("%w: 卡池 %s 没有可抽卡牌", ErrInvalidProbability, p.PackID)
	}

	sum := 0.0
	for _, cardID := range p.AvailableCards {
		prob, ok := p.CardProbabilities[cardID]
		if !ok {
			return fmt.Errorf("%w: 卡牌 %s 缺少概率配置", ErrInvalidProbability, cardID)
		}
		if prob < 0 || prob > 1 {
			return fmt.Errorf("%w: 卡牌 %s 的概率 %f 超出[0,1]", ErrInvalidProbability, cardID, prob)
		}
		sum += prob
	}

	if math.Abs(sum-1.0) > probabilitySumTolerance {
		return fmt.Errorf("%w: 概率和 %f 偏离1.0超过容差", ErrInvalidProbability, sum)
	}
	return nil
}

// ValidatePitySystem 校验卡池的保底配置：
// 保底候选必须是可抽卡牌的子集，权重(若提供)长度一致且全部为正。
func ValidatePitySystem(p *Pack) error {
	ps := p.PitySystem.PitySystem
	if ps == nil {
		return nil
	}

	if ps.MaxPity <= 0 {
		return fmt.Errorf("%w: 保底阈值 %d 必须为正", ErrPitySystem, ps.MaxPity)
	}
	if ps.SoftPityStart < 0 || ps.SoftPityStart >= ps.MaxPity {
		return fmt.Errorf("%w: 软保底起点 %d 必须落在[0, %d)内", ErrPitySystem, ps.SoftPityStart, ps.MaxPity)
	}
	if len(ps.GuaranteedCards) == 0 {
		return fmt.Errorf("%w: 保底候选卡牌不能为空", ErrPitySystem)
	}

	available := make(map[string]struct{}, len(p.AvailableCards))
	for _, cardID := range p.AvailableCards {
		available[cardID] = struct{}{}
	}
	for _, cardID := range ps.GuaranteedCards {
		if _, ok := available[cardID]; !ok {
			return fmt.Errorf("%w: 保底候选 %s 不在可抽卡牌中", ErrPitySystem, cardID)
		}
	}

	if ps.GuaranteedCardWeights != nil {
		if len(ps.GuaranteedCardWeights) != len(ps.GuaranteedCards) {
			return fmt.Errorf("%w: 权重数量 %d 与候选数量 %d 不一致", ErrPitySystem, len(ps.GuaranteedCardWeights), len(ps.GuaranteedCards))
		}
		for i, w := range ps.GuaranteedCardWeights {
			if w <= 0 {
				return fmt.Errorf("%w: 候选 %s 的权重 %f 必须为正", ErrPitySystem, ps.GuaranteedCards[i], w)
			}
		}
	}
	return nil
}

// ValidatePack 做抽取前的完整配置校验
func ValidatePack(p *Pack) error {
	if err := ValidateProbabilities(p); err != nil {
		return err
	}
	return ValidatePitySystem(p)
}
