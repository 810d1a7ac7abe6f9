package pack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPack() *Pack {
	return &Pack{
		PackID:   "pack-1",
		Name:     "标准卡池",
		Cost:     100,
		Currency: CurrencyGold,
		IsActive: true,
		CardProbabilities: ProbabilityMap{
			"card-a": 0.7,
			"card-b": 0.25,
			"card-c": 0.05,
		},
		AvailableCards: StringList{"card-a", "card-b", "card-c"},
	}
}

func TestValidateProbabilities(t *testing.T) {
	t.Run("合法配置通过校验", func(t *testing.T) {
		require.NoError(t, ValidateProbabilities(newTestPack()))
	})

	t.Run("概率和在容差内通过校验", func(t *testing.T) {
		p := newTestPack()
		p.CardProbabilities["card-c"] = 0.0505
		require.NoError(t, ValidateProbabilities(p))
	})

	t.Run("概率和偏差超过容差被拒绝", func(t *testing.T) {
		p := newTestPack()
		p.CardProbabilities["card-c"] = 0.1
		err := ValidateProbabilities(p)
		assert.ErrorIs(t, err, ErrInvalidProbability)
	})

	t.Run("缺少概率配置被拒绝", func(t *testing.T) {
		p := newTestPack()
		delete(p.CardProbabilities, "card-b")
		err := ValidateProbabilities(p)
		assert.ErrorIs(t, err, ErrInvalidProbability)
	})

	t.Run("负概率被拒绝", func(t *testing.T) {
		p := newTestPack()
		p.CardProbabilities["card-a"] = -0.1
		p.CardProbabilities["card-b"] = 1.05
		err := ValidateProbabilities(p)
		assert.ErrorIs(t, err, ErrInvalidProbability)
	})

	t.Run("超过1的概率被拒绝", func(t *testing.T) {
		p := newTestPack()
		p.CardProbabilities["card-a"] = 1.5
		err := ValidateProbabilities(p)
		assert.ErrorIs(t, err, ErrInvalidProbability)
	})

	t.Run("没有可抽卡牌被拒绝", func(t *testing.T) {
		p := newTestPack()
		p.AvailableCards = StringList{}
		err := ValidateProbabilities(p)
		assert.ErrorIs(t, err, ErrInvalidProbability)
	})

	t.Run("零概率卡牌允许存在", func(t *testing.T) {
		p := newTestPack()
		p.CardProbabilities = ProbabilityMap{"card-a": 1.0, "card-b": 0.0, "card-c": 0.0}
		require.NoError(t, ValidateProbabilities(p))
	})
}

func TestValidatePitySystem(t *testing.T) {
	withPity := func(ps *PitySystem) *Pack {
		p := newTestPack()
		p.PitySystem = PitySystemColumn{PitySystem: ps}
		return p
	}

	t.Run("无保底配置通过校验", func(t *testing.T) {
		require.NoError(t, ValidatePitySystem(newTestPack()))
	})

	t.Run("合法保底配置通过校验", func(t *testing.T) {
		p := withPity(&PitySystem{
			MaxPity:         10,
			GuaranteedCards: []string{"card-c"},
			SoftPityStart:   5,
			ResetOnTrigger:  true,
		})
		require.NoError(t, ValidatePitySystem(p))
	})

	t.Run("候选不在可抽卡牌中被拒绝", func(t *testing.T) {
		p := withPity(&PitySystem{
			MaxPity:         10,
			GuaranteedCards: []string{"card-x"},
			SoftPityStart:   5,
		})
		assert.ErrorIs(t, ValidatePitySystem(p), ErrPitySystem)
	})

	t.Run("权重数量不匹配被拒绝", func(t *testing.T) {
		p := withPity(&PitySystem{
			MaxPity:               10,
			GuaranteedCards:       []string{"card-b", "card-c"},
			GuaranteedCardWeights: []float64{1.0},
			SoftPityStart:         5,
		})
		assert.ErrorIs(t, ValidatePitySystem(p), ErrPitySystem)
	})

	t.Run("非正权重被拒绝", func(t *testing.T) {
		p := withPity(&PitySystem{
			MaxPity:               10,
			GuaranteedCards:       []string{"card-b", "card-c"},
			GuaranteedCardWeights: []float64{1.0, 0},
			SoftPityStart:         5,
		})
		assert.ErrorIs(t, ValidatePitySystem(p), ErrPitySystem)
	})

	t.Run("软保底起点越界被拒绝", func(t *testing.T) {
		p := withPity(&PitySystem{
			MaxPity:         10,
			GuaranteedCards: []string{"card-c"},
			SoftPityStart:   10,
		})
		assert.ErrorIs(t, ValidatePitySystem(p), ErrPitySystem)

		p = withPity(&PitySystem{
			MaxPity:         10,
			GuaranteedCards: []string{"card-c"},
			SoftPityStart:   -1,
		})
		assert.ErrorIs(t, ValidatePitySystem(p), ErrPitySystem)
	})

	t.Run("保底阈值必须为正", func(t *testing.T) {
		p := withPity(&PitySystem{
			MaxPity:         0,
			GuaranteedCards: []string{"card-c"},
		})
		assert.ErrorIs(t, ValidatePitySystem(p), ErrPitySystem)
	})

	t.Run("空候选列表被拒绝", func(t *testing.T) {
		p := withPity(&PitySystem{
			MaxPity:         10,
			GuaranteedCards: []string{},
			SoftPityStart:   5,
		})
		assert.ErrorIs(t, ValidatePitySystem(p), ErrPitySystem)
	})
}
