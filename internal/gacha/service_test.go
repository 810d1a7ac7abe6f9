package gacha

import (
	"testing"

	"github.com/SlpAus/card-gacha-backend/internal/card"
	"github.com/SlpAus/card-gacha-backend/internal/pack"
	"github.com/SlpAus/card-gacha-backend/internal/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testUser = "11111111-1111-1111-1111-111111111111"

// seedStandardCatalog 写入一张普通卡和一张稀有卡
func seedStandardCatalog(t *testing.T, db *gorm.DB) {
	seedCards(t, db,
		card.Card{CardID: "card-common", Name: "普通卡", Rarity: card.RarityN, GameplayType: card.GameplayDefault},
		card.Card{CardID: "card-rare", Name: "稀有卡", Rarity: card.RaritySSR, GameplayType: card.GameplayDefault},
	)
}

// standardPack 返回一个普通卡必出的卡池, 稀有卡只能靠保底
func standardPack(pity *pack.PitySystem) *pack.Pack {
	return &pack.Pack{
		PackID:            "pack-std",
		Name:              "标准卡池",
		Cost:              10,
		Currency:          pack.CurrencyGold,
		IsActive:          true,
		GameplayType:      string(card.GameplayDefault),
		CardProbabilities: pack.ProbabilityMap{"card-common": 1.0, "card-rare": 0.0},
		AvailableCards:    pack.StringList{"card-common", "card-rare"},
		PitySystem:        pack.PitySystemColumn{PitySystem: pity},
	}
}

func TestPerformGachaSingle(t *testing.T) {
	db := newTestDB(t)
	seedStandardCatalog(t, db)
	seedPack(t, db, standardPack(nil))

	result, err := PerformGacha(testUser, "pack-std", 1, nil)
	require.NoError(t, err)

	require.Len(t, result.Cards, 1)
	assert.Equal(t, "card-common", result.Cards[0].CardID)
	require.Len(t, result.NewCards, 1)
	assert.Empty(t, result.Duplicates)
	assert.Equal(t, int64(10), result.CurrencySpent)
	assert.Equal(t, pack.CurrencyGold, result.CurrencyType)
	assert.False(t, result.PityTriggered)
	assert.NotEmpty(t, result.ReceiptID)
	// 凭据ID是时间有序的UUID v7
	assert.Equal(t, uuid.Version(7), uuid.MustParse(result.ReceiptID).Version())
	assert.NotEmpty(t, result.Signature)

	// 余额从初始1000扣到990
	u, err := user.GetUserByUUID(testUser)
	require.NoError(t, err)
	assert.Equal(t, int64(990), u.Currencies[pack.CurrencyGold])

	// 收藏中有一张普通卡
	owned, err := user.GetCollection(testUser)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, int64(1), owned[0].Quantity)

	// 历史中有一条可验证的记录
	records, err := GetHistory(testUser, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "标准卡池", records[0].PackName)
	assert.Equal(t, int64(10), records[0].TotalSpent)
	assert.True(t, VerifyReceipt(&records[0]))
}

func TestPerformGachaBatchMergesDuplicates(t *testing.T) {
	db := newTestDB(t)
	seedStandardCatalog(t, db)
	seedPack(t, db, standardPack(nil))

	result, err := PerformGacha(testUser, "pack-std", 10, nil)
	require.NoError(t, err)

	// 十连全部命中同一张卡, 整组计入新获得
	require.Len(t, result.Cards, 10)
	require.Len(t, result.NewCards, 1)
	assert.Empty(t, result.Duplicates)
	assert.Equal(t, int64(100), result.CurrencySpent)

	owned, err := user.GetCollection(testUser)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, int64(10), owned[0].Quantity)

	// 第二批的命中全部是重复
	result, err = PerformGacha(testUser, "pack-std", 3, nil)
	require.NoError(t, err)
	assert.Empty(t, result.NewCards)
	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, int64(3), result.Duplicates[0].Count)

	owned, err = user.GetCollection(testUser)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, int64(13), owned[0].Quantity)
}

func TestPerformGachaInsufficientCurrency(t *testing.T) {
	db := newTestDB(t)
	seedStandardCatalog(t, db)
	p := standardPack(nil)
	p.Cost = 600
	seedPack(t, db, p)

	// 第一次抽取成功, 第二次余额不足
	_, err := PerformGacha(testUser, "pack-std", 1, nil)
	require.NoError(t, err)
	_, err = PerformGacha(testUser, "pack-std", 1, nil)
	assert.ErrorIs(t, err, user.ErrInsufficientCurrency)

	// 失败的抽取不留下任何痕迹
	u, err := user.GetUserByUUID(testUser)
	require.NoError(t, err)
	assert.Equal(t, int64(400), u.Currencies[pack.CurrencyGold])

	records, err := GetHistory(testUser, 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	owned, err := user.GetCollection(testUser)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, int64(1), owned[0].Quantity)
}

func TestPerformGachaBatchCostCheckedUpfront(t *testing.T) {
	db := newTestDB(t)
	seedStandardCatalog(t, db)
	seedPack(t, db, standardPack(nil))

	// 初始1000, 单价10, 101连的总价超出余额, 整批拒绝
	_, err := PerformGacha(testUser, "pack-std", 101, nil)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = PerformGacha(testUser, "pack-std", 100, nil)
	require.NoError(t, err)
	_, err = PerformGacha(testUser, "pack-std", 1, nil)
	assert.ErrorIs(t, err, user.ErrInsufficientCurrency)
}

func TestPerformGachaPackErrors(t *testing.T) {
	db := newTestDB(t)
	seedStandardCatalog(t, db)

	t.Run("卡池不存在", func(t *testing.T) {
		_, err := PerformGacha(testUser, "no-such-pack", 1, nil)
		assert.ErrorIs(t, err, pack.ErrPackNotFound)
	})

	t.Run("卡池未开放", func(t *testing.T) {
		p := standardPack(nil)
		p.PackID = "pack-closed"
		p.IsActive = false
		seedPack(t, db, p)
		_, err := PerformGacha(testUser, "pack-closed", 1, nil)
		assert.ErrorIs(t, err, pack.ErrPackNotFound)
	})

	t.Run("概率配置不合法", func(t *testing.T) {
		p := standardPack(nil)
		p.PackID = "pack-bad-prob"
		p.CardProbabilities = pack.ProbabilityMap{"card-common": 0.5, "card-rare": 0.3}
		seedPack(t, db, p)
		_, err := PerformGacha(testUser, "pack-bad-prob", 1, nil)
		assert.ErrorIs(t, err, pack.ErrInvalidProbability)
	})

	t.Run("保底配置不合法", func(t *testing.T) {
		p := standardPack(&pack.PitySystem{
			MaxPity:         5,
			GuaranteedCards: []string{"card-unknown"},
			SoftPityStart:   2,
		})
		p.PackID = "pack-bad-pity"
		seedPack(t, db, p)
		_, err := PerformGacha(testUser, "pack-bad-pity", 1, nil)
		assert.ErrorIs(t, err, pack.ErrPitySystem)
	})

	t.Run("抽取次数不合法", func(t *testing.T) {
		_, err := PerformGacha(testUser, "pack-std", 0, nil)
		assert.ErrorIs(t, err, ErrInvalidCount)
		_, err = PerformGacha(testUser, "pack-std", -1, nil)
		assert.ErrorIs(t, err, ErrInvalidCount)
	})
}

func TestPerformGachaHardPity(t *testing.T) {
	db := newTestDB(t)
	seedStandardCatalog(t, db)
	seedPack(t, db, standardPack(&pack.PitySystem{
		MaxPity:         3,
		GuaranteedCards: []string{"card-rare"},
		SoftPityStart:   2,
		ResetOnTrigger:  true,
	}))

	// 四连: 前三抽命中普通卡并把计数推到3, 第四抽硬保底出稀有卡
	result, err := PerformGacha(testUser, "pack-std", 4, nil)
	require.NoError(t, err)
	assert.True(t, result.PityTriggered)
	assert.Equal(t, "card-rare", result.Cards[3].CardID)
	for i := 0; i < 3; i++ {
		assert.Equal(t, "card-common", result.Cards[i].CardID)
	}

	// 触发后计数清零
	count, err := GetPityCounter(db, testUser, "pack-std")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPerformGachaPityPersistsAcrossBatches(t *testing.T) {
	db := newTestDB(t)
	seedStandardCatalog(t, db)
	seedPack(t, db, standardPack(&pack.PitySystem{
		MaxPity:         3,
		GuaranteedCards: []string{"card-rare"},
		SoftPityStart:   2,
		ResetOnTrigger:  true,
	}))

	// 第一批两抽把计数推到2
	result, err := PerformGacha(testUser, "pack-std", 2, nil)
	require.NoError(t, err)
	assert.False(t, result.PityTriggered)

	count, err := GetPityCounter(db, testUser, "pack-std")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// 第二批第二抽达到阈值并触发
	result, err = PerformGacha(testUser, "pack-std", 2, nil)
	require.NoError(t, err)
	assert.True(t, result.PityTriggered)
	assert.Equal(t, "card-rare", result.Cards[1].CardID)

	count, err = GetPityCounter(db, testUser, "pack-std")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestVerifyReceiptRejectsTampering(t *testing.T) {
	db := newTestDB(t)
	seedStandardCatalog(t, db)
	seedPack(t, db, standardPack(nil))

	_, err := PerformGacha(testUser, "pack-std", 1, nil)
	require.NoError(t, err)

	records, err := GetHistory(testUser, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.True(t, VerifyReceipt(&records[0]))

	tampered := records[0]
	tampered.UserUUID = "22222222-2222-2222-2222-222222222222"
	assert.False(t, VerifyReceipt(&tampered))
}
