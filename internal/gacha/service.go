package gacha

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/SlpAus/card-gacha-backend/internal/card"
	"github.com/SlpAus/card-gacha-backend/internal/pack"
	"github.com/SlpAus/card-gacha-backend/internal/platform/database"
	"github.com/SlpAus/card-gacha-backend/internal/user"
	"github.com/SlpAus/card-gacha-backend/pkg/token"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxBatchSize 是单次请求允许的最大抽取次数
const MaxBatchSize = 100

// userLockStripes 是按用户分片的互斥锁。
// 同一用户的抽取串行化，保底计数与余额的读-改-写不会交错。
var userLockStripes [64]sync.Mutex

func lockForUser(userUUID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(userUUID))
	return &userLockStripes[h.Sum32()%uint32(len(userLockStripes))]
}

// recordHook 在历史记录提交后被调用，由统计模块在启动时注册
var recordHook func(recordID uint)

// RegisterRecordHook 注册历史记录提交后的回调
func RegisterRecordHook(h func(recordID uint)) {
	recordHook = h
}

// PerformGacha 执行一次完整的抽取结算。
// 所有校验在任何状态变动之前完成；扣款、保底计数、收藏合并与
// 历史追加在同一个事务内提交，任一失败则全部回滚。
func PerformGacha(userUUID string, packID string, count int, rng RandomSource) (*Result, error) {
	if count <= 0 || count > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if rng == nil {
		rng = DefaultRandomSource()
	}

	mu := lockForUser(userUUID)
	mu.Lock()
	defer mu.Unlock()

	// 1. 加载卡池并做完整配置校验
	p, err := pack.GetActivePackByID(packID)
	if err != nil {
		return nil, err
	}
	if err := pack.ValidatePack(p); err != nil {
		return nil, err
	}
	for _, cardID := range p.AvailableCards {
		if _, ok := card.GetCardByID(cardID); !ok {
			return nil, fmt.Errorf("%w: 卡池引用的卡牌 %s 不存在", pack.ErrInvalidPack, cardID)
		}
	}

	// 2. 激活用户并检查余额，花费在结算前一次性确定
	u, err := user.GetOrCreateUser(userUUID)
	if err != nil {
		return nil, err
	}
	totalCost := p.Cost * int64(count)
	if err := user.CheckBalance(u, p.Currency, totalCost); err != nil {
		return nil, err
	}

	// 3. 读取保底计数并逐抽解算，计数在内存中跨抽推进
	pityCount, err := GetPityCounter(database.DB, userUUID, packID)
	if err != nil {
		return nil, err
	}
	ps := p.PitySystem.PitySystem

	drawn := make([]string, 0, count)
	anyTriggered := false
	for i := 0; i < count; i++ {
		cardID, triggered, err := DrawSingle(p, pityCount, rng)
		if err != nil {
			return nil, err
		}
		drawn = append(drawn, cardID)
		anyTriggered = anyTriggered || triggered
		pityCount = NextPityCounter(ps, pityCount, triggered)
	}

	// 4. 按抽取前的收藏做去重归并
	ownedBefore, err := user.GetOwnedCardIDs(userUUID)
	if err != nil {
		return nil, err
	}
	groups := reconcileDuplicates(drawn, ownedBefore)

	now := time.Now()
	receiptID := uuid.Must(uuid.NewV7()).String()
	signature, err := token.GenerateReceiptSignature(token.ReceiptPayload{
		ReceiptID: receiptID,
		UserUUID:  userUUID,
		PackID:    packID,
	})
	if err != nil {
		return nil, fmt.Errorf("生成凭据签名失败: %w", err)
	}

	summary := buildSummary(drawn, groups, anyTriggered)
	record := &Record{
		ReceiptID:         receiptID,
		Signature:         signature,
		UserUUID:          userUUID,
		PackID:            p.PackID,
		PackName:          p.Name,
		PackDescription:   p.Description,
		PackCoverImageURL: p.CoverImageURL,
		Currency:          p.Currency,
		Cost:              p.Cost,
		GameplayType:      p.GameplayType,
		Count:             count,
		TotalSpent:        totalCost,
		Summary:           summary,
	}

	quantities := make(map[string]int64, len(groups))
	for _, g := range groups {
		quantities[g.cardID] = g.count
	}

	// 5. 单事务结算：扣款、保底计数、收藏合并、历史追加
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := user.DebitCurrency(tx, userUUID, p.Currency, totalCost); err != nil {
			return err
		}
		if ps != nil {
			if err := SavePityCounter(tx, userUUID, packID, pityCount); err != nil {
				return err
			}
		}
		if err := user.GrantCards(tx, userUUID, quantities, now); err != nil {
			return err
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("写入抽卡历史失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 6. 提交后异步更新统计缓存，失败由重建兜底
	if recordHook != nil {
		recordHook(record.ID)
	}

	return assembleResult(record, groups, now)
}

// VerifyReceipt 校验一条历史记录的凭据签名
func VerifyReceipt(r *Record) bool {
	return token.ValidateReceiptSignature(token.ReceiptPayload{
		ReceiptID: r.ReceiptID,
		UserUUID:  r.UserUUID,
		PackID:    r.PackID,
	}, r.Signature)
}

func buildSummary(drawn []string, groups []reconciledGroup, pityTriggered bool) ResultSummary {
	s := ResultSummary{
		CardIDs:       drawn,
		NewCardIDs:    make([]string, 0),
		Duplicates:    make([]DuplicateCount, 0),
		PityTriggered: pityTriggered,
	}
	for _, g := range groups {
		if g.isNew {
			s.NewCardIDs = append(s.NewCardIDs, g.cardID)
		} else {
			s.Duplicates = append(s.Duplicates, DuplicateCount{CardID: g.cardID, Count: g.count})
		}
	}
	return s
}

func assembleResult(record *Record, groups []reconciledGroup, ts time.Time) (*Result, error) {
	result := &Result{
		Cards:         make([]*card.CardInfo, 0, len(record.Summary.CardIDs)),
		NewCards:      make([]*card.CardInfo, 0),
		Duplicates:    make([]DuplicateGroup, 0),
		CurrencySpent: record.TotalSpent,
		CurrencyType:  record.Currency,
		PityTriggered: record.Summary.PityTriggered,
		ReceiptID:     record.ReceiptID,
		Signature:     record.Signature,
		Timestamp:     ts,
	}
	for _, cardID := range record.Summary.CardIDs {
		info, ok := card.GetCardByID(cardID)
		if !ok {
			return nil, fmt.Errorf("卡牌缓存中找不到 %s", cardID)
		}
		result.Cards = append(result.Cards, info)
	}
	for _, g := range groups {
		info, ok := card.GetCardByID(g.cardID)
		if !ok {
			return nil, fmt.Errorf("卡牌缓存中找不到 %s", g.cardID)
		}
		if g.isNew {
			result.NewCards = append(result.NewCards, info)
		} else {
			result.Duplicates = append(result.Duplicates, DuplicateGroup{Card: info, Count: g.count})
		}
	}
	return result, nil
}

// GetHistory 返回用户最近的抽卡历史，按时间倒序
func GetHistory(userUUID string, limit int) ([]Record, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var records []Record
	err := database.DB.Where("user_uuid = ?", userUUID).Order("id desc").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询抽卡历史失败: %w", err)
	}
	return records, nil
}
