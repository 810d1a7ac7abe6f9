package card

import (
	"fmt"
	"sync"

	"github.com/SlpAus/card-gacha-backend/internal/platform/database"
)

// CardInfo 是卡牌在内存缓存中的只读快照，抽卡解算与统计都从这里取卡
type CardInfo struct {
	CardID       string
	Name         string
	Description  string
	Rarity       Rarity
	ImageURL     string
	TemplateID   string
	GameplayType GameplayType
	Attributes   AttributeMap
}

// repository 持有全量卡牌的内存索引。
// 卡牌写操作低频，每次写入后整体重载，读路径无锁争用之外的开销。
type repository struct {
	mu       sync.RWMutex
	byCardID map[string]*CardInfo
	ordered  []*CardInfo // 按数据库主键升序
}

var repo = &repository{
	byCardID: make(map[string]*CardInfo),
}

// ReloadRepository 从数据库全量重载卡牌缓存。
// 在启动时和每次卡牌写操作提交后调用。
func ReloadRepository() error {
	if database.DB == nil {
		return fmt.Errorf("数据库未初始化")
	}

	var cards []Card
	if err := database.DB.Order("id asc").Find(&cards).Error; err != nil {
		return fmt.Errorf("无法从数据库加载卡牌: %w", err)
	}

	byID := make(map[string]*CardInfo, len(cards))
	ordered := make([]*CardInfo, 0, len(cards))
	for i := range cards {
		c := &cards[i]
		info := &CardInfo{
			CardID:       c.CardID,
			Name:         c.Name,
			Description:  c.Description,
			Rarity:       c.Rarity,
			ImageURL:     c.ImageURL,
			TemplateID:   c.TemplateID,
			GameplayType: c.GameplayType,
			Attributes:   c.Attributes,
		}
		byID[c.CardID] = info
		ordered = append(ordered, info)
	}

	repo.mu.Lock()
	repo.byCardID = byID
	repo.ordered = ordered
	repo.mu.Unlock()

	fmt.Printf("卡牌缓存已加载, 共 %d 张卡牌。\n", len(ordered))
	return nil
}

// GetCardByID 按业务ID查询卡牌快照，不存在时返回 (nil, false)
func GetCardByID(cardID string) (*CardInfo, bool) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	info, ok := repo.byCardID[cardID]
	return info, ok
}

// GetAllCards 返回全量卡牌快照的副本切片
func GetAllCards() []*CardInfo {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	out := make([]*CardInfo, len(repo.ordered))
	copy(out, repo.ordered)
	return out
}

// GetCardsByGameplayType 返回指定玩法类型的卡牌快照
func GetCardsByGameplayType(gt GameplayType) []*CardInfo {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	out := make([]*CardInfo, 0)
	for _, info := range repo.ordered {
		if info.GameplayType == gt {
			out = append(out, info)
		}
	}
	return out
}

// CardCount 返回缓存中的卡牌总数
func CardCount() int {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return len(repo.ordered)
}
