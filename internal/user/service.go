package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/card-gacha-backend/internal/pack"
	"github.com/SlpAus/card-gacha-backend/internal/platform/config"
	"github.com/SlpAus/card-gacha-backend/internal/platform/database"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound 表示指定的用户不存在
	ErrUserNotFound = errors.New("用户不存在")
	// ErrInsufficientCurrency 表示用户余额不足以完成本次抽取
	ErrInsufficientCurrency = errors.New("货币余额不足")
)

// starterCurrencies 从配置读取新用户的初始货币
func starterCurrencies() CurrencyMap {
	m := make(CurrencyMap, len(pack.AllCurrencies))
	for _, c := range pack.AllCurrencies {
		m[c] = 0
	}
	if config.Cfg != nil {
		for name, amount := range config.Cfg.Gacha.StarterCurrencies {
			c := pack.CurrencyType(name)
			if pack.IsValidCurrency(c) {
				m[c] = amount
			}
		}
	}
	return m
}

// GetOrCreateUser 按UUID查询用户，不存在时以初始货币激活一个新用户
func GetOrCreateUser(uuid string) (*User, error) {
	var u User
	err := database.DB.Where("uuid = ?", uuid).First(&u).Error
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	u = User{
		UUID:       uuid,
		Currencies: starterCurrencies(),
	}
	if err := database.DB.Create(&u).Error; err != nil {
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}
	markKnownUser(uuid)
	return &u, nil
}

// GetUserByUUID 按UUID查询用户，不存在时返回 ErrUserNotFound
func GetUserByUUID(uuid string) (*User, error) {
	var u User
	err := database.DB.Where("uuid = ?", uuid).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, uuid)
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &u, nil
}

// CheckBalance 检查用户余额是否足以支付指定花费，只读不扣款
func CheckBalance(u *User, currency pack.CurrencyType, cost int64) error {
	if u.Currencies[currency] < cost {
		return fmt.Errorf("%w: %s 余额 %d, 需要 %d", ErrInsufficientCurrency, currency, u.Currencies[currency], cost)
	}
	return nil
}

// DebitCurrency 在事务内扣除用户余额，余额不足时返回 ErrInsufficientCurrency
func DebitCurrency(tx *gorm.DB, uuid string, currency pack.CurrencyType, amount int64) error {
	var u User
	err := tx.Where("uuid = ?", uuid).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrUserNotFound, uuid)
	}
	if err != nil {
		return fmt.Errorf("查询用户失败: %w", err)
	}

	if u.Currencies[currency] < amount {
		return fmt.Errorf("%w: %s 余额 %d, 需要 %d", ErrInsufficientCurrency, currency, u.Currencies[currency], amount)
	}
	if u.Currencies == nil {
		u.Currencies = CurrencyMap{}
	}
	u.Currencies[currency] -= amount
	if err := tx.Save(&u).Error; err != nil {
		return fmt.Errorf("更新余额失败: %w", err)
	}
	return nil
}

// GrantCards 在事务内把一批到手卡牌合并进用户收藏。
// quantities 的键是卡牌ID，值是本批新增的数量。
func GrantCards(tx *gorm.DB, uuid string, quantities map[string]int64, obtainedAt time.Time) error {
	for cardID, count := range quantities {
		var owned OwnedCard
		err := tx.Where("user_uuid = ? AND card_id = ?", uuid, cardID).First(&owned).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			owned = OwnedCard{
				UserUUID:   uuid,
				CardID:     cardID,
				Quantity:   count,
				ObtainedAt: obtainedAt,
			}
			if err := tx.Create(&owned).Error; err != nil {
				return fmt.Errorf("写入持有记录失败: %w", err)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("查询持有记录失败: %w", err)
		}
		owned.Quantity += count
		if err := tx.Save(&owned).Error; err != nil {
			return fmt.Errorf("更新持有记录失败: %w", err)
		}
	}
	return nil
}

// GetOwnedCardIDs 返回用户已持有卡牌ID的集合，用于去重归并
func GetOwnedCardIDs(uuid string) (map[string]struct{}, error) {
	var cardIDs []string
	err := database.DB.Model(&OwnedCard{}).Where("user_uuid = ?", uuid).Pluck("card_id", &cardIDs).Error
	if err != nil {
		return nil, fmt.Errorf("查询持有记录失败: %w", err)
	}
	owned := make(map[string]struct{}, len(cardIDs))
	for _, id := range cardIDs {
		owned[id] = struct{}{}
	}
	return owned, nil
}

// GetCollection 返回用户收藏的全部持有记录，按首次获得时间升序
func GetCollection(uuid string) ([]OwnedCard, error) {
	var owned []OwnedCard
	err := database.DB.Where("user_uuid = ?", uuid).Order("obtained_at asc, id asc").Find(&owned).Error
	if err != nil {
		return nil, fmt.Errorf("查询收藏失败: %w", err)
	}
	return owned, nil
}
