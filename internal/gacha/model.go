package gacha

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/SlpAus/card-gacha-backend/internal/card"
	"github.com/SlpAus/card-gacha-backend/internal/pack"
	"gorm.io/gorm"
)

// DuplicateGroup 是去重归并后的一组重复卡牌
type DuplicateGroup struct {
	Card  *card.CardInfo `json:"card"`
	Count int64          `json:"count"`
}

// Result 是一次抽取(单抽或批量)对外返回的结算结果
type Result struct {
	// Cards 是按抽取顺序排列的到手卡牌
	Cards []*card.CardInfo `json:"cards"`

	// NewCards 是本批首次获得的卡牌，按首次出现顺序归并
	NewCards []*card.CardInfo `json:"newCards"`

	// Duplicates 是本批中已持有卡牌的归并分组
	Duplicates []DuplicateGroup `json:"duplicates"`

	// CurrencySpent 是本次扣除的货币总额
	CurrencySpent int64 `json:"currencySpent"`

	// CurrencyType 是扣除的货币类型
	CurrencyType pack.CurrencyType `json:"currencyType"`

	// PityTriggered 指示本批中是否有任何一抽触发了硬保底
	PityTriggered bool `json:"pityTriggered"`

	// ReceiptID 是本次抽取的凭据ID
	ReceiptID string `json:"receiptId"`

	// Signature 是凭据的HMAC签名
	Signature string `json:"signature"`

	Timestamp time.Time `json:"timestamp"`
}

// ResultSummary 是入库的抽取结果摘要，以JSON形式存在历史记录的一列
type ResultSummary struct {
	CardIDs       []string         `json:"cardIds"`
	NewCardIDs    []string         `json:"newCardIds"`
	Duplicates    []DuplicateCount `json:"duplicates"`
	PityTriggered bool             `json:"pityTriggered"`
}

// DuplicateCount 是摘要中的重复分组
type DuplicateCount struct {
	CardID string `json:"cardId"`
	Count  int64  `json:"count"`
}

// Value 实现 driver.Valuer
func (s ResultSummary) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	return string(b), err
}

// Scan 实现 sql.Scanner
func (s *ResultSummary) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		return nil
	}
	return errors.New("ResultSummary: 不支持的数据库列类型")
}

// Record 是追加写入的抽卡历史记录，统计缓存由它重放得出。
// 卡池字段在写入时冗余一份快照，卡池之后的改动不影响历史展示。
type Record struct {
	gorm.Model

	// ReceiptID 是本次抽取的唯一凭据ID
	ReceiptID string `gorm:"uniqueIndex;type:varchar(36)" json:"receiptId"`

	// Signature 是凭据的HMAC签名
	Signature string `json:"signature"`

	// UserUUID 是发起抽取的用户
	UserUUID string `gorm:"index;type:varchar(36)" json:"userUuid"`

	// PackID 是被抽取的卡池业务ID
	PackID string `gorm:"index" json:"packId"`

	// 以下为卡池快照字段
	PackName          string            `json:"packName"`
	PackDescription   string            `json:"packDescription"`
	PackCoverImageURL string            `json:"packCoverImageUrl"`
	Currency          pack.CurrencyType `json:"currency"`
	Cost              int64             `json:"cost"`

	// GameplayType 冗余卡池的玩法类型，供分玩法统计使用
	GameplayType string `gorm:"index" json:"gameplayType"`

	// Count 是本次抽取的次数
	Count int `json:"count"`

	// TotalSpent 是本次扣除的货币总额
	TotalSpent int64 `json:"totalSpent"`

	// Summary 是抽取结果摘要
	Summary ResultSummary `gorm:"type:text" json:"summary"`
}

// PityCounter 是用户在某个卡池上的保底计数器，取值范围[0, maxPity]
type PityCounter struct {
	gorm.Model

	UserUUID string `gorm:"uniqueIndex:idx_user_pack;type:varchar(36)"`
	PackID   string `gorm:"uniqueIndex:idx_user_pack"`
	Counter  int
}
