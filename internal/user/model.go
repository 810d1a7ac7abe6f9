package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/SlpAus/card-gacha-backend/internal/pack"
	"gorm.io/gorm"
)

// CurrencyMap 是货币类型到余额的映射，以JSON形式入库
type CurrencyMap map[pack.CurrencyType]int64

// Value 实现 driver.Valuer
func (m CurrencyMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

// Scan 实现 sql.Scanner
func (m *CurrencyMap) Scan(value interface{}) error {
	if value == nil {
		*m = CurrencyMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return errors.New("CurrencyMap: 不支持的数据库列类型")
}

// User 定义了数据库中用户的数据结构。
// 首次访问时以初始货币激活，余额只在抽卡结算事务中变动。
type User struct {
	// UUID 是用户的唯一标识，由服务端生成并写入Cookie
	UUID string `gorm:"primaryKey;type:varchar(36)" json:"uuid"`

	// Currencies 是用户各类货币的余额
	Currencies CurrencyMap `gorm:"type:text" json:"currencies"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnedCard 定义了用户收藏中的一条持有记录。
// (UserUUID, CardID) 唯一，重复获得只增加数量。
type OwnedCard struct {
	gorm.Model

	// UserUUID 是持有者的用户标识
	UserUUID string `gorm:"uniqueIndex:idx_user_card;type:varchar(36)" json:"userUuid"`

	// CardID 是持有卡牌的业务ID
	CardID string `gorm:"uniqueIndex:idx_user_card" json:"cardId"`

	// Quantity 是持有数量，始终为正
	Quantity int64 `json:"quantity"`

	// ObtainedAt 是首次获得该卡牌的时间
	ObtainedAt time.Time `json:"obtainedAt"`
}
