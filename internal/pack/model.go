package pack

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

// CurrencyType 定义了货币类型的枚举
type CurrencyType string

const (
	CurrencyGold    CurrencyType = "GOLD"
	CurrencyTicket  CurrencyType = "TICKET"
	CurrencyPremium CurrencyType = "PREMIUM"
)

// AllCurrencies 列出所有货币类型
var AllCurrencies = []CurrencyType{CurrencyGold, CurrencyTicket, CurrencyPremium}

// IsValidCurrency 检查货币类型是否合法
func IsValidCurrency(c CurrencyType) bool {
	switch c {
	case CurrencyGold, CurrencyTicket, CurrencyPremium:
		return true
	}
	return false
}

// PitySystem 定义了卡池的保底配置
type PitySystem struct {
	// MaxPity 是触发硬保底的抽数阈值
	MaxPity int `json:"maxPity"`

	// GuaranteedCards 是保底触发时的候选卡牌ID，必须是可抽卡牌的子集
	GuaranteedCards []string `json:"guaranteedCards"`

	// GuaranteedCardWeights 是候选卡牌的权重，可省略(等概率)，
	// 提供时长度必须与 GuaranteedCards 一致且全部为正
	GuaranteedCardWeights []float64 `json:"guaranteedCardWeights,omitempty"`

	// SoftPityStart 是软保底起始抽数，从这里开始对抽取施加偏置
	SoftPityStart int `json:"softPityStart"`

	// ResetOnTrigger 指示保底触发后计数器是否清零
	ResetOnTrigger bool `json:"resetOnTrigger"`
}

// PitySystemColumn 是 PitySystem 的可空JSON列包装
type PitySystemColumn struct {
	*PitySystem
}

// Value 实现 driver.Valuer
func (p PitySystemColumn) Value() (driver.Value, error) {
	if p.PitySystem == nil {
		return nil, nil
	}
	b, err := json.Marshal(p.PitySystem)
	return string(b), err
}

// Scan 实现 sql.Scanner
func (p *PitySystemColumn) Scan(value interface{}) error {
	if value == nil {
		p.PitySystem = nil
		return nil
	}
	var ps PitySystem
	switch v := value.(type) {
	case []byte:
		if err := json.Unmarshal(v, &ps); err != nil {
			return err
		}
	case string:
		if err := json.Unmarshal([]byte(v), &ps); err != nil {
			return err
		}
	default:
		return errors.New("PitySystemColumn: 不支持的数据库列类型")
	}
	p.PitySystem = &ps
	return nil
}

// ProbabilityMap 是卡牌ID到抽取概率的映射，以JSON形式入库
type ProbabilityMap map[string]float64

// Value 实现 driver.Valuer
func (m ProbabilityMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

// Scan 实现 sql.Scanner
func (m *ProbabilityMap) Scan(value interface{}) error {
	if value == nil {
		*m = ProbabilityMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return errors.New("ProbabilityMap: 不支持的数据库列类型")
}

// StringList 是字符串切片的JSON列包装
type StringList []string

// Value 实现 driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

// Scan 实现 sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("StringList: 不支持的数据库列类型")
}

// Pack 定义了数据库中卡池的数据结构
type Pack struct {
	gorm.Model

	// PackID 是卡池的唯一业务ID
	PackID string `gorm:"uniqueIndex;not null" json:"id"`

	// Name 是卡池的名称
	Name string `json:"name"`

	// Description 是卡池的描述
	Description string `json:"description"`

	// CoverImageURL 是卡池封面图片的路径
	CoverImageURL string `json:"coverImageUrl"`

	// Cost 是单次抽取的货币花费
	Cost int64 `json:"cost"`

	// Currency 是抽取时扣除的货币类型
	Currency CurrencyType `json:"currency"`

	// IsActive 指示卡池是否开放抽取
	IsActive bool `gorm:"index" json:"isActive"`

	// GameplayType 是卡池所属的玩法类型
	GameplayType string `gorm:"index" json:"gameplayType"`

	// CardProbabilities 是可抽卡牌的概率表
	CardProbabilities ProbabilityMap `gorm:"type:text" json:"cardProbabilities"`

	// AvailableCards 是可抽卡牌的ID列表，决定分组与回退顺序
	AvailableCards StringList `gorm:"type:text" json:"availableCards"`

	// PitySystem 是可选的保底配置
	PitySystem PitySystemColumn `gorm:"type:text" json:"pitySystem"`
}
