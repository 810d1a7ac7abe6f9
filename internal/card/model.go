package card

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

// Rarity 定义了卡牌稀有度的枚举类型
type Rarity string

const (
	RarityN   Rarity = "N"
	RarityR   Rarity = "R"
	RaritySR  Rarity = "SR"
	RaritySSR Rarity = "SSR"
	RarityUR  Rarity = "UR"
	RarityLR  Rarity = "LR"
)

// AllRarities 按从低到高的顺序列出所有稀有度，用于初始化统计映射
var AllRarities = []Rarity{RarityN, RarityR, RaritySR, RaritySSR, RarityUR, RarityLR}

// rarityOrder 定义了稀有度的排序权重 (N < R < SR < SSR < UR < LR)
var rarityOrder = map[Rarity]int{
	RarityN: 0, RarityR: 1, RaritySR: 2, RaritySSR: 3, RarityUR: 4, RarityLR: 5,
}

// IsValidRarity 检查一个稀有度取值是否合法
func IsValidRarity(r Rarity) bool {
	_, ok := rarityOrder[r]
	return ok
}

// RarityLess 按稀有度顺序比较两个稀有度
func RarityLess(a, b Rarity) bool {
	return rarityOrder[a] < rarityOrder[b]
}

// GameplayType 定义了玩法类型的枚举
type GameplayType string

const (
	GameplayDefault    GameplayType = "DEFAULT"
	GameplayBattle     GameplayType = "BATTLE"
	GameplayCollection GameplayType = "COLLECTION"
	GameplayStrategy   GameplayType = "STRATEGY"
	GameplayAdventure  GameplayType = "ADVENTURE"
	GameplayPuzzle     GameplayType = "PUZZLE"
)

// AttributeMap 是卡牌的属性包：字段名到标量值(数字/字符串/布尔)的映射。
// 以JSON形式存入SQLite的一列。
type AttributeMap map[string]interface{}

// Value 实现 driver.Valuer，将属性包序列化为JSON
func (m AttributeMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

// Scan 实现 sql.Scanner，从JSON反序列化属性包
func (m *AttributeMap) Scan(value interface{}) error {
	if value == nil {
		*m = AttributeMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return errors.New("AttributeMap: 不支持的数据库列类型")
}

// FieldKind 是模板schema中声明的属性字段类型
type FieldKind string

const (
	FieldNumber FieldKind = "number"
	FieldString FieldKind = "string"
	FieldBool   FieldKind = "bool"
)

// SchemaMap 是模板的schema定义：字段名到字段类型的映射
type SchemaMap map[string]FieldKind

// Value 实现 driver.Valuer
func (m SchemaMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

// Scan 实现 sql.Scanner
func (m *SchemaMap) Scan(value interface{}) error {
	if value == nil {
		*m = SchemaMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return errors.New("SchemaMap: 不支持的数据库列类型")
}

// Card 定义了数据库中卡牌的数据结构
type Card struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	gorm.Model

	// CardID 是卡牌的唯一业务ID，业务逻辑中的主键
	CardID string `gorm:"uniqueIndex;not null" json:"id"`

	// Name 是卡牌的名称
	Name string `json:"name"`

	// Description 是卡牌的描述
	Description string `json:"description"`

	// Rarity 是卡牌的稀有度
	Rarity Rarity `gorm:"index" json:"rarity"`

	// ImageURL 是卡牌图片的路径
	ImageURL string `json:"imageUrl"`

	// TemplateID 是卡牌所属模板的业务ID，属性包按模板schema校验
	TemplateID string `gorm:"index" json:"templateId"`

	// GameplayType 是卡牌所属的玩法类型
	GameplayType GameplayType `gorm:"index" json:"gameplayType"`

	// Attributes 是按模板schema校验过的属性包
	Attributes AttributeMap `gorm:"type:text" json:"attributes"`
}

// Template 定义了卡牌模板：声明属性包的schema，在写入时校验
type Template struct {
	gorm.Model

	// TemplateID 是模板的唯一业务ID
	TemplateID string `gorm:"uniqueIndex;not null" json:"id"`

	// Name 是模板的名称
	Name string `json:"name"`

	// Description 是模板的描述
	Description string `json:"description"`

	// GameplayType 是模板所属的玩法类型
	GameplayType GameplayType `gorm:"index" json:"gameplayType"`

	// Schema 声明了该模板下卡牌属性包的字段和类型
	Schema SchemaMap `gorm:"type:text" json:"schema"`
}
