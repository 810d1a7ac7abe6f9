package card

import (
	"errors"
	"fmt"

	"github.com/SlpAus/card-gacha-backend/internal/platform/database"
	"gorm.io/gorm"
)

var (
	// ErrCardNotFound 表示指定的卡牌不存在
	ErrCardNotFound = errors.New("卡牌不存在")
	// ErrTemplateNotFound 表示指定的模板不存在
	ErrTemplateNotFound = errors.New("模板不存在")
	// ErrInvalidCard 表示卡牌数据不合法
	ErrInvalidCard = errors.New("卡牌数据不合法")
)

// ValidateAttributes 按模板schema校验属性包：
// 不允许schema之外的字段，字段值类型必须与声明一致。
func ValidateAttributes(schema SchemaMap, attrs AttributeMap) error {
	for name, value := range attrs {
		kind, ok := schema[name]
		if !ok {
			return fmt.Errorf("%w: 属性 %s 未在模板中声明", ErrInvalidCard, name)
		}
		switch kind {
		case FieldNumber:
			// JSON反序列化后的数字统一为float64
			switch value.(type) {
			case float64, int, int64:
			default:
				return fmt.Errorf("%w: 属性 %s 应为数字", ErrInvalidCard, name)
			}
		case FieldString:
			if _, ok := value.(string); !ok {
				return fmt.Errorf("%w: 属性 %s 应为字符串", ErrInvalidCard, name)
			}
		case FieldBool:
			if _, ok := value.(bool); !ok {
				return fmt.Errorf("%w: 属性 %s 应为布尔值", ErrInvalidCard, name)
			}
		default:
			return fmt.Errorf("%w: 模板字段 %s 的类型 %s 不合法", ErrInvalidCard, name, kind)
		}
	}
	return nil
}

// validateCard 做写入前的完整校验
func validateCard(c *Card) error {
	if c.CardID == "" {
		return fmt.Errorf("%w: 缺少卡牌ID", ErrInvalidCard)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: 缺少卡牌名称", ErrInvalidCard)
	}
	if !IsValidRarity(c.Rarity) {
		return fmt.Errorf("%w: 稀有度 %s 不合法", ErrInvalidCard, c.Rarity)
	}
	if c.GameplayType == "" {
		c.GameplayType = GameplayDefault
	}
	if c.TemplateID != "" {
		var tpl Template
		err := database.DB.Where("template_id = ?", c.TemplateID).First(&tpl).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, c.TemplateID)
		}
		if err != nil {
			return fmt.Errorf("查询模板失败: %w", err)
		}
		if err := ValidateAttributes(tpl.Schema, c.Attributes); err != nil {
			return err
		}
	} else if len(c.Attributes) > 0 {
		return fmt.Errorf("%w: 无模板的卡牌不能携带属性包", ErrInvalidCard)
	}
	return nil
}

// CreateCard 校验并写入一张新卡牌，提交后重载内存缓存
func CreateCard(c *Card) error {
	if err := validateCard(c); err != nil {
		return err
	}
	if err := database.DB.Create(c).Error; err != nil {
		return fmt.Errorf("写入卡牌失败: %w", err)
	}
	return ReloadRepository()
}

// UpdateCard 按业务ID更新一张卡牌
func UpdateCard(cardID string, updated *Card) error {
	var existing Card
	err := database.DB.Where("card_id = ?", cardID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
	}
	if err != nil {
		return fmt.Errorf("查询卡牌失败: %w", err)
	}

	existing.Name = updated.Name
	existing.Description = updated.Description
	existing.Rarity = updated.Rarity
	existing.ImageURL = updated.ImageURL
	existing.TemplateID = updated.TemplateID
	existing.GameplayType = updated.GameplayType
	existing.Attributes = updated.Attributes
	if err := validateCard(&existing); err != nil {
		return err
	}
	if err := database.DB.Save(&existing).Error; err != nil {
		return fmt.Errorf("更新卡牌失败: %w", err)
	}
	return ReloadRepository()
}

// DeleteCard 按业务ID软删除一张卡牌
func DeleteCard(cardID string) error {
	result := database.DB.Where("card_id = ?", cardID).Delete(&Card{})
	if result.Error != nil {
		return fmt.Errorf("删除卡牌失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
	}
	return ReloadRepository()
}

// CreateTemplate 校验并写入一个新模板
func CreateTemplate(t *Template) error {
	if t.TemplateID == "" || t.Name == "" {
		return fmt.Errorf("%w: 缺少模板ID或名称", ErrInvalidCard)
	}
	if t.GameplayType == "" {
		t.GameplayType = GameplayDefault
	}
	for name, kind := range t.Schema {
		switch kind {
		case FieldNumber, FieldString, FieldBool:
		default:
			return fmt.Errorf("%w: 模板字段 %s 的类型 %s 不合法", ErrInvalidCard, name, kind)
		}
	}
	if err := database.DB.Create(t).Error; err != nil {
		return fmt.Errorf("写入模板失败: %w", err)
	}
	return nil
}

// UpdateTemplate 按业务ID更新一个模板。
// schema变更不回溯校验已有卡牌，新schema只约束之后的写入。
func UpdateTemplate(templateID string, updated *Template) error {
	var existing Template
	err := database.DB.Where("template_id = ?", templateID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
	}
	if err != nil {
		return fmt.Errorf("查询模板失败: %w", err)
	}

	for name, kind := range updated.Schema {
		switch kind {
		case FieldNumber, FieldString, FieldBool:
		default:
			return fmt.Errorf("%w: 模板字段 %s 的类型 %s 不合法", ErrInvalidCard, name, kind)
		}
	}

	existing.Name = updated.Name
	existing.Description = updated.Description
	existing.GameplayType = updated.GameplayType
	existing.Schema = updated.Schema
	if err := database.DB.Save(&existing).Error; err != nil {
		return fmt.Errorf("更新模板失败: %w", err)
	}
	return nil
}

// GetTemplateByID 按业务ID查询模板
func GetTemplateByID(templateID string) (*Template, error) {
	var tpl Template
	err := database.DB.Where("template_id = ?", templateID).First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
	}
	if err != nil {
		return nil, fmt.Errorf("查询模板失败: %w", err)
	}
	return &tpl, nil
}

// GetAllTemplates 返回所有模板
func GetAllTemplates() ([]Template, error) {
	var templates []Template
	if err := database.DB.Order("id asc").Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("查询模板失败: %w", err)
	}
	return templates, nil
}
