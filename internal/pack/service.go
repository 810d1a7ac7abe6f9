package pack

import (
	"errors"
	"fmt"

	"github.com/SlpAus/card-gacha-backend/internal/card"
	"github.com/SlpAus/card-gacha-backend/internal/platform/database"
	"gorm.io/gorm"
)

var (
	// ErrPackNotFound 表示指定的卡池不存在或未开放
	ErrPackNotFound = errors.New("卡池不存在")
	// ErrInvalidPack 表示卡池基础数据不合法
	ErrInvalidPack = errors.New("卡池数据不合法")
)

// GetPackByID 按业务ID查询卡池
func GetPackByID(packID string) (*Pack, error) {
	var p Pack
	err := database.DB.Where("pack_id = ?", packID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPackNotFound, packID)
	}
	if err != nil {
		return nil, fmt.Errorf("查询卡池失败: %w", err)
	}
	return &p, nil
}

// GetActivePackByID 按业务ID查询开放中的卡池，抽取入口使用
func GetActivePackByID(packID string) (*Pack, error) {
	p, err := GetPackByID(packID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, fmt.Errorf("%w: %s 未开放", ErrPackNotFound, packID)
	}
	return p, nil
}

// GetAllPacks 返回所有卡池，activeOnly 为真时只返回开放中的
func GetAllPacks(activeOnly bool) ([]Pack, error) {
	var packs []Pack
	query := database.DB.Order("id asc")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&packs).Error; err != nil {
		return nil, fmt.Errorf("查询卡池失败: %w", err)
	}
	return packs, nil
}

// validatePackBasics 校验卡池基础字段和卡牌引用
func validatePackBasics(p *Pack) error {
	if p.PackID == "" {
		return fmt.Errorf("%w: 缺少卡池ID", ErrInvalidPack)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: 缺少卡池名称", ErrInvalidPack)
	}
	if p.Cost < 0 {
		return fmt.Errorf("%w: 花费 %d 不能为负", ErrInvalidPack, p.Cost)
	}
	if !IsValidCurrency(p.Currency) {
		return fmt.Errorf("%w: 货币类型 %s 不合法", ErrInvalidPack, p.Currency)
	}
	for _, cardID := range p.AvailableCards {
		if _, ok := card.GetCardByID(cardID); !ok {
			return fmt.Errorf("%w: 卡牌 %s 不存在", ErrInvalidPack, cardID)
		}
	}
	return nil
}

// CreatePack 校验并写入一个新卡池
func CreatePack(p *Pack) error {
	if err := validatePackBasics(p); err != nil {
		return err
	}
	if err := ValidatePack(p); err != nil {
		return err
	}
	if err := database.DB.Create(p).Error; err != nil {
		return fmt.Errorf("写入卡池失败: %w", err)
	}
	return nil
}

// UpdatePack 按业务ID更新一个卡池
func UpdatePack(packID string, updated *Pack) error {
	var existing Pack
	err := database.DB.Where("pack_id = ?", packID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrPackNotFound, packID)
	}
	if err != nil {
		return fmt.Errorf("查询卡池失败: %w", err)
	}

	existing.Name = updated.Name
	existing.Description = updated.Description
	existing.CoverImageURL = updated.CoverImageURL
	existing.Cost = updated.Cost
	existing.Currency = updated.Currency
	existing.IsActive = updated.IsActive
	existing.GameplayType = updated.GameplayType
	existing.CardProbabilities = updated.CardProbabilities
	existing.AvailableCards = updated.AvailableCards
	existing.PitySystem = updated.PitySystem
	if err := validatePackBasics(&existing); err != nil {
		return err
	}
	if err := ValidatePack(&existing); err != nil {
		return err
	}
	if err := database.DB.Save(&existing).Error; err != nil {
		return fmt.Errorf("更新卡池失败: %w", err)
	}
	return nil
}

// DeletePack 按业务ID软删除一个卡池
func DeletePack(packID string) error {
	result := database.DB.Where("pack_id = ?", packID).Delete(&Pack{})
	if result.Error != nil {
		return fmt.Errorf("删除卡池失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrPackNotFound, packID)
	}
	return nil
}
