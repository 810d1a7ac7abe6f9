package pack

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPacks 处理获取卡池列表的请求
// GET /api/packs?activeOnly=true
func GetPacks(c *gin.Context) {
	activeOnly := c.Query("activeOnly") == "true"
	packs, err := GetAllPacks(activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, packs)
}

// GetPack 处理按ID获取单个卡池的请求
// GET /api/packs/:id
func GetPack(c *gin.Context) {
	p, err := GetPackByID(c.Param("id"))
	if err != nil {
		writePackError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PostPack 处理创建卡池的请求
// POST /api/packs
func PostPack(c *gin.Context) {
	var body Pack
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体格式错误"})
		return
	}
	if err := CreatePack(&body); err != nil {
		writePackError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": body.PackID})
}

// PutPack 处理更新卡池的请求
// PUT /api/packs/:id
func PutPack(c *gin.Context) {
	var body Pack
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体格式错误"})
		return
	}
	if err := UpdatePack(c.Param("id"), &body); err != nil {
		writePackError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
}

// DeletePackHandler 处理删除卡池的请求
// DELETE /api/packs/:id
func DeletePackHandler(c *gin.Context) {
	if err := DeletePack(c.Param("id")); err != nil {
		writePackError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
}

func writePackError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPackNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidPack), errors.Is(err, ErrInvalidProbability), errors.Is(err, ErrPitySystem):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
	}
}
