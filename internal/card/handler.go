package card

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetCards 处理获取全量卡牌列表的请求
// GET /api/cards?gameplayType=BATTLE
func GetCards(c *gin.Context) {
	gt := c.Query("gameplayType")
	var cards []*CardInfo
	if gt != "" {
		cards = GetCardsByGameplayType(GameplayType(gt))
	} else {
		cards = GetAllCards()
	}
	c.JSON(http.StatusOK, cards)
}

// GetCard 处理按ID获取单张卡牌的请求
// GET /api/cards/:id
func GetCard(c *gin.Context) {
	info, ok := GetCardByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "卡牌不存在"})
		return
	}
	c.JSON(http.StatusOK, info)
}

// PostCard 处理创建卡牌的请求
// POST /api/cards
func PostCard(c *gin.Context) {
	var body Card
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体格式错误"})
		return
	}
	if err := CreateCard(&body); err != nil {
		writeCardError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": body.CardID})
}

// PutCard 处理更新卡牌的请求
// PUT /api/cards/:id
func PutCard(c *gin.Context) {
	var body Card
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体格式错误"})
		return
	}
	if err := UpdateCard(c.Param("id"), &body); err != nil {
		writeCardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
}

// DeleteCardHandler 处理删除卡牌的请求
// DELETE /api/cards/:id
func DeleteCardHandler(c *gin.Context) {
	if err := DeleteCard(c.Param("id")); err != nil {
		writeCardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
}

// GetTemplates 处理获取全量模板列表的请求
// GET /api/templates
func GetTemplates(c *gin.Context) {
	templates, err := GetAllTemplates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetTemplate 处理按ID获取单个模板的请求
// GET /api/templates/:id
func GetTemplate(c *gin.Context) {
	tpl, err := GetTemplateByID(c.Param("id"))
	if err != nil {
		writeCardError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// PostTemplate 处理创建模板的请求
// POST /api/templates
func PostTemplate(c *gin.Context) {
	var body Template
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体格式错误"})
		return
	}
	if err := CreateTemplate(&body); err != nil {
		writeCardError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": body.TemplateID})
}

// PutTemplate 处理更新模板的请求
// PUT /api/templates/:id
func PutTemplate(c *gin.Context) {
	var body Template
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体格式错误"})
		return
	}
	if err := UpdateTemplate(c.Param("id"), &body); err != nil {
		writeCardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
}

func writeCardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCardNotFound), errors.Is(err, ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidCard):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
	}
}
