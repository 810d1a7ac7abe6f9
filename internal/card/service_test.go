package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAttributes(t *testing.T) {
	schema := SchemaMap{
		"attack": FieldNumber,
		"title":  FieldString,
		"shiny":  FieldBool,
	}

	t.Run("符合schema的属性包通过校验", func(t *testing.T) {
		require.NoError(t, ValidateAttributes(schema, AttributeMap{
			"attack": 120.0,
			"title":  "先锋",
			"shiny":  true,
		}))
	})

	t.Run("允许只提供部分字段", func(t *testing.T) {
		require.NoError(t, ValidateAttributes(schema, AttributeMap{"attack": 50.0}))
		require.NoError(t, ValidateAttributes(schema, AttributeMap{}))
	})

	t.Run("未声明的字段被拒绝", func(t *testing.T) {
		err := ValidateAttributes(schema, AttributeMap{"defense": 10.0})
		assert.ErrorIs(t, err, ErrInvalidCard)
	})

	t.Run("类型不匹配被拒绝", func(t *testing.T) {
		assert.ErrorIs(t, ValidateAttributes(schema, AttributeMap{"attack": "高"}), ErrInvalidCard)
		assert.ErrorIs(t, ValidateAttributes(schema, AttributeMap{"title": 1.0}), ErrInvalidCard)
		assert.ErrorIs(t, ValidateAttributes(schema, AttributeMap{"shiny": "true"}), ErrInvalidCard)
	})

	t.Run("整数也算数字", func(t *testing.T) {
		require.NoError(t, ValidateAttributes(schema, AttributeMap{"attack": 120}))
	})
}

func TestRarityOrdering(t *testing.T) {
	assert.True(t, RarityLess(RarityN, RarityR))
	assert.True(t, RarityLess(RaritySSR, RarityLR))
	assert.False(t, RarityLess(RarityUR, RaritySR))

	for _, r := range AllRarities {
		assert.True(t, IsValidRarity(r))
	}
	assert.False(t, IsValidRarity(Rarity("X")))
}
