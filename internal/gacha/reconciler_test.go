package gacha

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileDuplicates(t *testing.T) {
	owned := func(ids ...string) map[string]struct{} {
		m := make(map[string]struct{})
		for _, id := range ids {
			m[id] = struct{}{}
		}
		return m
	}

	t.Run("未持有的卡牌整组计入新获得", func(t *testing.T) {
		groups := reconcileDuplicates([]string{"a", "b"}, owned())
		require.Len(t, groups, 2)
		assert.True(t, groups[0].isNew)
		assert.True(t, groups[1].isNew)
	})

	t.Run("已持有的卡牌整组计入重复", func(t *testing.T) {
		groups := reconcileDuplicates([]string{"a", "b"}, owned("a"))
		require.Len(t, groups, 2)
		assert.False(t, groups[0].isNew)
		assert.True(t, groups[1].isNew)
	})

	t.Run("同批多次命中归并为一组", func(t *testing.T) {
		groups := reconcileDuplicates([]string{"a", "b", "a", "a"}, owned())
		require.Len(t, groups, 2)
		assert.Equal(t, "a", groups[0].cardID)
		assert.Equal(t, int64(3), groups[0].count)
		assert.True(t, groups[0].isNew, "同批内的后续命中不应变成重复")
		assert.Equal(t, "b", groups[1].cardID)
		assert.Equal(t, int64(1), groups[1].count)
	})

	t.Run("分组维持首次出现顺序", func(t *testing.T) {
		groups := reconcileDuplicates([]string{"c", "a", "b", "a", "c"}, owned())
		require.Len(t, groups, 3)
		assert.Equal(t, "c", groups[0].cardID)
		assert.Equal(t, "a", groups[1].cardID)
		assert.Equal(t, "b", groups[2].cardID)
	})

	t.Run("空抽取产生空分组", func(t *testing.T) {
		assert.Empty(t, reconcileDuplicates(nil, owned()))
	})
}
