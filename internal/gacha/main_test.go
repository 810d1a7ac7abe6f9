package gacha

import (
	"path/filepath"
	"testing"

	"github.com/SlpAus/card-gacha-backend/internal/card"
	"github.com/SlpAus/card-gacha-backend/internal/pack"
	"github.com/SlpAus/card-gacha-backend/internal/platform/config"
	"github.com/SlpAus/card-gacha-backend/internal/platform/database"
	"github.com/SlpAus/card-gacha-backend/internal/user"
	"github.com/SlpAus/card-gacha-backend/pkg/token"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 准备一个独立的临时SQLite库并接管全局连接。
// Redis保持未初始化, 所有缓存路径自动退化为只走SQLite。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "gacha_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&card.Card{}, &card.Template{},
		&pack.Pack{},
		&user.User{}, &user.OwnedCard{},
		&Record{}, &PityCounter{},
	))

	database.DB = db
	database.RDB = nil
	config.Cfg = &config.Config{Gacha: config.GachaConfig{
		StarterCurrencies: map[string]int64{"GOLD": 1000, "TICKET": 10, "PREMIUM": 100},
	}}
	token.GenerateSecretKey()
	return db
}

// seedCards 写入测试卡牌并重载内存缓存
func seedCards(t *testing.T, db *gorm.DB, cards ...card.Card) {
	t.Helper()
	for i := range cards {
		require.NoError(t, db.Create(&cards[i]).Error)
	}
	require.NoError(t, card.ReloadRepository())
}

// seedPack 写入一个测试卡池
func seedPack(t *testing.T, db *gorm.DB, p *pack.Pack) {
	t.Helper()
	require.NoError(t, db.Create(p).Error)
}
