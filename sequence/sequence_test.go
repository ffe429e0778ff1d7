package sequence

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Counter{}))
	return db
}

func TestNextSequential(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	var previous string
	for i := 1; i <= 12; i++ {
		number, err := Next(db, PrefixOrder, now)
		require.NoError(t, err)

		assert.Equal(t, fmt.Sprintf("PB2024%04d", i), number)
		assert.Greater(t, number, previous)
		previous = number
	}
}

func TestNextFormat(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	number, err := Next(db, PrefixPI, now)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^PI\d{4}\d{4}$`), number)
	assert.Equal(t, "PI20240001", number)
}

func TestNextPrefixesIndependent(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	order, err := Next(db, PrefixOrder, now)
	require.NoError(t, err)
	shipment, err := Next(db, PrefixShipment, now)
	require.NoError(t, err)

	assert.Equal(t, "PB20240001", order)
	assert.Equal(t, "SH20240001", shipment)
}

func TestNextYearRollover(t *testing.T) {
	db := openTestDB(t)

	dec := time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		_, err := Next(db, PrefixOrder, dec)
		require.NoError(t, err)
	}

	// First number of the new year restarts at 1 regardless of the old max
	jan := time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC)
	number, err := Next(db, PrefixOrder, jan)
	require.NoError(t, err)
	assert.Equal(t, "PB20250001", number)
}

func TestNextConcurrentUnique(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	const workers = 16
	results := make(chan string, workers)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, err := Next(db, PrefixOrder, now)
			assert.NoError(t, err)
			results <- number
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for number := range results {
		assert.False(t, seen[number], "duplicate number %s", number)
		seen[number] = true
	}
	assert.Len(t, seen, workers)
}
