package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func save(t *testing.T, db *DB, key, source string, chars int, success bool, errMsg string) *Paste {
	t.Helper()
	p := &Paste{
		Timestamp:      time.Now(),
		PromptKey:      key,
		Source:         source,
		CharacterCount: chars,
		Success:        success,
		ErrorMessage:   errMsg,
	}
	require.NoError(t, db.SavePaste(p))
	return p
}

func TestSavePaste_FillsID(t *testing.T) {
	db := openTestDB(t)

	first := save(t, db, "investigate", SourceMenu, 120, true, "")
	second := save(t, db, "analyze", SourceHotkey, 80, true, "")

	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)
}

func TestGetPastes_NewestFirst(t *testing.T) {
	db := openTestDB(t)
	save(t, db, "first", SourceMenu, 10, true, "")
	save(t, db, "second", SourceMenu, 20, true, "")
	save(t, db, "third", SourceHotkey, 30, false, "tap rejected")

	pastes, err := db.GetPastes(10, 0)
	require.NoError(t, err)
	require.Len(t, pastes, 3)

	assert.Equal(t, "third", pastes[0].PromptKey)
	assert.Equal(t, "second", pastes[1].PromptKey)
	assert.Equal(t, "first", pastes[2].PromptKey)

	assert.False(t, pastes[0].Success)
	assert.Equal(t, "tap rejected", pastes[0].ErrorMessage)
	assert.Equal(t, SourceHotkey, pastes[0].Source)
}

func TestGetPastes_Pagination(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 5; i++ {
		save(t, db, "key", SourceMenu, i, true, "")
	}

	page, err := db.GetPastes(2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	count, err := db.GetPasteCount()
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestLastUsedKey(t *testing.T) {
	db := openTestDB(t)

	key, err := db.LastUsedKey()
	require.NoError(t, err)
	assert.Empty(t, key)

	save(t, db, "older", SourceMenu, 10, true, "")
	save(t, db, "newest_failed", SourceHotkey, 10, false, "boom")

	// Failed deliveries never become the hotkey target.
	key, err = db.LastUsedKey()
	require.NoError(t, err)
	assert.Equal(t, "older", key)

	save(t, db, "newer", SourceMenu, 10, true, "")
	key, err = db.LastUsedKey()
	require.NoError(t, err)
	assert.Equal(t, "newer", key)
}

func TestDeletePaste(t *testing.T) {
	db := openTestDB(t)
	p := save(t, db, "gone", SourceMenu, 10, true, "")

	require.NoError(t, db.DeletePaste(p.ID))

	count, err := db.GetPasteCount()
	require.NoError(t, err)
	assert.Zero(t, count)

	// Deleting an absent row is a no-op.
	assert.NoError(t, db.DeletePaste(p.ID))
}

func TestStats(t *testing.T) {
	db := openTestDB(t)
	save(t, db, "alpha", SourceMenu, 100, true, "")
	save(t, db, "alpha", SourceHotkey, 50, true, "")
	save(t, db, "beta", SourceMenu, 30, false, "denied")

	overall, err := db.GetOverallStats(7)
	require.NoError(t, err)
	assert.Equal(t, 3, overall.TotalPastes)
	assert.Equal(t, 180, overall.TotalCharacters)
	assert.Equal(t, 2, overall.SuccessCount)
	assert.Equal(t, 1, overall.FailureCount)

	perPrompt, err := db.GetPromptStats(7)
	require.NoError(t, err)
	require.Len(t, perPrompt, 2)
	// Ordered by usage, most used first.
	assert.Equal(t, "alpha", perPrompt[0].PromptKey)
	assert.Equal(t, 2, perPrompt[0].TotalPastes)
	assert.Equal(t, 1, perPrompt[1].FailureCount)

	daily, err := db.GetDailyStats(7)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, 3, daily[0].TotalPastes)
}
