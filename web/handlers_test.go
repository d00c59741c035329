package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjenior/pasteprompt/prompts"
	"github.com/mjenior/pasteprompt/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.DB) {
	t.Helper()
	db, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	source := func() map[string]prompts.Prompt {
		return map[string]prompts.Prompt{
			"investigate": {Key: "investigate", Content: "Dig in", Category: "Workflow"},
			"analyze":     {Key: "analyze", Content: "Look closer"},
		}
	}
	return NewServer(db, source, 0), db
}

func TestHandlePrompts(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handlePrompts(rec, httptest.NewRequest(http.MethodGet, "/api/prompts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Total   int `json:"total"`
		Prompts []struct {
			Key        string `json:"key"`
			MenuName   string `json:"menuName"`
			Category   string `json:"category"`
			Characters int    `json:"characters"`
		} `json:"prompts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, 2, body.Total)
	require.Len(t, body.Prompts, 2)
	// Sorted by key.
	assert.Equal(t, "analyze", body.Prompts[0].Key)
	assert.Equal(t, "Investigate", body.Prompts[1].MenuName)
	assert.Equal(t, len("Dig in"), body.Prompts[1].Characters)
}

func TestHandlePrompts_MethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handlePrompts(rec, httptest.NewRequest(http.MethodPost, "/api/prompts", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleHistory_GetAndDelete(t *testing.T) {
	s, db := newTestServer(t)

	entry := &storage.Paste{
		Timestamp:      time.Now(),
		PromptKey:      "investigate",
		Source:         storage.SourceMenu,
		CharacterCount: 6,
		Success:        true,
	}
	require.NoError(t, db.SavePaste(entry))

	rec := httptest.NewRecorder()
	s.handleHistory(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit=10", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total  int             `json:"total"`
		Pastes []storage.Paste `json:"pastes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Pastes, 1)
	assert.Equal(t, "investigate", body.Pastes[0].PromptKey)

	rec = httptest.NewRecorder()
	s.handleHistory(rec, httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/history/%d", entry.ID), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	count, err := db.GetPasteCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestHandleHistory_BadDeleteID(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleHistory(rec, httptest.NewRequest(http.MethodDelete, "/api/history/nope", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleStats(t *testing.T) {
	s, db := newTestServer(t)
	require.NoError(t, db.SavePaste(&storage.Paste{
		Timestamp: time.Now(), PromptKey: "investigate",
		Source: storage.SourceHotkey, CharacterCount: 6, Success: true,
	}))

	rec := httptest.NewRecorder()
	s.handleStats(rec, httptest.NewRequest(http.MethodGet, "/api/stats?days=30", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Overall storage.OverallStats  `json:"overall"`
		Prompts []storage.PromptStats `json:"prompts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Overall.TotalPastes)
	require.Len(t, body.Prompts, 1)
	assert.Equal(t, "investigate", body.Prompts[0].PromptKey)
}

func TestHandleStatus(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Prompts int    `json:"prompts"`
		Uptime  string `json:"uptime"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Prompts)
	assert.NotEmpty(t, body.Uptime)
}
