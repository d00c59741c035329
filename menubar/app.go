// Package menubar runs the always-on tray application: a dropdown of all
// prompts, a global hotkey, config auto-reload, and paste delivery into the
// focused application.
package menubar

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/getlantern/systray"

	"github.com/mjenior/pasteprompt/config"
	"github.com/mjenior/pasteprompt/hotkey"
	"github.com/mjenior/pasteprompt/paste"
	"github.com/mjenior/pasteprompt/platform"
	"github.com/mjenior/pasteprompt/prompts"
	"github.com/mjenior/pasteprompt/storage"
	"github.com/mjenior/pasteprompt/web"
)

const (
	iconNormal = "📋"
	iconActive = "✨"

	// The tray toolkit cannot remove menu items, so prompt rows come from a
	// fixed pool of pre-allocated slots that reloads retitle and hide/show.
	slotPool = 64
)

// Options configure the tray application.
type Options struct {
	// ConfigPath pins an explicit prompts file when non-empty.
	ConfigPath string
	// Hotkey is the global combo; empty uses the settings file.
	Hotkey string
	// RestoreClipboard restores the prior clipboard after each paste.
	RestoreClipboard bool
	// ShowNotifications enables user-facing notification messages.
	ShowNotifications bool
	// Settings are the loaded tray preferences.
	Settings *config.Settings
}

// App is the tray application.
type App struct {
	opts      Options
	sequencer *paste.Sequencer
	hotkeys   *hotkey.Manager
	watcher   *Watcher
	db        *storage.DB
	server    *web.Server

	mu         sync.Mutex
	collection map[string]prompts.Prompt
	settings   prompts.Settings
	lastUsed   string

	slots     []*slot
	quitItem  *systray.MenuItem
	hotkeyStr string
}

type slot struct {
	item *systray.MenuItem
	key  string // empty for category headers and unused slots
}

// New creates the tray application.
func New(opts Options) *App {
	return &App{
		opts:      opts,
		sequencer: paste.NewSequencer(platform.NewClipboard(), platform.NewPaster(), opts.RestoreClipboard),
		hotkeys:   hotkey.NewManager(platform.NewEventTap()),
		hotkeyStr: opts.Hotkey,
	}
}

// Run starts the tray application. Blocking until quit.
func (a *App) Run() error {
	if !platform.AccessibilityTrusted() {
		slog.Warn("Accessibility permission not granted")
		platform.RequestAccessibility()
		a.notify("Permissions Required", "Grant Accessibility permission in System Settings to enable hotkeys and pasting.")
	}

	if err := a.loadConfig(); err != nil {
		return fmt.Errorf("failed to load prompts: %w", err)
	}

	if a.opts.Settings.History.Enabled {
		dir, err := config.EnsureDir()
		if err != nil {
			return err
		}
		db, err := storage.Open(dir)
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		a.db = db

		if key, err := db.LastUsedKey(); err == nil {
			a.mu.Lock()
			a.lastUsed = key
			a.mu.Unlock()
		}
	}

	if a.opts.Settings.Web.Enabled && a.db != nil {
		a.server = web.NewServer(a.db, a.currentPrompts, a.opts.Settings.Web.Port)
		go func() {
			if err := a.server.Start(); err != nil {
				slog.Error("Dashboard stopped", "error", err)
			}
		}()
	}

	systray.Run(a.onReady, a.onExit)
	return nil
}

func (a *App) currentPrompts() map[string]prompts.Prompt {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.collection
}

func (a *App) loadConfig() error {
	path, err := config.ResolvePromptsPath(a.opts.ConfigPath)
	if err != nil {
		return err
	}
	collection, err := prompts.Load(path)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.collection = collection
	a.settings = prompts.GetSettings(path)
	a.mu.Unlock()

	slog.Info("Loaded prompts", "count", len(collection), "path", path)
	return nil
}

func (a *App) onReady() {
	systray.SetTitle(iconNormal)
	systray.SetTooltip("PastePrompt - Quick prompt snippets")

	a.slots = make([]*slot, slotPool)
	for i := range a.slots {
		item := systray.AddMenuItem("", "")
		item.Hide()
		a.slots[i] = &slot{item: item}
		go a.slotClicks(a.slots[i])
	}

	systray.AddSeparator()

	pasteLast := systray.AddMenuItem(
		fmt.Sprintf("⚡ Paste Last Used  %s", hotkey.Format(a.hotkeyStr)),
		"Paste the most recently used prompt")

	systray.AddSeparator()

	reload := systray.AddMenuItem("↻ Reload Config", "Reload prompts from the configuration file")
	openCfg := systray.AddMenuItem("⚙ Open Config…", "Open the configuration file in the default editor")

	var dashboard *systray.MenuItem
	if a.server != nil {
		dashboard = systray.AddMenuItem("📊 Open Dashboard", "Open the usage dashboard in the browser")
	}

	systray.AddSeparator()
	a.quitItem = systray.AddMenuItem("✕ Quit PastePrompt", "Exit PastePrompt")

	go func() {
		for {
			select {
			case <-pasteLast.ClickedCh:
				a.pasteLastUsed()
			case <-reload.ClickedCh:
				a.reload()
			case <-openCfg.ClickedCh:
				a.openConfig()
			case <-a.quitItem.ClickedCh:
				slog.Info("User requested quit from tray")
				a.shutdown()
				return
			}
		}
	}()

	if dashboard != nil {
		go func() {
			for range dashboard.ClickedCh {
				openBrowser(fmt.Sprintf("http://127.0.0.1:%d", a.opts.Settings.Web.Port))
			}
		}()
	}

	a.rebuildMenu()
	a.setupHotkey()
	a.setupWatcher()
}

func (a *App) onExit() {
	slog.Info("Tray exited")
}

func (a *App) slotClicks(s *slot) {
	for range s.item.ClickedCh {
		a.mu.Lock()
		key := s.key
		a.mu.Unlock()
		if key != "" {
			a.pastePrompt(key, storage.SourceMenu)
		}
	}
}

// rebuildMenu assigns category headers and prompt rows to the slot pool.
func (a *App) rebuildMenu() {
	a.mu.Lock()
	collection := a.collection
	includeKey := a.settings.IncludeKeyInName
	a.mu.Unlock()

	categorized := make(map[string][]prompts.Prompt)
	for _, p := range collection {
		category := p.Category
		if category == "" {
			category = "General"
		}
		categorized[category] = append(categorized[category], p)
	}

	categories := make([]string, 0, len(categorized))
	for c := range categorized {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	i := 0
	assign := func(title, tooltip, key string, header bool) {
		if i >= len(a.slots) {
			return
		}
		s := a.slots[i]
		a.mu.Lock()
		s.key = key
		a.mu.Unlock()
		s.item.SetTitle(title)
		s.item.SetTooltip(tooltip)
		if header {
			s.item.Disable()
		} else {
			s.item.Enable()
		}
		s.item.Show()
		i++
	}

	for _, category := range categories {
		entries := categorized[category]
		sort.Slice(entries, func(x, y int) bool {
			return entries[x].MenuName() < entries[y].MenuName()
		})

		assign(fmt.Sprintf("── %s ──", category), "", "", true)
		for _, p := range entries {
			assign("  "+p.MenuNameWithKey(includeKey), p.Description, p.Key, false)
		}
	}

	if i >= len(a.slots) {
		slog.Warn("Too many prompts for the tray menu", "slots", len(a.slots))
	}
	for ; i < len(a.slots); i++ {
		s := a.slots[i]
		a.mu.Lock()
		s.key = ""
		a.mu.Unlock()
		s.item.Hide()
	}
}

func (a *App) setupHotkey() {
	if err := a.hotkeys.Register(a.hotkeyStr, a.pasteLastUsed); err != nil {
		slog.Error("Invalid hotkey", "combo", a.hotkeyStr, "error", err)
		return
	}
	if !a.hotkeys.Start() {
		slog.Warn("Hotkey listener unavailable, tray menu remains usable")
		a.notify("Hotkey Disabled", "Could not install the global hotkey. Check Accessibility permissions.")
	}
}

func (a *App) setupWatcher() {
	path, err := config.ResolvePromptsPath(a.opts.ConfigPath)
	if err != nil {
		return
	}
	watcher, err := NewWatcher(path, a.reload)
	if err != nil {
		slog.Warn("Config watcher unavailable", "error", err)
		return
	}
	a.watcher = watcher
}

func (a *App) reload() {
	if err := a.loadConfig(); err != nil {
		slog.Error("Failed to reload config", "error", err)
		a.notify("Configuration Error", err.Error())
		return
	}
	a.rebuildMenu()

	a.mu.Lock()
	count := len(a.collection)
	a.mu.Unlock()
	a.notify("Config Reloaded", fmt.Sprintf("Loaded %d prompts", count))
}

func (a *App) pasteLastUsed() {
	a.mu.Lock()
	key := a.lastUsed
	a.mu.Unlock()

	if key == "" {
		a.notify("No Recent Prompt", "Pick a prompt from the tray menu first.")
		return
	}
	a.pastePrompt(key, storage.SourceHotkey)
}

func (a *App) pastePrompt(key, source string) {
	a.mu.Lock()
	p, ok := a.collection[key]
	a.mu.Unlock()
	if !ok {
		slog.Error("Prompt not found", "key", key)
		return
	}

	systray.SetTitle(iconActive)

	// Let the dropdown close before the keystroke lands.
	time.Sleep(100 * time.Millisecond)

	err := a.sequencer.PasteText(p.Content)
	if err != nil {
		slog.Error("Paste failed", "key", key, "error", err)
		a.notify("Paste Failed", "Could not paste text. Check Accessibility permissions.")
	} else {
		a.mu.Lock()
		a.lastUsed = key
		a.mu.Unlock()
	}

	a.record(key, source, len(p.Content), err)

	time.Sleep(200 * time.Millisecond)
	systray.SetTitle(iconNormal)
}

func (a *App) record(key, source string, characters int, pasteErr error) {
	if a.db == nil {
		return
	}

	entry := &storage.Paste{
		Timestamp:      time.Now(),
		PromptKey:      key,
		Source:         source,
		CharacterCount: characters,
		Success:        pasteErr == nil,
	}
	if pasteErr != nil {
		entry.ErrorMessage = pasteErr.Error()
	}

	if err := a.db.SavePaste(entry); err != nil {
		slog.Warn("Failed to record paste", "error", err)
		return
	}
	if a.server != nil {
		a.server.BroadcastPaste(entry)
	}
}

func (a *App) openConfig() {
	path, err := config.ResolvePromptsPath(a.opts.ConfigPath)
	if err != nil {
		slog.Error("Failed to resolve config path", "error", err)
		return
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		slog.Error("Failed to open config", "error", err)
	}
}

func (a *App) shutdown() {
	a.hotkeys.Stop()
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.server.Stop(ctx); err != nil {
			slog.Warn("Dashboard shutdown failed", "error", err)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
	systray.Quit()
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		slog.Error("Failed to open browser", "error", err)
	}
}
