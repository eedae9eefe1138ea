package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rolltiles/internal/core"
	"github.com/vovakirdan/rolltiles/internal/games/rolltiles"
	"github.com/vovakirdan/rolltiles/internal/levels"
	"github.com/vovakirdan/rolltiles/internal/storage"
)

// helpHeight is the number of rows reserved below the board for key help.
const helpHeight = 1

var helpBarStyle = lipgloss.NewStyle().Padding(0, 1)

// ModelConfig configures a play model.
type ModelConfig struct {
	Catalog *levels.Catalog
	LevelID string
	Store   *storage.Store // Optional; sessions are not recorded when nil
	Runtime core.RuntimeConfig
	Logger  *log.Logger
	Player  string

	// Embedded models return to their parent on back instead of quitting.
	Embedded bool
}

// Model is the Bubble Tea model for playing Roll Tiles levels.
type Model struct {
	catalog  *levels.Catalog
	index    int
	game     *rolltiles.Game
	screen   *core.Screen
	store    *storage.Store
	config   core.RuntimeConfig
	queue    *core.PointerQueue
	logger   *log.Logger
	player   string
	keys     GameKeyMap
	help     help.Model
	embedded bool

	quitting   bool
	backToMenu bool
	saved      bool // Whether the current play-through has been recorded
}

// NewModel creates a play model positioned on the requested level.
func NewModel(mc ModelConfig) (Model, error) {
	if mc.Catalog == nil || mc.Catalog.Len() == 0 {
		return Model{}, fmt.Errorf("tui: no levels available")
	}
	index := 0
	if mc.LevelID != "" {
		i, ok := mc.Catalog.Index(mc.LevelID)
		if !ok {
			return Model{}, fmt.Errorf("tui: unknown level %q", mc.LevelID)
		}
		index = i
	}
	logger := mc.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := mc.Player
	if player == "" {
		player = "local"
	}

	h := help.New()
	h.Width = mc.Runtime.ScreenW

	m := Model{
		catalog:  mc.Catalog,
		index:    index,
		screen:   core.NewScreen(mc.Runtime.ScreenW, playHeight(mc.Runtime.ScreenH)),
		store:    mc.Store,
		config:   mc.Runtime,
		queue:    core.NewPointerQueue(),
		logger:   logger,
		player:   player,
		keys:     DefaultGameKeyMap(),
		help:     h,
		embedded: mc.Embedded,
	}
	if err := m.loadLevel(index); err != nil {
		return Model{}, err
	}
	return m, nil
}

// playHeight returns the board height for a terminal of height h.
func playHeight(h int) int {
	return core.Max(h-helpHeight, 1)
}

// gameConfig returns the runtime config with the help row removed.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = playHeight(cfg.ScreenH)
	return cfg
}

// loadLevel replaces the current game with a fresh one for catalog index i.
func (m *Model) loadLevel(i int) error {
	level := m.catalog.At(i)
	game := rolltiles.New(level, rolltiles.WithLogger(m.logger))
	if err := game.Reset(m.gameConfig()); err != nil {
		return err
	}
	m.index, _ = m.catalog.Index(level.ID)
	m.game = game
	m.queue.Clear()
	m.saved = false
	return nil
}

// Init starts the input tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if ev, ok := PointerFromMouse(msg); ok {
			m.queue.Push(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveSession()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.game.State().Rolling {
			m.game.Cancel()
			m.queue.Clear()
			return m, nil
		}
		m.saveSession()
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Reset):
		m.saveSession()
		m.switchLevel(m.index)

	case key.Matches(msg, m.keys.Next):
		m.saveSession()
		m.switchLevel(m.index + 1)

	case key.Matches(msg, m.keys.Prev):
		m.saveSession()
		m.switchLevel(m.index - 1)

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m *Model) switchLevel(i int) {
	if err := m.loadLevel(i); err != nil {
		m.logger.Error("level switch failed", "index", i, "err", err)
	}
}

// handleResize re-centres the board; the grid is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width
	m.queue.Clear()

	if err := m.game.Resize(msg.Width, playHeight(msg.Height)); err != nil {
		m.logger.Warn("resize rejected", "width", msg.Width, "height", msg.Height, "err", err)
	}
	return m, nil
}

// handleTick delivers at most one queued pointer event.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	if ev, ok := m.queue.Pop(); ok {
		m.game.HandlePointer(ev)
	}
	return m, tickCmd(m.config.TickRate)
}

// saveSession records the current play-through once, if anything happened.
func (m *Model) saveSession() {
	if m.saved || m.store == nil {
		return
	}
	stats := m.game.Stats()
	if stats.Rolls == 0 && stats.Cancels == 0 {
		return
	}
	m.saved = true

	_, err := m.store.SaveSession(storage.Session{
		LevelID:  stats.LevelID,
		Player:   m.player,
		Rolls:    stats.Rolls,
		Cancels:  stats.Cancels,
		Duration: stats.Duration,
	})
	if err != nil {
		// Best-effort save, the session continues regardless
		m.logger.Warn("session not saved", "level", stats.LevelID, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".rolltiles", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpBarStyle.Render(m.help.View(m.keys))
}

// Game returns the level being played.
func (m Model) Game() *rolltiles.Game {
	return m.game
}

// BackToMenu reports whether the player asked to leave the level.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a local session.
func Run(mc ModelConfig) error {
	model, err := NewModel(mc)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Drag events while a button is held
	)

	_, err = p.Run()
	return err
}
