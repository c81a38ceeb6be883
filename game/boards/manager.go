package boards

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/rushhour/game/engine"
	"github.com/wricardo/mcp-training/rushhour/game/service"
)

var (
	ErrBoardNotFound = errors.New("board not found")
	ErrInvalidBoard  = errors.New("invalid board")
)

const (
	// DefaultBoardName is used when a session is created without a board
	DefaultBoardName = "Rushhour6x6_1"

	SourceFile    = "file"
	SourceBuiltin = "builtin"

	fileExt = ".csv"
)

// Manager handles board definition loading and caching.
// Boards in the board directory shadow built-in boards of the same name.
type Manager struct {
	boardDir     string
	builtin      fs.FS
	defaultBoard *engine.Definition
	boards       map[string]*engine.Definition
	mu           sync.RWMutex
}

// NewManager creates a board manager. boardDir may be empty to serve only
// the built-in boards; builtin may be nil.
func NewManager(boardDir string, builtin fs.FS) (*Manager, error) {
	if boardDir != "" {
		if _, err := os.Stat(boardDir); os.IsNotExist(err) {
			return nil, fmt.Errorf("board directory does not exist: %s", boardDir)
		}
	}

	m := &Manager{
		boardDir: boardDir,
		builtin:  builtin,
		boards:   make(map[string]*engine.Definition),
	}

	m.loadDefaultBoard()
	return m, nil
}

// LoadBoard loads a board definition by name, with or without the .csv extension
func (m *Manager) LoadBoard(name string) (*engine.Definition, error) {
	name = strings.TrimSuffix(name, fileExt)

	m.mu.RLock()
	// Check cache first
	if def, exists := m.boards[name]; exists {
		m.mu.RUnlock()
		return def, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if def, exists := m.boards[name]; exists {
		return def, nil
	}

	def, err := m.readBoard(name)
	if err != nil {
		return nil, err
	}

	m.boards[name] = def
	return def, nil
}

// ListBoards returns information about every loadable board, directory boards first
func (m *Manager) ListBoards() ([]*service.BoardInfo, error) {
	sources := make(map[string]string)
	var names []string

	if m.boardDir != "" {
		entries, err := os.ReadDir(m.boardDir)
		if err != nil {
			return nil, fmt.Errorf("failed to read board directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), fileExt)
			sources[name] = SourceFile
			names = append(names, name)
		}
	}

	if m.builtin != nil {
		entries, err := fs.ReadDir(m.builtin, ".")
		if err != nil {
			return nil, fmt.Errorf("failed to read built-in boards: %w", err)
		}
		var builtinNames []string
		for _, entry := range entries {
			name := strings.TrimSuffix(entry.Name(), fileExt)
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) || sources[name] != "" {
				continue
			}
			sources[name] = SourceBuiltin
			builtinNames = append(builtinNames, name)
		}
		sort.Strings(builtinNames)
		names = append(names, builtinNames...)
	}

	var boards []*service.BoardInfo
	for _, name := range names {
		def, err := m.LoadBoard(name)
		if err != nil {
			// Skip invalid boards
			continue
		}
		boards = append(boards, &service.BoardInfo{
			Filename: name + fileExt,
			BoardID:  name,
			Size:     def.Size,
			Vehicles: len(def.Vehicles),
			Source:   sources[name],
		})
	}

	return boards, nil
}

// GetDefault returns the default board
func (m *Manager) GetDefault() *engine.Definition {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultBoard
}

// SetDefault sets the default board by name
func (m *Manager) SetDefault(name string) error {
	def, err := m.LoadBoard(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultBoard = def
	return nil
}

// RefreshCache drops all cached boards and reloads the default
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.boards = make(map[string]*engine.Definition)
	m.mu.Unlock()

	m.loadDefaultBoard()
}

// SaveBoard writes a definition to the board directory. The name must carry
// the board size as its first number so the file can be read back.
func (m *Manager) SaveBoard(name string, def *engine.Definition) error {
	name = strings.TrimSuffix(name, fileExt)
	if m.boardDir == "" {
		return fmt.Errorf("no board directory configured")
	}
	if !validName(name) {
		return fmt.Errorf("%w: bad board name %q", ErrInvalidBoard, name)
	}

	size, err := SizeFromFilename(name)
	if err != nil {
		return err
	}
	if size != def.Size {
		return fmt.Errorf("%w: name %q implies size %d but board is %d", ErrInvalidBoard, name, size, def.Size)
	}

	saved := &engine.Definition{Name: name, Size: def.Size, Vehicles: def.Vehicles}
	if _, err := saved.Build(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBoard, err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, saved); err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}

	boardPath := filepath.Join(m.boardDir, name+fileExt)
	if err := os.WriteFile(boardPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write board file: %w", err)
	}

	// Update cache
	m.mu.Lock()
	m.boards[name] = saved
	m.mu.Unlock()

	return nil
}

// readBoard finds a board on disk or among the built-ins, parses and
// validates it
func (m *Manager) readBoard(name string) (*engine.Definition, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %s", ErrBoardNotFound, name)
	}

	data, err := m.readFile(name + fileExt)
	if err != nil {
		return nil, err
	}

	size, err := SizeFromFilename(name)
	if err != nil {
		return nil, err
	}

	def, err := ParseCSV(name, size, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("board %s: %w", name, err)
	}

	if _, err := def.Build(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBoard, err)
	}

	return def, nil
}

func (m *Manager) readFile(filename string) ([]byte, error) {
	if m.boardDir != "" {
		data, err := os.ReadFile(filepath.Join(m.boardDir, filename))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read board file: %w", err)
		}
	}

	if m.builtin != nil {
		if data, err := fs.ReadFile(m.builtin, filename); err == nil {
			return data, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrBoardNotFound, strings.TrimSuffix(filename, fileExt))
}

// loadDefaultBoard picks DefaultBoardName, else the first listed board, else
// a small built-in puzzle
func (m *Manager) loadDefaultBoard() {
	def, err := m.LoadBoard(DefaultBoardName)
	if err != nil {
		boards, listErr := m.ListBoards()
		if listErr == nil && len(boards) > 0 {
			def, err = m.LoadBoard(boards[0].BoardID)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if def == nil || err != nil {
		def = minimalBoard()
		m.boards[def.Name] = def
	}
	m.defaultBoard = def
}

// minimalBoard is a two-move puzzle used when no board files are available
func minimalBoard() *engine.Definition {
	return &engine.Definition{
		Name: "starter6x6",
		Size: 6,
		Vehicles: []engine.Placement{
			{Name: "X", Axis: engine.Horizontal, Row: 3, Col: 1, Length: 2},
			{Name: "A", Axis: engine.Vertical, Row: 2, Col: 4, Length: 3},
		},
	}
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
