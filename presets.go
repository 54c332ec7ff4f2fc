package pixelkit

import (
	"errors"
	"slices"
	"strings"
	"sync"
)

var ErrPresetNotFound = errors.New("preset not found")

type FilterPreset struct {
	Name     string
	Emoji    string
	Settings FilterSettings
}

var BuiltinPresets = []FilterPreset{
	{"Original", "🔄", DefaultFilterSettings()},
	{"Vintage", "📼", FilterSettings{Brightness: 105, Contrast: 95, Saturation: 80, Sepia: 40}},
	{"Cool Blue", "❄️", FilterSettings{Brightness: 100, Contrast: 115, Saturation: 90}},
	{"Warm Sunset", "🌅", FilterSettings{Brightness: 110, Contrast: 105, Saturation: 130, Sepia: 30}},
	{"B&W Classic", "⚪", FilterSettings{Brightness: 100, Contrast: 120, Saturation: 100, Grayscale: 100}},
	{"Noir", "🖤", FilterSettings{Brightness: 85, Contrast: 140, Saturation: 100, Grayscale: 100}},
	{"Vivid", "🌈", FilterSettings{Brightness: 100, Contrast: 120, Saturation: 150}},
	{"Soft Focus", "🎬", FilterSettings{Brightness: 105, Contrast: 95, Saturation: 100, Blur: 2}},
	{"Dream", "✨", FilterSettings{Brightness: 115, Contrast: 80, Saturation: 120, Blur: 1}},
}

// PresetByName looks up a built-in preset, ignoring case.
func PresetByName(name string) (FilterPreset, bool) {
	for _, p := range BuiltinPresets {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, true
		}
	}
	return FilterPreset{}, false
}

// PresetStore keeps user-named filter settings. Persisting it is up to the
// caller.
type PresetStore struct {
	mu      sync.RWMutex
	presets map[string]FilterSettings
}

func NewPresetStore() *PresetStore {
	return &PresetStore{presets: make(map[string]FilterSettings)}
}

// Save stores s under name, replacing any previous entry. Blank names are
// ignored.
func (ps *PresetStore) Save(name string, s FilterSettings) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.presets[name] = s
	return true
}

func (ps *PresetStore) Get(name string) (FilterSettings, error) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	s, ok := ps.presets[name]
	if !ok {
		return FilterSettings{}, ErrPresetNotFound
	}
	return s, nil
}

func (ps *PresetStore) Delete(name string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	delete(ps.presets, name)
}

// Names returns the stored names sorted.
func (ps *PresetStore) Names() []string {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	names := make([]string, 0, len(ps.presets))
	for n := range ps.presets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// All returns a copy of the stored presets.
func (ps *PresetStore) All() map[string]FilterSettings {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	out := make(map[string]FilterSettings, len(ps.presets))
	for k, v := range ps.presets {
		out[k] = v
	}
	return out
}

// Resolve finds name among the stored presets first, then the built-ins.
func (ps *PresetStore) Resolve(name string) (FilterSettings, error) {
	if s, err := ps.Get(name); err == nil {
		return s, nil
	}
	if p, ok := PresetByName(name); ok {
		return p.Settings, nil
	}
	return FilterSettings{}, ErrPresetNotFound
}

// FilterHistory is an undo/redo stack of settings. Pushing after an undo
// drops the redo tail.
type FilterHistory struct {
	states []FilterSettings
	index  int
}

func NewFilterHistory() *FilterHistory {
	return &FilterHistory{states: []FilterSettings{DefaultFilterSettings()}}
}

func (h *FilterHistory) Current() FilterSettings {
	return h.states[h.index]
}

func (h *FilterHistory) Push(s FilterSettings) {
	h.states = append(h.states[:h.index+1], s)
	h.index = len(h.states) - 1
}

func (h *FilterHistory) CanUndo() bool { return h.index > 0 }

func (h *FilterHistory) CanRedo() bool { return h.index < len(h.states)-1 }

func (h *FilterHistory) Undo() (FilterSettings, bool) {
	if !h.CanUndo() {
		return h.Current(), false
	}
	h.index--
	return h.Current(), true
}

func (h *FilterHistory) Redo() (FilterSettings, bool) {
	if !h.CanRedo() {
		return h.Current(), false
	}
	h.index++
	return h.Current(), true
}

// Reset clears the history back to the defaults.
func (h *FilterHistory) Reset() {
	h.states = []FilterSettings{DefaultFilterSettings()}
	h.index = 0
}
