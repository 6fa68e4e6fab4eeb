package storage

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/Skrokkio/LRscript/joystick"
)

// DefaultMapping returns the factory button layout for a DragonRise-style
// arcade encoder
func DefaultMapping() map[string]int {
	return map[string]int{
		joystick.KeyButton1: 0,
		joystick.KeyButton2: 2,
		joystick.KeyButton3: 1,
		joystick.KeyL1:      4,
		joystick.KeyR1:      5,
		joystick.KeyStart:   8,
		joystick.KeySelect:  9,
	}
}

// MappingStore holds the logical key to physical button table and persists
// it to a JSON file. All seven keys are always present.
type MappingStore struct {
	mu      sync.RWMutex
	path    string
	buttons map[string]int
}

// LoadMapping reads the mapping at path. A missing, unreadable or corrupt
// file yields the defaults; missing or invalid keys fall back per key.
func LoadMapping(path string) *MappingStore {
	m := &MappingStore{path: path, buttons: DefaultMapping()}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read mapping %s: %v", path, err)
		}
		return m
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("Mapping file corrupt, using defaults: %v", err)
		return m
	}

	for _, key := range joystick.MappingKeys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		var idx int
		if err := json.Unmarshal(v, &idx); err != nil || idx < 0 {
			log.Printf("Mapping key %s invalid, using default", key)
			continue
		}
		m.buttons[key] = idx
	}

	return m
}

// Get returns the physical button for key, or -1 for an unknown key
func (m *MappingStore) Get(key string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.buttons[key]; ok {
		return v
	}
	return -1
}

// Set binds key to button and persists immediately. Unknown keys are
// rejected. Another key already bound to the same button keeps its binding.
// A failed write is logged; the in-memory binding still applies.
func (m *MappingStore) Set(key string, button int) bool {
	if !isMappingKey(key) || button < 0 {
		return false
	}

	m.mu.Lock()
	m.buttons[key] = button
	m.mu.Unlock()

	if err := m.Save(); err != nil {
		log.Printf("Failed to save mapping: %v", err)
	}
	return true
}

// Save writes the mapping to disk
func (m *MappingStore) Save() error {
	return AtomicWriteJSON(m.path, m.Snapshot())
}

// Reset restores the defaults in memory. Call Save to persist.
func (m *MappingStore) Reset() {
	m.mu.Lock()
	m.buttons = DefaultMapping()
	m.mu.Unlock()
}

// Keys returns the logical keys in display order
func (m *MappingStore) Keys() []string {
	keys := make([]string, len(joystick.MappingKeys))
	copy(keys, joystick.MappingKeys)
	return keys
}

// Snapshot returns a copy of the current table
func (m *MappingStore) Snapshot() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int, len(m.buttons))
	for k, v := range m.buttons {
		out[k] = v
	}
	return out
}

// KeysBoundTo returns the keys other than except bound to button
func (m *MappingStore) KeysBoundTo(button int, except string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for _, k := range joystick.MappingKeys {
		if k != except && m.buttons[k] == button {
			keys = append(keys, k)
		}
	}
	return keys
}

// Path returns the file the mapping persists to
func (m *MappingStore) Path() string {
	return m.path
}

func isMappingKey(key string) bool {
	for _, k := range joystick.MappingKeys {
		if k == key {
			return true
		}
	}
	return false
}
