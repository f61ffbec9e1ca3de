package store

import "sync"

// Memory is an Index without persistence.
type Memory struct {
	l       sync.RWMutex
	index   map[string]string
	objects map[Kind]map[string][]byte
}

var _ Index = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		index:   make(map[string]string),
		objects: make(map[Kind]map[string][]byte),
	}
}

func (m *Memory) AddCredDef(issuerDID, schemaID, credDefID string) error {
	m.l.Lock()
	defer m.l.Unlock()
	m.index[string(indexKey(issuerDID, schemaID))] = credDefID
	return nil
}

func (m *Memory) CredDef(issuerDID, schemaID string) (string, bool, error) {
	m.l.RLock()
	defer m.l.RUnlock()
	id, found := m.index[string(indexKey(issuerDID, schemaID))]
	return id, found, nil
}

func (m *Memory) PutObject(k Kind, id string, data []byte) error {
	m.l.Lock()
	defer m.l.Unlock()
	if m.objects[k] == nil {
		m.objects[k] = make(map[string][]byte)
	}
	m.objects[k][id] = append(data[:0:0], data...)
	return nil
}

func (m *Memory) Object(k Kind, id string) ([]byte, bool, error) {
	m.l.RLock()
	defer m.l.RUnlock()
	d, found := m.objects[k][id]
	return d, found, nil
}
