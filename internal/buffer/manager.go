package buffer

// Manager owns every open Buffer, the current selection, and an MRU
// history of recently-switched-to buffer IDs (capped and de-duplicated),
// per spec §3.6.
type Manager struct {
	buffers map[int]*Buffer
	order   []int // insertion order, for listing buffers deterministically
	current int
	nextID  int

	history []int
}

const historyLimit = 10

func NewManager() *Manager {
	return &Manager{buffers: make(map[int]*Buffer)}
}

func (m *Manager) Current() *Buffer {
	if b, ok := m.buffers[m.current]; ok {
		return b
	}
	return nil
}

func (m *Manager) Get(id int) (*Buffer, bool) {
	b, ok := m.buffers[id]
	return b, ok
}

// List returns buffers in the order they were opened.
func (m *Manager) List() []*Buffer {
	out := make([]*Buffer, 0, len(m.order))
	for _, id := range m.order {
		if b, ok := m.buffers[id]; ok {
			out = append(out, b)
		}
	}
	return out
}

// History returns the MRU buffer-ID list, most recent first.
func (m *Manager) History() []int {
	out := make([]int, len(m.history))
	for i, id := range m.history {
		out[len(m.history)-1-i] = id
	}
	return out
}

// Switch makes id the current buffer, recording the move in history.
// Returns false if id is not an open buffer.
func (m *Manager) Switch(id int) bool {
	if _, ok := m.buffers[id]; !ok {
		return false
	}
	m.current = id
	m.recordHistory(id)
	return true
}

func (m *Manager) recordHistory(id int) {
	// De-duplicate: if id is already in history, drop the old entry so
	// it moves to the most-recent slot instead of appearing twice.
	filtered := m.history[:0]
	for _, h := range m.history {
		if h != id {
			filtered = append(filtered, h)
		}
	}
	m.history = append(filtered, id)
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
}

// Close removes a buffer. If it was current, the most recent entry in
// history becomes current; if history is empty, the most recently
// opened remaining buffer does; if no buffer remains, current becomes
// zero (no open buffer).
func (m *Manager) Close(id int) {
	delete(m.buffers, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	newHistory := m.history[:0]
	for _, h := range m.history {
		if h != id {
			newHistory = append(newHistory, h)
		}
	}
	m.history = newHistory

	if m.current == id {
		if len(m.history) > 0 {
			m.current = m.history[len(m.history)-1]
		} else if len(m.order) > 0 {
			m.current = m.order[len(m.order)-1]
		} else {
			m.current = 0
		}
	}
}

func (m *Manager) Add(b *Buffer) {
	if b.ID == 0 {
		m.nextID++
		b.ID = m.nextID
	} else if b.ID >= m.nextID {
		m.nextID = b.ID
	}
	m.buffers[b.ID] = b
	m.order = append(m.order, b.ID)
	m.current = b.ID
	m.recordHistory(b.ID)
}
