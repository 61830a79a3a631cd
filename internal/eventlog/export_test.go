package eventlog

import "time"

// SetNow pins the clock used to stamp and expire memory events
func (r *MemoryRepository) SetNow(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nowFunc = now
}
