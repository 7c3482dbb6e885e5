package query

import "sync"

// RowLocks impede duas mutações simultâneas na mesma linha dentro do processo
type RowLocks struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewRowLocks() *RowLocks {
	return &RowLocks{held: make(map[string]struct{})}
}

// TryAcquire não bloqueia; ok=false se a linha já está em escrita
func (l *RowLocks) TryAcquire(key string) (release func(), ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[key]; busy {
		return nil, false
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, true
}
