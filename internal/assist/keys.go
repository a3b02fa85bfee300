package assist

import "sync"

type KeyEvent struct {
	Key   string
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool

	prevented bool
}

// PreventDefault stops the host from applying the key's default behaviour.
func (e *KeyEvent) PreventDefault() { e.prevented = true }

func (e *KeyEvent) DefaultPrevented() bool { return e.prevented }

type KeyListener func(*KeyEvent)

// KeyEvents is the process-wide keydown dispatcher. Views subscribe while
// mounted and must call the returned unsubscribe when unmounted.
type KeyEvents struct {
	mu        sync.Mutex
	next      uint64
	listeners map[uint64]KeyListener
}

func NewKeyEvents() *KeyEvents {
	return &KeyEvents{listeners: make(map[uint64]KeyListener)}
}

// Subscribe registers l. The returned function removes it; calling it more
// than once is harmless.
func (k *KeyEvents) Subscribe(l KeyListener) (unsubscribe func()) {
	k.mu.Lock()
	id := k.next
	k.next++
	k.listeners[id] = l
	k.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			k.mu.Lock()
			delete(k.listeners, id)
			k.mu.Unlock()
		})
	}
}

// Dispatch delivers ev to every current listener.
func (k *KeyEvents) Dispatch(ev *KeyEvent) {
	k.mu.Lock()
	ls := make([]KeyListener, 0, len(k.listeners))
	for _, l := range k.listeners {
		ls = append(ls, l)
	}
	k.mu.Unlock()

	for _, l := range ls {
		l(ev)
	}
}

// Listeners returns the number of registered listeners.
func (k *KeyEvents) Listeners() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.listeners)
}
