package input

type Phase uint8

const (
	Press Phase = iota
	Release
)

func (p Phase) String() string {
	if p == Release {
		return "release"
	}
	return "press"
}

type (
	AxisFunc   func(value float32)
	ActionFunc func()
)

type actionKey struct {
	name  string
	phase Phase
}

// Bindings holds the callbacks a possessed pawn and its controller register
// against channel names.
type Bindings struct {
	axes    map[string][]AxisFunc
	actions map[actionKey][]ActionFunc
}

func NewBindings() *Bindings {
	return &Bindings{
		axes:    make(map[string][]AxisFunc),
		actions: make(map[actionKey][]ActionFunc),
	}
}

func (b *Bindings) BindAxis(name string, fn AxisFunc) {
	if fn == nil {
		return
	}
	b.axes[name] = append(b.axes[name], fn)
}

func (b *Bindings) BindAction(name string, phase Phase, fn ActionFunc) {
	if fn == nil {
		return
	}
	key := actionKey{name: name, phase: phase}
	b.actions[key] = append(b.actions[key], fn)
}

func (b *Bindings) HasAxis(name string) bool {
	return b != nil && len(b.axes[name]) > 0
}

func (b *Bindings) HasAction(name string, phase Phase) bool {
	return b != nil && len(b.actions[actionKey{name: name, phase: phase}]) > 0
}

func (b *Bindings) fireAxis(name string, value float32) {
	if b == nil {
		return
	}
	for _, fn := range b.axes[name] {
		fn(value)
	}
}

func (b *Bindings) fireAction(name string, phase Phase) {
	if b == nil {
		return
	}
	for _, fn := range b.actions[actionKey{name: name, phase: phase}] {
		fn()
	}
}
