package input

// PlayerOne is the controller index of the local player.
const PlayerOne = 0

// AxisMapping routes a key or mouse axis into a named axis channel.
type AxisMapping struct {
	Name   string
	Device Device
	Key    Key
	Scale  float32
	Player int
}

// ActionMapping routes a key into a named action channel.
type ActionMapping struct {
	Name   string
	Device Device
	Key    Key
	Player int
}

// Mappings is the input-mapping table shared by all controllers.
type Mappings struct {
	Axes    []AxisMapping
	Actions []ActionMapping
}

func NewMappings() *Mappings {
	return &Mappings{}
}

func (m *Mappings) MapAxis(name string, device Device, key Key, scale float32, player int) {
	m.Axes = append(m.Axes, AxisMapping{Name: name, Device: device, Key: key, Scale: scale, Player: player})
}

func (m *Mappings) MapAction(name string, device Device, key Key, player int) {
	m.Actions = append(m.Actions, ActionMapping{Name: name, Device: device, Key: key, Player: player})
}

// AxisNames returns the axis channels of player in order of first mapping.
func (m *Mappings) AxisNames(player int) []string {
	if m == nil {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, a := range m.Axes {
		if a.Player != player || seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		names = append(names, a.Name)
	}
	return names
}

func (m *Mappings) Clone() *Mappings {
	if m == nil {
		return NewMappings()
	}
	return &Mappings{
		Axes:    append([]AxisMapping(nil), m.Axes...),
		Actions: append([]ActionMapping(nil), m.Actions...),
	}
}

// DefaultMappings is the demo's keyboard and mouse layout for player one.
func DefaultMappings() *Mappings {
	m := NewMappings()
	m.MapAxis("MoveForward", DeviceKeyboard, KeyW, 1, PlayerOne)
	m.MapAxis("MoveForward", DeviceKeyboard, KeyS, -1, PlayerOne)
	m.MapAxis("MoveRight", DeviceKeyboard, KeyA, -1, PlayerOne)
	m.MapAxis("MoveRight", DeviceKeyboard, KeyD, 1, PlayerOne)
	m.MapAxis("MoveUp", DeviceKeyboard, KeySpace, 1, PlayerOne)
	m.MapAxis("MoveDown", DeviceKeyboard, KeyC, 1, PlayerOne)
	m.MapAxis("TurnRight", DeviceMouse, MouseAxisX, 1, PlayerOne)
	m.MapAxis("TurnUp", DeviceMouse, MouseAxisY, 1, PlayerOne)
	m.MapAction("Speed", DeviceKeyboard, KeyLeftShift, PlayerOne)
	m.MapAction("Pause", DeviceKeyboard, KeyP, PlayerOne)
	m.MapAction("Pause", DeviceKeyboard, KeyPause, PlayerOne)
	m.MapAction("TakeScreenshot", DeviceKeyboard, KeyF12, PlayerOne)
	m.MapAction("ToggleWireframe", DeviceKeyboard, KeyY, PlayerOne)
	m.MapAction("ToggleDebugDraw", DeviceKeyboard, KeyG, PlayerOne)
	return m
}
