package input

import (
	"fmt"
	"strings"
)

type Device uint8

const (
	DeviceKeyboard Device = iota
	DeviceMouse
)

func (d Device) String() string {
	switch d {
	case DeviceKeyboard:
		return "keyboard"
	case DeviceMouse:
		return "mouse"
	default:
		return "unknown"
	}
}

func ParseDevice(s string) (Device, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keyboard", "kbd", "":
		return DeviceKeyboard, nil
	case "mouse":
		return DeviceMouse, nil
	default:
		return 0, fmt.Errorf("unknown input device %q", s)
	}
}

// Key identifies a keyboard key or a mouse axis.
type Key uint16

const (
	KeyNone Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyC
	KeyLeftShift
	KeyP
	KeyPause
	KeyF12
	KeyY
	KeyG
	KeyEscape

	MouseAxisX
	MouseAxisY
)

var keyNames = map[Key]string{
	KeyW:         "W",
	KeyA:         "A",
	KeyS:         "S",
	KeyD:         "D",
	KeySpace:     "Space",
	KeyC:         "C",
	KeyLeftShift: "LeftShift",
	KeyP:         "P",
	KeyPause:     "Pause",
	KeyF12:       "F12",
	KeyY:         "Y",
	KeyG:         "G",
	KeyEscape:    "Escape",
	MouseAxisX:   "MouseX",
	MouseAxisY:   "MouseY",
}

var keysByName = func() map[string]Key {
	out := make(map[string]Key, len(keyNames))
	for k, name := range keyNames {
		out[strings.ToLower(name)] = k
	}
	return out
}()

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// IsMouseAxis reports whether k is a relative mouse axis rather than a button.
func (k Key) IsMouseAxis() bool {
	return k == MouseAxisX || k == MouseAxisY
}

// ParseKey resolves a key name case-insensitively ("w", "LeftShift", "MouseX").
func ParseKey(s string) (Key, error) {
	k, ok := keysByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return KeyNone, fmt.Errorf("unknown key %q", s)
	}
	return k, nil
}
