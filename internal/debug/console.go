package debug

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"cogentcore.org/core/math32"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/Versifine/flycam/internal/host"
	"github.com/Versifine/flycam/internal/input"
	"github.com/Versifine/flycam/internal/pawn"
	"github.com/Versifine/flycam/internal/scene"
)

const (
	defaultTickInterval = 50 * time.Millisecond
	defaultMovePulse    = 180 * time.Millisecond
	defaultYawStep      = float32(5.0)
	defaultPitchStep    = float32(5.0)
)

// Host is the part of the host loop the console drives.
type Host interface {
	Send(ev input.Event) bool
	Do(fn func(*scene.Module)) bool
	Snapshot() host.Snapshot
}

type Options struct {
	MovePulse time.Duration
	YawStep   float32
	PitchStep float32
	// Quit is called by the :quit command.
	Quit func()
}

// Console drives the pawn from a raw-mode terminal. Terminals only report key
// presses, so movement keys are held for a short pulse and then released.
type Console struct {
	host         Host
	in           io.Reader
	out          io.Writer
	term         *termenv.Output
	tickInterval time.Duration
	movePulse    time.Duration
	yawStep      float32
	pitchStep    float32
	quit         func()

	// outMu serializes terminal writes across goroutines.
	outMu sync.Mutex

	mu          sync.Mutex
	pulses      map[input.Key]time.Time
	speedHeld   bool
	commandMode bool
	commandBuf  []rune
	statusWidth int
}

func NewConsole(h Host, opts Options) *Console {
	c := &Console{
		host:         h,
		in:           os.Stdin,
		out:          os.Stdout,
		tickInterval: defaultTickInterval,
		movePulse:    defaultMovePulse,
		yawStep:      defaultYawStep,
		pitchStep:    defaultPitchStep,
		quit:         opts.Quit,
		pulses:       make(map[input.Key]time.Time),
	}
	if opts.MovePulse > 0 {
		c.movePulse = opts.MovePulse
	}
	if opts.YawStep > 0 {
		c.yawStep = opts.YawStep
	}
	if opts.PitchStep > 0 {
		c.pitchStep = opts.PitchStep
	}
	c.term = termenv.NewOutput(c.out)
	return c
}

// SetIO replaces the terminal streams. Raw mode is only enabled when in is a
// terminal.
func (c *Console) SetIO(in io.Reader, out io.Writer) {
	c.in = in
	c.out = out
	c.term = termenv.NewOutput(out)
}

func (c *Console) Start(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("console is nil")
	}
	if c.host == nil {
		return fmt.Errorf("console host is nil")
	}

	if f, ok := c.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("set terminal raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(fd, oldState)
			c.printf("\r\n")
		}()
	}

	c.printf("[debug] console started (W/A/S/D/Space/C pulse, arrows, ] run, P Y G O, X, :)\r\n")
	c.renderStatusLine()

	go c.tickLoop(ctx)

	keys, readErr := c.readKeys(ctx)
	src := keyReader(keys)
	for {
		select {
		case <-ctx.Done():
			return nil
		case b, ok := <-keys:
			if !ok {
				if err := <-readErr; err != io.EOF {
					return fmt.Errorf("read console input: %w", err)
				}
				return nil
			}
			c.handleKey(src, b)
		}
	}
}

// readKeys forwards input bytes until a read fails. A read blocked in the
// terminal cannot be interrupted, so Start stops listening instead of waiting.
func (c *Console) readKeys(ctx context.Context) (<-chan byte, <-chan error) {
	keys := make(chan byte, 16)
	readErr := make(chan error, 1)
	go func() {
		defer close(keys)
		reader := bufio.NewReader(c.in)
		for {
			b, err := reader.ReadByte()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case keys <- b:
			case <-ctx.Done():
				readErr <- ctx.Err()
				return
			}
		}
	}()
	return keys, readErr
}

// keyReader reads the rest of an escape sequence from the key stream.
type keyReader <-chan byte

func (k keyReader) ReadByte() (byte, error) {
	b, ok := <-k
	if !ok {
		return 0, io.EOF
	}
	return b, nil
}

func (c *Console) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.releaseAll()
			return
		case now := <-ticker.C:
			c.releaseExpired(now)
			c.renderStatusLine()
		}
	}
}

func (c *Console) handleKey(reader io.ByteReader, b byte) {
	if c.isCommandMode() {
		c.handleCommandByte(b)
		return
	}

	switch b {
	case ':':
		c.enterCommandMode()
		return
	case 'w', 'W':
		c.pulse(input.KeyW, input.KeyS)
	case 's', 'S':
		c.pulse(input.KeyS, input.KeyW)
	case 'a', 'A':
		c.pulse(input.KeyA, input.KeyD)
	case 'd', 'D':
		c.pulse(input.KeyD, input.KeyA)
	case ' ':
		c.pulse(input.KeySpace, input.KeyC)
	case 'c', 'C':
		c.pulse(input.KeyC, input.KeySpace)
	case ']':
		c.toggleSpeed()
	case 'p', 'P':
		c.tap(input.KeyP)
	case 'y', 'Y':
		c.tap(input.KeyY)
	case 'g', 'G':
		c.tap(input.KeyG)
	case 'o', 'O':
		c.tap(input.KeyF12)
	case 'x', 'X':
		c.releaseAll()
	case 3: // Ctrl-C does not raise SIGINT in raw mode
		if c.quit != nil {
			c.quit()
		}
		return
	case 27: // ESC + arrow sequence
		next, err := reader.ReadByte()
		if err != nil || next != '[' {
			return
		}
		arrow, err := reader.ReadByte()
		if err != nil {
			return
		}
		switch arrow {
		case 'D': // left
			c.turn(-c.yawStep, 0)
		case 'C': // right
			c.turn(c.yawStep, 0)
		case 'A': // up
			c.turn(0, -c.pitchStep)
		case 'B': // down
			c.turn(0, c.pitchStep)
		}
	}
	c.renderStatusLine()
}

func (c *Console) enterCommandMode() {
	c.mu.Lock()
	c.commandMode = true
	c.commandBuf = c.commandBuf[:0]
	c.mu.Unlock()
	c.printf("\r\n:")
}

func (c *Console) handleCommandByte(b byte) {
	switch b {
	case 13, 10: // Enter
		c.mu.Lock()
		cmd := strings.TrimSpace(string(c.commandBuf))
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()

		c.printf("\r\n")
		if cmd != "" {
			c.executeCommand(cmd)
		}
		c.renderStatusLine()
		return
	case 27: // ESC cancel command mode
		c.mu.Lock()
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()
		c.printf("\r\n[debug] command cancelled\r\n")
		c.renderStatusLine()
		return
	case 8, 127: // Backspace
		c.mu.Lock()
		if len(c.commandBuf) > 0 {
			c.commandBuf = c.commandBuf[:len(c.commandBuf)-1]
		}
		buf := string(c.commandBuf)
		c.mu.Unlock()
		c.printf("\r:%s ", buf)
		c.printf("\r:%s", buf)
		return
	default:
		if b < 32 || b > 126 {
			return
		}
		c.mu.Lock()
		c.commandBuf = append(c.commandBuf, rune(b))
		buf := string(c.commandBuf)
		c.mu.Unlock()
		c.printf("\r:%s", buf)
	}
}

func (c *Console) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "help":
		c.printHelp()
	case "state":
		c.printf("[debug] %s\r\n", c.host.Snapshot().String())
	case "tp":
		pos, ok := parseVec3(parts)
		if !ok {
			c.printf("[debug] usage: :tp <x> <y> <z>\r\n")
			return
		}
		c.host.Do(func(m *scene.Module) { m.Player.Teleport(pos) })
		c.printf("[debug] tp to (%.3f, %.3f, %.3f)\r\n", pos.X, pos.Y, pos.Z)
	case "look":
		target, ok := parseVec3(parts)
		if !ok {
			c.printf("[debug] usage: :look <x> <y> <z>\r\n")
			return
		}
		c.host.Do(func(m *scene.Module) {
			from := m.Player.ViewPosition()
			m.Player.Controller().SetOrientation(lookAt(from, target))
		})
		c.printf("[debug] look at (%.3f, %.3f, %.3f)\r\n", target.X, target.Y, target.Z)
	case "res":
		// printed from the loop goroutine once the registry is read
		c.host.Do(func(m *scene.Module) {
			c.printf("[debug] resources: %s\r\n", strings.Join(m.Resources.Registry.Names(), ", "))
		})
	case "quit":
		if c.quit != nil {
			c.quit()
		}
	default:
		c.printf("[debug] unknown command: %s\r\n", parts[0])
	}
}

func parseVec3(parts []string) (math32.Vector3, bool) {
	if len(parts) != 4 {
		return math32.Vector3{}, false
	}
	var v [3]float32
	for i := range v {
		f, err := strconv.ParseFloat(parts[i+1], 32)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return math32.Vector3{}, false
		}
		v[i] = float32(f)
	}
	return math32.Vec3(v[0], v[1], v[2]), true
}

// lookAt returns the view angles that face target from from. Positive pitch
// looks down.
func lookAt(from, target math32.Vector3) pawn.Orientation {
	d := target.Sub(from)
	dx, dy, dz := float64(d.X), float64(d.Y), float64(d.Z)
	yaw := math.Atan2(dx, dz) * 180.0 / math.Pi
	horizontal := math.Sqrt(dx*dx + dz*dz)
	pitch := -math.Atan2(dy, horizontal) * 180.0 / math.Pi
	return pawn.Orientation{Yaw: float32(yaw), Pitch: float32(pitch)}
}

func (c *Console) printHelp() {
	c.printf("[debug] keys:\r\n")
	c.printf("  W/S/A/D: pulse movement (~%dms)\r\n", c.movePulse.Milliseconds())
	c.printf("  Space/C: pulse up/down\r\n")
	c.printf("  ]: toggle run\r\n")
	c.printf("  Arrow Left/Right: yaw -/+%.0f\r\n", c.yawStep)
	c.printf("  Arrow Up/Down: pitch -/+%.0f\r\n", c.pitchStep)
	c.printf("  P: pause  Y: wireframe  G: debug draw  O: screenshot\r\n")
	c.printf("  X: release all keys\r\n")
	c.printf("  : enter command mode\r\n")
	c.printf("[debug] commands:\r\n")
	c.printf("  :tp <x> <y> <z>\r\n")
	c.printf("  :look <x> <y> <z>\r\n")
	c.printf("  :state\r\n")
	c.printf("  :res\r\n")
	c.printf("  :quit\r\n")
	c.printf("  :help\r\n")
}

func (c *Console) renderStatusLine() {
	c.mu.Lock()
	if c.commandMode {
		c.mu.Unlock()
		return
	}
	held := func(k input.Key) bool {
		_, ok := c.pulses[k]
		return ok
	}
	fwd := held(input.KeyW) || held(input.KeyS)
	side := held(input.KeyA) || held(input.KeyD)
	vert := held(input.KeySpace) || held(input.KeyC)
	width := c.statusWidth
	c.mu.Unlock()

	snap := c.host.Snapshot()
	plain := fmt.Sprintf(
		"[FWD:%s SIDE:%s VERT:%s RUN:%s | YAW:%.1f PIT:%.1f | X:%.2f Y:%.2f Z:%.2f | %s]",
		boolLabel(fwd), boolLabel(side), boolLabel(vert), boolLabel(snap.SpeedActive),
		snap.Yaw, snap.Pitch,
		snap.Position[0], snap.Position[1], snap.Position[2],
		stateLabel(snap),
	)

	padding := ""
	if width > len(plain) {
		padding = strings.Repeat(" ", width-len(plain))
	}
	style := c.term.String(plain)
	if snap.Paused {
		style = style.Foreground(c.term.Color("3"))
	} else if snap.SpeedActive {
		style = style.Foreground(c.term.Color("2")).Bold()
	}
	c.printf("\r%s%s", style.String(), padding)

	c.mu.Lock()
	if len(plain) > c.statusWidth {
		c.statusWidth = len(plain)
	}
	c.mu.Unlock()
}

func stateLabel(s host.Snapshot) string {
	if s.Paused {
		return "paused"
	}
	return fmt.Sprintf("frame %d", s.Frame)
}

// pulse holds key for one move pulse. The opposite key is released at once.
func (c *Console) pulse(key, opposite input.Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.pulses[opposite]; ok {
		delete(c.pulses, opposite)
		c.host.Send(input.KeyUpEvent(opposite))
	}
	if _, ok := c.pulses[key]; !ok {
		c.host.Send(input.KeyDownEvent(key))
	}
	c.pulses[key] = time.Now().Add(c.movePulse)
}

// releaseExpired lets go of every pulsed key whose pulse ended before now.
func (c *Console) releaseExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, until := range c.pulses {
		if !now.Before(until) {
			delete(c.pulses, key)
			c.host.Send(input.KeyUpEvent(key))
		}
	}
}

func (c *Console) tap(key input.Key) {
	c.host.Send(input.KeyDownEvent(key))
	c.host.Send(input.KeyUpEvent(key))
}

func (c *Console) turn(deltaYaw, deltaPitch float32) {
	c.host.Do(func(m *scene.Module) { m.Player.Controller().Turn(deltaYaw, deltaPitch) })
}

func (c *Console) toggleSpeed() {
	c.mu.Lock()
	c.speedHeld = !c.speedHeld
	enabled := c.speedHeld
	c.mu.Unlock()
	if enabled {
		c.host.Send(input.KeyDownEvent(input.KeyLeftShift))
	} else {
		c.host.Send(input.KeyUpEvent(input.KeyLeftShift))
	}
	slog.Debug("debug run toggled", "enabled", enabled)
}

func (c *Console) releaseAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.pulses {
		c.host.Send(input.KeyUpEvent(key))
	}
	clear(c.pulses)
	if c.speedHeld {
		c.speedHeld = false
		c.host.Send(input.KeyUpEvent(input.KeyLeftShift))
	}
}

func (c *Console) isCommandMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commandMode
}

func (c *Console) printf(format string, args ...any) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func boolLabel(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
