// Package terminal manages the raw-mode, alternate-screen terminal that
// the editor renders into. It is a thin wrapper over golang.org/x/term,
// adapted from the teacher's own terminal handling, trimmed to the
// input this editor's modal key dispatch actually needs.
package terminal

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// Terminal owns raw mode, the alternate screen buffer, and the current
// terminal dimensions.
type Terminal struct {
	oldState *term.State
	width    int
	height   int
	sigwinch chan os.Signal
}

// Open switches the controlling terminal into raw mode and an alternate
// screen buffer, and starts listening for resize signals.
func Open() (*Terminal, error) {
	t := &Terminal{}

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return nil, err
	}
	t.oldState = oldState

	os.Stdout.WriteString("\x1b[?1049h") // alternate screen
	os.Stdout.WriteString("\x1b[?25l")   // hide cursor during setup

	t.width, t.height, err = term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		t.Restore()
		return nil, err
	}

	t.sigwinch = make(chan os.Signal, 1)
	signal.Notify(t.sigwinch, syscall.SIGWINCH)

	return t, nil
}

// Resize re-queries the terminal's dimensions and reports whether they
// changed.
func (t *Terminal) Resize() bool {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return false
	}
	changed := w != t.width || h != t.height
	t.width, t.height = w, h
	return changed
}

// Width returns the last-queried terminal width.
func (t *Terminal) Width() int { return t.width }

// Height returns the last-queried terminal height.
func (t *Terminal) Height() int { return t.height }

// SigwinchChan returns the channel that receives SIGWINCH notifications.
func (t *Terminal) SigwinchChan() <-chan os.Signal { return t.sigwinch }

// Restore leaves the alternate screen, shows the cursor, and returns
// the terminal to its original mode.
func (t *Terminal) Restore() {
	os.Stdout.WriteString("\x1b[?25h")   // show cursor
	os.Stdout.WriteString("\x1b[?1049l") // leave alternate screen
	if t.oldState != nil {
		term.Restore(int(os.Stdin.Fd()), t.oldState)
	}
	if t.sigwinch != nil {
		signal.Stop(t.sigwinch)
	}
}

// Key identifies one input event read from the terminal.
type Key struct {
	Rune rune
	Type KeyType
}

// KeyType classifies a Key beyond its rune value.
type KeyType int

const (
	KeyRune KeyType = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyUnknown
)

// ReadKey blocks for the next keypress on stdin.
func (t *Terminal) ReadKey() (Key, error) {
	buf := make([]byte, 8)
	n, err := os.Stdin.Read(buf)
	if err != nil {
		return Key{}, err
	}
	return parseKey(buf[:n]), nil
}

func parseKey(buf []byte) Key {
	if len(buf) == 0 {
		return Key{Type: KeyUnknown}
	}
	if len(buf) == 1 {
		switch b := buf[0]; {
		case b == 27:
			return Key{Type: KeyEscape}
		case b == 13 || b == 10:
			return Key{Type: KeyEnter}
		case b == 127 || b == 8:
			return Key{Type: KeyBackspace}
		case b >= 32 && b < 127:
			return Key{Type: KeyRune, Rune: rune(b)}
		default:
			return Key{Type: KeyUnknown}
		}
	}
	if buf[0] == 27 && len(buf) >= 3 && buf[1] == '[' {
		switch buf[2] {
		case 'A':
			return Key{Type: KeyUp}
		case 'B':
			return Key{Type: KeyDown}
		case 'C':
			return Key{Type: KeyRight}
		case 'D':
			return Key{Type: KeyLeft}
		}
	}
	r := decodeUTF8(buf)
	if r >= 32 {
		return Key{Type: KeyRune, Rune: r}
	}
	return Key{Type: KeyUnknown}
}

func decodeUTF8(buf []byte) rune {
	if len(buf) == 0 {
		return 0
	}
	b := buf[0]
	switch {
	case b < 0x80:
		return rune(b)
	case b < 0xC0:
		return 0xFFFD
	case b < 0xE0 && len(buf) >= 2:
		return rune(b&0x1F)<<6 | rune(buf[1]&0x3F)
	case b < 0xF0 && len(buf) >= 3:
		return rune(b&0x0F)<<12 | rune(buf[1]&0x3F)<<6 | rune(buf[2]&0x3F)
	case b < 0xF8 && len(buf) >= 4:
		return rune(b&0x07)<<18 | rune(buf[1]&0x3F)<<12 | rune(buf[2]&0x3F)<<6 | rune(buf[3]&0x3F)
	}
	return 0xFFFD
}
