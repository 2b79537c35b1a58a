package input

import (
	"fmt"
	"log"

	"git.lost.host/meutraa/lanes/internal/clock"
	"git.lost.host/meutraa/lanes/internal/game"
	"github.com/eiannone/keyboard"
)

// Keymap assigns one key per lane, left to right.
type Keymap []rune

func NewKeymap(keys string, lanes int) (Keymap, error) {
	km := Keymap(keys)
	if len(km) < lanes {
		return nil, fmt.Errorf("%d keys for %d lanes", len(km), lanes)
	}
	seen := map[rune]bool{}
	for _, r := range km[:lanes] {
		if seen[r] {
			return nil, fmt.Errorf("key %q bound twice", r)
		}
		seen[r] = true
	}
	return km[:lanes], nil
}

// Lane returns the lane bound to r, or -1.
func (km Keymap) Lane(r rune) int {
	for i, c := range km {
		if r == c {
			return i
		}
	}
	return -1
}

// Listener turns pending key events into lane presses.
type Listener struct {
	keys   <-chan keyboard.KeyEvent
	keymap Keymap
	clock  clock.Clock
}

func Open(keymap Keymap, clk clock.Clock) (*Listener, error) {
	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	return &Listener{keys: keys, keymap: keymap, clock: clk}, nil
}

func (l *Listener) Close() {
	if err := keyboard.Close(); nil != err {
		log.Println("unable to close keyboard", err)
	}
}

// Poll drains the events that arrived since the last call without blocking.
// Each press is stamped with the clock at the time it is drained. quit is
// set when escape or ctrl-c was pressed.
func (l *Listener) Poll() (presses []game.Input, quit bool) {
	for i, n := 0, len(l.keys); i < n; i++ {
		ev := <-l.keys
		if nil != ev.Err {
			log.Println("keyboard error", ev.Err)
			continue
		}
		if ev.Key == keyboard.KeyEsc || ev.Key == keyboard.KeyCtrlC {
			return presses, true
		}
		r := ev.Rune
		if ev.Key == keyboard.KeySpace {
			r = ' '
		}
		if lane := l.keymap.Lane(r); lane >= 0 {
			presses = append(presses, game.Input{Lane: lane, Time: l.clock.Now()})
		}
	}
	return presses, false
}

// Wait discards keys still queued from play and then blocks for the next
// one. It reports whether that key was a quit key.
func (l *Listener) Wait() bool {
	for i, n := 0, len(l.keys); i < n; i++ {
		<-l.keys
	}
	ev, ok := <-l.keys
	if !ok {
		return true
	}
	return ev.Key == keyboard.KeyEsc || ev.Key == keyboard.KeyCtrlC
}
