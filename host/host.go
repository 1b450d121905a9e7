// Package host connects a chip8.Machine to a window or terminal, a
// keyboard, and a speaker. It owns the run loop that alternates pumping
// input, stepping the CPU, ticking the timers, and publishing display
// frames to a renderer.
package host

import (
	"log"
	"time"

	"github.com/rithulk/chippy/chip8"
)

// A Frame is a snapshot of the machine's display, row-major.
type Frame [chip8.DisplayWidth * chip8.DisplayHeight]byte

// keyEvent is one logical keypad transition delivered by a renderer.
type keyEvent struct {
	key     byte
	pressed bool
}

// view carries frames from the machine loop to the renderer and key
// transitions back. The renderer never touches the Machine directly;
// the machine loop goroutine is its only mutator.
type view struct {
	frames chan Frame
	keys   chan keyEvent
}

func newView() *view {
	return &view{
		frames: make(chan Frame, 1),
		keys:   make(chan keyEvent, 64),
	}
}

// Runner executes machines against a renderer and a ToneSink.
type Runner struct {
	gui   bool
	watch bool
	hz    int
	tone  ToneSink

	reset     chan *chip8.Machine
	resetDone chan bool
}

// NewRunner returns a Runner that drives hz instruction steps per second
// and renders to a window, or to the terminal if enableGUI is false.
func NewRunner(enableGUI, watchMode bool, hz int, tone ToneSink) *Runner {
	if hz < 60 {
		hz = 60
	}
	return &Runner{
		gui:       enableGUI,
		watch:     watchMode,
		hz:        hz,
		tone:      tone,
		reset:     make(chan *chip8.Machine),
		resetDone: make(chan bool),
	}
}

// Reset replaces the running machine with m.
// It may only be called while Run is executing in watch mode.
func (r *Runner) Reset(m *chip8.Machine) {
	if !r.watch {
		panic("Reset called while not running in watch mode")
	}
	r.reset <- m
	<-r.resetDone
}

// Run drives m until the renderer exits or, outside watch mode, the
// machine faults. In watch mode a faulted machine stays on screen until
// Reset delivers a replacement.
func (r *Runner) Run(m *chip8.Machine) error {
	var (
		v    = newView()
		exit = make(chan bool)
		halt = make(chan bool)
	)
	go func() {
		var (
			stepErr = make(chan error)
			running = true
		)
		go func() { stepErr <- r.loop(m, v, halt) }()
		for {
			select {
			case newM := <-r.reset:
				if running {
					close(halt)
					<-stepErr
				}
				m, halt = newM, make(chan bool)
				go func() { stepErr <- r.loop(m, v, halt) }()
				running = true
				r.resetDone <- true
			case err := <-stepErr:
				running = false
				if err != nil {
					log.Printf("chip8: %v", err)
				}
				if !r.watch {
					close(exit)
					return
				}
			}
		}
	}()
	if r.gui {
		return runGUI(v, exit)
	}
	return runTerm(v, exit)
}

// loop runs m at 60 frames per second until it faults or halt is closed.
// Each frame applies pending key transitions, executes the frame's share
// of instruction steps, ticks the timers, drives the tone sink, and
// offers the renderer a display snapshot.
func (r *Runner) loop(m *chip8.Machine, v *view, halt <-chan bool) error {
	t := time.NewTicker(time.Second / 60)
	defer t.Stop()
	defer r.tone.Stop()

	steps := r.hz / 60
	tone := false
	for {
		select {
		case <-halt:
			return nil
		case <-t.C:
		}

	pump:
		for {
			select {
			case e := <-v.keys:
				m.SetKey(e.key, e.pressed)
			default:
				break pump
			}
		}

		for i := 0; i < steps; i++ {
			if err := m.Step(log.Printf); err != nil {
				return err
			}
			if m.Mode == chip8.AwaitingKey {
				// Blocked; no key can arrive until next frame.
				break
			}
		}

		m.TickTimers()
		if on := m.Tone(); on != tone {
			tone = on
			if on {
				r.tone.Start()
			} else {
				r.tone.Stop()
			}
		}

		select {
		case v.frames <- Frame(m.Display):
		default:
			// Renderer is busy; drop the frame.
		}
	}
}
