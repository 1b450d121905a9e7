package host

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/rithulk/chippy/chip8"
)

// keypadRunes is the terminal version of the 1234/QWER/ASDF/ZXCV layout.
var keypadRunes = map[rune]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Terminals report key presses but not releases, so each press holds the
// key down for this long (refreshed by auto-repeat while physically held).
const termKeyHold = 100 * time.Millisecond

// runTerm renders frames to the terminal, two display rows per cell,
// until Escape or Ctrl-C is pressed or exit is closed.
func runTerm(v *view, exit <-chan bool) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	s.HideCursor()

	events := make(chan tcell.Event)
	go func() {
		for {
			e := s.PollEvent()
			if e == nil {
				return
			}
			events <- e
		}
	}()

	var held [16]time.Time
	for {
		select {
		case <-exit:
			return nil

		case f := <-v.frames:
			now := time.Now()
			for k, deadline := range held {
				if !deadline.IsZero() && now.After(deadline) {
					held[k] = time.Time{}
					v.keys <- keyEvent{byte(k), false}
				}
			}
			drawTerm(s, &f)

		case e := <-events:
			switch e := e.(type) {
			case *tcell.EventKey:
				if e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC {
					return nil
				}
				if k, ok := keypadRunes[unicode.ToLower(e.Rune())]; ok {
					if held[k].IsZero() {
						v.keys <- keyEvent{k, true}
					}
					held[k] = time.Now().Add(termKeyHold)
				}
			case *tcell.EventResize:
				s.Sync()
			}
		}
	}
}

func drawTerm(s tcell.Screen, f *Frame) {
	for y := 0; y < chip8.DisplayHeight; y += 2 {
		for x := 0; x < chip8.DisplayWidth; x++ {
			st := tcell.StyleDefault.
				Foreground(cellColor(f[y*chip8.DisplayWidth+x])).
				Background(cellColor(f[(y+1)*chip8.DisplayWidth+x]))
			s.SetContent(x, y/2, '▀', nil, st)
		}
	}
	s.Show()
}

func cellColor(px byte) tcell.Color {
	if px == 1 {
		return tcell.ColorWhite
	}
	return tcell.ColorBlack
}
