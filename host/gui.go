package host

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/rithulk/chippy/chip8"
)

// pixelScale is the initial window size per display pixel.
const pixelScale = 10

var palette = [2]color.RGBA{
	{0x00, 0x00, 0x00, 0xff},
	{0xff, 0xff, 0xff, 0xff},
}

// keypadCodes maps physical keys to logical keypad indices using the
// conventional 1234/QWER/ASDF/ZXCV layout for the 4x4 hex pad.
var keypadCodes = map[key.Code]byte{
	key.Code1: 0x1, key.Code2: 0x2, key.Code3: 0x3, key.Code4: 0xC,
	key.CodeQ: 0x4, key.CodeW: 0x5, key.CodeE: 0x6, key.CodeR: 0xD,
	key.CodeA: 0x7, key.CodeS: 0x8, key.CodeD: 0x9, key.CodeF: 0xE,
	key.CodeZ: 0xA, key.CodeX: 0x0, key.CodeC: 0xB, key.CodeV: 0xF,
}

// runGUI opens a window and renders frames into it until the window is
// closed, Escape is pressed, or exit is closed.
func runGUI(v *view, exit <-chan bool) error {
	driver.Main(func(s screen.Screen) {
		w, err := s.NewWindow(&screen.NewWindowOptions{
			Title:  "chippy",
			Width:  chip8.DisplayWidth * pixelScale,
			Height: chip8.DisplayHeight * pixelScale,
		})
		if err != nil {
			log.Fatalf("gui: %v", err)
		}
		defer w.Release()

		texSize := image.Point{chip8.DisplayWidth, chip8.DisplayHeight}
		buf, err := s.NewBuffer(texSize)
		if err != nil {
			log.Fatalf("gui: %v", err)
		}
		defer buf.Release()
		tex, err := s.NewTexture(texSize)
		if err != nil {
			log.Fatalf("gui: %v", err)
		}
		defer tex.Release()

		go func() {
			for {
				select {
				case f := <-v.frames:
					w.Send(f)
				case <-exit:
					w.Send(lifecycle.Event{To: lifecycle.StageDead})
					return
				}
			}
		}()

		var sz size.Event
		for {
			switch e := w.NextEvent().(type) {
			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}

			case size.Event:
				sz = e
				if sz.WidthPx+sz.HeightPx == 0 {
					return
				}

			case key.Event:
				if e.Code == key.CodeEscape {
					return
				}
				k, ok := keypadCodes[e.Code]
				if !ok || e.Direction == key.DirNone {
					break
				}
				select {
				case v.keys <- keyEvent{k, e.Direction == key.DirPress}:
				default:
					// Machine loop is stalled; drop the event.
				}

			case Frame:
				drawFrame(buf.RGBA(), &e)
				tex.Upload(image.Point{}, buf, buf.Bounds())
				w.Scale(sz.Bounds(), tex, tex.Bounds(), draw.Src, nil)
				w.Publish()

			case paint.Event:

			case error:
				log.Print(e)
			}
		}
	})
	return nil
}

func drawFrame(m *image.RGBA, f *Frame) {
	for i, px := range f {
		m.SetRGBA(i%chip8.DisplayWidth, i/chip8.DisplayWidth, palette[px])
	}
}
