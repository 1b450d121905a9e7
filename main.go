// Command chippy executes CHIP-8 ROMs.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/rithulk/chippy/chip8"
	"github.com/rithulk/chippy/host"
)

func main() {
	log.SetPrefix("chippy: ")
	log.SetFlags(0)

	var (
		cliFlag   = flag.Bool("cli", false, "render to the terminal instead of a window")
		watchFlag = flag.Bool("watch", false, "reload the ROM whenever the file changes")
		hzFlag    = flag.Int("hz", 700, "instruction rate in steps per second")
		muteFlag  = flag.Bool("mute", false, "disable the buzzer")
		shiftFlag = flag.Bool("shiftquirk", false, "shift instructions read Vy (COSMAC VIP behavior)")
		loadFlag  = flag.Bool("loadquirk", false, "bulk register transfers increment I (COSMAC VIP behavior)")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <program.ch8>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}

	var cpuProfile io.Closer
	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		cpuProfile = f
	}

	quirks := chip8.Quirks{
		ShiftUsesVY:    *shiftFlag,
		IncrementIndex: *loadFlag,
	}
	err := run(flag.Arg(0), quirks, !*cliFlag, *watchFlag, *hzFlag, *muteFlag)

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}

	if err != nil {
		log.Fatal(err)
	}
}

func run(romFile string, quirks chip8.Quirks, guiEnabled, watchMode bool, hz int, mute bool) error {
	m, err := loadMachine(romFile, quirks)
	if err != nil {
		return err
	}

	var tone host.ToneSink = host.Muted{}
	if !mute {
		t, err := host.NewTone()
		if err != nil {
			log.Printf("audio unavailable: %v", err)
		} else {
			tone = t
		}
	}

	r := host.NewRunner(guiEnabled, watchMode, hz, tone)
	if watchMode {
		go watchROM(romFile, quirks, r)
	}
	return r.Run(m)
}

// loadMachine reads romFile into a fresh machine, all-or-nothing.
func loadMachine(romFile string, quirks chip8.Quirks) (*chip8.Machine, error) {
	rom, err := os.ReadFile(romFile)
	if err != nil {
		return nil, err
	}
	m := chip8.NewMachine()
	m.Quirks = quirks
	if err := m.Load(rom); err != nil {
		return nil, fmt.Errorf("loading %s: %v", romFile, err)
	}
	return m, nil
}
