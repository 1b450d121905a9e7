package main

import (
	"log"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/rithulk/chippy/chip8"
	"github.com/rithulk/chippy/host"
)

// watchROM reloads romFile into a fresh machine whenever it changes on
// disk and hands it to r. Load failures are logged and leave the running
// machine in place. Editors often write in multiple events, so reloads
// are debounced.
func watchROM(romFile string, quirks chip8.Quirks, r *host.Runner) {
	romFile = filepath.Clean(romFile)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("watch: %v", err)
		return
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(romFile)); err != nil {
		log.Printf("watch: %v", err)
		return
	}

	var reload <-chan time.Time
	for {
		select {
		case <-reload:
			m, err := loadMachine(romFile, quirks)
			if err != nil {
				log.Printf("watch: %v", err)
				break
			}
			log.Printf("watch: reset %s", filepath.Base(romFile))
			r.Reset(m)
		case ev := <-watcher.Event:
			if filepath.Clean(ev.Name) == romFile && !ev.IsAttrib() {
				reload = time.After(100 * time.Millisecond)
			}
		case err := <-watcher.Error:
			log.Printf("watch: %v", err)
		}
	}
}
