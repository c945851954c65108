// Command via is a small modal terminal text editor built on the
// piece-table core in internal/editor. It renders the current page of
// the document, tracks a normal/insert mode split like classic vi, and
// accepts ":"-prefixed ex-commands for saving and quitting.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/andrewkdinh/via/internal/command"
	"github.com/andrewkdinh/via/internal/editor"
	"github.com/andrewkdinh/via/internal/terminal"
)

type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeCommand
)

type app struct {
	ed        *editor.Editor
	term      *terminal.Terminal
	corrector *command.Corrector
	mode      mode
	cmdline   string
	status    string
	quit      bool
}

func main() {
	var path string
	if len(os.Args) > 1 {
		path = os.Args[len(os.Args)-1]
	}

	ed, err := editor.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "via: %v\n", err)
		os.Exit(1)
	}
	defer ed.Close()

	term, err := terminal.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "via: %v\n", err)
		os.Exit(1)
	}
	defer term.Restore()

	a := &app{ed: ed, term: term, corrector: command.NewCorrector()}
	if err := a.run(); err != nil {
		term.Restore()
		fmt.Fprintf(os.Stderr, "via: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) run() error {
	a.render()
	for !a.quit {
		key, err := a.term.ReadKey()
		if err != nil {
			return err
		}
		if err := a.handleKey(key); err != nil {
			a.status = err.Error()
		}
		a.render()
	}
	return nil
}

func (a *app) handleKey(key terminal.Key) error {
	switch a.mode {
	case modeNormal:
		return a.handleNormal(key)
	case modeInsert:
		return a.handleInsert(key)
	case modeCommand:
		return a.handleCommand(key)
	}
	return nil
}

func (a *app) handleNormal(key terminal.Key) error {
	if key.Type == terminal.KeyRune {
		switch key.Rune {
		case 'i':
			a.mode = modeInsert
			return nil
		case ':':
			a.mode = modeCommand
			a.cmdline = ""
			return nil
		case 'h':
			a.ed.Left(1)
			return nil
		case 'l':
			a.ed.Right(1)
			return nil
		case 'k':
			a.ed.Up(1)
			return nil
		case 'j':
			return a.ed.Down(1)
		case 'x':
			return a.ed.DeleteText(a.ed.Row(), a.ed.Col()+1)
		}
		return nil
	}
	switch key.Type {
	case terminal.KeyUp:
		a.ed.Up(1)
	case terminal.KeyDown:
		return a.ed.Down(1)
	case terminal.KeyLeft:
		a.ed.Left(1)
	case terminal.KeyRight:
		a.ed.Right(1)
	}
	return nil
}

func (a *app) handleInsert(key terminal.Key) error {
	switch key.Type {
	case terminal.KeyEscape:
		a.mode = modeNormal
		return nil
	case terminal.KeyEnter:
		return a.ed.AddText("\n")
	case terminal.KeyBackspace:
		row, col := a.ed.Row(), a.ed.Col()
		if col > 1 {
			return a.ed.DeleteText(row, col-1)
		}
		if row > 1 {
			return a.ed.DeleteText(row-1, a.ed.LineLen(row-1)+1)
		}
		return nil
	case terminal.KeyRune:
		return a.ed.AddText(string(key.Rune))
	}
	return nil
}

func (a *app) handleCommand(key terminal.Key) error {
	switch key.Type {
	case terminal.KeyEscape:
		a.mode = modeNormal
		a.cmdline = ""
		return nil
	case terminal.KeyBackspace:
		if len(a.cmdline) > 0 {
			a.cmdline = a.cmdline[:len(a.cmdline)-1]
		}
		return nil
	case terminal.KeyEnter:
		a.mode = modeNormal
		return a.runCommand(a.cmdline)
	case terminal.KeyRune:
		a.cmdline += string(key.Rune)
	}
	return nil
}

func (a *app) runCommand(line string) error {
	cmd := command.Parse(line, a.corrector)
	switch cmd.Kind {
	case command.KindWrite:
		return a.ed.Save(cmd.Arg)
	case command.KindQuit:
		if !a.ed.TextMatches() {
			a.status = "unsaved changes (use :q! to discard)"
			return nil
		}
		a.quit = true
		return nil
	case command.KindForceQuit:
		a.quit = true
		return nil
	case command.KindWriteQuit, command.KindForceWriteQuit:
		if err := a.ed.Save(cmd.Arg); err != nil {
			return err
		}
		a.quit = true
		return nil
	default:
		a.status = fmt.Sprintf("unknown command: %s", line)
	}
	return nil
}

func (a *app) render() {
	var b strings.Builder
	b.WriteString("\x1b[H\x1b[2J")

	height := a.term.Height() - 1
	if height < 1 {
		height = 1
	}
	first := a.ed.Row() - height/2
	if first < 1 {
		first = 1
	}
	last := first + height
	if last > a.ed.NumLines()+1 {
		last = a.ed.NumLines() + 1
	}
	if last > first {
		lines, _ := a.ed.TextLines(first, last)
		b.Write(lines)
	}

	b.WriteString("\r\n")
	switch a.mode {
	case modeCommand:
		b.WriteString(":" + a.cmdline)
	case modeInsert:
		b.WriteString(fmt.Sprintf("-- INSERT -- %d,%d", a.ed.Row(), a.ed.Col()))
	default:
		if a.status != "" {
			b.WriteString(a.status)
		} else {
			b.WriteString(fmt.Sprintf("%s %d,%d", a.ed.FilePath(), a.ed.Row(), a.ed.Col()))
		}
	}
	os.Stdout.WriteString(b.String())
}
