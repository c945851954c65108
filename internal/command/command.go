// Package command parses the small set of ex-style commands this
// editor accepts from the ":"-prompt (:w, :q, :wq, :q!, :wq!, :x) and
// tolerates typos in them using a fuzzy model trained on that fixed
// vocabulary, the same approach the teacher used to spellcheck prose,
// pointed at command names instead of dictionary words.
package command

import (
	"strings"

	"github.com/sajari/fuzzy"
)

// Kind identifies which ex-command was parsed.
type Kind int

const (
	// KindUnknown is returned when even fuzzy correction found nothing
	// close enough to suggest.
	KindUnknown Kind = iota
	KindWrite
	KindQuit
	KindForceQuit
	KindWriteQuit
	KindForceWriteQuit
)

var vocabulary = []string{"w", "q", "wq", "q!", "wq!", "x"}

var kindByWord = map[string]Kind{
	"w":    KindWrite,
	"q":    KindQuit,
	"q!":   KindForceQuit,
	"wq":   KindWriteQuit,
	"wq!":  KindForceWriteQuit,
	"x":    KindWriteQuit,
}

// Command is a parsed ex-command: its Kind plus any trailing argument
// (e.g. the filename in ":w newname.txt").
type Command struct {
	Kind       Kind
	Arg        string
	Corrected  bool
	RawCommand string
}

// Corrector fuzzy-matches mistyped command names against the fixed
// vocabulary of ex-commands this editor supports.
type Corrector struct {
	model *fuzzy.Model
}

// NewCorrector builds a Corrector trained on the ex-command vocabulary.
func NewCorrector() *Corrector {
	model := fuzzy.NewModel()
	model.SetDepth(2)
	for _, word := range vocabulary {
		model.TrainWord(word)
	}
	return &Corrector{model: model}
}

// Correct returns the closest known command name to word, or "" if none
// is close enough to suggest.
func (c *Corrector) Correct(word string) string {
	return c.model.SpellCheck(strings.ToLower(word))
}

// Parse splits line (the text typed after ":") into a command word and
// an optional argument, then resolves the command word exactly or, if
// unrecognized, through the Corrector.
func Parse(line string, corrector *Corrector) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Kind: KindUnknown}
	}

	fields := strings.SplitN(line, " ", 2)
	word := fields[0]
	arg := ""
	if len(fields) == 2 {
		arg = strings.TrimSpace(fields[1])
	}

	if kind, ok := kindByWord[word]; ok {
		return Command{Kind: kind, Arg: arg, RawCommand: word}
	}

	if corrector == nil {
		return Command{Kind: KindUnknown, Arg: arg, RawCommand: word}
	}

	corrected := corrector.Correct(word)
	if kind, ok := kindByWord[corrected]; ok {
		return Command{Kind: kind, Arg: arg, Corrected: true, RawCommand: corrected}
	}
	return Command{Kind: KindUnknown, Arg: arg, RawCommand: word}
}
