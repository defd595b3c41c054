package console

import (
	"errors"
	"io"

	"github.com/chzyer/readline"

	"kgeyst.com/symptomchecker/pkg/common"
)

// ErrAborted the user pressed Ctrl+C or Ctrl+D instead of answering.
var ErrAborted = errors.New("input aborted")

// Prompter asks questions in the terminal. Secrets are read without echo.
type Prompter struct {
	rl *readline.Instance
}

func NewPrompter(rl *readline.Instance) *Prompter {
	return &Prompter{
		rl: rl,
	}
}

func (p *Prompter) Ask(prompt string) (string, error) {
	p.rl.SetPrompt(prompt)
	line, err := p.rl.Readline()
	if err != nil {
		return "", wrapReadlineError(err)
	}
	return common.CleanInput(line), nil
}

func (p *Prompter) AskSecret(prompt string) (string, error) {
	secret, err := p.rl.ReadPassword(prompt)
	if err != nil {
		return "", wrapReadlineError(err)
	}
	return common.CleanInput(string(secret)), nil
}

func wrapReadlineError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
		return ErrAborted
	}
	return err
}
