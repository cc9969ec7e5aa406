package cli

import (
	"strings"

	"github.com/pterm/pterm"
)

// Prompter collects line-oriented input from the operator. The pterm
// implementation is used in production; tests inject scripted responses.
type Prompter interface {
	// Input shows a free-text prompt. An empty answer yields defaultValue.
	Input(label, defaultValue string) (string, error)
	// Confirm shows a yes/no prompt and reports the answer.
	Confirm(label string) (bool, error)
}

type ptermPrompter struct{}

func (ptermPrompter) Input(label, defaultValue string) (string, error) {
	text, err := pterm.DefaultInteractiveTextInput.WithDefaultValue(defaultValue).Show(label)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return defaultValue, nil
	}
	return text, nil
}

func (ptermPrompter) Confirm(label string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.Show(label)
}

var defaultPrompter Prompter = ptermPrompter{}
