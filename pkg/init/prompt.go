package init

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// InteractivePrompt handles interactive user input
type InteractivePrompt struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewInteractivePrompt creates a new InteractivePrompt reading from in and writing prompts to out
func NewInteractivePrompt(in io.Reader, out io.Writer) *InteractivePrompt {
	return &InteractivePrompt{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// ConfirmOverwrite prompts the user to confirm overwriting an existing file
func (p *InteractivePrompt) ConfirmOverwrite(path string) bool {
	fmt.Fprintf(p.out, "Configuration file %s already exists.\n", path)
	fmt.Fprint(p.out, "Do you want to overwrite it? (y/N): ")

	if p.scanner.Scan() {
		response := strings.ToLower(strings.TrimSpace(p.scanner.Text()))
		return response == "y" || response == "yes"
	}

	return false
}

// GetStringInput prompts for a string input with an optional default value
func (p *InteractivePrompt) GetStringInput(prompt string, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprintf(p.out, "%s (default: %s): ", prompt, defaultValue)
	} else {
		fmt.Fprintf(p.out, "%s: ", prompt)
	}

	if p.scanner.Scan() {
		input := strings.TrimSpace(p.scanner.Text())
		if input == "" && defaultValue != "" {
			return defaultValue
		}
		return input
	}

	return defaultValue
}
