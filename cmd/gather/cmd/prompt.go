package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNoInput = errors.New("no input")

// readLine prints prompt and reads one trimmed line from the command's input.
func (a *app) readLine(cmd *cobra.Command, prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(cmd.OutOrStdout(), prompt)
	}
	if a.in == nil {
		a.in = bufio.NewReader(cmd.InOrStdin())
	}

	text, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && text != "") {
		if errors.Is(err, io.EOF) {
			return "", errNoInput
		}
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// readPassword reads without echo when attached to a terminal and falls back
// to a plain line otherwise.
func (a *app) readPassword(cmd *cobra.Command, prompt string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.OutOrStdout(), prompt)
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}
	return a.readLine(cmd, prompt)
}

// valueOrPrompt returns value, or asks for it when empty.
func (a *app) valueOrPrompt(cmd *cobra.Command, value, prompt string) (string, error) {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value), nil
	}
	return a.readLine(cmd, prompt)
}
