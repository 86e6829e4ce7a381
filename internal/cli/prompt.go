package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// tokenInput asks for the Notion token with echo off.
func tokenInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Notion integration token").
		Placeholder("secret_…").
		EchoMode(huh.EchoModePassword).
		Value(value).
		Validate(validateToken)
}

func validateToken(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("token cannot be empty")
	}
	return nil
}

// MaskedTokenPrompt reads the token through a single-field form. main uses
// it when stdin is a terminal.
func MaskedTokenPrompt() (string, error) {
	var token string
	err := huh.NewForm(huh.NewGroup(tokenInput(&token))).
		WithTheme(huh.ThemeCharm()).
		WithShowHelp(false).
		Run()
	return token, err
}
