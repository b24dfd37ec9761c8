package cmd

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli"
	"golang.org/x/oauth2"

	"github.com/kawunus/mslu-schedule-parser/gcal"
)

const ExecOpenCmd = "xdg-open"

var AuthorizeCmd = cli.Command{
	Name:    "auth",
	Aliases: []string{"authorize"},
	Usage:   "Authorizes the application against Google Calendar",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "credentials",
			Usage: "Path to the Google OAuth client credentials file",
		},
	},
	Action: Authorize,
}

// Authorize runs the interactive consent flow once: open the consent URL,
// collect the authorization code, exchange it and persist the token. After
// that the sync commands refresh the token on their own.
func Authorize(c *cli.Context) error {
	conf, err := gcal.OAuthConfig(credentialsPath(c))
	if err != nil {
		return err
	}

	authURL := conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	if err := exec.Command(ExecOpenCmd, authURL).Run(); err != nil {
		fmt.Printf("Go to this URL in your browser: %s\n", authURL)
	}

	getTok := getAccessToken("Paste authorization code: ")
	code, err := getTok()
	if err != nil {
		return fmt.Errorf("unable to read the authorization code: %w", err)
	}
	if code == "" {
		return fmt.Errorf("empty authorization code")
	}

	tok, err := conf.Exchange(context.Background(), code)
	if err != nil {
		return fmt.Errorf("unable to exchange the authorization code: %w", err)
	}
	if err := tokenStore(c, logger(c)).SaveToken(tok); err != nil {
		return err
	}
	info("Success, token stored, the sync commands are usable now")
	return nil
}

type codePrompt struct {
	prompt    string
	textInput *textinput.Model
}

func newCodePrompt(prompt string) codePrompt {
	ti := textinput.New()
	// Google authorization codes start with a "4/" prefix; keep the input
	// visible so a truncated paste is obvious before submitting.
	ti.Placeholder = "4/..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 72

	return codePrompt{
		prompt:    prompt,
		textInput: &ti,
	}
}

func (m codePrompt) Init() tea.Cmd {
	return textinput.Blink
}

func (m codePrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter, tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
	}

	*m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m codePrompt) View() string {
	return fmt.Sprintf(
		"%s\n\n%s",
		m.prompt,
		m.textInput.View(),
	) + "\n"
}

func getAccessToken(prompt string) func() (string, error) {
	return func() (string, error) {
		m := newCodePrompt(prompt)
		err := tea.NewProgram(m).Start()
		return m.textInput.Value(), err
	}
}
