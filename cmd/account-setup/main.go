package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

type step int

const (
	stepEnteringName step = iota
	stepEnteringEmail
	stepEnteringPassword
	stepSubmitting
	stepComplete
)

type model struct {
	step         step
	apiBase      string
	name         string
	email        string
	password     string
	currentInput string
	userID       string
	message      string
	quitting     bool
}

type registerSuccessMsg struct{ userID string }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel(apiBase string) model {
	return model{step: stepEnteringName, apiBase: apiBase}
}

func (m model) Init() tea.Cmd {
	return nil
}

func registerAccount(apiBase, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		body, _ := json.Marshal(map[string]string{
			"name":     name,
			"email":    email,
			"password": password,
		})

		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Post(apiBase+"/api/auth/register", "application/json", bytes.NewReader(body))
		if err != nil {
			return errMsg{err}
		}
		defer resp.Body.Close()

		var payload struct {
			Message string `json:"message"`
			UserID  string `json:"userId"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return errMsg{fmt.Errorf("unexpected response: %w", err)}
		}
		if resp.StatusCode != http.StatusCreated {
			return errMsg{fmt.Errorf("%s", payload.Message)}
		}
		return registerSuccessMsg{userID: payload.UserID}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			switch m.step {
			case stepEnteringName:
				if m.currentInput == "" {
					return m, nil
				}
				m.name = m.currentInput
				m.currentInput = ""
				m.step = stepEnteringEmail
			case stepEnteringEmail:
				if m.currentInput == "" {
					return m, nil
				}
				m.email = m.currentInput
				m.currentInput = ""
				m.step = stepEnteringPassword
			case stepEnteringPassword:
				if m.currentInput == "" {
					return m, nil
				}
				m.password = m.currentInput
				m.currentInput = ""
				m.step = stepSubmitting
				return m, registerAccount(m.apiBase, m.name, m.email, m.password)
			case stepComplete:
				m.quitting = true
				return m, tea.Quit
			}
		case tea.KeyBackspace:
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}
		case tea.KeyRunes, tea.KeySpace:
			m.currentInput += string(msg.Runes)
		}

	case registerSuccessMsg:
		m.userID = msg.userID
		m.message = ""
		m.step = stepComplete

	case errMsg:
		m.message = msg.Error()
		m.currentInput = ""
		m.step = stepEnteringName
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	s := titleStyle.Render("Energy Dashboard — Account Setup") + "\n\n"

	if m.message != "" {
		s += errorStyle.Render("Error: "+m.message) + "\n\n"
	}

	switch m.step {
	case stepEnteringName:
		s += promptStyle.Render("Name: ") + inputStyle.Render(m.currentInput+"▌")
	case stepEnteringEmail:
		s += promptStyle.Render("Email: ") + inputStyle.Render(m.currentInput+"▌")
	case stepEnteringPassword:
		masked := ""
		for range m.currentInput {
			masked += "*"
		}
		s += promptStyle.Render("Password: ") + inputStyle.Render(masked+"▌")
	case stepSubmitting:
		s += "Creating account..."
	case stepComplete:
		s += successStyle.Render("Account created!") + "\n"
		s += fmt.Sprintf("User ID: %s\n", m.userID)
		s += fmt.Sprintf("A default device \"%s's Primary Solar System\" was provisioned.\n", m.name)
		s += "\nPress Enter to exit."
	}

	s += "\n\n(esc to quit)\n"
	return s
}

func main() {
	apiBase := os.Getenv("DASHBOARD_API")
	if apiBase == "" {
		apiBase = "http://localhost:3000"
	}

	p := tea.NewProgram(initialModel(apiBase))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
