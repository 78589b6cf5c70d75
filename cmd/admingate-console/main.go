// Command admingate-console is a terminal front end for an admingate-guarded
// admin console. It drives the full session lifecycle against a real
// Identity Service: login form, durable session under ~/.admingate (a
// restart stays logged in), guarded navigation between console pages, and
// logout.
//
// Run:
//
//	ADMINGATE_API_URL=https://console.example.com/api go run ./cmd/admingate-console
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	admingate "github.com/kovrae/admingate"
	"github.com/kovrae/admingate/guard"
	"github.com/kovrae/admingate/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// sessionDir returns ~/.admingate.
func sessionDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".admingate"), nil
}

func run() error {
	apiURL := os.Getenv("ADMINGATE_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:9090"
	}

	dir, err := sessionDir()
	if err != nil {
		return err
	}
	backend, err := storage.NewFile(dir)
	if err != nil {
		return fmt.Errorf("open session dir: %w", err)
	}

	cfg := admingate.DefaultConfig()
	cfg.Identity.BaseURL = apiURL

	engine, err := admingate.New().
		WithConfig(cfg).
		WithStorage(backend).
		Build()
	if err != nil {
		return err
	}

	p := tea.NewProgram(newApp(engine), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

/* ---------- styles ---------- */

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ade80"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
	badgeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
)

/* ---------- messages ---------- */

// loginDoneMsg carries the result of a credential exchange.
type loginDoneMsg struct {
	err error
}

// revalidatedMsg carries the result of a profile revalidation. A nil
// profile with a previously held token means the session self-healed out.
type revalidatedMsg struct {
	loggedIn bool
}

type loggedOutMsg struct{}

/* ---------- model ---------- */

type view int

const (
	viewLogin view = iota
	viewBrowser
)

type app struct {
	engine *admingate.Engine

	view    view
	path    string
	pages   []string
	busy    bool
	loginFm loginForm
	status  string
}

type loginForm struct {
	username string
	password string
	// 0 = username, 1 = password
	focus int
}

func newApp(engine *admingate.Engine) app {
	a := app{
		engine: engine,
		pages:  consolePages(engine),
	}
	if engine.IsLoggedIn() {
		a.view = viewBrowser
		a.path = engine.Routes().AdminHomePath()
		a.busy = true
	}
	return a
}

// consolePages flattens the route table into the nav menu: login page
// excluded, admin home first.
func consolePages(engine *admingate.Engine) []string {
	t := engine.Routes()
	pages := []string{t.AdminHomePath(), t.FallbackPath()}
	for _, p := range t.Paths() {
		if p == t.LoginPath() || p == t.AdminHomePath() || p == t.FallbackPath() {
			continue
		}
		pages = append(pages, p)
	}
	return pages
}

func (a app) Init() tea.Cmd {
	if a.busy {
		return a.revalidate()
	}
	return nil
}

func (a app) revalidate() tea.Cmd {
	engine := a.engine
	return func() tea.Msg {
		engine.FetchUserInfo(context.Background())
		return revalidatedMsg{loggedIn: engine.IsLoggedIn()}
	}
}

func (a app) login(username, password string) tea.Cmd {
	engine := a.engine
	return func() tea.Msg {
		_, err := engine.Login(context.Background(), username, password)
		return loginDoneMsg{err: err}
	}
}

func (a app) logout() tea.Cmd {
	engine := a.engine
	return func() tea.Msg {
		engine.Logout(context.Background())
		return loggedOutMsg{}
	}
}

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		a.busy = false
		if msg.err != nil {
			a.status = msg.err.Error()
			a.loginFm.password = ""
			return a, nil
		}
		a.status = ""
		a.view = viewBrowser
		return a.navigate(a.engine.Routes().AdminHomePath())

	case revalidatedMsg:
		a.busy = false
		if !msg.loggedIn {
			a.view = viewLogin
			a.status = "session expired, log in again"
			return a, nil
		}
		return a.navigate(a.path)

	case loggedOutMsg:
		a.busy = false
		a.view = viewLogin
		a.loginFm = loginForm{}
		a.status = "logged out"
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.busy {
			return a, nil
		}
		if a.view == viewLogin {
			return a.updateLogin(msg)
		}
		return a.updateBrowser(msg)
	}
	return a, nil
}

func (a app) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		a.loginFm.focus = 1 - a.loginFm.focus
		return a, nil
	case "enter":
		if a.loginFm.focus == 0 {
			a.loginFm.focus = 1
			return a, nil
		}
		if a.loginFm.username == "" || a.loginFm.password == "" {
			a.status = "username and password required"
			return a, nil
		}
		a.busy = true
		a.status = ""
		return a, a.login(a.loginFm.username, a.loginFm.password)
	case "esc":
		return a, tea.Quit
	}

	field := &a.loginFm.username
	if a.loginFm.focus == 1 {
		field = &a.loginFm.password
	}
	*field = editRune(*field, msg.String())
	return a, nil
}

func (a app) updateBrowser(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "esc":
		return a, tea.Quit
	case "r":
		a.busy = true
		return a, a.revalidate()
	case "l":
		a.busy = true
		return a, a.logout()
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(a.pages) {
			return a.navigate(a.pages[idx])
		}
	}
	return a, nil
}

// navigate runs the guard and lands wherever the verdict says. One hop is
// enough: redirect targets are always allowed for the session that caused
// the redirect.
func (a app) navigate(path string) (tea.Model, tea.Cmd) {
	out := a.engine.Authorize(path)
	switch out.Kind {
	case guard.Allow:
		a.path = path
		a.status = ""
	case guard.RedirectLogin:
		a.view = viewLogin
		a.status = "login required for " + out.ReturnPath
	default:
		a.path = out.Target
		a.status = fmt.Sprintf("%s is off limits, showing %s", path, out.Target)
	}
	return a, nil
}

/* ---------- view ---------- */

func (a app) View() string {
	if a.view == viewLogin {
		return a.renderLogin()
	}
	return a.renderBrowser()
}

func (a app) renderLogin() string {
	s := titleStyle.Render("ADMIN CONSOLE") + "\n\n"
	s += renderField("username", a.loginFm.username, a.loginFm.focus == 0, false)
	s += renderField("password", a.loginFm.password, a.loginFm.focus == 1, true)
	if a.busy {
		s += "\n" + dimStyle.Render("signing in…") + "\n"
	} else if a.status != "" {
		s += "\n" + errStyle.Render(a.status) + "\n"
	}
	s += "\n" + dimStyle.Render("tab switch · enter submit · esc quit") + "\n"
	return s
}

func renderField(label, value string, focused, mask bool) string {
	shown := value
	if mask {
		shown = ""
		for range value {
			shown += "•"
		}
	}
	cursor := ""
	if focused {
		cursor = activeStyle.Render("█")
	}
	return fmt.Sprintf("  %s %s%s\n", labelStyle.Render(label+":"), shown, cursor)
}

func (a app) renderBrowser() string {
	who := a.engine.Nickname()
	badge := string(a.engine.UserType())
	s := titleStyle.Render("ADMIN CONSOLE") + "  " +
		labelStyle.Render(who) + " " + badgeStyle.Render("["+badge+"]") + "\n\n"

	s += labelStyle.Render("page: ") + activeStyle.Render(a.path) + "\n\n"

	for i, p := range a.pages {
		marker := "  "
		if p == a.path {
			marker = activeStyle.Render("> ")
		}
		s += fmt.Sprintf(" %s%d %s\n", marker, i+1, p)
	}

	if a.busy {
		s += "\n" + dimStyle.Render("refreshing…") + "\n"
	} else if a.status != "" {
		s += "\n" + errStyle.Render(a.status) + "\n"
	}
	s += "\n" + dimStyle.Render("1-9 navigate · r refresh profile · l logout · q quit") + "\n"
	return s
}
