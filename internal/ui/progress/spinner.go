// Package progress shows activity during long fan-out operations such as
// cloning or installing a whole group.
package progress

import (
	"fmt"
	"os"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-isatty"
)

// setMessage updates the spinner label.
type setMessage string

// Spinner wraps a bubbletea spinner for sequential, non-interactive use.
// Without a terminal on stderr it degrades to plain line output so logs
// stay readable.
type Spinner struct {
	program *tea.Program
	msgChan chan string
	done    chan struct{}

	mu      sync.Mutex
	running bool
	plain   bool
	lastMsg string
}

type spinnerModel struct {
	spinner spinner.Model
	message string
	msgChan chan string
	quit    bool
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForMessage())
}

func (m spinnerModel) waitForMessage() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.msgChan
		if !ok {
			return tea.Quit()
		}
		return setMessage(msg)
	}
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quit {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case setMessage:
		m.message = string(msg)
		return m, m.waitForMessage()
	case tea.KeyPressMsg:
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() tea.View {
	if m.quit || m.message == "" {
		return tea.NewView("")
	}
	return tea.NewView(fmt.Sprintf("%s %s", m.spinner.View(), m.message))
}

// New creates a spinner with an initial message. Call Start to display it.
func New(message string) *Spinner {
	return &Spinner{
		msgChan: make(chan string, 10),
		done:    make(chan struct{}),
		lastMsg: message,
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true

	if !isatty.IsTerminal(os.Stderr.Fd()) {
		s.plain = true
		fmt.Fprintln(os.Stderr, s.lastMsg)
		close(s.done)
		return
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	model := spinnerModel{spinner: sp, message: s.lastMsg, msgChan: s.msgChan}

	// Render to stderr so stdout stays clean for piping.
	s.program = tea.NewProgram(model, tea.WithoutSignalHandler(), tea.WithOutput(os.Stderr))

	go func() {
		_, _ = s.program.Run()
		close(s.done)
	}()
}

// UpdateMessage changes the displayed message.
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastMsg = message
	if !s.running {
		return
	}
	if s.plain {
		fmt.Fprintln(os.Stderr, message)
		return
	}

	// Non-blocking send; dropped updates are fine for a UI label.
	select {
	case s.msgChan <- message:
	default:
	}
}

// Stop ends the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	plain := s.plain
	close(s.msgChan)
	s.mu.Unlock()

	if plain {
		return
	}

	if s.program != nil {
		s.program.Quit()
	}

	select {
	case <-s.done:
	case <-time.After(500 * time.Millisecond):
	}

	fmt.Fprint(os.Stderr, "\r\033[K")
}
