// Package dialog implements the overlay card used to create, view and edit tasks.
package dialog

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	DefaultDuration = 500 * time.Millisecond
	// closeLead is how much earlier than the entry animation length the
	// card is actually removed after a close.
	closeLead = 50 * time.Millisecond
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	default:
		return "closed"
	}
}

type Transition int

const (
	TransitionIn Transition = iota
	TransitionOut
)

func (t Transition) String() string {
	if t == TransitionOut {
		return "to-bottom"
	}
	return "from-bottom"
}

// ClosedMsg ends a close started by Modal.Close.
type ClosedMsg struct {
	modal uint64
	gen   uint64
}

var modalIDs atomic.Uint64

// Modal is the open/close lifecycle of an overlay and access to its fields.
type Modal struct {
	fields     *Fields
	id         uint64
	gen        uint64
	state      State
	transition Transition
	duration   time.Duration
	onClosed   func()
	focus      []FieldID
	focusAt    int
}

func NewModal(fields *Fields, duration time.Duration) *Modal {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Modal{
		fields:     fields,
		id:         modalIDs.Add(1),
		duration:   duration,
		transition: TransitionIn,
	}
}

func (m *Modal) Fields() *Fields { return m.fields }
func (m *Modal) State() State { return m.state }
func (m *Modal) IsOpen() bool { return m.state == StateOpen }
func (m *Modal) Transition() Transition { return m.transition }
func (m *Modal) Duration() time.Duration { return m.duration }
func (m *Modal) SetFocusOrder(ids ...FieldID) { m.focus = ids }

// CloseDelay is how long Close waits before the card is removed.
func (m *Modal) CloseDelay() time.Duration {
	return max(m.duration-closeLead, 0)
}

// Open shows the card and runs onOpened right away. A close still in
// flight is completed first and its timer is ignored when it fires.
func (m *Modal) Open(onOpened func()) {
	if m.state == StateClosing {
		m.finishClose()
	}
	m.gen++
	m.state = StateOpen
	m.transition = TransitionIn
	if onOpened != nil {
		onOpened()
	}
}

// Close starts the exit transition. The card is removed and onClosed runs
// only once the returned command's ClosedMsg reaches Update.
func (m *Modal) Close(onClosed func()) tea.Cmd {
	if m.state != StateOpen {
		return nil
	}
	m.gen++
	m.state = StateClosing
	m.transition = TransitionOut
	m.onClosed = onClosed

	modal, gen := m.id, m.gen
	return tea.Tick(m.CloseDelay(), func(time.Time) tea.Msg {
		return ClosedMsg{modal: modal, gen: gen}
	})
}

func (m *Modal) finishClose() {
	cb := m.onClosed
	m.onClosed = nil
	m.state = StateClosed
	if cb != nil {
		cb()
	}
	m.transition = TransitionIn
}

// Update completes pending closes and forwards keys to the focused field.
func (m *Modal) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ClosedMsg:
		if msg.modal == m.id && msg.gen == m.gen && m.state == StateClosing {
			m.finishClose()
		}
		return nil
	case tea.KeyMsg:
		if m.state != StateOpen {
			return nil
		}
		if id, ok := m.FocusedField(); ok {
			return m.fields.Update(id, msg)
		}
	}
	return nil
}

// SetField and Field address the value property of a field.
func (m *Modal) SetField(id FieldID, v string) { m.fields.SetValue(id, v) }
func (m *Modal) Field(id FieldID) string { return m.fields.Value(id) }

func (m *Modal) SetFieldText(id FieldID, v string) { m.fields.SetText(id, v) }
func (m *Modal) FieldText(id FieldID) string { return m.fields.Text(id) }
func (m *Modal) SetFieldDisabled(id FieldID, disabled bool) { m.fields.SetDisabled(id, disabled) }
func (m *Modal) FieldDisabled(id FieldID) bool { return m.fields.Disabled(id) }

// FocusedField is the field keys go to, if any is focusable.
func (m *Modal) FocusedField() (FieldID, bool) {
	if len(m.focus) == 0 {
		return "", false
	}
	id := m.focus[m.focusAt%len(m.focus)]
	if !m.fields.Focusable(id) {
		return "", false
	}
	return id, true
}

// FocusFirst focuses the first focusable field in focus order.
func (m *Modal) FocusFirst() tea.Cmd {
	m.focusAt = len(m.focus) - 1
	return m.FocusNext()
}

func (m *Modal) FocusNext() tea.Cmd { return m.moveFocus(1) }
func (m *Modal) FocusPrev() tea.Cmd { return m.moveFocus(-1) }

func (m *Modal) moveFocus(step int) tea.Cmd {
	n := len(m.focus)
	if n == 0 {
		return nil
	}
	for _, id := range m.focus {
		m.fields.Blur(id)
	}
	for i := 1; i <= n; i++ {
		at := ((m.focusAt+step*i)%n + n) % n
		if m.fields.Focusable(m.focus[at]) {
			m.focusAt = at
			return m.fields.Focus(m.focus[at])
		}
	}
	return nil
}

// View places body in a card centred in width x height. While closing the
// card is drawn faded and lowered.
func (m *Modal) View(body string, width, height int) string {
	if m.state == StateClosed {
		return ""
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#6C5CE7")).
		Padding(1, 2)
	if m.transition == TransitionOut {
		card = card.Faint(true).MarginTop(2)
	}
	out := card.Render(body)
	if width <= 0 || height <= 0 {
		return out
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, out)
}
