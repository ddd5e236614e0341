package prompt

import (
	"fmt"
	"io"
	"sync"

	"charm.land/lipgloss/v2"
)

// Alerter prints messages to a writer, one per line.
type Alerter struct {
	mu     sync.Mutex
	w      io.Writer
	style  lipgloss.Style
	styled bool
}

// NewAlerter writes alerts to w. When styled is set messages are rendered in
// bold red.
func NewAlerter(w io.Writer, styled bool) *Alerter {
	return &Alerter{
		w:      w,
		style:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		styled: styled,
	}
}

func (a *Alerter) Alert(msg string) {
	if a == nil || a.w == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.styled {
		msg = a.style.Render(msg)
	}
	_, _ = fmt.Fprintln(a.w, msg)
}

// Recorder keeps alerts and navigations in memory.
type Recorder struct {
	mu     sync.Mutex
	alerts []string
	pages  []string
}

func (r *Recorder) Alert(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, msg)
}

// Alerts returns every message in the order raised.
func (r *Recorder) Alerts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.alerts...)
}

func (r *Recorder) Navigate(page string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages = append(r.pages, page)
}

// Pages returns every navigation target in order.
func (r *Recorder) Pages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.pages...)
}

// Current returns the last navigation target.
func (r *Recorder) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pages) == 0 {
		return ""
	}
	return r.pages[len(r.pages)-1]
}
