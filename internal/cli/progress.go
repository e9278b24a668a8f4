package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/timetabler/internal/cli/formatter"
	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/service"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type progressMsg service.ProgressEvent

type generateDoneMsg struct{}

// progressModel shows a spinner for the division in flight and a check or
// cross for each finished one.
type progressModel struct {
	spinner  spinner.Model
	cancel   context.CancelFunc
	current  string
	index    int
	total    int
	finished []string
	quitting bool
	aborted  bool
}

func newProgressModel(cancel context.CancelFunc) progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple
	return progressModel{spinner: sp, cancel: cancel}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			if m.cancel != nil {
				m.cancel()
			}
			m.aborted = true
			m.quitting = true
			return m, tea.Quit
		}
	case progressMsg:
		m.total = msg.Total
		m.index = msg.Index
		if !msg.Done {
			m.current = msg.Division
			return m, nil
		}
		m.current = ""
		if msg.Failed {
			m.finished = append(m.finished, formatter.Fail(msg.Division))
		} else {
			m.finished = append(m.finished, formatter.OK(msg.Division))
		}
		return m, nil
	case generateDoneMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	var b strings.Builder
	for _, line := range m.finished {
		b.WriteString("  " + line + "\n")
	}
	switch {
	case m.aborted:
		b.WriteString("  " + formatter.Dim("Cancelled.") + "\n")
	case m.current != "":
		fmt.Fprintf(&b, "  %s %s %s\n", m.spinner.View(), m.current,
			formatter.Dim(fmt.Sprintf("(%d/%d)", m.index+1, m.total)))
	case !m.quitting:
		b.WriteString("  " + m.spinner.View() + formatter.Dim(" Preparing prompts...") + "\n")
	}
	return b.String()
}

// generateWithProgress runs Generate behind a live spinner view.
func generateWithProgress(ctx context.Context, app *App, out io.Writer, r domain.Roster, opts ...service.GenerateOption) (*domain.Run, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel(cancel), tea.WithOutput(out), tea.WithContext(ctx))

	var run *domain.Run
	var genErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		opts = append(opts, service.WithProgress(func(ev service.ProgressEvent) {
			p.Send(progressMsg(ev))
		}))
		run, genErr = app.Generate.Generate(ctx, r, opts...)
		p.Send(generateDoneMsg{})
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		cancel()
		<-done
		return nil, fmt.Errorf("progress view: %w", err)
	}
	cancel()
	<-done
	return run, genErr
}

// generatePlain reports progress as plain lines, for pipes and CI logs.
func generatePlain(ctx context.Context, app *App, out io.Writer, r domain.Roster, opts ...service.GenerateOption) (*domain.Run, error) {
	opts = append(opts, service.WithProgress(func(ev service.ProgressEvent) {
		if !ev.Done {
			fmt.Fprintf(out, "[%d/%d] %s...\n", ev.Index+1, ev.Total, ev.Division)
			return
		}
		if ev.Failed {
			fmt.Fprintf(out, "[%d/%d] %s failed\n", ev.Index+1, ev.Total, ev.Division)
		}
	}))
	return app.Generate.Generate(ctx, r, opts...)
}
