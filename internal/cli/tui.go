package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"weathersearch/internal/eventbus"
	"weathersearch/internal/ui"
)

// forwardedEvents reach the UI as ui.EventMsg
var forwardedEvents = []eventbus.EventType{
	eventbus.EventSearchFailed,
}

func runTUI(cmd *cobra.Command, opts *options) error {
	a, err := newApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(cmdContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	model := ui.NewModel(ctx, a.cfg, a.client, a.logger, a.bus)

	programOpts := []tea.ProgramOption{
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	}
	if a.cfg.UI.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, programOpts...)
	model.SetProgram(p)

	for _, eventType := range forwardedEvents {
		unsubscribe := a.bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
		defer unsubscribe()
	}

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	a.logger.Info("starting UI")
	_, err = p.Run()
	model.Controller().Close()
	if err != nil {
		a.logger.Error("error running program", slog.Any("error", err))
		return fmt.Errorf("error running program: %w", err)
	}
	a.logger.Info("UI exited normally")

	return nil
}

// cmdContext returns the command's context, which is nil when a command is
// executed without ExecuteContext
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
