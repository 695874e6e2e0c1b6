package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/planner/internal/client/config"
	"github.com/dmitrijs2005/planner/internal/client/services"
	"github.com/dmitrijs2005/planner/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// BackgroundSyncer runs periodic sync passes; *syncer.Orchestrator
// implements it.
type BackgroundSyncer interface {
	Run(ctx context.Context, interval time.Duration, online func() bool)
}

type App struct {
	config   *config.Config
	auth     services.AuthService
	planner  services.PlannerService
	bg       BackgroundSyncer
	log      logging.Logger
	userName string
	reader   *bufio.Reader
	out      io.Writer

	mu   sync.RWMutex
	mode Mode
}

func NewApp(
	c *config.Config,
	auth services.AuthService,
	planner services.PlannerService,
	bg BackgroundSyncer,
	log logging.Logger,
	in io.Reader,
	out io.Writer,
) *App {
	return &App{
		config:  c,
		auth:    auth,
		planner: planner,
		bg:      bg,
		log:     log,
		reader:  bufio.NewReader(in),
		out:     out,
		mode:    ModeOffline,
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) isOnline() bool { return a.Mode() == ModeOnline }

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

// Run restores a stored session, starts the background workers and blocks
// in the REPL until the user exits or ctx is canceled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to the planner CLI (type 'help' for commands)")

	if c, err := a.auth.Current(ctx); err == nil {
		a.userName = c.Username
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	go a.bg.Run(ctx, a.config.SyncInterval, a.isOnline)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	_, err := a.auth.Current(ctx)
	return err == nil
}

func (a *App) getStatus() string {
	s := string(a.Mode())
	if a.userName != "" {
		s = a.userName + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode accordingly. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.auth.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}
