package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/localauth/internal/client/client"
	"github.com/dmitrijs2005/localauth/internal/client/config"
	"github.com/dmitrijs2005/localauth/internal/client/services"
	"github.com/dmitrijs2005/localauth/internal/cryptox"
	"github.com/dmitrijs2005/localauth/internal/logging"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	logger      logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	db          *sql.DB
}

// NewApp opens the database at c.DatabasePath and builds the auth service
// with the configured hasher and log level.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.NewTextLogger(os.Stderr, c.LogLevel)
	if err != nil {
		return nil, err
	}

	hasher, err := cryptox.NewHasher(c.Hasher)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	repos := client.NewRepositories(db)
	as := services.NewAuthService(repos.Metadata,
		services.WithHasher(hasher),
		services.WithLogger(logger),
	)

	return &App{
		config:      c,
		authService: as,
		logger:      logger,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		db:          db,
	}, nil
}

// Run restores the persisted session and then serves the REPL until exit.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	rctx, cancel := a.commandContext(ctx)
	if err := a.authService.RestoreSession(rctx); err != nil {
		a.logger.Warn(ctx, "starting without a session", "error", err)
	}
	cancel()

	fmt.Fprintln(a.out, "Welcome to localauth (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	_, ok := a.authService.CurrentUser()
	return ok
}

func (a *App) getStatus() string {
	if u, ok := a.authService.CurrentUser(); ok {
		return fmt.Sprintf("(%s)", u.Email)
	}
	return ""
}

// commandContext bounds one command's storage work by CommandTimeout.
func (a *App) commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.CommandTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.CommandTimeout)
}
