// Package cli implements the interactive front end of the catalog app. It is
// thin glue over the product and session stores; all invariants live there.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/selimv/vitrine/internal/config"
	"github.com/selimv/vitrine/internal/kvstore"
	"github.com/selimv/vitrine/internal/logging"
	"github.com/selimv/vitrine/internal/services"
)

// App wires the stores together and drives the REPL. One App instance owns
// the single shared ProductService/SessionService pair for the whole process.
type App struct {
	config   *config.Config
	products services.ProductService
	session  services.SessionService
	log      logging.Logger
	reader   *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	db, err := kvstore.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("database init error: %w", err)
	}

	store := kvstore.NewSQLiteStore(db)
	ps := services.NewProductService(store, logger, c.SimulatedLatency)
	ss := services.NewSessionService(db, logger, []byte(c.SessionSecret), c.SimulatedLatency)

	return &App{
		config:   c,
		products: ps,
		session:  ss,
		log:      logger,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run initializes the product collection, restores any persisted session and
// hands control to the REPL.
func (a *App) Run(ctx context.Context) error {
	if err := a.products.Initialize(ctx); err != nil {
		return err
	}
	if err := a.session.Restore(ctx); err != nil {
		return err
	}

	fmt.Println("Welcome to vitrine (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Current() != nil
}

func (a *App) status() string {
	if s := a.session.Current(); s != nil {
		return s.User.Name
	}
	return "guest"
}
