// hydroctl is the HydroSyS back-office command line. It keeps a durable
// session on disk, so one login survives across invocations, and talks to
// the same backend the storefront gateway uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/tealeg/xlsx"

	"github.com/hydrosys/storefront/internal/backend"
	"github.com/hydrosys/storefront/internal/config"
	"github.com/hydrosys/storefront/internal/identity"
	"github.com/hydrosys/storefront/internal/order"
	"github.com/hydrosys/storefront/internal/product"
	"github.com/hydrosys/storefront/internal/report"
)

const followInterval = 3 * time.Second

func main() {
	log.SetFlags(0)
	_ = godotenv.Load()
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.Load()
	store, api := buildSession(cfg)

	ctx := context.Background()
	var err error
	switch os.Args[1] {
	case "login":
		err = runLogin(ctx, store, os.Args[2:])
	case "logout":
		err = store.Logout()
	case "whoami":
		err = runWhoami(store)
	case "orders":
		err = runOrders(ctx, store, order.NewClient(api), os.Args[2:])
	case "status":
		err = runStatus(ctx, order.NewClient(api), os.Args[2:])
	case "report":
		err = runReport(ctx, order.NewClient(api), product.NewClient(api), os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("hydroctl %s: %v", os.Args[1], err)
	}
}

func buildSession(cfg config.Config) (*identity.Store, *backend.Client) {
	storage := identity.NewFileStorage(cfg.SessionFile)
	// two passes: the store needs an auth client, the auth client needs a
	// backend client, and the backend client wants the store as its token
	// source. Build the backend client first with no token source, then
	// patch it in.
	api, err := backend.New(cfg.BackendURL, cfg.UpstreamTimeout, nil)
	if err != nil {
		log.Fatalf("backend client: %v", err)
	}
	store := identity.NewStore(storage, identity.NewClient(api))
	api.Tokens = store
	return store, api
}

func runLogin(ctx context.Context, store *identity.Store, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)
	if *email == "" || *password == "" {
		return fmt.Errorf("-email and -password are required")
	}

	user, err := store.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s %s <%s> (%s)\n", user.FirstName, user.LastName, user.Email, user.Role)
	return nil
}

func runWhoami(store *identity.Store) error {
	user, ok := store.Current()
	if !ok {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s %s <%s> (%s), id=%d\n", user.FirstName, user.LastName, user.Email, user.Role, user.ID)
	return nil
}

func runOrders(ctx context.Context, store *identity.Store, orders *order.Client, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	follow := fs.Bool("follow", false, "refresh the listing every few seconds")
	fs.Parse(args)

	if err := printOrders(ctx, store, orders); err != nil {
		return err
	}
	if !*follow {
		return nil
	}

	// keep an eye on the session file too: logging out from another
	// terminal ends the loop.
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	changes := store.Subscribe()
	go store.Watch(watchCtx, followInterval)

	ticker := time.NewTicker(followInterval)
	defer ticker.Stop()
	for {
		select {
		case u := <-changes:
			if u == nil {
				fmt.Println("session ended elsewhere, stopping")
				return nil
			}
		case <-ticker.C:
			if err := printOrders(ctx, store, orders); err != nil {
				return err
			}
		}
	}
}

func printOrders(ctx context.Context, store *identity.Store, orders *order.Client) error {
	user, ok := store.Current()
	if !ok {
		return fmt.Errorf("not logged in")
	}

	all, err := orders.List(ctx)
	if err != nil {
		return err
	}
	for _, o := range all {
		if !user.IsAdmin() && o.UserID != user.ID {
			continue
		}
		fmt.Printf("#%-5d %-22s %-16s %-12s $%s\n", o.ID, o.CustomerName(), o.PlacedAt, o.Status, o.Total)
	}
	return nil
}

func runStatus(ctx context.Context, orders *order.Client, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	id := fs.Int("id", 0, "order id")
	estado := fs.String("estado", "", "new status label, e.g. ENVIADO")
	fs.Parse(args)
	if *id <= 0 || *estado == "" {
		return fmt.Errorf("-id and -estado are required")
	}

	updated, err := orders.UpdateStatus(ctx, *id, *estado)
	if err != nil {
		return err
	}
	fmt.Printf("order #%d is now %s\n", updated.ID, updated.Status)
	return nil
}

func runReport(ctx context.Context, orders *order.Client, products *product.Client, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	tipo := fs.String("tipo", "pedidos", "report type: dashboard, pedidos or inventario")
	out := fs.String("out", "", "output path (defaults to the report's own filename)")
	fs.Parse(args)

	now := time.Now()
	var kind report.Kind
	var build func() (*xlsx.File, error)
	switch *tipo {
	case "dashboard":
		kind = report.KindDashboard
		build = func() (*xlsx.File, error) {
			all, err := orders.List(ctx)
			if err != nil {
				return nil, err
			}
			catalog, err := products.List(ctx)
			if err != nil {
				return nil, err
			}
			return report.Dashboard(all, catalog, now)
		}
	case "pedidos":
		kind = report.KindOrders
		build = func() (*xlsx.File, error) {
			all, err := orders.List(ctx)
			if err != nil {
				return nil, err
			}
			return report.Orders(all)
		}
	case "inventario":
		kind = report.KindInventory
		build = func() (*xlsx.File, error) {
			catalog, err := products.List(ctx)
			if err != nil {
				return nil, err
			}
			return report.Inventory(catalog)
		}
	default:
		return fmt.Errorf("unknown report type %q", *tipo)
	}

	file, err := build()
	if err != nil {
		return err
	}
	path := *out
	if path == "" {
		path = report.Filename(kind, now)
	}
	if err := file.Save(path); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: hydroctl <command> [flags]

commands:
  login    -email -password    authenticate and persist the session
  logout                       drop the persisted session
  whoami                       show the current identity
  orders   [-follow]           list orders (admins see all)
  status   -id -estado         update an order's status
  report   -tipo [-out]        export dashboard|pedidos|inventario`)
}
