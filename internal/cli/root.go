// Package cli implements vendorctl, the vendor command line over the marketplace API.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"wedmarket/internal/calendar"
	"wedmarket/internal/listings"
	"wedmarket/internal/session"
	"wedmarket/pkg/client"
	apperrors "wedmarket/pkg/errors"
	"wedmarket/pkg/logger"
	"wedmarket/pkg/model"

	"github.com/spf13/cobra"
)

type SessionStore interface {
	Load(ctx context.Context) (*session.Session, error)
	Save(ctx context.Context, sess session.Session) error
	Clear(ctx context.Context) error
}

type VendorResolver interface {
	Resolve(ctx context.Context, userID, sessionVendorID string) (*model.VendorIDResolution, error)
	ResolveProfile(ctx context.Context, userID, sessionVendorID string) (*model.VendorIDResolution, error)
}

type AvailabilityAPI interface {
	calendar.AvailabilityFetcher
	SetDate(ctx context.Context, vendorID, date string, update model.AvailabilityUpdate) (client.Result[*model.AvailabilityRecord], error)
	ClearDate(ctx context.Context, vendorID, date string) error
}

// Listings is satisfied by *listings.Service.
type Listings interface {
	AddService(ctx context.Context, actor listings.Actor, input model.ServiceInput) (*listings.Result, error)
	UpdateService(ctx context.Context, actor listings.Actor, id string, update model.ServiceUpdate) (*listings.Result, error)
	SetFeatured(ctx context.Context, actor listings.Actor, id string, featured bool) (*listings.Result, error)
	ToggleStatus(ctx context.Context, actor listings.Actor, id string, active bool) (*listings.Result, error)
	DeleteService(ctx context.Context, actor listings.Actor, id string) (*listings.Result, error)
	ListServices(ctx context.Context, actor listings.Actor) (*listings.Overview, error)
}

// App carries the dependencies shared by every command.
type App struct {
	Sessions     SessionStore
	Vendors      VendorResolver
	Availability AvailabilityAPI
	Listings     Listings

	Location     *time.Location
	Now          func() time.Time
	FetchTimeout time.Duration
	Log          *logger.Logger

	Out   io.Writer
	Err   io.Writer
	Color bool

	outputJSON bool
	noColor    bool
}

func (a *App) defaults() {
	if a.Out == nil {
		a.Out = os.Stdout
	}
	if a.Err == nil {
		a.Err = os.Stderr
	}
	if a.Location == nil {
		a.Location = time.Local
	}
	if a.Now == nil {
		a.Now = time.Now
	}
	if a.FetchTimeout <= 0 {
		a.FetchTimeout = calendar.DefaultFetchTimeout
	}
	if a.Log == nil {
		a.Log = logger.Discard()
	}
}

func (a *App) useColor() bool {
	return a.Color && !a.noColor && !a.outputJSON
}

// NewRootCmd builds the vendorctl command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	app.defaults()

	rootCmd := &cobra.Command{
		Use:           "vendorctl",
		Short:         "Manage a wedding marketplace vendor account",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(app.Out)
	rootCmd.SetErr(app.Err)
	rootCmd.PersistentFlags().BoolVar(&app.outputJSON, "json", false, "Output JSON")
	rootCmd.PersistentFlags().BoolVar(&app.noColor, "no-color", false, "Disable ANSI colors")

	rootCmd.AddCommand(loginCmd(app))
	rootCmd.AddCommand(logoutCmd(app))
	rootCmd.AddCommand(whoamiCmd(app))
	rootCmd.AddCommand(calendarCmd(app))
	rootCmd.AddCommand(servicesCmd(app))
	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute(app *App, args []string) int {
	rootCmd := NewRootCmd(app)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		app.printError(err)
		return 1
	}
	return 0
}

// actor builds the listing actor from the stored session.
func (a *App) actor(ctx context.Context) (listings.Actor, error) {
	sess, err := a.Sessions.Load(ctx)
	if err != nil {
		return listings.Actor{}, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return listings.Actor{}, apperrors.Unauthorized("Not logged in. Run 'vendorctl login --user-id <id>' first.")
	}
	return listings.Actor{UserID: sess.UserID, SessionVendorID: sess.VendorID}, nil
}

func (a *App) vendorID(ctx context.Context) (string, error) {
	actor, err := a.actor(ctx)
	if err != nil {
		return "", err
	}
	res, err := a.Vendors.Resolve(ctx, actor.UserID, actor.SessionVendorID)
	if err != nil {
		return "", apperrors.Unauthorized("Unable to determine your vendor account. Please sign in again.")
	}
	return res.UserFormatID, nil
}

func errRequired(flag string) error {
	return apperrors.InvalidInput(flag + " is required")
}
