package cli

import (
	"strings"

	"wedmarket/internal/session"
	"wedmarket/pkg/model"

	"github.com/spf13/cobra"
)

type whoamiOutput struct {
	LoggedIn bool                      `json:"loggedIn"`
	Session  *session.Session          `json:"session,omitempty"`
	Vendor   *model.VendorIDResolution `json:"vendor,omitempty"`
}

func loginCmd(app *App) *cobra.Command {
	var userID string
	var vendorID string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the user and vendor used by later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID = strings.TrimSpace(userID)
			vendorID = strings.TrimSpace(vendorID)
			if userID == "" {
				return errRequired("--user-id")
			}

			ctx := cmd.Context()
			vendor, err := app.Vendors.ResolveProfile(ctx, userID, vendorID)
			if err != nil {
				return err
			}

			sess := session.Session{UserID: userID, VendorID: vendorID, LoggedInAt: app.Now()}
			if err := app.Sessions.Save(ctx, sess); err != nil {
				return err
			}

			if app.outputJSON {
				return writeJSON(app.Out, whoamiOutput{LoggedIn: true, Session: &sess, Vendor: vendor})
			}
			app.printf("Logged in as %s.\n", userID)
			printVendor(app, vendor)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "Marketplace user ID")
	cmd.Flags().StringVar(&vendorID, "vendor-id", "", "Vendor ID to act as (defaults to the user's vendor)")
	return cmd
}

func logoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.Clear(cmd.Context()); err != nil {
				return err
			}
			if app.outputJSON {
				return writeJSON(app.Out, whoamiOutput{LoggedIn: false})
			}
			app.printf("Logged out.\n")
			return nil
		},
	}
}

func whoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session and the vendor it resolves to",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := app.Sessions.Load(ctx)
			if err != nil {
				return err
			}
			if sess == nil {
				if app.outputJSON {
					return writeJSON(app.Out, whoamiOutput{LoggedIn: false})
				}
				app.printf("Not logged in.\n")
				return nil
			}

			vendor, err := app.Vendors.Resolve(ctx, sess.UserID, sess.VendorID)
			if err != nil {
				return err
			}
			if app.outputJSON {
				return writeJSON(app.Out, whoamiOutput{LoggedIn: true, Session: sess, Vendor: vendor})
			}
			app.printf("User:      %s\n", sess.UserID)
			printVendor(app, vendor)
			app.printf("Logged in: %s\n", sess.LoggedInAt.In(app.Location).Format("2006-01-02 15:04"))
			return nil
		},
	}
}

func printVendor(app *App, vendor *model.VendorIDResolution) {
	app.printf("Vendor:    %s (%s)\n", vendor.UserFormatID, vendor.Source)
	if vendor.ProfileID != "" {
		app.printf("Profile:   %s\n", vendor.ProfileID)
	}
}
