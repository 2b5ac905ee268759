package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"wedmarket/internal/listings"
	"wedmarket/pkg/model"

	"github.com/spf13/cobra"
)

type serviceFlags struct {
	name        string
	description string
	category    string
	price       float64
	priceMin    float64
	priceMax    float64
	images      []string
	active      bool
	featured    bool
}

func (f *serviceFlags) register(cmd *cobra.Command, activeDefault bool) {
	cmd.Flags().StringVar(&f.name, "name", "", "Service name")
	cmd.Flags().StringVar(&f.description, "description", "", "Service description")
	cmd.Flags().StringVar(&f.category, "category", "", "Service category")
	cmd.Flags().Float64Var(&f.price, "price", 0, "Fixed price")
	cmd.Flags().Float64Var(&f.priceMin, "price-min", 0, "Lower bound of the price range")
	cmd.Flags().Float64Var(&f.priceMax, "price-max", 0, "Upper bound of the price range")
	cmd.Flags().StringArrayVar(&f.images, "image", nil, "Image URL (repeatable)")
	cmd.Flags().BoolVar(&f.active, "active", activeDefault, "List the service as active")
	cmd.Flags().BoolVar(&f.featured, "featured", false, "Feature the service")
}

func (f *serviceFlags) priceRange(cmd *cobra.Command) *model.PriceRange {
	if !cmd.Flags().Changed("price-min") && !cmd.Flags().Changed("price-max") {
		return nil
	}
	return &model.PriceRange{Min: f.priceMin, Max: f.priceMax}
}

func (f *serviceFlags) input(cmd *cobra.Command) model.ServiceInput {
	input := model.ServiceInput{
		Name:        f.name,
		Description: f.description,
		Category:    f.category,
		PriceRange:  f.priceRange(cmd),
		Images:      f.images,
		IsActive:    f.active,
		Featured:    f.featured,
	}
	if cmd.Flags().Changed("price") {
		price := f.price
		input.Price = &price
	}
	return input
}

// update only carries the flags given on the command line.
func (f *serviceFlags) update(cmd *cobra.Command) model.ServiceUpdate {
	var update model.ServiceUpdate
	changed := cmd.Flags().Changed
	if changed("name") {
		update.Name = &f.name
	}
	if changed("description") {
		update.Description = &f.description
	}
	if changed("category") {
		update.Category = &f.category
	}
	if changed("price") {
		update.Price = &f.price
	}
	update.PriceRange = f.priceRange(cmd)
	if changed("image") {
		update.Images = &f.images
	}
	if changed("active") {
		update.IsActive = &f.active
	}
	if changed("featured") {
		update.Featured = &f.featured
	}
	return update
}

func servicesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "services",
		Aliases: []string{"service"},
		Short:   "Manage your service listings",
	}

	cmd.AddCommand(servicesListCmd(app))
	cmd.AddCommand(servicesAddCmd(app))
	cmd.AddCommand(servicesUpdateCmd(app))
	cmd.AddCommand(servicesDeleteCmd(app))
	cmd.AddCommand(servicesToggleCmd(app))
	cmd.AddCommand(servicesFeatureCmd(app))
	return cmd
}

func servicesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your services and plan usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.actor(ctx)
			if err != nil {
				return err
			}
			overview, err := app.Listings.ListServices(ctx, actor)
			if err != nil {
				return err
			}
			if app.outputJSON {
				return writeJSON(app.Out, overview)
			}
			renderServices(app, overview)
			return nil
		},
	}
}

func renderServices(app *App, overview *listings.Overview) {
	if len(overview.Services) == 0 {
		app.printf("No services yet.\n")
	} else {
		writer := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(writer, "ID\tNAME\tCATEGORY\tPRICE\tACTIVE\tFEATURED")
		for _, svc := range overview.Services {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
				svc.ID, svc.Name, svc.Category, formatPrice(svc), yesNo(svc.IsActive), yesNo(svc.Featured))
		}
		_ = writer.Flush()
	}

	limit := overview.Limit
	plan := string(limit.CurrentTier)
	if plan == "" {
		plan = "free"
	}
	if limit.IsUnlimited {
		app.printf("Plan: %s (%d services, unlimited)\n", plan, limit.CurrentCount)
	} else {
		app.printf("Plan: %s (%d of %d services)\n", plan, limit.CurrentCount, limit.MaxServices)
	}
	if !limit.Allowed && limit.Message != "" {
		app.printf("%s\n", app.paint(ansiYellow, limit.Message))
	}
}

func formatPrice(svc model.Service) string {
	switch {
	case svc.Price != nil:
		return fmt.Sprintf("%.2f", *svc.Price)
	case svc.PriceRange != nil:
		return fmt.Sprintf("%.2f-%.2f", svc.PriceRange.Min, svc.PriceRange.Max)
	default:
		return "-"
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func servicesAddCmd(app *App) *cobra.Command {
	var flags serviceFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a service listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.actor(ctx)
			if err != nil {
				return err
			}
			res, err := app.Listings.AddService(ctx, actor, flags.input(cmd))
			if err != nil {
				return err
			}
			return printResult(app, res, "Service created")
		},
	}

	flags.register(cmd, true)
	return cmd
}

func servicesUpdateCmd(app *App) *cobra.Command {
	var flags serviceFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update fields of a service listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.actor(ctx)
			if err != nil {
				return err
			}
			res, err := app.Listings.UpdateService(ctx, actor, args[0], flags.update(cmd))
			if err != nil {
				return err
			}
			return printResult(app, res, "Service updated")
		},
	}

	flags.register(cmd, true)
	return cmd
}

func servicesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a service listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.actor(ctx)
			if err != nil {
				return err
			}
			res, err := app.Listings.DeleteService(ctx, actor, args[0])
			if err != nil {
				return err
			}
			return printResult(app, res, "Service deleted")
		},
	}
}

func servicesToggleCmd(app *App) *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "toggle ID",
		Short: "Activate or deactivate a service listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.actor(ctx)
			if err != nil {
				return err
			}
			res, err := app.Listings.ToggleStatus(ctx, actor, args[0], !off)
			if err != nil {
				return err
			}
			return printResult(app, res, "Service status changed")
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Deactivate instead of activate")
	return cmd
}

func servicesFeatureCmd(app *App) *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "feature ID",
		Short: "Feature a service listing (premium plans)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.actor(ctx)
			if err != nil {
				return err
			}
			res, err := app.Listings.SetFeatured(ctx, actor, args[0], !off)
			if err != nil {
				return err
			}
			return printResult(app, res, "Service featuring changed")
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Stop featuring the service")
	return cmd
}

func printResult(app *App, res *listings.Result, fallback string) error {
	if app.outputJSON {
		return writeJSON(app.Out, res)
	}
	msg := strings.TrimSpace(res.Message)
	if msg == "" {
		msg = fallback
	}
	app.printf("%s\n", app.paint(ansiGreen, msg))
	if res.Service != nil {
		app.printf("  %s  %s  %s\n", res.Service.ID, res.Service.Name, formatPrice(*res.Service))
	}
	return nil
}
