package main

import (
	"fmt"
	"os"

	"wedmarket/internal/cli"
	"wedmarket/internal/listings"
	"wedmarket/internal/session"
	"wedmarket/internal/subscriptions"
	"wedmarket/internal/vendors/resolver"
	"wedmarket/pkg/client"
	"wedmarket/pkg/config"
	"wedmarket/pkg/logger"

	"golang.org/x/term"
)

const ToolName = "vendorctl"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  logger.TEXT,
		Output:  os.Stderr,
		Service: ToolName,
	})

	store, err := session.Open(cfg.SessionDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open session: %v\n", err)
		return 1
	}
	defer store.Close()

	httpClient := client.NewHttpClient(cfg.APIBaseURL)
	httpClient.HTTPClient.Timeout = cfg.FetchTimeout
	vendorClient := client.NewVendorClient(httpClient)
	vendorResolver := resolver.New(vendorClient, log)

	listingService := listings.NewService(
		vendorResolver,
		subscriptions.NewProfileChecker(vendorClient, log),
		client.NewServicesClient(httpClient),
		client.NewSubscriptionClient(httpClient),
		nil,
		log,
	)

	app := &cli.App{
		Sessions:     store,
		Vendors:      vendorResolver,
		Availability: client.NewAvailabilityClient(httpClient),
		Listings:     listingService,
		Location:     cfg.Location,
		FetchTimeout: cfg.FetchTimeout,
		Log:          log,
		Out:          os.Stdout,
		Err:          os.Stderr,
		Color:        term.IsTerminal(int(os.Stdout.Fd())),
	}
	return cli.Execute(app, os.Args[1:])
}
