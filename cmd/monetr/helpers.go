package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/monetr-client/internal/app"
	"github.com/Veraticus/monetr-client/internal/cli"
	"github.com/Veraticus/monetr-client/internal/common"
	"github.com/Veraticus/monetr-client/internal/config"
	"github.com/Veraticus/monetr-client/internal/session"
	"github.com/Veraticus/monetr-client/internal/store"
)

// envKeyReplacer maps keys such as api.url to MONETR_API_URL.
var envKeyReplacer = strings.NewReplacer(".", "_")

// loadedConfig is set by initConfig before any command runs.
var loadedConfig *config.Config

var loadResources = []store.Resource{
	store.ResourceLinks,
	store.ResourceBankAccounts,
	store.ResourceTransactions,
	store.ResourceSpending,
	store.ResourceFundingSchedules,
	store.ResourceBalances,
}

func openApp(ctx context.Context) (*app.App, error) {
	if loadedConfig == nil {
		return nil, fmt.Errorf("%w: configuration was not loaded", common.ErrMissingConfig)
	}
	return app.New(ctx, loadedConfig)
}

// startApp opens the app and loads everything the views need, showing progress on w. It fails
// unless the user ends up on the main view.
func startApp(cmd *cobra.Command) (*app.App, error) {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return nil, err
	}

	progress := cli.NewLoadProgress(cmd.ErrOrStderr(), "Loading monetr...", loadResources)
	unsubscribe := a.Store.Subscribe(progress.Observe)
	result, err := a.Start(ctx)
	unsubscribe()
	progress.Finish()

	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if err := checkRoute(result.Route); err != nil {
		_ = a.Close()
		return nil, err
	}
	warnDegraded(cmd.ErrOrStderr(), result)
	return a, nil
}

func checkRoute(route session.Route) error {
	switch route {
	case session.RouteMain:
		return nil
	case session.RouteLogin:
		return common.NewUserError("Not logged in, run `monetr login` first.", common.ErrNotAuthenticated)
	case session.RouteVerifyEmail:
		return common.NewUserError("Your email address has not been verified yet. Check your inbox for the verification link.", common.ErrEmailNotVerified)
	case session.RouteSetup:
		return common.NewUserError("No institutions are linked yet. Finish setup in the monetr web app.", common.ErrNoBankAccount)
	default:
		return fmt.Errorf("unexpected route %s", route)
	}
}

func warnDegraded(w io.Writer, result app.Result) {
	if result.Report == nil || !result.Report.Degraded() {
		return
	}
	for resource, err := range result.Report.Errors {
		slog.Debug("load failed", "resource", resource, "error", err)
		_, _ = fmt.Fprintln(w, cli.FormatWarning(fmt.Sprintf("Could not load %s: %s", resource, common.UserMessage(err))))
	}
}

func closeApp(a *app.App) {
	if err := a.Close(); err != nil {
		slog.Warn("Failed to close local storage", "error", err)
	}
}

func parseID(arg, what string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, common.NewUserError(fmt.Sprintf("Invalid %s id %q.", what, arg), common.ErrInvalidInput)
	}
	return id, nil
}

// parseSpendingRef parses a spending id, or "safe" for Safe-To-Spend which returns nil.
func parseSpendingRef(arg string) (*uint64, error) {
	if strings.EqualFold(arg, "safe") {
		return nil, nil
	}
	id, err := parseID(arg, "spending")
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// maxAmount is the largest amount in minor units the API accepts.
var maxAmount = decimal.NewFromInt(math.MaxInt64)

// parseAmount parses a decimal amount such as 12.50 into minor units.
func parseAmount(arg string) (int64, error) {
	invalid := common.NewUserError(fmt.Sprintf("Invalid amount %q.", arg), common.ErrInvalidInput)

	whole, fraction, _ := strings.Cut(strings.TrimPrefix(arg, "$"), ".")
	if whole == "" && fraction == "" {
		return 0, invalid
	}
	if !isDigits(whole) || !isDigits(fraction) || len(fraction) > 2 {
		return 0, invalid
	}
	if whole == "" {
		whole = "0"
	}
	text := whole
	if fraction != "" {
		text += "." + fraction
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return 0, invalid
	}
	minor := amount.Shift(2)
	if minor.GreaterThan(maxAmount) {
		return 0, invalid
	}
	return minor.IntPart(), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
