package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"wedmarket/internal/subscriptions"
	apperrors "wedmarket/pkg/errors"
	httputil "wedmarket/pkg/http"
)

const (
	ansiReset   = "\x1b[0m"
	ansiBold    = "\x1b[1m"
	ansiDim     = "\x1b[2m"
	ansiReverse = "\x1b[7m"
	ansiRed     = "\x1b[31m"
	ansiGreen   = "\x1b[32m"
	ansiYellow  = "\x1b[33m"
)

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.Out, format, args...)
}

func (a *App) paint(code, text string) string {
	if !a.useColor() {
		return text
	}
	return code + text + ansiReset
}

// printError reports a failed command. Plan-limit rejections also print the upgrade hint.
func (a *App) printError(err error) {
	if !apperrors.IsAppError(err) {
		if a.outputJSON {
			_ = writeJSON(a.Err, httputil.ErrorResponse{Success: false, Error: err.Error()})
			return
		}
		_, _ = fmt.Fprintf(a.Err, "Error: %v\n", err)
		return
	}

	appErr := apperrors.AsAppError(err)
	if a.outputJSON {
		_ = writeJSON(a.Err, httputil.ErrorResponse{
			Success: false,
			Error:   appErr.Message,
			Code:    appErr.Code,
			Details: appErr.Details,
		})
		return
	}

	_, _ = fmt.Fprintf(a.Err, "Error: %s\n", appErr.Message)
	switch appErr.Code {
	case apperrors.CodeUpgradeRequired:
		upgrade, ok := appErr.Details["upgrade"].(subscriptions.UpgradeMessage)
		if ok && upgrade.Message != appErr.Message {
			_, _ = fmt.Fprintf(a.Err, "%s: %s\n", upgrade.Title, upgrade.Message)
		} else if tier, ok := appErr.Details["suggested_tier"]; ok {
			_, _ = fmt.Fprintf(a.Err, "Upgrade to the %v plan to continue.\n", tier)
		}
	case apperrors.CodeValidation:
		fields := make([]string, 0, len(appErr.Details))
		for field := range appErr.Details {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			_, _ = fmt.Fprintf(a.Err, "  %s: %v\n", field, appErr.Details[field])
		}
	}
}
