package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// System browsers tried in order when promo.browser_binary is not set.
var browserCandidates = []string{
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
}

// CheckBrowser reports the browser binary the frame capture will use.
//
// An explicitly configured binary must exist; without one the usual system
// Chromium names are tried, and when none resolve the launcher downloads a
// managed build on first use, so the check is only informational then.
func CheckBrowser(configuredBinary string) Status {
	result := Status{
		Name:        "Chromium",
		Description: "Used for headless frame capture",
	}

	if binary := strings.TrimSpace(configuredBinary); binary != "" {
		result.Command = binary
		if _, err := os.Stat(binary); err == nil {
			result.Available = true
			return result
		}
		if resolved, err := exec.LookPath(binary); err == nil {
			result.Command = resolved
			result.Available = true
			return result
		}
		result.Detail = fmt.Sprintf("configured binary %q not found", binary)
		return result
	}

	for _, candidate := range browserCandidates {
		if resolved, err := exec.LookPath(candidate); err == nil {
			result.Command = resolved
			result.Available = true
			return result
		}
	}

	result.Command = "chromium"
	result.Optional = true
	result.Available = false
	result.Detail = "no system browser found; a managed build is downloaded on first render"
	return result
}
