package common

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/banner"
)

// PrintBanner displays the startup banner for one pipeline binary. component
// and description identify which of the eight binaries is starting (e.g.
// "EXTRACTION WORKER", "consumes extraction-tasks, writes extracted_indicators").
func PrintBanner(component, description string, config *Config, logger arbor.ILogger) {
	version := GetVersion()
	build := GetBuild()

	b := banner.New().
		SetStyle(banner.StyleDouble).
		SetBorderColor(banner.ColorGreen).
		SetTextColor(banner.ColorWhite).
		SetBold(true).
		SetWidth(80)

	fmt.Printf("\n")
	b.PrintTopLine()
	b.PrintCenteredText(component)
	b.PrintCenteredText(description)
	b.PrintSeparatorLine()
	b.PrintKeyValue("Version", version, 15)
	b.PrintKeyValue("Build", build, 15)
	b.PrintKeyValue("DB", config.DB.Host, 15)
	b.PrintKeyValue("Broker", config.Broker.Host, 15)
	b.PrintBottomLine()
	fmt.Printf("\n")

	logger.Info().
		Str("component", component).
		Str("version", version).
		Str("build", build).
		Str("db_host", config.DB.Host).
		Str("broker_host", config.Broker.Host).
		Msg("application started")
}

// PrintShutdownBanner displays the shutdown banner for one pipeline binary.
func PrintShutdownBanner(component string, logger arbor.ILogger) {
	b := banner.New().
		SetStyle(banner.StyleDouble).
		SetBorderColor(banner.ColorGreen).
		SetTextColor(banner.ColorWhite).
		SetBold(true).
		SetWidth(42)

	b.PrintTopLine()
	b.PrintCenteredText("SHUTTING DOWN")
	b.PrintCenteredText(component)
	b.PrintBottomLine()
	fmt.Println()

	logger.Info().Str("component", component).Msg("application shutting down")
}

// PrintColorizedMessage prints a message with the given color; it does not
// log it.
func PrintColorizedMessage(color, message string, logger arbor.ILogger) {
	fmt.Printf("%s%s%s\n", color, message, banner.ColorReset)
}

// PrintSuccess prints and logs a success message.
func PrintSuccess(message string) {
	logger := GetLogger()
	PrintColorizedMessage(banner.ColorGreen, fmt.Sprintf("✓ %s", message), logger)
	logger.Info().Str("type", "success").Msg(message)
}

// PrintError prints and logs an error message.
func PrintError(message string) {
	logger := GetLogger()
	PrintColorizedMessage(banner.ColorRed, fmt.Sprintf("✗ %s", message), logger)
	logger.Error().Str("type", "error").Msg(message)
}

// PrintWarning prints and logs a warning message.
func PrintWarning(message string) {
	logger := GetLogger()
	PrintColorizedMessage(banner.ColorYellow, fmt.Sprintf("⚠ %s", message), logger)
	logger.Warn().Str("type", "warning").Msg(message)
}
