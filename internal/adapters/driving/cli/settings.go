package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/static-mcpify/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage build settings",
	Long: `View and change the tunables kept in <output>/smcp.toml.

Credentials are never stored in the file; they come from
CONTENTFUL_API_TOKEN and SPACE_ID (or a .env file).`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting in <output>/smcp.toml.

Keys:
  ` + strings.Join(services.SettingKeys(), "\n  "),
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.PersistentFlags().String("output", "", "output directory path")
	_ = settingsCmd.MarkPersistentFlagRequired("output")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString("output")
	service, err := newSettingsService(output)
	if err != nil {
		return err
	}
	settings := service.Get()
	out := newPrinter(cmd.OutOrStdout())

	out.header("[Contentful]")
	out.plain(fmt.Sprintf("  Space ID: %s", orNotSet(settings.Contentful.SpaceID)))
	if settings.Contentful.AccessToken != "" {
		out.plain(fmt.Sprintf("  Access Token: %s", maskAPIKey(settings.Contentful.AccessToken)))
	} else {
		out.plain("  Access Token: (not set)")
	}
	out.plain(fmt.Sprintf("  Environment: %s", settings.Contentful.Environment))
	out.plain(fmt.Sprintf("  Host: %s", settings.Contentful.Host))
	out.plain(fmt.Sprintf("  Requests/second: %g", settings.Contentful.RequestsPerSecond))
	out.plain(fmt.Sprintf("  Burst: %d", settings.Contentful.Burst))
	out.plain("")

	out.header("[Build]")
	out.plain(fmt.Sprintf("  Download concurrency: %d", settings.Build.DownloadConcurrency))
	out.plain("")

	if err := settings.Contentful.ValidateCredentials(); err != nil {
		out.warn(fmt.Sprintf("Warning: %v", err))
	} else {
		out.success("Credentials are set.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	service, err := newSettingsService(output)
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := service.Set(key, value); err != nil {
		return err
	}
	newPrinter(cmd.OutOrStdout()).success(fmt.Sprintf("Set %s = %s", key, value))
	return nil
}

func orNotSet(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
