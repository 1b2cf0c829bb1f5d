// countdown is the local CLI and terminal UI for a release countdown.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/bborn/countdown/internal/config"
	"github.com/bborn/countdown/internal/countdown"
	"github.com/bborn/countdown/internal/db"
	"github.com/bborn/countdown/internal/links"
	"github.com/bborn/countdown/internal/presenter"
	"github.com/bborn/countdown/internal/server"
	"github.com/bborn/countdown/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	version = "dev"

	// Styles for CLI output
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	boldStyle    = lipgloss.NewStyle().Bold(true)

	// styled is false when stdout is not a terminal.
	styled = term.IsTerminal(int(os.Stdout.Fd()))
)

func render(style lipgloss.Style, s string) string {
	if !styled {
		return s
	}
	return style.Render(s)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
	os.Exit(1)
}

func main() {
	var releasePath string

	rootCmd := &cobra.Command{
		Use:     "countdown",
		Short:   "Release countdown",
		Long:    "A live terminal countdown to a release date, with trailers and store links.",
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runTUI(releasePath); err != nil {
				fail(err)
			}
		},
	}

	rootCmd.SetVersionTemplate(`{{.Version}}
`)
	rootCmd.PersistentFlags().StringVar(&releasePath, "release", "", "Release config path (default: ~/.config/countdown/release.yaml)")

	rootCmd.AddCommand(
		newRemainingCmd(&releasePath),
		newElapsedCmd(),
		newPrefsCmd(),
		newConfigCmd(&releasePath),
		newServeCmd(&releasePath),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveReleasePath(path string) string {
	if path == "" {
		return config.DefaultReleaseConfigPath()
	}
	return path
}

func runTUI(releasePath string) error {
	releasePath = resolveReleasePath(releasePath)

	database, err := db.Open(db.DefaultPath())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	release, err := config.LoadRelease(releasePath)
	if err != nil {
		return fmt.Errorf("load release: %w", err)
	}

	keybindings, err := config.LoadKeybindings()
	if err != nil {
		fmt.Fprintln(os.Stderr, dimStyle.Render("Warning: ignoring keybindings: "+err.Error()))
	}

	defer ui.CloseLogger()
	model := ui.NewAppModel(ui.Config{
		Release:     release,
		ReleasePath: releasePath,
		Prefs:       config.NewPreferences(database),
		Visits:      database,
		Client:      db.LocalClient,
		Opener:      links.BrowserOpener{},
		Keybindings: keybindings,
		Bell:        ui.RingBell,
	})
	defer model.Cleanup()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

// snapshotAt computes the countdown to calc's target as of ref.
func snapshotAt(calc *countdown.Calculator, ref time.Time) presenter.Snapshot {
	r := calc.At(ref)
	return presenter.Snapshot{
		Target:    calc.Target,
		At:        ref,
		Remaining: r,
		Greatest:  countdown.Greatest(r),
	}
}

func newRemainingCmd(releasePath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remaining",
		Short: "Print the time left until release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, _ := cmd.Flags().GetString("at")
			outputJSON, _ := cmd.Flags().GetBool("json")

			release, err := config.LoadRelease(resolveReleasePath(*releasePath))
			if err != nil {
				return err
			}

			calc := countdown.NewCalculator(release.TargetTime())
			ref := calc.Now()
			if at != "" {
				if ref, err = countdown.ParseTarget(at); err != nil {
					return err
				}
			}
			snap := snapshotAt(calc, ref)

			if outputJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(server.NewCountdownResponse(snap))
			}

			fmt.Fprintln(cmd.OutOrStdout(), render(boldStyle, release.Title)+" "+render(dimStyle, release.DateLabel))
			line := ui.PlainCountdown(snap)
			if snap.Reached() {
				line = render(successStyle, line)
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
	cmd.Flags().String("at", "", "Reference time (ISO-8601) instead of now")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func newElapsedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elapsed <date>",
		Short: "Print the time since a date",
		Example: `  countdown elapsed 2023-12-05
  countdown elapsed 2025-05-06T14:00:00Z --absolute`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absolute, _ := cmd.Flags().GetBool("absolute")

			since, err := countdown.ParseTarget(args[0])
			if err != nil {
				return err
			}
			now := time.Now()
			if absolute {
				fmt.Fprintln(cmd.OutOrStdout(), countdown.AbsoluteElapsed(since, now))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), countdown.RelativeElapsed(since, now))
			}
			return nil
		},
	}
	cmd.Flags().Bool("absolute", false, "Print years, months and days instead of a relative phrase")
	return cmd
}

// openPrefs opens the default database and returns its preferences.
func openPrefs() (*db.DB, *config.Preferences, error) {
	database, err := db.Open(db.DefaultPath())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return database, config.NewPreferences(database), nil
}

func newPrefsCmd() *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change preferences",
	}

	prefsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, prefs, err := openPrefs()
			if err != nil {
				return err
			}
			defer database.Close()

			stored, err := database.GetAllSettings()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			all := prefs.All()
			for _, key := range config.Keys() {
				value := render(dimStyle, "false")
				if all[key] {
					value = render(successStyle, "true")
				}
				if _, ok := stored[key]; !ok {
					value += render(dimStyle, " (default)")
				}
				fmt.Fprintf(out, "%s = %s\n", render(boldStyle, key), value)
			}
			fmt.Fprintf(out, "%s = %s\n", render(boldStyle, config.SettingTheme), prefs.Theme())
			return nil
		},
	})

	prefsCmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print one preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, prefs, err := openPrefs()
			if err != nil {
				return err
			}
			defer database.Close()

			key := args[0]
			if key == config.SettingTheme {
				fmt.Fprintln(cmd.OutOrStdout(), prefs.Theme())
				return nil
			}
			def, err := config.Default(key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prefs.Get(key, def))
			return nil
		},
	})

	prefsCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one preference",
		Example: `  countdown prefs set blur_enabled false
  countdown prefs set theme nord`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, prefs, err := openPrefs()
			if err != nil {
				return err
			}
			defer database.Close()

			key, value := args[0], args[1]
			if key == config.SettingTheme {
				if _, ok := ui.BuiltinThemes[value]; !ok {
					return fmt.Errorf("unknown theme %q (available: %v)", value, ui.ListThemes())
				}
				if err := prefs.SetTheme(value); err != nil {
					return err
				}
			} else {
				if _, err := config.Default(key); err != nil {
					return err
				}
				b, err := config.ParseBool(value)
				if err != nil {
					return err
				}
				if err := prefs.Set(key, b); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), render(successStyle, fmt.Sprintf("Set %s = %s", key, value)))
			return nil
		},
	})

	prefsCmd.AddCommand(&cobra.Command{
		Use:   "reset [key]",
		Short: "Restore one preference, or all of them, to the default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, _, err := openPrefs()
			if err != nil {
				return err
			}
			defer database.Close()

			var keys []string
			if len(args) == 1 {
				key := args[0]
				if key != config.SettingTheme {
					if _, err := config.Default(key); err != nil {
						return err
					}
				}
				keys = []string{key}
			} else {
				stored, err := database.GetAllSettings()
				if err != nil {
					return err
				}
				for key := range stored {
					keys = append(keys, key)
				}
				sort.Strings(keys)
			}

			for _, key := range keys {
				if err := database.DeleteSetting(key); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), render(successStyle, fmt.Sprintf("Reset %d preference(s)", len(keys))))
			return nil
		},
	})

	return prefsCmd
}

func newConfigCmd(releasePath *string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration files",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default release.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			path := resolveReleasePath(*releasePath)
			if err := config.WriteDefaultRelease(path, force); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render(successStyle, "Wrote "+path))
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configCmd.AddCommand(initCmd)

	configCmd.AddCommand(&cobra.Command{
		Use:   "keybindings",
		Short: "Print the default keybindings YAML",
		Long: fmt.Sprintf(`Print the default keybindings YAML.

Save the output to %s to customize keys.`, config.DefaultKeybindingsConfigPath()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yaml := config.GenerateDefaultKeybindingsYAML()
			fmt.Fprint(cmd.OutOrStdout(), yaml)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print configuration and data paths",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", render(dimStyle, "release:    "), resolveReleasePath(*releasePath))
			fmt.Fprintf(out, "%s %s\n", render(dimStyle, "keybindings:"), config.DefaultKeybindingsConfigPath())
			fmt.Fprintf(out, "%s %s\n", render(dimStyle, "database:   "), db.DefaultPath())
			fmt.Fprintf(out, "%s %s\n", render(dimStyle, "log:        "), ui.LogPath())
		},
	})

	return configCmd
}

func newServeCmd(releasePath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the countdown over SSH and HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			httpAddr, _ := cmd.Flags().GetString("http")
			hostKey, _ := cmd.Flags().GetString("host-key")
			authorizedKeys, _ := cmd.Flags().GetString("authorized-keys")

			if hostKey == "" {
				home, _ := os.UserHomeDir()
				hostKey = filepath.Join(home, ".ssh", "countdown_ed25519")
			}

			logger := log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				Prefix:          "countdown",
			})

			database, err := db.Open(db.DefaultPath())
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			release, err := config.LoadRelease(resolveReleasePath(*releasePath))
			if err != nil {
				return err
			}
			keybindings, err := config.LoadKeybindings()
			if err != nil {
				logger.Warn("Ignoring keybindings", "error", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.RunDaemon(ctx, server.DaemonConfig{
				SSHAddr:            addr,
				HTTPAddr:           httpAddr,
				HostKeyPath:        hostKey,
				AuthorizedKeysPath: authorizedKeys,
				Release:            release,
				DB:                 database,
				Keybindings:        keybindings,
				Logger:             logger,
			})
		},
	}
	cmd.Flags().String("addr", ":2222", "SSH server address")
	cmd.Flags().String("http", ":3333", "HTTP address for the countdown stream")
	cmd.Flags().String("host-key", "", "SSH host key path (default: ~/.ssh/countdown_ed25519)")
	cmd.Flags().String("authorized-keys", "", "Only admit keys listed in this file")
	return cmd
}
