package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	appcfg "github.com/primeharmonic/swipe/cmd/swipe/internal/config"
	"github.com/primeharmonic/swipe/pkg/cli"
	"github.com/primeharmonic/swipe/pkg/kv"
	"github.com/primeharmonic/swipe/pkg/pitch/cache"
)

var configShowJSON bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage persisted defaults and the plan cache",
	Long: `Manage the defaults file (~/.config/swipe/config.yaml) that seeds the
-r, -s, and -t flags, and the on-disk analysis-plan cache used by batch
runs.

Examples:
  swipe config show
  swipe config set range 80:400
  swipe config set strength 0.25
  swipe config set timestep 0.01
  swipe config purge-cache`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		defaults, err := appcfg.Load(appName)
		if err != nil {
			return err
		}
		format := cli.FormatYAML
		if configShowJSON {
			format = cli.FormatJSON
		}
		return cli.Output(defaults, cli.OutputOptions{Format: format, Writer: cmd.OutOrStdout()})
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a default: range MIN:MAX, strength T, or timestep DT",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := appcfg.Load(appName)
		if err != nil {
			return err
		}
		switch args[0] {
		case "range":
			minHz, maxHz, err := parseRange(args[1])
			if err != nil {
				return err
			}
			defaults.MinHz, defaults.MaxHz = minHz, maxHz
		case "strength":
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid strength %q: %w", args[1], err)
			}
			defaults.StrengthThreshold = v
		case "timestep":
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid timestep %q: %w", args[1], err)
			}
			defaults.Dt = v
		default:
			return fmt.Errorf("unknown config key %q (want range, strength, or timestep)", args[0])
		}
		return appcfg.Save(appName, defaults)
	},
}

var configPurgeCacheCmd = &cobra.Command{
	Use:   "purge-cache",
	Short: "Drop all cached analysis plans",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		paths, err := cli.NewPaths(appName)
		if err != nil {
			return fmt.Errorf("resolve cache dir: %w", err)
		}
		store, err := kv.NewBadger(kv.BadgerOptions{Dir: paths.CachePath("plans")})
		if err != nil {
			return fmt.Errorf("open plan cache: %w", err)
		}
		pc := cache.New(store)
		defer pc.Close()

		n, err := pc.Purge(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "purged %d cached plans\n", n)
		return nil
	},
}

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "print as JSON instead of YAML")
	configCmd.AddCommand(configShowCmd, configSetCmd, configPurgeCacheCmd)
	rootCmd.AddCommand(configCmd)
}
