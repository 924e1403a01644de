package commands

import (
	"context"

	"produce-mcp/internal/catalog"
	"produce-mcp/internal/config"
	"produce-mcp/internal/logging"
	"produce-mcp/internal/mcp"
	"produce-mcp/internal/roles"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose  bool
	roleFlag string
	cfg      *config.AppConfig

	produce *catalog.Catalog
)

var rootCmd = &cobra.Command{
	Use:   "produce-mcp",
	Short: "Produce-MCP is an MCP Server for a produce catalog and its annual shipment calendar",
	Long: `An MCP Server that serves a produce catalog, sales deals and product management,
and builds the annual shipment calendar: 36 ten-day slots per item, shaded by shipped volume.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := logging.Init(verbose); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialise logging")
		}

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		if roleFlag != "" {
			if cfg.Role, err = roles.Parse(roleFlag); err != nil {
				log.Fatal().Err(err).Msg("Invalid --role")
			}
		}

		produce, err = catalog.Load(cmd.Context(), cfg.DataPath)
		if err != nil {
			log.Fatal().Err(err).Str("dataPath", cfg.DataPath).Msg("Failed to load catalog")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("role", string(cfg.Role)).
			Str("roleTitle", cfg.Role.Title()).
			Int("items", len(produce.Items())).
			Msg("Produce-MCP starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(cfg, produce, Version)
		return server.Start(cmd.Context())
	},
}

// Execute runs the root command; ctx cancellation stops the MCP server.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&roleFlag, "role", "", "role whose views are served: customer, sales or admin (overrides PRODUCE_ROLE)")
	rootCmd.AddCommand(calendarCmd)
}
