// themecopy — copies theme-specific translations (JSON templates,
// section groups, settings data sections, locale content) between two
// themes of a Shopify shop via the Admin GraphQL API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/themetools/themecopy/config"
	"github.com/themetools/themecopy/copier"
	"github.com/themetools/themecopy/i18n"
	"github.com/themetools/themecopy/langmeta"
	"github.com/themetools/themecopy/report"
	"github.com/themetools/themecopy/settings"
	"github.com/themetools/themecopy/shopify"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	flagShop       string
	flagToken      string
	flagAPIVersion string
	flagConfig     string
	flagVerbose    bool
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "themecopy",
		Short: "Copy theme translations between Shopify themes",
		Long: `themecopy — clone theme-specific translations from a source theme to a
destination theme on the same shop, via the Admin GraphQL API.

Covered resource types: the theme itself, section groups, JSON
templates, settings data sections, and locale file content.

Commands:
  copy      Copy translations between two themes
  locales   List the shop's configured locales
  auth      Manage stored Admin API tokens
  version   Show version information

Token lookup order: --token flag, SHOPIFY_ADMIN_TOKEN (a .env file in
the working directory is honored), then the stored credential for the
shop ('themecopy auth set').`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagShop, "shop", "", "Shop domain (e.g. my-store.myshopify.com)")
	root.PersistentFlags().StringVar(&flagToken, "token", "", "Admin API access token")
	root.PersistentFlags().StringVar(&flagAPIVersion, "api-version", "", "Admin API version (default "+shopify.DefaultAPIVersion+")")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a themecopy.yaml config file (default: ./"+config.DefaultFileName+" if present)")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Per-resource progress logging")

	root.AddCommand(
		newCopyCmd(),
		newLocalesCmd(),
		newAuthCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		report.New().Errorf("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("themecopy version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// copy
// ---------------------------------------------------------------------------

type copyOptions struct {
	srcThemeID int64
	dstThemeID int64
	localesCSV string
	dryRun     bool
	showKeys   bool
	timing     bool
}

func newCopyCmd() *cobra.Command {
	var opts copyOptions

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy translations from a source theme to a destination theme",
		Long: `Copy all translations of every translatable theme resource from the
source theme to the destination theme. Resources are matched by their
theme-independent key (template path, section key, locale code);
source resources without a destination counterpart are skipped.

Values are copied verbatim. Re-running is safe: registrations
overwrite, they never append.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(cmd.Context(), opts)
		},
	}

	cmd.Flags().Int64Var(&opts.srcThemeID, "source-theme-id", 0, "Numeric ID of the source theme")
	cmd.Flags().Int64Var(&opts.dstThemeID, "dest-theme-id", 0, "Numeric ID of the destination theme")
	cmd.Flags().StringVar(&opts.localesCSV, "locales", "", "Comma-separated locales (default: all shop locales)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Simulate without writing")
	cmd.Flags().BoolVar(&opts.showKeys, "show-keys", false, "Log every copied key/value pair (implies --verbose)")
	cmd.Flags().BoolVar(&opts.timing, "timing", false, "Per-locale elapsed time and live progress")

	return cmd
}

func runCopy(ctx context.Context, opts copyOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	shop := firstNonEmpty(flagShop, cfg.Shop)
	if shop == "" {
		return errors.New("missing --shop")
	}
	if opts.srcThemeID == 0 {
		opts.srcThemeID = cfg.SourceThemeID
	}
	if opts.dstThemeID == 0 {
		opts.dstThemeID = cfg.DestThemeID
	}
	if opts.srcThemeID <= 0 || opts.dstThemeID <= 0 {
		return errors.New("missing or invalid --source-theme-id / --dest-theme-id")
	}

	token := config.ResolveToken(flagToken, shop)
	if token == "" {
		return errors.New(i18n.T("no Admin API token provided: use --token, SHOPIFY_ADMIN_TOKEN or 'themecopy auth set'"))
	}

	rep := report.New()
	rep.Verbose = flagVerbose || opts.showKeys
	rep.ShowKeys = opts.showKeys

	client := shopify.NewClient(shop, token,
		shopify.WithAPIVersion(firstNonEmpty(flagAPIVersion, cfg.APIVersion)))

	locales := config.SplitLocales(opts.localesCSV)
	if len(locales) == 0 {
		locales = cfg.Locales
	}
	if len(locales) == 0 {
		shopLocales, err := client.ShopLocales(ctx)
		if err != nil {
			return fmt.Errorf("resolving shop locales: %w", err)
		}
		for _, l := range shopLocales {
			locales = append(locales, l.Locale)
		}
	}
	if len(locales) == 0 {
		return errors.New(i18n.T("no locales to process"))
	}

	rep.Infof(i18n.T("Locales: %s"), strings.Join(locales, ", "))
	if opts.dryRun {
		rep.Infof(i18n.T("Dry run: no translations will be registered"))
	}

	c := &copier.Copier{Client: client, Reporter: rep, DryRun: opts.dryRun, Timing: opts.timing}
	sum := c.Run(ctx, opts.srcThemeID, opts.dstThemeID, locales)
	sum.Print(rep, opts.timing)

	// Fetch errors are fatal to the run; write failures are already
	// reflected in the summary and do not change the exit status.
	if sum.Failed() {
		return fmt.Errorf("aborted %d resource type(s) on fetch errors", len(sum.FetchErrs))
	}
	rep.Successf(i18n.T("Done"))
	return nil
}

// ---------------------------------------------------------------------------
// locales
// ---------------------------------------------------------------------------

func newLocalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the shop's configured locales",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocales(cmd.Context())
		},
	}
}

func runLocales(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	shop := firstNonEmpty(flagShop, cfg.Shop)
	if shop == "" {
		return errors.New("missing --shop")
	}
	token := config.ResolveToken(flagToken, shop)
	if token == "" {
		return errors.New(i18n.T("no Admin API token provided: use --token, SHOPIFY_ADMIN_TOKEN or 'themecopy auth set'"))
	}

	client := shopify.NewClient(shop, token,
		shopify.WithAPIVersion(firstNonEmpty(flagAPIVersion, cfg.APIVersion)))
	locales, err := client.ShopLocales(ctx)
	if err != nil {
		return fmt.Errorf("fetching shop locales: %w", err)
	}

	for _, l := range locales {
		name := ""
		if meta, ok := langmeta.Resolve(l.Locale); ok {
			name = fmt.Sprintf("%s %s", meta.Flag, meta.Name)
		}
		markers := ""
		if l.Primary {
			markers += " [primary]"
		}
		if l.Published {
			markers += " [published]"
		}
		fmt.Printf("%-10s %s%s\n", l.Locale, name, markers)
	}
	return nil
}

// ---------------------------------------------------------------------------
// auth (stored token management)
// ---------------------------------------------------------------------------

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage stored Admin API tokens",
		Long: `Manage per-shop Admin API tokens stored in the user data directory.
Stored tokens are used when neither --token nor SHOPIFY_ADMIN_TOKEN is
set.`,
	}
	cmd.AddCommand(newAuthSetCmd(), newAuthStatusCmd(), newAuthRemoveCmd())
	return cmd
}

func newAuthSetCmd() *cobra.Command {
	var note string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store a token for a shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagShop == "" {
				return errors.New("missing --shop")
			}
			if flagToken == "" {
				return errors.New("missing --token")
			}
			if err := settings.Set(flagShop, flagToken, note); err != nil {
				return err
			}
			report.New().Successf("Token stored for %s", flagShop)
			return nil
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "Free-form label shown by 'auth status'")
	return cmd
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show stored tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := settings.Load()
			if len(store) == 0 {
				fmt.Println(i18n.T("No tokens stored."))
				return nil
			}
			for shop, info := range store {
				line := fmt.Sprintf("%-40s %s", shop, maskToken(info.Token))
				if info.Note != "" {
					line += "  (" + info.Note + ")"
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newAuthRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove the stored token for a shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagShop == "" {
				return errors.New("missing --shop")
			}
			if err := settings.Delete(flagShop); err != nil {
				return err
			}
			report.New().Successf("Token removed for %s", flagShop)
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func loadConfig() (*config.File, error) {
	path := flagConfig
	explicit := path != ""
	if !explicit {
		path = config.DefaultFileName
	}
	return config.Load(path, explicit)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// maskToken hides all but the last four characters of a token.
func maskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
