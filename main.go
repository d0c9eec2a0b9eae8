package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/openclaw/qrgen/api"
	"github.com/openclaw/qrgen/config"
	"github.com/openclaw/qrgen/payload"
	"github.com/openclaw/qrgen/qr"
)

var version = "v0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Each call gets its own flag state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "qrgen",
		Short: "QR code generator for text, links, contacts, Wi-Fi and locations",
	}

	var configPath string
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")

	// --- serve command -------------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the web form and HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	})

	// --- generate command ----------------------------------------------------
	var gen generateFlags
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a QR code PNG file",
		Example: `  qrgen generate --type url --url https://example.com
  qrgen generate --type wifi --ssid Home --password secret --auth WPA -o wifi.png
  qrgen generate --type contact --name "Jane Doe" --phone 123 --logo logo.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, configPath, &gen)
		},
	}
	gen.register(generateCmd)
	root.AddCommand(generateCmd)

	// --- version command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "qrgen %s\n", version)
		},
	})

	return root
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// runServe wires the config, logger and router and serves until SIGINT or
// SIGTERM.
func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger(cfg.LogLevel)
	slog.SetDefault(log)

	defaults, err := cfg.Defaults.Options()
	if err != nil {
		return fmt.Errorf("render defaults: %w", err)
	}

	log.Info("starting qrgen", "version", version, "port", cfg.Port)

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: api.NewRouter(&api.Server{
			Defaults:     defaults,
			MaxLogoBytes: cfg.MaxLogoBytes,
			Log:          log,
			Version:      version,
			StartTime:    time.Now(),
		}),
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("form is available", "url", fmt.Sprintf("http://localhost:%d/", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	log.Info("goodbye")
	return nil
}

// generateFlags holds the flags of the generate command.
type generateFlags struct {
	kind       string
	fields     map[string]*string
	moduleSize int
	border     int
	fg         string
	bg         string
	escape     bool
	logo       string
	out        string
}

func (g *generateFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&g.kind, "type", "t", "", "Data type: text, url, contact, wifi or location")

	g.fields = map[string]*string{}
	for _, def := range []struct{ name, usage string }{
		{payload.FieldText, "Text to encode"},
		{payload.FieldURL, "URL to encode"},
		{payload.FieldName, "Contact name"},
		{payload.FieldPhone, "Contact phone number"},
		{payload.FieldEmail, "Contact email"},
		{payload.FieldAddress, "Contact address"},
		{payload.FieldSSID, "Wi-Fi network name"},
		{payload.FieldPassword, "Wi-Fi password"},
		{payload.FieldAuth, "Wi-Fi security: WPA, WEP or None"},
		{payload.FieldLatitude, "Latitude"},
		{payload.FieldLongitude, "Longitude"},
	} {
		g.fields[def.name] = f.String(def.name, "", def.usage)
	}

	f.IntVar(&g.moduleSize, "module-size", 0, "Pixels per module, 1-20 (default from config)")
	f.IntVar(&g.border, "border", 0, "Border width in modules, 1-10 (default from config)")
	f.StringVar(&g.fg, "fg", "", "Foreground colour as #RRGGBB (default from config)")
	f.StringVar(&g.bg, "bg", "", "Background colour as #RRGGBB (default from config)")
	f.BoolVar(&g.escape, "escape", false, "Escape special characters in contact and Wi-Fi fields")
	f.StringVar(&g.logo, "logo", "", "Logo image to place in the centre")
	f.StringVarP(&g.out, "output", "o", qr.FileName, "Output PNG file")
}

// runGenerate writes one QR code PNG to the output file.
func runGenerate(cmd *cobra.Command, configPath string, g *generateFlags) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg.LogLevel)

	opts, err := cfg.Defaults.Options()
	if err != nil {
		return fmt.Errorf("render defaults: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("module-size") {
		opts.ModuleSize = g.moduleSize
	}
	if flags.Changed("border") {
		opts.Border = g.border
	}
	if flags.Changed("fg") {
		if opts.Foreground, err = qr.ParseHexColor(g.fg); err != nil {
			return err
		}
	}
	if flags.Changed("bg") {
		if opts.Background, err = qr.ParseHexColor(g.bg); err != nil {
			return err
		}
	}
	if flags.Changed("escape") {
		opts.Escape = g.escape
	}

	fields := make(map[string]string, len(g.fields))
	for name, v := range g.fields {
		fields[name] = *v
	}
	record, err := payload.FromFields(g.kind, fields)
	if err != nil {
		return err
	}

	var logo []byte
	if g.logo != "" {
		if logo, err = os.ReadFile(g.logo); err != nil {
			return fmt.Errorf("read logo: %w", err)
		}
	}

	res, err := qr.Generate(record, opts, logo)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if err := os.WriteFile(g.out, res.PNG, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", g.out, err)
	}
	log.Info("qr code written", "file", g.out, "version", res.Version, "width", res.Width, "bytes", len(res.PNG))
	return nil
}
