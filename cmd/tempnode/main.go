package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/lassejon/tempnode/internal/api"
	"github.com/lassejon/tempnode/internal/clock"
	"github.com/lassejon/tempnode/internal/config"
	"github.com/lassejon/tempnode/internal/creds"
	"github.com/lassejon/tempnode/internal/netlink"
	"github.com/lassejon/tempnode/internal/sensor"
	"github.com/lassejon/tempnode/internal/telemetry"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	godotenv.Load()

	// Resolve config next to the executable
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	configPath := filepath.Join(filepath.Dir(exePath), "tempnode.yaml")
	if p := os.Getenv("TEMPNODE_CONFIG"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	store, err := creds.NewFileStore(cfg.Storage.CredentialsDirectory)
	if err != nil {
		fmt.Printf("Failed to initialize credential store: %v\n", err)
		os.Exit(1)
	}
	credentials := store.Load()

	// Boot-time connectivity decision: station mode or provisioning fallback
	manager := netlink.NewManager(&netlink.HostLink{}, cfg.Network.AccessPointName,
		cfg.ConnectTimeout(), cfg.PollInterval())
	state := manager.Establish(credentials)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.ErrorHandler
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	h := api.NewHandler(store, cfg.Storage.LogFile, netlink.ProcessRestarter{}, cfg.RestartDelay())

	if state == netlink.Connected {
		tlog := telemetry.NewLog(cfg.Storage.LogFile)
		if err := tlog.Init(); err != nil {
			// Storage failures degrade: the node keeps broadcasting live data
			fmt.Printf("Failed to initialize telemetry log: %v\n", err)
		}

		authority := clock.NTPAuthority{Host: cfg.Time.NTPHost, Offset: cfg.TimeOffset()}
		source := clock.NewSource(authority, cfg.Time.MaxRetries)
		probe := sensor.NewSimulated(21.5, time.Now().UnixNano())

		var sampler *telemetry.Sampler
		hub := api.NewHub(func() (telemetry.Reading, bool) { return sampler.Latest() })
		sampler = telemetry.NewSampler(probe, source, tlog, hub, cfg.SamplePeriod())
		go sampler.Run(ctx)

		if err := api.RegisterConnected(e, h, hub); err != nil {
			fmt.Printf("Failed to register routes: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := api.RegisterFallback(e, h); err != nil {
			fmt.Printf("Failed to register routes: %v\n", err)
			os.Exit(1)
		}
	}

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	mode := "Live Dashboard"
	if state != netlink.Connected {
		mode = "Provisioning (Access Point)"
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Temperature Sensor Node                         ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  Mode:       %-45s║\n", mode)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Data Dir:  %-46s║\n", cfg.Storage.DataDirectory)
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	go func() {
		if err := e.StartServer(s); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
