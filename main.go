package main

import (
	"os"

	"rcpanel/config"
	"rcpanel/core/applauncher"
	"rcpanel/core/persistence"
	"rcpanel/core/settings"
	"rcpanel/service/panel"
	"rcpanel/ui"

	"github.com/fatih/color"
	"github.com/spf13/afero"
)

func main() {
	cfg := config.Load()
	log := config.NewLogger(cfg)

	fs := afero.NewOsFs()
	manager := settings.NewManager(persistence.NewSettingsStoreWithFile(fs, cfg.SettingsFile))
	if err := manager.Load(); err != nil {
		// Поврежденный файл не мешает запуску, остаются настройки по умолчанию
		log.WithError(err).Warn("using default settings")
	}

	launcher := applauncher.NewAppLauncher(fs, log)
	p := panel.NewPanel(manager, launcher, fs, log)
	web := ui.NewWebInterface(p, cfg.AllowedOrigins, log)

	console := ui.NewConsoleInterface(p, web, ui.ServeOptions{
		Addr:        cfg.Addr,
		UIURL:       cfg.UIURL,
		OpenBrowser: cfg.OpenBrowser,
	})

	if err := console.RootCommand().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
