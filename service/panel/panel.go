package panel

import (
	"rcpanel/core/applauncher"
	"rcpanel/core/inventory"
	"rcpanel/core/settings"
	"rcpanel/metrics"
	"rcpanel/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Launcher - операции запуска (core/applauncher.AppLauncher)
type Launcher interface {
	Launch(target, executablePath string) applauncher.Outcome
	OpenShare(target string) applauncher.Outcome
	StartPing(target string) applauncher.Outcome
}

// Panel - точка входа для HTTP и CLI.
// Каждый вызов берет текущие настройки заново.
type Panel struct {
	settings *settings.Manager
	launcher Launcher
	fs       afero.Fs
	log      logrus.FieldLogger
}

func NewPanel(settings *settings.Manager, launcher Launcher, fs afero.Fs, log logrus.FieldLogger) *Panel {
	return &Panel{
		settings: settings,
		launcher: launcher,
		fs:       fs,
		log:      log,
	}
}

// ListComputers - список компьютеров, пустой при любой ошибке
func (p *Panel) ListComputers() []models.Computer {
	computers := inventory.List(p.settings.Current(), p.fs, p.log)
	metrics.UpdateInventoryMetrics(len(computers))
	return computers
}

// LaunchSession - сеанс удаленного управления с путем к программе из настроек
func (p *Panel) LaunchSession(target string) applauncher.Outcome {
	outcome := p.launcher.Launch(target, p.settings.Current().ViewerPath)
	metrics.RecordLaunch("launch", string(outcome.Status))
	return outcome
}

func (p *Panel) OpenShare(target string) applauncher.Outcome {
	outcome := p.launcher.OpenShare(target)
	metrics.RecordLaunch("share", string(outcome.Status))
	return outcome
}

func (p *Panel) StartPing(target string) applauncher.Outcome {
	outcome := p.launcher.StartPing(target)
	metrics.RecordLaunch("ping", string(outcome.Status))
	return outcome
}

func (p *Panel) Settings() *models.Settings {
	return p.settings.Current()
}

func (p *Panel) UpdateSettings(s *models.Settings) error {
	if err := p.settings.Update(s); err != nil {
		return err
	}
	p.log.WithField("dataSource", s.DataSource).Info("settings updated")
	return nil
}
