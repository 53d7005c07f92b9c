package applauncher

import (
	"runtime"

	"rcpanel/core/validator"

	"github.com/alessio/shellescape"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Status - итог попытки запуска
type Status string

const (
	StatusStarted             Status = "started"
	StatusValidationFailed    Status = "validation_failed"
	StatusExecutableNotFound  Status = "executable_not_found"
	StatusPlatformUnsupported Status = "platform_unsupported"
	StatusSpawnFailed         Status = "spawn_failed"
)

const (
	// Внешние инструменты есть только под Windows
	supportedSystem = "windows"

	viewerTimeoutFlag = "/timeout:0,3"
	shareExecutable   = "explorer.exe"
	pingExecutable    = "cmd.exe"
)

// Outcome - результат запуска. Процесс после старта не отслеживается.
type Outcome struct {
	Status Status `json:"status"`
	Target string `json:"target"`
	Reason string `json:"reason,omitempty"`
	ID     string `json:"id,omitempty"`
}

// Started - процесс был создан
func (o Outcome) Started() bool {
	return o.Status == StatusStarted
}

type AppLauncher struct {
	system  string
	fs      afero.Fs
	spawner Spawner
	log     logrus.FieldLogger
}

func NewAppLauncher(fs afero.Fs, log logrus.FieldLogger) *AppLauncher {
	return &AppLauncher{
		system:  runtime.GOOS,
		fs:      fs,
		spawner: NewSpawner(),
		log:     log,
	}
}

// WithSpawner подменяет механизм создания процессов
func (a *AppLauncher) WithSpawner(spawner Spawner) *AppLauncher {
	a.spawner = spawner
	return a
}

// WithSystem подменяет операционную систему (runtime.GOOS)
func (a *AppLauncher) WithSystem(system string) *AppLauncher {
	a.system = system
	return a
}

// Launch - запуск сеанса удаленного управления: <viewer> <target> /timeout:0,3
func (a *AppLauncher) Launch(target, executablePath string) Outcome {
	if !validator.IsValidTarget(target) {
		return a.reject("launch", target, StatusValidationFailed)
	}
	target = validator.NormalizeTarget(target)

	if a.system != supportedSystem {
		return a.reject("launch", target, StatusPlatformUnsupported)
	}

	if !a.isRegularFile(executablePath) {
		a.log.WithField("path", executablePath).Warn("launcher: viewer executable not found")
		return Outcome{Status: StatusExecutableNotFound, Target: target}
	}

	return a.spawn("launch", target, executablePath, []string{target, viewerTimeoutFlag}, SpawnOptions{
		Detached:  true,
		Maximized: true,
	})
}

// OpenShare - открытие административного ресурса \\<target>\c$ в проводнике
func (a *AppLauncher) OpenShare(target string) Outcome {
	if !validator.IsValidTarget(target) {
		return a.reject("share", target, StatusValidationFailed)
	}
	target = validator.NormalizeTarget(target)

	if a.system != supportedSystem {
		return a.reject("share", target, StatusPlatformUnsupported)
	}

	return a.spawn("share", target, shareExecutable, []string{SharePath(target)}, SpawnOptions{
		Detached: true,
	})
}

// StartPing - непрерывный ping в отдельном окне консоли
func (a *AppLauncher) StartPing(target string) Outcome {
	if !validator.IsValidTarget(target) {
		return a.reject("ping", target, StatusValidationFailed)
	}
	target = validator.NormalizeTarget(target)

	if a.system != supportedSystem {
		return a.reject("ping", target, StatusPlatformUnsupported)
	}

	return a.spawn("ping", target, pingExecutable, []string{"/k", "ping", "-t", target}, SpawnOptions{
		Detached:   true,
		NewConsole: true,
	})
}

// SharePath - сетевой путь к диску C: компьютера
func SharePath(target string) string {
	return `\\` + target + `\c$`
}

func (a *AppLauncher) spawn(operation, target, path string, args []string, opts SpawnOptions) Outcome {
	id := uuid.NewString()
	entry := a.log.WithFields(logrus.Fields{
		"operation": operation,
		"target":    target,
		"launch_id": id,
		"command":   shellescape.QuoteCommand(append([]string{path}, args...)),
	})

	if err := a.spawner.Spawn(path, args, opts); err != nil {
		entry.WithError(err).Warn("launcher: failed to start process")
		return Outcome{Status: StatusSpawnFailed, Target: target, Reason: err.Error()}
	}

	entry.Info("launcher: process started")
	return Outcome{Status: StatusStarted, Target: target, ID: id}
}

func (a *AppLauncher) reject(operation, target string, status Status) Outcome {
	a.log.WithFields(logrus.Fields{
		"operation": operation,
		"target":    target,
		"system":    a.system,
	}).Warnf("launcher: rejected (%s)", status)
	return Outcome{Status: status, Target: target}
}

func (a *AppLauncher) isRegularFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := a.fs.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
