package inventory

import (
	"rcpanel/models"

	"github.com/sirupsen/logrus"
)

// ScriptSource - источник на основе PowerShell скрипта.
// Контракт скрипта (аргументы и формат вывода) еще не определен,
// поэтому источник всегда пуст.
type ScriptSource struct {
	path string
	log  logrus.FieldLogger
}

func NewScriptSource(path string, log logrus.FieldLogger) *ScriptSource {
	return &ScriptSource{path: path, log: log}
}

func (s *ScriptSource) source() {}

func (s *ScriptSource) ListComputers() []models.Computer {
	s.log.WithField("script", s.path).Warn("inventory: script data source is not implemented")
	return []models.Computer{}
}
