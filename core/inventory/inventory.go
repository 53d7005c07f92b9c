// Package inventory читает список компьютеров из настроенного источника.
//
// Источник выбирается по Settings.DataSource. Ошибки чтения никогда не
// возвращаются вызывающему: вместо них пишется предупреждение в лог и
// возвращается пустой список.
package inventory

import (
	"rcpanel/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Source - источник записей инвентаря.
// Набор реализаций закрыт: FileSource и ScriptSource.
type Source interface {
	ListComputers() []models.Computer
	source()
}

// SourceFor выбирает источник по настройкам
func SourceFor(settings *models.Settings, fs afero.Fs, log logrus.FieldLogger) Source {
	location := settings.DataSourceLocation()
	if settings.DataSource == models.DataSourceScript {
		return NewScriptSource(location, log)
	}
	return NewFileSource(fs, location, log)
}

// List - список компьютеров для текущих настроек
func List(settings *models.Settings, fs afero.Fs, log logrus.FieldLogger) []models.Computer {
	if settings == nil {
		return []models.Computer{}
	}
	return SourceFor(settings, fs, log).ListComputers()
}
