package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"

	"rcpanel/models"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const DefaultSettingsFile = "settings.json"

// SettingsStore хранит настройки панели в JSON файле
type SettingsStore struct {
	fs       afero.Fs
	dataFile string
}

func NewSettingsStore(fs afero.Fs) *SettingsStore {
	return &SettingsStore{
		fs:       fs,
		dataFile: DefaultSettingsFile,
	}
}

func NewSettingsStoreWithFile(fs afero.Fs, dataFile string) *SettingsStore {
	return &SettingsStore{
		fs:       fs,
		dataFile: dataFile,
	}
}

// Path - путь к файлу настроек
func (s *SettingsStore) Path() string {
	return s.dataFile
}

// Read - загрузка настроек. Отсутствующий файл дает настройки по умолчанию,
// отсутствующие поля заполняются значениями по умолчанию.
func (s *SettingsStore) Read() (*models.Settings, error) {
	data, err := afero.ReadFile(s.fs, s.dataFile)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultSettings(), nil
		}
		return nil, errors.Wrapf(err, "reading settings file %s", s.dataFile)
	}

	settings := models.DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, errors.Wrapf(err, "decoding settings file %s", s.dataFile)
	}

	return settings.Clone(), nil
}

// Write - сохранение настроек: запись во временный файл и переименование
func (s *SettingsStore) Write(settings *models.Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding settings")
	}

	if dir := filepath.Dir(s.dataFile); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "creating settings directory %s", dir)
		}
	}

	tmp := s.dataFile + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing settings file %s", tmp)
	}
	if err := s.fs.Rename(tmp, s.dataFile); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, "replacing settings file %s", s.dataFile)
	}

	return nil
}
