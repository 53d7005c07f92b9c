package models

// Computer представляет одну запись инвентаря
type Computer struct {
	Name string `json:"name"`
	Type string `json:"type"`
	FIO  string `json:"fio"`
}

// Источники данных инвентаря
const (
	DataSourceFile   = "csv"
	DataSourceScript = "ps"
)

// Preset - быстрый выбор цели в панели
type Preset struct {
	Name string `json:"name"`
	IP   string `json:"ip"`
}

// ReservedComputer - закрепленный компьютер
type ReservedComputer struct {
	Name   string `json:"name"`
	Target string `json:"target"`
}

// Settings - настройки панели, формат совместим с фронтендом
type Settings struct {
	ViewerPath                 string             `json:"cmrcviewer_path"`
	Presets                    []Preset           `json:"presets" validate:"dive"`
	DataSource                 string             `json:"dataSource" validate:"oneof=csv ps"`
	CSVPath                    string             `json:"csvPath"`
	PSScriptPath               string             `json:"psScriptPath"`
	ReservedComputers          []ReservedComputer `json:"reservedComputers" validate:"dive"`
	ShowReservedComputersBlock bool               `json:"showReservedComputersBlock"`
	ShowPresetsBlock           bool               `json:"showPresetsBlock"`
	Theme                      string             `json:"theme" validate:"omitempty,oneof=light dark system"`
}

// DefaultSettings возвращает настройки по умолчанию
func DefaultSettings() *Settings {
	return &Settings{
		Presets:                    []Preset{},
		DataSource:                 DataSourceFile,
		ReservedComputers:          []ReservedComputer{},
		ShowReservedComputersBlock: true,
		ShowPresetsBlock:           true,
		Theme:                      "system",
	}
}

// DataSourceLocation - путь к источнику данных для выбранного типа
func (s *Settings) DataSourceLocation() string {
	if s.DataSource == DataSourceScript {
		return s.PSScriptPath
	}
	return s.CSVPath
}

// Clone возвращает глубокую копию настроек
func (s *Settings) Clone() *Settings {
	c := *s
	c.Presets = append([]Preset(nil), s.Presets...)
	c.ReservedComputers = append([]ReservedComputer(nil), s.ReservedComputers...)
	if c.Presets == nil {
		c.Presets = []Preset{}
	}
	if c.ReservedComputers == nil {
		c.ReservedComputers = []ReservedComputer{}
	}
	return &c
}
