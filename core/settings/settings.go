// Package settings владеет текущими настройками панели.
//
// Значение заменяется целиком: читатели видят либо старые, либо новые
// настройки, но никогда частично обновленные.
package settings

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	target "rcpanel/core/validator"
	"rcpanel/models"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Store - хранилище настроек (core/persistence.SettingsStore)
type Store interface {
	Read() (*models.Settings, error)
	Write(*models.Settings) error
}

// ValidationError - настройки не прошли проверку
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid settings: " + strings.Join(e.Problems, "; ")
}

type Manager struct {
	store    Store
	validate *validator.Validate
	writeMu  sync.Mutex
	current  atomic.Pointer[models.Settings]
}

func NewManager(store Store) *Manager {
	m := &Manager{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	m.current.Store(models.DefaultSettings())
	return m
}

// Load читает настройки из хранилища
func (m *Manager) Load() error {
	s, err := m.store.Read()
	if err != nil {
		return errors.Wrap(err, "loading settings")
	}
	m.current.Store(s)
	return nil
}

// Current возвращает копию текущих настроек
func (m *Manager) Current() *models.Settings {
	return m.current.Load().Clone()
}

// Update проверяет, сохраняет и публикует новые настройки
func (m *Manager) Update(s *models.Settings) error {
	if s == nil {
		return &ValidationError{Problems: []string{"settings are empty"}}
	}
	next := s.Clone()
	if err := m.Validate(next); err != nil {
		return err
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if err := m.store.Write(next); err != nil {
		return errors.Wrap(err, "saving settings")
	}
	m.current.Store(next)
	return nil
}

// Validate - проверка полей и целей в пресетах
func (m *Manager) Validate(s *models.Settings) error {
	var problems []string

	if err := m.validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return errors.Wrap(err, "validating settings")
		}
		for _, fe := range fieldErrs {
			problems = append(problems, fmt.Sprintf("%s: failed %q (value %q)", fe.Namespace(), fe.Tag(), fmt.Sprint(fe.Value())))
		}
	}

	for i, p := range s.Presets {
		if p.IP != "" && !target.IsValidTarget(p.IP) {
			problems = append(problems, fmt.Sprintf("presets[%d]: invalid target %q", i, p.IP))
		}
	}
	for i, r := range s.ReservedComputers {
		if r.Target != "" && !target.IsValidTarget(r.Target) {
			problems = append(problems, fmt.Sprintf("reservedComputers[%d]: invalid target %q", i, r.Target))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
