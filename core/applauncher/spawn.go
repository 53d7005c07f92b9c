package applauncher

// SpawnOptions - параметры создания процесса
type SpawnOptions struct {
	// Detached - процесс живет независимо от панели
	Detached bool
	// NewConsole - отдельное окно консоли (для консольных программ)
	NewConsole bool
	// Maximized - развернуть окно, если система это поддерживает
	Maximized bool
}

// Spawner создает процесс и сразу возвращается, не дожидаясь его завершения.
// Аргументы передаются списком, без сборки строки для командного интерпретатора.
type Spawner interface {
	Spawn(path string, args []string, opts SpawnOptions) error
}

// SpawnerFunc - адаптер функции к Spawner
type SpawnerFunc func(path string, args []string, opts SpawnOptions) error

func (f SpawnerFunc) Spawn(path string, args []string, opts SpawnOptions) error {
	return f(path, args, opts)
}
