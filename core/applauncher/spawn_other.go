//go:build !windows

package applauncher

import "os/exec"

type execSpawner struct{}

func NewSpawner() Spawner {
	return execSpawner{}
}

func (execSpawner) Spawn(path string, args []string, _ SpawnOptions) error {
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Wait только забирает код завершения, вызывающий не ждет
	go cmd.Wait()
	return nil
}
