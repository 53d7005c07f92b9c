//go:build windows

package applauncher

import (
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"
)

type windowsSpawner struct{}

func NewSpawner() Spawner {
	return windowsSpawner{}
}

func (windowsSpawner) Spawn(path string, args []string, opts SpawnOptions) error {
	// ComposeCommandLine экранирует каждый аргумент отдельно
	commandLine, err := windows.UTF16PtrFromString(windows.ComposeCommandLine(append([]string{path}, args...)))
	if err != nil {
		return err
	}

	// Короткие имена (cmd.exe, explorer.exe) ищутся системой по PATH
	var appName *uint16
	if filepath.IsAbs(path) {
		appName, err = windows.UTF16PtrFromString(path)
		if err != nil {
			return err
		}
	}

	si := &windows.StartupInfo{}
	si.Cb = uint32(unsafe.Sizeof(*si))
	if opts.Maximized {
		si.Flags |= windows.STARTF_USESHOWWINDOW
		si.ShowWindow = windows.SW_SHOWMAXIMIZED
	}

	flags := uint32(windows.CREATE_NEW_PROCESS_GROUP)
	switch {
	case opts.NewConsole:
		flags |= windows.CREATE_NEW_CONSOLE
	case opts.Detached:
		flags |= windows.DETACHED_PROCESS
	}

	pi := &windows.ProcessInformation{}
	if err := windows.CreateProcess(appName, commandLine, nil, nil, false, flags, nil, nil, si, pi); err != nil {
		return err
	}

	windows.CloseHandle(pi.Thread)
	windows.CloseHandle(pi.Process)
	return nil
}
