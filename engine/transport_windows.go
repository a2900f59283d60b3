// Copyright (C) 2025 Brigham Skarda

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

//go:build windows

package engine

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"unsafe"

	"golang.org/x/sys/windows"
)

type execTransport struct {
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr io.ReadCloser
	cmd    *exec.Cmd
	job    windows.Handle
}

// NewTransport starts program as a child process inside a windows job
// object, so Kill/Terminate tear down any grandchildren it spawns.
func NewTransport(program string, settings Settings) (Transport, error) {
	cmd := exec.Command(program, settings.Args...)
	cmd.Env = settings.Env
	cmd.Dir = settings.WorkDir

	t := &execTransport{cmd: cmd}
	var err error
	if t.stdout, err = cmd.StdoutPipe(); err != nil {
		return nil, fmt.Errorf("could not start engine: %w", err)
	}
	if t.stdin, err = cmd.StdinPipe(); err != nil {
		t.stdout.Close()
		return nil, fmt.Errorf("could not start engine: %w", err)
	}
	if t.stderr, err = cmd.StderrPipe(); err != nil {
		t.stdin.Close()
		t.stdout.Close()
		return nil, fmt.Errorf("could not start engine: %w", err)
	}

	cmd.SysProcAttr = &windows.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_SUSPENDED | windows.CREATE_NEW_PROCESS_GROUP,
	}
	if err := cmd.Start(); err != nil {
		t.stdin.Close()
		t.stdout.Close()
		t.stderr.Close()
		return nil, fmt.Errorf("could not start engine: %w", err)
	}

	if err := addToJobObject(t); err != nil {
		cmd.Process.Kill()
		t.stdin.Close()
		cmd.Wait()
		return nil, fmt.Errorf("could not start engine: %w", err)
	}
	if err := resumeThreads(t); err != nil {
		cmd.Process.Kill()
		t.stdin.Close()
		cmd.Wait()
		return nil, fmt.Errorf("could not start engine: %w", err)
	}

	return t, nil
}

func addToJobObject(t *execTransport) error {
	job, err := windows.CreateJobObject(nil, nil)
	if err != nil {
		return fmt.Errorf("could not create job object: %w", err)
	}

	info := windows.JOBOBJECT_EXTENDED_LIMIT_INFORMATION{
		BasicLimitInformation: windows.JOBOBJECT_BASIC_LIMIT_INFORMATION{
			LimitFlags: windows.JOB_OBJECT_LIMIT_KILL_ON_JOB_CLOSE,
		},
	}
	_, err = windows.SetInformationJobObject(job,
		windows.JobObjectExtendedLimitInformation,
		uintptr(unsafe.Pointer(&info)),
		uint32(unsafe.Sizeof(info)))
	if err != nil {
		return fmt.Errorf("could not configure job object: %w", err)
	}

	procHandle, err := windows.OpenProcess(windows.PROCESS_SET_QUOTA|windows.PROCESS_TERMINATE, false, uint32(t.cmd.Process.Pid))
	if err != nil {
		return fmt.Errorf("could not open process: %w", err)
	}
	defer windows.CloseHandle(procHandle)

	if err := windows.AssignProcessToJobObject(job, procHandle); err != nil {
		return fmt.Errorf("could not assign process to job object: %w", err)
	}

	t.job = job
	return nil
}

func resumeThreads(t *execTransport) error {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPTHREAD, 0)
	if err != nil {
		return fmt.Errorf("could not resume threads: %w", err)
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ThreadEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	resumed := 0
	for {
		if entry.OwnerProcessID == uint32(t.cmd.Process.Pid) {
			if h, err := windows.OpenThread(windows.THREAD_SUSPEND_RESUME, false, entry.ThreadID); err == nil {
				if _, err := windows.ResumeThread(h); err == nil {
					resumed++
				}
				windows.CloseHandle(h)
			}
		}
		if err := windows.Thread32Next(snapshot, &entry); err != nil {
			break
		}
	}

	if resumed == 0 {
		return fmt.Errorf("could not resume any threads for process %d", t.cmd.Process.Pid)
	}
	return nil
}

func (t *execTransport) Terminate() error {
	if err := windows.GenerateConsoleCtrlEvent(windows.CTRL_BREAK_EVENT, uint32(t.cmd.Process.Pid)); err != nil {
		return fmt.Errorf("could not terminate engine: %w", err)
	}
	return nil
}

func (t *execTransport) Kill() error { return t.cmd.Process.Kill() }

func (t *execTransport) Wait() error {
	err1 := t.cmd.Wait()
	err2 := windows.CloseHandle(t.job)
	return errors.Join(err1, err2)
}

func (t *execTransport) Read(p []byte) (int, error)    { return t.stdout.Read(p) }
func (t *execTransport) ReadErr(p []byte) (int, error) { return t.stderr.Read(p) }
func (t *execTransport) Write(p []byte) (int, error)   { return t.stdin.Write(p) }
func (t *execTransport) CloseStdin() error             { return t.stdin.Close() }

func (t *execTransport) Pid() int { return t.cmd.Process.Pid }

func (t *execTransport) ExitCode() int {
	if t.cmd.ProcessState == nil {
		return -1
	}
	return t.cmd.ProcessState.ExitCode()
}
