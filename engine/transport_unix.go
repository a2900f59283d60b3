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

//go:build unix

package engine

import (
	"fmt"
	"io"
	"os/exec"
	"syscall"
)

type execTransport struct {
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr io.ReadCloser
	cmd    *exec.Cmd
}

// NewTransport starts program as a child process in its own process group,
// so Terminate/Kill can reach any grandchildren it spawns without orphaning
// them.
func NewTransport(program string, settings Settings) (Transport, error) {
	cmd := exec.Command(program, settings.Args...)
	cmd.Env = settings.Env
	cmd.Dir = settings.WorkDir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

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
	if err := cmd.Start(); err != nil {
		t.stdin.Close()
		t.stdout.Close()
		t.stderr.Close()
		return nil, fmt.Errorf("could not start engine: %w", err)
	}
	return t, nil
}

func (t *execTransport) Terminate() error {
	return syscall.Kill(-t.cmd.Process.Pid, syscall.SIGTERM)
}

func (t *execTransport) Kill() error {
	return syscall.Kill(-t.cmd.Process.Pid, syscall.SIGKILL)
}

func (t *execTransport) Wait() error { return t.cmd.Wait() }

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
