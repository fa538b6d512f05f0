package app

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// commandResult 外部指令執行結果
type commandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// commandRunner 抽象外部指令執行，測試時可注入 mock
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (commandResult, error)
}

// execRunner 以 os/exec 執行指令
type execRunner struct{}

// Run 執行指令並擷取 stdout / stderr 與 exit code
func (r *execRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := commandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
	}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, err
	}

	return result, nil
}
