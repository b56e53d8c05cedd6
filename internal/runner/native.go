// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/kballard/go-shellquote"
)

// nativeRunner executes a 6S binary found on PATH. The command is split with
// shell quoting rules, so it may carry a prefix such as "nice -n 10 sixsV1.1"
// or a quoted path containing spaces.
type nativeRunner struct {
	cmd  string
	argv []string
	err  error
	exec executor
}

func newNativeRunner(cmd string, exec executor) *nativeRunner {
	argv, err := shellquote.Split(cmd)
	if err == nil && len(argv) == 0 {
		err = fmt.Errorf("empty command")
	}
	if err != nil {
		err = fmt.Errorf("parsing 6S command %q: %w", cmd, err)
	}
	return &nativeRunner{cmd: cmd, argv: argv, err: err, exec: exec}
}

// NewNative returns a runner for the given 6S command line.
func NewNative(cmd string) Runner {
	if cmd == "" {
		cmd = DefaultBinary
	}
	return newNativeRunner(cmd, defaultExec)
}

func (n *nativeRunner) Name() string { return n.cmd }

func (n *nativeRunner) Available() bool {
	if n.err != nil {
		return false
	}
	_, err := n.exec.LookPath(n.argv[0])
	return err == nil
}

func (n *nativeRunner) Run(ctx context.Context, deck io.Reader) (Streams, error) {
	if n.err != nil {
		return Streams{}, n.err
	}
	var args []string
	if len(n.argv) > 1 {
		args = n.argv[1:]
	}
	return capture(ctx, n.exec, n.cmd, n.argv[0], args, deck)
}
