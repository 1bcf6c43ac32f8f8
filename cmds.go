package fwgen

import (
	"bytes"
	"os/exec"
	"strings"

	"shanhu.io/misc/errcode"
	"shanhu.io/misc/osutil"
)

// gitRunner runs git read-only queries in a directory.
type gitRunner struct {
	dir string
	bin string
}

func newGitRunner(dir string) *gitRunner {
	return &gitRunner{dir: dir, bin: "git"}
}

func (r *gitRunner) command(args ...string) *exec.Cmd {
	cmd := exec.Command(r.bin, args...)
	cmd.Dir = r.dir
	osutil.CmdCopyEnv(cmd, "HOME")
	osutil.CmdCopyEnv(cmd, "PATH")
	cmd.Env = append(cmd.Env, "LC_ALL=C", "GIT_TERMINAL_PROMPT=0")
	return cmd
}

// output runs git and returns its stdout. The error of a failed run
// carries the first line of git's stderr. A missing git binary is
// returned unannotated.
func (r *gitRunner) output(args ...string) ([]byte, error) {
	cmd := r.command(args...)
	stderr := new(bytes.Buffer)
	cmd.Stderr = stderr
	out, err := cmd.Output()
	if err == nil {
		return out, nil
	}
	if _, ok := err.(*exec.ExitError); !ok {
		return nil, err
	}

	msg := strings.TrimSpace(stderr.String())
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	if msg == "" {
		return nil, errcode.Annotatef(err, "git %s", strings.Join(args, " "))
	}
	return nil, errcode.Annotatef(
		err, "git %s: %s", strings.Join(args, " "), msg,
	)
}
