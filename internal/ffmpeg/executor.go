package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
)

// stderrTailLines bounds the stderr kept for failure reporting.
const stderrTailLines = 40

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Stderr string // last stderrTailLines lines
	Err    error
}

// Execute runs args (args[0] is the binary). Every stderr line, including
// carriage-return progress updates, is passed to onLine when it is non-nil.
func Execute(ctx context.Context, args []string, onLine func(string)) ExecResult {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return ExecResult{Err: err}
	}
	if err := cmd.Start(); err != nil {
		return ExecResult{Err: err}
	}

	tail := collectLines(stderr, onLine)
	err = cmd.Wait()
	return ExecResult{
		Stderr: strings.Join(tail, "\n"),
		Err:    err,
	}
}

// collectLines reads r to EOF, forwarding each line to onLine and
// returning the last stderrTailLines lines.
func collectLines(r io.Reader, onLine func(string)) []string {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(scanLinesCR)

	var tail []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if onLine != nil {
			onLine(line)
		}
		tail = append(tail, line)
		if len(tail) > stderrTailLines {
			tail = tail[1:]
		}
	}
	return tail
}

// scanLinesCR is bufio.ScanLines that also splits on a bare '\r', which
// ffmpeg uses to redraw its progress line.
func scanLinesCR(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
