package runner

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"hwgrade/utils"

	"github.com/go-git/go-billy/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Source opens the event stream of one iteration of the tests.
type Source interface {
	Open(ctx context.Context, iteration int) (io.ReadCloser, error)
}

// CommandSource runs "go test -json" once per iteration.
type CommandSource struct {
	// GoBinary is the go command, "go" if empty.
	GoBinary string

	// Args are extra arguments of "go test", e.g. "-run" patterns.
	Args []string

	// Packages are the package patterns to test.
	Packages []string

	// Dir is the working directory of the command.
	Dir string

	// Env is appended to the environment of the current process.
	Env []string
}

// Command returns the command line of the tests.
func (s *CommandSource) Command() []string {
	bin := s.GoBinary
	if bin == "" {
		bin = "go"
	}
	args := []string{bin, "test", "-json", "-count=1"}
	args = append(args, s.Args...)
	return append(args, s.Packages...)
}

// Open starts the tests. Closing the stream waits for the command to exit.
// A non-zero exit status means that some tests failed, and is not an error.
func (s *CommandSource) Open(ctx context.Context, iteration int) (io.ReadCloser, error) {
	argv := s.Command()
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = s.Dir
	cmd.Env = append(os.Environ(), s.Env...)
	utils.SetProcessGroup(cmd)
	cmd.Cancel = func() error { return utils.KillProcessGroup(cmd) }
	cmd.WaitDelay = 5 * time.Second

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "create stdout pipe")
	}
	stderr := log.WithFields(log.Fields{
		"command":   "go test",
		"iteration": iteration,
	}).WriterLevel(log.WarnLevel)
	cmd.Stderr = stderr

	log.WithField("command", argv).Debug("Starting tests")
	if err := cmd.Start(); err != nil {
		_ = stderr.Close()
		return nil, errors.Wrapf(err, "start %s", argv[0])
	}
	return &commandStream{stdout: stdout, cmd: cmd, stderr: stderr}, nil
}

type commandStream struct {
	stdout io.ReadCloser
	cmd    *exec.Cmd
	stderr io.Closer
	eof    bool
}

func (s *commandStream) Read(p []byte) (int, error) {
	n, err := s.stdout.Read(p)
	if err == io.EOF {
		s.eof = true
	}
	return n, err
}

// Close kills the tests if the stream was not read to the end, then waits for them.
func (s *commandStream) Close() error {
	if !s.eof {
		_ = utils.KillProcessGroup(s.cmd)
	}
	err := s.cmd.Wait()
	_ = s.stderr.Close()
	var exitErr *exec.ExitError
	if err == nil || errors.As(err, &exitErr) {
		return nil
	}
	return errors.Wrap(err, "wait for tests")
}

// ReaderSource replays saved event streams, one per iteration.
type ReaderSource struct {
	readers []io.Reader
}

// NewReaderSource creates a source from the streams of the iterations in order.
func NewReaderSource(readers ...io.Reader) *ReaderSource {
	return &ReaderSource{readers: readers}
}

func (s *ReaderSource) Open(_ context.Context, iteration int) (io.ReadCloser, error) {
	if iteration < 0 || iteration >= len(s.readers) {
		return nil, errors.Errorf("no event stream for iteration %d", iteration+1)
	}
	return io.NopCloser(s.readers[iteration]), nil
}

// FileSource replays event streams saved in files, one per iteration.
// When there are fewer files than iterations the files are used round-robin.
type FileSource struct {
	fs    billy.Filesystem
	paths []string
}

// NewFileSource creates a source reading the given files of fs.
func NewFileSource(fs billy.Filesystem, paths ...string) *FileSource {
	return &FileSource{fs: fs, paths: paths}
}

func (s *FileSource) Open(_ context.Context, iteration int) (io.ReadCloser, error) {
	if len(s.paths) == 0 {
		return nil, errors.New("no event files")
	}
	path := s.paths[iteration%len(s.paths)]
	f, err := s.fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open event file %s", path)
	}
	return f, nil
}
