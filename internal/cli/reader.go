package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// InputReader reads lines from the user and gives up when the context is canceled.
type InputReader struct {
	reader       *bufio.Reader
	out          io.Writer
	readPassword func() (string, error)
	readingLock  sync.Mutex
}

// NewInputReader creates a reader over in that writes prompts to out. Passwords are read
// without echo when in is a terminal.
func NewInputReader(in io.Reader, out io.Writer) *InputReader {
	r := &InputReader{
		reader: bufio.NewReader(in),
		out:    out,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.readPassword = func() (string, error) {
			password, err := term.ReadPassword(int(f.Fd()))
			_, _ = fmt.Fprintln(out)
			return string(password), err
		}
	}
	return r
}

// ReadLine reads a line, trimmed of surrounding whitespace.
func (r *InputReader) ReadLine(ctx context.Context) (string, error) {
	return r.read(ctx, func() (string, error) {
		line, err := r.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return "", err
		}
		return strings.TrimSpace(line), nil
	})
}

// Prompt writes prompt and reads the answer.
func (r *InputReader) Prompt(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(r.out, FormatPrompt(prompt)); err != nil {
		return "", err
	}
	return r.ReadLine(ctx)
}

// PromptPassword writes prompt and reads a password.
func (r *InputReader) PromptPassword(ctx context.Context, prompt string) (string, error) {
	if r.readPassword == nil {
		return r.Prompt(ctx, prompt)
	}
	if _, err := fmt.Fprint(r.out, FormatPrompt(prompt)); err != nil {
		return "", err
	}
	return r.read(ctx, r.readPassword)
}

// read runs fn in a goroutine so a canceled context returns at once. The pending read
// finishes in the background.
func (r *InputReader) read(ctx context.Context, fn func() (string, error)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ErrInputCancelled
	}

	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := fn()
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		return res.value, res.err
	}
}
