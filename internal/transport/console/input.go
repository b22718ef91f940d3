package console

import (
	"bufio"
	"context"
	"io"
)

// input delivers operator lines from a reader running in its own goroutine,
// so that waiting for a line can be abandoned when the context ends.
type input struct {
	lines <-chan string
	errs  <-chan error
}

func startInput(ctx context.Context, r io.Reader) *input {
	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errs <- scanner.Err()
	}()
	return &input{lines: lines, errs: errs}
}

// next returns the next line, io.EOF at the end of input, or the context's error.
func (in *input) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-in.lines:
		if ok {
			return line, nil
		}
	}
	select {
	case err := <-in.errs:
		if err != nil {
			return "", err
		}
	default:
	}
	return "", io.EOF
}
