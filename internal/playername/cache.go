package playername

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrCanceled is returned by a Prompter when the player backs out.
var ErrCanceled = errors.New("playername: prompt canceled")

// Prompter asks the player for a name. problem is the previous attempt's
// validation error, nil on the first ask. Returning ErrCanceled, or an
// empty input, cancels the prompt.
type Prompter interface {
	Prompt(ctx context.Context, problem error) (string, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, problem error) (string, error)

// Prompt implements Prompter.
func (f PrompterFunc) Prompt(ctx context.Context, problem error) (string, error) {
	return f(ctx, problem)
}

// Cache remembers the first valid name for the lifetime of a session.
type Cache struct {
	mu   sync.Mutex
	name string
}

// Get returns the cached name.
func (c *Cache) Get() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name, c.name != ""
}

// Set validates and caches name.
func (c *Cache) Set(name string) error {
	if err := Validate(name); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
	return nil
}

// Resolve returns the cached name or asks p until a valid one is given.
// ok is false only when the player cancels or the prompt fails.
func (c *Cache) Resolve(ctx context.Context, p Prompter) (string, bool) {
	if name, ok := c.Get(); ok {
		return name, true
	}

	var problem error
	for {
		if ctx.Err() != nil {
			return "", false
		}

		input, err := p.Prompt(ctx, problem)
		if err != nil || input == "" {
			return "", false
		}

		if problem = c.Set(input); problem == nil {
			return input, true
		}
	}
}

// LinePrompter reads names line by line, writing the hint and any
// validation message to w.
type LinePrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewLinePrompter creates a prompter over r and w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewScanner(r), out: w}
}

// Prompt implements Prompter. End of input cancels.
func (p *LinePrompter) Prompt(ctx context.Context, problem error) (string, error) {
	if problem != nil {
		fmt.Fprintln(p.out, Message(problem))
	}
	fmt.Fprintf(p.out, "%s: ", Hint)

	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("playername: read: %w", err)
		}
		return "", ErrCanceled
	}
	return strings.TrimSpace(p.in.Text()), ctx.Err()
}
