package playername

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"simple", "alice", nil},
		{"digits and symbols", "a_1-b", nil},
		{"single char", "x", nil},
		{"ten chars", "abcdefghij", nil},
		{"empty", "", ErrEmpty},
		{"eleven chars", "abcdefghijk", ErrTooLong},
		{"too long beats bad chars", "ABCDEFGHIJK", ErrTooLong},
		{"uppercase", "Alice", ErrInvalidChars},
		{"space", "a b", ErrInvalidChars},
		{"unicode", "이름", ErrInvalidChars},
		{"dot", "a.b", ErrInvalidChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(tt.input), tt.want)
			if tt.want == nil {
				assert.NoError(t, Validate(tt.input))
			}
		})
	}
}

func TestMessagesAreDistinct(t *testing.T) {
	long := Message(ErrTooLong)
	bad := Message(ErrInvalidChars)

	assert.NotEqual(t, long, bad)
	assert.Contains(t, long, "10")
	assert.Empty(t, Message(nil))
}

// scripted answers prompts from a fixed list and records the problems.
type scripted struct {
	answers  []string
	problems []error
}

func (s *scripted) Prompt(_ context.Context, problem error) (string, error) {
	s.problems = append(s.problems, problem)
	if len(s.answers) == 0 {
		return "", ErrCanceled
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func TestResolveReprompts(t *testing.T) {
	var c Cache
	p := &scripted{answers: []string{"waytoolongname", "Bad!", "bob"}}

	name, ok := c.Resolve(context.Background(), p)
	require.True(t, ok)
	assert.Equal(t, "bob", name)
	require.Len(t, p.problems, 3)
	assert.Nil(t, p.problems[0])
	assert.ErrorIs(t, p.problems[1], ErrTooLong)
	assert.ErrorIs(t, p.problems[2], ErrInvalidChars)

	// Asked once per session
	again := &scripted{answers: []string{"carol"}}
	name, ok = c.Resolve(context.Background(), again)
	assert.True(t, ok)
	assert.Equal(t, "bob", name)
	assert.Empty(t, again.problems)
}

func TestResolveCancel(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
	}{
		{"explicit cancel", nil},
		{"empty input", []string{""}},
		{"cancel after invalid", []string{"NOPE"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cache
			_, ok := c.Resolve(context.Background(), &scripted{answers: tt.answers})
			assert.False(t, ok)

			_, cached := c.Get()
			assert.False(t, cached)
		})
	}
}

func TestResolveContextCanceled(t *testing.T) {
	var c Cache
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := PrompterFunc(func(context.Context, error) (string, error) {
		t.Fatal("prompter should not be called")
		return "", nil
	})
	_, ok := c.Resolve(ctx, p)
	assert.False(t, ok)
}

func TestCacheSetRejectsInvalid(t *testing.T) {
	var c Cache
	assert.ErrorIs(t, c.Set("UPPER"), ErrInvalidChars)
	_, ok := c.Get()
	assert.False(t, ok)

	require.NoError(t, c.Set("dave"))
	name, ok := c.Get()
	assert.True(t, ok)
	assert.Equal(t, "dave", name)
}

func TestLinePrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("Bad Name\n  eve  \n"), &out)

	var c Cache
	name, ok := c.Resolve(context.Background(), p)
	require.True(t, ok)
	assert.Equal(t, "eve", name)
	assert.Contains(t, out.String(), Hint)
	assert.Contains(t, out.String(), Message(ErrInvalidChars))
}

func TestLinePrompterEOF(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader(""), &out)

	var c Cache
	_, ok := c.Resolve(context.Background(), p)
	assert.False(t, ok)
}
