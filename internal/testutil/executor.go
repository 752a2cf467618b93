package testutil

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
)

// FakeTTS is an executor.Executor that pretends to be espeak-ng: it reads stdin and
// writes Audio to the path following "-w".
type FakeTTS struct {
	mu sync.Mutex

	Audio   []byte
	Missing bool
	Fail    error

	Calls []FakeCall
}

// FakeCall records one engine invocation
type FakeCall struct {
	Name  string
	Args  []string
	Stdin string
}

func (f *FakeTTS) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteInput(ctx, nil, name, args...)
}

func (f *FakeTTS) ExecuteInput(ctx context.Context, stdin io.Reader, name string, args ...string) (string, error) {
	var in []byte
	if stdin != nil {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		in = b
	}

	f.mu.Lock()
	f.Calls = append(f.Calls, FakeCall{Name: name, Args: append([]string(nil), args...), Stdin: string(in)})
	f.mu.Unlock()

	if f.Fail != nil {
		return "", f.Fail
	}
	for i, a := range args {
		if a == "-w" && i+1 < len(args) {
			if err := os.WriteFile(args[i+1], f.Audio, 0644); err != nil {
				return "", err
			}
		}
	}
	return "", nil
}

func (f *FakeTTS) LookPath(name string) (string, error) {
	if f.Missing {
		return "", errors.New("executable file not found in $PATH")
	}
	return "/usr/bin/" + name, nil
}

// CallCount returns the number of engine invocations so far
func (f *FakeTTS) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}
