package cli

import "io"

// MockCommand is a scripted Command for tests. Output and error values are
// fixed up front; the issued name/args are recorded for assertions.
type MockCommand struct {
	Name       string
	Args       []string
	OutputData []byte
	Err        error
	RunFunc    func() error

	StdoutW io.Writer
	StderrW io.Writer
	StdinR  io.Reader
}

func (m *MockCommand) Output() ([]byte, error) {
	return m.OutputData, m.Err
}

func (m *MockCommand) CombinedOutput() ([]byte, error) {
	return m.OutputData, m.Err
}

func (m *MockCommand) Run() error {
	if m.RunFunc != nil {
		return m.RunFunc()
	}
	if m.StdoutW != nil && len(m.OutputData) > 0 {
		m.StdoutW.Write(m.OutputData)
	}
	return m.Err
}

func (m *MockCommand) SetStdout(w io.Writer) { m.StdoutW = w }
func (m *MockCommand) SetStderr(w io.Writer) { m.StderrW = w }
func (m *MockCommand) SetStdin(r io.Reader)  { m.StdinR = r }

// MockExecutor records every command it builds. CommandFunc, when set,
// scripts per-invocation behavior; otherwise DefaultOutput/DefaultErr apply.
type MockExecutor struct {
	Commands      []*MockCommand
	DefaultOutput []byte
	DefaultErr    error
	CommandFunc   func(spec ExecSpec) *MockCommand
}

func (m *MockExecutor) Command(name string, args []string, validators ...ExecValidator) (Command, error) {
	spec := ExecSpec{Name: name, Args: args}
	for _, validate := range validators {
		if err := validate(spec); err != nil {
			return nil, err
		}
	}

	var cmd *MockCommand
	if m.CommandFunc != nil {
		cmd = m.CommandFunc(spec)
	}
	if cmd == nil {
		cmd = &MockCommand{OutputData: m.DefaultOutput, Err: m.DefaultErr}
	}
	cmd.Name = name
	cmd.Args = args
	m.Commands = append(m.Commands, cmd)
	return cmd, nil
}

// HasCommand reports whether any recorded command contains all given args.
func (m *MockExecutor) HasCommand(args ...string) bool {
	for _, cmd := range m.Commands {
		matched := true
		for _, want := range args {
			if !contains(cmd.Args, want) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// LastCommand returns the most recently recorded command, or nil.
func (m *MockExecutor) LastCommand() *MockCommand {
	if len(m.Commands) == 0 {
		return nil
	}
	return m.Commands[len(m.Commands)-1]
}

func contains(args []string, want string) bool {
	for _, arg := range args {
		if arg == want {
			return true
		}
	}
	return false
}

func newMockClient(name string, mock *MockExecutor) *ToolClient {
	return &ToolClient{name: name, exec: mock}
}
