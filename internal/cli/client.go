package cli

import "io"

// Tool binaries the CLI shells out to. Everything this program does to the
// cluster goes through one of these.
const (
	binAWS     = "aws"
	binKubectl = "kubectl"
	binHelm    = "helm"
)

// ToolClient wraps execution of one external binary with validation.
type ToolClient struct {
	name       string
	exec       Executor
	validators []ExecValidator
}

// NewToolClient creates a ToolClient for the given binary with default validators.
func NewToolClient(name string, exec Executor) *ToolClient {
	return &ToolClient{
		name: name,
		exec: exec,
		validators: []ExecValidator{
			AllowlistBins(binAWS, binKubectl, binHelm),
			NoControlChars(), // Prevent YAML/command injection via control chars
			NoShellMeta(),
		},
	}
}

// CommandArgs builds a command for the client's binary with the given arguments.
// Validates arguments against configured validators before building.
func (c *ToolClient) CommandArgs(args []string) (Command, error) {
	return c.exec.Command(c.name, args, c.validators...)
}

// Output runs the binary with the given arguments and returns stdout.
func (c *ToolClient) Output(args []string) ([]byte, error) {
	cmd, err := c.CommandArgs(args)
	if err != nil {
		return nil, err
	}
	return cmd.Output()
}

// CombinedOutput runs the binary with the given arguments and returns combined stdout/stderr.
func (c *ToolClient) CombinedOutput(args []string) ([]byte, error) {
	cmd, err := c.CommandArgs(args)
	if err != nil {
		return nil, err
	}
	return cmd.CombinedOutput()
}

// Run runs the binary with the given arguments.
func (c *ToolClient) Run(args []string) error {
	cmd, err := c.CommandArgs(args)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// RunWithOutput runs the binary with the given arguments, piping to the provided writers.
func (c *ToolClient) RunWithOutput(args []string, stdout, stderr io.Writer) error {
	cmd, err := c.CommandArgs(args)
	if err != nil {
		return err
	}
	cmd.SetStdout(stdout)
	cmd.SetStderr(stderr)
	return cmd.Run()
}

var (
	awsClient     = NewToolClient(binAWS, execExecutor)
	kubectlClient = NewToolClient(binKubectl, execExecutor)
	helmClient    = NewToolClient(binHelm, execExecutor)
)
