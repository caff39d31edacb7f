package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations." env:"COSTBASIS_TELEMETRY"`
	Strict    bool   `help:"Reject non-numeric and negative amounts and prices instead of treating them as zero." env:"COSTBASIS_STRICT"`
	LogLevel  string `help:"Log level (${enum})." enum:"debug,info,warn,error" default:"info" env:"COSTBASIS_LOG_LEVEL"`
	Currency  string `help:"Currency code used to display costs, proceeds and gains." default:"USD" env:"COSTBASIS_CURRENCY"`
}

type Commands struct {
	Globals

	Calculate CalculateCmd `cmd:"" help:"Calculate FIFO capital gains for a transactions file."`
	Check     CheckCmd     `cmd:"" help:"Process a transactions file and report every transaction that fails."`
	Doctor    DoctorCmd    `cmd:"" help:"Doctor utilities for debugging transaction files."`
	Web       WebCmd       `cmd:"" help:"Start the HTTP API."`
}
