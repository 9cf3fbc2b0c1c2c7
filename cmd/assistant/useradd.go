package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"finance-assistant/internal/auth"

	"github.com/google/subcommands"
)

type useraddCmd struct {
	config   string
	envFile  string
	username string
	password string
}

func (*useraddCmd) Name() string     { return "useradd" }
func (*useraddCmd) Synopsis() string { return "create a login in the credential store" }
func (*useraddCmd) Usage() string {
	return `assistant useradd -username <name> -password <password> [-config config.yaml]

  Registers a user with the same rules as the register page.
`
}

func (c *useraddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "config", "config.yaml", "Path to the YAML config file.")
	f.StringVar(&c.envFile, "env", "keyHolder.env", "Env file holding DATABASE_URL when using postgres.")
	f.StringVar(&c.username, "username", "", "Username to create.")
	f.StringVar(&c.password, "password", "", "Password for the new user.")
}

func (c *useraddCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" || c.password == "" {
		fmt.Fprintln(os.Stderr, "both -username and -password are required")
		return subcommands.ExitUsageError
	}
	if err := initializeSystem(c.envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	cfg, err := loadConfig(ctx, c.config)
	if err != nil {
		return subcommands.ExitFailure
	}
	credentials, err := initializeCredentials(ctx, cfg)
	if err != nil {
		return subcommands.ExitFailure
	}
	defer credentials.Close()

	name, err := auth.NewService(credentials).Register(ctx, c.username, c.password, c.password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created user %s\n", name)
	return subcommands.ExitSuccess
}
