package command

import (
	commandHandler "voxrelay/internal/command/handler"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(NewCommand, commandHandler.NewSecretHandler)

type Command struct {
	secretCommandHandler *commandHandler.SecretHandler
}

// NewCommand .
func NewCommand(
	secretCommandHandler *commandHandler.SecretHandler,
) *Command {
	return &Command{
		secretCommandHandler: secretCommandHandler,
	}
}

type runner func(command *Command, cmd *cobra.Command, args []string) error

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	wrap := func(run runner) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()
			return run(command, cmd, args)
		}
	}

	secret := &cobra.Command{
		Use:   "secret",
		Short: "manage the stored OpenAI API key",
	}
	secret.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "show the active key source and masked preview",
			Args:  cobra.NoArgs,
			RunE: wrap(func(command *Command, cmd *cobra.Command, args []string) error {
				return command.secretCommandHandler.Show(cmd, args)
			}),
		},
		&cobra.Command{
			Use:   "set <key>",
			Short: "store a new key",
			Args:  cobra.ExactArgs(1),
			RunE: wrap(func(command *Command, cmd *cobra.Command, args []string) error {
				return command.secretCommandHandler.Set(cmd, args)
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "remove the stored key",
			Args:  cobra.NoArgs,
			RunE: wrap(func(command *Command, cmd *cobra.Command, args []string) error {
				return command.secretCommandHandler.Clear(cmd, args)
			}),
		},
		&cobra.Command{
			Use:   "verify",
			Short: "check the active key against the provider",
			Args:  cobra.NoArgs,
			RunE: wrap(func(command *Command, cmd *cobra.Command, args []string) error {
				return command.secretCommandHandler.Verify(cmd, args)
			}),
		},
	)
	rootCmd.AddCommand(secret)
}
