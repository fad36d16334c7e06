package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/chzyer/readline"
	"github.com/neekrasov/idgen/pkg/client"
	"github.com/spf13/cobra"
)

func main() {
	var cfg client.Config

	rootCmd := &cobra.Command{
		Use:   "idgen-cli",
		Short: "Interactive client for an idgen node",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := client.New(&cfg, client.TCPClientFactory{})
			if err != nil {
				return err
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "idgen> ",
				HistoryFile:     "/tmp/idgen-cli.history",
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
			})
			if err != nil {
				return err
			}

			err = cli.CLI(rl)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&cfg.Address, "address", "localhost:3224", "Address of the idgen node")
	flags.DurationVar(&cfg.IdleTimeout, "idle-timeout", time.Minute, "Idle timeout for connection")
	flags.StringVar(&cfg.MaxMessageSize, "max-message-size", "4KB", "Max message size for connection")
	flags.StringVarP(&cfg.Username, "username", "u", "", "Root username")
	flags.StringVarP(&cfg.Password, "password", "p", "", "Root password")
	flags.IntVar(&cfg.MaxReconnectAttempts, "max-reconnects", 3, "Reconnect attempts after a failed request")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
