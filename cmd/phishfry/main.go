// Command phishfry is the incident-response CLI: given a recipient address
// and a message-id, it deletes or restores the message everywhere it
// reached, or reports every mailbox it reached.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/phishfry/phishfry/ews"
	"github.com/phishfry/phishfry/internal/config"
	"github.com/phishfry/phishfry/internal/phishlog"
)

func defaultConfigPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "config.ini"
	}
	return filepath.Join(filepath.Dir(exe), "config.ini")
}

// loadAccount reads the account configuration. A bad config is not
// recoverable at any command, so it is fatal rather than bubbled up through
// cli.Action the way a per-request EWS error is.
func loadAccount(configPath string) *ews.Account {
	sessionConfigs, err := config.Load(configPath)
	if err != nil {
		phishlog.Fatal("phishfry", "loading config %s: %v", configPath, err)
	}

	sessions := make([]*ews.Session, len(sessionConfigs))
	for i, cfg := range sessionConfigs {
		sessions[i] = ews.NewSession(cfg)
	}
	return ews.NewAccount(sessions...)
}

func printResults(results *ews.ResultSet) {
	for _, address := range results.Addresses() {
		result := results.Get(address)
		phishlog.Info("phishfry", "%s: %s (type=%s, success=%v)", address, result.Message, result.MailboxType, result.Success)
		if result.Owner != "" {
			phishlog.Info("phishfry", "  owner: %s", result.Owner)
		}
		for _, member := range result.Members {
			phishlog.Info("phishfry", "  member: %s", member)
		}
		for _, fwd := range result.Forwards {
			phishlog.Info("phishfry", "  forwarded to: %s", fwd)
		}
	}
}

func remediate(ctx *cli.Context, action string) error {
	account := loadAccount(ctx.String("config"))

	recipient := ctx.Args().Get(0)
	messageID := ctx.Args().Get(1)
	phishlog.Debug("phishfry", "%s: resolving %s", action, recipient)

	mailbox, err := account.GetMailbox(context.Background(), recipient)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", recipient, err)
	}

	var results *ews.ResultSet
	if action == ews.ActionDelete {
		results = mailbox.Delete(context.Background(), messageID)
	} else {
		results = mailbox.Restore(context.Background(), messageID)
	}
	printResults(results)
	return nil
}

// isVerbose scans the raw args for -v/--verbose ahead of cli.App's own flag
// parsing. go-utils/log reads LOG_LEVEL once, so the env var must be set
// before anything in this process logs its first line — a cli.App Before
// hook runs too late for that.
func isVerbose(args []string) bool {
	for _, arg := range args {
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}
	return false
}

func main() {
	if isVerbose(os.Args[1:]) {
		os.Setenv("LOG_LEVEL", "debug")
	}

	app := &cli.App{
		Name:  "phishfry",
		Usage: "delete or restore a phishing email across every mailbox it reached",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   defaultConfigPath(),
				Usage:   "path to the account configuration file",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "display verbose output",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "delete",
				Usage:     "delete a message from every mailbox it reached",
				ArgsUsage: "<recipient> <message_id>",
				Action: func(ctx *cli.Context) error {
					if ctx.Args().Len() != 2 {
						return cli.Exit("delete requires a recipient and a message id", 1)
					}
					return remediate(ctx, ews.ActionDelete)
				},
			},
			{
				Name:      "restore",
				Usage:     "restore a message to every mailbox it reached",
				ArgsUsage: "<recipient> <message_id>",
				Action: func(ctx *cli.Context) error {
					if ctx.Args().Len() != 2 {
						return cli.Exit("restore requires a recipient and a message id", 1)
					}
					return remediate(ctx, ews.ActionRestore)
				},
			},
			{
				Name:      "resolve",
				Usage:     "display every mailbox a recipient address ultimately delivers to",
				ArgsUsage: "<recipient>",
				Action: func(ctx *cli.Context) error {
					if ctx.Args().Len() != 1 {
						return cli.Exit("resolve requires a recipient", 1)
					}
					return resolve(ctx)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		phishlog.Error("phishfry", "%v", err)
		os.Exit(1)
	}
}

func resolve(ctx *cli.Context) error {
	account := loadAccount(ctx.String("config"))

	recipient := ctx.Args().Get(0)
	phishlog.Debug("phishfry", "resolve: resolving %s", recipient)
	mailbox, err := account.GetMailbox(context.Background(), recipient)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", recipient, err)
	}

	for _, mb := range ews.Resolve(context.Background(), mailbox) {
		fmt.Printf("%s (%s)\n", mb.Address(), mb.MailboxType())
	}
	return nil
}
