// Package main provides a command line interface to operate a todo list on a
// local single-node ledger.
package main

import (
	"fmt"
	"os"

	"github.com/todoledger/todoledger"
	"github.com/todoledger/todoledger/contracts/todo"
	"github.com/todoledger/todoledger/core/txn"
	"github.com/urfave/cli/v2"
)

func main() {
	err := makeApp().Run(os.Args)
	if err != nil {
		todoledger.Logger.Fatal().Err(err).Msg("command failed")
	}
}

func makeApp() *cli.App {
	return &cli.App{
		Name:    "todoledger",
		Usage:   "operate a todo list stored on a local ledger",
		Version: fmt.Sprintf("%s @ %s", todoledger.Version, todoledger.BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the node configuration file",
				Value: "todoledger.yml",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "initialize the todo list of the owner",
				Action: runCommand(todo.CmdInit),
			},
			{
				Name:  "create",
				Usage: "append a task to the todo list",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "content",
						Usage:    "content of the task",
						Required: true,
					},
				},
				Action: runCommand(todo.CmdCreate),
			},
			{
				Name:  "complete",
				Usage: "mark a task as completed",
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     "id",
						Usage:    "identifier of the task",
						Required: true,
					},
				},
				Action: runCommand(todo.CmdComplete),
			},
			{
				Name:  "show",
				Usage: "display the todo list, or a single task",
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:  "id",
						Usage: "identifier of the task to display",
					},
				},
				Action: runShow,
			},
		},
	}
}

// runCommand returns an action that submits a transaction carrying the given
// contract command and the flags of the CLI command as arguments.
func runCommand(cmd todo.Command) cli.ActionFunc {
	return func(c *cli.Context) error {
		args := []txn.Arg{{
			Key:   todo.CmdArg,
			Value: []byte(cmd),
		}}

		if c.IsSet("content") {
			args = append(args, txn.Arg{
				Key:   todo.ContentArg,
				Value: []byte(c.String("content")),
			})
		}

		if c.IsSet("id") {
			args = append(args, txn.Arg{
				Key:   todo.TaskIDArg,
				Value: []byte(fmt.Sprintf("%d", c.Uint64("id"))),
			})
		}

		err := submit(c, args)
		if err != nil {
			return err
		}

		fmt.Fprintln(c.App.Writer, "transaction accepted")

		return nil
	}
}

func runShow(c *cli.Context) error {
	cmd := todo.CmdList

	args := []txn.Arg{}

	if c.IsSet("id") {
		cmd = todo.CmdRead

		args = append(args, txn.Arg{
			Key:   todo.TaskIDArg,
			Value: []byte(fmt.Sprintf("%d", c.Uint64("id"))),
		})
	}

	args = append(args, txn.Arg{
		Key:   todo.CmdArg,
		Value: []byte(cmd),
	})

	return submit(c, args)
}

func submit(c *cli.Context, args []txn.Arg) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}

	n, err := newNode(cfg)
	if err != nil {
		return err
	}

	defer n.close()

	return n.submit(args...)
}
