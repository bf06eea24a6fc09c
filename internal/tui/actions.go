package tui

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/sumz/internal/common"
)

// TUIAction starts the interactive terminal UI.
func TUIAction(c *cli.Context) error {
	notify, changes := ChangeNotifier()
	env, err := common.Open(c, common.EnvOptions{
		NeedSummarizer: true,
		Interactive:    true,
		OnChange:       notify,
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), common.ExitRuntimeError)
	}
	defer env.Close()

	env.Logger.Info("starting terminal ui", "provider", env.Config.Provider, "store", env.Config.Store.Driver)
	if err := Run(c.Context, env.Controller, changes); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), common.ExitRuntimeError)
	}
	return nil
}
