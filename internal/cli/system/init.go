package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/norton/internal/cli"
	"github.com/julianstephens/norton/internal/storage/postgres"
)

type InitCmd struct {
	Force bool `help:"Delete the existing store file before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if postgres.IsConnString(ctx.Store.GetConfigPath()) || ctx.Store.GetConfigPath() == "postgresql" {
			return errors.New("--force is not supported for PostgreSQL stores")
		}
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized norton storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
