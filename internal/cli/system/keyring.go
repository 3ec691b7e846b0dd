package system

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/norton/internal/cli"
	"github.com/julianstephens/norton/internal/keyring"
)

// KeyringSetCmd stores the assistant API key in the OS keyring. The key is
// read from stdin when not given as an argument so it stays out of shell
// history.
type KeyringSetCmd struct {
	Key string `arg:"" optional:"" help:"API key. Read from stdin when omitted."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	key := cmd.Key
	if key == "" {
		ctx.Printf("API key: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		key = strings.TrimSpace(line)
	}

	if err := keyring.SetAPIKey(key); err != nil {
		return err
	}
	ctx.Println(cli.Success("API key stored in OS keyring"))
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	key, err := keyring.GetAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring. Use 'norton keyring set' to store one")
		}
		return fmt.Errorf("failed to retrieve API key from keyring: %w", err)
	}
	ctx.Println("API key stored in keyring:")
	ctx.Println(keyring.Mask(key))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return err
	}
	ctx.Println(cli.Success("API key deleted from OS keyring"))
	return nil
}
