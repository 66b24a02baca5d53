package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"tradejournal/cmd/importer"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Name = "TradeJournal CMD"
	app.Usage = "The TradeJournal command line interface"

	app.Commands = []cli.Command{
		importCMD,
		statsCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	importCMD = cli.Command{
		Name:      "import",
		Usage:     "import a broker export file",
		Action:    importAction,
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "account",
				Usage: "account id to import into",
			},
			cli.StringFlag{
				Name:  "mode",
				Usage: "replace or append",
				Value: "replace",
			},
		},
		Description: `Parse a CSV or XLSX export, compute P&L, and store the result`,
	}
	statsCMD = cli.Command{
		Name:      "stats",
		Usage:     "print stored stats for an account",
		Action:    statsAction,
		ArgsUsage: "",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "account",
				Usage: "account id to report on",
			},
		},
		Description: `Print the stored performance summary`,
	}
)

func importAction(c *cli.Context) error {

	logrus.Info("Starting import CMD")

	filePath := c.Args().First()
	if filePath == "" {
		return fmt.Errorf("usage: import <file>")
	}

	account := c.String("account")
	if account == "" {
		account = importer.GetConfig().DefaultAccount
	}

	imp := &importer.Importer{}
	if err := imp.Import(account, filePath, c.String("mode")); err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	return nil
}

func statsAction(c *cli.Context) error {

	logrus.Info("Starting stats CMD")

	account := c.String("account")
	if account == "" {
		account = importer.GetConfig().DefaultAccount
	}

	imp := &importer.Importer{}
	if err := imp.Stats(account); err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	return nil
}
