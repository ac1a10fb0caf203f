package main

import (
	"os"

	"github.com/jmarchena/marketbot/bot"
	"github.com/jmarchena/marketbot/helpers"
	"github.com/urfave/cli/v2"
)

func main() {
	marketBot := bot.Bot{}

	app := &cli.App{
		Name:  "marketbot",
		Usage: "market analysis and paper trading bot",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "symbols",
				Usage: "comma separated symbol universe (overrides env)",
			},
		},
		Action: func(c *cli.Context) error {
			return marketBot.Run(c)
		},
	}

	if err := app.Run(os.Args); err != nil {
		helpers.Logger.Fatalln(err)
	}
}
