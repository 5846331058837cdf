package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/liut/finai/pkg/settings"
)

func main() {
	var zlogger *zap.Logger
	if settings.InDevelop() {
		zlogger, _ = zap.NewDevelopment()
	} else {
		zlogger, _ = zap.NewProduction()
	}
	defer func() { _ = zlogger.Sync() }()
	zap.ReplaceGlobals(zlogger)

	app := &cli.App{
		Name:    "finai",
		Usage:   "finai bot adapter",
		Version: settings.Current.Version,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the bridge http server",
				Action: serveAction,
			},
			{
				Name:      "ask",
				Usage:     "send a text query",
				ArgsUsage: "<text>",
				Flags:     []cli.Flag{sessionFlag},
				Action:    askAction,
			},
			{
				Name:      "image",
				Usage:     "send an image query",
				ArgsUsage: "<path>",
				Flags:     []cli.Flag{sessionFlag},
				Action:    imageAction,
			},
			{
				Name:      "put",
				Usage:     "upload a local file to the object store",
				ArgsUsage: "<name> <file>",
				Action:    putAction,
			},
			{
				Name:      "get",
				Usage:     "download an object",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write to file instead of stdout"},
				},
				Action: getAction,
			},
			{
				Name:  "usage",
				Usage: "show environment settings",
				Action: func(*cli.Context) error {
					return settings.Usage()
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
