package main

import (
	"github.com/urfave/cli/v2"
)

var status = cli.Command{
	Name:   "status",
	Usage:  "returns per-network wallet state, balance and sync info",
	Action: statusAction,
}

func statusAction(ctx *cli.Context) error {
	return getJSON(ctx, "/status")
}

var prompts = cli.Command{
	Name:  "prompts",
	Usage: "lists the outstanding payment prompts of a network",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "network",
			Usage:    "crypto code of the network, ie. ZANO",
			Required: true,
		},
	},
	Action: promptsAction,
}

func promptsAction(ctx *cli.Context) error {
	return getJSON(ctx, "/v1/prompts?network="+ctx.String("network"))
}
