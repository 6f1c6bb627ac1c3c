package main

import (
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/zano-pay/zanopayd/pkg/mathutil"
)

var transfer = cli.Command{
	Name:  "transfer",
	Usage: "sends coins from the primary wallet to an address",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "network",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "to",
			Usage:    "destination address",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "amount in coins, ie. 0.5",
			Required: true,
		},
	},
	Action: transferAction,
}

func transferAction(ctx *cli.Context) error {
	amount, err := decimal.NewFromString(ctx.String("amount"))
	if err != nil {
		return err
	}
	return postJSON(ctx, "/v1/transfer", map[string]interface{}{
		"network": ctx.String("network"),
		"destinations": []map[string]interface{}{
			{
				"address": ctx.String("to"),
				"amount":  mathutil.ToAtomicUnits(amount),
			},
		},
	})
}

var pay = cli.Command{
	Name:  "pay",
	Usage: "pays an invoice address from the cash-cow wallet (non-mainnet only)",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "network",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "to",
			Usage:    "invoice deposit address",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "amount in coins, ie. 0.5",
			Required: true,
		},
	},
	Action: payAction,
}

func payAction(ctx *cli.Context) error {
	amount, err := decimal.NewFromString(ctx.String("amount"))
	if err != nil {
		return err
	}
	return postJSON(ctx, "/v1/cheat/pay", map[string]interface{}{
		"network": ctx.String("network"),
		"address": ctx.String("to"),
		"amount":  mathutil.ToAtomicUnits(amount),
	})
}

var mine = cli.Command{
	Name:  "mine",
	Usage: "mines blocks to an address to advance confirmations (non-mainnet only)",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "network",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "to",
			Usage:    "address receiving the block rewards",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "blocks",
			Usage: "number of blocks to mine",
			Value: 1,
		},
	},
	Action: mineAction,
}

func mineAction(ctx *cli.Context) error {
	return postJSON(ctx, "/v1/cheat/mine", map[string]interface{}{
		"network": ctx.String("network"),
		"address": ctx.String("to"),
		"blocks":  ctx.Int("blocks"),
	})
}
