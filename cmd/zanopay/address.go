package main

import (
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/zano-pay/zanopayd/pkg/mathutil"
)

var address = cli.Command{
	Name:  "address",
	Usage: "issues a fresh deposit address expecting an exact amount",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "network",
			Usage:    "crypto code of the network, ie. ZANO",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "expected amount in coins, ie. 0.5",
			Required: true,
		},
		&cli.UintFlag{
			Name:  "account",
			Usage: "wallet account index the deposit belongs to",
		},
	},
	Action: addressAction,
}

func addressAction(ctx *cli.Context) error {
	amount, err := decimal.NewFromString(ctx.String("amount"))
	if err != nil {
		return err
	}
	return postJSON(ctx, "/v1/addresses", map[string]interface{}{
		"network":         ctx.String("network"),
		"account_index":   ctx.Uint("account"),
		"expected_amount": mathutil.ToAtomicUnits(amount),
	})
}
