package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "zanopay operator CLI"
	app.Usage = "Command line interface for zanopayd daemon operators"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "rpcserver",
			Usage: "zanopayd HTTP interface to connect to",
			Value: "http://localhost:9716",
		},
	}
	app.Commands = append(
		app.Commands,
		&status,
		&address,
		&prompts,
		&transfer,
		&pay,
		&mine,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func daemonURL(ctx *cli.Context, path string) string {
	return ctx.String("rpcserver") + path
}

func getJSON(ctx *cli.Context, path string) error {
	res, err := httpClient.Get(daemonURL(ctx, path))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return printBody(res)
}

func postJSON(ctx *cli.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	res, err := httpClient.Post(
		daemonURL(ctx, path), "application/json", bytes.NewReader(body),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return printBody(res)
}

func printBody(res *http.Response) error {
	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode >= 400 {
		return fmt.Errorf("daemon answered status %d: %s", res.StatusCode, body)
	}
	if len(body) > 0 {
		var indented bytes.Buffer
		if err := json.Indent(&indented, body, "", "  "); err == nil {
			fmt.Println(indented.String())
		} else {
			fmt.Println(string(body))
		}
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[zanopay] %v\n", err)
	os.Exit(1)
}
