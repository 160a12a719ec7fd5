package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260831-go-pkg-envconf/internal/command/get"
	"github.com/lwmacct/260831-go-pkg-envconf/internal/command/inspect"
	"github.com/lwmacct/260831-go-pkg-envconf/internal/command/server"
)

func main() {
	app := &cli.Command{
		Name:  "envconf",
		Usage: "环境分层配置解析工具",
		Commands: []*cli.Command{
			inspect.Command,
			get.Command,
			server.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
