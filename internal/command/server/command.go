// Package server 提供 HTTP 服务器命令。
package server

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260831-go-pkg-envconf/internal/command"
)

// Command 服务器命令
var Command = &cli.Command{
	Name:   "server",
	Usage:  "按当前环境的配置启动 HTTP 服务器",
	Action: action,
	Flags: append(command.ResolverFlags(),
		&cli.StringFlag{
			Name:    "addr",
			Aliases: []string{"a"},
			Value:   command.Defaults.Server.Addr,
			Usage:   "覆盖服务器监听地址",
		},
	),
}
