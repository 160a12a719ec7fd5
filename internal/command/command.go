// Package command 提供各子命令共享的旗标与默认配置。
package command

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260831-go-pkg-envconf/internal/config"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// resolverFlagNames 透传给 envconf 解析器的旗标名。
var resolverFlagNames = []string{
	"env", "env-names", "env-dir", "env-path", "config-dir", "config-path",
}

// ResolverFlags 返回解析器旗标的一份新切片，供各子命令挂载。
func ResolverFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "env",
			Aliases: []string{"e"},
			Usage:   "运行环境名 (development/testing/staging/production)",
		},
		&cli.StringFlag{
			Name:  "env-names",
			Usage: "自定义环境名注册表，逗号分隔",
		},
		&cli.StringFlag{
			Name:  "env-dir",
			Usage: ".env 文件推导候选的目录",
		},
		&cli.StringFlag{
			Name:  "env-path",
			Usage: ".env 文件的显式路径",
		},
		&cli.StringFlag{
			Name:  "config-dir",
			Usage: "配置文档推导候选的目录",
		},
		&cli.StringFlag{
			Name:  "config-path",
			Usage: "环境配置文档的显式路径",
		},
	}
}

// ResolverArgs 把已设置的解析器旗标还原为 --flag=value 参数切片。
func ResolverArgs(cmd *cli.Command) []string {
	var args []string
	for _, name := range resolverFlagNames {
		if cmd.IsSet(name) {
			args = append(args, "--"+name+"="+cmd.String(name))
		}
	}

	return args
}
