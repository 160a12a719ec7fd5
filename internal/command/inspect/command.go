// Package inspect 提供合并配置树的查看命令。
package inspect

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260831-go-pkg-envconf/internal/command"
)

// Command 查看命令
var Command = &cli.Command{
	Name:   "inspect",
	Usage:  "解析配置并以 YAML 输出合并结果",
	Flags:  command.ResolverFlags(),
	Action: action,
}
