// Package get 提供单个配置键的读取命令。
package get

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/260831-go-pkg-envconf/internal/command"
	"github.com/lwmacct/260831-go-pkg-envconf/pkg/envconf"
)

// Command 读取命令
var Command = &cli.Command{
	Name:      "get",
	Usage:     "按点号路径读取单个配置值 (字面点号写作 \\.)",
	ArgsUsage: "<dotted.key>",
	Flags:     command.ResolverFlags(),
	Action:    action,
}

func action(ctx context.Context, cmd *cli.Command) error {
	key := cmd.Args().First()
	if key == "" {
		return errors.New("missing dotted key argument")
	}

	session, err := envconf.Configure(
		envconf.WithArgs(command.ResolverArgs(cmd)...),
	)
	if err != nil {
		return fmt.Errorf("configure: %w", err)
	}

	val, err := session.Get(key)
	if err != nil {
		return err
	}

	// 字符串原样输出，结构化的值交给 YAML 渲染
	if s, ok := val.(string); ok {
		fmt.Println(s)

		return nil
	}

	out, err := yamlv3.Marshal(val)
	if err != nil {
		return fmt.Errorf("render value of %q: %w", key, err)
	}
	fmt.Print(string(out))

	return nil
}
