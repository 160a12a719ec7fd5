package inspect

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/260831-go-pkg-envconf/internal/command"
	"github.com/lwmacct/260831-go-pkg-envconf/pkg/envconf"
)

func action(ctx context.Context, cmd *cli.Command) error {
	session, err := envconf.Configure(
		envconf.WithArgs(command.ResolverArgs(cmd)...),
	)
	if err != nil {
		return fmt.Errorf("configure: %w", err)
	}

	fmt.Printf("# environment: %s\n", session.Environment())
	if path := session.EnvFilePath(); path != "" {
		fmt.Printf("# env file: %s\n", path)
	}
	if path := session.ConfigFilePath(); path != "" {
		fmt.Printf("# config document: %s\n", path)
	}
	if path := session.DefaultFilePath(); path != "" {
		fmt.Printf("# default document: %s\n", path)
	}

	out, err := yamlv3.Marshal(session.All())
	if err != nil {
		return fmt.Errorf("render merged tree: %w", err)
	}
	fmt.Print(string(out))

	return nil
}
