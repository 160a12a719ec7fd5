// 独立的服务器入口,只挂载 server 子命令。
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/lwmacct/260831-go-pkg-envconf/internal/command/server"
)

func main() {
	if err := server.Command.Run(context.Background(), os.Args); err != nil {
		slog.Error("服务器启动失败", "error", err)
		os.Exit(1)
	}
}
