package envconf

import "github.com/lwmacct/260831-go-pkg-envconf/pkg/envstore"

// DefaultEnvironment 环境名无法确定时的缺省值。
const DefaultEnvironment = "development"

// defaultEnvNames 内置的环境名注册表（保持声明顺序）。
var defaultEnvNames = []string{"development", "testing", "staging", "production"}

// options 配置解析选项。
type options struct {
	args       []string          // 原始参数，--flag=value 形式
	root       string            // 项目根目录，空则自动探测
	fs         FileSystem        // 文件系统访问，nil 使用 os
	acc        envstore.Accessor // 进程环境访问，nil 使用 os
	defaultEnv string            // 环境名缺省值
	envNames   []string          // 覆盖内置环境名注册表
}

// Option 配置解析选项函数。
type Option func(*options)

// WithArgs 提供命令行参数切片，供解析器扫描 --env= 等旗标。
//
// 通常传入 os.Args[1:]；参数必须是 --flag=value 形式，
// 无关参数会被忽略。
func WithArgs(args ...string) Option {
	return func(o *options) {
		o.args = args
	}
}

// WithProjectRoot 显式设置项目根目录。
//
// 缺省通过 [FindProjectRoot] 探测（go.mod 所在目录），探测失败
// 时回退到当前工作目录。规范化后位于根目录之外的候选路径一律
// 视为无效。
func WithProjectRoot(dir string) Option {
	return func(o *options) {
		o.root = dir
	}
}

// WithFileSystem 注入文件系统实现，主要用于测试。
func WithFileSystem(fs FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithEnvAccessor 注入进程环境访问实现，主要用于测试。
func WithEnvAccessor(acc envstore.Accessor) Option {
	return func(o *options) {
		o.acc = acc
	}
}

// WithDefaultEnvironment 设置环境名的缺省值。
//
// 仅当 CLI 参数与环境变量都未给出可识别的环境名时生效。
func WithDefaultEnvironment(name string) Option {
	return func(o *options) {
		o.defaultEnv = name
	}
}

// WithEnvNames 覆盖内置的环境名注册表。
//
// 注意：CLI 参数 --env-names= 与环境变量 ENV_NAMES 的优先级
// 仍然高于此处的设置。
func WithEnvNames(names ...string) Option {
	return func(o *options) {
		o.envNames = names
	}
}
