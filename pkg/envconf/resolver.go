package envconf

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/lwmacct/260831-go-pkg-envconf/pkg/envstore"
)

// 解析器消费的 CLI 旗标（--flag=value 形式）。
const (
	flagEnv        = "--env"
	flagEnvNames   = "--env-names"
	flagEnvDir     = "--env-dir"
	flagEnvPath    = "--env-path"
	flagConfigDir  = "--config-dir"
	flagConfigPath = "--config-path"
)

// 与各旗标对应的环境变量。
const (
	varEnvironment = "APP_ENV"
	varEnvNames    = "ENV_NAMES"
	varEnvDir      = "ENV_DIR"
	varEnvPath     = "ENV_PATH"
	varConfigDir   = "CONFIG_DIR"
	varConfigPath  = "CONFIG_PATH"
)

// supportedExts 配置文档支持的扩展名，同时决定推导候选的顺序。
var supportedExts = []string{".json", ".yaml", ".yml"}

// resolver 多来源优先级解析：CLI 参数 > 环境变量 > 按环境名推导。
type resolver struct {
	args  []string
	store *envstore.Store
	fs    FileSystem
	root  string
}

// argValue 在参数切片中查找 --flag=value；后出现者覆盖先出现者。
func (r *resolver) argValue(flag string) (string, bool) {
	prefix := flag + "="
	val, found := "", false
	for _, arg := range r.args {
		if strings.HasPrefix(arg, prefix) {
			val, found = arg[len(prefix):], true
		}
	}

	return val, found
}

// setting 按 CLI 参数 > 环境变量 的顺序取单项设置。
func (r *resolver) setting(flag, envKey string) (string, bool) {
	if val, ok := r.argValue(flag); ok && val != "" {
		return val, true
	}
	if val, ok := r.store.Get(envKey); ok && val != "" {
		return val, true
	}

	return "", false
}

// environmentNames 解析环境名注册表。
//
// 优先级：--env-names= > ENV_NAMES > builtin。名字统一小写。
func (r *resolver) environmentNames(builtin []string) []string {
	if raw, ok := r.setting(flagEnvNames, varEnvNames); ok {
		var names []string
		for _, name := range strings.Split(raw, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name != "" {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			return names
		}
	}

	names := make([]string, 0, len(builtin))
	for _, name := range builtin {
		names = append(names, strings.ToLower(name))
	}

	return names
}

// environment 解析当前环境名。
//
// 优先级：--env= > APP_ENV > fallback。不在注册表中的名字视为
// 未解析，落回 fallback。
func (r *resolver) environment(names []string, fallback string) string {
	if raw, ok := r.setting(flagEnv, varEnvironment); ok {
		name := strings.ToLower(strings.TrimSpace(raw))
		for _, known := range names {
			if name == known {
				return name
			}
		}
		slog.Debug("Unrecognized environment name, using fallback", "name", name, "fallback", fallback)
	}

	return fallback
}

// envFilePath 解析 .env 文件路径。
//
// 优先级：--env-path= > ENV_PATH > <env-dir>/.env.<environment>，
// 其中 env-dir 为 --env-dir= > ENV_DIR > 项目根目录。
// 无效候选静默落入下一层级。
func (r *resolver) envFilePath(env string) (string, bool) {
	if path, ok := r.argValue(flagEnvPath); ok {
		if abs := r.resolveAbs(path); r.validEnvFile(abs) {
			return abs, true
		}
	}
	if path, ok := r.store.Get(varEnvPath); ok && path != "" {
		if abs := r.resolveAbs(path); r.validEnvFile(abs) {
			return abs, true
		}
	}

	dir := r.root
	if override, ok := r.setting(flagEnvDir, varEnvDir); ok {
		dir = r.resolveAbs(override)
	}
	if abs := filepath.Join(dir, ".env."+env); r.validEnvFile(abs) {
		return abs, true
	}

	return "", false
}

// configFilePath 解析环境配置文档路径。
//
// 优先级：--config-path= > CONFIG_PATH > 每种支持的扩展名一个
// 推导候选 <config-dir>/<environment><ext>。
func (r *resolver) configFilePath(env string) (string, bool) {
	if path, ok := r.argValue(flagConfigPath); ok {
		if abs := r.resolveAbs(path); r.validConfigFile(abs) {
			return abs, true
		}
	}
	if path, ok := r.store.Get(varConfigPath); ok && path != "" {
		if abs := r.resolveAbs(path); r.validConfigFile(abs) {
			return abs, true
		}
	}

	for _, ext := range supportedExts {
		if abs := filepath.Join(r.configDir(), env+ext); r.validConfigFile(abs) {
			return abs, true
		}
	}

	return "", false
}

// defaultFilePath 解析默认配置文档路径。
//
// 始终按环境推导（config/default.*），没有 CLI / 环境变量覆盖；
// 目录覆盖 --config-dir= / CONFIG_DIR 依然生效。
func (r *resolver) defaultFilePath() (string, bool) {
	for _, ext := range supportedExts {
		if abs := filepath.Join(r.configDir(), "default"+ext); r.validConfigFile(abs) {
			return abs, true
		}
	}

	return "", false
}

// configDir 配置文档目录：--config-dir= > CONFIG_DIR > <root>/config。
func (r *resolver) configDir() string {
	if override, ok := r.setting(flagConfigDir, varConfigDir); ok {
		return r.resolveAbs(override)
	}

	return filepath.Join(r.root, "config")
}

// resolveAbs 将相对路径解析到项目根目录下。
func (r *resolver) resolveAbs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(r.root, path)
}

// validEnvFile 校验 .env 文件候选：在根目录内、存在、非目录。
func (r *resolver) validEnvFile(path string) bool {
	return r.insideRoot(path) && r.fs.Exists(path) && !r.fs.IsDir(path)
}

// validConfigFile 校验配置文档候选：在根目录内、存在、非目录、
// 扩展名受支持、去除空白后非空。
func (r *resolver) validConfigFile(path string) bool {
	if !r.insideRoot(path) || !r.fs.Exists(path) || r.fs.IsDir(path) {
		return false
	}
	if !supportedExt(path) {
		return false
	}
	content, err := r.fs.ReadText(path)
	if err != nil || strings.TrimSpace(content) == "" {
		return false
	}

	return true
}

// insideRoot 检查规范化后的路径是否位于项目根目录内。
//
// 能解析符号链接时按解析结果判断；根目录之外一律无效，
// 与是否存在无关。
func (r *resolver) insideRoot(path string) bool {
	root := canonicalize(r.root)
	target := canonicalize(path)

	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}

	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func canonicalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}

	return abs
}

func supportedExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range supportedExts {
		if ext == supported {
			return true
		}
	}

	return false
}
