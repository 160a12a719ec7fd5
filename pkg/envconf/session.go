package envconf

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/subosito/gotenv"

	"github.com/lwmacct/260831-go-pkg-envconf/pkg/envstore"
	"github.com/lwmacct/260831-go-pkg-envconf/pkg/varexp"
)

// Session 一次配置解析的结果，"configure 一次、读取多次"。
//
// 状态在每次解析时整体重建；解析失败不会留下半成品状态。
type Session struct {
	opts options

	store       *envstore.Store
	environment string
	envNames    []string
	envFile     string
	configFile  string
	defaultFile string
	root        *Node
}

// Configure 执行一次完整的配置解析并返回会话。
//
// 流程：
//  1. 解析环境名注册表与当前环境名
//  2. 定位 .env 文件，写入进程环境中尚未定义的变量
//  3. 整体重建环境变量快照（.env 因此可以定义 CONFIG_PATH 等）
//  4. 定位环境配置文档与默认文档
//  5. 加载环境文档，再按"先写者胜"并入默认文档
func Configure(opts ...Option) (*Session, error) {
	s := &Session{}
	for _, opt := range opts {
		opt(&s.opts)
	}

	if err := s.configure(); err != nil {
		return nil, err
	}

	return s, nil
}

// Reconfigure 强制重新解析。
//
// 新状态完整构建后才替换旧状态；失败时保持原有会话可用。
func (s *Session) Reconfigure() error {
	next := &Session{opts: s.opts}
	if err := next.configure(); err != nil {
		return err
	}
	*s = *next

	return nil
}

func (s *Session) configure() error {
	fs := s.opts.fs
	if fs == nil {
		fs = osFS{}
	}

	root := s.opts.root
	if root == "" {
		if found, err := FindProjectRoot(); err == nil {
			root = found
		} else if cwd, err := os.Getwd(); err == nil {
			root = cwd
		} else {
			return fmt.Errorf("determine project root: %w", err)
		}
	}

	store := envstore.New(s.opts.acc)
	r := &resolver{args: s.opts.args, store: store, fs: fs, root: root}

	builtin := s.opts.envNames
	if len(builtin) == 0 {
		builtin = defaultEnvNames
	}
	fallback := s.opts.defaultEnv
	if fallback == "" {
		fallback = DefaultEnvironment
	}

	names := r.environmentNames(builtin)
	env := r.environment(names, fallback)
	slog.Debug("Resolved environment", "environment", env)

	envFile, envFileFound := r.envFilePath(env)
	if envFileFound {
		if err := applyEnvFile(fs, store, envFile); err != nil {
			return err
		}
		slog.Debug("Loaded env file", "path", envFile)
	}

	// 快照在 .env 写入之后整体重建
	store.Refresh()

	configFile, configFound := r.configFilePath(env)
	defaultFile, defaultFound := r.defaultFilePath()

	l := &loader{fs: fs, exp: varexp.New(store)}

	tree := NewMapping()
	if configFound {
		loaded, err := l.load(configFile)
		if err != nil {
			return err
		}
		tree = loaded
		slog.Debug("Loaded config document", "path", configFile)
	} else {
		slog.Debug("No environment config document found", "environment", env)
	}

	if defaultFound {
		defaults, err := l.load(defaultFile)
		if err != nil {
			return err
		}
		mergeDefaults(tree, defaults)
		slog.Debug("Merged default document", "path", defaultFile)
	}

	s.store = store
	s.environment = env
	s.envNames = names
	s.envFile = envFile
	s.configFile = configFile
	s.defaultFile = defaultFile
	s.root = tree

	return nil
}

// applyEnvFile 解析 .env 文件并写入进程环境。
//
// 已定义的变量不被覆盖；写入走 Store 的写穿路径。
func applyEnvFile(fs FileSystem, store *envstore.Store, path string) error {
	content, err := fs.ReadText(path)
	if err != nil {
		return fmt.Errorf("read env file %s: %w", path, err)
	}

	parsed := gotenv.Parse(strings.NewReader(content))
	keys := make([]string, 0, len(parsed))
	for key := range parsed {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, exists := store.Get(key); exists {
			continue
		}
		if err := store.Set(key, parsed[key]); err != nil {
			return fmt.Errorf("apply env file %s: %w", path, err)
		}
	}

	return nil
}

// Get 按点号路径读取配置值，返回普通 Go 值。
//
// Mapping → map[string]any，Sequence → []any；路径未命中返回
// [ErrUndefinedValue]。字面点号用 `\.` 转义。
func (s *Session) Get(key string) (any, error) {
	node, err := s.lookup(key)
	if err != nil {
		return nil, err
	}

	return node.Interface(), nil
}

// Get 按点号路径读取并解码为 T。
//
// 值本身已是 T 时直接返回；否则经 mapstructure 弱类型解码
// （json tag），支持把 Mapping 子树映射到结构体。
func Get[T any](s *Session, key string) (T, error) {
	var zero T

	raw, err := s.Get(key)
	if err != nil {
		return zero, err
	}

	if v, ok := raw.(T); ok {
		return v, nil
	}

	var out T
	if err := decodeValue(raw, &out); err != nil {
		return zero, fmt.Errorf("decode %q: %w", key, err)
	}

	return out, nil
}

// Unmarshal 将点号路径下的子树解码到 out（无泛型版本）。
func (s *Session) Unmarshal(key string, out any) error {
	raw, err := s.Get(key)
	if err != nil {
		return err
	}
	if err := decodeValue(raw, out); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}

	return nil
}

// All 返回整棵合并配置树的普通 Go 值形式。
func (s *Session) All() map[string]any {
	out, _ := s.root.Interface().(map[string]any)
	return out
}

// Tree 返回合并配置树的根节点。
func (s *Session) Tree() *Node {
	return s.root
}

// Environment 返回本次解析确定的环境名。
func (s *Session) Environment() string {
	return s.environment
}

// EnvNames 返回生效的环境名注册表。
func (s *Session) EnvNames() []string {
	return s.envNames
}

// Store 返回环境变量存储，set/delete 会写穿到真实进程环境。
func (s *Session) Store() *envstore.Store {
	return s.store
}

// EnvFilePath 返回实际加载的 .env 文件路径，未找到时为空。
func (s *Session) EnvFilePath() string {
	return s.envFile
}

// ConfigFilePath 返回实际加载的环境配置文档路径，未找到时为空。
func (s *Session) ConfigFilePath() string {
	return s.configFile
}

// DefaultFilePath 返回实际加载的默认文档路径，未找到时为空。
func (s *Session) DefaultFilePath() string {
	return s.defaultFile
}
