package envconf_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/260831-go-pkg-envconf/pkg/envconf"
	"github.com/lwmacct/260831-go-pkg-envconf/pkg/envstore"
)

// writeFile 在 root 下写入相对路径文件，自动建目录。
func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestConfigure_EnvironmentPrecedence(t *testing.T) {
	root := t.TempDir()

	// CLI 参数优先于环境变量
	session, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{"APP_ENV": "development"}),
		envconf.WithArgs("--env=production"),
	)
	require.NoError(t, err)
	assert.Equal(t, "production", session.Environment())

	// 无 CLI 参数时取环境变量
	session, err = envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{"APP_ENV": "STAGING"}),
	)
	require.NoError(t, err)
	assert.Equal(t, "staging", session.Environment())

	// 两者都没有时落回缺省值
	session, err = envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{}),
	)
	require.NoError(t, err)
	assert.Equal(t, "development", session.Environment())

	// 注册表之外的名字视为未解析
	session, err = envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{"APP_ENV": "galaxy"}),
	)
	require.NoError(t, err)
	assert.Equal(t, "development", session.Environment())
}

func TestConfigure_CustomEnvNames(t *testing.T) {
	root := t.TempDir()

	session, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{}),
		envconf.WithArgs("--env-names=Alpha,beta", "--env=ALPHA"),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, session.EnvNames())
	assert.Equal(t, "alpha", session.Environment())

	// ENV_NAMES 低于 --env-names=，高于内置注册表
	session, err = envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{"ENV_NAMES": "qa,prod", "APP_ENV": "qa"}),
	)
	require.NoError(t, err)
	assert.Equal(t, "qa", session.Environment())
}

func TestConfigure_MergeDefaultsFirstWriterWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config/development.json", `{
		"x": "env",
		"nested": {"a": "from-env"}
	}`)
	writeFile(t, root, "config/default.json", `{
		"x": "default",
		"y": "default-only",
		"nested": {"a": "from-default", "b": "default-only"}
	}`)

	session, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{}),
	)
	require.NoError(t, err)

	for key, want := range map[string]string{
		"x":        "env",
		"y":        "default-only",
		"nested.a": "from-env",
		"nested.b": "default-only",
	} {
		got, err := session.Get(key)
		require.NoError(t, err, "key=%s", key)
		assert.Equal(t, want, got, "key=%s", key)
	}
}

func TestConfigure_DefaultsOnlyWhenNoEnvDocument(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config/default.json", `{"x": "default"}`)

	session, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{}),
	)
	require.NoError(t, err)
	assert.Empty(t, session.ConfigFilePath())

	got, err := session.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "default", got)
}

func TestGet_UndefinedValue(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config/development.json", `{"present": {"leaf": 1}}`)

	session, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{}),
	)
	require.NoError(t, err)

	_, err = session.Get("missing.key")
	assert.ErrorIs(t, err, envconf.ErrUndefinedValue)

	// 中间节点不是 Mapping 时同样立即失败
	_, err = session.Get("present.leaf.deeper")
	assert.ErrorIs(t, err, envconf.ErrUndefinedValue)
}

func TestGet_EscapedDotKey(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config/development.json", `{
		"a.b": "flat",
		"a": {"b": "nested"}
	}`)

	session, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{}),
	)
	require.NoError(t, err)

	got, err := session.Get(`a\.b`)
	require.NoError(t, err)
	assert.Equal(t, "flat", got)

	got, err = session.Get("a.b")
	require.NoError(t, err)
	assert.Equal(t, "nested", got)
}

func TestConfigure_EnvFileExpansion(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".env.development", `
BOOLEAN=FALSE
MAP='{"cat":"test","bat":"test"}'
HOST=localhost
`)
	writeFile(t, root, "config/development.json", `{
		"flag": "$BOOLEAN::boolean",
		"lookup": "$MAP::map:string:string",
		"banner": "prefix ${MAP}",
		"url": "http://${HOST}/api"
	}`)

	session, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{}),
	)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".env.development"), session.EnvFilePath())

	flag, err := session.Get("flag")
	require.NoError(t, err)
	assert.Equal(t, false, flag)

	lookup, err := session.Get("lookup")
	require.NoError(t, err)
	assert.Equal(t, map[any]any{"cat": "test", "bat": "test"}, lookup)

	// 内联插值永远是字符串替换，类型化的值不会被拼接
	banner, err := session.Get("banner")
	require.NoError(t, err)
	assert.Equal(t, `prefix {"cat":"test","bat":"test"}`, banner)

	url, err := session.Get("url")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/api", url)
}

func TestConfigure_EnvFileDoesNotOverrideProcessEnv(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".env.development", "WINNER=file\nNEWCOMER=file\n")
	writeFile(t, root, "config/development.json", `{
		"winner": "$WINNER",
		"newcomer": "$NEWCOMER"
	}`)

	session, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{"WINNER": "process"}),
	)
	require.NoError(t, err)

	winner, err := session.Get("winner")
	require.NoError(t, err)
	assert.Equal(t, "process", winner)

	newcomer, err := session.Get("newcomer")
	require.NoError(t, err)
	assert.Equal(t, "file", newcomer)
}

func TestConfigure_EnvFileCanDefineConfigPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".env.development", "CONFIG_PATH=alt/app.json\n")
	writeFile(t, root, "alt/app.json", `{"from": "alt"}`)
	writeFile(t, root, "config/development.json", `{"from": "derived"}`)

	session, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{}),
	)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "alt", "app.json"), session.ConfigFilePath())

	got, err := session.Get("from")
	require.NoError(t, err)
	assert.Equal(t, "alt", got)
}

func TestConfigure_PathPrecedenceFallsThroughInvalidTiers(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config/development.json", `{"from": "derived"}`)

	// 指定层级的候选无效时不会终止解析，而是落入下一层级
	session, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{"CONFIG_PATH": "also-missing.json"}),
		envconf.WithArgs("--config-path=missing.json"),
	)
	require.NoError(t, err)

	got, err := session.Get("from")
	require.NoError(t, err)
	assert.Equal(t, "derived", got)
}

func TestConfigure_OutsideRootPathSkipped(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	writeFile(t, outside, "evil.json", `{"from": "outside"}`)
	writeFile(t, root, "config/development.json", `{"from": "derived"}`)

	session, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{}),
		envconf.WithArgs("--config-path="+filepath.Join(outside, "evil.json")),
	)
	require.NoError(t, err)

	got, err := session.Get("from")
	require.NoError(t, err)
	assert.Equal(t, "derived", got, "outside-root candidate must be skipped regardless of existence")
}

func TestConfigure_EmptyDocumentFallsToNextExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config/development.json", "   \n\t")
	writeFile(t, root, "config/development.yaml", "from: yaml\nport: 8080\n")

	session, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{}),
	)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "config", "development.yaml"), session.ConfigFilePath())

	got, err := session.Get("from")
	require.NoError(t, err)
	assert.Equal(t, "yaml", got)

	// 裸标量原样保留，不做隐式类型推断
	port, err := session.Get("port")
	require.NoError(t, err)
	assert.Equal(t, 8080, port)
}

func TestConfigure_DirectoryOverrides(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "envs/.env.development", "FROM_ENV_DIR=yes\n")
	writeFile(t, root, "cfg/development.json", `{"loaded": "override-dir", "probe": "$FROM_ENV_DIR"}`)
	writeFile(t, root, "cfg/default.json", `{"fallback": "override-default"}`)
	writeFile(t, root, "config/development.json", `{"loaded": "plain-dir"}`)

	session, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{}),
		envconf.WithArgs("--env-dir=envs", "--config-dir=cfg"),
	)
	require.NoError(t, err)

	got, err := session.Get("loaded")
	require.NoError(t, err)
	assert.Equal(t, "override-dir", got)

	probe, err := session.Get("probe")
	require.NoError(t, err)
	assert.Equal(t, "yes", probe)

	// 默认文档同样跟随 --config-dir=
	fallback, err := session.Get("fallback")
	require.NoError(t, err)
	assert.Equal(t, "override-default", fallback)
}

func TestConfigure_ExplicitPathIgnoresDirectoryOverride(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "explicit.json", `{"from": "explicit"}`)
	writeFile(t, root, "cfg/development.json", `{"from": "dir"}`)

	session, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{}),
		envconf.WithArgs("--config-dir=cfg", "--config-path=explicit.json"),
	)
	require.NoError(t, err)

	got, err := session.Get("from")
	require.NoError(t, err)
	assert.Equal(t, "explicit", got)
}

func TestConfigure_UndefinedEnvVarPropagates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config/development.json", `{"bad": "$NOPE::number"}`)

	_, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{}),
	)
	assert.ErrorIs(t, err, envconf.ErrUndefinedEnvVar)
}

func TestConfigure_ConversionErrorsPropagate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config/development.json", `{"bad": "$VAL::number"}`)

	_, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{"VAL": "not-a-number"}),
	)
	assert.ErrorIs(t, err, envconf.ErrTypeConversion)

	writeFile(t, root, "config/development.json", `{"bad": "$VAL::uuid"}`)
	_, err = envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{"VAL": "x"}),
	)
	assert.ErrorIs(t, err, envconf.ErrUnsupportedType)
}

func TestReconfigure_ReplacesStateAtomically(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "config/development.json", `{"x": "one"}`)

	session, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{}),
	)
	require.NoError(t, err)

	got, err := session.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "one", got)

	require.NoError(t, os.WriteFile(path, []byte(`{"x": "two"}`), 0o600))
	require.NoError(t, session.Reconfigure())

	got, err = session.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "two", got)

	// 失败的重解析不得破坏旧状态
	require.NoError(t, os.WriteFile(path, []byte(`{"x": "$GONE"}`), 0o600))
	require.Error(t, session.Reconfigure())

	got, err = session.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "two", got)
}

func TestGet_TypedDecode(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config/development.json", `{
		"server": {"addr": ":8080", "timeout": "15s", "retries": 3},
		"ratio": "$RATIO::number"
	}`)

	session, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(envstore.MapAccessor{"RATIO": "0.5"}),
	)
	require.NoError(t, err)

	type serverConfig struct {
		Addr    string `json:"addr"`
		Retries int    `json:"retries"`
	}

	srv, err := envconf.Get[serverConfig](session, "server")
	require.NoError(t, err)
	assert.Equal(t, serverConfig{Addr: ":8080", Retries: 3}, srv)

	ratio, err := envconf.Get[float64](session, "ratio")
	require.NoError(t, err)
	assert.Equal(t, 0.5, ratio)

	// 弱类型解码：float64 标量可以取为 int
	retries, err := envconf.Get[int](session, "server.retries")
	require.NoError(t, err)
	assert.Equal(t, 3, retries)

	_, err = envconf.Get[string](session, "server.missing")
	assert.ErrorIs(t, err, envconf.ErrUndefinedValue)
}

func TestSession_StoreWriteThrough(t *testing.T) {
	root := t.TempDir()
	acc := envstore.MapAccessor{"PRESENT": "1"}

	session, err := envconf.Configure(
		envconf.WithProjectRoot(root),
		envconf.WithEnvAccessor(acc),
	)
	require.NoError(t, err)

	require.NoError(t, session.Store().Set("ADDED", "2"))
	assert.Equal(t, "2", acc["ADDED"])

	require.NoError(t, session.Store().Delete("PRESENT"))
	_, ok := acc["PRESENT"]
	assert.False(t, ok)
}
