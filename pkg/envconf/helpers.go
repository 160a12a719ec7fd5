package envconf

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
)

// FileSystem 抽象文件系统的只读访问，便于测试注入。
type FileSystem interface {
	Exists(path string) bool
	IsDir(path string) bool
	ReadText(path string) (string, error)
}

// osFS 基于 os 包的默认实现。
type osFS struct{}

func (osFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (osFS) ReadText(path string) (string, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path passed root containment check
	if err != nil {
		return "", err
	}

	return string(content), nil
}

// FindProjectRoot 从当前工作目录向上查找 go.mod 所在目录。
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found in any parent directory")
		}
		dir = parent
	}
}

// decodeValue 将普通 Go 值解码到目标结构。
//
// 弱类型输入 + json tag，与配置文档共享同一套 key。
func decodeValue(data, out any) error {
	conf := &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		Metadata:         nil,
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	}
	decoder, err := mapstructure.NewDecoder(conf)
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}
