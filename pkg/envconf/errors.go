package envconf

import (
	"errors"

	"github.com/lwmacct/260831-go-pkg-envconf/pkg/typeconv"
	"github.com/lwmacct/260831-go-pkg-envconf/pkg/varexp"
)

// ErrUndefinedValue 点号路径没有命中任何配置值。
var ErrUndefinedValue = errors.New("undefined configuration value")

// 下游包的哨兵错误在此重导出，调用方只需导入 envconf
// 即可用 errors.Is 匹配全部四类错误。
var (
	// ErrUndefinedEnvVar 展开时引用了未定义的环境变量。
	ErrUndefinedEnvVar = varexp.ErrUndefinedEnvVar
	// ErrUnsupportedType 类型或子类型记号不在支持范围内。
	ErrUnsupportedType = typeconv.ErrUnsupportedType
	// ErrTypeConversion 值无法按目标类型解析。
	ErrTypeConversion = typeconv.ErrTypeConversion
)
