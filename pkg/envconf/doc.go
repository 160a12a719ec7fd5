// Package envconf 提供按运行环境分层的配置解析引擎。
//
// 一次 Configure 完成完整的解析流程：确定环境名、定位并加载
// .env 文件、定位环境配置文档与默认配置文档、递归展开叶子值、
// 按"先写者胜"合并，最终通过点号路径读取。
//
// # 解析优先级
//
// 环境名 (从高到低)：
//  1. CLI 参数 --env=
//  2. 环境变量 APP_ENV
//  3. 调用方缺省值 (默认 development)
//
// 文件路径 (env 文件与配置文档各自独立)：
//  1. CLI 参数 --env-path= / --config-path=
//  2. 环境变量 ENV_PATH / CONFIG_PATH
//  3. 按环境名推导的候选路径 (配置文档每种扩展名一个候选)
//
// 任一层级的候选无效时静默落入下一层级；规范化后位于项目根
// 目录之外的路径一律视为无效。
//
// # 合并语义
//
// 先加载环境配置文档，再加载默认文档 config/default.*；默认值
// 只填补缺口，绝不覆盖已有键，该规则在每层嵌套独立生效。
//
// # 叶子值展开
//
// 字符串叶子经过 varexp 展开：整串匹配 $NAME::TYPE 时做类型化
// 替换，否则 ${NAME} 片段做纯字符串插值。详见 varexp 包文档。
//
// # 快速开始
//
//	session, err := envconf.Configure(
//	    envconf.WithArgs("--env=production"),
//	)
//	if err != nil {
//	    return err
//	}
//	addr, err := envconf.Get[string](session, "server.addr")
//
// 点号路径中的字面点号用 `\.` 转义：`envconf.Get[string](s, `a\.b`)`。
//
// # 错误分类
//
//   - [ErrUndefinedEnvVar] - 展开时引用了未定义的环境变量
//   - [ErrUnsupportedType] - 类型记号不在支持范围内
//   - [ErrTypeConversion] - 值无法按目标类型解析
//   - [ErrUndefinedValue] - 点号路径没有命中任何配置值
//
// 无效的候选路径不是错误，只会落入下一层级。
package envconf
