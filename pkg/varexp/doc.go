// Package varexp 提供配置叶子值的环境变量展开。
//
// 支持两种互斥的展开形式：
//
//  1. 类型化替换：整个字符串匹配 $NAME(::TYPE(:SUB1(:SUB2)?)?)?，
//     查找 NAME 后交给 typeconv 做类型转换（TYPE 缺省为 string）
//  2. 内联插值：字符串中的 ${NAME} 片段逐个替换为变量的字符串值，
//     永远不做类型转换
//
// 只有整串匹配才会触发类型转换——类型化的值不会被悄悄拼接进
// 更长的字符串，这一不对称是刻意设计。
//
// # 语义说明
//
//  1. 开头的 `\$` 转义为字面 `$`，不做任何解释
//  2. 无法识别的表达式保持原样（如 ${FOO::number} 不匹配名字语法）
//  3. 引用未定义的变量返回 [ErrUndefinedEnvVar]
//
// # 快速开始
//
//	exp := varexp.New(store)
//	v, err := exp.Expand("$PORT::number")     // float64
//	v, err = exp.Expand("http://${HOST}/api") // string
package varexp
