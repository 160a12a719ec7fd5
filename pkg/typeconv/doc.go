// Package typeconv 提供字符串到类型化值的转换。
//
// 支持 9 种类型记号（大小写不敏感）：
// string、number、boolean、date、regexp、object、array、set、map。
//
// # 容器与可嵌套子类型
//
// array / set / map 的元素类型仅限"可嵌套子集"：
// string、number、boolean、date、regexp、object。
// 容器不能嵌套容器，保证类型表达式有限且可判定。
//
// # 错误分类
//
//   - [ErrUnsupportedType] - 类型或子类型记号不在支持范围内
//   - [ErrTypeConversion] - 记号合法但值无法按目标类型解析
//
// 两者都是哨兵错误，调用方通过 errors.Is 区分。
//
// # 快速开始
//
//	v, err := typeconv.Convert(typeconv.KindNumber, "5")        // float64(5)
//	v, err = typeconv.Array("[1,2,3]", typeconv.KindNumber)     // []any{1.0, 2.0, 3.0}
//	v, err = typeconv.Map(`{"cat":"test"}`, typeconv.KindString, typeconv.KindString)
package typeconv
