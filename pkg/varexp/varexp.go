package varexp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lwmacct/260831-go-pkg-envconf/pkg/envstore"
	"github.com/lwmacct/260831-go-pkg-envconf/pkg/typeconv"
)

// ErrUndefinedEnvVar 展开时引用了未定义的环境变量。
var ErrUndefinedEnvVar = errors.New("undefined environment variable")

// Expander 绑定一个变量存储的展开器。
type Expander struct {
	store *envstore.Store
}

// New 创建绑定 store 的展开器。
func New(store *envstore.Store) *Expander {
	return &Expander{store: store}
}

// substitution 类型化替换表达式（$NAME::TYPE:SUB1:SUB2 解析结果）。
type substitution struct {
	name     string
	kind     string
	subtypes []string
}

// Expand 展开单个叶子字符串。
//
// 整串匹配类型化替换语法时返回转换后的值；否则做内联插值
// （无插值片段时原样返回）。开头的 `\$` 转义为字面 `$`。
func (e *Expander) Expand(leaf string) (any, error) {
	if strings.HasPrefix(leaf, `\$`) {
		return leaf[1:], nil
	}

	if sub, ok := parseSubstitution(leaf); ok {
		return e.expandSubstitution(sub)
	}

	return e.interpolate(leaf)
}

// expandSubstitution 执行类型化替换：查找变量并转换类型。
func (e *Expander) expandSubstitution(sub *substitution) (any, error) {
	raw, ok := e.store.Get(sub.name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUndefinedEnvVar, sub.name)
	}

	kind, err := typeconv.ParseKind(sub.kind)
	if err != nil {
		return nil, err
	}

	subtypes := make([]typeconv.Kind, 0, len(sub.subtypes))
	for _, token := range sub.subtypes {
		st, err := typeconv.ParseKind(token)
		if err != nil {
			return nil, err
		}
		subtypes = append(subtypes, st)
	}

	return typeconv.Convert(kind, raw, subtypes...)
}

// interpolate 替换字符串中的 ${NAME} 片段。
//
// 片段永远展开为字符串；不匹配名字语法的内容保持原样。
func (e *Expander) interpolate(text string) (string, error) {
	if !strings.Contains(text, "${") {
		return text, nil
	}

	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(text); {
		if text[i] != '$' || i+1 >= len(text) || text[i+1] != '{' {
			buf.WriteByte(text[i])
			i++

			continue
		}

		end := strings.IndexByte(text[i+2:], '}')
		if end == -1 {
			buf.WriteString(text[i:])

			break
		}

		name := text[i+2 : i+2+end]
		if !isName(name) {
			// ${} 或含非法字符的引用保持字面形式
			buf.WriteString(text[i : i+3+end])
			i += end + 3

			continue
		}

		val, ok := e.store.Get(name)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUndefinedEnvVar, name)
		}
		buf.WriteString(val)
		i += end + 3
	}

	return buf.String(), nil
}

// parseSubstitution 尝试把整个字符串解析为类型化替换表达式。
//
// 语法: $NAME(::TYPE(:SUB1(:SUB2)?)?)?
// 必须消费完整个字符串，否则不是替换表达式。
func parseSubstitution(s string) (*substitution, bool) {
	if len(s) < 2 || s[0] != '$' {
		return nil, false
	}

	i := 1
	for i < len(s) && isNameChar(s[i]) {
		i++
	}
	if i == 1 {
		return nil, false
	}

	sub := &substitution{name: s[1:i], kind: string(typeconv.KindString)}
	if i == len(s) {
		return sub, true
	}

	// 类型部分必须以 "::" 开始
	if !strings.HasPrefix(s[i:], "::") {
		return nil, false
	}
	i += 2

	kind, next, ok := scanToken(s, i)
	if !ok {
		return nil, false
	}
	sub.kind = kind
	i = next

	for len(sub.subtypes) < 2 && i < len(s) {
		if s[i] != ':' {
			return nil, false
		}
		token, next, ok := scanToken(s, i+1)
		if !ok {
			return nil, false
		}
		sub.subtypes = append(sub.subtypes, token)
		i = next
	}

	if i != len(s) {
		return nil, false
	}

	return sub, true
}

// scanToken 从 start 扫描一个非空的字母记号。
func scanToken(s string, start int) (string, int, bool) {
	i := start
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	if i == start {
		return "", 0, false
	}

	return s[start:i], i, true
}

func isNameChar(ch byte) bool {
	return isLetter(ch) || (ch >= '0' && ch <= '9') || ch == '_'
}

func isLetter(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isNameChar(s[i]) {
			return false
		}
	}

	return true
}
