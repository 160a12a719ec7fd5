package envconf

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/260831-go-pkg-envconf/pkg/varexp"
)

// loader 读取配置文档并构建节点树。
type loader struct {
	fs  FileSystem
	exp *varexp.Expander
}

// load 读取并解析 path 指向的配置文档，返回根 Mapping。
func (l *loader) load(path string) (*Node, error) {
	content, err := l.fs.ReadText(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	raw, err := parseDocument(path, strings.TrimSpace(content))
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	node, err := l.build(raw)
	if err != nil {
		return nil, fmt.Errorf("expand config file %s: %w", path, err)
	}
	if node.Kind() != MappingNode {
		return nil, fmt.Errorf("config file %s: root must be an object", path)
	}

	return node, nil
}

// build 递归构建节点树。
//
// 对象 → Mapping，数组 → Sequence，字符串叶子经展开引擎处理
// （结果即使是容器值也保持为标量），其余标量原样保留——裸的
// number/boolean/null 不做任何隐式类型推断。
func (l *loader) build(raw any) (*Node, error) {
	switch typed := raw.(type) {
	case map[string]any:
		node := NewMapping()
		for key, value := range typed {
			child, err := l.build(value)
			if err != nil {
				return nil, err
			}
			node.SetField(key, child)
		}

		return node, nil
	case []any:
		items := make([]*Node, 0, len(typed))
		for _, value := range typed {
			child, err := l.build(value)
			if err != nil {
				return nil, err
			}
			items = append(items, child)
		}

		return NewSequence(items...), nil
	case string:
		expanded, err := l.exp.Expand(typed)
		if err != nil {
			return nil, err
		}

		return NewScalar(expanded), nil
	default:
		return NewScalar(raw), nil
	}
}

// parseDocument 按扩展名选择解析器（.json 用 JSON，其余用 YAML），
// 并统一 map 键为字符串。
func parseDocument(path, content string) (any, error) {
	var raw any
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal([]byte(content), &raw)
	} else {
		err = yamlv3.Unmarshal([]byte(content), &raw)
	}
	if err != nil {
		return nil, err
	}

	normalized := normalizeMapKeys(raw)
	if normalized == nil {
		return nil, errors.New("document is empty")
	}

	return normalized, nil
}

func normalizeMapKeys(val any) any {
	switch typed := val.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[key] = normalizeMapKeys(value)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprintf("%v", key)] = normalizeMapKeys(value)
		}

		return out
	case []any:
		for i := range typed {
			typed[i] = normalizeMapKeys(typed[i])
		}
		return typed
	default:
		return val
	}
}

// mergeDefaults 将默认树 src 并入 dst，先写者胜。
//
// dst 中已有的键绝不被覆盖；两侧都是 Mapping 时逐层递归，
// 该规则在每层嵌套独立生效。对同一默认树重复合并是幂等的。
func mergeDefaults(dst, src *Node) {
	if dst.Kind() != MappingNode || src.Kind() != MappingNode {
		return
	}

	for _, key := range src.Keys() {
		srcChild, _ := src.Field(key)
		dstChild, ok := dst.Field(key)
		if !ok {
			dst.SetField(key, srcChild)

			continue
		}
		if dstChild.Kind() == MappingNode && srcChild.Kind() == MappingNode {
			mergeDefaults(dstChild, srcChild)
		}
	}
}
