package envconf

import (
	"fmt"
	"strings"
)

// splitKey 按未转义的点号切分路径；`\.` 还原为段内的字面点号。
func splitKey(key string) []string {
	var segments []string
	var buf strings.Builder

	for i := 0; i < len(key); i++ {
		ch := key[i]
		if ch == '\\' && i+1 < len(key) && key[i+1] == '.' {
			buf.WriteByte('.')
			i++

			continue
		}
		if ch == '.' {
			segments = append(segments, buf.String())
			buf.Reset()

			continue
		}
		buf.WriteByte(ch)
	}
	segments = append(segments, buf.String())

	return segments
}

// lookup 沿配置树逐段查找点号路径。
//
// 每个中间节点都必须是包含下一段的 Mapping，否则立即返回
// [ErrUndefinedValue]——不做任何部分匹配或模糊匹配。
func (s *Session) lookup(key string) (*Node, error) {
	node := s.root
	for _, segment := range splitKey(key) {
		if node.Kind() != MappingNode {
			return nil, fmt.Errorf("%w: %s", ErrUndefinedValue, key)
		}
		child, ok := node.Field(segment)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUndefinedValue, key)
		}
		node = child
	}

	return node, nil
}
