package envconf

import "sort"

// NodeKind 节点种类。
type NodeKind uint8

const (
	// ScalarNode 标量节点（字符串叶子展开后的值，或原样保留的
	// number/boolean/null）。类型化替换产生的容器值也是标量。
	ScalarNode NodeKind = iota
	// SequenceNode 有序序列。
	SequenceNode
	// MappingNode 键到子节点的映射，键唯一，插入顺序无意义。
	MappingNode
)

func (k NodeKind) String() string {
	switch k {
	case ScalarNode:
		return "scalar"
	case SequenceNode:
		return "sequence"
	case MappingNode:
		return "mapping"
	default:
		return "unknown"
	}
}

// Node 配置树节点，Scalar | Sequence | Mapping 的封闭和类型。
type Node struct {
	kind   NodeKind
	value  any
	items  []*Node
	fields map[string]*Node
}

// NewScalar 创建标量节点。
func NewScalar(value any) *Node {
	return &Node{kind: ScalarNode, value: value}
}

// NewSequence 创建序列节点。
func NewSequence(items ...*Node) *Node {
	return &Node{kind: SequenceNode, items: items}
}

// NewMapping 创建空映射节点。
func NewMapping() *Node {
	return &Node{kind: MappingNode, fields: make(map[string]*Node)}
}

// Kind 返回节点种类。
func (n *Node) Kind() NodeKind {
	return n.kind
}

// Value 返回标量值；非标量节点返回 nil。
func (n *Node) Value() any {
	if n.kind != ScalarNode {
		return nil
	}

	return n.value
}

// Items 返回序列元素；非序列节点返回 nil。
func (n *Node) Items() []*Node {
	return n.items
}

// Field 按键查找映射的子节点。
func (n *Node) Field(key string) (*Node, bool) {
	if n.kind != MappingNode {
		return nil, false
	}
	child, ok := n.fields[key]

	return child, ok
}

// SetField 写入映射的子节点；非映射节点上调用是空操作。
func (n *Node) SetField(key string, child *Node) {
	if n.kind != MappingNode {
		return
	}
	n.fields[key] = child
}

// Keys 返回映射键的有序列表。
func (n *Node) Keys() []string {
	if n.kind != MappingNode {
		return nil
	}
	keys := make([]string, 0, len(n.fields))
	for key := range n.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}

// Len 返回序列元素数或映射键数；标量为 0。
func (n *Node) Len() int {
	switch n.kind {
	case SequenceNode:
		return len(n.items)
	case MappingNode:
		return len(n.fields)
	default:
		return 0
	}
}

// Interface 递归还原为普通 Go 值。
//
// Mapping → map[string]any，Sequence → []any，Scalar → 原值。
func (n *Node) Interface() any {
	switch n.kind {
	case MappingNode:
		out := make(map[string]any, len(n.fields))
		for key, child := range n.fields {
			out[key] = child.Interface()
		}

		return out
	case SequenceNode:
		out := make([]any, len(n.items))
		for i, item := range n.items {
			out[i] = item.Interface()
		}

		return out
	default:
		return n.value
	}
}
