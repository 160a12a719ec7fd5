package typeconv

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// 转换错误的哨兵值，调用方通过 errors.Is 区分。
var (
	// ErrUnsupportedType 类型或子类型记号不在支持范围内。
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrTypeConversion 值无法按目标类型解析。
	ErrTypeConversion = errors.New("type conversion failed")
)

// Kind 类型记号的封闭枚举。
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindDate    Kind = "date"
	KindRegexp  Kind = "regexp"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindSet     Kind = "set"
	KindMap     Kind = "map"
)

// ParseKind 解析类型记号（大小写不敏感）。
//
// 记号不在 9 种支持范围内时返回 [ErrUnsupportedType]。
func ParseKind(token string) (Kind, error) {
	switch Kind(strings.ToLower(token)) {
	case KindString:
		return KindString, nil
	case KindNumber:
		return KindNumber, nil
	case KindBoolean:
		return KindBoolean, nil
	case KindDate:
		return KindDate, nil
	case KindRegexp:
		return KindRegexp, nil
	case KindObject:
		return KindObject, nil
	case KindArray:
		return KindArray, nil
	case KindSet:
		return KindSet, nil
	case KindMap:
		return KindMap, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, token)
	}
}

// Nestable 报告该类型能否作为容器的元素 / 键 / 值类型。
//
// 容器类型（array/set/map）不可嵌套。
func (k Kind) Nestable() bool {
	switch k {
	case KindString, KindNumber, KindBoolean, KindDate, KindRegexp, KindObject:
		return true
	default:
		return false
	}
}

// Convert 将原始字符串按 kind 转换为类型化值。
//
// subtypes 仅对容器类型有意义：array/set 取第一个作为元素类型，
// map 依次取键类型与值类型；缺省均为 string。
func Convert(kind Kind, raw string, subtypes ...Kind) (any, error) {
	switch kind {
	case KindString:
		return raw, nil
	case KindNumber:
		return Number(raw)
	case KindBoolean:
		return Boolean(raw)
	case KindDate:
		return Date(raw)
	case KindRegexp:
		return Regexp(raw)
	case KindObject:
		return Object(raw)
	case KindArray:
		return Array(raw, subtypeAt(subtypes, 0))
	case KindSet:
		return Set(raw, subtypeAt(subtypes, 0))
	case KindMap:
		return Map(raw, subtypeAt(subtypes, 0), subtypeAt(subtypes, 1))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, string(kind))
	}
}

func subtypeAt(subtypes []Kind, i int) Kind {
	if i < len(subtypes) && subtypes[i] != "" {
		return subtypes[i]
	}

	return KindString
}

// String 原样返回字符串。
func String(raw string) (string, error) {
	return raw, nil
}

// Number 解析有限浮点数。
func Number(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("convert %q to number: %w", raw, ErrTypeConversion)
	}

	return f, nil
}

// 布尔真假值集合（大小写不敏感）。
var (
	truthy = map[string]struct{}{"t": {}, "true": {}, "y": {}, "yes": {}, "on": {}}
	falsy  = map[string]struct{}{"f": {}, "false": {}, "n": {}, "no": {}, "off": {}}
)

// Boolean 按真假值集合解析布尔。
//
// 真值: t/true/y/yes/on，假值: f/false/n/no/off；其余失败。
func Boolean(raw string) (bool, error) {
	token := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := truthy[token]; ok {
		return true, nil
	}
	if _, ok := falsy[token]; ok {
		return false, nil
	}

	return false, fmt.Errorf("convert %q to boolean: %w", raw, ErrTypeConversion)
}

// Date 解析日期。
//
// 原始值为有限数字时按 Unix 毫秒时间戳解释；否则尝试通用日期解析。
// 结果统一为 UTC。
func Date(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if ms, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if math.IsNaN(ms) || math.IsInf(ms, 0) {
			return time.Time{}, fmt.Errorf("convert %q to date: %w", raw, ErrTypeConversion)
		}

		return time.UnixMilli(int64(ms)).UTC(), nil
	}

	t, err := cast.ToTimeE(trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("convert %q to date: %w", raw, ErrTypeConversion)
	}

	return t.UTC(), nil
}

// Regexp 编译正则表达式。
func Regexp(raw string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("convert %q to regexp: %w", raw, ErrTypeConversion)
	}

	return re, nil
}

// Object 将原始字符串解析为 JSON 值。
func Object(raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("convert %q to object: %w", raw, ErrTypeConversion)
	}

	return v, nil
}

// Array 将 JSON 数组逐元素转换为 elem 类型。
func Array(raw string, elem Kind) ([]any, error) {
	if err := checkNestable(elem); err != nil {
		return nil, err
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("convert %q to array: %w", raw, ErrTypeConversion)
	}
	items, ok := parsed.([]any)
	if !ok {
		return nil, fmt.Errorf("convert %q to array: not a JSON array: %w", raw, ErrTypeConversion)
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		converted, err := convertElement(elem, item)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}

	return out, nil
}

// Set 同 [Array]，并对相等元素去重（保留首次出现）。
func Set(raw string, elem Kind) ([]any, error) {
	items, err := Array(raw, elem)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		if !containsEqual(out, item) {
			out = append(out, item)
		}
	}

	return out, nil
}

// Map 将 JSON 对象的键和值独立转换为 key / val 类型。
func Map(raw string, key, val Kind) (map[any]any, error) {
	if err := checkNestable(key); err != nil {
		return nil, err
	}
	if err := checkNestable(val); err != nil {
		return nil, err
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("convert %q to map: %w", raw, ErrTypeConversion)
	}
	fields, ok := parsed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("convert %q to map: not a JSON object: %w", raw, ErrTypeConversion)
	}

	out := make(map[any]any, len(fields))
	for k, v := range fields {
		ck, err := Convert(key, k)
		if err != nil {
			return nil, err
		}
		// Go map 的键必须可比较；object 子类型可能产生 map/slice
		if ck == nil || !reflect.TypeOf(ck).Comparable() {
			return nil, fmt.Errorf("map key %q converts to uncomparable value: %w", k, ErrTypeConversion)
		}

		cv, err := convertElement(val, v)
		if err != nil {
			return nil, err
		}
		out[ck] = cv
	}

	return out, nil
}

// checkNestable 校验容器子类型属于可嵌套子集。
//
// 不支持的子类型按 [ErrUnsupportedType] 传播，不再包装。
func checkNestable(k Kind) error {
	if !k.Nestable() {
		return fmt.Errorf("%w: %q is not nestable", ErrUnsupportedType, string(k))
	}

	return nil
}

// convertElement 转换容器内的单个元素。
//
// 字符串元素直接转换，其余 JSON 值先回写为文本再转换，
// 与"按元素字符串形式转换"的语义一致。
func convertElement(kind Kind, item any) (any, error) {
	raw, err := elementRaw(item)
	if err != nil {
		return nil, err
	}

	return Convert(kind, raw)
}

func elementRaw(item any) (string, error) {
	if s, ok := item.(string); ok {
		return s, nil
	}

	b, err := json.Marshal(item)
	if err != nil {
		return "", fmt.Errorf("serialize container element: %w", ErrTypeConversion)
	}

	return string(b), nil
}

func containsEqual(items []any, candidate any) bool {
	for _, item := range items {
		if reflect.DeepEqual(item, candidate) {
			return true
		}
	}

	return false
}
