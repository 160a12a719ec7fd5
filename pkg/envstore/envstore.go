package envstore

import (
	"os"
	"strings"
)

// Accessor 抽象真实进程环境的读写接口。
//
// 默认实现基于 os 包；测试可注入内存实现以隔离进程状态。
type Accessor interface {
	// Environ 返回 "KEY=value" 形式的完整环境列表。
	Environ() []string
	// Lookup 查询单个变量，区分空值与未定义。
	Lookup(key string) (string, bool)
	// Set 写入变量。
	Set(key, value string) error
	// Unset 删除变量。
	Unset(key string) error
}

// osAccessor 基于 os 包的默认实现。
type osAccessor struct{}

func (osAccessor) Environ() []string { return os.Environ() }

func (osAccessor) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

func (osAccessor) Set(key, value string) error { return os.Setenv(key, value) }

func (osAccessor) Unset(key string) error { return os.Unsetenv(key) }

// MapAccessor 内存版 Accessor，用于测试或隔离真实进程环境。
type MapAccessor map[string]string

func (m MapAccessor) Environ() []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+"="+v)
	}

	return out
}

func (m MapAccessor) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MapAccessor) Set(key, value string) error {
	m[key] = value
	return nil
}

func (m MapAccessor) Unset(key string) error {
	delete(m, key)
	return nil
}

// entry 单个缓存条目；present 为 false 表示已确认缺失。
type entry struct {
	value   string
	present bool
}

// Store 环境变量快照缓存。
type Store struct {
	acc   Accessor
	cache map[string]entry
}

// New 创建 Store。
//
// acc 为 nil 时使用真实进程环境。
func New(acc Accessor) *Store {
	if acc == nil {
		acc = osAccessor{}
	}

	return &Store{
		acc:   acc,
		cache: make(map[string]entry),
	}
}

// Refresh 清空缓存并整体重建快照。
func (s *Store) Refresh() {
	s.cache = make(map[string]entry)
	for _, kv := range s.acc.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			s.cache[parts[0]] = entry{value: parts[1], present: true}
		}
	}
}

// Get 查询变量值。
//
// 命中缓存时直接返回（缺失标记同样算命中）；未命中时从真实环境
// 惰性加载，并将结果（包括缺失）写入缓存。
func (s *Store) Get(key string) (string, bool) {
	if e, ok := s.cache[key]; ok {
		return e.value, e.present
	}

	val, ok := s.acc.Lookup(key)
	s.cache[key] = entry{value: val, present: ok}

	return val, ok
}

// Set 写入变量（写穿：真实环境与缓存同时更新）。
func (s *Store) Set(key, value string) error {
	if err := s.acc.Set(key, value); err != nil {
		return err
	}
	s.cache[key] = entry{value: value, present: true}

	return nil
}

// Delete 删除变量（写穿），并在缓存中记录缺失标记。
func (s *Store) Delete(key string) error {
	if err := s.acc.Unset(key); err != nil {
		return err
	}
	s.cache[key] = entry{present: false}

	return nil
}
