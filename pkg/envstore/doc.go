// Package envstore 提供进程环境变量的快照缓存。
//
// Store 在内存中维护一份环境变量镜像，重复查询不再触达操作系统；
// 未定义的变量也会缓存"缺失"标记，避免反复的无效查找。
//
// # 语义说明
//
//  1. Get 优先命中缓存（包括缺失标记），未命中时惰性加载并缓存
//  2. Set / Delete 为写穿语义：同时更新真实进程环境与缓存
//  3. Refresh 清空缓存并整体重建快照
//
// # 并发模型
//
// Store 面向单写多读场景，内部不加锁。调用方需保证 Set/Delete/Refresh
// 不与并发的 Get 竞争（配置解析本身是单线程的同步过程）。
//
// # 快速开始
//
//	store := envstore.New(nil) // nil 使用真实进程环境
//	store.Refresh()
//	val, ok := store.Get("HOME")
package envstore
