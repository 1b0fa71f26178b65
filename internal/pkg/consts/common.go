package consts

import "time"

// 帖子变更事件类型
const (
	PostagemEventCreated = "created"
	PostagemEventUpdated = "updated"
	PostagemEventDeleted = "deleted"
)

const (
	// OrphanPostagemLogLimit 孤儿帖子巡检日志中最多列出的 ID 数
	OrphanPostagemLogLimit = 100
)

// 慢命令阈值，超过后以 Warn 记录
const (
	SQLSlowThreshold   = 200 * time.Millisecond
	RedisSlowThreshold = 100 * time.Millisecond
)
