package constants

import "time"

// 订单相关常量
const (
	// OrderExpireTTL 订单支付有效期(创建后未支付自动过期)
	OrderExpireTTL = 30 * time.Minute
	// OrderNoPrefix 订单号前缀
	OrderNoPrefix = "ORD"
)

// 缓存相关常量
const (
	// DefaultCacheExpiration 默认缓存过期时间
	DefaultCacheExpiration = time.Hour
	// NullCacheExpiration 空值缓存过期时间 (防止缓存穿透)
	NullCacheExpiration = 5 * time.Minute
	// CacheRandomMaxSeconds 缓存随机过期时间最大值(秒) - 防止缓存雪崩
	CacheRandomMaxSeconds = 600 // 10分钟
)

// 分页相关常量
const (
	// DefaultPageSize 默认分页大小
	DefaultPageSize = 20
	// MaxPageSize 最大分页大小
	MaxPageSize = 100
)

// 分布式锁相关常量
const (
	// CronLockExpiration 定时任务锁过期时间
	CronLockExpiration = 10 * time.Minute
	// CronLockRetries 定时任务锁重试次数
	CronLockRetries = 1
	// OrderExpireLockKey 订单过期清理任务锁
	OrderExpireLockKey = "cron_lock:order_expire"
	// MemberExpireLockKey 会员过期清理任务锁
	MemberExpireLockKey = "cron_lock:member_expire"
)

// 课程状态
const (
	CourseStatusPending   = "pending"   // 待发布
	CourseStatusEnrolling = "enrolling" // 报名中
	CourseStatusOngoing   = "ongoing"   // 进行中
	CourseStatusCompleted = "completed" // 已结课
	CourseStatusCancelled = "cancelled" // 已取消
)

// 订单状态
const (
	OrderStatusPending   = "pending"   // 待支付
	OrderStatusPaid      = "paid"      // 已支付
	OrderStatusCancelled = "cancelled" // 已取消
	OrderStatusExpired   = "expired"   // 已过期
	OrderStatusRefunding = "refunding" // 退款中
	OrderStatusRefunded  = "refunded"  // 已退款
)

// 课程学员状态
const (
	EnrollmentStatusPending   = "pending"   // 待支付
	EnrollmentStatusActive    = "active"    // 已生效
	EnrollmentStatusCancelled = "cancelled" // 已取消
	EnrollmentStatusRefunded  = "refunded"  // 已退款
)

// 支付状态
const (
	PaymentStatusPending = "pending" // 待支付
	PaymentStatusSuccess = "success" // 支付成功
	PaymentStatusFailed  = "failed"  // 支付失败
)

// 会员记录状态
const (
	// UserMemberStatusActive 会员有效
	UserMemberStatusActive = 1
	// UserMemberStatusExpired 会员已过期
	UserMemberStatusExpired = 0
)
