package biz

import (
	"context"
	"strings"
	"time"

	"xinyuan_tech/booking-service/internal/constants"

	"github.com/google/uuid"
	"github.com/google/wire"
)

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(
	NewCourseUsecase,
	NewStudentUsecase,
	NewOrderUsecase,
	NewPaymentUsecase,
	NewMemberUsecase,
)

// Transaction 事务执行接口,由 data 层实现
// 每个请求一个工作单元:fn 内的所有读写在同一事务中提交或回滚
type Transaction interface {
	Exec(ctx context.Context, fn func(ctx context.Context) error) error
}

// NewID 生成实体ID(32位十六进制 UUID)
func NewID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// NewOrderNo 生成订单号(对外可读的唯一编号)
func NewOrderNo() string {
	timestamp := time.Now().Format("20060102150405")
	random := strings.ToUpper(NewID()[:8])
	return constants.OrderNoPrefix + timestamp + random
}
