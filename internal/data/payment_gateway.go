package data

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"xinyuan_tech/booking-service/internal/biz"
	"xinyuan_tech/booking-service/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// mockPaymentGateway 模拟支付网关
// 本地环境不对接真实支付商,返回结构上与真实预支付一致的确定性参数,
// 客户端联调与回调链路可以完整走通
type mockPaymentGateway struct {
	appID string
	log   *log.Helper
}

// NewPaymentGateway 创建支付网关客户端
func NewPaymentGateway(c *conf.Bootstrap, logger log.Logger) biz.PaymentGateway {
	appID := ""
	if c != nil && c.Client != nil && c.Client.PaymentGateway != nil {
		appID = c.Client.PaymentGateway.AppID
	}
	return &mockPaymentGateway{
		appID: appID,
		log:   log.NewHelper(logger),
	}
}

// CreatePrepay 创建预支付单
func (g *mockPaymentGateway) CreatePrepay(ctx context.Context, payment *biz.Payment, order *biz.Order) (*biz.PrepayParams, error) {
	// 真实网关是一次网络往返,尊重调用方的超时设置
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prepayID := "prepay_" + payment.ID
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	nonceStr := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]

	raw := fmt.Sprintf("app_id=%s&prepay_id=%s&timestamp=%s&nonce=%s", g.appID, prepayID, timestamp, nonceStr)
	sum := md5.Sum([]byte(raw))

	g.log.Infof("Mock prepay created: order=%s, amount=%.2f", order.OrderNo, payment.Amount)
	return &biz.PrepayParams{
		PrepayID:  prepayID,
		Timestamp: timestamp,
		NonceStr:  nonceStr,
		Sign:      hex.EncodeToString(sum[:]),
	}, nil
}
