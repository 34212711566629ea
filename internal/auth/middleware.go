package auth

import (
	"context"

	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/transport"
)

// 认证头由上游网关校验后透传,本服务只负责解析
const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"
)

// Middleware 从请求头提取用户身份写入 context
// Token 的签发与校验由上游负责,这里只消费已认证的身份头
func Middleware() middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req interface{}) (interface{}, error) {
			if tr, ok := transport.FromServerContext(ctx); ok {
				if uid := tr.RequestHeader().Get(headerUserID); uid != "" {
					ctx = WithUID(ctx, uid)
				}
				if role := tr.RequestHeader().Get(headerUserRole); role != "" {
					ctx = WithRole(ctx, Role(role))
				}
			}
			return handler(ctx, req)
		}
	}
}
