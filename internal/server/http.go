package server

import (
	"encoding/json"
	stdhttp "net/http"
	"time"

	"xinyuan_tech/booking-service/internal/auth"
	"xinyuan_tech/booking-service/internal/conf"
	"xinyuan_tech/booking-service/internal/service"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/middleware/validate"
	"github.com/go-kratos/kratos/v2/transport/http"
)

// NewHTTPServer new an HTTP server.
func NewHTTPServer(
	c *conf.Bootstrap,
	course *service.CourseService,
	student *service.StudentService,
	order *service.OrderService,
	payment *service.PaymentService,
	member *service.MemberService,
	logger log.Logger,
) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			// 添加参数验证中间件
			validate.Validator(),
			// 解析网关透传的用户身份头
			auth.Middleware(),
		),
		http.ResponseEncoder(customResponseEncoder),
		http.ErrorEncoder(customErrorEncoder),
	}
	if c.Server.Http.Addr != "" {
		opts = append(opts, http.Address(c.Server.Http.Addr))
	}
	if c.Server.Http.Timeout != "" {
		if d, err := time.ParseDuration(c.Server.Http.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}
	srv := http.NewServer(opts...)

	// 注册业务路由
	registerCourseRoutes(srv, course)
	registerStudentRoutes(srv, student)
	registerOrderRoutes(srv, order)
	registerPaymentRoutes(srv, payment)
	registerMemberRoutes(srv, member)

	// 注册健康检查端点
	srv.Route("/").GET("/health", func(ctx http.Context) error {
		return ctx.Result(200, map[string]string{
			"status":  "ok",
			"service": "booking-service",
		})
	})

	return srv
}

// envelope 统一响应结构,code 为 0 表示成功
type envelope struct {
	Code    int32       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func customResponseEncoder(w stdhttp.ResponseWriter, r *stdhttp.Request, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(&envelope{
		Code:    0,
		Message: "ok",
		Data:    v,
	})
}

func customErrorEncoder(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	se := kerrors.FromError(err)
	status := stdhttp.StatusInternalServerError
	response := map[string]interface{}{
		"code":    status,
		"message": "internal server error",
	}

	if se != nil {
		status = mapErrorStatus(int(se.Code))
		response["code"] = se.Code
		response["reason"] = se.Reason
		response["message"] = se.Message
		if len(se.Metadata) > 0 {
			response["metadata"] = se.Metadata
		}
	} else if err != nil {
		response["message"] = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

func mapErrorStatus(code int) int {
	if code >= 100 && code < 600 {
		return code
	}
	// 业务错误码统一按请求错误返回
	if code >= 140000 && code < 150000 {
		return stdhttp.StatusBadRequest
	}
	return stdhttp.StatusInternalServerError
}
