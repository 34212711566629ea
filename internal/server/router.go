package server

import (
	"context"

	"xinyuan_tech/booking-service/internal/service"

	"github.com/go-kratos/kratos/v2/transport/http"
)

const (
	OperationCourseListCourses  = "/booking.v1.CourseService/ListCourses"
	OperationCourseGetCourse    = "/booking.v1.CourseService/GetCourse"
	OperationCourseCreateCourse = "/booking.v1.CourseService/CreateCourse"
	OperationCourseUpdateCourse = "/booking.v1.CourseService/UpdateCourse"
	OperationCourseDeleteCourse = "/booking.v1.CourseService/DeleteCourse"

	OperationStudentCreateStudent = "/booking.v1.StudentService/CreateStudent"
	OperationStudentListStudents  = "/booking.v1.StudentService/ListStudents"
	OperationStudentDeleteStudent = "/booking.v1.StudentService/DeleteStudent"

	OperationOrderCreateOrder   = "/booking.v1.OrderService/CreateOrder"
	OperationOrderListOrders    = "/booking.v1.OrderService/ListOrders"
	OperationOrderGetOrder      = "/booking.v1.OrderService/GetOrder"
	OperationOrderCancelOrder   = "/booking.v1.OrderService/CancelOrder"
	OperationOrderRequestRefund = "/booking.v1.OrderService/RequestRefund"
	OperationOrderListAllOrders = "/booking.v1.OrderService/ListAllOrders"
	OperationOrderProcessRefund = "/booking.v1.OrderService/ProcessRefund"

	OperationPaymentCreatePrepay   = "/booking.v1.PaymentService/CreatePrepay"
	OperationPaymentHandleCallback = "/booking.v1.PaymentService/HandleCallback"

	OperationMemberListCards       = "/booking.v1.MemberService/ListCards"
	OperationMemberPurchaseCard    = "/booking.v1.MemberService/PurchaseCard"
	OperationMemberGetMemberStatus = "/booking.v1.MemberService/GetMemberStatus"
	OperationMemberCreateCard      = "/booking.v1.MemberService/CreateCard"
	OperationMemberUpdateCard      = "/booking.v1.MemberService/UpdateCard"
)

func registerCourseRoutes(srv *http.Server, svc *service.CourseService) {
	r := srv.Route("/")
	r.GET("/api/v1/courses", listCoursesHandler(svc))
	r.GET("/api/v1/courses/{course_id}", getCourseHandler(svc))
	r.POST("/api/v1/admin/courses", createCourseHandler(svc))
	r.PUT("/api/v1/admin/courses/{course_id}", updateCourseHandler(svc))
	r.DELETE("/api/v1/admin/courses/{course_id}", deleteCourseHandler(svc))
}

func registerStudentRoutes(srv *http.Server, svc *service.StudentService) {
	r := srv.Route("/")
	r.POST("/api/v1/students", createStudentHandler(svc))
	r.GET("/api/v1/students", listStudentsHandler(svc))
	r.DELETE("/api/v1/students/{student_id}", deleteStudentHandler(svc))
}

func registerOrderRoutes(srv *http.Server, svc *service.OrderService) {
	r := srv.Route("/")
	r.POST("/api/v1/orders", createOrderHandler(svc))
	r.GET("/api/v1/orders", listOrdersHandler(svc))
	r.GET("/api/v1/orders/{order_id}", getOrderHandler(svc))
	r.POST("/api/v1/orders/{order_id}/cancel", cancelOrderHandler(svc))
	r.POST("/api/v1/orders/{order_id}/refund", requestRefundHandler(svc))
	r.GET("/api/v1/admin/orders", listAllOrdersHandler(svc))
	r.POST("/api/v1/admin/orders/{order_id}/refund", processRefundHandler(svc))
}

func registerPaymentRoutes(srv *http.Server, svc *service.PaymentService) {
	r := srv.Route("/")
	r.POST("/api/v1/payments/prepay", createPrepayHandler(svc))
	r.POST("/api/v1/payments/callback", paymentCallbackHandler(svc))
}

func registerMemberRoutes(srv *http.Server, svc *service.MemberService) {
	r := srv.Route("/")
	r.GET("/api/v1/member/cards", listCardsHandler(svc))
	r.POST("/api/v1/member/purchase", purchaseCardHandler(svc))
	r.GET("/api/v1/member/status", getMemberStatusHandler(svc))
	r.POST("/api/v1/admin/member/cards", createCardHandler(svc))
	r.PUT("/api/v1/admin/member/cards/{card_id}", updateCardHandler(svc))
}

func listCoursesHandler(svc *service.CourseService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.ListCoursesRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCourseListCourses)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.ListCourses(ctx, req.(*service.ListCoursesRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func getCourseHandler(svc *service.CourseService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.GetCourseRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCourseGetCourse)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.GetCourse(ctx, req.(*service.GetCourseRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func createCourseHandler(svc *service.CourseService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.SaveCourseRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCourseCreateCourse)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.CreateCourse(ctx, req.(*service.SaveCourseRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func updateCourseHandler(svc *service.CourseService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.SaveCourseRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCourseUpdateCourse)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.UpdateCourse(ctx, req.(*service.SaveCourseRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func deleteCourseHandler(svc *service.CourseService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.DeleteCourseRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCourseDeleteCourse)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.DeleteCourse(ctx, req.(*service.DeleteCourseRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func createStudentHandler(svc *service.StudentService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.CreateStudentRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationStudentCreateStudent)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.CreateStudent(ctx, req.(*service.CreateStudentRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func listStudentsHandler(svc *service.StudentService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		http.SetOperation(ctx, OperationStudentListStudents)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.ListStudents(ctx)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func deleteStudentHandler(svc *service.StudentService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.DeleteStudentRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationStudentDeleteStudent)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.DeleteStudent(ctx, req.(*service.DeleteStudentRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func createOrderHandler(svc *service.OrderService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.CreateOrderRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationOrderCreateOrder)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.CreateOrder(ctx, req.(*service.CreateOrderRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func listOrdersHandler(svc *service.OrderService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.ListOrdersRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationOrderListOrders)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.ListOrders(ctx, req.(*service.ListOrdersRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func getOrderHandler(svc *service.OrderService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.GetOrderRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationOrderGetOrder)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.GetOrder(ctx, req.(*service.GetOrderRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func cancelOrderHandler(svc *service.OrderService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.CancelOrderRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationOrderCancelOrder)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.CancelOrder(ctx, req.(*service.CancelOrderRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func requestRefundHandler(svc *service.OrderService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.RequestRefundRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationOrderRequestRefund)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.RequestRefund(ctx, req.(*service.RequestRefundRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func listAllOrdersHandler(svc *service.OrderService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.ListOrdersRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationOrderListAllOrders)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.ListAllOrders(ctx, req.(*service.ListOrdersRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func processRefundHandler(svc *service.OrderService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.ProcessRefundRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationOrderProcessRefund)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.ProcessRefund(ctx, req.(*service.ProcessRefundRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func createPrepayHandler(svc *service.PaymentService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.CreatePrepayRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationPaymentCreatePrepay)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.CreatePrepay(ctx, req.(*service.CreatePrepayRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func paymentCallbackHandler(svc *service.PaymentService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.PaymentCallbackRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationPaymentHandleCallback)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.HandleCallback(ctx, req.(*service.PaymentCallbackRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func listCardsHandler(svc *service.MemberService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		http.SetOperation(ctx, OperationMemberListCards)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.ListCards(ctx)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func purchaseCardHandler(svc *service.MemberService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.PurchaseCardRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationMemberPurchaseCard)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.PurchaseCard(ctx, req.(*service.PurchaseCardRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func getMemberStatusHandler(svc *service.MemberService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		http.SetOperation(ctx, OperationMemberGetMemberStatus)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.GetMemberStatus(ctx)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func createCardHandler(svc *service.MemberService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.SaveCardRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationMemberCreateCard)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.CreateCard(ctx, req.(*service.SaveCardRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func updateCardHandler(svc *service.MemberService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.SaveCardRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationMemberUpdateCard)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return svc.UpdateCard(ctx, req.(*service.SaveCardRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}
