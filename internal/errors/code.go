package errors

import (
	kerrors "github.com/go-kratos/kratos/v2/errors"
)

// 预订服务错误码定义
// 错误码格式：SSMMEE (6位数字)，其中 SS=14 表示 booking-service
// 模块划分：
//   01: 课程模块
//   02: 学员模块
//   03: 订单模块
//   04: 支付模块
//   05: 会员模块

// 课程模块 (140100-140199)
const (
	// ErrCodeCourseNotFound 课程不存在错误
	ErrCodeCourseNotFound = 140101
	// ErrCodeCourseNotEnrolling 课程当前不可报名错误
	ErrCodeCourseNotEnrolling = 140102
	// ErrCodeCourseFull 课程名额不足错误
	ErrCodeCourseFull = 140103
	// ErrCodeCourseHasStudents 课程已有学员报名不可删除错误
	ErrCodeCourseHasStudents = 140104
)

// 学员模块 (140200-140299)
const (
	// ErrCodeStudentNotFound 学员不存在或不属于当前用户错误
	ErrCodeStudentNotFound = 140201
	// ErrCodeStudentAlreadyEnrolled 学员已报名该课程错误
	ErrCodeStudentAlreadyEnrolled = 140202
)

// 订单模块 (140300-140399)
const (
	// ErrCodeOrderNotFound 订单不存在错误
	ErrCodeOrderNotFound = 140301
	// ErrCodeOrderNotBelong 订单不属于当前用户错误
	ErrCodeOrderNotBelong = 140302
	// ErrCodeOrderCannotCancel 订单状态不允许取消错误
	ErrCodeOrderCannotCancel = 140303
	// ErrCodeOrderCannotPay 订单状态不允许支付错误
	ErrCodeOrderCannotPay = 140304
	// ErrCodeOrderCannotRefund 订单状态不允许退款错误
	ErrCodeOrderCannotRefund = 140305
	// ErrCodeOrderNotRefunding 订单不在退款中状态错误
	ErrCodeOrderNotRefunding = 140306
	// ErrCodeOrderExpired 订单已过期错误
	ErrCodeOrderExpired = 140307
)

// 支付模块 (140400-140499)
const (
	// ErrCodePaymentNotFound 支付记录不存在错误
	ErrCodePaymentNotFound = 140401
	// ErrCodePaymentGatewayFailed 支付网关调用失败错误(可重试)
	ErrCodePaymentGatewayFailed = 140402
)

// 会员模块 (140500-140599)
const (
	// ErrCodeMemberCardNotFound 会员卡不存在错误
	ErrCodeMemberCardNotFound = 140501
)

// ErrCourseNotFound 课程不存在
func ErrCourseNotFound() *kerrors.Error {
	return kerrors.New(ErrCodeCourseNotFound, "COURSE_NOT_FOUND", "课程不存在")
}

// ErrCourseNotEnrolling 课程当前不可报名
func ErrCourseNotEnrolling() *kerrors.Error {
	return kerrors.New(ErrCodeCourseNotEnrolling, "COURSE_NOT_ENROLLING", "课程当前不可报名")
}

// ErrCourseFull 课程名额不足
func ErrCourseFull() *kerrors.Error {
	return kerrors.New(ErrCodeCourseFull, "COURSE_FULL", "课程名额不足")
}

// ErrCourseHasStudents 课程已有学员报名,不可删除
func ErrCourseHasStudents() *kerrors.Error {
	return kerrors.New(ErrCodeCourseHasStudents, "COURSE_HAS_STUDENTS", "课程已有学员报名,不可删除")
}

// ErrStudentNotFound 学员不存在或不属于当前用户
func ErrStudentNotFound() *kerrors.Error {
	return kerrors.New(ErrCodeStudentNotFound, "STUDENT_NOT_FOUND", "学员不存在或不属于当前用户")
}

// ErrStudentAlreadyEnrolled 学员已报名该课程
func ErrStudentAlreadyEnrolled() *kerrors.Error {
	return kerrors.New(ErrCodeStudentAlreadyEnrolled, "STUDENT_ALREADY_ENROLLED", "学员已报名该课程")
}

// ErrOrderNotFound 订单不存在
func ErrOrderNotFound() *kerrors.Error {
	return kerrors.New(ErrCodeOrderNotFound, "ORDER_NOT_FOUND", "订单不存在")
}

// ErrOrderNotBelong 订单不属于当前用户
func ErrOrderNotBelong() *kerrors.Error {
	return kerrors.New(ErrCodeOrderNotBelong, "ORDER_NOT_BELONG", "订单不属于当前用户")
}

// ErrOrderCannotCancel 订单状态不允许取消
func ErrOrderCannotCancel() *kerrors.Error {
	return kerrors.New(ErrCodeOrderCannotCancel, "ORDER_CANNOT_CANCEL", "订单状态不允许取消")
}

// ErrOrderCannotPay 订单状态不允许支付
func ErrOrderCannotPay() *kerrors.Error {
	return kerrors.New(ErrCodeOrderCannotPay, "ORDER_CANNOT_PAY", "订单状态不允许支付")
}

// ErrOrderCannotRefund 订单状态不允许退款
func ErrOrderCannotRefund() *kerrors.Error {
	return kerrors.New(ErrCodeOrderCannotRefund, "ORDER_CANNOT_REFUND", "订单状态不允许退款")
}

// ErrOrderNotRefunding 订单不在退款中状态
func ErrOrderNotRefunding() *kerrors.Error {
	return kerrors.New(ErrCodeOrderNotRefunding, "ORDER_NOT_REFUNDING", "订单不在退款中状态")
}

// ErrOrderExpired 订单已过期
func ErrOrderExpired() *kerrors.Error {
	return kerrors.New(ErrCodeOrderExpired, "ORDER_EXPIRED", "订单已过期")
}

// ErrPaymentNotFound 支付记录不存在
func ErrPaymentNotFound() *kerrors.Error {
	return kerrors.New(ErrCodePaymentNotFound, "PAYMENT_NOT_FOUND", "支付记录不存在")
}

// ErrPaymentGatewayFailed 支付网关调用失败,可稍后重试
func ErrPaymentGatewayFailed() *kerrors.Error {
	return kerrors.New(ErrCodePaymentGatewayFailed, "PAYMENT_GATEWAY_FAILED", "支付网关调用失败,请稍后重试")
}

// ErrMemberCardNotFound 会员卡不存在
func ErrMemberCardNotFound() *kerrors.Error {
	return kerrors.New(ErrCodeMemberCardNotFound, "MEMBER_CARD_NOT_FOUND", "会员卡不存在")
}

// IsBizCode 判断错误是否携带指定业务错误码
func IsBizCode(err error, code int) bool {
	if err == nil {
		return false
	}
	return kerrors.FromError(err).Code == int32(code)
}
