package service

import (
	"context"

	"xinyuan_tech/booking-service/internal/auth"
	"xinyuan_tech/booking-service/internal/biz"

	"github.com/go-kratos/kratos/v2/errors"
)

// MemberService 会员服务
type MemberService struct {
	uc *biz.MemberUsecase
}

// NewMemberService 创建会员服务
func NewMemberService(uc *biz.MemberUsecase) *MemberService {
	return &MemberService{uc: uc}
}

// MemberCardReply 会员卡响应
type MemberCardReply struct {
	CardID       string  `json:"card_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"duration_days"`
	SortOrder    int     `json:"sort_order"`
	Status       int     `json:"status"`
}

func toMemberCardReply(c *biz.MemberCard) *MemberCardReply {
	return &MemberCardReply{
		CardID:       c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Price:        c.Price,
		DurationDays: c.DurationDays,
		SortOrder:    c.SortOrder,
		Status:       c.Status,
	}
}

// ListCardsReply 会员卡列表响应
type ListCardsReply struct {
	Cards []*MemberCardReply `json:"cards"`
}

// ListCards 获取会员卡列表(用户端只展示上架的卡)
func (s *MemberService) ListCards(ctx context.Context) (*ListCardsReply, error) {
	cards, err := s.uc.ListCards(ctx, !auth.IsAdmin(ctx))
	if err != nil {
		return nil, err
	}

	replies := make([]*MemberCardReply, len(cards))
	for i, c := range cards {
		replies[i] = toMemberCardReply(c)
	}
	return &ListCardsReply{Cards: replies}, nil
}

// SaveCardRequest 创建/更新会员卡请求(管理端)
type SaveCardRequest struct {
	CardID       string  `json:"card_id" form:"card_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"duration_days"`
	SortOrder    int     `json:"sort_order"`
	Status       int     `json:"status"`
}

// Validate 请求参数校验
func (r *SaveCardRequest) Validate() error {
	if r.Name == "" {
		return errors.BadRequest("INVALID_PARAM", "name is required")
	}
	if r.DurationDays <= 0 {
		return errors.BadRequest("INVALID_PARAM", "duration_days must be positive")
	}
	if r.Price < 0 {
		return errors.BadRequest("INVALID_PARAM", "price must not be negative")
	}
	return nil
}

func (r *SaveCardRequest) toBiz() *biz.MemberCard {
	return &biz.MemberCard{
		ID:           r.CardID,
		Name:         r.Name,
		Description:  r.Description,
		Price:        r.Price,
		DurationDays: r.DurationDays,
		SortOrder:    r.SortOrder,
		Status:       r.Status,
	}
}

// CreateCard 创建会员卡(管理端)
func (s *MemberService) CreateCard(ctx context.Context, req *SaveCardRequest) (*MemberCardReply, error) {
	if err := auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	card := req.toBiz()
	if err := s.uc.CreateCard(ctx, card); err != nil {
		return nil, err
	}
	return toMemberCardReply(card), nil
}

// UpdateCard 更新会员卡(管理端)
func (s *MemberService) UpdateCard(ctx context.Context, req *SaveCardRequest) (*MemberCardReply, error) {
	if err := auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	card := req.toBiz()
	if err := s.uc.UpdateCard(ctx, card); err != nil {
		return nil, err
	}
	return toMemberCardReply(card), nil
}

// PurchaseCardRequest 购买会员卡请求
type PurchaseCardRequest struct {
	CardID string `json:"card_id"`
}

// Validate 请求参数校验
func (r *PurchaseCardRequest) Validate() error {
	if r.CardID == "" {
		return errors.BadRequest("INVALID_PARAM", "card_id is required")
	}
	return nil
}

// UserMemberReply 用户会员状态响应
type UserMemberReply struct {
	IsMember bool   `json:"is_member"`
	CardID   string `json:"card_id,omitempty"`
	StartAt  int64  `json:"start_at,omitempty"`
	ExpireAt int64  `json:"expire_at,omitempty"`
}

// PurchaseCard 购买会员卡
func (s *MemberService) PurchaseCard(ctx context.Context, req *PurchaseCardRequest) (*UserMemberReply, error) {
	uid, err := auth.RequireUID(ctx)
	if err != nil {
		return nil, err
	}

	member, err := s.uc.PurchaseCard(ctx, uid, req.CardID)
	if err != nil {
		return nil, err
	}
	return &UserMemberReply{
		IsMember: true,
		CardID:   member.CardID,
		StartAt:  member.StartAt.Unix(),
		ExpireAt: member.ExpireAt.Unix(),
	}, nil
}

// GetMemberStatus 获取当前用户会员状态
func (s *MemberService) GetMemberStatus(ctx context.Context) (*UserMemberReply, error) {
	uid, err := auth.RequireUID(ctx)
	if err != nil {
		return nil, err
	}

	member, err := s.uc.GetMemberStatus(ctx, uid)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return &UserMemberReply{IsMember: false}, nil
	}
	return &UserMemberReply{
		IsMember: true,
		CardID:   member.CardID,
		StartAt:  member.StartAt.Unix(),
		ExpireAt: member.ExpireAt.Unix(),
	}, nil
}
