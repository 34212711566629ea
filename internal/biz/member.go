package biz

import (
	"context"
	"time"

	"xinyuan_tech/booking-service/internal/constants"
	"xinyuan_tech/booking-service/internal/errors"

	"github.com/go-kratos/kratos/v2/log"
)

// MemberCard 会员权益卡
type MemberCard struct {
	ID           string
	Name         string
	Description  string
	Price        float64
	DurationDays int
	SortOrder    int
	Status       int // 1上架 0下架
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserMember 用户会员记录
type UserMember struct {
	ID        string
	UserID    string
	CardID    string
	OrderID   string
	StartAt   time.Time
	ExpireAt  time.Time
	Status    int // 1正常 0已过期
	CreatedAt time.Time
}

// MemberCardRepo 会员卡仓库接口
type MemberCardRepo interface {
	ListCards(ctx context.Context, activeOnly bool) ([]*MemberCard, error)
	// GetCard 不存在时返回 (nil, nil)
	GetCard(ctx context.Context, id string) (*MemberCard, error)
	CreateCard(ctx context.Context, card *MemberCard) error
	UpdateCard(ctx context.Context, card *MemberCard) error
}

// UserMemberRepo 用户会员记录仓库接口
type UserMemberRepo interface {
	// GetActiveMember 查询用户当前有效的会员记录,不存在时返回 (nil, nil)
	GetActiveMember(ctx context.Context, userID string) (*UserMember, error)
	CreateUserMember(ctx context.Context, member *UserMember) error
	// ExpireMembers 批量将已过有效期的会员记录置为过期
	ExpireMembers(ctx context.Context) (int, error)
}

// MemberUsecase 会员业务逻辑
// 为订单定价提供单一布尔输入:当前用户是否持有有效会员
type MemberUsecase struct {
	cardRepo MemberCardRepo
	userRepo UserMemberRepo
	log      *log.Helper
}

// NewMemberUsecase 创建会员业务用例
func NewMemberUsecase(cardRepo MemberCardRepo, userRepo UserMemberRepo, logger log.Logger) *MemberUsecase {
	return &MemberUsecase{
		cardRepo: cardRepo,
		userRepo: userRepo,
		log:      log.NewHelper(logger),
	}
}

// ListCards 获取会员卡列表
func (uc *MemberUsecase) ListCards(ctx context.Context, activeOnly bool) ([]*MemberCard, error) {
	return uc.cardRepo.ListCards(ctx, activeOnly)
}

// CreateCard 创建会员卡(管理端)
func (uc *MemberUsecase) CreateCard(ctx context.Context, card *MemberCard) error {
	now := time.Now()
	card.ID = NewID()
	card.Status = 1
	card.CreatedAt = now
	card.UpdatedAt = now
	return uc.cardRepo.CreateCard(ctx, card)
}

// UpdateCard 更新会员卡(管理端)
func (uc *MemberUsecase) UpdateCard(ctx context.Context, card *MemberCard) error {
	existing, err := uc.cardRepo.GetCard(ctx, card.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.ErrMemberCardNotFound()
	}
	card.CreatedAt = existing.CreatedAt
	card.UpdatedAt = time.Now()
	return uc.cardRepo.UpdateCard(ctx, card)
}

// PurchaseCard 购买会员卡
// 本地环境直接开通;已持有有效会员时在现有到期时间上顺延
func (uc *MemberUsecase) PurchaseCard(ctx context.Context, userID, cardID string) (*UserMember, error) {
	uc.log.Infof("PurchaseCard: user=%s, card=%s", userID, cardID)

	card, err := uc.cardRepo.GetCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, errors.ErrMemberCardNotFound()
	}

	now := time.Now()
	startAt := now
	current, err := uc.userRepo.GetActiveMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current != nil && current.ExpireAt.After(now) {
		startAt = current.ExpireAt
	}

	member := &UserMember{
		ID:        NewID(),
		UserID:    userID,
		CardID:    cardID,
		StartAt:   startAt,
		ExpireAt:  startAt.AddDate(0, 0, card.DurationDays),
		Status:    constants.UserMemberStatusActive,
		CreatedAt: now,
	}
	if err := uc.userRepo.CreateUserMember(ctx, member); err != nil {
		uc.log.Errorf("Failed to create user member: %v", err)
		return nil, err
	}

	uc.log.Infof("User %s purchased card %s, valid until %s", userID, cardID, member.ExpireAt.Format("2006-01-02 15:04:05"))
	return member, nil
}

// HasActiveMembership 用户当前是否持有有效会员(订单会员价的唯一判断依据)
func (uc *MemberUsecase) HasActiveMembership(ctx context.Context, userID string) (bool, error) {
	member, err := uc.userRepo.GetActiveMember(ctx, userID)
	if err != nil {
		return false, err
	}
	return member != nil, nil
}

// GetMemberStatus 获取用户会员状态详情
func (uc *MemberUsecase) GetMemberStatus(ctx context.Context, userID string) (*UserMember, error) {
	return uc.userRepo.GetActiveMember(ctx, userID)
}

// ExpireMembers 批量过期会员记录(定时任务)
func (uc *MemberUsecase) ExpireMembers(ctx context.Context) (int, error) {
	count, err := uc.userRepo.ExpireMembers(ctx)
	if err != nil {
		uc.log.Errorf("Failed to expire members: %v", err)
		return 0, err
	}
	if count > 0 {
		uc.log.Infof("Expired %d member records", count)
	}
	return count, nil
}
