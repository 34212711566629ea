package data

import (
	"context"
	"errors"

	"xinyuan_tech/booking-service/internal/biz"
	"xinyuan_tech/booking-service/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
)

// memberCardRepo 会员卡仓库实现
type memberCardRepo struct {
	data *Data
	log  *log.Helper
}

// NewMemberCardRepo 创建会员卡仓库
func NewMemberCardRepo(data *Data, logger log.Logger) biz.MemberCardRepo {
	return &memberCardRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func toMemberCardBiz(m *model.MemberCard) *biz.MemberCard {
	return &biz.MemberCard{
		ID:           m.MemberCardID,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		DurationDays: m.DurationDays,
		SortOrder:    m.SortOrder,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toMemberCardModel(c *biz.MemberCard) *model.MemberCard {
	return &model.MemberCard{
		MemberCardID: c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Price:        c.Price,
		DurationDays: c.DurationDays,
		SortOrder:    c.SortOrder,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ListCards 获取会员卡列表
func (r *memberCardRepo) ListCards(ctx context.Context, activeOnly bool) ([]*biz.MemberCard, error) {
	var models []model.MemberCard
	query := r.data.DB(ctx).Model(&model.MemberCard{})
	if activeOnly {
		query = query.Where("status = ?", 1)
	}
	if err := query.Order("sort_order ASC, created_at ASC").Find(&models).Error; err != nil {
		r.log.Errorf("Failed to list member cards: %v", err)
		return nil, err
	}

	cards := make([]*biz.MemberCard, len(models))
	for i := range models {
		cards[i] = toMemberCardBiz(&models[i])
	}
	return cards, nil
}

// GetCard 根据ID获取会员卡
func (r *memberCardRepo) GetCard(ctx context.Context, id string) (*biz.MemberCard, error) {
	var m model.MemberCard
	err := r.data.DB(ctx).First(&m, "member_card_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Errorf("Failed to get member card %s: %v", id, err)
		return nil, err
	}
	return toMemberCardBiz(&m), nil
}

// CreateCard 创建会员卡
func (r *memberCardRepo) CreateCard(ctx context.Context, card *biz.MemberCard) error {
	if err := r.data.DB(ctx).Create(toMemberCardModel(card)).Error; err != nil {
		r.log.Errorf("Failed to create member card: %v", err)
		return err
	}
	return nil
}

// UpdateCard 更新会员卡
func (r *memberCardRepo) UpdateCard(ctx context.Context, card *biz.MemberCard) error {
	if err := r.data.DB(ctx).Save(toMemberCardModel(card)).Error; err != nil {
		r.log.Errorf("Failed to update member card %s: %v", card.ID, err)
		return err
	}
	return nil
}
