package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"xinyuan_tech/booking-service/internal/biz"
	"xinyuan_tech/booking-service/internal/constants"
	"xinyuan_tech/booking-service/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// 空值缓存标记 (防止缓存穿透)
const nullCacheValue = "null"

// userMemberRepo 用户会员记录仓库实现
// GetActiveMember 走缓存:下单路径每单都要查会员价资格
type userMemberRepo struct {
	data *Data
	log  *log.Helper
}

// NewUserMemberRepo 创建用户会员记录仓库
func NewUserMemberRepo(data *Data, logger log.Logger) biz.UserMemberRepo {
	return &userMemberRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func toUserMemberBiz(m *model.UserMember) *biz.UserMember {
	return &biz.UserMember{
		ID:        m.UserMemberID,
		UserID:    m.UserID,
		CardID:    m.CardID,
		OrderID:   m.OrderID,
		StartAt:   m.StartAt,
		ExpireAt:  m.ExpireAt,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
}

func toUserMemberModel(u *biz.UserMember) *model.UserMember {
	return &model.UserMember{
		UserMemberID: u.ID,
		UserID:       u.UserID,
		CardID:       u.CardID,
		OrderID:      u.OrderID,
		StartAt:      u.StartAt,
		ExpireAt:     u.ExpireAt,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
	}
}

func activeMemberCacheKey(userID string) string {
	return fmt.Sprintf("user_member:active:%s", userID)
}

// cacheExpiration 默认过期时间加随机抖动 (防止缓存雪崩)
func cacheExpiration() time.Duration {
	return constants.DefaultCacheExpiration + time.Duration(rand.Intn(constants.CacheRandomMaxSeconds))*time.Second
}

// GetActiveMember 查询用户当前有效的会员记录
func (r *userMemberRepo) GetActiveMember(ctx context.Context, userID string) (*biz.UserMember, error) {
	key := activeMemberCacheKey(userID)

	cached, err := r.data.rdb.Get(ctx, key).Result()
	if err == nil {
		if cached == nullCacheValue {
			return nil, nil
		}
		var member biz.UserMember
		if err := json.Unmarshal([]byte(cached), &member); err == nil {
			// 缓存中的记录可能在 TTL 内跨过 expire_at,读取时复核
			if member.ExpireAt.After(time.Now()) {
				return &member, nil
			}
			return nil, nil
		}
		// 缓存内容损坏,回源重建
	} else if !errors.Is(err, redis.Nil) {
		r.log.Warnf("Redis get failed for %s, falling back to db: %v", key, err)
	}

	var m model.UserMember
	dbErr := r.data.DB(ctx).
		Where("user_id = ? AND status = ? AND expire_at > ?", userID, constants.UserMemberStatusActive, time.Now()).
		Order("expire_at DESC").
		First(&m).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		if err := r.data.rdb.Set(ctx, key, nullCacheValue, constants.NullCacheExpiration).Err(); err != nil {
			r.log.Warnf("Failed to cache null member for user %s: %v", userID, err)
		}
		return nil, nil
	}
	if dbErr != nil {
		r.log.Errorf("Failed to get active member for user %s: %v", userID, dbErr)
		return nil, dbErr
	}

	member := toUserMemberBiz(&m)
	if data, err := json.Marshal(member); err == nil {
		if err := r.data.rdb.Set(ctx, key, data, cacheExpiration()).Err(); err != nil {
			r.log.Warnf("Failed to cache member for user %s: %v", userID, err)
		}
	}
	return member, nil
}

// CreateUserMember 创建用户会员记录并让缓存失效
func (r *userMemberRepo) CreateUserMember(ctx context.Context, member *biz.UserMember) error {
	if err := r.data.DB(ctx).Create(toUserMemberModel(member)).Error; err != nil {
		r.log.Errorf("Failed to create user member: %v", err)
		return err
	}
	if err := r.data.rdb.Del(ctx, activeMemberCacheKey(member.UserID)).Err(); err != nil {
		r.log.Warnf("Failed to invalidate member cache for user %s: %v", member.UserID, err)
	}
	return nil
}

// ExpireMembers 批量将已过有效期的会员记录置为过期
// 不逐条失效缓存:缓存读取路径会复核 expire_at,过期会员不会被误判为有效
func (r *userMemberRepo) ExpireMembers(ctx context.Context) (int, error) {
	res := r.data.DB(ctx).Model(&model.UserMember{}).
		Where("status = ? AND expire_at < ?", constants.UserMemberStatusActive, time.Now()).
		Update("status", constants.UserMemberStatusExpired)
	if res.Error != nil {
		r.log.Errorf("Failed to expire members: %v", res.Error)
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}
