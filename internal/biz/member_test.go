package biz

import (
	"context"
	"testing"
	"time"

	"xinyuan_tech/booking-service/internal/constants"
	"xinyuan_tech/booking-service/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseCard(t *testing.T) {
	ctx := context.Background()

	t.Run("activates immediately", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.member.CreateCard(ctx, &MemberCard{Name: "月卡", Price: 30, DurationDays: 30}))
		cards, err := env.member.ListCards(ctx, true)
		require.NoError(t, err)
		require.Len(t, cards, 1)

		member, err := env.member.PurchaseCard(ctx, "u1", cards[0].ID)
		require.NoError(t, err)
		assert.Equal(t, constants.UserMemberStatusActive, member.Status)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), member.ExpireAt, time.Minute)

		isMember, err := env.member.HasActiveMembership(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, isMember)
	})

	t.Run("repurchase extends from current expiry", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.member.CreateCard(ctx, &MemberCard{Name: "月卡", Price: 30, DurationDays: 30}))
		cards, _ := env.member.ListCards(ctx, true)

		first, err := env.member.PurchaseCard(ctx, "u1", cards[0].ID)
		require.NoError(t, err)
		second, err := env.member.PurchaseCard(ctx, "u1", cards[0].ID)
		require.NoError(t, err)

		assert.Equal(t, first.ExpireAt, second.StartAt)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 60), second.ExpireAt, time.Minute)
	})

	t.Run("unknown card rejected", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.member.PurchaseCard(ctx, "u1", "missing")
		assert.True(t, errors.IsBizCode(err, errors.ErrCodeMemberCardNotFound))
	})
}

func TestHasActiveMembership(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	isMember, err := env.member.HasActiveMembership(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, isMember)

	// 已过期的记录不算有效会员
	env.memberRepo.members = append(env.memberRepo.members, &UserMember{
		ID:       "m1",
		UserID:   "u1",
		ExpireAt: time.Now().Add(-time.Hour),
		Status:   constants.UserMemberStatusActive,
	})
	isMember, err = env.member.HasActiveMembership(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, isMember)
}

func TestExpireMembers(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.memberRepo.members = append(env.memberRepo.members,
		&UserMember{ID: "m1", UserID: "u1", ExpireAt: time.Now().Add(-time.Hour), Status: constants.UserMemberStatusActive},
		&UserMember{ID: "m2", UserID: "u2", ExpireAt: time.Now().Add(time.Hour), Status: constants.UserMemberStatusActive},
	)

	count, err := env.member.ExpireMembers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpdateCard(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	err := env.member.UpdateCard(ctx, &MemberCard{ID: "missing", Name: "月卡", DurationDays: 30})
	assert.True(t, errors.IsBizCode(err, errors.ErrCodeMemberCardNotFound))

	require.NoError(t, env.member.CreateCard(ctx, &MemberCard{Name: "月卡", Price: 30, DurationDays: 30}))
	cards, _ := env.member.ListCards(ctx, true)
	updated := *cards[0]
	updated.Price = 25
	require.NoError(t, env.member.UpdateCard(ctx, &updated))

	cards, _ = env.member.ListCards(ctx, true)
	assert.Equal(t, 25.0, cards[0].Price)
}
