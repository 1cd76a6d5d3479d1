package service

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/internal/repository/contract"
	"walkaudit-be/internal/repository/specification"
	"walkaudit-be/internal/repository/unitofwork"
)

// In-memory repositories. Unused accessors come from the embedded interfaces
// and panic if touched, which is what we want in a unit test.

type fakeUserRepo struct {
	contract.UserRepository
	users map[uint]*entity.User
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ById); ok {
			return r.users[byId.Id], nil
		}
	}
	return nil, nil
}

type fakeReportRepo struct {
	contract.ReportRepository
	reports map[uint]*entity.Report
}

func (r *fakeReportRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Report, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ById); ok {
			return r.reports[byId.Id], nil
		}
	}
	return nil, nil
}

type fakeChatRepo struct {
	contract.ChatRepository
	chats     []*entity.Chat
	nextId    uint
	createErr error
	// onConflict injects a row mid-race, simulating another instance
	// winning the unique-index creation.
	onConflict func()
	creates    int
}

func (r *fakeChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	r.creates++
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		if r.onConflict != nil {
			r.onConflict()
		}
		return err
	}
	r.nextId++
	chat.Id = r.nextId
	r.chats = append(r.chats, chat)
	return nil
}

func (r *fakeChatRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ById:
			for _, chat := range r.chats {
				if chat.Id == s.Id {
					return chat, nil
				}
			}
		case specification.ByReportAndOrg:
			for _, chat := range r.chats {
				if chat.ReportId == s.ReportId && chat.OrgId == s.OrgId {
					return chat, nil
				}
			}
		}
	}
	return nil, nil
}

type fakeMessageRepo struct {
	contract.ChatMessageRepository
	messages  []*entity.ChatMessage
	createErr error
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	if r.createErr != nil {
		return r.createErr
	}
	message.Id = uint(len(r.messages) + 1)
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	return r.messages, nil
}

type fakeUow struct {
	unitofwork.UnitOfWork
	users    *fakeUserRepo
	reports  *fakeReportRepo
	chats    *fakeChatRepo
	messages *fakeMessageRepo
}

func (u *fakeUow) UserRepository() contract.UserRepository               { return u.users }
func (u *fakeUow) ReportRepository() contract.ReportRepository           { return u.reports }
func (u *fakeUow) ChatRepository() contract.ChatRepository               { return u.chats }
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository { return u.messages }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func uintPtr(v uint) *uint { return &v }

func chatFixture() (*chatService, *fakeUow) {
	author := &entity.User{Id: 1, Role: entity.UserRoleReporter}
	cityMember := &entity.User{Id: 2, Role: entity.UserRoleCity, OrgId: uintPtr(10)}
	companyMember := &entity.User{Id: 3, Role: entity.UserRoleCompany, OrgId: uintPtr(20)}
	admin := &entity.User{Id: 4, Role: entity.UserRoleAdmin, IsAdmin: true}
	blocked := &entity.User{Id: 5, Role: entity.UserRoleReporter, IsBlocked: true}
	bystander := &entity.User{Id: 6, Role: entity.UserRoleReporter}

	routedReport := &entity.Report{Id: 100, UserId: author.Id, OrgId: uintPtr(10), Category: "road_damage"}
	unroutedReport := &entity.Report{Id: 101, UserId: author.Id, Category: "other"}

	uow := &fakeUow{
		users: &fakeUserRepo{users: map[uint]*entity.User{
			author.Id: author, cityMember.Id: cityMember, companyMember.Id: companyMember,
			admin.Id: admin, blocked.Id: blocked, bystander.Id: bystander,
		}},
		reports: &fakeReportRepo{reports: map[uint]*entity.Report{
			routedReport.Id: routedReport, unroutedReport.Id: unroutedReport,
		}},
		chats:    &fakeChatRepo{},
		messages: &fakeMessageRepo{},
	}
	svc := NewChatService(&fakeFactory{uow: uow}, nil)
	return svc, uow
}

func TestResolveOrCreateIsIdempotent(t *testing.T) {
	svc, uow := chatFixture()
	ctx := context.Background()

	first, err := svc.ResolveOrCreate(ctx, 100, 10)
	require.NoError(t, err)
	require.NotZero(t, first.Id)

	second, err := svc.ResolveOrCreate(ctx, 100, 10)
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, 1, uow.chats.creates, "second call resolves without creating")
}

func TestResolveOrCreateUnknownReport(t *testing.T) {
	svc, _ := chatFixture()

	_, err := svc.ResolveOrCreate(context.Background(), 999, 10)
	require.Error(t, err)
	assert.True(t, serverutils.IsStatus(err, fiber.StatusNotFound))
}

func TestResolveOrCreateLosingRaceFallsBackToLookup(t *testing.T) {
	svc, uow := chatFixture()
	uow.chats.createErr = contract.ErrDuplicateChat
	uow.chats.onConflict = func() {
		// The winner's row appears before our retry lookup.
		uow.chats.chats = append(uow.chats.chats, &entity.Chat{Id: 77, ReportId: 100, OrgId: 10})
	}

	chat, err := svc.ResolveOrCreate(context.Background(), 100, 10)
	require.NoError(t, err)
	assert.Equal(t, uint(77), chat.Id)
}

func TestAdmitAuthorization(t *testing.T) {
	tests := []struct {
		name       string
		userId     uint
		reportId   uint
		wantStatus int
	}{
		{name: "org member connects", userId: 2, reportId: 100},
		{name: "report author connects through report org", userId: 1, reportId: 100},
		{name: "admin connects", userId: 4, reportId: 100},
		{name: "unknown user", userId: 999, reportId: 100, wantStatus: fiber.StatusUnauthorized},
		{name: "blocked user", userId: 5, reportId: 100, wantStatus: fiber.StatusUnauthorized},
		{name: "unrelated reporter", userId: 6, reportId: 100, wantStatus: fiber.StatusForbidden},
		{name: "unknown report", userId: 2, reportId: 999, wantStatus: fiber.StatusNotFound},
		{name: "author of unrouted report", userId: 1, reportId: 101, wantStatus: fiber.StatusForbidden},
		{name: "other org member", userId: 3, reportId: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := chatFixture()
			chat, err := svc.Admit(context.Background(), tt.userId, tt.reportId)
			if tt.wantStatus == 0 {
				require.NoError(t, err)
				require.NotNil(t, chat)
				return
			}
			require.Error(t, err)
			assert.True(t, serverutils.IsStatus(err, tt.wantStatus), "unexpected error: %v", err)
		})
	}
}

func TestAdmitScopesChatToCallerOrg(t *testing.T) {
	svc, _ := chatFixture()
	ctx := context.Background()

	cityChat, err := svc.Admit(ctx, 2, 100)
	require.NoError(t, err)
	assert.Equal(t, uint(10), cityChat.OrgId)

	// Another org's member gets a separate conversation for the same report.
	companyChat, err := svc.Admit(ctx, 3, 100)
	require.NoError(t, err)
	assert.Equal(t, uint(20), companyChat.OrgId)
	assert.NotEqual(t, cityChat.Id, companyChat.Id)
}

func TestAuthorizeRevokedMidSession(t *testing.T) {
	svc, uow := chatFixture()
	ctx := context.Background()

	chat, err := svc.Admit(ctx, 2, 100)
	require.NoError(t, err)
	require.NoError(t, svc.Authorize(ctx, 2, chat.Id))

	uow.users.users[2].IsBlocked = true
	err = svc.Authorize(ctx, 2, chat.Id)
	require.Error(t, err)
	assert.True(t, serverutils.IsStatus(err, fiber.StatusUnauthorized))
}

func TestAppendPersistsAndStampsChat(t *testing.T) {
	svc, uow := chatFixture()
	ctx := context.Background()

	chat, err := svc.Admit(ctx, 2, 100)
	require.NoError(t, err)

	message, err := svc.Append(ctx, chat.Id, 2, strPtr("on our way"), nil)
	require.NoError(t, err)
	assert.Equal(t, chat.Id, message.ChatId)
	assert.Equal(t, chat.ReportId, message.ReportId)
	assert.Equal(t, uint(2), message.UserId)
	require.Len(t, uow.messages.messages, 1)
}

func TestAppendUnknownChat(t *testing.T) {
	svc, _ := chatFixture()

	_, err := svc.Append(context.Background(), 999, 2, strPtr("hello"), nil)
	require.Error(t, err)
	assert.True(t, serverutils.IsStatus(err, fiber.StatusNotFound))
}

func TestHistoryByReportWithoutChatIsEmpty(t *testing.T) {
	svc, _ := chatFixture()

	messages, err := svc.HistoryByReport(context.Background(), 2, 100)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func strPtr(s string) *string { return &s }
